package dotosu

import "strings"

// parseExtras reads sampleSet:additionSet:customIndex:volume:filename.
// Missing or malformed numbers are 0 regardless of strictness.
func parseExtras(s string) *Extras {
	parts := strings.Split(s, ":")
	get := func(i int) string {
		if i < len(parts) {
			return parts[i]
		}
		return ""
	}
	return &Extras{
		SampleSet:   SampleSet(toInt(leadingInt(get(0)))),
		AdditionSet: SampleSet(toInt(leadingInt(get(1)))),
		CustomIndex: toInt(leadingInt(get(2))),
		Volume:      toInt(leadingFloat(get(3))),
		Filename:    strings.TrimSpace(get(4)),
	}
}

// parseEdgeAdd reads one "normal:addition" pair of a slider's edge sets.
func parseEdgeAdd(s string) EdgeAdd {
	ns, as, _ := strings.Cut(s, ":")
	return EdgeAdd{
		NormalSet:   SampleSet(toInt(leadingInt(ns))),
		AdditionSet: SampleSet(toInt(leadingInt(as))),
	}
}
