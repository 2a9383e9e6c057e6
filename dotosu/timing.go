package dotosu

import "strings"

const timingPointFields = 8

// parseTimingPoint reads offset,beatDuration,meter,sampleSet,sampleIndex,volume,inherited,kiai.
func (d *decoder) parseTimingPoint(line string) (TimingPoint, error) {
	parts := strings.Split(line, ",")
	if len(parts) < timingPointFields {
		return TimingPoint{}, missingField("timing point", len(parts), timingPointFields)
	}

	var (
		tp  TimingPoint
		err error
		n   int
	)
	if tp.Offset, err = d.wholeValue("offset", parts[0]); err != nil {
		return tp, err
	}
	if tp.BeatDuration, err = d.decimal("beat duration", parts[1]); err != nil {
		return tp, err
	}
	if tp.Meter, err = d.integer("meter", parts[2]); err != nil {
		return tp, err
	}
	if n, err = d.integer("sample set", parts[3]); err != nil {
		return tp, err
	}
	tp.SampleSet = SampleSet(n)
	if tp.SampleIndex, err = d.integer("sample index", parts[4]); err != nil {
		return tp, err
	}
	if tp.Volume, err = d.decimal("volume", parts[5]); err != nil {
		return tp, err
	}
	tp.Inherited = parseBoolInt(parts[6])
	tp.Kiai = parseBoolInt(parts[7])
	return tp, nil
}
