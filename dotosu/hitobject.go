package dotosu

import (
	"fmt"
	"strings"
	"unicode"
)

// Field positions shared by every hit object line.
const (
	fieldX = iota
	fieldY
	fieldTime
	fieldType
	fieldHitSound
	fieldParams // first variant-specific field
)

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

func optionalExtras(parts []string, i int) *Extras {
	if i < len(parts) {
		return parseExtras(parts[i])
	}
	return nil
}

// parseHitObject routes on the type bits. Later tests win, matching the
// precedence hold > spinner > slider > circle; bits 4-6 only feed ComboSkip.
func (d *decoder) parseHitObject(line string) (HitObject, error) {
	parts := strings.Split(stripSpace(line), ",")
	if len(parts) < fieldParams {
		return nil, missingField("hit object", len(parts), fieldParams)
	}
	raw, err := d.integer("type", parts[fieldType])
	if err != nil {
		return nil, err
	}
	flags := HitObjectTypeFlags(raw)

	base, err := d.parseBase(parts)
	if err != nil {
		return nil, err
	}
	base.ComboSkip = int(flags&comboSkipMask) >> 4

	var obj HitObject
	switch {
	case flags&TypeHold != 0 && !d.legacyHold:
		obj, err = d.parseHold(base, parts)
	case flags&(TypeHold|TypeSpinner) != 0:
		obj, err = d.parseSpinner(base, parts)
	case flags&TypeSlider != 0:
		obj, err = d.parseSlider(base, parts)
	case flags&TypeCircle != 0:
		obj = parseCircle(base, parts)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownObjectType, raw)
	}
	if err != nil {
		return nil, err
	}
	if flags&TypeNewCombo != 0 {
		obj = applyNewCombo(obj)
	}
	return obj, nil
}

func (d *decoder) parseBase(parts []string) (BaseHO, error) {
	var (
		b   BaseHO
		err error
		hs  int
	)
	if b.PosXY.X, err = d.decimal("x", parts[fieldX]); err != nil {
		return b, err
	}
	if b.PosXY.Y, err = d.decimal("y", parts[fieldY]); err != nil {
		return b, err
	}
	if b.Time, err = d.decimal("time", parts[fieldTime]); err != nil {
		return b, err
	}
	if hs, err = d.integer("hit sound", parts[fieldHitSound]); err != nil {
		return b, err
	}
	b.Sound = HitSoundFlags(hs)
	return b, nil
}

// applyNewCombo adds the combo bit to the already resolved variant type.
func applyNewCombo(obj HitObject) HitObject {
	switch o := obj.(type) {
	case Circle:
		o.Type += TypeNewCombo
		return o
	case Slider:
		o.Type += TypeNewCombo
		return o
	case Spinner:
		o.Type += TypeNewCombo
		return o
	case Hold:
		o.Type += TypeNewCombo
		return o
	}
	return obj
}

// x,y,time,type,hitSound,extras?
func parseCircle(base BaseHO, parts []string) Circle {
	base.Type = TypeCircle
	base.Extras = optionalExtras(parts, fieldParams)
	return Circle{BaseHO: base}
}

// x,y,time,type,hitSound,curve,repeat,pixelLength,edgeSounds?,edgeAdditions?,extras?
func (d *decoder) parseSlider(base BaseHO, parts []string) (Slider, error) {
	const (
		fieldCurve = fieldParams + iota
		fieldRepeat
		fieldLength
		fieldEdgeSounds
		fieldEdgeAdditions
		fieldExtras
	)
	if len(parts) <= fieldLength {
		return Slider{}, missingField("slider", len(parts), fieldLength+1)
	}
	base.Type = TypeSlider
	s := Slider{BaseHO: base}

	var err error
	if s.Curve, err = d.parseCurve(parts[fieldCurve]); err != nil {
		return s, err
	}
	if s.Repeat, err = d.integer("repeat", parts[fieldRepeat]); err != nil {
		return s, err
	}
	if s.PixelLength, err = d.decimal("pixel length", parts[fieldLength]); err != nil {
		return s, err
	}
	if len(parts) > fieldEdgeSounds && parts[fieldEdgeSounds] != "" {
		for _, tok := range strings.Split(parts[fieldEdgeSounds], "|") {
			n, err := d.integer("edge sound", tok)
			if err != nil {
				return s, err
			}
			s.EdgeSounds = append(s.EdgeSounds, HitSoundFlags(n))
		}
	}
	if len(parts) > fieldEdgeAdditions && parts[fieldEdgeAdditions] != "" {
		for _, tok := range strings.Split(parts[fieldEdgeAdditions], "|") {
			s.EdgeAdditions = append(s.EdgeAdditions, parseEdgeAdd(tok))
		}
	}
	s.Extras = optionalExtras(parts, fieldExtras)
	return s, nil
}

// x,y,time,type,hitSound,endTime,extras?
func (d *decoder) parseSpinner(base BaseHO, parts []string) (Spinner, error) {
	if len(parts) <= fieldParams {
		return Spinner{}, missingField("spinner", len(parts), fieldParams+1)
	}
	end, err := d.wholeValue("end time", parts[fieldParams])
	if err != nil {
		return Spinner{}, err
	}
	base.Type = TypeSpinner
	base.Extras = optionalExtras(parts, fieldParams+1)
	return Spinner{BaseHO: base, EndTime: end}, nil
}

// x,y,time,type,hitSound,endTime,extras? or the mania layout
// x,y,time,type,hitSound,endTime:extras.
func (d *decoder) parseHold(base BaseHO, parts []string) (Hold, error) {
	if len(parts) <= fieldParams {
		return Hold{}, missingField("hold", len(parts), fieldParams+1)
	}
	endStr, extras, packed := strings.Cut(parts[fieldParams], ":")
	end, err := d.wholeValue("end time", endStr)
	if err != nil {
		return Hold{}, err
	}
	base.Type = TypeHold
	if packed {
		base.Extras = parseExtras(extras)
	} else {
		base.Extras = optionalExtras(parts, fieldParams+1)
	}
	return Hold{BaseHO: base, EndTime: end}, nil
}
