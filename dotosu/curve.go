package dotosu

import (
	"fmt"
	"strings"
)

type CurveType byte

const (
	CurveLinear  CurveType = 'L'
	CurvePerfect CurveType = 'P'
	CurveBezier  CurveType = 'B'
	CurveCatmull CurveType = 'C' // deprecated by the format
)

func (c CurveType) String() string {
	switch c {
	case CurveLinear:
		return "linear"
	case CurvePerfect:
		return "perfect"
	case CurveBezier:
		return "bezier"
	case CurveCatmull:
		return "catmull"
	default:
		return fmt.Sprintf("CurveType(%q)", byte(c))
	}
}

// Curve is the description of a slider path, not its geometry. The slider
// head is implicit and not part of Points.
type Curve struct {
	Type   CurveType
	Points []Vec2
}

// Segments splits head+Points wherever a control point repeats. Each
// segment includes its starting point, so A,B,C,D,D,E,F,F,G gives
// [A B C D] [D E F] [F G].
func (c Curve) Segments(head Vec2) [][]Vec2 {
	pts := append([]Vec2{head}, c.Points...)
	var segs [][]Vec2
	cur := []Vec2{pts[0]}
	for _, p := range pts[1:] {
		if p == cur[len(cur)-1] {
			if len(cur) >= 2 {
				segs = append(segs, cur)
			}
			cur = []Vec2{p}
			continue
		}
		cur = append(cur, p)
	}
	if len(cur) >= 2 {
		segs = append(segs, cur)
	}
	return segs
}

// parseCurve reads "B|380:120|332:96". The first byte is the tag and the
// byte after it is the separator.
func (d *decoder) parseCurve(desc string) (Curve, error) {
	if desc == "" {
		return Curve{}, fmt.Errorf("%w: empty slider curve", ErrMissingField)
	}
	c := Curve{Type: CurveType(desc[0])}
	if len(desc) <= 2 {
		return c, nil
	}
	for _, tok := range strings.Split(desc[2:], "|") {
		xs, ys, _ := strings.Cut(tok, ":")
		x, err := d.wholeValue("curve x", xs)
		if err != nil {
			return c, err
		}
		y, err := d.wholeValue("curve y", ys)
		if err != nil {
			return c, err
		}
		c.Points = append(c.Points, Vec2{X: x, Y: y})
	}
	return c, nil
}
