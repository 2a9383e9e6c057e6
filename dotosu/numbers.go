package dotosu

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	intPrefix   = regexp.MustCompile(`^[+-]?\d+`)
	floatPrefix = regexp.MustCompile(`^[+-]?(?:Infinity|\d+(?:\.\d*)?(?:[eE][+-]?\d+)?|\.\d+(?:[eE][+-]?\d+)?)`)
)

// leadingInt parses the longest base-10 integer prefix of s, NaN if there is none.
// "12abc" is 12 and "3.7" is 3.
func leadingInt(s string) float64 {
	m := intPrefix.FindString(strings.TrimSpace(s))
	if m == "" {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// leadingFloat parses the longest decimal prefix of s, NaN if there is none.
func leadingFloat(s string) float64 {
	m := floatPrefix.FindString(strings.TrimSpace(s))
	if m == "" {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// toInt collapses NaN and infinities to 0.
func toInt(f float64) int {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return int(f)
}

func orZero(f float64) float64 {
	if math.IsNaN(f) {
		return 0
	}
	return f
}

func malformed(name, s string) error {
	return fmt.Errorf("%w: %s %q", ErrMalformedNumber, name, s)
}

// wholeValue reads an integer-valued quantity, keeping NaN in lenient mode.
func (d *decoder) wholeValue(name, s string) (float64, error) {
	v := leadingInt(s)
	if d.strict && math.IsNaN(v) {
		return v, malformed(name, s)
	}
	return v, nil
}

func (d *decoder) decimal(name, s string) (float64, error) {
	v := leadingFloat(s)
	if d.strict && math.IsNaN(v) {
		return v, malformed(name, s)
	}
	return v, nil
}

// integer reads an int field; malformed input becomes 0 in lenient mode.
func (d *decoder) integer(name, s string) (int, error) {
	v, err := d.wholeValue(name, s)
	return toInt(v), err
}
