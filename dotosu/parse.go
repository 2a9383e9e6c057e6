package dotosu

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Section is the bracketed header a line belongs to.
type Section int

const (
	SectionGeneral Section = iota
	SectionEditor
	SectionMetadata
	SectionDifficulty
	SectionEvents
	SectionTimingPoints
	SectionColours
	SectionHitObjects
)

var sectionHeaders = [...]struct {
	header  string
	section Section
}{
	{"[General]", SectionGeneral},
	{"[Editor]", SectionEditor},
	{"[Metadata]", SectionMetadata},
	{"[Difficulty]", SectionDifficulty},
	{"[Events]", SectionEvents},
	{"[TimingPoints]", SectionTimingPoints},
	{"[Colours]", SectionColours},
	{"[HitObjects]", SectionHitObjects},
}

func (s Section) String() string {
	for _, h := range sectionHeaders {
		if h.section == s {
			return strings.Trim(h.header, "[]")
		}
	}
	return fmt.Sprintf("Section(%d)", int(s))
}

const formatHeader = "osu file format v"

// decoder is the accumulator threaded through every line of one parse.
type decoder struct {
	options
	section     Section
	line        int
	seenContent bool
	b           *Beatmap
}

func newDecoder(opts []Option) *decoder {
	d := &decoder{
		options: defaultOptions(),
		section: SectionGeneral,
		b: &Beatmap{
			General: General{
				SampleSet:      "Normal",
				SkinPreference: "Default",
			},
		},
	}
	for _, opt := range opts {
		opt(&d.options)
	}
	return d
}

// ---------- Public API ----------

func DecodeFile(path string, opts ...Option) (*Beatmap, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f, opts...)
}

func Decode(r io.Reader, opts ...Option) (*Beatmap, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read beatmap: %w", err)
	}
	return Parse(string(data), opts...)
}

// Parse decodes the text of a .osu file. Lines that cannot be decoded are
// skipped and listed in Beatmap.Diagnostics; with WithFailFast the first
// such line is returned as a *LineError instead.
func Parse(text string, opts ...Option) (*Beatmap, error) {
	d := newDecoder(opts)
	text = strings.TrimPrefix(text, "\uFEFF")
	lines := strings.Split(strings.ReplaceAll(text, "\r", ""), "\n")
	for i, line := range lines {
		d.line = i + 1
		if err := d.step(line); err != nil {
			le := &LineError{Line: d.line, Section: d.section, Text: line, Err: err}
			if d.failFast {
				return nil, le
			}
			d.logger.Warn().
				Int("line", le.Line).
				Stringer("section", le.Section).
				Err(err).
				Msg("skipping line")
			d.b.Diagnostics = append(d.b.Diagnostics, le)
		}
	}
	return d.b, nil
}

func (d *decoder) step(line string) error {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(line, "//") {
		return nil
	}
	first := !d.seenContent
	d.seenContent = true

	if strings.HasPrefix(trimmed, "[") {
		d.enterSection(trimmed)
		return nil
	}
	if first && strings.HasPrefix(trimmed, formatHeader) {
		d.b.FormatVersion = toInt(leadingInt(strings.TrimPrefix(trimmed, formatHeader)))
		return nil
	}

	switch d.section {
	case SectionGeneral:
		return d.parseGeneral(splitKeyVal(line))
	case SectionMetadata:
		return d.parseMetadata(splitKeyVal(line))
	case SectionDifficulty:
		return d.parseDifficulty(splitKeyVal(line))
	case SectionEvents:
		d.parseEvent(line)
	case SectionTimingPoints:
		tp, err := d.parseTimingPoint(line)
		if err != nil {
			return err
		}
		d.b.TimingPoints = append(d.b.TimingPoints, tp)
	case SectionHitObjects:
		ho, err := d.parseHitObject(line)
		if err != nil {
			return err
		}
		d.b.HitObjects = append(d.b.HitObjects, ho)
	}
	// Editor and Colours are not decoded.
	return nil
}

func (d *decoder) enterSection(header string) {
	for _, h := range sectionHeaders {
		if strings.HasPrefix(header, h.header) {
			d.section = h.section
			return
		}
	}
	d.logger.Trace().Int("line", d.line).Str("header", header).Msg("unknown section, keeping current")
}
