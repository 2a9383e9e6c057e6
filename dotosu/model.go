package dotosu

import (
	"errors"
	"math"
)

// ---------- Beatmap model ----------

// Beatmap is one decoded difficulty.
type Beatmap struct {
	FormatVersion int
	General       General
	Metadata      Metadata
	Difficulty    Difficulty

	TimingPoints []TimingPoint
	HitObjects   []HitObject

	// Lines that could not be decoded. Empty unless the input was malformed.
	Diagnostics []*LineError
}

type CountdownSpeed int

const (
	CountdownNone CountdownSpeed = iota
	CountdownNormal
	CountdownHalf
	CountdownDouble
)

type GameMode int

const (
	ModeStandard GameMode = iota
	ModeTaiko
	ModeCatch
	ModeMania
)

func (m GameMode) String() string {
	switch m {
	case ModeStandard:
		return "osu"
	case ModeTaiko:
		return "taiko"
	case ModeCatch:
		return "fruits"
	case ModeMania:
		return "mania"
	default:
		return "unknown"
	}
}

type General struct {
	AudioFilename        string
	AudioLeadIn          int
	PreviewTime          int
	Countdown            CountdownSpeed
	SampleSet            string
	StackLeniency        float64
	Mode                 GameMode
	LetterboxInBreaks    bool
	StoryFireInFront     bool
	EpilepsyWarning      bool
	WidescreenStoryboard bool
	SpecialStyle         bool
	UseSkinSprites       bool
	SkinPreference       string
	CountdownOffset      int
	Background           string
}

type Metadata struct {
	Title, TitleUnicode     string
	Artist, ArtistUnicode   string
	Creator, Version        string
	Source                  string
	Tags                    []string
	BeatmapID, BeatmapSetID int
}

// DisplayTitle prefers the unicode title and falls back to the ASCII one.
func (m Metadata) DisplayTitle() string {
	if m.TitleUnicode != "" {
		return m.TitleUnicode
	}
	return m.Title
}

func (m Metadata) DisplayArtist() string {
	if m.ArtistUnicode != "" {
		return m.ArtistUnicode
	}
	return m.Artist
}

type Difficulty struct {
	HPDrainRate, CircleSize, OverallDifficulty, ApproachRate float64
	SliderMultiplier, SliderTickRate                         float64
}

type TimingPoint struct {
	Offset       float64
	BeatDuration float64
	Meter        int
	SampleSet    SampleSet
	SampleIndex  int
	Volume       float64
	Inherited    bool // raw 7th column, not derived from BeatDuration
	Kiai         bool
}

// TimingChange reports whether the point defines a tempo (positive beat duration).
func (tp TimingPoint) TimingChange() bool { return tp.BeatDuration > 0 }

// SliderVelocity is the multiplier carried by an inherited point, 1 otherwise.
func (tp TimingPoint) SliderVelocity() float64 {
	if math.IsNaN(tp.BeatDuration) || tp.BeatDuration >= 0 {
		return 1
	}
	return 100.0 / -tp.BeatDuration
}

// ---------- HitObject enums & typed variants ----------

type ObjectKind uint8

const (
	KindCircle ObjectKind = iota
	KindSlider
	KindSpinner
	KindHold
)

func (k ObjectKind) String() string {
	switch k {
	case KindCircle:
		return "circle"
	case KindSlider:
		return "slider"
	case KindSpinner:
		return "spinner"
	case KindHold:
		return "hold"
	default:
		return "unknown"
	}
}

type HitSoundFlags int

const (
	HitSoundNormal  HitSoundFlags = 1 << iota // 1
	HitSoundWhistle                           // 2
	HitSoundFinish                            // 4
	HitSoundClap                              // 8
)

type SampleSet int

const (
	SampleNone SampleSet = iota
	SampleNormal
	SampleSoft
	SampleDrum
)

type HitObjectTypeFlags int

const (
	TypeCircle     HitObjectTypeFlags = 1 << iota // 1
	TypeSlider                                    // 2
	TypeNewCombo                                  // 4
	TypeSpinner                                   // 8
	TypeComboSkip1                                // 16
	TypeComboSkip2                                // 32
	TypeComboSkip3                                // 64
	TypeHold       HitObjectTypeFlags = 1 << 7    // 128

	comboSkipMask = TypeComboSkip1 | TypeComboSkip2 | TypeComboSkip3
)

type Vec2 struct{ X, Y float64 }

// Extras is the optional sample override trailing every hit object.
type Extras struct {
	SampleSet   SampleSet
	AdditionSet SampleSet
	CustomIndex int
	Volume      int
	Filename    string // empty when not given
}

type EdgeAdd struct {
	NormalSet   SampleSet
	AdditionSet SampleSet
}

// HitObject is implemented by Circle, Slider, Spinner and Hold.
type HitObject interface {
	Kind() ObjectKind
	StartTime() float64
	NewCombo() bool
	Flags() HitObjectTypeFlags
	Pos() Vec2
	HitSound() HitSoundFlags
	Sample() *Extras
}

type BaseHO struct {
	PosXY     Vec2
	Time      float64
	Type      HitObjectTypeFlags // variant flag, plus TypeNewCombo when set
	Sound     HitSoundFlags
	ComboSkip int
	Extras    *Extras
}

func (b BaseHO) StartTime() float64        { return b.Time }
func (b BaseHO) NewCombo() bool            { return (b.Type & TypeNewCombo) != 0 }
func (b BaseHO) Flags() HitObjectTypeFlags { return b.Type }
func (b BaseHO) Pos() Vec2                 { return b.PosXY }
func (b BaseHO) HitSound() HitSoundFlags   { return b.Sound }
func (b BaseHO) Sample() *Extras           { return b.Extras }

type Circle struct{ BaseHO }

func (Circle) Kind() ObjectKind { return KindCircle }

type Slider struct {
	BaseHO
	Curve         Curve
	Repeat        int
	PixelLength   float64
	EdgeSounds    []HitSoundFlags // expected len == Repeat+1, not enforced
	EdgeAdditions []EdgeAdd
}

func (Slider) Kind() ObjectKind { return KindSlider }

type Spinner struct {
	BaseHO
	EndTime float64
}

func (Spinner) Kind() ObjectKind { return KindSpinner }

type Hold struct {
	BaseHO
	EndTime float64
}

func (Hold) Kind() ObjectKind { return KindHold }

// Column maps the hold's x position onto one of columns mania keys.
func (h Hold) Column(columns int) int {
	if columns <= 0 || math.IsNaN(h.PosXY.X) {
		return 0
	}
	col := int(math.Floor(h.PosXY.X / (512.0 / float64(columns))))
	return max(0, min(col, columns-1))
}

// ---------- queries ----------

// TimingPointAt returns the timing point in effect at time t. The first
// point is in effect from time 0 whatever its own offset.
func (b *Beatmap) TimingPointAt(t float64) (TimingPoint, bool) {
	if len(b.TimingPoints) == 0 {
		return TimingPoint{}, false
	}
	cur := b.TimingPoints[0]
	for _, tp := range b.TimingPoints[1:] {
		if tp.Offset > t {
			break
		}
		cur = tp
	}
	return cur, true
}

// BeatDurationAt resolves the effective milliseconds per beat at time t,
// scaling inherited points by the last tempo-defining point before them.
// NaN when no tempo-defining point precedes t.
func (b *Beatmap) BeatDurationAt(t float64) float64 {
	tempo := math.NaN()
	scale := 1.0
	for i, tp := range b.TimingPoints {
		if i > 0 && tp.Offset > t {
			break
		}
		switch {
		case tp.BeatDuration > 0:
			tempo = tp.BeatDuration
			scale = 1
		case tp.BeatDuration < 0:
			scale = -tp.BeatDuration / 100
		}
	}
	return tempo * scale
}

type ObjectCounts struct {
	Circles, Sliders, Spinners, Holds int
}

func (b *Beatmap) Counts() ObjectCounts {
	var c ObjectCounts
	for _, ho := range b.HitObjects {
		switch ho.Kind() {
		case KindCircle:
			c.Circles++
		case KindSlider:
			c.Sliders++
		case KindSpinner:
			c.Spinners++
		case KindHold:
			c.Holds++
		}
	}
	return c
}

// ---------- optional validation ----------

func (b *Beatmap) Validate() error {
	if b.Metadata.Title == "" && b.Metadata.TitleUnicode == "" {
		return errors.New("missing title")
	}
	if b.Metadata.Artist == "" && b.Metadata.ArtistUnicode == "" {
		return errors.New("missing artist")
	}
	if b.General.AudioFilename == "" {
		return errors.New("missing AudioFilename in [General]")
	}
	return nil
}
