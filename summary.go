package main

import (
	"encoding/json"
	"math"

	"osubeatmap/dotosu"
)

// Number is a float64 that encodes NaN and infinities as JSON null.
type Number float64

func (n Number) MarshalJSON() ([]byte, error) {
	f := float64(n)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return []byte("null"), nil
	}
	return json.Marshal(f)
}

// Summary is the per-difficulty record printed and indexed by the CLI.
type Summary struct {
	Path          string        `json:"path"`
	FormatVersion int           `json:"format_version"`
	ID            int           `json:"id"`
	BeatmapsetID  int           `json:"beatmapset_id"`
	Artist        string        `json:"artist"`
	ArtistUnicode string        `json:"artist_unicode"`
	Title         string        `json:"title"`
	TitleUnicode  string        `json:"title_unicode"`
	Creator       string        `json:"creator"`
	Version       string        `json:"version"`
	Source        string        `json:"source"`
	Tags          []string      `json:"tags"`
	Mode          string        `json:"mode"`
	ModeInt       int           `json:"mode_int"`
	Audio         string        `json:"audio"`
	Background    string        `json:"background"`
	Cs            Number        `json:"cs"`
	Ar            Number        `json:"ar"`
	Accuracy      Number        `json:"accuracy"`
	Drain         Number        `json:"drain"`
	Bpm           Number        `json:"bpm"`
	BpmMin        Number        `json:"bpm_min"`
	BpmMax        Number        `json:"bpm_max"`
	CountCircles  int           `json:"count_circles"`
	CountSliders  int           `json:"count_sliders"`
	CountSpinners int           `json:"count_spinners"`
	CountHolds    int           `json:"count_holds"`
	HitLength     int           `json:"hit_length"` // seconds from first object start to last object end
	Constants     *MapConstants `json:"constants,omitempty"`
	Diagnostics   int           `json:"diagnostics"`
}

func Summarize(path string, b *dotosu.Beatmap) Summary {
	counts := b.Counts()
	bpm, lo, hi := tempoRange(b)
	s := Summary{
		Path:          path,
		FormatVersion: b.FormatVersion,
		ID:            b.Metadata.BeatmapID,
		BeatmapsetID:  b.Metadata.BeatmapSetID,
		Artist:        b.Metadata.Artist,
		ArtistUnicode: b.Metadata.DisplayArtist(),
		Title:         b.Metadata.Title,
		TitleUnicode:  b.Metadata.DisplayTitle(),
		Creator:       b.Metadata.Creator,
		Version:       b.Metadata.Version,
		Source:        b.Metadata.Source,
		Tags:          b.Metadata.Tags,
		Mode:          b.General.Mode.String(),
		ModeInt:       int(b.General.Mode),
		Audio:         b.General.AudioFilename,
		Background:    b.General.Background,
		Cs:            Number(b.Difficulty.CircleSize),
		Ar:            Number(b.Difficulty.ApproachRate),
		Accuracy:      Number(b.Difficulty.OverallDifficulty),
		Drain:         Number(b.Difficulty.HPDrainRate),
		Bpm:           Number(bpm),
		BpmMin:        Number(lo),
		BpmMax:        Number(hi),
		CountCircles:  counts.Circles,
		CountSliders:  counts.Sliders,
		CountSpinners: counts.Spinners,
		CountHolds:    counts.Holds,
		HitLength:     hitLength(b),
		Diagnostics:   len(b.Diagnostics),
	}
	if b.General.Mode == dotosu.ModeStandard {
		c := GetBeatmapConstants(b)
		s.Constants = &c
	}
	return s
}

// tempoRange returns the bpm covering the longest stretch of the map and
// the extremes. All NaN when no point defines a tempo.
func tempoRange(b *dotosu.Beatmap) (common, lo, hi float64) {
	common, lo, hi = math.NaN(), math.Inf(1), math.Inf(-1)
	var tempos []dotosu.TimingPoint
	for _, tp := range b.TimingPoints {
		if tp.TimingChange() {
			tempos = append(tempos, tp)
		}
	}
	if len(tempos) == 0 {
		return math.NaN(), math.NaN(), math.NaN()
	}

	last := 0.0
	if n := len(b.HitObjects); n > 0 {
		last = b.HitObjects[n-1].StartTime()
	}
	longest := math.Inf(-1)
	for i, tp := range tempos {
		bpm := 60000 / tp.BeatDuration
		lo, hi = min(lo, bpm), max(hi, bpm)

		start, end := tp.Offset, last
		if i == 0 {
			start = 0
		}
		if i+1 < len(tempos) {
			end = tempos[i+1].Offset
		}
		if end-start > longest {
			longest = end - start
			common = bpm
		}
	}
	return common, lo, hi
}

func objectEnd(b *dotosu.Beatmap, ho dotosu.HitObject) float64 {
	switch o := ho.(type) {
	case dotosu.Spinner:
		return o.EndTime
	case dotosu.Hold:
		return o.EndTime
	case dotosu.Slider:
		span := o.PixelLength * b.BeatDurationAt(o.Time) / (100 * b.Difficulty.SliderMultiplier)
		return o.Time + span*float64(o.Repeat)
	}
	return ho.StartTime()
}

func hitLength(b *dotosu.Beatmap) int {
	if len(b.HitObjects) == 0 {
		return 0
	}
	first := b.HitObjects[0].StartTime()
	last := math.Inf(-1)
	for _, ho := range b.HitObjects {
		first = min(first, ho.StartTime())
		last = max(last, objectEnd(b, ho))
	}
	length := (last - first) / 1000
	if math.IsNaN(length) || math.IsInf(length, 0) {
		return 0
	}
	return int(length)
}
