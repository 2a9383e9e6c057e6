package dotosu

import (
	"errors"
	"math"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleMap = "osu file format v14\r\n" + `
[General]
AudioFilename: audio.mp3
AudioLeadIn: 0
PreviewTime: 61250
Countdown: 2
SampleSet: Soft
StackLeniency: 0.7
Mode: 0
LetterboxInBreaks: 0
WidescreenStoryboard: 1
SomethingNew: 42

[Editor]
Bookmarks: 1000,2000
DistanceSpacing: 1.2
Title:Should Not Apply

[Metadata]
Title:Kimi no Shiranai Monogatari
TitleUnicode:君の知らない物語
Artist:supercell
ArtistUnicode:supercell
Creator:Mapper
Version:Insane
Source:Bakemonogatari
Tags:bakemonogatari  ending ryo
BeatmapID:123456
BeatmapSetID:7890

[Difficulty]
HPDrainRate:6
CircleSize:4
OverallDifficulty:8
ApproachRate:9
SliderMultiplier:1.8
SliderTickRate:1

[Events]
//Background and Video events
Video,0,"bg.mp4"
0,0,"background.jpg",0,0
//Break Periods
2,10000,12000

[TimingPoints]
5000,333.333,4,2,1,60,1,0
9000,-50,4,2,1,60,0,1

[Colours]
Combo1 : 255,128,0

[HitObjects]
256,192,5000,5,0,0:0:0:0:
424,96,66,2,0,B|380:120|332:96|332:96|304:124,1,130,2|0,0:0|0:0,0:0:0:0:
256,192,8000,12,0,9000,0:0:0:0:
64,192,9500,128,0,10000:0:0:0:0:
`

func TestParseSampleMap(t *testing.T) {
	b, err := Parse(sampleMap)
	require.NoError(t, err)
	require.Empty(t, b.Diagnostics)

	assert.Equal(t, 14, b.FormatVersion)

	assert.Equal(t, General{
		AudioFilename:        "audio.mp3",
		PreviewTime:          61250,
		Countdown:            CountdownHalf,
		SampleSet:            "Soft",
		StackLeniency:        0.7,
		Mode:                 ModeStandard,
		WidescreenStoryboard: true,
		SkinPreference:       "Default",
		Background:           "background.jpg",
	}, b.General)

	assert.Equal(t, Metadata{
		Title:         "Kimi no Shiranai Monogatari",
		TitleUnicode:  "君の知らない物語",
		Artist:        "supercell",
		ArtistUnicode: "supercell",
		Creator:       "Mapper",
		Version:       "Insane",
		Source:        "Bakemonogatari",
		Tags:          []string{"bakemonogatari", "ending", "ryo"},
		BeatmapID:     123456,
		BeatmapSetID:  7890,
	}, b.Metadata)

	assert.Equal(t, Difficulty{
		HPDrainRate:       6,
		CircleSize:        4,
		OverallDifficulty: 8,
		ApproachRate:      9,
		SliderMultiplier:  1.8,
		SliderTickRate:    1,
	}, b.Difficulty)

	require.Len(t, b.TimingPoints, 2)
	require.Len(t, b.HitObjects, 4)

	kinds := make([]ObjectKind, 0, len(b.HitObjects))
	for _, ho := range b.HitObjects {
		kinds = append(kinds, ho.Kind())
	}
	assert.Equal(t, []ObjectKind{KindCircle, KindSlider, KindSpinner, KindHold}, kinds)
	assert.Equal(t, ObjectCounts{Circles: 1, Sliders: 1, Spinners: 1, Holds: 1}, b.Counts())
	assert.NoError(t, b.Validate())
}

func TestParseDefaults(t *testing.T) {
	b, err := Parse("")
	require.NoError(t, err)

	assert.Equal(t, "Normal", b.General.SampleSet)
	assert.Equal(t, "Default", b.General.SkinPreference)
	assert.Zero(t, b.FormatVersion)
	assert.Empty(t, b.TimingPoints)
	assert.Empty(t, b.HitObjects)
	assert.Error(t, b.Validate())
}

func TestParseIsIdempotent(t *testing.T) {
	input := sampleMap + "\n[Difficulty]\nApproachRate:fast\n"
	first, err := Parse(input)
	require.NoError(t, err)
	second, err := Parse(input)
	require.NoError(t, err)

	if diff := cmp.Diff(first, second, cmpopts.EquateNaNs()); diff != "" {
		t.Fatalf("second parse differs (-first +second):\n%s", diff)
	}
}

func TestParseConcurrent(t *testing.T) {
	want, err := Parse(sampleMap)
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]*Beatmap, 16)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], _ = Parse(sampleMap)
		}()
	}
	wg.Wait()

	for _, got := range results {
		require.NotNil(t, got)
		assert.Empty(t, cmp.Diff(want, got))
	}
}

func TestSectionIsolation(t *testing.T) {
	without, err := Parse(sampleMap)
	require.NoError(t, err)

	noisy := strings.Replace(sampleMap, "[Colours]\n", "[Colours]\nTitle:Nope\n0,0,\"evil.png\",0,0\n1,2,3,1,0\n", 1)
	noisy = strings.Replace(noisy, "[Editor]\n", "[Editor]\nAudioFilename: other.mp3\n5,5,5,5,5,5,5,5\n", 1)
	with, err := Parse(noisy)
	require.NoError(t, err)

	assert.Empty(t, cmp.Diff(without, with))
}

func TestUnknownHeaderKeepsSection(t *testing.T) {
	b, err := Parse("[Metadata]\n[Unknown]\nTitle:Still Metadata\n")
	require.NoError(t, err)
	assert.Equal(t, "Still Metadata", b.Metadata.Title)
}

func TestDefaultSectionIsGeneral(t *testing.T) {
	b, err := Parse("AudioFilename: a.ogg\nMode: 3\n")
	require.NoError(t, err)
	assert.Equal(t, "a.ogg", b.General.AudioFilename)
	assert.Equal(t, ModeMania, b.General.Mode)
}

func TestCommentsAndBlankLines(t *testing.T) {
	b, err := Parse("\uFEFF[Metadata]\n   \n// Title:Commented\nTitle:Real\n")
	require.NoError(t, err)
	assert.Equal(t, "Real", b.Metadata.Title)
	assert.Empty(t, b.Diagnostics)
}

func TestBrokenLinesAreSkipped(t *testing.T) {
	input := "[TimingPoints]\n0,500,4,1,0,100,1,0\n100,500,4\n[HitObjects]\n1,1,1,0,0\n10,10,100,1,0\n"
	b, err := Parse(input)
	require.NoError(t, err)

	assert.Len(t, b.TimingPoints, 1)
	assert.Len(t, b.HitObjects, 1)
	require.Len(t, b.Diagnostics, 2)

	assert.Equal(t, 3, b.Diagnostics[0].Line)
	assert.Equal(t, SectionTimingPoints, b.Diagnostics[0].Section)
	assert.Equal(t, "100,500,4", b.Diagnostics[0].Text)
	assert.ErrorIs(t, b.Diagnostics[0], ErrMissingField)

	assert.Equal(t, 5, b.Diagnostics[1].Line)
	assert.ErrorIs(t, b.Diagnostics[1], ErrUnknownObjectType)
}

func TestFailFast(t *testing.T) {
	input := "[TimingPoints]\n0,500,4,1,0,100,1,0\n100,500,4\n"
	b, err := Parse(input, WithFailFast())
	require.Error(t, err)
	assert.Nil(t, b)

	var le *LineError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, 3, le.Line)
	assert.ErrorIs(t, err, ErrMissingField)
	assert.Contains(t, err.Error(), "line 3 [TimingPoints]")
}

func TestLenientNumbersBecomeNaN(t *testing.T) {
	b, err := Parse("[Difficulty]\nHPDrainRate:abc\nCircleSize:4.5x\n")
	require.NoError(t, err)
	assert.Empty(t, b.Diagnostics)
	assert.True(t, math.IsNaN(b.Difficulty.HPDrainRate))
	assert.Equal(t, 4.5, b.Difficulty.CircleSize)
}

func TestStrictNumbers(t *testing.T) {
	b, err := Parse("[Difficulty]\nHPDrainRate:abc\nCircleSize:4\n", WithStrictNumbers())
	require.NoError(t, err)
	require.Len(t, b.Diagnostics, 1)
	assert.ErrorIs(t, b.Diagnostics[0], ErrMalformedNumber)
	assert.Equal(t, 4.0, b.Difficulty.CircleSize)
}

func TestDecodeFile(t *testing.T) {
	_, err := DecodeFile(t.TempDir() + "/missing.osu")
	require.Error(t, err)

	b, err := Decode(strings.NewReader(sampleMap))
	require.NoError(t, err)
	assert.Len(t, b.HitObjects, 4)
}
