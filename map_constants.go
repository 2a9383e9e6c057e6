package main

import "osubeatmap/dotosu"

// MapConstants are the standard-mode values a renderer derives from the difficulty settings.
type MapConstants struct {
	CircleRadius Number `json:"circle_radius"`
	ApproachRate Number `json:"ar"`
	Preempt      Number `json:"preempt"`
	Window300    Number `json:"window_300"`
	Window100    Number `json:"window_100"`
	Window50     Number `json:"window_50"`
}

func GetBeatmapConstants(beatmap *dotosu.Beatmap) MapConstants {
	cs := beatmap.Difficulty.CircleSize
	od := beatmap.Difficulty.OverallDifficulty
	ar := beatmap.Difficulty.ApproachRate

	preempt := ApproachRateToPreempt(ar)

	return MapConstants{
		CircleRadius: Number(54.4 - 4.48*cs),
		ApproachRate: Number(PreemptToAR(preempt)),
		Preempt:      Number(preempt),
		Window300:    Number(80 - 6*od), //+- this
		Window100:    Number(140 - 8*od),
		Window50:     Number(200 - 10*od),
	}
}

func ApproachRateToPreempt(ar float64) float64 {
	if ar < 5 {
		return 1200 + 120*(5-ar)
	} else if ar == 5 {
		return 1200
	} else {
		return 1200 - 150*(ar-5)
	}
}

func PreemptToAR(preempt float64) float64 {
	if preempt > 1200 {
		return 5 - (preempt-1200)/120
	} else if preempt == 1200 {
		return 5
	} else {
		return 5 + (1200-preempt)/150
	}
}
