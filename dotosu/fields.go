package dotosu

import "strings"

func splitKeyVal(line string) (key, val string) {
	i := strings.Index(line, ":")
	if i < 0 {
		return strings.TrimSpace(line), ""
	}
	return strings.TrimSpace(line[:i]), strings.TrimSpace(line[i+1:])
}

func parseBoolInt(s string) bool { return strings.TrimSpace(s) == "1" }

// orDefault keeps def when v is empty.
func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func (d *decoder) unknownKey(key string) {
	d.logger.Trace().Int("line", d.line).Stringer("section", d.section).Str("key", key).Msg("ignoring key")
}

// setInt stores the integer form of v in dst unless strict mode rejects it.
func (d *decoder) setInt(dst *int, k, v string) error {
	n, err := d.integer(k, v)
	if err != nil {
		return err
	}
	*dst = n
	return nil
}

// parseGeneral fills [General]. Zero or malformed numbers fall back to 0.
func (d *decoder) parseGeneral(k, v string) error {
	g := &d.b.General
	switch k {
	case "AudioFilename":
		g.AudioFilename = v
	case "AudioLeadIn":
		return d.setInt(&g.AudioLeadIn, k, v)
	case "PreviewTime":
		return d.setInt(&g.PreviewTime, k, v)
	case "Countdown":
		n, err := d.integer(k, v)
		if err != nil {
			return err
		}
		g.Countdown = CountdownSpeed(n)
	case "SampleSet":
		g.SampleSet = orDefault(v, "Normal")
	case "StackLeniency":
		f, err := d.decimal(k, v)
		if err != nil {
			return err
		}
		g.StackLeniency = orZero(f)
	case "Mode":
		n, err := d.integer(k, v)
		if err != nil {
			return err
		}
		g.Mode = GameMode(n)
	case "LetterboxInBreaks":
		g.LetterboxInBreaks = parseBoolInt(v)
	case "StoryFireInFront":
		g.StoryFireInFront = parseBoolInt(v)
	case "SkinPreference":
		g.SkinPreference = orDefault(v, "Default")
	case "EpilepsyWarning":
		g.EpilepsyWarning = parseBoolInt(v)
	case "CountdownOffset":
		return d.setInt(&g.CountdownOffset, k, v)
	case "WidescreenStoryboard":
		if d.legacyWidescreen {
			g.Mode = ModeStandard
			if parseBoolInt(v) {
				g.Mode = ModeTaiko
			}
		} else {
			g.WidescreenStoryboard = parseBoolInt(v)
		}
	case "SpecialStyle":
		g.SpecialStyle = parseBoolInt(v)
	case "UseSkinSprites":
		g.UseSkinSprites = parseBoolInt(v)
	default:
		d.unknownKey(k)
	}
	return nil
}

func (d *decoder) parseMetadata(k, v string) error {
	m := &d.b.Metadata
	switch k {
	case "Title":
		m.Title = v
	case "TitleUnicode":
		m.TitleUnicode = v
	case "Artist":
		m.Artist = v
	case "ArtistUnicode":
		m.ArtistUnicode = v
	case "Creator":
		m.Creator = v
	case "Version":
		m.Version = v
	case "Source":
		m.Source = v
	case "Tags":
		m.Tags = strings.Fields(v)
	case "BeatmapID":
		return d.setInt(&m.BeatmapID, k, v)
	case "BeatmapSetID":
		return d.setInt(&m.BeatmapSetID, k, v)
	default:
		d.unknownKey(k)
	}
	return nil
}

// parseDifficulty fills [Difficulty]. Malformed values stay NaN.
func (d *decoder) parseDifficulty(k, v string) error {
	diff := &d.b.Difficulty
	var dst *float64
	switch k {
	case "HPDrainRate":
		dst = &diff.HPDrainRate
	case "CircleSize":
		dst = &diff.CircleSize
	case "OverallDifficulty":
		dst = &diff.OverallDifficulty
	case "ApproachRate":
		dst = &diff.ApproachRate
	case "SliderMultiplier":
		dst = &diff.SliderMultiplier
	case "SliderTickRate":
		dst = &diff.SliderTickRate
	default:
		d.unknownKey(k)
		return nil
	}
	f, err := d.decimal(k, v)
	if err != nil {
		return err
	}
	*dst = f
	return nil
}

// parseEvent only recognises the background line: 0,0,"file",0,0.
func (d *decoder) parseEvent(line string) {
	if !strings.HasPrefix(line, "0,0") || !strings.HasSuffix(line, ",0,0") {
		return
	}
	parts := strings.Split(line, ",")
	d.b.General.Background = strings.Trim(parts[2], `"`)
}
