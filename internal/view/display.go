package view

import (
	"strings"

	"shukuma/webapp/internal/domain"
)

type MoodInfo struct {
	Mood  domain.Mood `json:"mood"`
	Label string      `json:"label"`
	Emoji string      `json:"emoji"`
}

var moods = []MoodInfo{
	{domain.MoodGreat, "Great", "😄"},
	{domain.MoodGood, "Good", "🙂"},
	{domain.MoodOkay, "Okay", "😐"},
	{domain.MoodBad, "Bad", "😔"},
	{domain.MoodTerrible, "Terrible", "😢"},
}

// Moods lists the journal moods in picker order.
func Moods() []MoodInfo {
	return append([]MoodInfo(nil), moods...)
}

// LookupMood returns false for an empty or unknown mood.
func LookupMood(m domain.Mood) (MoodInfo, bool) {
	for _, info := range moods {
		if info.Mood == m {
			return info, true
		}
	}
	return MoodInfo{}, false
}

var trackIcons = []struct {
	keywords []string
	icon     string
}{
	{[]string{"bird"}, "fa-dove"},
	{[]string{"ocean", "wave"}, "fa-water"},
	{[]string{"rain"}, "fa-cloud-rain"},
	{[]string{"thunder", "storm"}, "fa-cloud-bolt"},
	{[]string{"forest", "river"}, "fa-tree"},
	{[]string{"wind"}, "fa-wind"},
	{[]string{"fire"}, "fa-fire"},
	{[]string{"night", "cricket"}, "fa-moon"},
}

// TrackIcon picks a white-noise icon from keywords in the track name.
func TrackIcon(name string) string {
	lower := strings.ToLower(name)
	for _, t := range trackIcons {
		for _, k := range t.keywords {
			if strings.Contains(lower, k) {
				return t.icon
			}
		}
	}
	return "fa-volume-high"
}
