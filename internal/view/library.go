package view

import (
	"shukuma/webapp/internal/model"
)

type TrackView struct {
	Track    model.Track `json:"track"`
	Icon     string      `json:"icon"`
	Duration string      `json:"duration,omitempty"`
}

func BuildTracks(tracks []model.Track) []TrackView {
	out := make([]TrackView, 0, len(tracks))
	for _, t := range tracks {
		v := TrackView{Track: t, Icon: TrackIcon(t.Name)}
		if t.Duration > 0 {
			v.Duration = TrackDuration(t.Duration)
		}
		out = append(out, v)
	}
	return out
}

type JournalEntryView struct {
	Entry model.JournalEntry `json:"entry"`
	Mood  *MoodInfo          `json:"mood,omitempty"`
	Date  string             `json:"date"`
}

// JournalView is one page of the journal plus the mood picker options.
type JournalView struct {
	Entries    []JournalEntryView `json:"entries"`
	Pagination model.Pagination   `json:"pagination"`
	Moods      []MoodInfo         `json:"moods"`
}

func BuildJournal(page model.JournalPage) JournalView {
	v := JournalView{
		Entries:    make([]JournalEntryView, 0, len(page.Journals)),
		Pagination: page.Pagination,
		Moods:      Moods(),
	}
	for _, e := range page.Journals {
		ev := JournalEntryView{Entry: e, Date: e.Date.Format("Monday, Jan 2, 2006")}
		if info, ok := LookupMood(e.Mood); ok {
			ev.Mood = &info
		}
		v.Entries = append(v.Entries, ev)
	}
	return v
}
