package view

import (
	"fmt"
	"time"
)

const day = 24 * time.Hour

// TimeRemaining is the countdown shown on an accepted challenge.
type TimeRemaining struct {
	Text    string `json:"text"`
	Expired bool   `json:"expired"`
	Urgent  bool   `json:"urgent"`
}

// FormatTimeRemaining must be called with a fresh now on every render.
func FormatTimeRemaining(deadline, now time.Time) TimeRemaining {
	diff := deadline.Sub(now)
	if diff <= 0 {
		return TimeRemaining{Text: "Expired", Expired: true, Urgent: true}
	}

	days := int(diff / day)
	hours := int(diff % day / time.Hour)
	minutes := int(diff % time.Hour / time.Minute)

	switch {
	case days > 0:
		return TimeRemaining{
			Text:   fmt.Sprintf("%dd %dh remaining", days, hours),
			Urgent: days <= 3,
		}
	case hours > 0:
		return TimeRemaining{Text: fmt.Sprintf("%dh %dm remaining", hours, minutes), Urgent: true}
	default:
		return TimeRemaining{Text: fmt.Sprintf("%dm remaining", minutes), Urgent: true}
	}
}

// RelativeDate renders a post or comment timestamp in the viewer's terms.
func RelativeDate(t, now time.Time) string {
	days := int(now.Sub(t) / day)
	switch {
	case days <= 0:
		return "Today"
	case days == 1:
		return "Yesterday"
	case days < 7:
		return fmt.Sprintf("%d days ago", days)
	default:
		return t.Format("Jan 2, 2006")
	}
}

// TrackDuration formats seconds as m:ss.
func TrackDuration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
