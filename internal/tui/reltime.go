package tui

import (
	"fmt"
	"time"
)

// formatRelativeTime renders a comment timestamp relative to now:
//   - under a minute (or in the future): "Just now"
//   - under an hour: "5m ago"
//   - under a day: "3h ago"
//   - under a week: "2d ago"
//   - otherwise the local calendar date, e.g. "Aug 1, 2024"
func formatRelativeTime(ts, now time.Time) string {
	if ts.IsZero() {
		return ""
	}
	mins := int(now.Sub(ts) / time.Minute)
	switch {
	case mins < 1:
		return "Just now"
	case mins < 60:
		return fmt.Sprintf("%dm ago", mins)
	case mins < 24*60:
		return fmt.Sprintf("%dh ago", mins/60)
	case mins < 7*24*60:
		return fmt.Sprintf("%dd ago", mins/(24*60))
	default:
		return ts.Local().Format("Jan 2, 2006")
	}
}
