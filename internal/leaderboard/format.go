package leaderboard

import "fmt"

// FormatLapTime renders integer milliseconds as "M:SS.mmm" for display.
// Non-positive times render as "-".
func FormatLapTime(ms int) string {
	if ms <= 0 {
		return "-"
	}
	minutes := ms / 60000
	seconds := (ms % 60000) / 1000
	millis := ms % 1000
	return fmt.Sprintf("%d:%02d.%03d", minutes, seconds, millis)
}
