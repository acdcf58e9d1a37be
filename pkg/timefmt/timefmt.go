package timefmt

import "fmt"

// Format renders a duration in seconds as a human-readable string with
// appropriate units, keeping the raw seconds for anything over a minute.
func Format(seconds float64) string {
	switch {
	case seconds < 60:
		return fmt.Sprintf("%.2f seconds", seconds)
	case seconds < 3600:
		return fmt.Sprintf("%.2f minutes (%.2f seconds)", seconds/60, seconds)
	case seconds < 86400:
		return fmt.Sprintf("%.2f hours (%.2f seconds)", seconds/3600, seconds)
	default:
		return fmt.Sprintf("%.2f days (%.2f seconds)", seconds/86400, seconds)
	}
}
