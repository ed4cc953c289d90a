package route

import (
	"fmt"
	"strings"
)

// FormatDuration renders a non-negative number of seconds as "1h 23m" style
// text. Whole minutes are floored; a zero remainder is bumped to one so the
// output never reads "0m" (a 3600s trip shows "1h 1m", a 10s trip "1m").
func FormatDuration(seconds int) string {
	hours := seconds / 3600
	minutes := seconds/60 - hours*60

	var b strings.Builder
	if hours > 0 {
		fmt.Fprintf(&b, "%dh ", hours)
	}
	if minutes == 0 {
		minutes = 1
	}
	fmt.Fprintf(&b, "%dm", minutes)

	return b.String()
}
