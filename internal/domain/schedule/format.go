package schedule

import "fmt"

// FormatOffset renders an offset in seconds east of UTC as "+09:00" /
// "-04:00" / "+05:45".
func FormatOffset(offsetSec int) string {
	sign := "+"
	if offsetSec < 0 {
		sign = "-"
		offsetSec = -offsetSec
	}
	return fmt.Sprintf("%s%02d:%02d", sign, offsetSec/3600, offsetSec%3600/60)
}
