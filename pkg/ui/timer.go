package ui

import (
	"fmt"
	"math"
)

// FormatTimer renders seconds as MM:SS, rounding up to the next whole second.
// Minutes wrap at one hour.
func FormatTimer(seconds float64) string {
	total := int(math.Ceil(seconds))
	if total < 0 {
		total = 0
	}
	return fmt.Sprintf("%02d:%02d", (total/60)%60, total%60)
}
