// Package duration converts between "HH:MM:SS" strings and total seconds.
//
// Parsing is lenient: the first "<digits>:<2 digits>:<2 digits>" match is
// used and components are not range checked, so "99:99:99" reads as
// 99h 99m 99s. Text without a match reads as zero.
package duration

import (
	"fmt"
	"math"
	"regexp"
	"strconv"

	"github.com/roach88/weekreview/internal/value"
)

var pattern = regexp.MustCompile(`(\d+):(\d\d):(\d\d)`)

// ToSeconds parses the first duration found in text.
// Returns 0 for empty or non-matching text.
func ToSeconds(text string) float64 {
	if text == "" {
		return 0
	}
	m := pattern.FindStringSubmatch(text)
	if m == nil {
		return 0
	}
	hours, _ := strconv.ParseFloat(m[1], 64)
	minutes, _ := strconv.Atoi(m[2])
	seconds, _ := strconv.Atoi(m[3])
	return hours*3600 + float64(minutes*60+seconds)
}

// FromSeconds formats total seconds as HH:MM:SS. Each component is padded to
// two digits; hours are never truncated. Fractional seconds are floored.
// Negative or non-finite input is outside the contract and yields "00:00:00".
func FromSeconds(total float64) string {
	if math.IsNaN(total) || math.IsInf(total, 0) || total < 0 {
		return "00:00:00"
	}
	hours := math.Floor(total / 3600)
	rest := total - hours*3600
	minutes := math.Floor(rest / 60)
	seconds := math.Floor(rest - minutes*60)
	return fmt.Sprintf("%02.0f:%02.0f:%02.0f", hours, minutes, seconds)
}

// Matches reports whether text contains a duration.
func Matches(text string) bool {
	return pattern.MatchString(text)
}

// IsDuration reports whether a cell is a string holding a duration.
func IsDuration(v value.Value) bool {
	s, ok := v.(value.String)
	return ok && Matches(string(s))
}

// CellSeconds reads a cell as a duration in seconds.
// Anything other than a string reads as zero.
func CellSeconds(v value.Value) float64 {
	s, ok := v.(value.String)
	if !ok {
		return 0
	}
	return ToSeconds(string(s))
}
