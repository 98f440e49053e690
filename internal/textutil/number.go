package textutil

import (
	"regexp"
	"strconv"
)

var scoreNumber = regexp.MustCompile(`\b\d{1,3}(?:\.\d+)?\b`)

// FirstNumber returns the first standalone number of at most three integer
// digits in s, such as "85" or "72.5".
func FirstNumber(s string) (float64, bool) {
	m := scoreNumber.FindString(s)
	if m == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
