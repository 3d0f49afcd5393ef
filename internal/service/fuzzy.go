package service

import (
	"math"

	"github.com/agnivade/levenshtein"
)

// partialRatio scores how well the shorter string matches its best aligned
// window of the longer one, 0..100. Equal strings and substrings score 100.
func partialRatio(a, b string) int {
	short, long := []rune(a), []rune(b)
	if len(short) > len(long) {
		short, long = long, short
	}
	if len(short) == 0 {
		return 0
	}

	best := 0
	needle := string(short)
	for i := 0; i+len(short) <= len(long); i++ {
		d := levenshtein.ComputeDistance(needle, string(long[i:i+len(short)]))
		score := int(math.Round(100 * float64(len(short)-d) / float64(len(short))))
		if score > best {
			best = score
			if best == 100 {
				break
			}
		}
	}
	return best
}
