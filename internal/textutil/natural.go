package textutil

import (
	"regexp"
	"strconv"
)

var digitRun = regexp.MustCompile(`\d+`)

// NaturalLess orders strings so embedded integers compare numerically:
// "2.png" sorts before "10.png".
func NaturalLess(a, b string) bool {
	aa := digitRun.FindAllStringIndex(a, -1)
	bb := digitRun.FindAllStringIndex(b, -1)
	pa, pb := 0, 0
	for i := 0; i < len(aa) && i < len(bb); i++ {
		if prefixA, prefixB := a[pa:aa[i][0]], b[pb:bb[i][0]]; prefixA != prefixB {
			return prefixA < prefixB
		}
		na, errA := strconv.Atoi(a[aa[i][0]:aa[i][1]])
		nb, errB := strconv.Atoi(b[bb[i][0]:bb[i][1]])
		if errA == nil && errB == nil && na != nb {
			return na < nb
		}
		pa, pb = aa[i][1], bb[i][1]
	}
	return a < b
}
