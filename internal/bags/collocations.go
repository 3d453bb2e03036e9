//    BillTopicServer
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package bags

import (
	"sort"
	"strings"
)

//
// COLLOCATION COMPOUNDING
//

// frequent adjacent pairs become single "_"-joined terms so the matrix can
// carry "health_care" as one feature instead of two uninformative halves

const PAIRJOIN = "_"

// bigramCounts - adjacent-pair frequencies across all bags
func bigramCounts(bb [][]string) map[string]int {
	counts := make(map[string]int)
	for i := 0; i < len(bb); i++ {
		for j := 0; j+1 < len(bb[i]); j++ {
			counts[bb[i][j]+PAIRJOIN+bb[i][j+1]]++
		}
	}
	return counts
}

// FrequentPairs - the pairs at or above the threshold, most frequent first
func FrequentPairs(bb [][]string, minpaircount int) []string {
	counts := bigramCounts(bb)
	var pp []string
	for p, c := range counts {
		if c >= minpaircount {
			pp = append(pp, p)
		}
	}
	sort.Slice(pp, func(i, j int) bool {
		if counts[pp[i]] != counts[pp[j]] {
			return counts[pp[i]] > counts[pp[j]]
		}
		return pp[i] < pp[j]
	})
	return pp
}

// CompoundCollocations - rewrite each bag joining the frequent pairs; greedy
// left-to-right, a word joins at most one pair per pass
func CompoundCollocations(bb [][]string, minpaircount int) [][]string {
	pairs := ToStopMap(FrequentPairs(bb, minpaircount))
	if len(pairs) == 0 {
		return bb
	}

	out := make([][]string, len(bb))
	for i := 0; i < len(bb); i++ {
		var nw []string
		j := 0
		for j < len(bb[i]) {
			if j+1 < len(bb[i]) && pairs[bb[i][j]+PAIRJOIN+bb[i][j+1]] {
				nw = append(nw, bb[i][j]+PAIRJOIN+bb[i][j+1])
				j += 2
			} else {
				nw = append(nw, bb[i][j])
				j += 1
			}
		}
		out[i] = nw
	}
	return out
}

// IsCompound - was this term produced by CompoundCollocations()?
func IsCompound(term string) bool {
	return strings.Contains(term, PAIRJOIN)
}
