//    BillTopicServer
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package tune

import "math"

//
// UMASS COHERENCE
//

// a topic whose top terms co-occur in actual documents scores near zero; a
// topic made of terms that never meet scores deeply negative, which is exactly
// how a mechanically seeded "topic" gives itself away

// UMassCoherence - per-topic coherence of the given top terms over the bags
func UMassCoherence(toptermsbytopic [][]string, bb [][]string) []float64 {
	docsets := make([]map[string]bool, len(bb))
	for d := 0; d < len(bb); d++ {
		docsets[d] = make(map[string]bool, len(bb[d]))
		for _, w := range bb[d] {
			docsets[d][w] = true
		}
	}

	docfreq := func(w string) int {
		n := 0
		for d := 0; d < len(docsets); d++ {
			if docsets[d][w] {
				n++
			}
		}
		return n
	}

	cofreq := func(a string, b string) int {
		n := 0
		for d := 0; d < len(docsets); d++ {
			if docsets[d][a] && docsets[d][b] {
				n++
			}
		}
		return n
	}

	scores := make([]float64, len(toptermsbytopic))
	for t, terms := range toptermsbytopic {
		score := 0.0
		for m := 1; m < len(terms); m++ {
			for l := 0; l < m; l++ {
				dl := docfreq(terms[l])
				if dl == 0 {
					continue
				}
				score += math.Log((float64(cofreq(terms[m], terms[l])) + 1) / float64(dl))
			}
		}
		scores[t] = score
	}
	return scores
}

// MeanCoherence - one scalar for a whole model
func MeanCoherence(toptermsbytopic [][]string, bb [][]string) float64 {
	scores := UMassCoherence(toptermsbytopic, bb)
	if len(scores) == 0 {
		return 0
	}
	sum := 0.0
	for _, s := range scores {
		sum += s
	}
	return sum / float64(len(scores))
}
