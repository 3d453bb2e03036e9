//    BillTopicServer
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package sweep

import "fmt"

//
// FOLD ASSIGNMENT
//

// assignment is a pure function of (n, folds, strategy): the same inputs give
// the same folds on every run, so every (k, fold) score is reproducible

const (
	STRATEGYBLOCK      = "block"
	STRATEGYINTERLEAVE = "interleave"
)

// Assign - one fold id per document index
//
// "block" deals contiguous runs: docs 0..25 are fold 0, and so on. If the
// corpus is ordered (by session, by date...) the folds inherit that ordering,
// which can make held-out scores optimistic or pessimistic per fold;
// "interleave" deals round-robin and breaks the correlation.
func Assign(n int, folds int, strategy string) ([]int, error) {
	if folds < 2 {
		return nil, fmt.Errorf("cross-validation needs at least 2 folds; got %d", folds)
	}
	if n < folds {
		return nil, fmt.Errorf("%d documents cannot fill %d folds", n, folds)
	}

	ff := make([]int, n)
	switch strategy {
	case STRATEGYBLOCK:
		for i := 0; i < n; i++ {
			ff[i] = i * folds / n
		}
	case STRATEGYINTERLEAVE:
		for i := 0; i < n; i++ {
			ff[i] = i % folds
		}
	default:
		return nil, fmt.Errorf("unknown fold strategy '%s'", strategy)
	}
	return ff, nil
}

// Split - document indices outside the fold (train) and inside it (held-out);
// the two are disjoint and their union is every document
func Split(assign []int, fold int) ([]int, []int) {
	var train, test []int
	for i := 0; i < len(assign); i++ {
		if assign[i] == fold {
			test = append(test, i)
		} else {
			train = append(train, i)
		}
	}
	return train, test
}
