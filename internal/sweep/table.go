//    BillTopicServer
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package sweep

import "sort"

//
// THE RESULT TABLE
//

// Row - one (k, fold) held-out score
type Row struct {
	K          int
	Fold       int
	Perplexity float64
}

// Table - the sweep's output; rows carry their own (k, fold), so insertion
// order means nothing and aggregation groups rather than slices
type Table struct {
	Rows []Row
}

func (t *Table) Add(r Row) {
	t.Rows = append(t.Rows, r)
}

// Sorted - the rows ordered by k then fold, for printing and persistence
func (t *Table) Sorted() []Row {
	rr := append([]Row(nil), t.Rows...)
	sort.Slice(rr, func(i, j int) bool {
		if rr[i].K != rr[j].K {
			return rr[i].K < rr[j].K
		}
		return rr[i].Fold < rr[j].Fold
	})
	return rr
}

// Ks - the distinct candidate topic counts present, ascending
func (t *Table) Ks() []int {
	seen := make(map[int]bool)
	var kk []int
	for _, r := range t.Rows {
		if !seen[r.K] {
			seen[r.K] = true
			kk = append(kk, r.K)
		}
	}
	sort.Ints(kk)
	return kk
}

// Folds - the distinct fold ids present, ascending
func (t *Table) Folds() []int {
	seen := make(map[int]bool)
	var ff []int
	for _, r := range t.Rows {
		if !seen[r.Fold] {
			seen[r.Fold] = true
			ff = append(ff, r.Fold)
		}
	}
	sort.Ints(ff)
	return ff
}

// MeanByK - mean held-out perplexity per candidate k across its folds
func (t *Table) MeanByK() map[int]float64 {
	sums := make(map[int]float64)
	counts := make(map[int]int)
	for _, r := range t.Rows {
		sums[r.K] += r.Perplexity
		counts[r.K]++
	}

	means := make(map[int]float64, len(sums))
	for k, s := range sums {
		means[k] = s / float64(counts[k])
	}
	return means
}

// SeriesByFold - per fold, the perplexities ordered by k; for the per-fold chart lines
func (t *Table) SeriesByFold() map[int][]float64 {
	kk := t.Ks()
	kpos := make(map[int]int, len(kk))
	for i, k := range kk {
		kpos[k] = i
	}

	out := make(map[int][]float64)
	for _, f := range t.Folds() {
		out[f] = make([]float64, len(kk))
	}
	for _, r := range t.Rows {
		out[r.Fold][kpos[r.K]] = r.Perplexity
	}
	return out
}

// BestK - the candidate with the lowest mean held-out perplexity; a tie keeps the smaller k
func (t *Table) BestK() int {
	means := t.MeanByK()
	best := 0
	for _, k := range t.Ks() {
		if best == 0 || means[k] < means[best] {
			best = k
		}
	}
	return best
}
