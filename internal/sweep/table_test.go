//    BillTopicServer
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package sweep

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

// a full 130-document, 5-fold sweep over k in {10, 20, 30} yields 15 rows; the
// table has to aggregate them correctly no matter what order the pool finished in
func fifteenrows() []Row {
	var rr []Row
	for _, k := range []int{10, 20, 30} {
		for f := 0; f < 5; f++ {
			// k=20 is made the cheapest candidate
			p := float64(100 + 10*f)
			if k == 20 {
				p -= 50
			}
			rr = append(rr, Row{K: k, Fold: f, Perplexity: p})
		}
	}
	return rr
}

func TestTableAggregation(t *testing.T) {
	tab := &Table{}
	for _, r := range fifteenrows() {
		tab.Add(r)
	}

	assert.Len(t, tab.Rows, 15)
	assert.Equal(t, []int{10, 20, 30}, tab.Ks())
	assert.Equal(t, []int{0, 1, 2, 3, 4}, tab.Folds())

	means := tab.MeanByK()
	assert.Len(t, means, 3)
	assert.InDelta(t, 120.0, means[10], 1e-9)
	assert.InDelta(t, 70.0, means[20], 1e-9)
	assert.InDelta(t, 120.0, means[30], 1e-9)

	assert.Equal(t, 20, tab.BestK())
}

func TestTableOrderInvariance(t *testing.T) {
	rows := fifteenrows()

	sorted := &Table{}
	for _, r := range rows {
		sorted.Add(r)
	}

	shuffled := &Table{}
	rnd := rand.New(rand.NewSource(1))
	for _, i := range rnd.Perm(len(rows)) {
		shuffled.Add(rows[i])
	}

	assert.Equal(t, sorted.MeanByK(), shuffled.MeanByK())
	assert.Equal(t, sorted.BestK(), shuffled.BestK())
	assert.Equal(t, sorted.Sorted(), shuffled.Sorted())
	assert.Equal(t, sorted.SeriesByFold(), shuffled.SeriesByFold())
}

func TestTableSorted(t *testing.T) {
	tab := &Table{}
	tab.Add(Row{K: 30, Fold: 1, Perplexity: 3})
	tab.Add(Row{K: 10, Fold: 1, Perplexity: 2})
	tab.Add(Row{K: 10, Fold: 0, Perplexity: 1})

	rr := tab.Sorted()
	assert.Equal(t, Row{K: 10, Fold: 0, Perplexity: 1}, rr[0])
	assert.Equal(t, Row{K: 10, Fold: 1, Perplexity: 2}, rr[1])
	assert.Equal(t, Row{K: 30, Fold: 1, Perplexity: 3}, rr[2])
}

func TestTableSeriesByFold(t *testing.T) {
	tab := &Table{}
	for _, r := range fifteenrows() {
		tab.Add(r)
	}

	series := tab.SeriesByFold()
	assert.Len(t, series, 5)
	// fold 2's line, ordered by k: 120, 70, 120
	assert.Equal(t, []float64{120, 70, 120}, series[2])
}

func TestBestKTieKeepsSmallerK(t *testing.T) {
	tab := &Table{}
	tab.Add(Row{K: 30, Fold: 0, Perplexity: 50})
	tab.Add(Row{K: 10, Fold: 0, Perplexity: 50})
	assert.Equal(t, 10, tab.BestK())
}
