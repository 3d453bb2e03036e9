//    BillTopicServer
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package sweep

import (
	"context"
	"fmt"
	"testing"

	"billtopics/internal/tm"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
)

func testrunner() *Runner {
	docs := []string{
		"farm crop livestock subsidy farm crop",
		"crop farm subsidy livestock harvest",
		"farm livestock grazing crop subsidy",
		"hospital medicare insurance patient hospital",
		"insurance medicare patient hospital coverage",
		"medicare hospital patient insurance premium",
		"tax revenue budget deficit spending tax",
		"budget tax deficit revenue appropriation",
		"spending revenue tax budget deficit",
		"tariff trade import export tariff duty",
	}

	cfg := tm.DefaultLDAConfig()
	cfg.Iterations = 30
	cfg.BurnInPasses = 5
	cfg.XformPasses = 10

	return &Runner{
		Docs:     docs,
		Grid:     []int{2, 3},
		Folds:    2,
		Strategy: STRATEGYBLOCK,
		Workers:  2,
		Cfg:      cfg,
	}
}

func TestRunnerRun(t *testing.T) {
	r := testrunner()

	var calls int
	var lasttotal int
	r.Progress = func(remain int, total int) {
		calls++
		lasttotal = total
	}

	tab, err := r.Run(context.Background())
	assert.NoError(t, err)

	// |grid| x folds rows, each pair exactly once
	assert.Len(t, tab.Rows, 4)
	assert.Equal(t, []int{2, 3}, tab.Ks())
	assert.Equal(t, []int{0, 1}, tab.Folds())
	assert.Equal(t, 4, calls)
	assert.Equal(t, 4, lasttotal)

	seen := make(map[[2]int]bool)
	for _, row := range tab.Rows {
		assert.Greater(t, row.Perplexity, 0.0)
		key := [2]int{row.K, row.Fold}
		assert.False(t, seen[key])
		seen[key] = true
	}
	assert.Len(t, seen, 4)
}

func TestRunnerIsDeterministic(t *testing.T) {
	// the fold matrices are densified into one canonical layout and every
	// (k, fold) fit reseeds from the same config, so neither the vectoriser's
	// map ordering nor the schedule of the pool can change the scores
	a, err := testrunner().Run(context.Background())
	assert.NoError(t, err)
	b, err := testrunner().Run(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, a.Sorted(), b.Sorted())
}

func TestRunnerFailFast(t *testing.T) {
	r := testrunner()
	r.Score = func(train mat.Matrix, test mat.Matrix, k int, cfg tm.LDAConfig) (float64, error) {
		if k == 3 {
			return 0, fmt.Errorf("synthetic scoring failure")
		}
		return 42.0, nil
	}

	// no partial table: the first bad pair sinks the whole sweep
	tab, err := r.Run(context.Background())
	assert.Error(t, err)
	assert.Nil(t, tab)
	assert.Contains(t, err.Error(), "k=3")
	assert.Contains(t, err.Error(), "synthetic scoring failure")
}

func TestRunnerScoreOverride(t *testing.T) {
	r := testrunner()
	r.Score = func(train mat.Matrix, test mat.Matrix, k int, cfg tm.LDAConfig) (float64, error) {
		return float64(k), nil
	}

	tab, err := r.Run(context.Background())
	assert.NoError(t, err)
	assert.Len(t, tab.Rows, 4)
	for _, row := range tab.Rows {
		assert.Equal(t, float64(row.K), row.Perplexity)
	}
}

func TestRunnerRejectsEmptyGrid(t *testing.T) {
	r := testrunner()
	r.Grid = nil
	_, err := r.Run(context.Background())
	assert.Error(t, err)
}

func TestRunnerRejectsBadStrategy(t *testing.T) {
	r := testrunner()
	r.Strategy = "bogus"
	_, err := r.Run(context.Background())
	assert.Error(t, err)
}

func TestRunnerRejectsTooFewDocs(t *testing.T) {
	r := testrunner()
	r.Docs = r.Docs[0:1]
	_, err := r.Run(context.Background())
	assert.Error(t, err)
}
