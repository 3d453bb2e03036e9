//    BillTopicServer
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package tune

import (
	"testing"

	"billtopics/internal/tm"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
)

// hand-built posteriors: two cleanly separated topics over four terms
func separated() *tm.Fitted {
	return &tm.Fitted{
		K:     2,
		Vocab: []string{"farm", "crop", "hospital", "medicare"},
		TopicTerms: mat.NewDense(2, 4, []float64{
			0.5, 0.5, 0.0, 0.0,
			0.0, 0.0, 0.5, 0.5,
		}),
		DocTopics: mat.NewDense(4, 2, []float64{
			0.9, 0.1,
			0.8, 0.2,
			0.1, 0.9,
			0.2, 0.8,
		}),
	}
}

// the same topic twice
func collapsed() *tm.Fitted {
	return &tm.Fitted{
		K:     2,
		Vocab: []string{"farm", "crop", "hospital", "medicare"},
		TopicTerms: mat.NewDense(2, 4, []float64{
			0.25, 0.25, 0.25, 0.25,
			0.25, 0.25, 0.25, 0.25,
		}),
		DocTopics: mat.NewDense(4, 2, []float64{
			0.5, 0.5,
			0.5, 0.5,
			0.5, 0.5,
			0.5, 0.5,
		}),
	}
}

func TestArun2010(t *testing.T) {
	doclens := []int{6, 5, 5, 5}

	a, err := Arun2010(separated(), doclens)
	assert.NoError(t, err)
	assert.GreaterOrEqual(t, a, 0.0)

	// a length mismatch is a caller bug and must not be papered over
	_, err = Arun2010(separated(), []int{6, 5})
	assert.Error(t, err)
}

func TestCaoJuan2009(t *testing.T) {
	// orthogonal topic rows: zero mean cosine; identical rows: one
	assert.InDelta(t, 0.0, CaoJuan2009(separated()), 1e-9)
	assert.InDelta(t, 1.0, CaoJuan2009(collapsed()), 1e-9)
}

func TestDeveaud2014(t *testing.T) {
	// disjoint distributions maximize JS divergence; identical ones zero it
	assert.Greater(t, Deveaud2014(separated()), Deveaud2014(collapsed()))
	assert.InDelta(t, 0.0, Deveaud2014(collapsed()), 1e-9)
}

func TestGriffiths2004(t *testing.T) {
	bb := [][]string{
		{"farm", "crop"},
		{"farm", "crop"},
		{"hospital", "medicare"},
		{"hospital", "medicare"},
	}

	// every token has positive probability, so the log-likelihood is finite
	// and negative; the separated model explains this corpus better
	sep := Griffiths2004(separated(), bb)
	col := Griffiths2004(collapsed(), bb)
	assert.Less(t, sep, 0.0)
	assert.Greater(t, sep, col)

	// unknown terms are skipped, not scored
	withnoise := append(bb, []string{"zzz_unknown"})
	assert.Equal(t, sep, Griffiths2004(separated(), withnoise))
}

func TestHeuristicCurves(t *testing.T) {
	docs := []string{
		"farm crop livestock subsidy farm crop",
		"crop farm subsidy livestock harvest",
		"farm livestock grazing crop subsidy",
		"hospital medicare insurance patient hospital",
		"insurance medicare patient hospital coverage",
		"medicare hospital patient insurance premium",
	}
	bb := make([][]string, len(docs))
	for i := range docs {
		bb[i] = []string{"farm", "crop"}
	}

	cfg := tm.DefaultLDAConfig()
	cfg.Iterations = 30
	cfg.BurnInPasses = 5
	cfg.XformPasses = 10

	curves, err := HeuristicCurves(docs, bb, nil, []int{2, 3}, cfg)
	assert.NoError(t, err)
	assert.Len(t, curves, 4)

	names := make(map[string]string)
	for _, c := range curves {
		assert.Equal(t, []int{2, 3}, c.K)
		assert.Len(t, c.Value, 2)
		names[c.Name] = c.Direction
	}
	assert.Equal(t, MINIMIZE, names["Arun2010"])
	assert.Equal(t, MINIMIZE, names["CaoJuan2009"])
	assert.Equal(t, MAXIMIZE, names["Deveaud2014"])
	assert.Equal(t, MAXIMIZE, names["Griffiths2004"])
}
