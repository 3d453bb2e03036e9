//    BillTopicServer
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package tm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
)

func testbags() [][]string {
	return [][]string{
		{"farm", "crop", "livestock", "subsidy", "farm", "crop"},
		{"crop", "farm", "subsidy", "livestock", "harvest"},
		{"farm", "livestock", "grazing", "crop", "subsidy"},
		{"hospital", "medicare", "insurance", "patient", "hospital"},
		{"insurance", "medicare", "patient", "hospital", "coverage"},
		{"medicare", "hospital", "patient", "insurance", "premium"},
	}
}

func testdict() *SeedDict {
	return &SeedDict{Topics: []SeedTopic{
		{Label: "agriculture", Terms: []string{"farm", "crop", "livestock"}},
		{Label: "healthcare", Terms: []string{"hospital", "medicare", "insurance"}},
	}}
}

func TestBagVocabulary(t *testing.T) {
	vocab, index := BagVocabulary([][]string{{"b", "a"}, {"c", "a"}})
	assert.Equal(t, []string{"a", "b", "c"}, vocab)
	assert.Equal(t, 0, index["a"])
	assert.Equal(t, 2, index["c"])
}

func TestFitSeededRejectsBadInput(t *testing.T) {
	cfg := quickcfg()

	_, err := FitSeeded(testbags(), nil, cfg)
	assert.Error(t, err)

	_, err = FitSeeded(testbags(), &SeedDict{}, cfg)
	assert.Error(t, err)

	_, err = FitSeeded(nil, testdict(), cfg)
	assert.Error(t, err)

	// a topic whose seeds never occur in the corpus cannot be fit
	ghost := &SeedDict{Topics: []SeedTopic{
		{Label: "agriculture", Terms: []string{"farm"}},
		{Label: "ghosts", Terms: []string{"ectoplasm"}},
	}}
	_, err = FitSeeded(testbags(), ghost, cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "ghosts")
}

func TestFitSeededShapes(t *testing.T) {
	bb := testbags()
	f, err := FitSeeded(bb, testdict(), quickcfg())
	assert.NoError(t, err)
	assert.Equal(t, 2, f.K)

	kk, vs := f.TopicTerms.Dims()
	assert.Equal(t, 2, kk)
	assert.Equal(t, len(f.Vocab), vs)

	dd, _ := f.DocTopics.Dims()
	assert.Equal(t, len(bb), dd)

	// the posteriors are distributions
	for d := 0; d < dd; d++ {
		assert.InDelta(t, 1.0, mat.Sum(f.DocTopics.RowView(d)), 1e-9)
	}
	for topic := 0; topic < kk; topic++ {
		assert.InDelta(t, 1.0, mat.Sum(f.TopicTerms.RowView(topic)), 1e-9)
	}
}

func TestFitSeededDeterminism(t *testing.T) {
	cfg := quickcfg()

	a, err := FitSeeded(testbags(), testdict(), cfg)
	assert.NoError(t, err)
	b, err := FitSeeded(testbags(), testdict(), cfg)
	assert.NoError(t, err)

	assert.True(t, mat.EqualApprox(a.DocTopics, b.DocTopics, 1e-12))
	assert.True(t, mat.EqualApprox(a.TopicTerms, b.TopicTerms, 1e-12))
}

func TestFitSeededFollowsTheSeeds(t *testing.T) {
	// the corpus splits cleanly along the dictionary, so topic i should own
	// the documents built from topic i's seeds
	f, err := FitSeeded(testbags(), testdict(), quickcfg())
	assert.NoError(t, err)

	dd := f.DominantTopics()
	assert.Equal(t, []int{0, 0, 0, 1, 1, 1}, dd)
}
