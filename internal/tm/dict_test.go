//    BillTopicServer
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package tm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const GOODYAML = `
topics:
  - label: agriculture
    terms: [farm*, crop, livestock]
  - label: healthcare
    terms: [hospital*, medicare, insurance]
`

func TestParseSeedDict(t *testing.T) {
	sd, err := ParseSeedDict([]byte(GOODYAML))
	assert.NoError(t, err)
	assert.Equal(t, 2, sd.K())
	assert.Equal(t, []string{"agriculture", "healthcare"}, sd.Labels())
	assert.Equal(t, []string{"farm*", "crop", "livestock", "hospital*", "medicare", "insurance"}, sd.FlatTerms())
}

func TestParseSeedDictRejectsGarbage(t *testing.T) {
	_, err := ParseSeedDict([]byte("topics: [not: {valid"))
	assert.Error(t, err)
}

func TestValidateRejectsNoTopics(t *testing.T) {
	_, err := ParseSeedDict([]byte("topics: []"))
	assert.Error(t, err)
}

func TestValidateRejectsEmptyTermList(t *testing.T) {
	// a topic with zero seeds has to be refused before any fitting happens
	bad := `
topics:
  - label: agriculture
    terms: [farm]
  - label: empty
    terms: []
`
	_, err := ParseSeedDict([]byte(bad))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "empty")
}

func TestValidateRejectsBlankLabel(t *testing.T) {
	bad := `
topics:
  - label: "  "
    terms: [farm]
`
	_, err := ParseSeedDict([]byte(bad))
	assert.Error(t, err)
}

func TestValidateRejectsCrossTopicDuplicate(t *testing.T) {
	bad := `
topics:
  - label: agriculture
    terms: [farm, subsidy]
  - label: finance
    terms: [subsidy, bank]
`
	_, err := ParseSeedDict([]byte(bad))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "subsidy")
}

func TestMatchVocabulary(t *testing.T) {
	sd, err := ParseSeedDict([]byte(GOODYAML))
	assert.NoError(t, err)

	vocab := []string{"crop", "farmer", "farming", "hospital", "hospitals", "insurance", "tax"}
	mm := sd.MatchVocabulary(vocab)

	// "farm*" catches farmer and farming; "crop" matches exactly; "livestock" is absent
	assert.Equal(t, []int{0, 1, 2}, mm[0])
	// "hospital*" catches both forms; "medicare" is absent
	assert.Equal(t, []int{3, 4, 5}, mm[1])
}

func TestDegenerate(t *testing.T) {
	vocab := []string{"delta", "charlie", "bravo", "alpha", "echo", "foxtrot"}

	// the first-N alphabetical slice is the lazy "dictionary"
	lazy := &SeedDict{Topics: []SeedTopic{
		{Label: "one", Terms: []string{"alpha", "bravo"}},
		{Label: "two", Terms: []string{"charlie", "delta"}},
	}}
	assert.True(t, lazy.Degenerate(vocab))

	// a curated pick from deeper in the vocabulary is fine
	curated := &SeedDict{Topics: []SeedTopic{
		{Label: "one", Terms: []string{"alpha", "echo"}},
		{Label: "two", Terms: []string{"charlie", "foxtrot"}},
	}}
	assert.False(t, curated.Degenerate(vocab))

	// stems imply a curating hand even when the literals line up
	stemmed := &SeedDict{Topics: []SeedTopic{
		{Label: "one", Terms: []string{"alpha", "brav*"}},
		{Label: "two", Terms: []string{"charlie", "delta"}},
	}}
	assert.False(t, stemmed.Degenerate(vocab))
}

func TestTruncateLexicon(t *testing.T) {
	lexicon := []string{"alpha", "bravo", "charlie", "delta", "echo", "foxtrot"}

	sd, err := TruncateLexicon(lexicon, 2, 3)
	assert.NoError(t, err)
	assert.Equal(t, 2, sd.K())
	assert.Equal(t, []string{"lexicon-01", "lexicon-02"}, sd.Labels())
	assert.Equal(t, []string{"alpha", "bravo", "charlie"}, sd.Topics[0].Terms)
	assert.Equal(t, []string{"delta", "echo", "foxtrot"}, sd.Topics[1].Terms)

	// and the result is exactly the thing Degenerate() exists to catch
	assert.True(t, sd.Degenerate(lexicon))

	_, err = TruncateLexicon(lexicon, 3, 3)
	assert.Error(t, err)
}
