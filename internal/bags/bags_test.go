//    BillTopicServer
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package bags

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClean(t *testing.T) {
	// markup, citations, section symbols, and numbers all have to go
	raw := `<p>SEC. 101.</p> Amounts under 42 U.S.C. § 1395 shall not exceed 500 dollars. See https://congress.gov/bill for details. [12]`
	clean := Clean(raw)

	assert.NotContains(t, clean, "<")
	assert.NotContains(t, clean, "§")
	assert.NotContains(t, clean, "http")
	assert.NotContains(t, clean, "500")
	assert.NotContains(t, clean, "[12]")
	assert.Contains(t, clean, "dollars")
}

func TestCleanSubstitutions(t *testing.T) {
	clean := Clean("H.R. 2617 and S. 1605 were referred; see also U.S. obligations.")
	assert.Contains(t, clean, "housebill")
	assert.Contains(t, clean, "senatebill")
	assert.Contains(t, clean, "unitedstates")
	// "H.R." must not leave orphaned letters behind
	assert.NotContains(t, Tokenize(clean), "h")
	assert.NotContains(t, Tokenize(clean), "r")
}

func TestCleanDeaccent(t *testing.T) {
	assert.Equal(t, "resume communique", Clean("résumé communiqué"))
}

func TestTokenize(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, Tokenize("a b c"))
	assert.Nil(t, Tokenize(""))
}

func TestBuildBags(t *testing.T) {
	texts := []string{
		"The committee shall report the healthcare amendment.",
		"An amendment to the act.",
		"", // an empty text still yields a (nil) bag at its position
	}
	stops := []string{"the", "an", "to", "shall"}

	bb := BuildBags(texts, stops)
	assert.Len(t, bb, 3)
	assert.Equal(t, []string{"committee", "report", "healthcare", "amendment"}, bb[0])
	assert.Equal(t, []string{"amendment", "act"}, bb[1])
	assert.Nil(t, bb[2])
}

func TestTrimmableTerms(t *testing.T) {
	bb := [][]string{
		{"tax", "tax", "credit"},
		{"tax", "credit"},
		{"tax", "rare"},
	}

	// "rare": corpus count 1 and doc count 1; "credit": count 2, docs 2
	cuts := TrimmableTerms(bb, 2, 2)
	assert.Equal(t, []string{"rare"}, cuts)

	// raise the corpus-count bar and "credit" goes too
	cuts = TrimmableTerms(bb, 3, 2)
	assert.ElementsMatch(t, []string{"rare", "credit"}, cuts)
}

func TestTrimBags(t *testing.T) {
	bb := [][]string{
		{"tax", "tax", "credit"},
		{"tax", "credit"},
		{"tax", "rare"},
	}

	trimmed, cuts := TrimBags(bb, 2, 2)
	assert.Equal(t, []string{"rare"}, cuts)
	assert.Len(t, trimmed, len(bb))
	assert.Equal(t, []string{"tax"}, trimmed[2])
	// the untouched bags survive intact
	assert.Equal(t, []string{"tax", "tax", "credit"}, trimmed[0])
}

func TestJoinAll(t *testing.T) {
	bb := [][]string{{"a", "b"}, nil, {"c"}}
	assert.Equal(t, []string{"a b", "", "c"}, JoinAll(bb))
}

func TestBaselineStops(t *testing.T) {
	stops := BaselineStops()
	sm := ToStopMap(stops)
	assert.True(t, sm["the"])
	assert.True(t, sm["shall"])
	assert.False(t, sm["healthcare"])
}
