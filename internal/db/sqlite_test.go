//    BillTopicServer
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package db

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func memstore(t *testing.T) *LiteStore {
	ls, err := OpenSQLite(":memory:")
	assert.NoError(t, err)
	t.Cleanup(ls.Close)
	return ls
}

func seedbills(t *testing.T, ls *LiteStore) {
	csv := `id,title,session,party,text
1,Farm Act,117,R,farm crop livestock subsidy
2,Care Act,117,D,hospital medicare insurance
3,Tax Act,118,R,tax revenue budget
`
	path := filepath.Join(t.TempDir(), "bills.csv")
	assert.NoError(t, os.WriteFile(path, []byte(csv), 0644))

	n, err := ls.ImportCSV(context.Background(), path)
	assert.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestCorpusRoundTrip(t *testing.T) {
	ls := memstore(t)
	seedbills(t, ls)

	bb, err := ls.Corpus(context.Background())
	assert.NoError(t, err)
	assert.Len(t, bb, 3)

	// id order, topics empty until a fit writes them
	assert.Equal(t, 1, bb[0].ID)
	assert.Equal(t, "Farm Act", bb[0].Title)
	assert.Equal(t, "D", bb[1].Party)
	assert.Equal(t, "tax revenue budget", bb[2].Text)
	assert.Equal(t, "", bb[0].Topic)
}

func TestImportCSVReplaces(t *testing.T) {
	ls := memstore(t)
	seedbills(t, ls)
	seedbills(t, ls)

	bb, err := ls.Corpus(context.Background())
	assert.NoError(t, err)
	assert.Len(t, bb, 3)
}

func TestWriteTopics(t *testing.T) {
	ls := memstore(t)
	seedbills(t, ls)

	err := ls.WriteTopics(context.Background(), map[int]string{1: "agriculture", 2: "healthcare", 3: "finance"})
	assert.NoError(t, err)

	bb, err := ls.Corpus(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, "agriculture", bb[0].Topic)
	assert.Equal(t, "healthcare", bb[1].Topic)
	assert.Equal(t, "finance", bb[2].Topic)
}

func TestSweepRoundTrip(t *testing.T) {
	ls := memstore(t)

	rows := []PerplexityRow{
		{K: 10, Fold: 0, Perplexity: 120.5},
		{K: 10, Fold: 1, Perplexity: 118.2},
		{K: 20, Fold: 0, Perplexity: 97.4},
	}
	assert.NoError(t, ls.SaveSweep(context.Background(), "job-1", rows))

	got, err := ls.SweepRows(context.Background(), "job-1")
	assert.NoError(t, err)
	assert.Equal(t, rows, got)

	// a second save under the same fingerprint replaces, not appends
	assert.NoError(t, ls.SaveSweep(context.Background(), "job-1", rows[0:1]))
	got, err = ls.SweepRows(context.Background(), "job-1")
	assert.NoError(t, err)
	assert.Len(t, got, 1)

	// an unknown fingerprint is empty, not an error
	got, err = ls.SweepRows(context.Background(), "nope")
	assert.NoError(t, err)
	assert.Empty(t, got)
}

func TestModelRoundTrip(t *testing.T) {
	ls := memstore(t)

	mb := &ModelBlob{
		Fingerprint: "job-2",
		K:           2,
		Seeded:      true,
		TopTerms:    [][]string{{"farm", "crop"}, {"hospital", "medicare"}},
		TermWeights: [][]float64{{0.4, 0.3}, {0.5, 0.2}},
		DocTopics:   [][]float64{{0.9, 0.1}, {0.2, 0.8}},
		Labels:      []string{"agriculture", "healthcare"},
	}
	assert.NoError(t, ls.SaveModel(context.Background(), "job-2", mb))

	got, err := ls.FetchModel(context.Background(), "job-2")
	assert.NoError(t, err)
	assert.Equal(t, mb, got)

	_, err = ls.FetchModel(context.Background(), "nope")
	assert.Error(t, err)
}
