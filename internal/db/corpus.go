//    BillTopicServer
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package db

import (
	"context"
)

// Bill - one legislative bill; one row of the corpus, one document of the model
type Bill struct {
	ID      int
	Title   string
	Session string
	Party   string
	Text    string
	Topic   string // empty until a fit writes labels back
}

// PerplexityRow - one (k, fold) result of a cross-validated sweep
type PerplexityRow struct {
	K          int
	Fold       int
	Perplexity float64
}

// Store - the corpus + results backend; sqlite and postgres both satisfy this
type Store interface {
	// Corpus returns every bill ordered by id; matrix columns stay aligned with this slice
	Corpus(ctx context.Context) ([]Bill, error)
	// WriteTopics updates the topic label column for the given bill ids
	WriteTopics(ctx context.Context, labels map[int]string) error
	SaveSweep(ctx context.Context, fp string, rows []PerplexityRow) error
	SweepRows(ctx context.Context, fp string) ([]PerplexityRow, error)
	SaveModel(ctx context.Context, fp string, mb *ModelBlob) error
	FetchModel(ctx context.Context, fp string) (*ModelBlob, error)
	Close()
}

// ModelBlob - the queryable residue of a fit; gzipped JSON in the results table
type ModelBlob struct {
	Fingerprint string
	K           int
	Seeded      bool
	TopTerms    [][]string
	TermWeights [][]float64
	DocTopics   [][]float64 // row per document, column per topic
	Labels      []string    // row per document; dominant-topic label
}

const (
	CORPUSTABLE = "bills"
	SWEEPTABLE  = "sweepresults"
	MODELTABLE  = "topicmodels"
)
