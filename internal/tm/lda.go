//    BillTopicServer
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package tm

import (
	"fmt"
	"math"
	"sort"

	"github.com/james-bowman/nlp"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
)

// "github.com/james-bowman/nlp" does the heavy lifting: CountVectoriser builds
// the term-document matrix and LatentDirichletAllocation fits the topics; none
// of that is reimplemented here

// LDAConfig - tunables for the variational fitter; persisted as a JSON sidecar
type LDAConfig struct {
	Iterations     int
	BurnInPasses   int
	XformPasses    int
	ChangeEvalFrq  int
	PerplexEvalFrq int
	PerplexTol     float64
	Seed           uint64
	Workers        int
	GibbsSweeps    int // the seeded fitter only
	SeedBoost      float64
}

func DefaultLDAConfig() LDAConfig {
	return LDAConfig{
		Iterations:     250,
		BurnInPasses:   25,
		XformPasses:    100,
		ChangeEvalFrq:  5,
		PerplexEvalFrq: 30,
		PerplexTol:     1e-2,
		Seed:           42,
		Workers:        1,
		GibbsSweeps:    200,
		SeedBoost:      50,
	}
}

// NewVectoriser - a CountVectoriser carrying the skip list
func NewVectoriser(stops []string) *nlp.CountVectoriser {
	return nlp.NewCountVectoriser(stops...)
}

// newLDA - a seeded LatentDirichletAllocation; same config, same seed, same model
func newLDA(k int, cfg LDAConfig) *nlp.LatentDirichletAllocation {
	lda := nlp.NewLatentDirichletAllocation(k)
	lda.Processes = cfg.Workers
	lda.Iterations = cfg.Iterations
	lda.BurnInPasses = cfg.BurnInPasses
	lda.TransformationPasses = cfg.XformPasses
	lda.ChangeEvaluationFrequency = cfg.ChangeEvalFrq
	lda.PerplexityEvaluationFrequency = cfg.PerplexEvalFrq
	lda.PerplexityTolerance = cfg.PerplexTol
	lda.Rnd = rand.New(rand.NewSource(cfg.Seed))
	return lda
}

// TermWeight - one vocabulary item and its weight within a topic
type TermWeight struct {
	Term   string
	Weight float64
}

// Fitted - the queryable result of a fit: vocabulary, topic-term weights,
// doc-topic posteriors; the same surface for the plain and the seeded model
type Fitted struct {
	K          int
	Vocab      []string   // index -> term
	TopicTerms *mat.Dense // k x V
	DocTopics  *mat.Dense // D x k
}

// Fit - vectorise the documents and fit k topics on them
func Fit(docs []string, stops []string, k int, cfg LDAConfig) (*Fitted, error) {
	if len(docs) == 0 {
		return nil, fmt.Errorf("Fit() was handed an empty corpus")
	}

	vectoriser := NewVectoriser(stops)
	tdm, err := vectoriser.FitTransform(docs...)
	if err != nil {
		return nil, fmt.Errorf("Fit() could not vectorise %d documents: %w", len(docs), err)
	}

	lda := newLDA(k, cfg)
	docsOverTopics, err := lda.FitTransform(Canonical(tdm))
	if err != nil {
		return nil, fmt.Errorf("Fit() could not model %d topics: %w", k, err)
	}

	return collect(k, docsOverTopics, lda.Components(), VocabSlice(vectoriser.Vocabulary)), nil
}

// Canonical - the vectoriser builds its sparse matrix off a Go map, so its
// nonzero storage order varies run to run; the fitter sums floats in storage
// order, so a fixed seed alone does not pin the scores; a dense copy does
func Canonical(m mat.Matrix) mat.Matrix {
	return mat.DenseCopyOf(m)
}

// collect - flip the library's (k x D) output into the Fitted layout
func collect(k int, docsOverTopics mat.Matrix, topicsOverWords mat.Matrix, vocab []string) *Fitted {
	rows, columns := docsOverTopics.Dims() // rows = k; columns = number of docs

	dt := mat.NewDense(columns, rows, nil)
	for doc := 0; doc < columns; doc++ {
		for topic := 0; topic < rows; topic++ {
			dt.Set(doc, topic, docsOverTopics.At(topic, doc))
		}
	}

	tr, tc := topicsOverWords.Dims()
	tt := mat.NewDense(tr, tc, nil)
	for topic := 0; topic < tr; topic++ {
		for word := 0; word < tc; word++ {
			tt.Set(topic, word, topicsOverWords.At(topic, word))
		}
	}

	return &Fitted{K: k, Vocab: vocab, TopicTerms: tt, DocTopics: dt}
}

// VocabSlice - the vectoriser's term -> index map as an index -> term slice
func VocabSlice(vocabulary map[string]int) []string {
	vocab := make([]string, len(vocabulary))
	for k, v := range vocabulary {
		vocab[v] = k
	}
	return vocab
}

// TopTerms - the n heaviest terms per topic; ties go to the alphabetically earlier term
func (f *Fitted) TopTerms(n int) [][]TermWeight {
	_, vs := f.TopicTerms.Dims()
	if n > vs {
		n = vs
	}

	out := make([][]TermWeight, f.K)
	for topic := 0; topic < f.K; topic++ {
		tw := make([]TermWeight, vs)
		for word := 0; word < vs; word++ {
			tw[word] = TermWeight{Term: f.Vocab[word], Weight: f.TopicTerms.At(topic, word)}
		}
		sort.Slice(tw, func(i, j int) bool {
			if tw[i].Weight != tw[j].Weight {
				return tw[i].Weight > tw[j].Weight
			}
			return tw[i].Term < tw[j].Term
		})
		out[topic] = tw[0:n]
	}
	return out
}

// DominantTopic - the argmax topic for one document; a tie keeps the lowest index
func (f *Fitted) DominantTopic(doc int) int {
	winner := 0
	max := f.DocTopics.At(doc, 0)
	for topic := 1; topic < f.K; topic++ {
		if f.DocTopics.At(doc, topic) > max {
			winner = topic
			max = f.DocTopics.At(doc, topic)
		}
	}
	return winner
}

// DominantTopics - one dominant topic per document, positionally aligned with the corpus
func (f *Fitted) DominantTopics() []int {
	docs, _ := f.DocTopics.Dims()
	dd := make([]int, docs)
	for doc := 0; doc < docs; doc++ {
		dd[doc] = f.DominantTopic(doc)
	}
	return dd
}

// HeldOutPerplexity - fit k topics on the training matrix, score the test matrix
// with the learned topic-term weights fixed; lower is better
func HeldOutPerplexity(train mat.Matrix, test mat.Matrix, k int, cfg LDAConfig) (float64, error) {
	lda := newLDA(k, cfg)

	if _, err := lda.FitTransform(train); err != nil {
		return 0, fmt.Errorf("could not fit k=%d on the training matrix: %w", k, err)
	}

	p := lda.Perplexity(test)
	if math.IsNaN(p) || math.IsInf(p, 0) {
		return 0, fmt.Errorf("held-out perplexity at k=%d is not finite", k)
	}
	return p, nil
}
