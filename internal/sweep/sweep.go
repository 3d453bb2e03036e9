//    BillTopicServer
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package sweep

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"billtopics/internal/tm"

	"github.com/james-bowman/sparse"
	"gonum.org/v1/gonum/mat"
)

// see https://go.dev/blog/pipelines : Fan-out, fan-in & Explicit cancellation
// each (k, fold) pair is an independent fit; the pool runs them concurrently
// and the first failure cancels everything in flight

// ScoreFunc - fit k topics on the training matrix and score the held-out one
type ScoreFunc func(train mat.Matrix, test mat.Matrix, k int, cfg tm.LDAConfig) (float64, error)

// Runner - one configured cross-validated sweep
type Runner struct {
	Docs     []string // vectoriser-ready document strings, corpus order
	Stops    []string
	Grid     []int // candidate topic counts
	Folds    int
	Strategy string
	Workers  int
	Cfg      tm.LDAConfig
	Score    ScoreFunc                      // nil means tm.HeldOutPerplexity
	Progress func(remaining int, total int) // optional; fed to the job registry
}

type pair struct {
	k    int
	fold int
}

type scored struct {
	row Row
	err error
}

// Run - fit and score every (k, fold) pair; fail-fast: the returned table is
// complete or the error says which pair sank it
func (r *Runner) Run(ctx context.Context) (*Table, error) {
	if len(r.Grid) == 0 {
		return nil, fmt.Errorf("sweep has no candidate topic counts")
	}

	assign, err := Assign(len(r.Docs), r.Folds, r.Strategy)
	if err != nil {
		return nil, err
	}

	trains, tests, err := r.foldmatrices(assign)
	if err != nil {
		return nil, err
	}

	var pairs []pair
	for _, k := range r.Grid {
		for f := 0; f < r.Folds; f++ {
			pairs = append(pairs, pair{k: k, fold: f})
		}
	}

	workers := r.Workers
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	if workers > len(pairs) {
		workers = len(pairs)
	}

	score := r.Score
	if score == nil {
		score = tm.HeldOutPerplexity
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// [a] load the pairs into a channel
	pairchannel := pairfeeder(ctx, pairs, workers)

	// [b] fan out to fit and score in parallel
	scorechannels := make([]<-chan scored, workers)
	for i := 0; i < workers; i++ {
		scorechannels[i] = perplexityscorer(ctx, pairchannel, trains, tests, r.Cfg, score)
	}

	// [c] fan in to gather the rows into a single channel
	results := scoreaggregator(ctx, scorechannels...)

	// [d] collate; the first error wins and cancels the rest
	table := &Table{}
	total := len(pairs)
	for s := range results {
		if s.err != nil {
			cancel()
			for range results {
				// drain so the workers can exit
			}
			return nil, s.err
		}
		table.Add(s.row)
		if r.Progress != nil {
			r.Progress(total-len(table.Rows), total)
		}
	}

	if len(table.Rows) != total {
		return nil, fmt.Errorf("sweep was cancelled with %d of %d pairs unscored", total-len(table.Rows), total)
	}
	return table, nil
}

// foldmatrices - fit the vocabulary once on the full corpus, then build each
// fold's train and held-out matrices against that fixed vocabulary
func (r *Runner) foldmatrices(assign []int) ([]mat.Matrix, []mat.Matrix, error) {
	vectoriser := tm.NewVectoriser(r.Stops)
	vectoriser.Fit(r.Docs...)

	trains := make([]mat.Matrix, r.Folds)
	tests := make([]mat.Matrix, r.Folds)

	for f := 0; f < r.Folds; f++ {
		traindocs, testdocs := Split(assign, f)

		tr, err := vectoriser.Transform(pick(r.Docs, traindocs)...)
		if err != nil {
			return nil, nil, fmt.Errorf("could not vectorise the training docs of fold %d: %w", f, err)
		}
		te, err := vectoriser.Transform(pick(r.Docs, testdocs)...)
		if err != nil {
			return nil, nil, fmt.Errorf("could not vectorise the held-out docs of fold %d: %w", f, err)
		}

		// an all-zero held-out matrix scores NaN; catch it before the pool does
		if nnz(te) == 0 {
			return nil, nil, fmt.Errorf("the held-out documents of fold %d vectorised to nothing", f)
		}

		// dense copies pin the nonzero iteration order; without them two runs
		// of the same sweep can disagree past the 3rd decimal
		trains[f] = tm.Canonical(tr)
		tests[f] = tm.Canonical(te)
	}
	return trains, tests, nil
}

// nnz - nonzero count; the vectoriser hands back sparse matrices
func nnz(m mat.Matrix) int {
	if s, ok := m.(sparse.Sparser); ok {
		return s.NNZ()
	}
	r, c := m.Dims()
	n := 0
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if m.At(i, j) != 0 {
				n++
			}
		}
	}
	return n
}

func pick(docs []string, idx []int) []string {
	out := make([]string, len(idx))
	for i, d := range idx {
		out[i] = docs[d]
	}
	return out
}

// pairfeeder - emit the (k, fold) pairs to a channel; consumed by the scorers
func pairfeeder(ctx context.Context, pairs []pair, workers int) <-chan pair {
	emitpairs := make(chan pair, workers)

	feed := func() {
		defer close(emitpairs)
		for i := 0; i < len(pairs); i++ {
			select {
			case <-ctx.Done():
				return
			case emitpairs <- pairs[i]:
			}
		}
	}

	go feed()

	return emitpairs
}

// perplexityscorer - grab a pair; fit on the fold's training matrix; score the
// held-out matrix; emit the row (or the error that stops the sweep)
func perplexityscorer(ctx context.Context, pairchannel <-chan pair, trains []mat.Matrix, tests []mat.Matrix, cfg tm.LDAConfig, score ScoreFunc) <-chan scored {
	rowchannel := make(chan scored)

	consume := func() {
		defer close(rowchannel)
		for p := range pairchannel {
			select {
			case <-ctx.Done():
				return
			default:
				pp, err := score(trains[p.fold], tests[p.fold], p.k, cfg)
				s := scored{row: Row{K: p.k, Fold: p.fold, Perplexity: pp}}
				if err != nil {
					s.err = fmt.Errorf("sweep failed at (k=%d, fold=%d): %w", p.k, p.fold, err)
				}
				select {
				case rowchannel <- s:
				case <-ctx.Done():
					return
				}
			}
		}
	}

	go consume()

	return rowchannel
}

// scoreaggregator - gather all rows from the scorer channels into one place
func scoreaggregator(ctx context.Context, scorechannels ...<-chan scored) <-chan scored {
	var wg sync.WaitGroup
	resultchann := make(chan scored)

	broadcast := func(sc <-chan scored) {
		defer wg.Done()
		for s := range sc {
			select {
			case resultchann <- s:
			case <-ctx.Done():
				return
			}
		}
	}

	wg.Add(len(scorechannels))
	for _, sc := range scorechannels {
		go broadcast(sc)
	}

	go func() {
		wg.Wait()
		close(resultchann)
	}()

	return resultchann
}
