//    BillTopicServer
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package tm

import (
	"fmt"
	"math/rand"
	"sort"
)

//
// SEEDED LDA
//

// a collapsed Gibbs sampler with asymmetric topic-word priors: a seed term
// carries a boosted prior in its own topic, so the sampler is pulled toward
// the dictionary's structure without being forced to honor it
//
// the topic count is the dictionary's topic count; topic i answers to label i

const (
	GIBBSALPHA = 0.1
	GIBBSETA   = 0.01
)

type seededSampler struct {
	k     int
	vs    int       // vocabulary size
	docs  [][]int   // token streams as vocabulary indices
	wt    [][]int   // word-topic counts, V x K
	dt    [][]int   // doc-topic counts, D x K
	wts   []int     // word-topic sums, K
	zz    [][]int   // per-token topic assignment
	eta   [][]float64
	etasm []float64 // per-topic prior mass
	rnd   *rand.Rand
}

// FitSeeded - fit the dictionary's topics on the bags; the result carries the
// same query surface as the unsupervised fitter
func FitSeeded(bb [][]string, dict *SeedDict, cfg LDAConfig) (*Fitted, error) {
	if dict == nil || len(dict.Topics) == 0 {
		return nil, fmt.Errorf("FitSeeded() needs a seed dictionary")
	}
	if len(bb) == 0 {
		return nil, fmt.Errorf("FitSeeded() was handed an empty corpus")
	}

	vocab, index := BagVocabulary(bb)
	if len(vocab) == 0 {
		return nil, fmt.Errorf("FitSeeded(): the bags contain no terms")
	}

	matches := dict.MatchVocabulary(vocab)
	for i := 0; i < len(matches); i++ {
		if len(matches[i]) == 0 {
			return nil, fmt.Errorf("no seed term of topic '%s' occurs in the corpus vocabulary", dict.Topics[i].Label)
		}
	}

	s := newseededsampler(bb, index, len(vocab), dict.K(), matches, cfg)
	s.run(cfg.GibbsSweeps)

	return s.posterior(vocab), nil
}

// BagVocabulary - sorted vocabulary plus term -> index map
func BagVocabulary(bb [][]string) ([]string, map[string]int) {
	seen := make(map[string]bool)
	for i := 0; i < len(bb); i++ {
		for _, w := range bb[i] {
			seen[w] = true
		}
	}

	vocab := make([]string, 0, len(seen))
	for w := range seen {
		vocab = append(vocab, w)
	}
	sort.Strings(vocab)

	index := make(map[string]int, len(vocab))
	for i, w := range vocab {
		index[w] = i
	}
	return vocab, index
}

func newseededsampler(bb [][]string, index map[string]int, vs int, k int, matches [][]int, cfg LDAConfig) *seededSampler {
	s := &seededSampler{
		k:    k,
		vs:   vs,
		docs: make([][]int, len(bb)),
		wt:   intmatrix(vs, k),
		dt:   intmatrix(len(bb), k),
		wts:  make([]int, k),
		zz:   make([][]int, len(bb)),
		rnd:  rand.New(rand.NewSource(int64(cfg.Seed))),
	}

	for d := 0; d < len(bb); d++ {
		s.docs[d] = make([]int, len(bb[d]))
		for i, w := range bb[d] {
			s.docs[d][i] = index[w]
		}
	}

	// the asymmetric prior: flat eta everywhere, boosted where the dictionary speaks
	boost := cfg.SeedBoost * GIBBSETA
	s.eta = make([][]float64, vs)
	for v := 0; v < vs; v++ {
		s.eta[v] = make([]float64, k)
		for t := 0; t < k; t++ {
			s.eta[v][t] = GIBBSETA
		}
	}
	seededin := make(map[int]int, vs) // vocab index -> owning topic
	for t := 0; t < k; t++ {
		for _, v := range matches[t] {
			s.eta[v][t] += boost
			seededin[v] = t
		}
	}
	s.etasm = make([]float64, k)
	for t := 0; t < k; t++ {
		for v := 0; v < vs; v++ {
			s.etasm[t] += s.eta[v][t]
		}
	}

	// initialize: seed tokens start in their topic, the rest start at random
	for d := 0; d < len(s.docs); d++ {
		s.zz[d] = make([]int, len(s.docs[d]))
		for i, v := range s.docs[d] {
			t, seeded := seededin[v]
			if !seeded {
				t = s.rnd.Intn(k)
			}
			s.assign(d, i, v, t)
		}
	}
	return s
}

func intmatrix(r int, c int) [][]int {
	m := make([][]int, r)
	for i := 0; i < r; i++ {
		m[i] = make([]int, c)
	}
	return m
}

func (s *seededSampler) assign(d int, i int, v int, t int) {
	s.wt[v][t]++
	s.dt[d][t]++
	s.wts[t]++
	s.zz[d][i] = t
}

func (s *seededSampler) retract(d int, i int, v int) int {
	t := s.zz[d][i]
	s.wt[v][t]--
	s.dt[d][t]--
	s.wts[t]--
	return t
}

// run - collapsed Gibbs sweeps; cumulative-sum sampling per token
func (s *seededSampler) run(sweeps int) {
	cumsum := make([]float64, s.k)
	for sweep := 0; sweep < sweeps; sweep++ {
		for d := 0; d < len(s.docs); d++ {
			for i, v := range s.docs[d] {
				t := s.retract(d, i, v)

				for kidx := 0; kidx < s.k; kidx++ {
					docpart := GIBBSALPHA + float64(s.dt[d][kidx])
					wordpart := (s.eta[v][kidx] + float64(s.wt[v][kidx])) /
						(float64(s.wts[kidx]) + s.etasm[kidx])
					if kidx == 0 {
						cumsum[kidx] = docpart * wordpart
					} else {
						cumsum[kidx] = cumsum[kidx-1] + docpart*wordpart
					}
				}

				u := s.rnd.Float64() * cumsum[s.k-1]
				t = s.k - 1
				for kidx := 0; kidx < s.k; kidx++ {
					if u < cumsum[kidx] {
						t = kidx
						break
					}
				}
				s.assign(d, i, v, t)
			}
		}
	}
}

// posterior - point estimates of phi and theta in the Fitted layout
func (s *seededSampler) posterior(vocab []string) *Fitted {
	f := &Fitted{K: s.k, Vocab: vocab}

	f.TopicTerms = densefill(s.k, s.vs, func(t int, v int) float64 {
		return (float64(s.wt[v][t]) + s.eta[v][t]) / (float64(s.wts[t]) + s.etasm[t])
	})

	f.DocTopics = densefill(len(s.docs), s.k, func(d int, t int) float64 {
		sum := 0
		for kidx := 0; kidx < s.k; kidx++ {
			sum += s.dt[d][kidx]
		}
		return (float64(s.dt[d][t]) + GIBBSALPHA) / (float64(sum) + float64(s.k)*GIBBSALPHA)
	})

	return f
}
