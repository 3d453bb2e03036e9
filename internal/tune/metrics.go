//    BillTopicServer
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package tune

import (
	"fmt"
	"math"

	"billtopics/internal/tm"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

//
// TOPIC-COUNT HEURISTICS
//

// four independent scalar-per-k diagnostics; each has a direction and none is
// decisive on its own: the curves get plotted side by side and eyeballed

const (
	MINIMIZE = "minimize"
	MAXIMIZE = "maximize"
)

// Curve - one heuristic evaluated over the candidate grid
type Curve struct {
	Name      string
	Direction string
	K         []int
	Value     []float64
}

// Arun2010 - symmetric KL divergence between the singular-value spectrum of
// the topic-term matrix and the length-weighted doc-topic marginals; minimize
func Arun2010(f *tm.Fitted, doclens []int) (float64, error) {
	var svd mat.SVD
	if ok := svd.Factorize(f.TopicTerms, mat.SVDNone); !ok {
		return 0, fmt.Errorf("Arun2010: SVD of the topic-term matrix did not converge")
	}
	sigma := svd.Values(nil)

	docs, k := f.DocTopics.Dims()
	if docs != len(doclens) {
		return 0, fmt.Errorf("Arun2010: %d documents but %d lengths", docs, len(doclens))
	}

	marginal := make([]float64, k)
	for d := 0; d < docs; d++ {
		for t := 0; t < k; t++ {
			marginal[t] += float64(doclens[d]) * f.DocTopics.At(d, t)
		}
	}

	normalize(sigma)
	normalize(marginal)
	return symmetricKL(sigma, marginal), nil
}

// CaoJuan2009 - mean pairwise cosine similarity between topic-term rows;
// well-separated topics score low; minimize
func CaoJuan2009(f *tm.Fitted) float64 {
	k, _ := f.TopicTerms.Dims()
	sum := 0.0
	npairs := 0
	for i := 0; i < k; i++ {
		for j := i + 1; j < k; j++ {
			sum += cosine(f.TopicTerms.RawRowView(i), f.TopicTerms.RawRowView(j))
			npairs++
		}
	}
	if npairs == 0 {
		return 0
	}
	return sum / float64(npairs)
}

// Deveaud2014 - mean pairwise Jensen-Shannon divergence between topic-term
// distributions; maximize
func Deveaud2014(f *tm.Fitted) float64 {
	k, vs := f.TopicTerms.Dims()
	rows := make([][]float64, k)
	for i := 0; i < k; i++ {
		rows[i] = append([]float64(nil), f.TopicTerms.RawRowView(i)...)
		normalize(rows[i])
	}

	sum := 0.0
	npairs := 0
	mid := make([]float64, vs)
	for i := 0; i < k; i++ {
		for j := i + 1; j < k; j++ {
			for v := 0; v < vs; v++ {
				mid[v] = (rows[i][v] + rows[j][v]) / 2
			}
			sum += (stat.KullbackLeibler(rows[i], mid) + stat.KullbackLeibler(rows[j], mid)) / 2
			npairs++
		}
	}
	if npairs == 0 {
		return 0
	}
	return sum / float64(npairs)
}

// Griffiths2004 - corpus log-likelihood under the fitted posteriors; maximize
func Griffiths2004(f *tm.Fitted, bb [][]string) float64 {
	index := make(map[string]int, len(f.Vocab))
	for i, w := range f.Vocab {
		index[w] = i
	}

	k, _ := f.TopicTerms.Dims()
	sum := 0.0
	for d := 0; d < len(bb); d++ {
		for _, w := range bb[d] {
			v, known := index[w]
			if !known {
				continue
			}
			topicsum := 0.0
			for t := 0; t < k; t++ {
				topicsum += f.TopicTerms.At(t, v) * f.DocTopics.At(d, t)
			}
			if topicsum > 0 {
				sum += math.Log(topicsum)
			}
		}
	}
	return sum
}

//
// helpers
//

func normalize(xx []float64) {
	s := floats.Sum(xx)
	if s == 0 {
		return
	}
	floats.Scale(1/s, xx)
}

func cosine(a []float64, b []float64) float64 {
	na := floats.Norm(a, 2)
	nb := floats.Norm(b, 2)
	if na == 0 || nb == 0 {
		return 0
	}
	return floats.Dot(a, b) / (na * nb)
}

// symmetricKL - KL(p||q) + KL(q||p) with zero-cell smoothing
func symmetricKL(p []float64, q []float64) float64 {
	const EPS = 1e-12
	kl := func(a, b []float64) float64 {
		s := 0.0
		for i := 0; i < len(a); i++ {
			pa := a[i] + EPS
			pb := b[i] + EPS
			s += pa * math.Log(pa/pb)
		}
		return s
	}
	return kl(p, q) + kl(q, p)
}
