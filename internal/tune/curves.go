//    BillTopicServer
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package tune

import (
	"billtopics/internal/tm"
)

// HeuristicCurves - fit once per candidate k and evaluate all four heuristics
// on each fit; the sweep's perplexity table answers "how well does it predict",
// these answer "how well-shaped are the topics"
func HeuristicCurves(docs []string, bb [][]string, stops []string, grid []int, cfg tm.LDAConfig) ([]Curve, error) {
	doclens := make([]int, len(bb))
	for i := 0; i < len(bb); i++ {
		doclens[i] = len(bb[i])
	}

	arun := Curve{Name: "Arun2010", Direction: MINIMIZE}
	cao := Curve{Name: "CaoJuan2009", Direction: MINIMIZE}
	deveaud := Curve{Name: "Deveaud2014", Direction: MAXIMIZE}
	griffiths := Curve{Name: "Griffiths2004", Direction: MAXIMIZE}

	for _, k := range grid {
		f, err := tm.Fit(docs, stops, k, cfg)
		if err != nil {
			return nil, err
		}

		a, err := Arun2010(f, doclens)
		if err != nil {
			return nil, err
		}

		arun.K = append(arun.K, k)
		arun.Value = append(arun.Value, a)
		cao.K = append(cao.K, k)
		cao.Value = append(cao.Value, CaoJuan2009(f))
		deveaud.K = append(deveaud.K, k)
		deveaud.Value = append(deveaud.Value, Deveaud2014(f))
		griffiths.K = append(griffiths.K, k)
		griffiths.Value = append(griffiths.Value, Griffiths2004(f, bb))
	}

	return []Curve{arun, cao, deveaud, griffiths}, nil
}
