//    BillTopicServer
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package viz

import (
	"fmt"

	"billtopics/internal/tm"

	"github.com/danaugrs/go-tsne/tsne"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

//
// T-SNE SCATTER
//

// the doc-topic posteriors are k-dimensional; t-SNE flattens them to 2D so the
// whole corpus can sit on one scatter, one series (color) per dominant topic

// TopicScatter - embed the doc-topic mixtures and plot them by dominant topic
func TopicScatter(f *tm.Fitted, topiclabels []string) *charts.Scatter {
	const (
		PERPLEX  = 150 // default 300
		LEARNRT  = 100 // default 100
		MAXITER  = 150 // default 300
		VERBOSE  = false
		TITLESTR = "Documents in topic space (t-SNE)"
		SYMSIZE  = 8
	)

	t := tsne.NewTSNE(2, PERPLEX, LEARNRT, MAXITER, VERBOSE)
	t.EmbedData(f.DocTopics, nil)

	dominant := f.DominantTopics()

	sc := charts.NewScatter()
	sc.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: CHRTWIDTH, Height: CHRTHEIGHT}),
		charts.WithTitleOpts(opts.Title{Title: TITLESTR}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true}),
		charts.WithLegendOpts(opts.Legend{Show: true}),
		charts.WithXAxisOpts(opts.XAxis{Show: false}),
		charts.WithYAxisOpts(opts.YAxis{Show: false}),
	)

	bytopic := make(map[int][]opts.ScatterData)
	docs, _ := f.DocTopics.Dims()
	for doc := 0; doc < docs; doc++ {
		bytopic[dominant[doc]] = append(bytopic[dominant[doc]], opts.ScatterData{
			Value:      []interface{}{t.Y.At(doc, 0), t.Y.At(doc, 1)},
			SymbolSize: SYMSIZE,
		})
	}

	for topic := 0; topic < f.K; topic++ {
		name := fmt.Sprintf("topic %d", topic+1)
		if topic < len(topiclabels) && topiclabels[topic] != "" {
			name = topiclabels[topic]
		}
		sc.AddSeries(name, bytopic[topic])
	}

	return sc
}
