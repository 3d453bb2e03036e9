//    BillTopicServer
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package viz

import (
	"fmt"
	"os"

	"billtopics/internal/sweep"
	"billtopics/internal/tm"
	"billtopics/internal/tune"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

//
// CHARTS
//

// see https://echarts.apache.org/en/option.html for what the options map onto

const (
	CHRTWIDTH  = "1200px"
	CHRTHEIGHT = "600px"
)

// PerplexityChart - held-out perplexity by candidate k: one line per fold plus
// the fold-mean line the elbow gets read off of
func PerplexityChart(t *sweep.Table) *charts.Line {
	const (
		TITLESTR = "Held-out perplexity by topic count"
		SUBSTR   = "%d-fold cross-validation; lower is better"
		MEANNAME = "fold mean"
	)

	line := newline(TITLESTR, fmt.Sprintf(SUBSTR, len(t.Folds())), "topics (k)", "perplexity")

	kk := t.Ks()
	xaxis := make([]string, len(kk))
	for i, k := range kk {
		xaxis[i] = fmt.Sprintf("%d", k)
	}
	line.SetXAxis(xaxis)

	for f, series := range t.SeriesByFold() {
		data := make([]opts.LineData, len(series))
		for i, v := range series {
			data[i] = opts.LineData{Value: v}
		}
		line.AddSeries(fmt.Sprintf("fold %d", f+1), data)
	}

	means := t.MeanByK()
	meandata := make([]opts.LineData, len(kk))
	for i, k := range kk {
		meandata[i] = opts.LineData{Value: means[k]}
	}
	line.AddSeries(MEANNAME, meandata, charts.WithLineStyleOpts(opts.LineStyle{Width: 3}))

	return line
}

// HeuristicChart - one of the four topic-count diagnostics over the grid
func HeuristicChart(c tune.Curve) *charts.Line {
	line := newline(c.Name, c.Direction, "topics (k)", c.Name)

	xaxis := make([]string, len(c.K))
	data := make([]opts.LineData, len(c.K))
	for i := range c.K {
		xaxis[i] = fmt.Sprintf("%d", c.K[i])
		data[i] = opts.LineData{Value: c.Value[i]}
	}
	line.SetXAxis(xaxis).AddSeries(c.Name, data)

	return line
}

// TopTermsChart - the heaviest terms of one topic as a bar chart
func TopTermsChart(label string, terms []tm.TermWeight) *charts.Bar {
	const (
		TITLESTR = "Top terms: %s"
	)

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: CHRTWIDTH, Height: CHRTHEIGHT}),
		charts.WithTitleOpts(opts.Title{Title: fmt.Sprintf(TITLESTR, label)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true}),
	)

	xaxis := make([]string, len(terms))
	data := make([]opts.BarData, len(terms))
	for i, tw := range terms {
		xaxis[i] = tw.Term
		data[i] = opts.BarData{Value: tw.Weight}
	}
	bar.SetXAxis(xaxis).AddSeries(label, data)

	return bar
}

// CrosstabChart - topic x party document counts as a stacked bar chart
func CrosstabChart(topics []string, parties []string, counts [][]int) *charts.Bar {
	const (
		TITLESTR = "Documents per topic by sponsor party"
		STACKKEY = "party"
	)

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: CHRTWIDTH, Height: CHRTHEIGHT}),
		charts.WithTitleOpts(opts.Title{Title: TITLESTR}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true}),
		charts.WithLegendOpts(opts.Legend{Show: true}),
	)

	bar.SetXAxis(topics)
	for p, party := range parties {
		data := make([]opts.BarData, len(topics))
		for t := range topics {
			data[t] = opts.BarData{Value: counts[t][p]}
		}
		bar.AddSeries(party, data, charts.WithBarChartOpts(opts.BarChart{Stack: STACKKEY}))
	}

	return bar
}

func newline(title string, subtitle string, xname string, yname string) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: CHRTWIDTH, Height: CHRTHEIGHT}),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: subtitle}),
		charts.WithXAxisOpts(opts.XAxis{Name: xname}),
		charts.WithYAxisOpts(opts.YAxis{Name: yname}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true}),
		charts.WithLegendOpts(opts.Legend{Show: true}),
	)
	return line
}

//
// PAGES
//

// WritePage - render one or more charts into a standalone HTML report
func WritePage(path string, cc ...components.Charter) error {
	p := components.NewPage()
	p.AddCharts(cc...)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create report '%s': %w", path, err)
	}
	defer f.Close()

	if err = p.Render(f); err != nil {
		return fmt.Errorf("could not render report '%s': %w", path, err)
	}
	return nil
}
