//    BillTopicServer
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package main

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"billtopics/internal/bags"
	"billtopics/internal/db"
	"billtopics/internal/sweep"
	"billtopics/internal/tm"
	"billtopics/internal/tune"
	"billtopics/internal/viz"

	"github.com/go-echarts/go-echarts/v2/components"
)

//
// MODELING JOBS
//

// routes and the sweepbot launch these; each runs to completion in its own
// goroutine and reports through AllJobs + the result store

var (
	SQLStore  db.Store
	TheCorpus []db.Bill
	ModelCfg  tm.LDAConfig

	// concurrent fit jobs all write labels onto the same corpus slice
	corpuslock sync.Mutex
)

// PreparedCorpus - the corpus after cleaning, bagging, compounding, and trimming;
// Bags[i], Docs[i], and Bills[i] all describe the same bill
type PreparedCorpus struct {
	Bills []db.Bill
	Bags  [][]string
	Docs  []string
	Stops []string
}

// preparecorpus - bills into vectoriser-ready documents
func preparecorpus(bills []db.Bill) *PreparedCorpus {
	const (
		MSG1 = "prepared %d documents; %d terms trimmed below thresholds (count < %d or docs < %d)"
	)

	texts := make([]string, len(bills))
	for i := 0; i < len(bills); i++ {
		texts[i] = bills[i].Text
	}

	stops := bags.BaselineStops()
	bb := bags.BuildBags(texts, stops)
	bb = bags.CompoundCollocations(bb, DEFAULTMINPAIRCOUNT)
	bb, cuts := bags.TrimBags(bb, Config.MinTermCount, Config.MinDocCount)

	msg(fmt.Sprintf(MSG1, len(bb), len(cuts), Config.MinTermCount, Config.MinDocCount), MSGFYI)

	return &PreparedCorpus{
		Bills: bills,
		Bags:  bb,
		Docs:  bags.JoinAll(bb),
		Stops: append(stops, cuts...),
	}
}

// RunSweepJob - cross-validated held-out perplexity over the configured grid
func RunSweepJob(j Job) {
	const (
		MSG1 = "sweep %s: %d of %d pairs remaining"
		MSG2 = "sweep %s: best k by mean held-out perplexity is %d"
		SUMM = "best k by mean held-out perplexity: %d (strategy: %s, folds: %d)"
		FRQ  = 5
	)

	start := time.Now()
	pc := preparecorpus(TheCorpus)

	grid, ok := parsekgrid(Config.KGrid)
	if !ok {
		AllJobs.Fail(j.ID, fmt.Errorf("could not parse the topic-count grid '%s'", Config.KGrid))
		return
	}

	cfg := ModelCfg
	cfg.Workers = 1 // the pool parallelizes across pairs; one process per fit

	runner := sweep.Runner{
		Docs:     pc.Docs,
		Stops:    pc.Stops,
		Grid:     grid,
		Folds:    Config.FoldCount,
		Strategy: Config.FoldStrategy,
		Workers:  Config.WorkerCount,
		Cfg:      cfg,
		Progress: func(remain int, total int) {
			AllJobs.SetProgress(j.ID, remain, total)
			if remain%FRQ == 0 {
				msg(fmt.Sprintf(MSG1, j.ID, remain, total), MSGPEEK)
			}
		},
	}

	table, err := runner.Run(context.Background())
	if err != nil {
		AllJobs.Fail(j.ID, err)
		msg(err.Error(), MSGWARN)
		return
	}

	rows := make([]db.PerplexityRow, 0, len(table.Rows))
	for _, r := range table.Sorted() {
		rows = append(rows, db.PerplexityRow{K: r.K, Fold: r.Fold, Perplexity: r.Perplexity})
	}
	if err = SQLStore.SaveSweep(context.Background(), j.ID, rows); err != nil {
		AllJobs.Fail(j.ID, err)
		return
	}

	report := reportpath(SWEEPREPORT, j.ID)
	if err = viz.WritePage(report, viz.PerplexityChart(table)); err != nil {
		AllJobs.Fail(j.ID, err)
		return
	}

	best := table.BestK()
	msg(fmt.Sprintf(MSG2, j.ID, best), MSGNOTE)
	AllJobs.Finish(j.ID, fmt.Sprintf(SUMM, best, Config.FoldStrategy, Config.FoldCount), report)
	timetracker("S", fmt.Sprintf("swept %d candidates over %d folds", len(grid), Config.FoldCount), start, start)
}

// RunFitJob - one unsupervised fit at k; labels written back onto the corpus
func RunFitJob(j Job, k int) {
	const (
		SUMM = "fit %d topics on %d documents; labels written back"
	)

	pc := preparecorpus(TheCorpus)
	AllJobs.SetProgress(j.ID, 1, 1)

	f, err := tm.Fit(pc.Docs, pc.Stops, k, ModelCfg)
	if err != nil {
		AllJobs.Fail(j.ID, err)
		return
	}

	labels := numberedlabels(f.DominantTopics(), nil)
	if err = writebacklabels(pc.Bills, labels); err != nil {
		AllJobs.Fail(j.ID, err)
		return
	}

	if err = persistmodel(j.ID, f, labels, false); err != nil {
		AllJobs.Fail(j.ID, err)
		return
	}

	report := reportpath(FITREPORT, j.ID)
	if err = fitreport(report, pc, f, nil); err != nil {
		AllJobs.Fail(j.ID, err)
		return
	}

	AllJobs.Finish(j.ID, fmt.Sprintf(SUMM, k, len(pc.Bills)), report)
}

// RunSeededJob - fit the seed dictionary's topics; refuse degenerate dictionaries
// unless the launch said otherwise
func RunSeededJob(j Job, dict *tm.SeedDict) {
	const (
		DGEN = "the seed dictionary looks like an alphabetical slice of the vocabulary, not a curated one (relaunch with -dg to fit it anyway)"
		SUMM = "seeded fit of %d topics; mean UMass coherence %.2f"
	)

	pc := preparecorpus(TheCorpus)
	AllJobs.SetProgress(j.ID, 1, 1)

	vocab, _ := tm.BagVocabulary(pc.Bags)
	if dict.Degenerate(vocab) && !Config.AllowDegen {
		AllJobs.Fail(j.ID, fmt.Errorf(DGEN))
		return
	}

	f, err := tm.FitSeeded(pc.Bags, dict, ModelCfg)
	if err != nil {
		AllJobs.Fail(j.ID, err)
		return
	}

	topiclabels := dict.Labels()
	labels := numberedlabels(f.DominantTopics(), topiclabels)
	if err = writebacklabels(pc.Bills, labels); err != nil {
		AllJobs.Fail(j.ID, err)
		return
	}

	if err = persistmodel(j.ID, f, labels, true); err != nil {
		AllJobs.Fail(j.ID, err)
		return
	}

	report := reportpath(SEEDEDREPORT, j.ID)
	if err = fitreport(report, pc, f, topiclabels); err != nil {
		AllJobs.Fail(j.ID, err)
		return
	}

	coh := tune.MeanCoherence(toptermstrings(f), pc.Bags)
	AllJobs.Finish(j.ID, fmt.Sprintf(SUMM, f.K, coh), report)
}

// RunHeuristicsJob - the four topic-count diagnostics over the grid
func RunHeuristicsJob(j Job) {
	const (
		SUMM = "computed Arun2010, CaoJuan2009, Deveaud2014, Griffiths2004 over %d candidates"
	)

	pc := preparecorpus(TheCorpus)

	grid, ok := parsekgrid(Config.KGrid)
	if !ok {
		AllJobs.Fail(j.ID, fmt.Errorf("could not parse the topic-count grid '%s'", Config.KGrid))
		return
	}
	AllJobs.SetProgress(j.ID, len(grid), len(grid))

	cfg := ModelCfg
	cfg.Workers = Config.WorkerCount

	curves, err := tune.HeuristicCurves(pc.Docs, pc.Bags, pc.Stops, grid, cfg)
	if err != nil {
		AllJobs.Fail(j.ID, err)
		return
	}

	cc := make([]components.Charter, len(curves))
	for i, c := range curves {
		cc[i] = viz.HeuristicChart(c)
	}

	report := reportpath(TUNEREPORT, j.ID)
	if err = viz.WritePage(report, cc...); err != nil {
		AllJobs.Fail(j.ID, err)
		return
	}

	AllJobs.Finish(j.ID, fmt.Sprintf(SUMM, len(grid)), report)
}

//
// POST-HOC PIECES
//

// numberedlabels - dominant topic indices into label strings; the dictionary's
// labels if there is one, "topic-NN" if not
func numberedlabels(dominant []int, topiclabels []string) []string {
	labels := make([]string, len(dominant))
	for i, t := range dominant {
		if t < len(topiclabels) {
			labels[i] = topiclabels[t]
		} else {
			labels[i] = fmt.Sprintf("topic-%02d", t+1)
		}
	}
	return labels
}

// writebacklabels - labels[i] belongs to bills[i]; update memory and store together;
// serialized so that two jobs finishing at once cannot interleave their labels
func writebacklabels(bills []db.Bill, labels []string) error {
	if len(bills) != len(labels) {
		return fmt.Errorf("%d bills but %d labels; refusing to write back", len(bills), len(labels))
	}

	corpuslock.Lock()
	defer corpuslock.Unlock()

	update := make(map[int]string, len(bills))
	for i := 0; i < len(bills); i++ {
		bills[i].Topic = labels[i]
		update[bills[i].ID] = labels[i]
	}
	return SQLStore.WriteTopics(context.Background(), update)
}

// persistmodel - gzip+JSON the fit's queryable residue under the job's fingerprint
func persistmodel(fp string, f *tm.Fitted, labels []string, seeded bool) error {
	tt := f.TopTerms(TOPTERMSPERTOPIC)

	mb := &db.ModelBlob{
		Fingerprint: fp,
		K:           f.K,
		Seeded:      seeded,
		TopTerms:    make([][]string, f.K),
		TermWeights: make([][]float64, f.K),
		Labels:      labels,
	}
	for t := 0; t < f.K; t++ {
		for _, tw := range tt[t] {
			mb.TopTerms[t] = append(mb.TopTerms[t], tw.Term)
			mb.TermWeights[t] = append(mb.TermWeights[t], tw.Weight)
		}
	}

	docs, _ := f.DocTopics.Dims()
	mb.DocTopics = make([][]float64, docs)
	for d := 0; d < docs; d++ {
		mb.DocTopics[d] = append([]float64(nil), f.DocTopics.RawRowView(d)...)
	}

	return SQLStore.SaveModel(context.Background(), fp, mb)
}

// crosstab - topic x party document counts from positionally aligned labels
func crosstab(bills []db.Bill, labels []string) ([]string, []string, [][]int) {
	topicset := make(map[string]bool)
	partyset := make(map[string]bool)
	for i := 0; i < len(bills); i++ {
		topicset[labels[i]] = true
		partyset[bills[i].Party] = true
	}

	topics := StringMapKeysIntoSlice(topicset)
	parties := StringMapKeysIntoSlice(partyset)

	tpos := make(map[string]int)
	for i, t := range topics {
		tpos[t] = i
	}
	ppos := make(map[string]int)
	for i, p := range parties {
		ppos[p] = i
	}

	counts := make([][]int, len(topics))
	for i := range counts {
		counts[i] = make([]int, len(parties))
	}
	for i := 0; i < len(bills); i++ {
		counts[tpos[labels[i]]][ppos[bills[i].Party]]++
	}
	return topics, parties, counts
}

// fitreport - top terms per topic, the topic x party crosstab, and the t-SNE scatter
func fitreport(path string, pc *PreparedCorpus, f *tm.Fitted, topiclabels []string) error {
	var cc []components.Charter

	tt := f.TopTerms(TOPTERMSPERTOPIC)
	for t := 0; t < f.K; t++ {
		label := fmt.Sprintf("topic %d", t+1)
		if t < len(topiclabels) {
			label = topiclabels[t]
		}
		cc = append(cc, viz.TopTermsChart(label, tt[t]))
	}

	labels := numberedlabels(f.DominantTopics(), topiclabels)
	topics, parties, counts := crosstab(pc.Bills, labels)
	cc = append(cc, viz.CrosstabChart(topics, parties, counts))

	cc = append(cc, viz.TopicScatter(f, topiclabels))

	return viz.WritePage(path, cc...)
}

// toptermstrings - the top terms without their weights, for the coherence scorer
func toptermstrings(f *tm.Fitted) [][]string {
	tt := f.TopTerms(TOPTERMSPERTOPIC)
	out := make([][]string, len(tt))
	for i := range tt {
		for _, tw := range tt[i] {
			out[i] = append(out[i], tw.Term)
		}
	}
	return out
}

func reportpath(template string, id string) string {
	return filepath.Join(Config.ReportDir, fmt.Sprintf(template, id))
}

// loadseeddict - the -sd path, or the -lx lexicon-truncation shortcut
func loadseeddict() (*tm.SeedDict, error) {
	const (
		PERTOPIC = 8
	)

	if Config.SeedDictFile != "" {
		return tm.LoadSeedDict(Config.SeedDictFile)
	}
	if Config.LexiconFile != "" {
		lex, err := tm.LoadLexicon(Config.LexiconFile)
		if err != nil {
			return nil, err
		}
		return tm.TruncateLexicon(lex, Config.TopicCount, PERTOPIC)
	}
	return nil, fmt.Errorf("no seed dictionary was configured; use -sd (or -lx)")
}

// sortjobs - newest first, for the frontpage listing
func sortjobs(jj []Job) []Job {
	sort.Slice(jj, func(i, j int) bool { return jj[i].Launched.After(jj[j].Launched) })
	return jj
}
