//    BillTopicServer
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package main

import (
	"fmt"
	"time"
)

//
// BOT MODE
//

// "-bm" runs the full workup unattended and exits: the perplexity sweep, the
// four heuristics, a plain fit at the configured topic count, and a seeded fit
// if a dictionary was configured; reports land in Config.ReportDir

func sweepbot() {
	const (
		MSG1 = "sweepbot: %s job '%s' done: %s"
		MSG2 = "sweepbot: %s job '%s' FAILED: %s"
		MSG3 = "sweepbot: no seed dictionary configured; skipping the seeded fit"
		MSG4 = "sweepbot finished; reports are in '%s'"
	)

	start := time.Now()

	report := func(j Job) {
		done, _ := AllJobs.Get(j.ID)
		if done.Failed {
			msg(fmt.Sprintf(MSG2, done.Type, done.ID, done.Summary), MSGWARN)
		} else {
			msg(fmt.Sprintf(MSG1, done.Type, done.ID, done.Summary), MSGNOTE)
		}
	}

	j := AllJobs.NewJob("sweep")
	RunSweepJob(j)
	report(j)

	j = AllJobs.NewJob("heuristics")
	RunHeuristicsJob(j)
	report(j)

	j = AllJobs.NewJob("fit")
	RunFitJob(j, Config.TopicCount)
	report(j)

	if dict, err := loadseeddict(); err != nil {
		msg(MSG3, MSGFYI)
	} else {
		j = AllJobs.NewJob("seeded")
		RunSeededJob(j, dict)
		report(j)
	}

	msg(fmt.Sprintf(MSG4, Config.ReportDir), MSGMAND)
	timetracker("B", "bot run complete", start, start)
}
