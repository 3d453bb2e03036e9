//    BillTopicServer
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package main

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

//
// JOB ROUTES
//

// the launch routes return the registered Job as JSON immediately; the work
// itself runs in its own goroutine and reports through AllJobs

// RtJobSweep - launch the cross-validated perplexity sweep
func RtJobSweep(c echo.Context) error {
	j := AllJobs.NewJob("sweep")
	go RunSweepJob(j)
	return c.JSONPretty(http.StatusOK, j, JSONINDENT)
}

// RtJobFit - launch an unsupervised fit; "?k=NN" overrides the configured topic count
func RtJobFit(c echo.Context) error {
	k := Config.TopicCount
	if qk := c.QueryParam("k"); qk != "" {
		kk, err := strconv.Atoi(qk)
		if err != nil || kk < 2 {
			return c.String(http.StatusBadRequest, fmt.Sprintf("'%s' is not a usable topic count", qk))
		}
		k = kk
	}

	j := AllJobs.NewJob("fit")
	go RunFitJob(j, k)
	return c.JSONPretty(http.StatusOK, j, JSONINDENT)
}

// RtJobSeeded - launch a seeded fit with the configured dictionary
func RtJobSeeded(c echo.Context) error {
	dict, err := loadseeddict()
	if err != nil {
		return c.String(http.StatusBadRequest, err.Error())
	}

	j := AllJobs.NewJob("seeded")
	go RunSeededJob(j, dict)
	return c.JSONPretty(http.StatusOK, j, JSONINDENT)
}

// RtJobHeuristics - launch the four topic-count diagnostics
func RtJobHeuristics(c echo.Context) error {
	j := AllJobs.NewJob("heuristics")
	go RunHeuristicsJob(j)
	return c.JSONPretty(http.StatusOK, j, JSONINDENT)
}

// RtJobList - every job the vault knows about, newest first
func RtJobList(c echo.Context) error {
	return c.JSONPretty(http.StatusOK, sortjobs(AllJobs.All()), JSONINDENT)
}

// RtJobCheck - one job's current state
func RtJobCheck(c echo.Context) error {
	j, ok := AllJobs.Get(c.Param("id"))
	if !ok {
		return c.String(http.StatusNotFound, fmt.Sprintf("no job '%s'", c.Param("id")))
	}
	return c.JSONPretty(http.StatusOK, j, JSONINDENT)
}

// RtJobDelete - drop a finished job from the vault; its persisted results stay in the store
func RtJobDelete(c echo.Context) error {
	j, ok := AllJobs.Get(c.Param("id"))
	if !ok {
		return c.String(http.StatusNotFound, fmt.Sprintf("no job '%s'", c.Param("id")))
	}
	if !j.Finished {
		return c.String(http.StatusConflict, fmt.Sprintf("job '%s' is still running", j.ID))
	}
	AllJobs.Delete(j.ID)
	return c.JSONPretty(http.StatusOK, j, JSONINDENT)
}

// RtJobModel - the persisted model blob of a finished fit, as JSON
func RtJobModel(c echo.Context) error {
	mb, err := SQLStore.FetchModel(c.Request().Context(), c.Param("id"))
	if err != nil {
		return c.String(http.StatusNotFound, err.Error())
	}
	return c.JSONPretty(http.StatusOK, mb, JSONINDENT)
}

// RtJobSweepRows - the persisted (k, fold, perplexity) rows of a finished sweep
func RtJobSweepRows(c echo.Context) error {
	rows, err := SQLStore.SweepRows(c.Request().Context(), c.Param("id"))
	if err != nil {
		return c.String(http.StatusInternalServerError, err.Error())
	}
	if len(rows) == 0 {
		return c.String(http.StatusNotFound, fmt.Sprintf("no sweep rows for '%s'", c.Param("id")))
	}
	return c.JSONPretty(http.StatusOK, rows, JSONINDENT)
}

// RtReport - serve the rendered HTML of a finished job
func RtReport(c echo.Context) error {
	j, ok := AllJobs.Get(c.Param("id"))
	if !ok {
		return c.String(http.StatusNotFound, fmt.Sprintf("no job '%s'", c.Param("id")))
	}
	if !j.Finished || j.Failed || j.Report == "" {
		return c.String(http.StatusNotFound, fmt.Sprintf("job '%s' has no report", j.ID))
	}
	return c.File(j.Report)
}
