//    BillTopicServer
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package main

import (
	"fmt"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// StartEchoServer - start serving; this blocks and does not return while the program remains alive
func StartEchoServer() {
	// https://echo.labstack.com/guide/

	const (
		LLOGFMT = "r: ${status}\tt: ${latency_human}\tu: ${uri}\n"
		RLOGFMT = "i: ${remote_ip}\t r: ${status}\tt: ${latency_human}\tu: ${uri}\n"
	)

	//
	// SETUP
	//

	e := echo.New()

	if Config.EchoLog == 3 {
		e.Use(middleware.Logger())
	} else if Config.EchoLog == 2 {
		e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{Format: RLOGFMT}))
	} else if Config.EchoLog == 1 {
		e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{Format: LLOGFMT}))
	}

	e.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(MAXECHOREQPERSECONDPERIP)))

	e.Use(middleware.Recover())

	if Config.Gzip {
		e.Use(middleware.GzipWithConfig(middleware.GzipConfig{Level: 5}))
	}

	//
	// BTS ROUTES
	//

	//
	// [a] frontpage ("rt-frontpage.go")
	//

	e.GET("/", RtFrontpage)

	//
	// [b] job launching and polling ("rt-jobs.go")
	//

	e.GET("/jobs/sweep", RtJobSweep)           // "u: /jobs/sweep"
	e.GET("/jobs/fit", RtJobFit)               // "u: /jobs/fit?k=20"
	e.GET("/jobs/seeded", RtJobSeeded)         // "u: /jobs/seeded"
	e.GET("/jobs/heuristics", RtJobHeuristics) // "u: /jobs/heuristics"
	e.GET("/jobs/list", RtJobList)
	e.GET("/jobs/check/:id", RtJobCheck)
	e.GET("/jobs/delete/:id", RtJobDelete)
	e.GET("/jobs/model/:id", RtJobModel)       // the persisted model blob as JSON
	e.GET("/jobs/sweeprows/:id", RtJobSweepRows)

	//
	// [c] reports ("rt-jobs.go")
	//

	e.GET("/reports/:id", RtReport) // "u: /reports/1f8f1d22-..."

	//
	// [d] websocket ("rt-websocket.go")
	//

	e.GET("/ws", RtWebsocket)

	e.HideBanner = true

	// the websocket hijacks its connection, so these do not cut the poll loop off
	e.Server.ReadTimeout = TIMEOUTRD
	e.Server.WriteTimeout = TIMEOUTWR

	e.Logger.Fatal(e.Start(fmt.Sprintf("%s:%d", Config.HostIP, Config.HostPort)))
}
