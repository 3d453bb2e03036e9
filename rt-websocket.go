//    BillTopicServer
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

var upgrader = websocket.Upgrader{}

// RtWebsocket - the client sends a job ID and this will output the status of
// the job continuously while the job remains active
func RtWebsocket(c echo.Context) error {
	// https://echo.labstack.com/cookbook/websocket/

	ws, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}
	defer ws.Close()

	type ReplyJS struct {
		Active   string `json:"active"`
		TotalWrk int    `json:"Poolofwork"`
		Remain   int    `json:"Remaining"`
		Msg      string `json:"Statusmessage"`
		Elapsed  string `json:"Elapsed"`
		ID       string `json:"ID"`
	}

	for {
		// Read
		_, m, e := ws.ReadMessage()
		if e != nil {
			msg("RtWebsocket(): ws failed to read: breaking", MSGFYI)
			break
		}

		// will yield: websocket received: "205da19d-..."
		// the bug-trap is the quotes around that string
		bs := strings.Replace(string(m), `"`, "", -1)

		j, found := AllJobs.Get(bs)
		if !found {
			continue
		}

		for {
			j, found = AllJobs.Get(bs)
			if !found {
				break
			}

			r := ReplyJS{
				Active:   "is_active",
				TotalWrk: j.Total,
				Remain:   j.Remain,
				Msg:      fmt.Sprintf("running a %s job", j.Type),
				Elapsed:  fmt.Sprintf("%.1fs", time.Now().Sub(j.Launched).Seconds()),
				ID:       j.ID,
			}

			if j.Finished {
				r.Active = "inactive"
				r.Msg = j.Summary
			}

			// Write
			js, y := json.Marshal(r)
			chke(y)

			if er := ws.WriteMessage(websocket.TextMessage, js); er != nil {
				msg("RtWebsocket(): ws failed to write: breaking", MSGFYI)
				break
			}

			if j.Finished {
				break
			}

			time.Sleep(WSPOLLWAIT)
		}
	}
	return nil
}
