//    BillTopicServer
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package main

import (
	"bytes"
	"fmt"
	"net/http"
	"runtime"
	"text/template"

	"github.com/labstack/echo/v4"
)

//
// ROUTING
//

const FRONTPAGEHTML = `<!DOCTYPE html>
<html lang="en">
<head>
	<meta charset="utf-8">
	<title>BillTopicServer</title>
	<style>
		body { font-family: sans-serif; margin: 2em; }
		table { border-collapse: collapse; }
		td, th { border: 1px solid #999; padding: 0.3em 0.8em; }
		.failed { color: #a00; }
		.done { color: #070; }
	</style>
</head>
<body>
<h1>BillTopicServer (v.{{.version}})</h1>
<p>{{.env}}</p>
<p>corpus: {{.corpussize}} documents</p>
<p>
	launch:
	<a href="/jobs/sweep">perplexity sweep</a> |
	<a href="/jobs/fit">fit ({{.topiccount}} topics)</a> |
	<a href="/jobs/seeded">seeded fit</a> |
	<a href="/jobs/heuristics">topic-count heuristics</a>
</p>
<h2>jobs</h2>
<table>
	<tr><th>id</th><th>type</th><th>launched</th><th>progress</th><th>summary</th><th>report</th><th></th></tr>
	{{range .jobs}}
	<tr>
		<td>{{.ID}}</td>
		<td>{{.Type}}</td>
		<td>{{.Launched.Format "15:04:05"}}</td>
		<td>{{if .Failed}}<span class="failed">failed</span>{{else if .Finished}}<span class="done">done</span>{{else if ge .Total 0}}{{.Remain}}/{{.Total}} left{{else}}running{{end}}</td>
		<td>{{.Summary}}</td>
		<td>{{if and .Finished (not .Failed)}}<a href="/reports/{{.ID}}">report</a>{{end}}</td>
		<td>{{if .Finished}}<a href="/jobs/delete/{{.ID}}">clear</a>{{end}}</td>
	</tr>
	{{end}}
</table>
</body>
</html>
`

// RtFrontpage - send the html for "/"
func RtFrontpage(c echo.Context) error {
	env := fmt.Sprintf("%s: %s - %s (%d workers)", runtime.Version(), runtime.GOOS, runtime.GOARCH, Config.WorkerCount)

	subs := map[string]interface{}{
		"version":    VERSION,
		"env":        env,
		"corpussize": len(TheCorpus),
		"topiccount": Config.TopicCount,
		"jobs":       sortjobs(AllJobs.All()),
	}

	tmpl, e := template.New("fp").Parse(FRONTPAGEHTML)
	chke(e)

	var b bytes.Buffer
	err := tmpl.Execute(&b, subs)
	chke(err)

	return c.HTML(http.StatusOK, b.String())
}
