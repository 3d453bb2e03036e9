//    BillTopicServer
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package main

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

//
// THE JOB VAULT
//

// modeling runs take minutes; routes only launch them and hand back an ID;
// the websocket polls the vault for progress; reports are fetched when done

var (
	AllJobs = &JobVault{JobMap: make(map[string]Job)}
)

type Job struct {
	ID       string
	Type     string // "sweep", "fit", "seeded", "heuristics"
	Launched time.Time
	Total    int // work items in the job; (k, fold) pairs for a sweep
	Remain   int
	Finished bool
	Failed   bool
	Summary  string
	Report   string // path of the rendered HTML, once it exists
}

type JobVault struct {
	JobMap map[string]Job
	mutex  sync.RWMutex
}

// NewJob - register a job and get its ID back
func (jv *JobVault) NewJob(jobtype string) Job {
	j := Job{
		ID:       uuid.New().String(),
		Type:     jobtype,
		Launched: time.Now(),
		Remain:   -1,
		Total:    -1,
	}
	jv.mutex.Lock()
	defer jv.mutex.Unlock()
	jv.JobMap[j.ID] = j
	return j
}

func (jv *JobVault) SetProgress(id string, remain int, total int) {
	jv.mutex.Lock()
	defer jv.mutex.Unlock()
	if j, ok := jv.JobMap[id]; ok {
		j.Remain = remain
		j.Total = total
		jv.JobMap[id] = j
	}
}

func (jv *JobVault) Finish(id string, summary string, report string) {
	jv.mutex.Lock()
	defer jv.mutex.Unlock()
	if j, ok := jv.JobMap[id]; ok {
		j.Finished = true
		j.Remain = 0
		j.Summary = summary
		j.Report = report
		jv.JobMap[id] = j
	}
}

func (jv *JobVault) Fail(id string, e error) {
	jv.mutex.Lock()
	defer jv.mutex.Unlock()
	if j, ok := jv.JobMap[id]; ok {
		j.Finished = true
		j.Failed = true
		j.Summary = e.Error()
		jv.JobMap[id] = j
	}
}

func (jv *JobVault) Get(id string) (Job, bool) {
	jv.mutex.RLock()
	defer jv.mutex.RUnlock()
	j, ok := jv.JobMap[id]
	return j, ok
}

func (jv *JobVault) All() []Job {
	jv.mutex.RLock()
	defer jv.mutex.RUnlock()
	jj := make([]Job, 0, len(jv.JobMap))
	for _, j := range jv.JobMap {
		jj = append(jj, j)
	}
	return jj
}

func (jv *JobVault) Delete(id string) {
	jv.mutex.Lock()
	defer jv.mutex.Unlock()
	delete(jv.JobMap, id)
}
