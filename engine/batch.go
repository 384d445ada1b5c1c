package engine

import (
	"bytes"
	"io"
	"runtime"
	"sort"
	"sync"
)

// Minimum and maximum number of concurrent workers for a batch conversion.
const (
	minWorkerCount int = 3
	maxWorkerCount int = 10
)

// Job is a document to be converted in a batch.
type Job struct {
	Name  string // identifies the job in results
	Input io.Reader
	From  string // input syntax, configured input syntax if empty
	To    string // output syntax, configured output syntax if empty
}

// JobResult is the outcome of converting a single job.
type JobResult struct {
	Name   string
	Output []byte
	Result *Result
	Err    error
}

// workPackage is what batch workers receive: a job and its serial number,
// which keeps results in input order.
type workPackage struct {
	job    Job
	serial int
}

type jobResult struct {
	JobResult
	serial int
}

// ConvertAll converts a batch of documents concurrently. Every document gets
// its own tree, so workers never share state. Results are returned in the
// order of jobs; a failing job does not stop the others.
func (e *Engine) ConvertAll(jobs []Job) []JobResult {
	if len(jobs) == 0 {
		return nil
	}
	input := make(chan workPackage, len(jobs))
	results := make(chan jobResult, len(jobs))
	var workload sync.WaitGroup
	n := workerCount(len(jobs))
	for i := 0; i < n; i++ {
		wno := i + 1
		workload.Add(1)
		go func() {
			defer workload.Done()
			for wp := range input { // get work packages until drained
				var out bytes.Buffer
				res, err := e.Convert(&out, wp.job.Input, wp.job.From, wp.job.To)
				tracer().Debugf("batch worker #%d finished %s | %d", wno, wp.job.Name, wp.serial)
				results <- jobResult{JobResult{Name: wp.job.Name, Output: out.Bytes(),
					Result: res, Err: err}, wp.serial}
			}
		}()
	}
	for i, job := range jobs {
		input <- workPackage{job: job, serial: i}
	}
	close(input)
	workload.Wait()
	close(results)
	collected := make([]jobResult, 0, len(jobs))
	for r := range results {
		collected = append(collected, r)
	}
	sort.Slice(collected, func(i, j int) bool { return collected[i].serial < collected[j].serial })
	out := make([]JobResult, len(collected))
	for i, r := range collected {
		out[i] = r.JobResult
	}
	return out
}

func workerCount(jobs int) int {
	n := runtime.NumCPU()
	if n > maxWorkerCount {
		n = maxWorkerCount
	} else if n < minWorkerCount {
		n = minWorkerCount
	}
	if n > jobs {
		n = jobs
	}
	return n
}
