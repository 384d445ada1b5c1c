package engine

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/npillmayer/blockdom/syntax"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestConvertAll(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "blockdom.engine")
	defer teardown()
	//
	e, err := New(nil)
	if err != nil {
		t.Fatal(err)
	}
	var jobs []Job
	for i := 0; i < 25; i++ {
		jobs = append(jobs, Job{
			Name:  fmt.Sprintf("doc%d", i),
			Input: strings.NewReader(fmt.Sprintf("# Doc %d\n\n{{toc/}}\n", i)),
			To:    syntax.Plain,
		})
	}
	jobs = append(jobs, Job{Name: "bad", Input: strings.NewReader("x"), From: "docx"})
	results := e.ConvertAll(jobs)
	if len(results) != len(jobs) {
		t.Fatalf("expected %d results, have %d", len(jobs), len(results))
	}
	for i, r := range results[:25] {
		if r.Name != jobs[i].Name {
			t.Errorf("expected result #%d for %s, is for %s", i, jobs[i].Name, r.Name)
		}
		if r.Err != nil {
			t.Errorf("job %s failed: %v", r.Name, r.Err)
		}
		expected := fmt.Sprintf("Doc %d\n", i)
		if !strings.HasPrefix(string(r.Output), expected) {
			t.Errorf("expected output of %s to start with %q, is %q", r.Name, expected, r.Output)
		}
	}
	if last := results[25]; !errors.Is(last.Err, syntax.ErrUnknownSyntax) {
		t.Errorf("expected last job to fail with unknown syntax, is %v", last.Err)
	}
	if e.ConvertAll(nil) != nil {
		t.Errorf("expected no results for no jobs")
	}
}
