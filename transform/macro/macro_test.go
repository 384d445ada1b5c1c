package macro

import (
	"errors"
	"testing"

	"github.com/npillmayer/blockdom/block"
	"github.com/npillmayer/blockdom/block/blockdbg"
	"github.com/npillmayer/blockdom/transform"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

// recorder is a macro which records its executions and produces a single word.
type recorder struct {
	id   string
	prio int
	log  *[]string
	out  func(*Context) ([]*block.Node, error)
}

func (r recorder) ID() string    { return r.id }
func (r recorder) Priority() int { return r.prio }
func (r recorder) Execute(mctx *Context) ([]*block.Node, error) {
	*r.log = append(*r.log, r.id+":"+mctx.Param("n"))
	if r.out != nil {
		return r.out(mctx)
	}
	return []*block.Node{block.NewWord(r.id)}, nil
}

func call(id, n string) *block.Node {
	return block.NewMacro(id, map[string]string{"n": n}, "", false)
}

func run(t *testing.T, x *Executor, doc *block.Node) error {
	t.Helper()
	err := transform.Run(transform.NewContext(doc, ""), x)
	t.Logf("tree after macros:\n%s", blockdbg.Dump(doc))
	return err
}

func TestExecutionOrder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "blockdom.transform")
	defer teardown()
	//
	var log []string
	reg := NewRegistry(
		recorder{id: "late", prio: 50, log: &log},
		recorder{id: "early", prio: 10, log: &log},
	)
	doc := block.NewDocument(call("late", "1"), block.NewParagraph(call("early", "2")),
		call("early", "3"))
	if err := run(t, NewExecutor(reg), doc); err != nil {
		t.Fatal(err)
	}
	expected := []string{"early:2", "early:3", "late:1"}
	if len(log) != 3 || log[0] != expected[0] || log[1] != expected[1] || log[2] != expected[2] {
		t.Errorf("expected execution order %v, is %v", expected, log)
	}
	markers := doc.FindAll(block.Descendant, block.MatchKind(block.MacroMarkerKind))
	if len(markers) != 3 {
		t.Fatalf("expected 3 macro markers, have %d", len(markers))
	}
	if markers[0].MacroID != "late" || markers[0].Param("n") != "1" {
		t.Errorf("expected marker of first call to keep id and params, is %v", markers[0])
	}
	if w := markers[0].FirstChild(); w == nil || w.Text != "late" {
		t.Errorf("expected marker to wrap the macro result, has %v", w)
	}
	if doc.FindFirst(block.Descendant, block.MatchKind(block.MacroKind)) != nil {
		t.Errorf("expected no macro calls left")
	}
}

func TestMacroCreatingCalls(t *testing.T) {
	var log []string
	reg := NewRegistry(
		recorder{id: "outer", prio: 10, log: &log, out: func(mctx *Context) ([]*block.Node, error) {
			return []*block.Node{call("inner", "x")}, nil
		}},
		recorder{id: "inner", prio: 5, log: &log},
	)
	doc := block.NewDocument(call("outer", "1"))
	if err := run(t, NewExecutor(reg), doc); err != nil {
		t.Fatal(err)
	}
	if len(log) != 2 || log[1] != "inner:x" {
		t.Errorf("expected inner call to be executed, log is %v", log)
	}
	inner := doc.FindFirst(block.Descendant, block.MatchMacroMarkers("inner"))
	if inner == nil || inner.Parent().MacroID != "outer" {
		t.Errorf("expected inner marker nested in outer marker")
	}
}

func TestUnknownMacro(t *testing.T) {
	doc := block.NewDocument(call("nope", "1"))
	if err := run(t, NewExecutor(NewRegistry()), doc); err != nil {
		t.Fatalf("expected unknown macro to be reported in document, got error %v", err)
	}
	marker := doc.FirstChild()
	if marker.Kind != block.MacroMarkerKind || marker.MacroID != "nope" {
		t.Fatalf("expected marker for unknown macro, is %v", marker)
	}
	report := marker.FirstChild()
	if report == nil || report.Param("class") != ErrorClass {
		t.Errorf("expected error paragraph, is %v", report)
	}
	//
	doc = block.NewDocument(call("nope", "1"))
	x := NewExecutor(NewRegistry())
	x.Strict = true
	if err := run(t, x, doc); !errors.Is(err, ErrUnknownMacro) {
		t.Errorf("expected ErrUnknownMacro in strict mode, is %v", err)
	}
}

func TestMacroLoop(t *testing.T) {
	var log []string
	reg := NewRegistry(recorder{id: "again", log: &log, out: func(*Context) ([]*block.Node, error) {
		return []*block.Node{call("again", "")}, nil
	}})
	x := NewExecutor(reg)
	x.Limit = 20
	err := transform.Run(transform.NewContext(block.NewDocument(call("again", "")), ""), x)
	if len(log) != 20 {
		t.Errorf("expected 20 executions, have %d", len(log))
	}
	if !errors.Is(err, ErrMacroLoop) {
		t.Errorf("expected ErrMacroLoop, is %v", err)
	}
}

func TestContent(t *testing.T) {
	var log []string
	reg := NewRegistry(recorder{id: "echo", log: &log, out: func(mctx *Context) ([]*block.Node, error) {
		return mctx.Content()
	}})
	doc := block.NewDocument(block.NewParagraph(block.NewMacro("echo", nil, "hello you", true)))
	if err := run(t, NewExecutor(reg), doc); err != nil {
		t.Fatal(err)
	}
	if s := block.TextOf(doc); s != "hello you" {
		t.Errorf("expected content to be echoed, is %q", s)
	}
}
