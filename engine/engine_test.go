package engine

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/npillmayer/blockdom/block"
	"github.com/npillmayer/blockdom/config"
	"github.com/npillmayer/blockdom/syntax"
	"github.com/npillmayer/blockdom/transform/linkcheck"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

const doc = `# Intro

{{toc/}}

Text with a note{{footnote}}see here{{/footnote}} and a [link](#usage).

## Usage

More text.
`

func TestConvertMarkdownToXHTML(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "blockdom.engine")
	defer teardown()
	//
	e, err := New(nil)
	if err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	res, err := e.Convert(&out, strings.NewReader(doc), "", "")
	if err != nil {
		t.Fatal(err)
	}
	html := out.String()
	t.Logf("output:\n%s", html)
	for _, frag := range []string{
		`<h1 id="intro">Intro</h1>`,
		`<div data-macro="toc">`,
		`<a href="#usage">Usage</a>`,
		`<sup><a href="#fn-1">1</a></sup>`,
		`<li><a id="fn-1"></a>see here <a href="#fnref-1">↩</a></li>`,
		`class="footnotes"`,
	} {
		if !strings.Contains(html, frag) {
			t.Errorf("expected output to contain %q", frag)
		}
	}
	report := res.LinkReport()
	if report == nil {
		t.Fatalf("expected link report")
	}
	if !report.OK() {
		t.Errorf("expected no broken links, have %v", report.Problems)
	}
}

func TestConvertToXMLAndBack(t *testing.T) {
	cfg := config.Default()
	cfg.Transformations = nil
	e, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	if _, err := e.Convert(&out, strings.NewReader(doc), syntax.Markdown, "xml"); err != nil {
		t.Fatal(err)
	}
	root, err := e.Parse(&out, syntax.XML)
	if err != nil {
		t.Fatal(err)
	}
	calls := root.FindAll(block.Descendant, block.MatchKind(block.MacroKind))
	if len(calls) != 2 {
		t.Errorf("expected 2 unexecuted macro calls, have %d", len(calls))
	}
}

func TestStrictLinks(t *testing.T) {
	cfg := config.Default()
	cfg.LinkCheck.Strict = true
	e, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	_, err = e.Convert(&out, strings.NewReader("[x](#missing)\n"), "", "plain")
	if !errors.Is(err, linkcheck.ErrBrokenLinks) {
		t.Errorf("expected broken links, is %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("expected no output for failed conversion")
	}
}

func TestUnknownSyntax(t *testing.T) {
	e, _ := New(nil)
	var out bytes.Buffer
	_, err := e.Convert(&out, strings.NewReader("x"), "", "docx")
	if !errors.Is(err, syntax.ErrUnknownSyntax) {
		t.Errorf("expected unknown syntax, is %v", err)
	}
	if _, err = Parser("plain"); !errors.Is(err, syntax.ErrUnknownSyntax) {
		t.Errorf("expected plain text to have no parser, is %v", err)
	}
}

func TestInvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Transformations = []string{"nope"}
	if _, err := New(cfg); !errors.Is(err, config.ErrInvalid) {
		t.Errorf("expected invalid configuration, is %v", err)
	}
}

func TestConvertXHTML(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "blockdom.syntax")
	defer teardown()
	e, _ := New(nil)
	var out bytes.Buffer
	src := `<h2 id="x">Hi</h2><p>a <em>b</em></p>`
	if _, err := e.Convert(&out, strings.NewReader(src), syntax.XHTML, syntax.XHTML); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{`<h2 id="x">Hi</h2>`, `<p>a <em>b</em></p>`} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("expected output to contain %q, is %q", want, out.String())
		}
	}
}

func TestConvertRejectsNegativeLevel(t *testing.T) {
	e, _ := New(nil)
	var out bytes.Buffer
	src := `<document><emptylines level="-1"/></document>`
	if _, err := e.Convert(&out, strings.NewReader(src), syntax.XML, syntax.Markdown); err == nil {
		t.Errorf("expected negative level to be rejected")
	}
}
