package block

import (
	"errors"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestBuilderBalanced(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "blockdom.block")
	defer teardown()
	//
	b := NewBuilder()
	b.StartContainer() // document
	b.StartContainer() // paragraph
	b.AppendLeaf(NewWord("Hello"))
	b.AppendLeaf(NewSpace())
	b.StartContainer() // bold
	b.AppendLeaf(NewWord("world"))
	children, err := b.EndContainer()
	if err != nil {
		t.Fatal(err)
	}
	b.AppendLeaf(NewFormat(Bold, children...))
	children, err = b.EndContainer()
	if err != nil {
		t.Fatal(err)
	}
	b.AppendLeaf(NewParagraph(children...))
	b.AppendLeaf(NewHorizontalLine())
	root, err := b.Finalize()
	if err != nil {
		t.Fatalf("expected balanced build to succeed, failed: %v", err)
	}
	if root.Kind != DocumentKind || root.Parent() != nil {
		t.Errorf("expected a parentless document root, is %v", root)
	}
	// 6 leaves appended: 3 words/spaces, format, paragraph, hline
	if n := len(FindAll(root, Descendant, nil)); n != 6 {
		t.Logf("tree =\n%s", printTree(root))
		t.Errorf("expected 6 descendants, have %d", n)
	}
	if b.Depth() != 0 {
		t.Errorf("expected empty stack after finalize, depth is %d", b.Depth())
	}
}

func TestBuilderTooManyEnds(t *testing.T) {
	b := NewBuilder()
	_, err := b.EndContainer()
	if err == nil {
		t.Fatal("expected EndContainer on empty stack to fail")
	}
	if !errors.Is(err, ErrStructure) {
		t.Errorf("expected a structural error, is %v", err)
	}
	if !strings.Contains(err.Error(), "too many end calls") {
		t.Errorf("unexpected error message: %v", err)
	}
	if err := b.AppendLeaf(NewWord("x")); !errors.Is(err, ErrStructure) {
		t.Errorf("expected AppendLeaf without container to fail, error is %v", err)
	}
	if _, err := b.Finalize(); !errors.Is(err, ErrStructure) {
		t.Errorf("expected Finalize without container to fail, error is %v", err)
	}
}

func TestBuilderMissingEnds(t *testing.T) {
	b := NewBuilder()
	b.StartContainer()
	b.StartContainer()
	b.StartContainer()
	b.AppendLeaf(NewWord("x"))
	_, err := b.Finalize()
	var serr *StructuralError
	if !errors.As(err, &serr) {
		t.Fatalf("expected a *StructuralError, have %v", err)
	}
	if serr.Missing != 2 {
		t.Errorf("expected 2 missing end calls, error says %d", serr.Missing)
	}
	if !strings.Contains(err.Error(), "2 calls missing") {
		t.Errorf("expected message to name the missing calls, is %q", err.Error())
	}
}

func TestBuilderDocumentPassthrough(t *testing.T) {
	doc := NewDocument(NewParagraph(NewWord("nested")))
	b := NewBuilder()
	b.StartContainer()
	b.AppendLeaf(doc)
	root, err := b.Finalize()
	if err != nil {
		t.Fatal(err)
	}
	if root != doc {
		t.Errorf("expected pre-built document to be returned as is, got %v", root)
	}
}

func TestBuilderWrapsNonDocument(t *testing.T) {
	p := NewParagraph()
	b := NewBuilder()
	b.StartContainer()
	b.AppendLeaf(p)
	root, _ := b.Finalize()
	if root == p || root.Kind != DocumentKind || p.Parent() != root {
		t.Errorf("expected paragraph to be wrapped into a new document, root is %v", root)
	}
	b = NewBuilder()
	b.StartContainer()
	b.AppendLeaf(NewDocument())
	b.AppendLeaf(NewDocument())
	root, _ = b.Finalize()
	if root.ChildCount() != 2 {
		t.Errorf("expected two documents to be wrapped, root has %d children", root.ChildCount())
	}
}
