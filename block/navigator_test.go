package block

import (
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	tp "github.com/xlab/treeprint"
)

// testTree builds root → [A[B, C[D]], E].
type testTree struct {
	root, a, b, c, d, e *Node
}

func buildTestTree() testTree {
	t := testTree{
		b: NewWord("b"),
		d: NewWord("d"),
	}
	t.c = NewFormat(Bold, t.d)
	t.a = NewParagraph(t.b, t.c)
	t.e = NewParagraph()
	t.root = NewDocument(t.a, t.e)
	return t
}

func (t testTree) name(n *Node) string {
	switch n {
	case t.root:
		return "root"
	case t.a:
		return "A"
	case t.b:
		return "B"
	case t.c:
		return "C"
	case t.d:
		return "D"
	case t.e:
		return "E"
	}
	return "?"
}

func (t testTree) names(nodes []*Node) string {
	s := make([]string, len(nodes))
	for i, n := range nodes {
		s[i] = t.name(n)
	}
	return strings.Join(s, ",")
}

func printTree(n *Node) string {
	p := tp.New()
	ppt(p, n)
	return p.String()
}

func ppt(p tp.Tree, n *Node) {
	if n.ChildCount() == 0 {
		p.AddNode(n.String())
		return
	}
	branch := p.AddBranch(n.String())
	for _, ch := range n.Children() {
		ppt(branch, ch)
	}
}

func TestNavigateAxes(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "blockdom.block")
	defer teardown()
	//
	tt := buildTestTree()
	var tests = []struct {
		start    *Node
		axis     Axis
		expected string
	}{
		{tt.root, DescendantOrSelf, "root,A,B,C,D,E"},
		{tt.root, Descendant, "A,B,C,D,E"},
		{tt.b, FollowingSibling, "C"},
		{tt.c, FollowingSibling, ""},
		{tt.e, PrecedingSibling, "A"},
		{tt.c, PrecedingSibling, "B"},
		{tt.d, AncestorOrSelf, "D,C,A,root"},
		{tt.d, Ancestor, "C,A,root"},
		{tt.b, Following, "C,D,E"},
		{tt.d, Following, "E"},
		{tt.e, Preceding, "A,B,C,D"},
		{tt.d, Preceding, "B"},
		{tt.root, Child, "A,E"},
		{tt.c, Parent, "A"},
		{tt.c, Self, "C"},
		{tt.root, Parent, ""},
		{tt.root, Ancestor, ""},
		{tt.b, Child, ""},
		{tt.b, Descendant, ""},
	}
	for i, test := range tests {
		result := tt.names(FindAll(test.start, test.axis, nil))
		if result != test.expected {
			t.Logf("tree =\n%s", printTree(tt.root))
			t.Errorf("test %d: expected %s from %s to be [%s], is [%s]", i, test.axis,
				tt.name(test.start), test.expected, result)
		}
	}
}

func TestFindFirstEqualsHeadOfFindAll(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "blockdom.block")
	defer teardown()
	//
	tt := buildTestTree()
	all := []*Node{tt.root, tt.a, tt.b, tt.c, tt.d, tt.e}
	matchers := []Matcher{nil, MatchKind(WordKind), MatchKind(ParagraphKind), MatchKind(TableKind)}
	for axis := Self; axis <= Preceding; axis++ {
		for _, start := range all {
			for j, m := range matchers {
				var head *Node
				if found := FindAll(start, axis, m); len(found) > 0 {
					head = found[0]
				}
				first := FindFirst(start, axis, m)
				if first != head {
					t.Errorf("%s from %s, matcher #%d: expected first to be %s, is %s",
						axis, tt.name(start), j, tt.name(head), tt.name(first))
				}
			}
		}
	}
}

type recordingMatcher struct {
	inner   Matcher
	visited []*Node
}

func (r *recordingMatcher) Match(n *Node) bool {
	r.visited = append(r.visited, n)
	return r.inner.Match(n)
}

func TestFindFirstStopsEarly(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "blockdom.block")
	tracer().SetTraceLevel(tracing.LevelError)
	defer teardown()
	//
	tt := buildTestTree()
	rec := &recordingMatcher{inner: MatchKind(FormatKind)}
	c := FindFirst(tt.root, Descendant, rec)
	if c != tt.c {
		t.Fatalf("expected to find C, found %s", tt.name(c))
	}
	if visited := tt.names(rec.visited); visited != "A,B,C" {
		t.Errorf("expected search to visit A,B,C only, visited %s", visited)
	}
}

func TestFindAllIsIdempotent(t *testing.T) {
	tt := buildTestTree()
	first := FindAll(tt.root, Descendant, MatchKind(WordKind))
	second := FindAll(tt.root, Descendant, MatchKind(WordKind))
	if tt.names(first) != tt.names(second) || tt.names(first) != "B,D" {
		t.Errorf("expected two queries to yield B,D, are %s and %s", tt.names(first), tt.names(second))
	}
}

func TestFindNothingIsEmpty(t *testing.T) {
	tt := buildTestTree()
	if found := FindAll(tt.root, Descendant, MatchKind(TableKind)); len(found) != 0 {
		t.Errorf("expected no tables, found %d", len(found))
	}
	if n := FindFirst(tt.root, Parent, nil); n != nil {
		t.Errorf("expected root to have no parent, has %v", n)
	}
	if n := FindFirst(nil, Descendant, nil); n != nil {
		t.Errorf("expected nil start to yield nil, is %v", n)
	}
}

func TestNavigationFollowsMutation(t *testing.T) {
	tt := buildTestTree()
	x := NewWord("x")
	tt.a.InsertAfter(x, tt.b)
	if r := tt.names(FindAll(tt.b, Following, nil)); r != "?,C,D,E" {
		t.Errorf("expected following of B to be ?,C,D,E after insert, is %s", r)
	}
	tt.root.RemoveChild(tt.a)
	if r := tt.names(FindAll(tt.e, Preceding, nil)); r != "" {
		t.Errorf("expected nothing to precede E after removal of A, is %s", r)
	}
	if r := tt.names(FindAll(tt.d, AncestorOrSelf, nil)); r != "D,C,A" {
		t.Errorf("expected detached subtree to end at A, is %s", r)
	}
}

func TestAxisByName(t *testing.T) {
	for a := Self; a <= Preceding; a++ {
		if b, ok := AxisByName(a.String()); !ok || b != a {
			t.Errorf("expected axis %q to round-trip, got %v", a, b)
		}
	}
	if _, ok := AxisByName("sideways"); ok {
		t.Error("expected unknown axis name to fail")
	}
}
