package block

import (
	"strconv"
	"strings"
	"testing"
)

func TestKindHierarchy(t *testing.T) {
	if !BulletedListKind.Is(ListKind) || !NumberedListKind.Is(ListKind) {
		t.Error("expected lists to be sub-kinds of ListKind")
	}
	if !TableHeadCellKind.Is(TableCellKind) {
		t.Error("expected head cells to be table cells")
	}
	if TableCellKind.Is(TableHeadCellKind) {
		t.Error("did not expect table cell to be a head cell")
	}
	for k := BlockKind; k < kindCount; k++ {
		if !k.Is(BlockKind) {
			t.Errorf("expected %s to be a block", k)
		}
		if l, ok := KindByName(k.String()); !ok || l != k {
			t.Errorf("expected kind %s to be found by name", k)
		}
	}
}

func TestKindMatcherMatchesSubKinds(t *testing.T) {
	doc := NewDocument(NewBulletedList(), NewParagraph(), NewNumberedList())
	lists := FindAll(doc, Child, MatchKind(ListKind))
	if len(lists) != 2 {
		t.Errorf("expected 2 lists, found %d", len(lists))
	}
}

func TestOrMatcher(t *testing.T) {
	m := Or(MatchKind(WordKind), MatchKind(SpaceKind))
	if !m.Match(NewWord("a")) || !m.Match(NewSpace()) {
		t.Error("expected word and space to match")
	}
	if m.Match(NewParagraph()) {
		t.Error("did not expect paragraph to match")
	}
}

type loggingMatcher struct {
	name   string
	result bool
	log    *[]string
}

func (l loggingMatcher) Match(n *Node) bool {
	*l.log = append(*l.log, l.name)
	return l.result
}

func TestOrMatcherOrderOfSideEffects(t *testing.T) {
	var log []string
	counter := NewCounter(nil)
	countFirst := Or(counter, loggingMatcher{"kind", true, &log})
	countFirst.Match(NewWord("x"))
	if counter.Count() != 1 || len(log) != 0 {
		t.Errorf("expected counter to fire and short-circuit, count=%d, log=%v", counter.Count(), log)
	}
	counter = NewCounter(nil)
	kindFirst := Or(loggingMatcher{"kind", true, &log}, counter)
	kindFirst.Match(NewWord("x"))
	if counter.Count() != 0 || strings.Join(log, ",") != "kind" {
		t.Errorf("expected counter not to fire, count=%d, log=%v", counter.Count(), log)
	}
	log = nil
	counter = NewCounter(nil)
	Or(loggingMatcher{"a", false, &log}, counter, loggingMatcher{"b", false, &log}).Match(NewSpace())
	if counter.Count() != 1 || strings.Join(log, ",") != "a" {
		t.Errorf("expected a, then counter, then stop; count=%d, log=%v", counter.Count(), log)
	}
}

func TestAndNotMatcher(t *testing.T) {
	w := NewWord("x").SetParam("class", "k")
	if !And(MatchKind(WordKind), HasParam("class", "k")).Match(w) {
		t.Error("expected word with class k to match")
	}
	if !HasParam("class", "").Match(w) || HasParam("id", "").Match(w) {
		t.Error("expected empty value to test for presence of parameter")
	}
	if Not(MatchKind(WordKind)).Match(w) {
		t.Error("expected negated word matcher not to match a word")
	}
}

func TestCounterMatcherPosition(t *testing.T) {
	tt := buildTestTree()
	counter := NewCounter(tt.c)
	found := FindAll(tt.root, DescendantOrSelf, counter)
	if len(found) != 6 {
		t.Errorf("expected counter to match every node, matched %d", len(found))
	}
	if !counter.Reached() || counter.Count() != 3 {
		t.Errorf("expected C at position 3, counter is at %d (reached=%v)", counter.Count(), counter.Reached())
	}
	counter = NewCounter(nil)
	FindAll(tt.root, Descendant, counter)
	if counter.Count() != 5 {
		t.Errorf("expected 5 descendants to be counted, counted %d", counter.Count())
	}
}

func TestExtractorFirstMatchWins(t *testing.T) {
	doc := NewDocument(
		NewParagraph().SetParam("n", "1"),
		NewParagraph(),
		NewParagraph().SetParam("n", "2"),
		NewParagraph().SetParam("n", "3"),
	)
	x := Extract(func(n *Node) (int, bool) {
		v, ok := n.LookupParam("n")
		if !ok {
			return 0, false
		}
		i, err := strconv.Atoi(v)
		return i, err == nil
	})
	found := FindAll(doc, Descendant, x)
	if len(found) != 3 {
		t.Errorf("expected 3 paragraphs to match, have %d", len(found))
	}
	if v, ok := x.Value(); !ok || v != 1 {
		t.Errorf("expected extracted value to be 1, is %d", v)
	}
}

func TestIDListMatcher(t *testing.T) {
	doc := NewDocument(
		NewMacroMarker("footnote", nil, "a", true),
		NewMacroMarker("toc", nil, "", false),
		NewMacro("footnote", nil, "b", true),
		NewHeader(1).SetParam("id", "footnote"),
	)
	found := FindAll(doc, Descendant, MatchMacroMarkers("footnote", "info"))
	if len(found) != 1 || found[0].Text != "a" {
		t.Errorf("expected exactly the footnote marker, found %v", found)
	}
	found = FindAll(doc, Descendant, MatchIDs(HeaderKind, "footnote"))
	if len(found) != 1 || found[0].Kind != HeaderKind {
		t.Errorf("expected header with id footnote, found %v", found)
	}
}
