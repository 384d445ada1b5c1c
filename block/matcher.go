package block

// Matcher is a predicate to match against nodes of a tree.
// It is used as an argument for FindAll and FindFirst to collect a selection
// of nodes.
//
// Matchers may be stateful. Stateful matchers see the nodes in traversal
// order and must be created fresh for every query.
type Matcher interface {
	Match(n *Node) bool
}

// MatcherFunc adapts an ordinary function to a Matcher.
type MatcherFunc func(n *Node) bool

// Match calls f(n).
func (f MatcherFunc) Match(n *Node) bool {
	return f(n)
}

// Any matches anything. It is useful to match the first node in a given
// direction. Queries default to Any if a nil matcher is given.
func Any() Matcher {
	return anyMatcher{}
}

type anyMatcher struct{}

func (anyMatcher) Match(*Node) bool { return true }

// --- Kind -------------------------------------------------------------------

// KindMatcher matches nodes of a kind or of one of its sub-kinds.
type KindMatcher struct {
	Kind Kind
}

// MatchKind creates a matcher for nodes of kind k, including sub-kinds:
// MatchKind(ListKind) matches bulleted as well as numbered lists.
func MatchKind(k Kind) KindMatcher {
	return KindMatcher{Kind: k}
}

// Match is part of interface Matcher.
func (m KindMatcher) Match(n *Node) bool {
	return n.Kind.Is(m.Kind)
}

// Leaf matches nodes without children.
func Leaf() Matcher {
	return MatcherFunc(func(n *Node) bool {
		return n.ChildCount() == 0
	})
}

// HasParam matches nodes where parameter name has a given value. An empty
// value matches every node carrying the parameter.
func HasParam(name, value string) Matcher {
	return MatcherFunc(func(n *Node) bool {
		v, ok := n.LookupParam(name)
		return ok && (value == "" || v == value)
	})
}

// --- Logical composition -------------------------------------------------------

// OrMatcher matches if any of its matchers matches. Matchers are consulted
// in order, and consulting stops at the first match.
type OrMatcher []Matcher

// Or creates an OrMatcher.
func Or(matchers ...Matcher) OrMatcher {
	return OrMatcher(matchers)
}

// Match is part of interface Matcher.
func (m OrMatcher) Match(n *Node) bool {
	for _, sub := range m {
		if sub.Match(n) {
			return true
		}
	}
	return false
}

// AndMatcher matches if all of its matchers match. Matchers are consulted in
// order, and consulting stops at the first mismatch.
type AndMatcher []Matcher

// And creates an AndMatcher.
func And(matchers ...Matcher) AndMatcher {
	return AndMatcher(matchers)
}

// Match is part of interface Matcher.
func (m AndMatcher) Match(n *Node) bool {
	for _, sub := range m {
		if !sub.Match(n) {
			return false
		}
	}
	return true
}

// Not negates a matcher.
func Not(m Matcher) Matcher {
	return MatcherFunc(func(n *Node) bool {
		return !m.Match(n)
	})
}

// --- Identifiers ----------------------------------------------------------------

// IDListMatcher matches nodes of a kind whose identifier is one of a set of
// accepted identifiers. The identifier of macros and macro markers is their
// macro id; for other kinds it is the parameter "id".
type IDListMatcher struct {
	kind Kind
	ids  map[string]struct{}
}

// MatchIDs creates an IDListMatcher.
func MatchIDs(k Kind, ids ...string) *IDListMatcher {
	m := &IDListMatcher{kind: k, ids: make(map[string]struct{}, len(ids))}
	for _, id := range ids {
		m.ids[id] = struct{}{}
	}
	return m
}

// MatchMacroMarkers matches macro markers for the given macro ids.
func MatchMacroMarkers(ids ...string) *IDListMatcher {
	return MatchIDs(MacroMarkerKind, ids...)
}

// Match is part of interface Matcher.
func (m *IDListMatcher) Match(n *Node) bool {
	if !n.Kind.Is(m.kind) {
		return false
	}
	_, ok := m.ids[identifier(n)]
	return ok
}

func identifier(n *Node) string {
	if n.Kind == MacroKind || n.Kind == MacroMarkerKind {
		return n.MacroID
	}
	return n.Param("id")
}

// --- Stateful matchers --------------------------------------------------------

// CounterMatcher counts the nodes it is asked about. It matches every node;
// it is a position index, not a filter.
//
// If created with a stop node, counting ends when the stop node is reached:
// Count then tells the number of nodes seen before the stop node, i.e. the
// position of the stop node in traversal order. Callers should end the
// traversal at the stop node, but the count is correct either way.
type CounterMatcher struct {
	stop    *Node
	count   int
	reached bool
}

// NewCounter creates a counter. stop may be nil.
func NewCounter(stop *Node) *CounterMatcher {
	return &CounterMatcher{stop: stop}
}

// Match is part of interface Matcher.
func (m *CounterMatcher) Match(n *Node) bool {
	if m.reached {
		return true
	}
	if m.stop != nil && n == m.stop {
		m.reached = true
		return true
	}
	m.count++
	return true
}

// Count returns the number of nodes counted.
func (m *CounterMatcher) Count() int {
	return m.count
}

// Reached returns true if the stop node has been seen.
func (m *CounterMatcher) Reached() bool {
	return m.reached
}

// ExtractorMatcher matches nodes for which an extraction function yields a
// value. The first value extracted is remembered; later matches do not
// overwrite it.
type ExtractorMatcher[T any] struct {
	extract func(*Node) (T, bool)
	value   T
	found   bool
}

// Extract creates an ExtractorMatcher for an extraction function.
func Extract[T any](extract func(*Node) (T, bool)) *ExtractorMatcher[T] {
	return &ExtractorMatcher[T]{extract: extract}
}

// Match is part of interface Matcher.
func (m *ExtractorMatcher[T]) Match(n *Node) bool {
	v, ok := m.extract(n)
	if ok && !m.found {
		m.value, m.found = v, true
	}
	return ok
}

// Value returns the first extracted value and whether any has been found.
func (m *ExtractorMatcher[T]) Value() (T, bool) {
	return m.value, m.found
}
