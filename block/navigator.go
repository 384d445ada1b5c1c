package block

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import "strings"

// Axis is a direction of tree navigation, starting from a given node.
// Axes are modeled after XPath axes.
type Axis uint8

// Axes for navigation.
const (
	Self             Axis = iota // the start node
	Parent                       // the parent of the start node
	Ancestor                     // proper ancestors, nearest first
	AncestorOrSelf               // the start node, then its ancestors
	Child                        // the children, in document order
	Descendant                   // all descendants in pre-order
	DescendantOrSelf             // the start node, then its descendants
	FollowingSibling             // siblings after the start node, in document order
	Following                    // nodes after the start node, excluding its descendants
	PrecedingSibling             // siblings before the start node, nearest first
	Preceding                    // nodes before the start node, excluding its ancestors
)

var axisNames = [...]string{"self", "parent", "ancestor", "ancestor-or-self", "child",
	"descendant", "descendant-or-self", "following-sibling", "following",
	"preceding-sibling", "preceding"}

func (a Axis) String() string {
	if int(a) >= len(axisNames) {
		return "unknown"
	}
	return axisNames[a]
}

// AxisByName returns an axis for its XPath-style name, e.g. "following-sibling".
func AxisByName(name string) (Axis, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range axisNames {
		if n == name {
			return Axis(i), true
		}
	}
	return Self, false
}

// FindAll collects all nodes along an axis which are accepted by a matcher.
// Nodes are returned in axis order (see the Axis constants). If m is nil, every
// node is accepted. Nothing found is not an error: the result is then empty.
func FindAll(start *Node, axis Axis, m Matcher) []*Node {
	if start == nil {
		return nil
	}
	if m == nil {
		m = Any()
	}
	return collect(start, axis, m, nil)
}

// collect is a small state machine: multi-step axes are reduced to single
// steps plus a follow-up axis for the node reached by the step.
func collect(node *Node, axis Axis, m Matcher, acc []*Node) []*Node {
	switch axis {
	case Self:
		if m.Match(node) {
			acc = append(acc, node)
		}
	case Parent:
		if node.parent != nil {
			acc = collect(node.parent, Self, m, acc)
		}
	case Ancestor:
		if node.parent != nil {
			acc = collect(node.parent, AncestorOrSelf, m, acc)
		}
	case AncestorOrSelf:
		for n := node; n != nil; n = n.parent {
			acc = collect(n, Self, m, acc)
		}
	case Child:
		for _, ch := range node.children {
			acc = collect(ch, Self, m, acc)
		}
	case Descendant:
		for _, ch := range node.children {
			acc = collect(ch, DescendantOrSelf, m, acc)
		}
	case DescendantOrSelf:
		acc = collect(node, Self, m, acc)
		acc = collect(node, Descendant, m, acc)
	case FollowingSibling:
		for s := node.next; s != nil; s = s.next {
			acc = collect(s, Self, m, acc)
		}
	case Following:
		for n := node; n != nil; n = n.parent {
			for s := n.next; s != nil; s = s.next {
				acc = collect(s, DescendantOrSelf, m, acc)
			}
		}
	case PrecedingSibling:
		for s := node.prev; s != nil; s = s.prev {
			acc = collect(s, Self, m, acc)
		}
	case Preceding:
		for n := node; n != nil; n = n.parent {
			for s := n.prev; s != nil; s = s.prev {
				acc = collect(s, DescendantOrSelf, m, acc)
			}
		}
	default:
		tracer().Errorf("navigation along unknown axis %d", axis)
	}
	return acc
}

// FindFirst returns the first node along an axis which is accepted by a
// matcher, or nil. It yields the same node as taking the head of FindAll,
// but stops traversing as soon as a node is accepted.
func FindFirst(start *Node, axis Axis, m Matcher) *Node {
	if start == nil {
		return nil
	}
	if m == nil {
		m = Any()
	}
	switch axis {
	case Self:
		return matchSelf(start, m)
	case Parent:
		if start.parent == nil {
			return nil
		}
		return matchSelf(start.parent, m)
	case Ancestor:
		return firstAncestorOrSelf(start.parent, m)
	case AncestorOrSelf:
		return firstAncestorOrSelf(start, m)
	case Child:
		for _, ch := range start.children {
			if m.Match(ch) {
				return ch
			}
		}
	case Descendant:
		return firstDescendant(start, m)
	case DescendantOrSelf:
		if m.Match(start) {
			return start
		}
		return firstDescendant(start, m)
	case FollowingSibling:
		for s := start.next; s != nil; s = s.next {
			if m.Match(s) {
				return s
			}
		}
	case Following:
		for n := start; n != nil; n = n.parent {
			for s := n.next; s != nil; s = s.next {
				if f := FindFirst(s, DescendantOrSelf, m); f != nil {
					return f
				}
			}
		}
	case PrecedingSibling:
		for s := start.prev; s != nil; s = s.prev {
			if m.Match(s) {
				return s
			}
		}
	case Preceding:
		for n := start; n != nil; n = n.parent {
			for s := n.prev; s != nil; s = s.prev {
				if f := FindFirst(s, DescendantOrSelf, m); f != nil {
					return f
				}
			}
		}
	default:
		tracer().Errorf("navigation along unknown axis %d", axis)
	}
	return nil
}

func matchSelf(n *Node, m Matcher) *Node {
	if m.Match(n) {
		return n
	}
	return nil
}

func firstAncestorOrSelf(n *Node, m Matcher) *Node {
	for ; n != nil; n = n.parent {
		if m.Match(n) {
			return n
		}
	}
	return nil
}

// firstDescendant searches depth-first, returning as early as possible.
func firstDescendant(n *Node, m Matcher) *Node {
	for _, ch := range n.children {
		if m.Match(ch) {
			return ch
		}
		if f := firstDescendant(ch, m); f != nil {
			return f
		}
	}
	return nil
}
