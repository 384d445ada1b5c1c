package block

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"fmt"
	"sort"
)

/*
We manage a tree of mutable nodes. Each node is tagged with a kind and may carry
kind-specific fields. Nodes maintain a slice of children, and every child knows
its parent and its direct siblings, so that navigating up and sideways is O(1).

Parent, sibling and children links are private and only changed by the mutation
operations below, which always update all of them at once.
*/

// Node is the base type our document tree is built of.
type Node struct {
	Kind    Kind         // discriminating tag
	Text    string       // word, symbol, verbatim, raw or macro content
	Level   int          // header level, or number of empty lines
	Format  Format       // format of a FormatKind block
	Ref     *ResourceRef // link or image target
	MacroID string       // id of a macro or macro marker
	Inline  bool         // inline macro, macro marker or verbatim
	Syntax  string       // syntax of raw content

	parent   *Node             // parent node of this node
	prev     *Node             // previous sibling
	next     *Node             // next sibling
	children []*Node           // children nodes, in document order
	params   map[string]string // named string parameters
}

// NewNode creates a new tree node of a given kind and attaches children to it.
// Nil children are skipped.
func NewNode(kind Kind, children ...*Node) *Node {
	n := &Node{Kind: kind}
	n.AddChildren(children...)
	return n
}

func (node *Node) String() string {
	if node == nil {
		return "(Node nil)"
	}
	switch node.Kind {
	case WordKind, SpecialSymbolKind:
		return fmt.Sprintf("(%s %q)", node.Kind, node.Text)
	case HeaderKind:
		return fmt.Sprintf("(%s #ch=%d level=%d)", node.Kind, len(node.children), node.Level)
	case MacroKind, MacroMarkerKind:
		return fmt.Sprintf("(%s #ch=%d id=%s)", node.Kind, len(node.children), node.MacroID)
	case LinkKind, ImageKind:
		if node.Ref != nil {
			return fmt.Sprintf("(%s #ch=%d %s)", node.Kind, len(node.children), node.Ref)
		}
	}
	return fmt.Sprintf("(%s #ch=%d)", node.Kind, len(node.children))
}

// --- Navigation primitives -------------------------------------------------

// Parent returns the parent node or nil (for the root of the tree).
func (node *Node) Parent() *Node {
	return node.parent
}

// Root returns the root of the tree node belongs to.
func (node *Node) Root() *Node {
	r := node
	for r.parent != nil {
		r = r.parent
	}
	return r
}

// NextSibling returns the sibling after node, or nil if node is the last child.
func (node *Node) NextSibling() *Node {
	return node.next
}

// PreviousSibling returns the sibling before node, or nil if node is the first child.
func (node *Node) PreviousSibling() *Node {
	return node.prev
}

// FirstChild returns the first child of node or nil.
func (node *Node) FirstChild() *Node {
	if len(node.children) == 0 {
		return nil
	}
	return node.children[0]
}

// LastChild returns the last child of node or nil.
func (node *Node) LastChild() *Node {
	if len(node.children) == 0 {
		return nil
	}
	return node.children[len(node.children)-1]
}

// ChildCount returns the number of children-nodes for a node.
func (node *Node) ChildCount() int {
	return len(node.children)
}

// Child returns the n-th child of a node.
func (node *Node) Child(n int) (*Node, bool) {
	if n < 0 || len(node.children) <= n {
		return nil, false
	}
	return node.children[n], true
}

// Children returns a slice with all children of a node. The slice is a copy,
// clients may modify it freely.
func (node *Node) Children() []*Node {
	children := make([]*Node, len(node.children))
	copy(children, node.children)
	return children
}

// IndexOfChild returns the index of a child within the list of children
// of node, or -1 if ch is not a child of node.
func (node *Node) IndexOfChild(ch *Node) int {
	if ch == nil || ch.parent != node {
		return -1
	}
	for i, child := range node.children {
		if ch == child {
			return i
		}
	}
	return -1
}

// --- Mutation ----------------------------------------------------------------

// AddChild appends a child node. If ch is currently attached elsewhere in a
// tree, it is moved. It returns the parent node to allow for chaining.
func (node *Node) AddChild(ch *Node) *Node {
	if ch != nil {
		node.insertAt(len(node.children), ch)
	}
	return node
}

// AddChildren appends children nodes in order, skipping nil entries.
func (node *Node) AddChildren(children ...*Node) *Node {
	for _, ch := range children {
		node.AddChild(ch)
	}
	return node
}

// InsertChildAt inserts a new child node at position i, shifting children at
// later positions. Positions beyond the end append the child.
// It returns the parent node to allow for chaining.
func (node *Node) InsertChildAt(i int, ch *Node) *Node {
	if ch != nil {
		node.insertAt(i, ch)
	}
	return node
}

// InsertBefore inserts ch as the sibling before ref. ref must be a child of node.
func (node *Node) InsertBefore(ch, ref *Node) *Node {
	i := node.IndexOfChild(ref)
	assertThat(i >= 0, "reference node %v is not a child of %v", ref, node)
	return node.InsertChildAt(i, ch)
}

// InsertAfter inserts ch as the sibling after ref. ref must be a child of node.
func (node *Node) InsertAfter(ch, ref *Node) *Node {
	i := node.IndexOfChild(ref)
	assertThat(i >= 0, "reference node %v is not a child of %v", ref, node)
	return node.InsertChildAt(i+1, ch)
}

// ReplaceChild replaces old by a sequence of nodes (possibly empty). It returns
// false if old is not a child of node.
func (node *Node) ReplaceChild(old *Node, with ...*Node) bool {
	i := node.IndexOfChild(old)
	if i < 0 {
		return false
	}
	node.removeAt(i)
	for _, ch := range with {
		if ch == nil {
			continue
		}
		node.insertAt(i, ch)
		i = node.IndexOfChild(ch) + 1
	}
	return true
}

// RemoveChild detaches ch from node. It returns false if ch is not a child of node.
func (node *Node) RemoveChild(ch *Node) bool {
	i := node.IndexOfChild(ch)
	if i < 0 {
		return false
	}
	node.removeAt(i)
	return true
}

// SetChildren replaces all children of node.
func (node *Node) SetChildren(children ...*Node) *Node {
	for len(node.children) > 0 {
		node.removeAt(len(node.children) - 1)
	}
	return node.AddChildren(children...)
}

// Isolate removes a node from its parent.
// Isolate returns the isolated node.
func (node *Node) Isolate() *Node {
	if node != nil && node.parent != nil {
		node.parent.RemoveChild(node)
	}
	return node
}

func (node *Node) insertAt(i int, ch *Node) {
	for a := node; a != nil; a = a.parent {
		assertThat(a != ch, "cannot attach %v below itself", ch)
	}
	if j := node.IndexOfChild(ch); j >= 0 && j < i {
		i-- // ch is moved within node
	}
	ch.Isolate()
	if i < 0 {
		i = 0
	}
	if i >= len(node.children) {
		node.children = append(node.children, ch)
		i = len(node.children) - 1
	} else {
		node.children = append(node.children, nil) // make room for one child
		copy(node.children[i+1:], node.children[i:])
		node.children[i] = ch
	}
	ch.parent = node
	ch.prev, ch.next = nil, nil
	if i > 0 {
		ch.prev = node.children[i-1]
		ch.prev.next = ch
	}
	if i < len(node.children)-1 {
		ch.next = node.children[i+1]
		ch.next.prev = ch
	}
}

func (node *Node) removeAt(i int) {
	ch := node.children[i]
	if ch.prev != nil {
		ch.prev.next = ch.next
	}
	if ch.next != nil {
		ch.next.prev = ch.prev
	}
	copy(node.children[i:], node.children[i+1:])
	node.children[len(node.children)-1] = nil
	node.children = node.children[:len(node.children)-1]
	ch.parent, ch.prev, ch.next = nil, nil, nil
}

// Clone returns a deep copy of the subtree rooted at node. The copy is detached,
// i.e. it has no parent.
func (node *Node) Clone() *Node {
	c := &Node{
		Kind:    node.Kind,
		Text:    node.Text,
		Level:   node.Level,
		Format:  node.Format,
		MacroID: node.MacroID,
		Inline:  node.Inline,
		Syntax:  node.Syntax,
	}
	if node.Ref != nil {
		ref := *node.Ref
		c.Ref = &ref
	}
	for k, v := range node.params {
		c.SetParam(k, v)
	}
	for _, ch := range node.children {
		c.AddChild(ch.Clone())
	}
	return c
}

// --- Parameters ------------------------------------------------------------

// Param returns the value of a named parameter, or "" if it is not set.
func (node *Node) Param(name string) string {
	return node.params[name]
}

// LookupParam returns the value of a named parameter and whether it is set.
func (node *Node) LookupParam(name string) (string, bool) {
	v, ok := node.params[name]
	return v, ok
}

// SetParam sets a named parameter. It returns node to allow for chaining.
func (node *Node) SetParam(name, value string) *Node {
	if node.params == nil {
		node.params = make(map[string]string)
	}
	node.params[name] = value
	return node
}

// DeleteParam removes a named parameter.
func (node *Node) DeleteParam(name string) {
	delete(node.params, name)
}

// Params returns a copy of all parameters of node.
func (node *Node) Params() map[string]string {
	m := make(map[string]string, len(node.params))
	for k, v := range node.params {
		m[k] = v
	}
	return m
}

// ParamNames returns the names of all parameters, sorted.
func (node *Node) ParamNames() []string {
	names := make([]string, 0, len(node.params))
	for k := range node.params {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// --- Queries ---------------------------------------------------------------

// FindAll is a shortcut for FindAll(node, axis, m).
func (node *Node) FindAll(axis Axis, m Matcher) []*Node {
	return FindAll(node, axis, m)
}

// FindFirst is a shortcut for FindFirst(node, axis, m).
func (node *Node) FindFirst(axis Axis, m Matcher) *Node {
	return FindFirst(node, axis, m)
}
