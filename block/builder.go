package block

import (
	"errors"
	"fmt"
)

// ErrStructure is the error class of all begin/end protocol violations. Every
// *StructuralError matches it with errors.Is.
var ErrStructure = errors.New("unbalanced block structure")

// StructuralError is returned by a Builder if the event stream is unbalanced.
// It is a protocol violation of the event producer and must abort the parse.
type StructuralError struct {
	Op      string // builder operation which detected the violation
	Missing int    // number of missing EndContainer calls, if known
}

func (e *StructuralError) Error() string {
	if e.Missing > 0 {
		return fmt.Sprintf("%s: unbalanced begin/end, %d calls missing", e.Op, e.Missing)
	}
	return fmt.Sprintf("%s: too many end calls", e.Op)
}

// Unwrap lets errors.Is(err, ErrStructure) succeed.
func (e *StructuralError) Unwrap() error {
	return ErrStructure
}

// Builder creates a tree from a stream of begin/end/leaf events, as produced by
// event-driven parsers. It keeps a stack of child lists for containers which
// have been started but not yet ended.
//
// A Builder is not safe for concurrent use and must not be re-used after
// Finalize.
type Builder struct {
	stack [][]*Node
}

// NewBuilder creates a builder with an empty stack.
func NewBuilder() *Builder {
	return &Builder{}
}

// Depth returns the number of currently open containers.
func (b *Builder) Depth() int {
	return len(b.stack)
}

// StartContainer opens a new, empty list of children for a container block
// which will be created when the container ends.
func (b *Builder) StartContainer() {
	b.stack = append(b.stack, nil)
}

// EndContainer closes the innermost open container and returns its children.
// The caller is responsible for creating the container block from them and
// appending it with AppendLeaf.
func (b *Builder) EndContainer() ([]*Node, error) {
	if len(b.stack) == 0 {
		return nil, &StructuralError{Op: "EndContainer"}
	}
	top := b.stack[len(b.stack)-1]
	b.stack[len(b.stack)-1] = nil
	b.stack = b.stack[:len(b.stack)-1]
	return top, nil
}

// AppendLeaf appends a block to the innermost open container. Nil blocks
// are ignored.
func (b *Builder) AppendLeaf(n *Node) error {
	if len(b.stack) == 0 {
		return &StructuralError{Op: "AppendLeaf"}
	}
	if n != nil {
		b.stack[len(b.stack)-1] = append(b.stack[len(b.stack)-1], n)
	}
	return nil
}

// Finalize ends the outermost container and returns the root of the tree.
// If the outermost container holds exactly one document block (as produced
// by a nested parse), this block is returned as is. Otherwise the children are
// wrapped into a new document block.
func (b *Builder) Finalize() (*Node, error) {
	children, err := b.EndContainer()
	if err != nil {
		err.(*StructuralError).Op = "Finalize"
		return nil, err
	}
	if len(b.stack) > 0 {
		return nil, &StructuralError{Op: "Finalize", Missing: len(b.stack)}
	}
	if len(children) == 1 && children[0].Kind == DocumentKind {
		tracer().Debugf("builder: passing through pre-built document")
		return children[0].Isolate(), nil
	}
	tracer().Debugf("builder: wrapping %d blocks into document", len(children))
	return NewDocument(children...), nil
}
