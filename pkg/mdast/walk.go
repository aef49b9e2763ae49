package mdast

// WalkFunc is the function signature for Walk callbacks.
// Return a non-nil error to stop the walk.
type WalkFunc func(n *Node) error

// Walk performs a pre-order traversal of the tree starting at root.
// If walkFunc returns a non-nil error, the walk stops and returns that error.
func Walk(root *Node, walkFunc WalkFunc) error {
	return WalkWithContext(root, walkFunc, nil)
}

// WalkWithContext calls enter before visiting a node's children and leave
// after. Either callback may be nil.
func WalkWithContext(root *Node, enter, leave WalkFunc) error {
	if root == nil {
		return nil
	}

	walker := NewWalker(root)
	for {
		entering, node := walker.Next()
		if node == nil {
			return nil
		}

		callback := leave
		if entering {
			callback = enter
		}
		if callback == nil {
			continue
		}
		if err := callback(node); err != nil {
			return err
		}
	}
}

// FindAll returns all nodes matching the predicate, in document order.
func FindAll(root *Node, predicate func(n *Node) bool) []*Node {
	var result []*Node

	//nolint:errcheck,revive // Walk only returns nil errors in this usage
	Walk(root, func(node *Node) error {
		if predicate(node) {
			result = append(result, node)
		}
		return nil
	})

	return result
}

// FindFirst returns the first node matching the predicate, or nil if none found.
func FindFirst(root *Node, predicate func(n *Node) bool) *Node {
	var found *Node

	//nolint:errcheck,revive // errStopWalk is expected and intentionally ignored
	Walk(root, func(node *Node) error {
		if predicate(node) {
			found = node
			return errStopWalk
		}
		return nil
	})

	return found
}

// FindByKind returns all nodes of the specified kind.
func FindByKind(root *Node, kind NodeKind) []*Node {
	return FindAll(root, func(n *Node) bool {
		return n.Kind == kind
	})
}

// errStopWalk is a sentinel error used to stop walking early.
var errStopWalk = &stopWalkError{}

type stopWalkError struct{}

func (e *stopWalkError) Error() string {
	return "stop walk"
}

// Walker is a resumable iterator that reports each node twice: once when
// entering and once when leaving. Leaf nodes are reported entering, then
// leaving, back to back. Children of leaves (inline children) are visited too.
type Walker struct {
	root     *Node
	current  *Node
	entering bool
}

// NewWalker creates a walker positioned before root.
func NewWalker(root *Node) *Walker {
	return &Walker{root: root, current: root, entering: true}
}

// Next returns the next event. A nil node means the walk is finished.
func (w *Walker) Next() (bool, *Node) {
	cur := w.current
	if cur == nil {
		return false, nil
	}
	wasEntering := w.entering

	switch {
	case w.entering && cur.FirstChild != nil:
		w.current = cur.FirstChild
	case w.entering:
		w.entering = false
	case cur == w.root:
		w.current = nil
	case cur.Next != nil:
		w.current = cur.Next
		w.entering = true
	default:
		w.current = cur.Parent
	}

	return wasEntering, cur
}

// ResumeAt repositions the walker.
func (w *Walker) ResumeAt(node *Node, entering bool) {
	w.current = node
	w.entering = entering
}

// FindByType returns all nodes whose base token type equals typ.
func FindByType(root *Node, typ string) []*Node {
	return FindAll(root, func(n *Node) bool {
		return n.Type == typ
	})
}
