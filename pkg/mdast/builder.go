package mdast

import (
	"errors"
	"fmt"
)

// Sentinel errors for malformed token streams.
var (
	// ErrUnbalanced indicates an open token without a matching close, or vice versa.
	ErrUnbalanced = errors.New("unbalanced token stream")

	// ErrLevelMismatch indicates a token whose Level disagrees with its position.
	ErrLevelMismatch = errors.New("token level mismatch")
)

// NewNode creates a detached node for the given token.
func NewNode(tok *Token) *Node {
	return &Node{
		Kind:  KindOf(tok.Type),
		Type:  BaseType(tok.Type),
		Token: tok,
	}
}

// NewDocument creates a new document root node.
func NewDocument() *Node {
	return &Node{Kind: NodeDocument, Type: "document"}
}

// BuildTree folds a flat token stream into a document tree. Inline tokens with
// expanded children get those children as subtrees.
func BuildTree(tokens []*Token) (*Node, error) {
	doc := NewDocument()
	if err := buildInto(doc, tokens); err != nil {
		return nil, err
	}
	return doc, nil
}

func buildInto(root *Node, tokens []*Token) error {
	current := root
	for idx, tok := range tokens {
		switch tok.Nesting {
		case NestingOpen:
			node := NewNode(tok)
			current.AppendChild(node)
			current = node

		case NestingClose:
			if current == root || current.Type != BaseType(tok.Type) {
				return fmt.Errorf("%w: unexpected %s at token %d", ErrUnbalanced, tok.Type, idx)
			}
			current.Close = tok
			current = current.Parent

		default:
			node := NewNode(tok)
			current.AppendChild(node)
			if len(tok.Children) > 0 {
				if err := buildInto(node, tok.Children); err != nil {
					return fmt.Errorf("children of token %d: %w", idx, err)
				}
			}
		}
	}

	if current != root {
		return fmt.Errorf("%w: %s is never closed", ErrUnbalanced, current.Token.Type)
	}
	return nil
}

// ValidateNesting checks that every opening token is matched by a closing token
// of the same base type at the same level, and that each Level equals the
// number of enclosing open tokens.
func ValidateNesting(tokens []*Token) error {
	var stack []*Token
	for idx, tok := range tokens {
		depth := len(stack)
		if tok.Nesting == NestingClose {
			depth--
		}
		if depth < 0 {
			return fmt.Errorf("%w: unexpected %s at token %d", ErrUnbalanced, tok.Type, idx)
		}
		if tok.Level != depth {
			return fmt.Errorf("%w: %s at token %d has level %d, want %d",
				ErrLevelMismatch, tok.Type, idx, tok.Level, depth)
		}

		switch tok.Nesting {
		case NestingOpen:
			stack = append(stack, tok)
		case NestingClose:
			open := stack[len(stack)-1]
			if BaseType(open.Type) != BaseType(tok.Type) {
				return fmt.Errorf("%w: %s closed by %s at token %d", ErrUnbalanced, open.Type, tok.Type, idx)
			}
			stack = stack[:len(stack)-1]
		}
	}

	if len(stack) > 0 {
		return fmt.Errorf("%w: %s is never closed", ErrUnbalanced, stack[len(stack)-1].Type)
	}
	return nil
}

// AppendChild appends child as the last child of n, detaching it first.
func (n *Node) AppendChild(child *Node) {
	child.Unlink()
	child.Parent = n
	child.Prev = n.LastChild
	if n.LastChild != nil {
		n.LastChild.Next = child
	} else {
		n.FirstChild = child
	}
	n.LastChild = child
}

// PrependChild inserts child as the first child of n, detaching it first.
func (n *Node) PrependChild(child *Node) {
	child.Unlink()
	child.Parent = n
	child.Next = n.FirstChild
	if n.FirstChild != nil {
		n.FirstChild.Prev = child
	} else {
		n.LastChild = child
	}
	n.FirstChild = child
}

// InsertAfter places sibling right after n. n must have a parent.
func (n *Node) InsertAfter(sibling *Node) {
	if n.Parent == nil {
		return
	}
	sibling.Unlink()
	sibling.Parent = n.Parent
	sibling.Prev = n
	sibling.Next = n.Next
	if n.Next != nil {
		n.Next.Prev = sibling
	} else {
		n.Parent.LastChild = sibling
	}
	n.Next = sibling
}

// InsertBefore places sibling right before n. n must have a parent.
func (n *Node) InsertBefore(sibling *Node) {
	if n.Parent == nil {
		return
	}
	sibling.Unlink()
	sibling.Parent = n.Parent
	sibling.Next = n
	sibling.Prev = n.Prev
	if n.Prev != nil {
		n.Prev.Next = sibling
	} else {
		n.Parent.FirstChild = sibling
	}
	n.Prev = sibling
}

// RemoveChild detaches child if it belongs to n.
func (n *Node) RemoveChild(child *Node) {
	if child.Parent == n {
		child.Unlink()
	}
}

// Unlink detaches n from its parent and siblings.
func (n *Node) Unlink() {
	if n.Prev != nil {
		n.Prev.Next = n.Next
	} else if n.Parent != nil {
		n.Parent.FirstChild = n.Next
	}
	if n.Next != nil {
		n.Next.Prev = n.Prev
	} else if n.Parent != nil {
		n.Parent.LastChild = n.Prev
	}
	n.Parent = nil
	n.Prev = nil
	n.Next = nil
}

// Flatten serializes the tree back into a token stream, the inverse of BuildTree
// for block tokens.
func (n *Node) Flatten() []*Token {
	var out []*Token
	var visit func(node *Node)
	visit = func(node *Node) {
		if node.Token != nil {
			out = append(out, node.Token)
		}
		if node.Kind == NodeDocument || node.Close != nil {
			for child := node.FirstChild; child != nil; child = child.Next {
				visit(child)
			}
		}
		if node.Close != nil {
			out = append(out, node.Close)
		}
	}
	visit(n)
	return out
}
