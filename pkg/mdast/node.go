package mdast

import "strings"

// NodeKind classifies the type of a tree node.
type NodeKind uint16

// Node kinds for the constructs the block grammar produces. Token types the
// tree builder does not know map to NodeRaw.
const (
	NodeDocument NodeKind = iota

	// Block-level nodes.
	NodeParagraph
	NodeHeading
	NodeBulletList
	NodeOrderedList
	NodeListItem
	NodeBlockquote
	NodeCodeBlock
	NodeFence
	NodeThematicBreak
	NodeHTMLBlock
	NodeInline

	// Inline-level nodes.
	NodeText

	// Fallback for unrecognized token types.
	NodeRaw
)

var nodeKindNames = [...]string{
	NodeDocument:      "Document",
	NodeParagraph:     "Paragraph",
	NodeHeading:       "Heading",
	NodeBulletList:    "BulletList",
	NodeOrderedList:   "OrderedList",
	NodeListItem:      "ListItem",
	NodeBlockquote:    "Blockquote",
	NodeCodeBlock:     "CodeBlock",
	NodeFence:         "Fence",
	NodeThematicBreak: "ThematicBreak",
	NodeHTMLBlock:     "HTMLBlock",
	NodeInline:        "Inline",
	NodeText:          "Text",
	NodeRaw:           "Raw",
}

func (k NodeKind) String() string {
	if int(k) < len(nodeKindNames) {
		return nodeKindNames[k]
	}
	return "NodeKind(?)"
}

//nolint:gochecknoglobals // Read-only lookup table.
var kindByType = map[string]NodeKind{
	"paragraph":    NodeParagraph,
	"heading":      NodeHeading,
	"bullet_list":  NodeBulletList,
	"ordered_list": NodeOrderedList,
	"list_item":    NodeListItem,
	"blockquote":   NodeBlockquote,
	"code_block":   NodeCodeBlock,
	"fence":        NodeFence,
	"hr":           NodeThematicBreak,
	"html_block":   NodeHTMLBlock,
	"inline":       NodeInline,
	"text":         NodeText,
}

// BaseType strips the "_open"/"_close" suffix from a token type.
func BaseType(tokenType string) string {
	if base, ok := strings.CutSuffix(tokenType, "_open"); ok {
		return base
	}
	if base, ok := strings.CutSuffix(tokenType, "_close"); ok {
		return base
	}
	return tokenType
}

// KindOf returns the node kind for a token type.
func KindOf(tokenType string) NodeKind {
	if kind, ok := kindByType[BaseType(tokenType)]; ok {
		return kind
	}
	return NodeRaw
}

// Node is a tree view over a token stream. Container nodes own the opening
// and closing token of a pair; leaves own a single self-closing token.
type Node struct {
	// Kind identifies what type of node this is.
	Kind NodeKind

	// Type is the token type with any open/close suffix removed.
	Type string

	// Token is the opening or self-closing token. Nil for the document root.
	Token *Token

	// Close is the matching closing token for containers.
	Close *Token

	// Tree structure pointers.
	Parent     *Node
	FirstChild *Node
	LastChild  *Node
	Prev       *Node
	Next       *Node
}

// IsContainer reports whether the node came from an open/close pair (or is the root).
func (n *Node) IsContainer() bool {
	return n.Kind == NodeDocument || n.Close != nil
}

// IsBlock returns true if this is a block-level node.
func (n *Node) IsBlock() bool {
	if n.Kind == NodeDocument {
		return true
	}
	return n.Token != nil && n.Token.Block
}

// IsHidden returns true if the node's token is marked hidden.
func (n *Node) IsHidden() bool {
	return n.Token != nil && n.Token.Hidden
}

// Content returns the content of the node's token.
func (n *Node) Content() string {
	if n.Token == nil {
		return ""
	}
	return n.Token.Content
}

// Lines returns the source line range of the node, if known.
func (n *Node) Lines() (int, int, bool) {
	if n.Token == nil || n.Token.Map == nil {
		return 0, 0, false
	}
	return n.Token.Map[0], n.Token.Map[1], true
}

// HasChildren returns true if this node has any children.
func (n *Node) HasChildren() bool {
	return n.FirstChild != nil
}

// ChildCount returns the number of direct children.
func (n *Node) ChildCount() int {
	count := 0
	for child := n.FirstChild; child != nil; child = child.Next {
		count++
	}
	return count
}

// Children returns a slice of all direct children.
func (n *Node) Children() []*Node {
	var children []*Node
	for child := n.FirstChild; child != nil; child = child.Next {
		children = append(children, child)
	}
	return children
}
