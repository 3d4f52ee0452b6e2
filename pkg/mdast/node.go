package mdast

// NodeKind classifies the type of a tree node.
type NodeKind uint16

// Node kinds. NodeToken marks a leaf; every other kind is a composite element.
const (
	NodeToken NodeKind = iota
	NodeDocument

	// Block-level elements.
	NodeUnorderedList
	NodeOrderedList
	NodeListItem
	NodeBlockQuote
	NodeCodeFence
	NodeCodeBlock
	NodeParagraph
	NodeSetext1
	NodeSetext2
	NodeATX1
	NodeATX2
	NodeATX3
	NodeATX4
	NodeATX5
	NodeATX6

	// Inline elements.
	NodeCodeSpan
	NodeEmph
	NodeStrong
	NodeLinkDefinition
	NodeLinkLabel
	NodeLinkDestination
	NodeLinkTitle
	NodeLinkText
	NodeInlineLink
	NodeFullReferenceLink
	NodeShortReferenceLink
	NodeAutolink

	nodeKindCount
)

//nolint:gochecknoglobals // Read-only lookup table.
var nodeKindNames = [nodeKindCount]string{
	NodeToken:              "TOKEN",
	NodeDocument:           "MARKDOWN_FILE",
	NodeUnorderedList:      "UNORDERED_LIST",
	NodeOrderedList:        "ORDERED_LIST",
	NodeListItem:           "LIST_ITEM",
	NodeBlockQuote:         "BLOCK_QUOTE",
	NodeCodeFence:          "CODE_FENCE",
	NodeCodeBlock:          "CODE_BLOCK",
	NodeParagraph:          "PARAGRAPH",
	NodeSetext1:            "SETEXT_1",
	NodeSetext2:            "SETEXT_2",
	NodeATX1:               "ATX_1",
	NodeATX2:               "ATX_2",
	NodeATX3:               "ATX_3",
	NodeATX4:               "ATX_4",
	NodeATX5:               "ATX_5",
	NodeATX6:               "ATX_6",
	NodeCodeSpan:           "CODE_SPAN",
	NodeEmph:               "EMPH",
	NodeStrong:             "STRONG",
	NodeLinkDefinition:     "LINK_DEFINITION",
	NodeLinkLabel:          "LINK_LABEL",
	NodeLinkDestination:    "LINK_DESTINATION",
	NodeLinkTitle:          "LINK_TITLE",
	NodeLinkText:           "LINK_TEXT",
	NodeInlineLink:         "INLINE_LINK",
	NodeFullReferenceLink:  "FULL_REFERENCE_LINK",
	NodeShortReferenceLink: "SHORT_REFERENCE_LINK",
	NodeAutolink:           "AUTOLINK",
}

// String returns the upper-case name used in tree dumps.
func (k NodeKind) String() string {
	if k < nodeKindCount {
		return nodeKindNames[k]
	}
	return "NodeKind(?)"
}

// ATXKind returns the heading kind for an ATX marker of the given length.
// Runs longer than six are clamped to ATX_6.
func ATXKind(level int) NodeKind {
	switch {
	case level <= 1:
		return NodeATX1
	case level >= 6:
		return NodeATX6
	default:
		return NodeATX1 + NodeKind(level-1)
	}
}

// HeadingLevel returns the level of a heading kind, or 0 for other kinds.
func (k NodeKind) HeadingLevel() int {
	switch {
	case k >= NodeATX1 && k <= NodeATX6:
		return int(k-NodeATX1) + 1
	case k == NodeSetext1:
		return 1
	case k == NodeSetext2:
		return 2
	default:
		return 0
	}
}

// IsBlock reports whether the kind is a block-level element.
func (k NodeKind) IsBlock() bool {
	return k >= NodeDocument && k <= NodeATX6
}

// IsInline reports whether the kind is an inline element.
func (k NodeKind) IsInline() bool {
	return k >= NodeCodeSpan && k < nodeKindCount
}

// Node is a single node of the concrete syntax tree.
//
// Leaves (Kind == NodeToken) wrap exactly one raw token. Composites span a
// contiguous run of raw tokens, and their children cover that run with no
// gaps or overlaps.
type Node struct {
	// Kind identifies what type of node this is.
	Kind NodeKind

	// Tree structure pointers.
	Parent     *Node
	FirstChild *Node
	LastChild  *Node
	Prev       *Node
	Next       *Node

	// Token span (inclusive indices into FileSnapshot.Tokens).
	// Both are -1 for a document without tokens.
	FirstToken int
	LastToken  int

	// File is a back-reference to the containing FileSnapshot.
	File *FileSnapshot
}

// IsLeaf reports whether the node wraps a single token.
func (n *Node) IsLeaf() bool {
	return n.Kind == NodeToken
}

// TokenKind returns the kind of the wrapped token for leaves.
// The second result is false for composites or detached leaves.
func (n *Node) TokenKind() (TokenKind, bool) {
	if !n.IsLeaf() || n.File == nil || n.FirstToken < 0 || n.FirstToken >= len(n.File.Tokens) {
		return 0, false
	}
	return n.File.Tokens[n.FirstToken].Kind, true
}

// TypeName returns the dump name of the node: the token kind for leaves,
// the element kind otherwise.
func (n *Node) TypeName() string {
	if kind, ok := n.TokenKind(); ok {
		return kind.String()
	}
	return n.Kind.String()
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
