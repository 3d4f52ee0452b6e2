package mdast

// NewNode returns a detached composite of the given kind with no token span.
func NewNode(kind NodeKind) *Node {
	return &Node{Kind: kind, FirstToken: -1, LastToken: -1}
}

// NewDocument returns an empty MARKDOWN_FILE root.
func NewDocument() *Node { return NewNode(NodeDocument) }

// NewLeaf returns a TOKEN node standing for tokens[tokenIndex].
func NewLeaf(tokenIndex int) *Node {
	leaf := NewNode(NodeToken)
	leaf.FirstToken, leaf.LastToken = tokenIndex, tokenIndex
	return leaf
}

// AppendChild makes child the last child of parent, first detaching it from
// any previous parent.
func AppendChild(parent, child *Node) {
	if parent == nil || child == nil {
		return
	}
	child.detach()

	child.Parent = parent
	if tail := parent.LastChild; tail != nil {
		tail.Next = child
		child.Prev = tail
	} else {
		parent.FirstChild = child
	}
	parent.LastChild = child
}

// RemoveChild unlinks child from parent. It is a no-op when child belongs to
// another node.
func RemoveChild(parent, child *Node) {
	if child == nil || parent == nil || child.Parent != parent {
		return
	}
	child.detach()
}

func (n *Node) detach() {
	parent := n.Parent
	if parent == nil {
		return
	}

	switch {
	case n.Prev == nil:
		parent.FirstChild = n.Next
	default:
		n.Prev.Next = n.Next
	}
	switch {
	case n.Next == nil:
		parent.LastChild = n.Prev
	default:
		n.Next.Prev = n.Prev
	}

	n.Parent, n.Prev, n.Next = nil, nil, nil
}

// SpanChildren stretches a composite's token span over its children. A node
// without children is left untouched.
func SpanChildren(n *Node) {
	if n != nil && n.FirstChild != nil {
		n.FirstToken, n.LastToken = n.FirstChild.FirstToken, n.LastChild.LastToken
	}
}

// SetFile attaches file to node and every descendant.
func SetFile(node *Node, file *FileSnapshot) {
	for each := range All(node) {
		each.File = file
	}
}
