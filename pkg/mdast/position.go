package mdast

// SourceRange is a half-open byte interval [StartOffset, EndOffset) of the
// file content.
type SourceRange struct {
	StartOffset int
	EndOffset   int
}

// Len is the number of bytes in the range.
func (r SourceRange) Len() int { return r.EndOffset - r.StartOffset }

// IsEmpty reports whether the range covers no bytes.
func (r SourceRange) IsEmpty() bool { return r.Len() == 0 }

// SourcePosition locates a node by 1-based line and column. The end is the
// position of the first byte after the node.
type SourcePosition struct {
	StartLine   int
	StartColumn int
	EndLine     int
	EndColumn   int
}

// IsSingleLine reports whether the node starts and ends on the same line.
func (sp SourcePosition) IsSingleLine() bool { return sp.StartLine == sp.EndLine }

// tokenSpan resolves the node's first and last tokens against its file.
func (n *Node) tokenSpan() (Token, Token, bool) {
	if n.File == nil || n.FirstToken < 0 || n.LastToken < n.FirstToken {
		return Token{}, Token{}, false
	}
	if n.LastToken >= len(n.File.Tokens) {
		return Token{}, Token{}, false
	}
	return n.File.Tokens[n.FirstToken], n.File.Tokens[n.LastToken], true
}

// SourceRange is the byte range spanned by the node's tokens, or the zero
// range when the node is detached from a file.
func (n *Node) SourceRange() SourceRange {
	first, last, ok := n.tokenSpan()
	if !ok {
		return SourceRange{}
	}
	return SourceRange{StartOffset: first.StartOffset, EndOffset: last.EndOffset}
}

// SourcePosition converts SourceRange into line and column coordinates.
func (n *Node) SourcePosition() SourcePosition {
	if _, _, ok := n.tokenSpan(); !ok {
		return SourcePosition{}
	}

	r := n.SourceRange()
	var pos SourcePosition
	pos.StartLine, pos.StartColumn = n.File.LineAt(r.StartOffset)
	pos.EndLine, pos.EndColumn = n.File.LineAt(r.EndOffset)
	return pos
}

// Text slices the node's bytes out of the file content.
func (n *Node) Text() []byte {
	r := n.SourceRange()
	if n.File == nil || r.EndOffset > len(n.File.Content) {
		return nil
	}
	return n.File.Content[r.StartOffset:r.EndOffset]
}
