// Package mdast holds the concrete syntax tree produced by gomdtree.
//
// A FileSnapshot keeps the source bytes, the raw token stream covering every
// byte, and the tree. Composite nodes reference token spans; leaves wrap one
// token each, so the tree is lossless.
package mdast

// FileSnapshot is a lossless view of one parsed Markdown document.
type FileSnapshot struct {
	// Path names the document; "" for in-memory content.
	Path string

	Content []byte
	Lines   []LineInfo

	// Tokens cover Content without gaps or overlaps.
	Tokens []Token

	// Root is the NodeDocument node, nil until parsed.
	Root *Node
}

// NewFileSnapshot returns a snapshot of content with its line index built.
// The parser fills in Tokens and Root.
func NewFileSnapshot(path string, content []byte) *FileSnapshot {
	return &FileSnapshot{Path: path, Content: content, Lines: BuildLines(content)}
}
