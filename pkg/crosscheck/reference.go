// Package crosscheck compares the block outline gomdtree produces against the
// one goldmark derives from the same source. Both trees are reduced to
// outline entries; headings are compared by level only because goldmark does
// not record whether a heading was ATX or setext.
package crosscheck

import (
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/yaklabco/gomdtree/pkg/mdast"
	"github.com/yaklabco/gomdtree/pkg/outline"
)

// Reference parses Markdown with goldmark in pure CommonMark mode.
type Reference struct {
	md goldmark.Markdown
}

// NewReference creates a goldmark reference parser without extensions.
func NewReference() *Reference {
	return &Reference{md: goldmark.New()}
}

// Outline parses content with goldmark and reduces it to an outline.
func (r *Reference) Outline(content []byte) outline.Outline {
	doc := r.md.Parser().Parse(text.NewReader(content), parser.WithContext(parser.NewContext()))
	lines := mdast.NewFileSnapshot("", content)

	var (
		entries outline.Outline
		depth   int
	)

	//nolint:errcheck // the walker never returns an error
	ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		kind, detail, ok := classify(node, content)
		if !ok {
			if _, skip := node.(*ast.ThematicBreak); skip && entering {
				return ast.WalkSkipChildren, nil
			}
			return ast.WalkContinue, nil
		}

		if !entering {
			depth--
			return ast.WalkContinue, nil
		}

		line, _ := lines.LineAt(firstOffset(node))
		entries = append(entries, outline.Entry{
			Depth:  depth,
			Kind:   kind,
			Line:   line,
			Detail: detail,
		})
		depth++

		return ast.WalkContinue, nil
	})

	return entries
}

// classify maps a goldmark block to the kind name used in tree dumps.
func classify(node ast.Node, source []byte) (string, string, bool) {
	switch n := node.(type) {
	case *ast.Heading:
		return headingKey(n.Level), headingText(n, source), true
	case *ast.Paragraph:
		// A paragraph made only of link reference definitions keeps no lines.
		if n.Lines().Len() == 0 {
			return "", "", false
		}
		return mdast.NodeParagraph.String(), "", true
	case *ast.TextBlock:
		return mdast.NodeParagraph.String(), "", true
	case *ast.List:
		if n.IsOrdered() {
			return mdast.NodeOrderedList.String(), "", true
		}
		return mdast.NodeUnorderedList.String(), "", true
	case *ast.ListItem:
		return mdast.NodeListItem.String(), "", true
	case *ast.Blockquote:
		return mdast.NodeBlockQuote.String(), "", true
	case *ast.FencedCodeBlock:
		return mdast.NodeCodeFence.String(), string(n.Language(source)), true
	case *ast.CodeBlock:
		return mdast.NodeCodeBlock.String(), "", true
	default:
		return "", "", false
	}
}

// headingKey is the level-only name shared by ATX and setext headings.
func headingKey(level int) string {
	return fmt.Sprintf("HEADING_%d", level)
}

// firstOffset finds the first source byte of a block, descending into
// containers that carry no lines of their own. It returns -1 when the
// block is empty.
func firstOffset(node ast.Node) int {
	if fence, ok := node.(*ast.FencedCodeBlock); ok && fence.Info != nil {
		return fence.Info.Segment.Start
	}
	if lines := node.Lines(); lines != nil && lines.Len() > 0 {
		return lines.At(0).Start
	}
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		if child.Type() != ast.TypeBlock {
			continue
		}
		if offset := firstOffset(child); offset >= 0 {
			return offset
		}
	}
	return -1
}

func headingText(heading *ast.Heading, source []byte) string {
	var builder strings.Builder

	//nolint:errcheck // the walker never returns an error
	ast.Walk(heading, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n := node.(type) {
		case *ast.Text:
			builder.Write(n.Segment.Value(source))
			if n.SoftLineBreak() {
				builder.WriteByte(' ')
			}
		case *ast.String:
			builder.Write(n.Value)
		}
		return ast.WalkContinue, nil
	})

	return strings.Join(strings.Fields(builder.String()), " ")
}
