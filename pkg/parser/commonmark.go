package parser

import (
	"github.com/yaklabco/gomdtree/pkg/markerblocks"
	"github.com/yaklabco/gomdtree/pkg/mdast"
	"github.com/yaklabco/gomdtree/pkg/tokencache"
)

// DialectCommonMark is the name of the CommonMark dialect.
const DialectCommonMark = "commonmark"

const codeIndent = 4

type commonMark struct {
	FixedPriority
}

// CommonMark returns the reference dialect. Headings see tokens before the
// other blocks so an ATX line ends at its own EOL.
//
//nolint:ireturn // Dialects are chosen at runtime.
func CommonMark() Dialect {
	return commonMark{
		FixedPriority: FixedPriority{
			mdast.NodeATX1: 1,
			mdast.NodeATX2: 1,
			mdast.NodeATX3: 1,
			mdast.NodeATX4: 1,
			mdast.NodeATX5: 1,
			mdast.NodeATX6: 1,
		},
	}
}

// DialectByName returns the dialect registered under name.
//
//nolint:ireturn // Dialects are chosen at runtime.
func DialectByName(name string) (Dialect, bool) {
	switch name {
	case DialectCommonMark, "":
		return CommonMark(), true
	default:
		return nil, false
	}
}

func (commonMark) Name() string {
	return DialectCommonMark
}

func (commonMark) NewBlocks(kind mdast.TokenKind, it tokencache.Iterator, state State) []*markerblocks.Block {
	switch kind {
	case mdast.TokEOL, mdast.TokHorizontalRule, mdast.TokSetext1, mdast.TokSetext2, mdast.TokHTMLBlock:
		return nil
	}

	newConstraints := state.Current.AddModifierIfNeeded(kind, it)
	inParagraph := hasParagraph(state.Stack)
	env := state.Env

	switch {
	case markerblocks.IndentBeforeRawToken(it, 0) >= newConstraints.Indent()+codeIndent && !inParagraph:
		return []*markerblocks.Block{markerblocks.NewCodeBlock(newConstraints, env)}

	case kind == mdast.TokBlockQuote:
		return []*markerblocks.Block{markerblocks.NewBlockQuote(newConstraints, env)}

	case kind == mdast.TokListNumber || kind == mdast.TokListBullet:
		if n := len(state.Stack); n > 0 && state.Stack[n-1].Kind() == markerblocks.KindList {
			return []*markerblocks.Block{markerblocks.NewListItem(newConstraints, env)}
		}
		return []*markerblocks.Block{
			markerblocks.NewList(newConstraints, env, kind),
			markerblocks.NewListItem(newConstraints, env),
		}

	case kind == mdast.TokATXHeader && !inParagraph:
		return []*markerblocks.Block{markerblocks.NewAtxHeader(newConstraints, env, len(it.Text()))}

	case kind == mdast.TokCodeFenceStart:
		return []*markerblocks.Block{markerblocks.NewCodeFence(newConstraints, env)}

	case !inParagraph:
		blocks := []*markerblocks.Block{markerblocks.NewParagraph(newConstraints, env)}
		if markerblocks.IsAtLineStart(it) {
			blocks = append(blocks, markerblocks.NewSetextHeader(newConstraints, env))
		}
		return blocks
	}

	return nil
}

func hasParagraph(stack []*markerblocks.Block) bool {
	for _, block := range stack {
		if block.Kind() == markerblocks.KindParagraph {
			return true
		}
	}
	return false
}
