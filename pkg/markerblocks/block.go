// Package markerblocks implements the container and leaf blocks tracked by
// the block automaton. Each block reacts to tokens with a ProcessingResult
// and records its node in the production when it closes.
package markerblocks

import (
	"slices"

	"github.com/yaklabco/gomdtree/pkg/constraints"
	"github.com/yaklabco/gomdtree/pkg/inline"
	"github.com/yaklabco/gomdtree/pkg/mdast"
	"github.com/yaklabco/gomdtree/pkg/production"
	"github.com/yaklabco/gomdtree/pkg/tokencache"
)

// Kind identifies the variant of a Block.
type Kind uint8

// Block kinds.
const (
	KindBlockQuote Kind = iota
	KindList
	KindListItem
	KindCodeBlock
	KindCodeFence
	KindAtxHeader
	KindSetextHeader
	KindParagraph

	kindCount
)

//nolint:gochecknoglobals // Read-only lookup table.
var kindNames = [kindCount]string{
	KindBlockQuote:   "blockquote",
	KindList:         "list",
	KindListItem:     "list-item",
	KindCodeBlock:    "code-block",
	KindCodeFence:    "code-fence",
	KindAtxHeader:    "atx-header",
	KindSetextHeader: "setext-header",
	KindParagraph:    "paragraph",
}

func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return "unknown"
}

// Env is the shared parsing state blocks record into.
type Env struct {
	Cache  *tokencache.Cache
	Holder *production.Holder
}

// Block is one open block on the automaton stack.
type Block struct {
	kind        Kind
	constraints constraints.Constraints
	marker      production.Marker
	env         Env

	// nodeKind is fixed for most kinds; lists, headers and setext headers
	// choose it from their marker.
	nodeKind mdast.NodeKind
}

type processFunc func(b *Block, kind mdast.TokenKind, it tokencache.Iterator) ProcessingResult

type rule struct {
	// interesting limits the tokens the block sees; nil means all.
	interesting   []mdast.TokenKind
	defaultAction ClosingAction
	process       processFunc

	// inlineRanges is set for blocks holding inline content.
	inlineRanges func(b *Block) []production.Range
}

//nolint:gochecknoglobals // Read-only dispatch table.
var rules = [kindCount]rule{
	KindBlockQuote: {
		interesting:   []mdast.TokenKind{mdast.TokEOL},
		defaultAction: ActionDone,
		process:       processBlockQuote,
	},
	KindList: {
		interesting:   []mdast.TokenKind{mdast.TokEOL},
		defaultAction: ActionDone,
		process:       processList,
	},
	KindListItem: {
		interesting:   []mdast.TokenKind{mdast.TokEOL},
		defaultAction: ActionDone,
		process:       processListItem,
	},
	KindCodeBlock: {
		defaultAction: ActionDone,
		process:       processCodeBlock,
	},
	KindCodeFence: {
		defaultAction: ActionDone,
		process:       processCodeFence,
	},
	KindAtxHeader: {
		interesting:   []mdast.TokenKind{mdast.TokEOL},
		defaultAction: ActionDone,
		process:       processAtxHeader,
		inlineRanges:  atxInlineRanges,
	},
	KindSetextHeader: {
		interesting:   []mdast.TokenKind{mdast.TokSetext1, mdast.TokSetext2},
		defaultAction: ActionDrop,
		process:       processSetextHeader,
		inlineRanges:  setextInlineRanges,
	},
	KindParagraph: {
		interesting:   []mdast.TokenKind{mdast.TokEOL},
		defaultAction: ActionDone,
		process:       processParagraph,
		inlineRanges:  paragraphInlineRanges,
	},
}

func newBlock(kind Kind, nodeKind mdast.NodeKind, c constraints.Constraints, env Env) *Block {
	return &Block{
		kind:        kind,
		constraints: c,
		marker:      env.Holder.Mark(),
		env:         env,
		nodeKind:    nodeKind,
	}
}

// NewBlockQuote opens a blockquote.
func NewBlockQuote(c constraints.Constraints, env Env) *Block {
	return newBlock(KindBlockQuote, mdast.NodeBlockQuote, c, env)
}

// NewList opens a list whose type follows the marker token kind.
func NewList(c constraints.Constraints, env Env, marker mdast.TokenKind) *Block {
	nodeKind := mdast.NodeOrderedList
	if marker == mdast.TokListBullet {
		nodeKind = mdast.NodeUnorderedList
	}
	return newBlock(KindList, nodeKind, c, env)
}

// NewListItem opens a list item.
func NewListItem(c constraints.Constraints, env Env) *Block {
	return newBlock(KindListItem, mdast.NodeListItem, c, env)
}

// NewCodeBlock opens an indented code block.
func NewCodeBlock(c constraints.Constraints, env Env) *Block {
	return newBlock(KindCodeBlock, mdast.NodeCodeBlock, c, env)
}

// NewCodeFence opens a fenced code block.
func NewCodeFence(c constraints.Constraints, env Env) *Block {
	return newBlock(KindCodeFence, mdast.NodeCodeFence, c, env)
}

// NewAtxHeader opens an ATX heading whose marker is level characters long.
func NewAtxHeader(c constraints.Constraints, env Env, level int) *Block {
	return newBlock(KindAtxHeader, mdast.ATXKind(level), c, env)
}

// NewSetextHeader opens a speculative setext heading.
func NewSetextHeader(c constraints.Constraints, env Env) *Block {
	return newBlock(KindSetextHeader, mdast.NodeSetext1, c, env)
}

// NewParagraph opens a paragraph.
func NewParagraph(c constraints.Constraints, env Env) *Block {
	return newBlock(KindParagraph, mdast.NodeParagraph, c, env)
}

// Kind returns the block variant.
func (b *Block) Kind() Kind {
	return b.kind
}

// Constraints returns the constraints the block was opened with.
func (b *Block) Constraints() constraints.Constraints {
	return b.constraints
}

// DefaultNodeKind returns the node kind recorded when the block is done.
func (b *Block) DefaultNodeKind() mdast.NodeKind {
	return b.nodeKind
}

// ProcessToken reacts to the token under it. Tokens outside the block's
// interesting set pass through untouched.
func (b *Block) ProcessToken(kind mdast.TokenKind, it tokencache.Iterator, _ constraints.Constraints) ProcessingResult {
	r := rules[b.kind]
	if r.interesting != nil && !slices.Contains(r.interesting, kind) {
		return Pass
	}
	return r.process(b, kind, it)
}

// AcceptAction applies action to the block and reports whether the block
// is closed. Blocks holding inline content parse it before recording their
// own node, so inline nodes precede the block in the production.
func (b *Block) AcceptAction(action ClosingAction) bool {
	r := rules[b.kind]

	if action == ActionDefault {
		action = r.defaultAction
	}

	if action == ActionDone && r.inlineRanges != nil {
		b.env.Holder.Add(inline.Run(b.env.Cache, r.inlineRanges(b))...)
	}

	if action == ActionDone {
		b.marker.Done(b.nodeKind)
	}

	return action != ActionNothing
}
