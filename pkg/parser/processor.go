package parser

import (
	"github.com/charmbracelet/log"
	"github.com/emirpasic/gods/maps/treemap"

	"github.com/yaklabco/gomdtree/internal/logging"
	"github.com/yaklabco/gomdtree/pkg/constraints"
	"github.com/yaklabco/gomdtree/pkg/markerblocks"
	"github.com/yaklabco/gomdtree/pkg/mdast"
	"github.com/yaklabco/gomdtree/pkg/production"
	"github.com/yaklabco/gomdtree/pkg/tokencache"
)

// Processor is the block automaton. It keeps the stack of open blocks, feeds
// each logical token to them in dialect order and lets the dialect open new
// blocks when no block claims the token.
//
// A Processor serves a single document and is not safe for concurrent use.
type Processor struct {
	dialect Dialect
	env     markerblocks.Env
	logger  *log.Logger

	stack []*markerblocks.Block

	// postponed maps stack indices to results applied before the next token,
	// highest index first.
	postponed *treemap.Map

	// permutation caches the dialect order; nil after the stack changes.
	permutation []int

	start   constraints.Constraints
	top     constraints.Constraints
	current constraints.Constraints
}

// NewProcessor returns a processor recording into a fresh holder over cache.
func NewProcessor(dialect Dialect, cache *tokencache.Cache, logger *log.Logger) *Processor {
	if logger == nil {
		logger = logging.Default()
	}
	return &Processor{
		dialect: dialect,
		env: markerblocks.Env{
			Cache:  cache,
			Holder: production.NewHolder(),
		},
		logger:    logger,
		postponed: treemap.NewWithIntComparator(),
		start:     constraints.Base,
		top:       constraints.Base,
		current:   constraints.Base,
	}
}

// ProcessToken feeds the token under it to the open blocks. After an EOL it
// skips the container markers that only repeat the open blocks and returns
// the iterator positioned on the last skipped token.
func (p *Processor) ProcessToken(kind mdast.TokenKind, it tokencache.Iterator) tokencache.Iterator {
	p.env.Holder.UpdatePosition(it.Index())
	p.processPostponed()

	if !p.processMarkers(kind, it) {
		for _, block := range p.dialect.NewBlocks(kind, it, p.state()) {
			p.addBlock(block)
		}
	}

	if kind == mdast.TokEOL {
		it = p.passDuplicatingTokens(it)
	}
	return it
}

// Flush closes every open block at it, which is normally one past the last
// logical token.
func (p *Processor) Flush(it tokencache.Iterator) {
	p.env.Holder.UpdatePosition(it.Index())
	p.processPostponed()
	p.closeChildren(-1, markerblocks.ActionDefault)
}

// Production returns the nodes recorded so far.
func (p *Processor) Production() []production.Node {
	return p.env.Holder.Production()
}

// Depth returns the number of open blocks.
func (p *Processor) Depth() int {
	return len(p.stack)
}

func (p *Processor) state() State {
	return State{
		Stack:   p.stack,
		Current: p.current,
		Env:     p.env,
	}
}

func (p *Processor) addBlock(block *markerblocks.Block) {
	p.stack = append(p.stack, block)
	p.top = block.Constraints()
	p.permutation = nil
	p.current = p.top
}

func (p *Processor) processPostponed() {
	for !p.postponed.Empty() {
		key, value := p.postponed.Max()
		p.postponed.Remove(key)

		index, _ := key.(int)
		result, _ := value.(markerblocks.ProcessingResult)
		if index >= len(p.stack) {
			p.logger.Warn("postponed result for a closed block", "index", index)
			continue
		}
		p.apply(index, result)
	}
}

// processMarkers reports whether a block cancelled the token.
func (p *Processor) processMarkers(kind mdast.TokenKind, it tokencache.Iterator) bool {
	if p.permutation == nil {
		p.permutation = p.dialect.Permutation(p.stack)
	}
	defer p.syncTop()

	for _, index := range p.permutation {
		if index >= len(p.stack) {
			continue
		}

		result := p.stack[index].ProcessToken(kind, it, p.top)
		if result.Postponed {
			p.postponed.Put(index, result)
		} else {
			if result == markerblocks.Pass {
				continue
			}
			p.apply(index, result)
		}

		if result.EventAction == markerblocks.EventCancel {
			return true
		}
	}
	return false
}

// syncTop refreshes the cached order and top constraints once the stack
// has changed size.
func (p *Processor) syncTop() {
	if p.permutation != nil && len(p.stack) == len(p.permutation) {
		return
	}
	p.permutation = nil
	if len(p.stack) == 0 {
		p.top = p.start
		return
	}
	p.top = p.stack[len(p.stack)-1].Constraints()
}

func (p *Processor) apply(index int, result markerblocks.ProcessingResult) {
	p.closeChildren(index, result.ChildrenAction)

	if p.stack[index].AcceptAction(result.SelfAction) {
		p.stack = append(p.stack[:index], p.stack[index+1:]...)
	}
}

// closeChildren applies action to every block above index, innermost first.
func (p *Processor) closeChildren(index int, action markerblocks.ClosingAction) {
	if action == markerblocks.ActionNothing {
		return
	}

	for latter := len(p.stack) - 1; latter > index; latter-- {
		if _, pending := p.postponed.Get(latter); pending {
			p.logger.Warn("closing block with a pending result",
				logging.FieldBlock, p.stack[latter].Kind().String(), "index", latter)
			p.postponed.Remove(latter)
		}

		p.stack[latter].AcceptAction(action)
		p.stack = p.stack[:latter]
	}
}

// passDuplicatingTokens consumes the prefix of the line after the EOL at it
// while it stays within the top block's constraints. Skipped markers belong
// to blocks that are already open.
func (p *Processor) passDuplicatingTokens(it tokencache.Iterator) tokencache.Iterator {
	prefix := p.start
	toSkip := 0

scan:
	for raw := 1; ; raw++ {
		kind, ok := it.RawLookup(raw)
		if !ok {
			break
		}

		var next constraints.Constraints
		switch {
		case kind == mdast.TokWhitespace:
			next = prefix.FillImplicitsOnWhiteSpace(it, raw, p.top)
		case constraints.IsConstraintKind(kind):
			next = prefix.AddModifier(kind, it, raw)
		default:
			break scan
		}

		if !next.UpstreamWith(p.top) {
			break
		}
		prefix = next
		if kind != mdast.TokWhitespace {
			toSkip++
		}
	}

	p.current = prefix
	for range toSkip {
		it = it.Advance()
	}
	return it
}
