// Package parser turns Markdown into a concrete syntax tree.
//
// The block automaton in Processor walks the logical tokens once, keeping a
// stack of open marker blocks. Blocks record their ranges in a production
// holder as they close, and blocks with inline content run the inline
// pipeline over their ranges first. The tree builder then nests the recorded
// ranges and reattaches every raw token as a leaf, so the tree reproduces
// the input byte for byte.
package parser

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/gomdtree/internal/logging"
	"github.com/yaklabco/gomdtree/pkg/lexer"
	"github.com/yaklabco/gomdtree/pkg/mdast"
	"github.com/yaklabco/gomdtree/pkg/production"
	"github.com/yaklabco/gomdtree/pkg/tokencache"
)

var (
	// ErrInternal reports a broken automaton invariant.
	ErrInternal = errors.New("internal parser error")

	// ErrInvalidTokens is returned when a token stream does not cover its
	// content exactly.
	ErrInvalidTokens = errors.New("invalid token stream: tokens do not cover content")
)

// Parser parses Markdown documents with a fixed dialect. It holds no
// per-document state and is safe for concurrent use.
type Parser struct {
	dialect Dialect
	logger  *log.Logger
}

// Option configures a Parser.
type Option func(*Parser)

// WithDialect selects the block dialect. The default is CommonMark.
func WithDialect(dialect Dialect) Option {
	return func(p *Parser) {
		if dialect != nil {
			p.dialect = dialect
		}
	}
}

// WithLogger sets the logger. Without it the logger comes from the context
// passed to Parse.
func WithLogger(logger *log.Logger) Option {
	return func(p *Parser) {
		p.logger = logger
	}
}

// New creates a parser.
func New(opts ...Option) *Parser {
	p := &Parser{dialect: CommonMark()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Dialect returns the configured dialect.
//
//nolint:ireturn // Dialects are chosen at runtime.
func (p *Parser) Dialect() Dialect {
	return p.dialect
}

// Parse converts raw Markdown bytes into a fully-populated FileSnapshot.
//
// The method:
//  1. Checks for context cancellation.
//  2. Builds a FileSnapshot shell with path, content, and lines.
//  3. Tokenizes the content.
//  4. Runs the block automaton and the inline pipeline.
//  5. Builds the tree from the production.
//  6. Sets File back-references throughout the tree.
//
// Returns nil and an error if parsing fails or context is cancelled.
func (p *Parser) Parse(ctx context.Context, path string, content []byte) (*mdast.FileSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	snapshot := mdast.NewFileSnapshot(path, bytes.Clone(content))
	snapshot.Tokens = lexer.Tokenize(snapshot.Content)

	root, err := p.ParseTokens(ctx, snapshot.Content, snapshot.Tokens)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	snapshot.Root = root
	mdast.SetFile(snapshot.Root, snapshot)

	return snapshot, nil
}

// ParseTokens builds the tree for a token stream produced elsewhere. The
// returned nodes reference indices into tokens and have no File set.
func (p *Parser) ParseTokens(ctx context.Context, content []byte, tokens []mdast.Token) (*mdast.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}
	if !mdast.ValidateTokens(tokens, len(content)) {
		return nil, ErrInvalidTokens
	}

	logger := p.logger
	if logger == nil {
		logger = logging.FromContext(ctx)
	}

	started := time.Now()
	cache := tokencache.New(content, tokens)
	proc := NewProcessor(p.dialect, cache, logger)

	it := cache.Iterator(0)
	for it.Valid() {
		kind, _ := it.Kind()
		it = proc.ProcessToken(kind, it)
		it = it.Advance()
	}
	proc.Flush(it)

	if proc.Depth() != 0 {
		return nil, fmt.Errorf("%w: %d blocks left open", ErrInternal, proc.Depth())
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	root := production.Node{
		Range: production.Range{Start: 0, End: cache.Len()},
		Kind:  mdast.NodeDocument,
	}
	tree, err := production.BuildTree(cache, root, proc.Production())
	if err != nil {
		return nil, fmt.Errorf("%w: build tree: %w", ErrInternal, err)
	}

	logger.Debug("parsed document",
		logging.FieldDialect, p.dialect.Name(),
		logging.FieldTokens, len(tokens),
		logging.FieldNodes, len(proc.Production()),
		logging.FieldElapsed, time.Since(started),
	)

	return tree, nil
}
