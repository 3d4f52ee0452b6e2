package mdast

// TokenKind classifies the type of a token in the Markdown source.
type TokenKind uint16

// Token kinds cover every byte in the source. The set is closed: parsers
// switch on these values and never allocate new kinds at run time.
const (
	TokText TokenKind = iota
	TokWhitespace
	TokEOL

	// Block structure markers.
	TokBlockQuote      // '>'
	TokListBullet      // '-', '+', '*'
	TokListNumber      // '1.', '2)'
	TokATXHeader       // '#', '##', ...
	TokSetext1         // '===' underline
	TokSetext2         // '---' underline
	TokHorizontalRule  // '***', '- - -'
	TokCodeFenceStart  // opening ``` or ~~~
	TokCodeFenceEnd    // closing ``` or ~~~
	TokFenceLang       // info string after the opening fence
	TokCode            // fenced code content
	TokHTMLBlock       // raw HTML block line

	// Inline markers.
	TokEmph             // single '*' or '_'
	TokBacktick         // backtick run
	TokEscapedBackticks // '\' followed by a backtick run
	TokLBracket
	TokRBracket
	TokLParen
	TokRParen
	TokLT
	TokGT
	TokColon
	TokExclamationMark
	TokSingleQuote
	TokDoubleQuote
	TokAutolink      // payload of <scheme:...>
	TokEmailAutolink // payload of <user@host>
	TokLinkID
	TokLinkTitle
	TokURL

	// Fallback for bytes that cannot be decoded.
	TokBadCharacter

	tokKindCount
)

//nolint:gochecknoglobals // Read-only lookup table.
var tokenKindNames = [tokKindCount]string{
	TokText:             "TEXT",
	TokWhitespace:       "WHITE_SPACE",
	TokEOL:              "EOL",
	TokBlockQuote:       "BLOCK_QUOTE",
	TokListBullet:       "LIST_BULLET",
	TokListNumber:       "LIST_NUMBER",
	TokATXHeader:        "ATX_HEADER",
	TokSetext1:          "SETEXT_1",
	TokSetext2:          "SETEXT_2",
	TokHorizontalRule:   "HORIZONTAL_RULE",
	TokCodeFenceStart:   "CODE_FENCE_START",
	TokCodeFenceEnd:     "CODE_FENCE_END",
	TokFenceLang:        "FENCE_LANG",
	TokCode:             "CODE",
	TokHTMLBlock:        "HTML_BLOCK",
	TokEmph:             "EMPH",
	TokBacktick:         "BACKTICK",
	TokEscapedBackticks: "ESCAPED_BACKTICKS",
	TokLBracket:         "LBRACKET",
	TokRBracket:         "RBRACKET",
	TokLParen:           "LPAREN",
	TokRParen:           "RPAREN",
	TokLT:               "LT",
	TokGT:               "GT",
	TokColon:            "COLON",
	TokExclamationMark:  "EXCLAMATION_MARK",
	TokSingleQuote:      "SINGLE_QUOTE",
	TokDoubleQuote:      "DOUBLE_QUOTE",
	TokAutolink:         "AUTOLINK",
	TokEmailAutolink:    "EMAIL_AUTOLINK",
	TokLinkID:           "LINK_ID",
	TokLinkTitle:        "LINK_TITLE",
	TokURL:              "URL",
	TokBadCharacter:     "BAD_CHARACTER",
}

// String returns the upper-case name used in tree dumps.
func (k TokenKind) String() string {
	if k < tokKindCount {
		return tokenKindNames[k]
	}
	return "TokenKind(?)"
}

// Mergeable reports whether consecutive tokens of this kind are collapsed
// into a single token by the lexer.
func (k TokenKind) Mergeable() bool {
	switch k {
	case TokText, TokWhitespace, TokCode, TokHTMLBlock, TokLinkID, TokLinkTitle,
		TokURL, TokAutolink, TokEmailAutolink, TokBadCharacter:
		return true
	default:
		return false
	}
}

// Token represents a classified span of bytes in the Markdown source.
// Tokens are contiguous and non-overlapping, covering [0, len(Content)).
type Token struct {
	// Kind classifies what this token represents.
	Kind TokenKind

	// StartOffset is the byte index where this token begins (inclusive).
	StartOffset int

	// EndOffset is the byte index where this token ends (exclusive).
	EndOffset int
}

// Text returns the source text of this token from the given content.
func (t Token) Text(content []byte) []byte {
	if t.StartOffset < 0 || t.EndOffset > len(content) || t.StartOffset > t.EndOffset {
		return nil
	}
	return content[t.StartOffset:t.EndOffset]
}

// Len returns the length of this token in bytes.
func (t Token) Len() int {
	return t.EndOffset - t.StartOffset
}

// IsEmpty returns true if this token has zero length.
func (t Token) IsEmpty() bool {
	return t.StartOffset == t.EndOffset
}

// ValidateTokens checks that a token slice is valid:
// - Tokens are contiguous, non-overlapping and non-empty.
// - Tokens cover the full content range [0, contentLen).
// Returns true if valid, false otherwise.
func ValidateTokens(tokens []Token, contentLen int) bool {
	if len(tokens) == 0 {
		return contentLen == 0
	}

	if tokens[0].StartOffset != 0 {
		return false
	}

	if tokens[len(tokens)-1].EndOffset != contentLen {
		return false
	}

	for i := range tokens {
		if tokens[i].IsEmpty() {
			return false
		}
		if i > 0 && tokens[i].StartOffset != tokens[i-1].EndOffset {
			return false
		}
	}

	return true
}
