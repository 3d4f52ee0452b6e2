package lexer

import (
	"bytes"

	"golang.org/x/net/html/atom"
)

//nolint:gochecknoglobals // Built once at init.
var blockTags = func() map[atom.Atom]bool {
	names := []string{
		"address", "article", "aside", "base", "basefont", "blockquote", "body",
		"caption", "center", "col", "colgroup", "dd", "details", "dialog", "dir",
		"div", "dl", "dt", "fieldset", "figcaption", "figure", "footer", "form",
		"frame", "frameset", "h1", "h2", "h3", "h4", "h5", "h6", "head", "header",
		"hr", "html", "iframe", "legend", "li", "link", "main", "menu", "menuitem",
		"nav", "noframes", "ol", "optgroup", "option", "p", "param", "pre",
		"script", "section", "source", "style", "summary", "table", "tbody", "td",
		"textarea", "tfoot", "th", "thead", "title", "tr", "track", "ul",
	}

	tags := make(map[atom.Atom]bool, len(names))
	for _, name := range names {
		if a := atom.Lookup([]byte(name)); a != 0 {
			tags[a] = true
		}
	}
	return tags
}()

// htmlBlockStart reports whether line opens an HTML block. The returned
// closer ends the block on the line containing it; a nil closer means the
// block runs until a blank line.
func htmlBlockStart(line []byte) ([]byte, bool) {
	if len(line) < 2 || line[0] != '<' {
		return nil, false
	}

	switch {
	case bytes.HasPrefix(line, []byte("<!--")):
		return []byte("-->"), true
	case line[1] == '?':
		return []byte("?>"), true
	case line[1] == '!' && len(line) > 2 && line[2] >= 'A' && line[2] <= 'Z':
		return []byte(">"), true
	}

	name := line[1:]
	if name[0] == '/' {
		name = name[1:]
	}

	n := 0
	for n < len(name) && isTagChar(name[n]) {
		n++
	}
	if n == 0 {
		return nil, false
	}
	if n < len(name) {
		if next := name[n]; !isSpace(next) && next != '>' && next != '/' {
			return nil, false
		}
	}

	if !blockTags[atom.Lookup(bytes.ToLower(name[:n]))] {
		return nil, false
	}
	return nil, true
}

func isTagChar(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || isDigit(c)
}
