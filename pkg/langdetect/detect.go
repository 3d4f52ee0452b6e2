// Package langdetect names the language of fenced and indented code blocks.
// The info string of a fence wins when go-enry knows it as an alias; the
// body is sniffed otherwise.
package langdetect

import (
	"bytes"
	"strings"

	"github.com/go-enry/go-enry/v2"

	"github.com/yaklabco/gomdtree/pkg/mdast"
)

// Fence tags returned for recognised content.
const (
	langGo         = "go"
	langPython     = "python"
	langJavaScript = "javascript"
	langJSON       = "json"
	langYAML       = "yaml"
	langHTML       = "html"
	langSQL        = "sql"
	langRust       = "rust"
	langDockerfile = "dockerfile"
	langText       = "text"
	langBash       = "bash"
)

// Source tells where a detected language came from.
type Source int

const (
	SourceNone Source = iota
	SourceInfo
	SourceShebang
	SourcePattern
	SourceClassifier
)

func (s Source) String() string {
	switch s {
	case SourceInfo:
		return "info"
	case SourceShebang:
		return "shebang"
	case SourcePattern:
		return "pattern"
	case SourceClassifier:
		return "classifier"
	default:
		return "none"
	}
}

// Result is a detected language with its provenance.
type Result struct {
	Language string
	Source   Source
}

//nolint:gochecknoglobals // Read-only classifier candidates.
var candidates = []string{
	"Go", "Python", "Shell", "JavaScript", "TypeScript",
	"Ruby", "Rust", "Java", "C", "C++", "SQL", "JSON",
	"YAML", "HTML", "CSS", "Markdown", "Dockerfile",
}

// Detect returns the fence tag for code content, or "text" when nothing
// matches with confidence.
func Detect(content []byte) string {
	return DetectContent(content).Language
}

// DetectContent sniffs code content: shebang, then distinctive patterns,
// then the enry classifier.
func DetectContent(content []byte) Result {
	if len(content) == 0 {
		return Result{Language: langText}
	}

	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return Result{Language: normalize(lang), Source: SourceShebang}
	}

	if lang := matchPatterns(newSample(content)); lang != "" {
		return Result{Language: lang, Source: SourcePattern}
	}

	if lang, safe := enry.GetLanguageByClassifier(content, candidates); safe && lang != "" {
		return Result{Language: normalize(lang), Source: SourceClassifier}
	}

	return Result{Language: langText}
}

// FromInfo resolves the first word of a fence info string. Unknown words
// are returned lowercased with ok false.
func FromInfo(info string) (string, bool) {
	fields := strings.Fields(info)
	if len(fields) == 0 {
		return "", false
	}

	word := strings.ToLower(strings.TrimPrefix(fields[0], "{."))
	word = strings.TrimSuffix(word, "}")

	if lang, ok := enry.GetLanguageByAlias(word); ok {
		return normalize(lang), true
	}
	return word, false
}

// ForFence prefers a known info string over the body.
func ForFence(info string, body []byte) Result {
	if lang, ok := FromInfo(info); ok {
		return Result{Language: lang, Source: SourceInfo}
	}
	return DetectContent(body)
}

// ForNode detects the language of a CODE_FENCE or CODE_BLOCK node.
// The second result is false for any other node.
func ForNode(node *mdast.Node) (Result, bool) {
	if node == nil {
		return Result{}, false
	}

	switch node.Kind {
	case mdast.NodeCodeFence:
		info, body := fenceParts(node)
		return ForFence(info, body), true
	case mdast.NodeCodeBlock:
		return DetectContent(indentedBody(node)), true
	default:
		return Result{}, false
	}
}

// fenceParts splits a fence into its info string and code lines.
func fenceParts(node *mdast.Node) (string, []byte) {
	var (
		info  string
		lines [][]byte
	)

	for child := node.FirstChild; child != nil; child = child.Next {
		kind, ok := child.TokenKind()
		if !ok {
			continue
		}
		switch kind {
		case mdast.TokFenceLang:
			info = string(child.Text())
		case mdast.TokCode:
			lines = append(lines, child.Text())
		}
	}

	return info, bytes.Join(lines, []byte("\n"))
}

// indentedBody strips up to four columns of indentation from every line.
func indentedBody(node *mdast.Node) []byte {
	lines := bytes.Split(node.Text(), []byte("\n"))
	for i, line := range lines {
		cut := 0
		for cut < len(line) && cut < 4 && line[cut] == ' ' {
			cut++
		}
		if cut < 4 && cut < len(line) && line[cut] == '\t' {
			cut++
		}
		lines[i] = line[cut:]
	}
	return bytes.TrimRight(bytes.Join(lines, []byte("\n")), "\n")
}

// normalize converts go-enry language names to fence tags.
func normalize(lang string) string {
	if lang == "Shell" {
		return langBash
	}
	return strings.ToLower(lang)
}
