package langdetect

import (
	"bytes"
	"strings"
)

// sample holds the views of a code body the pattern matchers share.
type sample struct {
	raw     []byte
	trimmed []byte
	text    string
}

func newSample(content []byte) sample {
	return sample{raw: content, trimmed: bytes.TrimSpace(content), text: string(content)}
}

// matchers run in order of specificity; the first hit wins.
//
//nolint:gochecknoglobals // Read-only dispatch table.
var matchers = []func(sample) string{
	goPattern,
	pythonPattern,
	htmlPattern,
	jsonPattern,
	dockerfilePattern,
	sqlPattern,
	rustPattern,
	javaScriptPattern,
	yamlPattern,
}

func matchPatterns(s sample) string {
	for _, match := range matchers {
		if lang := match(s); lang != "" {
			return lang
		}
	}
	return ""
}

func goPattern(s sample) string {
	if bytes.HasPrefix(s.trimmed, []byte("package ")) {
		return langGo
	}
	return ""
}

func pythonPattern(s sample) string {
	switch {
	case strings.Contains(s.text, "def ") && strings.Contains(s.text, "):"):
		return langPython
	case strings.Contains(s.text, "__name__"), strings.Contains(s.text, "__main__"):
		return langPython
	}

	// Go groups imports in parentheses; Python never does.
	if strings.Contains(s.text, "import ") && !strings.Contains(s.text, "import (") {
		if strings.Contains(s.text, "from ") || strings.HasPrefix(string(s.trimmed), "import ") {
			return langPython
		}
	}
	return ""
}

func htmlPattern(s sample) string {
	lower := bytes.ToLower(s.trimmed)
	for _, marker := range []string{"<!doctype html", "<html", "<head>", "<body>"} {
		if bytes.Contains(lower, []byte(marker)) {
			return langHTML
		}
	}
	return ""
}

func jsonPattern(s sample) string {
	opens := bytes.HasPrefix(s.trimmed, []byte("{")) || bytes.HasPrefix(s.trimmed, []byte("["))
	if opens && bytes.Contains(s.trimmed, []byte(`"`)) {
		return langJSON
	}
	return ""
}

func dockerfilePattern(s sample) string {
	switch {
	case bytes.HasPrefix(s.trimmed, []byte("FROM ")):
		return langDockerfile
	case bytes.Contains(s.raw, []byte("\nFROM ")) && bytes.Contains(s.raw, []byte("\nRUN ")):
		return langDockerfile
	case bytes.Contains(s.raw, []byte("WORKDIR ")) && bytes.Contains(s.raw, []byte("COPY ")):
		return langDockerfile
	}
	return ""
}

func sqlPattern(s sample) string {
	head := strings.ToUpper(string(s.trimmed))
	for _, verb := range []string{"SELECT ", "INSERT ", "UPDATE ", "DELETE ", "CREATE "} {
		if strings.HasPrefix(head, verb) {
			return langSQL
		}
	}
	return ""
}

func rustPattern(s sample) string {
	for _, marker := range []string{"fn main()", "println!", "let mut "} {
		if strings.Contains(s.text, marker) {
			return langRust
		}
	}
	return ""
}

func javaScriptPattern(s sample) string {
	for _, marker := range []string{"=>", "const ", "let ", "console.log"} {
		if strings.Contains(s.text, marker) {
			return langJavaScript
		}
	}
	return ""
}

// yamlPattern needs at least two key: value pairs or root list items.
func yamlPattern(s sample) string {
	pairs := 0

	for _, line := range bytes.Split(s.raw, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 || line[0] == '#' {
			continue
		}
		if bytes.Contains(line, []byte(": ")) &&
			!bytes.ContainsAny(line, "({") &&
			line[0] != '"' {
			pairs++
		}
		if bytes.HasPrefix(line, []byte("- ")) {
			pairs++
		}
	}

	if pairs >= 2 {
		return langYAML
	}
	return ""
}
