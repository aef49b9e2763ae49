// Package fencelang identifies the language of fenced and indented code
// blocks. Declared info strings win; otherwise the content is classified
// with go-enry plus a few strong textual signals.
package fencelang

import (
	"bytes"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Text is returned when no language can be determined.
const Text = "text"

//nolint:gochecknoglobals // Read-only classifier candidates.
var candidates = []string{
	"Go", "Python", "Shell", "JavaScript", "TypeScript",
	"Ruby", "Rust", "Java", "C", "C++", "SQL", "JSON",
	"YAML", "HTML", "CSS", "Markdown", "Dockerfile",
}

// signal is a cheap content test that is more reliable than the classifier
// for short snippets.
type signal struct {
	lang  string
	match func(raw []byte, trimmed []byte, text string) bool
}

//nolint:gochecknoglobals // Ordered from most to least specific.
var signals = []signal{
	{"go", func(_, trimmed []byte, _ string) bool {
		return bytes.HasPrefix(trimmed, []byte("package "))
	}},
	{"python", func(_, _ []byte, text string) bool {
		if strings.Contains(text, "def ") && strings.Contains(text, "):") {
			return true
		}
		if strings.Contains(text, "__name__") || strings.Contains(text, "__main__") {
			return true
		}
		return strings.HasPrefix(strings.TrimSpace(text), "import ") && !strings.Contains(text, "import (")
	}},
	{"html", func(_, trimmed []byte, _ string) bool {
		lower := bytes.ToLower(trimmed)
		for _, tag := range []string{"<!doctype html", "<html", "<head>", "<body>"} {
			if bytes.Contains(lower, []byte(tag)) {
				return true
			}
		}
		return false
	}},
	{"json", func(_, trimmed []byte, _ string) bool {
		return (bytes.HasPrefix(trimmed, []byte("{")) || bytes.HasPrefix(trimmed, []byte("["))) &&
			bytes.Contains(trimmed, []byte(`"`))
	}},
	{"dockerfile", func(raw, trimmed []byte, _ string) bool {
		return bytes.HasPrefix(trimmed, []byte("FROM ")) ||
			(bytes.Contains(raw, []byte("WORKDIR ")) && bytes.Contains(raw, []byte("COPY ")))
	}},
	{"sql", func(_, _ []byte, text string) bool {
		head := strings.ToUpper(strings.TrimSpace(text))
		for _, kw := range []string{"SELECT ", "INSERT ", "UPDATE ", "DELETE ", "CREATE "} {
			if strings.HasPrefix(head, kw) {
				return true
			}
		}
		return false
	}},
	{"rust", func(_, _ []byte, text string) bool {
		return strings.Contains(text, "fn main()") ||
			strings.Contains(text, "println!") ||
			strings.Contains(text, "let mut ")
	}},
	{"javascript", func(_, _ []byte, text string) bool {
		return strings.Contains(text, "=>") ||
			strings.Contains(text, "console.log") ||
			strings.Contains(text, "const ")
	}},
	{"yaml", func(raw, _ []byte, _ string) bool {
		return yamlPairs(raw) >= 2
	}},
}

// yamlPairs counts "key: value" lines and root-level "- " items.
func yamlPairs(content []byte) int {
	count := 0
	for line := range bytes.SplitSeq(content, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 || line[0] == '#' {
			continue
		}
		if bytes.Contains(line, []byte(": ")) &&
			!bytes.ContainsAny(line, "({") &&
			line[0] != '"' {
			count++
		}
		if bytes.HasPrefix(line, []byte("- ")) {
			count++
		}
	}
	return count
}

// Detect classifies code content. It returns Text when unsure.
func Detect(content []byte) string {
	if len(bytes.TrimSpace(content)) == 0 {
		return Text
	}

	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return normalize(lang)
	}

	trimmed := bytes.TrimSpace(content)
	text := string(content)
	for _, sig := range signals {
		if sig.match(content, trimmed, text) {
			return sig.lang
		}
	}

	if lang, safe := enry.GetLanguageByClassifier(content, candidates); safe && lang != "" {
		return normalize(lang)
	}

	return Text
}

// FromInfo returns the language named by a fence info string, or "" when the
// info string is empty. Known aliases are canonicalized ("golang" -> "go").
func FromInfo(info string) string {
	fields := strings.Fields(info)
	if len(fields) == 0 {
		return ""
	}

	// "{.python}" and "python{1,3}" style attributes.
	word := strings.Trim(fields[0], "{}.")
	if idx := strings.IndexByte(word, '{'); idx > 0 {
		word = word[:idx]
	}
	if word == "" {
		return ""
	}

	if lang, ok := enry.GetLanguageByAlias(word); ok {
		return normalize(lang)
	}
	return strings.ToLower(word)
}

func normalize(lang string) string {
	if lang == "Shell" {
		return "bash"
	}
	return strings.ToLower(lang)
}
