// Package markdown parses documentation markdown: front matter, titles,
// plain-text snippets and headings.
package markdown

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const delimiter = "---"

// Document is a markdown file split into front matter and body.
type Document struct {
	FrontMatter map[string]any
	Body        string
}

// Title returns the front matter title, or "" when none is set.
func (d Document) Title() string {
	return d.String("title")
}

// String returns a front matter value formatted as a string.
func (d Document) String(key string) string {
	v, ok := d.FrontMatter[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(fmt.Sprint(v))
}

// Parse splits src into front matter and body. Front matter is the block
// between a leading "---" line and the next "---" line. It is decoded as
// YAML, falling back to plain "key: value" lines when the block is not valid
// YAML. Files without front matter are returned whole as the body.
func Parse(src string) Document {
	src = strings.ReplaceAll(src, "\r\n", "\n")
	lines := strings.Split(src, "\n")

	if len(lines) == 0 || strings.TrimRight(lines[0], " \t") != delimiter {
		return Document{FrontMatter: map[string]any{}, Body: src}
	}

	end := -1
	for i := 1; i < len(lines); i++ {
		if strings.TrimRight(lines[i], " \t") == delimiter {
			end = i
			break
		}
	}
	if end == -1 {
		// An unterminated block swallows the rest of the file.
		return Document{FrontMatter: parseBlock(lines[1:]), Body: ""}
	}

	return Document{
		FrontMatter: parseBlock(lines[1:end]),
		Body:        strings.TrimLeft(strings.Join(lines[end+1:], "\n"), "\n"),
	}
}

func parseBlock(lines []string) map[string]any {
	meta := map[string]any{}
	if err := yaml.Unmarshal([]byte(strings.Join(lines, "\n")), &meta); err == nil {
		if meta == nil {
			meta = map[string]any{}
		}
		return meta
	}

	meta = map[string]any{}
	for _, line := range lines {
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		meta[key] = strings.Trim(strings.TrimSpace(value), `"'`)
	}
	return meta
}
