package mailer

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Template is a parsed template file: YAML front matter plus a markdown body.
type Template struct {
	Metadata map[string]any
	Body     string
}

// String returns a string metadata value, or "" when absent or not a string.
func (t *Template) String(key string) string {
	s, _ := t.Metadata[key].(string)
	return s
}

var fence = []byte("---")

// ParseTemplate splits content into front matter and body.
//
// The front matter must open on the first line with "---" and close with a
// line that is exactly "---". Content without an opening fence is all body.
// CRLF line endings are accepted.
func ParseTemplate(content []byte) (*Template, error) {
	content = bytes.ReplaceAll(content, []byte("\r\n"), []byte("\n"))

	first, rest, _ := bytes.Cut(content, []byte("\n"))
	if !bytes.Equal(bytes.TrimRight(first, " \t"), fence) {
		return &Template{Metadata: map[string]any{}, Body: string(content)}, nil
	}
	if len(bytes.TrimSpace(rest)) == 0 {
		return nil, fmt.Errorf("%w: no content after opening delimiter", ErrInvalidFrontmatter)
	}

	var (
		front  []byte
		body   []byte
		closed bool
	)
	for offset := 0; offset <= len(rest); {
		line, _, _ := bytes.Cut(rest[offset:], []byte("\n"))
		next := offset + len(line) + 1
		if bytes.Equal(bytes.TrimRight(line, " \t"), fence) {
			front = rest[:offset]
			if next < len(rest) {
				body = rest[next:]
			}
			closed = true
			break
		}
		offset = next
	}
	if !closed {
		return nil, fmt.Errorf("%w: closing delimiter not found", ErrInvalidFrontmatter)
	}

	meta := map[string]any{}
	if len(bytes.TrimSpace(front)) > 0 {
		if err := yaml.Unmarshal(front, &meta); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidFrontmatter, err)
		}
	}

	return &Template{Metadata: meta, Body: string(body)}, nil
}
