package mailer

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

const frontmatterFence = "---"

// Template is a parsed template file: YAML frontmatter plus markdown body.
type Template struct {
	Metadata map[string]any
	Body     string
}

// Subject returns the raw "Subject" frontmatter field.
func (t *Template) Subject() string {
	s, _ := t.Metadata["Subject"].(string)
	return s
}

// ParseTemplate splits content into frontmatter metadata and body.
// Content without an opening fence is returned as body with empty metadata.
func ParseTemplate(content []byte) (*Template, error) {
	content = bytes.ReplaceAll(content, []byte("\r\n"), []byte("\n"))

	front, body, found, err := splitFrontmatter(content)
	if err != nil {
		return nil, err
	}
	if !found {
		return &Template{Metadata: map[string]any{}, Body: string(content)}, nil
	}

	metadata := map[string]any{}
	if len(bytes.TrimSpace(front)) > 0 {
		if err := yaml.Unmarshal(front, &metadata); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidFrontmatter, err)
		}
	}

	return &Template{Metadata: metadata, Body: string(body)}, nil
}

// splitFrontmatter expects content to open with a fence line and looks for
// the next fence line. The newline that ends the closing fence is consumed.
func splitFrontmatter(content []byte) (front, body []byte, found bool, err error) {
	first, rest, _ := bytes.Cut(content, []byte("\n"))
	if string(bytes.TrimSpace(first)) != frontmatterFence {
		return nil, nil, false, nil
	}

	offset := 0
	for offset <= len(rest) {
		line, next, more := bytes.Cut(rest[offset:], []byte("\n"))
		if string(bytes.TrimSpace(line)) == frontmatterFence {
			front = rest[:offset]
			if more {
				body = next
			}
			return front, body, true, nil
		}
		if !more {
			break
		}
		offset += len(line) + 1
	}

	return nil, nil, false, fmt.Errorf("%w: closing delimiter not found", ErrInvalidFrontmatter)
}
