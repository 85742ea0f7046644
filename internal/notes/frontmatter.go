// Package notes handles the document side of an import: front matter
// parsing and serialization, tag normalization, and markdown preview
// rendering.
package notes

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
	"gopkg.in/yaml.v3"
)

// Document is the parsed form of one uploaded markdown file: structured
// front matter plus the body with delimiters stripped.
type Document struct {
	Title string
	Date  time.Time
	Meta  map[string]any
	Body  string
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Parse extracts front matter and body from the provided source bytes.
// Missing or invalid title and date fields are left for the caller to
// default; a missing front matter block yields an empty Meta map and the
// full source as body.
func Parse(source []byte, now time.Time) (*Document, error) {
	meta := map[string]any{}

	body, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err != nil {
		return nil, fmt.Errorf("parse frontmatter: %w", err)
	}
	if meta == nil {
		meta = map[string]any{}
	}

	title := ""
	if raw, ok := meta["title"].(string); ok {
		title = strings.TrimSpace(raw)
	}

	return &Document{
		Title: title,
		Date:  ParseDate(meta["date"], now),
		Meta:  meta,
		Body:  string(body),
	}, nil
}

// ParseDate normalizes an arbitrary front-matter date value to an instant.
// Invalid or missing input yields the fallback.
func ParseDate(value any, fallback time.Time) time.Time {
	switch v := value.(type) {
	case time.Time:
		return v
	case string:
		trimmed := strings.TrimSpace(v)
		for _, layout := range dateLayouts {
			if parsed, err := time.Parse(layout, trimmed); err == nil {
				return parsed
			}
		}
	}
	return fallback
}

// Serialize assembles the canonical stored document: a YAML front matter
// block followed by the body with a guaranteed trailing newline. Map keys
// serialize in sorted order so output is stable across runs.
func Serialize(meta map[string]any, body string) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("---\n")

	encoded, err := marshalSorted(meta)
	if err != nil {
		return nil, fmt.Errorf("serialize frontmatter: %w", err)
	}
	buf.Write(encoded)
	buf.WriteString("---\n\n")

	buf.WriteString(strings.TrimRight(body, "\n"))
	buf.WriteString("\n")
	return buf.Bytes(), nil
}

func marshalSorted(meta map[string]any) ([]byte, error) {
	keys := make([]string, 0, len(meta))
	for key := range meta {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, key := range keys {
		keyNode := &yaml.Node{Kind: yaml.ScalarNode, Value: key}
		valueNode := &yaml.Node{}
		if err := valueNode.Encode(meta[key]); err != nil {
			return nil, err
		}
		node.Content = append(node.Content, keyNode, valueNode)
	}
	return yaml.Marshal(node)
}
