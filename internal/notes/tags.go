package notes

import (
	"fmt"
	"strings"
)

// DefaultTag is the sentinel applied when a document carries no usable tags.
// The same fallback is used by the direct publishing path so documents look
// consistent regardless of import route.
const DefaultTag = "notes"

// NormalizeTags converts an arbitrary front-matter tag value into a
// non-empty list of trimmed strings. Strings split on commas, lists keep
// their elements, and anything else is stringified. Empty results fall back
// to the default tag.
func NormalizeTags(value any) []string {
	var raw []string

	switch v := value.(type) {
	case nil:
	case string:
		raw = strings.Split(v, ",")
	case []string:
		raw = v
	case []any:
		for _, item := range v {
			raw = append(raw, stringify(item))
		}
	default:
		raw = []string{stringify(v)}
	}

	tags := make([]string, 0, len(raw))
	seen := map[string]struct{}{}
	for _, tag := range raw {
		trimmed := strings.TrimSpace(tag)
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; ok {
			continue
		}
		seen[trimmed] = struct{}{}
		tags = append(tags, trimmed)
	}

	if len(tags) == 0 {
		return []string{DefaultTag}
	}
	return tags
}

func stringify(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}
