// Package links implements the scanner for the two in-text link grammars:
// wiki-style cross-references (`[[Target]]`, `[[Target|Alias]]`) and
// markdown hyperlinks whose target is an absolute http(s) URL.
//
// Extraction and rewriting share one scanner so commit-time rewrites can
// never disagree with what was extracted. Scanning is a single
// left-to-right pass: backslash escapes are honoured, bracket sequences are
// not nested, and the first closing delimiter wins.
package links

import (
	"strings"

	"github.com/goliatone/go-noteimport/internal/permalink"
)

// WikiLink is one `[[Target]]` or `[[Target|Alias]]` occurrence, in document
// order. Alias defaults to the target title.
type WikiLink struct {
	TargetTitle string
	Alias       string
	TargetSlug  string

	start, end int
}

// ExternalLink is one markdown hyperlink with an absolute http(s) target, in
// document order. Occurrences of the same URL are not deduplicated here;
// that happens at the archive-registry level.
type ExternalLink struct {
	Text string
	URL  string

	start, end int
}

// ExtractWikiLinks returns every wiki-link occurrence in body, left to right.
func ExtractWikiLinks(body string) []WikiLink {
	return scanWikiLinks(body)
}

// ExtractExternalLinks returns every absolute http(s) hyperlink in body,
// left to right.
func ExtractExternalLinks(body string) []ExternalLink {
	return scanExternalLinks(body)
}

// ReplaceWikiLinks rewrites body by substituting each wiki-link occurrence
// with the string returned by resolve. Occurrences for which resolve reports
// false are left untouched.
func ReplaceWikiLinks(body string, resolve func(WikiLink) (string, bool)) string {
	matches := scanWikiLinks(body)
	if len(matches) == 0 {
		return body
	}

	var b strings.Builder
	b.Grow(len(body))
	last := 0
	for _, m := range matches {
		replacement, ok := resolve(m)
		if !ok {
			continue
		}
		b.WriteString(body[last:m.start])
		b.WriteString(replacement)
		last = m.end
	}
	b.WriteString(body[last:])
	return b.String()
}

// ReplaceExternalLinks rewrites body by substituting each external-link
// occurrence with the string returned by resolve. Occurrences for which
// resolve reports false are left untouched.
func ReplaceExternalLinks(body string, resolve func(ExternalLink) (string, bool)) string {
	matches := scanExternalLinks(body)
	if len(matches) == 0 {
		return body
	}

	var b strings.Builder
	b.Grow(len(body))
	last := 0
	for _, m := range matches {
		replacement, ok := resolve(m)
		if !ok {
			continue
		}
		b.WriteString(body[last:m.start])
		b.WriteString(replacement)
		last = m.end
	}
	b.WriteString(body[last:])
	return b.String()
}

func scanWikiLinks(body string) []WikiLink {
	var out []WikiLink
	for i := 0; i < len(body); {
		switch body[i] {
		case '\\':
			i += 2
		case '[':
			if i+1 >= len(body) || body[i+1] != '[' {
				i++
				continue
			}
			closing := strings.Index(body[i+2:], "]]")
			if closing < 0 {
				return out
			}
			end := i + 2 + closing + 2
			if link, ok := parseWikiTarget(body[i+2 : i+2+closing]); ok {
				link.start = i
				link.end = end
				out = append(out, link)
			}
			i = end
		default:
			i++
		}
	}
	return out
}

func parseWikiTarget(inner string) (WikiLink, bool) {
	target := inner
	alias := ""
	if pipe := strings.IndexByte(inner, '|'); pipe >= 0 {
		target = inner[:pipe]
		alias = inner[pipe+1:]
	}

	target = strings.TrimSpace(target)
	if target == "" {
		return WikiLink{}, false
	}

	alias = strings.TrimSpace(alias)
	if alias == "" {
		alias = target
	}

	return WikiLink{
		TargetTitle: target,
		Alias:       alias,
		TargetSlug:  permalink.Slugize(target),
	}, true
}

func scanExternalLinks(body string) []ExternalLink {
	var out []ExternalLink
	for i := 0; i < len(body); {
		switch body[i] {
		case '\\':
			i += 2
		case '[':
			// Skip wiki links wholesale so their targets never parse as
			// hyperlinks.
			if i+1 < len(body) && body[i+1] == '[' {
				closing := strings.Index(body[i+2:], "]]")
				if closing < 0 {
					return out
				}
				i = i + 2 + closing + 2
				continue
			}
			if link, end, ok := parseHyperlink(body, i); ok {
				out = append(out, link)
				i = end
				continue
			}
			i++
		default:
			i++
		}
	}
	return out
}

func parseHyperlink(body string, start int) (ExternalLink, int, bool) {
	closeBracket := indexUnescaped(body, start+1, ']')
	if closeBracket < 0 || closeBracket+1 >= len(body) || body[closeBracket+1] != '(' {
		return ExternalLink{}, 0, false
	}
	closeParen := indexUnescaped(body, closeBracket+2, ')')
	if closeParen < 0 {
		return ExternalLink{}, 0, false
	}

	target := strings.TrimSpace(body[closeBracket+2 : closeParen])
	if cut := strings.IndexAny(target, " \t"); cut >= 0 {
		// Drop the optional markdown title component.
		target = target[:cut]
	}
	if !isHTTPURL(target) {
		return ExternalLink{}, 0, false
	}

	return ExternalLink{
		Text:  body[start+1 : closeBracket],
		URL:   target,
		start: start,
		end:   closeParen + 1,
	}, closeParen + 1, true
}

func indexUnescaped(body string, from int, ch byte) int {
	for i := from; i < len(body); i++ {
		switch body[i] {
		case '\\':
			i++
		case ch:
			return i
		}
	}
	return -1
}

func isHTTPURL(target string) bool {
	lower := strings.ToLower(target)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
