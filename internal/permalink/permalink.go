// Package permalink derives the stable identifiers and canonical URLs used
// by the permanent store. Folder names follow the `YYYY-MM-DD-slug`
// convention, which is also parsed in reverse to resolve references to
// already-published documents.
package permalink

import (
	"fmt"
	"strings"
	"time"

	slug "github.com/goliatone/go-slug"
	"github.com/google/uuid"
)

const datePrefixLen = 10 // len("2006-01-02")

// Slugize maps a title to its stable identifier. The same title always
// yields the same slug. Titles that normalize to nothing return "".
func Slugize(title string) string {
	normalized, err := slug.Normalize(strings.TrimSpace(title))
	if err != nil {
		return ""
	}
	return normalized
}

// RandomSlug returns a fallback identifier for documents without a usable
// title.
func RandomSlug() string {
	token := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "note-" + token[:8]
}

// FolderName builds the permanent-store folder name for a document from its
// ISO-8601 date and slug.
func FolderName(date, slug string) string {
	return datePrefix(date) + "-" + slug
}

// Permalink derives the canonical published URL for a document.
func Permalink(date, slug string) string {
	prefix := datePrefix(date)
	parsed, err := time.Parse("2006-01-02", prefix)
	if err != nil {
		return "/" + slug + "/"
	}
	return fmt.Sprintf("/%04d/%02d/%02d/%s/", parsed.Year(), parsed.Month(), parsed.Day(), slug)
}

// ParseFolderName splits a permanent-store folder name back into its date
// and slug. It reports ok=false for names that do not follow the
// `YYYY-MM-DD-slug` convention.
func ParseFolderName(folder string) (date, slug string, ok bool) {
	if len(folder) < datePrefixLen+2 || folder[datePrefixLen] != '-' {
		return "", "", false
	}
	date = folder[:datePrefixLen]
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return "", "", false
	}
	return date, folder[datePrefixLen+1:], true
}

func datePrefix(date string) string {
	if len(date) < datePrefixLen {
		return date
	}
	return date[:datePrefixLen]
}
