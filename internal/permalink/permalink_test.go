package permalink

import (
	"strings"
	"testing"
)

func TestSlugizeDeterministic(t *testing.T) {
	first := Slugize("My Great Note")
	second := Slugize("My Great Note")
	if first == "" {
		t.Fatalf("expected non-empty slug")
	}
	if first != second {
		t.Fatalf("slug not deterministic: %q vs %q", first, second)
	}
}

func TestSlugizeEmptyTitle(t *testing.T) {
	if got := Slugize("   "); got != "" {
		t.Fatalf("expected empty slug for blank title, got %q", got)
	}
}

func TestRandomSlugUnique(t *testing.T) {
	a := RandomSlug()
	b := RandomSlug()
	if !strings.HasPrefix(a, "note-") {
		t.Fatalf("unexpected random slug %q", a)
	}
	if a == b {
		t.Fatalf("expected distinct random slugs, got %q twice", a)
	}
}

func TestFolderName(t *testing.T) {
	got := FolderName("2024-03-09T12:30:00Z", "hello-world")
	if got != "2024-03-09-hello-world" {
		t.Fatalf("unexpected folder name %q", got)
	}
}

func TestPermalink(t *testing.T) {
	got := Permalink("2024-03-09T12:30:00Z", "hello-world")
	if got != "/2024/03/09/hello-world/" {
		t.Fatalf("unexpected permalink %q", got)
	}
}

func TestParseFolderName(t *testing.T) {
	date, slug, ok := ParseFolderName("2023-11-02-some-post")
	if !ok {
		t.Fatalf("expected folder name to parse")
	}
	if date != "2023-11-02" || slug != "some-post" {
		t.Fatalf("unexpected parse result %q %q", date, slug)
	}
}

func TestParseFolderNameRejectsMalformed(t *testing.T) {
	cases := []string{"", "not-a-date", "2023-11-02", "2023-11-02x", "20231102-post"}
	for _, folder := range cases {
		if _, _, ok := ParseFolderName(folder); ok {
			t.Fatalf("expected %q to be rejected", folder)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	folder := FolderName("2022-01-31", "trip")
	date, slug, ok := ParseFolderName(folder)
	if !ok || date != "2022-01-31" || slug != "trip" {
		t.Fatalf("round trip failed: %q -> %q %q %v", folder, date, slug, ok)
	}
}
