package session

import "testing"

func TestArchiveIDDeterministic(t *testing.T) {
	first := ArchiveID("http://example.com/page")
	second := ArchiveID("http://example.com/page")
	if first == "" {
		t.Fatalf("expected non-empty id")
	}
	if first != second {
		t.Fatalf("archive id not stable: %q vs %q", first, second)
	}
	if len(first) != archiveIDLen {
		t.Fatalf("unexpected id length %d", len(first))
	}
}

func TestArchiveIDDistinctURLs(t *testing.T) {
	a := ArchiveID("http://example.com/a")
	b := ArchiveID("http://example.com/b")
	if a == b {
		t.Fatalf("distinct urls must not collide: %q", a)
	}
}

func TestArchiveIDTrimsWhitespace(t *testing.T) {
	if ArchiveID(" http://example.com ") != ArchiveID("http://example.com") {
		t.Fatalf("surrounding whitespace must not change identity")
	}
}

func TestArchiveIDEmptyURL(t *testing.T) {
	if got := ArchiveID("   "); got != "" {
		t.Fatalf("expected empty id for blank url, got %q", got)
	}
}
