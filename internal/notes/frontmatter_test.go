package notes

import (
	"reflect"
	"strings"
	"testing"
	"time"
)

var testNow = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

func TestParseWithFrontMatter(t *testing.T) {
	source := []byte("---\ntitle: Hello World\ndate: 2023-02-03\ntags: [a, b]\ncustom: value\n---\n\nBody text here.\n")

	doc, err := Parse(source, testNow)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if doc.Title != "Hello World" {
		t.Fatalf("unexpected title %q", doc.Title)
	}
	if got := doc.Date.Format("2006-01-02"); got != "2023-02-03" {
		t.Fatalf("unexpected date %q", got)
	}
	if doc.Meta["custom"] != "value" {
		t.Fatalf("expected custom meta retained, got %#v", doc.Meta)
	}
	if strings.TrimSpace(doc.Body) != "Body text here." {
		t.Fatalf("unexpected body %q", doc.Body)
	}
}

func TestParseWithoutFrontMatter(t *testing.T) {
	doc, err := Parse([]byte("Just a body.\n"), testNow)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if doc.Title != "" {
		t.Fatalf("expected empty title, got %q", doc.Title)
	}
	if !doc.Date.Equal(testNow) {
		t.Fatalf("expected fallback date, got %v", doc.Date)
	}
	if strings.TrimSpace(doc.Body) != "Just a body." {
		t.Fatalf("unexpected body %q", doc.Body)
	}
}

func TestParseDate(t *testing.T) {
	cases := []struct {
		in   any
		want string
	}{
		{"2023-01-15", "2023-01-15"},
		{"2023-01-15T08:30:00Z", "2023-01-15"},
		{"2023-01-15 08:30:00", "2023-01-15"},
		{time.Date(2020, 6, 7, 0, 0, 0, 0, time.UTC), "2020-06-07"},
		{"not a date", "2024-05-01"},
		{nil, "2024-05-01"},
		{42, "2024-05-01"},
	}
	for _, tc := range cases {
		got := ParseDate(tc.in, testNow).Format("2006-01-02")
		if got != tc.want {
			t.Fatalf("ParseDate(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSerialize(t *testing.T) {
	meta := map[string]any{
		"title": "A Post",
		"slug":  "a-post",
		"tags":  []string{"x"},
	}

	out, err := Serialize(meta, "Body line.")
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}

	text := string(out)
	if !strings.HasPrefix(text, "---\n") {
		t.Fatalf("expected front matter delimiter, got %q", text)
	}
	if !strings.Contains(text, "title: A Post") {
		t.Fatalf("expected title in front matter, got %q", text)
	}
	if !strings.HasSuffix(text, "Body line.\n") {
		t.Fatalf("expected single trailing newline, got %q", text)
	}
}

func TestSerializeStableKeyOrder(t *testing.T) {
	meta := map[string]any{"zeta": 1, "alpha": 2, "mid": 3}

	first, err := Serialize(meta, "b")
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	second, err := Serialize(meta, "b")
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	if string(first) != string(second) {
		t.Fatalf("serialization not stable:\n%s\nvs\n%s", first, second)
	}
	if strings.Index(string(first), "alpha") > strings.Index(string(first), "zeta") {
		t.Fatalf("expected sorted keys, got %s", first)
	}
}

func TestSerializeRoundTripsThroughParse(t *testing.T) {
	meta := map[string]any{"title": "Round Trip", "tags": []string{"a"}}
	out, err := Serialize(meta, "The body.")
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}

	doc, err := Parse(out, testNow)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if doc.Title != "Round Trip" {
		t.Fatalf("unexpected title %q", doc.Title)
	}
	if strings.TrimSpace(doc.Body) != "The body." {
		t.Fatalf("unexpected body %q", doc.Body)
	}
}

func TestNormalizeTags(t *testing.T) {
	cases := []struct {
		in   any
		want []string
	}{
		{nil, []string{DefaultTag}},
		{"", []string{DefaultTag}},
		{"  ", []string{DefaultTag}},
		{"solo", []string{"solo"}},
		{"a, b , ,c", []string{"a", "b", "c"}},
		{[]string{"x", " y "}, []string{"x", "y"}},
		{[]any{"one", "one", 2}, []string{"one", "2"}},
		{7, []string{"7"}},
	}
	for _, tc := range cases {
		if got := NormalizeTags(tc.in); !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("NormalizeTags(%#v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestRenderPreview(t *testing.T) {
	html, err := NewRenderer().Render([]byte("# Heading\n\nSome **bold** text."))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(string(html), "<h1") {
		t.Fatalf("expected heading in output, got %s", html)
	}
	if !strings.Contains(string(html), "<strong>bold</strong>") {
		t.Fatalf("expected bold text in output, got %s", html)
	}
}
