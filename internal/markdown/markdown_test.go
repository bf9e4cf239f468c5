package markdown

import (
	"strings"
	"testing"
)

func TestRenderGFM(t *testing.T) {
	html, err := Render("# Title\n\nSome ~~old~~ text.\n\n| a | b |\n|---|---|\n| 1 | 2 |\n")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, want := range []string{`<h1 id="title">Title</h1>`, "<del>old</del>", "<table>"} {
		if !strings.Contains(html, want) {
			t.Errorf("expected %q in %s", want, html)
		}
	}
}

func TestRenderOmitsRawHTML(t *testing.T) {
	html, _ := Render("hello <script>alert(1)</script>")
	if strings.Contains(html, "<script>") {
		t.Fatalf("raw html leaked: %s", html)
	}
}

func TestPlainTextSkipsCode(t *testing.T) {
	got := PlainText("# Intro\n\nFirst *para* of\ntext.\n\n```go\nfmt.Println()\n```\n\n- item one\n- item two\n")
	want := "Intro First para of text. item one item two"
	if got != want {
		t.Fatalf("PlainText = %q, want %q", got, want)
	}
}

func TestExcerpt(t *testing.T) {
	if got := Excerpt("Short post.", 50); got != "Short post." {
		t.Fatalf("unexpected excerpt %q", got)
	}
	got := Excerpt("alpha beta gamma delta", 12)
	if got != "alpha beta…" {
		t.Fatalf("unexpected excerpt %q", got)
	}
}

func TestReadingTime(t *testing.T) {
	if got := ReadingTime(""); got != 1 {
		t.Fatalf("empty post should take a minute, got %d", got)
	}
	long := strings.Repeat("word ", 401)
	if got := ReadingTime(long); got != 3 {
		t.Fatalf("expected 3 minutes, got %d", got)
	}
}
