package engagement

import (
	"errors"
	"testing"
)

func TestParseTargetType(t *testing.T) {
	cases := map[string]TargetType{
		"project":   TargetProject,
		" Projects": TargetProject,
		"post":      TargetPost,
		"BLOG":      TargetPost,
	}
	for in, want := range cases {
		got, err := ParseTargetType(in)
		if err != nil || got != want {
			t.Errorf("ParseTargetType(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := ParseTargetType("skill"); !errors.Is(err, ErrUnknownTarget) {
		t.Fatalf("expected ErrUnknownTarget, got %v", err)
	}
}

func TestTopic(t *testing.T) {
	if got := Topic(TargetPost, "abc"); got != "post:abc" {
		t.Fatalf("unexpected topic %q", got)
	}
}
