// Package slug derives URL-safe identifiers from titles.
package slug

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Make lowercases title, folds accented letters to ASCII and strips
// punctuation, so "Don't Stop" becomes "dont-stop". Runs of whitespace,
// underscores and hyphens become a single hyphen. Letters outside a-z are
// dropped. The result only contains [a-z0-9-] and never starts or ends with
// a hyphen.
func Make(title string) string {
	folded, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), title)
	if err != nil {
		folded = title
	}

	var b strings.Builder
	b.Grow(len(folded))
	pendingDash := false
	for _, r := range strings.ToLower(folded) {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
		case unicode.IsSpace(r) || r == '_' || r == '-':
			pendingDash = true
		}
	}
	return b.String()
}

// TakenFunc reports whether slug already belongs to another record.
type TakenFunc func(ctx context.Context, slug string) (bool, error)

// Unique derives a slug from title and, when it collides with an existing
// record, appends the current unix millisecond timestamp. fallback is used
// when the title has no sluggable characters.
func Unique(ctx context.Context, title, fallback string, taken TakenFunc, now func() time.Time) (string, error) {
	base := Make(title)
	if base == "" {
		base = fallback
	}
	exists, err := taken(ctx, base)
	if err != nil {
		return "", fmt.Errorf("check slug: %w", err)
	}
	if !exists {
		return base, nil
	}
	return fmt.Sprintf("%s-%d", base, now().UnixMilli()), nil
}
