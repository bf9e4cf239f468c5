// Package listing filters, sorts and paginates the small in-memory
// collections returned to the admin dashboard.
package listing

import (
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/shishir-py/personal-portfolio-sub000/internal/domain"
)

// Sort keys accepted by ParseQuery.
const (
	SortNewest  = "newest"
	SortOldest  = "oldest"
	SortTitle   = "title"
	SortOrder   = "order"
	SortPopular = "popular"
	SortViews   = "views"
)

// MaxLimit caps page size.
const MaxLimit = 100

// Query is a parsed list request. Zero values disable the matching step.
type Query struct {
	Category string
	Status   string
	Tag      string
	Search   string
	Sort     string
	Limit    int
	Offset   int
}

// Fields exposes the attributes of an item that a Query can act on.
type Fields struct {
	Title     string
	Category  string
	Status    string
	Tags      []string
	Text      []string
	Order     int
	CreatedAt time.Time
	Likes     int
	Views     int
}

// Page is one window of a filtered list.
type Page[T any] struct {
	Items []T
	Total int
}

// ParseQuery reads category, status, tag, search (or q), sort, limit and
// offset from values.
func ParseQuery(values url.Values) (Query, error) {
	q := Query{
		Category: strings.TrimSpace(values.Get("category")),
		Status:   strings.TrimSpace(values.Get("status")),
		Tag:      strings.TrimSpace(values.Get("tag")),
		Search:   strings.TrimSpace(values.Get("search")),
		Sort:     strings.ToLower(strings.TrimSpace(values.Get("sort"))),
	}
	if q.Search == "" {
		q.Search = strings.TrimSpace(values.Get("q"))
	}
	switch q.Sort {
	case "", SortNewest, SortOldest, SortTitle, SortOrder, SortPopular, SortViews:
	default:
		return Query{}, domain.Invalid("sort", "must be one of newest, oldest, title, order, popular, views")
	}
	var err error
	if q.Limit, err = parseNonNegative(values.Get("limit"), "limit"); err != nil {
		return Query{}, err
	}
	if q.Offset, err = parseNonNegative(values.Get("offset"), "offset"); err != nil {
		return Query{}, err
	}
	if q.Limit > MaxLimit {
		q.Limit = MaxLimit
	}
	return q, nil
}

func parseNonNegative(raw, field string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, domain.Invalid(field, "must be a non-negative integer")
	}
	return n, nil
}

// Apply runs the filters in order (category, status, tag, search), sorts by
// q.Sort and slices out the requested page. Items keep their input order
// when no sort key is given. Total counts matches before pagination.
func Apply[T any](items []T, q Query, fields func(T) Fields) Page[T] {
	type entry struct {
		item T
		f    Fields
	}
	matched := make([]entry, 0, len(items))
	search := strings.ToLower(q.Search)
	for _, item := range items {
		f := fields(item)
		if q.Category != "" && !strings.EqualFold(f.Category, q.Category) {
			continue
		}
		if q.Status != "" && !strings.EqualFold(f.Status, q.Status) {
			continue
		}
		if q.Tag != "" && !containsFold(f.Tags, q.Tag) {
			continue
		}
		if search != "" && !matchesSearch(f, search) {
			continue
		}
		matched = append(matched, entry{item: item, f: f})
	}

	if cmp := comparator(q.Sort); cmp != nil {
		slices.SortStableFunc(matched, func(a, b entry) int { return cmp(a.f, b.f) })
	}

	page := Page[T]{Total: len(matched), Items: make([]T, 0)}
	start := min(q.Offset, len(matched))
	end := len(matched)
	if q.Limit > 0 {
		end = min(start+q.Limit, len(matched))
	}
	for _, e := range matched[start:end] {
		page.Items = append(page.Items, e.item)
	}
	return page
}

func containsFold(values []string, want string) bool {
	for _, v := range values {
		if strings.EqualFold(v, want) {
			return true
		}
	}
	return false
}

func matchesSearch(f Fields, needle string) bool {
	if strings.Contains(strings.ToLower(f.Title), needle) {
		return true
	}
	for _, text := range f.Text {
		if strings.Contains(strings.ToLower(text), needle) {
			return true
		}
	}
	for _, tag := range f.Tags {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	return false
}

func comparator(key string) func(a, b Fields) int {
	switch key {
	case SortNewest:
		return func(a, b Fields) int { return b.CreatedAt.Compare(a.CreatedAt) }
	case SortOldest:
		return func(a, b Fields) int { return a.CreatedAt.Compare(b.CreatedAt) }
	case SortTitle:
		return func(a, b Fields) int { return strings.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title)) }
	case SortOrder:
		return func(a, b Fields) int { return a.Order - b.Order }
	case SortPopular:
		return func(a, b Fields) int { return b.Likes - a.Likes }
	case SortViews:
		return func(a, b Fields) int { return b.Views - a.Views }
	}
	return nil
}
