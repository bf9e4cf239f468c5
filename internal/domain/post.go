package domain

import "time"

// Post is a blog article. Drafts are hidden from public listings.
type Post struct {
	ID          string     `json:"id"`
	Slug        string     `json:"slug"`
	Title       string     `json:"title"`
	Excerpt     string     `json:"excerpt"`
	Content     string     `json:"content"`
	ContentHTML string     `json:"contentHtml,omitempty"`
	CoverImage  string     `json:"coverImage,omitempty"`
	Category    string     `json:"category,omitempty"`
	Tags        []string   `json:"tags"`
	Published   bool       `json:"published"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
	ReadingTime int        `json:"readingTime"`
	Views       int        `json:"views"`
	Likes       int        `json:"likes"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// Status maps the published flag onto the admin list status filter.
func (p Post) Status() string {
	if p.Published {
		return "published"
	}
	return "draft"
}
