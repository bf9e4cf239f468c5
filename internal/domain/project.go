package domain

import "time"

// Project is a portfolio entry addressed publicly by slug.
type Project struct {
	ID          string    `json:"id"`
	Slug        string    `json:"slug"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Content     string    `json:"content"`
	CoverImage  string    `json:"coverImage,omitempty"`
	GithubURL   string    `json:"githubUrl,omitempty"`
	DemoURL     string    `json:"demoUrl,omitempty"`
	Category    string    `json:"category,omitempty"`
	Status      string    `json:"status,omitempty"`
	Featured    bool      `json:"featured"`
	Tags        []string  `json:"tags"`
	Order       int       `json:"order"`
	Likes       int       `json:"likes"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
