package domain

import (
	"time"

	"github.com/shishir-py/personal-portfolio-sub000/pkg/engagement"
)

// TargetType names the kind of content that can be liked or commented on.
type TargetType = engagement.TargetType

const (
	TargetProject = engagement.TargetProject
	TargetPost    = engagement.TargetPost
)

// ParseTargetType normalises a target type from user input.
func ParseTargetType(value string) (TargetType, error) {
	t, err := engagement.ParseTargetType(value)
	if err != nil {
		return "", Invalid("type", "must be project or post")
	}
	return t, nil
}

// Topic is the engagement stream key for a target.
func Topic(t TargetType, id string) string {
	return engagement.Topic(t, id)
}

// Comment is a visitor comment on a project or post.
type Comment struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Author    string    `json:"author"`
	Email     string    `json:"email,omitempty"`
	ProjectID string    `json:"projectId,omitempty"`
	PostID    string    `json:"postId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Target returns the commented content.
func (c Comment) Target() (TargetType, string) {
	if c.ProjectID != "" {
		return TargetProject, c.ProjectID
	}
	return TargetPost, c.PostID
}

// Feedback is a contact form submission. Email is sealed at rest.
type Feedback struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	EmailSealed []byte    `json:"-"`
	Subject     string    `json:"subject,omitempty"`
	Message     string    `json:"message"`
	Rating      int       `json:"rating,omitempty"`
	Read        bool      `json:"read"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Visit is one recorded page view.
type Visit struct {
	ID        string    `json:"id"`
	Path      string    `json:"path"`
	Referrer  string    `json:"referrer,omitempty"`
	UserAgent string    `json:"userAgent,omitempty"`
	IPHash    string    `json:"-"`
	CreatedAt time.Time `json:"createdAt"`
}

// PathCount is a page and its view count.
type PathCount struct {
	Path  string `json:"path"`
	Count int    `json:"count"`
}

// DayCount is the number of visits on a calendar day.
type DayCount struct {
	Day   string `json:"day"`
	Count int    `json:"count"`
}

// VisitorStats summarises traffic since a point in time.
type VisitorStats struct {
	Total    int         `json:"total"`
	Unique   int         `json:"unique"`
	Today    int         `json:"today"`
	TopPaths []PathCount `json:"topPaths"`
	Daily    []DayCount  `json:"daily"`
}
