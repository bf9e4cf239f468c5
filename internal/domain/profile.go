package domain

import "time"

// Socials holds outbound profile links.
type Socials struct {
	GitHub   string `json:"github,omitempty" yaml:"github"`
	LinkedIn string `json:"linkedin,omitempty" yaml:"linkedin"`
	Twitter  string `json:"twitter,omitempty" yaml:"twitter"`
	Website  string `json:"website,omitempty" yaml:"website"`
}

// Profile is the site owner's public profile. There is at most one.
type Profile struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Title     string    `json:"title"`
	Bio       string    `json:"bio"`
	About     string    `json:"about"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Location  string    `json:"location,omitempty"`
	Avatar    string    `json:"avatar,omitempty"`
	ResumeURL string    `json:"resumeUrl,omitempty"`
	Socials   Socials   `json:"socials"`
	UpdatedAt time.Time `json:"updatedAt"`
}
