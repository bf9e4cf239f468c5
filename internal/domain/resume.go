package domain

import "time"

// Experience is a position held at a company.
type Experience struct {
	ID           string    `json:"id"`
	Company      string    `json:"company"`
	Position     string    `json:"position"`
	Location     string    `json:"location,omitempty"`
	Description  string    `json:"description"`
	StartDate    Date      `json:"startDate"`
	EndDate      *Date     `json:"endDate,omitempty"`
	Current      bool      `json:"current"`
	Technologies []string  `json:"technologies"`
	Order        int       `json:"order"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Education is a degree or course of study.
type Education struct {
	ID          string    `json:"id"`
	Institution string    `json:"institution"`
	Degree      string    `json:"degree"`
	Field       string    `json:"field,omitempty"`
	Location    string    `json:"location,omitempty"`
	Description string    `json:"description"`
	StartDate   Date      `json:"startDate"`
	EndDate     *Date     `json:"endDate,omitempty"`
	Current     bool      `json:"current"`
	Grade       string    `json:"grade,omitempty"`
	Order       int       `json:"order"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Certificate is an issued credential.
type Certificate struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Issuer        string    `json:"issuer"`
	IssueDate     Date      `json:"issueDate"`
	ExpiryDate    *Date     `json:"expiryDate,omitempty"`
	CredentialID  string    `json:"credentialId,omitempty"`
	CredentialURL string    `json:"credentialUrl,omitempty"`
	Image         string    `json:"image,omitempty"`
	Order         int       `json:"order"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
