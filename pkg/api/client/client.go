// Package client is a typed Go client for the portfolio API, used by the
// folio CLI and the seed loader.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shishir-py/personal-portfolio-sub000/internal/domain"
	"github.com/shishir-py/personal-portfolio-sub000/internal/service/blog"
	"github.com/shishir-py/personal-portfolio-sub000/internal/service/comment"
	"github.com/shishir-py/personal-portfolio-sub000/internal/service/feedback"
	"github.com/shishir-py/personal-portfolio-sub000/internal/service/profile"
	"github.com/shishir-py/personal-portfolio-sub000/internal/service/project"
	"github.com/shishir-py/personal-portfolio-sub000/internal/service/resume"
	"github.com/shishir-py/personal-portfolio-sub000/pkg/engagement"
)

// Client provides typed access to the portfolio API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option customises client instantiation.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.httpClient = h
		}
	}
}

// New constructs a Client pointing at the provided API base URL.
func New(base string, opts ...Option) (*Client, error) {
	trimmed := strings.TrimSpace(base)
	if trimmed == "" {
		trimmed = "http://localhost:4000"
	}
	if !strings.HasPrefix(trimmed, "http://") && !strings.HasPrefix(trimmed, "https://") {
		trimmed = "http://" + trimmed
	}
	if _, err := url.Parse(trimmed); err != nil {
		return nil, fmt.Errorf("invalid api base url: %w", err)
	}
	cli := &Client{
		baseURL:    strings.TrimRight(trimmed, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(cli)
	}
	return cli, nil
}

// BaseURL is the API root requests are sent to.
func (c *Client) BaseURL() string { return c.baseURL }

// APIError represents an error response from the API.
type APIError struct {
	Status  int
	Message string
}

func (e APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api request failed with status %d", e.Status)
	}
	return fmt.Sprintf("api request failed (%d): %s", e.Status, e.Message)
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	var apiErr APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

func (c *Client) do(ctx context.Context, method, path string, body any, token string, v any) error {
	var (
		reader      io.Reader
		contentType string
	)
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
		contentType = "application/json"
	}
	return c.send(ctx, method, path, reader, contentType, token, v)
}

func (c *Client) send(ctx context.Context, method, path string, body io.Reader, contentType, token string, v any) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if strings.TrimSpace(token) != "" {
		req.Header.Set("Authorization", "Bearer "+strings.TrimSpace(token))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("perform request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return APIError{Status: resp.StatusCode, Message: extractError(resp.Body)}
	}
	if v == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func extractError(body io.Reader) string {
	data, err := io.ReadAll(body)
	if err != nil || len(data) == 0 {
		return ""
	}
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return strings.TrimSpace(string(data))
	}
	return strings.TrimSpace(payload.Message)
}

// ListOptions narrows a collection listing.
type ListOptions struct {
	Category string
	Status   string
	Tag      string
	Search   string
	Sort     string
	Limit    int
	Offset   int
}

func (o ListOptions) encode() string {
	values := url.Values{}
	set := func(key, value string) {
		if strings.TrimSpace(value) != "" {
			values.Set(key, value)
		}
	}
	set("category", o.Category)
	set("status", o.Status)
	set("tag", o.Tag)
	set("search", o.Search)
	set("sort", o.Sort)
	if o.Limit > 0 {
		values.Set("limit", strconv.Itoa(o.Limit))
	}
	if o.Offset > 0 {
		values.Set("offset", strconv.Itoa(o.Offset))
	}
	if len(values) == 0 {
		return ""
	}
	return "?" + values.Encode()
}

// User reflects API user payloads.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// TokenPair includes access and refresh tokens. ExpiresIn is in seconds.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int64  `json:"expiresIn"`
}

// LoginResponse captures the token payload emitted by the API.
type LoginResponse struct {
	User   User      `json:"user"`
	Tokens TokenPair `json:"tokens"`
}

// Login exchanges credentials for a token pair.
func (c *Client) Login(ctx context.Context, email, password string) (LoginResponse, error) {
	body := map[string]string{
		"email":    email,
		"password": password,
	}
	var resp LoginResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", body, "", &resp); err != nil {
		return LoginResponse{}, err
	}
	return resp, nil
}

// Refresh trades a refresh token for a new pair.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (LoginResponse, error) {
	var resp LoginResponse
	body := map[string]string{"refreshToken": refreshToken}
	if err := c.do(ctx, http.MethodPost, "/api/auth/refresh", body, "", &resp); err != nil {
		return LoginResponse{}, err
	}
	return resp, nil
}

// Profile fetches the site profile.
func (c *Client) Profile(ctx context.Context) (domain.Profile, error) {
	var resp struct {
		Profile domain.Profile `json:"profile"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/profile", nil, "", &resp); err != nil {
		return domain.Profile{}, err
	}
	return resp.Profile, nil
}

// SaveProfile replaces the site profile.
func (c *Client) SaveProfile(ctx context.Context, token string, in profile.Input) (domain.Profile, error) {
	var resp struct {
		Profile domain.Profile `json:"profile"`
	}
	if err := c.do(ctx, http.MethodPut, "/api/profile", in, token, &resp); err != nil {
		return domain.Profile{}, err
	}
	return resp.Profile, nil
}

// create posts in to a collection and unwraps the entity under key.
func create[T any](ctx context.Context, c *Client, token, path, key string, in any) (T, error) {
	var resp map[string]json.RawMessage
	var zero T
	if err := c.do(ctx, http.MethodPost, path, in, token, &resp); err != nil {
		return zero, err
	}
	var out T
	if err := json.Unmarshal(resp[key], &out); err != nil {
		return zero, fmt.Errorf("decode %s: %w", key, err)
	}
	return out, nil
}

// list fetches a collection and its pre-pagination total.
func list[T any](ctx context.Context, c *Client, token, path, key string) ([]T, int, error) {
	var resp map[string]json.RawMessage
	if err := c.do(ctx, http.MethodGet, path, nil, token, &resp); err != nil {
		return nil, 0, err
	}
	var items []T
	if err := json.Unmarshal(resp[key], &items); err != nil {
		return nil, 0, fmt.Errorf("decode %s: %w", key, err)
	}
	var total int
	if raw, ok := resp["total"]; ok {
		_ = json.Unmarshal(raw, &total)
	}
	return items, total, nil
}

// CreateSkill adds a skill.
func (c *Client) CreateSkill(ctx context.Context, token string, in resume.SkillInput) (domain.Skill, error) {
	return create[domain.Skill](ctx, c, token, "/api/skills", "skill", in)
}

// ListSkills returns skills matching opts.
func (c *Client) ListSkills(ctx context.Context, opts ListOptions) ([]domain.Skill, int, error) {
	return list[domain.Skill](ctx, c, "", "/api/skills"+opts.encode(), "skills")
}

// CreateExperience adds a work history entry.
func (c *Client) CreateExperience(ctx context.Context, token string, in resume.ExperienceInput) (domain.Experience, error) {
	return create[domain.Experience](ctx, c, token, "/api/experience", "experience", in)
}

// CreateEducation adds an education entry.
func (c *Client) CreateEducation(ctx context.Context, token string, in resume.EducationInput) (domain.Education, error) {
	return create[domain.Education](ctx, c, token, "/api/education", "education", in)
}

// CreateCertificate adds a certificate.
func (c *Client) CreateCertificate(ctx context.Context, token string, in resume.CertificateInput) (domain.Certificate, error) {
	return create[domain.Certificate](ctx, c, token, "/api/certificates", "certificate", in)
}

// ListProjects returns projects matching opts.
func (c *Client) ListProjects(ctx context.Context, opts ListOptions) ([]domain.Project, int, error) {
	return list[domain.Project](ctx, c, "", "/api/projects"+opts.encode(), "projects")
}

// GetProject fetches a project by id.
func (c *Client) GetProject(ctx context.Context, id string) (domain.Project, error) {
	var resp struct {
		Project domain.Project `json:"project"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/projects/"+url.PathEscape(id), nil, "", &resp); err != nil {
		return domain.Project{}, err
	}
	return resp.Project, nil
}

// GetProjectBySlug fetches a project by slug.
func (c *Client) GetProjectBySlug(ctx context.Context, slug string) (domain.Project, error) {
	var resp struct {
		Project domain.Project `json:"project"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/projects/slug/"+url.PathEscape(slug), nil, "", &resp); err != nil {
		return domain.Project{}, err
	}
	return resp.Project, nil
}

// CreateProject adds a project.
func (c *Client) CreateProject(ctx context.Context, token string, in project.Input) (domain.Project, error) {
	return create[domain.Project](ctx, c, token, "/api/projects", "project", in)
}

// UpdateProject replaces a project.
func (c *Client) UpdateProject(ctx context.Context, token, id string, in project.Input) (domain.Project, error) {
	var resp struct {
		Project domain.Project `json:"project"`
	}
	if err := c.do(ctx, http.MethodPut, "/api/projects/"+url.PathEscape(id), in, token, &resp); err != nil {
		return domain.Project{}, err
	}
	return resp.Project, nil
}

// DeleteProject removes a project.
func (c *Client) DeleteProject(ctx context.Context, token, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/projects/"+url.PathEscape(id), nil, token, nil)
}

// ListPosts returns posts matching opts. Drafts are included only when
// token belongs to an admin.
func (c *Client) ListPosts(ctx context.Context, token string, opts ListOptions) ([]domain.Post, int, error) {
	return list[domain.Post](ctx, c, token, "/api/blog"+opts.encode(), "posts")
}

// CreatePost adds a blog post.
func (c *Client) CreatePost(ctx context.Context, token string, in blog.Input) (domain.Post, error) {
	return create[domain.Post](ctx, c, token, "/api/blog", "post", in)
}

// Comments lists the comments on a target.
func (c *Client) Comments(ctx context.Context, t engagement.TargetType, id string) ([]domain.Comment, error) {
	key := "projectId"
	if t == engagement.TargetPost {
		key = "postId"
	}
	path := "/api/comments?" + url.Values{key: {id}}.Encode()
	items, _, err := list[domain.Comment](ctx, c, "", path, "comments")
	return items, err
}

// CreateComment posts a visitor comment.
func (c *Client) CreateComment(ctx context.Context, in comment.Input) (domain.Comment, error) {
	return create[domain.Comment](ctx, c, "", "/api/comments", "comment", in)
}

// Likes returns the like count of a target.
func (c *Client) Likes(ctx context.Context, t engagement.TargetType, id string) (int, error) {
	path := "/api/likes?" + url.Values{"type": {string(t)}, "id": {id}}.Encode()
	var resp struct {
		Likes int `json:"likes"`
	}
	if err := c.do(ctx, http.MethodGet, path, nil, "", &resp); err != nil {
		return 0, err
	}
	return resp.Likes, nil
}

// SendLike posts a like or unlike action and returns the server count.
func (c *Client) SendLike(ctx context.Context, t engagement.TargetType, id, action string) (int, error) {
	body := map[string]string{"type": string(t), "id": id, "action": action}
	var resp struct {
		Likes int `json:"likes"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/likes", body, "", &resp); err != nil {
		return 0, err
	}
	return resp.Likes, nil
}

// SubmitFeedback sends a contact form message.
func (c *Client) SubmitFeedback(ctx context.Context, in feedback.Input) error {
	return c.do(ctx, http.MethodPost, "/api/feedback", in, "", nil)
}

// RecordVisit reports a page view.
func (c *Client) RecordVisit(ctx context.Context, path, referrer string) error {
	body := map[string]string{"path": path, "referrer": referrer}
	return c.do(ctx, http.MethodPost, "/api/visitors", body, "", nil)
}

// VisitorStats fetches traffic for the last days.
func (c *Client) VisitorStats(ctx context.Context, token string, days int) (domain.VisitorStats, error) {
	path := "/api/visitors/stats"
	if days > 0 {
		path += "?days=" + strconv.Itoa(days)
	}
	var resp struct {
		Stats domain.VisitorStats `json:"stats"`
	}
	if err := c.do(ctx, http.MethodGet, path, nil, token, &resp); err != nil {
		return domain.VisitorStats{}, err
	}
	return resp.Stats, nil
}

// UploadedFile describes a stored upload.
type UploadedFile struct {
	URL         string `json:"url"`
	Name        string `json:"name"`
	Size        int64  `json:"size"`
	ContentType string `json:"contentType"`
}

// Upload sends r as a multipart file named name.
func (c *Client) Upload(ctx context.Context, token, name string, r io.Reader) (UploadedFile, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", name)
	if err != nil {
		return UploadedFile{}, fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return UploadedFile{}, fmt.Errorf("read upload: %w", err)
	}
	if err := mw.Close(); err != nil {
		return UploadedFile{}, fmt.Errorf("close form: %w", err)
	}
	var resp struct {
		File UploadedFile `json:"file"`
	}
	if err := c.send(ctx, http.MethodPost, "/api/upload", &buf, mw.FormDataContentType(), token, &resp); err != nil {
		return UploadedFile{}, err
	}
	return resp.File, nil
}
