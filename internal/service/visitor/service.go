package visitor

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/shishir-py/personal-portfolio-sub000/internal/domain"
	"github.com/shishir-py/personal-portfolio-sub000/internal/repository"
	"github.com/shishir-py/personal-portfolio-sub000/pkg/crypto"
)

const (
	// DefaultDays is the stats window when none is requested.
	DefaultDays = 30
	// MaxDays bounds the stats window.
	MaxDays = 365
	// TopPaths is the number of most visited pages reported.
	TopPaths = 10

	maxFieldLength = 512
)

// Input describes one page view as reported by the site.
type Input struct {
	Path      string `json:"path"`
	Referrer  string `json:"referrer"`
	UserAgent string `json:"-"`
	IP        string `json:"-"`
}

// Service records page views without keeping raw IP addresses.
type Service struct {
	repo   repository.VisitorRepository
	salt   string
	logger *slog.Logger
	now    func() time.Time
}

// New returns a visitor service hashing IPs with salt.
func New(repo repository.VisitorRepository, salt string, logger *slog.Logger) Service {
	return Service{repo: repo, salt: salt, logger: logger, now: func() time.Time { return time.Now().UTC() }}
}

func truncate(value string) string {
	value = strings.TrimSpace(value)
	if len(value) > maxFieldLength {
		return value[:maxFieldLength]
	}
	return value
}

// cleanPath keeps only the path of a URL or path-like string.
func cleanPath(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", domain.Invalid("path", "is required")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", domain.Invalid("path", "is not a valid path")
	}
	path := u.Path
	if path == "" {
		path = "/"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return truncate(path), nil
}

// Record stores a page view.
func (s Service) Record(ctx context.Context, in Input) (*domain.Visit, error) {
	path, err := cleanPath(in.Path)
	if err != nil {
		return nil, err
	}
	visit := &domain.Visit{
		ID:        uuid.NewString(),
		Path:      path,
		Referrer:  truncate(in.Referrer),
		UserAgent: truncate(in.UserAgent),
		IPHash:    crypto.HashWithSalt(s.salt, strings.TrimSpace(in.IP)),
		CreatedAt: s.now(),
	}
	if err := s.repo.RecordVisit(ctx, visit); err != nil {
		return nil, fmt.Errorf("record visit: %w", err)
	}
	s.logger.Debug("visit recorded", "path", visit.Path)
	return visit, nil
}

// Stats summarises the last days of traffic, today included.
func (s Service) Stats(ctx context.Context, days int) (domain.VisitorStats, error) {
	if days <= 0 {
		days = DefaultDays
	}
	days = min(days, MaxDays)
	today := domain.NewDate(s.now())
	since := today.AddDate(0, 0, -(days - 1))
	stats, err := s.repo.VisitorStats(ctx, since, TopPaths)
	if err != nil {
		return domain.VisitorStats{}, fmt.Errorf("visitor stats: %w", err)
	}
	key := today.String()
	for _, d := range stats.Daily {
		if d.Day == key {
			stats.Today = d.Count
		}
	}
	return stats, nil
}
