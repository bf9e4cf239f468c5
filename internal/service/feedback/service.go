package feedback

import (
	"context"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/shishir-py/personal-portfolio-sub000/internal/domain"
	"github.com/shishir-py/personal-portfolio-sub000/internal/repository"
	"github.com/shishir-py/personal-portfolio-sub000/pkg/crypto"
)

// MaxMessageLength bounds message bodies, in runes.
const MaxMessageLength = 5000

// Input is a contact form submission.
type Input struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
	Rating  int    `json:"rating"`
}

// Service stores contact form submissions with sealed email addresses.
type Service struct {
	repo   repository.FeedbackRepository
	sealer *crypto.Sealer
	logger *slog.Logger
}

// New returns a feedback service sealing emails under key.
func New(repo repository.FeedbackRepository, key string, logger *slog.Logger) (Service, error) {
	sealer, err := crypto.NewSealer(key)
	if err != nil {
		return Service{}, fmt.Errorf("feedback sealer: %w", err)
	}
	return Service{repo: repo, sealer: sealer, logger: logger}, nil
}

func (in Input) validate() (string, error) {
	if strings.TrimSpace(in.Name) == "" {
		return "", domain.Invalid("name", "is required")
	}
	email := strings.TrimSpace(in.Email)
	if email == "" {
		return "", domain.Invalid("email", "is required")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil {
		return "", domain.Invalid("email", "is not a valid address")
	}
	message := strings.TrimSpace(in.Message)
	if message == "" {
		return "", domain.Invalid("message", "is required")
	}
	if utf8.RuneCountInString(message) > MaxMessageLength {
		return "", domain.Invalid("message", fmt.Sprintf("must be at most %d characters", MaxMessageLength))
	}
	if in.Rating < 0 || in.Rating > 5 {
		return "", domain.Invalid("rating", "must be between 0 and 5")
	}
	return addr.Address, nil
}

// Submit validates and stores a submission.
func (s Service) Submit(ctx context.Context, in Input) (*domain.Feedback, error) {
	email, err := in.validate()
	if err != nil {
		return nil, err
	}
	sealed, err := s.sealer.Seal(email)
	if err != nil {
		return nil, fmt.Errorf("seal email: %w", err)
	}
	fb := &domain.Feedback{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(in.Name),
		Email:       email,
		EmailSealed: sealed,
		Subject:     strings.TrimSpace(in.Subject),
		Message:     strings.TrimSpace(in.Message),
		Rating:      in.Rating,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.repo.CreateFeedback(ctx, fb); err != nil {
		return nil, fmt.Errorf("create feedback: %w", err)
	}
	s.logger.Info("feedback received", "feedback_id", fb.ID, "rating", fb.Rating)
	return fb, nil
}

// List returns submissions newest first with emails opened. Entries whose
// email cannot be opened (for example after a key change) are returned
// with an empty email.
func (s Service) List(ctx context.Context, unreadOnly bool) ([]domain.Feedback, error) {
	items, err := s.repo.ListFeedback(ctx)
	if err != nil {
		return nil, fmt.Errorf("list feedback: %w", err)
	}
	out := make([]domain.Feedback, 0, len(items))
	for _, fb := range items {
		if unreadOnly && fb.Read {
			continue
		}
		email, err := s.sealer.Open(fb.EmailSealed)
		if err != nil {
			s.logger.Warn("feedback email unreadable", "feedback_id", fb.ID)
		}
		fb.Email = email
		out = append(out, fb)
	}
	return out, nil
}

// MarkRead sets the read flag.
func (s Service) MarkRead(ctx context.Context, id string, read bool) error {
	return s.repo.MarkFeedbackRead(ctx, id, read)
}

// Delete removes a submission.
func (s Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.DeleteFeedback(ctx, id); err != nil {
		return err
	}
	s.logger.Info("feedback deleted", "feedback_id", id)
	return nil
}
