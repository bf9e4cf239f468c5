package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shishir-py/personal-portfolio-sub000/internal/domain"
	"github.com/shishir-py/personal-portfolio-sub000/internal/repository"
)

// Repository implements persistence interfaces on PostgreSQL.
type Repository struct {
	pool *pgxpool.Pool
}

// New constructs a Repository.
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Ping checks the pool can reach the database.
func (r *Repository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

// ensure Repository satisfies interfaces.
var (
	_ repository.Store                 = (*Repository)(nil)
	_ repository.UserRepository        = (*Repository)(nil)
	_ repository.ProfileRepository     = (*Repository)(nil)
	_ repository.SkillRepository       = (*Repository)(nil)
	_ repository.ExperienceRepository  = (*Repository)(nil)
	_ repository.EducationRepository   = (*Repository)(nil)
	_ repository.CertificateRepository = (*Repository)(nil)
	_ repository.ProjectRepository     = (*Repository)(nil)
	_ repository.PostRepository        = (*Repository)(nil)
	_ repository.CommentRepository     = (*Repository)(nil)
	_ repository.FeedbackRepository    = (*Repository)(nil)
	_ repository.VisitorRepository     = (*Repository)(nil)
)

type scanner interface {
	Scan(dest ...any) error
}

// mapError translates driver errors into repository sentinels.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return repository.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return repository.ErrConflict
		case "23503", "22P02":
			// dangling reference or an id that is not a uuid; neither can exist
			return repository.ErrNotFound
		case "23514", "23502":
			return repository.ErrInvalidArgument
		}
	}
	return err
}

// execOne runs a mutation that must touch exactly one row.
func (r *Repository) execOne(ctx context.Context, query string, args ...any) error {
	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

func dateArg(d *domain.Date) *time.Time {
	if d == nil || d.IsZero() {
		return nil
	}
	t := d.Time
	return &t
}

func dateFromNull(t *time.Time) *domain.Date {
	if t == nil {
		return nil
	}
	d := domain.NewDate(*t)
	return &d
}

// CreateUser inserts a user.
func (r *Repository) CreateUser(ctx context.Context, user *domain.User) error {
	const query = `INSERT INTO users (id, email, name, role, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.pool.Exec(ctx, query, user.ID, user.Email, user.Name, user.Role, user.PasswordHash, user.CreatedAt)
	return mapError(err)
}

const userColumns = `id, email, name, role, password_hash, created_at`

func scanUser(row scanner) (*domain.User, error) {
	var u domain.User
	if err := row.Scan(&u.ID, &u.Email, &u.Name, &u.Role, &u.PasswordHash, &u.CreatedAt); err != nil {
		return nil, mapError(err)
	}
	return &u, nil
}

// GetUserByEmail fetches a user by email, case-insensitively.
func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE lower(email) = lower($1)`
	return scanUser(r.pool.QueryRow(ctx, query, email))
}

// GetUserByID retrieves a user by identifier.
func (r *Repository) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.pool.QueryRow(ctx, query, id))
}

// GetProfile returns the singleton profile.
func (r *Repository) GetProfile(ctx context.Context) (*domain.Profile, error) {
	const query = `SELECT id, name, title, bio, about, email, phone, location, avatar, resume_url, socials, updated_at
		FROM profiles WHERE singleton`
	var p domain.Profile
	err := r.pool.QueryRow(ctx, query).Scan(&p.ID, &p.Name, &p.Title, &p.Bio, &p.About, &p.Email, &p.Phone,
		&p.Location, &p.Avatar, &p.ResumeURL, &p.Socials, &p.UpdatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return &p, nil
}

// SaveProfile replaces the singleton profile, creating it on first save.
func (r *Repository) SaveProfile(ctx context.Context, p *domain.Profile) error {
	const query = `INSERT INTO profiles (id, name, title, bio, about, email, phone, location, avatar, resume_url, socials, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (singleton) DO UPDATE SET
			name = EXCLUDED.name, title = EXCLUDED.title, bio = EXCLUDED.bio, about = EXCLUDED.about,
			email = EXCLUDED.email, phone = EXCLUDED.phone, location = EXCLUDED.location,
			avatar = EXCLUDED.avatar, resume_url = EXCLUDED.resume_url, socials = EXCLUDED.socials,
			updated_at = EXCLUDED.updated_at
		RETURNING id`
	err := r.pool.QueryRow(ctx, query, p.ID, p.Name, p.Title, p.Bio, p.About, p.Email, p.Phone, p.Location,
		p.Avatar, p.ResumeURL, p.Socials, p.UpdatedAt).Scan(&p.ID)
	return mapError(err)
}
