package postgres

import (
	"context"
	"time"

	"github.com/shishir-py/personal-portfolio-sub000/internal/domain"
)

const skillColumns = `id, name, level, category, icon, sort_order, created_at, updated_at`

func scanSkill(row scanner) (*domain.Skill, error) {
	var s domain.Skill
	if err := row.Scan(&s.ID, &s.Name, &s.Level, &s.Category, &s.Icon, &s.Order, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, mapError(err)
	}
	return &s, nil
}

// CreateSkill inserts a skill.
func (r *Repository) CreateSkill(ctx context.Context, s *domain.Skill) error {
	const query = `INSERT INTO skills (` + skillColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.pool.Exec(ctx, query, s.ID, s.Name, s.Level, s.Category, s.Icon, s.Order, s.CreatedAt, s.UpdatedAt)
	return mapError(err)
}

// UpdateSkill replaces a skill.
func (r *Repository) UpdateSkill(ctx context.Context, s *domain.Skill) error {
	const query = `UPDATE skills SET name = $2, level = $3, category = $4, icon = $5, sort_order = $6, updated_at = $7
		WHERE id = $1`
	return r.execOne(ctx, query, s.ID, s.Name, s.Level, s.Category, s.Icon, s.Order, s.UpdatedAt)
}

// DeleteSkill removes a skill.
func (r *Repository) DeleteSkill(ctx context.Context, id string) error {
	return r.execOne(ctx, `DELETE FROM skills WHERE id = $1`, id)
}

// GetSkillByID fetches a skill.
func (r *Repository) GetSkillByID(ctx context.Context, id string) (*domain.Skill, error) {
	return scanSkill(r.pool.QueryRow(ctx, `SELECT `+skillColumns+` FROM skills WHERE id = $1`, id))
}

// ListSkills returns all skills in display order.
func (r *Repository) ListSkills(ctx context.Context) ([]domain.Skill, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+skillColumns+` FROM skills ORDER BY sort_order, created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	skills := make([]domain.Skill, 0)
	for rows.Next() {
		s, err := scanSkill(rows)
		if err != nil {
			return nil, err
		}
		skills = append(skills, *s)
	}
	return skills, rows.Err()
}

const experienceColumns = `id, company, position, location, description, start_date, end_date, current, technologies, sort_order, created_at, updated_at`

func scanExperience(row scanner) (*domain.Experience, error) {
	var (
		e     domain.Experience
		start time.Time
		end   *time.Time
	)
	if err := row.Scan(&e.ID, &e.Company, &e.Position, &e.Location, &e.Description, &start, &end, &e.Current,
		&e.Technologies, &e.Order, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return nil, mapError(err)
	}
	e.StartDate = domain.NewDate(start)
	e.EndDate = dateFromNull(end)
	return &e, nil
}

// CreateExperience inserts a work history entry.
func (r *Repository) CreateExperience(ctx context.Context, e *domain.Experience) error {
	const query = `INSERT INTO experiences (` + experienceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.pool.Exec(ctx, query, e.ID, e.Company, e.Position, e.Location, e.Description, e.StartDate.Time,
		dateArg(e.EndDate), e.Current, nonNil(e.Technologies), e.Order, e.CreatedAt, e.UpdatedAt)
	return mapError(err)
}

// UpdateExperience replaces a work history entry.
func (r *Repository) UpdateExperience(ctx context.Context, e *domain.Experience) error {
	const query = `UPDATE experiences SET company = $2, position = $3, location = $4, description = $5,
			start_date = $6, end_date = $7, current = $8, technologies = $9, sort_order = $10, updated_at = $11
		WHERE id = $1`
	return r.execOne(ctx, query, e.ID, e.Company, e.Position, e.Location, e.Description, e.StartDate.Time,
		dateArg(e.EndDate), e.Current, nonNil(e.Technologies), e.Order, e.UpdatedAt)
}

// DeleteExperience removes a work history entry.
func (r *Repository) DeleteExperience(ctx context.Context, id string) error {
	return r.execOne(ctx, `DELETE FROM experiences WHERE id = $1`, id)
}

// GetExperienceByID fetches a work history entry.
func (r *Repository) GetExperienceByID(ctx context.Context, id string) (*domain.Experience, error) {
	return scanExperience(r.pool.QueryRow(ctx, `SELECT `+experienceColumns+` FROM experiences WHERE id = $1`, id))
}

// ListExperience returns work history, most recent first within display order.
func (r *Repository) ListExperience(ctx context.Context) ([]domain.Experience, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+experienceColumns+` FROM experiences ORDER BY sort_order, start_date DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]domain.Experience, 0)
	for rows.Next() {
		e, err := scanExperience(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *e)
	}
	return items, rows.Err()
}

const educationColumns = `id, institution, degree, field, location, description, start_date, end_date, current, grade, sort_order, created_at, updated_at`

func scanEducation(row scanner) (*domain.Education, error) {
	var (
		e     domain.Education
		start time.Time
		end   *time.Time
	)
	if err := row.Scan(&e.ID, &e.Institution, &e.Degree, &e.Field, &e.Location, &e.Description, &start, &end,
		&e.Current, &e.Grade, &e.Order, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return nil, mapError(err)
	}
	e.StartDate = domain.NewDate(start)
	e.EndDate = dateFromNull(end)
	return &e, nil
}

// CreateEducation inserts an education entry.
func (r *Repository) CreateEducation(ctx context.Context, e *domain.Education) error {
	const query = `INSERT INTO educations (` + educationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.pool.Exec(ctx, query, e.ID, e.Institution, e.Degree, e.Field, e.Location, e.Description,
		e.StartDate.Time, dateArg(e.EndDate), e.Current, e.Grade, e.Order, e.CreatedAt, e.UpdatedAt)
	return mapError(err)
}

// UpdateEducation replaces an education entry.
func (r *Repository) UpdateEducation(ctx context.Context, e *domain.Education) error {
	const query = `UPDATE educations SET institution = $2, degree = $3, field = $4, location = $5, description = $6,
			start_date = $7, end_date = $8, current = $9, grade = $10, sort_order = $11, updated_at = $12
		WHERE id = $1`
	return r.execOne(ctx, query, e.ID, e.Institution, e.Degree, e.Field, e.Location, e.Description,
		e.StartDate.Time, dateArg(e.EndDate), e.Current, e.Grade, e.Order, e.UpdatedAt)
}

// DeleteEducation removes an education entry.
func (r *Repository) DeleteEducation(ctx context.Context, id string) error {
	return r.execOne(ctx, `DELETE FROM educations WHERE id = $1`, id)
}

// GetEducationByID fetches an education entry.
func (r *Repository) GetEducationByID(ctx context.Context, id string) (*domain.Education, error) {
	return scanEducation(r.pool.QueryRow(ctx, `SELECT `+educationColumns+` FROM educations WHERE id = $1`, id))
}

// ListEducation returns education history.
func (r *Repository) ListEducation(ctx context.Context) ([]domain.Education, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+educationColumns+` FROM educations ORDER BY sort_order, start_date DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]domain.Education, 0)
	for rows.Next() {
		e, err := scanEducation(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *e)
	}
	return items, rows.Err()
}

const certificateColumns = `id, title, issuer, issue_date, expiry_date, credential_id, credential_url, image, sort_order, created_at, updated_at`

func scanCertificate(row scanner) (*domain.Certificate, error) {
	var (
		c      domain.Certificate
		issued time.Time
		expiry *time.Time
	)
	if err := row.Scan(&c.ID, &c.Title, &c.Issuer, &issued, &expiry, &c.CredentialID, &c.CredentialURL,
		&c.Image, &c.Order, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, mapError(err)
	}
	c.IssueDate = domain.NewDate(issued)
	c.ExpiryDate = dateFromNull(expiry)
	return &c, nil
}

// CreateCertificate inserts a certificate.
func (r *Repository) CreateCertificate(ctx context.Context, c *domain.Certificate) error {
	const query = `INSERT INTO certificates (` + certificateColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.pool.Exec(ctx, query, c.ID, c.Title, c.Issuer, c.IssueDate.Time, dateArg(c.ExpiryDate),
		c.CredentialID, c.CredentialURL, c.Image, c.Order, c.CreatedAt, c.UpdatedAt)
	return mapError(err)
}

// UpdateCertificate replaces a certificate.
func (r *Repository) UpdateCertificate(ctx context.Context, c *domain.Certificate) error {
	const query = `UPDATE certificates SET title = $2, issuer = $3, issue_date = $4, expiry_date = $5,
			credential_id = $6, credential_url = $7, image = $8, sort_order = $9, updated_at = $10
		WHERE id = $1`
	return r.execOne(ctx, query, c.ID, c.Title, c.Issuer, c.IssueDate.Time, dateArg(c.ExpiryDate),
		c.CredentialID, c.CredentialURL, c.Image, c.Order, c.UpdatedAt)
}

// DeleteCertificate removes a certificate.
func (r *Repository) DeleteCertificate(ctx context.Context, id string) error {
	return r.execOne(ctx, `DELETE FROM certificates WHERE id = $1`, id)
}

// GetCertificateByID fetches a certificate.
func (r *Repository) GetCertificateByID(ctx context.Context, id string) (*domain.Certificate, error) {
	return scanCertificate(r.pool.QueryRow(ctx, `SELECT `+certificateColumns+` FROM certificates WHERE id = $1`, id))
}

// ListCertificates returns certificates, newest issue first within display order.
func (r *Repository) ListCertificates(ctx context.Context) ([]domain.Certificate, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+certificateColumns+` FROM certificates ORDER BY sort_order, issue_date DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]domain.Certificate, 0)
	for rows.Next() {
		c, err := scanCertificate(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *c)
	}
	return items, rows.Err()
}
