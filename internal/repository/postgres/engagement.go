package postgres

import (
	"context"
	"time"

	"github.com/shishir-py/personal-portfolio-sub000/internal/domain"
	"github.com/shishir-py/personal-portfolio-sub000/internal/repository"
)

const commentColumns = `id, content, author, email, COALESCE(project_id::text, ''), COALESCE(post_id::text, ''), created_at`

func scanComment(row scanner) (*domain.Comment, error) {
	var c domain.Comment
	if err := row.Scan(&c.ID, &c.Content, &c.Author, &c.Email, &c.ProjectID, &c.PostID, &c.CreatedAt); err != nil {
		return nil, mapError(err)
	}
	return &c, nil
}

func nullableID(id string) *string {
	if id == "" {
		return nil
	}
	return &id
}

// CreateComment inserts a comment. A missing target surfaces as ErrNotFound.
func (r *Repository) CreateComment(ctx context.Context, c *domain.Comment) error {
	const query = `INSERT INTO comments (id, content, author, email, project_id, post_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.pool.Exec(ctx, query, c.ID, c.Content, c.Author, c.Email, nullableID(c.ProjectID), nullableID(c.PostID), c.CreatedAt)
	return mapError(err)
}

// DeleteComment removes a comment.
func (r *Repository) DeleteComment(ctx context.Context, id string) error {
	return r.execOne(ctx, `DELETE FROM comments WHERE id = $1`, id)
}

// GetCommentByID fetches a comment.
func (r *Repository) GetCommentByID(ctx context.Context, id string) (*domain.Comment, error) {
	return scanComment(r.pool.QueryRow(ctx, `SELECT `+commentColumns+` FROM comments WHERE id = $1`, id))
}

// ListComments returns comments oldest first, optionally for a single target.
func (r *Repository) ListComments(ctx context.Context, filter repository.CommentFilter) ([]domain.Comment, error) {
	const query = `SELECT ` + commentColumns + ` FROM comments
		WHERE ($1 = '' OR project_id::text = $1) AND ($2 = '' OR post_id::text = $2)
		ORDER BY created_at`
	rows, err := r.pool.Query(ctx, query, filter.ProjectID, filter.PostID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := make([]domain.Comment, 0)
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		comments = append(comments, *c)
	}
	return comments, rows.Err()
}

// CreateFeedback inserts a contact submission.
func (r *Repository) CreateFeedback(ctx context.Context, fb *domain.Feedback) error {
	const query = `INSERT INTO feedback (id, name, email_sealed, subject, message, rating, read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.pool.Exec(ctx, query, fb.ID, fb.Name, fb.EmailSealed, fb.Subject, fb.Message, fb.Rating, fb.Read, fb.CreatedAt)
	return mapError(err)
}

// ListFeedback returns submissions, newest first.
func (r *Repository) ListFeedback(ctx context.Context) ([]domain.Feedback, error) {
	const query = `SELECT id, name, email_sealed, subject, message, rating, read, created_at
		FROM feedback ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]domain.Feedback, 0)
	for rows.Next() {
		var fb domain.Feedback
		if err := rows.Scan(&fb.ID, &fb.Name, &fb.EmailSealed, &fb.Subject, &fb.Message, &fb.Rating, &fb.Read, &fb.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, fb)
	}
	return items, rows.Err()
}

// MarkFeedbackRead sets the read flag.
func (r *Repository) MarkFeedbackRead(ctx context.Context, id string, read bool) error {
	return r.execOne(ctx, `UPDATE feedback SET read = $2 WHERE id = $1`, id, read)
}

// DeleteFeedback removes a submission.
func (r *Repository) DeleteFeedback(ctx context.Context, id string) error {
	return r.execOne(ctx, `DELETE FROM feedback WHERE id = $1`, id)
}

// RecordVisit stores a page view.
func (r *Repository) RecordVisit(ctx context.Context, v *domain.Visit) error {
	const query = `INSERT INTO visitors (id, path, referrer, user_agent, ip_hash, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.pool.Exec(ctx, query, v.ID, v.Path, v.Referrer, v.UserAgent, v.IPHash, v.CreatedAt)
	return mapError(err)
}

// VisitorStats aggregates visits recorded at or after since.
func (r *Repository) VisitorStats(ctx context.Context, since time.Time, topPaths int) (domain.VisitorStats, error) {
	stats := domain.VisitorStats{TopPaths: []domain.PathCount{}, Daily: []domain.DayCount{}}

	const totals = `SELECT COUNT(1), COUNT(DISTINCT ip_hash) FROM visitors WHERE created_at >= $1`
	if err := r.pool.QueryRow(ctx, totals, since).Scan(&stats.Total, &stats.Unique); err != nil {
		return stats, err
	}

	const paths = `SELECT path, COUNT(1) AS hits FROM visitors WHERE created_at >= $1
		GROUP BY path ORDER BY hits DESC, path LIMIT $2`
	rows, err := r.pool.Query(ctx, paths, since, topPaths)
	if err != nil {
		return stats, err
	}
	for rows.Next() {
		var pc domain.PathCount
		if err := rows.Scan(&pc.Path, &pc.Count); err != nil {
			rows.Close()
			return stats, err
		}
		stats.TopPaths = append(stats.TopPaths, pc)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return stats, err
	}

	const daily = `SELECT to_char(created_at AT TIME ZONE 'UTC', 'YYYY-MM-DD') AS day, COUNT(1)
		FROM visitors WHERE created_at >= $1 GROUP BY day ORDER BY day`
	rows, err = r.pool.Query(ctx, daily, since)
	if err != nil {
		return stats, err
	}
	defer rows.Close()
	for rows.Next() {
		var dc domain.DayCount
		if err := rows.Scan(&dc.Day, &dc.Count); err != nil {
			return stats, err
		}
		stats.Daily = append(stats.Daily, dc)
	}
	return stats, rows.Err()
}
