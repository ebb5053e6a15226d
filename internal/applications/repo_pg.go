package applications

import (
	"context"
	"database/sql"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Append inserts a new application row.
func (r *PGRepo) Append(ctx context.Context, rec Record) error {
	const query = `
INSERT INTO applications (
    id,
    submitted_at,
    first_name,
    last_name,
    email,
    phone,
    work_exp,
    applying_for,
    github,
    linkedin,
    intro,
    resume_path
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := r.DB.ExecContext(
		ctx,
		query,
		rec.ID,
		rec.Date,
		rec.FirstName,
		rec.LastName,
		rec.Email,
		rec.Phone,
		rec.WorkExp,
		rec.ApplyingFor,
		rec.Github,
		rec.Linkedin,
		rec.Intro,
		rec.ResumePath,
	)
	if err != nil {
		return &StoreError{Op: "insert", Path: "applications", Err: err}
	}
	return nil
}

var _ Repo = (*PGRepo)(nil)
