package reviews

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"sahityahub/pkg/models"
)

type Repo struct {
	DB *sql.DB
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{DB: db}
}

// WorkReview is a review joined with its author's username, for the work
// detail page.
type WorkReview struct {
	models.Review
	Username string `json:"username"`
}

// UserReview is a review joined with the work and its author, for profile
// pages.
type UserReview struct {
	models.Review
	TitleNative   string `json:"title_native"`
	TitleEnglish  string `json:"title_english"`
	AuthorID      int64  `json:"author_id"`
	AuthorNative  string `json:"author_native"`
	AuthorEnglish string `json:"author_english"`
}

// Upsert logs the user's review of a work, replacing any previous one. The
// UNIQUE(user_id, work_id) constraint plus ON CONFLICT makes this a single
// atomic statement: concurrent submissions for the same pair can never
// produce two rows. date_logged is refreshed on update.
func (r *Repo) Upsert(ctx context.Context, userID string, workID int64, rating int, text, dateRead string) (*models.Review, error) {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO reviews (user_id, work_id, rating, text, date_read)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(user_id, work_id) DO UPDATE SET
			rating = excluded.rating,
			text = excluded.text,
			date_read = excluded.date_read,
			date_logged = CURRENT_TIMESTAMP
	`, userID, workID, rating, text, dateRead)
	if err != nil {
		return nil, fmt.Errorf("upsert review: %w", err)
	}

	return r.GetByUserAndWork(ctx, userID, workID)
}

func (r *Repo) GetByUserAndWork(ctx context.Context, userID string, workID int64) (*models.Review, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT id, user_id, work_id, rating, text, date_read, date_logged
		FROM reviews
		WHERE user_id = ? AND work_id = ?
	`, userID, workID)
	return scanReview(row)
}

func (r *Repo) GetByID(ctx context.Context, id int64) (*models.Review, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT id, user_id, work_id, rating, text, date_read, date_logged
		FROM reviews
		WHERE id = ?
	`, id)
	return scanReview(row)
}

func (r *Repo) ListByWork(ctx context.Context, workID int64, limit, offset int) ([]WorkReview, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := r.DB.QueryContext(ctx, `
		SELECT rv.id, rv.user_id, rv.work_id, rv.rating, rv.text, rv.date_read, rv.date_logged, u.username
		FROM reviews rv
		JOIN users u ON rv.user_id = u.id
		WHERE rv.work_id = ?
		ORDER BY rv.date_logged DESC
		LIMIT ? OFFSET ?
	`, workID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()

	out := make([]WorkReview, 0, limit)
	for rows.Next() {
		var (
			review   WorkReview
			text     sql.NullString
			dateRead sql.NullString
			logged   time.Time
		)
		if err := rows.Scan(&review.ID, &review.UserID, &review.WorkID, &review.Rating, &text, &dateRead, &logged, &review.Username); err != nil {
			return nil, fmt.Errorf("scan review row: %w", err)
		}
		review.Text = text.String
		review.DateRead = dateRead.String
		review.DateLogged = logged
		out = append(out, review)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows err: %w", err)
	}
	return out, nil
}

// ListByUser returns a user's reviews newest-read first, joined with the
// reviewed works for profile rendering.
func (r *Repo) ListByUser(ctx context.Context, userID string) ([]UserReview, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT rv.id, rv.user_id, rv.work_id, rv.rating, rv.text, rv.date_read, rv.date_logged,
		       w.title_native, w.title_english,
		       a.id, a.name_native, a.name_english
		FROM reviews rv
		JOIN works w ON rv.work_id = w.id
		JOIN authors a ON w.author_id = a.id
		WHERE rv.user_id = ?
		ORDER BY rv.date_read DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list user reviews: %w", err)
	}
	defer rows.Close()

	out := make([]UserReview, 0, 8)
	for rows.Next() {
		var (
			review   UserReview
			text     sql.NullString
			dateRead sql.NullString
			logged   time.Time
		)
		if err := rows.Scan(
			&review.ID, &review.UserID, &review.WorkID, &review.Rating, &text, &dateRead, &logged,
			&review.TitleNative, &review.TitleEnglish,
			&review.AuthorID, &review.AuthorNative, &review.AuthorEnglish,
		); err != nil {
			return nil, fmt.Errorf("scan user review row: %w", err)
		}
		review.Text = text.String
		review.DateRead = dateRead.String
		review.DateLogged = logged
		out = append(out, review)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows err: %w", err)
	}
	return out, nil
}

func (r *Repo) Delete(ctx context.Context, id int64, userID string) (bool, error) {
	res, err := r.DB.ExecContext(ctx, `
		DELETE FROM reviews
		WHERE id = ? AND user_id = ?
	`, id, userID)
	if err != nil {
		return false, fmt.Errorf("delete review: %w", err)
	}
	rows, _ := res.RowsAffected()
	return rows > 0, nil
}

func scanReview(row *sql.Row) (*models.Review, error) {
	var (
		review   models.Review
		text     sql.NullString
		dateRead sql.NullString
		logged   time.Time
	)
	if err := row.Scan(&review.ID, &review.UserID, &review.WorkID, &review.Rating, &text, &dateRead, &logged); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan review: %w", err)
	}
	review.Text = text.String
	review.DateRead = dateRead.String
	review.DateLogged = logged
	return &review, nil
}
