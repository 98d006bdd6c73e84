package readinglist

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"sahityahub/pkg/models"
)

const (
	StatusToRead   = "to-read"
	StatusReading  = "reading"
	StatusFinished = "finished"
)

func ValidStatus(s string) bool {
	return s == StatusToRead || s == StatusReading || s == StatusFinished
}

type Repo struct {
	DB *sql.DB
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{DB: db}
}

// Upsert inserts or updates a user's reading-list entry for a work.
func (r *Repo) Upsert(ctx context.Context, item models.ReadingListItem) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO reading_list (user_id, work_id, status, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(user_id, work_id) DO UPDATE SET
			status = excluded.status,
			updated_at = CURRENT_TIMESTAMP
	`, item.UserID, item.WorkID, item.Status)
	if err != nil {
		return fmt.Errorf("upsert reading list item: %w", err)
	}
	return nil
}

func (r *Repo) Delete(ctx context.Context, userID string, workID int64) (bool, error) {
	res, err := r.DB.ExecContext(ctx, `
		DELETE FROM reading_list
		WHERE user_id = ? AND work_id = ?
	`, userID, workID)
	if err != nil {
		return false, fmt.Errorf("delete reading list item: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (r *Repo) List(ctx context.Context, userID string, status string, limit, offset int) ([]models.ReadingListItem, int, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	var (
		total    int
		countErr error
	)
	if status == "" {
		countErr = r.DB.QueryRowContext(ctx, `
			SELECT COUNT(*) FROM reading_list WHERE user_id = ?
		`, userID).Scan(&total)
	} else {
		countErr = r.DB.QueryRowContext(ctx, `
			SELECT COUNT(*) FROM reading_list WHERE user_id = ? AND status = ?
		`, userID, status).Scan(&total)
	}
	if countErr != nil {
		return nil, 0, fmt.Errorf("count reading list: %w", countErr)
	}

	var (
		rows *sql.Rows
		err  error
	)
	if status == "" {
		rows, err = r.DB.QueryContext(ctx, `
			SELECT user_id, work_id, status, updated_at
			FROM reading_list
			WHERE user_id = ?
			ORDER BY updated_at DESC
			LIMIT ? OFFSET ?
		`, userID, limit, offset)
	} else {
		rows, err = r.DB.QueryContext(ctx, `
			SELECT user_id, work_id, status, updated_at
			FROM reading_list
			WHERE user_id = ? AND status = ?
			ORDER BY updated_at DESC
			LIMIT ? OFFSET ?
		`, userID, status, limit, offset)
	}
	if err != nil {
		return nil, 0, fmt.Errorf("list reading list: %w", err)
	}
	defer rows.Close()

	out := make([]models.ReadingListItem, 0, limit)
	for rows.Next() {
		var it models.ReadingListItem
		var updated time.Time

		if err := rows.Scan(&it.UserID, &it.WorkID, &it.Status, &updated); err != nil {
			return nil, 0, fmt.Errorf("scan reading list row: %w", err)
		}
		it.UpdatedAt = updated
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows err: %w", err)
	}

	return out, total, nil
}

func (r *Repo) Get(ctx context.Context, userID string, workID int64) (*models.ReadingListItem, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT user_id, work_id, status, updated_at
		FROM reading_list
		WHERE user_id = ? AND work_id = ?
	`, userID, workID)

	var it models.ReadingListItem
	var updated time.Time
	if err := row.Scan(&it.UserID, &it.WorkID, &it.Status, &updated); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get reading list item: %w", err)
	}
	it.UpdatedAt = updated
	return &it, nil
}
