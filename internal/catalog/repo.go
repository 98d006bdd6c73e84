package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"sahityahub/pkg/models"
)

type Repo struct {
	DB *sql.DB
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{DB: db}
}

// WorkDetail is a work joined with its owning author, as the detail page
// and the ranked queries return it.
type WorkDetail struct {
	models.Work
	AuthorNative   string `json:"author_native"`
	AuthorEnglish  string `json:"author_english"`
	AuthorImageRef string `json:"author_image_ref,omitempty"`
}

func (r *Repo) GetAuthorByID(ctx context.Context, id int64) (*models.Author, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT id, name_native, name_english, biography, era, image_ref, source_type
		FROM authors
		WHERE id = ?
	`, id)

	var (
		a         models.Author
		biography sql.NullString
		imageRef  sql.NullString
	)
	if err := row.Scan(&a.ID, &a.NameNative, &a.NameEnglish, &biography, &a.Era, &imageRef, &a.SourceType); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan author: %w", err)
	}
	a.Biography = biography.String
	a.ImageRef = imageRef.String
	return &a, nil
}

func (r *Repo) ListWorksByAuthor(ctx context.Context, authorID int64) ([]models.Work, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, author_id, title_native, title_english, type, synopsis, genres
		FROM works
		WHERE author_id = ?
		ORDER BY title_english ASC
	`, authorID)
	if err != nil {
		return nil, fmt.Errorf("list works by author: %w", err)
	}
	defer rows.Close()

	out := make([]models.Work, 0, 8)
	for rows.Next() {
		w, err := scanWork(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows err: %w", err)
	}
	return out, nil
}

func (r *Repo) GetWorkByID(ctx context.Context, id int64) (*WorkDetail, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT w.id, w.author_id, w.title_native, w.title_english, w.type, w.synopsis, w.genres,
		       a.name_native, a.name_english, a.image_ref
		FROM works w
		JOIN authors a ON w.author_id = a.id
		WHERE w.id = ?
	`, id)

	var (
		d          WorkDetail
		synopsis   sql.NullString
		genresJSON sql.NullString
		imageRef   sql.NullString
	)
	if err := row.Scan(
		&d.ID, &d.AuthorID, &d.TitleNative, &d.TitleEnglish, &d.Type, &synopsis, &genresJSON,
		&d.AuthorNative, &d.AuthorEnglish, &imageRef,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan work detail: %w", err)
	}
	d.Synopsis = synopsis.String
	d.AuthorImageRef = imageRef.String
	genres, err := decodeGenres(genresJSON)
	if err != nil {
		return nil, fmt.Errorf("work %d: %w", d.ID, err)
	}
	d.Genres = genres
	return &d, nil
}

func scanWork(rows *sql.Rows) (models.Work, error) {
	var (
		w          models.Work
		synopsis   sql.NullString
		genresJSON sql.NullString
	)
	if err := rows.Scan(&w.ID, &w.AuthorID, &w.TitleNative, &w.TitleEnglish, &w.Type, &synopsis, &genresJSON); err != nil {
		return w, fmt.Errorf("scan work: %w", err)
	}
	w.Synopsis = synopsis.String
	genres, err := decodeGenres(genresJSON)
	if err != nil {
		return w, fmt.Errorf("work %d: %w", w.ID, err)
	}
	w.Genres = genres
	return w, nil
}

// decodeGenres parses the stored JSON tag array. Corrupt stored data is a
// real error, not an empty list.
func decodeGenres(raw sql.NullString) ([]string, error) {
	if !raw.Valid || raw.String == "" {
		return nil, nil
	}
	var genres []string
	if err := json.Unmarshal([]byte(raw.String), &genres); err != nil {
		return nil, fmt.Errorf("decode genres %q: %w", raw.String, err)
	}
	return genres, nil
}
