package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"

	"sahityahub/pkg/models"
)

// Result caps and thresholds for the discovery queries.
const (
	popularPageSize   = 12
	popularWindowMin  = 6
	suggestMaxTotal   = 10
	suggestExactAuth  = 3
	suggestExactWork  = 3
	suggestPartAuth   = 5
	suggestPartWork   = 7
	searchAuthorLimit = 20
	searchWorkLimit   = 50
)

// RankedWork is a work joined with its author and aggregated review stats,
// as returned by the popularity, search and genre queries.
type RankedWork struct {
	models.Work
	AuthorNative   string  `json:"author_native"`
	AuthorEnglish  string  `json:"author_english"`
	AuthorImageRef string  `json:"author_image_ref,omitempty"`
	ReviewCount    int     `json:"review_count"`
	AvgRating      float64 `json:"avg_rating"`
}

type Suggestion struct {
	Label    string `json:"label"`
	Type     string `json:"type"`
	URL      string `json:"url"`
	Priority int    `json:"priority"`
}

const rankedColumns = `
	w.id, w.author_id, w.title_native, w.title_english, w.type, w.synopsis, w.genres,
	a.name_native, a.name_english, a.image_ref`

// PopularThisWeek ranks works by review activity in the trailing 7 days:
// review count descending, then average rating descending. When fewer than
// popularWindowMin works have any review in the window, the windowed result
// is discarded entirely and the same ranking is computed over all-time
// reviews instead.
func (r *Repo) PopularThisWeek(ctx context.Context) ([]RankedWork, error) {
	windowed, err := r.queryRanked(ctx, `
		SELECT`+rankedColumns+`,
		       COUNT(CASE WHEN rv.date_logged >= datetime('now', '-7 days') THEN rv.id END) AS review_count,
		       AVG(CASE WHEN rv.date_logged >= datetime('now', '-7 days') THEN rv.rating END) AS avg_rating
		FROM works w
		JOIN authors a ON w.author_id = a.id
		LEFT JOIN reviews rv ON w.id = rv.work_id
		GROUP BY w.id
		HAVING review_count > 0
		ORDER BY review_count DESC, avg_rating DESC
		LIMIT ?
	`, popularPageSize)
	if err != nil {
		return nil, err
	}
	if len(windowed) >= popularWindowMin {
		return windowed, nil
	}

	return r.queryRanked(ctx, `
		SELECT`+rankedColumns+`,
		       COUNT(rv.id) AS review_count,
		       AVG(rv.rating) AS avg_rating
		FROM works w
		JOIN authors a ON w.author_id = a.id
		LEFT JOIN reviews rv ON w.id = rv.work_id
		GROUP BY w.id
		HAVING review_count > 0
		ORDER BY review_count DESC, avg_rating DESC
		LIMIT ?
	`, popularPageSize)
}

// Autocomplete assembles suggestions in two tiers: exact full-string
// matches on either name/title field first, then substring matches that
// were not already returned. The final list is stable-sorted by priority
// and capped at suggestMaxTotal.
func (r *Repo) Autocomplete(ctx context.Context, query string) ([]Suggestion, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return []Suggestion{}, nil
	}
	like := "%" + q + "%"

	authorsExact, err := r.queryNamePairs(ctx, `
		SELECT id, name_native, name_english FROM authors
		WHERE LOWER(name_english) = ? OR LOWER(name_native) = ?
		LIMIT ?
	`, q, q, suggestExactAuth)
	if err != nil {
		return nil, err
	}
	authorsPartial, err := r.queryNamePairs(ctx, `
		SELECT id, name_native, name_english FROM authors
		WHERE (LOWER(name_native) LIKE ? OR LOWER(name_english) LIKE ?)
		AND id NOT IN (SELECT id FROM authors WHERE LOWER(name_english) = ? OR LOWER(name_native) = ?)
		LIMIT ?
	`, like, like, q, q, suggestPartAuth)
	if err != nil {
		return nil, err
	}
	worksExact, err := r.queryNamePairs(ctx, `
		SELECT id, title_native, title_english FROM works
		WHERE LOWER(title_english) = ? OR LOWER(title_native) = ?
		LIMIT ?
	`, q, q, suggestExactWork)
	if err != nil {
		return nil, err
	}
	worksPartial, err := r.queryNamePairs(ctx, `
		SELECT id, title_native, title_english FROM works
		WHERE (LOWER(title_native) LIKE ? OR LOWER(title_english) LIKE ?)
		AND id NOT IN (SELECT id FROM works WHERE LOWER(title_english) = ? OR LOWER(title_native) = ?)
		LIMIT ?
	`, like, like, q, q, suggestPartWork)
	if err != nil {
		return nil, err
	}

	suggestions := make([]Suggestion, 0, len(authorsExact)+len(worksExact)+len(authorsPartial)+len(worksPartial))
	for _, p := range authorsExact {
		suggestions = append(suggestions, authorSuggestion(p, 1))
	}
	for _, p := range worksExact {
		suggestions = append(suggestions, workSuggestion(p, 1))
	}
	for _, p := range authorsPartial {
		suggestions = append(suggestions, authorSuggestion(p, 2))
	}
	for _, p := range worksPartial {
		suggestions = append(suggestions, workSuggestion(p, 2))
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Priority < suggestions[j].Priority
	})
	if len(suggestions) > suggestMaxTotal {
		suggestions = suggestions[:suggestMaxTotal]
	}
	return suggestions, nil
}

// Search returns the full result page: matching authors and matching works,
// each independently ranked. Authors order by exact match, then prefix
// match, then the rest, alphabetically within each band. Works use the same
// three bands on their titles, then review count and average rating.
func (r *Repo) Search(ctx context.Context, query string) ([]models.Author, []RankedWork, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return []models.Author{}, []RankedWork{}, nil
	}
	like := "%" + q + "%"
	prefix := q + "%"

	authors, err := r.queryAuthors(ctx, `
		SELECT id, name_native, name_english, biography, era, image_ref, source_type
		FROM authors
		WHERE LOWER(name_native) LIKE ? OR LOWER(name_english) LIKE ?
		ORDER BY
			CASE
				WHEN LOWER(name_english) = ? OR LOWER(name_native) = ? THEN 1
				WHEN LOWER(name_english) LIKE ? OR LOWER(name_native) LIKE ? THEN 2
				ELSE 3
			END,
			name_english
		LIMIT ?
	`, like, like, q, q, prefix, prefix, searchAuthorLimit)
	if err != nil {
		return nil, nil, err
	}

	works, err := r.queryRanked(ctx, `
		SELECT`+rankedColumns+`,
		       COUNT(rv.id) AS review_count,
		       AVG(rv.rating) AS avg_rating
		FROM works w
		JOIN authors a ON w.author_id = a.id
		LEFT JOIN reviews rv ON w.id = rv.work_id
		WHERE LOWER(w.title_native) LIKE ? OR LOWER(w.title_english) LIKE ?
		   OR LOWER(a.name_english) LIKE ? OR LOWER(a.name_native) LIKE ?
		GROUP BY w.id
		ORDER BY
			CASE
				WHEN LOWER(w.title_english) = ? OR LOWER(w.title_native) = ? THEN 1
				WHEN LOWER(w.title_english) LIKE ? OR LOWER(w.title_native) LIKE ? THEN 2
				ELSE 3
			END,
			review_count DESC,
			avg_rating DESC
		LIMIT ?
	`, like, like, like, like, q, q, prefix, prefix, searchWorkLimit)
	if err != nil {
		return nil, nil, err
	}

	return authors, works, nil
}

// BrowseGenre matches a genre token against each work's classified type and
// serialized genre tags. When that finds nothing, it broadens to a scan
// over titles and synopsis. Both paths order alphabetically by English
// title, with no popularity weighting.
func (r *Repo) BrowseGenre(ctx context.Context, genre string) ([]RankedWork, error) {
	g := strings.ToLower(strings.TrimSpace(genre))
	if g == "" {
		return []RankedWork{}, nil
	}
	like := "%" + g + "%"

	works, err := r.queryRanked(ctx, `
		SELECT`+rankedColumns+`,
		       COUNT(rv.id) AS review_count,
		       AVG(rv.rating) AS avg_rating
		FROM works w
		JOIN authors a ON w.author_id = a.id
		LEFT JOIN reviews rv ON w.id = rv.work_id
		WHERE LOWER(w.type) LIKE ? OR LOWER(w.genres) LIKE ?
		GROUP BY w.id
		ORDER BY w.title_english ASC
	`, like, like)
	if err != nil {
		return nil, err
	}
	if len(works) > 0 {
		return works, nil
	}

	return r.queryRanked(ctx, `
		SELECT`+rankedColumns+`,
		       COUNT(rv.id) AS review_count,
		       AVG(rv.rating) AS avg_rating
		FROM works w
		JOIN authors a ON w.author_id = a.id
		LEFT JOIN reviews rv ON w.id = rv.work_id
		WHERE LOWER(w.title_english) LIKE ? OR LOWER(w.title_native) LIKE ? OR LOWER(w.synopsis) LIKE ?
		GROUP BY w.id
		ORDER BY w.title_english ASC
	`, like, like, like)
}

func (r *Repo) queryRanked(ctx context.Context, sqlStr string, args ...any) ([]RankedWork, error) {
	rows, err := r.DB.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("ranked query: %w", err)
	}
	defer rows.Close()

	out := make([]RankedWork, 0, popularPageSize)
	for rows.Next() {
		var (
			w          RankedWork
			synopsis   sql.NullString
			genresJSON sql.NullString
			imageRef   sql.NullString
			avg        sql.NullFloat64
		)
		if err := rows.Scan(
			&w.ID, &w.AuthorID, &w.TitleNative, &w.TitleEnglish, &w.Type, &synopsis, &genresJSON,
			&w.AuthorNative, &w.AuthorEnglish, &imageRef,
			&w.ReviewCount, &avg,
		); err != nil {
			return nil, fmt.Errorf("scan ranked work: %w", err)
		}
		w.Synopsis = synopsis.String
		w.AuthorImageRef = imageRef.String
		w.AvgRating = avg.Float64
		genres, err := decodeGenres(genresJSON)
		if err != nil {
			return nil, fmt.Errorf("work %d: %w", w.ID, err)
		}
		w.Genres = genres
		out = append(out, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows err: %w", err)
	}
	return out, nil
}

func (r *Repo) queryAuthors(ctx context.Context, sqlStr string, args ...any) ([]models.Author, error) {
	rows, err := r.DB.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("authors query: %w", err)
	}
	defer rows.Close()

	out := make([]models.Author, 0, searchAuthorLimit)
	for rows.Next() {
		var (
			a         models.Author
			biography sql.NullString
			imageRef  sql.NullString
		)
		if err := rows.Scan(&a.ID, &a.NameNative, &a.NameEnglish, &biography, &a.Era, &imageRef, &a.SourceType); err != nil {
			return nil, fmt.Errorf("scan author: %w", err)
		}
		a.Biography = biography.String
		a.ImageRef = imageRef.String
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows err: %w", err)
	}
	return out, nil
}

type namePair struct {
	ID      int64
	Native  string
	English string
}

func (r *Repo) queryNamePairs(ctx context.Context, sqlStr string, args ...any) ([]namePair, error) {
	rows, err := r.DB.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("name query: %w", err)
	}
	defer rows.Close()

	out := make([]namePair, 0, suggestMaxTotal)
	for rows.Next() {
		var p namePair
		if err := rows.Scan(&p.ID, &p.Native, &p.English); err != nil {
			return nil, fmt.Errorf("scan name pair: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows err: %w", err)
	}
	return out, nil
}

func authorSuggestion(p namePair, priority int) Suggestion {
	return Suggestion{
		Label:    fmt.Sprintf("Author: %s (%s)", p.English, p.Native),
		Type:     "Author",
		URL:      fmt.Sprintf("/authors/%d", p.ID),
		Priority: priority,
	}
}

func workSuggestion(p namePair, priority int) Suggestion {
	return Suggestion{
		Label:    fmt.Sprintf("Work: %s (%s)", p.English, p.Native),
		Type:     "Work",
		URL:      fmt.Sprintf("/works/%d", p.ID),
		Priority: priority,
	}
}
