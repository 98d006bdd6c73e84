package ingest

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sort"

	"sahityahub/pkg/models"
)

type SaveStats struct {
	AuthorsInserted int
	WorksInserted   int
}

// SaveCatalog writes the merged author set to the store in one transaction.
// Existing rows are never touched: an author already present by English
// name keeps its id and fields, a work title already present anywhere in
// the store keeps its first writer's row. Re-running against unchanged
// sources inserts nothing. Any store error rolls the whole batch back;
// re-invocation is the retry mechanism.
func SaveCatalog(ctx context.Context, db *sql.DB, merged map[string]models.AuthorDraft) (SaveStats, error) {
	var stats SaveStats

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return stats, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	names := make([]string, 0, len(merged))
	for name := range merged {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		d := merged[name]

		authorID, created, err := getOrCreateAuthor(ctx, tx, d)
		if err != nil {
			return stats, err
		}
		if created {
			stats.AuthorsInserted++
		}

		for _, w := range d.Works {
			inserted, err := insertWorkIfNew(ctx, tx, authorID, w)
			if err != nil {
				return stats, err
			}
			if inserted {
				stats.WorksInserted++
			}
		}
		for _, w := range d.Poems {
			inserted, err := insertWorkIfNew(ctx, tx, authorID, w)
			if err != nil {
				return stats, err
			}
			if inserted {
				stats.WorksInserted++
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return stats, fmt.Errorf("commit tx: %w", err)
	}
	return stats, nil
}

// getOrCreateAuthor looks an author up by English name and inserts only
// when absent. The existing row's fields are never updated.
func getOrCreateAuthor(ctx context.Context, tx *sql.Tx, d models.AuthorDraft) (int64, bool, error) {
	var id int64
	err := tx.QueryRowContext(ctx, `
		SELECT id FROM authors WHERE name_english = ?
	`, d.NameEnglish).Scan(&id)
	if err == nil {
		return id, false, nil
	}
	if err != sql.ErrNoRows {
		return 0, false, fmt.Errorf("lookup author %q: %w", d.NameEnglish, err)
	}

	res, err := tx.ExecContext(ctx, `
		INSERT INTO authors (name_native, name_english, biography, era, image_ref, source_type)
		VALUES (?, ?, ?, ?, ?, ?)
	`, d.NameNative, d.NameEnglish, d.Biography, d.Era, d.ImageRef, d.SourceType)
	if err != nil {
		return 0, false, fmt.Errorf("insert author %q: %w", d.NameEnglish, err)
	}

	id, err = res.LastInsertId()
	if err != nil {
		return 0, false, fmt.Errorf("author %q insert id: %w", d.NameEnglish, err)
	}
	return id, true, nil
}

// insertWorkIfNew skips any title already present in the store, regardless
// of which author owns it or how the new candidate is described.
func insertWorkIfNew(ctx context.Context, tx *sql.Tx, authorID int64, w models.WorkDraft) (bool, error) {
	var id int64
	err := tx.QueryRowContext(ctx, `
		SELECT id FROM works WHERE title_english = ?
	`, w.TitleEnglish).Scan(&id)
	if err == nil {
		return false, nil
	}
	if err != sql.ErrNoRows {
		return false, fmt.Errorf("lookup work %q: %w", w.TitleEnglish, err)
	}

	genres := w.Genres
	if genres == nil {
		genres = []string{}
	}
	genresJSON, err := json.Marshal(genres)
	if err != nil {
		return false, fmt.Errorf("marshal genres for %q: %w", w.TitleEnglish, err)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO works (author_id, title_native, title_english, type, synopsis, genres)
		VALUES (?, ?, ?, ?, ?, ?)
	`, authorID, w.TitleNative, w.TitleEnglish, w.Type, w.Synopsis, string(genresJSON)); err != nil {
		return false, fmt.Errorf("insert work %q: %w", w.TitleEnglish, err)
	}
	return true, nil
}
