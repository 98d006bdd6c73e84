package main

import (
	"context"
	"database/sql"
	"encoding/csv"
	"flag"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"sahityahub/pkg/database"
)

func main() {
	var (
		authorsOut = flag.String("authors", "data/authors.csv", "output CSV path for authors")
		worksOut   = flag.String("works", "data/works.csv", "output CSV path for works")
		reviewsOut = flag.String("reviews", "data/reviews.csv", "output CSV path for reviews")
	)
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db := database.MustOpen(database.DefaultConfig())
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}

	if err := exportAuthors(ctx, db, *authorsOut); err != nil {
		log.Fatalf("export authors failed: %v", err)
	}
	if err := exportWorks(ctx, db, *worksOut); err != nil {
		log.Fatalf("export works failed: %v", err)
	}
	if err := exportReviews(ctx, db, *reviewsOut); err != nil {
		log.Fatalf("export reviews failed: %v", err)
	}

	log.Printf("exported authors to %s, works to %s, reviews to %s", *authorsOut, *worksOut, *reviewsOut)
}

func exportAuthors(ctx context.Context, db *sql.DB, outPath string) error {
	w, f, err := newCSV(outPath, []string{"id", "name_native", "name_english", "era", "image_ref", "source_type"})
	if err != nil {
		return err
	}
	defer f.Close()

	rows, err := db.QueryContext(ctx, `
        SELECT id, name_native, name_english, era, image_ref, source_type
        FROM authors
        ORDER BY name_english
    `)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id                        int64
			native, english, era, src string
			imageRef                  sql.NullString
		)
		if err := rows.Scan(&id, &native, &english, &era, &imageRef, &src); err != nil {
			return err
		}
		if err := w.Write([]string{
			strconv.FormatInt(id, 10), native, english, era, imageRef.String, src,
		}); err != nil {
			return err
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	w.Flush()
	return w.Error()
}

func exportWorks(ctx context.Context, db *sql.DB, outPath string) error {
	w, f, err := newCSV(outPath, []string{"id", "author", "title_native", "title_english", "type", "synopsis", "genres"})
	if err != nil {
		return err
	}
	defer f.Close()

	rows, err := db.QueryContext(ctx, `
        SELECT w.id, a.name_english, w.title_native, w.title_english, w.type, w.synopsis, w.genres
        FROM works w
        JOIN authors a ON w.author_id = a.id
        ORDER BY w.title_english
    `)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id                             int64
			author, native, english, wtype string
			synopsis, genres               sql.NullString
		)
		if err := rows.Scan(&id, &author, &native, &english, &wtype, &synopsis, &genres); err != nil {
			return err
		}
		if err := w.Write([]string{
			strconv.FormatInt(id, 10), author, native, english, wtype, synopsis.String, genres.String,
		}); err != nil {
			return err
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	w.Flush()
	return w.Error()
}

func exportReviews(ctx context.Context, db *sql.DB, outPath string) error {
	w, f, err := newCSV(outPath, []string{"id", "username", "work", "rating", "text", "date_read", "date_logged"})
	if err != nil {
		return err
	}
	defer f.Close()

	rows, err := db.QueryContext(ctx, `
        SELECT rv.id, u.username, w.title_english, rv.rating, rv.text, rv.date_read, rv.date_logged
        FROM reviews rv
        JOIN users u ON rv.user_id = u.id
        JOIN works w ON rv.work_id = w.id
        ORDER BY rv.date_logged DESC
    `)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id             int64
			username, work string
			rating         int
			text, dateRead sql.NullString
			logged         sql.NullTime
		)
		if err := rows.Scan(&id, &username, &work, &rating, &text, &dateRead, &logged); err != nil {
			return err
		}

		loggedStr := ""
		if logged.Valid {
			loggedStr = logged.Time.Format(time.RFC3339)
		}

		if err := w.Write([]string{
			strconv.FormatInt(id, 10), username, work, strconv.Itoa(rating), text.String, dateRead.String, loggedStr,
		}); err != nil {
			return err
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	w.Flush()
	return w.Error()
}

func newCSV(outPath string, header []string) (*csv.Writer, *os.File, error) {
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return nil, nil, err
	}
	f, err := os.Create(outPath)
	if err != nil {
		return nil, nil, err
	}
	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		f.Close()
		return nil, nil, err
	}
	return w, f, nil
}
