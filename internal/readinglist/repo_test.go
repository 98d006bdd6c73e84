package readinglist

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"sahityahub/pkg/database"
	"sahityahub/pkg/models"
)

func newTestRepo(t *testing.T) *Repo {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	// more than one pool connection would mean separate in-memory databases
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewRepo(db)
}

func seedUserAndWorks(t *testing.T, db *sql.DB, workCount int) (string, []int64) {
	t.Helper()
	if _, err := db.Exec(`
		INSERT INTO users (id, username, email, password_hash)
		VALUES ('user-1', 'reader', 'reader@example.com', 'x')
	`); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	res, err := db.Exec(`
		INSERT INTO authors (name_native, name_english, biography, era, image_ref, source_type)
		VALUES ('ಕುವೆಂಪು', 'Kuvempu', '', 'Navodaya', '', 'Writer')
	`)
	if err != nil {
		t.Fatalf("seed author: %v", err)
	}
	authorID, _ := res.LastInsertId()

	ids := make([]int64, 0, workCount)
	for i := 0; i < workCount; i++ {
		res, err := db.Exec(`
			INSERT INTO works (author_id, title_native, title_english, type, synopsis, genres)
			VALUES (?, ?, ?, 'Novel', '', '[]')
		`, authorID, string(rune('A'+i))+" Title", string(rune('A'+i))+" Title")
		if err != nil {
			t.Fatalf("seed work %d: %v", i, err)
		}
		id, _ := res.LastInsertId()
		ids = append(ids, id)
	}
	return "user-1", ids
}

func TestValidStatus(t *testing.T) {
	for _, s := range []string{StatusToRead, StatusReading, StatusFinished} {
		if !ValidStatus(s) {
			t.Fatalf("ValidStatus(%q) = false", s)
		}
	}
	for _, s := range []string{"", "done", "TO-READ"} {
		if ValidStatus(s) {
			t.Fatalf("ValidStatus(%q) = true", s)
		}
	}
}

func TestUpsertMovesStatus(t *testing.T) {
	repo := newTestRepo(t)
	userID, works := seedUserAndWorks(t, repo.DB, 1)
	ctx := context.Background()

	item := models.ReadingListItem{UserID: userID, WorkID: works[0], Status: StatusToRead}
	if err := repo.Upsert(ctx, item); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	item.Status = StatusFinished
	if err := repo.Upsert(ctx, item); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	got, err := repo.Get(ctx, userID, works[0])
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil || got.Status != StatusFinished {
		t.Fatalf("got %+v, want the moved status", got)
	}

	var n int
	if err := repo.DB.QueryRow(`SELECT COUNT(*) FROM reading_list`).Scan(&n); err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Fatalf("rows = %d, a status move must not add a row", n)
	}
}

func TestListFiltersByStatus(t *testing.T) {
	repo := newTestRepo(t)
	userID, works := seedUserAndWorks(t, repo.DB, 3)
	ctx := context.Background()

	statuses := []string{StatusToRead, StatusReading, StatusToRead}
	for i, w := range works {
		if err := repo.Upsert(ctx, models.ReadingListItem{UserID: userID, WorkID: w, Status: statuses[i]}); err != nil {
			t.Fatalf("upsert %d: %v", i, err)
		}
	}

	items, total, err := repo.List(ctx, userID, StatusToRead, 20, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 2 || len(items) != 2 {
		t.Fatalf("total = %d len = %d, want 2 to-read items", total, len(items))
	}
	for _, it := range items {
		if it.Status != StatusToRead {
			t.Fatalf("item %+v leaked through the status filter", it)
		}
	}

	_, total, err = repo.List(ctx, userID, "", 20, 0)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if total != 3 {
		t.Fatalf("total = %d, want all 3 without a filter", total)
	}
}

func TestDeleteReportsMissing(t *testing.T) {
	repo := newTestRepo(t)
	userID, works := seedUserAndWorks(t, repo.DB, 1)
	ctx := context.Background()

	ok, err := repo.Delete(ctx, userID, works[0])
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if ok {
		t.Fatalf("delete of a missing entry reported success")
	}

	if err := repo.Upsert(ctx, models.ReadingListItem{UserID: userID, WorkID: works[0], Status: StatusReading}); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	ok, err = repo.Delete(ctx, userID, works[0])
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if !ok {
		t.Fatalf("delete of an existing entry reported no rows")
	}
}
