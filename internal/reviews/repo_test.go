package reviews

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"sahityahub/pkg/database"
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

func seedUserAndWork(t *testing.T, db *sql.DB) (string, int64) {
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
	res, err = db.Exec(`
		INSERT INTO works (author_id, title_native, title_english, type, synopsis, genres)
		VALUES (?, 'Malegalalli Madumagalu', 'Malegalalli Madumagalu', 'Novel', '', '[]')
	`, authorID)
	if err != nil {
		t.Fatalf("seed work: %v", err)
	}
	workID, _ := res.LastInsertId()
	return "user-1", workID
}

func TestUpsertReplacesExistingReview(t *testing.T) {
	repo := newTestRepo(t)
	userID, workID := seedUserAndWork(t, repo.DB)
	ctx := context.Background()

	first, err := repo.Upsert(ctx, userID, workID, 3, "decent", "2024-01-01")
	if err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	if first == nil || first.Rating != 3 {
		t.Fatalf("first = %+v", first)
	}

	second, err := repo.Upsert(ctx, userID, workID, 5, "grew on me", "2024-02-01")
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("row id changed %d -> %d, resubmission must update in place", first.ID, second.ID)
	}
	if second.Rating != 5 || second.Text != "grew on me" || second.DateRead != "2024-02-01" {
		t.Fatalf("second = %+v, want the replacement values", second)
	}

	var n int
	if err := repo.DB.QueryRow(`SELECT COUNT(*) FROM reviews`).Scan(&n); err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Fatalf("rows = %d, one user and work pair must hold one row", n)
	}
}

func TestGetByUserAndWorkMissing(t *testing.T) {
	repo := newTestRepo(t)
	userID, workID := seedUserAndWork(t, repo.DB)

	got, err := repo.GetByUserAndWork(context.Background(), userID, workID+100)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != nil {
		t.Fatalf("got %+v, want nil for a missing review", got)
	}
}

func TestDeleteOwnershipCheck(t *testing.T) {
	repo := newTestRepo(t)
	userID, workID := seedUserAndWork(t, repo.DB)
	ctx := context.Background()

	review, err := repo.Upsert(ctx, userID, workID, 4, "", "2024-01-01")
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}

	ok, err := repo.Delete(ctx, review.ID, "someone-else")
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if ok {
		t.Fatalf("delete by a different user succeeded")
	}

	ok, err = repo.Delete(ctx, review.ID, userID)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if !ok {
		t.Fatalf("owner delete reported no rows")
	}
}

func TestListByWorkJoinsUsername(t *testing.T) {
	repo := newTestRepo(t)
	userID, workID := seedUserAndWork(t, repo.DB)
	ctx := context.Background()

	if _, err := repo.Upsert(ctx, userID, workID, 5, "loved it", "2024-01-01"); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	got, err := repo.ListByWork(ctx, workID, 20, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d reviews, want 1", len(got))
	}
	if got[0].Username != "reader" {
		t.Fatalf("username = %q", got[0].Username)
	}
	if got[0].Text != "loved it" {
		t.Fatalf("text = %q", got[0].Text)
	}
}

func TestListByUserJoinsWorkAndAuthor(t *testing.T) {
	repo := newTestRepo(t)
	userID, workID := seedUserAndWork(t, repo.DB)
	ctx := context.Background()

	if _, err := repo.Upsert(ctx, userID, workID, 4, "", "2024-03-01"); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	got, err := repo.ListByUser(ctx, userID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d reviews, want 1", len(got))
	}
	if got[0].TitleEnglish != "Malegalalli Madumagalu" {
		t.Fatalf("title = %q", got[0].TitleEnglish)
	}
	if got[0].AuthorEnglish != "Kuvempu" {
		t.Fatalf("author = %q", got[0].AuthorEnglish)
	}
}
