package catalog

import (
	"context"
	"testing"

	"sahityahub/pkg/models"
)

func TestGetAuthorByIDMissing(t *testing.T) {
	repo := newTestRepo(t)

	got, err := repo.GetAuthorByID(context.Background(), 999)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != nil {
		t.Fatalf("got %+v, want nil for a missing author", got)
	}
}

func TestGetWorkByIDJoinsAuthor(t *testing.T) {
	repo := newTestRepo(t)
	authorID := seedAuthor(t, repo.DB, "ಕುವೆಂಪು", "Kuvempu")
	workID := seedWork(t, repo.DB, authorID, "Parva", models.WorkTypeNovel, "An epic.", `["Novel","Epic"]`)

	got, err := repo.GetWorkByID(context.Background(), workID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil {
		t.Fatalf("got nil for an existing work")
	}
	if got.AuthorEnglish != "Kuvempu" || got.AuthorNative != "ಕುವೆಂಪು" {
		t.Fatalf("author join = %q / %q", got.AuthorEnglish, got.AuthorNative)
	}
	if len(got.Genres) != 2 || got.Genres[0] != "Novel" || got.Genres[1] != "Epic" {
		t.Fatalf("genres = %v", got.Genres)
	}
}

func TestGetWorkByIDCorruptGenres(t *testing.T) {
	repo := newTestRepo(t)
	authorID := seedAuthor(t, repo.DB, "ಕುವೆಂಪು", "Kuvempu")
	workID := seedWork(t, repo.DB, authorID, "Broken Row", models.WorkTypeNovel, "", `not json`)

	if _, err := repo.GetWorkByID(context.Background(), workID); err == nil {
		t.Fatalf("corrupt stored genres surfaced as a clean read")
	}
}

func TestListWorksByAuthorCorruptGenres(t *testing.T) {
	repo := newTestRepo(t)
	authorID := seedAuthor(t, repo.DB, "ಕುವೆಂಪು", "Kuvempu")
	seedWork(t, repo.DB, authorID, "Fine Row", models.WorkTypeNovel, "", `["Novel"]`)
	seedWork(t, repo.DB, authorID, "Broken Row", models.WorkTypeNovel, "", `{"oops"`)

	if _, err := repo.ListWorksByAuthor(context.Background(), authorID); err == nil {
		t.Fatalf("corrupt stored genres surfaced as a clean listing")
	}
}
