package auth

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	_ "github.com/mattn/go-sqlite3"

	"sahityahub/pkg/database"
)

func newAuthTestRepo(t *testing.T) *Repo {
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

func protectedRouter(tokens TokenService, repo *Repo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", AuthMiddleware(tokens, repo), func(c *gin.Context) {
		claims := MustGetClaims(c)
		c.JSON(http.StatusOK, gin.H{"id": claims.UserID})
	})
	return r
}

func TestBearerToken(t *testing.T) {
	cases := []struct {
		name   string
		header string
		want   string
		ok     bool
	}{
		{"plain", "Bearer abc.def.ghi", "abc.def.ghi", true},
		{"lowercase scheme", "bearer abc", "abc", true},
		{"mixed case scheme", "BeArEr abc", "abc", true},
		{"padded token", "Bearer   abc  ", "abc", true},
		{"empty header", "", "", false},
		{"wrong scheme", "Basic abc", "", false},
		{"scheme only", "Bearer ", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := bearerToken(tc.header)
			if ok != tc.ok || got != tc.want {
				t.Fatalf("bearerToken(%q) = (%q, %v), want (%q, %v)", tc.header, got, ok, tc.want, tc.ok)
			}
		})
	}
}

func TestAuthMiddleware(t *testing.T) {
	repo := newAuthTestRepo(t)
	tokens := testTokenService()
	router := protectedRouter(tokens, repo)

	u := User{ID: "user-1", Username: "reader", Email: "reader@example.com", PasswordHash: "x"}
	if err := repo.CreateUser(context.Background(), u); err != nil {
		t.Fatalf("create user: %v", err)
	}
	token, _, err := tokens.Sign(&u)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("valid token got %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("missing header got %d, want 401", rec.Code)
	}
}

func TestAuthMiddlewareRejectsStaleTokenVersion(t *testing.T) {
	repo := newAuthTestRepo(t)
	tokens := testTokenService()
	router := protectedRouter(tokens, repo)
	ctx := context.Background()

	u := User{ID: "user-1", Username: "reader", Email: "reader@example.com", PasswordHash: "x"}
	if err := repo.CreateUser(ctx, u); err != nil {
		t.Fatalf("create user: %v", err)
	}
	token, _, err := tokens.Sign(&u)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	// Logout bumps the stored version; the old token must stop working.
	if err := repo.BumpTokenVersion(ctx, u.ID); err != nil {
		t.Fatalf("bump: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("stale token got %d, want 401", rec.Code)
	}
}
