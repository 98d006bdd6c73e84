package catalog

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	Repo *Repo
}

func NewHandler(repo *Repo) *Handler {
	return &Handler{Repo: repo}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/popular", h.popular)
	rg.GET("/search", h.search)
	rg.GET("/search/autocomplete", h.autocomplete)
	rg.GET("/genres/:genre", h.browseGenre)
	rg.GET("/authors/:id", h.authorByID)
	rg.GET("/works/:id", h.workByID)
}

func (h *Handler) popular(c *gin.Context) {
	works, err := h.Repo.PopularThisWeek(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "popular failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": works})
}

func (h *Handler) autocomplete(c *gin.Context) {
	suggestions, err := h.Repo.Autocomplete(c.Request.Context(), c.Query("q"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "autocomplete failed"})
		return
	}
	c.JSON(http.StatusOK, suggestions)
}

func (h *Handler) search(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))

	authors, works, err := h.Repo.Search(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "search failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"query":   query,
		"authors": authors,
		"works":   works,
	})
}

func (h *Handler) browseGenre(c *gin.Context) {
	genre := strings.TrimSpace(c.Param("genre"))
	if genre == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "genre required"})
		return
	}

	works, err := h.Repo.BrowseGenre(c.Request.Context(), genre)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "genre browse failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"genre": genre,
		"items": works,
	})
}

func (h *Handler) authorByID(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	author, err := h.Repo.GetAuthorByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "get failed"})
		return
	}
	if author == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	works, err := h.Repo.ListWorksByAuthor(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list works failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"author": author,
		"works":  works,
	})
}

func (h *Handler) workByID(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	work, err := h.Repo.GetWorkByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "get failed"})
		return
	}
	if work == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusOK, work)
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, strconv.ErrSyntax
	}
	return id, nil
}
