package reviews

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"sahityahub/internal/activity"
	"sahityahub/internal/auth"
	"sahityahub/internal/catalog"
)

type Handler struct {
	Repo    *Repo
	Catalog *catalog.Repo
	Users   *auth.Repo
	Hub     *activity.Hub
}

func NewHandler(repo *Repo, catalogRepo *catalog.Repo, users *auth.Repo, hub *activity.Hub) *Handler {
	return &Handler{Repo: repo, Catalog: catalogRepo, Users: users, Hub: hub}
}

func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/works/:id/reviews", h.listByWork)
	rg.GET("/profiles/:username", h.profile)
}

func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.POST("/reviews", h.upsert)
	rg.DELETE("/reviews/:id", h.delete)
}

type upsertReq struct {
	WorkID   int64  `json:"work_id"`
	Rating   int    `json:"rating"`
	Text     string `json:"text"`
	DateRead string `json:"date_read"` // YYYY-MM-DD; defaults to today
}

// upsert logs or replaces the caller's review of a work. Validation happens
// here; the repo only ever sees clean input.
func (h *Handler) upsert(c *gin.Context) {
	claims := auth.MustGetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req upsertReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	if req.WorkID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "work_id required"})
		return
	}
	if req.Rating < 1 || req.Rating > 5 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "rating must be between 1 and 5"})
		return
	}

	dateRead := strings.TrimSpace(req.DateRead)
	if dateRead == "" {
		dateRead = time.Now().Format("2006-01-02")
	} else if _, err := time.Parse("2006-01-02", dateRead); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date_read must be YYYY-MM-DD"})
		return
	}

	work, err := h.Catalog.GetWorkByID(c.Request.Context(), req.WorkID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}
	if work == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "work not found"})
		return
	}

	review, err := h.Repo.Upsert(c.Request.Context(), claims.UserID, req.WorkID, req.Rating, strings.TrimSpace(req.Text), dateRead)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "upsert failed"})
		return
	}

	if h.Hub != nil {
		h.Hub.BroadcastJSON(activity.ReviewEvent{
			Type:   activity.EventReviewLogged,
			UserID: claims.UserID,
			WorkID: req.WorkID,
			Rating: req.Rating,
			At:     time.Now().UTC(),
		})
	}

	c.JSON(http.StatusCreated, review)
}

func (h *Handler) listByWork(c *gin.Context) {
	workID, err := strconv.ParseInt(strings.TrimSpace(c.Param("id")), 10, 64)
	if err != nil || workID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid work id"})
		return
	}

	limit := parseInt(c.Query("limit"), 20)
	offset := parseInt(c.Query("offset"), 0)

	items, err := h.Repo.ListByWork(c.Request.Context(), workID, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"limit":  limit,
		"offset": offset,
		"items":  items,
	})
}

func (h *Handler) profile(c *gin.Context) {
	username := strings.TrimSpace(c.Param("username"))
	if username == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username required"})
		return
	}

	user, err := h.Users.GetByUsername(c.Request.Context(), username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	items, err := h.Repo.ListByUser(c.Request.Context(), user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
		},
		"reviews": items,
	})
}

func (h *Handler) delete(c *gin.Context) {
	claims := auth.MustGetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	id, err := strconv.ParseInt(strings.TrimSpace(c.Param("id")), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	ok, err := h.Repo.Delete(c.Request.Context(), id, claims.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

func parseInt(s string, def int) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
