package readinglist

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"sahityahub/internal/activity"
	"sahityahub/internal/auth"
	"sahityahub/pkg/models"
)

type Handler struct {
	Repo *Repo
	Hub  *activity.Hub
}

func NewHandler(repo *Repo, hub *activity.Hub) *Handler {
	return &Handler{Repo: repo, Hub: hub}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/reading-list", h.list)
	rg.POST("/reading-list", h.upsert)
	rg.DELETE("/reading-list/:workID", h.delete)
}

type upsertReq struct {
	WorkID int64  `json:"work_id"`
	Status string `json:"status"`
}

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
	req.Status = strings.TrimSpace(req.Status)
	if !ValidStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status must be to-read, reading or finished"})
		return
	}

	item := models.ReadingListItem{
		UserID: claims.UserID,
		WorkID: req.WorkID,
		Status: req.Status,
	}
	if err := h.Repo.Upsert(c.Request.Context(), item); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "upsert failed"})
		return
	}

	if h.Hub != nil {
		h.Hub.BroadcastJSON(activity.ReadingListEvent{
			Type:   activity.EventReadingListUpdated,
			UserID: claims.UserID,
			WorkID: req.WorkID,
			Status: req.Status,
			At:     time.Now().UTC(),
		})
	}

	c.JSON(http.StatusOK, item)
}

func (h *Handler) list(c *gin.Context) {
	claims := auth.MustGetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	status := strings.TrimSpace(c.Query("status"))
	if status != "" && !ValidStatus(status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status filter"})
		return
	}

	limit := parseInt(c.Query("limit"), 20)
	offset := parseInt(c.Query("offset"), 0)

	items, total, err := h.Repo.List(c.Request.Context(), claims.UserID, status, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total":  total,
		"limit":  limit,
		"offset": offset,
		"items":  items,
	})
}

func (h *Handler) delete(c *gin.Context) {
	claims := auth.MustGetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	workID, err := strconv.ParseInt(strings.TrimSpace(c.Param("workID")), 10, 64)
	if err != nil || workID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid work id"})
		return
	}

	ok, err := h.Repo.Delete(c.Request.Context(), claims.UserID, workID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	if h.Hub != nil {
		h.Hub.BroadcastJSON(activity.ReadingListEvent{
			Type:   activity.EventReadingListRemoved,
			UserID: claims.UserID,
			WorkID: workID,
			At:     time.Now().UTC(),
		})
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
