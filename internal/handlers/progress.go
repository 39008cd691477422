package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/canonkeeper-backend/internal/services"
)

type ProgressHandler struct {
	progressSvc     services.ProgressService
	relationshipSvc services.RelationshipService
	contentSvc      services.ContentService
}

func NewProgressHandler(progressSvc services.ProgressService, relationshipSvc services.RelationshipService, contentSvc services.ContentService) *ProgressHandler {
	return &ProgressHandler{
		progressSvc:     progressSvc,
		relationshipSvc: relationshipSvc,
		contentSvc:      contentSvc,
	}
}

// GET /api/content/:id/progress
//
// Viewable content resolves to its stored percentage; organisational content
// is derived on demand from the universe's content list and edge set.
func (h *ProgressHandler) GetContentProgress(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	contentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid content id"})
		return
	}

	content, err := h.contentSvc.GetContent(c.Request.Context(), userID, contentID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	var progress int
	if content.IsViewable {
		progress = h.progressSvc.GetUserProgress(c.Request.Context(), userID, contentID)
	} else {
		allContent, cErr := h.contentSvc.GetUniverseContent(c.Request.Context(), userID, content.UniverseID)
		if cErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": cErr.Error()})
			return
		}
		relationships, rErr := h.relationshipSvc.GetByUniverse(c.Request.Context(), content.UniverseID)
		if rErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": rErr.Error()})
			return
		}
		progress = h.progressSvc.CalculateOrganizationalProgress(c.Request.Context(), contentID, userID, allContent, relationships)
	}
	c.JSON(http.StatusOK, gin.H{"content_id": contentID, "progress": progress})
}

// PUT /api/content/:id/progress
func (h *ProgressHandler) SetContentProgress(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	contentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid content id"})
		return
	}
	var req struct {
		Progress int `json:"progress"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	content, err := h.contentSvc.GetContent(c.Request.Context(), userID, contentID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if !content.IsViewable {
		c.JSON(http.StatusBadRequest, gin.H{"error": "progress can only be tracked on viewable content"})
		return
	}

	row, err := h.progressSvc.SetUserProgress(c.Request.Context(), nil, userID, services.ProgressUpdateInput{
		ContentID:  contentID,
		UniverseID: content.UniverseID,
		Progress:   req.Progress,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"progress": row})
}

// GET /api/universes/:id/progress
func (h *ProgressHandler) GetUniverseProgress(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	universeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid universe id"})
		return
	}
	progress := h.progressSvc.GetUserProgressByUniverse(c.Request.Context(), userID, universeID)
	c.JSON(http.StatusOK, gin.H{"progress": progress})
}

// POST /api/progress/bulk
func (h *ProgressHandler) BulkUpdate(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req struct {
		Updates []services.ProgressUpdateInput `json:"updates"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.progressSvc.BulkUpdateProgress(c.Request.Context(), userID, req.Updates); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": "true"})
}

// GET /api/progress/summary
func (h *ProgressHandler) Summary(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	summary := h.progressSvc.GetProgressSummary(c.Request.Context(), userID)
	c.JSON(http.StatusOK, gin.H{"summary": summary})
}
