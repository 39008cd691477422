package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/canonkeeper-backend/internal/services"
)

type RelationshipHandler struct {
	svc services.RelationshipService
}

func NewRelationshipHandler(svc services.RelationshipService) *RelationshipHandler {
	return &RelationshipHandler{svc: svc}
}

// POST /api/relationships
func (h *RelationshipHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req struct {
		ParentID   uuid.UUID `json:"parent_id"`
		ChildID    uuid.UUID `json:"child_id"`
		UniverseID uuid.UUID `json:"universe_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	edge, err := h.svc.Create(c.Request.Context(), nil, req.ParentID, req.ChildID, req.UniverseID, userID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"relationship": edge})
}

// DELETE /api/relationships
func (h *RelationshipHandler) Delete(c *gin.Context) {
	if _, ok := currentUserID(c); !ok {
		return
	}
	var req struct {
		ParentID uuid.UUID `json:"parent_id"`
		ChildID  uuid.UUID `json:"child_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.svc.Delete(c.Request.Context(), nil, req.ParentID, req.ChildID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": "true"})
}

// POST /api/relationships/check-cycle
func (h *RelationshipHandler) CheckCycle(c *gin.Context) {
	if _, ok := currentUserID(c); !ok {
		return
	}
	var req struct {
		ParentID uuid.UUID `json:"parent_id"`
		ChildID  uuid.UUID `json:"child_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	circular := h.svc.WouldCreateCircularDependency(c.Request.Context(), req.ParentID, req.ChildID)
	c.JSON(http.StatusOK, gin.H{"would_create_cycle": circular})
}

// GET /api/universes/:id/relationships
func (h *RelationshipHandler) ListForUniverse(c *gin.Context) {
	if _, ok := currentUserID(c); !ok {
		return
	}
	universeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid universe id"})
		return
	}
	edges, err := h.svc.GetByUniverse(c.Request.Context(), universeID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"relationships": edges})
}

// GET /api/universes/:id/hierarchy
func (h *RelationshipHandler) UniverseHierarchy(c *gin.Context) {
	if _, ok := currentUserID(c); !ok {
		return
	}
	universeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid universe id"})
		return
	}
	roots := h.svc.GetUniverseHierarchy(c.Request.Context(), universeID)
	c.JSON(http.StatusOK, gin.H{"hierarchy": roots})
}

// GET /api/content/:id/path
func (h *RelationshipHandler) ContentPath(c *gin.Context) {
	if _, ok := currentUserID(c); !ok {
		return
	}
	contentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid content id"})
		return
	}
	path := h.svc.GetContentPath(c.Request.Context(), contentID)
	c.JSON(http.StatusOK, gin.H{"path": path})
}
