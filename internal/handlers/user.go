package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/canonkeeper-backend/internal/services"
)

type UserHandler struct {
	svc services.UserService
}

func NewUserHandler(svc services.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// GET /api/user
func (h *UserHandler) GetMe(c *gin.Context) {
	user, err := h.svc.GetMe(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// DELETE /api/user
func (h *UserHandler) DeleteMe(c *gin.Context) {
	if err := h.svc.DeleteMe(c.Request.Context()); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": "true"})
}
