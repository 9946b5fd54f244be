package profile

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ayura/internal/api/handlers"
	"ayura/internal/api/middleware"
	"ayura/internal/core/user"
	"ayura/internal/pkg/common"
)

// Handler 個人資料處理器
type Handler struct {
	service *user.Service
}

// NewHandler 創建個人資料處理器
func NewHandler(service *user.Service) *Handler {
	return &Handler{service: service}
}

// HandleGet GET /profile
func (h *Handler) HandleGet(c *gin.Context) {
	u, err := h.service.Get(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": u})
}

// HandleUpdate PUT /profile
func (h *Handler) HandleUpdate(c *gin.Context) {
	var req common.Profile
	if !handlers.BindJSON(c, &req) {
		return
	}

	u, err := h.service.UpdateProfile(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "user": u})
}
