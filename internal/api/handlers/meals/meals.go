package meals

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ayura/internal/api/handlers"
	"ayura/internal/api/middleware"
	mealsService "ayura/internal/core/meals"
	"ayura/internal/pkg/common"
)

// Handler 餐點推薦處理器
type Handler struct {
	service *mealsService.Service
}

// NewHandler 創建餐點推薦處理器
func NewHandler(service *mealsService.Service) *Handler {
	return &Handler{service: service}
}

// HandleList GET /meals
func (h *Handler) HandleList(c *gin.Context) {
	var f mealsService.Filter
	if err := c.ShouldBindQuery(&f); err != nil {
		handlers.RespondError(c, common.WrapError(common.ErrInvalidInput, "invalid query", err))
		return
	}

	result, err := h.service.List(c.Request.Context(), middleware.UserID(c), f)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
