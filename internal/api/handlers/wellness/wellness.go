package wellness

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ayura/internal/api/handlers"
	"ayura/internal/api/middleware"
	wellnessService "ayura/internal/core/wellness"
	"ayura/internal/pkg/common"
)

// Handler 健康紀錄處理器
type Handler struct {
	service *wellnessService.Service
}

// NewHandler 創建健康紀錄處理器
func NewHandler(service *wellnessService.Service) *Handler {
	return &Handler{service: service}
}

// HandleSave POST /logs
func (h *Handler) HandleSave(c *gin.Context) {
	var req common.WellnessLog
	if !handlers.BindJSON(c, &req) {
		return
	}

	saved, err := h.service.Save(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "log": saved})
}

// HandleList GET /logs，帶 date 時回傳單筆
func (h *Handler) HandleList(c *gin.Context) {
	userID := middleware.UserID(c)

	if date := c.Query("date"); date != "" {
		entry, err := h.service.Get(c.Request.Context(), userID, date)
		if err != nil {
			handlers.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"log": entry})
		return
	}

	logs, err := h.service.List(c.Request.Context(), userID)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"logs": logs})
}

// HandleStats GET /logs/stats?range=
func (h *Handler) HandleStats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context(), middleware.UserID(c), c.Query("range"))
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
