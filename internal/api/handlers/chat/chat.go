package chat

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ayura/internal/api/handlers"
	"ayura/internal/api/middleware"
	chatService "ayura/internal/core/chat"
)

// SendRequest 送出訊息；dosha 與健康目標由伺服器端使用者資料提供
type SendRequest struct {
	Message string                    `json:"message"`
	Context chatService.RecentMetrics `json:"context"`
}

// Handler 對話處理器
type Handler struct {
	service *chatService.Service
}

// NewHandler 創建對話處理器
func NewHandler(service *chatService.Service) *Handler {
	return &Handler{service: service}
}

// HandleSend POST /chat
func (h *Handler) HandleSend(c *gin.Context) {
	var req SendRequest
	if !handlers.BindJSON(c, &req) {
		return
	}

	reply, err := h.service.Send(c.Request.Context(), middleware.UserID(c), req.Message, req.Context)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reply)
}

// HandleHistory GET /chat
func (h *Handler) HandleHistory(c *gin.Context) {
	msgs, err := h.service.History(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": msgs})
}
