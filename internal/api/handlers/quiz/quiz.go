package quiz

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"ayura/internal/api/handlers"
	"ayura/internal/api/middleware"
	"ayura/internal/core/dosha"
	quizService "ayura/internal/core/quiz"
	"ayura/internal/pkg/common"
)

// Answer 單題作答，points 省略時為預設權重
type Answer struct {
	Dosha  string `json:"dosha"`
	Points *int   `json:"points"`
}

// SubmitRequest 問卷提交
type SubmitRequest struct {
	Answers []Answer `json:"answers"`
}

// Handler 問卷處理器
type Handler struct {
	service *quizService.Service
}

// NewHandler 創建問卷處理器
func NewHandler(service *quizService.Service) *Handler {
	return &Handler{service: service}
}

// HandleQuestions GET /quiz/questions
func (h *Handler) HandleQuestions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"questions": h.service.Questions()})
}

// HandleSubmit POST /quiz/submit
func (h *Handler) HandleSubmit(c *gin.Context) {
	var req SubmitRequest
	if !handlers.BindJSON(c, &req) {
		return
	}
	if req.Answers == nil {
		handlers.RespondError(c, common.InvalidInput("answers are required"))
		return
	}

	answers := make([]dosha.QuizAnswer, len(req.Answers))
	for i, a := range req.Answers {
		weight := dosha.DefaultWeight
		if a.Points != nil {
			weight = *a.Points
		}
		answers[i] = dosha.QuizAnswer{Category: dosha.Dosha(a.Dosha), Weight: weight}
	}

	sub, err := h.service.Submit(c.Request.Context(), middleware.UserID(c), answers)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"doshaResult": sub.Result,
		"profile":     sub.Profile,
	})
}

// HandleResult GET /quiz/result
func (h *Handler) HandleResult(c *gin.Context) {
	current, err := h.service.Current(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, current)
}

// HandleHistory GET /quiz/history?limit=
func (h *Handler) HandleHistory(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			handlers.RespondError(c, common.InvalidInput("limit must be a non-negative integer"))
			return
		}
		limit = n
	}

	history, err := h.service.History(c.Request.Context(), middleware.UserID(c), limit)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"history": history})
}
