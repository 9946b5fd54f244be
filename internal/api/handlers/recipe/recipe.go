package recipe

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ayura/internal/api/handlers"
	"ayura/internal/api/middleware"
	"ayura/internal/core/pantry"
	recipeService "ayura/internal/core/recipe"
	"ayura/internal/pkg/common"
)

// MatchRequest 以食材清單比對食譜
type MatchRequest struct {
	PantryItems []string `json:"pantryItems"`
	Synonyms    bool     `json:"synonyms"`
	Limit       int      `json:"limit"`
}

// MatchPantryRequest 以已儲存的食材庫比對食譜
type MatchPantryRequest struct {
	Synonyms bool `json:"synonyms"`
	Limit    int  `json:"limit"`
}

// ItemsRequest 加入食材
type ItemsRequest struct {
	Items []string `json:"items"`
}

// Handler 食譜比對與食材庫處理器
type Handler struct {
	recipes *recipeService.Service
	pantry  *pantry.Service
}

// NewHandler 創建處理器
func NewHandler(recipes *recipeService.Service, pantrySvc *pantry.Service) *Handler {
	return &Handler{recipes: recipes, pantry: pantrySvc}
}

// HandleMatch POST /recipes/match
func (h *Handler) HandleMatch(c *gin.Context) {
	var req MatchRequest
	if !handlers.BindJSON(c, &req) {
		return
	}
	if req.Limit < 0 {
		handlers.RespondError(c, common.InvalidInput("limit must not be negative"))
		return
	}

	h.match(c, req.PantryItems, req.Synonyms, req.Limit)
}

// HandleMatchPantry POST /pantry/match
func (h *Handler) HandleMatchPantry(c *gin.Context) {
	var req MatchPantryRequest
	if c.Request.ContentLength != 0 && !handlers.BindJSON(c, &req) {
		return
	}
	if req.Limit < 0 {
		handlers.RespondError(c, common.InvalidInput("limit must not be negative"))
		return
	}

	p, err := h.pantry.Get(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	h.match(c, p.Items, req.Synonyms, req.Limit)
}

func (h *Handler) match(c *gin.Context, items []string, synonyms bool, limit int) {
	result, err := h.recipes.Match(c.Request.Context(), recipeService.MatchRequest{
		PantryItems: items,
		Options:     pantry.MatchOptions{Synonyms: synonyms},
		Limit:       limit,
	})
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// HandleGetPantry GET /pantry
func (h *Handler) HandleGetPantry(c *gin.Context) {
	p, err := h.pantry.Get(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// HandleAddItems POST /pantry/items
func (h *Handler) HandleAddItems(c *gin.Context) {
	var req ItemsRequest
	if !handlers.BindJSON(c, &req) {
		return
	}

	p, err := h.pantry.AddItems(c.Request.Context(), middleware.UserID(c), req.Items)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// HandleRemoveItem DELETE /pantry/items/:item
func (h *Handler) HandleRemoveItem(c *gin.Context) {
	p, err := h.pantry.RemoveItem(c.Request.Context(), middleware.UserID(c), c.Param("item"))
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// HandleClearPantry DELETE /pantry
func (h *Handler) HandleClearPantry(c *gin.Context) {
	if err := h.pantry.Clear(c.Request.Context(), middleware.UserID(c)); err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// HandleSuggestions GET /pantry/suggestions
func (h *Handler) HandleSuggestions(c *gin.Context) {
	items, err := h.pantry.Suggestions(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"suggestions": items})
}
