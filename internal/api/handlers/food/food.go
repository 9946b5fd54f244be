package food

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ayura/internal/api/handlers"
	foodService "ayura/internal/core/food"
)

// HandleCompatibility GET /food/compatibility?food1=&food2=
func HandleCompatibility(c *gin.Context) {
	result, err := foodService.Check(c.Query("food1"), c.Query("food2"))
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
