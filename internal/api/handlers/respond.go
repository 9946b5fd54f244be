package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"ayura/internal/pkg/common"
)

// RespondError 將錯誤轉為 {code, message}，原始錯誤只寫入日誌
func RespondError(c *gin.Context, err error) {
	ce := common.AsCustomError(err)
	if errors.Is(err, context.DeadlineExceeded) && ce.Code == common.ErrCodeInternalError {
		ce = common.ErrGatewayTimeout
	}

	fields := []zap.Field{
		zap.String("code", ce.Code),
		zap.String("path", c.Request.URL.Path),
		zap.String("request_id", requestid.Get(c)),
		zap.Error(err),
	}
	if ce.Status >= http.StatusInternalServerError {
		common.LogError("request failed", fields...)
	} else {
		common.LogDebug("request rejected", fields...)
	}

	_ = c.Error(err)
	c.AbortWithStatusJSON(ce.Status, ce.Response())
}

// BindJSON 解析請求體，失敗時回應 INVALID_INPUT 並回傳 false
func BindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			RespondError(c, common.ErrTooLarge)
			return false
		}
		RespondError(c, common.WrapError(common.ErrInvalidInput, "invalid request body", err))
		return false
	}
	return true
}
