package common

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorResponse 定義 API 錯誤響應結構
type ErrorResponse struct {
	Code    string `json:"code"`    // 錯誤代碼
	Message string `json:"message"` // 錯誤信息
}

// CustomError 定義自定義錯誤類型
type CustomError struct {
	Code    string // 錯誤代碼
	Message string // 錯誤信息
	Err     error  // 原始錯誤
	Status  int    // HTTP 狀態碼
}

func (e *CustomError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap 回傳原始錯誤
func (e *CustomError) Unwrap() error {
	return e.Err
}

// Is 以錯誤代碼比對，讓 errors.Is(err, ErrInvalidInput) 可用於包裝後的錯誤
func (e *CustomError) Is(target error) bool {
	t, ok := target.(*CustomError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// Response 對外回應內容，不含原始錯誤
func (e *CustomError) Response() ErrorResponse {
	return ErrorResponse{Code: e.Code, Message: e.Message}
}

// NewError 創建新的自定義錯誤
func NewError(code string, message string, status int, err error) *CustomError {
	return &CustomError{
		Code:    code,
		Message: message,
		Status:  status,
		Err:     err,
	}
}

// WrapError 以預定義錯誤為基礎建立帶訊息與原始錯誤的新錯誤
func WrapError(base *CustomError, message string, err error) *CustomError {
	if message == "" {
		message = base.Message
	}
	return &CustomError{
		Code:    base.Code,
		Message: message,
		Status:  base.Status,
		Err:     err,
	}
}

// InvalidInput 建立 INVALID_INPUT 錯誤
func InvalidInput(message string) *CustomError {
	return WrapError(ErrInvalidInput, message, nil)
}

// AsCustomError 取出錯誤鏈中的 CustomError，找不到時回傳 ErrInternalError
func AsCustomError(err error) *CustomError {
	var ce *CustomError
	if errors.As(err, &ce) {
		return ce
	}
	return ErrInternalError
}

// 預定義錯誤代碼
const (
	// 客戶端錯誤 (4xx)
	ErrCodeInvalidInput    = "INVALID_INPUT"     // 400
	ErrCodeUnauthorized    = "UNAUTHORIZED"      // 401
	ErrCodeNotFound        = "NOT_FOUND"         // 404
	ErrCodeConflict        = "CONFLICT"          // 409
	ErrCodeTooLarge        = "PAYLOAD_TOO_LARGE" // 413
	ErrCodeTooManyRequests = "TOO_MANY_REQUESTS" // 429

	// 服務器錯誤 (5xx)
	ErrCodeInternalError      = "INTERNAL_ERROR"       // 500
	ErrCodePersistence        = "PERSISTENCE_ERROR"    // 500
	ErrCodeUpstreamFetch      = "UPSTREAM_FETCH_ERROR" // 502
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE"  // 503
	ErrCodeGatewayTimeout     = "GATEWAY_TIMEOUT"      // 504
)

// 預定義錯誤
var (
	// 客戶端錯誤
	ErrInvalidInput    = NewError(ErrCodeInvalidInput, "invalid input", http.StatusBadRequest, nil)
	ErrUnauthorized    = NewError(ErrCodeUnauthorized, "unauthorized", http.StatusUnauthorized, nil)
	ErrNotFound        = NewError(ErrCodeNotFound, "resource not found", http.StatusNotFound, nil)
	ErrConflict        = NewError(ErrCodeConflict, "resource conflict", http.StatusConflict, nil)
	ErrTooLarge        = NewError(ErrCodeTooLarge, "request body too large", http.StatusRequestEntityTooLarge, nil)
	ErrTooManyRequests = NewError(ErrCodeTooManyRequests, "too many requests", http.StatusTooManyRequests, nil)

	// 服務器錯誤
	ErrInternalError      = NewError(ErrCodeInternalError, "internal server error", http.StatusInternalServerError, nil)
	ErrPersistence        = NewError(ErrCodePersistence, "storage failure", http.StatusInternalServerError, nil)
	ErrUpstreamFetch      = NewError(ErrCodeUpstreamFetch, "recipe source unavailable", http.StatusBadGateway, nil)
	ErrServiceUnavailable = NewError(ErrCodeServiceUnavailable, "service temporarily unavailable", http.StatusServiceUnavailable, nil)
	ErrGatewayTimeout     = NewError(ErrCodeGatewayTimeout, "request timeout", http.StatusGatewayTimeout, nil)

	// 快取錯誤
	ErrCacheMiss = errors.New("cache miss")
	ErrCacheFull = NewError("CACHE_FULL", "cache is full", http.StatusServiceUnavailable, nil)
)
