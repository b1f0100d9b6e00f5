package errors

import (
	"net/http"

	"market/internal/errors"
)

// Kind classifies application errors into the four failure families the
// transaction core can raise. Callers branch on the kind, not the message.
type Kind string

const (
	// KindPermissionDenied covers wrong role, wrong ownership, and
	// banned/deleted account status.
	KindPermissionDenied Kind = "permission_denied"
	// KindNotFound covers missing product/order/user/review references.
	KindNotFound Kind = "not_found"
	// KindInvalidOperation covers business-rule violations such as
	// self-purchase or reviewing an order twice.
	KindInvalidOperation Kind = "invalid_operation"
	// KindInvalidState covers lifecycle transitions attempted from a state
	// that forbids them.
	KindInvalidState Kind = "invalid_state"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Kind() Kind        // Failure family
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	kind      Kind
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, kind Kind, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		kind:      kind,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Kind returns the failure family this error belongs to
func (e *BaseError) Kind() Kind {
	return e.kind
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// Is matches errors by business error code, so detail-bearing copies made
// with WithDetails still compare equal to their sentinel via errors.Is.
func (e *BaseError) Is(target error) bool {
	var other *BaseError
	if !errors.As(target, &other) {
		return false
	}

	return e.errorCode == other.errorCode
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		kind:      e.kind,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types
var (
	// User-related errors
	ErrUserNotFound = NewBaseError(
		http.StatusNotFound,
		KindNotFound,
		"USER_NOT_FOUND",
		"找不到該使用者",
		"",
	)

	ErrUserAlreadyExists = NewBaseError(
		http.StatusConflict,
		KindInvalidOperation,
		"USER_ALREADY_EXISTS",
		"此使用者名稱或電子郵件已被註冊",
		"",
	)

	ErrInvalidCredentials = NewBaseError(
		http.StatusUnauthorized,
		KindPermissionDenied,
		"INVALID_CREDENTIALS",
		"使用者名稱或密碼錯誤",
		"",
	)

	ErrAccountSuspended = NewBaseError(
		http.StatusForbidden,
		KindPermissionDenied,
		"ACCOUNT_SUSPENDED",
		"此帳號已被停權或刪除",
		"",
	)

	// Permission errors
	ErrPermissionDenied = NewBaseError(
		http.StatusForbidden,
		KindPermissionDenied,
		"PERMISSION_DENIED",
		"沒有權限執行此操作",
		"",
	)

	ErrMissingRole = NewBaseError(
		http.StatusForbidden,
		KindPermissionDenied,
		"MISSING_ROLE",
		"此帳號缺少執行此操作所需的角色",
		"",
	)

	// Product-related errors
	ErrProductNotFound = NewBaseError(
		http.StatusNotFound,
		KindNotFound,
		"PRODUCT_NOT_FOUND",
		"找不到該商品",
		"",
	)

	ErrProductUnavailable = NewBaseError(
		http.StatusConflict,
		KindInvalidOperation,
		"PRODUCT_UNAVAILABLE",
		"商品目前無法購買",
		"",
	)

	ErrProductSold = NewBaseError(
		http.StatusConflict,
		KindInvalidOperation,
		"PRODUCT_SOLD",
		"商品已售出，無法修改",
		"",
	)

	ErrSelfPurchase = NewBaseError(
		http.StatusBadRequest,
		KindInvalidOperation,
		"SELF_PURCHASE",
		"不能購買自己的商品",
		"",
	)

	// Order-related errors
	ErrOrderNotFound = NewBaseError(
		http.StatusNotFound,
		KindNotFound,
		"ORDER_NOT_FOUND",
		"找不到該訂單",
		"",
	)

	ErrInvalidCancelReason = NewBaseError(
		http.StatusBadRequest,
		KindInvalidOperation,
		"INVALID_CANCEL_REASON",
		"取消原因長度必須在 5 到 200 字之間",
		"",
	)

	// Review-related errors
	ErrOrderNotCompleted = NewBaseError(
		http.StatusConflict,
		KindInvalidOperation,
		"ORDER_NOT_COMPLETED",
		"訂單尚未完成，無法評價",
		"",
	)

	ErrOrderAlreadyReviewed = NewBaseError(
		http.StatusConflict,
		KindInvalidOperation,
		"ORDER_ALREADY_REVIEWED",
		"此訂單已有評價",
		"",
	)

	ErrInvalidRating = NewBaseError(
		http.StatusBadRequest,
		KindInvalidOperation,
		"INVALID_RATING",
		"評分必須介於 1 到 5 之間",
		"",
	)

	// Appeal-related errors
	ErrAppealNotFound = NewBaseError(
		http.StatusNotFound,
		KindNotFound,
		"APPEAL_NOT_FOUND",
		"找不到該申訴",
		"",
	)

	ErrAppealResolved = NewBaseError(
		http.StatusConflict,
		KindInvalidOperation,
		"APPEAL_RESOLVED",
		"此申訴已處理完畢",
		"",
	)

	// Validation-related errors
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		KindInvalidOperation,
		"VALIDATION_FAILED",
		"輸入資料驗證失敗",
		"",
	)

	// General errors
	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		KindInvalidOperation,
		"INTERNAL_ERROR",
		"系統內部錯誤",
		"",
	)
)

// NewInvalidStateError reports a lifecycle transition attempted from a state
// that forbids it. The details string names the entity and the rejected edge.
func NewInvalidStateError(details string) *BaseError {
	return NewBaseError(
		http.StatusConflict,
		KindInvalidState,
		"INVALID_STATE",
		"目前狀態不允許此操作",
		details,
	)
}

// IsKind reports whether err (or anything it wraps) is an AppError of the
// given kind.
func IsKind(err error, kind Kind) bool {
	var appErr AppError
	if !errors.As(err, &appErr) {
		return false
	}

	return appErr.Kind() == kind
}
