package middleware

import (
	"log/slog"

	deliveryctx "market/internal/delivery/context"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// RequestIDMiddleware assigns every request an ID, echoes it in the
// response header, and seeds the request context with an ID-tagged logger.
type RequestIDMiddleware struct {
	logger *slog.Logger
}

// NewRequestIDMiddleware creates a new request ID middleware
func NewRequestIDMiddleware(logger *slog.Logger) *RequestIDMiddleware {
	return &RequestIDMiddleware{logger: logger}
}

// Handle processes request ID propagation
func (m *RequestIDMiddleware) Handle(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := c.Request().Header.Get(deliveryctx.HeaderXRequestID)
		if requestID == "" {
			requestID = uuid.New().String()
		}

		deliveryctx.SetRequestID(c, requestID)
		c.Response().Header().Set(deliveryctx.HeaderXRequestID, requestID)

		reqLogger := m.logger.With(slog.String("requestID", requestID))
		ctx := deliveryctx.WithRequestID(c.Request().Context(), requestID)
		ctx = deliveryctx.WithLogger(ctx, reqLogger)
		c.SetRequest(c.Request().WithContext(ctx))

		return next(c)
	}
}
