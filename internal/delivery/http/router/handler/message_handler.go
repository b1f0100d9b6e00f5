package handler

import (
	"fmt"
	"log/slog"
	"net/http"

	"market/internal/delivery/http/response"
	"market/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// MessageHandler exposes the persisted inbox and a live SSE stream.
type MessageHandler struct {
	uc     usecase.NotificationUsecase
	logger *slog.Logger
}

// NewMessageHandler is the constructor for MessageHandler, injected by Fx.
func NewMessageHandler(uc usecase.NotificationUsecase, logger *slog.Logger) *MessageHandler {
	return &MessageHandler{
		uc:     uc,
		logger: logger,
	}
}

// ListMessages returns the authenticated user's persisted messages.
func (h *MessageHandler) ListMessages(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	messages, err := h.uc.ListMessages(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, messages, "Messages retrieved")
}

// chanSink bridges notifier deliveries into the SSE write loop. A pointer
// receiver keeps sink handles comparable for Unsubscribe.
type chanSink struct {
	ch chan string
}

// OnMessage hands the text to the stream loop; a full buffer drops the
// delivery rather than blocking the notifier.
func (s *chanSink) OnMessage(text string) {
	select {
	case s.ch <- text:
	default:
	}
}

// StreamMessages holds the connection open and pushes live notifications as
// server-sent events until the client disconnects.
func (h *MessageHandler) StreamMessages(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	res := c.Response()
	res.Header().Set(echo.HeaderContentType, "text/event-stream")
	res.Header().Set(echo.HeaderCacheControl, "no-cache")
	res.Header().Set(echo.HeaderConnection, "keep-alive")
	res.WriteHeader(http.StatusOK)
	res.Flush()

	sink := &chanSink{ch: make(chan string, 16)}
	h.uc.Subscribe(userID, sink)
	defer h.uc.Unsubscribe(userID, sink)

	h.logger.Debug("Message stream opened", slog.Any("userID", userID))

	ctx := c.Request().Context()
	for {
		select {
		case <-ctx.Done():
			h.logger.Debug("Message stream closed", slog.Any("userID", userID))

			return nil
		case text := <-sink.ch:
			if _, err := fmt.Fprintf(res, "data: %s\n\n", text); err != nil {
				return errors.Wrap(err, "failed to write event")
			}
			res.Flush()
		}
	}
}
