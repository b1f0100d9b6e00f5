package handler

import (
	"log/slog"
	"net/http"

	"market/internal/delivery/http/response"
	"market/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AdminHandler holds dependencies for moderation handlers.
type AdminHandler struct {
	uc     usecase.AdminUsecase
	logger *slog.Logger
}

// NewAdminHandler is the constructor for AdminHandler, injected by Fx.
func NewAdminHandler(uc usecase.AdminUsecase, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		uc:     uc,
		logger: logger,
	}
}

// BanUser suspends the target account.
func (h *AdminHandler) BanUser(c echo.Context) error {
	adminID, err := currentUserID(c)
	if err != nil {
		return err
	}
	userID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	user, err := h.uc.BanUser(c.Request().Context(), adminID, userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, user, "User banned")
}

// UnbanUser restores the target account.
func (h *AdminHandler) UnbanUser(c echo.Context) error {
	adminID, err := currentUserID(c)
	if err != nil {
		return err
	}
	userID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	user, err := h.uc.UnbanUser(c.Request().Context(), adminID, userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, user, "User unbanned")
}

// SubmitAppeal files a reinstatement request for the authenticated (banned)
// account.
func (h *AdminHandler) SubmitAppeal(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var input *usecase.SubmitAppealInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid appeal input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	appeal, err := h.uc.SubmitAppeal(c.Request().Context(), userID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, appeal, "Appeal submitted")
}

// ListPendingAppeals returns the moderation queue.
func (h *AdminHandler) ListPendingAppeals(c echo.Context) error {
	adminID, err := currentUserID(c)
	if err != nil {
		return err
	}

	appeals, err := h.uc.ListPendingAppeals(c.Request().Context(), adminID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, appeals, "Appeals retrieved")
}

// ResolveAppeal records a ruling on an appeal.
func (h *AdminHandler) ResolveAppeal(c echo.Context) error {
	adminID, err := currentUserID(c)
	if err != nil {
		return err
	}
	appealID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var input *usecase.ResolveAppealInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid resolution input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	appeal, err := h.uc.ResolveAppeal(c.Request().Context(), adminID, appealID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, appeal, "Appeal resolved")
}
