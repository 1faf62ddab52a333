package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/KANAL1234/business-erp-system-sub002/internal/apperrors"
	"github.com/KANAL1234/business-erp-system-sub002/internal/middleware"
	"github.com/gin-gonic/gin"
)

// statusForError maps service errors onto HTTP status codes. Sentinels win; otherwise an
// AppError's own code is used.
func statusForError(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrState), errors.Is(err, apperrors.ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, apperrors.ErrConfiguration):
		return http.StatusUnprocessableEntity
	}

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Code >= 400 && appErr.Code < 600 {
		return appErr.Code
	}
	return http.StatusInternalServerError
}

// respondError writes err as a JSON error body. Internal failures are logged and
// answered with fallback so storage details never leak to clients.
func respondError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	status := statusForError(err)
	if status >= http.StatusInternalServerError {
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(status, gin.H{"error": fallback})
		return
	}
	logger.Warn("Request rejected", slog.Int("status", status), slog.String("error", err.Error()))
	c.JSON(status, gin.H{"error": err.Error()})
}

// actorFromContext returns the authenticated identity or answers 401.
func actorFromContext(c *gin.Context, logger *slog.Logger) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}
	return userID, true
}
