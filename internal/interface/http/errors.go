package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/giftlink/internal/application"
	"github.com/oksasatya/giftlink/pkg/helpers"
	"github.com/oksasatya/giftlink/pkg/response"
	"github.com/oksasatya/giftlink/pkg/validation"
)

// respondError maps service errors onto HTTP statuses and writes the error envelope.
func respondError(c *gin.Context, logger *logrus.Logger, err error) {
	var ve *application.ValidationError
	switch {
	case errors.As(err, &ve):
		response.Abort(c, http.StatusBadRequest, "validation failed", ve.Violations)
	case errors.Is(err, application.ErrDuplicateUser):
		response.Abort(c, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, application.ErrUserNotFound),
		errors.Is(err, application.ErrGiftNotFound),
		errors.Is(err, application.ErrNoGifts):
		response.Abort(c, http.StatusNotFound, err.Error(), nil)
	case errors.Is(err, application.ErrInvalidCredentials):
		response.Abort(c, http.StatusUnauthorized, err.Error(), nil)
	case errors.Is(err, application.ErrForbidden):
		response.Abort(c, http.StatusForbidden, err.Error(), nil)
	case errors.Is(err, application.ErrSearchUnavailable),
		errors.Is(err, application.ErrStorageUnavailable):
		response.Abort(c, http.StatusServiceUnavailable, err.Error(), nil)
	case errors.Is(err, application.ErrUpdateFailed):
		response.Abort(c, http.StatusInternalServerError, err.Error(), nil)
	default:
		helpers.LogError(logger, "request failed", err, logrus.Fields{
			"path":       c.FullPath(),
			"request_id": c.GetString("request_id"),
		})
		response.Abort(c, http.StatusInternalServerError, "internal server error", nil)
	}
}

// invalidPayload reports a body that could not be decoded.
func invalidPayload(c *gin.Context, err error) {
	response.Abort(c, http.StatusBadRequest, "invalid payload", validation.Violations(err))
}
