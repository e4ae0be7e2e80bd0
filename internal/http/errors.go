package http

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"newsdesk/internal/apperr"
)

func statusFor(kind apperr.Kind) int {
	switch kind {
	case apperr.KindValidation, apperr.KindConflict:
		return http.StatusBadRequest
	case apperr.KindAuthentication:
		return http.StatusUnauthorized
	case apperr.KindForbidden:
		return http.StatusForbidden
	case apperr.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) respondError(c *gin.Context, err error) {
	h.respondErrorStatus(c, err, 0)
}

// respondErrorStatus writes err; a non-zero status overrides the kind's default.
func (h *Handler) respondErrorStatus(c *gin.Context, err error, status int) {
	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		h.logger.WithError(err).WithField("request_id", c.GetString(requestIDKey)).Error("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal server error"})
		return
	}

	if status == 0 {
		status = statusFor(appErr.Kind)
	}
	if appErr.Kind == apperr.KindUpstream {
		c.JSON(status, gin.H{"error": appErr.Message})
		return
	}

	body := gin.H{"message": appErr.Message}
	if appErr.Field != "" {
		body["field"] = appErr.Field
	}
	c.JSON(status, body)
}

// bindError converts a gin binding failure into a validation error naming
// the offending JSON field.
func bindError(err error) *apperr.Error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		field := fe.Field()
		switch fe.Tag() {
		case "required":
			return apperr.Validation(field, field+" is required")
		case "email":
			return apperr.Validation(field, field+" must be a valid email address")
		case "max":
			return apperr.Validation(field, fmt.Sprintf("%s must be at most %s characters", field, fe.Param()))
		default:
			return apperr.Validation(field, field+" is invalid")
		}
	}
	if errors.Is(err, io.EOF) {
		return apperr.Validation("", "request body is required")
	}
	return apperr.Validation("", "request body must be valid JSON")
}
