package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "spendwise/internal/errors"
	"spendwise/internal/logger"
)

// parsePathID parses a uint path parameter.
// Returns a validation error if the parameter is not a positive integer.
func parsePathID(c *gin.Context, param string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(param), 10, 32)
	if err != nil {
		return 0, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid "+param)
	}
	return uint(id), nil
}

// respondOK writes a mutation success body in the service's standard
// {status, message, id} shape. A zero id is omitted.
func respondOK(c *gin.Context, statusCode int, message string, id uint) {
	body := gin.H{"status": "ok", "message": message}
	if id != 0 {
		body["id"] = id
	}
	c.JSON(statusCode, body)
}

// respondWithError writes a consistent JSON error body. If the error is
// an *AppError it uses the error's status code, code, and message.
// Otherwise it logs the unexpected error and returns a generic internal
// server error. Error bodies always carry status "error" so callers never
// see a bare protocol fault.
func respondWithError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Internal != nil {
			logger.Get().Errorw("app error",
				"code", appErr.Code,
				"internal", appErr.Internal.Error(),
				"path", c.Request.URL.Path,
			)
		}
		c.JSON(appErr.StatusCode, gin.H{
			"status":  "error",
			"code":    appErr.Code,
			"message": appErr.Message,
		})
		return
	}

	logger.Get().Errorw("unexpected error",
		"error", err.Error(),
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
	)
	c.JSON(http.StatusInternalServerError, gin.H{
		"status":  "error",
		"code":    apperrors.ErrInternalServer.Code,
		"message": apperrors.ErrInternalServer.Message,
	})
}
