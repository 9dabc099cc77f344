package ui

import (
	"log"
	"net/http"

	"goscores/domain/core"
	apperrors "goscores/internal/errors"

	"github.com/gin-gonic/gin"
)

// respondError writes {"error", "code"} with a status derived from the code
func respondError(c *gin.Context, err error) {
	if core.IsNotFoundError(err) && apperrors.GetCode(err) != apperrors.CodeNotFound {
		err = apperrors.NotFound("session", err)
	}

	code := apperrors.GetCode(err)
	if !apperrors.IsAppError(err) {
		code = apperrors.CodeInternalError
	}

	status := statusForCode(code)
	if status >= http.StatusInternalServerError {
		log.Printf("[Server] %s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error(), "code": code})
}

func statusForCode(code string) int {
	switch code {
	case apperrors.CodeNotFound:
		return http.StatusNotFound
	case apperrors.CodeInvalidInput:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
