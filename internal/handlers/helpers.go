package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"go-ferreteria-pos/internal/apperr"
	"go-ferreteria-pos/internal/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// respondError maps a taxonomy error onto its HTTP status with a
// machine-readable body. Unexpected errors are logged and become 500s
// without leaking internals.
func respondError(c *gin.Context, err error) {
	status := apperr.Status(err)
	if status == http.StatusInternalServerError {
		logger.Get().Error("unhandled error",
			zap.String("request_id", c.GetString("requestID")),
			zap.Error(err))
		c.JSON(status, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// parseID reads the :id route param.
func parseID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, apperr.Validationf("invalid id %q", c.Param("id"))
	}
	return uint(id), nil
}

// storeError translates gorm errors into the taxonomy: duplicate unique
// fields are validation failures, missing rows are not-found.
func storeError(err error, what string) error {
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apperr.Validationf("%s violates a unique constraint", what)
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperr.NotFoundf("%s not found", what)
	default:
		return err
	}
}

// currentUserID returns the authenticated user's ID set by the auth
// middleware.
func currentUserID(c *gin.Context) *uint {
	if v, ok := c.Get("userID"); ok {
		if id, ok := v.(uint); ok {
			return &id
		}
	}
	return nil
}
