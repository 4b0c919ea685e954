package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/fsdevblog/creatorbook/internal/domain"
	"github.com/fsdevblog/creatorbook/internal/transport/api/middlewares"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

const (
	defaultListLimit uint = 50
	maxListLimit     uint = 500
)

// getUserIDFromContext returns the id set by middlewares.AuthRequired, uuid.Nil when absent.
func getUserIDFromContext(c *gin.Context) uuid.UUID {
	value, exist := c.Get(middlewares.CurrentUserIDKey)
	if !exist {
		return uuid.Nil
	}
	userID, ok := value.(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return userID
}

// uuidParam parses a path parameter. On failure the request is aborted with 400 and ok is false.
func uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		_ = c.AbortWithError(http.StatusBadRequest, errors.New(name+": invalid uuid")).SetType(gin.ErrorTypePublic)
		return uuid.Nil, false
	}
	return id, true
}

// limitQuery reads ?limit=, falling back to defaultListLimit and capped at maxListLimit.
func limitQuery(c *gin.Context) uint {
	raw := c.Query("limit")
	if raw == "" {
		return defaultListLimit
	}
	limit, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || limit == 0 {
		return defaultListLimit
	}
	return min(uint(limit), maxListLimit)
}

// bindJSON binds the body into params. Validation tag failures abort with 422, malformed bodies with 400.
func bindJSON(c *gin.Context, params any) bool {
	bindErr := c.ShouldBindJSON(params)
	if bindErr == nil {
		return true
	}
	var valErrs validator.ValidationErrors
	if errors.As(bindErr, &valErrs) {
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"error": valErrs.Error()})
		return false
	}
	_ = c.AbortWithError(http.StatusBadRequest, bindErr).SetType(gin.ErrorTypeBind)
	return false
}

// checkActorField an actor id sent in the body must be the caller.
func checkActorField(c *gin.Context, actor *uuid.UUID) bool {
	if actor != nil && *actor != getUserIDFromContext(c) {
		abortWithErr(c, errActorMismatch)
		return false
	}
	return true
}

var errActorMismatch = errors.New("actor does not match the authorized user")

// statusFromErr maps domain errors to HTTP statuses.
func statusFromErr(err error) int {
	switch {
	case errors.Is(err, errActorMismatch), errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrRecordNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidState), errors.Is(err, domain.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInsufficientFunds):
		return http.StatusPaymentRequired
	case errors.Is(err, domain.ErrStorageFailure):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// abortWithErr aborts with the status of err. Validation and transition errors are shown to the client as is,
// everything else is private and rendered with the status text.
func abortWithErr(c *gin.Context, err error) {
	status := statusFromErr(err)

	var valErr *domain.ValidationError
	var trErr *domain.TransitionError
	switch {
	case errors.As(err, &valErr):
		_ = c.AbortWithError(status, valErr).SetType(gin.ErrorTypePublic)
	case errors.As(err, &trErr):
		_ = c.AbortWithError(status, trErr).SetType(gin.ErrorTypePublic)
	default:
		_ = c.AbortWithError(status, err).SetType(gin.ErrorTypePrivate)
	}
}
