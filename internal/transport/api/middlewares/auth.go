package middlewares

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/fsdevblog/creatorbook/internal/domain"
	"github.com/fsdevblog/creatorbook/internal/transport/api/tokens"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var ErrTokenNotExist = errors.New("token not exist")

const (
	CurrentUserIDKey = "currentUserID"

	ensureProfileTimeout = 3 * time.Second
)

type ProfileEnsurer interface {
	Ensure(ctx context.Context, userID uuid.UUID, email string) (*domain.Profile, error)
}

// checkAuthorization extracts the bearer token from the Authorization header and validates it.
// Returns ErrTokenNotExist when there is no token.
func checkAuthorization(c *gin.Context, jwtTokenSecret []byte) (*tokens.UserClaims, error) {
	tokenHeader := c.GetHeader("Authorization")
	tokenStr, found := strings.CutPrefix(tokenHeader, "Bearer ")
	if !found || tokenStr == "" {
		return nil, ErrTokenNotExist
	}

	claims, err := tokens.ValidateUserJWT(tokenStr, jwtTokenSecret)
	if err != nil {
		return nil, fmt.Errorf("check authorization: %w", err)
	}
	return claims, nil
}

// AuthRequired lets through requests with a valid token and puts the user id under CurrentUserIDKey.
// The profile and wallet of the user are created on the first authorized request.
func AuthRequired(jwtTokenSecret []byte, profiles ProfileEnsurer) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := checkAuthorization(c, jwtTokenSecret)
		if errors.Is(err, ErrTokenNotExist) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		if err != nil {
			_ = c.AbortWithError(http.StatusUnauthorized, err).SetType(gin.ErrorTypePrivate)
			return
		}
		userID, err := claims.UserID()
		if err != nil {
			_ = c.AbortWithError(http.StatusUnauthorized, err).SetType(gin.ErrorTypePrivate)
			return
		}

		ctx, cancel := context.WithTimeout(c, ensureProfileTimeout)
		defer cancel()
		if _, ensureErr := profiles.Ensure(ctx, userID, claims.Email); ensureErr != nil {
			status := http.StatusInternalServerError
			if errors.Is(ensureErr, domain.ErrStorageFailure) {
				status = http.StatusServiceUnavailable
			}
			_ = c.AbortWithError(status, ensureErr).SetType(gin.ErrorTypePrivate)
			return
		}

		c.Set(CurrentUserIDKey, userID)
		c.Next()
	}
}
