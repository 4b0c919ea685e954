package repoargs

import (
	"github.com/fsdevblog/creatorbook/internal/domain"
	"github.com/google/uuid"
)

type CreateProfile struct {
	UserID      uuid.UUID
	Email       string
	DisplayName string
	Role        domain.RoleType
}

// UpdateProfile nil fields are left untouched.
type UpdateProfile struct {
	UserID      uuid.UUID
	DisplayName *string
	City        *string
	Bio         *string
	Role        *domain.RoleType
}
