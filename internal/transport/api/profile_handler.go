package api

import (
	"context"
	"net/http"

	"github.com/fsdevblog/creatorbook/internal/domain"
	"github.com/fsdevblog/creatorbook/internal/service"
	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	profileService ProfileServicer
}

func NewProfileHandler(profileService ProfileServicer) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

func (p *ProfileHandler) Show(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	profile, err := p.profileService.Get(ctx, getUserIDFromContext(c))
	if err != nil {
		abortWithErr(c, err)
		return
	}
	c.JSON(http.StatusOK, newProfileResponse(profile))
}

type updateProfileParams struct {
	DisplayName *string `json:"displayName" binding:"omitempty,notblank,max_bytes=200"`
	City        *string `json:"city" binding:"omitempty,max_bytes=200"`
	Bio         *string `json:"bio" binding:"omitempty,max_bytes=4000"`
	Role        *string `json:"role" binding:"omitempty,oneof=client creator"`
}

// Update changes only the fields present in the body.
func (p *ProfileHandler) Update(c *gin.Context) {
	var params updateProfileParams
	if !bindJSON(c, &params) {
		return
	}

	args := service.UpdateProfileArgs{
		UserID:      getUserIDFromContext(c),
		DisplayName: params.DisplayName,
		City:        params.City,
		Bio:         params.Bio,
	}
	if params.Role != nil {
		role := domain.RoleType(*params.Role)
		args.Role = &role
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	profile, err := p.profileService.Update(ctx, args)
	if err != nil {
		abortWithErr(c, err)
		return
	}
	c.JSON(http.StatusOK, newProfileResponse(profile))
}
