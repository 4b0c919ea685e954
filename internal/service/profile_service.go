package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fsdevblog/creatorbook/internal/domain"
	"github.com/fsdevblog/creatorbook/internal/repository/repoargs"
	"github.com/fsdevblog/creatorbook/pkg/uow"
	"github.com/google/uuid"
)

type ProfileService struct {
	uow         uow.UOW
	profileRepo ProfileRepository
}

func NewProfileService(u uow.UOW) (*ProfileService, error) {
	profileRepo, err := uow.GetRepositoryAs[ProfileRepository](u, uow.RepositoryName(repoargs.ProfileRepoName))
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return &ProfileService{uow: u, profileRepo: profileRepo}, nil
}

type UpdateProfileArgs struct {
	UserID      uuid.UUID
	DisplayName *string
	City        *string
	Bio         *string
	Role        *domain.RoleType
}

// Ensure returns the profile of the user, creating it together with an empty wallet on first access.
func (p *ProfileService) Ensure(ctx context.Context, userID uuid.UUID, email string) (*domain.Profile, error) {
	profile, err := p.profileRepo.FindByUserID(ctx, userID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, domain.ErrRecordNotFound) {
		return nil, fmt.Errorf("ensuring profile: %w", err)
	}

	txErr := p.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		profileRepo, repoErr := uow.GetAs[ProfileRepository](tx, uow.RepositoryName(repoargs.ProfileRepoName))
		if repoErr != nil {
			return repoErr //nolint:wrapcheck
		}
		walletRepo, repoErr := uow.GetAs[WalletRepository](tx, uow.RepositoryName(repoargs.WalletRepoName))
		if repoErr != nil {
			return repoErr //nolint:wrapcheck
		}

		var createErr error
		profile, createErr = profileRepo.Create(c, repoargs.CreateProfile{
			UserID:      userID,
			Email:       email,
			DisplayName: displayNameFromEmail(email),
			Role:        domain.RoleClient,
		})
		if errors.Is(createErr, domain.ErrDuplicateKey) {
			// created by a concurrent request
			profile, createErr = profileRepo.FindByUserID(c, userID)
		}
		if createErr != nil {
			return createErr //nolint:wrapcheck
		}

		if _, walletErr := walletRepo.Create(c, userID); walletErr != nil && !errors.Is(walletErr, domain.ErrDuplicateKey) {
			return walletErr //nolint:wrapcheck
		}
		return nil
	})
	if txErr != nil {
		return nil, fmt.Errorf("ensuring profile: %w", txErr)
	}
	return profile, nil
}

func (p *ProfileService) Get(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	profile, err := p.profileRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("getting profile: %w", err)
	}
	return profile, nil
}

// Update changes the owner's profile. Role is advisory and limited to client or creator.
func (p *ProfileService) Update(ctx context.Context, args UpdateProfileArgs) (*domain.Profile, error) {
	if args.Role != nil && *args.Role != domain.RoleClient && *args.Role != domain.RoleCreator {
		return nil, fmt.Errorf("updating profile: %w", domain.NewValidationError("role", "unknown role"))
	}
	if args.DisplayName != nil {
		name := strings.TrimSpace(*args.DisplayName)
		if name == "" {
			return nil, fmt.Errorf("updating profile: %w", domain.NewValidationError("displayName", "is required"))
		}
		args.DisplayName = &name
	}

	profile, err := p.profileRepo.Update(ctx, repoargs.UpdateProfile{
		UserID:      args.UserID,
		DisplayName: args.DisplayName,
		City:        args.City,
		Bio:         args.Bio,
		Role:        args.Role,
	})
	if err != nil {
		return nil, fmt.Errorf("updating profile: %w", err)
	}
	return profile, nil
}

// SetApproved toggles the visibility of the seller in the public catalog. Operator action.
func (p *ProfileService) SetApproved(ctx context.Context, userID uuid.UUID, approved bool) (*domain.Profile, error) {
	profile, err := p.profileRepo.SetApproved(ctx, userID, approved)
	if err != nil {
		return nil, fmt.Errorf("approving profile: %w", err)
	}
	return profile, nil
}

func displayNameFromEmail(email string) string {
	local, _, _ := strings.Cut(email, "@")
	local = strings.TrimSpace(local)
	if local == "" {
		return "user"
	}
	return local
}
