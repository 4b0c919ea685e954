package memrepo

import (
	"context"

	"github.com/fsdevblog/creatorbook/internal/domain"
	"github.com/fsdevblog/creatorbook/internal/repository/repoargs"
	"github.com/google/uuid"
)

type ProfileRepository struct {
	v view
}

func (p *ProfileRepository) Create(_ context.Context, args repoargs.CreateProfile) (*domain.Profile, error) {
	st, done := p.v.open()
	defer done()

	if _, ok := st.profiles[args.UserID]; ok {
		return nil, duplicate("creating profile %s", args.UserID)
	}
	now := p.v.store.now()
	profile := domain.Profile{
		UserID:      args.UserID,
		CreatedAt:   now,
		UpdatedAt:   now,
		Email:       args.Email,
		DisplayName: args.DisplayName,
		Role:        args.Role,
	}
	st.profiles[args.UserID] = profile
	return &profile, nil
}

func (p *ProfileRepository) FindByUserID(_ context.Context, userID uuid.UUID) (*domain.Profile, error) {
	st, done := p.v.open()
	defer done()

	profile, ok := st.profiles[userID]
	if !ok {
		return nil, notFound("finding profile %s", userID)
	}
	return &profile, nil
}

func (p *ProfileRepository) Update(_ context.Context, args repoargs.UpdateProfile) (*domain.Profile, error) {
	st, done := p.v.open()
	defer done()

	profile, ok := st.profiles[args.UserID]
	if !ok {
		return nil, notFound("updating profile %s", args.UserID)
	}
	if args.DisplayName != nil {
		profile.DisplayName = *args.DisplayName
	}
	if args.City != nil {
		profile.City = *args.City
	}
	if args.Bio != nil {
		profile.Bio = *args.Bio
	}
	if args.Role != nil {
		profile.Role = *args.Role
	}
	profile.UpdatedAt = p.v.store.now()
	st.profiles[args.UserID] = profile
	return &profile, nil
}

func (p *ProfileRepository) SetApproved(_ context.Context, userID uuid.UUID, approved bool) (*domain.Profile, error) {
	st, done := p.v.open()
	defer done()

	profile, ok := st.profiles[userID]
	if !ok {
		return nil, notFound("approving profile %s", userID)
	}
	profile.Approved = approved
	profile.UpdatedAt = p.v.store.now()
	st.profiles[userID] = profile
	return &profile, nil
}
