package pgrepo

import (
	"context"

	"github.com/fsdevblog/creatorbook/internal/domain"
	"github.com/fsdevblog/creatorbook/internal/repository/repoargs"
	"github.com/fsdevblog/creatorbook/pkg/uow"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const profileColumns = `user_id, created_at, updated_at, email, display_name, city, bio, role, approved`

type ProfileRepository struct {
	conn uow.DBTX
}

func NewProfileRepository(conn uow.DBTX) *ProfileRepository {
	return &ProfileRepository{conn: conn}
}

func (p *ProfileRepository) Create(ctx context.Context, args repoargs.CreateProfile) (*domain.Profile, error) {
	row := p.conn.QueryRow(ctx, `
		INSERT INTO profiles (user_id, email, display_name, role)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id) DO NOTHING
		RETURNING `+profileColumns,
		args.UserID, args.Email, args.DisplayName, string(args.Role),
	)
	profile, err := scanProfile(row)
	if err != nil {
		return nil, convertInsertErr(err, "creating profile %s", args.UserID)
	}
	return profile, nil
}

func (p *ProfileRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	row := p.conn.QueryRow(ctx, `SELECT `+profileColumns+` FROM profiles WHERE user_id = $1`, userID)
	profile, err := scanProfile(row)
	if err != nil {
		return nil, convertErr(err, "finding profile %s", userID)
	}
	return profile, nil
}

func (p *ProfileRepository) Update(ctx context.Context, args repoargs.UpdateProfile) (*domain.Profile, error) {
	var role *string
	if args.Role != nil {
		r := string(*args.Role)
		role = &r
	}
	row := p.conn.QueryRow(ctx, `
		UPDATE profiles
		SET display_name = COALESCE($2, display_name),
		    city         = COALESCE($3, city),
		    bio          = COALESCE($4, bio),
		    role         = COALESCE($5, role),
		    updated_at   = now()
		WHERE user_id = $1
		RETURNING `+profileColumns,
		args.UserID, args.DisplayName, args.City, args.Bio, role,
	)
	profile, err := scanProfile(row)
	if err != nil {
		return nil, convertErr(err, "updating profile %s", args.UserID)
	}
	return profile, nil
}

func (p *ProfileRepository) SetApproved(ctx context.Context, userID uuid.UUID, approved bool) (*domain.Profile, error) {
	row := p.conn.QueryRow(ctx, `
		UPDATE profiles SET approved = $2, updated_at = now()
		WHERE user_id = $1
		RETURNING `+profileColumns,
		userID, approved,
	)
	profile, err := scanProfile(row)
	if err != nil {
		return nil, convertErr(err, "setting approved=%t for profile %s", approved, userID)
	}
	return profile, nil
}

func scanProfile(row pgx.Row) (*domain.Profile, error) {
	var p domain.Profile
	var role string
	if err := row.Scan(
		&p.UserID, &p.CreatedAt, &p.UpdatedAt, &p.Email, &p.DisplayName, &p.City, &p.Bio, &role, &p.Approved,
	); err != nil {
		return nil, err //nolint:wrapcheck
	}
	p.Role = domain.RoleType(role)
	return &p, nil
}
