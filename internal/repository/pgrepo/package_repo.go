package pgrepo

import (
	"context"

	"github.com/fsdevblog/creatorbook/internal/domain"
	"github.com/fsdevblog/creatorbook/internal/repository/repoargs"
	"github.com/fsdevblog/creatorbook/pkg/uow"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const packageColumns = `id, created_at, updated_at, seller_id, service, tier, title, price_credits, delivery_days,
	hours, locations, revisions, includes, addons, active`

type PackageRepository struct {
	conn uow.DBTX
}

func NewPackageRepository(conn uow.DBTX) *PackageRepository {
	return &PackageRepository{conn: conn}
}

func (p *PackageRepository) Create(ctx context.Context, args repoargs.CreatePackage) (*domain.Package, error) {
	id := uuid.New()
	row := p.conn.QueryRow(ctx, `
		INSERT INTO packages (id, seller_id, service, tier, title, price_credits, delivery_days,
		                      hours, locations, revisions, includes, addons)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING `+packageColumns,
		id, args.SellerID, args.Service, args.Tier, args.Title, args.Price, args.DeliveryDays,
		args.Hours, args.Locations, args.Revisions, args.Includes, args.Addons,
	)
	pkg, err := scanPackage(row)
	if err != nil {
		return nil, convertErr(err, "creating package for seller %s", args.SellerID)
	}
	return pkg, nil
}

func (p *PackageRepository) Update(ctx context.Context, args repoargs.UpdatePackage) (*domain.Package, error) {
	row := p.conn.QueryRow(ctx, `
		UPDATE packages
		SET service       = $2,
		    tier          = $3,
		    title         = $4,
		    price_credits = $5,
		    delivery_days = $6,
		    hours         = $7,
		    locations     = $8,
		    revisions     = $9,
		    includes      = $10,
		    addons        = $11,
		    active        = $12,
		    updated_at    = now()
		WHERE id = $1
		RETURNING `+packageColumns,
		args.ID, args.Service, args.Tier, args.Title, args.Price, args.DeliveryDays,
		args.Hours, args.Locations, args.Revisions, args.Includes, args.Addons, args.Active,
	)
	pkg, err := scanPackage(row)
	if err != nil {
		return nil, convertErr(err, "updating package %s", args.ID)
	}
	return pkg, nil
}

func (p *PackageRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Package, error) {
	row := p.conn.QueryRow(ctx, `SELECT `+packageColumns+` FROM packages WHERE id = $1`, id)
	pkg, err := scanPackage(row)
	if err != nil {
		return nil, convertErr(err, "finding package %s", id)
	}
	return pkg, nil
}

// FindByIDForUpdate locks the package row until the end of the transaction. A concurrent booking line insert
// waits on the lock through its foreign key check.
func (p *PackageRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Package, error) {
	row := p.conn.QueryRow(ctx, `SELECT `+packageColumns+` FROM packages WHERE id = $1 FOR UPDATE`, id)
	pkg, err := scanPackage(row)
	if err != nil {
		return nil, convertErr(err, "locking package %s", id)
	}
	return pkg, nil
}

// ListBySeller active and inactive packages, newest first.
func (p *PackageRepository) ListBySeller(ctx context.Context, sellerID uuid.UUID) ([]domain.Package, error) {
	rows, err := p.conn.Query(ctx, `
		SELECT `+packageColumns+` FROM packages
		WHERE seller_id = $1
		ORDER BY created_at DESC, id`,
		sellerID,
	)
	if err != nil {
		return nil, convertErr(err, "listing packages of seller %s", sellerID)
	}
	packages, err := collect(rows, scanPackage)
	if err != nil {
		return nil, convertErr(err, "listing packages of seller %s", sellerID)
	}
	return packages, nil
}

// ListPublic active packages of approved sellers, cheapest first. Empty filter fields match everything.
func (p *PackageRepository) ListPublic(ctx context.Context, filter repoargs.PackageFilter) ([]domain.Package, error) {
	rows, err := p.conn.Query(ctx, `
		SELECT `+prefixed("p.", packageColumns)+`
		FROM packages p
		JOIN profiles pr ON pr.user_id = p.seller_id
		WHERE p.active AND pr.approved
		  AND ($1 = '' OR p.service = $1)
		  AND ($2 = '' OR p.tier = $2)
		ORDER BY p.price_credits, p.created_at DESC`,
		filter.Service, filter.Tier,
	)
	if err != nil {
		return nil, convertErr(err, "listing public packages")
	}
	packages, err := collect(rows, scanPackage)
	if err != nil {
		return nil, convertErr(err, "listing public packages")
	}
	return packages, nil
}

func (p *PackageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := p.conn.Exec(ctx, `DELETE FROM packages WHERE id = $1`, id)
	if err != nil {
		return convertErr(err, "deleting package %s", id)
	}
	if tag.RowsAffected() == 0 {
		return convertErr(pgx.ErrNoRows, "deleting package %s", id)
	}
	return nil
}

// IsReferenced reports whether any booking line points at the package.
func (p *PackageRepository) IsReferenced(ctx context.Context, id uuid.UUID) (bool, error) {
	var referenced bool
	if err := p.conn.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM booking_lines WHERE package_id = $1)`, id,
	).Scan(&referenced); err != nil {
		return false, convertErr(err, "checking references of package %s", id)
	}
	return referenced, nil
}

func scanPackage(row pgx.Row) (*domain.Package, error) {
	var p domain.Package
	if err := row.Scan(
		&p.ID, &p.CreatedAt, &p.UpdatedAt, &p.SellerID, &p.Service, &p.Tier, &p.Title, &p.Price, &p.DeliveryDays,
		&p.Hours, &p.Locations, &p.Revisions, &p.Includes, &p.Addons, &p.Active,
	); err != nil {
		return nil, err //nolint:wrapcheck
	}
	return &p, nil
}
