package memrepo

import (
	"cmp"
	"context"
	"slices"

	"github.com/fsdevblog/creatorbook/internal/domain"
	"github.com/fsdevblog/creatorbook/internal/repository/repoargs"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

type PackageRepository struct {
	v view
}

func (p *PackageRepository) Create(_ context.Context, args repoargs.CreatePackage) (*domain.Package, error) {
	st, done := p.v.open()
	defer done()

	now := p.v.store.now()
	pkg := domain.Package{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
		SellerID:  args.SellerID,
		Active:    true,
	}
	applyPackageFields(&pkg, args.PackageFields)
	st.packages[pkg.ID] = pkg
	return &pkg, nil
}

func (p *PackageRepository) Update(_ context.Context, args repoargs.UpdatePackage) (*domain.Package, error) {
	st, done := p.v.open()
	defer done()

	pkg, ok := st.packages[args.ID]
	if !ok {
		return nil, notFound("updating package %s", args.ID)
	}
	applyPackageFields(&pkg, args.PackageFields)
	pkg.Active = args.Active
	pkg.UpdatedAt = p.v.store.now()
	st.packages[pkg.ID] = pkg
	return &pkg, nil
}

func (p *PackageRepository) FindByID(_ context.Context, id uuid.UUID) (*domain.Package, error) {
	st, done := p.v.open()
	defer done()

	pkg, ok := st.packages[id]
	if !ok {
		return nil, notFound("finding package %s", id)
	}
	return &pkg, nil
}

// FindByIDForUpdate the store lock already serialises transactions.
func (p *PackageRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Package, error) {
	return p.FindByID(ctx, id)
}

func (p *PackageRepository) ListBySeller(_ context.Context, sellerID uuid.UUID) ([]domain.Package, error) {
	st, done := p.v.open()
	defer done()

	var result = make([]domain.Package, 0)
	for _, pkg := range st.packages {
		if pkg.SellerID == sellerID {
			result = append(result, pkg)
		}
	}
	slices.SortFunc(result, func(a, b domain.Package) int {
		return cmp.Or(b.CreatedAt.Compare(a.CreatedAt), cmp.Compare(a.ID.String(), b.ID.String()))
	})
	return result, nil
}

func (p *PackageRepository) ListPublic(_ context.Context, filter repoargs.PackageFilter) ([]domain.Package, error) {
	st, done := p.v.open()
	defer done()

	var result = make([]domain.Package, 0)
	for _, pkg := range st.packages {
		if !pkg.Active || !st.profiles[pkg.SellerID].Approved {
			continue
		}
		if filter.Service != "" && pkg.Service != filter.Service {
			continue
		}
		if filter.Tier != "" && pkg.Tier != filter.Tier {
			continue
		}
		result = append(result, pkg)
	}
	slices.SortFunc(result, func(a, b domain.Package) int {
		return cmp.Or(cmp.Compare(a.Price, b.Price), b.CreatedAt.Compare(a.CreatedAt))
	})
	return result, nil
}

func (p *PackageRepository) Delete(_ context.Context, id uuid.UUID) error {
	st, done := p.v.open()
	defer done()

	if _, ok := st.packages[id]; !ok {
		return notFound("deleting package %s", id)
	}
	if referenced(st, id) {
		return errors.Wrapf(domain.ErrConflict, "[memrepo/deleting package %s] referenced by bookings", id)
	}
	delete(st.packages, id)
	return nil
}

func (p *PackageRepository) IsReferenced(_ context.Context, id uuid.UUID) (bool, error) {
	st, done := p.v.open()
	defer done()
	return referenced(st, id), nil
}

func referenced(st *state, packageID uuid.UUID) bool {
	for _, lines := range st.lines {
		for _, line := range lines {
			if line.PackageID == packageID {
				return true
			}
		}
	}
	return false
}

func applyPackageFields(pkg *domain.Package, fields repoargs.PackageFields) {
	pkg.Service = fields.Service
	pkg.Tier = fields.Tier
	pkg.Title = fields.Title
	pkg.Price = fields.Price
	pkg.DeliveryDays = fields.DeliveryDays
	pkg.Hours = fields.Hours
	pkg.Locations = fields.Locations
	pkg.Revisions = fields.Revisions
	pkg.Includes = fields.Includes
	pkg.Addons = fields.Addons
}
