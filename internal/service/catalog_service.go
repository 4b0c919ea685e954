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

type CatalogService struct {
	uow         uow.UOW
	packageRepo PackageRepository
}

func NewCatalogService(u uow.UOW) (*CatalogService, error) {
	packageRepo, err := uow.GetRepositoryAs[PackageRepository](u, uow.RepositoryName(repoargs.PackageRepoName))
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return &CatalogService{
		uow:         u,
		packageRepo: packageRepo,
	}, nil
}

type UpsertPackageArgs struct {
	// ID nil creates a new package.
	ID       *uuid.UUID
	SellerID uuid.UUID
	Fields   repoargs.PackageFields
	// Active nil keeps the current flag; new packages are always active.
	Active *bool
}

// PackageRemoval tells how Remove got rid of a package.
type PackageRemoval string

const (
	PackageDeleted     PackageRemoval = "deleted"
	PackageDeactivated PackageRemoval = "deactivated"
)

func (s *CatalogService) Get(ctx context.Context, id uuid.UUID) (*domain.Package, error) {
	pkg, err := s.packageRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("getting package: %w", err)
	}
	return pkg, nil
}

func (s *CatalogService) ListBySeller(ctx context.Context, sellerID uuid.UUID) ([]domain.Package, error) {
	packages, err := s.packageRepo.ListBySeller(ctx, sellerID)
	if err != nil {
		return nil, fmt.Errorf("listing seller packages: %w", err)
	}
	return packages, nil
}

// ListPublic only active packages of approved sellers are visible.
func (s *CatalogService) ListPublic(ctx context.Context, filter repoargs.PackageFilter) ([]domain.Package, error) {
	packages, err := s.packageRepo.ListPublic(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("listing public packages: %w", err)
	}
	return packages, nil
}

// Upsert creates a package or updates one owned by args.SellerID.
func (s *CatalogService) Upsert(ctx context.Context, args UpsertPackageArgs) (*domain.Package, error) {
	fields, err := normalizePackageFields(args.Fields)
	if err != nil {
		return nil, fmt.Errorf("upserting package: %w", err)
	}

	if args.ID == nil {
		pkg, createErr := s.packageRepo.Create(ctx, repoargs.CreatePackage{PackageFields: fields, SellerID: args.SellerID})
		if createErr != nil {
			return nil, fmt.Errorf("creating package: %w", createErr)
		}
		return pkg, nil
	}

	var pkg *domain.Package
	txErr := s.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		repo, repoErr := uow.GetAs[PackageRepository](tx, uow.RepositoryName(repoargs.PackageRepoName))
		if repoErr != nil {
			return repoErr //nolint:wrapcheck
		}
		current, findErr := ownedPackage(c, repo, args.SellerID, *args.ID)
		if findErr != nil {
			return findErr
		}
		active := current.Active
		if args.Active != nil {
			active = *args.Active
		}
		var updErr error
		pkg, updErr = repo.Update(c, repoargs.UpdatePackage{PackageFields: fields, ID: current.ID, Active: active})
		return updErr //nolint:wrapcheck
	})
	if txErr != nil {
		return nil, fmt.Errorf("updating package: %w", txErr)
	}
	return pkg, nil
}

// Deactivate hides the package from the catalog and from new bookings. Existing bookings keep their price snapshot.
func (s *CatalogService) Deactivate(ctx context.Context, sellerID, packageID uuid.UUID) (*domain.Package, error) {
	var pkg *domain.Package
	txErr := s.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		repo, repoErr := uow.GetAs[PackageRepository](tx, uow.RepositoryName(repoargs.PackageRepoName))
		if repoErr != nil {
			return repoErr //nolint:wrapcheck
		}
		var err error
		pkg, err = deactivate(c, repo, sellerID, packageID)
		return err
	})
	if txErr != nil {
		return nil, fmt.Errorf("deactivating package: %w", txErr)
	}
	return pkg, nil
}

// Remove deletes a package nobody ever booked. Once a booking line references it, the package is only
// deactivated. The package row stays locked between the reference check and the delete.
func (s *CatalogService) Remove(ctx context.Context, sellerID, packageID uuid.UUID) (PackageRemoval, error) {
	var removal PackageRemoval
	txErr := s.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		repo, repoErr := uow.GetAs[PackageRepository](tx, uow.RepositoryName(repoargs.PackageRepoName))
		if repoErr != nil {
			return repoErr //nolint:wrapcheck
		}
		pkg, err := repo.FindByIDForUpdate(c, packageID)
		if err != nil {
			return err //nolint:wrapcheck
		}
		if pkg.SellerID != sellerID {
			return fmt.Errorf("package %s: %w: owned by another seller", packageID, domain.ErrForbidden)
		}
		referenced, err := repo.IsReferenced(c, packageID)
		if err != nil {
			return err //nolint:wrapcheck
		}
		if referenced {
			removal = PackageDeactivated
			_, err = deactivate(c, repo, sellerID, packageID)
			return err
		}
		removal = PackageDeleted
		return repo.Delete(c, packageID) //nolint:wrapcheck
	})
	if txErr != nil {
		return "", fmt.Errorf("removing package: %w", txErr)
	}
	return removal, nil
}

func deactivate(ctx context.Context, repo PackageRepository, sellerID, packageID uuid.UUID) (*domain.Package, error) {
	current, err := ownedPackage(ctx, repo, sellerID, packageID)
	if err != nil {
		return nil, err
	}
	if !current.Active {
		return current, nil
	}
	return repo.Update(ctx, repoargs.UpdatePackage{ //nolint:wrapcheck
		PackageFields: packageFieldsOf(current),
		ID:            current.ID,
		Active:        false,
	})
}

func ownedPackage(ctx context.Context, repo PackageRepository, sellerID, packageID uuid.UUID) (*domain.Package, error) {
	pkg, err := repo.FindByID(ctx, packageID)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	if pkg.SellerID != sellerID {
		return nil, fmt.Errorf("package %s: %w: owned by another seller", packageID, domain.ErrForbidden)
	}
	return pkg, nil
}

func normalizePackageFields(fields repoargs.PackageFields) (repoargs.PackageFields, error) {
	fields.Title = strings.TrimSpace(fields.Title)
	fields.Service = strings.TrimSpace(fields.Service)
	fields.Tier = strings.TrimSpace(fields.Tier)

	var errs []error
	if fields.Title == "" {
		errs = append(errs, domain.NewValidationError("title", "is required"))
	}
	if fields.Price < 0 {
		errs = append(errs, domain.NewValidationError("price", "must not be negative"))
	}
	if fields.Price > domain.MaxPriceCredits {
		errs = append(errs, domain.NewValidationError("price", fmt.Sprintf("must not exceed %d", domain.MaxPriceCredits)))
	}
	if fields.DeliveryDays != nil && *fields.DeliveryDays < 0 {
		errs = append(errs, domain.NewValidationError("deliveryDays", "must not be negative"))
	}
	return fields, errors.Join(errs...)
}

func packageFieldsOf(pkg *domain.Package) repoargs.PackageFields {
	return repoargs.PackageFields{
		Service:      pkg.Service,
		Tier:         pkg.Tier,
		Title:        pkg.Title,
		Price:        pkg.Price,
		DeliveryDays: pkg.DeliveryDays,
		Hours:        pkg.Hours,
		Locations:    pkg.Locations,
		Revisions:    pkg.Revisions,
		Includes:     pkg.Includes,
		Addons:       pkg.Addons,
	}
}
