package api

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"github.com/fsdevblog/creatorbook/internal/domain"
	"github.com/fsdevblog/creatorbook/internal/repository/repoargs"
	"github.com/fsdevblog/creatorbook/internal/service"
	"github.com/google/uuid"
)

type ProfileServicer interface {
	Ensure(ctx context.Context, userID uuid.UUID, email string) (*domain.Profile, error)
	Get(ctx context.Context, userID uuid.UUID) (*domain.Profile, error)
	Update(ctx context.Context, args service.UpdateProfileArgs) (*domain.Profile, error)
}

type WalletServicer interface {
	GetBalance(ctx context.Context, userID uuid.UUID) (*domain.Wallet, error)
	Transactions(ctx context.Context, userID uuid.UUID, limit uint) ([]domain.CreditsTransaction, error)
	DemoTopUp(ctx context.Context, userID uuid.UUID, amount int64) (*domain.Wallet, error)
	CreditFromPayment(ctx context.Context, userID uuid.UUID, credits int64, sessionID string) (*domain.Wallet, bool, error)
}

type CatalogServicer interface {
	ListPublic(ctx context.Context, filter repoargs.PackageFilter) ([]domain.Package, error)
	ListBySeller(ctx context.Context, sellerID uuid.UUID) ([]domain.Package, error)
	Upsert(ctx context.Context, args service.UpsertPackageArgs) (*domain.Package, error)
	Deactivate(ctx context.Context, sellerID, packageID uuid.UUID) (*domain.Package, error)
	Remove(ctx context.Context, sellerID, packageID uuid.UUID) (service.PackageRemoval, error)
}

type BookingServicer interface {
	Create(ctx context.Context, args service.CreateBookingArgs) (*service.BookingWithLines, error)
	Get(ctx context.Context, bookingID, viewerID uuid.UUID) (*service.BookingDetails, error)
	ListMine(ctx context.Context, userID uuid.UUID, role domain.ParticipantRole) ([]domain.Booking, error)
	Transition(ctx context.Context, args service.TransitionArgs) (*domain.Booking, error)
}

type RecordsServicer interface {
	AddDelivery(ctx context.Context, args service.AddDeliveryArgs) (*domain.Delivery, error)
	AddReview(ctx context.Context, args service.AddReviewArgs) (*domain.Review, error)
	SellerReviews(ctx context.Context, sellerID uuid.UUID, limit uint) (*service.SellerReviews, error)
}

type MessageServicer interface {
	Post(ctx context.Context, bookingID, senderID uuid.UUID, body string) (*domain.Message, error)
	List(ctx context.Context, bookingID, viewerID uuid.UUID) ([]domain.Message, error)
}

// Pinger reports whether the storage is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}
