package service

import (
	"context"

	"github.com/fsdevblog/creatorbook/internal/domain"
	"github.com/fsdevblog/creatorbook/internal/repository/repoargs"
	"github.com/google/uuid"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

type ProfileRepository interface {
	Create(ctx context.Context, args repoargs.CreateProfile) (*domain.Profile, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (*domain.Profile, error)
	Update(ctx context.Context, args repoargs.UpdateProfile) (*domain.Profile, error)
	SetApproved(ctx context.Context, userID uuid.UUID, approved bool) (*domain.Profile, error)
}

type WalletRepository interface {
	Create(ctx context.Context, userID uuid.UUID) (*domain.Wallet, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (*domain.Wallet, error)
	Adjust(ctx context.Context, args repoargs.AdjustWallet) (*domain.Wallet, error)
	ListUserIDs(ctx context.Context, after uuid.UUID, limit uint) ([]uuid.UUID, error)
	LedgerBalance(ctx context.Context, userID uuid.UUID) (*repoargs.LedgerBalance, error)
}

type CreditsTransactionRepository interface {
	Create(ctx context.Context, args repoargs.CreditsTransactionCreate) (*domain.CreditsTransaction, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit uint) ([]domain.CreditsTransaction, error)
}

type PackageRepository interface {
	Create(ctx context.Context, args repoargs.CreatePackage) (*domain.Package, error)
	Update(ctx context.Context, args repoargs.UpdatePackage) (*domain.Package, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Package, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Package, error)
	ListBySeller(ctx context.Context, sellerID uuid.UUID) ([]domain.Package, error)
	ListPublic(ctx context.Context, filter repoargs.PackageFilter) ([]domain.Package, error)
	Delete(ctx context.Context, id uuid.UUID) error
	IsReferenced(ctx context.Context, id uuid.UUID) (bool, error)
}

type BookingRepository interface {
	Create(ctx context.Context, args repoargs.CreateBooking) (*domain.Booking, []domain.BookingLine, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
	Lines(ctx context.Context, bookingID uuid.UUID) ([]domain.BookingLine, error)
	UpdateState(ctx context.Context, args repoargs.UpdateBookingState) (*domain.Booking, error)
	ListByParticipant(ctx context.Context, userID uuid.UUID, role domain.ParticipantRole) ([]domain.Booking, error)
}

type PayoutRepository interface {
	Create(ctx context.Context, args repoargs.CreatePayout) (*domain.Payout, error)
	ListByBooking(ctx context.Context, bookingID uuid.UUID) ([]domain.Payout, error)
}

type DeliveryRepository interface {
	Create(ctx context.Context, args repoargs.CreateDelivery) (*domain.Delivery, error)
	Latest(ctx context.Context, bookingID uuid.UUID) (*domain.Delivery, error)
}

type ReviewRepository interface {
	Create(ctx context.Context, args repoargs.CreateReview) (*domain.Review, error)
	ListByBooking(ctx context.Context, bookingID uuid.UUID) ([]domain.Review, error)
	ListBySeller(ctx context.Context, sellerID uuid.UUID, limit uint) ([]domain.Review, error)
	AggregateBySeller(ctx context.Context, sellerID uuid.UUID) (*repoargs.ReviewAggregation, error)
}

type MessageRepository interface {
	Create(ctx context.Context, args repoargs.CreateMessage) (*domain.Message, error)
	ListByBooking(ctx context.Context, bookingID uuid.UUID) ([]domain.Message, error)
}
