package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fsdevblog/creatorbook/internal/domain"
	"github.com/fsdevblog/creatorbook/internal/repository/repoargs"
	"github.com/fsdevblog/creatorbook/pkg/uow"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	minRating = 1
	maxRating = 5

	DefaultSellerReviewsLimit uint = 20
)

type RecordsService struct {
	uow        uow.UOW
	reviewRepo ReviewRepository
	now        func() time.Time
}

func NewRecordsService(u uow.UOW) (*RecordsService, error) {
	reviewRepo, err := uow.GetRepositoryAs[ReviewRepository](u, uow.RepositoryName(repoargs.ReviewRepoName))
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return &RecordsService{
		uow:        u,
		reviewRepo: reviewRepo,
		now:        time.Now,
	}, nil
}

type AddDeliveryArgs struct {
	BookingID uuid.UUID
	SellerID  uuid.UUID
	Link      string
	Note      string
}

type AddReviewArgs struct {
	BookingID uuid.UUID
	BuyerID   uuid.UUID
	SellerID  uuid.UUID
	Rating    int32
	Text      string
}

type SellerReviews struct {
	Reviews []domain.Review
	Count   int64
	// Average rating rounded to two places, zero when there are no reviews.
	Average decimal.Decimal
}

// AddDelivery appends a delivery of a seller of the booking.
//
// From accepted and in_progress the booking moves to delivered in the same transaction. A delivered booking
// accepts more deliveries, the latest one is shown. Any other status fails with domain.ErrInvalidState.
func (s *RecordsService) AddDelivery(ctx context.Context, args AddDeliveryArgs) (*domain.Delivery, error) {
	var delivery *domain.Delivery
	txErr := s.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		bookingRepo, err := uow.GetAs[BookingRepository](tx, uow.RepositoryName(repoargs.BookingRepoName))
		if err != nil {
			return err //nolint:wrapcheck
		}
		booking, err := bookingRepo.FindByIDForUpdate(c, args.BookingID)
		if err != nil {
			return err //nolint:wrapcheck
		}
		lines, err := bookingRepo.Lines(c, args.BookingID)
		if err != nil {
			return err //nolint:wrapcheck
		}
		if actorErr := checkActor(booking, lines, args.SellerID, domain.BookingEventDeliver); actorErr != nil {
			return actorErr
		}

		switch booking.Status {
		case domain.BookingStatusDelivered:
			delivery, err = appendDelivery(c, tx, booking.ID, args.SellerID, args.Link, args.Note)
			return err
		case domain.BookingStatusAccepted, domain.BookingStatusInProgress:
			delivery, err = appendDelivery(c, tx, booking.ID, args.SellerID, args.Link, args.Note)
			if err != nil {
				return err
			}
			deliveredAt := s.now()
			_, err = bookingRepo.UpdateState(c, repoargs.UpdateBookingState{
				ID:          booking.ID,
				Status:      domain.BookingStatusDelivered,
				Funded:      booking.Funded,
				DeliveredAt: &deliveredAt,
				ApprovedAt:  booking.ApprovedAt,
				CancelledAt: booking.CancelledAt,
			})
			return err //nolint:wrapcheck
		default:
			return domain.NewTransitionError(booking.Status, domain.BookingEventDeliver)
		}
	})
	if txErr != nil {
		return nil, fmt.Errorf("adding delivery: %w", txErr)
	}
	return delivery, nil
}

// AddReview lets the buyer rate a seller of an approved booking, once per seller.
//
// Errors:
//   - domain.ErrValidation: rating outside [1,5] or the seller is not on the booking.
//   - domain.ErrForbidden: the actor is not the buyer.
//   - domain.ErrInvalidState: the booking is not approved yet.
//   - domain.ErrConflict: the seller was already reviewed for this booking.
func (s *RecordsService) AddReview(ctx context.Context, args AddReviewArgs) (*domain.Review, error) {
	if args.Rating < minRating || args.Rating > maxRating {
		return nil, fmt.Errorf("adding review: %w",
			domain.NewValidationError("rating", fmt.Sprintf("must be within [%d, %d]", minRating, maxRating)))
	}

	var review *domain.Review
	txErr := s.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		bookingRepo, err := uow.GetAs[BookingRepository](tx, uow.RepositoryName(repoargs.BookingRepoName))
		if err != nil {
			return err //nolint:wrapcheck
		}
		reviewRepo, err := uow.GetAs[ReviewRepository](tx, uow.RepositoryName(repoargs.ReviewRepoName))
		if err != nil {
			return err //nolint:wrapcheck
		}

		booking, err := bookingRepo.FindByID(c, args.BookingID)
		if err != nil {
			return err //nolint:wrapcheck
		}
		if booking.BuyerID != args.BuyerID {
			return fmt.Errorf("%w: only the buyer may review", domain.ErrForbidden)
		}
		if booking.Status != domain.BookingStatusApproved {
			return fmt.Errorf("%w: booking is %s, reviews need approved", domain.ErrInvalidState, booking.Status)
		}
		lines, err := bookingRepo.Lines(c, args.BookingID)
		if err != nil {
			return err //nolint:wrapcheck
		}
		if !domain.HasSeller(lines, args.SellerID) {
			return domain.NewValidationError("sellerId", "seller is not on the booking")
		}

		review, err = reviewRepo.Create(c, repoargs.CreateReview{
			BookingID: args.BookingID,
			SellerID:  args.SellerID,
			BuyerID:   args.BuyerID,
			Rating:    args.Rating,
			Text:      strings.TrimSpace(args.Text),
		})
		if errors.Is(err, domain.ErrDuplicateKey) {
			return fmt.Errorf("%w: seller already reviewed for this booking", domain.ErrConflict)
		}
		return err //nolint:wrapcheck
	})
	if txErr != nil {
		return nil, fmt.Errorf("adding review: %w", txErr)
	}
	return review, nil
}

// SellerReviews latest reviews of the seller with the overall count and average.
func (s *RecordsService) SellerReviews(ctx context.Context, sellerID uuid.UUID, limit uint) (*SellerReviews, error) {
	reviews, err := s.reviewRepo.ListBySeller(ctx, sellerID, limit)
	if err != nil {
		return nil, fmt.Errorf("listing seller reviews: %w", err)
	}
	agg, err := s.reviewRepo.AggregateBySeller(ctx, sellerID)
	if err != nil {
		return nil, fmt.Errorf("aggregating seller reviews: %w", err)
	}

	average := decimal.Zero
	if agg.Count > 0 {
		average = decimal.NewFromInt(agg.RatingSum).DivRound(decimal.NewFromInt(agg.Count), 2) //nolint:mnd
	}
	return &SellerReviews{
		Reviews: reviews,
		Count:   agg.Count,
		Average: average,
	}, nil
}

func appendDelivery(
	ctx context.Context,
	tx uow.TX,
	bookingID, sellerID uuid.UUID,
	link, note string,
) (*domain.Delivery, error) {
	link = strings.TrimSpace(link)
	if link == "" {
		return nil, domain.NewValidationError("link", "is required")
	}
	deliveryRepo, err := uow.GetAs[DeliveryRepository](tx, uow.RepositoryName(repoargs.DeliveryRepoName))
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return deliveryRepo.Create(ctx, repoargs.CreateDelivery{ //nolint:wrapcheck
		BookingID: bookingID,
		SellerID:  sellerID,
		Link:      link,
		Note:      strings.TrimSpace(note),
	})
}
