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
)

type BookingService struct {
	uow         uow.UOW
	bookingRepo BookingRepository
	now         func() time.Time
}

func NewBookingService(u uow.UOW) (*BookingService, error) {
	bookingRepo, err := uow.GetRepositoryAs[BookingRepository](u, uow.RepositoryName(repoargs.BookingRepoName))
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return &BookingService{
		uow:         u,
		bookingRepo: bookingRepo,
		now:         time.Now,
	}, nil
}

type BookingLineArgs struct {
	SellerID  uuid.UUID
	PackageID uuid.UUID
}

type CreateBookingArgs struct {
	BuyerID       uuid.UUID
	RequestedDate *time.Time
	Notes         string
	Lines         []BookingLineArgs
}

type TransitionArgs struct {
	BookingID uuid.UUID
	ActorID   uuid.UUID
	Event     domain.BookingEventType
	// Link and Note describe the delivery of the deliver event.
	Link string
	Note string
}

type BookingWithLines struct {
	Booking domain.Booking
	Lines   []domain.BookingLine
}

type BookingDetails struct {
	Booking        domain.Booking
	Lines          []domain.BookingLine
	Messages       []domain.Message
	LatestDelivery *domain.Delivery
	Reviews        []domain.Review
	Payouts        []domain.Payout
}

// Create persists the booking and its lines in one transaction.
//
// Every line must reference an existing active package of the line's seller; the package price is copied into
// the line and never recomputed. The buyer cannot book their own packages.
//
// Errors: domain.ErrValidation, domain.ErrRecordNotFound (unknown package).
func (s *BookingService) Create(ctx context.Context, args CreateBookingArgs) (*BookingWithLines, error) {
	if len(args.Lines) == 0 {
		return nil, fmt.Errorf("creating booking: %w", domain.NewValidationError("lines", "must not be empty"))
	}

	var result BookingWithLines
	txErr := s.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		packageRepo, err := uow.GetAs[PackageRepository](tx, uow.RepositoryName(repoargs.PackageRepoName))
		if err != nil {
			return err //nolint:wrapcheck
		}
		bookingRepo, err := uow.GetAs[BookingRepository](tx, uow.RepositoryName(repoargs.BookingRepoName))
		if err != nil {
			return err //nolint:wrapcheck
		}

		var lines = make([]repoargs.CreateBookingLine, len(args.Lines))
		for i, line := range args.Lines {
			pkg, findErr := packageRepo.FindByID(c, line.PackageID)
			if findErr != nil {
				return fmt.Errorf("line %d: %w", i, findErr)
			}
			if lineErr := validateBookingLine(args.BuyerID, line, pkg); lineErr != nil {
				return fmt.Errorf("line %d: %w", i, lineErr)
			}
			lines[i] = repoargs.CreateBookingLine{
				SellerID:     line.SellerID,
				PackageID:    pkg.ID,
				PriceCredits: pkg.Price,
			}
		}

		booking, bookingLines, createErr := bookingRepo.Create(c, repoargs.CreateBooking{
			BuyerID:       args.BuyerID,
			RequestedDate: args.RequestedDate,
			Notes:         strings.TrimSpace(args.Notes),
			Lines:         lines,
		})
		if createErr != nil {
			return createErr //nolint:wrapcheck
		}
		result = BookingWithLines{Booking: *booking, Lines: bookingLines}
		return nil
	})
	if txErr != nil {
		return nil, fmt.Errorf("creating booking: %w", txErr)
	}
	return &result, nil
}

func validateBookingLine(buyerID uuid.UUID, line BookingLineArgs, pkg *domain.Package) error {
	switch {
	case pkg.SellerID != line.SellerID:
		return domain.NewValidationError("sellerId", "package belongs to another seller")
	case !pkg.Active:
		return domain.NewValidationError("packageId", "package is not active")
	case line.SellerID == buyerID:
		return domain.NewValidationError("sellerId", "cannot book own package")
	default:
		return nil
	}
}

// Get returns the booking with everything attached to it. Only the buyer and the sellers of the booking may see it.
func (s *BookingService) Get(ctx context.Context, bookingID, viewerID uuid.UUID) (*BookingDetails, error) {
	var details BookingDetails
	txErr := s.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		bookingRepo, err := uow.GetAs[BookingRepository](tx, uow.RepositoryName(repoargs.BookingRepoName))
		if err != nil {
			return err //nolint:wrapcheck
		}
		messageRepo, err := uow.GetAs[MessageRepository](tx, uow.RepositoryName(repoargs.MessageRepoName))
		if err != nil {
			return err //nolint:wrapcheck
		}
		deliveryRepo, err := uow.GetAs[DeliveryRepository](tx, uow.RepositoryName(repoargs.DeliveryRepoName))
		if err != nil {
			return err //nolint:wrapcheck
		}
		reviewRepo, err := uow.GetAs[ReviewRepository](tx, uow.RepositoryName(repoargs.ReviewRepoName))
		if err != nil {
			return err //nolint:wrapcheck
		}
		payoutRepo, err := uow.GetAs[PayoutRepository](tx, uow.RepositoryName(repoargs.PayoutRepoName))
		if err != nil {
			return err //nolint:wrapcheck
		}

		booking, err := bookingRepo.FindByID(c, bookingID)
		if err != nil {
			return err //nolint:wrapcheck
		}
		lines, err := bookingRepo.Lines(c, bookingID)
		if err != nil {
			return err //nolint:wrapcheck
		}
		if _, ok := domain.RoleOf(booking, lines, viewerID); !ok {
			return fmt.Errorf("%w: not a participant of booking %s", domain.ErrForbidden, bookingID)
		}

		messages, err := messageRepo.ListByBooking(c, bookingID)
		if err != nil {
			return err //nolint:wrapcheck
		}
		delivery, err := deliveryRepo.Latest(c, bookingID)
		if err != nil && !errors.Is(err, domain.ErrRecordNotFound) {
			return err //nolint:wrapcheck
		}
		reviews, err := reviewRepo.ListByBooking(c, bookingID)
		if err != nil {
			return err //nolint:wrapcheck
		}
		payouts, err := payoutRepo.ListByBooking(c, bookingID)
		if err != nil {
			return err //nolint:wrapcheck
		}

		details = BookingDetails{
			Booking:        *booking,
			Lines:          lines,
			Messages:       messages,
			LatestDelivery: delivery,
			Reviews:        reviews,
			Payouts:        payouts,
		}
		return nil
	})
	if txErr != nil {
		return nil, fmt.Errorf("getting booking: %w", txErr)
	}
	return &details, nil
}

// ListMine bookings of the user, newest first. An empty role lists both sides.
func (s *BookingService) ListMine(
	ctx context.Context,
	userID uuid.UUID,
	role domain.ParticipantRole,
) ([]domain.Booking, error) {
	bookings, err := s.bookingRepo.ListByParticipant(ctx, userID, role)
	if err != nil {
		return nil, fmt.Errorf("listing bookings: %w", err)
	}
	return bookings, nil
}

// Transition applies a lifecycle event to the booking.
//
// The booking row stays locked for the whole transaction, so concurrent events on the same booking are applied
// one after another. Wallet side effects (escrow hold, refund, payouts) commit together with the new status or
// not at all.
//
// Re-entry:
//   - hold on a funded booking changes nothing and succeeds.
//   - approve on an approved booking re-runs the payout fan-out, which skips sellers that were already paid.
//
// Errors: domain.ErrRecordNotFound, domain.ErrForbidden (wrong side), domain.ErrInvalidState (*domain.TransitionError),
// domain.ErrInsufficientFunds, domain.ErrValidation.
func (s *BookingService) Transition(ctx context.Context, args TransitionArgs) (*domain.Booking, error) {
	var booking *domain.Booking
	txErr := s.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		var err error
		booking, err = s.transition(c, tx, args)
		return err
	})
	if txErr != nil {
		return nil, fmt.Errorf("booking transition `%s`: %w", args.Event, txErr)
	}
	return booking, nil
}

func (s *BookingService) transition(ctx context.Context, tx uow.TX, args TransitionArgs) (*domain.Booking, error) {
	bookingRepo, err := uow.GetAs[BookingRepository](tx, uow.RepositoryName(repoargs.BookingRepoName))
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	booking, err := bookingRepo.FindByIDForUpdate(ctx, args.BookingID)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	lines, err := bookingRepo.Lines(ctx, args.BookingID)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	if roleErr := checkActor(booking, lines, args.ActorID, args.Event); roleErr != nil {
		return nil, roleErr
	}

	// a repeated hold on a funded booking is a no-op, except after cancel: the escrow went back to the buyer.
	switch {
	case args.Event == domain.BookingEventHold && booking.Funded && booking.Status != domain.BookingStatusCancelled:
		return booking, nil
	case args.Event == domain.BookingEventApprove && booking.Status == domain.BookingStatusApproved:
		if payErr := payout(ctx, tx, booking, lines); payErr != nil {
			return nil, payErr
		}
		return booking, nil
	}

	next, err := domain.NextStatus(booking.Status, args.Event)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	state := repoargs.UpdateBookingState{
		ID:          booking.ID,
		Status:      next,
		Funded:      booking.Funded,
		DeliveredAt: booking.DeliveredAt,
		ApprovedAt:  booking.ApprovedAt,
		CancelledAt: booking.CancelledAt,
	}
	now := s.now()

	switch args.Event {
	case domain.BookingEventHold:
		if booking.TotalCredits > 0 {
			if _, err = adjustWallet(ctx, tx, AdjustArgs{
				UserID:    booking.BuyerID,
				Delta:     -booking.TotalCredits,
				Kind:      domain.KindHold,
				BookingID: &booking.ID,
				Note:      noteEscrowHold,
			}); err != nil {
				return nil, err
			}
		}
		state.Funded = true
	case domain.BookingEventDeliver:
		if _, err = appendDelivery(ctx, tx, booking.ID, args.ActorID, args.Link, args.Note); err != nil {
			return nil, err
		}
		state.DeliveredAt = &now
	case domain.BookingEventApprove:
		state.ApprovedAt = &now
		if err = payout(ctx, tx, booking, lines); err != nil {
			return nil, err
		}
	case domain.BookingEventCancel:
		if booking.Funded && booking.TotalCredits > 0 {
			if _, err = adjustWallet(ctx, tx, AdjustArgs{
				UserID:    booking.BuyerID,
				Delta:     booking.TotalCredits,
				Kind:      domain.KindRefund,
				BookingID: &booking.ID,
				Note:      noteEscrowRefund,
			}); err != nil {
				return nil, err
			}
		}
		state.CancelledAt = &now
	case domain.BookingEventAccept, domain.BookingEventDecline, domain.BookingEventStart:
	}

	return bookingRepo.UpdateState(ctx, state) //nolint:wrapcheck
}

// checkActor the actor must be on the side of the booking that owns the event.
func checkActor(booking *domain.Booking, lines []domain.BookingLine, actorID uuid.UUID, event domain.BookingEventType) error {
	role, ok := domain.RoleOf(booking, lines, actorID)
	if !ok {
		return fmt.Errorf("%w: not a participant of booking %s", domain.ErrForbidden, booking.ID)
	}
	if want := domain.EventActor(event); role != want {
		return fmt.Errorf("%w: event `%s` is reserved to the %s", domain.ErrForbidden, event, want)
	}
	return nil
}

// payout credits every seller of the booking with the sum of their lines. The payout record of a (booking, seller)
// pair is written before the credit, a seller that already has one is skipped. Unfunded bookings pay nothing,
// escrow was never taken.
func payout(ctx context.Context, tx uow.TX, booking *domain.Booking, lines []domain.BookingLine) error {
	if !booking.Funded {
		return nil
	}
	payoutRepo, err := uow.GetAs[PayoutRepository](tx, uow.RepositoryName(repoargs.PayoutRepoName))
	if err != nil {
		return err //nolint:wrapcheck
	}

	for _, sp := range domain.PayoutsFor(lines) {
		_, createErr := payoutRepo.Create(ctx, repoargs.CreatePayout{
			BookingID: booking.ID,
			SellerID:  sp.SellerID,
			Amount:    sp.Amount,
		})
		if errors.Is(createErr, domain.ErrDuplicateKey) {
			continue
		}
		if createErr != nil {
			return createErr //nolint:wrapcheck
		}
		if sp.Amount == 0 {
			continue
		}
		if _, adjErr := adjustWallet(ctx, tx, AdjustArgs{
			UserID:    sp.SellerID,
			Delta:     sp.Amount,
			Kind:      domain.KindPayoutCredit,
			BookingID: &booking.ID,
			Note:      notePayout,
		}); adjErr != nil {
			return fmt.Errorf("paying seller %s: %w", sp.SellerID, adjErr)
		}
	}
	return nil
}
