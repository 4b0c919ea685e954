package memrepo

import (
	"context"
	"slices"

	"github.com/fsdevblog/creatorbook/internal/domain"
	"github.com/fsdevblog/creatorbook/internal/repository/repoargs"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

type BookingRepository struct {
	v view
}

func (b *BookingRepository) Create(
	_ context.Context,
	args repoargs.CreateBooking,
) (*domain.Booking, []domain.BookingLine, error) {
	st, done := b.v.open()
	defer done()

	now := b.v.store.now()
	booking := domain.Booking{
		ID:            uuid.New(),
		CreatedAt:     now,
		UpdatedAt:     now,
		BuyerID:       args.BuyerID,
		Status:        domain.BookingStatusRequested,
		RequestedDate: args.RequestedDate,
		Notes:         args.Notes,
	}

	total, err := args.TotalCredits()
	if err != nil {
		return nil, nil, errors.Wrapf(err, "[memrepo/creating booking for buyer %s]", args.BuyerID)
	}
	booking.TotalCredits = total

	var lines = make([]domain.BookingLine, len(args.Lines))
	for i, line := range args.Lines {
		if _, ok := st.packages[line.PackageID]; !ok {
			return nil, nil, notFound("creating line %d of booking %s: package %s", i, booking.ID, line.PackageID)
		}
		lines[i] = domain.BookingLine{
			ID:           uuid.New(),
			BookingID:    booking.ID,
			Position:     int32(i), //nolint:gosec
			SellerID:     line.SellerID,
			PackageID:    line.PackageID,
			PriceCredits: line.PriceCredits,
		}
	}

	st.bookings = append(st.bookings, booking)
	st.lines[booking.ID] = lines
	return &booking, slices.Clone(lines), nil
}

func (b *BookingRepository) FindByID(_ context.Context, id uuid.UUID) (*domain.Booking, error) {
	st, done := b.v.open()
	defer done()

	i := bookingIndex(st, id)
	if i < 0 {
		return nil, notFound("finding booking %s", id)
	}
	booking := st.bookings[i]
	return &booking, nil
}

// FindByIDForUpdate the store lock already serialises transactions.
func (b *BookingRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	return b.FindByID(ctx, id)
}

func (b *BookingRepository) Lines(_ context.Context, bookingID uuid.UUID) ([]domain.BookingLine, error) {
	st, done := b.v.open()
	defer done()
	return slices.Clone(st.lines[bookingID]), nil
}

func (b *BookingRepository) UpdateState(_ context.Context, args repoargs.UpdateBookingState) (*domain.Booking, error) {
	st, done := b.v.open()
	defer done()

	if err := b.v.store.fail(OpBookingUpdateState, args.ID); err != nil {
		return nil, err
	}
	i := bookingIndex(st, args.ID)
	if i < 0 {
		return nil, notFound("updating booking %s", args.ID)
	}
	booking := st.bookings[i]
	booking.Status = args.Status
	booking.Funded = args.Funded
	booking.DeliveredAt = args.DeliveredAt
	booking.ApprovedAt = args.ApprovedAt
	booking.CancelledAt = args.CancelledAt
	booking.UpdatedAt = b.v.store.now()
	st.bookings[i] = booking
	return &booking, nil
}

// ListByParticipant newest first. An empty role matches bookings where the user is either side.
func (b *BookingRepository) ListByParticipant(
	_ context.Context,
	userID uuid.UUID,
	role domain.ParticipantRole,
) ([]domain.Booking, error) {
	switch role {
	case domain.ParticipantBuyer, domain.ParticipantSeller, "":
	default:
		return nil, errors.Errorf("unknown participant role `%s`", role)
	}

	st, done := b.v.open()
	defer done()

	var result = make([]domain.Booking, 0)
	for i := len(st.bookings) - 1; i >= 0; i-- {
		booking := st.bookings[i]
		isBuyer := booking.BuyerID == userID
		isSeller := domain.HasSeller(st.lines[booking.ID], userID)
		switch {
		case role == domain.ParticipantBuyer && isBuyer,
			role == domain.ParticipantSeller && isSeller,
			role == "" && (isBuyer || isSeller):
			result = append(result, booking)
		}
	}
	return result, nil
}

func bookingIndex(st *state, id uuid.UUID) int {
	return slices.IndexFunc(st.bookings, func(b domain.Booking) bool { return b.ID == id })
}
