package repoargs

import (
	"time"

	"github.com/fsdevblog/creatorbook/internal/domain"
	"github.com/google/uuid"
)

type CreateBookingLine struct {
	SellerID     uuid.UUID
	PackageID    uuid.UUID
	PriceCredits int64
}

type CreateBooking struct {
	BuyerID       uuid.UUID
	RequestedDate *time.Time
	Notes         string
	Lines         []CreateBookingLine
}

// TotalCredits is the checked sum of the line price snapshots.
func (c CreateBooking) TotalCredits() (int64, error) {
	var prices = make([]int64, len(c.Lines))
	for i, line := range c.Lines {
		prices[i] = line.PriceCredits
	}
	return domain.SumCredits(prices...) //nolint:wrapcheck
}

// UpdateBookingState the full mutable part of a booking; callers pass the current values for untouched fields.
type UpdateBookingState struct {
	ID          uuid.UUID
	Status      domain.BookingStatusType
	Funded      bool
	DeliveredAt *time.Time
	ApprovedAt  *time.Time
	CancelledAt *time.Time
}

type CreatePayout struct {
	BookingID uuid.UUID
	SellerID  uuid.UUID
	Amount    int64
}

type CreateDelivery struct {
	BookingID uuid.UUID
	SellerID  uuid.UUID
	Link      string
	Note      string
}

type CreateReview struct {
	BookingID uuid.UUID
	SellerID  uuid.UUID
	BuyerID   uuid.UUID
	Rating    int32
	Text      string
}

type ReviewAggregation struct {
	Count     int64
	RatingSum int64
}

type CreateMessage struct {
	BookingID uuid.UUID
	SenderID  uuid.UUID
	Body      string
}
