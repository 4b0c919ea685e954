package memrepo

import (
	"context"

	"github.com/fsdevblog/creatorbook/internal/domain"
	"github.com/fsdevblog/creatorbook/internal/repository/repoargs"
	"github.com/google/uuid"
)

type PayoutRepository struct {
	v view
}

func (p *PayoutRepository) Create(_ context.Context, args repoargs.CreatePayout) (*domain.Payout, error) {
	st, done := p.v.open()
	defer done()

	if err := p.v.store.fail(OpPayoutCreate, args.SellerID); err != nil {
		return nil, err
	}
	for _, existing := range st.payouts {
		if existing.BookingID == args.BookingID && existing.SellerID == args.SellerID {
			return nil, duplicate("creating payout of booking %s to %s", args.BookingID, args.SellerID)
		}
	}
	payout := domain.Payout{
		BookingID: args.BookingID,
		SellerID:  args.SellerID,
		Amount:    args.Amount,
		CreatedAt: p.v.store.now(),
	}
	st.payouts = append(st.payouts, payout)
	return &payout, nil
}

func (p *PayoutRepository) ListByBooking(_ context.Context, bookingID uuid.UUID) ([]domain.Payout, error) {
	st, done := p.v.open()
	defer done()

	var result = make([]domain.Payout, 0)
	for _, payout := range st.payouts {
		if payout.BookingID == bookingID {
			result = append(result, payout)
		}
	}
	return result, nil
}

type DeliveryRepository struct {
	v view
}

func (d *DeliveryRepository) Create(_ context.Context, args repoargs.CreateDelivery) (*domain.Delivery, error) {
	st, done := d.v.open()
	defer done()

	delivery := domain.Delivery{
		ID:        uuid.New(),
		CreatedAt: d.v.store.now(),
		BookingID: args.BookingID,
		SellerID:  args.SellerID,
		Link:      args.Link,
		Note:      args.Note,
	}
	st.deliveries = append(st.deliveries, delivery)
	return &delivery, nil
}

func (d *DeliveryRepository) Latest(_ context.Context, bookingID uuid.UUID) (*domain.Delivery, error) {
	st, done := d.v.open()
	defer done()

	for i := len(st.deliveries) - 1; i >= 0; i-- {
		if st.deliveries[i].BookingID == bookingID {
			delivery := st.deliveries[i]
			return &delivery, nil
		}
	}
	return nil, notFound("finding latest delivery of booking %s", bookingID)
}

type ReviewRepository struct {
	v view
}

func (r *ReviewRepository) Create(_ context.Context, args repoargs.CreateReview) (*domain.Review, error) {
	st, done := r.v.open()
	defer done()

	for _, existing := range st.reviews {
		if existing.BookingID == args.BookingID && existing.SellerID == args.SellerID {
			return nil, duplicate("creating review of booking %s for %s", args.BookingID, args.SellerID)
		}
	}
	review := domain.Review{
		ID:        uuid.New(),
		CreatedAt: r.v.store.now(),
		BookingID: args.BookingID,
		SellerID:  args.SellerID,
		BuyerID:   args.BuyerID,
		Rating:    args.Rating,
		Text:      args.Text,
	}
	st.reviews = append(st.reviews, review)
	return &review, nil
}

func (r *ReviewRepository) ListByBooking(_ context.Context, bookingID uuid.UUID) ([]domain.Review, error) {
	st, done := r.v.open()
	defer done()

	var result = make([]domain.Review, 0)
	for _, review := range st.reviews {
		if review.BookingID == bookingID {
			result = append(result, review)
		}
	}
	return result, nil
}

// ListBySeller newest first.
func (r *ReviewRepository) ListBySeller(_ context.Context, sellerID uuid.UUID, limit uint) ([]domain.Review, error) {
	st, done := r.v.open()
	defer done()

	var result = make([]domain.Review, 0)
	for i := len(st.reviews) - 1; i >= 0; i-- {
		if st.reviews[i].SellerID == sellerID {
			result = append(result, st.reviews[i])
		}
	}
	return limited(result, limit), nil
}

func (r *ReviewRepository) AggregateBySeller(
	_ context.Context,
	sellerID uuid.UUID,
) (*repoargs.ReviewAggregation, error) {
	st, done := r.v.open()
	defer done()

	var agg repoargs.ReviewAggregation
	for _, review := range st.reviews {
		if review.SellerID == sellerID {
			agg.Count++
			agg.RatingSum += int64(review.Rating)
		}
	}
	return &agg, nil
}

type MessageRepository struct {
	v view
}

func (m *MessageRepository) Create(_ context.Context, args repoargs.CreateMessage) (*domain.Message, error) {
	st, done := m.v.open()
	defer done()

	st.nextMessageID++
	message := domain.Message{
		ID:        st.nextMessageID,
		CreatedAt: m.v.store.now(),
		BookingID: args.BookingID,
		SenderID:  args.SenderID,
		Body:      args.Body,
	}
	st.messages = append(st.messages, message)
	return &message, nil
}

// ListByBooking in creation order.
func (m *MessageRepository) ListByBooking(_ context.Context, bookingID uuid.UUID) ([]domain.Message, error) {
	st, done := m.v.open()
	defer done()

	var result = make([]domain.Message, 0)
	for _, message := range st.messages {
		if message.BookingID == bookingID {
			result = append(result, message)
		}
	}
	return result, nil
}
