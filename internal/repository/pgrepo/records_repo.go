package pgrepo

import (
	"context"

	"github.com/fsdevblog/creatorbook/internal/domain"
	"github.com/fsdevblog/creatorbook/internal/repository/repoargs"
	"github.com/fsdevblog/creatorbook/pkg/uow"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type PayoutRepository struct {
	conn uow.DBTX
}

func NewPayoutRepository(conn uow.DBTX) *PayoutRepository {
	return &PayoutRepository{conn: conn}
}

// Create records that the seller was paid for the booking. The (booking, seller) pair is the idempotency key:
// a repeated payout returns domain.ErrDuplicateKey and leaves the transaction usable.
func (p *PayoutRepository) Create(ctx context.Context, args repoargs.CreatePayout) (*domain.Payout, error) {
	var payout domain.Payout
	err := p.conn.QueryRow(ctx, `
		INSERT INTO payouts (booking_id, seller_id, amount)
		VALUES ($1, $2, $3)
		ON CONFLICT (booking_id, seller_id) DO NOTHING
		RETURNING booking_id, seller_id, amount, created_at`,
		args.BookingID, args.SellerID, args.Amount,
	).Scan(&payout.BookingID, &payout.SellerID, &payout.Amount, &payout.CreatedAt)
	if err != nil {
		return nil, convertInsertErr(err, "creating payout of booking %s to %s", args.BookingID, args.SellerID)
	}
	return &payout, nil
}

func (p *PayoutRepository) ListByBooking(ctx context.Context, bookingID uuid.UUID) ([]domain.Payout, error) {
	rows, err := p.conn.Query(ctx, `
		SELECT booking_id, seller_id, amount, created_at FROM payouts
		WHERE booking_id = $1
		ORDER BY created_at, seller_id`,
		bookingID,
	)
	if err != nil {
		return nil, convertErr(err, "listing payouts of booking %s", bookingID)
	}
	payouts, err := collect(rows, func(row pgx.Row) (*domain.Payout, error) {
		var payout domain.Payout
		return &payout, row.Scan(&payout.BookingID, &payout.SellerID, &payout.Amount, &payout.CreatedAt)
	})
	if err != nil {
		return nil, convertErr(err, "listing payouts of booking %s", bookingID)
	}
	return payouts, nil
}

const deliveryColumns = `id, created_at, booking_id, seller_id, link, note`

type DeliveryRepository struct {
	conn uow.DBTX
}

func NewDeliveryRepository(conn uow.DBTX) *DeliveryRepository {
	return &DeliveryRepository{conn: conn}
}

func (d *DeliveryRepository) Create(ctx context.Context, args repoargs.CreateDelivery) (*domain.Delivery, error) {
	row := d.conn.QueryRow(ctx, `
		INSERT INTO deliveries (id, booking_id, seller_id, link, note)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+deliveryColumns,
		uuid.New(), args.BookingID, args.SellerID, args.Link, args.Note,
	)
	delivery, err := scanDelivery(row)
	if err != nil {
		return nil, convertErr(err, "creating delivery for booking %s", args.BookingID)
	}
	return delivery, nil
}

// Latest returns the most recent delivery or domain.ErrRecordNotFound.
func (d *DeliveryRepository) Latest(ctx context.Context, bookingID uuid.UUID) (*domain.Delivery, error) {
	row := d.conn.QueryRow(ctx, `
		SELECT `+deliveryColumns+` FROM deliveries
		WHERE booking_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT 1`,
		bookingID,
	)
	delivery, err := scanDelivery(row)
	if err != nil {
		return nil, convertErr(err, "finding latest delivery of booking %s", bookingID)
	}
	return delivery, nil
}

func scanDelivery(row pgx.Row) (*domain.Delivery, error) {
	var d domain.Delivery
	if err := row.Scan(&d.ID, &d.CreatedAt, &d.BookingID, &d.SellerID, &d.Link, &d.Note); err != nil {
		return nil, err //nolint:wrapcheck
	}
	return &d, nil
}

const reviewColumns = `id, created_at, booking_id, seller_id, buyer_id, rating, text`

type ReviewRepository struct {
	conn uow.DBTX
}

func NewReviewRepository(conn uow.DBTX) *ReviewRepository {
	return &ReviewRepository{conn: conn}
}

// Create returns domain.ErrDuplicateKey when the seller was already reviewed for the booking.
func (r *ReviewRepository) Create(ctx context.Context, args repoargs.CreateReview) (*domain.Review, error) {
	row := r.conn.QueryRow(ctx, `
		INSERT INTO reviews (id, booking_id, seller_id, buyer_id, rating, text)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (booking_id, seller_id) DO NOTHING
		RETURNING `+reviewColumns,
		uuid.New(), args.BookingID, args.SellerID, args.BuyerID, args.Rating, args.Text,
	)
	review, err := scanReview(row)
	if err != nil {
		return nil, convertInsertErr(err, "creating review of %s for booking %s", args.SellerID, args.BookingID)
	}
	return review, nil
}

func (r *ReviewRepository) ListByBooking(ctx context.Context, bookingID uuid.UUID) ([]domain.Review, error) {
	rows, err := r.conn.Query(ctx, `
		SELECT `+reviewColumns+` FROM reviews
		WHERE booking_id = $1
		ORDER BY created_at, id`,
		bookingID,
	)
	if err != nil {
		return nil, convertErr(err, "listing reviews of booking %s", bookingID)
	}
	reviews, err := collect(rows, scanReview)
	if err != nil {
		return nil, convertErr(err, "listing reviews of booking %s", bookingID)
	}
	return reviews, nil
}

// ListBySeller newest first.
func (r *ReviewRepository) ListBySeller(ctx context.Context, sellerID uuid.UUID, limit uint) ([]domain.Review, error) {
	safeLimit, safeLimitErr := safeConvertUintToInt32(limit)
	if safeLimitErr != nil {
		return nil, convertErr(safeLimitErr, "converting limit to int32")
	}
	rows, err := r.conn.Query(ctx, `
		SELECT `+reviewColumns+` FROM reviews
		WHERE seller_id = $1
		ORDER BY created_at DESC, id
		LIMIT $2`,
		sellerID, safeLimit,
	)
	if err != nil {
		return nil, convertErr(err, "listing reviews of seller %s", sellerID)
	}
	reviews, err := collect(rows, scanReview)
	if err != nil {
		return nil, convertErr(err, "listing reviews of seller %s", sellerID)
	}
	return reviews, nil
}

func (r *ReviewRepository) AggregateBySeller(
	ctx context.Context,
	sellerID uuid.UUID,
) (*repoargs.ReviewAggregation, error) {
	var agg repoargs.ReviewAggregation
	if err := r.conn.QueryRow(ctx,
		`SELECT COUNT(*), COALESCE(SUM(rating), 0) FROM reviews WHERE seller_id = $1`, sellerID,
	).Scan(&agg.Count, &agg.RatingSum); err != nil {
		return nil, convertErr(err, "aggregating reviews of seller %s", sellerID)
	}
	return &agg, nil
}

func scanReview(row pgx.Row) (*domain.Review, error) {
	var r domain.Review
	if err := row.Scan(&r.ID, &r.CreatedAt, &r.BookingID, &r.SellerID, &r.BuyerID, &r.Rating, &r.Text); err != nil {
		return nil, err //nolint:wrapcheck
	}
	return &r, nil
}

const messageColumns = `id, created_at, booking_id, sender_id, body`

type MessageRepository struct {
	conn uow.DBTX
}

func NewMessageRepository(conn uow.DBTX) *MessageRepository {
	return &MessageRepository{conn: conn}
}

func (m *MessageRepository) Create(ctx context.Context, args repoargs.CreateMessage) (*domain.Message, error) {
	row := m.conn.QueryRow(ctx, `
		INSERT INTO messages (booking_id, sender_id, body)
		VALUES ($1, $2, $3)
		RETURNING `+messageColumns,
		args.BookingID, args.SenderID, args.Body,
	)
	message, err := scanMessage(row)
	if err != nil {
		return nil, convertErr(err, "creating message in booking %s", args.BookingID)
	}
	return message, nil
}

// ListByBooking in creation order, ties broken by the insertion sequence.
func (m *MessageRepository) ListByBooking(ctx context.Context, bookingID uuid.UUID) ([]domain.Message, error) {
	rows, err := m.conn.Query(ctx, `
		SELECT `+messageColumns+` FROM messages
		WHERE booking_id = $1
		ORDER BY created_at, id`,
		bookingID,
	)
	if err != nil {
		return nil, convertErr(err, "listing messages of booking %s", bookingID)
	}
	messages, err := collect(rows, scanMessage)
	if err != nil {
		return nil, convertErr(err, "listing messages of booking %s", bookingID)
	}
	return messages, nil
}

func scanMessage(row pgx.Row) (*domain.Message, error) {
	var msg domain.Message
	if err := row.Scan(&msg.ID, &msg.CreatedAt, &msg.BookingID, &msg.SenderID, &msg.Body); err != nil {
		return nil, err //nolint:wrapcheck
	}
	return &msg, nil
}
