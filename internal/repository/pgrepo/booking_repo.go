package pgrepo

import (
	"context"

	"github.com/fsdevblog/creatorbook/internal/domain"
	"github.com/fsdevblog/creatorbook/internal/repository/repoargs"
	"github.com/fsdevblog/creatorbook/pkg/uow"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
)

const bookingColumns = `id, created_at, updated_at, buyer_id, status, requested_date, notes, total_credits, funded,
	delivered_at, approved_at, cancelled_at`

const bookingLineColumns = `id, booking_id, position, seller_id, package_id, price_credits`

type BookingRepository struct {
	conn uow.DBTX
}

func NewBookingRepository(conn uow.DBTX) *BookingRepository {
	return &BookingRepository{conn: conn}
}

// Create inserts the booking in status requested and its lines in one batch. total_credits is the sum of the
// line price snapshots. Must run inside a transaction to be atomic.
func (b *BookingRepository) Create(
	ctx context.Context,
	args repoargs.CreateBooking,
) (*domain.Booking, []domain.BookingLine, error) {
	bookingID := uuid.New()

	total, err := args.TotalCredits()
	if err != nil {
		return nil, nil, errors.Wrapf(err, "[repository/creating booking for buyer %s]", args.BuyerID)
	}

	row := b.conn.QueryRow(ctx, `
		INSERT INTO bookings (id, buyer_id, status, requested_date, notes, total_credits)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+bookingColumns,
		bookingID, args.BuyerID, string(domain.BookingStatusRequested), args.RequestedDate, args.Notes, total,
	)
	booking, scanErr := scanBooking(row)
	if scanErr != nil {
		return nil, nil, convertErr(scanErr, "creating booking for buyer %s", args.BuyerID)
	}

	batch := new(pgx.Batch)
	for i, line := range args.Lines {
		batch.Queue(`
			INSERT INTO booking_lines (id, booking_id, position, seller_id, package_id, price_credits)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING `+bookingLineColumns,
			uuid.New(), bookingID, int32(i), line.SellerID, line.PackageID, line.PriceCredits, //nolint:gosec
		)
	}
	results := b.conn.SendBatch(ctx, batch)

	var lines = make([]domain.BookingLine, 0, len(args.Lines))
	for range args.Lines {
		line, lineErr := scanBookingLine(results.QueryRow())
		if lineErr != nil {
			_ = results.Close()
			return nil, nil, convertErr(lineErr, "creating lines of booking %s", bookingID)
		}
		lines = append(lines, *line)
	}
	if closeErr := results.Close(); closeErr != nil {
		return nil, nil, convertErr(closeErr, "creating lines of booking %s", bookingID)
	}
	return booking, lines, nil
}

func (b *BookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	row := b.conn.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, id)
	booking, err := scanBooking(row)
	if err != nil {
		return nil, convertErr(err, "finding booking %s", id)
	}
	return booking, nil
}

// FindByIDForUpdate locks the booking row until the end of the transaction.
func (b *BookingRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	row := b.conn.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = $1 FOR UPDATE`, id)
	booking, err := scanBooking(row)
	if err != nil {
		return nil, convertErr(err, "locking booking %s", id)
	}
	return booking, nil
}

// Lines in insertion order.
func (b *BookingRepository) Lines(ctx context.Context, bookingID uuid.UUID) ([]domain.BookingLine, error) {
	rows, err := b.conn.Query(ctx, `
		SELECT `+bookingLineColumns+` FROM booking_lines
		WHERE booking_id = $1
		ORDER BY position`,
		bookingID,
	)
	if err != nil {
		return nil, convertErr(err, "listing lines of booking %s", bookingID)
	}
	lines, err := collect(rows, scanBookingLine)
	if err != nil {
		return nil, convertErr(err, "listing lines of booking %s", bookingID)
	}
	return lines, nil
}

func (b *BookingRepository) UpdateState(
	ctx context.Context,
	args repoargs.UpdateBookingState,
) (*domain.Booking, error) {
	row := b.conn.QueryRow(ctx, `
		UPDATE bookings
		SET status       = $2,
		    funded       = $3,
		    delivered_at = $4,
		    approved_at  = $5,
		    cancelled_at = $6,
		    updated_at   = now()
		WHERE id = $1
		RETURNING `+bookingColumns,
		args.ID, string(args.Status), args.Funded, args.DeliveredAt, args.ApprovedAt, args.CancelledAt,
	)
	booking, err := scanBooking(row)
	if err != nil {
		return nil, convertErr(err, "updating state of booking %s", args.ID)
	}
	return booking, nil
}

// ListByParticipant newest first. An empty role matches bookings where the user is either side.
func (b *BookingRepository) ListByParticipant(
	ctx context.Context,
	userID uuid.UUID,
	role domain.ParticipantRole,
) ([]domain.Booking, error) {
	var query string
	switch role {
	case domain.ParticipantBuyer:
		query = `SELECT ` + bookingColumns + ` FROM bookings WHERE buyer_id = $1 ORDER BY created_at DESC, id`
	case domain.ParticipantSeller:
		query = `SELECT ` + bookingColumns + ` FROM bookings
			WHERE id IN (SELECT booking_id FROM booking_lines WHERE seller_id = $1)
			ORDER BY created_at DESC, id`
	case "":
		query = `SELECT ` + bookingColumns + ` FROM bookings
			WHERE buyer_id = $1 OR id IN (SELECT booking_id FROM booking_lines WHERE seller_id = $1)
			ORDER BY created_at DESC, id`
	default:
		return nil, errors.Errorf("unknown participant role `%s`", role)
	}

	rows, err := b.conn.Query(ctx, query, userID)
	if err != nil {
		return nil, convertErr(err, "listing bookings of %s", userID)
	}
	bookings, err := collect(rows, scanBooking)
	if err != nil {
		return nil, convertErr(err, "listing bookings of %s", userID)
	}
	return bookings, nil
}

func scanBooking(row pgx.Row) (*domain.Booking, error) {
	var b domain.Booking
	var status string
	if err := row.Scan(
		&b.ID, &b.CreatedAt, &b.UpdatedAt, &b.BuyerID, &status, &b.RequestedDate, &b.Notes, &b.TotalCredits,
		&b.Funded, &b.DeliveredAt, &b.ApprovedAt, &b.CancelledAt,
	); err != nil {
		return nil, err //nolint:wrapcheck
	}
	b.Status = domain.BookingStatusType(status)
	return &b, nil
}

func scanBookingLine(row pgx.Row) (*domain.BookingLine, error) {
	var l domain.BookingLine
	if err := row.Scan(&l.ID, &l.BookingID, &l.Position, &l.SellerID, &l.PackageID, &l.PriceCredits); err != nil {
		return nil, err //nolint:wrapcheck
	}
	return &l, nil
}
