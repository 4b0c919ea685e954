package api

import (
	"time"

	"github.com/fsdevblog/creatorbook/internal/domain"
	"github.com/fsdevblog/creatorbook/internal/service"
	"github.com/google/uuid"
)

const dateLayout = time.DateOnly

type BookingLineResponse struct {
	ID           uuid.UUID `json:"id"`
	Position     int32     `json:"position"`
	SellerID     uuid.UUID `json:"sellerId"`
	PackageID    uuid.UUID `json:"packageId"`
	PriceCredits int64     `json:"priceCredits"`
}

type BookingResponse struct {
	ID            uuid.UUID                `json:"id"`
	CreatedAt     time.Time                `json:"createdAt"`
	UpdatedAt     time.Time                `json:"updatedAt"`
	BuyerID       uuid.UUID                `json:"buyerId"`
	Status        domain.BookingStatusType `json:"status"`
	RequestedDate *string                  `json:"requestedDate,omitempty"`
	Notes         string                   `json:"notes"`
	TotalCredits  int64                    `json:"totalCredits"`
	Funded        bool                     `json:"funded"`
	DeliveredAt   *time.Time               `json:"deliveredAt,omitempty"`
	ApprovedAt    *time.Time               `json:"approvedAt,omitempty"`
	CancelledAt   *time.Time               `json:"cancelledAt,omitempty"`
	Lines         []BookingLineResponse    `json:"lines,omitempty"`
}

type DeliveryResponse struct {
	ID        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	BookingID uuid.UUID `json:"bookingId"`
	SellerID  uuid.UUID `json:"sellerId"`
	Link      string    `json:"link"`
	Note      string    `json:"note"`
}

type MessageResponse struct {
	ID        int64     `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	BookingID uuid.UUID `json:"bookingId"`
	SenderID  uuid.UUID `json:"senderId"`
	Body      string    `json:"body"`
}

type ReviewResponse struct {
	ID        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	BookingID uuid.UUID `json:"bookingId"`
	SellerID  uuid.UUID `json:"sellerId"`
	BuyerID   uuid.UUID `json:"buyerId"`
	Rating    int32     `json:"rating"`
	Text      string    `json:"text"`
}

type BookingDetailsResponse struct {
	Booking        BookingResponse       `json:"booking"`
	Lines          []BookingLineResponse `json:"lines"`
	Messages       []MessageResponse     `json:"messages"`
	LatestDelivery *DeliveryResponse     `json:"latestDelivery"`
	Reviews        []ReviewResponse      `json:"reviews"`
	Payouts        []PayoutResponse      `json:"payouts"`
}

type PayoutResponse struct {
	SellerID  uuid.UUID `json:"sellerId"`
	Amount    int64     `json:"amount"`
	CreatedAt time.Time `json:"createdAt"`
}

type WalletResponse struct {
	UserID    uuid.UUID `json:"userId"`
	Balance   int64     `json:"balance"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type TransactionResponse struct {
	ID          int64                  `json:"id"`
	CreatedAt   time.Time              `json:"createdAt"`
	Kind        domain.TransactionKind `json:"kind"`
	Amount      int64                  `json:"amount"`
	BookingID   *uuid.UUID             `json:"bookingId,omitempty"`
	ExternalRef *string                `json:"externalRef,omitempty"`
	Note        string                 `json:"note"`
}

type PackageResponse struct {
	ID           uuid.UUID `json:"id"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
	SellerID     uuid.UUID `json:"sellerId"`
	Service      string    `json:"service"`
	Tier         string    `json:"tier"`
	Title        string    `json:"title"`
	Price        int64     `json:"price"`
	DeliveryDays *int32    `json:"deliveryDays,omitempty"`
	Hours        string    `json:"hours"`
	Locations    string    `json:"locations"`
	Revisions    string    `json:"revisions"`
	Includes     string    `json:"includes"`
	Addons       string    `json:"addons"`
	Active       bool      `json:"active"`
}

type ProfileResponse struct {
	UserID      uuid.UUID       `json:"userId"`
	Email       string          `json:"email"`
	DisplayName string          `json:"displayName"`
	City        string          `json:"city"`
	Bio         string          `json:"bio"`
	Role        domain.RoleType `json:"role"`
	Approved    bool            `json:"approved"`
}

type SellerReviewsResponse struct {
	Count   int64            `json:"count"`
	Average string           `json:"average"`
	Reviews []ReviewResponse `json:"reviews"`
}

func newBookingResponse(b *domain.Booking, lines []domain.BookingLine) BookingResponse {
	resp := BookingResponse{
		ID:           b.ID,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
		BuyerID:      b.BuyerID,
		Status:       b.Status,
		Notes:        b.Notes,
		TotalCredits: b.TotalCredits,
		Funded:       b.Funded,
		DeliveredAt:  b.DeliveredAt,
		ApprovedAt:   b.ApprovedAt,
		CancelledAt:  b.CancelledAt,
	}
	if b.RequestedDate != nil {
		date := b.RequestedDate.Format(dateLayout)
		resp.RequestedDate = &date
	}
	if lines != nil {
		resp.Lines = newLineResponses(lines)
	}
	return resp
}

func newLineResponses(lines []domain.BookingLine) []BookingLineResponse {
	var resp = make([]BookingLineResponse, len(lines))
	for i, line := range lines {
		resp[i] = BookingLineResponse{
			ID:           line.ID,
			Position:     line.Position,
			SellerID:     line.SellerID,
			PackageID:    line.PackageID,
			PriceCredits: line.PriceCredits,
		}
	}
	return resp
}

func newDeliveryResponse(d *domain.Delivery) *DeliveryResponse {
	if d == nil {
		return nil
	}
	return &DeliveryResponse{
		ID:        d.ID,
		CreatedAt: d.CreatedAt,
		BookingID: d.BookingID,
		SellerID:  d.SellerID,
		Link:      d.Link,
		Note:      d.Note,
	}
}

func newMessageResponses(messages []domain.Message) []MessageResponse {
	var resp = make([]MessageResponse, len(messages))
	for i, m := range messages {
		resp[i] = newMessageResponse(&m)
	}
	return resp
}

func newMessageResponse(m *domain.Message) MessageResponse {
	return MessageResponse{
		ID:        m.ID,
		CreatedAt: m.CreatedAt,
		BookingID: m.BookingID,
		SenderID:  m.SenderID,
		Body:      m.Body,
	}
}

func newReviewResponses(reviews []domain.Review) []ReviewResponse {
	var resp = make([]ReviewResponse, len(reviews))
	for i, r := range reviews {
		resp[i] = newReviewResponse(&r)
	}
	return resp
}

func newReviewResponse(r *domain.Review) ReviewResponse {
	return ReviewResponse{
		ID:        r.ID,
		CreatedAt: r.CreatedAt,
		BookingID: r.BookingID,
		SellerID:  r.SellerID,
		BuyerID:   r.BuyerID,
		Rating:    r.Rating,
		Text:      r.Text,
	}
}

func newBookingDetailsResponse(d *service.BookingDetails) BookingDetailsResponse {
	return BookingDetailsResponse{
		Booking:        newBookingResponse(&d.Booking, nil),
		Lines:          newLineResponses(d.Lines),
		Messages:       newMessageResponses(d.Messages),
		LatestDelivery: newDeliveryResponse(d.LatestDelivery),
		Reviews:        newReviewResponses(d.Reviews),
		Payouts:        newPayoutResponses(d.Payouts),
	}
}

func newPayoutResponses(payouts []domain.Payout) []PayoutResponse {
	var resp = make([]PayoutResponse, len(payouts))
	for i, p := range payouts {
		resp[i] = PayoutResponse{SellerID: p.SellerID, Amount: p.Amount, CreatedAt: p.CreatedAt}
	}
	return resp
}

func newWalletResponse(w *domain.Wallet) WalletResponse {
	return WalletResponse{UserID: w.UserID, Balance: w.Balance, UpdatedAt: w.UpdatedAt}
}

func newTransactionResponses(transactions []domain.CreditsTransaction) []TransactionResponse {
	var resp = make([]TransactionResponse, len(transactions))
	for i, t := range transactions {
		resp[i] = TransactionResponse{
			ID:          t.ID,
			CreatedAt:   t.CreatedAt,
			Kind:        t.Kind,
			Amount:      t.Amount,
			BookingID:   t.BookingID,
			ExternalRef: t.ExternalRef,
			Note:        t.Note,
		}
	}
	return resp
}

func newPackageResponse(p *domain.Package) PackageResponse {
	return PackageResponse{
		ID:           p.ID,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
		SellerID:     p.SellerID,
		Service:      p.Service,
		Tier:         p.Tier,
		Title:        p.Title,
		Price:        p.Price,
		DeliveryDays: p.DeliveryDays,
		Hours:        p.Hours,
		Locations:    p.Locations,
		Revisions:    p.Revisions,
		Includes:     p.Includes,
		Addons:       p.Addons,
		Active:       p.Active,
	}
}

func newPackageResponses(packages []domain.Package) []PackageResponse {
	var resp = make([]PackageResponse, len(packages))
	for i, p := range packages {
		resp[i] = newPackageResponse(&p)
	}
	return resp
}

func newProfileResponse(p *domain.Profile) ProfileResponse {
	return ProfileResponse{
		UserID:      p.UserID,
		Email:       p.Email,
		DisplayName: p.DisplayName,
		City:        p.City,
		Bio:         p.Bio,
		Role:        p.Role,
		Approved:    p.Approved,
	}
}
