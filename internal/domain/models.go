package domain

import (
	"time"

	"github.com/google/uuid"
)

type Profile struct {
	UserID      uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Email       string
	DisplayName string
	City        string
	Bio         string
	Role        RoleType
	Approved    bool
}

type Wallet struct {
	UserID    uuid.UUID
	UpdatedAt time.Time
	Balance   int64
	Version   int64
}

type CreditsTransaction struct {
	ID          int64
	CreatedAt   time.Time
	UserID      uuid.UUID
	Kind        TransactionKind
	Amount      int64
	BookingID   *uuid.UUID
	ExternalRef *string
	Note        string
}

type Package struct {
	ID           uuid.UUID
	CreatedAt    time.Time
	UpdatedAt    time.Time
	SellerID     uuid.UUID
	Service      string
	Tier         string
	Title        string
	Price        int64
	DeliveryDays *int32
	Hours        string
	Locations    string
	Revisions    string
	Includes     string
	Addons       string
	Active       bool
}

type Booking struct {
	ID            uuid.UUID
	CreatedAt     time.Time
	UpdatedAt     time.Time
	BuyerID       uuid.UUID
	Status        BookingStatusType
	RequestedDate *time.Time
	Notes         string
	TotalCredits  int64
	Funded        bool
	DeliveredAt   *time.Time
	ApprovedAt    *time.Time
	CancelledAt   *time.Time
}

type BookingLine struct {
	ID           uuid.UUID
	BookingID    uuid.UUID
	Position     int32
	SellerID     uuid.UUID
	PackageID    uuid.UUID
	PriceCredits int64
}

type Payout struct {
	BookingID uuid.UUID
	SellerID  uuid.UUID
	Amount    int64
	CreatedAt time.Time
}

type Delivery struct {
	ID        uuid.UUID
	CreatedAt time.Time
	BookingID uuid.UUID
	SellerID  uuid.UUID
	Link      string
	Note      string
}

type Message struct {
	ID        int64
	CreatedAt time.Time
	BookingID uuid.UUID
	SenderID  uuid.UUID
	Body      string
}

type Review struct {
	ID        uuid.UUID
	CreatedAt time.Time
	BookingID uuid.UUID
	SellerID  uuid.UUID
	BuyerID   uuid.UUID
	Rating    int32
	Text      string
}
