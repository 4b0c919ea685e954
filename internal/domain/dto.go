package domain

type RoleType string

const (
	RoleClient  RoleType = "client"
	RoleCreator RoleType = "creator"
)

// TransactionKind is the kind of a credits ledger entry.
type TransactionKind string

const (
	KindCredit       TransactionKind = "credit"
	KindHold         TransactionKind = "hold"
	KindPayoutCredit TransactionKind = "payout_credit"
	KindDemoTopUp    TransactionKind = "demo_topup"
	KindRefund       TransactionKind = "refund"
)

type BookingStatusType string

const (
	BookingStatusRequested  BookingStatusType = "requested"
	BookingStatusAccepted   BookingStatusType = "accepted"
	BookingStatusDeclined   BookingStatusType = "declined"
	BookingStatusInProgress BookingStatusType = "in_progress"
	BookingStatusDelivered  BookingStatusType = "delivered"
	BookingStatusApproved   BookingStatusType = "approved"
	BookingStatusCancelled  BookingStatusType = "cancelled"
)

type BookingEventType string

const (
	BookingEventAccept  BookingEventType = "accept"
	BookingEventDecline BookingEventType = "decline"
	BookingEventHold    BookingEventType = "hold"
	BookingEventStart   BookingEventType = "start"
	BookingEventDeliver BookingEventType = "deliver"
	BookingEventApprove BookingEventType = "approve"
	BookingEventCancel  BookingEventType = "cancel"
)

// ParticipantRole is the side of a booking allowed to fire an event.
type ParticipantRole string

const (
	ParticipantBuyer  ParticipantRole = "buyer"
	ParticipantSeller ParticipantRole = "seller"
)
