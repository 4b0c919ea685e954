package domain

import "github.com/google/uuid"

type transitionKey struct {
	from  BookingStatusType
	event BookingEventType
}

// bookingTransitions is the booking lifecycle; a missing key is an illegal transition.
var bookingTransitions = map[transitionKey]BookingStatusType{
	{BookingStatusRequested, BookingEventAccept}:   BookingStatusAccepted,
	{BookingStatusRequested, BookingEventDecline}:  BookingStatusDeclined,
	{BookingStatusRequested, BookingEventCancel}:   BookingStatusCancelled,
	{BookingStatusAccepted, BookingEventHold}:      BookingStatusAccepted,
	{BookingStatusAccepted, BookingEventStart}:     BookingStatusInProgress,
	{BookingStatusAccepted, BookingEventDeliver}:   BookingStatusDelivered,
	{BookingStatusAccepted, BookingEventCancel}:    BookingStatusCancelled,
	{BookingStatusInProgress, BookingEventDeliver}: BookingStatusDelivered,
	{BookingStatusDelivered, BookingEventApprove}:  BookingStatusApproved,
}

var eventActors = map[BookingEventType]ParticipantRole{
	BookingEventAccept:  ParticipantSeller,
	BookingEventDecline: ParticipantSeller,
	BookingEventHold:    ParticipantBuyer,
	BookingEventStart:   ParticipantSeller,
	BookingEventDeliver: ParticipantSeller,
	BookingEventApprove: ParticipantBuyer,
	BookingEventCancel:  ParticipantBuyer,
}

// ParseBookingEvent returns a ValidationError for unknown events.
func ParseBookingEvent(s string) (BookingEventType, error) {
	event := BookingEventType(s)
	if _, ok := eventActors[event]; !ok {
		return "", NewValidationError("event", "unknown event `"+s+"`")
	}
	return event, nil
}

// NextStatus returns the status reached from `from` by event, or a *TransitionError.
func NextStatus(from BookingStatusType, event BookingEventType) (BookingStatusType, error) {
	to, ok := bookingTransitions[transitionKey{from: from, event: event}]
	if !ok {
		return "", NewTransitionError(from, event)
	}
	return to, nil
}

// EventActor returns the booking side allowed to fire event.
func EventActor(event BookingEventType) ParticipantRole {
	return eventActors[event]
}

// IsTerminal reports whether no event is accepted anymore.
func (b *Booking) IsTerminal() bool {
	switch b.Status {
	case BookingStatusApproved, BookingStatusDeclined, BookingStatusCancelled:
		return true
	default:
		return false
	}
}

// RoleOf resolves the side userID takes in the booking. A buyer is never a seller on their own booking,
// creation rejects that.
func RoleOf(booking *Booking, lines []BookingLine, userID uuid.UUID) (ParticipantRole, bool) {
	if booking.BuyerID == userID {
		return ParticipantBuyer, true
	}
	if HasSeller(lines, userID) {
		return ParticipantSeller, true
	}
	return "", false
}

func HasSeller(lines []BookingLine, sellerID uuid.UUID) bool {
	for _, line := range lines {
		if line.SellerID == sellerID {
			return true
		}
	}
	return false
}

// TotalCredits sums the price snapshots of lines, see SumCredits.
func TotalCredits(lines []BookingLine) (int64, error) {
	var prices = make([]int64, len(lines))
	for i, line := range lines {
		prices[i] = line.PriceCredits
	}
	return SumCredits(prices...)
}

type SellerPayout struct {
	SellerID uuid.UUID
	Amount   int64
}

// PayoutsFor groups lines per seller, in order of first appearance.
func PayoutsFor(lines []BookingLine) []SellerPayout {
	var payouts = make([]SellerPayout, 0, len(lines))
	var index = make(map[uuid.UUID]int, len(lines))
	for _, line := range lines {
		if i, ok := index[line.SellerID]; ok {
			payouts[i].Amount += line.PriceCredits
			continue
		}
		index[line.SellerID] = len(payouts)
		payouts = append(payouts, SellerPayout{SellerID: line.SellerID, Amount: line.PriceCredits})
	}
	return payouts
}
