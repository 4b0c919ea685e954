package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextStatus(t *testing.T) {
	cases := []struct {
		name    string
		from    BookingStatusType
		event   BookingEventType
		want    BookingStatusType
		wantErr bool
	}{
		{name: "accept", from: BookingStatusRequested, event: BookingEventAccept, want: BookingStatusAccepted},
		{name: "decline", from: BookingStatusRequested, event: BookingEventDecline, want: BookingStatusDeclined},
		{name: "hold keeps accepted", from: BookingStatusAccepted, event: BookingEventHold, want: BookingStatusAccepted},
		{name: "start", from: BookingStatusAccepted, event: BookingEventStart, want: BookingStatusInProgress},
		{name: "deliver from accepted", from: BookingStatusAccepted, event: BookingEventDeliver, want: BookingStatusDelivered},
		{name: "deliver from in progress", from: BookingStatusInProgress, event: BookingEventDeliver, want: BookingStatusDelivered},
		{name: "approve", from: BookingStatusDelivered, event: BookingEventApprove, want: BookingStatusApproved},
		{name: "cancel requested", from: BookingStatusRequested, event: BookingEventCancel, want: BookingStatusCancelled},
		{name: "cancel accepted", from: BookingStatusAccepted, event: BookingEventCancel, want: BookingStatusCancelled},
		{name: "approve from requested", from: BookingStatusRequested, event: BookingEventApprove, wantErr: true},
		{name: "hold from requested", from: BookingStatusRequested, event: BookingEventHold, wantErr: true},
		{name: "decline accepted", from: BookingStatusAccepted, event: BookingEventDecline, wantErr: true},
		{name: "cancel in progress", from: BookingStatusInProgress, event: BookingEventCancel, wantErr: true},
		{name: "anything from approved", from: BookingStatusApproved, event: BookingEventDeliver, wantErr: true},
		{name: "anything from declined", from: BookingStatusDeclined, event: BookingEventAccept, wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := NextStatus(tc.from, tc.event)
			if tc.wantErr {
				require.ErrorIs(t, err, ErrInvalidState)
				var trErr *TransitionError
				require.ErrorAs(t, err, &trErr)
				assert.Equal(t, tc.from, trErr.From)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseBookingEvent(t *testing.T) {
	ev, err := ParseBookingEvent("approve")
	require.NoError(t, err)
	assert.Equal(t, BookingEventApprove, ev)
	assert.Equal(t, ParticipantBuyer, EventActor(ev))

	_, err = ParseBookingEvent("refund")
	require.ErrorIs(t, err, ErrValidation)
}

func TestPayoutsFor(t *testing.T) {
	sellerA, sellerB := uuid.New(), uuid.New()
	lines := []BookingLine{
		{SellerID: sellerB, PriceCredits: 150},
		{SellerID: sellerA, PriceCredits: 200},
		{SellerID: sellerB, PriceCredits: 50},
	}

	payouts := PayoutsFor(lines)
	require.Len(t, payouts, 2)
	assert.Equal(t, SellerPayout{SellerID: sellerB, Amount: 200}, payouts[0])
	assert.Equal(t, SellerPayout{SellerID: sellerA, Amount: 200}, payouts[1])
	total, err := TotalCredits(lines)
	require.NoError(t, err)
	assert.Equal(t, int64(400), total)
}

func TestRoleOf(t *testing.T) {
	buyer, seller, stranger := uuid.New(), uuid.New(), uuid.New()
	booking := &Booking{BuyerID: buyer}
	lines := []BookingLine{{SellerID: seller}}

	role, ok := RoleOf(booking, lines, buyer)
	assert.True(t, ok)
	assert.Equal(t, ParticipantBuyer, role)

	role, ok = RoleOf(booking, lines, seller)
	assert.True(t, ok)
	assert.Equal(t, ParticipantSeller, role)

	_, ok = RoleOf(booking, lines, stranger)
	assert.False(t, ok)
}
