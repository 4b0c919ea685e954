package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSumCredits(t *testing.T) {
	total, err := SumCredits(100, 250, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(350), total)

	_, err = SumCredits(math.MaxInt64, 2)
	require.ErrorIs(t, err, ErrValidation)
	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "lines", valErr.Field)

	_, err = TotalCredits([]BookingLine{{PriceCredits: math.MaxInt64}, {PriceCredits: 1}})
	require.ErrorIs(t, err, ErrValidation)
}

func TestApplyDelta(t *testing.T) {
	cases := []struct {
		name    string
		balance int64
		delta   int64
		want    int64
		wantErr error
	}{
		{name: "credit", balance: 10, delta: 5, want: 15},
		{name: "debit to zero", balance: 10, delta: -10, want: 0},
		{name: "overdraw", balance: 10, delta: -11, wantErr: ErrInsufficientFunds},
		{name: "credit to max", balance: math.MaxInt64 - 1, delta: 1, want: math.MaxInt64},
		{name: "overflow", balance: math.MaxInt64, delta: 1, wantErr: ErrValidation},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ApplyDelta(tc.balance, tc.delta)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
