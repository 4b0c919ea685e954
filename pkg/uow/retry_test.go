package uow

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

var errTransient = errors.New("transient")

type RetryPolicyTestSuite struct {
	suite.Suite
	policy RetryPolicy
}

func TestRetryPolicySuite(t *testing.T) {
	suite.Run(t, new(RetryPolicyTestSuite))
}

func (s *RetryPolicyTestSuite) SetupTest() {
	s.policy = RetryPolicy{
		MaxAttempts: 3,
		BaseDelay:   time.Millisecond,
		Retryable: func(err error) bool {
			return errors.Is(err, errTransient)
		},
	}
}

func (s *RetryPolicyTestSuite) TestRun() {
	permanent := errors.New("permanent")

	cases := []struct {
		name      string
		failures  []error
		wantCalls int
		wantErr   []error
	}{
		{name: "first attempt ok", failures: nil, wantCalls: 1},
		{name: "recovers after transient", failures: []error{errTransient, errTransient}, wantCalls: 3},
		{
			name:      "exhausted",
			failures:  []error{errTransient, errTransient, errTransient},
			wantCalls: 3,
			wantErr:   []error{ErrRetriesExhausted, errTransient},
		},
		{name: "permanent is not retried", failures: []error{permanent}, wantCalls: 1, wantErr: []error{permanent}},
	}

	for _, t := range cases {
		s.Run(t.name, func() {
			var calls int
			err := s.policy.Run(s.T().Context(), func() error {
				calls++
				if calls <= len(t.failures) {
					return t.failures[calls-1]
				}
				return nil
			})
			s.Equal(t.wantCalls, calls)
			if len(t.wantErr) == 0 {
				s.Require().NoError(err)
				return
			}
			for _, want := range t.wantErr {
				s.Require().ErrorIs(err, want)
			}
		})
	}
}

func (s *RetryPolicyTestSuite) TestRun_ContextCancelled() {
	s.policy.BaseDelay = time.Hour
	ctx, cancel := context.WithCancel(s.T().Context())
	cancel()

	err := s.policy.Run(ctx, func() error { return errTransient })
	s.Require().ErrorIs(err, context.Canceled)
	s.Require().ErrorIs(err, errTransient)
}

func (s *RetryPolicyTestSuite) TestJitterBounds() {
	for range 100 {
		v := jitter(100, 0.15, 0.15)
		s.GreaterOrEqual(v, 85.0)
		s.LessOrEqual(v, 115.0)
	}
}
