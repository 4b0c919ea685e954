package reconcile

import (
	"bytes"
	"errors"
	"slices"
	"testing"

	"github.com/fsdevblog/creatorbook/internal/repository/repoargs"
	"github.com/fsdevblog/creatorbook/internal/transport/reconcile/mocks"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/suite"
)

type ProcessorTestSuite struct {
	suite.Suite
	processor   *Processor
	mockService *mocks.MockServicer
	ctrl        *gomock.Controller
}

func (s *ProcessorTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockService = mocks.NewMockServicer(s.ctrl)

	logger := logrus.New()
	logger.SetLevel(logrus.DebugLevel)

	s.processor = New(s.mockService, logger).SetBatchSize(2).SetWorkers(2)
}

func (s *ProcessorTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestProcessorSuite(t *testing.T) {
	suite.Run(t, new(ProcessorTestSuite))
}

func sortedIDs(n int) []uuid.UUID {
	ids := make([]uuid.UUID, n)
	for i := range ids {
		ids[i] = uuid.New()
	}
	slices.SortFunc(ids, func(a, b uuid.UUID) int { return bytes.Compare(a[:], b[:]) })
	return ids
}

func (s *ProcessorTestSuite) TestPass_NoWallets() {
	s.mockService.EXPECT().WalletsForReconcile(gomock.Any(), uuid.Nil, uint(2)).Return([]uuid.UUID{}, nil)

	result, err := s.processor.pass(s.T().Context())
	s.Require().NoError(err)
	s.Zero(result.Checked)
}

// TestPass_PagesAndMismatches three wallets over two pages, one of them drifted.
func (s *ProcessorTestSuite) TestPass_PagesAndMismatches() {
	ids := sortedIDs(3)
	drifted := ids[1]

	gomock.InOrder(
		s.mockService.EXPECT().WalletsForReconcile(gomock.Any(), uuid.Nil, uint(2)).Return(ids[:2], nil),
		s.mockService.EXPECT().WalletsForReconcile(gomock.Any(), ids[1], uint(2)).Return(ids[2:], nil),
	)
	for _, id := range ids {
		lb := &repoargs.LedgerBalance{UserID: id, Balance: 100, LedgerSum: 100}
		if id == drifted {
			lb.LedgerSum = 90
		}
		s.mockService.EXPECT().ReconcileWallet(gomock.Any(), id).Return(lb, nil)
	}

	result, err := s.processor.pass(s.T().Context())
	s.Require().NoError(err)
	s.Equal(3, result.Checked)
	s.Require().Len(result.Mismatches, 1)
	s.Equal(drifted, result.Mismatches[0].UserID)
}

func (s *ProcessorTestSuite) TestPass_WalletErrorDoesNotStopPass() {
	ids := sortedIDs(1)
	s.mockService.EXPECT().WalletsForReconcile(gomock.Any(), uuid.Nil, uint(2)).Return(ids, nil)
	s.mockService.EXPECT().ReconcileWallet(gomock.Any(), ids[0]).Return(nil, errors.New("db down"))

	result, err := s.processor.pass(s.T().Context())
	s.Require().NoError(err)
	s.Equal(1, result.Checked)
	s.Equal(1, result.Failed)
}

func (s *ProcessorTestSuite) TestPass_ProduceError() {
	s.mockService.EXPECT().
		WalletsForReconcile(gomock.Any(), uuid.Nil, uint(2)).
		Return(nil, errors.New("db down"))

	_, err := s.processor.pass(s.T().Context())
	s.Require().Error(err)
}
