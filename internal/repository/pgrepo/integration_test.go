package pgrepo_test

import (
	"context"
	"math"
	"sync/atomic"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/fsdevblog/creatorbook/internal/domain"
	"github.com/fsdevblog/creatorbook/internal/repository/pgrepo"
	"github.com/fsdevblog/creatorbook/internal/repository/repoargs"
	"github.com/fsdevblog/creatorbook/internal/service"
	"github.com/fsdevblog/creatorbook/pkg/uow"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"golang.org/x/sync/errgroup"

	_ "github.com/golang-migrate/migrate/v4/database/postgres" //nolint:revive
	_ "github.com/golang-migrate/migrate/v4/source/file"       //nolint:revive
)

const migrationsDir = "../../db/migrations"

// PostgresTestSuite runs the services against a disposable Postgres. Skipped when Docker is unavailable.
type PostgresTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	pool      *pgxpool.Pool
	svc       *service.AppServices
}

func TestPostgresSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("integration test")
	}
	suite.Run(t, new(PostgresTestSuite))
}

func (s *PostgresTestSuite) SetupSuite() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	container, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("creatorbook"),
		postgres.WithUsername("creatorbook"),
		postgres.WithPassword("creatorbook"),
		postgres.BasicWaitStrategies(),
	)
	if err != nil {
		s.T().Skipf("postgres container is not available: %s", err.Error())
	}
	s.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	s.Require().NoError(err)
	s.Require().NoError(pgrepo.Migrate(migrationsDir, dsn))

	s.pool, err = pgxpool.New(ctx, dsn)
	s.Require().NoError(err)

	retry := uow.DefaultRetryPolicy()
	retry.Retryable = pgrepo.IsRetryable
	unitOfWork, err := pgrepo.NewUnitOfWork(s.pool, retry)
	s.Require().NoError(err)

	s.svc, err = service.Factory(unitOfWork, service.FactoryArgs{DemoTopUpEnabled: true})
	s.Require().NoError(err)
}

func (s *PostgresTestSuite) TearDownSuite() {
	if s.pool != nil {
		s.pool.Close()
	}
	if s.container != nil {
		s.NoError(s.container.Terminate(context.Background()))
	}
}

func (s *PostgresTestSuite) newUser(credits int64) uuid.UUID {
	id := uuid.New()
	_, err := s.svc.ProfileService.Ensure(s.T().Context(), id, gofakeit.Email())
	s.Require().NoError(err)
	if credits > 0 {
		_, err = s.svc.WalletService.DemoTopUp(s.T().Context(), id, credits)
		s.Require().NoError(err)
	}
	return id
}

func (s *PostgresTestSuite) newPackage(sellerID uuid.UUID, price int64) uuid.UUID {
	pkg, err := s.svc.CatalogService.Upsert(s.T().Context(), service.UpsertPackageArgs{
		SellerID: sellerID,
		Fields:   repoargs.PackageFields{Service: "photo", Tier: "basic", Title: gofakeit.Word(), Price: price},
	})
	s.Require().NoError(err)
	return pkg.ID
}

func (s *PostgresTestSuite) fire(bookingID, actorID uuid.UUID, event domain.BookingEventType) error {
	_, err := s.svc.BookingService.Transition(s.T().Context(), service.TransitionArgs{
		BookingID: bookingID,
		ActorID:   actorID,
		Event:     event,
		Link:      gofakeit.URL(),
	})
	return err
}

func (s *PostgresTestSuite) balance(userID uuid.UUID) int64 {
	wallet, err := s.svc.WalletService.GetBalance(s.T().Context(), userID)
	s.Require().NoError(err)
	return wallet.Balance
}

func (s *PostgresTestSuite) assertReconciled(users ...uuid.UUID) {
	for _, id := range users {
		lb, err := s.svc.WalletService.ReconcileWallet(s.T().Context(), id)
		s.Require().NoError(err)
		s.Equal(lb.Balance, lb.LedgerSum, "wallet %s", id)
	}
}

func (s *PostgresTestSuite) TestEscrowLifecycle() {
	buyer, sellerA, sellerB := s.newUser(500), s.newUser(0), s.newUser(0)
	created, err := s.svc.BookingService.Create(s.T().Context(), service.CreateBookingArgs{
		BuyerID: buyer,
		Lines: []service.BookingLineArgs{
			{SellerID: sellerA, PackageID: s.newPackage(sellerA, 200)},
			{SellerID: sellerB, PackageID: s.newPackage(sellerB, 150)},
		},
	})
	s.Require().NoError(err)
	id := created.Booking.ID

	s.Require().NoError(s.fire(id, sellerA, domain.BookingEventAccept))
	s.Require().NoError(s.fire(id, buyer, domain.BookingEventHold))
	s.Require().NoError(s.fire(id, buyer, domain.BookingEventHold))
	s.Equal(int64(150), s.balance(buyer))

	s.Require().NoError(s.fire(id, sellerB, domain.BookingEventDeliver))
	s.Require().NoError(s.fire(id, buyer, domain.BookingEventApprove))
	s.Require().NoError(s.fire(id, buyer, domain.BookingEventApprove))

	s.Equal(int64(200), s.balance(sellerA))
	s.Equal(int64(150), s.balance(sellerB))
	s.assertReconciled(buyer, sellerA, sellerB)

	details, err := s.svc.BookingService.Get(s.T().Context(), id, buyer)
	s.Require().NoError(err)
	s.Equal(domain.BookingStatusApproved, details.Booking.Status)
	s.Require().Len(details.Lines, 2)
	s.Equal(int64(200), details.Lines[0].PriceCredits)
	s.Equal(int64(150), details.Lines[1].PriceCredits)
	s.NotNil(details.LatestDelivery)
}

func (s *PostgresTestSuite) TestIllegalTransitionKeepsBalances() {
	buyer, seller := s.newUser(300), s.newUser(0)
	created, err := s.svc.BookingService.Create(s.T().Context(), service.CreateBookingArgs{
		BuyerID: buyer,
		Lines:   []service.BookingLineArgs{{SellerID: seller, PackageID: s.newPackage(seller, 100)}},
	})
	s.Require().NoError(err)

	err = s.fire(created.Booking.ID, buyer, domain.BookingEventApprove)
	s.Require().ErrorIs(err, domain.ErrInvalidState)
	s.Equal(int64(300), s.balance(buyer))
	s.Equal(int64(0), s.balance(seller))
}

func (s *PostgresTestSuite) TestConcurrentHoldsNeverOverdraw() {
	buyer, seller := s.newUser(500), s.newUser(0)
	pkg := s.newPackage(seller, 300)

	var bookings []uuid.UUID
	for range 4 {
		created, err := s.svc.BookingService.Create(s.T().Context(), service.CreateBookingArgs{
			BuyerID: buyer,
			Lines:   []service.BookingLineArgs{{SellerID: seller, PackageID: pkg}},
		})
		s.Require().NoError(err)
		s.Require().NoError(s.fire(created.Booking.ID, seller, domain.BookingEventAccept))
		bookings = append(bookings, created.Booking.ID)
	}

	var held atomic.Int32
	g := new(errgroup.Group)
	for _, id := range bookings {
		g.Go(func() error {
			err := s.fire(id, buyer, domain.BookingEventHold)
			switch {
			case err == nil:
				held.Add(1)
				return nil
			case errors.Is(err, domain.ErrInsufficientFunds):
				return nil
			default:
				return err
			}
		})
	}
	s.Require().NoError(g.Wait())

	s.Equal(int32(1), held.Load())
	s.Equal(int64(200), s.balance(buyer))
	s.assertReconciled(buyer)
}

func (s *PostgresTestSuite) TestCreditFromPaymentIsIdempotent() {
	user := s.newUser(0)
	sessionID := "cs_" + uuid.NewString()

	_, applied, err := s.svc.WalletService.CreditFromPayment(s.T().Context(), user, 250, sessionID)
	s.Require().NoError(err)
	s.True(applied)

	wallet, applied, err := s.svc.WalletService.CreditFromPayment(s.T().Context(), user, 250, sessionID)
	s.Require().NoError(err)
	s.False(applied)
	s.Equal(int64(250), wallet.Balance)
	s.assertReconciled(user)
}

func (s *PostgresTestSuite) TestReviewsAndMessages() {
	buyer, seller := s.newUser(100), s.newUser(0)
	created, err := s.svc.BookingService.Create(s.T().Context(), service.CreateBookingArgs{
		BuyerID: buyer,
		Lines:   []service.BookingLineArgs{{SellerID: seller, PackageID: s.newPackage(seller, 100)}},
	})
	s.Require().NoError(err)
	id := created.Booking.ID

	for _, body := range []string{"first", "second", "third"} {
		_, err = s.svc.MessageService.Post(s.T().Context(), id, buyer, body)
		s.Require().NoError(err)
	}
	messages, err := s.svc.MessageService.List(s.T().Context(), id, seller)
	s.Require().NoError(err)
	s.Require().Len(messages, 3)
	s.Equal("first", messages[0].Body)
	s.Equal("third", messages[2].Body)

	s.Require().NoError(s.fire(id, seller, domain.BookingEventAccept))
	s.Require().NoError(s.fire(id, buyer, domain.BookingEventHold))
	s.Require().NoError(s.fire(id, seller, domain.BookingEventDeliver))
	s.Require().NoError(s.fire(id, buyer, domain.BookingEventApprove))

	review := service.AddReviewArgs{BookingID: id, BuyerID: buyer, SellerID: seller, Rating: 4, Text: "solid"}
	_, err = s.svc.RecordsService.AddReview(s.T().Context(), review)
	s.Require().NoError(err)
	_, err = s.svc.RecordsService.AddReview(s.T().Context(), review)
	s.Require().ErrorIs(err, domain.ErrConflict)

	summary, err := s.svc.RecordsService.SellerReviews(s.T().Context(), seller, 10)
	s.Require().NoError(err)
	s.Equal(int64(1), summary.Count)
	s.True(summary.Average.Equal(decimal.NewFromInt(4)), "average %s", summary.Average)
}

func (s *PostgresTestSuite) TestTopUpPastBalanceRange() {
	user := s.newUser(math.MaxInt64)

	_, err := s.svc.WalletService.DemoTopUp(s.T().Context(), user, 1)
	s.Require().ErrorIs(err, domain.ErrValidation)
	s.Require().NotErrorIs(err, domain.ErrInsufficientFunds)
	s.Equal(int64(math.MaxInt64), s.balance(user))
	s.assertReconciled(user)
}

func (s *PostgresTestSuite) TestPackagePriceIsCapped() {
	seller := s.newUser(0)
	_, err := s.svc.CatalogService.Upsert(s.T().Context(), service.UpsertPackageArgs{
		SellerID: seller,
		Fields:   repoargs.PackageFields{Title: gofakeit.Word(), Price: domain.MaxPriceCredits + 1},
	})
	s.Require().ErrorIs(err, domain.ErrValidation)
	s.newPackage(seller, domain.MaxPriceCredits)
}

func (s *PostgresTestSuite) TestRemoveRacesBooking() {
	buyer, seller := s.newUser(0), s.newUser(0)

	for range 8 {
		pkg := s.newPackage(seller, 10)

		var removal service.PackageRemoval
		var booked bool
		g := new(errgroup.Group)
		g.Go(func() error {
			var err error
			removal, err = s.svc.CatalogService.Remove(s.T().Context(), seller, pkg)
			return err
		})
		g.Go(func() error {
			_, err := s.svc.BookingService.Create(s.T().Context(), service.CreateBookingArgs{
				BuyerID: buyer,
				Lines:   []service.BookingLineArgs{{SellerID: seller, PackageID: pkg}},
			})
			switch {
			case err == nil:
				booked = true
				return nil
			case errors.Is(err, domain.ErrRecordNotFound), errors.Is(err, domain.ErrConflict):
				return nil
			default:
				return err
			}
		})
		s.Require().NoError(g.Wait())

		if booked {
			s.Equal(service.PackageDeactivated, removal)
		} else {
			s.Equal(service.PackageDeleted, removal)
		}
	}
}
