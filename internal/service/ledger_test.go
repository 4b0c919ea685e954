package service

import (
	"context"
	"errors"
	"math"
	"sync/atomic"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/fsdevblog/creatorbook/internal/domain"
	"github.com/fsdevblog/creatorbook/internal/repository/memrepo"
	"github.com/fsdevblog/creatorbook/internal/repository/repoargs"
	"github.com/fsdevblog/creatorbook/pkg/uow"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"golang.org/x/sync/errgroup"
)

var errInjected = errors.New("injected failure")

// LedgerTestSuite runs the services against the in-memory store.
type LedgerTestSuite struct {
	suite.Suite
	store *memrepo.Store
	uow   *memrepo.UnitOfWork
	svc   *AppServices
	users []uuid.UUID
}

func TestLedgerSuite(t *testing.T) {
	suite.Run(t, new(LedgerTestSuite))
}

func (s *LedgerTestSuite) SetupTest() {
	s.store = memrepo.NewStore()
	s.users = nil

	var err error
	s.uow = memrepo.NewUnitOfWork(s.store, uow.DefaultRetryPolicy())
	s.svc, err = Factory(s.uow, FactoryArgs{DemoTopUpEnabled: true})
	s.Require().NoError(err)
}

func (s *LedgerTestSuite) newUser(credits int64) uuid.UUID {
	id := uuid.New()
	_, err := s.svc.ProfileService.Ensure(s.T().Context(), id, gofakeit.Email())
	s.Require().NoError(err)
	if credits > 0 {
		_, err = s.svc.WalletService.DemoTopUp(s.T().Context(), id, credits)
		s.Require().NoError(err)
	}
	s.users = append(s.users, id)
	return id
}

func (s *LedgerTestSuite) newPackage(sellerID uuid.UUID, price int64) uuid.UUID {
	pkg, err := s.svc.CatalogService.Upsert(s.T().Context(), UpsertPackageArgs{
		SellerID: sellerID,
		Fields: repoargs.PackageFields{
			Service: "photo",
			Tier:    "basic",
			Title:   gofakeit.Word(),
			Price:   price,
		},
	})
	s.Require().NoError(err)
	return pkg.ID
}

func (s *LedgerTestSuite) book(buyerID uuid.UUID, lines ...BookingLineArgs) *BookingWithLines {
	booking, err := s.svc.BookingService.Create(s.T().Context(), CreateBookingArgs{BuyerID: buyerID, Lines: lines})
	s.Require().NoError(err)
	return booking
}

func (s *LedgerTestSuite) fire(bookingID, actorID uuid.UUID, event domain.BookingEventType) (*domain.Booking, error) {
	return s.svc.BookingService.Transition(s.T().Context(), TransitionArgs{
		BookingID: bookingID,
		ActorID:   actorID,
		Event:     event,
		Link:      gofakeit.URL(),
	})
}

func (s *LedgerTestSuite) mustFire(bookingID, actorID uuid.UUID, events ...domain.BookingEventType) {
	for _, event := range events {
		_, err := s.fire(bookingID, actorID, event)
		s.Require().NoError(err, "event %s", event)
	}
}

func (s *LedgerTestSuite) balance(userID uuid.UUID) int64 {
	wallet, err := s.svc.WalletService.GetBalance(s.T().Context(), userID)
	s.Require().NoError(err)
	return wallet.Balance
}

// totalCredits sum of every wallet plus credits held in escrow.
func (s *LedgerTestSuite) totalCredits(escrow int64) int64 {
	total := escrow
	for _, id := range s.users {
		total += s.balance(id)
	}
	return total
}

func (s *LedgerTestSuite) assertReconciled() {
	for _, id := range s.users {
		lb, err := s.svc.WalletService.ReconcileWallet(s.T().Context(), id)
		s.Require().NoError(err)
		s.Equal(lb.Balance, lb.LedgerSum, "wallet %s", id)
	}
}

// twoSellerBooking buyer with 500 credits books 200 from sellerA and 150 from sellerB.
func (s *LedgerTestSuite) twoSellerBooking() (buyer, sellerA, sellerB uuid.UUID, booking *BookingWithLines) {
	buyer = s.newUser(500)
	sellerA = s.newUser(0)
	sellerB = s.newUser(0)
	booking = s.book(buyer,
		BookingLineArgs{SellerID: sellerA, PackageID: s.newPackage(sellerA, 200)},
		BookingLineArgs{SellerID: sellerB, PackageID: s.newPackage(sellerB, 150)},
	)
	return buyer, sellerA, sellerB, booking
}

func (s *LedgerTestSuite) TestEscrowLifecycle() {
	buyer, sellerA, sellerB, booking := s.twoSellerBooking()
	id := booking.Booking.ID
	s.Equal(int64(350), booking.Booking.TotalCredits)

	s.mustFire(id, sellerA, domain.BookingEventAccept)
	s.mustFire(id, buyer, domain.BookingEventHold)
	s.Equal(int64(150), s.balance(buyer))
	s.Equal(int64(500), s.totalCredits(350))

	s.mustFire(id, sellerB, domain.BookingEventStart, domain.BookingEventDeliver)
	approved, err := s.fire(id, buyer, domain.BookingEventApprove)
	s.Require().NoError(err)
	s.Equal(domain.BookingStatusApproved, approved.Status)
	s.NotNil(approved.ApprovedAt)

	s.Equal(int64(150), s.balance(buyer))
	s.Equal(int64(200), s.balance(sellerA))
	s.Equal(int64(150), s.balance(sellerB))
	s.Equal(int64(500), s.totalCredits(0))

	// second approve pays nobody twice
	s.mustFire(id, buyer, domain.BookingEventApprove)
	s.Equal(int64(200), s.balance(sellerA))
	s.Equal(int64(150), s.balance(sellerB))

	s.assertReconciled()
}

func (s *LedgerTestSuite) TestHoldTwiceDebitsOnce() {
	buyer, sellerA, _, booking := s.twoSellerBooking()
	id := booking.Booking.ID

	s.mustFire(id, sellerA, domain.BookingEventAccept)
	s.mustFire(id, buyer, domain.BookingEventHold, domain.BookingEventHold)

	s.Equal(int64(150), s.balance(buyer))
	transactions, err := s.svc.WalletService.Transactions(s.T().Context(), buyer, 10)
	s.Require().NoError(err)
	var holds int
	for _, t := range transactions {
		if t.Kind == domain.KindHold {
			holds++
		}
	}
	s.Equal(1, holds)
}

func (s *LedgerTestSuite) TestIllegalTransitionChangesNothing() {
	buyer, sellerA, _, booking := s.twoSellerBooking()
	id := booking.Booking.ID

	_, err := s.fire(id, buyer, domain.BookingEventApprove)
	s.Require().ErrorIs(err, domain.ErrInvalidState)
	var trErr *domain.TransitionError
	s.Require().ErrorAs(err, &trErr)
	s.Equal(domain.BookingStatusRequested, trErr.From)

	_, err = s.fire(id, buyer, domain.BookingEventAccept)
	s.Require().ErrorIs(err, domain.ErrForbidden)

	_, err = s.fire(id, s.newUser(0), domain.BookingEventCancel)
	s.Require().ErrorIs(err, domain.ErrForbidden)

	s.Equal(int64(500), s.balance(buyer))
	s.Equal(int64(0), s.balance(sellerA))
	details, err := s.svc.BookingService.Get(s.T().Context(), id, buyer)
	s.Require().NoError(err)
	s.Equal(domain.BookingStatusRequested, details.Booking.Status)
}

func (s *LedgerTestSuite) TestHoldInsufficientFunds() {
	buyer := s.newUser(100)
	seller := s.newUser(0)
	booking := s.book(buyer, BookingLineArgs{SellerID: seller, PackageID: s.newPackage(seller, 101)})
	s.mustFire(booking.Booking.ID, seller, domain.BookingEventAccept)

	_, err := s.fire(booking.Booking.ID, buyer, domain.BookingEventHold)
	s.Require().ErrorIs(err, domain.ErrInsufficientFunds)
	s.Equal(int64(100), s.balance(buyer))

	details, err := s.svc.BookingService.Get(s.T().Context(), booking.Booking.ID, buyer)
	s.Require().NoError(err)
	s.False(details.Booking.Funded)
}

func (s *LedgerTestSuite) TestPayoutResumesAfterFailure() {
	buyer, sellerA, sellerB, booking := s.twoSellerBooking()
	id := booking.Booking.ID
	s.mustFire(id, sellerA, domain.BookingEventAccept)
	s.mustFire(id, buyer, domain.BookingEventHold)
	s.mustFire(id, sellerA, domain.BookingEventDeliver)

	s.store.InjectFailure(func(op string, key uuid.UUID) error {
		if op == memrepo.OpWalletAdjust && key == sellerB {
			return errInjected
		}
		return nil
	})
	_, err := s.fire(id, buyer, domain.BookingEventApprove)
	s.Require().ErrorIs(err, errInjected)

	s.Equal(int64(0), s.balance(sellerA))
	s.Equal(int64(0), s.balance(sellerB))
	details, err := s.svc.BookingService.Get(s.T().Context(), id, buyer)
	s.Require().NoError(err)
	s.Equal(domain.BookingStatusDelivered, details.Booking.Status)

	s.store.InjectFailure(nil)
	s.mustFire(id, buyer, domain.BookingEventApprove)
	s.Equal(int64(200), s.balance(sellerA))
	s.Equal(int64(150), s.balance(sellerB))
	s.Equal(int64(500), s.totalCredits(0))
	s.assertReconciled()
}

func (s *LedgerTestSuite) TestConcurrentHoldsNeverOverdraw() {
	buyer := s.newUser(100)
	seller := s.newUser(0)
	pkgID := s.newPackage(seller, 100)

	ids := make([]uuid.UUID, 2)
	for i := range ids {
		ids[i] = s.book(buyer, BookingLineArgs{SellerID: seller, PackageID: pkgID}).Booking.ID
		s.mustFire(ids[i], seller, domain.BookingEventAccept)
	}

	var insufficient atomic.Int32
	var g errgroup.Group
	for _, id := range ids {
		g.Go(func() error {
			_, err := s.fire(id, buyer, domain.BookingEventHold)
			if errors.Is(err, domain.ErrInsufficientFunds) {
				insufficient.Add(1)
				return nil
			}
			return err
		})
	}
	s.Require().NoError(g.Wait())

	s.Equal(int32(1), insufficient.Load())
	s.Equal(int64(0), s.balance(buyer))
	s.assertReconciled()
}

func (s *LedgerTestSuite) TestCancelRefundsEscrow() {
	buyer, sellerA, _, booking := s.twoSellerBooking()
	id := booking.Booking.ID
	s.mustFire(id, sellerA, domain.BookingEventAccept)
	s.mustFire(id, buyer, domain.BookingEventHold)
	s.Equal(int64(150), s.balance(buyer))

	cancelled, err := s.fire(id, buyer, domain.BookingEventCancel)
	s.Require().NoError(err)
	s.Equal(domain.BookingStatusCancelled, cancelled.Status)
	s.True(cancelled.IsTerminal())
	s.Equal(int64(500), s.balance(buyer))

	transactions, err := s.svc.WalletService.Transactions(s.T().Context(), buyer, 1)
	s.Require().NoError(err)
	s.Require().Len(transactions, 1)
	s.Equal(domain.KindRefund, transactions[0].Kind)
	s.Equal(int64(350), transactions[0].Amount)

	_, err = s.fire(id, buyer, domain.BookingEventHold)
	s.Require().ErrorIs(err, domain.ErrInvalidState)
	s.assertReconciled()
}

func (s *LedgerTestSuite) TestCreateBookingValidation() {
	buyer := s.newUser(0)
	seller := s.newUser(0)
	other := s.newUser(0)
	pkgID := s.newPackage(seller, 10)
	ownPkgID := s.newPackage(buyer, 10)

	cases := []struct {
		name    string
		lines   []BookingLineArgs
		wantErr error
	}{
		{name: "no lines", lines: nil, wantErr: domain.ErrValidation},
		{name: "unknown package", lines: []BookingLineArgs{{SellerID: seller, PackageID: uuid.New()}}, wantErr: domain.ErrRecordNotFound},
		{name: "seller mismatch", lines: []BookingLineArgs{{SellerID: other, PackageID: pkgID}}, wantErr: domain.ErrValidation},
		{name: "own package", lines: []BookingLineArgs{{SellerID: buyer, PackageID: ownPkgID}}, wantErr: domain.ErrValidation},
	}
	for _, t := range cases {
		s.Run(t.name, func() {
			_, err := s.svc.BookingService.Create(s.T().Context(), CreateBookingArgs{BuyerID: buyer, Lines: t.lines})
			s.Require().ErrorIs(err, t.wantErr)
		})
	}

	_, err := s.svc.CatalogService.Deactivate(s.T().Context(), seller, pkgID)
	s.Require().NoError(err)
	_, err = s.svc.BookingService.Create(s.T().Context(), CreateBookingArgs{
		BuyerID: buyer,
		Lines:   []BookingLineArgs{{SellerID: seller, PackageID: pkgID}},
	})
	s.Require().ErrorIs(err, domain.ErrValidation)
}

func (s *LedgerTestSuite) TestLinesKeepOrderAndPrice() {
	buyer := s.newUser(0)
	sellers := []uuid.UUID{s.newUser(0), s.newUser(0), s.newUser(0)}
	var args []BookingLineArgs
	for i, seller := range sellers {
		args = append(args, BookingLineArgs{SellerID: seller, PackageID: s.newPackage(seller, int64(10*(i+1)))})
	}
	created := s.book(buyer, args...)

	// price changes after booking do not touch the snapshot
	_, err := s.svc.CatalogService.Upsert(s.T().Context(), UpsertPackageArgs{
		ID:       &args[0].PackageID,
		SellerID: sellers[0],
		Fields:   repoargs.PackageFields{Title: "updated", Price: 999},
	})
	s.Require().NoError(err)

	details, err := s.svc.BookingService.Get(s.T().Context(), created.Booking.ID, sellers[1])
	s.Require().NoError(err)
	s.Require().Len(details.Lines, len(args))
	for i, line := range details.Lines {
		s.Equal(int32(i), line.Position) //nolint:gosec
		s.Equal(args[i].SellerID, line.SellerID)
		s.Equal(args[i].PackageID, line.PackageID)
		s.Equal(int64(10*(i+1)), line.PriceCredits)
	}
	s.Equal(int64(60), details.Booking.TotalCredits)
}

func (s *LedgerTestSuite) TestZeroTotalBooking() {
	buyer := s.newUser(0)
	seller := s.newUser(0)
	booking := s.book(buyer, BookingLineArgs{SellerID: seller, PackageID: s.newPackage(seller, 0)})
	id := booking.Booking.ID

	s.mustFire(id, seller, domain.BookingEventAccept)
	s.mustFire(id, buyer, domain.BookingEventHold)
	s.mustFire(id, seller, domain.BookingEventDeliver)
	s.mustFire(id, buyer, domain.BookingEventApprove)

	s.Equal(int64(0), s.balance(buyer))
	s.Equal(int64(0), s.balance(seller))
}

func (s *LedgerTestSuite) TestReviews() {
	buyer, sellerA, sellerB, booking := s.twoSellerBooking()
	id := booking.Booking.ID
	review := func(rating int32, by, seller uuid.UUID) error {
		_, err := s.svc.RecordsService.AddReview(s.T().Context(), AddReviewArgs{
			BookingID: id,
			BuyerID:   by,
			SellerID:  seller,
			Rating:    rating,
			Text:      gofakeit.Word(),
		})
		return err
	}

	s.mustFire(id, sellerA, domain.BookingEventAccept)
	s.mustFire(id, buyer, domain.BookingEventHold)
	s.mustFire(id, sellerA, domain.BookingEventDeliver)

	s.Require().ErrorIs(review(6, buyer, sellerA), domain.ErrValidation)
	s.Require().ErrorIs(review(3, buyer, sellerA), domain.ErrInvalidState)

	s.mustFire(id, buyer, domain.BookingEventApprove)
	s.Require().ErrorIs(review(3, sellerB, sellerA), domain.ErrForbidden)
	s.Require().ErrorIs(review(3, buyer, s.newUser(0)), domain.ErrValidation)
	s.Require().NoError(review(4, buyer, sellerA))
	s.Require().ErrorIs(review(5, buyer, sellerA), domain.ErrConflict)

	other := s.book(buyer, BookingLineArgs{SellerID: sellerA, PackageID: s.newPackage(sellerA, 0)})
	s.mustFire(other.Booking.ID, sellerA, domain.BookingEventAccept, domain.BookingEventDeliver)
	s.mustFire(other.Booking.ID, buyer, domain.BookingEventApprove)
	_, err := s.svc.RecordsService.AddReview(s.T().Context(), AddReviewArgs{
		BookingID: other.Booking.ID, BuyerID: buyer, SellerID: sellerA, Rating: 5,
	})
	s.Require().NoError(err)

	summary, err := s.svc.RecordsService.SellerReviews(s.T().Context(), sellerA, DefaultSellerReviewsLimit)
	s.Require().NoError(err)
	s.Equal(int64(2), summary.Count)
	s.Len(summary.Reviews, 2)
	s.Equal("4.5", summary.Average.String())
}

func (s *LedgerTestSuite) TestDeliveries() {
	buyer := s.newUser(0)
	seller := s.newUser(0)
	booking := s.book(buyer, BookingLineArgs{SellerID: seller, PackageID: s.newPackage(seller, 0)})
	id := booking.Booking.ID
	add := func(link string) (*domain.Delivery, error) {
		return s.svc.RecordsService.AddDelivery(s.T().Context(), AddDeliveryArgs{
			BookingID: id, SellerID: seller, Link: link,
		})
	}

	_, err := add("https://files.example.com/1")
	s.Require().ErrorIs(err, domain.ErrInvalidState)

	s.mustFire(id, seller, domain.BookingEventAccept)
	_, err = add("  ")
	s.Require().ErrorIs(err, domain.ErrValidation)
	_, err = add("https://files.example.com/1")
	s.Require().NoError(err)
	latest, err := add("https://files.example.com/2")
	s.Require().NoError(err)

	details, err := s.svc.BookingService.Get(s.T().Context(), id, buyer)
	s.Require().NoError(err)
	s.Equal(domain.BookingStatusDelivered, details.Booking.Status)
	s.NotNil(details.Booking.DeliveredAt)
	s.Require().NotNil(details.LatestDelivery)
	s.Equal(latest.ID, details.LatestDelivery.ID)

	_, err = s.svc.RecordsService.AddDelivery(s.T().Context(), AddDeliveryArgs{
		BookingID: id, SellerID: buyer, Link: "https://files.example.com/3",
	})
	s.Require().ErrorIs(err, domain.ErrForbidden)
}

func (s *LedgerTestSuite) TestMessages() {
	buyer := s.newUser(0)
	seller := s.newUser(0)
	booking := s.book(buyer, BookingLineArgs{SellerID: seller, PackageID: s.newPackage(seller, 10)})
	id := booking.Booking.ID
	ctx := s.T().Context()

	_, err := s.svc.MessageService.Post(ctx, id, buyer, "hello")
	s.Require().NoError(err)
	_, err = s.svc.MessageService.Post(ctx, id, seller, "  hi there  ")
	s.Require().NoError(err)

	_, err = s.svc.MessageService.Post(ctx, id, buyer, "   ")
	s.Require().ErrorIs(err, domain.ErrValidation)
	_, err = s.svc.MessageService.Post(ctx, id, s.newUser(0), "spam")
	s.Require().ErrorIs(err, domain.ErrForbidden)
	_, err = s.svc.MessageService.List(ctx, id, uuid.New())
	s.Require().ErrorIs(err, domain.ErrForbidden)

	messages, err := s.svc.MessageService.List(ctx, id, seller)
	s.Require().NoError(err)
	s.Require().Len(messages, 2)
	s.Equal("hello", messages[0].Body)
	s.Equal("hi there", messages[1].Body)
	s.Less(messages[0].ID, messages[1].ID)
}

func (s *LedgerTestSuite) TestCreditFromPaymentReplay() {
	user := s.newUser(0)

	wallet, applied, err := s.svc.WalletService.CreditFromPayment(s.T().Context(), user, 250, "cs_test_1")
	s.Require().NoError(err)
	s.True(applied)
	s.Equal(int64(250), wallet.Balance)

	wallet, applied, err = s.svc.WalletService.CreditFromPayment(s.T().Context(), user, 250, "cs_test_1")
	s.Require().NoError(err)
	s.False(applied)
	s.Equal(int64(250), wallet.Balance)
	s.assertReconciled()
}

func (s *LedgerTestSuite) TestRemovePackage() {
	buyer := s.newUser(0)
	seller := s.newUser(0)
	booked := s.newPackage(seller, 10)
	unused := s.newPackage(seller, 20)
	s.book(buyer, BookingLineArgs{SellerID: seller, PackageID: booked})

	removal, err := s.svc.CatalogService.Remove(s.T().Context(), seller, booked)
	s.Require().NoError(err)
	s.Equal(PackageDeactivated, removal)

	removal, err = s.svc.CatalogService.Remove(s.T().Context(), seller, unused)
	s.Require().NoError(err)
	s.Equal(PackageDeleted, removal)
	_, err = s.svc.CatalogService.Get(s.T().Context(), unused)
	s.Require().ErrorIs(err, domain.ErrRecordNotFound)

	_, err = s.svc.CatalogService.Remove(s.T().Context(), buyer, booked)
	s.Require().ErrorIs(err, domain.ErrForbidden)
}

func (s *LedgerTestSuite) TestPublicCatalogNeedsApproval() {
	seller := s.newUser(0)
	s.newPackage(seller, 10)

	packages, err := s.svc.CatalogService.ListPublic(s.T().Context(), repoargs.PackageFilter{})
	s.Require().NoError(err)
	s.Empty(packages)

	_, err = s.svc.ProfileService.SetApproved(s.T().Context(), seller, true)
	s.Require().NoError(err)
	packages, err = s.svc.CatalogService.ListPublic(s.T().Context(), repoargs.PackageFilter{Service: "photo"})
	s.Require().NoError(err)
	s.Len(packages, 1)

	packages, err = s.svc.CatalogService.ListPublic(s.T().Context(), repoargs.PackageFilter{Tier: "premium"})
	s.Require().NoError(err)
	s.Empty(packages)
}

func (s *LedgerTestSuite) TestEnsureProfileIsIdempotent() {
	id := uuid.New()
	first, err := s.svc.ProfileService.Ensure(context.Background(), id, "ann@example.com")
	s.Require().NoError(err)
	s.Equal("ann", first.DisplayName)
	s.Equal(domain.RoleClient, first.Role)

	second, err := s.svc.ProfileService.Ensure(context.Background(), id, "other@example.com")
	s.Require().NoError(err)
	s.Equal(first.Email, second.Email)

	s.Equal(int64(0), s.balance(id))
}

// rawPackage stores a package without the catalog checks.
func (s *LedgerTestSuite) rawPackage(sellerID uuid.UUID, price int64) uuid.UUID {
	repo, err := uow.GetRepositoryAs[PackageRepository](s.uow, uow.RepositoryName(repoargs.PackageRepoName))
	s.Require().NoError(err)
	pkg, err := repo.Create(s.T().Context(), repoargs.CreatePackage{
		SellerID:      sellerID,
		PackageFields: repoargs.PackageFields{Title: gofakeit.Word(), Price: price},
	})
	s.Require().NoError(err)
	return pkg.ID
}

func (s *LedgerTestSuite) payoutCredits(userID uuid.UUID) int {
	transactions, err := s.svc.WalletService.Transactions(s.T().Context(), userID, 100)
	s.Require().NoError(err)
	var n int
	for _, t := range transactions {
		if t.Kind == domain.KindPayoutCredit {
			n++
		}
	}
	return n
}

func (s *LedgerTestSuite) TestPackagePriceIsCapped() {
	seller := s.newUser(0)
	_, err := s.svc.CatalogService.Upsert(s.T().Context(), UpsertPackageArgs{
		SellerID: seller,
		Fields:   repoargs.PackageFields{Title: gofakeit.Word(), Price: domain.MaxPriceCredits + 1},
	})
	s.Require().ErrorIs(err, domain.ErrValidation)

	s.newPackage(seller, domain.MaxPriceCredits)
}

func (s *LedgerTestSuite) TestBookingTotalOutOfRange() {
	buyer := s.newUser(0)
	sellerA := s.newUser(0)
	sellerB := s.newUser(0)

	_, err := s.svc.BookingService.Create(s.T().Context(), CreateBookingArgs{
		BuyerID: buyer,
		Lines: []BookingLineArgs{
			{SellerID: sellerA, PackageID: s.rawPackage(sellerA, math.MaxInt64)},
			{SellerID: sellerB, PackageID: s.rawPackage(sellerB, 2)},
		},
	})
	s.Require().ErrorIs(err, domain.ErrValidation)
	var valErr *domain.ValidationError
	s.Require().ErrorAs(err, &valErr)
	s.Equal("lines", valErr.Field)

	bookings, err := s.svc.BookingService.ListMine(s.T().Context(), buyer, "")
	s.Require().NoError(err)
	s.Empty(bookings)
	s.Equal(int64(0), s.balance(sellerA))
	s.Equal(int64(0), s.balance(sellerB))
}

func (s *LedgerTestSuite) TestTopUpPastBalanceRange() {
	user := s.newUser(math.MaxInt64)

	_, err := s.svc.WalletService.DemoTopUp(s.T().Context(), user, 1)
	s.Require().ErrorIs(err, domain.ErrValidation)
	s.Require().NotErrorIs(err, domain.ErrInsufficientFunds)
	s.Equal(int64(math.MaxInt64), s.balance(user))

	_, _, err = s.svc.WalletService.CreditFromPayment(s.T().Context(), user, 1, "cs_overflow")
	s.Require().ErrorIs(err, domain.ErrValidation)

	transactions, err := s.svc.WalletService.Transactions(s.T().Context(), user, 10)
	s.Require().NoError(err)
	s.Len(transactions, 1)
	s.assertReconciled()
}

func (s *LedgerTestSuite) TestApproveUnfundedPaysNothing() {
	buyer, sellerA, sellerB, booking := s.twoSellerBooking()
	id := booking.Booking.ID

	s.mustFire(id, sellerA, domain.BookingEventAccept, domain.BookingEventDeliver)
	approved, err := s.fire(id, buyer, domain.BookingEventApprove)
	s.Require().NoError(err)
	s.Equal(domain.BookingStatusApproved, approved.Status)
	s.False(approved.Funded)

	check := func() {
		s.Equal(int64(500), s.balance(buyer))
		s.Equal(int64(0), s.balance(sellerA))
		s.Equal(int64(0), s.balance(sellerB))
		s.Zero(s.payoutCredits(sellerA))
		s.Zero(s.payoutCredits(sellerB))
		details, getErr := s.svc.BookingService.Get(s.T().Context(), id, buyer)
		s.Require().NoError(getErr)
		s.Equal(domain.BookingStatusApproved, details.Booking.Status)
		s.Empty(details.Payouts)
	}
	check()

	s.mustFire(id, buyer, domain.BookingEventApprove)
	check()
	s.assertReconciled()
}

func (s *LedgerTestSuite) TestPayoutRecordFailureRollsBackApprove() {
	buyer, sellerA, sellerB, booking := s.twoSellerBooking()
	id := booking.Booking.ID
	s.mustFire(id, sellerA, domain.BookingEventAccept)
	s.mustFire(id, buyer, domain.BookingEventHold)
	s.mustFire(id, sellerA, domain.BookingEventDeliver)

	s.store.InjectFailure(func(op string, key uuid.UUID) error {
		if op == memrepo.OpPayoutCreate && key == sellerB {
			return errInjected
		}
		return nil
	})
	_, err := s.fire(id, buyer, domain.BookingEventApprove)
	s.Require().ErrorIs(err, errInjected)

	details, err := s.svc.BookingService.Get(s.T().Context(), id, buyer)
	s.Require().NoError(err)
	s.Equal(domain.BookingStatusDelivered, details.Booking.Status)
	s.Empty(details.Payouts)
	s.Equal(int64(0), s.balance(sellerA))

	s.store.InjectFailure(nil)
	s.mustFire(id, buyer, domain.BookingEventApprove, domain.BookingEventApprove)

	details, err = s.svc.BookingService.Get(s.T().Context(), id, buyer)
	s.Require().NoError(err)
	s.Equal(domain.BookingStatusApproved, details.Booking.Status)
	s.Require().Len(details.Payouts, 2)
	s.Equal(sellerA, details.Payouts[0].SellerID)
	s.Equal(int64(200), details.Payouts[0].Amount)
	s.Equal(sellerB, details.Payouts[1].SellerID)
	s.Equal(int64(150), details.Payouts[1].Amount)
	s.Equal(int64(200), s.balance(sellerA))
	s.Equal(int64(150), s.balance(sellerB))
	s.Equal(1, s.payoutCredits(sellerA))
	s.Equal(1, s.payoutCredits(sellerB))
	s.Equal(int64(500), s.totalCredits(0))
	s.assertReconciled()
}

func (s *LedgerTestSuite) TestHoldRollsBackOnLateFailure() {
	buyer, sellerA, _, booking := s.twoSellerBooking()
	id := booking.Booking.ID
	s.mustFire(id, sellerA, domain.BookingEventAccept)

	cases := []struct {
		name string
		op   string
		key  uuid.UUID
	}{
		{name: "ledger record", op: memrepo.OpTransactionCreate, key: buyer},
		{name: "booking state", op: memrepo.OpBookingUpdateState, key: id},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			s.store.InjectFailure(func(op string, key uuid.UUID) error {
				if op == tc.op && key == tc.key {
					return errInjected
				}
				return nil
			})
			defer s.store.InjectFailure(nil)

			_, err := s.fire(id, buyer, domain.BookingEventHold)
			s.Require().ErrorIs(err, errInjected)
			s.Equal(int64(500), s.balance(buyer))

			details, err := s.svc.BookingService.Get(s.T().Context(), id, buyer)
			s.Require().NoError(err)
			s.False(details.Booking.Funded)
		})
	}

	s.mustFire(id, buyer, domain.BookingEventHold)
	s.Equal(int64(150), s.balance(buyer))
	s.assertReconciled()
}

func (s *LedgerTestSuite) TestHoldOnApprovedBookingIsNoOp() {
	buyer, sellerA, sellerB, booking := s.twoSellerBooking()
	id := booking.Booking.ID
	s.mustFire(id, sellerA, domain.BookingEventAccept)
	s.mustFire(id, buyer, domain.BookingEventHold)
	s.mustFire(id, sellerA, domain.BookingEventDeliver)
	s.mustFire(id, buyer, domain.BookingEventApprove)

	held, err := s.fire(id, buyer, domain.BookingEventHold)
	s.Require().NoError(err)
	s.Equal(domain.BookingStatusApproved, held.Status)
	s.True(held.Funded)

	s.Equal(int64(150), s.balance(buyer))
	s.Equal(int64(200), s.balance(sellerA))
	s.Equal(int64(150), s.balance(sellerB))
	s.assertReconciled()
}
