// Package memrepo keeps the whole data set in process memory. It backs the service tests and the STORAGE=memory
// development mode. Transactions are serialised by a single store lock and run on a copy of the state, which is
// swapped in on commit.
package memrepo

import (
	"context"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/fsdevblog/creatorbook/internal/domain"
	"github.com/fsdevblog/creatorbook/internal/repository/repoargs"
	"github.com/fsdevblog/creatorbook/pkg/uow"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var ErrFactoriesUnsupported = errors.New("[memrepo] repository factories are not supported")

// Operations that can be made to fail with Store.InjectFailure.
const (
	OpWalletAdjust       = "wallet.adjust"
	OpTransactionCreate  = "credits_transaction.create"
	OpPayoutCreate       = "payout.create"
	OpBookingUpdateState = "booking.update_state"
)

// FailureFunc returns a non nil error to make the operation op on key fail.
type FailureFunc func(op string, key uuid.UUID) error

type state struct {
	profiles     map[uuid.UUID]domain.Profile
	wallets      map[uuid.UUID]domain.Wallet
	transactions []domain.CreditsTransaction
	packages     map[uuid.UUID]domain.Package
	bookings     []domain.Booking
	lines        map[uuid.UUID][]domain.BookingLine
	payouts      []domain.Payout
	deliveries   []domain.Delivery
	reviews      []domain.Review
	messages     []domain.Message

	nextTransactionID int64
	nextMessageID     int64
}

func newState() *state {
	return &state{
		profiles: make(map[uuid.UUID]domain.Profile),
		wallets:  make(map[uuid.UUID]domain.Wallet),
		packages: make(map[uuid.UUID]domain.Package),
		lines:    make(map[uuid.UUID][]domain.BookingLine),
	}
}

// clone line slices are never modified after creation and are shared.
func (s *state) clone() *state {
	return &state{
		profiles:          maps.Clone(s.profiles),
		wallets:           maps.Clone(s.wallets),
		transactions:      slices.Clone(s.transactions),
		packages:          maps.Clone(s.packages),
		bookings:          slices.Clone(s.bookings),
		lines:             maps.Clone(s.lines),
		payouts:           slices.Clone(s.payouts),
		deliveries:        slices.Clone(s.deliveries),
		reviews:           slices.Clone(s.reviews),
		messages:          slices.Clone(s.messages),
		nextTransactionID: s.nextTransactionID,
		nextMessageID:     s.nextMessageID,
	}
}

type Store struct {
	mu      sync.Mutex
	st      *state
	failure FailureFunc
	now     func() time.Time
}

func NewStore() *Store {
	return &Store{
		st:  newState(),
		now: time.Now,
	}
}

// InjectFailure installs fn, nil removes it.
func (s *Store) InjectFailure(fn FailureFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failure = fn
}

func (s *Store) fail(op string, key uuid.UUID) error {
	if s.failure == nil {
		return nil
	}
	if err := s.failure(op, key); err != nil {
		return errors.Wrapf(err, "[memrepo/%s %s]", op, key)
	}
	return nil
}

// view the transaction state, or the committed state under the store lock outside a transaction.
type view struct {
	store *Store
	tx    *state
}

func (v view) open() (*state, func()) {
	if v.tx != nil {
		return v.tx, func() {}
	}
	v.store.mu.Lock()
	return v.store.st, v.store.mu.Unlock
}

var factories = map[uow.RepositoryName]func(view) uow.Repository{
	uow.RepositoryName(repoargs.ProfileRepoName):            func(v view) uow.Repository { return &ProfileRepository{v} },
	uow.RepositoryName(repoargs.WalletRepoName):             func(v view) uow.Repository { return &WalletRepository{v} },
	uow.RepositoryName(repoargs.CreditsTransactionRepoName): func(v view) uow.Repository { return &CreditsTransactionRepository{v} },
	uow.RepositoryName(repoargs.PackageRepoName):            func(v view) uow.Repository { return &PackageRepository{v} },
	uow.RepositoryName(repoargs.BookingRepoName):            func(v view) uow.Repository { return &BookingRepository{v} },
	uow.RepositoryName(repoargs.PayoutRepoName):             func(v view) uow.Repository { return &PayoutRepository{v} },
	uow.RepositoryName(repoargs.DeliveryRepoName):           func(v view) uow.Repository { return &DeliveryRepository{v} },
	uow.RepositoryName(repoargs.ReviewRepoName):             func(v view) uow.Repository { return &ReviewRepository{v} },
	uow.RepositoryName(repoargs.MessageRepoName):            func(v view) uow.Repository { return &MessageRepository{v} },
}

type UnitOfWork struct {
	store *Store
	retry uow.RetryPolicy
}

// NewUnitOfWork every repository of the application is available without registration.
func NewUnitOfWork(store *Store, retry uow.RetryPolicy) *UnitOfWork {
	return &UnitOfWork{store: store, retry: retry}
}

func (u *UnitOfWork) Register(uow.RepositoryName, uow.RepositoryFactory) error {
	return ErrFactoriesUnsupported
}

func (u *UnitOfWork) Do(ctx context.Context, fn func(context.Context, uow.TX) error) error {
	return u.retry.Run(ctx, func() error {
		return u.do(ctx, fn)
	})
}

func (u *UnitOfWork) do(ctx context.Context, fn func(context.Context, uow.TX) error) error {
	if err := ctx.Err(); err != nil {
		return err //nolint:wrapcheck
	}

	u.store.mu.Lock()
	defer u.store.mu.Unlock()

	work := u.store.st.clone()
	if err := fn(ctx, &transaction{view: view{store: u.store, tx: work}}); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err //nolint:wrapcheck
	}
	u.store.st = work
	return nil
}

func (u *UnitOfWork) GetRepository(name uow.RepositoryName) (uow.Repository, error) {
	factory, ok := factories[name]
	if !ok {
		return nil, uow.ErrRepositoryNotRegistered
	}
	return factory(view{store: u.store}), nil
}

type transaction struct {
	view view
}

func (t *transaction) Get(name uow.RepositoryName) (uow.Repository, error) {
	factory, ok := factories[name]
	if !ok {
		return nil, uow.ErrRepositoryNotRegistered
	}
	return factory(t.view), nil
}

func notFound(format string, args ...any) error {
	return errors.Wrapf(domain.ErrRecordNotFound, "[memrepo/"+format+"]", args...)
}

func duplicate(format string, args ...any) error {
	return errors.Wrapf(domain.ErrDuplicateKey, "[memrepo/"+format+"]", args...)
}

func limited[T any](items []T, limit uint) []T {
	if uint(len(items)) > limit {
		return items[:limit]
	}
	return items
}
