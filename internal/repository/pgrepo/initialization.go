package pgrepo

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/fsdevblog/creatorbook/internal/repository/repoargs"
	"github.com/fsdevblog/creatorbook/pkg/uow"
	"github.com/golang-migrate/migrate/v4"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Connect opens the pool, retrying while the database is not reachable yet, and applies migrations
// from migrationsDir.
func Connect(ctx context.Context, migrationsDir, dsn string, l *logrus.Logger) (*pgxpool.Pool, error) {
	type connResult struct {
		conn *pgxpool.Pool
		err  error
	}
	connChan := make(chan connResult, 1)
	wg := new(sync.WaitGroup)
	wg.Add(1)

	go func(wg *sync.WaitGroup) {
		defer wg.Done()
		var attempts uint
		var maxAttempts uint = 30
		var retryInterval = 3 * time.Second

		for {
			select {
			case <-ctx.Done():
				connChan <- connResult{err: ctx.Err()}
				return
			default:
				conn, connErr := newPostgresConnection(ctx, dsn)
				if connErr != nil {
					attempts++
					if attempts > maxAttempts {
						connChan <- connResult{
							err: fmt.Errorf("init postgres connection after %d attempts: %w", maxAttempts, connErr),
						}
						return
					}
					l.WithError(connErr).
						WithField("CurrentAttempt", fmt.Sprintf("#%d / %d", attempts, maxAttempts)).
						Warnf("init postgres connection error, retrying in %.f seconds", retryInterval.Seconds())
					time.Sleep(retryInterval)
					continue
				}
				connChan <- connResult{conn: conn}
				return
			}
		}
	}(wg)

	wg.Wait()
	close(connChan)

	res := <-connChan
	if res.err != nil {
		return nil, errors.Wrap(res.err, "init postgres connection")
	}

	if err := Migrate(migrationsDir, dsn); err != nil {
		res.conn.Close()
		return nil, err
	}
	return res.conn, nil
}

func newPostgresConnection(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	poolConfig, confErr := pgxpool.ParseConfig(dsn)
	if confErr != nil {
		return nil, fmt.Errorf("parse postgres config: %s", confErr.Error())
	}
	pool, poolErr := pgxpool.NewWithConfig(ctx, poolConfig)
	if poolErr != nil {
		return nil, fmt.Errorf("failed to create pool: %s", poolErr.Error())
	}

	if pingErr := pool.Ping(ctx); pingErr != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to connect to postgres: %s", pingErr.Error())
	}

	return pool, nil
}

// Migrate applies all pending migrations. The postgres database driver and the file source driver must be
// registered by the caller with blank imports.
func Migrate(dir string, dsn string) error {
	m, mErr := migrate.New("file://"+dir, dsn)
	if mErr != nil {
		return fmt.Errorf("failed to create migrate instance: %w", mErr)
	}
	defer func() {
		_, _ = m.Close()
	}()
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

// NewUnitOfWork unit of work over the pool with every repository of the package registered.
func NewUnitOfWork(conn *pgxpool.Pool, retry uow.RetryPolicy) (*uow.UnitOfWork, error) {
	unitOfWork := uow.NewUnitOfWork(conn, uow.WithRetry(retry))

	factories := map[repoargs.RepositoryName]uow.RepositoryFactory{
		repoargs.ProfileRepoName: func(dbtx uow.DBTX) uow.Repository {
			return NewProfileRepository(dbtx)
		},
		repoargs.WalletRepoName: func(dbtx uow.DBTX) uow.Repository {
			return NewWalletRepository(dbtx)
		},
		repoargs.CreditsTransactionRepoName: func(dbtx uow.DBTX) uow.Repository {
			return NewCreditsTransactionRepository(dbtx)
		},
		repoargs.PackageRepoName: func(dbtx uow.DBTX) uow.Repository {
			return NewPackageRepository(dbtx)
		},
		repoargs.BookingRepoName: func(dbtx uow.DBTX) uow.Repository {
			return NewBookingRepository(dbtx)
		},
		repoargs.PayoutRepoName: func(dbtx uow.DBTX) uow.Repository {
			return NewPayoutRepository(dbtx)
		},
		repoargs.DeliveryRepoName: func(dbtx uow.DBTX) uow.Repository {
			return NewDeliveryRepository(dbtx)
		},
		repoargs.ReviewRepoName: func(dbtx uow.DBTX) uow.Repository {
			return NewReviewRepository(dbtx)
		},
		repoargs.MessageRepoName: func(dbtx uow.DBTX) uow.Repository {
			return NewMessageRepository(dbtx)
		},
	}
	for name, factory := range factories {
		if regErr := unitOfWork.Register(uow.RepositoryName(name), factory); regErr != nil {
			return nil, fmt.Errorf("init UOW: %s", regErr.Error())
		}
	}
	return unitOfWork, nil
}
