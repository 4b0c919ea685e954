package app

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/fsdevblog/creatorbook/internal/config"
	"github.com/fsdevblog/creatorbook/internal/repository/memrepo"
	"github.com/fsdevblog/creatorbook/internal/repository/pgrepo"
	"github.com/fsdevblog/creatorbook/internal/service"
	"github.com/fsdevblog/creatorbook/internal/transport/api"
	"github.com/fsdevblog/creatorbook/internal/transport/reconcile"
	"github.com/fsdevblog/creatorbook/pkg/uow"
	"github.com/sirupsen/logrus"

	// driver for migration applying postgres.
	_ "github.com/golang-migrate/migrate/v4/database/postgres" //nolint:revive
	// driver to get migrations from files (*.sql in our case).
	_ "github.com/golang-migrate/migrate/v4/source/file" //nolint:revive
)

type App struct {
	Config *config.Config
	Logger *logrus.Logger
}

func New(conf *config.Config, l *logrus.Logger) *App {
	return &App{
		Config: conf,
		Logger: l,
	}
}

func (a *App) Run() error {
	notifyCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a.Logger.WithFields(logrus.Fields{
		"address":    a.Config.RunAddress,
		"storage":    a.Config.Storage,
		"demoTopUp":  a.Config.DemoTopUpEnabled,
		"txAttempts": a.Config.TxMaxAttempts,
	}).Info("starting app")

	unitOfWork, pinger, closeFn, err := a.openStorage(notifyCtx)
	if err != nil {
		return fmt.Errorf("app run: %s", err.Error())
	}
	defer closeFn()

	services, sErr := service.Factory(unitOfWork, service.FactoryArgs{DemoTopUpEnabled: a.Config.DemoTopUpEnabled})
	if sErr != nil {
		return fmt.Errorf("app run: %s", sErr.Error())
	}

	router, rErr := api.New(api.RouterArgs{
		Logger:         a.Logger,
		ProfileService: services.ProfileService,
		WalletService:  services.WalletService,
		CatalogService: services.CatalogService,
		BookingService: services.BookingService,
		RecordsService: services.RecordsService,
		MessageService: services.MessageService,
		Pinger:         pinger,
		JWTSecretKey:   []byte(a.Config.JWTSecret),
		WebhookSecret:  []byte(a.Config.WebhookSecret),
	})
	if rErr != nil {
		return fmt.Errorf("app run: %s", rErr.Error())
	}

	errChan := make(chan error, 1)

	go func() {
		if runErr := router.Run(a.Config.RunAddress); runErr != nil {
			errChan <- runErr
		}
	}()

	processor := reconcile.New(services.WalletService, a.Logger).
		SetInterval(a.Config.ReconcileInterval).
		SetWorkers(a.Config.ReconcileWorkers).
		SetBatchSize(a.Config.ReconcileBatch)

	go processor.Run(notifyCtx)

	select {
	case <-notifyCtx.Done():
		return notifyCtx.Err() //nolint:wrapcheck
	case err := <-errChan:
		return err
	}
}

// openStorage builds the unit of work of the configured storage. closeFn releases its resources.
func (a *App) openStorage(ctx context.Context) (uow.UOW, api.Pinger, func(), error) {
	retry := uow.DefaultRetryPolicy()
	retry.MaxAttempts = a.Config.TxMaxAttempts

	if a.Config.Storage == config.StorageMemory {
		a.Logger.Warn("in-memory storage: all data is lost on shutdown")
		return memrepo.NewUnitOfWork(memrepo.NewStore(), retry), nil, func() {}, nil
	}

	conn, connErr := pgrepo.Connect(ctx, a.Config.MigrationsDir, a.Config.DatabaseDSN, a.Logger)
	if connErr != nil {
		return nil, nil, nil, fmt.Errorf("open storage: %w", connErr)
	}
	retry.Retryable = pgrepo.IsRetryable

	unitOfWork, uowErr := pgrepo.NewUnitOfWork(conn, retry)
	if uowErr != nil {
		conn.Close()
		return nil, nil, nil, fmt.Errorf("open storage: %w", uowErr)
	}
	return unitOfWork, conn, conn.Close, nil
}
