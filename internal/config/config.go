package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type StorageType string

const (
	StoragePostgres StorageType = "postgres"
	StorageMemory   StorageType = "memory"
)

const (
	defaultRunAddress        = "localhost:8080"
	defaultMigrationsDir     = "internal/db/migrations"
	defaultTxMaxAttempts     = 3
	defaultReconcileInterval = time.Minute
	defaultReconcileWorkers  = 4
	defaultReconcileBatch    = 100
)

var (
	ErrNoDatabaseDSN    = errors.New("database DSN is not set")
	ErrNoJWTSecret      = errors.New("jwt secret is not set")
	ErrUnknownStorage   = errors.New("unknown storage")
	ErrBadTxMaxAttempts = errors.New("tx max attempts must be positive")
)

type Config struct {
	RunAddress    string      `env:"RUN_ADDRESS"`
	Storage       StorageType `env:"STORAGE"`
	DatabaseDSN   string      `env:"DATABASE_URI"`
	MigrationsDir string      `env:"MIGRATIONS_DIR"`
	JWTSecret     string      `env:"JWT_SECRET"`
	// WebhookSecret empty rejects every webhook call.
	WebhookSecret     string        `env:"PAYMENT_WEBHOOK_SECRET"`
	DemoTopUpEnabled  bool          `env:"DEMO_TOPUP_ENABLED"`
	TxMaxAttempts     uint          `env:"TX_MAX_ATTEMPTS"`
	ReconcileInterval time.Duration `env:"RECONCILE_INTERVAL"`
	ReconcileWorkers  uint          `env:"RECONCILE_WORKERS"`
	ReconcileBatch    uint          `env:"RECONCILE_BATCH"`
}

// LoadConfig environment wins over flags. Variables from a `.env` file in the working directory are loaded
// first and never override the real environment.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %s", err.Error())
	}

	var flagsConfig Config
	loadFlags(flag.CommandLine, os.Args[1:], &flagsConfig)

	return parse(&flagsConfig)
}

func MustLoadConfig() *Config {
	config, err := LoadConfig()
	if err != nil {
		panic(err)
	}
	return config
}

func parse(flagsConfig *Config) (*Config, error) {
	var envConfig Config
	if envParseErr := env.Parse(&envConfig); envParseErr != nil {
		return nil, fmt.Errorf("parse env config: %s", envParseErr.Error())
	}

	conf := mergeConfig(&envConfig, flagsConfig)
	if err := conf.validate(); err != nil {
		return nil, err
	}
	return conf, nil
}

func (c *Config) validate() error {
	switch c.Storage {
	case StoragePostgres:
		if c.DatabaseDSN == "" {
			return ErrNoDatabaseDSN
		}
	case StorageMemory:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownStorage, c.Storage)
	}
	if c.JWTSecret == "" {
		return ErrNoJWTSecret
	}
	if c.TxMaxAttempts == 0 {
		return ErrBadTxMaxAttempts
	}
	return nil
}

func loadFlags(fs *flag.FlagSet, args []string, flagConfig *Config) {
	var storage string
	fs.StringVar(&flagConfig.RunAddress, "a", defaultRunAddress, "Run address in format host:port")
	fs.StringVar(&storage, "s", string(StoragePostgres), "Storage: postgres or memory")
	fs.StringVar(&flagConfig.DatabaseDSN, "d", "", "Database DSN")
	fs.StringVar(&flagConfig.MigrationsDir, "m", defaultMigrationsDir, "Database migrations directory")
	fs.StringVar(&flagConfig.JWTSecret, "jwt-secret", "", "HS256 secret of the identity provider tokens")
	fs.StringVar(&flagConfig.WebhookSecret, "webhook-secret", "", "Payment webhook signing secret")
	fs.BoolVar(&flagConfig.DemoTopUpEnabled, "demo-topup", false, "Enable demo wallet top-ups")
	fs.UintVar(&flagConfig.TxMaxAttempts, "tx-attempts", defaultTxMaxAttempts, "Attempts per transaction on transient failures")
	fs.DurationVar(&flagConfig.ReconcileInterval, "reconcile-interval", defaultReconcileInterval, "Pause between reconcile passes")
	fs.UintVar(&flagConfig.ReconcileWorkers, "reconcile-workers", defaultReconcileWorkers, "Concurrent wallet checks")
	fs.UintVar(&flagConfig.ReconcileBatch, "reconcile-batch", defaultReconcileBatch, "Wallets per reconcile page")

	_ = fs.Parse(args)
	flagConfig.Storage = StorageType(storage)
}

func mergeConfig(envConfig, flagsConfig *Config) *Config {
	return &Config{
		RunAddress:        defaultIfBlank(envConfig.RunAddress, flagsConfig.RunAddress),
		Storage:           defaultIfBlank(envConfig.Storage, flagsConfig.Storage),
		DatabaseDSN:       defaultIfBlank(envConfig.DatabaseDSN, flagsConfig.DatabaseDSN),
		MigrationsDir:     defaultIfBlank(envConfig.MigrationsDir, flagsConfig.MigrationsDir),
		JWTSecret:         defaultIfBlank(envConfig.JWTSecret, flagsConfig.JWTSecret),
		WebhookSecret:     defaultIfBlank(envConfig.WebhookSecret, flagsConfig.WebhookSecret),
		DemoTopUpEnabled:  envConfig.DemoTopUpEnabled || flagsConfig.DemoTopUpEnabled,
		TxMaxAttempts:     defaultIfBlank(envConfig.TxMaxAttempts, flagsConfig.TxMaxAttempts),
		ReconcileInterval: defaultIfBlank(envConfig.ReconcileInterval, flagsConfig.ReconcileInterval),
		ReconcileWorkers:  defaultIfBlank(envConfig.ReconcileWorkers, flagsConfig.ReconcileWorkers),
		ReconcileBatch:    defaultIfBlank(envConfig.ReconcileBatch, flagsConfig.ReconcileBatch),
	}
}

func defaultIfBlank[T comparable](value T, defaultValue T) T {
	var zero T
	if value == zero {
		return defaultValue
	}
	return value
}
