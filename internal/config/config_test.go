package config

import (
	"flag"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flagsOf(t *testing.T, args ...string) *Config {
	t.Helper()
	var conf Config
	loadFlags(flag.NewFlagSet("test", flag.ContinueOnError), args, &conf)
	return &conf
}

// clearEnv isolates a test from variables of the real environment.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"RUN_ADDRESS", "STORAGE", "DATABASE_URI", "MIGRATIONS_DIR", "JWT_SECRET", "PAYMENT_WEBHOOK_SECRET",
		"DEMO_TOPUP_ENABLED", "TX_MAX_ATTEMPTS", "RECONCILE_INTERVAL", "RECONCILE_WORKERS", "RECONCILE_BATCH",
	} {
		t.Setenv(key, "")
	}
}

func TestParse_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("DATABASE_URI", "postgres://localhost/creatorbook")

	conf, err := parse(flagsOf(t))
	require.NoError(t, err)
	assert.Equal(t, defaultRunAddress, conf.RunAddress)
	assert.Equal(t, StoragePostgres, conf.Storage)
	assert.Equal(t, uint(defaultTxMaxAttempts), conf.TxMaxAttempts)
	assert.Equal(t, defaultReconcileInterval, conf.ReconcileInterval)
	assert.False(t, conf.DemoTopUpEnabled)
}

func TestParse_EnvWinsOverFlags(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("STORAGE", "memory")
	t.Setenv("RECONCILE_INTERVAL", "30s")
	t.Setenv("TX_MAX_ATTEMPTS", "5")

	conf, err := parse(flagsOf(t, "-jwt-secret", "from-flag", "-reconcile-interval", "2m", "-demo-topup"))
	require.NoError(t, err)
	assert.Equal(t, "from-env", conf.JWTSecret)
	assert.Equal(t, StorageMemory, conf.Storage)
	assert.Equal(t, 30*time.Second, conf.ReconcileInterval)
	assert.Equal(t, uint(5), conf.TxMaxAttempts)
	assert.True(t, conf.DemoTopUpEnabled)
}

func TestParse_Validation(t *testing.T) {
	cases := []struct {
		name    string
		env     map[string]string
		wantErr error
	}{
		{
			name:    "postgres without dsn",
			env:     map[string]string{"JWT_SECRET": "secret"},
			wantErr: ErrNoDatabaseDSN,
		}, {
			name:    "memory needs no dsn but a secret",
			env:     map[string]string{"STORAGE": "memory"},
			wantErr: ErrNoJWTSecret,
		}, {
			name:    "unknown storage",
			env:     map[string]string{"STORAGE": "redis", "JWT_SECRET": "secret"},
			wantErr: ErrUnknownStorage,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			_, err := parse(flagsOf(t))
			require.ErrorIs(t, err, tc.wantErr)
		})
	}
}
