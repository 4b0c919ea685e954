package reconcile

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"github.com/fsdevblog/creatorbook/internal/repository/repoargs"
	"github.com/google/uuid"
)

type Servicer interface {
	WalletsForReconcile(ctx context.Context, after uuid.UUID, limit uint) ([]uuid.UUID, error)
	ReconcileWallet(ctx context.Context, userID uuid.UUID) (*repoargs.LedgerBalance, error)
}
