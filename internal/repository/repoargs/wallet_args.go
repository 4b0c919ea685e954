package repoargs

import (
	"github.com/fsdevblog/creatorbook/internal/domain"
	"github.com/google/uuid"
)

type AdjustWallet struct {
	UserID uuid.UUID
	Delta  int64
}

type CreditsTransactionCreate struct {
	UserID      uuid.UUID
	Kind        domain.TransactionKind
	Amount      int64
	BookingID   *uuid.UUID
	ExternalRef *string
	Note        string
}

// LedgerBalance pairs a wallet balance with the sum of its ledger.
type LedgerBalance struct {
	UserID    uuid.UUID
	Balance   int64
	LedgerSum int64
}
