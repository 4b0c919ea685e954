package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/fsdevblog/creatorbook/internal/domain"
	"github.com/fsdevblog/creatorbook/internal/repository/repoargs"
	"github.com/fsdevblog/creatorbook/pkg/uow"
	"github.com/google/uuid"
)

const (
	noteEscrowHold   = "Escrow hold"
	noteEscrowRefund = "Escrow refund"
	notePayout       = "Payout credits"
	noteDemoTopUp    = "Demo credits"
	notePayment      = "Purchased credits"
)

type WalletService struct {
	uow              uow.UOW
	walletRepo       WalletRepository
	transRepo        CreditsTransactionRepository
	demoTopUpEnabled bool
}

func NewWalletService(u uow.UOW, demoTopUpEnabled bool) (*WalletService, error) {
	walletRepo, err := uow.GetRepositoryAs[WalletRepository](u, uow.RepositoryName(repoargs.WalletRepoName))
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	transRepo, err := uow.GetRepositoryAs[CreditsTransactionRepository](
		u,
		uow.RepositoryName(repoargs.CreditsTransactionRepoName),
	)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return &WalletService{
		uow:              u,
		walletRepo:       walletRepo,
		transRepo:        transRepo,
		demoTopUpEnabled: demoTopUpEnabled,
	}, nil
}

type AdjustArgs struct {
	UserID      uuid.UUID
	Delta       int64
	Kind        domain.TransactionKind
	BookingID   *uuid.UUID
	ExternalRef *string
	Note        string
}

// GetBalance returns the wallet or domain.ErrRecordNotFound.
func (w *WalletService) GetBalance(ctx context.Context, userID uuid.UUID) (*domain.Wallet, error) {
	wallet, err := w.walletRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("getting balance: %w", err)
	}
	return wallet, nil
}

// Transactions newest first.
func (w *WalletService) Transactions(
	ctx context.Context,
	userID uuid.UUID,
	limit uint,
) ([]domain.CreditsTransaction, error) {
	transactions, err := w.transRepo.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	return transactions, nil
}

// Adjust is the only way to change a balance: the new balance and its ledger entry commit together.
func (w *WalletService) Adjust(ctx context.Context, args AdjustArgs) (*domain.Wallet, error) {
	var wallet *domain.Wallet
	txErr := w.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		var err error
		wallet, err = adjustWallet(c, tx, args)
		return err
	})
	if txErr != nil {
		return nil, fmt.Errorf("adjusting wallet: %w", txErr)
	}
	return wallet, nil
}

// DemoTopUp credits amount demo credits. Available only when enabled in the configuration.
func (w *WalletService) DemoTopUp(ctx context.Context, userID uuid.UUID, amount int64) (*domain.Wallet, error) {
	if !w.demoTopUpEnabled {
		return nil, fmt.Errorf("demo top-up: %w: disabled", domain.ErrForbidden)
	}
	if amount <= 0 {
		return nil, fmt.Errorf("demo top-up: %w", domain.NewValidationError("amount", "must be positive"))
	}
	return w.Adjust(ctx, AdjustArgs{
		UserID: userID,
		Delta:  amount,
		Kind:   domain.KindDemoTopUp,
		Note:   noteDemoTopUp,
	})
}

// CreditFromPayment credits purchased credits once per payment session. A replayed session changes nothing and
// returns applied=false with the current wallet.
func (w *WalletService) CreditFromPayment(
	ctx context.Context,
	userID uuid.UUID,
	credits int64,
	sessionID string,
) (*domain.Wallet, bool, error) {
	if credits <= 0 {
		return nil, false, fmt.Errorf("payment credit: %w", domain.NewValidationError("credits", "must be positive"))
	}
	if sessionID == "" {
		return nil, false, fmt.Errorf("payment credit: %w", domain.NewValidationError("session", "is required"))
	}

	wallet, err := w.Adjust(ctx, AdjustArgs{
		UserID:      userID,
		Delta:       credits,
		Kind:        domain.KindCredit,
		ExternalRef: &sessionID,
		Note:        notePayment,
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateKey) {
			current, getErr := w.GetBalance(ctx, userID)
			if getErr != nil {
				return nil, false, getErr
			}
			return current, false, nil
		}
		return nil, false, fmt.Errorf("payment credit: %w", err)
	}
	return wallet, true, nil
}

// WalletsForReconcile returns up to limit wallet owners ordered by id, after the given cursor.
func (w *WalletService) WalletsForReconcile(ctx context.Context, after uuid.UUID, limit uint) ([]uuid.UUID, error) {
	ids, err := w.walletRepo.ListUserIDs(ctx, after, limit)
	if err != nil {
		return nil, fmt.Errorf("listing wallets for reconcile: %w", err)
	}
	return ids, nil
}

// ReconcileWallet compares the balance of the wallet with the sum of its ledger.
func (w *WalletService) ReconcileWallet(ctx context.Context, userID uuid.UUID) (*repoargs.LedgerBalance, error) {
	balance, err := w.walletRepo.LedgerBalance(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("reconciling wallet: %w", err)
	}
	return balance, nil
}

// adjustWallet applies the delta and appends the ledger entry inside tx.
//
// Errors:
//   - domain.ErrValidation: zero delta.
//   - domain.ErrInsufficientFunds: the balance would become negative.
//   - domain.ErrRecordNotFound: the user has no wallet.
//   - domain.ErrDuplicateKey: the external reference was already used; the caller must roll tx back.
func adjustWallet(ctx context.Context, tx uow.TX, args AdjustArgs) (*domain.Wallet, error) {
	if args.Delta == 0 {
		return nil, domain.NewValidationError("delta", "must not be zero")
	}

	walletRepo, err := uow.GetAs[WalletRepository](tx, uow.RepositoryName(repoargs.WalletRepoName))
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	transRepo, err := uow.GetAs[CreditsTransactionRepository](
		tx,
		uow.RepositoryName(repoargs.CreditsTransactionRepoName),
	)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	wallet, err := walletRepo.Adjust(ctx, repoargs.AdjustWallet{UserID: args.UserID, Delta: args.Delta})
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	if _, err = transRepo.Create(ctx, repoargs.CreditsTransactionCreate{
		UserID:      args.UserID,
		Kind:        args.Kind,
		Amount:      args.Delta,
		BookingID:   args.BookingID,
		ExternalRef: args.ExternalRef,
		Note:        args.Note,
	}); err != nil {
		return nil, err //nolint:wrapcheck
	}
	return wallet, nil
}
