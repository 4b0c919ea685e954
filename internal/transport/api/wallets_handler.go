package api

import (
	"context"
	"net/http"

	"github.com/fsdevblog/creatorbook/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type WalletsHandler struct {
	walletService WalletServicer
}

func NewWalletsHandler(walletService WalletServicer) *WalletsHandler {
	return &WalletsHandler{walletService: walletService}
}

// ownWallet reads the :userId parameter, a wallet of another user is forbidden.
func ownWallet(c *gin.Context) (uuid.UUID, bool) {
	userID, ok := uuidParam(c, "userId")
	if !ok {
		return uuid.Nil, false
	}
	if userID != getUserIDFromContext(c) {
		abortWithErr(c, domain.ErrForbidden)
		return uuid.Nil, false
	}
	return userID, true
}

func (w *WalletsHandler) Show(c *gin.Context) {
	userID, ok := ownWallet(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	wallet, err := w.walletService.GetBalance(ctx, userID)
	if err != nil {
		abortWithErr(c, err)
		return
	}
	c.JSON(http.StatusOK, newWalletResponse(wallet))
}

func (w *WalletsHandler) Transactions(c *gin.Context) {
	userID, ok := ownWallet(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	transactions, err := w.walletService.Transactions(ctx, userID, limitQuery(c))
	if err != nil {
		abortWithErr(c, err)
		return
	}
	c.JSON(http.StatusOK, newTransactionResponses(transactions))
}

type demoTopUpParams struct {
	Amount int64 `json:"amount"`
}

func (w *WalletsHandler) DemoTopUp(c *gin.Context) {
	userID, ok := ownWallet(c)
	if !ok {
		return
	}
	var params demoTopUpParams
	if !bindJSON(c, &params) {
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	wallet, err := w.walletService.DemoTopUp(ctx, userID, params.Amount)
	if err != nil {
		abortWithErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"newBalance": wallet.Balance})
}
