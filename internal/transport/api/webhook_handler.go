package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"
)

const (
	SignatureHeader     = "Stripe-Signature"
	signatureTolerance  = 5 * time.Minute
	maxWebhookBodyBytes = 64 << 10
)

var ErrWebhookNotConfigured = errors.New("payment webhook secret is not configured")

type WebhookHandler struct {
	walletService WalletServicer
	secret        string
}

func NewWebhookHandler(walletService WalletServicer, secret []byte) *WebhookHandler {
	return &WebhookHandler{walletService: walletService, secret: string(secret)}
}

// Payments credits wallets for completed checkout sessions. Replayed sessions are acknowledged with applied=false.
func (w *WebhookHandler) Payments(c *gin.Context) {
	if w.secret == "" {
		_ = c.AbortWithError(http.StatusServiceUnavailable, ErrWebhookNotConfigured).SetType(gin.ErrorTypePrivate)
		return
	}

	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBodyBytes))
	if err != nil {
		_ = c.AbortWithError(http.StatusBadRequest, err).SetType(gin.ErrorTypePrivate)
		return
	}

	event, err := webhook.ConstructEventWithOptions(payload, c.GetHeader(SignatureHeader), w.secret,
		webhook.ConstructEventOptions{
			Tolerance:                signatureTolerance,
			IgnoreAPIVersionMismatch: true,
		})
	if err != nil {
		_ = c.AbortWithError(http.StatusBadRequest, err).SetType(gin.ErrorTypePublic)
		return
	}
	if event.Type != stripe.EventTypeCheckoutSessionCompleted || event.Data == nil {
		c.JSON(http.StatusOK, gin.H{"received": true})
		return
	}

	var session stripe.CheckoutSession
	if jsonErr := json.Unmarshal(event.Data.Raw, &session); jsonErr != nil {
		_ = c.AbortWithError(http.StatusBadRequest, jsonErr).SetType(gin.ErrorTypeBind)
		return
	}

	userID, err := uuid.Parse(session.Metadata["user_id"])
	if err != nil {
		_ = c.AbortWithError(http.StatusBadRequest, errors.New("metadata user_id: invalid uuid")).
			SetType(gin.ErrorTypePublic)
		return
	}
	credits, err := strconv.ParseInt(session.Metadata["credits"], 10, 64)
	if err != nil || credits <= 0 {
		_ = c.AbortWithError(http.StatusBadRequest, errors.New("metadata credits: must be a positive integer")).
			SetType(gin.ErrorTypePublic)
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	_, applied, err := w.walletService.CreditFromPayment(ctx, userID, credits, session.ID)
	if err != nil {
		abortWithErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"received": true, "applied": applied})
}
