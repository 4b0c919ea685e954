package api

import (
	"fmt"
	"time"

	"github.com/fsdevblog/creatorbook/internal/transport/api/middlewares"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const (
	DefaultServiceTimeout = 3 * time.Second
)

const (
	RouteGroup  = "/api"
	HealthRoute = "/health"

	BookingsRoute           = "/bookings"
	BookingRoute            = "/bookings/:id"
	BookingTransitionRoute  = "/bookings/:id/transition"
	BookingDeliveriesRoute  = "/bookings/:id/deliveries"
	BookingMessagesRoute    = "/bookings/:id/messages"
	BookingReviewsRoute     = "/bookings/:id/reviews"
	WalletRoute             = "/wallets/:userId"
	WalletTransactionsRoute = "/wallets/:userId/transactions"
	WalletDemoTopUpRoute    = "/wallets/:userId/demo-topup"
	PackagesRoute           = "/packages"
	PackageRoute            = "/packages/:id"
	PackageDeactivateRoute  = "/packages/:id/deactivate"
	SellerPackagesRoute     = "/sellers/:id/packages"
	SellerReviewsRoute      = "/sellers/:id/reviews"
	MeRoute                 = "/me"
	PaymentWebhookRoute     = "/webhooks/payments"
)

type RouterArgs struct {
	Logger         *logrus.Logger
	ProfileService ProfileServicer
	WalletService  WalletServicer
	CatalogService CatalogServicer
	BookingService BookingServicer
	RecordsService RecordsServicer
	MessageService MessageServicer
	Pinger         Pinger
	JWTSecretKey   []byte
	WebhookSecret  []byte
}

func New(args RouterArgs) (*gin.Engine, error) {
	if err := registerValidators(); err != nil {
		return nil, fmt.Errorf("new router: %w", err)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	if args.Logger != nil {
		r.Use(middlewares.Logger(args.Logger))
	}
	r.Use(middlewares.Errors())

	healthHandler := NewHealthHandler(args.Pinger)
	webhookHandler := NewWebhookHandler(args.WalletService, args.WebhookSecret)
	bookingsHandler := NewBookingsHandler(args.BookingService, args.RecordsService, args.MessageService)
	walletsHandler := NewWalletsHandler(args.WalletService)
	packagesHandler := NewPackagesHandler(args.CatalogService)
	sellersHandler := NewSellersHandler(args.CatalogService, args.RecordsService)
	profileHandler := NewProfileHandler(args.ProfileService)

	r.GET(HealthRoute, healthHandler.Show)

	api := r.Group(RouteGroup)
	api.POST(PaymentWebhookRoute, webhookHandler.Payments)

	api.Use(middlewares.AuthRequired(args.JWTSecretKey, args.ProfileService))
	// every route below requires an authorized user.
	api.POST(BookingsRoute, bookingsHandler.Create)
	api.GET(BookingsRoute, bookingsHandler.Index)
	api.GET(BookingRoute, bookingsHandler.Show)
	api.POST(BookingTransitionRoute, bookingsHandler.Transition)
	api.POST(BookingDeliveriesRoute, bookingsHandler.AddDelivery)
	api.POST(BookingMessagesRoute, bookingsHandler.PostMessage)
	api.GET(BookingMessagesRoute, bookingsHandler.Messages)
	api.POST(BookingReviewsRoute, bookingsHandler.AddReview)

	api.GET(WalletRoute, walletsHandler.Show)
	api.GET(WalletTransactionsRoute, walletsHandler.Transactions)
	api.POST(WalletDemoTopUpRoute, walletsHandler.DemoTopUp)

	api.GET(PackagesRoute, packagesHandler.Index)
	api.PUT(PackagesRoute, packagesHandler.Upsert)
	api.POST(PackageDeactivateRoute, packagesHandler.Deactivate)
	api.DELETE(PackageRoute, packagesHandler.Delete)

	api.GET(SellerPackagesRoute, sellersHandler.Packages)
	api.GET(SellerReviewsRoute, sellersHandler.Reviews)

	api.GET(MeRoute, profileHandler.Show)
	api.PATCH(MeRoute, profileHandler.Update)
	return r, nil
}
