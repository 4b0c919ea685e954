package api

import (
	"context"
	"net/http"
	"time"

	"github.com/fsdevblog/creatorbook/internal/domain"
	"github.com/fsdevblog/creatorbook/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookingsHandler struct {
	bookingService BookingServicer
	recordsService RecordsServicer
	messageService MessageServicer
}

func NewBookingsHandler(
	bookingService BookingServicer,
	recordsService RecordsServicer,
	messageService MessageServicer,
) *BookingsHandler {
	return &BookingsHandler{
		bookingService: bookingService,
		recordsService: recordsService,
		messageService: messageService,
	}
}

type createBookingLineParams struct {
	SellerID  uuid.UUID `json:"sellerId" binding:"required"`
	PackageID uuid.UUID `json:"packageId" binding:"required"`
}

type createBookingParams struct {
	BuyerID       *uuid.UUID                `json:"buyerId"`
	RequestedDate string                    `json:"requestedDate"`
	Notes         string                    `json:"notes" binding:"max_bytes=4000"`
	Lines         []createBookingLineParams `json:"lines" binding:"dive"`
}

// Create books one or more packages for the current user.
func (b *BookingsHandler) Create(c *gin.Context) {
	var params createBookingParams
	if !bindJSON(c, &params) {
		return
	}
	if !checkActorField(c, params.BuyerID) {
		return
	}

	args := service.CreateBookingArgs{
		BuyerID: getUserIDFromContext(c),
		Notes:   params.Notes,
		Lines:   make([]service.BookingLineArgs, len(params.Lines)),
	}
	if params.RequestedDate != "" {
		date, err := time.Parse(dateLayout, params.RequestedDate)
		if err != nil {
			abortWithErr(c, domain.NewValidationError("requestedDate", "expected YYYY-MM-DD"))
			return
		}
		args.RequestedDate = &date
	}
	for i, line := range params.Lines {
		args.Lines[i] = service.BookingLineArgs{SellerID: line.SellerID, PackageID: line.PackageID}
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	created, err := b.bookingService.Create(ctx, args)
	if err != nil {
		abortWithErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, newBookingResponse(&created.Booking, created.Lines))
}

// Index lists bookings of the current user. `?role=buyer|seller` narrows the side.
func (b *BookingsHandler) Index(c *gin.Context) {
	role := domain.ParticipantRole(c.Query("role"))
	switch role {
	case "", domain.ParticipantBuyer, domain.ParticipantSeller:
	default:
		abortWithErr(c, domain.NewValidationError("role", "expected buyer or seller"))
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	bookings, err := b.bookingService.ListMine(ctx, getUserIDFromContext(c), role)
	if err != nil {
		abortWithErr(c, err)
		return
	}
	resp := make([]BookingResponse, len(bookings))
	for i := range bookings {
		resp[i] = newBookingResponse(&bookings[i], nil)
	}
	c.JSON(http.StatusOK, resp)
}

func (b *BookingsHandler) Show(c *gin.Context) {
	bookingID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	details, err := b.bookingService.Get(ctx, bookingID, getUserIDFromContext(c))
	if err != nil {
		abortWithErr(c, err)
		return
	}
	c.JSON(http.StatusOK, newBookingDetailsResponse(details))
}

type transitionParams struct {
	Event string     `json:"event" binding:"required"`
	Actor *uuid.UUID `json:"actor"`
	Link  string     `json:"link" binding:"max_bytes=2048"`
	Note  string     `json:"note" binding:"max_bytes=4000"`
}

func (b *BookingsHandler) Transition(c *gin.Context) {
	bookingID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var params transitionParams
	if !bindJSON(c, &params) {
		return
	}
	if !checkActorField(c, params.Actor) {
		return
	}
	event, err := domain.ParseBookingEvent(params.Event)
	if err != nil {
		abortWithErr(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	booking, err := b.bookingService.Transition(ctx, service.TransitionArgs{
		BookingID: bookingID,
		ActorID:   getUserIDFromContext(c),
		Event:     event,
		Link:      params.Link,
		Note:      params.Note,
	})
	if err != nil {
		abortWithErr(c, err)
		return
	}
	c.JSON(http.StatusOK, newBookingResponse(booking, nil))
}

type addDeliveryParams struct {
	SellerID *uuid.UUID `json:"sellerId"`
	Link     string     `json:"link" binding:"max_bytes=2048"`
	Note     string     `json:"note" binding:"max_bytes=4000"`
}

func (b *BookingsHandler) AddDelivery(c *gin.Context) {
	bookingID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var params addDeliveryParams
	if !bindJSON(c, &params) {
		return
	}
	if !checkActorField(c, params.SellerID) {
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	delivery, err := b.recordsService.AddDelivery(ctx, service.AddDeliveryArgs{
		BookingID: bookingID,
		SellerID:  getUserIDFromContext(c),
		Link:      params.Link,
		Note:      params.Note,
	})
	if err != nil {
		abortWithErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, newDeliveryResponse(delivery))
}

type postMessageParams struct {
	SenderID *uuid.UUID `json:"senderId"`
	Body     string     `json:"body"`
}

func (b *BookingsHandler) PostMessage(c *gin.Context) {
	bookingID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var params postMessageParams
	if !bindJSON(c, &params) {
		return
	}
	if !checkActorField(c, params.SenderID) {
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	message, err := b.messageService.Post(ctx, bookingID, getUserIDFromContext(c), params.Body)
	if err != nil {
		abortWithErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, newMessageResponse(message))
}

func (b *BookingsHandler) Messages(c *gin.Context) {
	bookingID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	messages, err := b.messageService.List(ctx, bookingID, getUserIDFromContext(c))
	if err != nil {
		abortWithErr(c, err)
		return
	}
	c.JSON(http.StatusOK, newMessageResponses(messages))
}

type addReviewParams struct {
	BuyerID  *uuid.UUID `json:"buyerId"`
	SellerID uuid.UUID  `json:"sellerId" binding:"required"`
	Rating   int32      `json:"rating"`
	Text     string     `json:"text" binding:"max_bytes=4000"`
}

func (b *BookingsHandler) AddReview(c *gin.Context) {
	bookingID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var params addReviewParams
	if !bindJSON(c, &params) {
		return
	}
	if !checkActorField(c, params.BuyerID) {
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	review, err := b.recordsService.AddReview(ctx, service.AddReviewArgs{
		BookingID: bookingID,
		BuyerID:   getUserIDFromContext(c),
		SellerID:  params.SellerID,
		Rating:    params.Rating,
		Text:      params.Text,
	})
	if err != nil {
		abortWithErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, newReviewResponse(review))
}
