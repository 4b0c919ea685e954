package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/fsdevblog/creatorbook/internal/domain"
	"github.com/fsdevblog/creatorbook/internal/repository/repoargs"
	"github.com/fsdevblog/creatorbook/pkg/uow"
	"github.com/google/uuid"
)

const maxMessageLength = 4000

type MessageService struct {
	uow uow.UOW
}

func NewMessageService(u uow.UOW) (*MessageService, error) {
	if _, err := uow.GetRepositoryAs[MessageRepository](u, uow.RepositoryName(repoargs.MessageRepoName)); err != nil {
		return nil, err //nolint:wrapcheck
	}
	return &MessageService{uow: u}, nil
}

// Post appends a message to the booking thread. Either side may write at any status.
func (m *MessageService) Post(ctx context.Context, bookingID, senderID uuid.UUID, body string) (*domain.Message, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, fmt.Errorf("posting message: %w", domain.NewValidationError("body", "must not be empty"))
	}
	if utf8.RuneCountInString(body) > maxMessageLength {
		return nil, fmt.Errorf("posting message: %w",
			domain.NewValidationError("body", fmt.Sprintf("must be at most %d characters", maxMessageLength)))
	}

	var message *domain.Message
	txErr := m.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		if err := checkParticipant(c, tx, bookingID, senderID); err != nil {
			return err
		}
		repo, err := uow.GetAs[MessageRepository](tx, uow.RepositoryName(repoargs.MessageRepoName))
		if err != nil {
			return err //nolint:wrapcheck
		}
		message, err = repo.Create(c, repoargs.CreateMessage{BookingID: bookingID, SenderID: senderID, Body: body})
		return err //nolint:wrapcheck
	})
	if txErr != nil {
		return nil, fmt.Errorf("posting message: %w", txErr)
	}
	return message, nil
}

// List the thread in creation order.
func (m *MessageService) List(ctx context.Context, bookingID, viewerID uuid.UUID) ([]domain.Message, error) {
	var messages []domain.Message
	txErr := m.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		if err := checkParticipant(c, tx, bookingID, viewerID); err != nil {
			return err
		}
		repo, err := uow.GetAs[MessageRepository](tx, uow.RepositoryName(repoargs.MessageRepoName))
		if err != nil {
			return err //nolint:wrapcheck
		}
		messages, err = repo.ListByBooking(c, bookingID)
		return err //nolint:wrapcheck
	})
	if txErr != nil {
		return nil, fmt.Errorf("listing messages: %w", txErr)
	}
	return messages, nil
}

func checkParticipant(ctx context.Context, tx uow.TX, bookingID, userID uuid.UUID) error {
	bookingRepo, err := uow.GetAs[BookingRepository](tx, uow.RepositoryName(repoargs.BookingRepoName))
	if err != nil {
		return err //nolint:wrapcheck
	}
	booking, err := bookingRepo.FindByID(ctx, bookingID)
	if err != nil {
		return err //nolint:wrapcheck
	}
	lines, err := bookingRepo.Lines(ctx, bookingID)
	if err != nil {
		return err //nolint:wrapcheck
	}
	if _, ok := domain.RoleOf(booking, lines, userID); !ok {
		return fmt.Errorf("%w: not a participant of booking %s", domain.ErrForbidden, bookingID)
	}
	return nil
}
