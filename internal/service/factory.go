package service

import (
	"fmt"

	"github.com/fsdevblog/creatorbook/pkg/uow"
)

type AppServices struct {
	ProfileService *ProfileService
	WalletService  *WalletService
	CatalogService *CatalogService
	BookingService *BookingService
	RecordsService *RecordsService
	MessageService *MessageService
}

type FactoryArgs struct {
	DemoTopUpEnabled bool
}

func Factory(unitOfWork uow.UOW, args FactoryArgs) (*AppServices, error) {
	profileService, err := NewProfileService(unitOfWork)
	if err != nil {
		return nil, fmt.Errorf("service factory: %s", err.Error())
	}

	walletService, err := NewWalletService(unitOfWork, args.DemoTopUpEnabled)
	if err != nil {
		return nil, fmt.Errorf("service factory: %s", err.Error())
	}

	catalogService, err := NewCatalogService(unitOfWork)
	if err != nil {
		return nil, fmt.Errorf("service factory: %s", err.Error())
	}

	bookingService, err := NewBookingService(unitOfWork)
	if err != nil {
		return nil, fmt.Errorf("service factory: %s", err.Error())
	}

	recordsService, err := NewRecordsService(unitOfWork)
	if err != nil {
		return nil, fmt.Errorf("service factory: %s", err.Error())
	}

	messageService, err := NewMessageService(unitOfWork)
	if err != nil {
		return nil, fmt.Errorf("service factory: %s", err.Error())
	}

	return &AppServices{
		ProfileService: profileService,
		WalletService:  walletService,
		CatalogService: catalogService,
		BookingService: bookingService,
		RecordsService: recordsService,
		MessageService: messageService,
	}, nil
}
