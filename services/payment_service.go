package services

import (
	"context"
	"fmt"

	"github.com/pocketbase/pocketbase/core"

	"ticketsmaster/models"
)

// PaymentService persists card details submitted from the payment form.
// There is no charge, validation, or gateway behind it.
type PaymentService struct {
	app core.App
}

func NewPaymentService(app core.App) *PaymentService {
	return &PaymentService{app: app}
}

func (s *PaymentService) Save(ctx context.Context, info models.PaymentInfo) (string, error) {
	collection, err := s.app.FindCollectionByNameOrId("payment_methods")
	if err != nil {
		return "", fmt.Errorf("Save: %w", err)
	}

	record := core.NewRecord(collection)
	record.Set("card_number", info.CardNumber)
	record.Set("card_expiry", info.CardExpiry)
	record.Set("card_cvv", info.CardCvv)
	record.Set("card_name", info.CardName)
	record.Set("card_type", info.CardType)

	if err := s.app.Save(record); err != nil {
		return "", fmt.Errorf("Save: %w", err)
	}

	return record.Id, nil
}
