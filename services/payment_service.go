package services

import (
	"context"
	"time"

	"github.com/Govind-619/OrderSphere/models"
	"github.com/Govind-619/OrderSphere/utils"
	"github.com/samber/lo"
)

type PaymentView struct {
	ID         uint    `json:"id"`
	ReceivedAt string  `json:"received_at"`
	MethodID   int     `json:"method_id"`
	Method     string  `json:"method"`
	Amount     float64 `json:"amount"`
	Receiver   string  `json:"receiver"`
}

type PaymentService struct {
	payments PaymentStore
}

func NewPaymentService(payments PaymentStore) *PaymentService {
	return &PaymentService{payments: payments}
}

// Recent returns the latest payments of the client, newest first.
func (s *PaymentService) Recent(ctx context.Context, client models.Client) ([]PaymentView, error) {
	payments, err := s.payments.Latest(ctx, client.ID, utils.RecentPaymentsLimit)
	if err != nil {
		return nil, dbError(err)
	}
	return lo.Map(payments, func(p models.Payment, _ int) PaymentView {
		return PaymentView{
			ID:         p.ID,
			ReceivedAt: p.ReceivedAt.Format(time.RFC3339),
			MethodID:   p.MethodID,
			Method:     models.PaymentMethodName(p.MethodID),
			Amount:     p.Amount,
			Receiver:   p.Receiver,
		}
	}), nil
}
