package services

import (
	"context"
	"strings"
	"time"

	"github.com/Govind-619/OrderSphere/models"
	"github.com/Govind-619/OrderSphere/utils"
)

// ProfileInput updates the fields a client may change. Omitted fields are kept.
type ProfileInput struct {
	TaxID   *string  `json:"tax_id" binding:"omitempty,max=20"`
	Markup1 *float64 `json:"markup_1" binding:"omitempty,gte=0,lte=100"`
	Markup2 *float64 `json:"markup_2" binding:"omitempty,gte=0,lte=100"`
	Markup3 *float64 `json:"markup_3" binding:"omitempty,gte=0,lte=100"`
}

type DebtView struct {
	Debt          float64 `json:"debt"`
	DebtDays      int     `json:"debt_days"`
	LastPaymentAt *string `json:"last_payment_at"`
}

type ClientService struct {
	accounts AccountStore
	clock    Clock
}

func NewClientService(accounts AccountStore, clock Clock) *ClientService {
	return &ClientService{accounts: accounts, clock: clock}
}

func (s *ClientService) Profile(client models.Client) ClientSummary {
	return newClientSummary(client, s.clock())
}

func (s *ClientService) UpdateProfile(ctx context.Context, client models.Client, in ProfileInput) (*ClientSummary, error) {
	if in.TaxID != nil {
		client.TaxID = strings.TrimSpace(*in.TaxID)
	}
	markups := []struct {
		value *float64
		dest  *float64
	}{
		{in.Markup1, &client.Markup1},
		{in.Markup2, &client.Markup2},
		{in.Markup3, &client.Markup3},
	}
	for _, m := range markups {
		if m.value == nil {
			continue
		}
		if *m.value < 0 || *m.value > 100 {
			return nil, utils.BadRequestError("Markup percentages must be between 0 and 100", nil)
		}
		*m.dest = *m.value
	}

	if err := s.accounts.UpdateClientProfile(ctx, &client); err != nil {
		return nil, dbError(err)
	}
	utils.LogInfo("Client %d updated profile", client.ID)

	summary := newClientSummary(client, s.clock())
	return &summary, nil
}

func (s *ClientService) Debt(client models.Client) DebtView {
	view := DebtView{Debt: client.Debt, DebtDays: client.DebtDays(s.clock())}
	if client.LastPaymentAt != nil {
		at := client.LastPaymentAt.Format(time.RFC3339)
		view.LastPaymentAt = &at
	}
	return view
}
