package services

import (
	"context"
	"time"

	"github.com/Govind-619/OrderSphere/models"
)

type ClientSummary struct {
	ID            uint    `json:"id"`
	Username      string  `json:"username"`
	Name          string  `json:"name"`
	Email         string  `json:"email"`
	TaxID         string  `json:"tax_id"`
	Debt          float64 `json:"debt"`
	DebtDays      int     `json:"debt_days"`
	LastPaymentAt *string `json:"last_payment_at"`
	HasSecondary  bool    `json:"has_secondary"`
	Markup1       float64 `json:"markup_1"`
	Markup2       float64 `json:"markup_2"`
	Markup3       float64 `json:"markup_3"`
}

func newClientSummary(c models.Client, now time.Time) ClientSummary {
	summary := ClientSummary{
		ID:           c.ID,
		Username:     c.Username,
		Name:         c.Name,
		Email:        c.Email,
		TaxID:        c.TaxID,
		Debt:         c.Debt,
		DebtDays:     c.DebtDays(now),
		HasSecondary: len(c.AccountIDs()) > 1,
		Markup1:      c.Markup1,
		Markup2:      c.Markup2,
		Markup3:      c.Markup3,
	}
	if c.LastPaymentAt != nil {
		s := c.LastPaymentAt.Format(time.RFC3339)
		summary.LastPaymentAt = &s
	}
	return summary
}

// YearOrders counts the orders delivered in the current calendar year.
type YearOrders struct {
	Year      int   `json:"year"`
	Total     int64 `json:"total"`
	Primary   int64 `json:"primary"`
	Secondary int64 `json:"secondary"`
}

type Dashboard struct {
	Client     ClientSummary `json:"client"`
	OpenDrafts int64         `json:"open_drafts"`
	Orders     YearOrders    `json:"orders"`
}

type DashboardService struct {
	drafts DraftStore
	orders OrderStore
	offers *OfferService
	clock  Clock
}

func NewDashboardService(drafts DraftStore, orders OrderStore, offers *OfferService, clock Clock) *DashboardService {
	return &DashboardService{drafts: drafts, orders: orders, offers: offers, clock: clock}
}

func (s *DashboardService) Summary(ctx context.Context, client models.Client) (*Dashboard, error) {
	now := s.clock()
	open, err := s.drafts.CountOpen(ctx, client.AccountIDs())
	if err != nil {
		return nil, dbError(err)
	}

	from := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
	to := from.AddDate(1, 0, 0)
	orders := YearOrders{Year: now.Year()}
	for _, id := range client.AccountIDs() {
		n, err := s.orders.CountDeliveredBetween(ctx, id, from, to)
		if err != nil {
			return nil, dbError(err)
		}
		if client.IsPrimary(id) {
			orders.Primary = n
		} else {
			orders.Secondary = n
		}
	}
	orders.Total = orders.Primary + orders.Secondary

	return &Dashboard{
		Client:     newClientSummary(client, now),
		OpenDrafts: open,
		Orders:     orders,
	}, nil
}

func (s *DashboardService) FeaturedOffers(ctx context.Context) ([]OfferView, error) {
	return s.offers.Featured(ctx)
}
