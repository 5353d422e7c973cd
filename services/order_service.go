package services

import (
	"context"
	"fmt"
	"time"

	"github.com/Govind-619/OrderSphere/models"
	"github.com/Govind-619/OrderSphere/utils"
	"github.com/samber/lo"
)

// Account types of an order relative to the logged in client.
const (
	AccountPrimary   = "primary"
	AccountSecondary = "secondary"
)

type OrderItemView struct {
	ID          uint    `json:"id"`
	ProductID   uint    `json:"product_id"`
	Code        string  `json:"code,omitempty"`
	ProductName string  `json:"product_name,omitempty"`
	Brand       string  `json:"brand,omitempty"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Subtotal    float64 `json:"subtotal"`
}

type OrderView struct {
	ID          uint            `json:"id"`
	ClientID    uint            `json:"client_id"`
	AccountType string          `json:"account_type"`
	OrderedAt   string          `json:"ordered_at"`
	DeliveredAt string          `json:"delivered_at"`
	Status      string          `json:"status"`
	TotalAmount float64         `json:"total_amount"`
	BundleCount int             `json:"bundle_count"`
	Notes       string          `json:"notes,omitempty"`
	Items       []OrderItemView `json:"items,omitempty"`
}

func newOrderView(o models.Order, client models.Client, withItems bool) OrderView {
	view := OrderView{
		ID:          o.ID,
		ClientID:    o.ClientID,
		AccountType: AccountSecondary,
		OrderedAt:   o.OrderedAt.Format(time.RFC3339),
		DeliveredAt: o.DeliveredAt.Format(time.RFC3339),
		Status:      o.Status,
		TotalAmount: o.TotalAmount,
		BundleCount: o.BundleCount(),
		Notes:       o.Notes,
	}
	if client.IsPrimary(o.ClientID) {
		view.AccountType = AccountPrimary
	}
	if !withItems {
		return view
	}
	view.Items = lo.Map(o.Items, func(it models.OrderItem, _ int) OrderItemView {
		iv := OrderItemView{
			ID:        it.ID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Subtotal:  it.Subtotal(),
		}
		if it.Product != nil {
			iv.Code = it.Product.Code
			iv.ProductName = it.Product.Name
			iv.Brand = it.Product.BrandName()
		}
		return iv
	})
	return view
}

type OrderService struct {
	orders OrderStore
	clock  Clock
}

func NewOrderService(orders OrderStore, clock Clock) *OrderService {
	return &OrderService{orders: orders, clock: clock}
}

// History returns the orders of the client's primary and secondary accounts
// delivered in the last year, newest first.
func (s *OrderService) History(ctx context.Context, client models.Client) ([]OrderView, error) {
	since := s.clock().AddDate(0, 0, -utils.OrderHistoryDays)
	orders, err := s.orders.ListDeliveredSince(ctx, client.AccountIDs(), since)
	if err != nil {
		return nil, dbError(err)
	}
	return lo.Map(orders, func(o models.Order, _ int) OrderView { return newOrderView(o, client, false) }), nil
}

func (s *OrderService) Get(ctx context.Context, client models.Client, id uint) (*OrderView, error) {
	order, err := s.orders.FindForClients(ctx, id, client.AccountIDs())
	if err != nil {
		return nil, notFoundOr(err, "Order not found")
	}
	view := newOrderView(*order, client, true)
	return &view, nil
}

// Find returns the stored order, for rendering documents.
func (s *OrderService) Find(ctx context.Context, client models.Client, id uint) (*models.Order, error) {
	order, err := s.orders.FindForClients(ctx, id, client.AccountIDs())
	if err != nil {
		return nil, notFoundOr(err, "Order not found")
	}
	return order, nil
}

func (s *OrderService) UpdateStatus(ctx context.Context, client models.Client, id uint, status string) (*OrderView, error) {
	if !models.IsValidOrderStatus(status) {
		return nil, utils.BadRequestError(fmt.Sprintf("Invalid status %q", status), nil).
			WithDetails(map[string][]string{"allowed": models.OrderStatuses})
	}
	if err := s.orders.UpdateStatus(ctx, id, client.AccountIDs(), status); err != nil {
		return nil, notFoundOr(err, "Order not found")
	}
	utils.LogInfo("Order %d moved to %s by client %d", id, status, client.ID)
	return s.Get(ctx, client, id)
}
