package services

import (
	"bytes"
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/Govind-619/OrderSphere/models"
	"github.com/Govind-619/OrderSphere/pricing"
	"github.com/Govind-619/OrderSphere/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func orderFixture() (*fakeOrders, models.Client) {
	secondary := uint(2)
	client := models.Client{Model: gorm.Model{ID: 1}, Name: "Acme Stores", SecondaryID: &secondary}
	cola := product(1, "COLA ZERO", 100, 10)
	orders := &fakeOrders{orders: []models.Order{
		{ID: 10, ClientID: 1, DeliveredAt: testNow.AddDate(0, -1, 0), Status: models.OrderStatusCompleted, TotalAmount: 500,
			Items: []models.OrderItem{{ID: 1, ProductID: 1, Product: &cola, Quantity: 3, UnitPrice: 100}, {ID: 2, ProductID: 3, Quantity: 2, UnitPrice: 100}}},
		{ID: 11, ClientID: 2, DeliveredAt: testNow.AddDate(0, 0, -3), Status: models.OrderStatusPending, TotalAmount: 200},
		{ID: 12, ClientID: 1, DeliveredAt: testNow.AddDate(-1, 0, -2), Status: models.OrderStatusCompleted},
		{ID: 13, ClientID: 9, DeliveredAt: testNow, Status: models.OrderStatusPending},
		{ID: 14, ClientID: 1, DeliveredAt: time.Date(2024, time.January, 3, 0, 0, 0, 0, time.UTC), Status: models.OrderStatusCompleted},
	}}
	return orders, client
}

func TestOrderHistory(t *testing.T) {
	orders, client := orderFixture()
	svc := NewOrderService(orders, testClock)

	views, err := svc.History(context.Background(), client)
	require.NoError(t, err)
	require.Len(t, views, 3)
	assert.Equal(t, uint(11), views[0].ID)
	assert.Equal(t, AccountSecondary, views[0].AccountType)
	assert.Equal(t, uint(10), views[1].ID)
	assert.Equal(t, AccountPrimary, views[1].AccountType)
	assert.Equal(t, 5, views[1].BundleCount)
	assert.Nil(t, views[1].Items)
}

func TestOrderDetailAndStatus(t *testing.T) {
	orders, client := orderFixture()
	svc := NewOrderService(orders, testClock)
	ctx := context.Background()

	view, err := svc.Get(ctx, client, 10)
	require.NoError(t, err)
	require.Len(t, view.Items, 2)
	assert.Equal(t, "COLA ZERO", view.Items[0].ProductName)
	assert.Equal(t, 300.0, view.Items[0].Subtotal)

	_, err = svc.Get(ctx, client, 13)
	assert.Equal(t, http.StatusNotFound, utils.StatusCode(err))

	updated, err := svc.UpdateStatus(ctx, client, 11, models.OrderStatusInProgress)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusInProgress, updated.Status)

	_, err = svc.UpdateStatus(ctx, client, 11, "shipped")
	appErr := utils.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.Code)

	_, err = svc.UpdateStatus(ctx, client, 13, models.OrderStatusCancelled)
	assert.Equal(t, http.StatusNotFound, utils.StatusCode(err))
}

func TestRecentPayments(t *testing.T) {
	store := &fakePayments{payments: []models.Payment{
		{ID: 3, ClientID: 1, MethodID: models.PaymentMethodTransfer, Amount: 300},
		{ID: 2, ClientID: 1, MethodID: 9, Amount: 200},
		{ID: 1, ClientID: 5, MethodID: models.PaymentMethodCash, Amount: 100},
	}}
	svc := NewPaymentService(store)

	views, err := svc.Recent(context.Background(), models.Client{Model: gorm.Model{ID: 1}})
	require.NoError(t, err)
	assert.Equal(t, utils.RecentPaymentsLimit, store.gotLimit)
	require.Len(t, views, 2)
	assert.Equal(t, "Bank transfer", views[0].Method)
	assert.Equal(t, "Payment method #9", views[1].Method)
}

func TestDashboardSummary(t *testing.T) {
	orders, client := orderFixture()
	client.Debt = 900
	drafts := newFakeDrafts()
	drafts.drafts[1] = models.DraftOrder{Model: gorm.Model{ID: 1}, ClientID: 1, Status: models.DraftStatusDraft}
	drafts.drafts[2] = models.DraftOrder{Model: gorm.Model{ID: 2}, ClientID: 2, Status: models.DraftStatusSubmitted}
	drafts.drafts[3] = models.DraftOrder{Model: gorm.Model{ID: 3}, ClientID: 8, Status: models.DraftStatusDraft}

	offers := NewOfferService(newFakeOffers(), newFakeProducts(), testClock, nil)
	svc := NewDashboardService(drafts, orders, offers, testClock)

	dash, err := svc.Summary(context.Background(), client)
	require.NoError(t, err)
	assert.Equal(t, int64(2), dash.OpenDrafts)
	assert.Equal(t, 2024, dash.Orders.Year)
	assert.Equal(t, int64(2), dash.Orders.Primary)
	assert.Equal(t, int64(1), dash.Orders.Secondary)
	assert.Equal(t, int64(3), dash.Orders.Total)
	assert.Equal(t, 900.0, dash.Client.Debt)
	assert.True(t, dash.Client.HasSecondary)

	featured, err := svc.FeaturedOffers(context.Background())
	require.NoError(t, err)
	assert.Empty(t, featured)
}

func TestRenderInvoice(t *testing.T) {
	orders, client := orderFixture()
	client.TaxID = "20-12345678-9"
	order := orders.orders[0]
	order.Notes = "Entregar por la mañana"

	pdf, err := RenderInvoice(order, client)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF-")))
}

func TestRenderDraftExport(t *testing.T) {
	submitted := testNow
	cola := product(1, "Cola", 100, 10)
	drafts := []models.DraftOrder{{
		Model:       gorm.Model{ID: 4},
		ClientID:    1,
		Client:      &models.Client{Name: "Acme Stores"},
		Status:      models.DraftStatusSubmitted,
		SubmittedAt: &submitted,
		Items: []models.DraftOrderItem{
			{ID: 1, ProductID: 1, Product: &cola, Description: "Cola", Quantity: 2, Unit: "unit", BasePrice: 100, UnitPrice: 90, TotalPrice: 180, DiscountPercent: 10, OfferApplied: true, OfferID: uintPtr(1)},
			{ID: 2, ProductID: 3, Description: "Soda", Quantity: 1, Unit: "unit", BasePrice: 200, UnitPrice: 200, TotalPrice: 200},
		},
	}}

	book, err := RenderDraftExport(drafts)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(book, []byte("PK")))
}

func TestMonthBounds(t *testing.T) {
	first, last := monthBounds(time.Date(2024, time.February, 10, 23, 0, 0, 0, time.UTC))
	assert.Equal(t, "2024-02-01", first.Format(pricing.DateLayout))
	assert.Equal(t, "2024-02-29", last.Format(pricing.DateLayout))
}
