package models

import (
	"time"

	"github.com/samber/lo"
)

// Order status constants
const (
	OrderStatusPending    = "pending"
	OrderStatusInProgress = "in_progress"
	OrderStatusCompleted  = "completed"
	OrderStatusCancelled  = "cancelled"
)

// OrderStatuses lists every status an order can be moved to.
var OrderStatuses = []string{
	OrderStatusPending,
	OrderStatusInProgress,
	OrderStatusCompleted,
	OrderStatusCancelled,
}

// IsValidOrderStatus reports whether status is one of OrderStatuses.
func IsValidOrderStatus(status string) bool {
	return lo.Contains(OrderStatuses, status)
}

// Order is an order processed by the distributor. Orders are loaded from the
// back office system and are read-only here except for their status.
type Order struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	ClientID    uint        `gorm:"index;not null" json:"client_id"`
	OrderedAt   time.Time   `json:"ordered_at"`
	DeliveredAt time.Time   `gorm:"index" json:"delivered_at"`
	Status      string      `json:"status"`
	TotalAmount float64     `json:"total_amount"`
	Notes       string      `json:"notes"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
	Items       []OrderItem `json:"items" gorm:"foreignKey:OrderID"`
}

type OrderItem struct {
	ID        uint     `gorm:"primaryKey" json:"id"`
	OrderID   uint     `gorm:"index;not null" json:"order_id"`
	ProductID uint     `json:"product_id"`
	Product   *Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	Quantity  int      `json:"quantity"`
	UnitPrice float64  `json:"unit_price"`
}

// Subtotal is quantity times unit price.
func (i OrderItem) Subtotal() float64 {
	return float64(i.Quantity) * i.UnitPrice
}

// BundleCount is the total number of units across all items.
func (o Order) BundleCount() int {
	return lo.SumBy(o.Items, func(i OrderItem) int { return i.Quantity })
}
