package models

import (
	"time"

	"gorm.io/gorm"
)

// Draft order status constants
const (
	DraftStatusDraft     = "draft"
	DraftStatusSubmitted = "submitted"
)

// DraftOrder is a client's pre-order. It can be edited until it is submitted.
type DraftOrder struct {
	gorm.Model
	ClientID    uint             `gorm:"index;not null" json:"client_id"`
	Client      *Client          `json:"client,omitempty" gorm:"foreignKey:ClientID"`
	Notes       string           `json:"notes"`
	Status      string           `gorm:"index;not null;default:draft" json:"status"`
	SubmittedAt *time.Time       `json:"submitted_at"`
	Items       []DraftOrderItem `json:"items" gorm:"foreignKey:DraftOrderID"`
}

type DraftOrderItem struct {
	ID              uint     `gorm:"primaryKey" json:"id"`
	DraftOrderID    uint     `gorm:"index;not null" json:"draft_order_id"`
	ProductID       uint     `gorm:"not null" json:"product_id"`
	Product         *Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	Description     string   `json:"description"`
	Quantity        int      `gorm:"not null" json:"quantity"`
	Unit            string   `json:"unit"`
	BasePrice       float64  `json:"base_price"`
	UnitPrice       float64  `json:"unit_price"`
	TotalPrice      float64  `json:"total_price"`
	DiscountPercent float64  `json:"discount_percent"`
	OfferApplied    bool     `json:"offer_applied"`
	OfferID         *uint    `json:"offer_id"`
	Notes           string   `json:"notes"`
}

// IsEditable reports whether the draft can still be changed, deleted or submitted.
func (d DraftOrder) IsEditable() bool {
	return d.Status == DraftStatusDraft
}

// EstimatedTotal sums the quoted totals of every item.
func (d DraftOrder) EstimatedTotal() float64 {
	var total float64
	for _, item := range d.Items {
		total += item.TotalPrice
	}
	return total
}
