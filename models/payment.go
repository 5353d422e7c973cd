package models

import (
	"fmt"
	"time"
)

// Payment method identifiers as recorded by the back office
const (
	PaymentMethodCash     = 1
	PaymentMethodTransfer = 2
	PaymentMethodCheque   = 3
	PaymentMethodCard     = 4
)

// Payment is a receipt registered against a client account.
type Payment struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	ClientID   uint      `gorm:"index;not null" json:"client_id"`
	ReceivedAt time.Time `gorm:"index" json:"received_at"`
	MethodID   int       `json:"method_id"`
	Amount     float64   `json:"amount"`
	Receiver   string    `json:"receiver"`
	CreatedAt  time.Time `json:"created_at"`
}

// PaymentMethodName returns the display name for a method id.
func PaymentMethodName(methodID int) string {
	switch methodID {
	case PaymentMethodCash:
		return "Cash"
	case PaymentMethodTransfer:
		return "Bank transfer"
	case PaymentMethodCheque:
		return "Cheque"
	case PaymentMethodCard:
		return "Card"
	default:
		return fmt.Sprintf("Payment method #%d", methodID)
	}
}
