package services

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/Govind-619/OrderSphere/pricing"
	"github.com/Govind-619/OrderSphere/repository"
	"github.com/Govind-619/OrderSphere/utils"
)

// notFoundOr turns repository.ErrNotFound into a 404 AppError with message
// and wraps anything else as a 500.
func notFoundOr(err error, message string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return utils.NotFoundError(message, nil)
	}
	return utils.NewAppError(http.StatusInternalServerError, "Database error", err)
}

func dbError(err error) error {
	return utils.NewAppError(http.StatusInternalServerError, "Database error", err)
}

// AffectedItem is a draft line that references a rejected offer.
type AffectedItem struct {
	ItemID      uint   `json:"item_id"`
	ProductID   uint   `json:"product_id"`
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
}

// RejectedOffer describes why one offer of a draft cannot be used.
type RejectedOffer struct {
	OfferID uint            `json:"offer_id"`
	Title   string          `json:"title"`
	Reason  pricing.Vigency `json:"reason"`
	EndDate string          `json:"end_date"`
	Items   []AffectedItem  `json:"items"`
}

// OfferVigencyError is returned when a draft is submitted with offers that
// are expired, disabled or not yet started. The draft is left untouched.
type OfferVigencyError struct {
	DraftID uint            `json:"draft_id"`
	Offers  []RejectedOffer `json:"offers"`
}

func (e *OfferVigencyError) Error() string {
	parts := make([]string, 0, len(e.Offers))
	for _, o := range e.Offers {
		parts = append(parts, fmt.Sprintf("%d (%s)", o.OfferID, o.Reason))
	}
	return fmt.Sprintf("draft %d references unusable offers: %s", e.DraftID, strings.Join(parts, ", "))
}

// AppError exposes the rejection as a 409 carrying the offending offers.
func (e *OfferVigencyError) AppError() *utils.AppError {
	return utils.ConflictError("Some offers in this draft order are no longer valid", e).WithDetails(e)
}

// As lets utils.GetAppError map the rejection to its HTTP form.
func (e *OfferVigencyError) As(target interface{}) bool {
	if t, ok := target.(**utils.AppError); ok {
		*t = e.AppError()
		return true
	}
	return false
}
