package controllers

import (
	"github.com/Govind-619/OrderSphere/services"
	"github.com/Govind-619/OrderSphere/utils"
	"github.com/gin-gonic/gin"
)

type OfferController struct {
	offers OfferAPI
}

func NewOfferController(offers OfferAPI) *OfferController {
	return &OfferController{offers: offers}
}

// ListOffers returns a page of enabled offers
func (h *OfferController) ListOffers(c *gin.Context) {
	utils.LogInfo("ListOffers called")
	p := utils.NewPagination(c)

	offers, total, err := h.offers.List(c.Request.Context(), p.Offset, p.Limit)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	p.SetTotal(total)
	utils.SendPaginatedResponse(c, "Offers retrieved successfully", offers, p)
}

// CurrentMonthOffers returns the vigent offers that started this month
func (h *OfferController) CurrentMonthOffers(c *gin.Context) {
	utils.LogInfo("CurrentMonthOffers called")
	offers, err := h.offers.CurrentMonth(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "Offers retrieved successfully", offers)
}

func (h *OfferController) FeaturedOffers(c *gin.Context) {
	utils.LogInfo("FeaturedOffers called")
	offers, err := h.offers.Featured(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "Featured offers retrieved successfully", offers)
}

func (h *OfferController) OffersByProduct(c *gin.Context) {
	utils.LogInfo("OffersByProduct called")
	productID, ok := paramID(c, "product_id")
	if !ok {
		return
	}
	offers, err := h.offers.ByProduct(c.Request.Context(), productID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "Offers retrieved successfully", offers)
}

func (h *OfferController) GetOffer(c *gin.Context) {
	utils.LogInfo("GetOffer called")
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	offer, err := h.offers.Get(c.Request.Context(), id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "Offer retrieved successfully", offer)
}

// QuoteOffer prices a product under an offer for a quantity
func (h *OfferController) QuoteOffer(c *gin.Context) {
	utils.LogInfo("QuoteOffer called")

	var req services.QuoteRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.LogError("Invalid quote request: %v", err)
		utils.RespondError(c, err)
		return
	}
	utils.LogDebug("Quoting product %d under offer %d for %d units", req.ProductID, req.OfferID, req.Quantity)

	quote, err := h.offers.Quote(c.Request.Context(), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "Price calculated successfully", quote)
}
