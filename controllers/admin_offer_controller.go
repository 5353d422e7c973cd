package controllers

import (
	"github.com/Govind-619/OrderSphere/services"
	"github.com/Govind-619/OrderSphere/utils"
	"github.com/gin-gonic/gin"
)

type AdminOfferController struct {
	offers OfferAdminAPI
}

func NewAdminOfferController(offers OfferAdminAPI) *AdminOfferController {
	return &AdminOfferController{offers: offers}
}

func (h *AdminOfferController) ListOffers(c *gin.Context) {
	utils.LogInfo("Admin ListOffers called")
	p := utils.NewPagination(c)

	offers, total, err := h.offers.AdminList(c.Request.Context(), p.Offset, p.Limit)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	p.SetTotal(total)
	utils.SendPaginatedResponse(c, "Offers retrieved successfully", offers, p)
}

func (h *AdminOfferController) GetOffer(c *gin.Context) {
	utils.LogInfo("Admin GetOffer called")
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	offer, err := h.offers.AdminGet(c.Request.Context(), id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "Offer retrieved successfully", offer)
}

func (h *AdminOfferController) CreateOffer(c *gin.Context) {
	utils.LogInfo("CreateOffer called")

	var in services.OfferInput
	if err := utils.BindJSON(c, &in); err != nil {
		utils.RespondError(c, err)
		return
	}
	offer, err := h.offers.Create(c.Request.Context(), in)
	if err != nil {
		utils.LogError("Failed to create offer: %v", err)
		utils.RespondError(c, err)
		return
	}
	utils.Created(c, "Offer created successfully", offer)
}

func (h *AdminOfferController) UpdateOffer(c *gin.Context) {
	utils.LogInfo("UpdateOffer called")
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var in services.OfferInput
	if err := utils.BindJSON(c, &in); err != nil {
		utils.RespondError(c, err)
		return
	}
	offer, err := h.offers.Update(c.Request.Context(), id, in)
	if err != nil {
		utils.LogError("Failed to update offer %d: %v", id, err)
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "Offer updated successfully", offer)
}

// DeactivateOffer disables an offer. It stays listed for administration.
func (h *AdminOfferController) DeactivateOffer(c *gin.Context) {
	utils.LogInfo("DeactivateOffer called")
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.offers.Deactivate(c.Request.Context(), id); err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "Offer deactivated successfully", nil)
}
