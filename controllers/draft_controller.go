package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/Govind-619/OrderSphere/pricing"
	"github.com/Govind-619/OrderSphere/services"
	"github.com/Govind-619/OrderSphere/utils"
	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type DraftController struct {
	drafts DraftAPI
	clock  services.Clock
}

func NewDraftController(drafts DraftAPI, clock services.Clock) *DraftController {
	return &DraftController{drafts: drafts, clock: clock}
}

// CreateDraft stores a new draft order priced from the current catalog
func (h *DraftController) CreateDraft(c *gin.Context) {
	utils.LogInfo("CreateDraft called")
	client, ok := requireClient(c)
	if !ok {
		return
	}

	var in services.DraftInput
	if err := utils.BindJSON(c, &in); err != nil {
		utils.LogError("Invalid draft order request from client %d: %v", client.ID, err)
		utils.RespondError(c, err)
		return
	}

	draft, err := h.drafts.Create(c.Request.Context(), client, in)
	if err != nil {
		utils.LogError("Failed to create draft order for client %d: %v", client.ID, err)
		utils.RespondError(c, err)
		return
	}
	utils.Created(c, "Draft order created successfully", draft)
}

func (h *DraftController) ListDrafts(c *gin.Context) {
	utils.LogInfo("ListDrafts called")
	client, ok := requireClient(c)
	if !ok {
		return
	}
	p := utils.NewPagination(c)
	status := c.Query("status")

	drafts, total, err := h.drafts.List(c.Request.Context(), client, status, p.Offset, p.Limit)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	p.SetTotal(total)
	utils.SendPaginatedResponse(c, "Draft orders retrieved successfully", drafts, p)
}

func (h *DraftController) GetDraft(c *gin.Context) {
	utils.LogInfo("GetDraft called")
	client, ok := requireClient(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	draft, err := h.drafts.Get(c.Request.Context(), client, id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "Draft order retrieved successfully", draft)
}

// UpdateDraft replaces the items and notes of a draft order
func (h *DraftController) UpdateDraft(c *gin.Context) {
	utils.LogInfo("UpdateDraft called")
	client, ok := requireClient(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var in services.DraftInput
	if err := utils.BindJSON(c, &in); err != nil {
		utils.RespondError(c, err)
		return
	}
	draft, err := h.drafts.Update(c.Request.Context(), client, id, in)
	if err != nil {
		utils.LogError("Failed to update draft order %d: %v", id, err)
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "Draft order updated successfully", draft)
}

// SubmitDraft sends a draft order to the distributor after checking its offers
func (h *DraftController) SubmitDraft(c *gin.Context) {
	utils.LogInfo("SubmitDraft called")
	client, ok := requireClient(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	draft, err := h.drafts.Submit(c.Request.Context(), client, id)
	if err != nil {
		utils.LogError("Failed to submit draft order %d: %v", id, err)
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "Draft order submitted successfully", draft)
}

func (h *DraftController) DeleteDraft(c *gin.Context) {
	utils.LogInfo("DeleteDraft called")
	client, ok := requireClient(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.drafts.Delete(c.Request.Context(), client, id); err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "Draft order deleted successfully", nil)
}

// ExportSubmittedDrafts downloads the drafts submitted in [from, to) as a
// spreadsheet. The range defaults to the current month.
func (h *DraftController) ExportSubmittedDrafts(c *gin.Context) {
	utils.LogInfo("ExportSubmittedDrafts called")

	now := h.clock()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	to := from.AddDate(0, 1, 0)
	if s := c.Query("from"); s != "" {
		d, err := pricing.ParseDate(s)
		if err != nil {
			utils.BadRequest(c, "Invalid from date, expected YYYY-MM-DD", err.Error())
			return
		}
		from = time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, now.Location())
	}
	if s := c.Query("to"); s != "" {
		d, err := pricing.ParseDate(s)
		if err != nil {
			utils.BadRequest(c, "Invalid to date, expected YYYY-MM-DD", err.Error())
			return
		}
		to = time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, now.Location())
	}
	utils.LogDebug("Exporting drafts submitted between %s and %s", from.Format(time.RFC3339), to.Format(time.RFC3339))

	drafts, err := h.drafts.SubmittedBetween(c.Request.Context(), from, to)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	book, err := services.RenderDraftExport(drafts)
	if err != nil {
		utils.LogError("Failed to build draft export: %v", err)
		utils.InternalServerError(c, "Failed to generate spreadsheet", nil)
		return
	}

	filename := fmt.Sprintf("submitted_drafts_%s_%s.xlsx", from.Format("20060102"), to.Format("20060102"))
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, xlsxContentType, book)
	utils.LogInfo("Exported %d submitted drafts", len(drafts))
}
