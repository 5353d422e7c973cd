package controllers

import (
	"strings"

	"github.com/Govind-619/OrderSphere/repository"
	"github.com/Govind-619/OrderSphere/utils"
	"github.com/gin-gonic/gin"
)

type ProductController struct {
	catalog CatalogAPI
}

func NewProductController(catalog CatalogAPI) *ProductController {
	return &ProductController{catalog: catalog}
}

// ListProducts returns the sellable catalog with the client's prices
func (h *ProductController) ListProducts(c *gin.Context) {
	utils.LogInfo("ListProducts called")
	client, ok := requireClient(c)
	if !ok {
		return
	}

	products, err := h.catalog.ListProducts(c.Request.Context(), client)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.LogDebug("Returning %d products to client %d", len(products), client.ID)
	utils.Success(c, "Products retrieved successfully", gin.H{"products": products, "total": len(products)})
}

func (h *ProductController) SearchProducts(c *gin.Context) {
	utils.LogInfo("SearchProducts called")
	client, ok := requireClient(c)
	if !ok {
		return
	}

	filter := repository.ProductFilter{
		Query:     strings.TrimSpace(c.Query("q")),
		Brand:     strings.TrimSpace(c.Query("brand")),
		Packaging: strings.TrimSpace(c.Query("packaging")),
	}
	utils.LogDebug("Product search - q: %q, brand: %q, packaging: %q", filter.Query, filter.Brand, filter.Packaging)

	products, err := h.catalog.Search(c.Request.Context(), client, filter)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "Products retrieved successfully", gin.H{"products": products, "total": len(products)})
}

func (h *ProductController) GetProduct(c *gin.Context) {
	utils.LogInfo("GetProduct called")
	client, ok := requireClient(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	product, err := h.catalog.GetProduct(c.Request.Context(), client, id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "Product retrieved successfully", product)
}

func (h *ProductController) ListBrands(c *gin.Context) {
	utils.LogInfo("ListBrands called")
	brands, err := h.catalog.Brands(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "Brands retrieved successfully", brands)
}

func (h *ProductController) ListPackagings(c *gin.Context) {
	utils.LogInfo("ListPackagings called")
	packagings, err := h.catalog.Packagings(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "Packagings retrieved successfully", packagings)
}
