package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ruabo2004/totnghiep0kho-frontend/domain"
	"github.com/ruabo2004/totnghiep0kho-frontend/internal/catalog"
)

// CatalogHandlers serves the public storefront views from proxied backend
// data.
type CatalogHandlers struct {
	gateway domain.CatalogGateway
}

// NewCatalogHandlers creates the catalog handlers.
func NewCatalogHandlers(gateway domain.CatalogGateway) *CatalogHandlers {
	return &CatalogHandlers{gateway: gateway}
}

// Home handles GET /.
func (h *CatalogHandlers) Home(c *gin.Context) {
	featured, err := h.gateway.FeaturedProducts(c.Request.Context(), 8)
	if err != nil {
		h.respondCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"featured": featured}})
}

// Products handles GET /products with the full filter set.
func (h *CatalogHandlers) Products(c *gin.Context) {
	filters := parseFilters(c)
	page, err := h.gateway.Products(c.Request.Context(), filters)
	if err != nil {
		h.respondCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data":  page.Data,
		"meta":  page.Meta,
		"pages": catalog.Window(page.Meta, 2),
	})
}

// Product handles GET /products/:slug.
func (h *CatalogHandlers) Product(c *gin.Context) {
	product, err := h.gateway.Product(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.respondCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": product})
}

// Categories handles GET /categories.
func (h *CatalogHandlers) Categories(c *gin.Context) {
	categories, err := h.gateway.Categories(c.Request.Context())
	if err != nil {
		h.respondCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": categories})
}

// Category handles GET /categories/:slug, including the category's first
// product page.
func (h *CatalogHandlers) Category(c *gin.Context) {
	category, err := h.gateway.Category(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.respondCatalogError(c, err)
		return
	}
	products, err := h.gateway.CategoryProducts(c.Request.Context(), category.ID, parseFilters(c))
	if err != nil {
		h.respondCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"category": category,
			"products": products.Data,
		},
		"meta":  products.Meta,
		"pages": catalog.Window(products.Meta, 2),
	})
}

// parseFilters reads the listing filters from the query string. Values the
// backend would reject are normalized away rather than erroring.
func parseFilters(c *gin.Context) domain.ProductFilters {
	atoi := func(key string) int {
		n, _ := strconv.Atoi(c.Query(key))
		return n
	}
	atof := func(key string) float64 {
		f, _ := strconv.ParseFloat(c.Query(key), 64)
		return f
	}
	categoryID, _ := strconv.ParseUint(c.Query("category_id"), 10, 32)

	return domain.ProductFilters{
		Page:       atoi("page"),
		PerPage:    atoi("per_page"),
		CategoryID: uint(categoryID),
		Search:     c.Query("search"),
		MinPrice:   atof("min_price"),
		MaxPrice:   atof("max_price"),
		SortBy:     c.Query("sort_by"),
	}.Normalize()
}

func (h *CatalogHandlers) respondCatalogError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, domain.ErrUpstreamUnavailable):
		c.JSON(http.StatusBadGateway, gin.H{"error": "Service temporarily unavailable"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Request failed"})
	}
}
