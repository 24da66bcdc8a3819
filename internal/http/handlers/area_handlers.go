package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ruabo2004/totnghiep0kho-frontend/domain"
	"github.com/ruabo2004/totnghiep0kho-frontend/internal/http/middleware"
)

// PolicyLister exposes the route policy table for the admin diagnostics view.
type PolicyLister interface {
	Policies() ([][]string, error)
}

// AreaHandlers serves the role-scoped dashboard views. They trust the guards:
// by the time a request lands here, authentication and the role check have
// already happened.
type AreaHandlers struct {
	catalog domain.CatalogGateway
	policy  PolicyLister
}

// NewAreaHandlers creates the area handlers.
func NewAreaHandlers(catalog domain.CatalogGateway, policy PolicyLister) *AreaHandlers {
	return &AreaHandlers{catalog: catalog, policy: policy}
}

// CustomerHome handles GET /customer.
func (h *AreaHandlers) CustomerHome(c *gin.Context) {
	user, _ := middleware.UserFromContext(c)
	featured, err := h.catalog.FeaturedProducts(c.Request.Context(), 8)
	if err != nil {
		// The dashboard still renders without recommendations.
		featured = nil
	}
	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"area":     "customer",
			"user":     user,
			"featured": featured,
		},
	})
}

// SellerHome handles GET /seller.
func (h *AreaHandlers) SellerHome(c *gin.Context) {
	user, _ := middleware.UserFromContext(c)
	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"area": "seller",
			"user": user,
		},
	})
}

// AdminHome handles GET /admin.
func (h *AreaHandlers) AdminHome(c *gin.Context) {
	user, _ := middleware.UserFromContext(c)
	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"area": "admin",
			"user": user,
		},
	})
}

// RoutePolicies handles GET /account/policies, an admin-only diagnostics
// view of the area table.
func (h *AreaHandlers) RoutePolicies(c *gin.Context) {
	policies, err := h.policy.Policies()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read policies"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"policies": policies}})
}
