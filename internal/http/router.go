package httpx

import (
	"github.com/gin-gonic/gin"

	"github.com/ruabo2004/totnghiep0kho-frontend/domain"
	"github.com/ruabo2004/totnghiep0kho-frontend/internal/http/handlers"
	"github.com/ruabo2004/totnghiep0kho-frontend/internal/http/middleware"
)

// BuildRouter wires the guard layers around the route tree. Authorization
// lives only here and in the guards; handlers never re-check roles.
func BuildRouter(ah *handlers.AuthHandlers, ch *handlers.CatalogHandlers, areaH *handlers.AreaHandlers, mw *middleware.SessionMW, policy domain.RoutePolicy) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	// Public storefront
	r.GET("/", ch.Home)
	r.GET("/products", ch.Products)
	r.GET("/products/:slug", ch.Product)
	r.GET("/categories", ch.Categories)
	r.GET("/categories/:slug", ch.Category)

	// Guest-only auth pages
	guest := r.Group("/", mw.GuestOnly())
	guest.GET("/login", ah.LoginPage)
	guest.POST("/login", ah.Login)
	guest.GET("/register", ah.RegisterPage)
	guest.POST("/register", ah.Register)
	guest.GET("/forgot-password", ah.ForgotPasswordPage)
	guest.POST("/forgot-password", ah.ForgotPassword)
	guest.GET("/reset-password", ah.ResetPasswordPage)
	guest.POST("/reset-password", ah.ResetPassword)

	// Logout is fail-open: it must go through even while the profile cannot
	// be resolved, so it sits outside the profile-resolving guard. The
	// handler decodes the cookie itself.
	r.POST("/logout", ah.Logout)

	// Authenticated, any role
	account := r.Group("/", mw.RequireSession())
	account.GET("/account/me", ah.Me)
	account.POST("/account/change-password", ah.ChangePassword)
	account.GET("/account/policies", mw.RequireRoles(domain.RoleAdmin), areaH.RoutePolicies)

	// Role areas
	admin := r.Group("/admin", mw.RequireSession(), mw.RequireArea(policy))
	admin.GET("", areaH.AdminHome)

	seller := r.Group("/seller", mw.RequireSession(), mw.RequireArea(policy))
	seller.GET("", areaH.SellerHome)

	customer := r.Group("/customer", mw.RequireSession(), mw.RequireArea(policy))
	customer.GET("", areaH.CustomerHome)

	return r
}
