package router

import (
	"github.com/bistro/backend/internal/interfaces/http/handler"
	"github.com/bistro/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// Handlers are the HTTP handlers mounted under /api/v1
type Handlers struct {
	System      *handler.SystemHandler
	Identity    *handler.IdentityHandler
	Catalog     *handler.CatalogHandler
	Trade       *handler.TradeHandler
	Report      *handler.ReportHandler
	Reservation *handler.ReservationHandler
}

// Gate holds what the authorization middleware needs
type Gate struct {
	Tokens middleware.TokenVerifier
	Roles  middleware.RoleResolver
	// Limiter throttles public write endpoints; nil disables throttling
	Limiter *middleware.RateLimiter
}

// BistroRoutes builds the route groups of the public API
func BistroRoutes(h Handlers, g Gate) []RouteRegistrar {
	authenticated := middleware.Authenticate(g.Tokens)
	admin := []gin.HandlerFunc{authenticated, middleware.RequireAdmin(g.Roles)}
	selfByQuery := []gin.HandlerFunc{authenticated, middleware.RequireSelf(middleware.FromQuery("email"))}
	throttled := middleware.RateLimit(g.Limiter)

	system := NewDomainGroup("system", "").
		GET("/health", h.System.Health).
		POST("/identity-token", throttled, h.Identity.IssueToken)

	users := NewDomainGroup("users", "/users").
		POST("", throttled, h.Identity.CreateUser).
		GET("", chain(admin, h.Identity.ListUsers)...).
		GET("/admin-check", chain(selfByQuery, h.Identity.AdminCheck)...).
		DELETE("/:id", chain(admin, h.Identity.DeleteUser)...).
		PATCH("/:id/promote", chain(admin, h.Identity.PromoteUser)...)

	menu := NewDomainGroup("menu", "/menu").
		GET("", h.Catalog.ListMenu).
		GET("/:id", h.Catalog.GetMenuItem).
		POST("", chain(admin, h.Catalog.CreateMenuItem)...).
		PATCH("/:id", chain(admin, h.Catalog.UpdateMenuItem)...).
		DELETE("/:id", chain(admin, h.Catalog.DeleteMenuItem)...)

	reviews := NewDomainGroup("reviews", "/reviews").
		POST("", throttled, h.Catalog.CreateReview).
		GET("", middleware.SelfWhenQueried(g.Tokens, "email"), h.Catalog.ListReviews)

	carts := NewDomainGroup("carts", "/carts").
		GET("", chain(selfByQuery, h.Trade.ListCart)...).
		POST("", authenticated, h.Trade.AddToCart).
		DELETE("/:id", authenticated, h.Trade.RemoveFromCart)

	payments := NewDomainGroup("payments", "/payments").
		GET("", chain(admin, h.Trade.ListPayments)...).
		GET("/:email", authenticated, middleware.RequireSelf(middleware.FromParam("email")), h.Trade.ListOwnPayments).
		POST("", authenticated, h.Trade.Settle).
		POST("/:id/cleanup", authenticated, h.Trade.CleanupCart).
		PUT("/:id", chain(admin, h.Trade.UpdatePaymentStatus)...)

	intents := NewDomainGroup("payment-intent", "/payment-intent").
		POST("", throttled, h.Trade.CreatePaymentIntent)

	reports := NewDomainGroup("reports", "").
		GET("/admin-stats", chain(admin, h.Report.GlobalStats)...).
		GET("/order-stats", chain(admin, h.Report.OrderStats)...)

	reservations := NewDomainGroup("reservations", "/reservations").
		POST("", throttled, h.Reservation.Create).
		GET("", chain(selfByQuery, h.Reservation.ListOwn)...)

	return []RouteRegistrar{system, users, menu, reviews, carts, payments, intents, reports, reservations}
}
