// Package routes wires middleware, controllers, and services into the
// chi router.
package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rakibulhaque/trendibay-backend/api/controllers"
	"github.com/rakibulhaque/trendibay-backend/api/middleware"
	authsvc "github.com/rakibulhaque/trendibay-backend/internal/auth"
	"github.com/rakibulhaque/trendibay-backend/internal/cart"
	"github.com/rakibulhaque/trendibay-backend/internal/catalog"
	"github.com/rakibulhaque/trendibay-backend/internal/checkout"
	"github.com/rakibulhaque/trendibay-backend/internal/orders"
	"github.com/rakibulhaque/trendibay-backend/internal/users"
	"github.com/rakibulhaque/trendibay-backend/internal/wishlist"
	pkgauth "github.com/rakibulhaque/trendibay-backend/pkg/auth"
	"github.com/rakibulhaque/trendibay-backend/pkg/auth/session"
	"github.com/rakibulhaque/trendibay-backend/pkg/config"
	"github.com/rakibulhaque/trendibay-backend/pkg/db"
	"github.com/rakibulhaque/trendibay-backend/pkg/enums"
	"github.com/rakibulhaque/trendibay-backend/pkg/logger"
	"github.com/rakibulhaque/trendibay-backend/pkg/redis"
)

// Deps carries everything the router needs.
type Deps struct {
	Config   *config.Config
	Logger   *logger.Logger
	DB       *db.Client
	Redis    *redis.Client
	Issuer   *pkgauth.TokenIssuer
	Sessions *session.Manager

	Auth     authsvc.Service
	Users    users.Service
	Catalog  catalog.Service
	Cart     cart.Service
	Wishlist wishlist.Service
	Checkout checkout.Service
	Orders   orders.Service

	PromRegistry *prometheus.Registry
}

func New(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logging(deps.Logger))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.Config.App.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "Idempotency-Key", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health/live", controllers.HealthLive())
	r.Get("/health/ready", controllers.HealthReady(deps.DB, deps.Redis))
	if deps.PromRegistry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.PromRegistry, promhttp.HandlerOpts{}))
	}

	authRL := deps.Config.Auth

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.With(
				middleware.RateLimit(deps.Redis, "register", authRL.RegisterRateLimit, authRL.RegisterRateWindow),
				middleware.Idempotency(deps.Redis),
			).Post("/register", controllers.Register(deps.Auth))
			r.With(
				middleware.RateLimit(deps.Redis, "login", authRL.LoginRateLimit, authRL.LoginRateWindow),
			).Post("/login", controllers.Login(deps.Auth))
			r.Post("/refresh", controllers.Refresh(deps.Auth))
			r.Post("/logout", controllers.Logout(deps.Auth))
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ListProducts(deps.Catalog))
			r.Get("/{productID}", controllers.GetProduct(deps.Catalog))
		})

		// Authenticated storefront surface.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(deps.Issuer, deps.Sessions))
			r.Use(middleware.Idempotency(deps.Redis))

			r.Get("/users/me", controllers.GetProfile(deps.Users))
			r.Get("/users/role", controllers.RoleByEmail(deps.Users))

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", controllers.GetCart(deps.Cart))
				r.Delete("/", controllers.ClearCart(deps.Cart))
				r.Post("/items", controllers.AddCartItem(deps.Cart))
				r.Patch("/items/{itemID}", controllers.UpdateCartItem(deps.Cart))
				r.Delete("/items/{itemID}", controllers.RemoveCartItem(deps.Cart))
			})

			r.Route("/wishlist", func(r chi.Router) {
				r.Get("/", controllers.ListWishlist(deps.Wishlist))
				r.Post("/toggle", controllers.ToggleWishlist(deps.Wishlist))
				r.Delete("/{entryID}", controllers.RemoveWishlistEntry(deps.Wishlist))
			})

			r.Post("/checkout", controllers.Checkout(deps.Checkout))

			r.Route("/orders", func(r chi.Router) {
				r.Get("/", controllers.ListMyOrders(deps.Orders))
				r.Get("/{orderID}", controllers.GetMyOrder(deps.Orders))
			})
		})
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.Auth(deps.Issuer, deps.Sessions))
		r.Use(middleware.RequireRole(enums.UserRoleAdmin))
		r.Use(middleware.Idempotency(deps.Redis))

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.AdminListOrders(deps.Orders))
			r.Get("/{orderID}", controllers.AdminGetOrder(deps.Orders))
			r.Patch("/{orderID}/status", controllers.AdminUpdateOrderStatus(deps.Orders))
			r.Patch("/{orderID}/payment-status", controllers.AdminUpdatePaymentStatus(deps.Orders))
		})

		r.Route("/products", func(r chi.Router) {
			r.Post("/", controllers.CreateProduct(deps.Catalog))
			r.Patch("/{productID}", controllers.UpdateProduct(deps.Catalog))
			r.Delete("/{productID}", controllers.DeleteProduct(deps.Catalog))
		})

		r.Post("/users/grant-admin", controllers.GrantAdmin(deps.Users))
	})

	return r
}
