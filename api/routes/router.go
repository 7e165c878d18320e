package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/srijeyam/tyrestore-backend/api/controllers"
	"github.com/srijeyam/tyrestore-backend/api/middleware"
	"github.com/srijeyam/tyrestore-backend/internal/accounts"
	"github.com/srijeyam/tyrestore-backend/internal/auth"
	"github.com/srijeyam/tyrestore-backend/internal/cart"
	"github.com/srijeyam/tyrestore-backend/internal/catalog"
	"github.com/srijeyam/tyrestore-backend/internal/notifications"
	"github.com/srijeyam/tyrestore-backend/internal/orders"
	"github.com/srijeyam/tyrestore-backend/pkg/config"
	"github.com/srijeyam/tyrestore-backend/pkg/db"
	"github.com/srijeyam/tyrestore-backend/pkg/logger"
)

type accountFinder interface {
	FindByID(ctx context.Context, id string) (*accounts.Account, error)
}

type confirmationSender interface {
	SendConfirmation(ctx context.Context, req notifications.ConfirmationRequest) error
}

// Deps bundles everything the router mounts.
type Deps struct {
	Config        *config.Config
	Logger        *logger.Logger
	Mongo         db.Pinger
	Redis         db.Pinger
	RateLimiter   middleware.RateLimiterStore
	AccountRepo   accountFinder
	AuthService   auth.Service
	Catalog       catalog.Service
	Cart          cart.Service
	Orders        orders.Service
	Notifications confirmationSender
}

// NewRouter wires the full HTTP surface.
func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.App.CORSOrigins),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	signupPolicy := middleware.NewAuthRateLimitPolicy(
		"signup",
		cfg.AuthRateLimit.SignupWindow,
		cfg.AuthRateLimit.SignupIPLimit,
		cfg.AuthRateLimit.SignupEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, deps.Mongo, deps.Redis, logg))
	})

	r.Route("/api/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(signupPolicy, deps.RateLimiter, logg)).
			Post("/signup", controllers.Signup(deps.AuthService, logg))
		r.With(middleware.AuthRateLimit(loginPolicy, deps.RateLimiter, logg)).
			Post("/login", controllers.Login(deps.AuthService, logg))
		if !cfg.App.IsProd() {
			r.Post("/admin-signup", controllers.AdminSignup(deps.AuthService, logg))
		}
	})

	r.Route("/api/tyres", func(r chi.Router) {
		r.Get("/", controllers.ListTyres(deps.Catalog, logg))
		r.Get("/{id}", controllers.GetTyre(deps.Catalog, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, logg))
			r.Use(middleware.RequireAdmin(logg))
			r.Post("/", controllers.CreateTyre(deps.Catalog, logg))
			r.Put("/{id}", controllers.UpdateTyre(deps.Catalog, logg))
			r.Delete("/{id}", controllers.DeleteTyre(deps.Catalog, logg))
		})
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))

		r.Get("/users/me", controllers.CurrentUser(deps.AccountRepo, logg))

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.ListCart(deps.Cart, logg))
			r.Post("/", controllers.AddCartItem(deps.Cart, logg))
			r.Delete("/", controllers.ClearCart(deps.Cart, logg))
			r.Put("/{productId}", controllers.SetCartQuantity(deps.Cart, logg))
			r.Delete("/{productId}", controllers.RemoveCartItem(deps.Cart, logg))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.ListOwnOrders(deps.Orders, logg))
			r.Post("/", controllers.CreateOrder(deps.Orders, logg))
			r.Post("/send-confirmation", controllers.SendOrderConfirmation(deps.Notifications, logg))
			r.Get("/{id}", controllers.GetOrder(deps.Orders, logg))
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireAdmin(logg))
			r.Get("/orders", controllers.ListAllOrders(deps.Orders, logg))
			r.Patch("/orders/{id}/status", controllers.UpdateOrderStatus(deps.Orders, logg))
		})
	})

	return r
}
