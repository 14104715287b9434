package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/avelara/dispatchly-backend/api/controllers"
	"github.com/avelara/dispatchly-backend/api/middleware"
	"github.com/avelara/dispatchly-backend/internal/analytics"
	"github.com/avelara/dispatchly-backend/internal/auth"
	"github.com/avelara/dispatchly-backend/internal/deliveries"
	"github.com/avelara/dispatchly-backend/internal/events"
	"github.com/avelara/dispatchly-backend/internal/messages"
	"github.com/avelara/dispatchly-backend/internal/notifications"
	"github.com/avelara/dispatchly-backend/internal/products"
	"github.com/avelara/dispatchly-backend/internal/users"
	"github.com/avelara/dispatchly-backend/pkg/auth/session"
	"github.com/avelara/dispatchly-backend/pkg/config"
	"github.com/avelara/dispatchly-backend/pkg/db"
	"github.com/avelara/dispatchly-backend/pkg/enums"
	"github.com/avelara/dispatchly-backend/pkg/logger"
	"github.com/avelara/dispatchly-backend/pkg/metrics"
	"github.com/avelara/dispatchly-backend/pkg/redis"
)

// Deps carries everything the HTTP surface needs.
type Deps struct {
	Config   *config.Config
	Logger   *logger.Logger
	DB       db.Pinger
	Redis    *redis.Client
	Sessions session.AccessSessionChecker
	Registry *prometheus.Registry

	AuthService     auth.Service
	RegisterService auth.RegisterService
	Users           *users.Repository
	Deliveries      *deliveries.Service
	Products        *products.Service
	Notifications   notifications.Service
	Messages        *messages.Service
	Analytics       *analytics.Service
	Events          *events.Service
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)
	if deps.Registry != nil {
		r.Use(middleware.Metrics(metrics.NewHTTPMetrics(deps.Registry)))
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, deps.DB, deps.Redis, logg))
	})

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, deps.Redis, logg)).Post("/login", controllers.AuthLogin(deps.AuthService, logg))
		r.With(middleware.AuthRateLimit(registerPolicy, deps.Redis, logg)).Post("/register", controllers.AuthRegister(deps.RegisterService, logg))
		r.Post("/refresh", controllers.AuthRefresh(deps.AuthService, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, deps.Sessions, logg))

		r.Post("/auth/logout", controllers.AuthLogout(deps.AuthService, logg))

		r.Get("/me", controllers.GetProfile(deps.Users, logg))
		r.Patch("/me", controllers.UpdateProfile(deps.Users, logg))
		r.With(middleware.RequireRole(logg, enums.RoleMerchant)).
			Get("/drivers", controllers.ListDrivers(deps.Users, logg))

		r.Route("/deliveries", func(r chi.Router) {
			r.Get("/", controllers.ListDeliveries(deps.Deliveries, logg))
			r.Get("/{id}", controllers.GetDelivery(deps.Deliveries, logg))
			r.Get("/{deliveryID}/messages", controllers.ListDeliveryMessages(deps.Messages, logg))
			r.Post("/{deliveryID}/messages", controllers.SendMessage(deps.Messages, logg))

			r.With(middleware.RequireRole(logg, enums.RoleMerchant, enums.RoleDriver)).
				Post("/{id}/status", controllers.SetDeliveryStatus(deps.Deliveries, logg))
			r.With(middleware.RequireRole(logg, enums.RoleClient, enums.RoleMerchant)).
				Post("/{id}/rate", controllers.RateDriver(deps.Deliveries, logg))

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(logg, enums.RoleMerchant))
				r.Post("/", controllers.CreateDelivery(deps.Deliveries, logg))
				r.Post("/{id}/assign", controllers.AssignDriver(deps.Deliveries, logg))
				r.Patch("/{id}", controllers.UpdateDelivery(deps.Deliveries, logg))
				r.Delete("/{id}", controllers.DeleteDelivery(deps.Deliveries, logg))
			})
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ListProducts(deps.Products, logg))
			r.Get("/{id}", controllers.GetProduct(deps.Products, logg))

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(logg, enums.RoleMerchant))
				r.Post("/", controllers.CreateProduct(deps.Products, logg))
				r.Patch("/{id}", controllers.UpdateProduct(deps.Products, logg))
				r.Post("/{id}/availability", controllers.SetProductAvailability(deps.Products, logg))
				r.Delete("/{id}", controllers.DeleteProduct(deps.Products, logg))
			})
		})

		r.Route("/notifications", func(r chi.Router) {
			r.Get("/", controllers.ListNotifications(deps.Notifications, logg))
			r.Post("/{id}/read", controllers.MarkNotificationRead(deps.Notifications, logg))
			r.Post("/read-all", controllers.MarkAllNotificationsRead(deps.Notifications, logg))
		})

		r.Route("/analytics", func(r chi.Router) {
			r.With(middleware.RequireRole(logg, enums.RoleMerchant)).
				Get("/summary", controllers.AnalyticsSummary(deps.Analytics, logg))
			r.With(middleware.RequireRole(logg, enums.RoleMerchant)).
				Get("/customers", controllers.AnalyticsCustomers(deps.Analytics, logg))
			r.Get("/drivers/{id}/rating", controllers.DriverRating(deps.Analytics, logg))
		})

		r.Route("/events", func(r chi.Router) {
			r.Get("/", controllers.ListEvents(deps.Events, logg))
			r.Post("/", controllers.CreateEvent(deps.Events, logg))
			r.Get("/dashboard", controllers.EventDashboard(deps.Events, logg))
			r.Get("/{id}", controllers.GetEvent(deps.Events, logg))
			r.Patch("/{id}", controllers.UpdateEvent(deps.Events, logg))
			r.Delete("/{id}", controllers.DeleteEvent(deps.Events, logg))

			r.Route("/{eventID}/guests", func(r chi.Router) {
				r.Get("/", controllers.ListEventGuests(deps.Events, logg))
				r.Post("/", controllers.AddEventGuest(deps.Events, logg))
				r.Patch("/{guestID}", controllers.UpdateEventGuest(deps.Events, logg))
				r.Post("/{guestID}/rsvp", controllers.UpdateGuestRSVP(deps.Events, logg))
				r.Delete("/{guestID}", controllers.RemoveEventGuest(deps.Events, logg))
			})
			r.Get("/{eventID}/rsvp-stats", controllers.EventRSVPStats(deps.Events, logg))
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", controllers.ListCategories(deps.Events, logg))
			r.Post("/", controllers.CreateCategory(deps.Events, logg))
			r.Get("/{id}", controllers.GetCategory(deps.Events, logg))
			r.Patch("/{id}", controllers.UpdateCategory(deps.Events, logg))
			r.Delete("/{id}", controllers.DeleteCategory(deps.Events, logg))
		})
	})

	return r
}
