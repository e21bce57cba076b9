package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/scootly/scootly-backend/api/controllers"
	"github.com/scootly/scootly-backend/api/middleware"
	"github.com/scootly/scootly-backend/internal/auth"
	"github.com/scootly/scootly-backend/internal/bookings"
	"github.com/scootly/scootly-backend/internal/scooters"
	"github.com/scootly/scootly-backend/internal/stores"
	"github.com/scootly/scootly-backend/internal/users"
	"github.com/scootly/scootly-backend/pkg/auth/session"
	"github.com/scootly/scootly-backend/pkg/config"
	"github.com/scootly/scootly-backend/pkg/db"
	"github.com/scootly/scootly-backend/pkg/enums"
	"github.com/scootly/scootly-backend/pkg/logger"
	"github.com/scootly/scootly-backend/pkg/redis"
)

type sessionManager interface {
	session.AccessSessionChecker
	Rotate(context.Context, string, string) (string, string, error)
	Revoke(context.Context, string) error
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	sessionManager sessionManager,
	authService auth.Service,
	registerService auth.RegisterService,
	userService users.Service,
	storeService stores.Service,
	scooterService scooters.Service,
	bookingService bookings.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
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
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisClient))
	})

	r.Route("/api/public", func(r chi.Router) {
		r.Get("/ping", controllers.PublicPing())
		r.Post("/bookings/preview", controllers.PublicBookingPreview(logg))
		r.Get("/stores", controllers.PublicStoreList(storeService, logg))
		r.Get("/stores/{storeId}", controllers.PublicStoreGet(storeService, logg))
		r.Get("/stores/{storeId}/scooters", controllers.PublicStoreScooters(scooterService, storeService, logg))
		r.Get("/scooters/{scooterId}/unavailable-dates", controllers.ScooterUnavailableDates(bookingService, logg))
	})

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, redisClient, logg)).Post("/login", controllers.AuthLogin(authService, logg))
		r.With(middleware.AuthRateLimit(signupPolicy, redisClient, logg)).Post("/signup/rider", controllers.SignupRider(registerService, logg))
		r.With(middleware.AuthRateLimit(signupPolicy, redisClient, logg)).Post("/signup/store", controllers.SignupStore(registerService, logg))
		r.Post("/logout", controllers.AuthLogout(authService, logg))
		r.Post("/refresh", controllers.AuthRefresh(authService, logg))
	})

	r.Route("/api/admin/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, redisClient, logg)).Post("/login", controllers.AdminAuthLogin(authService, logg))
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, sessionManager, logg))
		r.Use(middleware.Idempotency(redisClient, logg))

		r.Get("/ping", controllers.PrivatePing())
		r.Get("/v1/me", controllers.Profile(userService, logg))
		r.Put("/v1/me", controllers.ProfileUpdate(userService, logg))

		r.Route("/v1/bookings", func(r chi.Router) {
			r.Use(middleware.RequireRole(string(enums.RoleRider), logg))
			r.Post("/", controllers.BookingCreate(bookingService, logg))
			r.Get("/", controllers.RiderBookingList(bookingService, logg))
			r.Post("/{bookingId}/cancel", controllers.RiderBookingCancel(bookingService, logg))
		})

		r.Route("/v1/store", func(r chi.Router) {
			r.Use(middleware.RequireRole(string(enums.RoleStore), logg))
			r.Use(middleware.StoreContext(logg))

			r.Get("/me", controllers.StoreProfile(storeService, logg))
			r.Put("/me", controllers.StoreUpdate(storeService, logg))

			r.Route("/scooters", func(r chi.Router) {
				r.Get("/", controllers.StoreScooterList(scooterService, logg))
				r.Post("/", controllers.StoreScooterCreate(scooterService, logg))
				r.Patch("/{scooterId}", controllers.StoreScooterUpdate(scooterService, logg))
				r.Delete("/{scooterId}", controllers.StoreScooterDelete(scooterService, logg))
			})

			r.Route("/bookings", func(r chi.Router) {
				r.Get("/", controllers.StoreBookingList(bookingService, logg))
				r.Post("/{bookingId}/confirm", controllers.StoreBookingConfirm(bookingService, logg))
				r.Post("/{bookingId}/cancel", controllers.StoreBookingCancel(bookingService, logg))
			})
		})
	})

	r.Route("/api/admin", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, sessionManager, logg))
		r.Use(middleware.RequireRole(string(enums.RoleAdmin), logg))
		r.Use(middleware.Idempotency(redisClient, logg))

		r.Get("/ping", controllers.AdminPing())
		r.Route("/v1/stores", func(r chi.Router) {
			r.Get("/", controllers.AdminStoreList(storeService, logg))
			r.Post("/{storeId}/accept", controllers.AdminStoreAccept(storeService, logg))
		})
		r.Route("/v1/users", func(r chi.Router) {
			r.Get("/", controllers.AdminUserList(userService, logg))
			r.Delete("/{userId}", controllers.AdminUserDelete(userService, logg))
		})
	})

	return r
}
