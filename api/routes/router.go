package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rlipkart/storefront-backend/api/controllers"
	"github.com/rlipkart/storefront-backend/api/middleware"
	"github.com/rlipkart/storefront-backend/internal/auth"
	cartsvc "github.com/rlipkart/storefront-backend/internal/cart"
	chatsvc "github.com/rlipkart/storefront-backend/internal/chat"
	productsvc "github.com/rlipkart/storefront-backend/internal/products"
	"github.com/rlipkart/storefront-backend/pkg/auth/session"
	"github.com/rlipkart/storefront-backend/pkg/config"
	"github.com/rlipkart/storefront-backend/pkg/logger"
	"github.com/rlipkart/storefront-backend/pkg/metrics"
	"github.com/rlipkart/storefront-backend/pkg/redis"
)

type pinger interface {
	Ping(ctx context.Context) error
}

// Deps bundles everything the HTTP surface needs.
type Deps struct {
	Config          *config.Config
	Logger          *logger.Logger
	DB              pinger
	Redis           *redis.Client
	SessionChecker  session.AccessSessionChecker
	Metrics         *metrics.HTTPMetrics
	MetricsGatherer prometheus.Gatherer

	ProductService productsvc.Service
	CartService    cartsvc.Service
	ChatService    chatsvc.Service
	AuthService    auth.Service
	OTPService     auth.OTPService
}

func NewRouter(d Deps) http.Handler {
	cfg := d.Config
	logg := d.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(d.Metrics),
		middleware.CORS(),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	otpPolicy := middleware.NewAuthRateLimitPolicy(
		"otp",
		cfg.AuthRateLimit.OTPWindow,
		cfg.AuthRateLimit.OTPIPLimit,
		cfg.AuthRateLimit.OTPEmailLimit,
	)

	var cache pinger
	if d.Redis != nil {
		cache = d.Redis
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, d.DB, cache, logg))
	})

	if d.MetricsGatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(d.MetricsGatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/products", func(r chi.Router) {
		r.Get("/", controllers.ListProducts(d.ProductService, logg))
		r.Get("/{productID}", controllers.GetProduct(d.ProductService, logg))
	})

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/register", controllers.AuthRegister(d.AuthService, logg))
		r.With(middleware.AuthRateLimit(loginPolicy, d.Redis, logg)).Post("/login", controllers.AuthLogin(d.AuthService, logg))
		r.With(middleware.AuthRateLimit(otpPolicy, d.Redis, logg)).Post("/otp/request", controllers.AuthRequestOTP(d.OTPService, logg))
		r.With(middleware.AuthRateLimit(loginPolicy, d.Redis, logg)).Post("/otp/verify", controllers.AuthVerifyOTP(d.OTPService, logg))
		r.Post("/refresh", controllers.AuthRefresh(d.AuthService, logg))
		r.With(middleware.Auth(cfg.JWT, d.SessionChecker, logg)).Post("/logout", controllers.AuthLogout(d.AuthService, logg))
	})

	r.Route("/api/v1/cart", func(r chi.Router) {
		r.Use(middleware.OptionalAuth(cfg.JWT, d.SessionChecker, logg))
		r.Use(middleware.CartOwner(logg))

		r.Get("/", controllers.GetCart(d.CartService, logg))
		r.Post("/items", controllers.AddCartItem(d.CartService, logg))
		r.Patch("/items/{productID}", controllers.UpdateCartItem(d.CartService, logg))
		r.Delete("/items/{productID}", controllers.RemoveCartItem(d.CartService, logg))
		r.Post("/checkout", controllers.CheckoutCart(d.CartService, logg))
	})

	r.Route("/api/v1/chat/sessions", func(r chi.Router) {
		r.Use(middleware.OptionalAuth(cfg.JWT, d.SessionChecker, logg))

		r.Post("/", controllers.StartChatSession(d.ChatService, logg))
		r.Get("/{sessionID}", controllers.GetChatSession(d.ChatService, logg))
		r.Post("/{sessionID}/messages", controllers.SendChatMessage(d.ChatService, logg))
		r.Delete("/{sessionID}", controllers.EndChatSession(d.ChatService, logg))
	})

	return r
}
