package main

import (
	"context"
	"errors"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/rlipkart/storefront-backend/api/routes"
	"github.com/rlipkart/storefront-backend/internal/assistant"
	"github.com/rlipkart/storefront-backend/internal/auth"
	cartsvc "github.com/rlipkart/storefront-backend/internal/cart"
	chatsvc "github.com/rlipkart/storefront-backend/internal/chat"
	"github.com/rlipkart/storefront-backend/internal/notifications"
	productsvc "github.com/rlipkart/storefront-backend/internal/products"
	"github.com/rlipkart/storefront-backend/internal/users"
	"github.com/rlipkart/storefront-backend/pkg/auth/session"
	"github.com/rlipkart/storefront-backend/pkg/config"
	"github.com/rlipkart/storefront-backend/pkg/db"
	"github.com/rlipkart/storefront-backend/pkg/logger"
	"github.com/rlipkart/storefront-backend/pkg/mailer"
	"github.com/rlipkart/storefront-backend/pkg/metrics"
	"github.com/rlipkart/storefront-backend/pkg/migrate"
	"github.com/rlipkart/storefront-backend/pkg/redis"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	var mail mailer.Mailer = mailer.Noop{Logg: logg}
	if cfg.Mailer.ResendAPIKey != "" {
		mail, err = mailer.NewResendMailer(cfg.Mailer.ResendAPIKey, cfg.Mailer.FromEmail, cfg.Mailer.AdminEmail, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to create mailer", err)
			os.Exit(1)
		}
	}

	notifier, err := notifications.NewService(mail, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create notifications service", err)
		os.Exit(1)
	}

	userRepo := users.NewRepository(dbClient.DB())

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:       userRepo,
		SessionManager: sessionManager,
		Notifier:       notifier,
		JWTConfig:      cfg.JWT,
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	otpService, err := auth.NewOTPService(auth.OTPServiceParams{
		UserRepo:  userRepo,
		Store:     redisClient,
		Mailer:    mail,
		Login:     authService,
		OTPConfig: cfg.OTP,
		IsNil:     redis.IsNil,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create otp service", err)
		os.Exit(1)
	}

	productService, err := productsvc.NewService(productsvc.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create product service", err)
		os.Exit(1)
	}

	cartStore, err := cartsvc.NewStore(redisClient, cfg.Cart.TTL)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart store", err)
		os.Exit(1)
	}
	cartService, err := cartsvc.NewService(cartStore, productService)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	chatStore, err := chatsvc.NewStore(cfg.Chat.SessionTTL, cfg.Chat.SweepInterval)
	if err != nil {
		logg.Error(context.Background(), "failed to create chat store", err)
		os.Exit(1)
	}
	defer chatStore.Close()

	engine := assistant.NewEngine(rand.New(rand.NewSource(time.Now().UnixNano())))
	chatService, err := chatsvc.NewService(chatStore, engine, productService, chatsvc.RealSleeper{}, cfg.Assistant.ComposingDelay, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create chat service", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	httpMetrics := metrics.NewHTTPMetrics(registry)

	router := routes.NewRouter(routes.Deps{
		Config:          cfg,
		Logger:          logg,
		DB:              dbClient,
		Redis:           redisClient,
		SessionChecker:  sessionManager,
		Metrics:         httpMetrics,
		MetricsGatherer: registry,
		ProductService:  productService,
		CartService:     cartService,
		ChatService:     chatService,
		AuthService:     authService,
		OTPService:      otpService,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case sig := <-stop:
		ctx = logg.WithField(ctx, "signal", sig.String())
		logg.Info(ctx, "shutting down api server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
			os.Exit(1)
		}
	}
}
