package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"github.com/stripe/stripe-go/v82"
	"go.uber.org/zap"

	"parkwise/internal/api"
	"parkwise/internal/app"
	"parkwise/internal/auth"
	"parkwise/internal/cache"
	"parkwise/internal/config"
	"parkwise/internal/repository"
	"parkwise/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	database, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("failed to open DB", zap.Error(err))
	}
	if err := database.Ping(); err != nil {
		logger.Fatal("failed to connect to DB", zap.Error(err))
	}
	defer database.Close()

	migrator, err := app.NewMigrator(database)
	if err != nil {
		logger.Fatal("failed to create migrator", zap.Error(err))
	}
	if err := migrator.Run(context.Background()); err != nil {
		logger.Fatal("failed to apply migrations", zap.Error(err))
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
	})
	// The cache is not load-bearing: a down Redis only slows dashboards.
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		logger.Warn("redis unreachable, dashboards will be computed per request", zap.Error(err))
	}

	verifyWithStripe := cfg.StripeAPIKey != ""
	if verifyWithStripe {
		stripe.Key = cfg.StripeAPIKey
	}

	store := cache.NewRedisStore(redisClient)
	invalidator := cache.NewInvalidator(store, logger)

	reservationRepo := repository.NewReservationRepository(database)
	locationRepo := repository.NewLocationRepository(database)
	dashboardRepo := repository.NewDashboardRepository(database)
	paymentRepo := repository.NewPaymentRepository(database)
	jobRepo := repository.NewJobRepository(database)
	adminAuthRepo := repository.NewAdminAuthRepository(database)

	notifier := service.NewNotifier(logger)
	reservationSvc := service.NewReservationService(reservationRepo, locationRepo, invalidator, logger)
	dashboardSvc := service.NewDashboardService(dashboardRepo, store, logger)
	locationSvc := service.NewLocationService(locationRepo, invalidator, logger)
	paymentSvc := service.NewPaymentService(paymentRepo, invalidator, logger, verifyWithStripe)
	jobSvc := service.NewJobService(jobRepo, invalidator, notifier, logger)
	adminAuthSvc := service.NewAdminAuthService(adminAuthRepo, cfg.JWTSecret)

	reservationHandler := api.NewReservationHandler(reservationSvc)
	dashboardHandler := api.NewDashboardHandler(dashboardSvc)
	adminHandler := api.NewAdminHandler(locationSvc)
	paymentHandler := api.NewPaymentHandler(paymentSvc)
	adminAuthHandler := api.NewAdminAuthHandler(adminAuthSvc)

	middleware := auth.NewMiddleware(cfg.JWTSecret)

	r := mux.NewRouter()

	// User endpoints
	userAPI := r.PathPrefix("/api").Subrouter()
	userAPI.Use(middleware.RequireUser)
	userAPI.HandleFunc("/reservations", reservationHandler.CreateReservation).Methods("POST")
	userAPI.HandleFunc("/reservations/status", reservationHandler.UpdateStatus).Methods("PUT")
	userAPI.HandleFunc("/dashboard", dashboardHandler.UserDashboard).Methods("GET")
	userAPI.HandleFunc("/payments", paymentHandler.RecordPayment).Methods("POST")

	// Admin endpoints
	r.HandleFunc("/admin/login", adminAuthHandler.Login).Methods("POST")
	admin := r.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.RequireAdmin)
	admin.HandleFunc("/dashboard", dashboardHandler.AdminDashboard).Methods("GET")
	admin.HandleFunc("/lots", adminHandler.ListLots).Methods("GET")
	admin.HandleFunc("/lots", adminHandler.CreateLot).Methods("POST")
	admin.HandleFunc("/lots/{id}", adminHandler.UpdateLot).Methods("PUT")
	admin.HandleFunc("/lots/{id}", adminHandler.DeleteLot).Methods("DELETE")
	admin.HandleFunc("/stats/lots", dashboardHandler.LotStats).Methods("GET")
	admin.HandleFunc("/stats/users", dashboardHandler.UserStats).Methods("GET")
	admin.HandleFunc("/stats/financial", dashboardHandler.FinancialStats).Methods("GET")

	// Expiry sweep: active reservations past their end time move to
	// completed every five minutes.
	c := cron.New()
	_, err = c.AddFunc("*/5 * * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if err := jobSvc.ExpireReservations(ctx); err != nil {
			logger.Error("expiry sweep failed", zap.Error(err))
		}
	})
	if err != nil {
		logger.Fatal("failed to schedule expiry sweep", zap.Error(err))
	}
	c.Start()
	defer c.Stop()

	corsHandler := handlers.CORS(
		handlers.AllowedOrigins(cfg.CORSOrigins),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Authorization", "Content-Type"}),
	)(r)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handlers.LoggingHandler(os.Stdout, corsHandler),
	}

	go func() {
		logger.Info("server running", zap.String("port", cfg.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown failed", zap.Error(err))
	}
}
