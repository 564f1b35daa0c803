package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/srgjo27/sportsync/internal/adapter/handler"
	"github.com/srgjo27/sportsync/internal/adapter/notification"
	"github.com/srgjo27/sportsync/internal/adapter/payment"
	"github.com/srgjo27/sportsync/internal/adapter/repository/postgres"
	"github.com/srgjo27/sportsync/internal/config"
	"github.com/srgjo27/sportsync/internal/core/ports"
	"github.com/srgjo27/sportsync/internal/core/services"
	"github.com/srgjo27/sportsync/internal/platform/database"
	"github.com/srgjo27/sportsync/internal/platform/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logg, err := logger.New(cfg.IsProduction())
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logg.Sync()

	loc, err := cfg.Location()
	if err != nil {
		logg.Fatal("invalid timezone", zap.Error(err))
	}
	clock := ports.SystemClock{Location: loc}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgresDB(ctx, database.Config{
		DSN:          cfg.Database.DSN(),
		MaxOpenConns: cfg.Database.MaxOpenConns,
	}, logg)
	if err != nil {
		logg.Fatal("failed to connect to db after retries", zap.Error(err))
	}
	defer db.Close()

	if err := database.Migrate(db, logg); err != nil {
		logg.Fatal("failed to run migrations", zap.Error(err))
	}

	logg.Info("connecting to redis", zap.String("addr", cfg.Redis.Addr))

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		logg.Fatal("failed to connect to redis", zap.Error(err))
	}
	logg.Info("redis connected")

	complexRepo := postgres.NewComplexRepository(db)
	courtRepo := postgres.NewCourtRepository(db)
	rateRepo := postgres.NewRateRepository(db)
	bookingRepo := postgres.NewBookingRepository(db)
	statsRepo := postgres.NewStatsRepository(db)
	reviewRepo := postgres.NewReviewRepository(db)

	notifiers := notification.Fanout{
		notification.NewEmailNotifier(notification.SMTPConfig{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			User:     cfg.SMTP.User,
			Password: cfg.SMTP.Password,
			From:     cfg.SMTP.From,
			Timeout:  cfg.SMTP.Timeout,
		}, logg),
	}
	if cfg.SMTP.Host == "" {
		logg.Warn("SMTP_HOST not set, booking emails are disabled")
	}

	if cfg.AMQP.URL != "" {
		publisher, err := notification.NewPublisher(cfg.AMQP.URL, cfg.AMQP.Exchange)
		if err != nil {
			logg.Fatal("failed to connect to rabbitmq", zap.Error(err))
		}
		defer publisher.Close()

		notifiers = append(notifiers, publisher)
		logg.Info("booking events published", zap.String("exchange", cfg.AMQP.Exchange))
	}

	rates := services.NewRateTable(rateRepo)
	payments := services.NewPaymentDesk(payment.NewQRGenerator(""), cfg.PaymentPrefix, logg)
	banks := payment.NewBankDirectory(&http.Client{Timeout: 10 * time.Second}, cfg.VietQRBanksURL, redisClient, logg)

	bookingService := services.NewBookingService(courtRepo, bookingRepo, rates, payments, notifiers, redisClient, clock, logg)
	courtService := services.NewCourtService(complexRepo, courtRepo, rateRepo, redisClient, clock, logg)
	availabilityService := services.NewAvailabilityService(complexRepo, courtRepo, bookingRepo, rates, redisClient, clock, logg)
	statsService := services.NewStatsService(statsRepo, clock)
	reviewService := services.NewReviewService(reviewRepo, complexRepo, clock, logg)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := handler.NewRouter(handler.RouterConfig{
		JWTSecret:       cfg.JWTSecret,
		RateLimitPerMin: cfg.RateLimitPerMin,
		AllowedOrigins:  cfg.AllowedOrigins,
	}, handler.Handlers{
		Booking: handler.NewBookingHandler(bookingService, logg),
		Owner:   handler.NewOwnerHandler(bookingService, courtService, availabilityService, statsService, logg),
		Public:  handler.NewPublicHandler(availabilityService, courtService, reviewService, banks, logg),
		Review:  handler.NewReviewHandler(reviewService, logg),
		Admin:   handler.NewAdminHandler(statsService, logg),
	}, logg)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logg.Info("server starting", zap.String("addr", cfg.HTTPAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Fatal("server startup failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logg.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logg.Error("server forced to shutdown", zap.Error(err))
	}

	logg.Info("server exiting")
}
