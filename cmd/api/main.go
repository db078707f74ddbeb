package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-co-op/gocron/v2"
	"github.com/redis/go-redis/v9"

	"petmarket/internal/config"
	"petmarket/internal/database"
	"petmarket/internal/jobs"
	"petmarket/internal/middleware"
	"petmarket/internal/modules/admin"
	"petmarket/internal/modules/auth"
	"petmarket/internal/modules/booking"
	"petmarket/internal/modules/catalog"
	"petmarket/internal/modules/chat"
	"petmarket/internal/modules/notification"
	"petmarket/internal/modules/payment"
	"petmarket/internal/modules/pets"
	"petmarket/internal/modules/review"
	jwtsvc "petmarket/internal/pkg/jwt"
	"petmarket/internal/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	petRepo := repository.NewPetRepository(db)
	serviceRepo := repository.NewServiceRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	chatRepo := repository.NewChatRepository(db)
	notifRepo := repository.NewNotificationRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)

	hub := chat.NewHub()
	defer hub.Close()

	notifService := notification.NewService(notifRepo, hub)
	notifHandler := notification.NewHandler(notifService)

	authService := auth.NewService(userRepo, j)
	authHandler := auth.NewHandler(authService)

	petService := pets.NewService(petRepo)
	petHandler := pets.NewHandler(petService)

	catalogService := catalog.NewService(serviceRepo)
	catalogHandler := catalog.NewHandler(catalogService)

	bookingService := booking.NewService(bookingRepo, serviceRepo, petRepo, notifService)
	bookingHandler := booking.NewHandler(bookingService)

	reviewService := review.NewService(reviewRepo, bookingRepo, review.NewAggregator(serviceRepo), notifService)
	reviewHandler := review.NewHandler(reviewService)

	gateway := payment.NewStripeGateway(cfg.StripeSecretKey)
	paymentService := payment.NewService(bookingRepo, paymentRepo, gateway, payment.Options{
		Currency:         cfg.StripeCurrency,
		GatewayTimeout:   cfg.GatewayTimeout,
		WebhookSecret:    cfg.StripeWebhookSecret,
		WebhookTolerance: cfg.WebhookTolerance,
	})
	paymentHandler := payment.NewHandler(paymentService)

	chatService := chat.NewService(chatRepo, hub)
	chatHandler := chat.NewHandler(chatService)
	wsHandler := chat.NewWSHandler(hub, j)

	adminService := admin.NewService(userRepo, bookingRepo)
	adminHandler := admin.NewHandler(adminService)

	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	}
	limiter := middleware.NewRateLimiter(rdb, cfg.RateLimit, cfg.RateWindow, "petmarket:rl")

	r := gin.New()
	r.Use(middleware.ErrorLogger())
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(limiter.Handler())

	v1 := r.Group("/api/v1")
	{
		// Websocket upgrade carries the JWT as a query parameter, so it
		// stays outside the Auth middleware group.
		v1.GET("/chat/ws", wsHandler.Handle)

		authHandler.RegisterPublicRoutes(v1)
		catalogHandler.RegisterPublicRoutes(v1)
		reviewHandler.RegisterPublicRoutes(v1)
		paymentHandler.RegisterWebhookRoutes(v1)

		protected := v1.Group("/")
		protected.Use(middleware.Auth(j, userRepo))
		{
			authHandler.RegisterProtectedRoutes(protected)
			petHandler.RegisterRoutes(protected)
			bookingHandler.RegisterRoutes(protected)
			reviewHandler.RegisterRoutes(protected)
			paymentHandler.RegisterRoutes(protected)
			chatHandler.RegisterRoutes(protected)
			notifHandler.RegisterRoutes(protected)

			provider := protected.Group("/")
			provider.Use(middleware.RequireRole("provider"))
			catalogHandler.RegisterProviderRoutes(provider)

			adminGroup := protected.Group("/admin")
			adminGroup.Use(middleware.AdminOnly())
			adminHandler.RegisterRoutes(adminGroup)
		}
	}

	sched, err := gocron.NewScheduler()
	if err != nil {
		log.Fatal(err)
	}
	reminders := jobs.NewReminders(bookingRepo, notifService, cfg.ReminderAhead)
	if err := reminders.Start(sched, cfg.ReminderEvery); err != nil {
		log.Fatal(err)
	}
	sched.Start()
	defer func() { _ = sched.Shutdown() }()

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: r,
	}

	go func() {
		log.Printf("listening on %s", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("server shutdown: %v", err)
	}
}
