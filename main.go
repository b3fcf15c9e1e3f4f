// File: coachly/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"coachly/config"
	"coachly/cron"
	"coachly/database"
	"coachly/database/repository"
	notificationRepoPkg "coachly/database/repository/notification"
	"coachly/handlers"
	"coachly/middleware"
	"coachly/routes"
	"coachly/services/notification"
	"coachly/services/realtime"
	"coachly/services/tasks"
	"coachly/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.FirebaseInit()
	stripe.Key = config.AppConfig.StripeKey

	// repositories.
	notifRepo := notificationRepoPkg.NewMongoNotificationRepo()
	bookingRepo := repository.NewMongoBookingRepo()
	paymentRepo := repository.NewMongoPaymentRepo()
	programRepo := repository.NewMongoProgramRepo()
	userRepo := repository.NewMongoUserRepo()

	// realtime hub with liveness sweeping.
	hub := realtime.NewHub(logger)
	go hub.Heartbeat(30 * time.Second)

	// async email queue client.
	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisEmailQueueDB,
	})
	defer asynqClient.Close()
	emailEnqueuer := &tasks.AsynqEmailEnqueuer{Client: asynqClient}

	// delivery channels. Order does not matter; channels fail independently.
	channels := []notification.Channel{
		&notification.InAppChannel{Realtime: hub, Logger: logger},
		&notification.EmailChannel{
			Users:    userRepo,
			Enqueuer: emailEnqueuer,
			Cache:    utils.GetCacheClient(),
			Logger:   logger,
		},
		&notification.PushChannel{
			Users:  userRepo,
			Sender: &notification.FCMSender{Client: utils.FCMClient},
			Logger: logger,
		},
	}

	dispatcher := &notification.Dispatcher{
		Repo: notifRepo,
		Resolver: &notification.ContextResolver{
			Bookings: bookingRepo,
			Payments: paymentRepo,
			Programs: programRepo,
		},
		Channels: channels,
		Logger:   logger,
	}

	notificationService := &notification.DefaultNotificationService{
		Repo:     notifRepo,
		Realtime: hub,
		Logger:   logger,
	}

	// background workers.
	cron.InitNotificationWorker(&cron.LoggingMailer{Logger: logger}, dispatcher)
	cron.InitRetentionSweeper(notificationService, logger)

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		MaxAge:           12 * time.Hour,
		AllowCredentials: false,
	}))

	notificationHandler := handlers.NewNotificationHandler(notificationService, logger)
	wsHandler := handlers.NewWSHandler(hub, logger)
	webhookHandler := handlers.NewStripeWebhookHandler(dispatcher, logger)

	routes.RegisterNotificationRoutes(router, notificationHandler)
	routes.RegisterRealtimeRoutes(router, wsHandler)
	routes.RegisterWebhookRoutes(router, webhookHandler)
	routes.RegisterHealthRoutes(router)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
