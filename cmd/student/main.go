package main

import (
	"context"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/timeout"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/campusvoice/student-portal/internal/complaints"
	"github.com/campusvoice/student-portal/internal/feedback"
	"github.com/campusvoice/student-portal/internal/gateway"
	"github.com/campusvoice/student-portal/internal/maintenance"
	"github.com/campusvoice/student-portal/internal/notifications"
	"github.com/campusvoice/student-portal/internal/poller"
	"github.com/campusvoice/student-portal/internal/session"
	"github.com/campusvoice/student-portal/pkg/common"
	"github.com/campusvoice/student-portal/pkg/config"
	"github.com/campusvoice/student-portal/pkg/httpclient"
	"github.com/campusvoice/student-portal/pkg/logger"
	"github.com/campusvoice/student-portal/pkg/middleware"
	"github.com/campusvoice/student-portal/pkg/redis"
)

const version = "1.0.0"

func main() {
	// Load configuration
	cfg, err := config.Load("student-portal")
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize logger
	if err := logger.Init(cfg.Server.Environment); err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer logger.Sync()

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to Redis
	redisClient, err := redis.NewRedisClient(&cfg.Redis)
	if err != nil {
		logger.Fatal("failed to connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()
	logger.Info("connected to Redis", zap.String("addr", cfg.Redis.RedisAddr()))

	// Backend gateway
	backendHTTP := httpclient.NewClient(cfg.Backend.BaseURL, time.Duration(cfg.Backend.Timeout)*time.Second)
	backend := gateway.NewClient(backendHTTP)

	// Stores and services
	sessions := session.NewStore(redisClient)

	complaintService := complaints.NewService(backend)
	complaintService.SetAttachmentPolicy(complaints.AttachmentPolicy{
		MaxFiles:    cfg.Uploads.MaxFiles,
		MaxFileSize: cfg.Uploads.MaxFileSize,
	})

	notificationService := notifications.NewService()
	complaintService.OnRefresh(notificationService.Observe)

	feedbackService := feedback.NewService(backend)
	maintenanceService := maintenance.NewService(backend, redisClient)

	// Handlers
	sessionHandler := session.NewHandler(sessions)
	complaintHandler := complaints.NewHandler(complaintService, sessions)
	notificationHandler := notifications.NewHandler(notificationService, sessions)
	feedbackHandler := feedback.NewHandler(feedbackService, sessions)
	maintenanceHandler := maintenance.NewHandler(maintenanceService, sessions)

	// Router
	router := gin.New()
	router.Use(middleware.CorrelationID())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.Metrics(cfg.Server.ServiceName))
	router.Use(middleware.Recovery())
	router.Use(timeout.New(
		timeout.WithTimeout(time.Duration(cfg.Server.WriteTimeout)*time.Second),
		timeout.WithHandler(func(c *gin.Context) { c.Next() }),
		timeout.WithResponse(func(c *gin.Context) {
			common.ErrorResponse(c, http.StatusGatewayTimeout, "request timed out")
		}),
	))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = strings.Split(cfg.Server.CORSOrigins, ",")
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	router.Use(cors.New(corsConfig))

	// Health check and metrics (no auth required)
	router.GET("/healthz", common.HealthCheckWithDeps(cfg.Server.ServiceName, version, map[string]func() error{
		"redis": func() error {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return redisClient.Ping(ctx).Err()
		},
	}))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API routes
	jwtSecret := cfg.JWT.Secret
	sessionHandler.RegisterRoutes(router, jwtSecret)
	complaintHandler.RegisterRoutes(router, jwtSecret)
	notificationHandler.RegisterRoutes(router, jwtSecret)
	feedbackHandler.RegisterRoutes(router, jwtSecret)
	maintenanceHandler.RegisterRoutes(router, jwtSecret)

	// Background polls: complaint collections for active sessions, and the
	// maintenance notice. Both stop with the process context.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	complaintPoller := poller.NewRunner("complaints", cfg.Polling.ComplaintRefresh, func(ctx context.Context) error {
		complaintService.RefreshAll(ctx, sessions.ActiveSessions())
		return nil
	})
	maintenancePoller := poller.NewRunner("maintenance", cfg.Polling.MaintenanceNotice, func(ctx context.Context) error {
		return maintenanceService.Refresh(ctx)
	})
	complaintPoller.Start(ctx)
	maintenancePoller.Start(ctx)

	// Start server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Info("student portal starting", zap.String("port", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	complaintPoller.Stop()
	maintenancePoller.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}
