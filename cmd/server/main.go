package main

import (
	"context"
	"fmt"
	"log"
	"net"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"google.golang.org/grpc"

	"liyu1981.xyz/consumable-wear-service/pkg/common"
	"liyu1981.xyz/consumable-wear-service/pkg/config"
	"liyu1981.xyz/consumable-wear-service/pkg/db"
	wearGrpc "liyu1981.xyz/consumable-wear-service/pkg/grpc"
	"liyu1981.xyz/consumable-wear-service/pkg/grpc/wearpb"
	wearHttp "liyu1981.xyz/consumable-wear-service/pkg/http"
	"liyu1981.xyz/consumable-wear-service/pkg/notify"
	"liyu1981.xyz/consumable-wear-service/pkg/tracker"
	"liyu1981.xyz/consumable-wear-service/pkg/wear"
)

func main() {
	var err error

	err = godotenv.Load()
	if err != nil {
		log.Fatal("Error loading .env file, copy .env.example to .env first if in development")
	}

	cfg, err := config.Load(common.GetEnvDefault(common.EnvKeyWearConfigDir, "configs"))
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	var dbInstance *db.DB
	switch cfg.DB.Type {
	case db.DBTypeFile:
		dbInstance = db.GetInstance(db.UseSqliteDialectorAt(cfg.DB.Path))
	case db.DBTypeMemorySqlite:
		dbInstance = db.GetInstance(db.UseMemorySqliteDialector())
	default:
		log.Fatal("Unknown WEAR_DB_TYPE: " + cfg.DB.Type)
	}

	logger := common.GetLogger()

	if !common.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	var hub *notify.Hub
	var redisNotifier *notify.RedisNotifier
	var notifiers []wear.Notifier
	if cfg.Notify.Log {
		notifiers = append(notifiers, notify.NewLogNotifier())
	}
	if cfg.Notify.WebSocket {
		hub = notify.NewHub()
		notifiers = append(notifiers, hub)
	}
	if cfg.Notify.SMTP.Enabled {
		smtpNotifier, err := notify.NewSMTPNotifier(cfg.Notify.SMTP)
		if err != nil {
			log.Fatalf("Invalid smtp notifier settings: %v", err)
		}
		notifiers = append(notifiers, smtpNotifier)
	}
	if cfg.Notify.Redis.Enabled {
		redisNotifier, err = notify.NewRedisNotifier(context.Background(), cfg.Notify.Redis)
		if err != nil {
			log.Fatalf("Failed to set up redis notifier: %v", err)
		}
		notifiers = append(notifiers, redisNotifier)
	}
	if len(notifiers) == 0 {
		logger.Warn("No alert channel configured, alerts will be reported as undelivered")
	}

	core := tracker.NewTracker(*dbInstance, notify.Combine(notifiers...))
	core.Thresholds = cfg.Wear.Thresholds
	core.DefaultLifeLimit = cfg.Wear.DefaultLifeLimit
	core.Retry = tracker.RetryPolicy{Attempts: cfg.Retry.Attempts, Delay: cfg.Retry.Delay}

	logger.Info("Wear tracker created with:",
		zap.Reflect("thresholds", cfg.Wear.Thresholds),
		zap.Float64("default_life_limit", cfg.Wear.DefaultLifeLimit),
		zap.Int("notifiers", len(notifiers)),
	)

	defaultRate := cfg.Server.DefaultRate
	defaultBurst := cfg.Server.DefaultBurst

	grpcHostPort := strings.TrimSpace(cfg.Server.GRPCHostPort)
	httpHostPort := strings.TrimSpace(cfg.Server.HTTPHostPort)

	if grpcHostPort != "" {
		logger.Info("Starting gRPC server on port " + grpcHostPort)
		go func() {
			wearGrpcServer := wearGrpc.WearServer{
				Tracker:          core,
				RateLimiterStore: tracker.NewRateLimiterStore(rate.Limit(defaultRate), defaultBurst),
			}
			interceptor := wearGrpcServer.CreateRateLimitInterceptor(wearGrpc.RateLimitedMethods)
			s := grpc.NewServer(grpc.UnaryInterceptor(interceptor))
			wearpb.RegisterWearServiceServer(s, &wearGrpcServer)
			logger.Info("gRPC server created with:",
				zap.String("default_limiter",
					fmt.Sprintf("{\"default_rate\": %v, \"default_burst\": %v}", defaultRate, defaultBurst)))

			listener, err := net.Listen("tcp", grpcHostPort)
			if err != nil {
				log.Fatalf("failed to listen: %v", err)
			}

			logger.Info("start gRPC server on " + grpcHostPort)
			if err := s.Serve(listener); err != nil {
				log.Fatalf("grpc server failed to serve: %v", err)
			}
		}()
	}

	if httpHostPort == "" {
		// fallback to default http port
		httpHostPort = ":8080"
	}

	rs := &wearHttp.RestfulServer{
		Server:           gin.Default(),
		Tracker:          core,
		RateLimiterStore: tracker.NewRateLimiterStore(rate.Limit(defaultRate), defaultBurst),
		Hub:              hub,
	}
	rs.Setup()

	logger.Info("http server created with:",
		zap.String("default_limiter",
			fmt.Sprintf("{\"default_rate\": %v, \"default_burst\": %v}", defaultRate, defaultBurst)))

	logger.Info("Starting HTTP server on: " + httpHostPort)
	if err := rs.Server.Run(httpHostPort); err != nil {
		if hub != nil {
			hub.Close()
		}
		if err := redisNotifier.Close(); err != nil {
			logger.Warn("Failed to close redis notifier", zap.Error(err))
		}
		logger.Error("http server failed to serve", zap.Error(err))
		os.Exit(1)
	}
}
