package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/time/rate"
	"google.golang.org/grpc/reflection"

	grpcctx "github.com/dtroode/jobboard/internal/api/grpc/context"
	grpcrouter "github.com/dtroode/jobboard/internal/api/grpc/router"
	grpcServer "github.com/dtroode/jobboard/internal/api/grpc/server"
	"github.com/dtroode/jobboard/internal/api/http/middleware"
	httprouter "github.com/dtroode/jobboard/internal/api/http/router"
	httpServer "github.com/dtroode/jobboard/internal/api/http/server"
	"github.com/dtroode/jobboard/internal/config"
	"github.com/dtroode/jobboard/internal/logger"
	"github.com/dtroode/jobboard/internal/metrics"
	"github.com/dtroode/jobboard/internal/model"
	"github.com/dtroode/jobboard/internal/repository/postgres"
	"github.com/dtroode/jobboard/internal/server"
	"github.com/dtroode/jobboard/internal/service"
	"github.com/dtroode/jobboard/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewServerConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer db.Close()

	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	userRepo := postgres.NewUserRepository(db)
	tokenManager := token.NewJWT(cfg.JWT.Secret, cfg.JWT.TTL)
	authService := service.NewAuth(userRepo, tokenManager, cfg.BcryptCost, collector, logger)

	if cfg.BootstrapAdmin.Email != "" {
		if err := authService.BootstrapAdmin(ctx, cfg.BootstrapAdmin.Email, cfg.BootstrapAdmin.Password); err != nil {
			logger.Fatal("failed to bootstrap admin", "error", err)
		}
	}

	limiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
		Rate:            rate.Limit(cfg.HTTP.LoginRatePerMinute / 60),
		Burst:           cfg.HTTP.LoginBurst,
		CleanupInterval: 5 * time.Minute,
	}, collector, logger)
	defer limiter.Stop()

	httpSrv := httpServer.NewHTTPServer(httprouter.New(httprouter.Deps{
		AuthService:   authService,
		Authenticator: authService,
		DB:            db,
		Limiter:       limiter,
		Recorder:      collector,
		Metrics:       metrics.Handler(registry),
		Version:       buildVersion,
		Logger:        logger,
	}), fmt.Sprintf(":%s", cfg.HTTP.Port))

	grpcSrv := registerGRPCServer(logger, authService, collector, fmt.Sprintf(":%s", cfg.GRPC.Port))

	var sl model.SecurityLayer
	if cfg.GRPC.EnableHTTPS {
		sl = server.NewSecurityLayer(cfg.GRPC.CertFileName, cfg.GRPC.PrivateKeyFileName)
	} else {
		sl = server.NewPlainListener()
	}

	servers := []model.Server{httpSrv, grpcSrv}

	var wg sync.WaitGroup
	for _, s := range servers {
		wg.Add(1)
		go func(s model.Server) {
			defer wg.Done()
			logger.Info("Starting server on", "address", s.Address())
			if err := s.Start(sl); err != nil {
				logger.Error("failed to start server", "error", err, "address", s.Address())
				stop()
			}
		}(s)
	}

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	for _, s := range servers {
		if err := s.Stop(shutdownCtx); err != nil {
			logger.Error("error during server shutdown", "error", err, "address", s.Address())
		}
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}

func registerGRPCServer(
	logger *logger.Logger,
	authService *service.Auth,
	collector *metrics.Collector,
	addr string,
) *grpcServer.GRPCServer {
	r := grpcrouter.New(authService, authService, grpcctx.NewManager(), collector, logger)
	s := r.Register()

	reflection.Register(s)

	return grpcServer.NewGRPCServer(s, addr)
}
