package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"thrift-store-be/internal/auth"
	"thrift-store-be/internal/cart"
	"thrift-store-be/internal/config"
	"thrift-store-be/internal/db"
	"thrift-store-be/internal/handler"
	"thrift-store-be/internal/item"
	"thrift-store-be/internal/lock"
	"thrift-store-be/internal/logger"
	"thrift-store-be/internal/metrics"
	"thrift-store-be/internal/middleware"
	"thrift-store-be/internal/order"
	"thrift-store-be/internal/product"
	"thrift-store-be/internal/upload"
	"thrift-store-be/internal/user"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

var (
	initDBFunc      = db.InitDB
	startServerFunc = serve
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := initDBFunc(cfg)
	defer database.Close()

	srv, err := newServer(cfg, database)
	if err != nil {
		return err
	}
	defer srv.Close()

	addr := ":" + cfg.AppPort
	logger.L().Info("server starting", zap.String("addr", addr), zap.String("env", cfg.AppEnv))
	return startServerFunc(addr, srv.handler)
}

type server struct {
	handler http.Handler
	limiter *middleware.RateLimiter
	redis   *redis.Client
}

func (s *server) Close() {
	s.limiter.Stop()
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			logger.L().Warn("failed to close redis client", zap.Error(err))
		}
	}
}

func newServer(cfg *config.Config, database *sql.DB) (*server, error) {
	tokens, err := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL)
	if err != nil {
		return nil, err
	}

	store, err := upload.NewStore(cfg.UploadDir)
	if err != nil {
		return nil, err
	}

	locker, redisClient := newLocker(cfg)
	orderMetrics := &metrics.Orders{}

	h := handler.New(handler.Services{
		Users:    user.NewService(user.NewRepository(database), tokens),
		Items:    item.NewService(item.NewRepository(database), store),
		Products: product.NewService(product.NewRepository(database), store),
		Carts:    cart.NewService(cart.NewRepository(database)),
		Orders:   order.NewService(order.NewRepository(database), locker, orderMetrics),
		Metrics:  orderMetrics,
	})

	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, cfg.InternalSecretKey)

	return &server{
		handler: setupRouter(h, cfg, tokens, limiter, store),
		limiter: limiter,
		redis:   redisClient,
	}, nil
}

func setupRouter(h *handler.Handler, cfg *config.Config, tokens *auth.TokenManager, limiter *middleware.RateLimiter, store *upload.Store) http.Handler {
	return handler.NewRouter(h, handler.RouterConfig{
		Auth:        middleware.NewAuthenticator(tokens),
		Limiter:     limiter,
		CORSOrigins: cfg.CORSOrigins,
		Uploads:     store.Handler(),
	})
}

// newLocker returns a Redis-backed checkout lock when REDIS_ADDR is set and
// reachable, and the in-process locker otherwise.
func newLocker(cfg *config.Config) (lock.Locker, *redis.Client) {
	if cfg.RedisAddr == "" {
		return lock.NewMemoryLocker(), nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.L().Warn("redis unreachable, using in-process checkout lock",
			zap.String("addr", cfg.RedisAddr),
			zap.Error(err),
		)
		_ = client.Close()
		return lock.NewMemoryLocker(), nil
	}

	logger.L().Info("redis checkout lock enabled", zap.String("addr", cfg.RedisAddr))
	return lock.NewRedisLocker(client, "thrift-store:"), client
}

// serve runs the HTTP server until SIGINT or SIGTERM, then drains in-flight
// requests.
func serve(addr string, h http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.L().Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
