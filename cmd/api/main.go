package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/jobportal-auth/internal/application/account"
	"github.com/jobportal-auth/internal/application/otp"
	"github.com/jobportal-auth/internal/application/profile"
	"github.com/jobportal-auth/internal/application/verification"
	"github.com/jobportal-auth/internal/config"
	"github.com/jobportal-auth/internal/domain"
	"github.com/jobportal-auth/internal/infrastructure/dynamo"
	jwtinfra "github.com/jobportal-auth/internal/infrastructure/jwt"
	"github.com/jobportal-auth/internal/infrastructure/mail"
	"github.com/jobportal-auth/internal/infrastructure/memstore"
	"github.com/jobportal-auth/internal/infrastructure/redisstore"
	"github.com/jobportal-auth/internal/pkg/otpcode"
	"github.com/jobportal-auth/internal/pkg/ratelimit"
	transporthttp "github.com/jobportal-auth/internal/transport/http"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, reading from environment")
	}

	cfg := config.Load()
	slog.SetDefault(newLogger(cfg.AppEnv))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func newLogger(env string) *slog.Logger {
	if env == "production" {
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func run(ctx context.Context, cfg *config.Config) error {
	// Bootstrap DynamoDB tables (creates them if they don't exist).
	dynamoClient, err := dynamo.NewClient(ctx, cfg)
	if err != nil {
		return err
	}
	dynamo.Bootstrap(ctx, dynamoClient, cfg.DynamoTables, cfg.EphemeralBackend == "dynamo")
	users := dynamo.NewUserRepo(dynamoClient, cfg.DynamoTables.Users)

	store, err := newEphemeralStore(ctx, cfg, dynamoClient)
	if err != nil {
		return err
	}

	tokens, err := jwtinfra.NewProvider(cfg)
	if err != nil {
		return fmt.Errorf("jwt provider: %w", err)
	}

	mailer, err := mail.New(cfg)
	if err != nil {
		return fmt.Errorf("mailer: %w", err)
	}
	gen := otpcode.New(cfg.OTPLength)

	opts := otp.Options{
		TTL:             cfg.OTPTTL,
		RequestInterval: cfg.OTPRequestInterval,
		RequestBurst:    cfg.OTPRequestBurst,
		VerifyInterval:  cfg.OTPVerifyInterval,
		VerifyBurst:     cfg.OTPVerifyBurst,
	}
	codes := otp.NewService(store, gen, mailer, opts)
	go codes.Run(ctx)

	recordOpts := opts
	recordOpts.TTL = cfg.LegacyOTPTTL
	record := verification.NewRecordOTP(users, gen, mailer, recordOpts)
	go record.Run(ctx)

	exchange := verification.NewTokenExchange(codes, store, cfg.VerificationTokenTTL)

	accounts := account.NewService(account.ServiceDeps{
		UserRepo:        users,
		Exchange:        exchange,
		RecordOTP:       record,
		Tokens:          tokens,
		RequireVerified: cfg.LoginRequireVerified,
	})

	// 5 req/s per client IP with bursts of 10 across the public auth routes.
	ipLimiter := ratelimit.New(5, 10)
	go ipLimiter.Run(ctx, 5*time.Minute)

	router := transporthttp.NewRouter(cfg, &transporthttp.Deps{
		Verifier:  exchange,
		Accounts:  accounts,
		Profiles:  profile.NewService(users),
		Tokens:    tokens,
		IPLimiter: ipLimiter,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "port", cfg.AppPort, "env", cfg.AppEnv, "ephemeral", cfg.EphemeralBackend, "email", cfg.EmailBackend)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	slog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("forced shutdown: %w", err)
	}
	slog.Info("server stopped")
	return nil
}

func newEphemeralStore(ctx context.Context, cfg *config.Config, client dynamo.API) (domain.EphemeralStore, error) {
	switch cfg.EphemeralBackend {
	case "", "memory":
		s := memstore.New()
		go s.Run(ctx, time.Minute)
		return s, nil
	case "redis":
		rdb, err := redisstore.Dial(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, err
		}
		return redisstore.New(rdb), nil
	case "dynamo":
		return dynamo.NewEphemeralStore(client, cfg.DynamoTables.Ephemeral), nil
	}
	return nil, fmt.Errorf("unknown ephemeral backend %q", cfg.EphemeralBackend)
}
