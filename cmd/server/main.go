package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/grpc"

	"servigest/internal/config"
	gweb "servigest/internal/grpcweb"
	"servigest/internal/handler"
	"servigest/internal/kv"
	"servigest/internal/logger"
	"servigest/internal/middleware"
	"servigest/internal/notify"
	"servigest/internal/store"
	"servigest/internal/view"
	"servigest/internal/web"
	"servigest/internal/wire"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		boot := zerolog.New(os.Stderr)
		boot.Fatal().Err(err).Msg("config")
	}
	log := logger.New("servigest", cfg.LogLevel, cfg.Development())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// session storage
	kvs, err := kv.Open(ctx, kv.Options{
		Driver:        cfg.Storage.Driver,
		Dir:           cfg.Storage.Dir,
		RedisAddr:     cfg.Storage.RedisAddr,
		RedisPassword: cfg.Storage.RedisPassword,
		DatabaseURL:   cfg.Storage.DatabaseURL,
		SQLitePath:    cfg.Storage.SQLitePath,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("storage")
	}
	defer kvs.Close()
	log.Info().Str("driver", cfg.Storage.Driver).Msg("session storage ready")

	identity := store.NewIdentity(kvs, log, store.SeedUsers())
	if err := identity.Init(ctx); err != nil {
		log.Fatal().Err(err).Msg("restore session")
	}
	booking := store.NewBooking(identity, identity, log, store.SeedServices(), store.SeedAppointments())
	h := handler.New(identity, booking, cfg.JWTSecret, cfg.TokenTTL, log)

	// grpc server
	rl := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	go rl.Sweep(ctx)
	srv := grpc.NewServer(
		grpc.ForceServerCodec(wire.Codec{}),
		grpc.ChainUnaryInterceptor(
			middleware.RateLimit(rl),
			middleware.Auth(cfg.JWTSecret, identity, log),
		),
	)
	wire.RegisterServer(srv, h)

	// start grpc on TCP
	lis, err := net.Listen("tcp", ":"+cfg.GRPCPort)
	if err != nil {
		log.Fatal().Err(err).Msg("listen")
	}
	go func() {
		log.Info().Str("port", cfg.GRPCPort).Msg("grpc listening")
		if err := srv.Serve(lis); err != nil {
			log.Error().Err(err).Msg("grpc")
		}
	}()

	// grpc-web bridge -> forwards browser requests to grpc on localhost
	bridge, err := gweb.New("localhost:"+cfg.GRPCPort, log)
	if err != nil {
		log.Fatal().Err(err).Msg("bridge")
	}
	defer bridge.Close()

	views := view.NewBuilder(booking, identity, time.Now)
	pages := web.New(identity, booking, views, notify.NewQueue(0), log).Routes()
	grpcWeb := bridge.Handler()

	httpSrv := &http.Server{
		Addr: ":" + cfg.WebPort,
		Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if gweb.IsGRPCWeb(r) {
				grpcWeb.ServeHTTP(w, r)
				return
			}
			pages.ServeHTTP(w, r)
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Info().Str("port", cfg.WebPort).Msg("http listening")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("http")
		}
	}()

	// graceful shutdown
	<-ctx.Done()
	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("http shutdown")
	}
	srv.GracefulStop()
}
