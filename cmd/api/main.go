package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	server "hotel_registry/internal/adapters/http_server"
	"hotel_registry/internal/adapters/observability"
	"hotel_registry/internal/adapters/providers"
	redisad "hotel_registry/internal/adapters/redis"
	"hotel_registry/internal/app"
	"hotel_registry/internal/domain"
	"hotel_registry/internal/shared"
	"hotel_registry/internal/storage/memory"
	mysqlrepo "hotel_registry/internal/storage/mysql"
)

// store is what main needs from either backend.
type store interface {
	domain.Transactor
	Ping(ctx context.Context) error
}

type repos struct {
	store
	guests    domain.GuestRepository
	employees domain.EmployeeRepository
	rooms     domain.RoomRepository
	bookings  domain.BookingRepository
	resources domain.ResourceRepository
}

func openStore(cfg shared.Config) (repos, func()) {
	if cfg.StoreBackend == "memory" {
		log.Warn().Msg("using in-memory store, data is lost on exit")
		st := memory.New()
		return repos{st, st.Guests(), st.Employees(), st.Rooms(), st.Bookings(), st.Resources()}, func() {}
	}
	st, err := mysqlrepo.Open(cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("mysql open failed")
	}
	log.Info().Msg("database connection ok")
	return repos{st, st.Guests(), st.Employees(), st.Rooms(), st.Bookings(), st.Resources()}, func() { _ = st.Close() }
}

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)

	reg := observability.InitRegistry()
	observability.Serve(cfg.MetricsAddr, reg)

	rs, closeStore := openStore(cfg)
	defer closeStore()

	// deps
	guests := app.NewGuestDirectory(rs, rs.guests)
	employees := app.NewEmployeeDirectory(rs, rs.employees)
	rooms := app.NewRoomInventory(rs, rs.rooms)
	h := &server.Handlers{
		Guests:    guests,
		Employees: employees,
		Rooms:     rooms,
		Bookings:  app.NewBookingLedger(rs, rs.bookings, guests, employees, rooms),
	}

	var cache *redisad.Cache
	if cfg.RedisAddr != "" {
		cache = redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		defer cache.Close()
	}
	if cfg.ProvidersURL != "" {
		client, err := providers.New(cfg.ProvidersURL, cfg.ProvidersRPS)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize provider client")
		}
		var c domain.Cache
		if cache != nil {
			c = cache
		}
		h.Resources = app.NewResourceCatalog(rs, rs.resources, client, c, cfg.CacheTTL)
	}
	h.Ready = func(ctx context.Context) error {
		if err := rs.Ping(ctx); err != nil {
			return err
		}
		if cache != nil {
			return cache.Ping(ctx)
		}
		return nil
	}

	// http
	srv := server.NewWithTimeout(cfg.HTTPTimeout)
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(h)

	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux(), ReadHeaderTimeout: 5 * time.Second}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = httpSrv.Shutdown(shutdownCtx)
	}()

	log.Info().Str("addr", cfg.HTTPAddr).Str("store", cfg.StoreBackend).Msg("API listening")
	if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("http server failed")
	}
	log.Info().Msg("API stopped")
}
