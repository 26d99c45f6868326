package main

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"hotel_registry/internal/adapters/observability"
	"hotel_registry/internal/app"
	"hotel_registry/internal/shared"
	mysqlrepo "hotel_registry/internal/storage/mysql"
)

func main() {
	ctx := context.Background()
	cfg := shared.Load()

	// 1) initialize global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)

	log.Info().
		Str("file", cfg.SeedFile).
		Int("workers", cfg.SeedWorkers).
		Msg("seeder starting")

	fh, err := os.Open(cfg.SeedFile)
	if err != nil {
		log.Fatal().Err(err).Msg("open seed file failed")
	}
	fixture, err := app.ParseFixture(fh)
	_ = fh.Close()
	if err != nil {
		log.Fatal().Err(err).Msg("parse seed file failed")
	}

	store, err := mysqlrepo.Open(cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("mysql open failed")
	}
	log.Info().Msg("db ping ok")

	guests := app.NewGuestDirectory(store, store.Guests())
	employees := app.NewEmployeeDirectory(store, store.Employees())
	rooms := app.NewRoomInventory(store, store.Rooms())
	s := &app.Seeder{
		Guests:    guests,
		Employees: employees,
		Rooms:     rooms,
		Bookings:  app.NewBookingLedger(store, store.Bookings(), guests, employees, rooms),
	}

	start := time.Now()
	rep, err := s.Run(ctx, fixture, cfg.SeedWorkers)
	_ = store.Close()
	if err != nil {
		log.Fatal().Err(err).Msg("seeding aborted")
	}
	log.Info().
		Int("rooms", rep.Rooms).
		Int("employees", rep.Employees).
		Int("guests", rep.Guests).
		Int("guarantors", rep.Guarantors).
		Int("bookings", rep.Bookings).
		Int("failed", rep.Failed).
		Dur("took", time.Since(start)).
		Msg("seeding completed")
	if rep.Failed > 0 {
		os.Exit(1)
	}
}
