package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/AnthoniusHendriyanto/clinic-service/config"
	"github.com/AnthoniusHendriyanto/clinic-service/db"
	"github.com/AnthoniusHendriyanto/clinic-service/internal/auth/handler"
	repo "github.com/AnthoniusHendriyanto/clinic-service/internal/auth/repository/postgres"
	"github.com/AnthoniusHendriyanto/clinic-service/internal/auth/service"
	clinichandler "github.com/AnthoniusHendriyanto/clinic-service/internal/clinic/handler"
	clinicrepo "github.com/AnthoniusHendriyanto/clinic-service/internal/clinic/repository/postgres"
	clinicservice "github.com/AnthoniusHendriyanto/clinic-service/internal/clinic/service"
	"github.com/AnthoniusHendriyanto/clinic-service/internal/server"
	"github.com/AnthoniusHendriyanto/clinic-service/pkg/logger"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := db.NewPostgresPool(ctx, cfg.DBURL)
	if err != nil {
		log.Fatal("database connection failed", zap.Error(err))
	}
	defer dbPool.Close()

	if err := db.Migrate(ctx, dbPool); err != nil {
		log.Fatal("schema migration failed", zap.Error(err))
	}

	userRepo := repo.NewPostgresRepository(dbPool)
	tokenService := service.NewTokenService(cfg.AccessTokenSecret, cfg.RefreshTokenSecret, cfg.AccessExpiryMin, cfg.RefreshExpiryMin)
	userService := service.NewUserService(userRepo, tokenService, cfg, log)
	authHandler := handler.NewAuthHandler(userService, tokenService)

	patientRepo := clinicrepo.NewPatientRepository(dbPool)
	doctorRepo := clinicrepo.NewDoctorRepository(dbPool)
	availabilityRepo := clinicrepo.NewAvailabilityRepository(dbPool)
	appointmentRepo := clinicrepo.NewAppointmentRepository(dbPool)

	clinicHandler := clinichandler.NewClinicHandler(
		clinicservice.NewPatientService(userService, patientRepo, log),
		clinicservice.NewDoctorService(userService, doctorRepo, log),
		clinicservice.NewAvailabilityService(doctorRepo, availabilityRepo, log),
		clinicservice.NewBookingService(appointmentRepo, patientRepo, doctorRepo, availabilityRepo, cfg, log),
	)

	app := server.New(cfg, log, dbPool,
		func(api fiber.Router) { handler.RegisterRoutes(api, authHandler) },
		func(api fiber.Router) { clinichandler.RegisterRoutes(api, authHandler, clinicHandler) },
	)

	log.Info("starting clinic-service",
		zap.String("env", cfg.Env),
		zap.Bool("enforce_availability", cfg.EnforceAvailability),
	)

	if err := server.Run(ctx, app, ":"+cfg.Port, log); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
