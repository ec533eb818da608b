package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/AnthoniusHendriyanto/clinic-service/config"
	"github.com/AnthoniusHendriyanto/clinic-service/db"
	repo "github.com/AnthoniusHendriyanto/clinic-service/internal/auth/repository/postgres"
	"github.com/AnthoniusHendriyanto/clinic-service/internal/auth/service"
	clinicrepo "github.com/AnthoniusHendriyanto/clinic-service/internal/clinic/repository/postgres"
	clinicservice "github.com/AnthoniusHendriyanto/clinic-service/internal/clinic/service"
	"github.com/AnthoniusHendriyanto/clinic-service/internal/seed"
	"github.com/AnthoniusHendriyanto/clinic-service/pkg/logger"
	"go.uber.org/zap"
)

var (
	seedPath = flag.String("file", "config/seed.example.yaml", "Path to the YAML seed file")
	dryRun   = flag.Bool("dry-run", false, "Parse and validate only; no DB writes")
)

func main() {
	flag.Parse()
	cfg := config.Load()

	log, err := logger.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	raw, err := os.ReadFile(*seedPath)
	if err != nil {
		log.Fatal("cannot read seed file", zap.String("file", *seedPath), zap.Error(err))
	}
	file, err := seed.Parse(raw)
	if err != nil {
		log.Fatal("seed file rejected", zap.Error(err))
	}

	if *dryRun {
		fmt.Printf("Seed file OK: admin=%t doctors=%d\n", file.Admin != nil, len(file.Doctors))
		return
	}

	ctx := context.Background()
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
	availability := clinicservice.NewAvailabilityService(
		clinicrepo.NewDoctorRepository(dbPool),
		clinicrepo.NewAvailabilityRepository(dbPool),
		log,
	)

	summary, err := seed.NewSeeder(userService, userRepo, availability, log).Run(ctx, file)
	if err != nil {
		log.Fatal("seeding failed", zap.Error(err))
	}

	log.Info("seeding complete",
		zap.Int("created", summary.Created),
		zap.Int("existing", summary.Existing),
		zap.Int("slots", summary.Slots),
	)
}
