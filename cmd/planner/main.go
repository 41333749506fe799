package main

import (
	"fmt"
	"log"
	"time"

	"floorplan-engine/internal/common/config"
	"floorplan-engine/internal/common/logger"
	"floorplan-engine/internal/common/middleware"
	"floorplan-engine/internal/planner/handlers"
	"floorplan-engine/internal/planner/importer"
	"floorplan-engine/internal/planner/rooms"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"go.uber.org/zap"
)

// ============================================================
// Planner Service
// ============================================================

func main() {
	startedAt := time.Now()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	zl, err := logger.New(cfg.LogLevel, cfg.LogFormat, "planner")
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer zl.Sync()

	analyzer := rooms.NewAnalyzer(
		rooms.WithTolerances(roomTolerances(cfg.Tolerances)),
		rooms.WithScale(cfg.PixelsPerMM),
		rooms.WithDefaultWallHeight(cfg.DefaultWallHeightMM),
		rooms.WithLogger(zl.Named("rooms")),
	)
	planImporter := importer.New(cfg.PixelsPerMM, cfg.DefaultWallHeightMM, cfg.Tolerances.SnapThreshold, zl.Named("importer"))

	h := handlers.New(analyzer, planImporter, handlers.Settings{
		PixelsPerMM:         cfg.PixelsPerMM,
		DefaultWallHeightMM: cfg.DefaultWallHeightMM,
		ConnectToleranceMM:  cfg.Tolerances.ConnectMM,
		LogicalLineMM:       cfg.Tolerances.LogicalLineMM,
		SnapThreshold:       cfg.Tolerances.SnapThreshold,
	}, zl.Named("http"))

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		BodyLimit:    cfg.BodyLimitMB * 1024 * 1024,
		AppName:      "Planner Service",
	})

	// ============================================================
	// Global Middleware
	// ============================================================

	app.Use(recover.New())
	app.Use(middleware.Logger(zl.Named("access")))
	app.Use(middleware.CORS(cfg.CORSOrigins...))

	// ============================================================
	// Routes
	// ============================================================

	h.RegisterHealth(app, startedAt)
	h.Register(app)

	// ============================================================
	// Server Start
	// ============================================================

	addr := fmt.Sprintf(":%s", cfg.Port)
	zl.Info("starting planner service",
		zap.String("addr", addr),
		zap.String("env", cfg.Environment),
		zap.Float64("pixels_per_mm", cfg.PixelsPerMM),
	)

	if err := app.Listen(addr); err != nil {
		zl.Fatal("failed to start server", zap.Error(err))
	}
}

func roomTolerances(tol config.Tolerances) rooms.Tolerances {
	return rooms.Tolerances{
		WallMatchMM:     tol.WallMatchMM,
		OpeningMatchMM:  tol.OpeningMatchMM,
		AngleRad:        tol.AngleRad,
		OpeningAngleRad: tol.OpeningAngleRad,
		MinEdgeLengthMM: tol.MinEdgeLengthMM,
	}
}
