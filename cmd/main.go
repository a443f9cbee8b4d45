package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"strings"

	"github.com/golang-cz/devslog"
	"github.com/mdobak/go-xerrors"
	"github.com/siahsang/news/internal/config"
	"github.com/siahsang/news/internal/core"
	"github.com/siahsang/news/internal/database"
	"github.com/siahsang/news/internal/utils/databaseutils"
)

type application struct {
	config  *config.Config
	core    *core.Core
	logger  *slog.Logger
	metrics *metrics
}

func main() {
	configPath := flag.String("config", "", "path to a config file (default ./config.yaml when present)")
	migrate := flag.Bool("migrate", false, "apply database migrations and exit")
	seed := flag.Bool("seed", false, "replace database contents with the development seed and exit")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Errors loading configuration", "error", err)
		os.Exit(1)
	}

	logger := configLogger(cfg)
	slog.SetDefault(logger)
	logger.Info("Starting application...", "env", cfg.Server.Env)

	if err := run(cfg, logger, *migrate, *seed); err != nil {
		logger.Error("Application stopped with error", "stack", xerrors.Sprint(err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger, migrate, seed bool) error {
	ctx := context.Background()

	db, err := database.Open(ctx, database.Options{
		URL:          cfg.Database.URL,
		MaxOpenConns: cfg.Database.MaxOpenConns,
		MaxIdleConns: cfg.Database.MaxIdleConns,
		MaxIdleTime:  cfg.Database.MaxIdleTime,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Errors closing database connection", "error", err)
		}
	}()
	logger.Info("Database connection established successfully")

	sqlTemplate := databaseutils.NewSQLTemplate(db, cfg.Database.QueryTimeout)

	switch {
	case migrate:
		return database.Migrate(ctx, db, logger)
	case seed:
		data, err := database.DevelopmentSeed()
		if err != nil {
			return err
		}
		return database.Seed(ctx, databaseutils.NewSession(db), sqlTemplate, data, logger)
	}

	app := &application{
		config:  cfg,
		core:    core.NewCore(logger, sqlTemplate),
		logger:  logger,
		metrics: newMetrics(db),
	}

	return app.serve()
}

func configLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(cfg.Log.Level))); err != nil {
		level = slog.LevelInfo
	}

	handlerOptions := &slog.HandlerOptions{
		AddSource: true,
		Level:     level,
	}

	if cfg.Server.Env == "development" {
		return slog.New(devslog.NewHandler(os.Stdout, &devslog.Options{
			HandlerOptions:  handlerOptions,
			NewLineAfterLog: false,
		}))
	}

	return slog.New(slog.NewJSONHandler(os.Stdout, handlerOptions))
}
