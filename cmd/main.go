package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/golang-cz/devslog"
	_ "github.com/lib/pq"
	"github.com/mingx/socialnet/internal/auth"
	"github.com/mingx/socialnet/internal/config"
	"github.com/mingx/socialnet/internal/core"
	"github.com/mingx/socialnet/internal/utils/databaseutils"
)

type application struct {
	config  *config.Config
	logger  *slog.Logger
	core    *core.Core
	auth    *auth.Auth
	session databaseutils.Session
}

func main() {
	configPath := flag.String("config", "config.yaml", "path to the configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := configLogger(cfg)
	logger.Info("starting application...")

	db, err := openDBConnection(cfg)
	if err != nil {
		logger.Error("failed to open database connection", "error", err)
		os.Exit(1)
	}

	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("failed to close database connection", "error", err)
		}
	}()

	logger.Info("database connection established successfully")

	sqlTemplate := databaseutils.NewSQLTemplate(db, cfg.Database.QueryTimeout.Std())

	app := application{
		config:  cfg,
		logger:  logger,
		core:    core.NewCore(db, logger, sqlTemplate),
		auth:    auth.New(cfg.JWT.Secret, cfg.JWT.TokenTTL.Std()),
		session: databaseutils.NewSession(db),
	}

	if err := app.serve(); err != nil {
		logger.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
}

func configLogger(cfg *config.Config) *slog.Logger {
	level, _ := cfg.SlogLevel()

	handler := devslog.NewHandler(
		os.Stdout, &devslog.Options{
			HandlerOptions: &slog.HandlerOptions{
				AddSource: true,
				Level:     level,
			},
			NewLineAfterLog: false,
		})

	return slog.New(handler)
}

func openDBConnection(cfg *config.Config) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxIdleTime(cfg.Database.ConnMaxIdleTime.Std())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}

	return db, nil
}
