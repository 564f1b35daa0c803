package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var migrations embed.FS

type Config struct {
	DSN          string
	MaxOpenConns int
	MaxRetries   int
	RetryDelay   time.Duration
}

// NewPostgresDB keeps retrying until the database accepts connections, so
// the API can start alongside a database container that is still booting.
func NewPostgresDB(ctx context.Context, cfg Config, log *zap.Logger) (*sql.DB, error) {
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 10
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = 2 * time.Second
	}

	var db *sql.DB
	var err error

	for i := 1; i <= cfg.MaxRetries; i++ {
		log.Info("connecting to database", zap.Int("attempt", i), zap.Int("max_attempts", cfg.MaxRetries))

		db, err = sql.Open("postgres", cfg.DSN)
		if err == nil {
			err = db.PingContext(ctx)
		}

		if err == nil {
			configurePool(db, cfg.MaxOpenConns)
			log.Info("database connected")
			return db, nil
		}

		if db != nil {
			_ = db.Close()
		}

		log.Warn("database not ready yet", zap.Duration("retry_in", cfg.RetryDelay), zap.Error(err))

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(cfg.RetryDelay):
		}
	}

	return nil, fmt.Errorf("connect database after %d attempts: %w", cfg.MaxRetries, err)
}

func configurePool(db *sql.DB, maxOpen int) {
	if maxOpen <= 0 {
		maxOpen = 25
	}
	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(maxOpen)
	db.SetConnMaxLifetime(5 * time.Minute)
}

// Migrate applies the embedded schema migrations.
func Migrate(db *sql.DB, log *zap.Logger) error {
	goose.SetBaseFS(migrations)
	goose.SetLogger(gooseLogger{log.Sugar()})

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}

	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}

	log.Info("migrations applied successfully")
	return nil
}

type gooseLogger struct {
	s *zap.SugaredLogger
}

func (l gooseLogger) Fatalf(format string, v ...interface{}) { l.s.Fatalf(format, v...) }
func (l gooseLogger) Printf(format string, v ...interface{}) { l.s.Infof(format, v...) }
