// Package storage содержит работу с базой данных.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"playlistbox/internal/model"
	"playlistbox/internal/storage/repository"

	_ "github.com/mattn/go-sqlite3" // SQLite3 driver
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/extra/bundebug"
	"go.uber.org/zap"
)

// Driver определяет тип базы данных
type Driver string

const (
	// DriverPostgres - PostgreSQL через pgdriver
	DriverPostgres Driver = "postgres"
	// DriverSQLite - SQLite через go-sqlite3
	DriverSQLite Driver = "sqlite"
)

// Options задает параметры подключения
type Options struct {
	DSN        string
	Debug      bool
	MaxRetries int
	RetryDelay time.Duration
}

// Database представляет подключение к базе данных
type Database struct {
	db     *bun.DB
	driver Driver
	logger *zap.Logger
}

// DetectDriver определяет драйвер по DSN
func DetectDriver(dsn string) (Driver, string, error) {
	switch {
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return DriverPostgres, dsn, nil
	case strings.HasPrefix(dsn, "sqlite://"):
		return DriverSQLite, strings.TrimPrefix(dsn, "sqlite://"), nil
	case strings.HasPrefix(dsn, "file:"):
		return DriverSQLite, dsn, nil
	default:
		return "", "", fmt.Errorf("unsupported database DSN scheme: %q", dsn)
	}
}

// Open создает подключение к базе данных с retry логикой
func Open(opts Options, logger *zap.Logger) (*Database, error) {
	driver, dsn, err := DetectDriver(opts.DSN)
	if err != nil {
		return nil, err
	}

	maxRetries := opts.MaxRetries
	if maxRetries <= 0 {
		maxRetries = 1
	}

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		logger.Info("Attempting to connect to database",
			zap.String("driver", string(driver)),
			zap.Int("attempt", attempt),
			zap.Int("max_retries", maxRetries))

		db, err := newBunDB(driver, dsn)
		if err != nil {
			return nil, err
		}

		// Добавляем отладку в режиме разработки
		if opts.Debug || logger.Core().Enabled(zap.DebugLevel) {
			db.AddQueryHook(bundebug.NewQueryHook(
				bundebug.WithVerbose(true),
				bundebug.FromEnv("BUNDEBUG"),
			))
		}

		// Проверяем подключение с таймаутом
		pingCtx, pingCancel := context.WithTimeout(context.Background(), 10*time.Second)
		lastErr = db.PingContext(pingCtx)
		pingCancel()

		if lastErr == nil {
			logger.Info("Connected to database with Bun ORM",
				zap.String("driver", string(driver)),
				zap.Int("attempt", attempt))
			return &Database{db: db, driver: driver, logger: logger}, nil
		}

		logger.Warn("Failed to connect to database",
			zap.Int("attempt", attempt),
			zap.Error(lastErr))

		// Закрываем неудачное подключение
		if err := db.Close(); err != nil {
			logger.Warn("Failed to close database connection", zap.Error(err))
		}

		if attempt < maxRetries {
			logger.Info("Retrying connection", zap.Duration("delay", opts.RetryDelay))
			time.Sleep(opts.RetryDelay)
		}
	}

	return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", maxRetries, lastErr)
}

func newBunDB(driver Driver, dsn string) (*bun.DB, error) {
	switch driver {
	case DriverPostgres:
		sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))

		// Настраиваем пул соединений
		sqldb.SetMaxOpenConns(25)
		sqldb.SetMaxIdleConns(10)
		sqldb.SetConnMaxLifetime(5 * time.Minute)
		sqldb.SetConnMaxIdleTime(1 * time.Minute)

		return bun.NewDB(sqldb, pgdialect.New()), nil
	case DriverSQLite:
		sqldb, err := sql.Open("sqlite3", dsn)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite database: %w", err)
		}
		// SQLite не поддерживает конкурентную запись
		sqldb.SetMaxOpenConns(1)

		return bun.NewDB(sqldb, sqlitedialect.New()), nil
	default:
		return nil, fmt.Errorf("unsupported driver: %s", driver)
	}
}

// CreateSchema создает таблицы, если они еще не существуют
func (d *Database) CreateSchema(ctx context.Context) error {
	models := []any{
		(*model.PlaylistRecord)(nil),
		(*model.PlaylistItemRecord)(nil),
	}

	for _, m := range models {
		if _, err := d.db.NewCreateTable().Model(m).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}

	_, err := d.db.NewCreateIndex().
		Model((*model.PlaylistItemRecord)(nil)).
		Index("playlist_items_playlist_id_position_idx").
		Column("playlist_id", "position").
		IfNotExists().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to create index: %w", err)
	}

	d.logger.Debug("Database schema ensured", zap.String("driver", string(d.driver)))
	return nil
}

// Close закрывает соединение с базой данных
func (d *Database) Close() error {
	return d.db.Close()
}

// GetDB возвращает подключение к базе данных
func (d *Database) GetDB() *bun.DB {
	return d.db
}

// Driver возвращает тип базы данных
func (d *Database) Driver() Driver {
	return d.driver
}

// GetPlaylistRepository возвращает репозиторий плейлистов
func (d *Database) GetPlaylistRepository() model.PlaylistRepository {
	return repository.NewPlaylistRepository(d.db, d.logger)
}
