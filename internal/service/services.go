package service

import (
	"context"
	"fmt"

	"playlistbox/internal/config"
	"playlistbox/internal/domain/playlist"
	"playlistbox/internal/infrastructure/metrics"
	"playlistbox/internal/model"
	"playlistbox/internal/storage"

	"go.uber.org/zap"
)

// Services содержит все сервисы приложения
type Services struct {
	Playlist *PlaylistService
	Metrics  *metrics.Metrics
	Database *storage.Database

	metricsTextfile string
	logger          *zap.Logger
}

// NewServices создает все сервисы. База данных подключается, только если задан DB_DSN.
func NewServices(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Services, error) {
	services := &Services{
		Metrics:         metrics.NewMetrics(logger),
		metricsTextfile: cfg.MetricsTextfile,
		logger:          logger,
	}

	var repo model.PlaylistRepository
	if cfg.DatabaseURL != "" {
		db, err := storage.Open(storage.Options{
			DSN:        cfg.DatabaseURL,
			Debug:      cfg.DBDebug,
			MaxRetries: cfg.DBRetry.MaxRetries,
			RetryDelay: cfg.DBRetry.Delay,
		}, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}

		if err := db.CreateSchema(ctx); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to create schema: %w", err)
		}

		services.Database = db
		repo = db.GetPlaylistRepository()
	} else {
		logger.Info("DB_DSN not set, playlists are kept in memory only")
	}

	policy := playlist.ItemPolicy{Strict: cfg.StrictValidation}
	services.Playlist = NewPlaylistService(
		playlist.NewRegistry(logger),
		repo,
		services.Metrics,
		policy,
		cfg.ExportDir,
		logger,
	)

	return services, nil
}

// Close сохраняет метрики и закрывает соединение с базой данных
func (s *Services) Close() error {
	if s.metricsTextfile != "" {
		if err := s.Metrics.WriteTextfile(s.metricsTextfile); err != nil {
			s.logger.Error("Failed to write metrics", zap.Error(err))
		}
	}

	if s.Database != nil {
		if err := s.Database.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
	}
	return nil
}
