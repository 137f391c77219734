// Package repository содержит репозитории для работы с базой данных.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"playlistbox/internal/domain/playlist"
	"playlistbox/internal/model"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// PlaylistRepository реализует интерфейс для работы с сохраненными плейлистами
type PlaylistRepository struct {
	db     *bun.DB
	logger *zap.Logger
}

var _ model.PlaylistRepository = (*PlaylistRepository)(nil)

// NewPlaylistRepository создает новый репозиторий плейлистов
func NewPlaylistRepository(db *bun.DB, logger *zap.Logger) *PlaylistRepository {
	return &PlaylistRepository{
		db:     db,
		logger: logger,
	}
}

// Save сохраняет плейлист, заменяя элементы существующего с тем же именем
func (r *PlaylistRepository) Save(ctx context.Context, record *model.PlaylistRecord) error {
	return r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		now := time.Now().UTC()
		existing := new(model.PlaylistRecord)

		err := tx.NewSelect().
			Model(existing).
			Where("name = ?", record.Name).
			Scan(ctx)

		switch {
		case errors.Is(err, sql.ErrNoRows):
			record.ID = uuid.NewString()
			record.CreatedAt = now
			record.UpdatedAt = now
			if _, err := tx.NewInsert().Model(record).Exec(ctx); err != nil {
				return fmt.Errorf("failed to create playlist: %w", err)
			}
		case err != nil:
			return fmt.Errorf("failed to get playlist: %w", err)
		default:
			record.ID = existing.ID
			record.CreatedAt = existing.CreatedAt
			record.UpdatedAt = now
			_, err := tx.NewUpdate().
				Model(record).
				Column("updated_at").
				WherePK().
				Exec(ctx)
			if err != nil {
				return fmt.Errorf("failed to update playlist: %w", err)
			}

			_, err = tx.NewDelete().
				Model((*model.PlaylistItemRecord)(nil)).
				Where("playlist_id = ?", record.ID).
				Exec(ctx)
			if err != nil {
				return fmt.Errorf("failed to delete playlist items: %w", err)
			}
		}

		for i, item := range record.Items {
			item.ID = 0
			item.PlaylistID = record.ID
			item.Position = i
		}

		if len(record.Items) > 0 {
			if _, err := tx.NewInsert().Model(&record.Items).Exec(ctx); err != nil {
				return fmt.Errorf("failed to create playlist items: %w", err)
			}
		}

		r.logger.Debug("Playlist saved",
			zap.String("id", record.ID),
			zap.String("name", record.Name),
			zap.Int("items", len(record.Items)))
		return nil
	})
}

// GetByName возвращает плейлист вместе с элементами в сохраненном порядке
func (r *PlaylistRepository) GetByName(ctx context.Context, name string) (*model.PlaylistRecord, error) {
	record := new(model.PlaylistRecord)

	err := r.db.NewSelect().
		Model(record).
		Relation("Items", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Order("position ASC")
		}).
		Where("p.name = ?", name).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &playlist.NotFoundError{Resource: fmt.Sprintf("stored playlist %q", name)}
		}
		return nil, fmt.Errorf("failed to get playlist: %w", err)
	}

	return record, nil
}

// Delete удаляет плейлист и его элементы. Отсутствие плейлиста ошибкой не считается.
func (r *PlaylistRepository) Delete(ctx context.Context, name string) error {
	return r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		record := new(model.PlaylistRecord)
		err := tx.NewSelect().
			Model(record).
			Where("name = ?", name).
			Scan(ctx)
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to get playlist: %w", err)
		}

		_, err = tx.NewDelete().
			Model((*model.PlaylistItemRecord)(nil)).
			Where("playlist_id = ?", record.ID).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to delete playlist items: %w", err)
		}

		_, err = tx.NewDelete().
			Model(record).
			WherePK().
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to delete playlist: %w", err)
		}

		r.logger.Debug("Playlist deleted from storage", zap.String("name", name))
		return nil
	})
}

// ListNames возвращает имена сохраненных плейлистов в порядке создания
func (r *PlaylistRepository) ListNames(ctx context.Context) ([]string, error) {
	var names []string

	err := r.db.NewSelect().
		Model((*model.PlaylistRecord)(nil)).
		Column("name").
		Order("created_at ASC", "name ASC").
		Scan(ctx, &names)

	if err != nil {
		return nil, fmt.Errorf("failed to list playlists: %w", err)
	}

	return names, nil
}
