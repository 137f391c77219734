// Package model содержит модели данных.
//
// Группа: ENTITIES - Основные сущности
// Содержит: PlaylistRecord, PlaylistItemRecord, PlaylistRepository
package model

import (
	"context"

	"github.com/uptrace/bun"
)

// PlaylistRecord представляет сохраненный плейлист
type PlaylistRecord struct {
	bun.BaseModel `bun:"table:playlists,alias:p"`

	ID   string `bun:"id,pk,type:varchar(36)" json:"id"`
	Name string `bun:"name,notnull,unique" json:"name"`
	TimestampedModel

	Items []*PlaylistItemRecord `bun:"rel:has-many,join:id=playlist_id" json:"items,omitempty"`
}

// PlaylistItemRecord представляет элемент сохраненного плейлиста
type PlaylistItemRecord struct {
	bun.BaseModel `bun:"table:playlist_items,alias:pi"`

	ID           int64   `bun:"id,pk,autoincrement" json:"id"`
	PlaylistID   string  `bun:"playlist_id,notnull,type:varchar(36)" json:"playlist_id"`
	Position     int     `bun:"position,notnull" json:"position"`
	Type         string  `bun:"type,notnull" json:"type"`
	Title        string  `bun:"title,notnull" json:"title"`
	ArtistOrHost string  `bun:"artist_or_host,notnull" json:"artist_or_host"`
	Duration     float64 `bun:"duration,notnull" json:"duration"`
	GenreOrTopic string  `bun:"genre_or_topic,notnull" json:"genre_or_topic"`
}

// PlaylistRepository определяет интерфейс для работы с сохраненными плейлистами
type PlaylistRepository interface {
	// Save сохраняет плейлист, заменяя существующий с тем же именем
	Save(ctx context.Context, record *PlaylistRecord) error

	// GetByName возвращает плейлист вместе с элементами
	GetByName(ctx context.Context, name string) (*PlaylistRecord, error)

	// Delete удаляет плейлист по имени
	Delete(ctx context.Context, name string) error

	// ListNames возвращает имена всех сохраненных плейлистов
	ListNames(ctx context.Context) ([]string, error)
}
