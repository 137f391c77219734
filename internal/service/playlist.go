// Package service содержит бизнес-логику приложения.
package service

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"playlistbox/internal/codec"
	"playlistbox/internal/domain/playlist"
	"playlistbox/internal/external/spotify"
	"playlistbox/internal/infrastructure/metrics"
	"playlistbox/internal/model"

	spotifyapi "github.com/zmb3/spotify/v2"
	"go.uber.org/zap"
)

// ErrStorageDisabled возвращается, если база данных не настроена
var ErrStorageDisabled = errors.New("playlist storage is not configured")

// PlaylistService содержит бизнес-логику для работы с плейлистами.
// Изменения одного плейлиста из разных горутин вызывающий код сериализует сам.
type PlaylistService struct {
	registry  *playlist.Registry
	repo      model.PlaylistRepository
	metrics   metrics.Interface
	policy    playlist.ItemPolicy
	exportDir string
	logger    *zap.Logger
}

var _ PlaylistServiceInterface = (*PlaylistService)(nil)

// NewPlaylistService создает новый сервис плейлистов. repo, m и logger могут быть nil.
func NewPlaylistService(
	registry *playlist.Registry,
	repo model.PlaylistRepository,
	m metrics.Interface,
	policy playlist.ItemPolicy,
	exportDir string,
	logger *zap.Logger,
) *PlaylistService {
	if m == nil {
		m = metrics.Nop{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PlaylistService{
		registry:  registry,
		repo:      repo,
		metrics:   m,
		policy:    policy,
		exportDir: exportDir,
		logger:    logger,
	}
}

// Registry возвращает реестр плейлистов
func (s *PlaylistService) Registry() *playlist.Registry {
	return s.registry
}

// Policy возвращает политику валидации элементов
func (s *PlaylistService) Policy() playlist.ItemPolicy {
	return s.policy
}

// CreatePlaylist создает пустой плейлист
func (s *PlaylistService) CreatePlaylist(name string) (*playlist.Playlist, error) {
	p, err := s.registry.Create(name)
	if err != nil {
		s.metrics.RecordError("create")
		return nil, fmt.Errorf("failed to create playlist: %w", err)
	}

	s.metrics.RecordPlaylistCreated()
	s.metrics.SetPlaylists(s.registry.Len())
	s.logger.Info("Playlist created", zap.String("name", name))
	return p, nil
}

// GetPlaylist возвращает плейлист по имени
func (s *PlaylistService) GetPlaylist(name string) (*playlist.Playlist, bool) {
	return s.registry.Get(name)
}

// DeletePlaylist удаляет плейлист из реестра
func (s *PlaylistService) DeletePlaylist(name string) bool {
	if !s.registry.Delete(name) {
		s.logger.Debug("Playlist to delete not found", zap.String("name", name))
		return false
	}

	s.metrics.RecordPlaylistDeleted()
	s.metrics.SetPlaylists(s.registry.Len())
	s.logger.Info("Playlist deleted", zap.String("name", name))
	return true
}

// ListPlaylists возвращает имена плейлистов в порядке создания
func (s *PlaylistService) ListPlaylists() []string {
	return s.registry.List()
}

// AddItem проверяет элемент и добавляет его в плейлист
func (s *PlaylistService) AddItem(name string, item playlist.MusicItem) error {
	p, err := s.lookup(name)
	if err != nil {
		return err
	}

	if err := s.policy.Validate(item); err != nil {
		s.metrics.RecordError("add_item")
		return fmt.Errorf("failed to add item to %q: %w", name, err)
	}

	p.Add(item)
	s.metrics.RecordItemAdded(string(item.Kind()))
	s.logger.Debug("Item added",
		zap.String("playlist", name),
		zap.String("kind", string(item.Kind())),
		zap.Int("items", p.Len()))
	return nil
}

// AddSong создает песню и добавляет ее в плейлист
func (s *PlaylistService) AddSong(name, title, artist string, minutes float64, genre string) error {
	return s.AddItem(name, playlist.Song{Title: title, Artist: artist, Minutes: minutes, Genre: genre})
}

// AddPodcastEpisode создает выпуск подкаста и добавляет его в плейлист
func (s *PlaylistService) AddPodcastEpisode(name, title, host string, minutes float64, topic string) error {
	return s.AddItem(name, playlist.PodcastEpisode{Title: title, Host: host, Minutes: minutes, Topic: topic})
}

// RemoveItem удаляет элемент плейлиста по индексу
func (s *PlaylistService) RemoveItem(name string, index int) (playlist.MusicItem, error) {
	p, err := s.lookup(name)
	if err != nil {
		return nil, err
	}

	item, err := p.RemoveAt(index)
	if err != nil {
		s.metrics.RecordError("remove_item")
		return nil, fmt.Errorf("failed to remove item from %q: %w", name, err)
	}

	s.metrics.RecordItemRemoved()
	s.logger.Debug("Item removed", zap.String("playlist", name), zap.Int("index", index))
	return item, nil
}

// Display возвращает строки представления плейлиста
func (s *PlaylistService) Display(name string) ([]string, error) {
	p, err := s.lookup(name)
	if err != nil {
		return nil, err
	}
	return p.Display(), nil
}

// ExportPath возвращает путь файла выгрузки для плейлиста
func (s *PlaylistService) ExportPath(name string) string {
	return filepath.Join(s.exportDir, codec.FileName(name))
}

// Export выгружает плейлист в каталог выгрузки и возвращает путь к файлу
func (s *PlaylistService) Export(name string) (string, error) {
	path := s.ExportPath(name)
	if err := s.ExportTo(name, path); err != nil {
		return "", err
	}
	return path, nil
}

// ExportTo выгружает плейлист в указанный файл
func (s *PlaylistService) ExportTo(name, path string) error {
	p, err := s.lookup(name)
	if err != nil {
		s.metrics.RecordExport(metrics.StatusError)
		return err
	}

	if err := codec.ExportFile(p, path, s.policy); err != nil {
		s.metrics.RecordExport(metrics.StatusError)
		s.logger.Error("Failed to export playlist",
			zap.String("name", name),
			zap.String("file_path", path),
			zap.Error(err))
		return fmt.Errorf("failed to export playlist %q: %w", name, err)
	}

	s.metrics.RecordExport(metrics.StatusOK)
	s.logger.Info("Playlist exported",
		zap.String("name", name),
		zap.String("file_path", path),
		zap.Int("items", p.Len()))
	return nil
}

// Import загружает плейлист из файла и регистрирует его
func (s *PlaylistService) Import(path string) (*playlist.Playlist, error) {
	doc, err := codec.ReadDocument(path)
	if err != nil {
		s.metrics.RecordImport(metrics.StatusError)
		return nil, fmt.Errorf("failed to import playlist: %w", err)
	}

	p, err := s.decode(doc)
	if err != nil {
		s.metrics.RecordImport(metrics.StatusError)
		return nil, fmt.Errorf("failed to import playlist from %s: %w", path, err)
	}

	if err := s.registry.Register(p); err != nil {
		s.metrics.RecordImport(metrics.StatusError)
		return nil, fmt.Errorf("failed to register imported playlist: %w", err)
	}

	s.metrics.RecordImport(metrics.StatusOK)
	s.metrics.SetPlaylists(s.registry.Len())
	s.logger.Info("Playlist imported",
		zap.String("name", p.Name()),
		zap.String("file_path", path),
		zap.Int("items", p.Len()))
	return p, nil
}

// ImportSpotify собирает плейлист из элементов плейлиста Spotify и регистрирует его.
// Возвращает количество пропущенных элементов.
func (s *PlaylistService) ImportSpotify(name string, items []spotifyapi.PlaylistItem, genre string) (*playlist.Playlist, int, error) {
	p, skipped := spotify.PlaylistFromItems(name, items, genre, s.policy)
	if err := s.registry.Register(p); err != nil {
		s.metrics.RecordImport(metrics.StatusError)
		return nil, skipped, fmt.Errorf("failed to register spotify playlist: %w", err)
	}

	for _, item := range p.Items() {
		s.metrics.RecordItemAdded(string(item.Kind()))
	}
	s.metrics.RecordImport(metrics.StatusOK)
	s.metrics.SetPlaylists(s.registry.Len())
	if skipped > 0 {
		s.logger.Warn("Some spotify items were skipped",
			zap.String("name", name),
			zap.Int("skipped", skipped))
	}
	s.logger.Info("Spotify playlist imported", zap.String("name", name), zap.Int("items", p.Len()))
	return p, skipped, nil
}

// Save сохраняет плейлист в базу данных
func (s *PlaylistService) Save(ctx context.Context, name string) error {
	if s.repo == nil {
		return ErrStorageDisabled
	}

	p, err := s.lookup(name)
	if err != nil {
		return err
	}

	if err := codec.Validate(p, s.policy); err != nil {
		s.metrics.RecordError("save")
		return fmt.Errorf("failed to save playlist %q: %w", name, err)
	}

	record := recordFromDocument(codec.Encode(p))
	if err := s.repo.Save(ctx, record); err != nil {
		s.metrics.RecordError("save")
		return fmt.Errorf("failed to save playlist %q: %w", name, err)
	}

	s.logger.Info("Playlist saved to storage",
		zap.String("name", name),
		zap.String("id", record.ID),
		zap.Int("items", len(record.Items)))
	return nil
}

// Restore загружает плейлист из базы данных и регистрирует его
func (s *PlaylistService) Restore(ctx context.Context, name string) (*playlist.Playlist, error) {
	if s.repo == nil {
		return nil, ErrStorageDisabled
	}

	record, err := s.repo.GetByName(ctx, name)
	if err != nil {
		s.metrics.RecordError("restore")
		return nil, fmt.Errorf("failed to restore playlist %q: %w", name, err)
	}

	p, err := s.decode(documentFromRecord(record))
	if err != nil {
		s.metrics.RecordError("restore")
		return nil, fmt.Errorf("failed to restore playlist %q: %w", name, err)
	}

	if err := s.registry.Register(p); err != nil {
		s.metrics.RecordError("restore")
		return nil, fmt.Errorf("failed to register restored playlist: %w", err)
	}

	s.metrics.SetPlaylists(s.registry.Len())
	s.logger.Info("Playlist restored from storage", zap.String("name", name), zap.Int("items", p.Len()))
	return p, nil
}

// Forget удаляет плейлист из базы данных
func (s *PlaylistService) Forget(ctx context.Context, name string) error {
	if s.repo == nil {
		return ErrStorageDisabled
	}
	if err := s.repo.Delete(ctx, name); err != nil {
		return fmt.Errorf("failed to delete stored playlist %q: %w", name, err)
	}
	return nil
}

// StoredPlaylists возвращает имена плейлистов в базе данных
func (s *PlaylistService) StoredPlaylists(ctx context.Context) ([]string, error) {
	if s.repo == nil {
		return nil, ErrStorageDisabled
	}
	return s.repo.ListNames(ctx)
}

func (s *PlaylistService) lookup(name string) (*playlist.Playlist, error) {
	p, ok := s.registry.Get(name)
	if !ok {
		return nil, &playlist.NotFoundError{Resource: fmt.Sprintf("playlist %q", name)}
	}
	return p, nil
}

func (s *PlaylistService) decode(doc codec.Document) (*playlist.Playlist, error) {
	// Нераспознанные типы восстанавливаются как подкасты
	for _, index := range doc.UnknownTypes() {
		s.logger.Warn("Unknown item type, decoding as podcast",
			zap.String("playlist", doc.Name),
			zap.Int("index", index),
			zap.String("type", doc.Items[index].Type))
	}
	return codec.Decode(doc, s.policy)
}

func recordFromDocument(doc codec.Document) *model.PlaylistRecord {
	record := &model.PlaylistRecord{
		Name:  doc.Name,
		Items: make([]*model.PlaylistItemRecord, 0, len(doc.Items)),
	}
	for i, item := range doc.Items {
		record.Items = append(record.Items, &model.PlaylistItemRecord{
			Position:     i,
			Type:         item.Type,
			Title:        item.Title,
			ArtistOrHost: item.ArtistOrHost,
			Duration:     item.Duration,
			GenreOrTopic: item.GenreOrTopic,
		})
	}
	return record
}

func documentFromRecord(record *model.PlaylistRecord) codec.Document {
	doc := codec.Document{
		Name:  record.Name,
		Items: make([]codec.ItemRecord, 0, len(record.Items)),
	}
	for _, item := range record.Items {
		doc.Items = append(doc.Items, codec.ItemRecord{
			Type:         item.Type,
			Title:        item.Title,
			ArtistOrHost: item.ArtistOrHost,
			Duration:     item.Duration,
			GenreOrTopic: item.GenreOrTopic,
		})
	}
	return doc
}
