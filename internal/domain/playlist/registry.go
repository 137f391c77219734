package playlist

import (
	"slices"
	"sync"

	"playlistbox/internal/model"

	"go.uber.org/zap"
)

// Registry хранит плейлисты по уникальным именам.
// Экземпляр создается явно и передается всем, кому нужен общий набор плейлистов.
type Registry struct {
	playlists map[string]*Playlist
	order     []string
	mu        sync.RWMutex
	logger    *zap.Logger
}

// NewRegistry создает пустой реестр
func NewRegistry(logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		playlists: make(map[string]*Playlist),
		order:     make([]string, 0),
		logger:    logger,
	}
}

// Create создает и регистрирует пустой плейлист
func (r *Registry) Create(name string) (*Playlist, error) {
	p := New(name)
	if err := r.Register(p); err != nil {
		return nil, err
	}
	return p, nil
}

// Register добавляет готовый плейлист под его собственным именем
func (r *Registry) Register(p *Playlist) error {
	if err := model.ValidateRequired("name", p.Name()); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.playlists[p.Name()]; exists {
		return &DuplicateNameError{Name: p.Name()}
	}

	r.playlists[p.Name()] = p
	r.order = append(r.order, p.Name())
	r.logger.Debug("Playlist registered", zap.String("name", p.Name()), zap.Int("items", p.Len()))
	return nil
}

// Get возвращает плейлист по имени
func (r *Registry) Get(name string) (*Playlist, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.playlists[name]
	return p, ok
}

// Delete удаляет плейлист. Отсутствие плейлиста ошибкой не считается.
func (r *Registry) Delete(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.playlists[name]; !ok {
		return false
	}

	delete(r.playlists, name)
	if i := slices.Index(r.order, name); i >= 0 {
		r.order = slices.Delete(r.order, i, i+1)
	}
	r.logger.Debug("Playlist deleted", zap.String("name", name))
	return true
}

// List возвращает имена плейлистов в порядке регистрации
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// Len возвращает количество зарегистрированных плейлистов
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.playlists)
}

// Clear удаляет все плейлисты
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.playlists = make(map[string]*Playlist)
	r.order = make([]string, 0)
	r.logger.Info("Registry cleared")
}
