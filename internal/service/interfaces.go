package service

import (
	"context"

	"playlistbox/internal/domain/playlist"

	spotifyapi "github.com/zmb3/spotify/v2"
)

// PlaylistServiceInterface определяет интерфейс для работы с плейлистами
type PlaylistServiceInterface interface {
	CreatePlaylist(name string) (*playlist.Playlist, error)
	GetPlaylist(name string) (*playlist.Playlist, bool)
	DeletePlaylist(name string) bool
	ListPlaylists() []string
	AddItem(name string, item playlist.MusicItem) error
	RemoveItem(name string, index int) (playlist.MusicItem, error)
	Display(name string) ([]string, error)
	Export(name string) (string, error)
	ExportTo(name, path string) error
	Import(path string) (*playlist.Playlist, error)
	ImportSpotify(name string, items []spotifyapi.PlaylistItem, genre string) (*playlist.Playlist, int, error)
	Save(ctx context.Context, name string) error
	Restore(ctx context.Context, name string) (*playlist.Playlist, error)
}
