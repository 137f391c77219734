// Package spotify преобразует треки Spotify в элементы плейлиста.
package spotify

import (
	"fmt"
	"math"

	"playlistbox/internal/domain/playlist"

	"github.com/zmb3/spotify/v2"
)

// UnknownArtist используется, если у трека нет исполнителей
const UnknownArtist = "Unknown Artist"

// SongFromTrack создает песню из трека Spotify.
// Длительность переводится из миллисекунд в минуты с точностью до сотых.
func SongFromTrack(track spotify.FullTrack, genre string, policy playlist.ItemPolicy) (playlist.Song, error) {
	artistName := UnknownArtist
	if len(track.Artists) > 0 && track.Artists[0].Name != "" {
		artistName = track.Artists[0].Name
	}

	song, err := policy.NewSong(track.Name, artistName, Minutes(int(track.Duration)), genre)
	if err != nil {
		return playlist.Song{}, fmt.Errorf("failed to convert track %s: %w", track.ID, err)
	}
	return song, nil
}

// Minutes переводит миллисекунды в минуты, округляя до сотых
func Minutes(durationMs int) float64 {
	return math.Round(float64(durationMs)/600) / 100
}

// PlaylistFromItems собирает плейлист из элементов плейлиста Spotify.
// Эпизоды и некорректные треки пропускаются, их количество возвращается вторым значением.
func PlaylistFromItems(name string, items []spotify.PlaylistItem, genre string, policy playlist.ItemPolicy) (*playlist.Playlist, int) {
	p := playlist.New(name)
	skipped := 0

	for _, item := range items {
		// Проверяем, что это трек, а не эпизод
		if item.Track.Track == nil {
			skipped++
			continue
		}

		song, err := SongFromTrack(*item.Track.Track, genre, policy)
		if err != nil {
			skipped++
			continue
		}
		p.Add(song)
	}

	return p, skipped
}
