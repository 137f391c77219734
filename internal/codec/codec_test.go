package codec

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"playlistbox/internal/domain/playlist"
	"playlistbox/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPlaylist() *playlist.Playlist {
	p := playlist.New("Test IO Playlist")
	p.Add(playlist.Song{Title: "IO Song", Artist: "IO Artist", Minutes: 4.2, Genre: "IO Genre"})
	p.Add(playlist.PodcastEpisode{Title: "IO Podcast", Host: "IO Host", Minutes: 45.0, Topic: "IO Topic"})
	return p
}

func TestEncode(t *testing.T) {
	doc := Encode(newTestPlaylist())

	assert.Equal(t, "Test IO Playlist", doc.Name)
	require.Len(t, doc.Items, 2)
	assert.Equal(t, ItemRecord{Type: "song", Title: "IO Song", ArtistOrHost: "IO Artist", Duration: 4.2, GenreOrTopic: "IO Genre"}, doc.Items[0])
	assert.Equal(t, ItemRecord{Type: "podcast", Title: "IO Podcast", ArtistOrHost: "IO Host", Duration: 45.0, GenreOrTopic: "IO Topic"}, doc.Items[1])
}

func TestEncode_EmptyPlaylist(t *testing.T) {
	data, err := Marshal(playlist.New("Empty"), playlist.DefaultPolicy)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name": "Empty", "items": []}`, string(data))
}

func TestRoundTrip(t *testing.T) {
	original := newTestPlaylist()

	decoded, err := Decode(Encode(original), playlist.DefaultPolicy)
	require.NoError(t, err)
	assert.True(t, original.Equal(decoded))

	data, err := Marshal(original, playlist.DefaultPolicy)
	require.NoError(t, err)
	unmarshaled, err := Unmarshal(data, playlist.DefaultPolicy)
	require.NoError(t, err)
	assert.True(t, original.Equal(unmarshaled))

	first, err := unmarshaled.At(0)
	require.NoError(t, err)
	assert.IsType(t, playlist.Song{}, first)
	second, err := unmarshaled.At(1)
	require.NoError(t, err)
	assert.IsType(t, playlist.PodcastEpisode{}, second)
}

func TestMarshal_FieldNames(t *testing.T) {
	data, err := Marshal(newTestPlaylist(), playlist.DefaultPolicy)
	require.NoError(t, err)

	var generic map[string]any
	require.NoError(t, json.Unmarshal(data, &generic))
	assert.Equal(t, "Test IO Playlist", generic["name"])

	items, ok := generic["items"].([]any)
	require.True(t, ok)
	require.Len(t, items, 2)

	first := items[0].(map[string]any)
	for _, key := range []string{"type", "title", "artist_or_host", "duration", "genre_or_topic"} {
		assert.Contains(t, first, key)
	}
	assert.Len(t, first, 5)
	assert.Contains(t, string(data), "\n    \"name\"")
}

func TestUnmarshal_UnknownTypeFallsBackToPodcast(t *testing.T) {
	data := []byte(`{"name": "Mixed", "items": [
		{"type": "audiobook", "title": "Dune", "artist_or_host": "Scott Brick", "duration": 1260, "genre_or_topic": "Sci-Fi"}
	]}`)

	doc, err := ParseDocument(data)
	require.NoError(t, err)
	assert.Equal(t, []int{0}, doc.UnknownTypes())

	p, err := Decode(doc, playlist.DefaultPolicy)
	require.NoError(t, err)
	item, err := p.At(0)
	require.NoError(t, err)
	assert.Equal(t, playlist.MusicItem(playlist.PodcastEpisode{Title: "Dune", Host: "Scott Brick", Minutes: 1260, Topic: "Sci-Fi"}), item)
}

func TestUnmarshal_FormatErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "невалидный JSON", data: `{"name": "Broken"`},
		{name: "нет имени", data: `{"items": []}`},
		{name: "пустое имя", data: `{"name": "", "items": []}`},
		{name: "нет items", data: `{"name": "No Items"}`},
		{name: "items null", data: `{"name": "No Items", "items": null}`},
		{name: "нет type", data: `{"name": "X", "items": [{"title": "T", "artist_or_host": "A", "duration": 1, "genre_or_topic": "G"}]}`},
		{name: "нет title", data: `{"name": "X", "items": [{"type": "song", "artist_or_host": "A", "duration": 1, "genre_or_topic": "G"}]}`},
		{name: "нет duration", data: `{"name": "X", "items": [{"type": "song", "title": "T", "artist_or_host": "A", "genre_or_topic": "G"}]}`},
		{name: "duration строкой", data: `{"name": "X", "items": [{"type": "song", "title": "T", "artist_or_host": "A", "duration": "5:55", "genre_or_topic": "G"}]}`},
		{name: "duration числовой строкой", data: `{"name": "X", "items": [{"type": "song", "title": "T", "artist_or_host": "A", "duration": "5.92", "genre_or_topic": "G"}]}`},
		{name: "нет genre_or_topic", data: `{"name": "X", "items": [{"type": "song", "title": "T", "artist_or_host": "A", "duration": 1}]}`},
		{name: "пустой исполнитель", data: `{"name": "X", "items": [{"type": "song", "title": "T", "artist_or_host": "", "duration": 1, "genre_or_topic": "G"}]}`},
		{name: "отрицательная длительность", data: `{"name": "X", "items": [{"type": "podcast", "title": "T", "artist_or_host": "H", "duration": -3, "genre_or_topic": "G"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Unmarshal([]byte(tt.data), playlist.DefaultPolicy)
			require.Error(t, err)
			assert.ErrorIs(t, err, playlist.ErrFormat)
		})
	}
}

func TestUnmarshal_ValidationWrapped(t *testing.T) {
	data := `{"name": "X", "items": [{"type": "song", "title": "T", "artist_or_host": "A", "duration": 1, "genre_or_topic": ""}]}`

	_, err := Unmarshal([]byte(data), playlist.DefaultPolicy)
	require.NoError(t, err)

	_, err = Unmarshal([]byte(data), playlist.ItemPolicy{Strict: true})
	require.Error(t, err)
	assert.ErrorIs(t, err, playlist.ErrFormat)
	assert.ErrorIs(t, err, model.ErrValidation)
}

func TestExportImportFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "test_playlist.json")
	original := newTestPlaylist()

	require.NoError(t, ExportFile(original, path, playlist.DefaultPolicy))
	_, err := os.Stat(path)
	require.NoError(t, err)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var doc Document
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Equal(t, "Test IO Playlist", doc.Name)
	require.Len(t, doc.Items, 2)
	assert.Equal(t, "IO Song", doc.Items[0].Title)
	assert.Equal(t, "IO Podcast", doc.Items[1].Title)

	imported, err := ImportFile(path, playlist.DefaultPolicy)
	require.NoError(t, err)
	assert.Equal(t, "Test IO Playlist", imported.Name())
	assert.Equal(t, 2, imported.Len())
	assert.True(t, original.Equal(imported))
}

func TestImportFile_NotFound(t *testing.T) {
	_, err := ImportFile(filepath.Join(t.TempDir(), "nonexistent_file.json"), playlist.DefaultPolicy)
	require.Error(t, err)
	assert.ErrorIs(t, err, playlist.ErrNotFound)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.True(t, playlist.IsNotFound(err))
}

func TestImportFile_PreviouslyExported(t *testing.T) {
	// Формат, который выгружала предыдущая версия: длительность с дробной частью .0
	content := `{
    "name": "Rock Classics",
    "items": [
        {
            "type": "song",
            "title": "Bohemian Rhapsody",
            "artist_or_host": "Queen",
            "duration": 5.92,
            "genre_or_topic": "Rock"
        },
        {
            "type": "podcast",
            "title": "AI Today",
            "artist_or_host": "Lex Fridman",
            "duration": 120.0,
            "genre_or_topic": "Artificial Intelligence"
        }
    ]
}`
	path := filepath.Join(t.TempDir(), "rock_classics.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	p, err := ImportFile(path, playlist.DefaultPolicy)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"1. Bohemian Rhapsody by Queen (5.92 min) - Rock",
		"2. AI Today hosted by Lex Fridman (120.0 min) - Artificial Intelligence",
		"Total duration: 125.92 minutes",
	}, p.Display())
}

func TestFileName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Rock Classics", "rock_classics.json"},
		{"Tech Podcasts", "tech_podcasts.json"},
		{"  Café del Mar  ", "cafe_del_mar.json"},
		{"80's / 90's Hits!", "80_s_90_s_hits.json"},
		{"???", "playlist.json"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, FileName(tt.input))
		})
	}
}

func TestExportFile_RejectsInvalidPlaylist(t *testing.T) {
	path := filepath.Join(t.TempDir(), "untitled.json")

	p := playlist.New("Untitled")
	p.Add(playlist.Song{Title: "Untitled", Artist: "", Minutes: 0, Genre: "X"})

	_, err := Marshal(p, playlist.DefaultPolicy)
	assert.ErrorIs(t, err, model.ErrValidation)

	err = ExportFile(p, path, playlist.DefaultPolicy)
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrValidation)
	assert.NotErrorIs(t, err, playlist.ErrFormat)

	_, statErr := os.Stat(path)
	assert.ErrorIs(t, statErr, os.ErrNotExist)
}

func TestExportFile_PolicyMatchesImport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "no_genre.json")
	strict := playlist.ItemPolicy{Strict: true}

	p := playlist.New("No Genre")
	p.Add(playlist.Song{Title: "Intro", Artist: "Band", Minutes: 1.5})

	// Что не проходит строгий импорт, не выгружается в строгом режиме
	assert.ErrorIs(t, ExportFile(p, path, strict), model.ErrValidation)

	require.NoError(t, ExportFile(p, path, playlist.DefaultPolicy))
	imported, err := ImportFile(path, playlist.DefaultPolicy)
	require.NoError(t, err)
	assert.True(t, p.Equal(imported))
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate(newTestPlaylist(), playlist.DefaultPolicy))
	assert.ErrorIs(t, Validate(playlist.New(""), playlist.DefaultPolicy), model.ErrValidation)

	p := newTestPlaylist()
	p.Add(playlist.PodcastEpisode{Title: "Broken", Host: "Host", Minutes: -1, Topic: "T"})
	err := Validate(p, playlist.DefaultPolicy)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "item 2")
}
