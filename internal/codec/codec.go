// Package codec преобразует плейлисты в JSON-документы и обратно.
package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"playlistbox/internal/domain/playlist"
	"playlistbox/internal/model"
)

// Document представляет сериализованный плейлист.
// Имена полей зафиксированы для совместимости с ранее выгруженными файлами.
type Document struct {
	Name  string       `json:"name"`
	Items []ItemRecord `json:"items"`
}

// ItemRecord представляет сериализованный элемент плейлиста
type ItemRecord struct {
	Type         string  `json:"type"`
	Title        string  `json:"title"`
	ArtistOrHost string  `json:"artist_or_host"`
	Duration     float64 `json:"duration"`
	GenreOrTopic string  `json:"genre_or_topic"`
}

// Encode преобразует плейлист в документ
func Encode(p *playlist.Playlist) Document {
	doc := Document{
		Name:  p.Name(),
		Items: make([]ItemRecord, 0, p.Len()),
	}

	for _, item := range p.Items() {
		doc.Items = append(doc.Items, EncodeItem(item))
	}
	return doc
}

// EncodeItem преобразует элемент в запись документа
func EncodeItem(item playlist.MusicItem) ItemRecord {
	switch v := item.(type) {
	case playlist.Song:
		return ItemRecord{
			Type:         string(playlist.KindSong),
			Title:        v.Title,
			ArtistOrHost: v.Artist,
			Duration:     v.Minutes,
			GenreOrTopic: v.Genre,
		}
	case playlist.PodcastEpisode:
		return ItemRecord{
			Type:         string(playlist.KindPodcast),
			Title:        v.Title,
			ArtistOrHost: v.Host,
			Duration:     v.Minutes,
			GenreOrTopic: v.Topic,
		}
	default:
		panic(fmt.Sprintf("codec: unsupported music item %T", item))
	}
}

// Decode восстанавливает плейлист из документа.
// Любой тип, отличный от "song", восстанавливается как выпуск подкаста.
func Decode(doc Document, policy playlist.ItemPolicy) (*playlist.Playlist, error) {
	if doc.Name == "" {
		return nil, &playlist.FormatError{Item: -1, Field: "name", Message: "is required"}
	}

	p := playlist.New(doc.Name)
	for i, rec := range doc.Items {
		item, err := DecodeItem(rec, policy)
		if err != nil {
			return nil, &playlist.FormatError{Item: i, Message: "invalid item", Err: err}
		}
		p.Add(item)
	}
	return p, nil
}

// DecodeItem восстанавливает элемент из записи документа
func DecodeItem(rec ItemRecord, policy playlist.ItemPolicy) (playlist.MusicItem, error) {
	if rec.Type == string(playlist.KindSong) {
		return policy.NewSong(rec.Title, rec.ArtistOrHost, rec.Duration, rec.GenreOrTopic)
	}
	return policy.NewPodcastEpisode(rec.Title, rec.ArtistOrHost, rec.Duration, rec.GenreOrTopic)
}

// UnknownTypes возвращает индексы элементов с нераспознанным типом
func (d Document) UnknownTypes() []int {
	var indexes []int
	for i, rec := range d.Items {
		if rec.Type != string(playlist.KindSong) && rec.Type != string(playlist.KindPodcast) {
			indexes = append(indexes, i)
		}
	}
	return indexes
}

// Validate проверяет плейлист теми же правилами, что применяет Decode.
// Возвращает model.ValidationError с индексом элемента.
func Validate(p *playlist.Playlist, policy playlist.ItemPolicy) error {
	if err := model.ValidateRequired("name", p.Name()); err != nil {
		return err
	}
	for i, item := range p.Items() {
		if err := policy.Validate(item); err != nil {
			return fmt.Errorf("item %d: %w", i, err)
		}
	}
	return nil
}

// Marshal проверяет плейлист и сериализует его в JSON с отступом в четыре пробела
func Marshal(p *playlist.Playlist, policy playlist.ItemPolicy) ([]byte, error) {
	if err := Validate(p, policy); err != nil {
		return nil, err
	}
	return MarshalDocument(Encode(p))
}

// MarshalDocument сериализует документ в JSON с отступом в четыре пробела
func MarshalDocument(doc Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("failed to encode playlist: %w", err)
	}
	return buf.Bytes(), nil
}

// rawDocument используется для проверки наличия обязательных полей
type rawDocument struct {
	Name  *string    `json:"name"`
	Items *[]rawItem `json:"items"`
}

type rawItem struct {
	Type         *string         `json:"type"`
	Title        *string         `json:"title"`
	ArtistOrHost *string         `json:"artist_or_host"`
	Duration     json.RawMessage `json:"duration"`
	GenreOrTopic *string         `json:"genre_or_topic"`
}

// ParseDocument разбирает JSON и проверяет обязательные поля
func ParseDocument(data []byte) (Document, error) {
	var raw rawDocument
	if err := json.Unmarshal(data, &raw); err != nil {
		return Document{}, &playlist.FormatError{Item: -1, Message: "invalid JSON", Err: err}
	}

	if raw.Name == nil {
		return Document{}, &playlist.FormatError{Item: -1, Field: "name", Message: "is required"}
	}
	if raw.Items == nil {
		return Document{}, &playlist.FormatError{Item: -1, Field: "items", Message: "is required"}
	}

	doc := Document{
		Name:  *raw.Name,
		Items: make([]ItemRecord, 0, len(*raw.Items)),
	}
	for i, item := range *raw.Items {
		rec, err := item.record(i)
		if err != nil {
			return Document{}, err
		}
		doc.Items = append(doc.Items, rec)
	}
	return doc, nil
}

func (r rawItem) record(index int) (ItemRecord, error) {
	required := []struct {
		field string
		value *string
	}{
		{"type", r.Type},
		{"title", r.Title},
		{"artist_or_host", r.ArtistOrHost},
		{"genre_or_topic", r.GenreOrTopic},
	}
	for _, f := range required {
		if f.value == nil {
			return ItemRecord{}, &playlist.FormatError{Item: index, Field: f.field, Message: "is required"}
		}
	}

	duration, err := parseDuration(r.Duration)
	if err != nil {
		return ItemRecord{}, &playlist.FormatError{Item: index, Field: "duration", Message: "must be a number", Err: err}
	}

	return ItemRecord{
		Type:         *r.Type,
		Title:        *r.Title,
		ArtistOrHost: *r.ArtistOrHost,
		Duration:     duration,
		GenreOrTopic: *r.GenreOrTopic,
	}, nil
}

var errMissingDuration = errors.New("duration is missing")

func parseDuration(raw json.RawMessage) (float64, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return 0, errMissingDuration
	}
	// Строки вида "5.92" числом не считаются
	if c := raw[0]; c != '-' && (c < '0' || c > '9') {
		return 0, fmt.Errorf("unexpected JSON value %s", raw)
	}
	return strconv.ParseFloat(string(raw), 64)
}

// Unmarshal восстанавливает плейлист из JSON
func Unmarshal(data []byte, policy playlist.ItemPolicy) (*playlist.Playlist, error) {
	doc, err := ParseDocument(data)
	if err != nil {
		return nil, err
	}
	return Decode(doc, policy)
}
