// Package playlist содержит доменные типы плейлистов: элементы, плейлист и реестр.
package playlist

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"playlistbox/internal/model"
)

// Kind определяет вариант элемента плейлиста
type Kind string

const (
	// KindSong - песня
	KindSong Kind = "song"
	// KindPodcast - выпуск подкаста
	KindPodcast Kind = "podcast"
)

// MusicItem представляет элемент плейлиста.
// Реализации ограничены типами Song и PodcastEpisode.
type MusicItem interface {
	Kind() Kind
	Duration() float64
	Describe() string

	sealed()
}

// Song представляет песню
type Song struct {
	Title   string
	Artist  string
	Minutes float64
	Genre   string
}

// PodcastEpisode представляет выпуск подкаста
type PodcastEpisode struct {
	Title   string
	Host    string
	Minutes float64
	Topic   string
}

var (
	_ MusicItem = Song{}
	_ MusicItem = PodcastEpisode{}
)

// ItemPolicy задает правила валидации элементов.
// В строгом режиме обязательны также жанр песни и тема подкаста.
type ItemPolicy struct {
	Strict bool
}

// DefaultPolicy - политика валидации по умолчанию
var DefaultPolicy = ItemPolicy{}

// NewSong создает песню с политикой по умолчанию
func NewSong(title, artist string, minutes float64, genre string) (Song, error) {
	return DefaultPolicy.NewSong(title, artist, minutes, genre)
}

// NewPodcastEpisode создает выпуск подкаста с политикой по умолчанию
func NewPodcastEpisode(title, host string, minutes float64, topic string) (PodcastEpisode, error) {
	return DefaultPolicy.NewPodcastEpisode(title, host, minutes, topic)
}

// NewSong создает песню и проверяет ее поля
func (p ItemPolicy) NewSong(title, artist string, minutes float64, genre string) (Song, error) {
	song := Song{Title: title, Artist: artist, Minutes: minutes, Genre: genre}
	if err := p.Validate(song); err != nil {
		return Song{}, err
	}
	return song, nil
}

// NewPodcastEpisode создает выпуск подкаста и проверяет его поля
func (p ItemPolicy) NewPodcastEpisode(title, host string, minutes float64, topic string) (PodcastEpisode, error) {
	episode := PodcastEpisode{Title: title, Host: host, Minutes: minutes, Topic: topic}
	if err := p.Validate(episode); err != nil {
		return PodcastEpisode{}, err
	}
	return episode, nil
}

// Validate проверяет элемент. Возвращает model.ValidationError
// или model.ValidationErrors, если нарушено несколько правил.
func (p ItemPolicy) Validate(item MusicItem) error {
	var errs model.ValidationErrors

	switch v := item.(type) {
	case Song:
		errs.Collect(model.ValidateRequired("title", v.Title))
		errs.Collect(model.ValidateRequired("artist", v.Artist))
		errs.Collect(model.ValidatePositiveFloat("duration", v.Minutes))
		if p.Strict {
			errs.Collect(model.ValidateRequired("genre", v.Genre))
		}
	case PodcastEpisode:
		errs.Collect(model.ValidateRequired("title", v.Title))
		errs.Collect(model.ValidateRequired("host", v.Host))
		errs.Collect(model.ValidatePositiveFloat("duration", v.Minutes))
		if p.Strict {
			errs.Collect(model.ValidateRequired("topic", v.Topic))
		}
	default:
		return model.ValidationError{Field: "type", Message: fmt.Sprintf("unsupported item %T", item)}
	}

	return errs.Err()
}

// Kind возвращает вариант элемента
func (s Song) Kind() Kind { return KindSong }

// Duration возвращает длительность в минутах
func (s Song) Duration() float64 { return s.Minutes }

// Describe возвращает описание песни
func (s Song) Describe() string {
	return fmt.Sprintf("%s by %s (%s min) - %s", s.Title, s.Artist, FormatMinutes(s.Minutes), s.Genre)
}

func (Song) sealed() {}

// Kind возвращает вариант элемента
func (e PodcastEpisode) Kind() Kind { return KindPodcast }

// Duration возвращает длительность в минутах
func (e PodcastEpisode) Duration() float64 { return e.Minutes }

// Describe возвращает описание выпуска
func (e PodcastEpisode) Describe() string {
	return fmt.Sprintf("%s hosted by %s (%s min) - %s", e.Title, e.Host, FormatMinutes(e.Minutes), e.Topic)
}

func (PodcastEpisode) sealed() {}

// FormatMinutes форматирует длительность кратчайшей десятичной записью
// с хотя бы одной цифрой после точки: 5.92, 120.0, 90.5.
// Вне диапазона [1e-4, 1e16) используется экспоненциальная запись: 1e+16, 1e-05.
func FormatMinutes(minutes float64) string {
	if abs := math.Abs(minutes); abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(minutes, 'g', -1, 64)
	}

	s := strconv.FormatFloat(minutes, 'f', -1, 64)
	if !strings.ContainsAny(s, ".NI") {
		s += ".0"
	}
	return s
}
