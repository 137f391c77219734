package codec

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"playlistbox/internal/domain/playlist"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ExportFile сохраняет плейлист в JSON-файл. Некорректный плейлист не записывается.
func ExportFile(p *playlist.Playlist, path string, policy playlist.ItemPolicy) error {
	data, err := Marshal(p, policy)
	if err != nil {
		return err
	}

	// Создаем директорию, если она не существует
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write playlist file: %w", err)
	}
	return nil
}

// ImportFile загружает плейлист из JSON-файла
func ImportFile(path string, policy playlist.ItemPolicy) (*playlist.Playlist, error) {
	doc, err := ReadDocument(path)
	if err != nil {
		return nil, err
	}
	return Decode(doc, policy)
}

// ReadDocument читает и разбирает JSON-файл без восстановления элементов
func ReadDocument(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Document{}, &playlist.NotFoundError{Resource: path, Err: err}
		}
		return Document{}, fmt.Errorf("failed to read playlist file: %w", err)
	}
	return ParseDocument(data)
}

// FileName возвращает имя файла для плейлиста: "Rock Classics" -> "rock_classics.json"
func FileName(name string) string {
	fold := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(fold, name)
	if err != nil {
		folded = name
	}
	folded = cases.Lower(language.Und).String(folded)

	var b strings.Builder
	pendingSep := false
	for _, r := range folded {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingSep && b.Len() > 0 {
				b.WriteByte('_')
			}
			pendingSep = false
			b.WriteRune(r)
			continue
		}
		pendingSep = true
	}

	if b.Len() == 0 {
		return "playlist.json"
	}
	return b.String() + ".json"
}
