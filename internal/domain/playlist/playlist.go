package playlist

import (
	"fmt"
	"io"
	"slices"
	"strings"
)

// Playlist представляет именованный упорядоченный набор элементов.
// Мутации не синхронизированы: при конкурентном доступе вызывающий код
// должен сериализовать их сам.
type Playlist struct {
	name  string
	items []MusicItem
}

// New создает пустой плейлист
func New(name string) *Playlist {
	return &Playlist{
		name:  name,
		items: make([]MusicItem, 0),
	}
}

// Name возвращает имя плейлиста
func (p *Playlist) Name() string {
	return p.name
}

// Add добавляет элемент в конец плейлиста
func (p *Playlist) Add(item MusicItem) {
	p.items = append(p.items, item)
}

// RemoveAt удаляет элемент по индексу и возвращает его
func (p *Playlist) RemoveAt(index int) (MusicItem, error) {
	if index < 0 || index >= len(p.items) {
		return nil, &IndexError{Index: index, Length: len(p.items)}
	}

	item := p.items[index]
	p.items = slices.Delete(p.items, index, index+1)
	return item, nil
}

// At возвращает элемент по индексу
func (p *Playlist) At(index int) (MusicItem, error) {
	if index < 0 || index >= len(p.items) {
		return nil, &IndexError{Index: index, Length: len(p.items)}
	}
	return p.items[index], nil
}

// Len возвращает количество элементов
func (p *Playlist) Len() int {
	return len(p.items)
}

// Items возвращает копию элементов в порядке добавления
func (p *Playlist) Items() []MusicItem {
	items := make([]MusicItem, len(p.items))
	copy(items, p.items)
	return items
}

// TotalDuration возвращает суммарную длительность в минутах
func (p *Playlist) TotalDuration() float64 {
	var total float64
	for _, item := range p.items {
		total += item.Duration()
	}
	return total
}

// Display возвращает строки вида "1. описание" и итоговую длительность
func (p *Playlist) Display() []string {
	lines := make([]string, 0, len(p.items)+1)
	for i, item := range p.items {
		lines = append(lines, fmt.Sprintf("%d. %s", i+1, item.Describe()))
	}
	lines = append(lines, fmt.Sprintf("Total duration: %.2f minutes", p.TotalDuration()))
	return lines
}

// Render выводит плейлист в консольном формате
func (p *Playlist) Render(w io.Writer) error {
	var b strings.Builder
	fmt.Fprintf(&b, "\nPlaylist: %s\n", p.name)
	b.WriteString(strings.Repeat("-", 40))
	b.WriteString("\n")
	for _, line := range p.Display() {
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// Equal сравнивает плейлисты по имени и элементам с учетом порядка
func (p *Playlist) Equal(other *Playlist) bool {
	if p == nil || other == nil {
		return p == other
	}
	if p.name != other.name || len(p.items) != len(other.items) {
		return false
	}
	for i := range p.items {
		if p.items[i] != other.items[i] {
			return false
		}
	}
	return true
}
