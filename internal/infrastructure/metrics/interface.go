package metrics

// Статусы операций экспорта и импорта
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// Interface определяет интерфейс для системы метрик
type Interface interface {
	// RecordPlaylistCreated записывает создание плейлиста
	RecordPlaylistCreated()

	// RecordPlaylistDeleted записывает удаление плейлиста
	RecordPlaylistDeleted()

	// RecordItemAdded записывает добавление элемента указанного типа
	RecordItemAdded(kind string)

	// RecordItemRemoved записывает удаление элемента
	RecordItemRemoved()

	// RecordExport записывает выгрузку плейлиста
	RecordExport(status string)

	// RecordImport записывает загрузку плейлиста
	RecordImport(status string)

	// SetPlaylists устанавливает количество зарегистрированных плейлистов
	SetPlaylists(count int)

	// RecordError записывает ошибку операции
	RecordError(operation string)

	// GetStats возвращает все метрики в виде map
	GetStats() map[string]interface{}
}

// Nop - реализация метрик, которая ничего не делает
type Nop struct{}

var _ Interface = Nop{}

func (Nop) RecordPlaylistCreated() {}
func (Nop) RecordPlaylistDeleted() {}
func (Nop) RecordItemAdded(string) {}
func (Nop) RecordItemRemoved() {}
func (Nop) RecordExport(string) {}
func (Nop) RecordImport(string) {}
func (Nop) SetPlaylists(int) {}
func (Nop) RecordError(string) {}
func (Nop) GetStats() map[string]interface{} { return map[string]interface{}{} }
