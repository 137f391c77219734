package playlist

import (
	"errors"
	"fmt"
)

// Стандартные ошибки плейлистов
var (
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrDuplicateName   = errors.New("playlist already exists")
	ErrNotFound        = errors.New("not found")
	ErrFormat          = errors.New("malformed playlist data")
)

// IndexError возвращается при обращении к несуществующей позиции
type IndexError struct {
	Index  int
	Length int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("index %d out of range [0, %d)", e.Index, e.Length)
}

// Is позволяет сравнивать ошибку с ErrIndexOutOfRange
func (e *IndexError) Is(target error) bool {
	return target == ErrIndexOutOfRange
}

// DuplicateNameError возвращается при повторном создании плейлиста с тем же именем
type DuplicateNameError struct {
	Name string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("playlist %q already exists", e.Name)
}

// Is позволяет сравнивать ошибку с ErrDuplicateName
func (e *DuplicateNameError) Is(target error) bool {
	return target == ErrDuplicateName
}

// NotFoundError возвращается, если файл или плейлист не найден
type NotFoundError struct {
	Resource string
	Err      error
}

func (e *NotFoundError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s not found: %v", e.Resource, e.Err)
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e *NotFoundError) Unwrap() error {
	return e.Err
}

// Is позволяет сравнивать ошибку с ErrNotFound
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// FormatError возвращается при некорректных сериализованных данных.
// Item равен -1, если ошибка относится к плейлисту целиком.
type FormatError struct {
	Item    int
	Field   string
	Message string
	Err     error
}

func (e *FormatError) Error() string {
	var where string
	switch {
	case e.Item >= 0 && e.Field != "":
		where = fmt.Sprintf("items[%d].%s", e.Item, e.Field)
	case e.Item >= 0:
		where = fmt.Sprintf("items[%d]", e.Item)
	case e.Field != "":
		where = e.Field
	default:
		where = "document"
	}
	if e.Err != nil {
		return fmt.Sprintf("malformed playlist data at %s: %s: %v", where, e.Message, e.Err)
	}
	return fmt.Sprintf("malformed playlist data at %s: %s", where, e.Message)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// Is позволяет сравнивать ошибку с ErrFormat
func (e *FormatError) Is(target error) bool {
	return target == ErrFormat
}

// IsNotFound проверяет, является ли ошибка ошибкой отсутствия ресурса
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
