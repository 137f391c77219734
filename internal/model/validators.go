// Package model содержит валидаторы для моделей.
//
// Группа: BASE - Базовые компоненты
// Содержит: ValidationError, ValidationErrors, валидаторы
package model

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrValidation возвращается (через errors.Is) для любой ошибки валидации
var ErrValidation = errors.New("validation failed")

// ValidationError представляет ошибку валидации
type ValidationError struct {
	Field   string
	Message string
}

func (ve ValidationError) Error() string {
	return fmt.Sprintf("validation error for field '%s': %s", ve.Field, ve.Message)
}

// Is позволяет сравнивать ошибку с ErrValidation
func (ve ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// ValidationErrors представляет множество ошибок валидации
type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "no validation errors"
	}

	var messages []string
	for _, err := range ve {
		messages = append(messages, err.Error())
	}
	return strings.Join(messages, "; ")
}

// Is позволяет сравнивать ошибку с ErrValidation
func (ve ValidationErrors) Is(target error) bool {
	return target == ErrValidation && len(ve) > 0
}

// HasErrors проверяет, есть ли ошибки валидации
func (ve ValidationErrors) HasErrors() bool {
	return len(ve) > 0
}

// Err возвращает nil, если ошибок нет, иначе единственную ошибку или весь список
func (ve ValidationErrors) Err() error {
	if !ve.HasErrors() {
		return nil
	}
	if len(ve) == 1 {
		return ve[0]
	}
	return ve
}

// Collect добавляет ошибку в список, если она является ValidationError
func (ve *ValidationErrors) Collect(err error) {
	if err == nil {
		return
	}
	var single ValidationError
	if errors.As(err, &single) {
		*ve = append(*ve, single)
		return
	}
	*ve = append(*ve, ValidationError{Field: "-", Message: err.Error()})
}

// ValidateRequired проверяет, что поле не пустое
func ValidateRequired(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return ValidationError{Field: field, Message: "is required"}
	}
	return nil
}

// ValidatePositiveFloat проверяет, что число конечное и положительное
func ValidatePositiveFloat(field string, value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return ValidationError{Field: field, Message: "must be a finite number"}
	}
	if value <= 0 {
		return ValidationError{Field: field, Message: "must be positive"}
	}
	return nil
}

// ValidateEnum проверяет, что значение входит в список допустимых
func ValidateEnum(field, value string, allowedValues []string) error {
	for _, allowed := range allowedValues {
		if value == allowed {
			return nil
		}
	}
	return ValidationError{Field: field, Message: fmt.Sprintf("must be one of: %s", strings.Join(allowedValues, ", "))}
}
