package service

import (
	"errors"
	"fmt"
)

var (
	// ErrDatasetNotLoaded - данные еще ни разу не были загружены
	ErrDatasetNotLoaded = errors.New("dataset not loaded")

	// ErrNotFound - запрошенный объект отсутствует
	ErrNotFound = errors.New("not found")

	// ErrSnapshotsDisabled - хранилище снимков не настроено
	ErrSnapshotsDisabled = errors.New("saved snapshots are disabled")

	// ErrInvalidInput - некорректные входные данные
	ErrInvalidInput = errors.New("invalid input")
)

// NotFoundError несет подсказки "возможно, вы имели в виду"
type NotFoundError struct {
	Query       string
	Suggestions []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%q not found", e.Query)
}

// Is позволяет сравнивать с ErrNotFound через errors.Is
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}
