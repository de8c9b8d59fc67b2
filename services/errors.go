package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrInvalidInput   = errors.New("invalid input")
	ErrConflict       = errors.New("already exists")
	ErrUnauthorized   = errors.New("invalid email or password")
	ErrExportDisabled = errors.New("export is not configured")

	ErrInvalidStatus = fmt.Errorf(`%w: status must be "expected" or "actual"`, ErrInvalidInput)
)

// notFound turns gorm's record-not-found into ErrNotFound naming what was missing.
func notFound(what string, id uint, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s %d: %w", what, id, ErrNotFound)
	}
	return err
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
