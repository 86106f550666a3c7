package mysql

import (
	"errors"

	"gorm.io/gorm"
)

// notFound maps gorm's missing-row error onto the domain sentinel, leaving
// every other error untouched.
func notFound(err, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}

// duplicate maps a unique-key violation onto the domain sentinel. It relies on
// the connection being opened with gorm.Config{TranslateError: true}.
func duplicate(err, sentinel error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return sentinel
	}
	return err
}
