// Package repository implements persistence on top of gorm. Every method
// takes a context and runs its multi-row writes in a single transaction.
package repository

import (
	"errors"

	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when the requested row does not exist or is not
	// visible to the caller.
	ErrNotFound = errors.New("record not found")
	// ErrStateChanged is returned when a conditional write matched no row
	// because the record left the expected state.
	ErrStateChanged = errors.New("record state changed")
)

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func page(db *gorm.DB, offset, limit int) *gorm.DB {
	if limit > 0 {
		db = db.Limit(limit)
	}
	if offset > 0 {
		db = db.Offset(offset)
	}
	return db
}
