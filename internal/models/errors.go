package models

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownField is returned when a field is not declared by the record schema
	ErrUnknownField = errors.New("unknown field")

	// ErrReadOnlyField is returned when a caller tries to write a server-managed field
	ErrReadOnlyField = errors.New("field is read-only")

	// ErrRecordQueued is returned when a record already belongs to another write-back queue
	ErrRecordQueued = errors.New("record already belongs to another queue")

	// ErrNoSchema is returned for records constructed without a schema
	ErrNoSchema = errors.New("record has no schema")
)

// FieldError связывает ошибку записи с именем поля
type FieldError struct {
	Err   error
	Field string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %q: %v", e.Field, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// UnknownResourceError is returned by Lookup for names outside the catalogue.
type UnknownResourceError struct {
	Name string
}

func (e *UnknownResourceError) Error() string {
	return fmt.Sprintf("unknown resource %q", e.Name)
}
