package models

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/iudanet/goawx/internal/endpoint"
	"github.com/iudanet/goawx/internal/validation"
)

// prior хранит значение поля до последнего изменения.
// existed=false означает, что поля до изменения не было.
type prior struct {
	value   any
	existed bool
}

// Record is the client-side tracked representation of one remote entity.
//
// Record is not safe for concurrent use. It may belong to at most one
// write-back queue at a time (see Attach).
type Record struct {
	schema   *Schema
	fields   map[string]any
	changes  map[string]prior
	owner    any
	deleted  bool
	internal bool
}

// NewRecord создает черновик (internal=false) с начальными значениями полей.
// Начальные значения не считаются изменениями.
func NewRecord(schema *Schema, initial map[string]any) *Record {
	return &Record{
		schema:  schema,
		fields:  cloneMap(nonNil(initial)),
		changes: make(map[string]prior),
	}
}

// Hydrate создает запись из ответа сервера (internal=true).
func Hydrate(schema *Schema, payload map[string]any) *Record {
	r := NewRecord(schema, payload)
	r.internal = true
	return r
}

func nonNil(m map[string]any) map[string]any {
	if m == nil {
		return map[string]any{}
	}
	return m
}

// Schema returns the type-level description of the record.
func (r *Record) Schema() *Schema {
	return r.schema
}

// Endpoint returns the collection endpoint of the record type, or "" without a schema.
func (r *Record) Endpoint() string {
	if r.schema == nil {
		return ""
	}
	return r.schema.Endpoint
}

// InstanceEndpoint returns collection/id when the record has an id and the
// collection endpoint otherwise.
func (r *Record) InstanceEndpoint() string {
	id, _ := r.ID()
	return endpoint.Join(r.Endpoint(), id)
}

// Get returns the current value of a field.
func (r *Record) Get(name string) (any, bool) {
	v, ok := r.fields[name]
	return cloneValue(v), ok
}

// ID возвращает текстовое представление поля id.
// JSON числа выводятся без дробной части; null и пустая строка означают отсутствие id.
func (r *Record) ID() (string, bool) {
	v, ok := r.fields["id"]
	if !ok || v == nil {
		return "", false
	}
	var s string
	switch id := v.(type) {
	case string:
		s = id
	case float64:
		if i, ok := validation.FloatToInt64(id); ok {
			s = strconv.FormatInt(i, 10)
		} else {
			s = strconv.FormatFloat(id, 'f', -1, 64)
		}
	case json.Number:
		s = id.String()
	default:
		s = fmt.Sprint(id)
	}
	return s, s != ""
}

// Set записывает значение поля через проверку типа и допустимых значений.
// Неизвестные и read-only поля отклоняются до валидации.
func (r *Record) Set(name string, value any) error {
	if r.schema == nil {
		return ErrNoSchema
	}
	field, ok := r.schema.Field(name)
	if !ok {
		return &FieldError{Field: name, Err: ErrUnknownField}
	}
	if field.ReadOnly {
		return &FieldError{Field: name, Err: ErrReadOnlyField}
	}
	return validation.SetField(name, value, field.Kind, field.Allowed, r.setField)
}

// setField безусловно перезаписывает поле и запоминает предыдущее значение.
func (r *Record) setField(name string, value any) {
	old, existed := r.fields[name]
	r.changes[name] = prior{value: old, existed: existed}
	r.fields[name] = cloneValue(value)
}

// Revert restores the value a field had before its most recent edit.
// Fields without a pending change are left alone.
func (r *Record) Revert(name string) {
	p, ok := r.changes[name]
	if !ok {
		return
	}
	if p.existed {
		r.fields[name] = p.value
	} else {
		delete(r.fields, name)
	}
	delete(r.changes, name)
}

// MarkDeleted помечает запись на удаление. Флаг никогда не сбрасывается.
func (r *Record) MarkDeleted() {
	r.deleted = true
}

func (r *Record) IsDeleted() bool {
	return r.deleted
}

// IsChanged reports whether the record has uncommitted local edits.
func (r *Record) IsChanged() bool {
	return len(r.changes) > 0
}

// IsInternal reports whether the snapshot originated from a server response.
func (r *Record) IsInternal() bool {
	return r.internal
}

// Flush forgets pending changes. Fields and the deleted flag are untouched.
func (r *Record) Flush() {
	r.changes = make(map[string]prior)
}

// Export returns a deep copy of the current fields.
func (r *Record) Export() map[string]any {
	return cloneMap(r.fields)
}

// PendingChanges returns the prior value of every changed field.
// Fields that did not exist before the edit are reported as nil.
func (r *Record) PendingChanges() map[string]any {
	out := make(map[string]any, len(r.changes))
	for name, p := range r.changes {
		out[name] = cloneValue(p.value)
	}
	return out
}

// Changed returns the names of changed fields, sorted.
func (r *Record) Changed() []string {
	names := make([]string, 0, len(r.changes))
	for name := range r.changes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ApplyServerUpdate merges payload into the fields by key. Fields absent
// from payload keep their current values.
func (r *Record) ApplyServerUpdate(payload map[string]any) {
	for k, v := range payload {
		r.fields[k] = cloneValue(v)
	}
}

// Attach binds the record to a queue. A record attached to a different
// owner is rejected with ErrRecordQueued.
func (r *Record) Attach(owner any) error {
	if owner == nil {
		return fmt.Errorf("attach: nil owner")
	}
	if r.owner != nil && r.owner != owner {
		return ErrRecordQueued
	}
	r.owner = owner
	return nil
}

// Detach releases the record if it is bound to owner.
func (r *Record) Detach(owner any) {
	if r.owner == owner {
		r.owner = nil
	}
}

// Attached reports whether the record currently belongs to owner.
func (r *Record) Attached(owner any) bool {
	return r.owner != nil && r.owner == owner
}
