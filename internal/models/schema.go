package models

import (
	"github.com/iudanet/goawx/internal/endpoint"
	"github.com/iudanet/goawx/internal/validation"
	"github.com/iudanet/goawx/pkg/api"
)

// Field описывает одно поле ресурса: имя, тип, допустимые значения и
// признак read-only. Таблицы полей задаются декларативно (см. catalog.go).
type Field struct {
	Allowed  []any           `json:"allowed,omitempty"` // закрытый набор допустимых значений (опционально)
	Name     string          `json:"name"`              // имя поля в JSON API
	Help     string          `json:"help,omitempty"`    // короткое описание для CLI
	Kind     validation.Kind `json:"kind"`              // объявленный тип
	ReadOnly bool            `json:"read_only"`         // поле заполняется только сервером
	Required bool            `json:"required"`          // обязательно при создании
}

// Schema is the type-level description of one resource collection.
type Schema struct {
	fields   map[string]Field
	Name     string // имя коллекции, например "projects"
	Singular string // единственное число, например "project"
	Endpoint string // относительный путь коллекции, например "/api/v2/projects"
	order    []string
}

// NewSchema builds a schema for the collection name with the given fields.
// Later declarations of the same field name override earlier ones.
func NewSchema(name, singular string, fields ...Field) *Schema {
	s := &Schema{
		Name:     name,
		Singular: singular,
		Endpoint: endpoint.Join(api.Prefix, name),
		fields:   make(map[string]Field, len(fields)),
	}
	for _, f := range fields {
		if _, exists := s.fields[f.Name]; !exists {
			s.order = append(s.order, f.Name)
		}
		s.fields[f.Name] = f
	}
	return s
}

// Field returns the declaration of name.
func (s *Schema) Field(name string) (Field, bool) {
	f, ok := s.fields[name]
	return f, ok
}

// Fields returns all declared fields in declaration order.
func (s *Schema) Fields() []Field {
	out := make([]Field, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.fields[name])
	}
	return out
}

// Writable returns the fields a caller may set.
func (s *Schema) Writable() []Field {
	out := make([]Field, 0, len(s.order))
	for _, name := range s.order {
		if f := s.fields[name]; !f.ReadOnly {
			out = append(out, f)
		}
	}
	return out
}
