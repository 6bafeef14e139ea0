package models

import (
	"fmt"
	"time"
)

// Change is the serialized prior value of one changed field.
type Change struct {
	Previous any  `json:"previous"`
	Existed  bool `json:"existed"`
}

// RecordState - сериализуемое состояние записи для локального хранилища
// (staging между запусками CLI).
type RecordState struct {
	StagedAt time.Time         `json:"staged_at"`
	Fields   map[string]any    `json:"fields"`
	Changes  map[string]Change `json:"changes,omitempty"`
	Key      string            `json:"key"`      // локальный ключ staging
	Resource string            `json:"resource"` // имя коллекции ("projects")
	Deleted  bool              `json:"deleted"`
	Internal bool              `json:"internal"`
}

// State returns the serializable form of the record. The key is left to the caller.
func (r *Record) State() (*RecordState, error) {
	if r.schema == nil {
		return nil, ErrNoSchema
	}
	st := &RecordState{
		Resource: r.schema.Name,
		Fields:   r.Export(),
		Deleted:  r.deleted,
		Internal: r.internal,
	}
	if len(r.changes) > 0 {
		st.Changes = make(map[string]Change, len(r.changes))
		for name, p := range r.changes {
			st.Changes[name] = Change{Previous: cloneValue(p.value), Existed: p.existed}
		}
	}
	return st, nil
}

// Restore rebuilds a record from its serialized state.
func Restore(st *RecordState) (*Record, error) {
	if st == nil {
		return nil, fmt.Errorf("restore: nil state")
	}
	schema, err := Lookup(st.Resource)
	if err != nil {
		return nil, fmt.Errorf("restore %s: %w", st.Key, err)
	}

	r := NewRecord(schema, st.Fields)
	r.internal = st.Internal
	r.deleted = st.Deleted
	for name, c := range st.Changes {
		r.changes[name] = prior{value: cloneValue(c.Previous), existed: c.Existed}
	}
	return r, nil
}
