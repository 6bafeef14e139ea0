package writeback

import (
	"errors"
	"fmt"

	"github.com/iudanet/goawx/internal/models"
)

// ErrInvalidModel is returned when something other than a schema-backed record is enqueued
var ErrInvalidModel = errors.New("invalid model: not a resource record")

// CommitError сообщает о сбое посреди commit.
// Записи до Index уже применены на сервере и удалены из очереди;
// запись Index и все последующие остались в очереди.
type CommitError struct {
	Err       error
	Record    *models.Record
	Action    Action
	Index     int // позиция записи в очереди на момент commit
	Committed int // сколько записей применено до сбоя
}

func (e *CommitError) Error() string {
	return fmt.Sprintf("commit: %s of %s failed at position %d (%d committed): %v",
		e.Action, describe(e.Record), e.Index, e.Committed, e.Err)
}

func (e *CommitError) Unwrap() error {
	return e.Err
}

// Partial reports whether some records had already been committed.
func (e *CommitError) Partial() bool {
	return e.Committed > 0
}

func describe(r *models.Record) string {
	if r == nil || r.Schema() == nil {
		return "record"
	}
	if id, ok := r.ID(); ok {
		return r.Schema().Singular + " " + id
	}
	return "new " + r.Schema().Singular
}
