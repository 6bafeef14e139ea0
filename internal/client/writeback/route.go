package writeback

import "github.com/iudanet/goawx/internal/models"

// Action - операция, которую commit выполнит для записи
type Action int

const (
	ActionSkip    Action = iota // запись чистая и уже существует на сервере
	ActionCreate                // POST в коллекцию
	ActionUpdate                // PUT по id
	ActionDelete                // DELETE по id
	ActionDiscard               // удаленный черновик: сервер не трогаем
)

func (a Action) String() string {
	switch a {
	case ActionCreate:
		return "create"
	case ActionUpdate:
		return "update"
	case ActionDelete:
		return "delete"
	case ActionDiscard:
		return "discard"
	}
	return "skip"
}

// Route выбирает операцию для записи. Наличие id, а не флаг internal,
// отличает создание от обновления.
func Route(rec *models.Record) Action {
	_, hasID := rec.ID()
	switch {
	case rec.IsDeleted() && hasID:
		return ActionDelete
	case rec.IsDeleted():
		return ActionDiscard
	case !hasID:
		return ActionCreate
	case rec.IsChanged():
		return ActionUpdate
	}
	return ActionSkip
}
