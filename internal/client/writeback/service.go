package writeback

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/iudanet/goawx/internal/client/api"
	"github.com/iudanet/goawx/internal/models"
)

// Result - итог успешного commit
type Result struct {
	Created   int // создано записей
	Updated   int // обновлено записей
	Deleted   int // удалено на сервере
	Discarded int // удаленных черновиков, закрытых без запроса
	Skipped   int // чистых записей без изменений
}

func (r *Result) add(a Action) {
	switch a {
	case ActionCreate:
		r.Created++
	case ActionUpdate:
		r.Updated++
	case ActionDelete:
		r.Deleted++
	case ActionDiscard:
		r.Discarded++
	default:
		r.Skipped++
	}
}

// Total returns the number of processed records.
func (r *Result) Total() int {
	return r.Created + r.Updated + r.Deleted + r.Discarded + r.Skipped
}

// Service replays queued records against the remote API.
type Service struct {
	client api.ClientAPI
	logger *slog.Logger
}

// NewService creates a new write-back service
func NewService(client api.ClientAPI, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{client: client, logger: logger}
}

// Commit обрабатывает очередь строго по порядку, одна запись за раз.
//
// При ошибке обработка прекращается: примененные записи удаляются из очереди,
// упавшая запись и все последующие остаются в ней, возвращается *CommitError.
// Очередь очищается только если все записи обработаны успешно.
func (s *Service) Commit(ctx context.Context, q *Queue) (*Result, error) {
	records := q.Records()
	result := &Result{}

	s.logger.Info("Starting commit", "records", len(records))

	for i, rec := range records {
		action := Route(rec)
		s.logger.Debug("Routing record", "position", i, "record", describe(rec), "action", action.String())

		if err := s.apply(ctx, rec, action); err != nil {
			q.drop(i)
			s.logger.Error("Commit failed", "record", describe(rec), "action", action.String(),
				"committed", i, "remaining", q.Len(), "error", err)
			return result, &CommitError{
				Err:       err,
				Record:    rec,
				Action:    action,
				Index:     i,
				Committed: i,
			}
		}
		result.add(action)
	}

	q.Clear()

	s.logger.Info("Commit completed",
		"created", result.Created,
		"updated", result.Updated,
		"deleted", result.Deleted,
		"discarded", result.Discarded,
		"skipped", result.Skipped,
	)
	return result, nil
}

func (s *Service) apply(ctx context.Context, rec *models.Record, action Action) error {
	switch action {
	case ActionDelete:
		path := rec.InstanceEndpoint()
		_, err := s.call(ctx, http.MethodDelete, path, nil)
		return err

	case ActionUpdate:
		path := rec.InstanceEndpoint()
		if _, err := s.call(ctx, http.MethodPut, path, rec.Export()); err != nil {
			return err
		}
		rec.Flush()
		return nil

	case ActionCreate:
		path := rec.Endpoint()
		resp, err := s.call(ctx, http.MethodPost, path, rec.Export())
		if err != nil {
			return err
		}
		// create подтверждается только 201, тело другого 2xx не считается новой записью
		if resp.StatusCode != http.StatusCreated {
			return &api.RemoteError{
				Method:     http.MethodPost,
				Path:       path,
				StatusCode: resp.StatusCode,
				Detail:     fmt.Sprintf("expected %d Created", http.StatusCreated),
			}
		}
		payload, err := resp.Object()
		if err != nil {
			return fmt.Errorf("create %s: %w", describe(rec), err)
		}
		rec.ApplyServerUpdate(payload)
		rec.Flush()
		return nil
	}

	// ActionSkip, ActionDiscard: запросов нет
	return nil
}

// call выполняет запрос и превращает любой статус вне 2xx в *api.RemoteError
func (s *Service) call(ctx context.Context, method, path string, body any) (*api.Response, error) {
	resp, err := s.client.Do(ctx, method, path, body)
	if err != nil {
		return nil, err
	}
	if err := resp.Err(method, path); err != nil {
		return nil, err
	}
	return resp, nil
}
