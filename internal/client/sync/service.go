package sync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/goawx/internal/client/api"
	"github.com/iudanet/goawx/internal/client/storage"
	"github.com/iudanet/goawx/internal/client/writeback"
	"github.com/iudanet/goawx/internal/models"
)

//go:generate moq -out service_mock.go . Service

// Service определяет интерфейс для sync.Service
type Service interface {
	// Stage сохраняет запись в локальном staging и возвращает ее ключ
	Stage(ctx context.Context, rec *models.Record) (string, error)

	// Restage перезаписывает запись под существующим ключом, сохраняя позицию
	Restage(ctx context.Context, key string, rec *models.Record) error

	// Unstage удаляет запись из staging без обращения к серверу
	Unstage(ctx context.Context, key string) error

	// Get восстанавливает staged запись по ключу
	Get(ctx context.Context, key string) (*models.Record, error)

	// Staged возвращает все staged записи в порядке commit
	Staged(ctx context.Context) ([]*Entry, error)

	// Commit применяет staged записи на сервере
	Commit(ctx context.Context) (*writeback.Result, error)

	// GetPendingCount возвращает количество записей, ожидающих commit
	GetPendingCount(ctx context.Context) (int, error)

	// LastCommit возвращает время последнего успешного commit (zero, если commit не было)
	LastCommit(ctx context.Context) (time.Time, error)
}

// Entry - staged запись вместе с ее ключом
type Entry struct {
	StagedAt time.Time
	Record   *models.Record
	Key      string
}

// service переносит записи между CLI запусками через локальное хранилище
// и отдает их writeback очереди при commit
type service struct {
	writer          *writeback.Service
	stagingStorage  storage.StagingStorage
	metadataStorage storage.MetadataStorage
	logger          *slog.Logger
	now             func() time.Time
}

// NewService creates a new sync service
func NewService(
	apiClient api.ClientAPI,
	stagingStorage storage.StagingStorage,
	metadataStorage storage.MetadataStorage,
	logger *slog.Logger,
) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &service{
		writer:          writeback.NewService(apiClient, logger),
		stagingStorage:  stagingStorage,
		metadataStorage: metadataStorage,
		logger:          logger,
		now:             time.Now,
	}
}

// Key returns the staging key of a record: "projects/7" for a record with an id
// and "projects/~<uuid>" for a draft.
func Key(rec *models.Record) string {
	if id, ok := rec.ID(); ok {
		return rec.Schema().Name + "/" + id
	}
	return rec.Schema().Name + "/~" + uuid.NewString()
}

func (s *service) Stage(ctx context.Context, rec *models.Record) (string, error) {
	if rec == nil || rec.Schema() == nil {
		return "", writeback.ErrInvalidModel
	}
	key := Key(rec)
	if err := s.save(ctx, key, rec); err != nil {
		return "", err
	}
	s.logger.Debug("Record staged", "key", key, "changed", rec.Changed(), "deleted", rec.IsDeleted())
	return key, nil
}

func (s *service) Restage(ctx context.Context, key string, rec *models.Record) error {
	if rec == nil || rec.Schema() == nil {
		return writeback.ErrInvalidModel
	}
	if _, err := s.stagingStorage.GetStaged(ctx, key); err != nil {
		return fmt.Errorf("failed to get staged record %s: %w", key, err)
	}
	return s.save(ctx, key, rec)
}

func (s *service) save(ctx context.Context, key string, rec *models.Record) error {
	state, err := rec.State()
	if err != nil {
		return fmt.Errorf("failed to serialize record: %w", err)
	}
	state.Key = key
	state.StagedAt = s.now().UTC()

	if err := s.stagingStorage.SaveStaged(ctx, state); err != nil {
		return fmt.Errorf("failed to stage record %s: %w", key, err)
	}
	return nil
}

func (s *service) Unstage(ctx context.Context, key string) error {
	if err := s.stagingStorage.DeleteStaged(ctx, key); err != nil {
		return fmt.Errorf("failed to unstage %s: %w", key, err)
	}
	return nil
}

func (s *service) Get(ctx context.Context, key string) (*models.Record, error) {
	state, err := s.stagingStorage.GetStaged(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to get staged record %s: %w", key, err)
	}
	return models.Restore(state)
}

func (s *service) Staged(ctx context.Context) ([]*Entry, error) {
	states, err := s.stagingStorage.ListStaged(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list staged records: %w", err)
	}

	entries := make([]*Entry, 0, len(states))
	for _, state := range states {
		rec, err := models.Restore(state)
		if err != nil {
			return nil, err
		}
		entries = append(entries, &Entry{Key: state.Key, StagedAt: state.StagedAt, Record: rec})
	}
	return entries, nil
}

// Commit восстанавливает staged записи в writeback очередь и применяет их.
// После успеха staging очищается. При сбое из staging удаляются только
// записи, уже примененные на сервере; остальные ждут следующего commit.
func (s *service) Commit(ctx context.Context) (*writeback.Result, error) {
	entries, err := s.Staged(ctx)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Collected staged records", "count", len(entries))

	queue := writeback.NewQueue()
	for _, e := range entries {
		if err := queue.Enqueue(e.Record); err != nil {
			return nil, fmt.Errorf("failed to enqueue %s: %w", e.Key, err)
		}
	}

	result, err := s.writer.Commit(ctx, queue)
	if err != nil {
		var commitErr *writeback.CommitError
		if errors.As(err, &commitErr) {
			s.unstageCommitted(ctx, entries[:commitErr.Committed])
		}
		return result, err
	}

	if err := s.stagingStorage.ClearStaged(ctx); err != nil {
		return result, fmt.Errorf("commit succeeded but staging was not cleared: %w", err)
	}

	// Ошибка сохранения timestamp не отменяет commit
	if err := s.metadataStorage.SaveLastCommitTimestamp(ctx, s.now().Unix()); err != nil {
		s.logger.Warn("Failed to save last commit timestamp", "error", err)
	}

	return result, nil
}

func (s *service) unstageCommitted(ctx context.Context, committed []*Entry) {
	for _, e := range committed {
		if err := s.stagingStorage.DeleteStaged(ctx, e.Key); err != nil {
			s.logger.Warn("Failed to unstage committed record", "key", e.Key, "error", err)
		}
	}
}

func (s *service) GetPendingCount(ctx context.Context) (int, error) {
	states, err := s.stagingStorage.ListStaged(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get pending records: %w", err)
	}
	return len(states), nil
}

func (s *service) LastCommit(ctx context.Context) (time.Time, error) {
	ts, err := s.metadataStorage.GetLastCommitTimestamp(ctx)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to get last commit timestamp: %w", err)
	}
	if ts == 0 {
		return time.Time{}, nil
	}
	return time.Unix(ts, 0), nil
}
