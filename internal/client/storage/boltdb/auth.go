package boltdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.etcd.io/bbolt"

	"github.com/iudanet/goawx/internal/client/storage"
)

// В bucket auth хранится одна сессия: последний успешный login
var sessionKey = []byte("session")

var errAuthBucketMissing = errors.New("auth bucket not found")

func authBucket(tx *bbolt.Tx) (*bbolt.Bucket, error) {
	b := tx.Bucket(bucketAuth)
	if b == nil {
		return nil, errAuthBucketMissing
	}
	return b, nil
}

// SaveAuth заменяет текущую сессию.
// URL приводится к виду без завершающего "/", ExpiresAt вычисляется из
// Expires, если сервер вернул только RFC3339 строку.
func (s *Storage) SaveAuth(ctx context.Context, auth *storage.AuthData) error {
	if auth == nil || auth.Token == "" || strings.TrimSpace(auth.URL) == "" {
		return fmt.Errorf("%w: url and token are required", storage.ErrInvalidSession)
	}

	session := *auth
	session.URL = strings.TrimRight(strings.TrimSpace(session.URL), "/")
	if session.ExpiresAt == 0 && session.Expires != "" {
		exp, err := time.Parse(time.RFC3339, session.Expires)
		if err != nil {
			return fmt.Errorf("%w: expires %q: %w", storage.ErrInvalidSession, session.Expires, err)
		}
		session.ExpiresAt = exp.Unix()
	}

	data, err := json.Marshal(&session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		b, err := authBucket(tx)
		if err != nil {
			return err
		}
		if err := b.Put(sessionKey, data); err != nil {
			return fmt.Errorf("failed to save session: %w", err)
		}
		return nil
	})
}

// GetAuth returns the stored session or storage.ErrAuthNotFound.
func (s *Storage) GetAuth(ctx context.Context) (*storage.AuthData, error) {
	var session storage.AuthData

	err := s.db.View(func(tx *bbolt.Tx) error {
		b, err := authBucket(tx)
		if err != nil {
			return err
		}
		data := b.Get(sessionKey)
		if data == nil {
			return storage.ErrAuthNotFound
		}
		if err := json.Unmarshal(data, &session); err != nil {
			return fmt.Errorf("failed to unmarshal session: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// DeleteAuth удаляет сессию. Отсутствие сессии - storage.ErrAuthNotFound.
func (s *Storage) DeleteAuth(ctx context.Context) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b, err := authBucket(tx)
		if err != nil {
			return err
		}
		if b.Get(sessionKey) == nil {
			return storage.ErrAuthNotFound
		}
		return b.Delete(sessionKey)
	})
}

// IsAuthenticated reports whether a session exists and its token has not expired.
func (s *Storage) IsAuthenticated(ctx context.Context) (bool, error) {
	session, err := s.GetAuth(ctx)
	if errors.Is(err, storage.ErrAuthNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return session.ExpiresAt == 0 || s.now().Unix() < session.ExpiresAt, nil
}
