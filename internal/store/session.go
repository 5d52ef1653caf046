package store

import (
	"context"
	"encoding/json"
	"errors"

	"servigest/internal/kv"
	"servigest/internal/model"
)

// SessionKey is the storage key holding the serialized current user.
const SessionKey = "servigest_user"

var errCorruptSession = errors.New("corrupt session record")

// loadSession returns nil when no record exists.
func loadSession(ctx context.Context, s kv.Storage) (*model.User, error) {
	b, err := s.Get(ctx, SessionKey)
	if errors.Is(err, kv.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var u model.User
	if err := json.Unmarshal(b, &u); err != nil || u.ID == "" {
		return nil, errCorruptSession
	}
	return &u, nil
}

func saveSession(ctx context.Context, s kv.Storage, u model.User) error {
	b, err := json.Marshal(u)
	if err != nil {
		return err
	}
	return s.Set(ctx, SessionKey, b)
}

func clearSession(ctx context.Context, s kv.Storage) error {
	return s.Delete(ctx, SessionKey)
}
