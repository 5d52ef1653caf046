// Package kv holds the durable key/value backends used for the session record.
package kv

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotFound is returned by Get when the key is absent.
var ErrNotFound = errors.New("kv: key not found")

type Storage interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	// Delete removes the key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
	Close() error
}

type Options struct {
	Driver        string
	Dir           string
	RedisAddr     string
	RedisPassword string
	DatabaseURL   string
	SQLitePath    string
}

// Open builds the backend named by opts.Driver.
func Open(ctx context.Context, opts Options) (Storage, error) {
	switch opts.Driver {
	case "memory":
		return NewMemory(), nil
	case "file", "":
		return NewFile(opts.Dir)
	case "redis":
		return NewRedis(ctx, opts.RedisAddr, opts.RedisPassword)
	case "postgres":
		return NewPostgres(ctx, opts.DatabaseURL)
	case "sqlite":
		return NewSQLite(ctx, opts.SQLitePath)
	default:
		return nil, fmt.Errorf("kv: unknown driver %q", opts.Driver)
	}
}
