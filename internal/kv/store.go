package kv

import (
	"context"
	"errors"
)

var (
	ErrNotFound      = errors.New("kv: key not found")
	ErrQuotaExceeded = errors.New("kv: quota exceeded")
)

// Store is a flat key-value store holding opaque values. Each key is written
// whole; there are no partial writes.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
}
