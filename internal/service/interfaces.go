// Package service defines the interfaces for all application services.
package service

import (
	"context"
)

// Storage defines the contract for our persistence layer.
//
// Values are opaque blobs stored under string keys. Save overwrites the
// previous value atomically: a concurrent or later Load observes either the
// old blob or the new one, never a mix.
type Storage interface {
	// Load returns the blob saved under key. The boolean is false when the
	// key has never been saved.
	Load(ctx context.Context, key string) ([]byte, bool, error)
	Save(ctx context.Context, key string, blob []byte) error
	Close() error
}
