package mongo

import (
	"context"
	"errors"

	"github.com/axiom-lang/axiom/runlog"
)

// Store implements runlog.Store by delegating to the Mongo client.
type Store struct {
	client Client
}

// NewStore builds a Mongo-backed runlog.Store using the provided client.
func NewStore(client Client) (*Store, error) {
	if client == nil {
		return nil, errors.New("client is required")
	}
	return &Store{client: client}, nil
}

// Append implements runlog.Store.
func (s *Store) Append(ctx context.Context, e *runlog.Event) error {
	return s.client.Append(ctx, e)
}

// List implements runlog.Store.
func (s *Store) List(ctx context.Context, runID string, cursor string, limit int) (runlog.Page, error) {
	return s.client.List(ctx, runID, cursor, limit)
}
