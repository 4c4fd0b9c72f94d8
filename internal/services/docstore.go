package services

import (
	"context"

	"priestconnect-api/internal/domain"
	"priestconnect-api/internal/store"
)

// DocStore is the slice of the data-access layer the services need. The
// concrete *store.Store satisfies it; tests use an in-memory fake.
type DocStore interface {
	Create(ctx context.Context, collection string, doc any) (string, error)
	Update(ctx context.Context, collection, id string, partial any) error
	Get(ctx context.Context, collection, id string) (store.Document, error)
	Query(ctx context.Context, collection string, preds []domain.Predicate) ([]store.Document, error)
	QueryOne(ctx context.Context, collection string, preds []domain.Predicate) (store.Document, error)
}
