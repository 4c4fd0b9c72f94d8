package store

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/google/uuid"

	"priestconnect-api/internal/domain"
)

// Collection names. Records are schemaless JSON documents plus a
// store-assigned id, grouped under these logical names.
const (
	Users               = "users"
	PriestProfiles      = "priestProfiles"
	InstitutionProfiles = "institutionProfiles"
	Availability        = "availability"
	Bookings            = "bookings"
)

// Document is one record as the store returns it: the JSON body with the id
// already injected under "id".
type Document struct {
	ID   string
	Data json.RawMessage
}

// Decode unmarshals the document into dst.
func (d Document) Decode(dst any) error {
	return json.Unmarshal(d.Data, dst)
}

// DecodeAll unmarshals a result set into a slice of T.
func DecodeAll[T any](docs []Document) ([]T, error) {
	out := make([]T, 0, len(docs))
	for _, d := range docs {
		var v T
		if err := d.Decode(&v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// Store provides uniform CRUD and subscribe operations over named
// collections backed by a single documents table.
type Store struct {
	DB  *sql.DB
	hub *hub

	// NewID is swappable for tests; defaults to uuid.
	NewID func() string
}

func New(db *sql.DB) *Store {
	return &Store{
		DB:    db,
		hub:   newHub(),
		NewID: func() string { return uuid.New().String() },
	}
}

func (s *Store) newID() string {
	if s.NewID != nil {
		return s.NewID()
	}
	return uuid.New().String()
}

// Create assigns a new id, persists the document and returns the stored id.
func (s *Store) Create(ctx context.Context, collection string, doc any) (string, error) {
	body, err := json.Marshal(doc)
	if err != nil {
		return "", domain.ValidationError{Msg: "document not serializable", Err: err}
	}

	id := s.newID()
	_, err = s.DB.ExecContext(ctx,
		`INSERT INTO documents (collection, id, doc) VALUES (?, ?, ?)`,
		collection, id, body,
	)
	if err != nil {
		return "", domain.PersistenceError{Op: "create " + collection, Err: err}
	}

	s.notify(collection)
	return id, nil
}

// Update merges partial fields into an existing document. Absent ids fail
// with NotFoundError.
func (s *Store) Update(ctx context.Context, collection, id string, partial any) error {
	body, err := json.Marshal(partial)
	if err != nil {
		return domain.ValidationError{Msg: "patch not serializable", Err: err}
	}

	var exists int
	err = s.DB.QueryRowContext(ctx,
		`SELECT 1 FROM documents WHERE collection = ? AND id = ? LIMIT 1`,
		collection, id,
	).Scan(&exists)
	if err == sql.ErrNoRows {
		return domain.NotFoundError{Resource: collection + " record"}
	}
	if err != nil {
		return domain.PersistenceError{Op: "update " + collection, Err: err}
	}

	_, err = s.DB.ExecContext(ctx,
		`UPDATE documents SET doc = JSON_MERGE_PATCH(doc, ?) WHERE collection = ? AND id = ?`,
		body, collection, id,
	)
	if err != nil {
		return domain.PersistenceError{Op: "update " + collection, Err: err}
	}

	s.notify(collection)
	return nil
}

// Get loads a single document by id.
func (s *Store) Get(ctx context.Context, collection, id string) (Document, error) {
	var d Document
	err := s.DB.QueryRowContext(ctx,
		`SELECT id, JSON_SET(doc, '$.id', id) FROM documents WHERE collection = ? AND id = ? LIMIT 1`,
		collection, id,
	).Scan(&d.ID, (*[]byte)(&d.Data))
	if err == sql.ErrNoRows {
		return Document{}, domain.NotFoundError{Resource: collection + " record"}
	}
	if err != nil {
		return Document{}, domain.PersistenceError{Op: "get " + collection, Err: err}
	}
	return d, nil
}

// Query returns the current set of documents matching all predicates, in
// stable insertion order.
func (s *Store) Query(ctx context.Context, collection string, preds []domain.Predicate) ([]Document, error) {
	where, args, err := compilePredicates(preds)
	if err != nil {
		return nil, err
	}

	query := `SELECT id, JSON_SET(doc, '$.id', id) FROM documents WHERE collection = ?` +
		where + ` ORDER BY created_at, id`
	rows, err := s.DB.QueryContext(ctx, query, append([]any{collection}, args...)...)
	if err != nil {
		return nil, domain.PersistenceError{Op: "query " + collection, Err: err}
	}
	defer rows.Close()

	var out []Document
	for rows.Next() {
		var d Document
		if err := rows.Scan(&d.ID, (*[]byte)(&d.Data)); err != nil {
			return nil, domain.PersistenceError{Op: "query " + collection, Err: err}
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.PersistenceError{Op: "query " + collection, Err: err}
	}
	return out, nil
}

// QueryOne returns the first match or NotFoundError.
func (s *Store) QueryOne(ctx context.Context, collection string, preds []domain.Predicate) (Document, error) {
	docs, err := s.Query(ctx, collection, preds)
	if err != nil {
		return Document{}, err
	}
	if len(docs) == 0 {
		return Document{}, domain.NotFoundError{Resource: collection + " record"}
	}
	return docs[0], nil
}
