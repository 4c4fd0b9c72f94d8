package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"priestconnect-api/internal/domain"
	"priestconnect-api/internal/store"
)

// memStore is an in-memory DocStore for service tests. It mirrors the real
// store's contract: ids are assigned on create, updates are shallow JSON
// merges, queries keep insertion order.
type memStore struct {
	mu   sync.Mutex
	seq  int
	docs map[string][]memDoc
}

type memDoc struct {
	id   string
	body map[string]any
}

func newMemStore() *memStore {
	return &memStore{docs: map[string][]memDoc{}}
}

func toBody(doc any) (map[string]any, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var body map[string]any
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, err
	}
	return body, nil
}

func (m *memStore) Create(_ context.Context, collection string, doc any) (string, error) {
	body, err := toBody(doc)
	if err != nil {
		return "", domain.ValidationError{Msg: "document not serializable", Err: err}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	id := fmt.Sprintf("%s-%d", collection, m.seq)
	m.docs[collection] = append(m.docs[collection], memDoc{id: id, body: body})
	return id, nil
}

func (m *memStore) Update(_ context.Context, collection, id string, partial any) error {
	patch, err := toBody(partial)
	if err != nil {
		return domain.ValidationError{Msg: "patch not serializable", Err: err}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.docs[collection] {
		if m.docs[collection][i].id != id {
			continue
		}
		for k, v := range patch {
			m.docs[collection][i].body[k] = v
		}
		return nil
	}
	return domain.NotFoundError{Resource: collection + " record"}
}

func (d memDoc) document() store.Document {
	body := map[string]any{}
	for k, v := range d.body {
		body[k] = v
	}
	body["id"] = d.id
	raw, _ := json.Marshal(body)
	return store.Document{ID: d.id, Data: raw}
}

func (m *memStore) Get(_ context.Context, collection, id string) (store.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, d := range m.docs[collection] {
		if d.id == id {
			return d.document(), nil
		}
	}
	return store.Document{}, domain.NotFoundError{Resource: collection + " record"}
}

func matches(d memDoc, p domain.Predicate) bool {
	got := d.body[p.Field]
	switch p.Op {
	case "eq":
		return fmt.Sprint(got) == fmt.Sprint(p.Value)
	case "like":
		s, ok := got.(string)
		return ok && strings.Contains(strings.ToLower(s), strings.ToLower(fmt.Sprint(p.Value)))
	case "contains":
		arr, ok := got.([]any)
		if !ok {
			return false
		}
		for _, v := range arr {
			if fmt.Sprint(v) == fmt.Sprint(p.Value) {
				return true
			}
		}
		return false
	}
	return false
}

func (m *memStore) Query(_ context.Context, collection string, preds []domain.Predicate) ([]store.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []store.Document
outer:
	for _, d := range m.docs[collection] {
		for _, p := range preds {
			if !matches(d, p) {
				continue outer
			}
		}
		out = append(out, d.document())
	}
	return out, nil
}

func (m *memStore) QueryOne(ctx context.Context, collection string, preds []domain.Predicate) (store.Document, error) {
	docs, err := m.Query(ctx, collection, preds)
	if err != nil {
		return store.Document{}, err
	}
	if len(docs) == 0 {
		return store.Document{}, domain.NotFoundError{Resource: collection + " record"}
	}
	return docs[0], nil
}

var _ DocStore = (*memStore)(nil)
