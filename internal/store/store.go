// Package store is the client-side container of the activity document. Every
// mutation replaces the document and writes it through to local storage.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"asura/tracker/internal/domain"
	"asura/tracker/internal/migration"
	"asura/tracker/internal/observability"

	"github.com/sirupsen/logrus"
)

const saveTimeout = 5 * time.Second

// Store holds the current document. Readers get snapshots; writers replace
// the document under the lock and persist it before releasing it.
type Store struct {
	mu      sync.RWMutex
	doc     domain.Document
	gen     uint64
	persist *Persistence
	log     logrus.FieldLogger
	env     func() domain.Env
}

type Option func(*Store)

// WithEnv overrides the clock and id sources handed to mutations.
func WithEnv(fn func() domain.Env) Option {
	return func(s *Store) { s.env = fn }
}

func WithLogger(log logrus.FieldLogger) Option {
	return func(s *Store) { s.log = log }
}

// New wraps doc. persist may be nil for a purely in-memory store.
func New(doc domain.Document, persist *Persistence, opts ...Option) *Store {
	s := &Store{
		doc:     doc,
		persist: persist,
		log:     logrus.StandardLogger(),
		env:     domain.NewEnv,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open loads the persisted document (falling back to the baseline) and wraps it.
func Open(ctx context.Context, persist *Persistence, opts ...Option) *Store {
	return New(persist.Load(ctx), persist, opts...)
}

// Document returns a copy of the current document.
func (s *Store) Document() domain.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.Clone()
}

// Generation is bumped every time remote state is applied.
func (s *Store) Generation() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.gen
}

// Capture returns the serialized document together with the generation it
// was read at.
func (s *Store) Capture() ([]byte, uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	raw, err := json.Marshal(s.doc)
	if err != nil {
		return nil, 0, fmt.Errorf("serialize document: %w", err)
	}
	return raw, s.gen, nil
}

// Serialize returns the document as pushed to the remote store.
func (s *Store) Serialize() ([]byte, error) {
	raw, _, err := s.Capture()
	return raw, err
}

// Hydrate applies a partial remote document: every top-level key present in
// partial replaces the local one.
func (s *Store) Hydrate(partial migration.StoredDocument) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc = migration.Merge(s.doc, partial)
	s.gen++
	s.save()
}

// HydrateJSON decodes raw and hydrates from it. A JSON null is ignored.
func (s *Store) HydrateJSON(raw []byte) error {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}
	partial, err := migration.Decode(raw)
	if err != nil {
		return err
	}
	if partial.Empty() {
		return nil
	}
	s.Hydrate(partial)
	return nil
}

// Replace swaps in a whole document, e.g. after a reset.
func (s *Store) Replace(doc domain.Document) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc = doc
	s.save()
}

func (s *Store) apply(op string, fn func(d domain.Document, env domain.Env) (domain.Document, bool)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, ok := fn(s.doc, s.env())
	if !ok {
		observability.MutationsTotal.WithLabelValues(op, "ignored").Inc()
		s.log.WithField("op", op).Debug("mutation ignored")
		return false
	}
	observability.MutationsTotal.WithLabelValues(op, "applied").Inc()
	s.doc = next
	s.save()
	return true
}

// save must be called with the write lock held. Failures are logged only;
// the next mutation writes the whole document again.
func (s *Store) save() {
	if s.persist == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()
	if err := s.persist.Save(ctx, s.doc); err != nil {
		observability.PersistFailures.Inc()
		s.log.WithError(err).Warn("persist document")
	}
}
