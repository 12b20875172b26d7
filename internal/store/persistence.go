package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"asura/tracker/internal/domain"
	"asura/tracker/internal/migration"
	"asura/tracker/internal/repository"
	"asura/tracker/internal/seed"

	"github.com/sirupsen/logrus"
)

const (
	// DocumentKey is the key the activity document is stored under.
	DocumentKey = "activity-storage"
	// TokenKey holds the session token of the signed-in user.
	TokenKey = "auth_token"
)

type envelope struct {
	State   json.RawMessage `json:"state"`
	Version int             `json:"version"`
}

// Persistence reads and writes the document through a key-value repository.
type Persistence struct {
	repo    repository.KeyValueRepository
	profile *seed.Profile
	log     logrus.FieldLogger
	now     func() time.Time
}

// NewPersistence returns an adapter whose fallback document and upgrade
// policy come from profile.
func NewPersistence(repo repository.KeyValueRepository, profile *seed.Profile, log logrus.FieldLogger) *Persistence {
	if profile == nil {
		profile = seed.MustLoad(seed.Minimal)
	}
	return &Persistence{repo: repo, profile: profile, log: log, now: time.Now}
}

// Load returns the stored document, migrated to the current version. A
// missing or unreadable record yields the profile's baseline document; Load
// itself never fails.
func (p *Persistence) Load(ctx context.Context) domain.Document {
	raw, err := p.repo.Get(ctx, DocumentKey)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			p.log.WithError(err).Warn("read stored document, using baseline")
		}
		return p.baseline()
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		p.log.WithError(err).Warn("corrupt stored document, using baseline")
		return p.baseline()
	}
	if len(env.State) == 0 || bytes.Equal(env.State, []byte("null")) {
		return p.baseline()
	}
	stored, err := migration.Decode(env.State)
	if err != nil {
		p.log.WithError(err).Warn("corrupt stored document, using baseline")
		return p.baseline()
	}
	doc := migration.Migrate(stored, env.Version, p.profile, p.now())
	if env.Version < migration.CurrentVersion {
		p.log.WithFields(logrus.Fields{"from": env.Version, "to": migration.CurrentVersion}).Info("migrated stored document")
		if err := p.Save(ctx, doc); err != nil {
			p.log.WithError(err).Warn("write migrated document")
		}
	}
	return doc
}

// Save writes the whole document stamped with the current version.
func (p *Persistence) Save(ctx context.Context, d domain.Document) error {
	state, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	raw, err := json.Marshal(envelope{State: state, Version: migration.CurrentVersion})
	if err != nil {
		return fmt.Errorf("encode envelope: %w", err)
	}
	return p.repo.Put(ctx, DocumentKey, raw)
}

func (p *Persistence) baseline() domain.Document {
	return p.profile.Document(p.now())
}
