package service

import (
	"asura/tracker/internal/observability"
	"asura/tracker/internal/repository"
	"asura/tracker/internal/storage"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidState      = errors.New("state must be a JSON object")
	ErrStateNotFound     = errors.New("no state stored for this user")
	ErrExportUnavailable = errors.New("snapshot export is not configured")
	ErrDownloadURLError  = errors.New("failed to generate download URL")
)

const exportContentType = "application/json"

// ExportResult points at an uploaded snapshot of a user's document.
type ExportResult struct {
	ObjectKey string    `json:"objectKey"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// StateService stores the opaque activity document of each user. The last
// writer wins; there is no partial update.
type StateService interface {
	// Get returns the stored document, or nil when the user has none.
	Get(ctx context.Context, userID string) ([]byte, error)
	Put(ctx context.Context, userID string, data []byte) error
	Export(ctx context.Context, userID string) (*ExportResult, error)
}

type stateService struct {
	stateRepo repository.StateRepository
	storage   storage.SnapshotStorage
	expiry    time.Duration
	now       func() time.Time
}

// NewStateService wires the state repository. snapshots may be nil, which
// disables Export.
func NewStateService(stateRepo repository.StateRepository, snapshots storage.SnapshotStorage) StateService {
	return &stateService{
		stateRepo: stateRepo,
		storage:   snapshots,
		expiry:    storage.DefaultPresignedURLExpiry,
		now:       time.Now,
	}
}

func (s *stateService) Get(ctx context.Context, userID string) ([]byte, error) {
	data, err := s.stateRepo.Get(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	return data, err
}

func (s *stateService) Put(ctx context.Context, userID string, data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '{' || !json.Valid(data) {
		return ErrInvalidState
	}
	if err := s.stateRepo.Put(ctx, userID, data); err != nil {
		return err
	}
	observability.StateWrites.Inc()
	observability.DocumentBytes.Observe(float64(len(data)))
	return nil
}

// Export uploads the stored document and returns a temporary download URL.
func (s *stateService) Export(ctx context.Context, userID string) (*ExportResult, error) {
	if s.storage == nil {
		return nil, ErrExportUnavailable
	}
	data, err := s.stateRepo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrStateNotFound
		}
		return nil, err
	}

	now := s.now().UTC()
	key := path.Join("exports", userID, fmt.Sprintf("%s-%s.json", now.Format("20060102T150405Z"), uuid.NewString()))
	if err := s.storage.PutObject(ctx, key, exportContentType, data); err != nil {
		return nil, fmt.Errorf("upload snapshot: %w", err)
	}
	url, err := s.storage.GeneratePresignedDownloadURL(ctx, key, s.expiry)
	if err != nil {
		return nil, ErrDownloadURLError
	}
	return &ExportResult{ObjectKey: key, URL: url, ExpiresAt: now.Add(s.expiry)}, nil
}
