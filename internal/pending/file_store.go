package pending

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/coachhub/coachhub-api/internal/models"
	apperrors "github.com/coachhub/coachhub-api/pkg/errors"
)

// FileStore keeps one JSON file per user in a directory, so a marker saved by
// one process can be read back by a later one on the same machine
type FileStore struct {
	dir string
	ttl time.Duration
	now func() time.Time
}

var _ Store = (*FileStore)(nil)

type fileMarker struct {
	models.PendingBooking
	ExpiresAt time.Time `json:"expiresAt"`
}

// DefaultFileDir is <user config dir>/coachhub/pendingBooking
func DefaultFileDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate user config directory: %w", err)
	}
	return filepath.Join(base, "coachhub", "pendingBooking"), nil
}

// NewFileStore creates dir if needed
func NewFileStore(dir string, ttl time.Duration) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create marker directory: %w", err)
	}
	return &FileStore{dir: dir, ttl: ttlOrDefault(ttl), now: time.Now}, nil
}

func (s *FileStore) path(userID int64) string {
	return filepath.Join(s.dir, strconv.FormatInt(userID, 10)+".json")
}

// Save writes the marker, replacing any previous one
func (s *FileStore) Save(_ context.Context, userID int64, marker models.PendingBooking) (err error) {
	defer func() { record("save", err) }()

	data, err := json.Marshal(fileMarker{PendingBooking: marker, ExpiresAt: s.now().Add(s.ttl)})
	if err != nil {
		return fmt.Errorf("failed to marshal pending booking: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, ".marker-*")
	if err != nil {
		return fmt.Errorf("failed to save pending booking: %w", err)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck // gone after a successful rename

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to save pending booking: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to save pending booking: %w", err)
	}
	if err = os.Rename(tmp.Name(), s.path(userID)); err != nil {
		return fmt.Errorf("failed to save pending booking: %w", err)
	}
	return nil
}

// Get reads the marker back. Expired markers are removed and reported as not found.
func (s *FileStore) Get(_ context.Context, userID int64) (*models.PendingBooking, error) {
	data, err := os.ReadFile(s.path(userID))
	if errors.Is(err, fs.ErrNotExist) {
		record("get", nil)
		return nil, apperrors.NotFoundError("pending booking")
	}
	record("get", err)
	if err != nil {
		return nil, fmt.Errorf("failed to get pending booking: %w", err)
	}

	var stored fileMarker
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, fmt.Errorf("failed to unmarshal pending booking: %w", err)
	}

	if !s.now().Before(stored.ExpiresAt) {
		_ = os.Remove(s.path(userID))
		return nil, apperrors.NotFoundError("pending booking")
	}

	marker := stored.PendingBooking
	return &marker, nil
}

// Delete removes the marker; deleting a missing marker is not an error
func (s *FileStore) Delete(_ context.Context, userID int64) error {
	err := os.Remove(s.path(userID))
	if errors.Is(err, fs.ErrNotExist) {
		err = nil
	}
	record("delete", err)
	if err != nil {
		return fmt.Errorf("failed to delete pending booking: %w", err)
	}
	return nil
}

// Ping checks the directory is still there
func (s *FileStore) Ping(context.Context) error {
	_, err := os.Stat(s.dir)
	return err
}
