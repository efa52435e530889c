package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"hivewatch/models"
)

// FileReports is the fallback backend: one JSON array file holding all
// reports, newest first. Good enough to not lose a verified report while the
// database is down; not a database.
type FileReports struct {
	path string
	mu   sync.Mutex
}

func NewFileReports(path string) (*FileReports, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, errors.Wrap(err, "create data dir")
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := os.WriteFile(path, []byte("[]"), 0o644); err != nil {
			return nil, errors.Wrap(err, "init reports file")
		}
	}
	return &FileReports{path: path}, nil
}

func (s *FileReports) readAll() ([]models.Report, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, errors.Wrap(err, "read reports file")
	}
	var out []models.Report
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, errors.Wrap(err, "parse reports file")
	}
	return out, nil
}

func (s *FileReports) Save(ctx context.Context, r models.Report) (models.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	reports, err := s.readAll()
	if err != nil {
		return models.Report{}, err
	}

	if r.ID.IsZero() {
		r.ID = primitive.NewObjectID()
	}
	if r.Timestamp.IsZero() {
		r.Timestamp = time.Now().UTC()
	}

	// Prepend: the file is kept newest-first so reads need no sort.
	reports = append([]models.Report{r}, reports...)

	data, err := json.MarshalIndent(reports, "", "  ")
	if err != nil {
		return models.Report{}, errors.Wrap(err, "encode reports")
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return models.Report{}, errors.Wrap(err, "write reports file")
	}
	return r, nil
}

func (s *FileReports) ListAll(ctx context.Context) ([]models.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readAll()
}
