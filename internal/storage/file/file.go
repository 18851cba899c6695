// Package file persists snapshots as JSON files, best-effort overwrite per
// collection. Missing or corrupted files degrade to empty collections instead
// of failing startup.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/zorofrizzy/breatheBack/internal/domain"
	"github.com/zorofrizzy/breatheBack/pkg/e"
)

const (
	zonesFile  = "zones.json"
	pointsFile = "user_points.json"
	eventsFile = "events.json"
)

type Storage struct {
	dir    string
	logger *slog.Logger
}

func New(dir string, logger *slog.Logger) (*Storage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, e.Wrap("storage.file.New", err)
	}
	return &Storage{dir: dir, logger: logger}, nil
}

func (s *Storage) SaveZones(ctx context.Context, zones []domain.Zone) error {
	const op = "storage.file.SaveZones"

	for i := range zones {
		if err := zones[i].Validate(); err != nil {
			return e.Wrap(op, err)
		}
	}
	return s.write(op, zonesFile, zones)
}

func (s *Storage) LoadZones(ctx context.Context) ([]domain.Zone, error) {
	var zones []domain.Zone
	if ok := s.read("storage.file.LoadZones", zonesFile, &zones); !ok {
		return []domain.Zone{}, nil
	}
	for i := range zones {
		if err := zones[i].Validate(); err != nil {
			s.logger.Warn("dropping invalid zones snapshot", slog.Any("error", err))
			return []domain.Zone{}, nil
		}
	}
	return zones, nil
}

func (s *Storage) SaveUserPoints(ctx context.Context, points domain.UserPoints) error {
	const op = "storage.file.SaveUserPoints"

	if err := points.Validate(); err != nil {
		return e.Wrap(op, err)
	}
	return s.write(op, pointsFile, points)
}

func (s *Storage) LoadUserPoints(ctx context.Context) (*domain.UserPoints, error) {
	var points domain.UserPoints
	if ok := s.read("storage.file.LoadUserPoints", pointsFile, &points); !ok {
		return nil, nil
	}
	if err := points.Validate(); err != nil {
		s.logger.Warn("dropping invalid points snapshot", slog.Any("error", err))
		return nil, nil
	}
	return &points, nil
}

func (s *Storage) SaveEvents(ctx context.Context, events []domain.CommunityEvent) error {
	const op = "storage.file.SaveEvents"

	for i := range events {
		if err := events[i].Validate(); err != nil {
			return e.Wrap(op, err)
		}
	}
	return s.write(op, eventsFile, events)
}

func (s *Storage) LoadEvents(ctx context.Context) ([]domain.CommunityEvent, error) {
	var events []domain.CommunityEvent
	if ok := s.read("storage.file.LoadEvents", eventsFile, &events); !ok {
		return []domain.CommunityEvent{}, nil
	}
	return events, nil
}

func (s *Storage) Reset(ctx context.Context) error {
	const op = "storage.file.Reset"

	for _, name := range []string{zonesFile, pointsFile, eventsFile} {
		if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !errors.Is(err, os.ErrNotExist) {
			return e.Wrap(op, err)
		}
	}
	return nil
}

func (s *Storage) write(op, name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return e.Wrap(op, err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return e.Wrap(op, err)
	}
	return nil
}

// read reports whether v was populated. Missing and corrupted files both come
// back false; corruption is logged, never fatal.
func (s *Storage) read(op, name string, v any) bool {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.logger.Warn("snapshot read failed", slog.String("op", op), slog.Any("error", err))
		}
		return false
	}
	if err := json.Unmarshal(data, v); err != nil {
		s.logger.Warn("corrupted snapshot, starting empty", slog.String("op", op), slog.String("file", name), slog.Any("error", err))
		return false
	}
	return true
}
