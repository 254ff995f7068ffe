package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/Davie521/LeagueSwissStageProbability/storage"
)

// SnapshotInfo describes one exported standings snapshot.
type SnapshotInfo struct {
	Key      string    `json:"key"`
	Location string    `json:"location"`
	TakenAt  time.Time `json:"taken_at"`
}

// SnapshotService serializes the current standings and uploads them to
// object storage for external consumers.
type SnapshotService interface {
	Export(ctx context.Context) (*SnapshotInfo, error)
}

type snapshotService struct {
	stages   StageService
	uploader storage.FileUploader
	logger   *slog.Logger
	now      func() time.Time
}

func NewSnapshotService(stages StageService, uploader storage.FileUploader, logger *slog.Logger) SnapshotService {
	return &snapshotService{
		stages:   stages,
		uploader: uploader,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *snapshotService) Export(ctx context.Context) (*SnapshotInfo, error) {
	if s.uploader == nil {
		return nil, ErrSnapshotsDisabled
	}

	standings, err := s.stages.Standings(ctx)
	if err != nil {
		return nil, err
	}

	takenAt := s.now().UTC()
	payload := struct {
		TakenAt   time.Time      `json:"taken_at"`
		Standings *StandingsView `json:"standings"`
	}{TakenAt: takenAt, Standings: standings}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize standings snapshot: %w", err)
	}

	key := fmt.Sprintf("snapshots/standings-%s.json", takenAt.Format("20060102-150405"))
	result, err := s.uploader.Upload(ctx, key, "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to upload standings snapshot: %w", err)
	}
	s.logger.Info("standings snapshot exported",
		slog.String("key", result.Key),
		slog.String("location", result.Location),
	)

	return &SnapshotInfo{
		Key:      result.Key,
		Location: result.Location,
		TakenAt:  takenAt,
	}, nil
}
