package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Davie521/LeagueSwissStageProbability/repositories"
)

// StandingsBroadcaster pushes stage updates to connected live-feed clients.
// Implemented by the websocket hub; nil disables broadcasting.
type StandingsBroadcaster interface {
	Broadcast(messageType string, payload interface{})
}

const standingsUpdatedMessage = "STANDINGS_UPDATED"

type MatchService interface {
	RecordResult(ctx context.Context, matchID int, winner string) (*StandingsView, error)
}

type matchService struct {
	matchRepo repositories.MatchRepository
	stages    StageService
	hub       StandingsBroadcaster
	logger    *slog.Logger
}

func NewMatchService(matchRepo repositories.MatchRepository, stages StageService, hub StandingsBroadcaster, logger *slog.Logger) MatchService {
	return &matchService{
		matchRepo: matchRepo,
		stages:    stages,
		hub:       hub,
		logger:    logger,
	}
}

// RecordResult decides a pending match and broadcasts the refreshed
// standings. The winner is matched case-insensitively against the pairing and
// stored in its canonical casing.
func (s *matchService) RecordResult(ctx context.Context, matchID int, winner string) (*StandingsView, error) {
	match, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to load match %d: %w", matchID, err)
	}
	if match.Decided() {
		return nil, ErrMatchAlreadyDecided
	}

	var canonical string
	switch {
	case strings.EqualFold(winner, match.TeamA):
		canonical = match.TeamA
	case strings.EqualFold(winner, match.TeamB):
		canonical = match.TeamB
	default:
		return nil, fmt.Errorf("%w: %q is not in %s", ErrWinnerNotInMatch, winner, match.Key())
	}

	if err := s.matchRepo.RecordResult(ctx, matchID, canonical); err != nil {
		switch {
		case errors.Is(err, repositories.ErrMatchNotFound):
			return nil, ErrMatchNotFound
		case errors.Is(err, repositories.ErrMatchAlreadyDecided):
			return nil, ErrMatchAlreadyDecided
		}
		return nil, fmt.Errorf("failed to record result for match %d: %w", matchID, err)
	}
	s.logger.Info("match result recorded",
		slog.Int("match_id", matchID),
		slog.String("match", match.Key()),
		slog.String("winner", canonical),
	)

	standings, err := s.stages.Standings(ctx)
	if err != nil {
		return nil, fmt.Errorf("result recorded but standings reload failed: %w", err)
	}
	if s.hub != nil {
		s.hub.Broadcast(standingsUpdatedMessage, standings)
	}
	return standings, nil
}
