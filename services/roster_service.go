package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Davie521/LeagueSwissStageProbability/models"
	"github.com/Davie521/LeagueSwissStageProbability/repositories"
)

// RosterService seeds the stage before play starts: registering teams and
// scheduling the pairings each round.
type RosterService interface {
	AddTeam(ctx context.Context, name string) (*models.Team, error)
	ScheduleMatch(ctx context.Context, round int, teamA, teamB string) (*models.Match, error)
}

type rosterService struct {
	teamRepo  repositories.TeamRepository
	matchRepo repositories.MatchRepository
	logger    *slog.Logger
}

func NewRosterService(teamRepo repositories.TeamRepository, matchRepo repositories.MatchRepository, logger *slog.Logger) RosterService {
	return &rosterService{
		teamRepo:  teamRepo,
		matchRepo: matchRepo,
		logger:    logger,
	}
}

// AddTeam registers a team under its canonical upper-cased name.
func (s *rosterService) AddTeam(ctx context.Context, name string) (*models.Team, error) {
	canonical := strings.ToUpper(strings.TrimSpace(name))
	if canonical == "" {
		return nil, ErrTeamNameEmpty
	}

	team := &models.Team{Name: canonical}
	if err := s.teamRepo.Create(ctx, team); err != nil {
		if errors.Is(err, repositories.ErrTeamNameConflict) {
			return nil, ErrTeamNameConflict
		}
		return nil, fmt.Errorf("failed to create team %s: %w", canonical, err)
	}
	s.logger.Info("team registered", slog.Int("team_id", team.ID), slog.String("name", team.Name))
	return team, nil
}

// ScheduleMatch creates a pending pairing between two registered teams. Both
// names are resolved through the repository so the stored pairing carries the
// canonical casing.
func (s *rosterService) ScheduleMatch(ctx context.Context, round int, teamA, teamB string) (*models.Match, error) {
	if round < 1 {
		return nil, ErrInvalidRound
	}
	teamA = strings.TrimSpace(teamA)
	teamB = strings.TrimSpace(teamB)
	if teamA == "" || teamB == "" {
		return nil, ErrTeamNameRequired
	}
	if strings.EqualFold(teamA, teamB) {
		return nil, ErrSameTeam
	}

	a, err := s.teamRepo.GetByName(ctx, teamA)
	if err != nil {
		return nil, s.mapTeamLookup(teamA, err)
	}
	b, err := s.teamRepo.GetByName(ctx, teamB)
	if err != nil {
		return nil, s.mapTeamLookup(teamB, err)
	}

	match := &models.Match{
		Round:  round,
		TeamA:  a.Name,
		TeamB:  b.Name,
		Status: models.MatchStatusScheduled,
	}
	if err := s.matchRepo.Create(ctx, match); err != nil {
		if errors.Is(err, repositories.ErrMatchTeamInvalid) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to schedule match %s: %w", match.Key(), err)
	}
	s.logger.Info("match scheduled",
		slog.Int("match_id", match.ID),
		slog.Int("round", match.Round),
		slog.String("match", match.Key()),
	)
	return match, nil
}

func (s *rosterService) mapTeamLookup(name string, err error) error {
	if errors.Is(err, repositories.ErrTeamNotFound) {
		return fmt.Errorf("%w: %s", ErrTeamNotFound, name)
	}
	return fmt.Errorf("failed to look up team %s: %w", name, err)
}
