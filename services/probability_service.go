package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Davie521/LeagueSwissStageProbability/engine"
)

// ProbabilityQuery is one matchup question: will team A face team B in the
// next round. Win probabilities are keyed by canonical match key and refer to
// the lexicographically first side; they are only consulted for cross-group
// queries with impact matches.
type ProbabilityQuery struct {
	TeamA            string             `json:"team_a"`
	TeamB            string             `json:"team_b"`
	WinProbabilities map[string]float64 `json:"win_probabilities,omitempty"`
}

type ProbabilityService interface {
	MatchupProbability(ctx context.Context, query ProbabilityQuery) (*engine.Result, error)
}

type probabilityService struct {
	stages StageService
}

func NewProbabilityService(stages StageService) ProbabilityService {
	return &probabilityService{stages: stages}
}

func (s *probabilityService) MatchupProbability(ctx context.Context, query ProbabilityQuery) (*engine.Result, error) {
	teamA := strings.TrimSpace(query.TeamA)
	teamB := strings.TrimSpace(query.TeamB)
	if teamA == "" || teamB == "" {
		return nil, ErrTeamNameRequired
	}
	for key, p := range query.WinProbabilities {
		if p < 0 || p > 1 {
			return nil, fmt.Errorf("%w: %s=%g", ErrInvalidProbability, key, p)
		}
	}

	stage, err := s.stages.CurrentStage(ctx)
	if err != nil {
		return nil, err
	}

	result, err := engine.ComputeMatchupProbability(stage, teamA, teamB, query.WinProbabilities)
	if err != nil {
		switch {
		case errors.Is(err, engine.ErrUnknownTeam):
			return nil, fmt.Errorf("%w: %v", ErrTeamNotFound, err)
		case errors.Is(err, engine.ErrSameTeam):
			return nil, ErrSameTeam
		case errors.Is(err, engine.ErrOddGroupSize):
			return nil, fmt.Errorf("%w: %v", ErrOddGroup, err)
		case errors.Is(err, engine.ErrGroupSizeExceeded), errors.Is(err, engine.ErrImpactMatchesExceeded):
			return nil, fmt.Errorf("%w: %v", ErrEnumerationTooLarge, err)
		}
		return nil, err
	}
	return result, nil
}
