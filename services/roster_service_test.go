package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Davie521/LeagueSwissStageProbability/models"
	"github.com/Davie521/LeagueSwissStageProbability/repositories"
)

func TestAddTeamCanonicalizesName(t *testing.T) {
	teamRepo := &fakeTeamRepo{}
	svc := NewRosterService(teamRepo, &fakeMatchRepo{}, discardLogger())

	team, err := svc.AddTeam(context.Background(), "  gen.g ")
	require.NoError(t, err)
	assert.Equal(t, "GEN.G", team.Name)
	assert.Equal(t, 1, team.ID)
	require.Len(t, teamRepo.teams, 1)
}

func TestAddTeamValidation(t *testing.T) {
	teamRepo := &fakeTeamRepo{teams: seedTeams("ALD")}
	svc := NewRosterService(teamRepo, &fakeMatchRepo{}, discardLogger())

	_, err := svc.AddTeam(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrTeamNameEmpty)

	_, err = svc.AddTeam(context.Background(), "ald")
	assert.ErrorIs(t, err, ErrTeamNameConflict)
}

func TestScheduleMatchStoresCanonicalPairing(t *testing.T) {
	teamRepo := &fakeTeamRepo{teams: seedTeams("ALD", "BRX")}
	matchRepo := &fakeMatchRepo{}
	svc := NewRosterService(teamRepo, matchRepo, discardLogger())

	match, err := svc.ScheduleMatch(context.Background(), 2, " ald ", "brx")
	require.NoError(t, err)
	assert.Equal(t, 1, match.ID)
	assert.Equal(t, 2, match.Round)
	assert.Equal(t, "ALD", match.TeamA)
	assert.Equal(t, "BRX", match.TeamB)
	assert.Equal(t, models.MatchStatusScheduled, match.Status)
	assert.Nil(t, match.Winner)
}

func TestScheduleMatchValidation(t *testing.T) {
	teamRepo := &fakeTeamRepo{teams: seedTeams("ALD", "BRX")}
	svc := NewRosterService(teamRepo, &fakeMatchRepo{}, discardLogger())

	cases := []struct {
		name    string
		round   int
		teamA   string
		teamB   string
		wantErr error
	}{
		{"zero round", 0, "ALD", "BRX", ErrInvalidRound},
		{"blank team", 1, "ALD", "  ", ErrTeamNameRequired},
		{"same team", 1, "ALD", "ald", ErrSameTeam},
		{"unknown team", 1, "ALD", "NOPE", ErrTeamNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.ScheduleMatch(context.Background(), tc.round, tc.teamA, tc.teamB)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestScheduleMatchMapsForeignKeyFailure(t *testing.T) {
	teamRepo := &fakeTeamRepo{teams: seedTeams("ALD", "BRX")}
	matchRepo := &fakeMatchRepo{createErr: repositories.ErrMatchTeamInvalid}
	svc := NewRosterService(teamRepo, matchRepo, discardLogger())

	_, err := svc.ScheduleMatch(context.Background(), 1, "ALD", "BRX")
	assert.ErrorIs(t, err, ErrTeamNotFound)
}
