package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func roster(names ...string) []*Team {
	teams := make([]*Team, len(names))
	for i, n := range names {
		teams[i] = &Team{ID: i + 1, Name: n}
	}
	return teams
}

func decided(id, round int, a, b, winner string) *Match {
	return &Match{ID: id, Round: round, TeamA: a, TeamB: b, Winner: &winner}
}

func scheduled(id, round int, a, b string) *Match {
	return &Match{ID: id, Round: round, TeamA: a, TeamB: b}
}

func TestNewSwissStageDerivesRecords(t *testing.T) {
	stage, err := NewSwissStage(
		roster("ALD", "BRX", "CRO", "DUN"),
		[]*Match{
			decided(1, 1, "ALD", "BRX", "ALD"),
			decided(2, 1, "CRO", "DUN", "DUN"),
			decided(3, 2, "ALD", "DUN", "ALD"),
			scheduled(4, 2, "BRX", "CRO"),
		},
		DefaultWinTarget, DefaultLossLimit,
	)
	require.NoError(t, err)

	ald, ok := stage.Team("ALD")
	require.True(t, ok)
	assert.Equal(t, GroupKey{Wins: 2, Losses: 0}, ald.Record())
	assert.True(t, ald.HasPlayed("BRX"))
	assert.True(t, ald.HasPlayed("DUN"))
	assert.False(t, ald.HasPlayed("CRO"))

	brx, _ := stage.Team("BRX")
	assert.Equal(t, GroupKey{Wins: 0, Losses: 1}, brx.Record())
	assert.False(t, brx.HasPlayed("CRO"), "a scheduled match is not a played one")
	assert.Equal(t, []string{"CRO"}, brx.PendingOpponents())

	assert.Equal(t, 2, stage.Round)
	assert.Equal(t, []HistoryEntry{
		{Opponent: "BRX", Outcome: OutcomeWon},
		{Opponent: "DUN", Outcome: OutcomeWon},
	}, ald.History)
}

func TestNewSwissStageLookupIsCaseInsensitive(t *testing.T) {
	stage, err := NewSwissStage(roster("Cloud9"), nil, DefaultWinTarget, DefaultLossLimit)
	require.NoError(t, err)

	c9, ok := stage.Team("cloud9")
	require.True(t, ok)
	assert.Equal(t, "Cloud9", c9.Name)
}

func TestNewSwissStageSortsMatchesByRoundThenID(t *testing.T) {
	stage, err := NewSwissStage(
		roster("ALD", "BRX", "CRO", "DUN"),
		[]*Match{
			scheduled(7, 2, "ALD", "CRO"),
			decided(2, 1, "CRO", "DUN", "DUN"),
			decided(1, 1, "ALD", "BRX", "ALD"),
			scheduled(5, 2, "BRX", "DUN"),
		},
		DefaultWinTarget, DefaultLossLimit,
	)
	require.NoError(t, err)

	ids := make([]int, len(stage.Matches))
	for i, m := range stage.Matches {
		ids[i] = m.ID
	}
	assert.Equal(t, []int{1, 2, 5, 7}, ids)
}

func TestNewSwissStageRejectsBadInput(t *testing.T) {
	teams := roster("ALD", "BRX")

	_, err := NewSwissStage(teams, []*Match{decided(1, 1, "ALD", "GHOST", "ALD")}, 3, 3)
	assert.ErrorContains(t, err, "unknown team")

	_, err = NewSwissStage(teams, []*Match{decided(1, 1, "ALD", "ald", "ALD")}, 3, 3)
	assert.ErrorContains(t, err, "against itself")

	_, err = NewSwissStage(teams, []*Match{decided(1, 1, "ALD", "BRX", "GHOST")}, 3, 3)
	assert.ErrorContains(t, err, "outside the pairing")

	_, err = NewSwissStage(teams, []*Match{
		decided(1, 1, "ALD", "BRX", "ALD"),
		decided(2, 2, "BRX", "ALD", "BRX"),
	}, 3, 3)
	assert.ErrorContains(t, err, "more than one match")

	_, err = NewSwissStage(append(roster("ALD"), &Team{ID: 9, Name: "ald"}), nil, 3, 3)
	assert.ErrorContains(t, err, "duplicate team")

	_, err = NewSwissStage(teams, nil, 0, 3)
	assert.ErrorContains(t, err, "invalid thresholds")
}

func TestStatusThresholds(t *testing.T) {
	stage, err := NewSwissStage(
		roster("ALD", "BRX", "CRO", "DUN"),
		[]*Match{
			decided(1, 1, "ALD", "BRX", "ALD"),
			decided(2, 2, "ALD", "CRO", "ALD"),
			decided(3, 3, "ALD", "DUN", "ALD"),
			decided(4, 1, "BRX", "CRO", "CRO"),
			decided(5, 2, "BRX", "DUN", "DUN"),
		},
		DefaultWinTarget, DefaultLossLimit,
	)
	require.NoError(t, err)

	ald, _ := stage.Team("ALD")
	brx, _ := stage.Team("BRX")
	cro, _ := stage.Team("CRO")
	assert.Equal(t, StatusQualified, stage.StatusOf(ald))
	assert.Equal(t, StatusEliminated, stage.StatusOf(brx))
	assert.Equal(t, StatusActive, stage.StatusOf(cro))

	active := stage.ActiveTeams()
	require.Len(t, active, 2)
	assert.Equal(t, "CRO", active[0].Name)
	assert.Equal(t, "DUN", active[1].Name)
}

func TestRecordGroupsExcludeDecidedTeams(t *testing.T) {
	stage, err := NewSwissStage(
		roster("ALD", "BRX", "CRO", "DUN"),
		[]*Match{
			decided(1, 1, "ALD", "BRX", "ALD"),
			decided(2, 1, "CRO", "DUN", "CRO"),
			decided(3, 2, "ALD", "CRO", "ALD"),
			decided(4, 2, "BRX", "DUN", "BRX"),
		},
		2, 2,
	)
	require.NoError(t, err)

	// ALD is qualified at 2-0 and DUN eliminated at 0-2; only the 1-1
	// teams remain active.
	groups := stage.RecordGroups()
	require.Len(t, groups, 1)
	assert.Equal(t, []string{"BRX", "CRO"}, groups[GroupKey{Wins: 1, Losses: 1}])
	assert.Equal(t, []string{"BRX", "CRO"}, stage.RecordGroup(GroupKey{Wins: 1, Losses: 1}))
	assert.Empty(t, stage.RecordGroup(GroupKey{Wins: 2, Losses: 0}))
}

func TestEarliestPendingFollowsHistoryOrder(t *testing.T) {
	stage, err := NewSwissStage(
		roster("ALD", "BRX", "CRO", "DUN"),
		[]*Match{
			scheduled(1, 1, "ALD", "BRX"),
			scheduled(2, 2, "ALD", "CRO"),
		},
		DefaultWinTarget, DefaultLossLimit,
	)
	require.NoError(t, err)

	m, ok := stage.EarliestPending("ALD")
	require.True(t, ok)
	assert.Equal(t, "ALD|BRX", m.Key())

	_, ok = stage.EarliestPending("DUN")
	assert.False(t, ok)
	_, ok = stage.EarliestPending("GHOST")
	assert.False(t, ok)
}

func TestCloneIsolation(t *testing.T) {
	stage, err := NewSwissStage(
		roster("ALD", "BRX", "CRO", "DUN"),
		[]*Match{
			decided(1, 1, "ALD", "BRX", "ALD"),
			scheduled(2, 2, "CRO", "DUN"),
		},
		DefaultWinTarget, DefaultLossLimit,
	)
	require.NoError(t, err)

	cp := stage.Clone()
	require.NoError(t, cp.ApplyWinner("CRO|DUN", "CRO"))

	cro, _ := cp.Team("CRO")
	assert.Equal(t, 1, cro.Wins)
	assert.True(t, cp.HavePlayed("CRO", "DUN"))

	orig, _ := stage.Team("CRO")
	assert.Zero(t, orig.Wins, "applying to the clone must not touch the source")
	assert.False(t, stage.HavePlayed("CRO", "DUN"))
	_, stillPending := stage.PendingBetween("CRO", "DUN")
	assert.True(t, stillPending)
}

func TestApplyWinner(t *testing.T) {
	stage, err := NewSwissStage(
		roster("ALD", "BRX"),
		[]*Match{scheduled(1, 1, "ALD", "BRX")},
		DefaultWinTarget, DefaultLossLimit,
	)
	require.NoError(t, err)

	require.NoError(t, stage.ApplyWinner("ALD|BRX", "BRX"))
	brx, _ := stage.Team("BRX")
	ald, _ := stage.Team("ALD")
	assert.Equal(t, 1, brx.Wins)
	assert.Equal(t, 1, ald.Losses)
	assert.Equal(t, []HistoryEntry{{Opponent: "BRX", Outcome: OutcomeLost}}, ald.History)
	assert.Empty(t, brx.PendingOpponents())

	// Completed matches cannot be redecided, and winners must belong to
	// the pairing.
	assert.Error(t, stage.ApplyWinner("ALD|BRX", "ALD"))
	assert.Error(t, stage.ApplyWinner("ALD|GHOST", "ALD"))
}
