package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Davie521/LeagueSwissStageProbability/models"
)

type fixtureMatch struct {
	round  int
	teamA  string
	teamB  string
	winner string // empty means pending
}

func buildStage(t *testing.T, names []string, matches []fixtureMatch) *models.SwissStage {
	t.Helper()

	teams := make([]*models.Team, len(names))
	for i, n := range names {
		teams[i] = &models.Team{ID: i + 1, Name: n}
	}
	ms := make([]*models.Match, len(matches))
	for i, fm := range matches {
		m := &models.Match{ID: i + 1, Round: fm.round, TeamA: fm.teamA, TeamB: fm.teamB}
		if fm.winner != "" {
			w := fm.winner
			m.Winner = &w
		}
		ms[i] = m
	}
	stage, err := models.NewSwissStage(teams, ms, models.DefaultWinTarget, models.DefaultLossLimit)
	require.NoError(t, err)
	return stage
}

// settledPair schedules four decided rounds for two teams against four
// shared filler opponents, leaving both teams at 2-2 with no pending match
// and no meeting between them. Each filler ends at 1-1, so callers building
// several pairs must use a disjoint filler set per pair to keep the fillers
// out of the 2-2 group.
func settledPair(a, b string, fillers [4]string) []fixtureMatch {
	return []fixtureMatch{
		{1, a, fillers[0], a},
		{2, a, fillers[1], a},
		{3, a, fillers[2], fillers[2]},
		{4, a, fillers[3], fillers[3]},
		{1, b, fillers[2], b},
		{2, b, fillers[3], b},
		{3, b, fillers[0], fillers[0]},
		{4, b, fillers[1], fillers[1]},
	}
}

// crossStage builds the cross-group scenario: XRAY at 1-2 must win its
// pending match and YETI at 2-1 must lose its own for both to land in the
// 2-2 group next to the settled PAX and QOR.
//
// With withImpact, two more pending matches feed the 2-2 group: the
// EEL/FOX match (both 1-2, winner enters; EEL has already faced XRAY) and
// the MOT/NIX match (both 2-1, loser enters).
func crossStage(t *testing.T, withImpact bool) *models.SwissStage {
	t.Helper()

	names := []string{
		"XRAY", "YETI", "PAX", "QOR", "OPAL", "NOVA",
		"OAK1", "OAK2", "OAK3", "OAK4", "OAK5",
		"PIN1", "PIN2", "PIN3", "PIN4",
	}
	matches := []fixtureMatch{
		{2, "XRAY", "OAK1", "OAK1"},
		{3, "XRAY", "OAK2", "OAK2"},
		{4, "XRAY", "OPAL", ""},
		{1, "YETI", "OAK3", "YETI"},
		{2, "YETI", "OAK4", "YETI"},
		{3, "YETI", "OAK5", "OAK5"},
		{4, "YETI", "NOVA", ""},
	}
	matches = append(matches, settledPair("PAX", "QOR", [4]string{"PIN1", "PIN2", "PIN3", "PIN4"})...)

	if !withImpact {
		names = append(names, "GUL1")
		matches = append(matches, fixtureMatch{1, "XRAY", "GUL1", "XRAY"})
		return buildStage(t, names, matches)
	}

	names = append(names,
		"EEL", "FOX", "MOT", "NIX",
		"GUL1", "GUL2",
		"HAK1", "HAK2", "HAK3",
		"JIP1", "JIP2", "JIP3",
		"KEL1", "KEL2", "KEL3",
	)
	matches = append(matches,
		fixtureMatch{1, "XRAY", "EEL", "XRAY"},
		fixtureMatch{2, "EEL", "GUL1", "EEL"},
		fixtureMatch{3, "EEL", "GUL2", "GUL2"},
		fixtureMatch{4, "EEL", "FOX", ""},
		fixtureMatch{1, "FOX", "HAK1", "FOX"},
		fixtureMatch{2, "FOX", "HAK2", "HAK2"},
		fixtureMatch{3, "FOX", "HAK3", "HAK3"},
		fixtureMatch{1, "MOT", "JIP1", "MOT"},
		fixtureMatch{2, "MOT", "JIP2", "MOT"},
		fixtureMatch{3, "MOT", "JIP3", "JIP3"},
		fixtureMatch{4, "MOT", "NIX", ""},
		fixtureMatch{1, "NIX", "KEL1", "NIX"},
		fixtureMatch{2, "NIX", "KEL2", "NIX"},
		fixtureMatch{3, "NIX", "KEL3", "KEL3"},
	)
	return buildStage(t, names, matches)
}
