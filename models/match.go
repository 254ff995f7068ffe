package models

import (
	"fmt"
	"strings"
)

type MatchStatus string

const (
	MatchStatusScheduled MatchStatus = "scheduled"
	MatchStatusCompleted MatchStatus = "completed"
)

// Match is an unordered pair of teams scheduled for one round. A match with
// no winner is pending.
type Match struct {
	ID     int         `json:"id"`
	Round  int         `json:"round"`
	TeamA  string      `json:"team_a"`
	TeamB  string      `json:"team_b"`
	Winner *string     `json:"winner,omitempty"`
	Status MatchStatus `json:"status"`
}

func (m *Match) Decided() bool {
	return m.Winner != nil
}

func (m *Match) Loser() *string {
	if m.Winner == nil {
		return nil
	}
	if *m.Winner == m.TeamA {
		return &m.TeamB
	}
	return &m.TeamA
}

func (m *Match) Involves(team string) bool {
	return m.TeamA == team || m.TeamB == team
}

// Opponent returns the other side of the match for the given team.
func (m *Match) Opponent(team string) (string, bool) {
	switch team {
	case m.TeamA:
		return m.TeamB, true
	case m.TeamB:
		return m.TeamA, true
	}
	return "", false
}

// Key is the canonical identifier of the pairing: both names sorted and
// joined with "|". Win probabilities supplied by callers are keyed by it,
// and refer to the first (lexicographically lower) side.
func (m *Match) Key() string {
	return MatchKey(m.TeamA, m.TeamB)
}

func MatchKey(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return a + "|" + b
}

// SplitMatchKey is the inverse of MatchKey.
func SplitMatchKey(key string) (string, string, error) {
	a, b, ok := strings.Cut(key, "|")
	if !ok || a == "" || b == "" {
		return "", "", fmt.Errorf("malformed match key %q", key)
	}
	return a, b, nil
}

func (m *Match) clone() *Match {
	cp := *m
	if m.Winner != nil {
		w := *m.Winner
		cp.Winner = &w
	}
	return &cp
}
