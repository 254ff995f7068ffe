package models

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

const (
	DefaultWinTarget = 3
	DefaultLossLimit = 3
)

// GroupKey identifies a record group: the set of active teams sharing the
// same win/loss counts.
type GroupKey struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
}

func (k GroupKey) String() string {
	return fmt.Sprintf("%d-%d", k.Wins, k.Losses)
}

func ParseGroupKey(s string) (GroupKey, error) {
	w, l, ok := strings.Cut(s, "-")
	if !ok {
		return GroupKey{}, fmt.Errorf("malformed record %q, want \"wins-losses\"", s)
	}
	wins, err := strconv.Atoi(w)
	if err != nil {
		return GroupKey{}, fmt.Errorf("malformed record %q: %w", s, err)
	}
	losses, err := strconv.Atoi(l)
	if err != nil {
		return GroupKey{}, fmt.Errorf("malformed record %q: %w", s, err)
	}
	if wins < 0 || losses < 0 {
		return GroupKey{}, fmt.Errorf("malformed record %q: counts must not be negative", s)
	}
	return GroupKey{Wins: wins, Losses: losses}, nil
}

// SwissStage is a snapshot of the tournament at one point in time. It is
// assembled from the team roster and the match list; records, opponent sets
// and histories are derived, so the match list stays the single source of
// truth. Callers that want what-if exploration work on a Clone.
type SwissStage struct {
	Teams     []*Team  `json:"teams"`
	Matches   []*Match `json:"matches"`
	Round     int      `json:"round"`
	WinTarget int      `json:"win_target"`
	LossLimit int      `json:"loss_limit"`

	byName map[string]*Team
}

// NewSwissStage derives a stage snapshot from the roster and the (ordered)
// match list. Matches referencing unknown teams or pairing a team against
// itself are rejected.
func NewSwissStage(teams []*Team, matches []*Match, winTarget, lossLimit int) (*SwissStage, error) {
	if winTarget <= 0 || lossLimit <= 0 {
		return nil, fmt.Errorf("invalid thresholds: win target %d, loss limit %d", winTarget, lossLimit)
	}

	s := &SwissStage{
		Teams:     teams,
		Matches:   matches,
		WinTarget: winTarget,
		LossLimit: lossLimit,
		byName:    make(map[string]*Team, len(teams)),
	}

	for _, t := range teams {
		key := strings.ToUpper(t.Name)
		if _, dup := s.byName[key]; dup {
			return nil, fmt.Errorf("duplicate team %q", t.Name)
		}
		t.Wins = 0
		t.Losses = 0
		t.Opponents = make(map[string]bool)
		t.History = nil
		s.byName[key] = t
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Round != matches[j].Round {
			return matches[i].Round < matches[j].Round
		}
		return matches[i].ID < matches[j].ID
	})

	for _, m := range matches {
		a, okA := s.Team(m.TeamA)
		b, okB := s.Team(m.TeamB)
		if !okA || !okB {
			return nil, fmt.Errorf("match %d references unknown team (%s vs %s)", m.ID, m.TeamA, m.TeamB)
		}
		if a == b {
			return nil, fmt.Errorf("match %d pairs %s against itself", m.ID, m.TeamA)
		}
		m.TeamA = a.Name
		m.TeamB = b.Name
		if m.Round > s.Round {
			s.Round = m.Round
		}

		if !m.Decided() {
			m.Status = MatchStatusScheduled
			a.History = append(a.History, HistoryEntry{Opponent: b.Name, Outcome: OutcomePending})
			b.History = append(b.History, HistoryEntry{Opponent: a.Name, Outcome: OutcomePending})
			continue
		}

		winner, okW := s.Team(*m.Winner)
		if !okW || !m.Involves(winner.Name) {
			return nil, fmt.Errorf("match %d has winner %q outside the pairing", m.ID, *m.Winner)
		}
		w := winner.Name
		m.Winner = &w
		m.Status = MatchStatusCompleted

		loser := a
		if winner == a {
			loser = b
		}
		winner.Wins++
		loser.Losses++
		if a.Opponents[b.Name] {
			return nil, fmt.Errorf("teams %s and %s decided more than one match", a.Name, b.Name)
		}
		a.Opponents[b.Name] = true
		b.Opponents[a.Name] = true
		winner.History = append(winner.History, HistoryEntry{Opponent: loser.Name, Outcome: OutcomeWon})
		loser.History = append(loser.History, HistoryEntry{Opponent: winner.Name, Outcome: OutcomeLost})
	}

	return s, nil
}

// Team looks a team up by name, case-insensitively.
func (s *SwissStage) Team(name string) (*Team, bool) {
	t, ok := s.byName[strings.ToUpper(name)]
	return t, ok
}

func (s *SwissStage) StatusOf(t *Team) TeamStatus {
	return t.Status(s.WinTarget, s.LossLimit)
}

func (s *SwissStage) ActiveTeams() []*Team {
	var out []*Team
	for _, t := range s.Teams {
		if s.StatusOf(t) == StatusActive {
			out = append(out, t)
		}
	}
	return out
}

// RecordGroup returns the names of the active teams holding the given
// record, sorted for deterministic iteration.
func (s *SwissStage) RecordGroup(key GroupKey) []string {
	var out []string
	for _, t := range s.ActiveTeams() {
		if t.Record() == key {
			out = append(out, t.Name)
		}
	}
	sort.Strings(out)
	return out
}

// RecordGroups maps every occupied record to its active members.
func (s *SwissStage) RecordGroups() map[GroupKey][]string {
	groups := make(map[GroupKey][]string)
	for _, t := range s.ActiveTeams() {
		k := t.Record()
		groups[k] = append(groups[k], t.Name)
	}
	for _, names := range groups {
		sort.Strings(names)
	}
	return groups
}

// PendingMatches lists the undecided matches in draw order.
func (s *SwissStage) PendingMatches() []*Match {
	var out []*Match
	for _, m := range s.Matches {
		if !m.Decided() {
			out = append(out, m)
		}
	}
	return out
}

// PendingBetween finds the undecided match pairing the two teams, if any.
func (s *SwissStage) PendingBetween(a, b string) (*Match, bool) {
	key := MatchKey(a, b)
	for _, m := range s.PendingMatches() {
		if m.Key() == key {
			return m, true
		}
	}
	return nil, false
}

// EarliestPending returns the team's earliest undecided match in history
// order. With more than one pending match, the earliest one is the match
// that determines single-step reachability.
func (s *SwissStage) EarliestPending(team string) (*Match, bool) {
	t, ok := s.Team(team)
	if !ok {
		return nil, false
	}
	for _, h := range t.History {
		if h.Outcome == OutcomePending {
			return s.PendingBetween(t.Name, h.Opponent)
		}
	}
	return nil, false
}

// HavePlayed reports whether the two teams already finished a match against
// each other.
func (s *SwissStage) HavePlayed(a, b string) bool {
	t, ok := s.Team(a)
	if !ok {
		return false
	}
	if tb, okB := s.Team(b); okB {
		return t.HasPlayed(tb.Name)
	}
	return false
}

// Clone deep-copies the stage so that simulated outcomes never touch the
// caller-owned snapshot.
func (s *SwissStage) Clone() *SwissStage {
	teams := make([]*Team, len(s.Teams))
	byName := make(map[string]*Team, len(s.Teams))
	for i, t := range s.Teams {
		teams[i] = t.clone()
		byName[strings.ToUpper(t.Name)] = teams[i]
	}
	matches := make([]*Match, len(s.Matches))
	for i, m := range s.Matches {
		matches[i] = m.clone()
	}
	return &SwissStage{
		Teams:     teams,
		Matches:   matches,
		Round:     s.Round,
		WinTarget: s.WinTarget,
		LossLimit: s.LossLimit,
		byName:    byName,
	}
}

// ApplyWinner decides the pending match identified by its canonical key.
// Records, opponent sets and histories are updated in place; use on a Clone
// when exploring hypothetical outcomes.
func (s *SwissStage) ApplyWinner(matchKey, winner string) error {
	a, b, err := SplitMatchKey(matchKey)
	if err != nil {
		return err
	}
	m, ok := s.PendingBetween(a, b)
	if !ok {
		return fmt.Errorf("no pending match %s", matchKey)
	}
	wt, ok := s.Team(winner)
	if !ok || !m.Involves(wt.Name) {
		return fmt.Errorf("winner %q is not part of match %s", winner, matchKey)
	}
	lname, _ := m.Opponent(wt.Name)
	lt, _ := s.Team(lname)

	w := wt.Name
	m.Winner = &w
	m.Status = MatchStatusCompleted
	wt.Wins++
	lt.Losses++
	wt.Opponents[lt.Name] = true
	lt.Opponents[wt.Name] = true
	settle(wt, lt.Name, OutcomeWon)
	settle(lt, wt.Name, OutcomeLost)
	return nil
}

func settle(t *Team, opponent string, outcome MatchOutcome) {
	for i := range t.History {
		if t.History[i].Opponent == opponent && t.History[i].Outcome == OutcomePending {
			t.History[i].Outcome = outcome
			return
		}
	}
}
