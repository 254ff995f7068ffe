package models

type TeamStatus string

const (
	StatusActive     TeamStatus = "active"
	StatusQualified  TeamStatus = "qualified"
	StatusEliminated TeamStatus = "eliminated"
)

// MatchOutcome is the outcome of one match from a single team's point of view.
type MatchOutcome string

const (
	OutcomeWon     MatchOutcome = "won"
	OutcomeLost    MatchOutcome = "lost"
	OutcomePending MatchOutcome = "pending"
)

// HistoryEntry records one scheduled match in a team's history, in the order
// the matches were drawn.
type HistoryEntry struct {
	Opponent string       `json:"opponent"`
	Outcome  MatchOutcome `json:"outcome"`
}

// Team is one competitor in the Swiss stage. Wins, losses, the opponent set
// and the history are derived from the match list when the stage is
// assembled; they are never stored independently.
type Team struct {
	ID        int            `json:"id"`
	Name      string         `json:"name"`
	Wins      int            `json:"wins"`
	Losses    int            `json:"losses"`
	Opponents map[string]bool `json:"-"`
	History   []HistoryEntry `json:"history,omitempty"`
}

func (t *Team) Record() GroupKey {
	return GroupKey{Wins: t.Wins, Losses: t.Losses}
}

// HasPlayed reports whether the team already finished a match against the
// named opponent. Pending matches do not count.
func (t *Team) HasPlayed(opponent string) bool {
	return t.Opponents[opponent]
}

func (t *Team) Status(winTarget, lossLimit int) TeamStatus {
	switch {
	case t.Wins >= winTarget:
		return StatusQualified
	case t.Losses >= lossLimit:
		return StatusEliminated
	default:
		return StatusActive
	}
}

// PendingOpponents lists the opponents of the team's undecided matches in
// history order.
func (t *Team) PendingOpponents() []string {
	var out []string
	for _, h := range t.History {
		if h.Outcome == OutcomePending {
			out = append(out, h.Opponent)
		}
	}
	return out
}

func (t *Team) clone() *Team {
	cp := &Team{
		ID:     t.ID,
		Name:   t.Name,
		Wins:   t.Wins,
		Losses: t.Losses,
	}
	cp.Opponents = make(map[string]bool, len(t.Opponents))
	for k, v := range t.Opponents {
		cp.Opponents[k] = v
	}
	cp.History = make([]HistoryEntry, len(t.History))
	copy(cp.History, t.History)
	return cp
}
