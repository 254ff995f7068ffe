package engine

import (
	"fmt"

	"github.com/Davie521/LeagueSwissStageProbability/models"
)

// Kind labels the outcome of a matchup query.
type Kind string

const (
	KindSameGroup  Kind = "same_group"
	KindCrossGroup Kind = "cross_group"
	KindCannotMeet Kind = "cannot_meet"
	KindNeedInput  Kind = "need_input"
)

// Reason explains a cannot-meet outcome. These are ordinary results, not
// errors: elimination, qualification and exhausted pairings are expected
// states of a Swiss stage.
type Reason string

const (
	ReasonQualified     Reason = "qualified"
	ReasonEliminated    Reason = "eliminated"
	ReasonAlreadyPlayed Reason = "already_played"
	// ReasonUnreachable means at least one team would need more than one of
	// its own pending matches to reach a shared record group. Reachability is
	// deliberately limited to a single step; this does not claim the teams
	// can never meet.
	ReasonUnreachable Reason = "unreachable_in_one_step"
)

// Prerequisite is a pending match one of the queried teams must win or lose
// to enter the target record group.
type Prerequisite struct {
	Team     string `json:"team"`
	Opponent string `json:"opponent"`
	MatchKey string `json:"match"`
	NeedWin  bool   `json:"need_win"`
}

// Classification answers whether two teams can be paired next round, and on
// what terms.
type Classification struct {
	Kind          Kind
	Reason        Reason
	Detail        string
	Target        models.GroupKey
	Prerequisites []Prerequisite
}

// Classify determines how (and whether) the two teams can meet: in their
// current shared record group, in a group both can reach through exactly one
// pending match each, or not at all.
func Classify(stage *models.SwissStage, teamA, teamB string) (*Classification, error) {
	a, ok := stage.Team(teamA)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTeam, teamA)
	}
	b, ok := stage.Team(teamB)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTeam, teamB)
	}
	if a == b {
		return nil, fmt.Errorf("%w: %s", ErrSameTeam, a.Name)
	}

	for _, t := range []*models.Team{a, b} {
		switch stage.StatusOf(t) {
		case models.StatusQualified:
			return &Classification{
				Kind:   KindCannotMeet,
				Reason: ReasonQualified,
				Detail: fmt.Sprintf("%s has already qualified", t.Name),
			}, nil
		case models.StatusEliminated:
			return &Classification{
				Kind:   KindCannotMeet,
				Reason: ReasonEliminated,
				Detail: fmt.Sprintf("%s has already been eliminated", t.Name),
			}, nil
		}
	}

	if a.HasPlayed(b.Name) || b.HasPlayed(a.Name) {
		return &Classification{
			Kind:   KindCannotMeet,
			Reason: ReasonAlreadyPlayed,
			Detail: fmt.Sprintf("%s and %s have already faced each other", a.Name, b.Name),
		}, nil
	}

	skipCurrent := false
	if a.Record() == b.Record() {
		// Both teams may already have drawn opponents for the current round.
		// If those fixed opponents are not each other, the pair can only meet
		// in a later group, so the current record is skipped below.
		pendingA := a.PendingOpponents()
		pendingB := b.PendingOpponents()
		if len(pendingA) > 0 && len(pendingB) > 0 &&
			(pendingA[0] != b.Name || pendingB[0] != a.Name) {
			skipCurrent = true
		} else {
			return &Classification{Kind: KindSameGroup, Target: a.Record()}, nil
		}
	}

	for _, target := range candidateGroups(stage) {
		if skipCurrent && target == a.Record() {
			continue
		}
		pa, okA := stepTo(stage, a, target)
		pb, okB := stepTo(stage, b, target)
		if !okA || !okB {
			continue
		}
		if pa == nil && pb == nil {
			// Both already hold the target record; handled above.
			continue
		}
		var prereqs []Prerequisite
		if pa != nil {
			prereqs = append(prereqs, *pa)
		}
		if pb != nil {
			prereqs = append(prereqs, *pb)
		}
		return &Classification{
			Kind:          KindCrossGroup,
			Target:        target,
			Prerequisites: prereqs,
		}, nil
	}

	return &Classification{
		Kind:   KindCannotMeet,
		Reason: ReasonUnreachable,
		Detail: fmt.Sprintf("%s and %s cannot reach a shared record group within one pending match each", a.Name, b.Name),
	}, nil
}

// candidateGroups lists every record an active team can hold, ordered by
// round depth so the earliest reachable group wins. Within one depth the
// higher-wins record comes first, so when two targets tie the win path is
// preferred over the loss path.
func candidateGroups(stage *models.SwissStage) []models.GroupKey {
	var keys []models.GroupKey
	for total := 0; total <= stage.WinTarget+stage.LossLimit-2; total++ {
		for w := stage.WinTarget - 1; w >= 0; w-- {
			l := total - w
			if l < 0 || l >= stage.LossLimit {
				continue
			}
			keys = append(keys, models.GroupKey{Wins: w, Losses: l})
		}
	}
	return keys
}

// stepTo reports how the team reaches the target record: nil prerequisite if
// it is already there, a single-match prerequisite if one win or one loss
// suffices, or not-ok when the target needs more than one step or no pending
// match exists to take it.
func stepTo(stage *models.SwissStage, t *models.Team, target models.GroupKey) (*Prerequisite, bool) {
	winsNeeded := target.Wins - t.Wins
	lossesNeeded := target.Losses - t.Losses
	if winsNeeded < 0 || lossesNeeded < 0 || winsNeeded+lossesNeeded > 1 {
		return nil, false
	}
	if winsNeeded == 0 && lossesNeeded == 0 {
		return nil, true
	}

	m, ok := stage.EarliestPending(t.Name)
	if !ok {
		return nil, false
	}
	opponent, _ := m.Opponent(t.Name)
	return &Prerequisite{
		Team:     t.Name,
		Opponent: opponent,
		MatchKey: m.Key(),
		NeedWin:  winsNeeded == 1,
	}, true
}
