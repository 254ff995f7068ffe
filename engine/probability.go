package engine

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/Davie521/LeagueSwissStageProbability/models"
)

// probabilityTolerance is the slack allowed when checking that scenario
// probabilities partition to one.
const probabilityTolerance = 1e-9

// PairingStats is the outcome of a same-group pairing computation: how many
// valid matchings exist and how many contain the queried pair, split out for
// transparency displays.
type PairingStats struct {
	Probability      float64    `json:"probability"`
	TotalMatchings   int        `json:"total_matchings"`
	FavorableCount   int        `json:"favorable_matchings"`
	Group            []string   `json:"group"`
	MatchingsWith    []Matching `json:"matchings_with_target,omitempty"`
	MatchingsWithout []Matching `json:"matchings_without_target,omitempty"`
	ShortCircuited   bool       `json:"-"`
}

// ScenarioResult is one impact-match outcome combination with the pairing
// probability computed on its simulated group.
type ScenarioResult struct {
	Description string            `json:"description"`
	Outcomes    map[string]string `json:"outcomes,omitempty"`
	Probability float64           `json:"probability"`
	Group       []string          `json:"group"`
	Stats       *PairingStats     `json:"pairing"`
}

// Result is the answer to a matchup probability query.
type Result struct {
	Kind            Kind             `json:"kind"`
	Probability     float64          `json:"probability"`
	Reason          Reason           `json:"reason,omitempty"`
	Detail          string           `json:"detail,omitempty"`
	Target          *models.GroupKey `json:"target_group,omitempty"`
	Prerequisites   []Prerequisite   `json:"prerequisites,omitempty"`
	RequiredMatches []string         `json:"required_matches,omitempty"`
	Stats           *PairingStats    `json:"pairing,omitempty"`
	Scenarios       []ScenarioResult `json:"scenarios,omitempty"`
}

// DirectProbability computes the exact probability that teamA and teamB are
// paired when the given group is drawn: favorable matchings over total
// matchings. Already-played pairs short-circuit to zero, and a two-member
// group that has not played short-circuits to one, without enumerating.
func DirectProbability(group []string, played PlayedFunc, teamA, teamB string) (*PairingStats, error) {
	stats := &PairingStats{Group: append([]string(nil), group...)}
	sort.Strings(stats.Group)

	if !contains(stats.Group, teamA) || !contains(stats.Group, teamB) {
		return stats, nil
	}
	if played != nil && played(teamA, teamB) {
		stats.ShortCircuited = true
		return stats, nil
	}
	if len(stats.Group) == 2 {
		stats.Probability = 1
		stats.TotalMatchings = 1
		stats.FavorableCount = 1
		stats.MatchingsWith = []Matching{{NewPair(teamA, teamB)}}
		stats.ShortCircuited = true
		return stats, nil
	}

	matchings, err := EnumeratePairings(stats.Group, played)
	if err != nil {
		return nil, err
	}
	for _, m := range matchings {
		if m.Contains(teamA, teamB) {
			stats.MatchingsWith = append(stats.MatchingsWith, m)
		} else {
			stats.MatchingsWithout = append(stats.MatchingsWithout, m)
		}
	}
	stats.TotalMatchings = len(matchings)
	stats.FavorableCount = len(stats.MatchingsWith)
	if stats.TotalMatchings > 0 {
		stats.Probability = float64(stats.FavorableCount) / float64(stats.TotalMatchings)
	}
	return stats, nil
}

// ComputeMatchupProbability is the engine's entry point. It classifies the
// two teams, then answers the query exactly (same group), by weighted
// scenario aggregation (cross group), or with the reason the teams cannot
// meet. A cross-group query lacking win probabilities for some impact
// matches yields a NEED_INPUT result naming them; the caller re-invokes with
// the completed map and everything is recomputed from the stage.
func ComputeMatchupProbability(stage *models.SwissStage, teamA, teamB string, winProbs map[string]float64) (*Result, error) {
	cls, err := Classify(stage, teamA, teamB)
	if err != nil {
		return nil, err
	}
	a, _ := stage.Team(teamA)
	b, _ := stage.Team(teamB)

	switch cls.Kind {
	case KindCannotMeet:
		return &Result{Kind: KindCannotMeet, Reason: cls.Reason, Detail: cls.Detail}, nil

	case KindSameGroup:
		group := stage.RecordGroup(cls.Target)
		stats, err := DirectProbability(group, stage.HavePlayed, a.Name, b.Name)
		if err != nil {
			return nil, err
		}
		target := cls.Target
		return &Result{
			Kind:        KindSameGroup,
			Probability: stats.Probability,
			Target:      &target,
			Stats:       stats,
		}, nil
	}

	return crossGroupResult(stage, cls, a.Name, b.Name, winProbs)
}

func crossGroupResult(stage *models.SwissStage, cls *Classification, teamA, teamB string, winProbs map[string]float64) (*Result, error) {
	prereqOutcomes := make(map[string]string, len(cls.Prerequisites))
	exclude := make([]string, 0, len(cls.Prerequisites)+2)
	for _, p := range cls.Prerequisites {
		winner := p.Team
		if !p.NeedWin {
			winner = p.Opponent
		}
		if prev, ok := prereqOutcomes[p.MatchKey]; ok && prev != winner {
			// Both teams depend on the same pending match with incompatible
			// outcomes, so the shared group is out of reach.
			return &Result{
				Kind:   KindCannotMeet,
				Reason: ReasonUnreachable,
				Detail: fmt.Sprintf("%s and %s need conflicting outcomes of match %s", teamA, teamB, p.MatchKey),
			}, nil
		}
		prereqOutcomes[p.MatchKey] = winner
		exclude = append(exclude, p.MatchKey)
	}
	// A queried team already holding the target record keeps its own pending
	// match out of the enumeration: the query conditions on both teams being
	// in the group.
	for _, name := range []string{teamA, teamB} {
		if m, ok := stage.EarliestPending(name); ok {
			exclude = append(exclude, m.Key())
		}
	}

	impact := IdentifyImpactMatches(stage, cls.Target, exclude)

	scenarios, err := EnumerateScenarios(impact, winProbs)
	if err != nil {
		var missing *MissingProbabilityError
		if errors.As(err, &missing) {
			target := cls.Target
			return &Result{
				Kind:            KindNeedInput,
				Target:          &target,
				Prerequisites:   cls.Prerequisites,
				RequiredMatches: missing.Missing,
			}, nil
		}
		return nil, err
	}

	result := &Result{
		Kind:          KindCrossGroup,
		Prerequisites: cls.Prerequisites,
	}
	target := cls.Target
	result.Target = &target

	total := 0.0
	for _, sc := range scenarios {
		outcomes := make(map[string]string, len(prereqOutcomes)+len(sc.Outcomes))
		for k, v := range prereqOutcomes {
			outcomes[k] = v
		}
		for k, v := range sc.Outcomes {
			outcomes[k] = v
		}

		group, sim, err := SimulateGroup(stage, cls.Target, outcomes)
		if err != nil {
			return nil, err
		}
		// The already-played relation must come from the simulated stage:
		// the applied outcomes have extended it.
		stats, err := DirectProbability(group, sim.HavePlayed, teamA, teamB)
		if err != nil {
			return nil, err
		}

		result.Scenarios = append(result.Scenarios, ScenarioResult{
			Description: describeScenario(impact, sc.Outcomes),
			Outcomes:    sc.Outcomes,
			Probability: sc.Probability,
			Group:       group,
			Stats:       stats,
		})
		result.Probability += sc.Probability * stats.Probability
		total += sc.Probability
	}

	if math.Abs(total-1) > probabilityTolerance {
		return nil, fmt.Errorf("scenario probabilities sum to %g, want 1", total)
	}
	return result, nil
}

func describeScenario(impact []string, outcomes map[string]string) string {
	if len(impact) == 0 {
		return "no other pending match affects the group"
	}
	parts := make([]string, 0, len(impact))
	for _, key := range impact {
		winner := outcomes[key]
		a, b, err := models.SplitMatchKey(key)
		if err != nil {
			continue
		}
		loser := a
		if winner == a {
			loser = b
		}
		parts = append(parts, fmt.Sprintf("%s beats %s", winner, loser))
	}
	return strings.Join(parts, ", ")
}

func contains(sorted []string, name string) bool {
	i := sort.SearchStrings(sorted, name)
	return i < len(sorted) && sorted[i] == name
}
