package engine

import (
	"fmt"
	"sort"

	"github.com/Davie521/LeagueSwissStageProbability/models"
)

// MaxImpactMatches bounds the scenario enumeration at 2^12 combinations.
const MaxImpactMatches = 12

// Scenario is one combination of outcomes for all impact matches, with its
// joint occurrence probability. Outcomes maps a match key to the winner.
type Scenario struct {
	Outcomes    map[string]string `json:"outcomes"`
	Probability float64           `json:"probability"`
}

// IdentifyImpactMatches lists the pending matches, other than the excluded
// prerequisites, whose outcome changes the membership of the target record
// group: a participant would enter the group on a win or a loss, or already
// holds the target record and would leave it either way. The result follows
// draw order, so it is deterministic for a given stage.
func IdentifyImpactMatches(stage *models.SwissStage, target models.GroupKey, exclude []string) []string {
	excluded := make(map[string]bool, len(exclude))
	for _, key := range exclude {
		excluded[key] = true
	}

	var keys []string
	for _, m := range stage.PendingMatches() {
		key := m.Key()
		if excluded[key] {
			continue
		}
		if touchesGroup(stage, m.TeamA, target) || touchesGroup(stage, m.TeamB, target) {
			keys = append(keys, key)
		}
	}
	return keys
}

func touchesGroup(stage *models.SwissStage, team string, target models.GroupKey) bool {
	t, ok := stage.Team(team)
	if !ok || stage.StatusOf(t) != models.StatusActive {
		return false
	}
	rec := t.Record()
	switch {
	case rec == target:
		return true // leaves the group whichever way the match goes
	case rec.Wins+1 == target.Wins && rec.Losses == target.Losses:
		return true // enters on a win
	case rec.Wins == target.Wins && rec.Losses+1 == target.Losses:
		return true // enters on a loss
	}
	return false
}

// EnumerateScenarios expands the impact matches into all 2^k outcome
// combinations. winProbs maps each match key to the probability that the
// lexicographically first side of the key wins. A nil or incomplete map
// yields a MissingProbabilityError naming exactly the matches that still
// need input.
func EnumerateScenarios(impact []string, winProbs map[string]float64) ([]Scenario, error) {
	if len(impact) > MaxImpactMatches {
		return nil, fmt.Errorf("%w: %d matches, limit %d", ErrImpactMatchesExceeded, len(impact), MaxImpactMatches)
	}

	var missing []string
	for _, key := range impact {
		p, ok := winProbs[key]
		if !ok {
			missing = append(missing, key)
			continue
		}
		if p < 0 || p > 1 {
			return nil, fmt.Errorf("win probability for %s out of range: %g", key, p)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingProbabilityError{Missing: missing}
	}

	type side struct {
		ref, other string
	}
	sides := make([]side, len(impact))
	for i, key := range impact {
		ref, other, err := models.SplitMatchKey(key)
		if err != nil {
			return nil, err
		}
		sides[i] = side{ref: ref, other: other}
	}

	scenarios := make([]Scenario, 0, 1<<len(impact))
	for mask := 0; mask < 1<<len(impact); mask++ {
		outcomes := make(map[string]string, len(impact))
		joint := 1.0
		for i, key := range impact {
			p := winProbs[key]
			if mask&(1<<i) == 0 {
				outcomes[key] = sides[i].ref
				joint *= p
			} else {
				outcomes[key] = sides[i].other
				joint *= 1 - p
			}
		}
		scenarios = append(scenarios, Scenario{Outcomes: outcomes, Probability: joint})
	}
	return scenarios, nil
}

// SimulateGroup applies the given match outcomes to an isolated copy of the
// stage and returns the resulting target-group membership together with the
// simulated stage. The source stage is never mutated; the simulated stage is
// what downstream pairing computations must derive the already-played
// relation from.
func SimulateGroup(stage *models.SwissStage, target models.GroupKey, outcomes map[string]string) ([]string, *models.SwissStage, error) {
	sim := stage.Clone()

	keys := make([]string, 0, len(outcomes))
	for key := range outcomes {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if err := sim.ApplyWinner(key, outcomes[key]); err != nil {
			return nil, nil, fmt.Errorf("simulate %s: %w", key, err)
		}
	}
	return sim.RecordGroup(target), sim, nil
}
