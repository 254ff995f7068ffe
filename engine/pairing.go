package engine

import (
	"fmt"
	"sort"

	"github.com/Davie521/LeagueSwissStageProbability/models"
)

// MaxGroupSize bounds the pairing enumeration. The matching count grows as
// the double factorial of the group size, so anything past this is a data
// error rather than a workload.
const MaxGroupSize = 16

// Pair is an unordered team pairing, stored with A < B.
type Pair struct {
	A string `json:"a"`
	B string `json:"b"`
}

func NewPair(a, b string) Pair {
	if b < a {
		a, b = b, a
	}
	return Pair{A: a, B: b}
}

func (p Pair) Key() string {
	return models.MatchKey(p.A, p.B)
}

// Matching is one complete pairing of a record group: disjoint pairs
// covering every member exactly once.
type Matching []Pair

func (m Matching) Contains(a, b string) bool {
	want := NewPair(a, b)
	for _, p := range m {
		if p == want {
			return true
		}
	}
	return false
}

// PlayedFunc is the already-played relation: it reports whether two teams
// have previously faced each other and therefore cannot be paired again.
type PlayedFunc func(a, b string) bool

// EnumeratePairings generates every valid complete pairing of the group
// under the no-repeat-opponent constraint.
//
// The search always extends the lexicographically lowest unpaired member.
// The fixed anchor matters: it guarantees each complete matching is built
// exactly once, where picking "any two remaining" would count every
// matching multiple times.
func EnumeratePairings(teamIDs []string, played PlayedFunc) ([]Matching, error) {
	if len(teamIDs)%2 != 0 {
		return nil, fmt.Errorf("%w: %d teams", ErrOddGroupSize, len(teamIDs))
	}
	if len(teamIDs) > MaxGroupSize {
		return nil, fmt.Errorf("%w: %d teams, limit %d", ErrGroupSizeExceeded, len(teamIDs), MaxGroupSize)
	}
	if len(teamIDs) == 0 {
		return []Matching{{}}, nil
	}
	if played == nil {
		played = func(string, string) bool { return false }
	}

	ids := make([]string, len(teamIDs))
	copy(ids, teamIDs)
	sort.Strings(ids)

	var (
		results []Matching
		current Matching
		paired  = make([]bool, len(ids))
	)

	var backtrack func(done int)
	backtrack = func(done int) {
		if done == len(ids) {
			complete := make(Matching, len(current))
			copy(complete, current)
			results = append(results, complete)
			return
		}

		anchor := -1
		for i, p := range paired {
			if !p {
				anchor = i
				break
			}
		}

		paired[anchor] = true
		for j := anchor + 1; j < len(ids); j++ {
			if paired[j] || played(ids[anchor], ids[j]) {
				continue
			}
			paired[j] = true
			current = append(current, NewPair(ids[anchor], ids[j]))
			backtrack(done + 2)
			current = current[:len(current)-1]
			paired[j] = false
		}
		paired[anchor] = false
	}

	backtrack(0)
	return results, nil
}
