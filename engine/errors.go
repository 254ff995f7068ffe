package engine

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrOddGroupSize is returned when pairing enumeration is requested on a
	// group with an odd number of members. That is a caller/data error, not a
	// condition the engine resolves.
	ErrOddGroupSize = errors.New("record group has an odd number of members")

	// ErrGroupSizeExceeded guards the pairing enumeration against unbounded
	// combinatorial blowup.
	ErrGroupSizeExceeded = errors.New("record group exceeds the enumeration bound")

	// ErrImpactMatchesExceeded guards the scenario enumeration the same way.
	ErrImpactMatchesExceeded = errors.New("too many impact matches to enumerate")

	ErrUnknownTeam = errors.New("unknown team")
	ErrSameTeam    = errors.New("a team cannot be matched against itself")
)

// MissingProbabilityError reports the impact matches for which the caller
// supplied no win probability. It is the trigger for the NEED_INPUT result:
// the caller obtains the probabilities and invokes the engine again.
type MissingProbabilityError struct {
	Missing []string
}

func (e *MissingProbabilityError) Error() string {
	return fmt.Sprintf("missing win probabilities for matches: %s", strings.Join(e.Missing, ", "))
}
