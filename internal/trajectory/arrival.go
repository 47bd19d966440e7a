package trajectory

import (
	"fmt"
	"strings"
)

// ArrivalPolicy decides what happens to a ball once it reaches the plate.
type ArrivalPolicy int

const (
	// Freeze stops display updates; the ball stays where it was last drawn.
	Freeze ArrivalPolicy = iota
	// Hide removes the ball from view while keeping it registered.
	Hide
	// Continue keeps integrating past the plate.
	Continue
)

func (p ArrivalPolicy) String() string {
	switch p {
	case Freeze:
		return "freeze"
	case Hide:
		return "hide"
	case Continue:
		return "continue"
	}
	return fmt.Sprintf("ArrivalPolicy(%d)", int(p))
}

// ParseArrivalPolicy parses a config value. Empty selects Freeze.
func ParseArrivalPolicy(s string) (ArrivalPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "freeze":
		return Freeze, nil
	case "hide":
		return Hide, nil
	case "continue":
		return Continue, nil
	}
	return Freeze, fmt.Errorf("trajectory: unknown arrival policy %q", s)
}
