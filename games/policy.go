/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package games

import (
	"fmt"
	"slices"
)

type Turn int

const (
	Stay Turn = iota
	Advance
)

// Policy decides who plays the next round after a hit or a miss.
type Policy struct {
	OnHit  Turn
	OnMiss Turn
}

var (
	AdvanceOnMiss = Policy{OnHit: Stay, OnMiss: Advance}
	AdvanceOnHit  = Policy{OnHit: Advance, OnMiss: Stay}
	AdvanceAlways = Policy{OnHit: Advance, OnMiss: Advance}
)

// ParsePolicy maps the config names miss, hit and always to a policy.
func ParsePolicy(name string) (Policy, error) {
	switch name {
	case "miss":
		return AdvanceOnMiss, nil
	case "hit":
		return AdvanceOnHit, nil
	case "always":
		return AdvanceAlways, nil
	default:
		return Policy{}, fmt.Errorf("unknown turn policy %q (want miss, hit or always)", name)
	}
}

func (p Policy) turn(r Result) Turn {
	if r == ResultCorrect {
		return p.OnHit
	}
	return p.OnMiss
}

// advance returns the index of the next player, or false when the last
// player has finished and the session is over.
func (p Policy) advance(players []Player, active int, r Result) (int, bool) {
	if p.turn(r) == Stay {
		return active, true
	}
	if active+1 >= len(players) {
		return active, false
	}
	return active + 1, true
}

// award returns a copy of players with one point added to the active seat.
func award(players []Player, active int) []Player {
	out := slices.Clone(players)
	out[active].Score++
	return out
}
