/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package games

import (
	"cmp"
	"slices"
)

type Phase int

const (
	PhaseStart Phase = iota
	PhasePlaying
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhasePlaying:
		return "playing"
	case PhaseGameOver:
		return "gameover"
	default:
		return "start"
	}
}

// Step is the position inside a round while the session is playing.
type Step int

const (
	StepAwaitingGuess Step = iota
	StepShowingFeedback
	StepAwaitingNext
)

func (s Step) String() string {
	switch s {
	case StepShowingFeedback:
		return "feedback"
	case StepAwaitingNext:
		return "next"
	default:
		return "guess"
	}
}

type Result int

const (
	ResultNone Result = iota
	ResultCorrect
	ResultIncorrect
)

func (r Result) String() string {
	switch r {
	case ResultCorrect:
		return "correct"
	case ResultIncorrect:
		return "incorrect"
	default:
		return ""
	}
}

type Direction string

const (
	Older   Direction = "older"
	Younger Direction = "younger"
)

// Guess is one player answer. Direction is used by the age game, ItemID by
// the chronology and matching games.
type Guess struct {
	Direction Direction
	ItemID    string
}

type Player struct {
	Index int
	Name  string
	Score int
}

type RoundKind int

const (
	RoundPair RoundKind = iota
	RoundChoice
)

// Round is what is currently on screen. Pair rounds fill Left and Right,
// choice rounds fill Prompt and Options.
type Round struct {
	Kind     RoundKind
	Left     Item
	Right    Item
	Prompt   Item
	Options  []Item
	Feedback Result
}

// Has reports whether id is one of the items the player can pick.
func (r Round) Has(id string) bool {
	if r.Kind == RoundChoice {
		return slices.ContainsFunc(r.Options, func(it Item) bool { return it.ID == id })
	}
	return id == r.Left.ID || id == r.Right.ID
}

// Session is the whole state of one play-through. It is a value: engine
// operations return a new Session and leave their input untouched.
type Session struct {
	Phase   Phase
	Step    Step
	Players []Player
	Active  int
	Round   Round
	Used    UsedSet

	// TurnChanged is set when the last Next moved play to another player.
	TurnChanged bool
}

// ActivePlayer returns the player whose turn it is, if the session is playing.
func (s Session) ActivePlayer() (Player, bool) {
	if s.Phase != PhasePlaying || s.Active < 0 || s.Active >= len(s.Players) {
		return Player{}, false
	}
	return s.Players[s.Active], true
}

// Standings returns the players ordered by score, highest first. Ties keep
// seat order.
func (s Session) Standings() []Player {
	out := slices.Clone(s.Players)
	slices.SortStableFunc(out, func(a, b Player) int {
		return cmp.Compare(b.Score, a.Score)
	})
	return out
}
