/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package games

import (
	"fmt"
	"math/rand/v2"
)

const (
	MinPlayers = 1
	MaxPlayers = 6
)

// Engine runs sessions of a single game. It owns the random source, so an
// Engine must only be used from one goroutine.
type Engine struct {
	def      *Definition
	selector *Selector
}

func newEngine(def *Definition, seed uint64) *Engine {
	return &Engine{
		def:      def,
		selector: NewSelector(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))),
	}
}

func (e *Engine) Definition() *Definition {
	return e.def
}

// Start seats n players and deals the first round.
func (e *Engine) Start(s Session, n int) (Session, error) {
	if s.Phase != PhaseStart {
		return s, nil
	}
	if n < MinPlayers || n > MaxPlayers {
		return s, fmt.Errorf("%w: %d (must be %d-%d)", ErrPlayerCount, n, MinPlayers, MaxPlayers)
	}

	players := make([]Player, n)
	for i := range players {
		players[i] = Player{
			Index: i,
			Name:  fmt.Sprintf("Jugador %d", i+1),
		}
	}

	next := Session{
		Phase:   PhasePlaying,
		Step:    StepAwaitingGuess,
		Players: players,
		Active:  0,
	}
	next.Round, next.Used = e.deal(UsedSet{}, nil)

	return next, nil
}

// deal draws the next round. For pair games a non-nil previous round keeps
// its right item as the new left item.
func (e *Engine) deal(used UsedSet, prev *Round) (Round, UsedSet) {
	if e.def.Kind == RoundChoice {
		prompt, options, used := e.selector.PickChoice(e.def.Pool, used, e.def.choices())
		return Round{Kind: RoundChoice, Prompt: prompt, Options: options}, used
	}

	var anchor *Item
	if prev != nil {
		right := prev.Right
		anchor = &right
	}

	left, right, used := e.selector.PickPair(e.def.Pool, used, anchor)
	return Round{Kind: RoundPair, Left: left, Right: right}, used
}

// Submit evaluates a guess from the active player. It does nothing unless
// the session is waiting for a guess and the guess fits the round.
func (e *Engine) Submit(s Session, g Guess) Session {
	if s.Phase != PhasePlaying || s.Step != StepAwaitingGuess {
		return s
	}

	result := e.def.Evaluator.Evaluate(s.Round, g)
	if result == ResultNone {
		return s
	}

	next := s
	next.Step = StepShowingFeedback
	next.Round.Feedback = result
	if result == ResultCorrect {
		next.Players = award(s.Players, s.Active)
	}

	return next
}

// Settle is called by the presentation layer once its feedback animation
// has finished. It has no effect on who plays next.
func (e *Engine) Settle(s Session) Session {
	if s.Phase != PhasePlaying || s.Step != StepShowingFeedback {
		return s
	}

	next := s
	next.Step = StepAwaitingNext
	return next
}

// Next moves past the feedback of the current round, either into a new
// round or to game over.
func (e *Engine) Next(s Session) Session {
	if s.Phase != PhasePlaying {
		return s
	}
	if s.Step != StepShowingFeedback && s.Step != StepAwaitingNext {
		return s
	}

	active, ok := e.def.Policy.advance(s.Players, s.Active, s.Round.Feedback)
	if !ok {
		return Session{
			Phase:   PhaseGameOver,
			Players: s.Players,
			Active:  s.Active,
			Round:   s.Round,
			Used:    s.Used,
		}
	}

	next := Session{
		Phase:       PhasePlaying,
		Step:        StepAwaitingGuess,
		Players:     s.Players,
		Active:      active,
		TurnChanged: active != s.Active,
	}
	prev := s.Round
	next.Round, next.Used = e.deal(s.Used, &prev)

	return next
}

// Reset discards everything and returns to the start screen.
func (e *Engine) Reset(Session) Session {
	return Session{}
}
