/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package games

// Evaluator decides whether a guess is right for the round on screen.
// ResultNone means the guess does not apply to the round.
type Evaluator interface {
	Evaluate(r Round, g Guess) Result
}

type EvaluatorFunc func(r Round, g Guess) Result

func (f EvaluatorFunc) Evaluate(r Round, g Guess) Result {
	return f(r, g)
}

func verdict(ok bool) Result {
	if ok {
		return ResultCorrect
	}
	return ResultIncorrect
}

// AgeEvaluator asks whether the right item is older or younger than the
// left one. Equal values are correct in both directions.
var AgeEvaluator = EvaluatorFunc(func(r Round, g Guess) Result {
	if r.Kind != RoundPair {
		return ResultNone
	}

	switch g.Direction {
	case Older:
		return verdict(r.Right.Value >= r.Left.Value)
	case Younger:
		return verdict(r.Right.Value <= r.Left.Value)
	default:
		return ResultNone
	}
})

// ChronologyEvaluator asks the player to pick the earlier of two items.
var ChronologyEvaluator = EvaluatorFunc(func(r Round, g Guess) Result {
	if r.Kind != RoundPair {
		return ResultNone
	}

	switch g.ItemID {
	case r.Left.ID:
		return verdict(r.Left.Value <= r.Right.Value)
	case r.Right.ID:
		return verdict(r.Right.Value <= r.Left.Value)
	default:
		return ResultNone
	}
})

// MatchEvaluator accepts only the option matching the prompt.
var MatchEvaluator = EvaluatorFunc(func(r Round, g Guess) Result {
	if r.Kind != RoundChoice || !r.Has(g.ItemID) {
		return ResultNone
	}
	return verdict(g.ItemID == r.Prompt.ID)
})
