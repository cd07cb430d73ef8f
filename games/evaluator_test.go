/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package games

import "testing"

func pair(left, right int) Round {
	return Round{
		Kind:  RoundPair,
		Left:  Item{ID: "a", Value: left},
		Right: Item{ID: "b", Value: right},
	}
}

func TestAgeEvaluator(t *testing.T) {
	tests := []struct {
		name  string
		round Round
		guess Guess
		want  Result
	}{
		{name: "older tie", round: pair(30, 30), guess: Guess{Direction: Older}, want: ResultCorrect},
		{name: "younger tie", round: pair(30, 30), guess: Guess{Direction: Younger}, want: ResultCorrect},
		{name: "older right", round: pair(30, 40), guess: Guess{Direction: Older}, want: ResultCorrect},
		{name: "older wrong", round: pair(40, 30), guess: Guess{Direction: Older}, want: ResultIncorrect},
		{name: "younger right", round: pair(40, 30), guess: Guess{Direction: Younger}, want: ResultCorrect},
		{name: "younger wrong", round: pair(30, 40), guess: Guess{Direction: Younger}, want: ResultIncorrect},
		{name: "no direction", round: pair(30, 40), guess: Guess{ItemID: "a"}, want: ResultNone},
		{name: "choice round", round: Round{Kind: RoundChoice}, guess: Guess{Direction: Older}, want: ResultNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AgeEvaluator.Evaluate(tt.round, tt.guess); got != tt.want {
				t.Fatalf("Evaluate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestChronologyEvaluator(t *testing.T) {
	r := pair(1800, 1900)

	tests := []struct {
		name string
		id   string
		want Result
	}{
		{name: "earlier selected", id: "a", want: ResultCorrect},
		{name: "later selected", id: "b", want: ResultIncorrect},
		{name: "not on screen", id: "zzz", want: ResultNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ChronologyEvaluator.Evaluate(r, Guess{ItemID: tt.id}); got != tt.want {
				t.Fatalf("Evaluate(%q) = %v, want %v", tt.id, got, tt.want)
			}
		})
	}

	if got := ChronologyEvaluator.Evaluate(pair(1900, 1900), Guess{ItemID: "b"}); got != ResultCorrect {
		t.Fatalf("same year should be correct, got %v", got)
	}
}

func TestMatchEvaluator(t *testing.T) {
	r := Round{
		Kind:    RoundChoice,
		Prompt:  Item{ID: "m1"},
		Options: []Item{{ID: "m3"}, {ID: "m1"}, {ID: "m2"}},
	}

	if got := MatchEvaluator.Evaluate(r, Guess{ItemID: "m1"}); got != ResultCorrect {
		t.Fatalf("correct option: got %v", got)
	}
	if got := MatchEvaluator.Evaluate(r, Guess{ItemID: "m2"}); got != ResultIncorrect {
		t.Fatalf("wrong option: got %v", got)
	}
	if got := MatchEvaluator.Evaluate(r, Guess{ItemID: "m9"}); got != ResultNone {
		t.Fatalf("option not offered: got %v", got)
	}
}
