/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package games

import (
	"math/rand/v2"
)

// Selector draws items from a pool without repeats until the pool runs
// low, then recycles.
type Selector struct {
	rng *rand.Rand
}

func NewSelector(rng *rand.Rand) *Selector {
	return &Selector{rng: rng}
}

// available returns the unused items, recycling the used set when fewer
// than two remain.
func available(pool Pool, used UsedSet) ([]Item, UsedSet) {
	out := make([]Item, 0, pool.Len())
	for _, it := range pool.items {
		if !used.Has(it.ID) {
			out = append(out, it)
		}
	}

	if len(out) < 2 {
		return pool.Items(), UsedSet{}
	}

	return out, used
}

func without(items []Item, id string) []Item {
	out := make([]Item, 0, len(items))
	for _, it := range items {
		if it.ID != id {
			out = append(out, it)
		}
	}
	return out
}

func (s *Selector) pick(items []Item) Item {
	return items[s.rng.IntN(len(items))]
}

// PickNext draws one unused item and returns it along with the updated used
// set. The pool must not be empty.
func (s *Selector) PickNext(pool Pool, used UsedSet) (Item, UsedSet) {
	candidates, used := available(pool, used)
	it := s.pick(candidates)
	return it, used.With(it.ID)
}

// PickPair draws the next comparison pair. With a nil anchor both sides are
// fresh; otherwise the anchor stays on the left and only the right side is
// drawn.
func (s *Selector) PickPair(pool Pool, used UsedSet, anchor *Item) (Item, Item, UsedSet) {
	candidates, used := available(pool, used)

	if anchor == nil {
		if len(candidates) < 2 {
			it := s.pick(candidates)
			return it, it, used.With(it.ID)
		}

		perm := s.rng.Perm(len(candidates))
		left, right := candidates[perm[0]], candidates[perm[1]]
		return left, right, used.With(left.ID, right.ID)
	}

	left := *anchor

	rest := without(candidates, left.ID)
	if len(rest) == 0 {
		rest = without(pool.items, left.ID)
	}
	if len(rest) == 0 {
		// single-item pool
		return left, left, used.With(left.ID)
	}

	right := s.pick(rest)
	return left, right, used.With(left.ID, right.ID)
}

// PickChoice draws a prompt and n options containing it exactly once.
// Distractors of the prompt's genre are preferred. If the pool holds fewer
// than n items every item is offered.
func (s *Selector) PickChoice(pool Pool, used UsedSet, n int) (Item, []Item, UsedSet) {
	prompt, used := s.PickNext(pool, used)

	var same, other []Item
	for _, it := range pool.items {
		switch {
		case it.ID == prompt.ID:
		case prompt.Genre != "" && it.Genre == prompt.Genre:
			same = append(same, it)
		default:
			other = append(other, it)
		}
	}

	s.shuffle(same)
	s.shuffle(other)

	options := make([]Item, 0, n)
	options = append(options, prompt)
	for _, it := range append(same, other...) {
		if len(options) == n {
			break
		}
		options = append(options, it)
	}
	s.shuffle(options)

	return prompt, options, used
}

func (s *Selector) shuffle(items []Item) {
	s.rng.Shuffle(len(items), func(i, j int) {
		items[i], items[j] = items[j], items[i]
	})
}
