/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package games

// Item is a single comparable entity in a pool.
type Item struct {
	ID    string
	Name  string
	Value int
	Image string

	// Role is the caption shown under a celebrity.
	Role string

	// Genre and Prompt are only set for the matching game.
	Genre  string
	Prompt string
}

// Pool is an immutable, ordered set of items.
type Pool struct {
	items []Item
	index map[string]int
}

// NewPool copies items into a new pool. If an id repeats, Lookup returns
// the first occurrence.
func NewPool(items []Item) Pool {
	p := Pool{
		items: make([]Item, len(items)),
		index: make(map[string]int, len(items)),
	}
	copy(p.items, items)

	for i, it := range p.items {
		if _, ok := p.index[it.ID]; !ok {
			p.index[it.ID] = i
		}
	}

	return p
}

func (p Pool) Len() int {
	return len(p.items)
}

// Items returns a copy of the pool contents.
func (p Pool) Items() []Item {
	out := make([]Item, len(p.items))
	copy(out, p.items)
	return out
}

func (p Pool) Lookup(id string) (Item, bool) {
	i, ok := p.index[id]
	if !ok {
		return Item{}, false
	}
	return p.items[i], true
}

// UsedSet holds the ids already shown in a session. It is never modified in
// place; With returns a new set.
type UsedSet map[string]struct{}

func (u UsedSet) Has(id string) bool {
	_, ok := u[id]
	return ok
}

func (u UsedSet) With(ids ...string) UsedSet {
	out := make(UsedSet, len(u)+len(ids))
	for id := range u {
		out[id] = struct{}{}
	}
	for _, id := range ids {
		out[id] = struct{}{}
	}
	return out
}
