/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package games

import (
	"fmt"
	"sort"
	"strconv"
	"sync"
)

const DefaultChoices = 6

// Definition describes one trivia game: its pool, how rounds are built and
// judged, and how turns pass.
type Definition struct {
	ID           string
	Title        string
	Instructions string
	Description  string
	Badges       []string

	Kind      RoundKind
	Evaluator Evaluator
	Policy    Policy

	// Choices is the option count for choice rounds.
	Choices int

	// RevealAnchor shows the left value before the guess.
	RevealAnchor bool

	// Unit labels values on screen, e.g. "años".
	Unit string

	Pool Pool
}

// NewEngine returns a fresh engine for this game. A zero seed is allowed
// and is as good as any other.
func (d *Definition) NewEngine(seed uint64) *Engine {
	return newEngine(d, seed)
}

// FormatValue renders an item value for display. Games without a unit show
// years, with BC years marked "A.C.".
func (d *Definition) FormatValue(v int) string {
	if d.Unit != "" {
		return strconv.Itoa(v) + " " + d.Unit
	}
	if v < 0 {
		return strconv.Itoa(-v) + " A.C."
	}
	return strconv.Itoa(v)
}

// choices is the option count a choice round is dealt with.
func (d *Definition) choices() int {
	if d.Choices == 0 {
		return DefaultChoices
	}
	return d.Choices
}

func (d *Definition) minPool() int {
	if d.Kind == RoundChoice {
		return d.choices()
	}
	return 2
}

// Catalog is the set of games the site offers.
type Catalog struct {
	mu   sync.RWMutex
	defs map[string]*Definition
}

func NewCatalog() *Catalog {
	return &Catalog{
		defs: make(map[string]*Definition),
	}
}

// Register adds a game. It fails on a duplicate id or a pool that cannot
// fill a round.
func (c *Catalog) Register(def *Definition) error {
	if def.Evaluator == nil {
		return fmt.Errorf("game %q: missing evaluator", def.ID)
	}
	if n := def.Pool.Len(); n < def.minPool() {
		return fmt.Errorf("game %q: %w: have %d items, need %d", def.ID, ErrPoolTooSmall, n, def.minPool())
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.defs[def.ID]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateGame, def.ID)
	}

	if def.Kind == RoundChoice {
		def.Choices = def.choices()
	}
	c.defs[def.ID] = def

	return nil
}

func (c *Catalog) Get(id string) (*Definition, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	def, ok := c.defs[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownGame, id)
	}

	return def, nil
}

// List returns all registered games sorted by id.
func (c *Catalog) List() []*Definition {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]*Definition, 0, len(c.defs))
	for _, def := range c.defs {
		out = append(out, def)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].ID < out[j].ID
	})

	return out
}
