/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"time"

	"github.com/Seednode/triviabox/games"
	"github.com/Seednode/triviabox/pool"
)

// newCatalog loads the datasets and registers the three built-in games.
func newCatalog(cfg *Config) (*games.Catalog, error) {
	sets, err := pool.LoadAll(cfg.poolDir)
	if err != nil {
		return nil, err
	}

	policy, err := games.ParsePolicy(cfg.pelimojisTurns)
	if err != nil {
		return nil, err
	}

	catalog := games.NewCatalog()

	for _, def := range []*games.Definition{
		games.NewAgeGame(sets.Celebrities),
		games.NewChronologyGame(sets.Inventions),
		games.NewMatchGame(sets.Movies, policy),
	} {
		if err := catalog.Register(def); err != nil {
			return nil, err
		}
	}

	return catalog, nil
}

// sessionSeed returns the configured seed, or a time-based one.
func sessionSeed(cfg *Config) uint64 {
	if cfg.seed != 0 {
		return cfg.seed
	}
	return uint64(time.Now().UnixNano())
}
