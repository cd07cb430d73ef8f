/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

// Package pool loads the read-only item datasets the games draw from.
// Datasets are embedded in the binary and may be overridden, per file, from
// a directory on disk.
package pool

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Seednode/triviabox/games"
)

const (
	Celebrities = "celebrities"
	Inventions  = "inventions"
	Movies      = "movies"
)

//go:embed data/*.yaml
var embedded embed.FS

type itemEntry struct {
	ID     string `yaml:"id"`
	Name   string `yaml:"name"`
	Value  int    `yaml:"value"`
	Image  string `yaml:"image"`
	Role   string `yaml:"role"`
	Genre  string `yaml:"genre"`
	Emojis string `yaml:"emojis"`
}

// required lists the fields a dataset needs beyond id and name.
var required = map[string][]string{
	Movies: {"emojis", "genre"},
}

func (e itemEntry) field(name string) string {
	switch name {
	case "emojis":
		return e.Emojis
	case "genre":
		return e.Genre
	default:
		return ""
	}
}

type datasetFile struct {
	Items []itemEntry `yaml:"items"`
}

// Set holds every dataset used by the built-in games.
type Set struct {
	Celebrities games.Pool
	Inventions  games.Pool
	Movies      games.Pool
}

// LoadAll loads the three built-in datasets. dir may be empty.
func LoadAll(dir string) (Set, error) {
	var (
		s   Set
		err error
	)

	if s.Celebrities, err = Load(dir, Celebrities); err != nil {
		return Set{}, err
	}
	if s.Inventions, err = Load(dir, Inventions); err != nil {
		return Set{}, err
	}
	if s.Movies, err = Load(dir, Movies); err != nil {
		return Set{}, err
	}

	return s, nil
}

// Load reads the named dataset.
// Search order: <dir>/<name>.yaml -> embedded default.
// A file that exists in dir but cannot be parsed is an error, not a fallback.
func Load(dir, name string) (games.Pool, error) {
	data, source, err := read(dir, name)
	if err != nil {
		return games.Pool{}, err
	}

	var f datasetFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return games.Pool{}, fmt.Errorf("pool: failed to parse %s: %w", source, err)
	}

	items, err := convert(f.Items, required[name])
	if err != nil {
		return games.Pool{}, fmt.Errorf("pool: %s: %w", source, err)
	}

	return games.NewPool(items), nil
}

func read(dir, name string) ([]byte, string, error) {
	file := name + ".yaml"

	if dir != "" {
		path := filepath.Join(dir, file)

		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			return data, path, nil
		case !errors.Is(err, os.ErrNotExist):
			return nil, path, fmt.Errorf("pool: failed to read %s: %w", path, err)
		}
	}

	data, err := embedded.ReadFile("data/" + file)
	if err != nil {
		return nil, file, fmt.Errorf("pool: unknown dataset %q", name)
	}

	return data, "embedded " + file, nil
}

func convert(entries []itemEntry, fields []string) ([]games.Item, error) {
	if len(entries) == 0 {
		return nil, errors.New("no items")
	}

	seen := make(map[string]struct{}, len(entries))
	out := make([]games.Item, 0, len(entries))

	for i, e := range entries {
		id := strings.TrimSpace(e.ID)
		if id == "" {
			return nil, fmt.Errorf("item %d: missing id", i)
		}
		if strings.TrimSpace(e.Name) == "" {
			return nil, fmt.Errorf("item %q: missing name", id)
		}
		for _, field := range fields {
			if strings.TrimSpace(e.field(field)) == "" {
				return nil, fmt.Errorf("item %q: missing %s", id, field)
			}
		}
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("duplicate id %q", id)
		}
		seen[id] = struct{}{}

		out = append(out, games.Item{
			ID:     id,
			Name:   e.Name,
			Value:  e.Value,
			Image:  e.Image,
			Role:   e.Role,
			Genre:  e.Genre,
			Prompt: e.Emojis,
		})
	}

	return out, nil
}

// Upcoming is a teaser for a game that is not playable yet.
type Upcoming struct {
	ID     string   `yaml:"id"`
	Title  string   `yaml:"title"`
	Badges []string `yaml:"badges"`
}

// LoadUpcoming returns the coming-soon list shown on the landing page.
func LoadUpcoming() ([]Upcoming, error) {
	data, err := embedded.ReadFile("data/upcoming.yaml")
	if err != nil {
		return nil, err
	}

	var f struct {
		Games []Upcoming `yaml:"games"`
	}
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("pool: failed to parse upcoming.yaml: %w", err)
	}

	return f.Games, nil
}
