// internal/defs/loader.go
package defs

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed enemies.yaml
var defaultRosterYAML []byte

// ErrEmptyRoster is returned when a roster file defines no enemies.
var ErrEmptyRoster = errors.New("roster has no enemies")

// LoadRoster reads an enemy roster file. YAML and JSON are both accepted.
func LoadRoster(path string) (Roster, error) {
	file, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read enemy roster file: %w", err)
	}
	roster, err := ParseRoster(file)
	if err != nil {
		return nil, fmt.Errorf("failed to load enemy roster %s: %w", path, err)
	}
	return roster, nil
}

// DefaultRoster returns the embedded stock roster.
func DefaultRoster() Roster {
	roster, err := ParseRoster(defaultRosterYAML)
	if err != nil {
		return nil
	}
	return roster
}

// ParseRoster decodes and validates a roster document.
func ParseRoster(data []byte) (Roster, error) {
	var enemyDefs []EnemyDefinition
	if err := yaml.Unmarshal(data, &enemyDefs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal enemy definitions: %w", err)
	}
	if len(enemyDefs) == 0 {
		return nil, ErrEmptyRoster
	}

	seen := make(map[string]struct{}, len(enemyDefs))
	for i, def := range enemyDefs {
		if def.ID == "" {
			return nil, fmt.Errorf("enemy %d: missing id", i)
		}
		if _, dup := seen[def.ID]; dup {
			return nil, fmt.Errorf("enemy %s: duplicate id", def.ID)
		}
		seen[def.ID] = struct{}{}
		if def.Cost <= 0 {
			return nil, fmt.Errorf("enemy %s: cost must be positive, got %d", def.ID, def.Cost)
		}
	}
	return NewRoster(enemyDefs), nil
}
