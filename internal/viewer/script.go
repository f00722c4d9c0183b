package viewer

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/telisar/stardrift/internal/sim"
)

// ScriptAction is one scripted submission, fired at a simulation time
// offset. The optional fields mirror the wire shape.
type ScriptAction struct {
	AtMs   float64  `yaml:"at_ms"`
	Type   string   `yaml:"type"`
	Kind   string   `yaml:"kind,omitempty"`
	Rarity string   `yaml:"rarity,omitempty"`
	X      *float64 `yaml:"x,omitempty"`
	Y      *float64 `yaml:"y,omitempty"`
	Size   *float64 `yaml:"size,omitempty"`
	Speed  *float64 `yaml:"speed,omitempty"`
}

// Script is a timed list of viewer actions, used for headless replays and
// determinism checks.
type Script struct {
	Name    string         `yaml:"name,omitempty"`
	Actions []ScriptAction `yaml:"actions"`
}

// TimedAction is a compiled script entry: a valid action plus its firing
// time.
type TimedAction struct {
	AtMs   float64
	Action sim.ViewerAction
}

// LoadScript reads and parses a YAML script file.
func LoadScript(path string) (Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Script{}, fmt.Errorf("viewer: read script %s: %w", path, err)
	}
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Script{}, fmt.Errorf("viewer: parse script %s: %w", path, err)
	}
	return s, nil
}

// Compile normalizes every entry and returns them sorted by firing time.
// Ids are stable ("s0", "s1", ...) so two replays of the same script
// produce identical acknowledgement streams. An entry with an unknown type
// is an error: scripts are authored, not live traffic, and a typo should
// fail loudly.
func (s Script) Compile() ([]TimedAction, error) {
	compiled := make([]TimedAction, 0, len(s.Actions))
	for i, sa := range s.Actions {
		action, err := Normalize(Fields{
			ID:        fmt.Sprintf("s%d", i),
			Type:      sa.Type,
			Timestamp: 1, // Fixed so replays do not depend on wall time
			Kind:      sa.Kind,
			Rarity:    sa.Rarity,
			X:         sa.X,
			Y:         sa.Y,
			Size:      sa.Size,
			Speed:     sa.Speed,
		})
		if err != nil {
			return nil, fmt.Errorf("viewer: script entry %d: %w", i, err)
		}
		if sa.AtMs < 0 {
			return nil, fmt.Errorf("viewer: script entry %d: negative at_ms %v", i, sa.AtMs)
		}
		compiled = append(compiled, TimedAction{AtMs: sa.AtMs, Action: action})
	}
	sort.SliceStable(compiled, func(i, j int) bool {
		return compiled[i].AtMs < compiled[j].AtMs
	})
	return compiled, nil
}
