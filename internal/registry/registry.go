// Package registry maps game IDs to factories. Modes register from init(),
// so the CLI and the SSH server can start them by name.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-gems/internal/core"
)

// Game is a playable mode driven by the platform tick loop. Implementations
// hold no Bubble Tea state; input arrives as frames and output goes to a
// core.Screen.
type Game interface {
	// ID is the key used on the command line and in the scores table.
	ID() string
	Title() string

	// Reset (re)starts play. It runs before the first Step and on restart.
	Reset(cfg core.RuntimeConfig)

	// Step advances one tick with the input collected since the last one.
	Step(in core.InputFrame) core.StepResult

	Render(dst *core.Screen)
	State() core.GameState
}

// Resizer is implemented by games that can follow a terminal resize
// without being reset.
type Resizer interface {
	Resize(w, h int)
}

// Leveled is implemented by games played level by level, so the platform
// can record progress when a level ends.
type Leveled interface {
	LevelID() string
	// NextLevelID returns the level unlocked by winning, or "".
	NextLevelID() string
}

// Controller is implemented by games that describe their key bindings.
type Controller interface {
	Controls() string
}

// GameInfo describes a registered mode for listings.
type GameInfo struct {
	ID    string
	Title string
}

// Factory is a function that creates a new instance of a game.
type Factory func() Game

type entry struct {
	info GameInfo
	make Factory
}

var (
	mu      sync.RWMutex
	entries = map[string]entry{}
)

// Register makes a mode available under id. It is meant for init().
// Registering an empty or taken id panics.
func Register(id string, f Factory) {
	if id == "" || f == nil {
		panic("registry: Register needs an id and a factory")
	}
	title := f().Title()

	mu.Lock()
	defer mu.Unlock()
	if _, taken := entries[id]; taken {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}
	entries[id] = entry{info: GameInfo{ID: id, Title: title}, make: f}
}

// List returns the registered modes ordered by ID.
func List() []GameInfo {
	mu.RLock()
	out := make([]GameInfo, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.info)
	}
	mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Create returns a fresh game for id.
func Create(id string) (Game, error) {
	mu.RLock()
	e, ok := entries[id]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return e.make(), nil
}

// Exists reports whether id is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()
	_, ok := entries[id]
	return ok
}
