// Package session holds game-wide state shared between systems.
package session

import "fmt"

// State is the single owner of cross-system game state. Systems receive it
// explicitly instead of reaching for globals.
type State struct {
	// Level is the index of the current room, starting at 0.
	Level int
	// Spawned is the level whose room was last built.
	Spawned int
	Kills   int
}

func New() *State {
	return &State{Spawned: -1}
}

// Advance moves to the next level and returns it.
func (s *State) Advance() int {
	s.Level++
	s.Kills++
	return s.Level
}

// NeedsSpawn reports whether the current level's room has not been built.
func (s *State) NeedsSpawn() bool {
	return s.Spawned != s.Level
}

// LevelLabel is the HUD text for a level index.
func LevelLabel(level int) string {
	return fmt.Sprintf("Level %d", level+1)
}
