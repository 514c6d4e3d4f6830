package component

import "github.com/hajimehoshi/ebiten/v2/audio"

// Audio holds named sound cues for an entity. Clips carry raw 16-bit stereo
// PCM; Players are created lazily by the audio system.
type Audio struct {
	Names   []string
	Clips   [][]byte
	Players []*audio.Player
	Volume  []float64
	Play    []bool
}

// Trigger marks the named cue to be played on the next audio update.
func (a *Audio) Trigger(name string) bool {
	if a == nil {
		return false
	}
	for i, n := range a.Names {
		if n == name && i < len(a.Play) {
			a.Play[i] = true
			return true
		}
	}
	return false
}

var AudioComponent = NewComponent[Audio]()
