package assets

import (
	"encoding/binary"
	"math"
	"math/rand/v2"
	"sync"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

const SampleRate = 44100

// Wave selects the oscillator used by Tone.
type Wave string

const (
	WaveSine   Wave = "sine"
	WaveSquare Wave = "square"
	WaveNoise  Wave = "noise"
)

// Tone synthesises a short cue as 16-bit little-endian stereo PCM, the
// format ebiten's audio players read. freq slides linearly by slide Hz over
// the cue, and a linear decay envelope avoids clicks.
func Tone(wave Wave, freq, slide, secs float64) []byte {
	n := int(secs * SampleRate)
	if n <= 0 {
		return nil
	}
	out := make([]byte, n*4)
	rng := rand.New(rand.NewPCG(1, 2))
	phase := 0.0
	for i := 0; i < n; i++ {
		t := float64(i) / float64(n)
		f := freq + slide*t
		phase += 2 * math.Pi * f / SampleRate

		var s float64
		switch wave {
		case WaveSquare:
			if math.Sin(phase) >= 0 {
				s = 1
			} else {
				s = -1
			}
		case WaveNoise:
			s = rng.Float64()*2 - 1
		default:
			s = math.Sin(phase)
		}
		s *= 1 - t

		v := int16(s * 0.8 * math.MaxInt16)
		binary.LittleEndian.PutUint16(out[i*4:], uint16(v))
		binary.LittleEndian.PutUint16(out[i*4+2:], uint16(v))
	}
	return out
}

var (
	audioOnce    sync.Once
	audioContext *audio.Context
)

// Context returns the process-wide audio context, creating it on first use.
func Context() *audio.Context {
	audioOnce.Do(func() {
		audioContext = audio.NewContext(SampleRate)
	})
	return audioContext
}

// NewPlayer wraps PCM produced by Tone in an audio player.
func NewPlayer(pcm []byte) *audio.Player {
	return Context().NewPlayerFromBytes(pcm)
}
