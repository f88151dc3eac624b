// Package audio plays the shooter's sound effects through the system
// speaker. Effects are synthesized on demand and mixed into one stream.
package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/skyraid/internal/shooter"
)

const (
	sampleRate = beep.SampleRate(44100)
	bufferSize = 100 * time.Millisecond

	// maxVoices caps simultaneous effects so bursts of blasts stay audible
	// without clipping.
	maxVoices = 8
)

// Manager implements shooter.SoundPlayer on top of a beep mixer. The
// speaker streams the mixer from its own goroutine.
type Manager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	gain        float64
	initialized bool
}

var _ shooter.SoundPlayer = (*Manager)(nil)

// NewManager creates a manager with the given master gain in [0, 1].
func NewManager(gain float64) *Manager {
	return &Manager{
		mixer: &beep.Mixer{},
		gain:  gain,
	}
}

// Initialize opens the speaker. It must be called once before Play has
// any effect.
func (m *Manager) Initialize() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(bufferSize)); err != nil {
		return fmt.Errorf("audio: cannot init speaker: %w", err)
	}
	speaker.Play(m.mixer)
	m.initialized = true
	return nil
}

// Play queues a sound effect. It never blocks on playback.
func (m *Manager) Play(id shooter.SoundID) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return
	}
	s := Synthesize(id, sampleRate, m.gain)
	if s == nil {
		return
	}

	speaker.Lock()
	if m.mixer.Len() < maxVoices {
		m.mixer.Add(s)
	}
	speaker.Unlock()
}

// Close silences everything and releases the speaker.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return
	}
	speaker.Lock()
	m.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	m.initialized = false
}
