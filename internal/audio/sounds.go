package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"

	"github.com/vovakirdan/skyraid/internal/shooter"
)

// Durations of the synthesized effects.
const (
	blastDuration  = 400 * time.Millisecond
	hitDuration    = 120 * time.Millisecond
	laserDuration  = 90 * time.Millisecond
	pickupNote     = 70 * time.Millisecond
	releaseDefault = 30 * time.Millisecond
)

// sweep is a sine oscillator whose frequency glides linearly from one
// value to another over a fixed number of samples.
type sweep struct {
	rate     beep.SampleRate
	from, to float64
	total    int
	pos      int
	phase    float64
}

func newSweep(rate beep.SampleRate, from, to float64, d time.Duration) *sweep {
	return &sweep{rate: rate, from: from, to: to, total: rate.N(d)}
}

func (s *sweep) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if s.pos >= s.total {
			return i, i > 0
		}
		progress := float64(s.pos) / float64(s.total)
		freq := s.from + (s.to-s.from)*progress

		v := math.Sin(2 * math.Pi * s.phase)
		samples[i][0] = v
		samples[i][1] = v

		s.phase += freq / float64(s.rate)
		s.phase -= math.Floor(s.phase)
		s.pos++
	}
	return len(samples), true
}

func (s *sweep) Err() error { return nil }

// noise returns white noise with an exponential decay, the body of an
// explosion.
func noise(rate beep.SampleRate, d time.Duration, seed int64) beep.Streamer {
	rng := rand.New(rand.NewSource(seed))
	total := rate.N(d)
	pos := 0
	return beep.StreamerFunc(func(samples [][2]float64) (n int, ok bool) {
		for i := range samples {
			if pos >= total {
				return i, i > 0
			}
			t := float64(pos) / float64(rate)
			v := (rng.Float64()*2 - 1) * math.Exp(-t*7)
			samples[i][0] = v
			samples[i][1] = v
			pos++
		}
		return len(samples), true
	})
}

// fade applies a linear release over the last part of a finite stream.
func fade(s beep.Streamer, rate beep.SampleRate, d, release time.Duration) beep.Streamer {
	total := rate.N(d)
	rel := rate.N(release)
	pos := 0
	return beep.StreamerFunc(func(samples [][2]float64) (n int, ok bool) {
		n, ok = s.Stream(samples)
		for i := 0; i < n; i++ {
			if left := total - pos; left < rel {
				vol := float64(left) / float64(rel)
				samples[i][0] *= vol
				samples[i][1] *= vol
			}
			pos++
		}
		return n, ok
	})
}

// tone returns a sine tone of the given length, or silence if the
// generator rejects the frequency.
func tone(rate beep.SampleRate, freq float64, d time.Duration) beep.Streamer {
	s, err := generators.SineTone(rate, freq)
	if err != nil {
		return beep.Silence(rate.N(d))
	}
	return fade(beep.Take(rate.N(d), s), rate, d, releaseDefault)
}

// withVolume scales s by a linear gain. Gains at or below zero mute it.
func withVolume(s beep.Streamer, gain float64) beep.Streamer {
	if gain <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(gain)}
}

// Synthesize builds a fresh, finite streamer for id. It returns nil for an
// unknown sound.
func Synthesize(id shooter.SoundID, rate beep.SampleRate, gain float64) beep.Streamer {
	var s beep.Streamer
	switch id {
	case shooter.SoundBlast:
		rumble := tone(rate, 70, blastDuration)
		s = beep.Mix(
			withVolume(noise(rate, blastDuration, time.Now().UnixNano()), 0.6),
			withVolume(rumble, 0.4),
		)
	case shooter.SoundPlayerHit:
		s = beep.Mix(
			withVolume(tone(rate, 180, hitDuration), 0.6),
			withVolume(tone(rate, 270, hitDuration), 0.3),
		)
	case shooter.SoundLaser:
		s = fade(newSweep(rate, 1400, 500, laserDuration), rate, laserDuration, releaseDefault)
	case shooter.SoundPickup:
		s = beep.Seq(tone(rate, 660, pickupNote), tone(rate, 990, pickupNote))
	default:
		return nil
	}
	return withVolume(s, gain)
}
