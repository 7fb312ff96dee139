// Package audio synthesizes and plays the game's sound effects and music
// with gopxl/beep. Everything is generated at runtime; there are no assets.
package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// Clip identifies a sound.
type Clip int

const (
	ClipJump Clip = iota
	ClipSpring
	ClipBreak
	ClipCoin
	ClipGameOver
	ClipRestart
	ClipMusic // Endless background loop
)

// String returns the clip name.
func (c Clip) String() string {
	switch c {
	case ClipJump:
		return "jump"
	case ClipSpring:
		return "spring"
	case ClipBreak:
		return "break"
	case ClipCoin:
		return "coin"
	case ClipGameOver:
		return "game_over"
	case ClipRestart:
		return "restart"
	case ClipMusic:
		return "music"
	default:
		return "unknown"
	}
}

// Wave is an oscillator shape.
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveTriangle
	WaveNoise
)

// tone is a single oscillator voice with a linear pitch sweep and an
// exponential decay. It ends after its duration.
type tone struct {
	rate     beep.SampleRate
	wave     Wave
	from, to float64 // Hz
	decay    float64 // per second; 0 keeps full volume
	total    int
	pos      int
	phase    float64
	rng      *rand.Rand
}

func newTone(rate beep.SampleRate, wave Wave, from, to float64, d time.Duration, decay float64) *tone {
	return &tone{
		rate:  rate,
		wave:  wave,
		from:  from,
		to:    to,
		decay: decay,
		total: rate.N(d),
		rng:   rand.New(rand.NewSource(1)),
	}
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if t.pos >= t.total {
			return i, i > 0
		}

		progress := float64(t.pos) / float64(t.total)
		freq := t.from + (t.to-t.from)*progress

		var v float64
		switch t.wave {
		case WaveSine:
			v = math.Sin(2 * math.Pi * t.phase)
		case WaveSquare:
			v = 1
			if t.phase >= 0.5 {
				v = -1
			}
		case WaveTriangle:
			v = 4*math.Abs(t.phase-0.5) - 1
		case WaveNoise:
			v = t.rng.Float64()*2 - 1
		}

		if t.decay > 0 {
			v *= math.Exp(-t.decay * float64(t.pos) / float64(t.rate))
		}
		// Short release so clips do not click
		if rel := t.total - t.pos; rel < t.rate.N(5*time.Millisecond) {
			v *= float64(rel) / float64(t.rate.N(5*time.Millisecond))
		}

		samples[i][0] = v
		samples[i][1] = v

		t.phase += freq / float64(t.rate)
		t.phase -= math.Floor(t.phase)
		t.pos++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }

// music is an endless bass arpeggio with a soft pulse on each beat.
type music struct {
	rate  beep.SampleRate
	step  int // samples per note
	pos   int
	phase float64
}

// A minor pentatonic walk, in Hz
var musicNotes = []float64{110, 130.81, 146.83, 164.81, 196, 164.81, 146.83, 130.81}

func newMusic(rate beep.SampleRate) *music {
	return &music{rate: rate, step: rate.N(250 * time.Millisecond)}
}

func (m *music) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		note := (m.pos / m.step) % len(musicNotes)
		inNote := float64(m.pos%m.step) / float64(m.step)

		v := 4*math.Abs(m.phase-0.5) - 1 // triangle
		v *= 0.6 * math.Exp(-3*inNote)

		samples[i][0] = v
		samples[i][1] = v

		m.phase += musicNotes[note] / float64(m.rate)
		m.phase -= math.Floor(m.phase)
		m.pos++
	}
	return len(samples), true
}

func (m *music) Err() error { return nil }

// newVolume scales a stream linearly; vol <= 0 is silent.
// math.Log2(0) is -Inf, so zero is handled with Silent.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// Stream builds a fresh streamer for the clip at the given sample rate.
// Every clip except ClipMusic ends on its own.
func Stream(clip Clip, rate beep.SampleRate) beep.Streamer {
	ms := func(n int) time.Duration { return time.Duration(n) * time.Millisecond }

	switch clip {
	case ClipJump:
		return newVolume(newTone(rate, WaveSquare, 330, 660, ms(90), 12), 0.35)
	case ClipSpring:
		return newVolume(newTone(rate, WaveSine, 220, 1320, ms(260), 4), 0.6)
	case ClipBreak:
		return newVolume(newTone(rate, WaveNoise, 0, 0, ms(180), 18), 0.5)
	case ClipCoin:
		return newVolume(beep.Seq(
			newTone(rate, WaveSquare, 987.77, 987.77, ms(60), 0),
			newTone(rate, WaveSquare, 1318.51, 1318.51, ms(160), 10),
		), 0.3)
	case ClipGameOver:
		return newVolume(beep.Seq(
			newTone(rate, WaveTriangle, 440, 440, ms(160), 2),
			newTone(rate, WaveTriangle, 370, 370, ms(160), 2),
			newTone(rate, WaveTriangle, 311, 311, ms(160), 2),
			newTone(rate, WaveTriangle, 220, 200, ms(420), 3),
		), 0.7)
	case ClipRestart:
		return newVolume(beep.Seq(
			newTone(rate, WaveSquare, 523.25, 523.25, ms(70), 0),
			newTone(rate, WaveSquare, 783.99, 783.99, ms(110), 8),
		), 0.3)
	case ClipMusic:
		return newMusic(rate)
	default:
		return nil
	}
}
