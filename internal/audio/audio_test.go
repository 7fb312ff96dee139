package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"
)

// drain reads s to the end and returns the sample count, stopping at limit.
func drain(t *testing.T, s beep.Streamer, limit int) (int, bool) {
	t.Helper()
	buf := make([][2]float64, 512)
	total := 0
	for total < limit {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			if math.IsNaN(buf[i][0]) || math.Abs(buf[i][0]) > 1 || math.Abs(buf[i][1]) > 1 {
				t.Fatalf("sample %d out of range: %v", total+i, buf[i])
			}
		}
		total += n
		if !ok {
			return total, true
		}
	}
	return total, false
}

func TestFiniteClipsEnd(t *testing.T) {
	rate := beep.SampleRate(44100)
	tests := []struct {
		clip Clip
		max  time.Duration
	}{
		{ClipJump, 200 * time.Millisecond},
		{ClipSpring, 400 * time.Millisecond},
		{ClipBreak, 300 * time.Millisecond},
		{ClipCoin, 300 * time.Millisecond},
		{ClipGameOver, 1200 * time.Millisecond},
		{ClipRestart, 300 * time.Millisecond},
	}

	for _, tc := range tests {
		t.Run(tc.clip.String(), func(t *testing.T) {
			s := Stream(tc.clip, rate)
			if s == nil {
				t.Fatal("Stream returned nil")
			}
			n, ended := drain(t, s, rate.N(5*time.Second))
			if !ended {
				t.Fatalf("clip %v did not end", tc.clip)
			}
			if n == 0 || n > rate.N(tc.max) {
				t.Errorf("clip %v lasted %d samples, expected 1..%d", tc.clip, n, rate.N(tc.max))
			}
		})
	}
}

func TestMusicIsEndless(t *testing.T) {
	rate := beep.SampleRate(22050)
	s := Stream(ClipMusic, rate)
	n, ended := drain(t, s, rate.N(10*time.Second))
	if ended {
		t.Errorf("music ended after %d samples", n)
	}
}

func TestToneWaves(t *testing.T) {
	rate := beep.SampleRate(8000)
	for _, w := range []Wave{WaveSine, WaveSquare, WaveTriangle, WaveNoise} {
		tn := newTone(rate, w, 440, 440, 50*time.Millisecond, 0)
		buf := make([][2]float64, 64)
		n, ok := tn.Stream(buf)
		if !ok || n != 64 {
			t.Fatalf("wave %d: Stream() = %d, %v", w, n, ok)
		}
		nonZero := false
		for i := 0; i < n; i++ {
			if buf[i][0] != buf[i][1] {
				t.Fatalf("wave %d: channels differ at %d", w, i)
			}
			if buf[i][0] != 0 {
				nonZero = true
			}
		}
		if !nonZero {
			t.Errorf("wave %d produced silence", w)
		}
		if tn.Err() != nil {
			t.Errorf("wave %d: unexpected error %v", w, tn.Err())
		}
	}
}

func TestUnknownClip(t *testing.T) {
	if Stream(Clip(99), sampleRate) != nil {
		t.Error("unknown clip should produce no streamer")
	}
	if Clip(99).String() != "unknown" {
		t.Error("unknown clip should stringify as unknown")
	}
}

func TestSoundManagerWithoutDevice(t *testing.T) {
	sm := NewSoundManager()

	if err := sm.Play(ClipJump, ChannelEffects, 1); err != ErrNotInitialized {
		t.Errorf("Play before Initialize = %v, expected ErrNotInitialized", err)
	}
	if sm.Busy(ChannelEffects) {
		t.Error("nothing should be playing before Initialize")
	}
	if sm.Enabled() {
		t.Error("manager should start disabled")
	}

	// Safe no-ops
	sm.Stop(ChannelMusic)
	sm.Cleanup()
}

// pump pulls d worth of audio through m, as the speaker callback does.
func pump(m *beep.Mixer, d time.Duration) {
	buf := make([][2]float64, 512)
	for n := sampleRate.N(d); n > 0; n -= len(buf) {
		m.Stream(buf)
	}
}

func TestSoundManagerDropsReplacedVoices(t *testing.T) {
	sm := NewSoundManager()
	play := func(clip Clip, ch Channel) {
		t.Helper()
		v, ok := newVoice(clip, 0.5)
		if !ok {
			t.Fatalf("no voice for %v", clip)
		}
		sm.replace(ch, v)
	}

	play(ClipMusic, ChannelMusic)
	// Two cues per tick for a while: each one cuts the previous effect off
	for i := 0; i < 50; i++ {
		play(ClipJump, ChannelEffects)
		play(ClipCoin, ChannelEffects)
	}

	pump(sm.mixer, 10*time.Millisecond)
	if got := sm.mixer.Len(); got != 2 {
		t.Fatalf("mixer holds %d streamers, expected music plus the last effect", got)
	}
	if !sm.Busy(ChannelEffects) || !sm.Busy(ChannelMusic) {
		t.Error("both channels should still be playing")
	}

	pump(sm.mixer, time.Second)
	if got := sm.mixer.Len(); got != 1 {
		t.Errorf("mixer holds %d streamers after the effect ended, expected only music", got)
	}
	if sm.Busy(ChannelEffects) {
		t.Error("effects channel should be idle once its clip ends")
	}

	sm.Stop(ChannelMusic)
	pump(sm.mixer, 10*time.Millisecond)
	if got := sm.mixer.Len(); got != 0 {
		t.Errorf("mixer holds %d streamers after Stop, expected none", got)
	}
	if sm.Busy(ChannelMusic) {
		t.Error("stopped music should not be busy")
	}
}

func TestSoundManagerPlay(t *testing.T) {
	sm := NewSoundManager()
	if err := sm.Initialize(); err != nil {
		t.Skipf("no audio device: %v", err)
	}
	defer sm.Cleanup()

	if err := sm.Initialize(); err != nil {
		t.Errorf("second Initialize should be a no-op, got %v", err)
	}

	if err := sm.Play(ClipMusic, ChannelMusic, 0.1); err != nil {
		t.Fatalf("Play() failed: %v", err)
	}
	if !sm.Busy(ChannelMusic) {
		t.Error("music channel should be busy right after Play")
	}

	sm.Stop(ChannelMusic)
	if sm.Busy(ChannelMusic) {
		t.Error("stopped channel should not be busy")
	}

	if err := sm.Play(ClipJump, ChannelEffects, 0); err != nil {
		t.Errorf("silent Play() failed: %v", err)
	}
}
