package audio

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// Channel groups sounds that replace each other. A new clip on a channel
// stops whatever that channel was playing.
type Channel int

const (
	ChannelMusic Channel = iota
	ChannelEffects
)

// ErrNotInitialized is returned by operations that need a live speaker.
var ErrNotInitialized = errors.New("audio: not initialized")

type voice struct {
	ctrl *beep.Ctrl
	done *atomic.Bool
}

// SoundManager plays clips through a single mixer on the speaker.
// Play is fire-and-forget; without an audio device every call is a no-op.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	voices      map[Channel]voice
	initialized bool
}

// NewSoundManager creates a silent manager. Call Initialize to open the device.
func NewSoundManager() *SoundManager {
	return &SoundManager{
		mixer:  &beep.Mixer{},
		voices: make(map[Channel]voice),
	}
}

// Initialize opens the speaker. Safe to call more than once.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Enabled reports whether sounds will actually be heard.
func (sm *SoundManager) Enabled() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.initialized
}

// Play starts clip on ch at volume in [0, 1].
func (sm *SoundManager) Play(clip Clip, ch Channel, volume float64) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return ErrNotInitialized
	}

	v, ok := newVoice(clip, volume)
	if !ok {
		return nil
	}

	speaker.Lock()
	sm.replace(ch, v)
	speaker.Unlock()
	return nil
}

func newVoice(clip Clip, volume float64) (voice, bool) {
	s := Stream(clip, sampleRate)
	if s == nil {
		return voice{}, false
	}

	done := &atomic.Bool{}
	ctrl := &beep.Ctrl{Streamer: beep.Seq(
		newVolume(s, volume),
		// Runs on the speaker goroutine; only touches the atomic
		beep.Callback(func() { done.Store(true) }),
	)}
	return voice{ctrl: ctrl, done: done}, true
}

// silence detaches the voice's streamer. A Ctrl without a streamer reports
// that it is drained, so the mixer drops it on its next pass.
func (v voice) silence() {
	v.ctrl.Streamer = nil
	v.done.Store(true)
}

// replace makes v the voice of ch. Callers hold sm.mu, and the speaker lock
// while the speaker is running.
func (sm *SoundManager) replace(ch Channel, v voice) {
	if old, ok := sm.voices[ch]; ok {
		old.silence()
	}
	sm.mixer.Add(v.ctrl)
	sm.voices[ch] = v
}

// Busy reports whether ch is still playing.
func (sm *SoundManager) Busy(ch Channel) bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	v, ok := sm.voices[ch]
	return ok && !v.done.Load()
}

// Stop silences one channel.
func (sm *SoundManager) Stop(ch Channel) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	v, ok := sm.voices[ch]
	if !ok {
		return
	}
	if sm.initialized {
		speaker.Lock()
		defer speaker.Unlock()
	}
	v.silence()
	delete(sm.voices, ch)
}

// Cleanup stops all sounds.
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	for ch, v := range sm.voices {
		v.silence()
		delete(sm.voices, ch)
	}
	sm.mixer.Clear()
	speaker.Unlock()

	// beep has no way to close the speaker; a cleared mixer plays silence
	sm.initialized = false
}
