package playback

import (
	"context"
	"sync"
)

// Utterance is one text-to-speech request.
type Utterance struct {
	Text     string
	Language string
	Rate     float64
}

// Synthesizer is the speech-synthesis collaborator. Speak blocks until the
// utterance finishes, fails, or ctx is cancelled. Implementations serialize
// playback; callers must cancel any in-flight utterance before starting a
// new one.
type Synthesizer interface {
	Speak(ctx context.Context, u Utterance) error
	CancelAll()
}

// Slot is the single active-utterance handle shared by every component that
// may speak. Acquire cancels whatever was speaking before handing out a new
// context, so at most one utterance is ever live.
type Slot struct {
	mu     sync.Mutex
	cancel context.CancelFunc
}

// Acquire cancels the current utterance, if any, and returns a context for
// the next one. The returned context is a child of parent.
func (s *Slot) Acquire(parent context.Context) context.Context {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
	}
	ctx, cancel := context.WithCancel(parent)
	s.cancel = cancel
	return ctx
}

// Release cancels the current utterance and clears the slot.
func (s *Slot) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}
