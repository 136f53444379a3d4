// Package playback drives an ordered, user-configurable sequence of speech
// and card-flip steps across a word list.
//
// Blocks within one word run strictly sequentially: a block's speech fully
// completes, or is explicitly cancelled, before the next block starts. The
// face flip always precedes the utterance, with a settle delay so the flip
// animation finishes before speech begins. Stop, manual navigation, and
// manual single utterances cancel in-flight speech immediately; speech
// completion is asynchronous, so every continuation re-checks its run
// context before acting and a stale completion can never advance the
// sequence.
package playback

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/kotoba-app/kotoba-backend/internal/domain"
)

// Sequencer plays a block sequence across a word list. All methods are safe
// for concurrent use; at most one run is active at a time.
type Sequencer struct {
	log  *slog.Logger
	syn  Synthesizer
	card CardView
	cfg  Config
	slot *Slot

	mu      sync.Mutex
	playing bool
	cancel  context.CancelFunc
	words   []domain.Word
	blocks  []Block
	wordIdx int

	// onWord is invoked from the run goroutine when playback advances to a
	// new word. Optional.
	onWord func(index int)
	// onDone is invoked when the last word finishes naturally (not on
	// stop). Optional.
	onDone func()
}

// NewSequencer creates a sequencer. The slot may be shared with other
// speaking components so that starting any utterance cancels theirs.
func NewSequencer(logger *slog.Logger, syn Synthesizer, card CardView, slot *Slot, cfg Config) *Sequencer {
	return &Sequencer{
		log:  logger.With("component", "playback"),
		syn:  syn,
		card: card,
		cfg:  cfg,
		slot: slot,
	}
}

// OnWordChange registers a callback fired when playback moves to a word.
func (s *Sequencer) OnWordChange(fn func(index int)) { s.onWord = fn }

// OnDone registers a callback fired when the sequence completes naturally.
func (s *Sequencer) OnDone(fn func()) { s.onDone = fn }

// Playing reports whether a run is active.
func (s *Sequencer) Playing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.playing
}

// WordIndex returns the index of the word currently (or last) played.
func (s *Sequencer) WordIndex() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.wordIdx
}

// Start begins playback from the first word. An empty word list or block
// sequence is a no-op. A run already in progress is stopped first.
func (s *Sequencer) Start(words []domain.Word, blocks []Block) {
	if len(words) == 0 || len(blocks) == 0 {
		return
	}
	s.Stop()

	s.mu.Lock()
	s.words = words
	s.blocks = blocks
	s.startLocked(0)
	s.mu.Unlock()
}

// Stop cancels the run and any in-flight speech immediately. Remaining
// blocks and words are discarded, never resumed. The card stays on whatever
// face it was last flipped to.
func (s *Sequencer) Stop() {
	s.mu.Lock()
	s.stopLocked()
	s.mu.Unlock()
}

// Jump moves to the word at index: in-flight speech is cancelled, the card
// resets to the front face, and if playback was active the sequence starts
// over from block 0 of the new word.
func (s *Sequencer) Jump(index int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.words) {
		return
	}

	wasPlaying := s.playing
	s.stopLocked()
	s.card.Flip(FaceFront)
	s.wordIdx = index
	if wasPlaying {
		s.startLocked(index)
	}
}

// SpeakOnce stops the sequence and speaks a single utterance through the
// shared slot. Synthesis errors are discarded.
func (s *Sequencer) SpeakOnce(u Utterance) {
	s.Stop()
	ctx := s.slot.Acquire(context.Background())
	go func() {
		_ = s.syn.Speak(ctx, u)
	}()
}

// startLocked launches the run goroutine from word index from.
// Caller holds s.mu.
func (s *Sequencer) startLocked(from int) {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.playing = true
	s.wordIdx = from
	go s.run(ctx, s.words, s.blocks, from)
}

// stopLocked cancels the active run and all speech. Caller holds s.mu.
func (s *Sequencer) stopLocked() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.playing = false
	s.slot.Release()
	s.syn.CancelAll()
}

// run executes the playback timeline. It owns no state besides the run
// context; every await is followed by a context check so a cancellation
// that lands mid-block can never trigger further side effects.
func (s *Sequencer) run(ctx context.Context, words []domain.Word, blocks []Block, from int) {
	for wi := from; wi < len(words); wi++ {
		if ctx.Err() != nil {
			return
		}
		s.setWordIndex(wi)
		if s.onWord != nil {
			s.onWord(wi)
		}

		// Each word starts from the front face.
		s.card.Flip(FaceFront)
		if sleep(ctx, s.cfg.FlipSettle) != nil {
			return
		}

		for bi := range blocks {
			if s.playBlock(ctx, &words[wi], blocks[bi]) != nil {
				return
			}
			if bi < len(blocks)-1 {
				if sleep(ctx, s.cfg.BlockGap) != nil {
					return
				}
			}
		}

		if wi < len(words)-1 {
			if sleep(ctx, s.cfg.WordGap) != nil {
				return
			}
		}
	}

	// A stop that raced the final block must not clobber a newer run's
	// state, so the natural-completion path re-checks its own context.
	s.mu.Lock()
	finished := ctx.Err() == nil
	if finished {
		s.playing = false
		s.cancel = nil
	}
	s.mu.Unlock()

	if finished && s.onDone != nil {
		s.onDone()
	}
}

// playBlock flips to the block's face, waits for the flip to settle, and
// speaks the block's text to completion. A synthesis failure counts as
// completion so playback never wedges; only run cancellation returns an
// error.
func (s *Sequencer) playBlock(ctx context.Context, w *domain.Word, b Block) error {
	text := blockText(w, b)
	if text == "" {
		return ctx.Err()
	}

	if s.card.Face() != b.Face {
		s.card.Flip(b.Face)
		if err := sleep(ctx, s.cfg.FlipSettle); err != nil {
			return err
		}
	}

	uctx := s.slot.Acquire(ctx)
	err := s.syn.Speak(uctx, Utterance{Text: text, Language: b.Language, Rate: b.Rate})

	// The stop path cancels ctx before the speak context, so a cancelled
	// run is reported as such even if Speak returned an engine error.
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err != nil {
		s.log.Debug("synthesis failed, advancing", slog.String("text", text), slog.Any("error", err))
	}
	return nil
}

// blockText selects what a block speaks.
func blockText(w *domain.Word, b Block) string {
	switch b.Kind {
	case BlockEnglish:
		return strings.TrimSpace(w.English)
	case BlockMeaning:
		return strings.TrimSpace(w.Meaning)
	case BlockExamples:
		max := b.MaxExamples
		if max <= 0 || max > len(w.Examples) {
			max = len(w.Examples)
		}
		parts := make([]string, 0, max)
		for _, ex := range w.Examples[:max] {
			if t := strings.TrimSpace(ex.Sentence); t != "" {
				parts = append(parts, t)
			}
		}
		return strings.Join(parts, ". ")
	}
	return ""
}

func (s *Sequencer) setWordIndex(i int) {
	s.mu.Lock()
	s.wordIdx = i
	s.mu.Unlock()
}

// sleep waits d or until ctx is cancelled. Zero and negative delays return
// immediately (after a cancellation check).
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
