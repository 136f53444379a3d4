package playback

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/kotoba-app/kotoba-backend/internal/domain"
)

// fakeSynth records utterances and lets tests control completion timing.
// It also verifies the cancel-before-start discipline: whenever Speak is
// entered, every earlier unfinished utterance must already be cancelled.
type fakeSynth struct {
	mu        sync.Mutex
	spoken    []Utterance
	calls     []*synthCall
	overlap   bool
	delay     time.Duration
	fail      func(u Utterance) error
}

type synthCall struct {
	ctx  context.Context
	done bool
}

func (f *fakeSynth) Speak(ctx context.Context, u Utterance) error {
	f.mu.Lock()
	for _, c := range f.calls {
		if !c.done && c.ctx.Err() == nil {
			f.overlap = true
		}
	}
	call := &synthCall{ctx: ctx}
	f.calls = append(f.calls, call)
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		call.done = true
		f.mu.Unlock()
	}()

	if f.delay > 0 {
		t := time.NewTimer(f.delay)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
		}
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if f.fail != nil {
		if err := f.fail(u); err != nil {
			return err
		}
	}

	f.mu.Lock()
	f.spoken = append(f.spoken, u)
	f.mu.Unlock()
	return nil
}

func (f *fakeSynth) CancelAll() {}

func (f *fakeSynth) spokenTexts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.spoken))
	for i, u := range f.spoken {
		out[i] = u.Text
	}
	return out
}

func testWords(n int) []domain.Word {
	words := make([]domain.Word, n)
	for i := range words {
		words[i] = domain.Word{
			English: "english" + string(rune('a'+i)),
			Meaning: "meaning" + string(rune('a'+i)),
			Examples: []domain.Example{
				{Sentence: "example one"},
				{Sentence: "example two"},
			},
		}
	}
	return words
}

func testBlocks() []Block {
	return []Block{
		{Kind: BlockEnglish, Face: FaceFront, Language: "en-US", Rate: 1.0},
		{Kind: BlockMeaning, Face: FaceBack, Language: "ja-JP", Rate: 1.0},
	}
}

func newTestSequencer(syn Synthesizer) (*Sequencer, *Card) {
	card := NewCard()
	return NewSequencer(slog.Default(), syn, card, &Slot{}, Config{}), card
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatal("condition not met before timeout")
}

func TestSequencer_PlaysBlocksInOrder(t *testing.T) {
	t.Parallel()

	syn := &fakeSynth{}
	seq, _ := newTestSequencer(syn)

	done := make(chan struct{})
	seq.OnDone(func() { close(done) })

	seq.Start(testWords(2), testBlocks())

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("sequence did not complete")
	}

	want := []string{"englisha", "meaninga", "englishb", "meaningb"}
	got := syn.spokenTexts()
	if len(got) != len(want) {
		t.Fatalf("spoken = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("spoken[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if seq.Playing() {
		t.Error("sequencer should be idle after completion")
	}
}

func TestSequencer_FlipPrecedesUtterance(t *testing.T) {
	t.Parallel()

	card := NewCard()
	var faces []Face
	var mu sync.Mutex

	syn := &fakeSynth{}
	syn.fail = func(u Utterance) error {
		mu.Lock()
		faces = append(faces, card.Face())
		mu.Unlock()
		return nil
	}

	seq := NewSequencer(slog.Default(), syn, card, &Slot{}, Config{})
	done := make(chan struct{})
	seq.OnDone(func() { close(done) })

	seq.Start(testWords(1), testBlocks())
	<-done

	mu.Lock()
	defer mu.Unlock()
	if len(faces) != 2 || faces[0] != FaceFront || faces[1] != FaceBack {
		t.Errorf("faces at utterance time = %v, want [FRONT BACK]", faces)
	}
}

// Starting a new utterance always cancels the prior one first, so no two
// live (uncancelled) utterances ever coexist.
func TestSequencer_MutualExclusion(t *testing.T) {
	t.Parallel()

	syn := &fakeSynth{delay: 5 * time.Millisecond}
	seq, _ := newTestSequencer(syn)

	seq.Start(testWords(3), testBlocks())

	// Interleave manual utterances while the sequence runs.
	for i := 0; i < 3; i++ {
		time.Sleep(3 * time.Millisecond)
		seq.SpeakOnce(Utterance{Text: "manual", Language: "en-US", Rate: 1.0})
	}

	waitFor(t, time.Second, func() bool {
		syn.mu.Lock()
		defer syn.mu.Unlock()
		for _, c := range syn.calls {
			if !c.done {
				return false
			}
		}
		return true
	})
	seq.Stop()

	syn.mu.Lock()
	defer syn.mu.Unlock()
	if syn.overlap {
		t.Error("a new utterance started while a live one was in flight")
	}
}

// Stop leaves the card face alone and fires no further utterances.
func TestSequencer_StopCancelsImmediately(t *testing.T) {
	t.Parallel()

	syn := &fakeSynth{delay: 20 * time.Millisecond}
	seq, card := newTestSequencer(syn)

	seq.Start(testWords(5), testBlocks())
	time.Sleep(5 * time.Millisecond) // first utterance in flight
	seq.Stop()

	if seq.Playing() {
		t.Error("Playing() = true after Stop")
	}
	face := card.Face()

	spoken := len(syn.spokenTexts())
	time.Sleep(60 * time.Millisecond)

	if got := len(syn.spokenTexts()); got != spoken {
		t.Errorf("utterances fired after Stop: %d -> %d", spoken, got)
	}
	if card.Face() != face {
		t.Errorf("card face changed after Stop: %q -> %q", face, card.Face())
	}
}

// A manual flip is preceded by Stop, so the run goroutine must never flip
// the card back or fire another utterance afterwards.
func TestSequencer_ManualFlipStopsPlayback(t *testing.T) {
	t.Parallel()

	syn := &fakeSynth{delay: 20 * time.Millisecond}
	seq, card := newTestSequencer(syn)

	seq.Start(testWords(5), testBlocks())
	time.Sleep(5 * time.Millisecond) // word 0, block 0 in flight

	seq.Stop()
	card.Flip(FaceBack)

	spoken := len(syn.spokenTexts())
	time.Sleep(60 * time.Millisecond)

	if card.Face() != FaceBack {
		t.Errorf("card face = %q after manual flip, want %q", card.Face(), FaceBack)
	}
	if got := len(syn.spokenTexts()); got != spoken {
		t.Errorf("utterances fired after manual flip: %d -> %d", spoken, got)
	}
	if seq.Playing() {
		t.Error("Playing() = true after manual flip")
	}
}

// Manual navigation cancels speech, resets the face, and keeps autoplay
// running from block 0 of the target word.
func TestSequencer_JumpRestartsOnNewWord(t *testing.T) {
	t.Parallel()

	syn := &fakeSynth{delay: 15 * time.Millisecond}
	seq, card := newTestSequencer(syn)

	seq.Start(testWords(10), testBlocks())
	time.Sleep(5 * time.Millisecond) // word 0, block 0 in flight
	seq.Jump(3)

	if !seq.Playing() {
		t.Fatal("autoplay should stay active across Jump")
	}
	if got := seq.WordIndex(); got != 3 {
		t.Errorf("WordIndex() = %d, want 3", got)
	}

	waitFor(t, time.Second, func() bool {
		for _, text := range syn.spokenTexts() {
			if text == "english"+string(rune('a'+3)) {
				return true
			}
		}
		return false
	})

	// Nothing from word 0 completed: its utterance was cancelled mid-flight.
	for _, text := range syn.spokenTexts() {
		if text == "englisha" || text == "meaninga" {
			t.Errorf("word 0 block %q completed after Jump", text)
		}
	}

	seq.Stop()
	_ = card
}

func TestSequencer_JumpWhileStoppedResetsFaceOnly(t *testing.T) {
	t.Parallel()

	syn := &fakeSynth{}
	seq, card := newTestSequencer(syn)

	seq.Start(testWords(5), testBlocks())
	seq.Stop()
	card.Flip(FaceBack)

	seq.Jump(2)
	if seq.Playing() {
		t.Error("Jump must not resume a stopped sequence")
	}
	if card.Face() != FaceFront {
		t.Error("Jump should reset the card to the front face")
	}
	if got := seq.WordIndex(); got != 2 {
		t.Errorf("WordIndex() = %d, want 2", got)
	}
}

// Synthesis errors count as block completion; playback advances.
func TestSequencer_SynthesisErrorAdvances(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	var attempts []string

	syn := &fakeSynth{}
	syn.fail = func(u Utterance) error {
		mu.Lock()
		attempts = append(attempts, u.Text)
		mu.Unlock()
		if u.Text == "meaninga" {
			return errors.New("unsupported voice")
		}
		return nil
	}

	seq, _ := newTestSequencer(syn)
	done := make(chan struct{})
	seq.OnDone(func() { close(done) })

	seq.Start(testWords(2), testBlocks())

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("playback wedged on synthesis failure")
	}

	mu.Lock()
	defer mu.Unlock()
	if len(attempts) != 4 {
		t.Errorf("attempted %d blocks, want all 4: %v", len(attempts), attempts)
	}
}

func TestSequencer_EmptyListIsNoOp(t *testing.T) {
	t.Parallel()

	syn := &fakeSynth{}
	seq, _ := newTestSequencer(syn)

	seq.Start(nil, testBlocks())
	if seq.Playing() {
		t.Error("Start with empty list must not play")
	}
}

func TestSequencer_ExampleCap(t *testing.T) {
	t.Parallel()

	w := domain.Word{
		English: "run",
		Examples: []domain.Example{
			{Sentence: "first"}, {Sentence: "second"}, {Sentence: "third"},
		},
	}

	got := blockText(&w, Block{Kind: BlockExamples, MaxExamples: 2})
	if got != "first. second" {
		t.Errorf("blockText = %q, want %q", got, "first. second")
	}

	got = blockText(&w, Block{Kind: BlockExamples})
	if got != "first. second. third" {
		t.Errorf("blockText uncapped = %q", got)
	}
}
