// Package speech synthesizes utterances through an external TTS binary
// (espeak-ng by default). Each utterance is one subprocess; cancelling the
// utterance context kills it.
package speech

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strconv"
	"strings"
	"sync"

	"github.com/kotoba-app/kotoba-backend/internal/playback"
)

// baseWordsPerMinute is the engine speed at rate 1.0.
const baseWordsPerMinute = 175

// Engine runs a TTS binary per utterance.
type Engine struct {
	log    *slog.Logger
	binary string

	mu     sync.Mutex
	cancel context.CancelFunc
}

// New creates a speech engine. binary defaults to espeak-ng when empty.
func New(logger *slog.Logger, binary string) *Engine {
	if binary == "" {
		binary = "espeak-ng"
	}
	return &Engine{
		log:    logger.With("component", "speech"),
		binary: binary,
	}
}

// Speak synthesizes one utterance, blocking until the subprocess exits or
// ctx is cancelled.
func (e *Engine) Speak(ctx context.Context, u playback.Utterance) error {
	if strings.TrimSpace(u.Text) == "" {
		return nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	e.mu.Lock()
	e.cancel = cancel
	e.mu.Unlock()

	rate := u.Rate
	if rate <= 0 {
		rate = 1.0
	}
	args := []string{"-s", strconv.Itoa(int(baseWordsPerMinute * rate))}
	if u.Language != "" {
		args = append(args, "-v", voiceFor(u.Language))
	}
	args = append(args, u.Text)

	cmd := exec.CommandContext(ctx, e.binary, args...)
	err := cmd.Run()

	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return fmt.Errorf("speech engine exited: %w", err)
		}
		return fmt.Errorf("run speech engine: %w", err)
	}
	return nil
}

// CancelAll kills the in-flight utterance, if any.
func (e *Engine) CancelAll() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.cancel != nil {
		e.cancel()
		e.cancel = nil
	}
}

// voiceFor maps a BCP-47 tag to an espeak voice name.
func voiceFor(lang string) string {
	switch strings.ToLower(lang) {
	case "en-us":
		return "en-us"
	case "en-gb":
		return "en-gb"
	case "ja", "ja-jp":
		return "ja"
	case "ko", "ko-kr":
		return "ko"
	}
	if i := strings.Index(lang, "-"); i > 0 {
		return strings.ToLower(lang[:i])
	}
	return strings.ToLower(lang)
}
