// Command practice is a terminal flashcard player. It loads one user's
// words, runs them through the list pipeline, and plays them aloud through
// the playback sequencer and a local TTS engine.
//
// Commands:
//
//	play            start autoplay from the first word
//	stop            stop playback, keep the current card
//	jump <n>        go to word n (1-based); autoplay continues if it was on
//	say             speak the current word's English form once
//	flip            show the other face of the card
//	quit            exit
//
// Requires DATABASE_DSN (via config) and a working espeak-ng install.
package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"

	postgres "github.com/kotoba-app/kotoba-backend/internal/adapter/postgres"
	wordrepo "github.com/kotoba-app/kotoba-backend/internal/adapter/postgres/word"
	"github.com/kotoba-app/kotoba-backend/internal/app"
	"github.com/kotoba-app/kotoba-backend/internal/config"
	"github.com/kotoba-app/kotoba-backend/internal/domain"
	"github.com/kotoba-app/kotoba-backend/internal/listproc"
	"github.com/kotoba-app/kotoba-backend/internal/playback"
	"github.com/kotoba-app/kotoba-backend/internal/speech"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("practice: %v", err)
	}
}

func run() error {
	if len(os.Args) < 2 {
		return fmt.Errorf("usage: practice <user-id> [sort]")
	}
	userID, err := uuid.Parse(os.Args[1])
	if err != nil {
		return fmt.Errorf("user-id: %w", err)
	}
	sort := listproc.SortNewest
	if len(os.Args) > 2 {
		sort = listproc.ParseSortOrder(os.Args[2])
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := app.NewLogger(cfg.Log)

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer pool.Close()

	all, err := wordrepo.New(pool).ListByUser(ctx, userID)
	if err != nil {
		return err
	}
	words := listproc.New().Apply(all, listproc.Query{Sort: sort})
	if len(words) == 0 {
		return fmt.Errorf("no words for user %s", userID)
	}

	blocks := []playback.Block{
		{Kind: playback.BlockEnglish, Face: playback.FaceFront, Language: "en-US", Rate: cfg.Playback.Rate},
		{Kind: playback.BlockMeaning, Face: playback.FaceBack, Language: "ja-JP", Rate: cfg.Playback.Rate},
		{Kind: playback.BlockExamples, Face: playback.FaceBack, Language: "en-US", Rate: cfg.Playback.Rate, MaxExamples: 2},
	}

	card := playback.NewCard()
	engine := speech.New(logger, os.Getenv("PRACTICE_TTS"))
	seq := playback.NewSequencer(logger, engine, card, &playback.Slot{}, playback.Config{
		FlipSettle: cfg.Playback.FlipSettle,
		BlockGap:   cfg.Playback.BlockGap,
		WordGap:    cfg.Playback.WordGap,
	})

	seq.OnWordChange(func(i int) {
		fmt.Printf("\r[%d/%d] %s\n> ", i+1, len(words), words[i].English)
	})
	seq.OnDone(func() {
		fmt.Print("\rdone\n> ")
	})

	fmt.Printf("%d words loaded, %s order. Type 'play' to begin.\n", len(words), sort)
	return loop(seq, card, words, blocks)
}

func loop(seq *playback.Sequencer, card *playback.Card, words []domain.Word, blocks []playback.Block) error {
	scanner := bufio.NewScanner(os.Stdin)
	fmt.Print("> ")
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			fmt.Print("> ")
			continue
		}

		switch fields[0] {
		case "play":
			seq.Start(words, blocks)
		case "stop":
			seq.Stop()
		case "jump":
			if len(fields) < 2 {
				fmt.Println("jump <n>")
				break
			}
			n, err := strconv.Atoi(fields[1])
			if err != nil || n < 1 || n > len(words) {
				fmt.Printf("word number must be 1..%d\n", len(words))
				break
			}
			seq.Jump(n - 1)
		case "say":
			w := words[seq.WordIndex()]
			seq.SpeakOnce(playback.Utterance{Text: w.English, Language: "en-US", Rate: 1.0})
		case "flip":
			seq.Stop()
			if card.Face() == playback.FaceFront {
				card.Flip(playback.FaceBack)
			} else {
				card.Flip(playback.FaceFront)
			}
			w := words[seq.WordIndex()]
			if card.Face() == playback.FaceFront {
				fmt.Println(w.English)
			} else {
				fmt.Println(w.Meaning)
			}
		case "quit", "exit":
			seq.Stop()
			return nil
		default:
			fmt.Println("commands: play, stop, jump <n>, say, flip, quit")
		}
		fmt.Print("> ")
	}
	seq.Stop()
	return scanner.Err()
}
