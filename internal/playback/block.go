package playback

import "time"

// Face identifies a card face.
type Face string

const (
	FaceFront Face = "FRONT" // english form
	FaceBack  Face = "BACK"  // meaning / examples
)

// BlockKind selects what a playback block speaks.
type BlockKind string

const (
	BlockEnglish  BlockKind = "ENGLISH"
	BlockMeaning  BlockKind = "MEANING"
	BlockExamples BlockKind = "EXAMPLES"
)

func (k BlockKind) IsValid() bool {
	switch k {
	case BlockEnglish, BlockMeaning, BlockExamples:
		return true
	}
	return false
}

// Block is one step of the playback sequence: flip the card to the required
// face, then speak the selected text with the given voice settings.
type Block struct {
	Kind        BlockKind
	Face        Face
	Language    string  // BCP 47 tag passed to the synthesizer
	Rate        float64 // speech rate multiplier, 1.0 = normal
	MaxExamples int     // BlockExamples only; 0 means all
}

// Config holds the sequencer timings. Zero delays are permitted.
type Config struct {
	// FlipSettle is waited after a face flip so the flip animation
	// completes before speech starts.
	FlipSettle time.Duration
	// BlockGap is waited between blocks within one word.
	BlockGap time.Duration
	// WordGap is waited between the last block of a word and the first
	// block of the next.
	WordGap time.Duration
}
