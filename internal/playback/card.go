package playback

import "sync"

// CardView is the flip side of the playback sequence: the sequencer flips
// the card to a block's required face before speaking.
type CardView interface {
	Face() Face
	Flip(face Face)
}

// Card is a minimal CardView holding the current face.
type Card struct {
	mu   sync.Mutex
	face Face
}

// NewCard creates a card showing the front face.
func NewCard() *Card {
	return &Card{face: FaceFront}
}

func (c *Card) Face() Face {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.face
}

func (c *Card) Flip(face Face) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.face = face
}
