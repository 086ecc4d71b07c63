// Package deck holds the canonical slide-deck model and the normalization
// rules that turn loosely-shaped LLM output into it.
package deck

// Bullet is a single bullet point on a slide
type Bullet struct {
	Text string `json:"text"`
}

// Slide is one content slide of a deck
type Slide struct {
	Title   string   `json:"title"`
	Bullets []Bullet `json:"bullets"`
	ID      string   `json:"slide_id"`
}

// Deck is a complete presentation
type Deck struct {
	Title  string  `json:"title"`
	Slides []Slide `json:"slides"`
}
