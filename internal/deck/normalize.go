package deck

import (
	"fmt"

	"github.com/google/uuid"
)

// Normalize turns a decoded JSON value into a canonical Deck. The value
// comes from an LLM, so every field access is a checked lookup: a missing
// title or slide list is a *FieldError, never a silent default. Slides
// without a slide_id get a fresh random one.
func Normalize(value any) (*Deck, error) {
	obj, ok := value.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("expected a JSON object, got %T", value)
	}

	title, ok := stringField(obj, "title")
	if !ok {
		return nil, &FieldError{Field: "title", Slide: -1}
	}

	rawSlides, ok := obj["slides"].([]any)
	if !ok {
		return nil, &FieldError{Field: "slides", Slide: -1}
	}

	slides := make([]Slide, 0, len(rawSlides))
	for i, rawSlide := range rawSlides {
		m, ok := rawSlide.(map[string]any)
		if !ok {
			return nil, &FieldError{Field: "slides", Slide: i}
		}

		slideTitle, ok := stringField(m, "title")
		if !ok {
			return nil, &FieldError{Field: "title", Slide: i}
		}

		bullets, err := normalizeBullets(m["bullets"], i)
		if err != nil {
			return nil, err
		}

		id, _ := stringField(m, "slide_id")
		if id == "" {
			id = uuid.NewString()
		}

		slides = append(slides, Slide{
			Title:   slideTitle,
			Bullets: bullets,
			ID:      id,
		})
	}

	return &Deck{Title: title, Slides: slides}, nil
}

// NormalizeSlide turns a decoded JSON value into a canonical Slide. It is
// used for modification round-trips, so fallbackID (the id of the slide
// the caller asked to modify) is authoritative when non-empty, no matter
// what the model echoed back. When no fallback is supplied the id is
// taken from the value itself, or from a nested "input" object; some
// models echo the whole request back under that key.
func NormalizeSlide(value any, fallbackID string) (*Slide, error) {
	obj, ok := value.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("expected a JSON object, got %T", value)
	}

	title, ok := stringField(obj, "title")
	if !ok {
		return nil, &FieldError{Field: "title", Slide: -1}
	}

	bullets, err := normalizeBullets(obj["bullets"], -1)
	if err != nil {
		return nil, err
	}

	id := fallbackID
	if id == "" {
		id, _ = stringField(obj, "slide_id")
	}
	if id == "" {
		if input, ok := obj["input"].(map[string]any); ok {
			id, _ = stringField(input, "slide_id")
		}
	}
	if id == "" {
		return nil, &FieldError{Field: "slide_id", Slide: -1}
	}

	return &Slide{Title: title, Bullets: bullets, ID: id}, nil
}

// normalizeBullets accepts both bullet shapes the model produces: objects
// with a "text" field, or plain strings, mixed freely in one list. A
// missing list is an empty slide, not an error.
func normalizeBullets(raw any, slideIdx int) ([]Bullet, error) {
	if raw == nil {
		return []Bullet{}, nil
	}

	items, ok := raw.([]any)
	if !ok {
		return nil, &FieldError{Field: "bullets", Slide: slideIdx}
	}

	bullets := make([]Bullet, 0, len(items))
	for _, item := range items {
		switch v := item.(type) {
		case string:
			bullets = append(bullets, Bullet{Text: v})
		case map[string]any:
			// Unlike titles, an empty bullet text is legal: only the key
			// has to be present.
			text, ok := v["text"].(string)
			if !ok {
				return nil, &FieldError{Field: "text", Slide: slideIdx}
			}
			bullets = append(bullets, Bullet{Text: text})
		default:
			return nil, &FieldError{Field: "text", Slide: slideIdx}
		}
	}
	return bullets, nil
}

func stringField(obj map[string]any, key string) (string, bool) {
	v, ok := obj[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}
