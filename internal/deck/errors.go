package deck

import "fmt"

// FieldError reports a required field that is missing or has the wrong
// shape in the value being normalized. Slide is the zero-based slide
// index, or -1 for deck-level fields.
type FieldError struct {
	Field string
	Slide int
}

func (e *FieldError) Error() string {
	if e.Slide < 0 {
		return fmt.Sprintf("missing or invalid field %q", e.Field)
	}
	return fmt.Sprintf("slide %d: missing or invalid field %q", e.Slide, e.Field)
}
