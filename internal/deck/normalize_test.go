package deck

import (
	"encoding/json"
	"errors"
	"testing"
)

func decodeJSON(t *testing.T, s string) any {
	t.Helper()
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		t.Fatalf("bad test fixture: %v", err)
	}
	return v
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantSlides int
		wantErr    bool
	}{
		{
			name:       "well formed deck",
			input:      `{"title":"T","slides":[{"title":"S1","bullets":[{"text":"a"}],"slide_id":"id-1"}]}`,
			wantSlides: 1,
		},
		{
			name:       "bullets as plain strings",
			input:      `{"title":"T","slides":[{"title":"S1","bullets":["a","b"]}]}`,
			wantSlides: 1,
		},
		{
			name:       "mixed bullet shapes",
			input:      `{"title":"T","slides":[{"title":"S1","bullets":["a",{"text":"b"}]}]}`,
			wantSlides: 1,
		},
		{
			name:       "bullet with empty text",
			input:      `{"title":"T","slides":[{"title":"S1","bullets":[{"text":""}]}]}`,
			wantSlides: 1,
		},
		{
			name:       "no bullets key",
			input:      `{"title":"T","slides":[{"title":"S1"}]}`,
			wantSlides: 1,
		},
		{
			name:       "empty slide list",
			input:      `{"title":"T","slides":[]}`,
			wantSlides: 0,
		},
		{
			name:    "missing title",
			input:   `{"slides":[]}`,
			wantErr: true,
		},
		{
			name:    "missing slides",
			input:   `{"title":"T"}`,
			wantErr: true,
		},
		{
			name:    "slide without title",
			input:   `{"title":"T","slides":[{"bullets":["a"]}]}`,
			wantErr: true,
		},
		{
			name:    "bullet object without text",
			input:   `{"title":"T","slides":[{"title":"S1","bullets":[{"label":"a"}]}]}`,
			wantErr: true,
		},
		{
			name:    "non-object value",
			input:   `42`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Normalize(decodeJSON(t, tt.input))
			if tt.wantErr {
				if err == nil {
					t.Fatal("Normalize() succeeded, want error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Normalize() error: %v", err)
			}
			if len(d.Slides) != tt.wantSlides {
				t.Errorf("got %d slides, want %d", len(d.Slides), tt.wantSlides)
			}
			for i, s := range d.Slides {
				if s.ID == "" {
					t.Errorf("slide %d has empty id", i)
				}
			}
		})
	}
}

func TestNormalizeGeneratesFreshIDs(t *testing.T) {
	input := `{"title":"T","slides":[{"title":"S1","bullets":["a"]},{"title":"S2","bullets":["b"]}]}`

	first, err := Normalize(decodeJSON(t, input))
	if err != nil {
		t.Fatal(err)
	}
	second, err := Normalize(decodeJSON(t, input))
	if err != nil {
		t.Fatal(err)
	}

	if first.Slides[0].ID == first.Slides[1].ID {
		t.Error("ids within one deck are not distinct")
	}
	if first.Slides[0].ID == second.Slides[0].ID {
		t.Error("ids are derived from content, want fresh per call")
	}
}

func TestNormalizePreservesExistingIDs(t *testing.T) {
	input := `{"title":"T","slides":[{"title":"S1","bullets":["a"],"slide_id":"keep-me"}]}`

	d, err := Normalize(decodeJSON(t, input))
	if err != nil {
		t.Fatal(err)
	}
	if d.Slides[0].ID != "keep-me" {
		t.Errorf("slide id = %q, want %q", d.Slides[0].ID, "keep-me")
	}
}

func TestNormalizeBulletOrder(t *testing.T) {
	input := `{"title":"T","slides":[{"title":"S1","bullets":["a","b","c"]}]}`

	d, err := Normalize(decodeJSON(t, input))
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"a", "b", "c"}
	for i, b := range d.Slides[0].Bullets {
		if b.Text != want[i] {
			t.Errorf("bullet %d = %q, want %q", i, b.Text, want[i])
		}
	}
}

func TestNormalizeKeepsEmptyBulletText(t *testing.T) {
	input := `{"title":"T","slides":[{"title":"S1","bullets":[{"text":""},"b"]}]}`

	d, err := Normalize(decodeJSON(t, input))
	if err != nil {
		t.Fatal(err)
	}
	bullets := d.Slides[0].Bullets
	if len(bullets) != 2 {
		t.Fatalf("got %d bullets, want 2", len(bullets))
	}
	if bullets[0].Text != "" {
		t.Errorf("bullet 0 = %q, want empty string", bullets[0].Text)
	}
	if bullets[1].Text != "b" {
		t.Errorf("bullet 1 = %q, want b", bullets[1].Text)
	}
}

func TestNormalizeFieldErrorCarriesSlideIndex(t *testing.T) {
	input := `{"title":"T","slides":[{"title":"S1","bullets":["a"]},{"bullets":["b"]}]}`

	_, err := Normalize(decodeJSON(t, input))
	var fieldErr *FieldError
	if !errors.As(err, &fieldErr) {
		t.Fatalf("want *FieldError, got %T", err)
	}
	if fieldErr.Field != "title" || fieldErr.Slide != 1 {
		t.Errorf("got field=%q slide=%d, want title/1", fieldErr.Field, fieldErr.Slide)
	}
}

func TestNormalizeSlide(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		fallbackID string
		wantID     string
		wantErr    bool
	}{
		{
			name:       "fallback id is authoritative",
			input:      `{"title":"S","bullets":["a"],"slide_id":"model-made-this-up"}`,
			fallbackID: "abc123",
			wantID:     "abc123",
		},
		{
			name:       "id omitted by model",
			input:      `{"title":"S","bullets":["a"]}`,
			fallbackID: "abc123",
			wantID:     "abc123",
		},
		{
			name:   "id taken from value when no fallback",
			input:  `{"title":"S","bullets":["a"],"slide_id":"from-value"}`,
			wantID: "from-value",
		},
		{
			name:   "id recovered from nested input echo",
			input:  `{"title":"S","bullets":["a"],"input":{"slide_id":"nested"}}`,
			wantID: "nested",
		},
		{
			name:    "no id anywhere",
			input:   `{"title":"S","bullets":["a"]}`,
			wantErr: true,
		},
		{
			name:       "missing title",
			input:      `{"bullets":["a"],"slide_id":"x"}`,
			fallbackID: "x",
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NormalizeSlide(decodeJSON(t, tt.input), tt.fallbackID)
			if tt.wantErr {
				if err == nil {
					t.Fatal("NormalizeSlide() succeeded, want error")
				}
				return
			}
			if err != nil {
				t.Fatalf("NormalizeSlide() error: %v", err)
			}
			if s.ID != tt.wantID {
				t.Errorf("slide id = %q, want %q", s.ID, tt.wantID)
			}
		})
	}
}

func TestNormalizeSlidePromotesStringBullets(t *testing.T) {
	s, err := NormalizeSlide(decodeJSON(t, `{"title":"S","bullets":["a","b"],"slide_id":"x"}`), "")
	if err != nil {
		t.Fatal(err)
	}
	if len(s.Bullets) != 2 || s.Bullets[0].Text != "a" || s.Bullets[1].Text != "b" {
		t.Errorf("bullets = %+v, want [{a} {b}]", s.Bullets)
	}
}
