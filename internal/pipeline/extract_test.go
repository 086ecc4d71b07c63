package pipeline

import (
	"errors"
	"reflect"
	"testing"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    any
		wantErr bool
	}{
		{
			name: "bare JSON object",
			raw:  `{"title":"T"}`,
			want: map[string]any{"title": "T"},
		},
		{
			name: "fenced block with json tag",
			raw:  "Here you go:\n```json\n{\"title\":\"T\"}\n```\nEnjoy!",
			want: map[string]any{"title": "T"},
		},
		{
			name: "fenced block without tag",
			raw:  "```\n{\"title\":\"T\"}\n```",
			want: map[string]any{"title": "T"},
		},
		{
			name: "object buried in prose",
			raw:  `Sure! The result is {"title":"T"} as requested.`,
			want: map[string]any{"title": "T"},
		},
		{
			name: "bare number is still extracted",
			raw:  `42`,
			want: float64(42),
		},
		{
			name:    "no braces and not JSON",
			raw:     "I could not produce a presentation, sorry.",
			wantErr: true,
		},
		{
			name:    "braces but unparseable",
			raw:     "{this is not json}",
			wantErr: true,
		},
		{
			name:    "empty string",
			raw:     "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractJSON(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Fatal("ExtractJSON() succeeded, want error")
				}
				var extractErr *ExtractError
				if !errors.As(err, &extractErr) {
					t.Fatalf("want *ExtractError, got %T", err)
				}
				if err.Error() != "failed to parse structured output" {
					t.Errorf("message = %q", err.Error())
				}
				return
			}
			if err != nil {
				t.Fatalf("ExtractJSON() error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractJSON() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestExtractJSONWholeStringWinsOverFence(t *testing.T) {
	// A string that is entirely valid JSON is taken as-is even if it
	// happens to contain backticks inside a value.
	raw := "{\"title\":\"uses ``` in text\"}"
	got, err := ExtractJSON(raw)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, map[string]any{"title": "uses ``` in text"}) {
		t.Errorf("ExtractJSON() = %#v", got)
	}
}

func TestExtractJSONNestedBraces(t *testing.T) {
	raw := "Result:\n{\"title\":\"T\",\"slides\":[{\"title\":\"S\"}]}\nDone."
	got, err := ExtractJSON(raw)
	if err != nil {
		t.Fatal(err)
	}
	obj, ok := got.(map[string]any)
	if !ok {
		t.Fatalf("got %T, want object", got)
	}
	if obj["title"] != "T" {
		t.Errorf("title = %v", obj["title"])
	}
}
