// Package prompts holds the instruction templates sent to the model.
package prompts

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/slidesmith/slidesmith/internal/deck"
)

//go:embed generate.md
var GenerateSystem string

//go:embed modify.md
var ModifySystem string

// BuildGenerateUser wraps the source text for the deck-generation call.
// The system instructions are fixed; this is the only variable content.
func BuildGenerateUser(text string) string {
	return fmt.Sprintf("Please convert the following text into a well-structured presentation:\n\n%s", text)
}

// BuildModifyUser renders the current slide (one line per bullet), its
// identifier and the user's instruction for the modification call.
func BuildModifyUser(slide deck.Slide, instruction string) string {
	var b strings.Builder
	b.WriteString("Current slide content:\n")
	b.WriteString("Title: ")
	b.WriteString(slide.Title)
	b.WriteString("\nBullets:\n")
	for _, bullet := range slide.Bullets {
		b.WriteString("- ")
		b.WriteString(bullet.Text)
		b.WriteString("\n")
	}
	b.WriteString("\nSlide ID: ")
	b.WriteString(slide.ID)
	b.WriteString("\n\nUser's modification request: ")
	b.WriteString(instruction)
	b.WriteString("\n\nPlease provide the modified slide content.")
	return b.String()
}
