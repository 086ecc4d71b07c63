// Package pptx renders a canonical deck into a PowerPoint file. A .pptx
// is a zip of XML parts; the writer emits a minimal valid package by hand
// so the output is deterministic byte-for-byte for equal input.
package pptx

import (
	"archive/zip"
	"bytes"
	"encoding/base64"
	"fmt"

	"github.com/slidesmith/slidesmith/internal/deck"
)

// Fixed visual theme. These values must not drift: output compatibility
// depends on them.
const (
	primaryColor   = "4472C4"
	secondaryColor = "5B9BD5"
	textColor      = "FFFFFF"

	// Font sizes in hundredths of a point.
	deckTitleSize  = 4400
	slideTitleSize = 3600
	bulletSize     = 2400
	pageNumberSize = 1400

	// Gradient angle in 60000ths of a degree (45 degrees).
	gradientAngle = 2700000

	// 16:9 slide geometry in EMU (914400 per inch): 10in x 5.625in.
	slideWidth  = 9144000
	slideHeight = 5143500
)

// RenderError reports a deck that should never have reached the renderer.
// Normalization upstream is supposed to catch these; failing loudly beats
// emitting a corrupt file.
type RenderError struct {
	Reason string
	Slide  int
}

func (e *RenderError) Error() string {
	if e.Slide < 0 {
		return fmt.Sprintf("cannot render deck: %s", e.Reason)
	}
	return fmt.Sprintf("cannot render deck: slide %d: %s", e.Slide, e.Reason)
}

// Render serializes the deck to a .pptx byte buffer: one title slide
// followed by one content slide per deck slide, numbered by position.
func Render(d *deck.Deck) ([]byte, error) {
	if d == nil || d.Title == "" {
		return nil, &RenderError{Reason: "empty title", Slide: -1}
	}
	for i, s := range d.Slides {
		if s.Title == "" {
			return nil, &RenderError{Reason: "empty title", Slide: i}
		}
	}

	// Slide count includes the title slide.
	total := len(d.Slides) + 1

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	type part struct {
		name    string
		content string
	}
	parts := []part{
		{"[Content_Types].xml", contentTypesXML(total)},
		{"_rels/.rels", rootRelsXML},
		{"ppt/presentation.xml", presentationXML(total)},
		{"ppt/_rels/presentation.xml.rels", presentationRelsXML(total)},
		{"ppt/slideMasters/slideMaster1.xml", slideMasterXML},
		{"ppt/slideMasters/_rels/slideMaster1.xml.rels", slideMasterRelsXML},
		{"ppt/slideLayouts/slideLayout1.xml", slideLayoutXML},
		{"ppt/slideLayouts/_rels/slideLayout1.xml.rels", slideLayoutRelsXML},
		{"ppt/theme/theme1.xml", themeXML},
		{"ppt/slides/slide1.xml", titleSlideXML(d.Title)},
		{"ppt/slides/_rels/slide1.xml.rels", slideRelsXML},
	}

	for i, s := range d.Slides {
		n := i + 2
		parts = append(parts,
			part{fmt.Sprintf("ppt/slides/slide%d.xml", n), contentSlideXML(s, i+1)},
			part{fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", n), slideRelsXML},
		)
	}

	for _, p := range parts {
		w, err := zw.Create(p.name)
		if err != nil {
			return nil, fmt.Errorf("write %s: %w", p.name, err)
		}
		if _, err := w.Write([]byte(p.content)); err != nil {
			return nil, fmt.Errorf("write %s: %w", p.name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("finalize package: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderBase64 renders the deck and base64-encodes the bytes. Pure
// wrapper, no independent logic.
func RenderBase64(d *deck.Deck) (string, error) {
	raw, err := Render(d)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}
