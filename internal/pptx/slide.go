package pptx

import (
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/slidesmith/slidesmith/internal/deck"
)

// Per-slide geometry in EMU.
const (
	marginX = 457200 // 0.5in

	deckTitleY = 1943100
	deckTitleH = 1257300

	slideTitleY = 274320 // 0.3in
	slideTitleH = 914400

	bodyY = 1371600 // 1.5in
	bodyH = 3086100

	pageNumX = slideWidth - 914400  // 1in from the right edge
	pageNumY = slideHeight - 457200 // 0.5in from the bottom
	pageNumW = 457200
	pageNumH = 274320

	contentW = slideWidth - 2*marginX
)

// gradientBg is the shared diagonal two-stop background.
var gradientBg = fmt.Sprintf(`<p:bg><p:bgPr><a:gradFill>`+
	`<a:gsLst>`+
	`<a:gs pos="0"><a:srgbClr val="%s"/></a:gs>`+
	`<a:gs pos="100000"><a:srgbClr val="%s"/></a:gs>`+
	`</a:gsLst>`+
	`<a:lin ang="%d" scaled="1"/>`+
	`</a:gradFill><a:effectLst/></p:bgPr></p:bg>`,
	primaryColor, secondaryColor, gradientAngle)

// titleSlideXML is the opening slide: deck title, large, bold, centered.
func titleSlideXML(title string) string {
	var shapes strings.Builder
	writeTextbox(&shapes, textbox{
		id:     2,
		name:   "Title",
		x:      marginX,
		y:      deckTitleY,
		w:      contentW,
		h:      deckTitleH,
		anchor: "ctr",
		paragraphs: []paragraph{
			{align: "ctr", size: deckTitleSize, bold: true, text: title},
		},
	})
	return wrapSlide(shapes.String())
}

// contentSlideXML renders one deck slide: bold left-aligned title, one
// paragraph per bullet at a single outline level, and the page number in
// the bottom-right corner. pageNum is the 1-based position in the deck,
// not anything derived from the slide id.
func contentSlideXML(s deck.Slide, pageNum int) string {
	var shapes strings.Builder

	writeTextbox(&shapes, textbox{
		id:     2,
		name:   "Title",
		x:      marginX,
		y:      slideTitleY,
		w:      contentW,
		h:      slideTitleH,
		anchor: "ctr",
		paragraphs: []paragraph{
			{align: "l", size: slideTitleSize, bold: true, text: s.Title},
		},
	})

	body := textbox{
		id:     3,
		name:   "Content",
		x:      marginX,
		y:      bodyY,
		w:      contentW,
		h:      bodyH,
		anchor: "t",
	}
	for _, b := range s.Bullets {
		body.paragraphs = append(body.paragraphs, paragraph{
			align:  "l",
			size:   bulletSize,
			bullet: true,
			text:   b.Text,
		})
	}
	writeTextbox(&shapes, body)

	writeTextbox(&shapes, textbox{
		id:     4,
		name:   "PageNumber",
		x:      pageNumX,
		y:      pageNumY,
		w:      pageNumW,
		h:      pageNumH,
		anchor: "ctr",
		paragraphs: []paragraph{
			{align: "r", size: pageNumberSize, text: fmt.Sprintf("%d", pageNum)},
		},
	})

	return wrapSlide(shapes.String())
}

func wrapSlide(shapes string) string {
	var b strings.Builder
	b.WriteString(xmlHeader)
	fmt.Fprintf(&b, `<p:sld xmlns:a=%q xmlns:r=%q xmlns:p=%q>`, nsDrawing, nsRelation, nsPresent)
	b.WriteString(`<p:cSld>`)
	b.WriteString(gradientBg)
	b.WriteString(`<p:spTree>`)
	b.WriteString(`<p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr>`)
	b.WriteString(`<p:grpSpPr><a:xfrm><a:off x="0" y="0"/><a:ext cx="0" cy="0"/><a:chOff x="0" y="0"/><a:chExt cx="0" cy="0"/></a:xfrm></p:grpSpPr>`)
	b.WriteString(shapes)
	b.WriteString(`</p:spTree>`)
	b.WriteString(`</p:cSld>`)
	b.WriteString(`<p:clrMapOvr><a:masterClrMapping/></p:clrMapOvr>`)
	b.WriteString(`</p:sld>`)
	return b.String()
}

type paragraph struct {
	align  string
	size   int
	bold   bool
	bullet bool
	text   string
}

type textbox struct {
	id         int
	name       string
	x, y, w, h int
	anchor     string
	paragraphs []paragraph
}

func writeTextbox(b *strings.Builder, t textbox) {
	b.WriteString(`<p:sp>`)
	fmt.Fprintf(b, `<p:nvSpPr><p:cNvPr id="%d" name=%q/><p:cNvSpPr txBox="1"/><p:nvPr/></p:nvSpPr>`, t.id, t.name)
	fmt.Fprintf(b, `<p:spPr><a:xfrm><a:off x="%d" y="%d"/><a:ext cx="%d" cy="%d"/></a:xfrm>`, t.x, t.y, t.w, t.h)
	b.WriteString(`<a:prstGeom prst="rect"><a:avLst/></a:prstGeom></p:spPr>`)
	fmt.Fprintf(b, `<p:txBody><a:bodyPr wrap="square" anchor=%q/><a:lstStyle/>`, t.anchor)

	if len(t.paragraphs) == 0 {
		// A text body must carry at least one paragraph, even when the
		// slide has no bullets.
		b.WriteString(`<a:p><a:endParaRPr lang="en-US"/></a:p>`)
	}
	for _, p := range t.paragraphs {
		fmt.Fprintf(b, `<a:p><a:pPr algn=%q lvl="0">`, p.align)
		if p.bullet {
			b.WriteString(`<a:buChar char="•"/>`)
		} else {
			b.WriteString(`<a:buNone/>`)
		}
		b.WriteString(`</a:pPr>`)
		fmt.Fprintf(b, `<a:r><a:rPr lang="en-US" sz="%d"`, p.size)
		if p.bold {
			b.WriteString(` b="1"`)
		}
		b.WriteString(`><a:solidFill><a:srgbClr val="` + textColor + `"/></a:solidFill></a:rPr>`)
		fmt.Fprintf(b, `<a:t>%s</a:t></a:r></a:p>`, escapeXML(p.text))
	}
	b.WriteString(`</p:txBody></p:sp>`)
}

func escapeXML(s string) string {
	var b strings.Builder
	if err := xml.EscapeText(&b, []byte(s)); err != nil {
		return s
	}
	return b.String()
}
