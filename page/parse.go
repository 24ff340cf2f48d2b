package page

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"go.uber.org/zap"

	"p2t/inline"
)

// XML parsing for the PAGE format. We want exhaustive parsing of everything
// the converter needs while tolerating the many producer dialects: unknown
// elements are logged and skipped, malformed coordinates and indices degrade
// to defaults and never fail the page.

// unordered sorts regions and lines without a usable ordering key last.
const unordered = 1 << 30

// ParsePageXML walks the etree DOM and constructs the typed PAGE document.
func ParsePageXML(doc *etree.Document, log *zap.Logger) (*Document, error) {
	if doc == nil {
		return nil, fmt.Errorf("nil document")
	}

	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("document has no root element")
	}
	if root.Tag != "PcGts" {
		return nil, fmt.Errorf("unexpected root element %q", root.Tag)
	}

	d := &Document{}
	for _, child := range root.ChildElements() {
		switch child.Tag {
		case "Metadata":
			// creator/created timestamps, nothing the output needs
		case "Page":
			d.Pages = append(d.Pages, parsePage(child, log))
		default:
			log.Warn("Unexpected tag in PcGts, ignoring", zap.String("parent", root.Tag), zap.String("tag", child.Tag))
		}
	}
	if len(d.Pages) == 0 {
		return nil, fmt.Errorf("document has no Page elements")
	}
	return d, nil
}

func parsePage(el *etree.Element, log *zap.Logger) *Page {
	p := &Page{
		ImageFilename: el.SelectAttrValue("imageFilename", ""),
		ImageWidth:    parseDimension(el.SelectAttrValue("imageWidth", ""), "imageWidth", log),
		ImageHeight:   parseDimension(el.SelectAttrValue("imageHeight", ""), "imageHeight", log),
	}

	// Regions may sit directly under Page or be grouped (PrintSpace,
	// nested regions), collect them wherever they are.
	collectRegions(el, p, log)

	sort.SliceStable(p.Regions, func(i, j int) bool {
		return p.Regions[i].ReadingOrder < p.Regions[j].ReadingOrder
	})
	return p
}

func collectRegions(el *etree.Element, p *Page, log *zap.Logger) {
	for _, child := range el.ChildElements() {
		if !strings.HasSuffix(child.Tag, "Region") {
			if child.Tag != "ReadingOrder" && child.Tag != "Border" && child.Tag != "PrintSpace" {
				log.Debug("Skipping tag while collecting regions", zap.String("parent", el.Tag), zap.String("tag", child.Tag))
			}
			collectRegions(child, p, log)
			continue
		}

		if points := coordsPoints(child); points != "" {
			p.Zones = append(p.Zones, Zone{
				ID:     child.SelectAttrValue("id", ""),
				Kind:   child.Tag,
				Points: points,
			})
		}
		if child.Tag == "TextRegion" {
			p.Regions = append(p.Regions, parseTextRegion(child, log))
			continue
		}
		// non-text regions can nest text regions (e.g. TableRegion)
		collectRegions(child, p, log)
	}
}

func parseTextRegion(el *etree.Element, log *zap.Logger) *TextRegion {
	r := &TextRegion{
		ID:           el.SelectAttrValue("id", ""),
		ReadingOrder: readingOrderIndex(el.SelectAttrValue("custom", ""), log),
		Points:       coordsPoints(el),
	}
	for _, child := range el.ChildElements() {
		switch child.Tag {
		case "Coords":
		case "TextLine":
			r.Lines = append(r.Lines, parseTextLine(child, len(r.Lines)+1, log))
		case "TextEquiv":
			// region-level transcription, line text is authoritative
		default:
			log.Warn("Unexpected tag in TextRegion, ignoring", zap.String("parent", el.Tag), zap.String("tag", child.Tag))
		}
	}

	// line indices from producers are unreliable, vertical position is not
	sort.SliceStable(r.Lines, func(i, j int) bool {
		return lineY(r.Lines[i]) < lineY(r.Lines[j])
	})
	return r
}

func parseTextLine(el *etree.Element, ordinal int, log *zap.Logger) *TextLine {
	custom := el.SelectAttrValue("custom", "")
	l := &TextLine{
		ID:           el.SelectAttrValue("id", ""),
		ReadingOrder: readingOrderIndex(custom, log),
		Custom:       custom,
	}
	if l.ID == "" {
		l.ID = fmt.Sprintf("tl_%d", ordinal)
	}
	for _, child := range el.ChildElements() {
		switch child.Tag {
		case "Coords":
			l.Points = child.SelectAttrValue("points", "")
		case "Baseline":
			l.Baseline = child.SelectAttrValue("points", "")
		case "TextEquiv":
			if u := child.SelectElement("Unicode"); u != nil {
				l.Text = u.Text()
			}
		case "Word":
			// word-level segmentation duplicates the line transcription
		default:
			log.Warn("Unexpected tag in TextLine, ignoring", zap.String("parent", el.Tag), zap.String("tag", child.Tag))
		}
	}
	return l
}

func coordsPoints(el *etree.Element) string {
	if coords := el.SelectElement("Coords"); coords != nil {
		return coords.SelectAttrValue("points", "")
	}
	return ""
}

// readingOrderIndex extracts the readingOrder index from a @custom string.
func readingOrderIndex(custom string, log *zap.Logger) int {
	for _, s := range inline.ParseAnnotations(custom, log) {
		if s.Kind != inline.KindReadingOrder {
			continue
		}
		if v, ok := s.Attrs.Get("index"); ok {
			if idx, err := strconv.Atoi(v); err == nil {
				return idx
			}
			log.Debug("Malformed readingOrder index, ignoring", zap.String("index", v))
		}
	}
	return unordered
}

// lineY returns the line's vertical position: the average baseline Y when a
// baseline exists, otherwise the topmost polygon Y.
func lineY(l *TextLine) int {
	if ys := pointsY(l.Baseline); len(ys) > 0 {
		sum := 0
		for _, y := range ys {
			sum += y
		}
		return sum / len(ys)
	}
	if ys := pointsY(l.Points); len(ys) > 0 {
		top := ys[0]
		for _, y := range ys[1:] {
			if y < top {
				top = y
			}
		}
		return top
	}
	return unordered
}

// pointsY parses the Y components of a PAGE points string like "x1,y1 x2,y2",
// dropping malformed pairs.
func pointsY(points string) []int {
	var ys []int
	for _, pair := range strings.Fields(points) {
		_, ys2, ok := strings.Cut(pair, ",")
		if !ok {
			continue
		}
		if y, err := strconv.Atoi(ys2); err == nil {
			ys = append(ys, y)
		}
	}
	return ys
}

// parseDimension parses an image dimension attribute, tolerating a "px"
// suffix some producers emit.
func parseDimension(raw, name string, log *zap.Logger) int {
	if raw == "" {
		return 0
	}
	v, err := strconv.Atoi(strings.TrimSuffix(strings.TrimSpace(raw), "px"))
	if err != nil {
		log.Warn("Malformed page dimension, ignoring", zap.String("attr", name), zap.String("value", raw))
		return 0
	}
	return v
}
