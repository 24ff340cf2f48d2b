// Package page provides a typed representation of Transkribus PAGE-XML
// documents together with an etree-based parser.
package page

// Document is the parsed PcGts document.
type Document struct {
	Pages []*Page
}

// Page is a single Page element with its layout content.
type Page struct {
	ImageFilename string
	ImageWidth    int
	ImageHeight   int

	// Zones lists every region element carrying coordinates, text or not,
	// in document order. Text regions additionally appear in Regions.
	Zones []Zone

	// Regions holds text regions sorted for reading.
	Regions []*TextRegion
}

// Zone is any region element with a polygon, mapped 1:1 to a facsimile zone.
type Zone struct {
	ID     string
	Kind   string // local element name, e.g. TextRegion, ImageRegion
	Points string
}

// TextRegion is a text region with its lines sorted for reading.
type TextRegion struct {
	ID           string
	ReadingOrder int
	Points       string
	Lines        []*TextLine
}

// TextLine is a single transcribed line.
type TextLine struct {
	ID           string
	ReadingOrder int
	Points       string
	Baseline     string
	Text         string
	Custom       string
}

// Lines returns the page's text lines in reading order: regions by their
// reading-order index, lines within a region by vertical position. Vertical
// position is used because Transkribus line indices are not reliable.
func (p *Page) Lines() []*TextLine {
	var lines []*TextLine
	for _, r := range p.Regions {
		lines = append(lines, r.Lines...)
	}
	return lines
}
