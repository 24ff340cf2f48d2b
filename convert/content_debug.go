package convert

import (
	"p2t/utils/debug"
)

// String returns a readable tree of the parsed PAGE content. It exists solely
// for manual inspection during debugging.
func (c *Content) String() string {
	if c == nil {
		return "<nil Content>"
	}

	var tw debug.TreeWriter

	tw.Line(0, "Source: %s", c.SrcName)
	tw.Line(0, "Pages: %d", len(c.Pages.Pages))

	for i, p := range c.Pages.Pages {
		tw.Line(0, "Page[%d] image=%q size=%dx%d", i+1, p.ImageFilename, p.ImageWidth, p.ImageHeight)

		if len(p.Zones) > 0 {
			tw.Line(1, "Zones: %d", len(p.Zones))
			for _, z := range p.Zones {
				tw.Line(2, "Zone[%s] type=%s points=%q", z.ID, z.Kind, z.Points)
			}
		}

		for _, r := range p.Regions {
			tw.Line(1, "Region[%s] order=%d lines=%d", r.ID, r.ReadingOrder, len(r.Lines))
			for _, tl := range r.Lines {
				tw.Text(2, "Line["+tl.ID+"]", tl.Text)
				if len(tl.Custom) > 0 {
					tw.Text(3, "custom", tl.Custom)
				}
			}
		}
	}

	return tw.String()
}
