package page

import (
	"testing"

	"github.com/beevik/etree"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

const samplePage = `<?xml version="1.0" encoding="UTF-8"?>
<PcGts xmlns="http://schema.primaresearch.org/PAGE/gts/pagecontent/2013-07-15">
  <Metadata>
    <Creator>Transkribus</Creator>
  </Metadata>
  <Page imageFilename="folio_12r.jpg" imageWidth="960px" imageHeight="1358">
    <TextRegion id="r2" custom="readingOrder {index:1;}">
      <Coords points="10,700 900,700 900,1300 10,1300"/>
      <TextLine id="l3" custom="readingOrder {index:0;}">
        <Coords points="10,710 900,710 900,760 10,760"/>
        <Baseline points="10,755 900,755"/>
        <TextEquiv><Unicode>tercera línea</Unicode></TextEquiv>
      </TextLine>
    </TextRegion>
    <TextRegion id="r1" custom="readingOrder {index:0;}">
      <Coords points="10,10 900,10 900,600 10,600"/>
      <TextLine id="l2" custom="readingOrder {index:1;}">
        <Coords points="10,200 900,200 900,260 10,260"/>
        <Baseline points="10,255 900,255"/>
        <TextEquiv><Unicode>segunda línea</Unicode></TextEquiv>
      </TextLine>
      <TextLine id="l1" custom="readingOrder {index:0;} abbrev {offset:0;length:1;expansion:que;}">
        <Coords points="10,100 900,100 900,160 10,160"/>
        <Baseline points="10,155 900,155"/>
        <TextEquiv><Unicode>q primera línea</Unicode></TextEquiv>
      </TextLine>
    </TextRegion>
    <ImageRegion id="img1">
      <Coords points="0,0 5,0 5,5 0,5"/>
    </ImageRegion>
  </Page>
</PcGts>`

func parseSample(t *testing.T, data string) *Document {
	t.Helper()
	log := zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1)))

	doc := etree.NewDocument()
	if err := doc.ReadFromString(data); err != nil {
		t.Fatalf("unable to read sample: %v", err)
	}
	d, err := ParsePageXML(doc, log)
	if err != nil {
		t.Fatalf("unable to parse sample: %v", err)
	}
	return d
}

func TestParsePageXML(t *testing.T) {
	d := parseSample(t, samplePage)
	if len(d.Pages) != 1 {
		t.Fatalf("expected 1 page, got %d", len(d.Pages))
	}
	p := d.Pages[0]

	t.Run("page_attributes", func(t *testing.T) {
		if p.ImageFilename != "folio_12r.jpg" {
			t.Fatalf("imageFilename wrong: %q", p.ImageFilename)
		}
		if p.ImageWidth != 960 || p.ImageHeight != 1358 {
			t.Fatalf("dimensions wrong (px suffix must be tolerated): %dx%d", p.ImageWidth, p.ImageHeight)
		}
	})

	t.Run("zones_cover_all_regions", func(t *testing.T) {
		if len(p.Zones) != 3 {
			t.Fatalf("expected 3 zones, got %d", len(p.Zones))
		}
		kinds := map[string]int{}
		for _, z := range p.Zones {
			kinds[z.Kind]++
			if z.Points == "" {
				t.Fatalf("zone %s has no points", z.ID)
			}
		}
		if kinds["TextRegion"] != 2 || kinds["ImageRegion"] != 1 {
			t.Fatalf("zone kinds wrong: %v", kinds)
		}
	})

	t.Run("regions_sorted_by_reading_order", func(t *testing.T) {
		if len(p.Regions) != 2 {
			t.Fatalf("expected 2 text regions, got %d", len(p.Regions))
		}
		if p.Regions[0].ID != "r1" || p.Regions[1].ID != "r2" {
			t.Fatalf("regions out of reading order: %s, %s", p.Regions[0].ID, p.Regions[1].ID)
		}
	})

	t.Run("lines_sorted_by_baseline", func(t *testing.T) {
		lines := p.Lines()
		if len(lines) != 3 {
			t.Fatalf("expected 3 lines, got %d", len(lines))
		}
		order := []string{"l1", "l2", "l3"}
		for i, id := range order {
			if lines[i].ID != id {
				t.Fatalf("line %d: expected %s, got %s", i, id, lines[i].ID)
			}
		}
	})

	t.Run("line_content", func(t *testing.T) {
		l := p.Lines()[0]
		if l.Text != "q primera línea" {
			t.Fatalf("line text wrong: %q", l.Text)
		}
		if l.Baseline != "10,155 900,155" {
			t.Fatalf("baseline wrong: %q", l.Baseline)
		}
		if l.Custom == "" {
			t.Fatal("custom annotation string lost")
		}
	})
}

func TestParsePageXMLErrors(t *testing.T) {
	log := zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1)))

	t.Run("nil_document", func(t *testing.T) {
		if _, err := ParsePageXML(nil, log); err == nil {
			t.Fatal("expected error for nil document")
		}
	})

	t.Run("wrong_root", func(t *testing.T) {
		doc := etree.NewDocument()
		if err := doc.ReadFromString("<html/>"); err != nil {
			t.Fatalf("unable to read: %v", err)
		}
		if _, err := ParsePageXML(doc, log); err == nil {
			t.Fatal("expected error for wrong root element")
		}
	})

	t.Run("no_pages", func(t *testing.T) {
		doc := etree.NewDocument()
		if err := doc.ReadFromString("<PcGts/>"); err != nil {
			t.Fatalf("unable to read: %v", err)
		}
		if _, err := ParsePageXML(doc, log); err == nil {
			t.Fatal("expected error for document without pages")
		}
	})
}

func TestLineOrderingFallbacks(t *testing.T) {
	t.Run("polygon_top_without_baseline", func(t *testing.T) {
		l := &TextLine{Points: "0,300 10,120 20,500"}
		if got := lineY(l); got != 120 {
			t.Fatalf("expected min polygon Y 120, got %d", got)
		}
	})

	t.Run("baseline_average", func(t *testing.T) {
		l := &TextLine{Baseline: "0,100 10,200", Points: "0,1 0,2"}
		if got := lineY(l); got != 150 {
			t.Fatalf("expected baseline average 150, got %d", got)
		}
	})

	t.Run("no_coordinates_sorts_last", func(t *testing.T) {
		if got := lineY(&TextLine{}); got != unordered {
			t.Fatalf("expected unordered marker, got %d", got)
		}
	})

	t.Run("malformed_pairs_dropped", func(t *testing.T) {
		ys := pointsY("bad 1,2 3;4 5,six 7,8")
		if len(ys) != 2 || ys[0] != 2 || ys[1] != 8 {
			t.Fatalf("expected [2 8], got %v", ys)
		}
	})
}

func TestReadingOrderIndex(t *testing.T) {
	log := zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1)))

	if got := readingOrderIndex("readingOrder {index:7;}", log); got != 7 {
		t.Fatalf("expected 7, got %d", got)
	}
	if got := readingOrderIndex("abbrev {offset:0;length:1;}", log); got != unordered {
		t.Fatalf("expected unordered without readingOrder, got %d", got)
	}
	if got := readingOrderIndex("readingOrder {index:x;}", log); got != unordered {
		t.Fatalf("malformed index must sort last, got %d", got)
	}
	if got := readingOrderIndex("", log); got != unordered {
		t.Fatalf("empty custom must sort last, got %d", got)
	}
}
