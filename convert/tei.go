package convert

import (
	"fmt"
	"strconv"

	"github.com/beevik/etree"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/text/language"

	"p2t/config"
	"p2t/inline"
	"p2t/page"
	"p2t/state"
)

const teiNS = "http://www.tei-c.org/ns/1.0"

// buildTEI assembles a complete TEI P5 document from parsed PAGE content:
// header from configuration, facsimile zones from page layout, transcription
// body from rendered line annotations.
func buildTEI(c *Content, env *state.LocalEnv, log *zap.Logger) *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	doc.WriteSettings = etree.WriteSettings{
		CanonicalText:    true,
		CanonicalAttrVal: true,
	}

	lang := documentLanguage(env, log)

	tei := doc.CreateElement("TEI")
	tei.CreateAttr("xmlns", teiNS)
	buildHeader(tei, &env.Cfg.Document.Header, env.Edition, lang)

	facsimile := tei.CreateElement("facsimile")
	body := tei.CreateElement("text").CreateElement("body")
	div := body.CreateElement("div")
	div.CreateAttr("type", "transcription")
	div.CreateAttr("xml:lang", lang)

	for i, p := range c.Pages.Pages {
		buildPage(facsimile, div, p, i+1, &env.Cfg.Document.Images, log)
	}
	return doc
}

// documentLanguage resolves the transcription language: explicit
// configuration wins, otherwise the edition type decides.
func documentLanguage(env *state.LocalEnv, log *zap.Logger) string {
	code := env.Cfg.Document.Header.Language
	if len(code) == 0 {
		return env.Edition.DefaultLanguage()
	}
	if _, err := language.Parse(code); err != nil {
		log.Warn("Configured language is not a valid BCP 47 tag, using it as is", zap.String("language", code), zap.Error(err))
	}
	return code
}

func editionLabel(edition config.EditionType) string {
	if edition == config.EditionTypeTranslation {
		return "Digital translation edition"
	}
	return "Diplomatic digital edition"
}

// buildHeader creates the teiHeader element. Header metadata is deliberately
// flat and comes straight from configuration, no manuscript description is
// attempted.
func buildHeader(tei *etree.Element, h *config.HeaderConfig, edition config.EditionType, lang string) {
	header := tei.CreateElement("teiHeader")
	fileDesc := header.CreateElement("fileDesc")

	titleStmt := fileDesc.CreateElement("titleStmt")
	titleStmt.CreateElement("title").CreateText(h.Title)
	if len(h.Author) > 0 {
		titleStmt.CreateElement("author").CreateText(h.Author)
	}
	if len(h.Translator) > 0 {
		translator := titleStmt.CreateElement("editor")
		translator.CreateAttr("role", "translator")
		translator.CreateText(h.Translator)
	}
	if len(h.Editor) > 0 {
		titleStmt.CreateElement("editor").CreateText(h.Editor)
	}
	if len(h.Responsibility) > 0 || len(h.ResponsibilityName) > 0 {
		respStmt := titleStmt.CreateElement("respStmt")
		respStmt.CreateElement("resp").CreateText(h.Responsibility)
		respStmt.CreateElement("name").CreateText(h.ResponsibilityName)
	}

	fileDesc.CreateElement("editionStmt").CreateElement("edition").CreateText(editionLabel(edition))

	publicationStmt := fileDesc.CreateElement("publicationStmt")
	if len(h.Publisher) > 0 {
		publicationStmt.CreateElement("publisher").CreateText(h.Publisher)
	}
	if len(h.PublicationDate) > 0 {
		publicationStmt.CreateElement("date").CreateText(h.PublicationDate)
	}
	if len(h.Publisher) == 0 && len(h.PublicationDate) == 0 {
		publicationStmt.CreateElement("p").CreateText("Unpublished.")
	}

	fileDesc.CreateElement("sourceDesc").CreateElement("p").CreateText(
		"Created from a Transkribus PAGE-XML transcription.")

	header.CreateElement("encodingDesc").CreateElement("p").CreateText(
		"Digital edition for research and display purposes. " +
			"Converted from PAGE-XML with full semantic markup including " +
			"abbreviations, corrections, regularisations, numbers, person names, place names, " +
			"references, and text styling.")

	langEl := header.CreateElement("profileDesc").CreateElement("langUsage").CreateElement("language")
	langEl.CreateAttr("ident", lang)
	langEl.CreateText(config.LanguageName(lang))

	header.CreateElement("revisionDesc").CreateElement("change").CreateText(
		"Automated conversion from PAGE-XML with preservation of all annotations.")
}

// buildPage adds one page worth of facsimile zones and transcription lines.
func buildPage(facsimile, div *etree.Element, p *page.Page, n int, images *config.ImagesConfig, log *zap.Logger) {
	pageID := fmt.Sprintf("p%d", n)

	surface := facsimile.CreateElement("surface")
	surface.CreateAttr("n", strconv.Itoa(n))
	surface.CreateAttr("xml:id", pageID)

	graphic := surface.CreateElement("graphic")
	if len(p.ImageFilename) > 0 {
		graphic.CreateAttr("url", imageURL(p.ImageFilename, images.URLPrefix))
	}
	if p.ImageWidth > 0 {
		graphic.CreateAttr("width", fmt.Sprintf("%dpx", p.ImageWidth))
	}
	if p.ImageHeight > 0 {
		graphic.CreateAttr("height", fmt.Sprintf("%dpx", p.ImageHeight))
	}

	pb := div.CreateElement("pb")
	pb.CreateAttr("n", strconv.Itoa(n))
	pb.CreateAttr("facs", "#"+pageID)

	// Every region with coordinates becomes a zone, text bearing or not.
	// Polygon points are carried verbatim, the PAGE coordinate space is the
	// coordinate space of the output.
	for _, z := range p.Zones {
		id := z.ID
		if len(id) == 0 {
			id = uuid.NewString()
		}
		zone := surface.CreateElement("zone")
		zone.CreateAttr("type", z.Kind)
		zone.CreateAttr("xml:id", "z_"+id)
		if len(z.Points) > 0 {
			zone.CreateAttr("points", z.Points)
		}
	}

	for i, tl := range p.Lines() {
		zoneID := "z_" + tl.ID

		zone := surface.CreateElement("zone")
		zone.CreateAttr("type", "line")
		zone.CreateAttr("xml:id", zoneID)
		if len(tl.Points) > 0 {
			zone.CreateAttr("points", tl.Points)
		}
		// baseline attribute is not allowed on zone, keep it in a note
		if len(tl.Baseline) > 0 {
			note := zone.CreateElement("note")
			note.CreateAttr("type", "baseline")
			note.CreateText(tl.Baseline)
		}

		lb := div.CreateElement("lb")
		lb.CreateAttr("facs", "#"+zoneID)
		lb.CreateAttr("n", strconv.Itoa(i+1))

		ab := div.CreateElement("ab")
		appendInline(ab, inline.Render(tl.Text, inline.ParseAnnotations(tl.Custom, log)))
		if len(ab.Child) == 0 && len(tl.Text) > 0 {
			ab.CreateText(tl.Text)
		}
	}
}

// appendInline converts a rendered node sequence into etree children, text
// runs become character data between elements.
func appendInline(parent *etree.Element, nodes []*inline.Node) {
	for _, n := range nodes {
		if n.IsText() {
			parent.CreateText(n.Text)
			continue
		}
		el := parent.CreateElement(n.Tag)
		for _, a := range n.Attrs {
			el.CreateAttr(a.Key, a.Value)
		}
		appendInline(el, n.Children)
	}
}
