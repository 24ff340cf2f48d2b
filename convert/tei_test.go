package convert

import (
	"strings"
	"testing"

	"github.com/beevik/etree"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"p2t/config"
)

func TestBuildTEI(t *testing.T) {
	ctx, env := setupTestEnv(t)
	logger := zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1)))

	env.Cfg.Document.Header.Title = "PGM XIII"
	env.Cfg.Document.Header.Author = "Anonymous"
	env.Cfg.Document.Header.Responsibility = "Transcription"
	env.Cfg.Document.Header.ResponsibilityName = "Tester"

	c, err := Prepare(ctx, strings.NewReader(samplePage), "page_001.xml", logger)
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}

	doc := buildTEI(c, env, logger)

	t.Run("header", func(t *testing.T) {
		title := doc.FindElement("//teiHeader/fileDesc/titleStmt/title")
		if title == nil || title.Text() != "PGM XIII" {
			t.Errorf("title = %v, want PGM XIII", title)
		}
		author := doc.FindElement("//teiHeader/fileDesc/titleStmt/author")
		if author == nil || author.Text() != "Anonymous" {
			t.Errorf("author = %v, want Anonymous", author)
		}
		edition := doc.FindElement("//teiHeader/fileDesc/editionStmt/edition")
		if edition == nil || edition.Text() != "Diplomatic digital edition" {
			t.Errorf("edition = %v, want diplomatic label", edition)
		}
		lang := doc.FindElement("//teiHeader/profileDesc/langUsage/language")
		if lang == nil {
			t.Fatal("language declaration missing")
		}
		if got := lang.SelectAttrValue("ident", ""); got != "grc" {
			t.Errorf("language ident = %s, want grc", got)
		}
		if lang.Text() != "Ancient Greek" {
			t.Errorf("language name = %s, want Ancient Greek", lang.Text())
		}
		// nothing configured, publication must still be valid
		if doc.FindElement("//teiHeader/fileDesc/publicationStmt/p") == nil {
			t.Error("expected unpublished placeholder in publicationStmt")
		}
	})

	t.Run("facsimile", func(t *testing.T) {
		surface := doc.FindElement("//facsimile/surface")
		if surface == nil {
			t.Fatal("surface missing")
		}
		if got := surface.SelectAttrValue("xml:id", ""); got != "p1" {
			t.Errorf("surface id = %s, want p1", got)
		}
		graphic := surface.FindElement("graphic")
		if graphic == nil {
			t.Fatal("graphic missing")
		}
		if got := graphic.SelectAttrValue("url", ""); got != "images/scan_001.jpg" {
			t.Errorf("graphic url = %s, want images/scan_001.jpg", got)
		}
		if got := graphic.SelectAttrValue("width", ""); got != "960px" {
			t.Errorf("graphic width = %s, want 960px", got)
		}

		zones := surface.FindElements("zone")
		// one region zone plus three line zones
		if len(zones) != 4 {
			t.Fatalf("got %d zones, want 4", len(zones))
		}
		if got := zones[0].SelectAttrValue("type", ""); got != "TextRegion" {
			t.Errorf("first zone type = %s, want TextRegion", got)
		}
		if got := zones[0].SelectAttrValue("xml:id", ""); got != "z_r1" {
			t.Errorf("first zone id = %s, want z_r1", got)
		}
		if got := zones[0].SelectAttrValue("points", ""); got != "0,0 960,0 960,400 0,400" {
			t.Errorf("zone points not carried verbatim: %s", got)
		}
		line := zones[1]
		if got := line.SelectAttrValue("type", ""); got != "line" {
			t.Errorf("line zone type = %s, want line", got)
		}
		note := line.FindElement("note")
		if note == nil || note.SelectAttrValue("type", "") != "baseline" {
			t.Fatal("baseline note missing")
		}
		if note.Text() != "10,35 400,35" {
			t.Errorf("baseline = %s, want verbatim points", note.Text())
		}
	})

	t.Run("body", func(t *testing.T) {
		div := doc.FindElement("//text/body/div")
		if div == nil {
			t.Fatal("transcription div missing")
		}
		if got := div.SelectAttrValue("xml:lang", ""); got != "grc" {
			t.Errorf("div lang = %s, want grc", got)
		}
		pb := div.FindElement("pb")
		if pb == nil || pb.SelectAttrValue("facs", "") != "#p1" {
			t.Error("pb with facs #p1 missing")
		}

		lbs := div.FindElements("lb")
		abs := div.FindElements("ab")
		if len(lbs) != 3 || len(abs) != 3 {
			t.Fatalf("got %d lb / %d ab, want 3 / 3", len(lbs), len(abs))
		}
		if got := lbs[0].SelectAttrValue("facs", ""); got != "#z_l1" {
			t.Errorf("lb facs = %s, want #z_l1", got)
		}
		if got := lbs[2].SelectAttrValue("n", ""); got != "3" {
			t.Errorf("last lb n = %s, want 3", got)
		}

		abbr := abs[0].FindElement("choice/abbr")
		expan := abs[0].FindElement("choice/expan")
		if abbr == nil || abbr.Text() != "q" {
			t.Errorf("abbr = %v, want q", abbr)
		}
		if expan == nil || expan.Text() != "que" {
			t.Errorf("expan = %v, want que", expan)
		}
		// trailing witness text follows the choice element
		last := abs[0].Child[len(abs[0].Child)-1]
		cd, ok := last.(*etree.CharData)
		if !ok || cd.Data != " ha dicho" {
			t.Errorf("trailing text = %v, want ' ha dicho'", last)
		}

		if abs[1].Text() != "plain line" {
			t.Errorf("plain ab = %q, want 'plain line'", abs[1].Text())
		}
		if len(abs[2].Child) != 0 {
			t.Error("empty line should produce empty ab")
		}
	})
}

func TestBuildTEI_TranslationEdition(t *testing.T) {
	ctx, env := setupTestEnv(t)
	logger := zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1)))

	env.Edition = config.EditionTypeTranslation
	env.Cfg.Document.Header.Translator = "J. Doe"

	c, err := Prepare(ctx, strings.NewReader(samplePage), "page_001.xml", logger)
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	doc := buildTEI(c, env, logger)

	lang := doc.FindElement("//langUsage/language")
	if lang == nil || lang.SelectAttrValue("ident", "") != "es" {
		t.Error("translation edition should default to Spanish")
	}
	translator := doc.FindElement("//titleStmt/editor")
	if translator == nil || translator.SelectAttrValue("role", "") != "translator" || translator.Text() != "J. Doe" {
		t.Errorf("translator editor = %v, want J. Doe with role", translator)
	}
	edition := doc.FindElement("//editionStmt/edition")
	if edition == nil || edition.Text() != "Digital translation edition" {
		t.Errorf("edition = %v, want translation label", edition)
	}
}

func TestBuildTEI_ExplicitLanguage(t *testing.T) {
	ctx, env := setupTestEnv(t)
	logger := zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1)))

	env.Cfg.Document.Header.Language = "la"

	c, err := Prepare(ctx, strings.NewReader(samplePage), "page_001.xml", logger)
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	doc := buildTEI(c, env, logger)

	lang := doc.FindElement("//langUsage/language")
	if lang == nil || lang.SelectAttrValue("ident", "") != "la" {
		t.Error("configured language should win over edition default")
	}
	if lang.Text() != "Latin" {
		t.Errorf("language name = %s, want Latin", lang.Text())
	}
}

func TestImageURL(t *testing.T) {
	tests := []struct {
		name   string
		image  string
		prefix string
		want   string
	}{
		{"prefix added", "scan.jpg", "images/", "images/scan.jpg"},
		{"prefix already present", "images/scan.jpg", "images/", "images/scan.jpg"},
		{"no prefix configured", "scan.jpg", "", "scan.jpg"},
		{"custom prefix", "scan.jpg", "facs/", "facs/scan.jpg"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := imageURL(tt.image, tt.prefix); got != tt.want {
				t.Errorf("imageURL(%q, %q) = %q, want %q", tt.image, tt.prefix, got, tt.want)
			}
		})
	}
}
