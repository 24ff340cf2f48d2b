package convert

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/beevik/etree"
	"go.uber.org/zap"
	"golang.org/x/net/html/charset"

	"p2t/page"
	"p2t/state"
)

// Content couples the raw PAGE-XML document with the parsed layout model
// derived from it.
type Content struct {
	SrcName string
	Doc     *etree.Document
	Pages   *page.Document
}

// Prepare reads and parses PAGE-XML content for conversion.
func Prepare(ctx context.Context, r io.Reader, srcName string, log *zap.Logger) (*Content, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	env := state.EnvFromContext(ctx)

	doc := etree.NewDocument()
	doc.WriteSettings = etree.WriteSettings{
		CanonicalText:    true,
		CanonicalAttrVal: true,
	}
	// Transkribus exports are normally clean UTF-8 but transcriptions travel
	// through many hands, accept whatever charset the XML declaration names
	doc.ReadSettings = etree.ReadSettings{
		CharsetReader: charset.NewReaderLabel,
		ValidateInput: false,
		Permissive:    true,
	}

	if _, err := doc.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("unable to read PAGE-XML: %w", err)
	}

	pages, err := page.ParsePageXML(doc, log)
	if err != nil {
		return nil, fmt.Errorf("unable to parse PAGE-XML: %w", err)
	}

	c := &Content{
		SrcName: srcName,
		Doc:     doc,
		Pages:   pages,
	}

	// Save input and parsed layout for debugging
	if env.Rpt != nil {
		if data, err := doc.WriteToBytes(); err == nil {
			env.Rpt.StoreData(fmt.Sprintf("input/%s", filepath.Base(srcName)), data)
		}
		env.Rpt.StoreData(fmt.Sprintf("input/%s_parsed", filepath.Base(srcName)), []byte(c.String()))
	}

	return c, nil
}
