package convert

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"text/template"

	sprig "github.com/go-task/slim-sprig/v3"

	"p2t/config"
	"p2t/state"
)

// Values is a struct that holds variables we make available for template expansion
type Values struct {
	Context    string
	Title      string
	Author     string
	Editor     string
	Translator string
	Edition    string
	Language   string
	Date       string
	SourceFile string
	Pages      int
}

func expandTemplate(c *Content, name config.TemplateFieldName, field string, env *state.LocalEnv) (string, error) {
	funcMap := sprig.FuncMap()

	tmpl, err := template.New(string(name)).Funcs(funcMap).Parse(field)
	if err != nil {
		return "", fmt.Errorf("unable to parse template field %s: %w", name, err)
	}

	h := env.Cfg.Document.Header

	lang := h.Language
	if len(lang) == 0 {
		lang = env.Edition.DefaultLanguage()
	}

	values := Values{
		Context:    string(name),
		Title:      h.Title,
		Author:     h.Author,
		Editor:     h.Editor,
		Translator: h.Translator,
		Edition:    env.Edition.String(),
		Language:   lang,
		Date:       h.PublicationDate,
		SourceFile: strings.TrimSuffix(filepath.Base(c.SrcName), filepath.Ext(c.SrcName)),
		Pages:      len(c.Pages.Pages),
	}

	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, values); err != nil {
		return "", err
	}
	return buf.String(), nil
}
