package render

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/Masterminds/sprig/v3"

	"github.com/roboco-io/play2html/internal/ir"
)

//go:embed templates
var templateFS embed.FS

var templates = template.Must(
	template.New("render").
		Funcs(sprig.FuncMap()).
		Funcs(template.FuncMap{
			"deref":     deref,
			"actLabel":  actLabel,
			"actNumber": actNumber,
		}).
		ParseFS(templateFS, "templates/*.tmpl"),
)

var defaultCSS = mustReadCSS()

func mustReadCSS() template.CSS {
	data, err := templateFS.ReadFile("templates/play.css")
	if err != nil {
		panic(err)
	}
	return template.CSS(data)
}

// HTMLRenderer renders a play as a standalone HTML page.
type HTMLRenderer struct{}

type playView struct {
	Play       *ir.Play
	Stylesheet string
	CSS        template.CSS
}

type indexView struct {
	Title      string
	Plays      []ir.Summary
	Stylesheet string
	CSS        template.CSS
}

// Name implements Renderer.
func (r *HTMLRenderer) Name() string { return "html" }

// Extension implements Renderer.
func (r *HTMLRenderer) Extension() string { return ".html" }

// Render implements Renderer.
func (r *HTMLRenderer) Render(ctx context.Context, play *ir.Play, w io.Writer, opts Options) error {
	if play == nil {
		return fmt.Errorf("play is nil")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	view := playView{
		Play:       play,
		Stylesheet: opts.Stylesheet,
		CSS:        defaultCSS,
	}
	if err := templates.ExecuteTemplate(w, "play", view); err != nil {
		return fmt.Errorf("failed to render HTML: %w", err)
	}
	return nil
}

// RenderIndex writes an HTML page linking every rendered play.
func RenderIndex(w io.Writer, plays []ir.Summary, opts Options) error {
	title := opts.IndexTitle
	if title == "" {
		title = DefaultOptions().IndexTitle
	}

	view := indexView{
		Title:      title,
		Plays:      plays,
		Stylesheet: opts.Stylesheet,
		CSS:        defaultCSS,
	}
	if err := templates.ExecuteTemplate(w, "index", view); err != nil {
		return fmt.Errorf("failed to render index: %w", err)
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// actNumber returns the ordinal of acts[i] among the ordinary acts of play.
func actNumber(play *ir.Play, i int) int {
	n := 0
	for j := 0; j <= i && j < len(play.Acts); j++ {
		if play.Acts[j].Kind == ir.ActAct {
			n++
		}
	}
	return n
}
