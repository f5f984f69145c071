// Package render turns plays into output documents.
package render

import (
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/roboco-io/play2html/internal/ir"
)

// Renderer is the interface that all output formats must implement.
type Renderer interface {
	// Name returns the renderer identifier (e.g., "html", "markdown").
	Name() string

	// Extension returns the file extension for rendered output, with the dot.
	Extension() string

	// Render writes play to w.
	Render(ctx context.Context, play *ir.Play, w io.Writer, opts Options) error
}

// Options contains options shared by renderers. Each renderer reads the
// fields it understands and ignores the rest.
type Options struct {
	Stylesheet string `json:"stylesheet,omitempty" yaml:"stylesheet,omitempty"` // stylesheet href for HTML; inline default when empty
	PageSize   string `json:"page_size,omitempty" yaml:"page_size,omitempty"`   // PDF page size (A4, Letter, ...)
	IndexTitle string `json:"index_title,omitempty" yaml:"index_title,omitempty"`
	Compact    bool   `json:"compact,omitempty" yaml:"compact,omitempty"` // JSON on a single line
}

// DefaultOptions returns the default rendering options.
func DefaultOptions() Options {
	return Options{
		PageSize:   "A4",
		IndexTitle: "Plays",
	}
}

// actLabel returns a heading for an act, falling back to its kind.
func actLabel(a *ir.Act, n int) string {
	if a.Title != nil {
		return *a.Title
	}
	if !a.IsSynthetic() {
		return "Act " + strconv.Itoa(n)
	}
	switch a.Kind {
	case ir.ActInduct:
		return "Induction"
	case ir.ActPrologue:
		return "Prologue"
	default:
		return "Epilogue"
	}
}

// lineText joins the non-empty fragments of l with spaces, passing
// parentheticals through paren.
func lineText(l *ir.Line, paren func(string) string) string {
	parts := make([]string, 0, len(l.Fragments))
	for _, f := range l.Fragments {
		if f.Text == "" {
			continue
		}
		if f.Kind == ir.FragmentParenthetical {
			parts = append(parts, paren(f.Text))
			continue
		}
		parts = append(parts, f.Text)
	}
	return strings.Join(parts, " ")
}

func bracket(s string) string {
	return "[" + s + "]"
}
