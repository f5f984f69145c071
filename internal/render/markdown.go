package render

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/roboco-io/play2html/internal/ir"
)

// MarkdownRenderer renders a play as Markdown with YAML front matter.
type MarkdownRenderer struct{}

// Name implements Renderer.
func (r *MarkdownRenderer) Name() string { return "markdown" }

// Extension implements Renderer.
func (r *MarkdownRenderer) Extension() string { return ".md" }

// Render implements Renderer.
func (r *MarkdownRenderer) Render(ctx context.Context, play *ir.Play, w io.Writer, opts Options) error {
	if play == nil {
		return fmt.Errorf("play is nil")
	}

	var sb strings.Builder

	// Metadata as YAML front matter
	if play.Title != nil || play.Subtitle != nil {
		sb.WriteString("---\n")
		if play.Title != nil {
			sb.WriteString(fmt.Sprintf("title: %q\n", *play.Title))
		}
		if play.Subtitle != nil {
			sb.WriteString(fmt.Sprintf("subtitle: %q\n", *play.Subtitle))
		}
		sb.WriteString("---\n\n")
	}

	if play.Title != nil {
		sb.WriteString(fmt.Sprintf("# %s\n\n", *play.Title))
	}

	for i, act := range play.Acts {
		if err := ctx.Err(); err != nil {
			return err
		}
		sb.WriteString(fmt.Sprintf("## %s\n\n", actLabel(act, actNumber(play, i))))
		for _, scene := range act.Scenes {
			writeMarkdownScene(&sb, scene)
		}
	}

	if _, err := io.WriteString(w, sb.String()); err != nil {
		return fmt.Errorf("failed to write markdown: %w", err)
	}
	return nil
}

func writeMarkdownScene(sb *strings.Builder, s *ir.Scene) {
	if s.Title != nil {
		sb.WriteString(fmt.Sprintf("### %s\n\n", *s.Title))
	}

	for _, part := range s.Parts {
		switch part.Type {
		case ir.PartTypeStageDir:
			if part.StageDirection != nil {
				writeMarkdownStageDirection(sb, part.StageDirection.Text)
			}
		case ir.PartTypeSpeech:
			if part.Speech != nil {
				writeMarkdownSpeech(sb, part.Speech)
			}
		}
	}
}

func writeMarkdownStageDirection(sb *strings.Builder, text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	sb.WriteString(fmt.Sprintf("*%s*\n\n", text))
}

func writeMarkdownSpeech(sb *strings.Builder, sp *ir.Speech) {
	if len(sp.Speakers) > 0 {
		sb.WriteString(fmt.Sprintf("**%s**\n\n", strings.Join(sp.Speakers, " / ")))
	}

	// Consecutive lines form one paragraph with hard breaks.
	var para []string
	flush := func() {
		if len(para) > 0 {
			sb.WriteString(strings.Join(para, "  \n") + "\n\n")
			para = para[:0]
		}
	}

	for _, g := range sp.Lines {
		switch g.Type {
		case ir.LineGroupLine:
			if g.Line != nil {
				para = append(para, lineText(g.Line, emphasizedBracket))
			}
		case ir.LineGroupStageDir:
			flush()
			if g.StageDirection != nil {
				writeMarkdownStageDirection(sb, g.StageDirection.Text)
			}
		}
	}
	flush()
}

func emphasizedBracket(s string) string {
	return "_" + bracket(s) + "_"
}
