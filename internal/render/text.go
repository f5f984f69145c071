package render

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/roboco-io/play2html/internal/ir"
)

// TextRenderer renders a play as plain text in script layout.
type TextRenderer struct{}

// Name implements Renderer.
func (r *TextRenderer) Name() string { return "text" }

// Extension implements Renderer.
func (r *TextRenderer) Extension() string { return ".txt" }

// Render implements Renderer.
func (r *TextRenderer) Render(ctx context.Context, play *ir.Play, w io.Writer, opts Options) error {
	if play == nil {
		return fmt.Errorf("play is nil")
	}

	bw := bufio.NewWriter(w)
	if play.Title != nil {
		fmt.Fprintln(bw, strings.ToUpper(*play.Title))
	}
	if play.Subtitle != nil {
		fmt.Fprintln(bw, *play.Subtitle)
	}

	for i, act := range play.Acts {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprintf(bw, "\n\n%s\n", actLabel(act, actNumber(play, i)))
		for _, scene := range act.Scenes {
			if scene.Title != nil {
				fmt.Fprintf(bw, "\n%s\n", *scene.Title)
			}
			for _, part := range scene.Parts {
				switch part.Type {
				case ir.PartTypeStageDir:
					fmt.Fprintf(bw, "\n        [%s]\n", part.StageDirection.Text)
				case ir.PartTypeSpeech:
					writeTextSpeech(bw, part.Speech)
				}
			}
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write text: %w", err)
	}
	return nil
}

func writeTextSpeech(w io.Writer, sp *ir.Speech) {
	fmt.Fprintf(w, "\n%s\n", strings.ToUpper(strings.Join(sp.Speakers, ", ")))
	for _, g := range sp.Lines {
		if g.Type == ir.LineGroupStageDir {
			fmt.Fprintf(w, "        [%s]\n", g.StageDirection.Text)
			continue
		}
		fmt.Fprintf(w, "    %s\n", g.Line.String())
	}
}
