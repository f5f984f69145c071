package render

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/roboco-io/play2html/internal/ir"
)

// JSONRenderer writes the play model as JSON, indented unless opts.Compact.
type JSONRenderer struct{}

// Name implements Renderer.
func (r *JSONRenderer) Name() string { return "json" }

// Extension implements Renderer.
func (r *JSONRenderer) Extension() string { return ".json" }

// Render implements Renderer.
func (r *JSONRenderer) Render(ctx context.Context, play *ir.Play, w io.Writer, opts Options) error {
	if play == nil {
		return fmt.Errorf("play is nil")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	if !opts.Compact {
		enc.SetIndent("", "  ")
	}
	enc.SetEscapeHTML(false)
	if err := enc.Encode(play); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// YAMLRenderer writes the play model as YAML.
type YAMLRenderer struct{}

// Name implements Renderer.
func (r *YAMLRenderer) Name() string { return "yaml" }

// Extension implements Renderer.
func (r *YAMLRenderer) Extension() string { return ".yaml" }

// Render implements Renderer.
func (r *YAMLRenderer) Render(ctx context.Context, play *ir.Play, w io.Writer, opts Options) error {
	if play == nil {
		return fmt.Errorf("play is nil")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(play); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	return enc.Close()
}
