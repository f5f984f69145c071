// Package batch converts many plays concurrently into an output directory.
package batch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/roboco-io/play2html/internal/catalog"
	"github.com/roboco-io/play2html/internal/filewalker"
	"github.com/roboco-io/play2html/internal/ir"
	"github.com/roboco-io/play2html/internal/parser"
	"github.com/roboco-io/play2html/internal/parser/playxml"
	"github.com/roboco-io/play2html/internal/render"
	"github.com/roboco-io/play2html/internal/worker"
)

// IndexFileName is the name of the index page written next to the plays.
const IndexFileName = "index.html"

// ErrOutputConflict is recorded for sources that would be written to the
// same output file as another source in the run.
var ErrOutputConflict = errors.New("output file shared with another source")

// Options configures a batch run.
type Options struct {
	Renderer      render.Renderer
	RenderOptions render.Options
	ParserOptions parser.Options
	OutDir        string
	Workers       int
	Index         bool             // write IndexFileName linking every converted play
	FailFast      bool             // stop dispatching after the first failure
	Catalog       *catalog.Catalog // optional record of converted plays
}

// Result is the outcome for one source file.
type Result struct {
	Source  string
	Output  string
	Summary ir.Summary
	Stats   ir.Stats
	Err     error
	Skipped bool // not attempted because the run was stopped
}

// Report summarizes a batch run.
type Report struct {
	Results []Result
	Index   string // path of the written index page, if any
}

// Converted returns the number of plays written.
func (r *Report) Converted() int {
	n := 0
	for _, res := range r.Results {
		if res.Err == nil {
			n++
		}
	}
	return n
}

// Failed returns the number of plays that failed to convert.
func (r *Report) Failed() int {
	n := 0
	for _, res := range r.Results {
		if res.Err != nil && !res.Skipped {
			n++
		}
	}
	return n
}

// Skipped returns the number of plays never attempted.
func (r *Report) Skipped() int {
	n := 0
	for _, res := range r.Results {
		if res.Skipped {
			n++
		}
	}
	return n
}

// Err joins the per-file errors, or returns nil when every play converted.
func (r *Report) Err() error {
	var errs []error
	for _, res := range r.Results {
		if res.Err != nil && !res.Skipped {
			errs = append(errs, fmt.Errorf("%s: %w", res.Source, res.Err))
		}
	}
	return errors.Join(errs...)
}

// Run converts every source into opts.OutDir. Per-file failures are recorded
// in the report; the returned error covers setup and index failures only.
func Run(ctx context.Context, sources []string, opts Options) (*Report, error) {
	if opts.Renderer == nil {
		return nil, fmt.Errorf("no renderer configured")
	}
	if err := os.MkdirAll(opts.OutDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	dispatch, conflicts := planOutputs(sources, opts)

	runCtx, stop := context.WithCancel(ctx)
	defer stop()
	if len(conflicts) > 0 && opts.FailFast {
		stop()
	}

	pool := worker.NewPool(opts.Workers, func(ctx context.Context, source string) (Result, error) {
		res, err := convert(ctx, source, opts)
		if err != nil && opts.FailFast {
			stop()
		}
		return res, err
	})

	log.Info().
		Int("files", len(sources)).
		Int("workers", pool.Workers()).
		Str("format", opts.Renderer.Name()).
		Str("out", opts.OutDir).
		Msg("Converting plays")

	converted := make(map[string]Result, len(dispatch))
	for _, task := range pool.Execute(runCtx, dispatch) {
		res := task.Result
		res.Source = task.Input
		res.Err = task.Err
		if task.Err != nil && errors.Is(task.Err, context.Canceled) && res.Output == "" {
			res.Skipped = true
		}
		converted[task.Input] = res
	}

	report := &Report{Results: make([]Result, len(sources))}
	for i, source := range sources {
		if err, ok := conflicts[source]; ok {
			report.Results[i] = Result{Source: source, Err: err}
			continue
		}
		report.Results[i] = converted[source]
	}

	if opts.Index {
		path, err := writeIndex(report, opts)
		if err != nil {
			return report, err
		}
		report.Index = path
	}

	log.Info().
		Int("converted", report.Converted()).
		Int("failed", report.Failed()).
		Int("skipped", report.Skipped()).
		Msg("Batch finished")
	return report, nil
}

// planOutputs splits sources into those safe to convert and those whose
// output path collides with another source's. Every source in a collision
// fails, so no rendering overwrites another.
func planOutputs(sources []string, opts Options) ([]string, map[string]error) {
	ext := opts.Renderer.Extension()
	owners := make(map[string][]string, len(sources))
	for _, source := range sources {
		out := filewalker.OutputPath(source, opts.OutDir, ext)
		owners[out] = append(owners[out], source)
	}

	var dispatch []string
	conflicts := make(map[string]error)
	for _, source := range sources {
		out := filewalker.OutputPath(source, opts.OutDir, ext)
		if shared := owners[out]; len(shared) > 1 {
			conflicts[source] = fmt.Errorf("%w: %s (%s)",
				ErrOutputConflict, filepath.Base(out), strings.Join(shared, ", "))
			log.Error().Str("file", source).Str("output", out).Msg("Output file shared with another source")
			continue
		}
		dispatch = append(dispatch, source)
	}
	return dispatch, conflicts
}

func convert(ctx context.Context, source string, opts Options) (Result, error) {
	res := Result{Source: source}
	if err := ctx.Err(); err != nil {
		return res, err
	}

	p, err := playxml.New(source, opts.ParserOptions)
	if err != nil {
		log.Error().Err(err).Str("file", source).Msg("Failed to read play")
		return res, err
	}
	defer p.Close()

	play, err := p.Parse()
	if err != nil {
		log.Error().Err(err).Str("file", source).Msg("Failed to parse play")
		return res, err
	}

	out := filewalker.OutputPath(source, opts.OutDir, opts.Renderer.Extension())
	if err := writeFile(ctx, out, play, opts); err != nil {
		log.Error().Err(err).Str("file", source).Msg("Failed to render play")
		return res, err
	}

	res.Output = out
	res.Summary = play.Summary(filepath.Base(out))
	res.Stats = play.Stats()

	if opts.Catalog != nil {
		entry := catalog.EntryFor(source, filepath.Base(out), play, time.Now())
		if err := opts.Catalog.Upsert(ctx, entry); err != nil {
			log.Warn().Err(err).Str("file", source).Msg("Failed to update catalog")
		}
	}

	log.Info().Msgf("%s -> %s", filepath.Base(source), filepath.Base(out))
	return res, nil
}

// writeFile renders play to path, removing the file again on failure.
func writeFile(ctx context.Context, path string, play *ir.Play, opts Options) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}
	if err := opts.Renderer.Render(ctx, play, f, opts.RenderOptions); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func writeIndex(report *Report, opts Options) (string, error) {
	summaries := make([]ir.Summary, 0, len(report.Results))
	for _, res := range report.Results {
		if res.Err == nil {
			summaries = append(summaries, res.Summary)
		}
	}

	path := filepath.Join(opts.OutDir, IndexFileName)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create index: %w", err)
	}
	defer f.Close()

	if err := render.RenderIndex(f, summaries, opts.RenderOptions); err != nil {
		return "", err
	}
	log.Info().Int("plays", len(summaries)).Str("path", path).Msg("Index written")
	return path, nil
}
