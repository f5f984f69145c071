package batch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/roboco-io/play2html/internal/catalog"
	"github.com/roboco-io/play2html/internal/filewalker"
	"github.com/roboco-io/play2html/internal/parser"
	"github.com/roboco-io/play2html/internal/render"
)

const hamletXML = `<?xml version="1.0"?>
<PLAY><TITLE>Hamlet</TITLE><PLAYSUBT>HAMLET</PLAYSUBT>
<ACT><TITLE>ACT I</TITLE><SCENE><TITLE>SCENE I</TITLE>
<SPEECH><SPEAKER>BERNARDO</SPEAKER><LINE>Who's there?</LINE></SPEECH>
</SCENE></ACT></PLAY>`

const macbethXML = `<PLAY><TITLE>Macbeth</TITLE>
<ACT><SCENE><STAGEDIR>Thunder and lightning</STAGEDIR></SCENE></ACT></PLAY>`

func setup(t *testing.T, files map[string]string) (string, []string) {
	t.Helper()
	dir := t.TempDir()
	var sources []string
	for name, content := range files {
		path := filepath.Join(dir, "src", name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("failed to create dir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
		sources = append(sources, path)
	}
	sort.Strings(sources)
	return dir, sources
}

func htmlOptions(dir string) Options {
	rd, _ := render.Get("html")
	return Options{
		Renderer:      rd,
		RenderOptions: render.DefaultOptions(),
		ParserOptions: parser.DefaultOptions(),
		OutDir:        filepath.Join(dir, "public"),
		Workers:       2,
		Index:         true,
	}
}

func TestRun(t *testing.T) {
	dir, sources := setup(t, map[string]string{
		"hamlet.xml":  hamletXML,
		"macbeth.xml": macbethXML,
	})
	opts := htmlOptions(dir)

	report, err := Run(context.Background(), sources, opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Converted() != 2 || report.Failed() != 0 || report.Err() != nil {
		t.Fatalf("unexpected report: %+v", report.Results)
	}

	for _, name := range []string{"hamlet.html", "macbeth.html"} {
		if _, err := os.Stat(filepath.Join(opts.OutDir, name)); err != nil {
			t.Errorf("expected %s: %v", name, err)
		}
	}

	if report.Results[0].Summary.Title != "Hamlet" || report.Results[0].Summary.File != "hamlet.html" {
		t.Errorf("unexpected summary: %+v", report.Results[0].Summary)
	}
	if report.Results[0].Stats.Lines != 1 {
		t.Errorf("unexpected stats: %+v", report.Results[0].Stats)
	}

	index, err := os.ReadFile(report.Index)
	if err != nil {
		t.Fatalf("expected index: %v", err)
	}
	hamlet := strings.Index(string(index), `href="hamlet.html"`)
	macbeth := strings.Index(string(index), `href="macbeth.html"`)
	if hamlet < 0 || macbeth < 0 || hamlet > macbeth {
		t.Errorf("expected index to link both plays in order\n%s", index)
	}
}

func TestRun_PartialFailure(t *testing.T) {
	dir, sources := setup(t, map[string]string{
		"a_broken.xml": "<PLAY><ACT></PLAY>",
		"b_wrong.xml":  "<TEI/>",
		"c_hamlet.xml": hamletXML,
	})
	opts := htmlOptions(dir)

	report, err := Run(context.Background(), sources, opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Converted() != 1 || report.Failed() != 2 {
		t.Errorf("expected 1 converted and 2 failed, got %d/%d", report.Converted(), report.Failed())
	}
	if err := report.Err(); err == nil || !strings.Contains(err.Error(), "b_wrong.xml") {
		t.Errorf("expected joined error naming the failed file, got %v", err)
	}
	if _, err := os.Stat(filepath.Join(opts.OutDir, "b_wrong.html")); !os.IsNotExist(err) {
		t.Error("expected no output for failed play")
	}

	index, _ := os.ReadFile(report.Index)
	if strings.Contains(string(index), "b_wrong") || !strings.Contains(string(index), "c_hamlet.html") {
		t.Errorf("expected index to list only converted plays\n%s", index)
	}
}

func TestRun_OutputConflict(t *testing.T) {
	dir, _ := setup(t, map[string]string{
		"folio/hamlet.xml":  hamletXML,
		"quarto/hamlet.xml": macbethXML,
		"macbeth.xml":       macbethXML,
	})
	sources, err := filewalker.Discover(filepath.Join(dir, "src"))
	if err != nil {
		t.Fatalf("discover failed: %v", err)
	}
	opts := htmlOptions(dir)

	report, err := Run(context.Background(), sources, opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Converted() != 1 || report.Failed() != 2 {
		t.Fatalf("expected 1 converted and 2 failed, got %d/%d", report.Converted(), report.Failed())
	}
	for _, res := range report.Results {
		if strings.HasSuffix(res.Source, "hamlet.xml") && !errors.Is(res.Err, ErrOutputConflict) {
			t.Errorf("expected output conflict for %s, got %v", res.Source, res.Err)
		}
	}
	if err := report.Err(); !errors.Is(err, ErrOutputConflict) {
		t.Errorf("expected joined error to carry the conflict, got %v", err)
	}

	if _, err := os.Stat(filepath.Join(opts.OutDir, "hamlet.html")); !os.IsNotExist(err) {
		t.Error("expected no output for conflicting sources")
	}
	index, _ := os.ReadFile(report.Index)
	if strings.Contains(string(index), "hamlet.html") || !strings.Contains(string(index), "macbeth.html") {
		t.Errorf("expected index to list only the unambiguous play\n%s", index)
	}
}

func TestRun_OutputConflictFailFast(t *testing.T) {
	dir, sources := setup(t, map[string]string{
		"a/hamlet.xml": hamletXML,
		"b/hamlet.xml": hamletXML,
		"macbeth.xml":  macbethXML,
	})
	opts := htmlOptions(dir)
	opts.FailFast = true

	report, err := Run(context.Background(), sources, opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Failed() != 2 || report.Skipped() != 1 || report.Converted() != 0 {
		t.Errorf("expected 2 failed and 1 skipped, got %+v", report.Results)
	}
}

func TestRun_FailFast(t *testing.T) {
	dir, sources := setup(t, map[string]string{
		"a_broken.xml": "<TEI/>",
		"b.xml":        hamletXML,
		"c.xml":        hamletXML,
		"d.xml":        hamletXML,
	})
	opts := htmlOptions(dir)
	opts.Workers = 1
	opts.FailFast = true
	opts.Index = false

	report, err := Run(context.Background(), sources, opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Failed() != 1 {
		t.Errorf("expected 1 failure, got %d", report.Failed())
	}
	if report.Skipped() < 2 {
		t.Errorf("expected remaining plays to be skipped, got %d skipped", report.Skipped())
	}
	if report.Index != "" {
		t.Error("expected no index")
	}
}

func TestRun_Cancelled(t *testing.T) {
	dir, sources := setup(t, map[string]string{"hamlet.xml": hamletXML})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := Run(ctx, sources, htmlOptions(dir))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Skipped() != 1 || report.Converted() != 0 {
		t.Errorf("expected everything skipped, got %+v", report.Results)
	}
	if report.Err() != nil {
		t.Errorf("skipped plays are not failures: %v", report.Err())
	}
}

func TestRun_Catalog(t *testing.T) {
	dir, sources := setup(t, map[string]string{
		"hamlet.xml":  hamletXML,
		"macbeth.xml": macbethXML,
	})
	ctx := context.Background()

	cat, err := catalog.Open(ctx, filepath.Join(dir, "catalog.sqlite"))
	if err != nil {
		t.Fatalf("failed to open catalog: %v", err)
	}
	defer cat.Close()

	opts := htmlOptions(dir)
	opts.Catalog = cat
	if _, err := Run(ctx, sources, opts); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entries, err := cat.List(ctx)
	if err != nil {
		t.Fatalf("failed to list catalog: %v", err)
	}
	if len(entries) != 2 || entries[0].Title != "Hamlet" || entries[1].File != "macbeth.html" {
		t.Errorf("unexpected catalog entries: %+v", entries)
	}
}

func TestRun_OtherFormat(t *testing.T) {
	dir, sources := setup(t, map[string]string{"hamlet.xml": hamletXML})
	opts := htmlOptions(dir)
	opts.Renderer, _ = render.Get("markdown")

	report, err := Run(context.Background(), sources, opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if filepath.Base(report.Results[0].Output) != "hamlet.md" {
		t.Errorf("expected markdown output, got %s", report.Results[0].Output)
	}
	index, _ := os.ReadFile(report.Index)
	if !strings.Contains(string(index), `href="hamlet.md"`) {
		t.Errorf("expected index to link markdown file\n%s", index)
	}
}

func TestRun_NoRenderer(t *testing.T) {
	if _, err := Run(context.Background(), nil, Options{OutDir: t.TempDir()}); err == nil {
		t.Error("expected error without renderer")
	}
}
