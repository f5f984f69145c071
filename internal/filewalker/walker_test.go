package filewalker

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFiles(t *testing.T, root string, names ...string) {
	t.Helper()
	for _, name := range names {
		path := filepath.Join(root, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("failed to create dir: %v", err)
		}
		if err := os.WriteFile(path, []byte("<PLAY/>"), 0644); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}
}

func rel(t *testing.T, root string, files []string) []string {
	t.Helper()
	out := make([]string, len(files))
	for i, f := range files {
		r, err := filepath.Rel(root, f)
		if err != nil {
			t.Fatalf("unexpected path %s: %v", f, err)
		}
		out[i] = filepath.ToSlash(r)
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestDiscover(t *testing.T) {
	root, _ := filepath.Abs(t.TempDir())
	writeFiles(t, root,
		"src/hamlet.xml",
		"src/macbeth.XML",
		"src/notes.txt",
		"src/nested/lear.xml",
		"other/othello.xml",
	)
	if err := os.WriteFile(filepath.Join(root, "src", "notes.xml"), []byte("rehearsal notes"), 0644); err != nil {
		t.Fatalf("failed to write notes.xml: %v", err)
	}

	tests := []struct {
		name     string
		patterns []string
		want     []string
	}{
		{
			name:     "glob",
			patterns: []string{filepath.Join(root, "src", "*.xml")},
			want:     []string{"src/hamlet.xml"},
		},
		{
			name:     "glob any case",
			patterns: []string{filepath.Join(root, "src", "*")},
			want:     []string{"src/hamlet.xml", "src/macbeth.XML"},
		},
		{
			name:     "directory is recursive",
			patterns: []string{filepath.Join(root, "src")},
			want:     []string{"src/hamlet.xml", "src/macbeth.XML", "src/nested/lear.xml"},
		},
		{
			name:     "xml without markup skipped",
			patterns: []string{filepath.Join(root, "src", "n*")},
			want:     []string{},
		},
		{
			name:     "explicit file",
			patterns: []string{filepath.Join(root, "src", "notes.txt")},
			want:     []string{"src/notes.txt"},
		},
		{
			name: "duplicates removed",
			patterns: []string{
				filepath.Join(root, "other"),
				filepath.Join(root, "other", "othello.xml"),
				filepath.Join(root, "*", "othello.xml"),
			},
			want: []string{"other/othello.xml"},
		},
		{
			name:     "no match",
			patterns: []string{filepath.Join(root, "missing", "*.xml")},
			want:     []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			files, err := Discover(tt.patterns...)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := rel(t, root, files); !equal(got, tt.want) {
				t.Errorf("Discover() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDiscover_BadPattern(t *testing.T) {
	if _, err := Discover("[unclosed"); err == nil {
		t.Error("expected error for malformed pattern")
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		source string
		ext    string
		want   string
	}{
		{"src/preprocessed/hamlet.xml", ".html", filepath.Join("public", "hamlet.html")},
		{"xml/much_ado.xml", ".md", filepath.Join("public", "much_ado.md")},
		{"noext", ".html", filepath.Join("public", "noext.html")},
	}

	for _, tt := range tests {
		if got := OutputPath(tt.source, "public", tt.ext); got != tt.want {
			t.Errorf("OutputPath(%q) = %q, want %q", tt.source, got, tt.want)
		}
	}
}
