// Package filewalker discovers play documents from globs and directories.
package filewalker

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/rs/zerolog/log"

	"github.com/roboco-io/play2html/internal/parser"
)

// Discover expands each pattern into the play files it names. A pattern may
// be a file, a directory (searched recursively) or a glob. Results are
// absolute, de-duplicated and sorted.
func Discover(patterns ...string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string

	add := func(path string) error {
		abs, err := filepath.Abs(path)
		if err != nil {
			return fmt.Errorf("resolve path: %w", err)
		}
		if !seen[abs] {
			seen[abs] = true
			files = append(files, abs)
		}
		return nil
	}

	for _, pattern := range patterns {
		info, err := os.Stat(pattern)
		switch {
		case err == nil && info.IsDir():
			if err := walkDir(pattern, add); err != nil {
				return nil, err
			}
			continue
		case err == nil:
			// Files named explicitly are kept whatever their extension.
			if err := add(pattern); err != nil {
				return nil, err
			}
			continue
		}

		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			log.Warn().Str("pattern", pattern).Msg("Pattern matched no files")
		}
		for _, m := range matches {
			if !isPlayFile(m) {
				continue
			}
			if err := add(m); err != nil {
				return nil, err
			}
		}
	}

	sort.Strings(files)
	log.Debug().Int("count", len(files)).Strs("patterns", patterns).Msg("Discovered files")
	return files, nil
}

func walkDir(root string, add func(string) error) error {
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("Error walking path")
			return nil
		}
		if d.IsDir() || !isPlayFile(path) {
			return nil
		}
		return add(path)
	})
	if err != nil {
		return fmt.Errorf("walk directory: %w", err)
	}
	return nil
}

func isPlayFile(path string) bool {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}
	if parser.DetectFormat(path) == parser.FormatUnknown {
		return false
	}

	format, err := parser.DetectFile(path)
	if err != nil || format == parser.FormatUnknown {
		log.Debug().Err(err).Str("path", path).Msg("Skipping file that is not a play document")
		return false
	}
	return true
}

// OutputPath returns the path in outDir for the rendering of source with
// the given extension, e.g. plays/hamlet.xml -> public/hamlet.html.
func OutputPath(source, outDir, ext string) string {
	base := filepath.Base(source)
	name := base[:len(base)-len(filepath.Ext(base))]
	return filepath.Join(outDir, name+ext)
}
