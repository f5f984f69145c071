// Package parser provides the event receiver contract and the reference
// document builder for drama scripts.
package parser

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/roboco-io/play2html/internal/ir"
)

// Parser is the interface for play parsers.
type Parser interface {
	// Parse reads the document and returns an IR representation.
	Parse() (*ir.Play, error)

	// Close releases any resources held by the parser.
	Close() error
}

// Format represents a document format.
type Format int

const (
	FormatUnknown Format = iota
	FormatPlayXML
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case FormatPlayXML:
		return "xml"
	default:
		return "unknown"
	}
}

// DetectFormat detects the document format from the file path.
func DetectFormat(path string) Format {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".xml":
		return FormatPlayXML
	default:
		return FormatUnknown
	}
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// DetectFormatFromReader detects the format by sniffing the leading bytes.
func DetectFormatFromReader(r io.ReaderAt) (Format, error) {
	buf := make([]byte, 512)
	n, err := r.ReadAt(buf, 0)
	if err != nil && err != io.EOF {
		return FormatUnknown, fmt.Errorf("failed to read leading bytes: %w", err)
	}
	if n < 4 {
		return FormatUnknown, fmt.Errorf("file too small to detect format")
	}

	head := bytes.TrimPrefix(buf[:n], utf8BOM)
	head = bytes.TrimLeft(head, " \t\r\n")

	switch {
	case bytes.HasPrefix(head, []byte("<?xml")),
		bytes.HasPrefix(head, []byte("<!DOCTYPE PLAY")),
		bytes.HasPrefix(head, []byte("<PLAY")):
		return FormatPlayXML, nil
	}

	return FormatUnknown, nil
}

// DetectFile detects the format of the file at path. The extension must name
// a supported format and the leading bytes must look like a play document.
func DetectFile(path string) (Format, error) {
	if DetectFormat(path) == FormatUnknown {
		return FormatUnknown, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return FormatUnknown, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	return DetectFormatFromReader(f)
}

// Options contains parser configuration options.
type Options struct {
	Strict bool // Report elements missing expected text as SourceDataError
	Trace  bool // Log every structural event while building
}

// DefaultOptions returns default parser options.
func DefaultOptions() Options {
	return Options{
		Strict: false,
		Trace:  false,
	}
}
