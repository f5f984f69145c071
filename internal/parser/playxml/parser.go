// Package playxml provides a parser for drama scripts in PLAY/ACT/SCENE XML.
package playxml

import (
	"bytes"
	"fmt"
	"io"

	"github.com/beevik/etree"
	"github.com/rs/zerolog/log"

	"github.com/roboco-io/play2html/internal/ir"
	"github.com/roboco-io/play2html/internal/parser"
)

// Parser parses drama XML documents.
type Parser struct {
	path    string
	doc     *etree.Document
	options parser.Options
}

// New creates a new parser for the given file path. The whole document is
// read into memory before any structural walking happens.
func New(path string, opts parser.Options) (*Parser, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromFile(path); err != nil {
		return nil, fmt.Errorf("failed to read play XML: %w", err)
	}

	return &Parser{
		path:    path,
		doc:     doc,
		options: opts,
	}, nil
}

// NewFromReader creates a parser reading the document from r.
func NewFromReader(r io.Reader, opts parser.Options) (*Parser, error) {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("failed to read play XML: %w", err)
	}

	return &Parser{
		doc:     doc,
		options: opts,
	}, nil
}

// ParseBytes parses a play from in-memory XML.
func ParseBytes(data []byte, opts parser.Options) (*ir.Play, error) {
	p, err := NewFromReader(bytes.NewReader(data), opts)
	if err != nil {
		return nil, err
	}
	defer p.Close()
	return p.Parse()
}

// Parse implements the Parser interface.
func (p *Parser) Parse() (*ir.Play, error) {
	b := parser.NewBuilder()

	var r parser.Receiver = b
	if p.options.Trace {
		logger := log.With().Str("component", "walker").Str("file", p.path).Logger()
		r = parser.Tee(parser.NewTracer(logger), b)
	}

	if err := p.Walk(r); err != nil {
		return nil, err
	}

	play, err := b.Play()
	if err != nil {
		return nil, fmt.Errorf("failed to build play: %w", err)
	}
	return play, nil
}

// Walk reports the structural events of the document to r.
func (p *Parser) Walk(r parser.Receiver) error {
	if p.doc == nil {
		return fmt.Errorf("parser is closed")
	}
	if err := NewWalker(p.options).Traverse(p.doc, r); err != nil {
		return fmt.Errorf("failed to walk play: %w", err)
	}
	return nil
}

// Path returns the file path the parser was created with, if any.
func (p *Parser) Path() string {
	return p.path
}

// Close releases the document tree.
func (p *Parser) Close() error {
	p.doc = nil
	return nil
}

var _ parser.Parser = (*Parser)(nil)
