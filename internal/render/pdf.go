package render

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/roboco-io/play2html/internal/ir"
)

// PDFRenderer renders a play as a PDF document using the built-in Helvetica
// and Times fonts, so no font files are needed.
type PDFRenderer struct{}

const (
	pdfMargin     = 20.0 // mm
	pdfLineHeight = 5.5
	pdfIndent     = 10.0
)

// Name implements Renderer.
func (r *PDFRenderer) Name() string { return "pdf" }

// Extension implements Renderer.
func (r *PDFRenderer) Extension() string { return ".pdf" }

// Render implements Renderer.
func (r *PDFRenderer) Render(ctx context.Context, play *ir.Play, w io.Writer, opts Options) error {
	if play == nil {
		return fmt.Errorf("play is nil")
	}

	size := opts.PageSize
	if size == "" {
		size = DefaultOptions().PageSize
	}

	pdf := gofpdf.New("P", "mm", size, "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	title := ir.TitleOr(play.Title, "Untitled")

	pdf.SetTitle(title, true)
	pdf.SetCreator("play2html", false)
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(true, pdfMargin)
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.CellFormat(0, 10, fmt.Sprintf("%d", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	// Title page
	pdf.AddPage()
	pdf.SetY(80)
	pdf.SetFont("Times", "B", 24)
	pdf.MultiCell(0, 10, tr(title), "", "C", false)
	if play.Subtitle != nil {
		pdf.Ln(4)
		pdf.SetFont("Times", "", 14)
		pdf.MultiCell(0, 7, tr(*play.Subtitle), "", "C", false)
	}

	for i, act := range play.Acts {
		if err := ctx.Err(); err != nil {
			return err
		}
		pdf.AddPage()
		pdf.SetFont("Times", "B", 18)
		pdf.MultiCell(0, 9, tr(actLabel(act, actNumber(play, i))), "", "C", false)
		pdf.Ln(3)

		for _, scene := range act.Scenes {
			writePDFScene(pdf, tr, scene)
		}
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}
	return nil
}

func writePDFScene(pdf *gofpdf.Fpdf, tr func(string) string, s *ir.Scene) {
	if s.Title != nil {
		pdf.Ln(4)
		pdf.SetFont("Times", "I", 13)
		pdf.MultiCell(0, 7, tr(*s.Title), "", "C", false)
		pdf.Ln(2)
	}

	for _, part := range s.Parts {
		switch part.Type {
		case ir.PartTypeStageDir:
			writePDFStageDirection(pdf, tr, part.StageDirection.Text)
		case ir.PartTypeSpeech:
			writePDFSpeech(pdf, tr, part.Speech)
		}
	}
}

func writePDFStageDirection(pdf *gofpdf.Fpdf, tr func(string) string, text string) {
	pdf.SetFont("Times", "I", 11)
	pdf.SetX(pdfMargin + 2*pdfIndent)
	pdf.MultiCell(0, pdfLineHeight, tr(text), "", "L", false)
}

func writePDFSpeech(pdf *gofpdf.Fpdf, tr func(string) string, sp *ir.Speech) {
	pdf.Ln(2)
	if len(sp.Speakers) > 0 {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.MultiCell(0, pdfLineHeight, tr(strings.ToUpper(strings.Join(sp.Speakers, ", "))), "", "L", false)
	}
	for _, g := range sp.Lines {
		switch g.Type {
		case ir.LineGroupStageDir:
			writePDFStageDirection(pdf, tr, g.StageDirection.Text)
		case ir.LineGroupLine:
			pdf.SetFont("Times", "", 11)
			pdf.SetX(pdfMargin + pdfIndent)
			pdf.MultiCell(0, pdfLineHeight, tr(lineText(g.Line, bracket)), "", "L", false)
		}
	}
}
