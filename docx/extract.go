// Package docx extracts a style model from a Word document and re-applies it
// to new content.
//
// The extractor walks a parsed document in source order (sections, headers
// and footers, body paragraphs, tables) and populates a style.Model.  The
// applier starts from a blank document and replays the captured styling
// around caller-supplied content.  Both sides work at the raw wml level for
// style attributes so that "no override in the source" round-trips as "no
// override in the output".
package docx

import (
	"fmt"
	"io"
	"strings"

	"github.com/TuckerHoneycutt/docstyle/style"
	"github.com/unidoc/unioffice/document"
	"github.com/unidoc/unioffice/schema/soo/wml"
)

// headingStylePrefix routes named paragraph styles into the heading bucket.
const headingStylePrefix = "Heading"

// Extract reads a DOCX document and captures its styling into a fresh model.
// The source document is never mutated.
func Extract(r io.ReaderAt, size int64) (*style.Model, error) {
	doc, err := document.Read(r, size)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptDocument, err)
	}
	return extractModel(doc)
}

func extractModel(doc *document.Document) (*style.Model, error) {
	body := doc.X().Body
	if body == nil {
		return nil, fmt.Errorf("%w: document has no body", ErrCorruptDocument)
	}

	m := style.New()

	// Section properties live on the last paragraph of each non-final
	// section, with the final section's on the body itself.  Collect them in
	// that order; the first section's margins double as the document-level
	// default.
	for _, sp := range sectionProperties(body) {
		sect := style.Section{Margins: sectionMargins(sp)}
		if sp.Type != nil && sp.Type.ValAttr == wml.ST_SectionMarkNextPage {
			sect.PageBreakBefore = true
		}
		m.Sections = append(m.Sections, sect)
		if len(m.Sections) == 1 {
			m.Margins = sect.Margins
		}
	}

	// Headers then footers, one entry per non-empty paragraph.
	for _, hdr := range doc.Headers() {
		for _, p := range hdr.Paragraphs() {
			text := paragraphText(p)
			if strings.TrimSpace(text) == "" {
				continue
			}
			m.Headers = append(m.Headers, style.HeaderFooter{Text: text, Style: extractParagraphStyle(p)})
		}
	}
	for _, ftr := range doc.Footers() {
		for _, p := range ftr.Paragraphs() {
			text := paragraphText(p)
			if strings.TrimSpace(text) == "" {
				continue
			}
			m.Footers = append(m.Footers, style.HeaderFooter{Text: text, Style: extractParagraphStyle(p)})
		}
	}

	// Body paragraphs in order.  Heading-named styles are collected apart
	// from regular paragraph styles; neither sequence is deduplicated.
	paragraphs := doc.Paragraphs()
	for _, p := range paragraphs {
		if strings.TrimSpace(paragraphText(p)) == "" {
			continue
		}
		ps := extractParagraphStyle(p)
		if strings.HasPrefix(p.Style(), headingStylePrefix) {
			m.HeadingStyles = append(m.HeadingStyles, ps)
		} else {
			m.ParagraphStyles = append(m.ParagraphStyles, ps)
		}
	}

	// Tables: cell text verbatim, style from the cell's first paragraph.
	for _, tbl := range doc.Tables() {
		var t style.Table
		for _, row := range tbl.Rows() {
			var cells []style.Cell
			for _, cell := range row.Cells() {
				c := style.Cell{Text: cellText(cell)}
				if cps := cell.Paragraphs(); len(cps) > 0 {
					s := extractParagraphStyle(cps[0])
					c.Style = &s
				}
				cells = append(cells, c)
			}
			t.Rows = append(t.Rows, cells)
		}
		m.Tables = append(m.Tables, t)
	}

	// Second pass: the document's opening paragraph seeds the global
	// defaults, but only for the fields it explicitly sets. An unset field
	// never overwrites anything.
	if len(paragraphs) > 0 {
		applyDocumentDefaults(m, paragraphs[0])
	}

	return m, nil
}

// sectionProperties returns every sectPr in document order: paragraph-level
// ones first, then the body-level one.
func sectionProperties(body *wml.CT_Body) []*wml.CT_SectPr {
	var out []*wml.CT_SectPr
	for _, bl := range body.EG_BlockLevelElts {
		for _, c := range bl.EG_ContentBlockContent {
			for _, p := range c.P {
				if p.PPr != nil && p.PPr.SectPr != nil {
					out = append(out, p.PPr.SectPr)
				}
			}
		}
	}
	if body.SectPr != nil {
		out = append(out, body.SectPr)
	}
	return out
}

func sectionMargins(sp *wml.CT_SectPr) style.Margins {
	var m style.Margins
	if sp.PgMar == nil {
		return m
	}
	m.Top = pageMarSigned(sp.PgMar.TopAttr)
	m.Bottom = pageMarSigned(sp.PgMar.BottomAttr)
	m.Left = pageMarUnsigned(sp.PgMar.LeftAttr)
	m.Right = pageMarUnsigned(sp.PgMar.RightAttr)
	return m
}

// extractParagraphStyle captures one paragraph's formatting.  The font comes
// from the first run only; later runs are not inspected.
func extractParagraphStyle(p document.Paragraph) style.ParagraphStyle {
	var ps style.ParagraphStyle

	if runs := p.Runs(); len(runs) > 0 {
		ps.Font = runFont(runs[0])
	}

	ppr := p.X().PPr
	if ppr == nil {
		return ps
	}
	ps.Alignment = alignmentValue(ppr.Jc)
	ps.LineSpacing = lineSpacingValue(ppr.Spacing)
	ps.Indentation = indentationValue(ppr.Ind)
	if ppr.Spacing != nil {
		ps.SpaceBefore = twipsValue(ppr.Spacing.BeforeAttr)
		ps.SpaceAfter = twipsValue(ppr.Spacing.AfterAttr)
	}
	return ps
}

// cellText joins a cell's paragraph texts with newlines, verbatim.
func cellText(c document.Cell) string {
	var parts []string
	for _, p := range c.Paragraphs() {
		parts = append(parts, paragraphText(p))
	}
	return strings.Join(parts, "\n")
}

// applyDocumentDefaults re-derives the model-level defaults from the first
// paragraph of the document.  Fields the paragraph does not set are left
// alone.
func applyDocumentDefaults(m *style.Model, first document.Paragraph) {
	if runs := first.Runs(); len(runs) > 0 {
		f := runFont(runs[0])
		if f.Name != nil {
			m.DefaultFont.Name = f.Name
		}
		if f.Size != nil {
			m.DefaultFont.Size = f.Size
		}
		if f.Color != nil {
			m.DefaultFont.Color = f.Color
		}
		if f.Bold != nil {
			m.DefaultFont.Bold = f.Bold
		}
		if f.Italic != nil {
			m.DefaultFont.Italic = f.Italic
		}
		if f.Underline != nil {
			m.DefaultFont.Underline = f.Underline
		}
	}

	ppr := first.X().PPr
	if ppr == nil {
		return
	}
	if ls := lineSpacingValue(ppr.Spacing); ls != nil {
		m.LineSpacing = ls
	}
	if a := alignmentValue(ppr.Jc); a != "" {
		m.Alignment = a
	}
	ind := indentationValue(ppr.Ind)
	if ind.Left != nil {
		m.Indentation.Left = ind.Left
	}
	if ind.Right != nil {
		m.Indentation.Right = ind.Right
	}
	if ind.FirstLine != nil {
		m.Indentation.FirstLine = ind.FirstLine
	}
	if ind.Hanging != nil {
		m.Indentation.Hanging = ind.Hanging
	}
}
