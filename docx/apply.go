package docx

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/TuckerHoneycutt/docstyle/style"
	"github.com/unidoc/unioffice/document"
	"github.com/unidoc/unioffice/schema/soo/wml"
)

// Word's untouched page geometry, used only to complete the required pgMar
// attributes when the model overrides a subset of them.
const (
	defaultMarginTwips       = 1440
	defaultHeaderFooterTwips = 720
)

// Message is one content item: a role label plus literal text.  The text is
// always inserted as styled literal content, never reinterpreted as markup.
type Message struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// Applier builds a new document that replicates a captured style model around
// caller-supplied content.  The operations are designed to be called in the
// order defaults, headers, content, tables, footers, each at most once,
// followed by Serialize.  Each Applier owns its output document exclusively.
type Applier struct {
	model *style.Model
	doc   *document.Document
}

// NewApplier creates an applier over a blank output document.
func NewApplier(m *style.Model) *Applier {
	return &Applier{model: m, doc: document.New()}
}

// Document exposes the output document under construction.
func (a *Applier) Document() *document.Document {
	return a.doc
}

// ApplyDocumentDefaults copies each explicitly-set margin from the model onto
// the output's first section.  Unset margins keep the output's built-in
// defaults.
func (a *Applier) ApplyDocumentDefaults() {
	m := a.model.Margins
	if m.IsZero() {
		return
	}
	sp := a.doc.BodySection().X()
	if sp.PgMar == nil {
		pm := wml.NewCT_PageMar()
		pm.TopAttr = *signedTwips(defaultMarginTwips)
		pm.BottomAttr = *signedTwips(defaultMarginTwips)
		pm.LeftAttr = *unsignedTwips(defaultMarginTwips)
		pm.RightAttr = *unsignedTwips(defaultMarginTwips)
		pm.HeaderAttr = *unsignedTwips(defaultHeaderFooterTwips)
		pm.FooterAttr = *unsignedTwips(defaultHeaderFooterTwips)
		pm.GutterAttr = *unsignedTwips(0)
		sp.PgMar = pm
	}
	if m.Top != nil {
		sp.PgMar.TopAttr = *signedTwips(*m.Top)
	}
	if m.Bottom != nil {
		sp.PgMar.BottomAttr = *signedTwips(*m.Bottom)
	}
	if m.Left != nil {
		sp.PgMar.LeftAttr = *unsignedTwips(*m.Left)
	}
	if m.Right != nil {
		sp.PgMar.RightAttr = *unsignedTwips(*m.Right)
	}
}

// AddHeaders writes every captured header entry into the first section's
// default header, reusing an empty paragraph slot when one exists.
func (a *Applier) AddHeaders() error {
	if len(a.model.Headers) == 0 {
		return nil
	}
	hdr := a.doc.AddHeader()
	a.doc.BodySection().SetHeader(hdr, wml.ST_HdrFtrDefault)
	for _, entry := range a.model.Headers {
		var p document.Paragraph
		if slot, ok := emptyParagraph(hdr.Paragraphs()); ok {
			p = slot
		} else {
			p = hdr.AddParagraph()
		}
		writeLiteralText(p.AddRun(), entry.Text)
		if err := ApplyParagraphStyle(p, entry.Style); err != nil {
			return fmt.Errorf("header %q: %w", entry.Text, err)
		}
	}
	return nil
}

// AddFooters mirrors AddHeaders for the footer region.
func (a *Applier) AddFooters() error {
	if len(a.model.Footers) == 0 {
		return nil
	}
	ftr := a.doc.AddFooter()
	a.doc.BodySection().SetFooter(ftr, wml.ST_HdrFtrDefault)
	for _, entry := range a.model.Footers {
		var p document.Paragraph
		if slot, ok := emptyParagraph(ftr.Paragraphs()); ok {
			p = slot
		} else {
			p = ftr.AddParagraph()
		}
		writeLiteralText(p.AddRun(), entry.Text)
		if err := ApplyParagraphStyle(p, entry.Style); err != nil {
			return fmt.Errorf("footer %q: %w", entry.Text, err)
		}
	}
	return nil
}

// AddContent emits the conversation transcript: per item a bold role label in
// the default font, then the text styled with the first captured paragraph
// style (falling back to the default font), with one blank separator
// paragraph between consecutive items and none after the last.
func (a *Applier) AddContent(msgs []Message) error {
	if len(msgs) == 0 {
		return ErrEmptyContent
	}

	var bodyStyle *style.ParagraphStyle
	if len(a.model.ParagraphStyles) > 0 {
		bodyStyle = &a.model.ParagraphStyles[0]
	}

	for i, msg := range msgs {
		role := msg.Role
		if role == "" {
			role = "user"
		}

		labelRun := a.doc.AddParagraph().AddRun()
		labelRun.AddText(capitalize(role) + ": ")
		if err := applyFontToRun(labelRun, a.model.DefaultFont); err != nil {
			return fmt.Errorf("content item %d label: %w", i, err)
		}
		ensureRPr(labelRun).B = newOnOff(true)

		p := a.doc.AddParagraph()
		r := p.AddRun()
		writeLiteralText(r, msg.Text)
		if bodyStyle != nil {
			if err := ApplyParagraphStyle(p, *bodyStyle); err != nil {
				return fmt.Errorf("content item %d: %w", i, err)
			}
		} else if err := applyFontToRun(r, a.model.DefaultFont); err != nil {
			return fmt.Errorf("content item %d: %w", i, err)
		}

		if i < len(msgs)-1 {
			a.doc.AddParagraph()
		}
	}
	return nil
}

// AddTables recreates every captured table.  The column count comes from the
// first captured row; a table with no rows or no columns is skipped entirely.
// Each table is followed by one blank paragraph for visual separation.
func (a *Applier) AddTables() error {
	for ti, t := range a.model.Tables {
		if len(t.Rows) == 0 || len(t.Rows[0]) == 0 {
			continue
		}
		cols := len(t.Rows[0])
		tbl := a.doc.AddTable()
		for _, row := range t.Rows {
			r := tbl.AddRow()
			for j := 0; j < cols; j++ {
				cell := r.AddCell()
				p := cell.AddParagraph()
				if j >= len(row) {
					continue
				}
				writeLiteralText(p.AddRun(), row[j].Text)
				if row[j].Style != nil {
					if err := ApplyParagraphStyle(p, *row[j].Style); err != nil {
						return fmt.Errorf("table %d cell: %w", ti, err)
					}
				}
			}
		}
		a.doc.AddParagraph()
	}
	return nil
}

// Serialize produces the complete output document bytes.
func (a *Applier) Serialize() ([]byte, error) {
	var buf bytes.Buffer
	if err := a.doc.Save(&buf); err != nil {
		return nil, fmt.Errorf("serialize document: %w", err)
	}
	return buf.Bytes(), nil
}

// -----------------------------------------------------------------------------
// Style application
// -----------------------------------------------------------------------------

// ApplyParagraphStyle sets the captured paragraph attributes on the target,
// touching only fields that carry an explicit value, then applies the style's
// font to every run already present in the paragraph.
func ApplyParagraphStyle(p document.Paragraph, ps style.ParagraphStyle) error {
	if jc, ok := jcValue(ps.Alignment); ok {
		ppr := ensurePPr(p)
		if ppr.Jc == nil {
			ppr.Jc = wml.NewCT_Jc()
		}
		ppr.Jc.ValAttr = jc
	}

	if ls := ps.LineSpacing; ls != nil {
		sp := ensureSpacing(ensurePPr(p))
		switch {
		case ls.Multiplier != nil:
			sp.LineAttr = signedTwips(style.Twips(*ls.Multiplier * 240.0))
			sp.LineRuleAttr = wml.ST_LineSpacingRuleAuto
		case ls.Exact != nil:
			sp.LineAttr = signedTwips(*ls.Exact)
			sp.LineRuleAttr = wml.ST_LineSpacingRuleExact
		}
	}

	if ind := ps.Indentation; !ind.IsZero() {
		ctInd := ensureInd(ensurePPr(p))
		if ind.Left != nil {
			ctInd.LeftAttr = signedTwips(*ind.Left)
		}
		if ind.Right != nil {
			ctInd.RightAttr = signedTwips(*ind.Right)
		}
		if ind.FirstLine != nil {
			ctInd.FirstLineAttr = unsignedTwips(*ind.FirstLine)
		}
		if ind.Hanging != nil {
			ctInd.HangingAttr = unsignedTwips(*ind.Hanging)
		}
	}

	if ps.SpaceBefore != nil {
		ensureSpacing(ensurePPr(p)).BeforeAttr = unsignedTwips(*ps.SpaceBefore)
	}
	if ps.SpaceAfter != nil {
		ensureSpacing(ensurePPr(p)).AfterAttr = unsignedTwips(*ps.SpaceAfter)
	}

	for _, r := range p.Runs() {
		if err := applyFontToRun(r, ps.Font); err != nil {
			return err
		}
	}
	return nil
}

// applyFontToRun sets each explicitly-set font field on the run.  Unset
// fields leave whatever formatting the run already carries.
func applyFontToRun(r document.Run, f style.Font) error {
	if f.IsZero() {
		return nil
	}
	rpr := ensureRPr(r)

	if f.Name != nil {
		if rpr.RFonts == nil {
			rpr.RFonts = wml.NewCT_Fonts()
		}
		rpr.RFonts.AsciiAttr = style.Ptr(*f.Name)
		rpr.RFonts.HAnsiAttr = style.Ptr(*f.Name)
	}
	if f.Size != nil {
		if *f.Size < 1 {
			return fmt.Errorf("%w: font size %d half-points", ErrInvalidStyleValue, *f.Size)
		}
		sz := wml.NewCT_HpsMeasure()
		sz.ValAttr.ST_UnsignedDecimalNumber = style.Ptr(uint64(*f.Size))
		rpr.Sz = sz
		szCs := wml.NewCT_HpsMeasure()
		szCs.ValAttr.ST_UnsignedDecimalNumber = style.Ptr(uint64(*f.Size))
		rpr.SzCs = szCs
	}
	if f.Color != nil {
		if !hexColorRe.MatchString(*f.Color) {
			return fmt.Errorf("%w: color %q", ErrInvalidStyleValue, *f.Color)
		}
		c := wml.NewCT_Color()
		c.ValAttr.ST_HexColorRGB = style.Ptr(strings.ToUpper(*f.Color))
		rpr.Color = c
	}
	if f.Bold != nil {
		rpr.B = newOnOff(*f.Bold)
	}
	if f.Italic != nil {
		rpr.I = newOnOff(*f.Italic)
	}
	if f.Underline != nil {
		u := wml.NewCT_Underline()
		if *f.Underline {
			u.ValAttr = wml.ST_UnderlineSingle
		} else {
			u.ValAttr = wml.ST_UnderlineNone
		}
		rpr.U = u
	}
	return nil
}

// emptyParagraph returns the first paragraph with no text, if any.
func emptyParagraph(paras []document.Paragraph) (document.Paragraph, bool) {
	for _, p := range paras {
		if paragraphText(p) == "" {
			return p, true
		}
	}
	return document.Paragraph{}, false
}

// writeLiteralText inserts text into a run verbatim, converting newlines to
// run-level line breaks so they render instead of being swallowed.
func writeLiteralText(r document.Run, text string) {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	for i, line := range strings.Split(text, "\n") {
		if i > 0 {
			r.AddBreak()
		}
		if line != "" {
			r.AddText(line)
		}
	}
}
