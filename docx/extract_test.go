package docx_test

import (
	"bytes"
	"testing"

	"github.com/TuckerHoneycutt/docstyle/docx"
	"github.com/TuckerHoneycutt/docstyle/style"
	"github.com/stretchr/testify/require"
	"github.com/unidoc/unioffice"
	"github.com/unidoc/unioffice/document"
	"github.com/unidoc/unioffice/schema/soo/ofc/sharedTypes"
	"github.com/unidoc/unioffice/schema/soo/wml"
)

// -----------------------------------------------------------------------------
// Fixture helpers
// -----------------------------------------------------------------------------

// saveBytes serializes a document to its on-disk byte form.
func saveBytes(t *testing.T, doc *document.Document) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, doc.Save(&buf))
	return buf.Bytes()
}

// extract runs the extractor over serialized document bytes.
func extract(t *testing.T, data []byte) *style.Model {
	t.Helper()
	m, err := docx.Extract(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	return m
}

func runRPr(r document.Run) *wml.CT_RPr {
	x := r.X()
	if x.RPr == nil {
		x.RPr = wml.NewCT_RPr()
	}
	return x.RPr
}

func paraPPr(p document.Paragraph) *wml.CT_PPr {
	x := p.X()
	if x.PPr == nil {
		x.PPr = wml.NewCT_PPr()
	}
	return x.PPr
}

// setRunFont writes character formatting directly into the run's rPr.
func setRunFont(r document.Run, name string, size uint64, color string, bold bool) {
	rpr := runRPr(r)
	rpr.RFonts = wml.NewCT_Fonts()
	rpr.RFonts.AsciiAttr = unioffice.String(name)
	rpr.Sz = wml.NewCT_HpsMeasure()
	rpr.Sz.ValAttr.ST_UnsignedDecimalNumber = unioffice.Uint64(size)
	rpr.Color = wml.NewCT_Color()
	rpr.Color.ValAttr.ST_HexColorRGB = unioffice.String(color)
	if bold {
		rpr.B = wml.NewCT_OnOff()
	}
}

func addParagraphWithText(doc *document.Document, text string) document.Paragraph {
	p := doc.AddParagraph()
	p.AddRun().AddText(text)
	return p
}

func setPageMargins(doc *document.Document, top, bottom int64, left, right uint64) {
	pm := wml.NewCT_PageMar()
	pm.TopAttr = wml.ST_SignedTwipsMeasure{Int64: unioffice.Int64(top)}
	pm.BottomAttr = wml.ST_SignedTwipsMeasure{Int64: unioffice.Int64(bottom)}
	pm.LeftAttr = sharedTypes.ST_TwipsMeasure{ST_UnsignedDecimalNumber: unioffice.Uint64(left)}
	pm.RightAttr = sharedTypes.ST_TwipsMeasure{ST_UnsignedDecimalNumber: unioffice.Uint64(right)}
	pm.HeaderAttr = sharedTypes.ST_TwipsMeasure{ST_UnsignedDecimalNumber: unioffice.Uint64(720)}
	pm.FooterAttr = sharedTypes.ST_TwipsMeasure{ST_UnsignedDecimalNumber: unioffice.Uint64(720)}
	pm.GutterAttr = sharedTypes.ST_TwipsMeasure{ST_UnsignedDecimalNumber: unioffice.Uint64(0)}
	doc.BodySection().X().PgMar = pm
}

// -----------------------------------------------------------------------------
// Tests
// -----------------------------------------------------------------------------

func TestExtractCorruptDocument(t *testing.T) {
	data := []byte("this is not a zip container")
	_, err := docx.Extract(bytes.NewReader(data), int64(len(data)))
	require.ErrorIs(t, err, docx.ErrCorruptDocument)
}

func TestExtractParagraphOrderPreserved(t *testing.T) {
	doc := document.New()
	names := []string{"Arial", "Georgia", "Courier New"}
	for i, name := range names {
		p := addParagraphWithText(doc, "paragraph")
		setRunFont(p.Runs()[0], name, uint64(20+2*i), "000000", false)
	}

	m := extract(t, saveBytes(t, doc))

	require.Len(t, m.ParagraphStyles, len(names))
	for i, name := range names {
		require.NotNil(t, m.ParagraphStyles[i].Font.Name)
		require.Equal(t, name, *m.ParagraphStyles[i].Font.Name)
		require.Equal(t, style.HalfPoints(20+2*i), *m.ParagraphStyles[i].Font.Size)
	}
}

func TestExtractHeadingRouting(t *testing.T) {
	doc := document.New()
	h := addParagraphWithText(doc, "Chapter One")
	h.SetStyle("Heading1")
	addParagraphWithText(doc, "Body text")

	m := extract(t, saveBytes(t, doc))

	require.Len(t, m.HeadingStyles, 1)
	require.Len(t, m.ParagraphStyles, 1)
}

func TestExtractSkipsEmptyParagraphs(t *testing.T) {
	doc := document.New()
	addParagraphWithText(doc, "first")
	addParagraphWithText(doc, "   \t ")
	doc.AddParagraph()
	addParagraphWithText(doc, "second")

	m := extract(t, saveBytes(t, doc))
	require.Len(t, m.ParagraphStyles, 2)
}

func TestExtractFirstRunOnly(t *testing.T) {
	doc := document.New()
	p := doc.AddParagraph()
	first := p.AddRun()
	first.AddText("lead ")
	setRunFont(first, "Garamond", 24, "112233", true)
	second := p.AddRun()
	second.AddText("tail")
	setRunFont(second, "Impact", 48, "FF0000", false)

	m := extract(t, saveBytes(t, doc))

	require.Len(t, m.ParagraphStyles, 1)
	require.Equal(t, "Garamond", *m.ParagraphStyles[0].Font.Name)
	require.Equal(t, style.HalfPoints(24), *m.ParagraphStyles[0].Font.Size)
}

func TestExtractUnsetFontStaysUnset(t *testing.T) {
	doc := document.New()
	addParagraphWithText(doc, "plain paragraph")

	m := extract(t, saveBytes(t, doc))

	require.Len(t, m.ParagraphStyles, 1)
	require.True(t, m.ParagraphStyles[0].Font.IsZero())
	require.True(t, m.DefaultFont.IsZero())
}

func TestExtractExplicitBoldOff(t *testing.T) {
	doc := document.New()
	p := addParagraphWithText(doc, "not bold, explicitly")
	rpr := runRPr(p.Runs()[0])
	rpr.B = wml.NewCT_OnOff()
	rpr.B.ValAttr = &sharedTypes.ST_OnOff{Bool: unioffice.Bool(false)}

	m := extract(t, saveBytes(t, doc))

	require.NotNil(t, m.ParagraphStyles[0].Font.Bold)
	require.False(t, *m.ParagraphStyles[0].Font.Bold)
}

func TestExtractHeadersAndFooters(t *testing.T) {
	doc := document.New()
	addParagraphWithText(doc, "body")

	hdr := doc.AddHeader()
	doc.BodySection().SetHeader(hdr, wml.ST_HdrFtrDefault)
	hp := hdr.AddParagraph()
	hp.AddRun().AddText("Confidential")
	paraPPr(hp).Jc = &wml.CT_Jc{ValAttr: wml.ST_JcCenter}

	ftr := doc.AddFooter()
	doc.BodySection().SetFooter(ftr, wml.ST_HdrFtrDefault)
	ftr.AddParagraph().AddRun().AddText("Page 1")

	m := extract(t, saveBytes(t, doc))

	require.Len(t, m.Headers, 1)
	require.Equal(t, "Confidential", m.Headers[0].Text)
	require.Equal(t, style.AlignCenter, m.Headers[0].Style.Alignment)
	require.Len(t, m.Footers, 1)
	require.Equal(t, "Page 1", m.Footers[0].Text)
}

func TestExtractSectionMargins(t *testing.T) {
	doc := document.New()
	addParagraphWithText(doc, "body")
	setPageMargins(doc, 720, 1080, 1440, 1800)

	m := extract(t, saveBytes(t, doc))

	require.Len(t, m.Sections, 1)
	require.Equal(t, style.Twips(720), *m.Margins.Top)
	require.Equal(t, style.Twips(1080), *m.Margins.Bottom)
	require.Equal(t, style.Twips(1440), *m.Margins.Left)
	require.Equal(t, style.Twips(1800), *m.Margins.Right)
}

func TestExtractTables(t *testing.T) {
	doc := document.New()
	tbl := doc.AddTable()
	row := tbl.AddRow()
	c1 := row.AddCell()
	p1 := c1.AddParagraph()
	r1 := p1.AddRun()
	r1.AddText("  A1  ") // verbatim, no trimming
	setRunFont(r1, "Consolas", 18, "00FF00", false)
	c2 := row.AddCell()
	c2.AddParagraph().AddRun().AddText("B1")

	m := extract(t, saveBytes(t, doc))

	require.Len(t, m.Tables, 1)
	require.Len(t, m.Tables[0].Rows, 1)
	require.Len(t, m.Tables[0].Rows[0], 2)
	require.Equal(t, "  A1  ", m.Tables[0].Rows[0][0].Text)
	require.NotNil(t, m.Tables[0].Rows[0][0].Style)
	require.Equal(t, "Consolas", *m.Tables[0].Rows[0][0].Style.Font.Name)
}

func TestExtractDocumentDefaultsFromFirstParagraph(t *testing.T) {
	doc := document.New()
	p := addParagraphWithText(doc, "opening paragraph")
	setRunFont(p.Runs()[0], "Book Antiqua", 26, "223344", true)
	ppr := paraPPr(p)
	ppr.Jc = &wml.CT_Jc{ValAttr: wml.ST_JcBoth}
	ppr.Spacing = wml.NewCT_Spacing()
	ppr.Spacing.LineAttr = &wml.ST_SignedTwipsMeasure{Int64: unioffice.Int64(360)}
	ppr.Spacing.LineRuleAttr = wml.ST_LineSpacingRuleAuto
	ppr.Ind = wml.NewCT_Ind()
	ppr.Ind.LeftAttr = &wml.ST_SignedTwipsMeasure{Int64: unioffice.Int64(567)}

	// A later paragraph with different styling must not disturb the
	// first-paragraph defaults.
	p2 := addParagraphWithText(doc, "second paragraph")
	setRunFont(p2.Runs()[0], "Webdings", 96, "FF00FF", false)

	m := extract(t, saveBytes(t, doc))

	require.Equal(t, "Book Antiqua", *m.DefaultFont.Name)
	require.Equal(t, style.HalfPoints(26), *m.DefaultFont.Size)
	require.Equal(t, "223344", *m.DefaultFont.Color)
	require.True(t, *m.DefaultFont.Bold)
	require.Equal(t, style.AlignJustify, m.Alignment)
	require.NotNil(t, m.LineSpacing)
	require.InDelta(t, 1.5, *m.LineSpacing.Multiplier, 0.001)
	require.Equal(t, style.Twips(567), *m.Indentation.Left)
}
