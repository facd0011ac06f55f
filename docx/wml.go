package docx

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/TuckerHoneycutt/docstyle/style"
	"github.com/unidoc/unioffice"
	"github.com/unidoc/unioffice/document"
	"github.com/unidoc/unioffice/schema/soo/ofc/sharedTypes"
	"github.com/unidoc/unioffice/schema/soo/wml"
)

// Helpers for reading and writing the raw wml CT tree.
//
// The read side is strictly nil-checked and never allocates nodes into the
// source tree: the high-level Properties() accessors create missing property
// containers as a side effect, which would mutate a document we promised to
// leave untouched.  The write side goes through the same CT types so that an
// unset model field produces no XML at all instead of a zero-valued override.

var hexColorRe = regexp.MustCompile(`^[0-9A-Fa-f]{6}$`)

// -----------------------------------------------------------------------------
// Reading
// -----------------------------------------------------------------------------

// paragraphText concatenates the text of every run in the paragraph.
func paragraphText(p document.Paragraph) string {
	var sb strings.Builder
	for _, r := range p.Runs() {
		sb.WriteString(r.Text())
	}
	return sb.String()
}

// onOffValue interprets a CT_OnOff toggle.  Nil means the property is absent;
// a present element with no value attribute means "on".
func onOffValue(v *wml.CT_OnOff) *bool {
	if v == nil {
		return nil
	}
	if v.ValAttr == nil {
		return style.Ptr(true)
	}
	if v.ValAttr.Bool != nil {
		return style.Ptr(*v.ValAttr.Bool)
	}
	switch v.ValAttr.ST_OnOff1 {
	case sharedTypes.ST_OnOff1On:
		return style.Ptr(true)
	case sharedTypes.ST_OnOff1Off:
		return style.Ptr(false)
	}
	return style.Ptr(true)
}

// twipsValue reads an unsigned twips measure.  Universal measures with unit
// suffixes are rare in practice and are treated as unset.
func twipsValue(v *sharedTypes.ST_TwipsMeasure) *style.Twips {
	if v == nil || v.ST_UnsignedDecimalNumber == nil {
		return nil
	}
	return style.Ptr(style.Twips(*v.ST_UnsignedDecimalNumber))
}

// signedTwipsValue reads a signed twips measure.
func signedTwipsValue(v *wml.ST_SignedTwipsMeasure) *style.Twips {
	if v == nil || v.Int64 == nil {
		return nil
	}
	return style.Ptr(style.Twips(*v.Int64))
}

// pageMarTop and friends read the required page-margin attributes, which are
// value-typed unions on CT_PageMar.
func pageMarSigned(v wml.ST_SignedTwipsMeasure) *style.Twips {
	return signedTwipsValue(&v)
}

func pageMarUnsigned(v sharedTypes.ST_TwipsMeasure) *style.Twips {
	return twipsValue(&v)
}

// runFont reads the character formatting of a run without touching the tree.
func runFont(r document.Run) style.Font {
	var f style.Font
	rpr := r.X().RPr
	if rpr == nil {
		return f
	}
	if rpr.RFonts != nil && rpr.RFonts.AsciiAttr != nil {
		f.Name = style.Ptr(*rpr.RFonts.AsciiAttr)
	}
	if rpr.Sz != nil && rpr.Sz.ValAttr.ST_UnsignedDecimalNumber != nil {
		f.Size = style.Ptr(style.HalfPoints(*rpr.Sz.ValAttr.ST_UnsignedDecimalNumber))
	}
	if rpr.Color != nil && rpr.Color.ValAttr.ST_HexColorRGB != nil {
		f.Color = style.Ptr(strings.ToUpper(*rpr.Color.ValAttr.ST_HexColorRGB))
	}
	f.Bold = onOffValue(rpr.B)
	f.Italic = onOffValue(rpr.I)
	if rpr.U != nil {
		f.Underline = style.Ptr(rpr.U.ValAttr != wml.ST_UnderlineNone)
	}
	return f
}

// alignmentValue maps a justification element to the model enum.
func alignmentValue(jc *wml.CT_Jc) style.Alignment {
	if jc == nil {
		return ""
	}
	switch jc.ValAttr {
	case wml.ST_JcLeft:
		return style.AlignLeft
	case wml.ST_JcCenter:
		return style.AlignCenter
	case wml.ST_JcRight:
		return style.AlignRight
	case wml.ST_JcBoth:
		return style.AlignJustify
	}
	return ""
}

// lineSpacingValue reads w:spacing/@w:line.  Rule "auto" encodes a multiple
// of single spacing in 240ths; exact and atLeast carry a fixed height.
func lineSpacingValue(sp *wml.CT_Spacing) *style.LineSpacing {
	if sp == nil || sp.LineAttr == nil || sp.LineAttr.Int64 == nil {
		return nil
	}
	line := *sp.LineAttr.Int64
	if sp.LineRuleAttr == wml.ST_LineSpacingRuleAuto || sp.LineRuleAttr == wml.ST_LineSpacingRuleUnset {
		return &style.LineSpacing{Multiplier: style.Ptr(float64(line) / 240.0)}
	}
	return &style.LineSpacing{Exact: style.Ptr(style.Twips(line))}
}

// indentationValue reads w:ind.
func indentationValue(ind *wml.CT_Ind) style.Indentation {
	var out style.Indentation
	if ind == nil {
		return out
	}
	out.Left = signedTwipsValue(ind.LeftAttr)
	out.Right = signedTwipsValue(ind.RightAttr)
	out.FirstLine = twipsValue(ind.FirstLineAttr)
	out.Hanging = twipsValue(ind.HangingAttr)
	return out
}

// -----------------------------------------------------------------------------
// Writing
// -----------------------------------------------------------------------------

func ensurePPr(p document.Paragraph) *wml.CT_PPr {
	x := p.X()
	if x.PPr == nil {
		x.PPr = wml.NewCT_PPr()
	}
	return x.PPr
}

func ensureRPr(r document.Run) *wml.CT_RPr {
	x := r.X()
	if x.RPr == nil {
		x.RPr = wml.NewCT_RPr()
	}
	return x.RPr
}

func ensureSpacing(ppr *wml.CT_PPr) *wml.CT_Spacing {
	if ppr.Spacing == nil {
		ppr.Spacing = wml.NewCT_Spacing()
	}
	return ppr.Spacing
}

func ensureInd(ppr *wml.CT_PPr) *wml.CT_Ind {
	if ppr.Ind == nil {
		ppr.Ind = wml.NewCT_Ind()
	}
	return ppr.Ind
}

func newOnOff(on bool) *wml.CT_OnOff {
	v := wml.NewCT_OnOff()
	if !on {
		v.ValAttr = &sharedTypes.ST_OnOff{Bool: unioffice.Bool(false)}
	}
	return v
}

func unsignedTwips(t style.Twips) *sharedTypes.ST_TwipsMeasure {
	return &sharedTypes.ST_TwipsMeasure{ST_UnsignedDecimalNumber: unioffice.Uint64(uint64(t))}
}

func signedTwips(t style.Twips) *wml.ST_SignedTwipsMeasure {
	return &wml.ST_SignedTwipsMeasure{Int64: unioffice.Int64(int64(t))}
}

func jcValue(a style.Alignment) (wml.ST_Jc, bool) {
	switch a {
	case style.AlignLeft:
		return wml.ST_JcLeft, true
	case style.AlignCenter:
		return wml.ST_JcCenter, true
	case style.AlignRight:
		return wml.ST_JcRight, true
	case style.AlignJustify:
		return wml.ST_JcBoth, true
	}
	return 0, false
}

// capitalize upper-cases the first rune and lower-cases the rest, the way the
// role labels are rendered ("user" -> "User").
func capitalize(s string) string {
	if s == "" {
		return s
	}
	r, n := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + strings.ToLower(s[n:])
}
