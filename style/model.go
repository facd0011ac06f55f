// Package style defines the captured-style data model shared by the
// extractor and the applier.
//
// A Model is the structured record of everything we capture from a reference
// document: the default font, per-paragraph styles in document order, header
// and footer entries, table contents, section geometry and the document-level
// spacing/indentation defaults.  It is produced once per extraction run,
// treated as immutable afterwards, and round-trips through a plain key-value
// representation for transport across the host boundary.
//
// Every optional field is a pointer.  A nil field means "no explicit override
// was present in the source" and must stay nil all the way through
// application, where the output document keeps its own built-in default.  This is
// deliberately stricter than the usual zero-value conventions: for boolean
// style flags, false ("explicitly off") and nil ("inherit") are different
// instructions.
//
// All colours are expressed as 6-character RGB hex strings without the
// leading "#" (e.g. "FF0000" for red).  All lengths are twips (twentieths of
// a point); font sizes are half-points.
package style

import "fmt"

// Twips is a length in twentieths of a point, the native DOCX unit.
type Twips int

// HalfPoints is a font size unit (22 half-points == 11pt).
type HalfPoints int

// Alignment is a paragraph justification value.
type Alignment string

const (
	AlignLeft    Alignment = "left"
	AlignCenter  Alignment = "center"
	AlignRight   Alignment = "right"
	AlignJustify Alignment = "justify"
)

// -----------------------------------------------------------------------------
// Run-level information
// -----------------------------------------------------------------------------

// Font captures character formatting.  A nil field is an absent override.
type Font struct {
	Name      *string     `json:"name,omitempty"`       // e.g. "Calibri"
	Size      *HalfPoints `json:"size,omitempty"`       // half-points
	Color     *string     `json:"color,omitempty"`      // "RRGGBB"
	Bold      *bool       `json:"bold,omitempty"`
	Italic    *bool       `json:"italic,omitempty"`
	Underline *bool       `json:"underline,omitempty"`
}

// IsZero reports whether no font field carries an override.
func (f Font) IsZero() bool {
	return f.Name == nil && f.Size == nil && f.Color == nil &&
		f.Bold == nil && f.Italic == nil && f.Underline == nil
}

func (f Font) String() string {
	return fmt.Sprintf("Name: %s, Size: %s, Color: %s, Bold: %s, Italic: %s, Underline: %s",
		strOrUnset(f.Name), halfPointsOrUnset(f.Size), strOrUnset(f.Color),
		boolOrUnset(f.Bold), boolOrUnset(f.Italic), boolOrUnset(f.Underline))
}

// -----------------------------------------------------------------------------
// Paragraph-level information
// -----------------------------------------------------------------------------

// Indentation captures paragraph indentation in twips.
type Indentation struct {
	Left      *Twips `json:"left,omitempty"`
	Right     *Twips `json:"right,omitempty"`
	FirstLine *Twips `json:"first_line,omitempty"`
	Hanging   *Twips `json:"hanging,omitempty"`
}

// IsZero reports whether no indentation field carries an override.
func (i Indentation) IsZero() bool {
	return i.Left == nil && i.Right == nil && i.FirstLine == nil && i.Hanging == nil
}

// LineSpacing is either a multiple of single spacing or an exact height.
// Exactly one of the two fields is set.
type LineSpacing struct {
	Multiplier *float64 `json:"multiplier,omitempty"` // 1.0 == single spacing
	Exact      *Twips   `json:"exact,omitempty"`      // fixed line height
}

// ParagraphStyle captures the formatting of one paragraph.  Font reflects
// only the paragraph's first run; later runs in the same paragraph are never
// inspected during extraction.  That is an accepted approximation of the
// source behaviour, not something the applier compensates for.
type ParagraphStyle struct {
	Font        Font         `json:"font"`
	Alignment   Alignment    `json:"alignment,omitempty"` // "" means unset
	LineSpacing *LineSpacing `json:"line_spacing,omitempty"`
	Indentation Indentation  `json:"indentation"`
	SpaceBefore *Twips       `json:"space_before,omitempty"`
	SpaceAfter  *Twips       `json:"space_after,omitempty"`
}

func (s ParagraphStyle) String() string {
	return fmt.Sprintf("Font: [%s], Alignment: %q, SpaceBefore: %s, SpaceAfter: %s",
		s.Font.String(), string(s.Alignment), twipsOrUnset(s.SpaceBefore), twipsOrUnset(s.SpaceAfter))
}

// -----------------------------------------------------------------------------
// Section, header/footer and table information
// -----------------------------------------------------------------------------

// Margins are page margins in twips.  Nil fields leave the output document's
// built-in page margins untouched.
type Margins struct {
	Top    *Twips `json:"top,omitempty"`
	Bottom *Twips `json:"bottom,omitempty"`
	Left   *Twips `json:"left,omitempty"`
	Right  *Twips `json:"right,omitempty"`
}

// IsZero reports whether no margin carries an override.
func (m Margins) IsZero() bool {
	return m.Top == nil && m.Bottom == nil && m.Left == nil && m.Right == nil
}

// Section captures the geometry of one document section.
type Section struct {
	Margins         Margins `json:"margins"`
	PageBreakBefore bool    `json:"page_break_before"`
}

// HeaderFooter is one non-empty header or footer paragraph with its style.
type HeaderFooter struct {
	Text  string         `json:"text"`
	Style ParagraphStyle `json:"style"`
}

// Cell is one table cell: text captured verbatim (no trimming) plus the
// style of the cell's first paragraph, if the cell had one.
type Cell struct {
	Text  string          `json:"text"`
	Style *ParagraphStyle `json:"style,omitempty"`
}

// Table is a captured table, rows in source order.
type Table struct {
	Rows [][]Cell `json:"rows"`
}

// -----------------------------------------------------------------------------
// Top-level model
// -----------------------------------------------------------------------------

// Model is the root aggregate, one instance per extraction run.
//
// HeadingStyles and ParagraphStyles are collected in source document order and
// are not deduplicated: each non-empty body paragraph contributes one entry.
// Margins mirror the first section's margins, and DefaultFont, LineSpacing,
// Alignment and Indentation are derived from the document's first paragraph
// (only the fields that paragraph explicitly sets).
type Model struct {
	DefaultFont     Font             `json:"default_font"`
	HeadingStyles   []ParagraphStyle `json:"heading_styles,omitempty"`
	ParagraphStyles []ParagraphStyle `json:"paragraph_styles,omitempty"`
	Headers         []HeaderFooter   `json:"headers,omitempty"`
	Footers         []HeaderFooter   `json:"footers,omitempty"`
	Tables          []Table          `json:"tables,omitempty"`
	Sections        []Section        `json:"sections,omitempty"`
	Margins         Margins          `json:"margins"`
	Indentation     Indentation      `json:"indentation"`
	LineSpacing     *LineSpacing     `json:"line_spacing,omitempty"`
	Alignment       Alignment        `json:"alignment"`
}

// New returns an empty model with the documented alignment default.
func New() *Model {
	return &Model{Alignment: AlignLeft}
}

func (m *Model) String() string {
	return fmt.Sprintf("HeadingStyles: %d, ParagraphStyles: %d, Headers: %d, Footers: %d, Tables: %d, Sections: %d, DefaultFont: [%s]",
		len(m.HeadingStyles), len(m.ParagraphStyles), len(m.Headers), len(m.Footers), len(m.Tables), len(m.Sections), m.DefaultFont.String())
}

// -----------------------------------------------------------------------------
// Pointer helpers
// -----------------------------------------------------------------------------

// Ptr returns a pointer to v.  Convenient for building models by hand.
func Ptr[T any](v T) *T { return &v }

func strOrUnset(s *string) string {
	if s == nil {
		return "unset"
	}
	return *s
}

func boolOrUnset(b *bool) string {
	if b == nil {
		return "unset"
	}
	return fmt.Sprintf("%t", *b)
}

func twipsOrUnset(t *Twips) string {
	if t == nil {
		return "unset"
	}
	return fmt.Sprintf("%d", int(*t))
}

func halfPointsOrUnset(h *HalfPoints) string {
	if h == nil {
		return "unset"
	}
	return fmt.Sprintf("%d", int(*h))
}
