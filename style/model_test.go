package style

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMarshalOmitsUnsetFields(t *testing.T) {
	m := New()
	m.DefaultFont.Name = Ptr("Garamond")

	data, err := m.Marshal()
	require.NoError(t, err)

	s := string(data)
	require.Contains(t, s, `"name":"Garamond"`)
	// Unset tri-state fields must be absent, not zero-valued.
	require.NotContains(t, s, `"bold"`)
	require.NotContains(t, s, `"size"`)
	require.NotContains(t, s, `"color"`)
	require.NotContains(t, s, `"line_spacing"`)
}

func TestRoundTrip(t *testing.T) {
	m := New()
	m.DefaultFont = Font{
		Name:  Ptr("Times New Roman"),
		Size:  Ptr(HalfPoints(24)),
		Color: Ptr("1F2D3C"),
		Bold:  Ptr(false), // explicit off, distinct from unset
	}
	m.Margins = Margins{Top: Ptr(Twips(720)), Left: Ptr(Twips(1440))}
	m.LineSpacing = &LineSpacing{Multiplier: Ptr(1.5)}
	m.ParagraphStyles = []ParagraphStyle{
		{Font: Font{Italic: Ptr(true)}, Alignment: AlignJustify},
		{SpaceAfter: Ptr(Twips(200))},
		{Font: Font{Name: Ptr("Courier New")}},
	}
	m.Headers = []HeaderFooter{{Text: "Confidential", Style: ParagraphStyle{Alignment: AlignCenter}}}
	m.Tables = []Table{{Rows: [][]Cell{
		{{Text: "A1"}, {Text: "B1", Style: &ParagraphStyle{Font: Font{Bold: Ptr(true)}}}},
		{{Text: "A2"}, {Text: "B2"}},
	}}}

	data, err := m.Marshal()
	require.NoError(t, err)

	got, err := Unmarshal(data)
	require.NoError(t, err)
	require.Equal(t, m, got)
}

func TestRoundTripThroughMap(t *testing.T) {
	m := New()
	m.DefaultFont.Underline = Ptr(true)
	m.ParagraphStyles = []ParagraphStyle{
		{Alignment: AlignLeft},
		{Alignment: AlignRight},
		{Alignment: AlignCenter},
	}
	m.Sections = []Section{{PageBreakBefore: true}, {}}

	kv, err := m.Map()
	require.NoError(t, err)

	got, err := FromMap(kv)
	require.NoError(t, err)
	require.Equal(t, m, got)

	// Ordering survives the generic representation.
	require.Equal(t, AlignRight, got.ParagraphStyles[1].Alignment)
}

func TestUnmarshalDefaultsAlignment(t *testing.T) {
	got, err := Unmarshal([]byte(`{"default_font":{}}`))
	require.NoError(t, err)
	require.Equal(t, AlignLeft, got.Alignment)
}

func TestFontIsZero(t *testing.T) {
	require.True(t, Font{}.IsZero())
	require.False(t, Font{Bold: Ptr(false)}.IsZero())
}

func TestStringIncludesUnsetMarkers(t *testing.T) {
	f := Font{Name: Ptr("Calibri")}
	s := f.String()
	require.True(t, strings.Contains(s, "Calibri"))
	require.True(t, strings.Contains(s, "unset"))
}
