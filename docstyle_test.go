package docstyle_test

import (
	"bytes"
	"testing"

	"github.com/TuckerHoneycutt/docstyle"
	"github.com/TuckerHoneycutt/docstyle/docx"
	"github.com/stretchr/testify/require"
	"github.com/unidoc/unioffice"
	"github.com/unidoc/unioffice/document"
	"github.com/unidoc/unioffice/schema/soo/wml"
)

func referenceDocx(t *testing.T) []byte {
	t.Helper()
	doc := document.New()
	p := doc.AddParagraph()
	r := p.AddRun()
	r.AddText("reference paragraph")
	rpr := wml.NewCT_RPr()
	rpr.RFonts = wml.NewCT_Fonts()
	rpr.RFonts.AsciiAttr = unioffice.String("Garamond")
	rpr.Sz = wml.NewCT_HpsMeasure()
	rpr.Sz.ValAttr.ST_UnsignedDecimalNumber = unioffice.Uint64(24)
	r.X().RPr = rpr

	var buf bytes.Buffer
	require.NoError(t, doc.Save(&buf))
	return buf.Bytes()
}

func TestDetect(t *testing.T) {
	tests := []struct {
		path   string
		format docstyle.Format
	}{
		{"report.docx", docstyle.FormatDocx},
		{"REPORT.DOCX", docstyle.FormatDocx},
		{"paper.pdf", docstyle.FormatPDF},
	}
	for _, tt := range tests {
		f, err := docstyle.Detect(tt.path)
		require.NoError(t, err, tt.path)
		require.Equal(t, tt.format, f)
	}

	_, err := docstyle.Detect("notes.txt")
	require.ErrorIs(t, err, docstyle.ErrUnsupportedFormat)
}

func TestProcessEndToEnd(t *testing.T) {
	pipe := docstyle.New(docstyle.Config{})
	msgs := []docstyle.Message{
		{Role: "user", Text: "What is the plan?"},
		{Role: "assistant", Text: "Ship it."},
	}

	res, err := pipe.Process(referenceDocx(t), docstyle.FormatDocx, msgs)
	require.NoError(t, err)
	require.Equal(t, docstyle.OutputFilename, res.Filename)
	require.Equal(t, docstyle.OutputMIMEType, res.MIMEType)

	m, err := docx.Extract(bytes.NewReader(res.Bytes), int64(len(res.Bytes)))
	require.NoError(t, err)
	// Two items: label + text each, one separator between them.
	require.Len(t, m.ParagraphStyles, 4)
	require.Equal(t, "Garamond", *m.ParagraphStyles[1].Font.Name)
}

func TestProcessUnsupportedFormat(t *testing.T) {
	pipe := docstyle.New(docstyle.Config{})
	_, err := pipe.Process(referenceDocx(t), docstyle.Format("odt"), nil)
	require.ErrorIs(t, err, docstyle.ErrUnsupportedFormat)
}

func TestProcessEmptyTranscript(t *testing.T) {
	pipe := docstyle.New(docstyle.Config{})
	_, err := pipe.Process(referenceDocx(t), docstyle.FormatDocx, nil)
	require.ErrorIs(t, err, docx.ErrEmptyContent)
}

func TestProcessRejectsOversizedSource(t *testing.T) {
	pipe := docstyle.New(docstyle.Config{MaxFileSize: 16})
	_, err := pipe.Process(referenceDocx(t), docstyle.FormatDocx, nil)
	require.Error(t, err)
}

func TestExtractStyleCorruptSource(t *testing.T) {
	pipe := docstyle.New(docstyle.Config{})
	_, err := pipe.ExtractStyle([]byte("garbage"), docstyle.FormatDocx)
	require.ErrorIs(t, err, docx.ErrCorruptDocument)
}
