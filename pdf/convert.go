// Package pdf normalizes a PDF into the DOCX structural format so that the
// regular style extraction pipeline can run unchanged.
//
// The conversion is deliberately lossy: pdfcpu decodes the page content
// streams, the text show operators are folded into paragraphs, and a minimal
// intermediate document is synthesized with one paragraph per extracted text
// block and a page break between source pages.  Fidelity beyond this pass is
// out of scope.
package pdf

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/unidoc/unioffice/document"
	"github.com/unidoc/unioffice/schema/soo/wml"
)

var (
	// ErrConversionFailed reports a PDF that could not be normalized into a
	// usable intermediate document.
	ErrConversionFailed = errors.New("pdf: conversion failed")

	// ErrIOFailure reports a temporary-storage read/write failure while
	// staging the intermediate document.
	ErrIOFailure = errors.New("pdf: temporary storage failure")
)

// Config configures a Converter.
type Config struct {
	// TempDir is where the intermediate document is staged (default:
	// the system temp directory).  Nothing in it survives a Convert call.
	TempDir string `json:"temp_dir" yaml:"temp_dir"`

	// Logger for debug messages.
	Logger *slog.Logger `json:"-" yaml:"-"`
}

func (c *Config) defaults() {
	if c.TempDir == "" {
		c.TempDir = os.TempDir()
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// Converter turns PDF bytes into DOCX bytes.
type Converter struct {
	cfg Config
}

// NewConverter creates a Converter with the given configuration.
func NewConverter(cfg Config) *Converter {
	cfg.defaults()
	return &Converter{cfg: cfg}
}

// Convert normalizes a PDF into an intermediate DOCX and returns its bytes.
// The intermediate artifact is staged in TempDir and removed on every exit
// path, including failures.
func (c *Converter) Convert(src []byte) ([]byte, error) {
	pages, err := extractPages(src)
	if err != nil {
		return nil, err
	}
	if len(pages) == 0 {
		return nil, fmt.Errorf("%w: no text content found", ErrConversionFailed)
	}

	doc := synthesizeDocument(pages)

	// Stage through a temporary file, mirroring how external converters
	// hand over their result, then read it back.
	tmp, err := os.CreateTemp(c.cfg.TempDir, "docstyle-*.docx")
	if err != nil {
		return nil, fmt.Errorf("%w: stage intermediate: %v", ErrIOFailure, err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if err := doc.Save(tmp); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("%w: write intermediate: %v", ErrIOFailure, err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("%w: close intermediate: %v", ErrIOFailure, err)
	}

	data, err := os.ReadFile(tmpPath)
	if err != nil {
		return nil, fmt.Errorf("%w: read intermediate: %v", ErrIOFailure, err)
	}

	c.cfg.Logger.Debug("normalized pdf", "pages", len(pages), "bytes", len(data))
	return data, nil
}

// extractPages returns the text paragraphs of each non-empty page.
func extractPages(src []byte) ([][]string, error) {
	conf := model.NewDefaultConfiguration()
	ctx, err := api.ReadValidateAndOptimize(bytes.NewReader(src), conf)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConversionFailed, err)
	}

	var pages [][]string
	for pageNr := 1; pageNr <= ctx.PageCount; pageNr++ {
		text := extractPageText(ctx, pageNr)
		if text == "" {
			continue
		}
		paras := splitParagraphs(text)
		if len(paras) > 0 {
			pages = append(pages, paras)
		}
	}
	return pages, nil
}

// extractPageText decodes the text show operators of one page's content
// stream.
func extractPageText(ctx *model.Context, pageNr int) string {
	r, err := pdfcpu.ExtractPageContent(ctx, pageNr)
	if err != nil {
		return ""
	}
	data, err := io.ReadAll(r)
	if err != nil || len(data) == 0 {
		return ""
	}
	return decodeContentStream(data)
}

// synthesizeDocument builds the intermediate DOCX: one paragraph per text
// block, page-break-before on the first paragraph of each page after the
// first.
func synthesizeDocument(pages [][]string) *document.Document {
	doc := document.New()
	for pageIdx, paras := range pages {
		for i, text := range paras {
			p := doc.AddParagraph()
			if pageIdx > 0 && i == 0 {
				x := p.X()
				if x.PPr == nil {
					x.PPr = wml.NewCT_PPr()
				}
				x.PPr.PageBreakBefore = wml.NewCT_OnOff()
			}
			p.AddRun().AddText(text)
		}
	}
	return doc
}
