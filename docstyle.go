// Package docstyle extracts visual styling from a reference document and
// reapplies it to a conversation transcript, producing a new styled DOCX.
//
// Control flow: source bytes → (if PDF) normalize to DOCX → extract a
// style.Model → apply the model plus the content items → output DOCX bytes.
// The pipeline is synchronous and stateless between invocations: every call
// owns its model and its output document, and nothing is cached across calls.
//
// Usage:
//
//	pipe := docstyle.New(docstyle.Config{})
//	res, err := pipe.Process(src, docstyle.FormatDocx, msgs)
//	os.WriteFile(res.Filename, res.Bytes, 0644)
package docstyle

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/TuckerHoneycutt/docstyle/docx"
	"github.com/TuckerHoneycutt/docstyle/pdf"
	"github.com/TuckerHoneycutt/docstyle/style"
)

// ErrUnsupportedFormat reports an input that is neither DOCX nor PDF.
var ErrUnsupportedFormat = errors.New("docstyle: unsupported format")

// Format identifies a source document type.
type Format string

const (
	// FormatDocx is the primary structural format; extraction and
	// application operate on it natively.
	FormatDocx Format = "docx"
	// FormatPDF requires a lossy normalization pass before extraction.
	FormatPDF Format = "pdf"
)

// Message is one content item of the transcript.
type Message = docx.Message

// OutputMIMEType identifies the produced document format.
const OutputMIMEType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// OutputFilename is the suggested name for the produced document.
const OutputFilename = "formatted_chat.docx"

// Result is the outcome of one Process call.
type Result struct {
	Bytes    []byte
	Filename string
	MIMEType string
}

// Config configures the pipeline.
type Config struct {
	// MaxFileSize is the maximum source size to process (default: 50 MB).
	MaxFileSize int64 `json:"max_file_size" yaml:"max_file_size"`

	// TempDir is where the PDF normalization pass stages its intermediate
	// artifact (default: the system temp directory).
	TempDir string `json:"temp_dir" yaml:"temp_dir"`

	// Logger for debug/error messages.
	Logger *slog.Logger `json:"-" yaml:"-"`
}

func (c *Config) defaults() {
	if c.MaxFileSize <= 0 {
		c.MaxFileSize = 50 * 1024 * 1024
	}
	if c.TempDir == "" {
		c.TempDir = os.TempDir()
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// Pipeline is the style-transfer engine.
type Pipeline struct {
	cfg    Config
	logger *slog.Logger
}

// New creates a Pipeline with the given configuration.
func New(cfg Config) *Pipeline {
	cfg.defaults()
	return &Pipeline{cfg: cfg, logger: cfg.Logger}
}

// Detect returns the source format based on file extension.
func Detect(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".docx":
		return FormatDocx, nil
	case ".pdf":
		return FormatPDF, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// ExtractStyle captures the style model of a source document without
// producing output.  This is the transport/debugging surface.
func (p *Pipeline) ExtractStyle(src []byte, format Format) (*style.Model, error) {
	if int64(len(src)) > p.cfg.MaxFileSize {
		return nil, fmt.Errorf("source too large: %d bytes (max %d)", len(src), p.cfg.MaxFileSize)
	}

	switch format {
	case FormatPDF:
		conv := pdf.NewConverter(pdf.Config{TempDir: p.cfg.TempDir, Logger: p.logger})
		normalized, err := conv.Convert(src)
		if err != nil {
			return nil, err
		}
		src = normalized
	case FormatDocx:
		// Native format, no normalization.
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	p.logger.Debug("extracting style", "format", format, "bytes", len(src))
	return docx.Extract(bytes.NewReader(src), int64(len(src)))
}

// Process runs the whole pipeline: extract the reference document's style and
// apply it to the transcript.  On failure the caller gets a typed error and
// no partial output.
func (p *Pipeline) Process(src []byte, format Format, msgs []Message) (*Result, error) {
	model, err := p.ExtractStyle(src, format)
	if err != nil {
		return nil, err
	}

	applier := docx.NewApplier(model)
	applier.ApplyDocumentDefaults()
	if err := applier.AddHeaders(); err != nil {
		return nil, err
	}
	if err := applier.AddContent(msgs); err != nil {
		return nil, err
	}
	if err := applier.AddTables(); err != nil {
		return nil, err
	}
	if err := applier.AddFooters(); err != nil {
		return nil, err
	}

	out, err := applier.Serialize()
	if err != nil {
		return nil, err
	}

	p.logger.Debug("document formatted", "messages", len(msgs), "bytes", len(out))
	return &Result{Bytes: out, Filename: OutputFilename, MIMEType: OutputMIMEType}, nil
}
