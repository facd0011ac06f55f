package docx

import "errors"

var (
	// ErrCorruptDocument reports a source that parses as a container but is
	// structurally unusable (missing body, unwalkable sections/paragraphs).
	ErrCorruptDocument = errors.New("docx: corrupt document")

	// ErrInvalidStyleValue reports a captured style field that fails
	// validation at application time, e.g. a colour that is not a 6-digit
	// hex value.
	ErrInvalidStyleValue = errors.New("docx: invalid style value")

	// ErrEmptyContent reports an AddContent call with no content items.
	ErrEmptyContent = errors.New("docx: no content items")
)
