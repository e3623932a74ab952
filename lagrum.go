/*
Package lagrum is a grammar-driven recognizer for Swedish statute text.

It segments raw text into an ordered sequence of classified, non-overlapping spans
(words, numbers, punctuation, whitespace, unclassifiable codepoints) and extracts
higher-level entities such as dates, ordinals, and section references.

Consists of subpackages:
  - charclass: codepoint sets for word, digit, punctuation, and whitespace characters,
    including legacy-encoding artifacts;
  - grammar: defines rules and parsing expressions;
  - langdef: converts grammar description (written in PEG-like language) to grammar;
  - lexer: lexical analyzer used by langdef;
  - parser: packrat PEG matcher;
  - segment: splits text into spans and extracts entities;
  - sfs: built-in grammar for statute text;
  - source: defines source text and source queue;
  - tree: match tree nodes and traversal functions;
  - cmd/lagrum: console utility.

Typical usage is:

1. Describe grammar in PEG-like language or use the built-in one (sfs.Grammar).

2. Compile the description with langdef.

3. Create a segment.Segmenter for the grammar and feed it documents.
Segmentation never fails, every byte of the input belongs to exactly one span.
*/
package lagrum

import (
	"fmt"
)

// Error classes used by subpackages, each class contains up to 99 error codes:
const (
	GrammarErrors  = 1   // used by langdef
	LexicalErrors  = 101 // used by lexer
	DocumentErrors = 201 // used by document loader
	ConfigErrors   = 301 // used by configuration loader
	SegmentErrors  = 401 // used by segment
)

// Error is the error type used by lagrum subpackages.
type Error struct {
	// Code contains non-zero error code.
	Code int

	// Message contains non-empty error message including source name and position information if provided.
	Message string

	// SourceName contains source name that caused this error or empty string.
	SourceName string

	// Line contains line number in source file or 0.
	Line int

	// Col contains column number in source file or 0.
	Col int
}

// SourcePos is used to retrieve source name and position information when constructing an error;
// source.Pos and lexer.Token implement this interface.
type SourcePos interface {
	// SourceName returns source file name or empty string.
	SourceName() string
	// Line returns line number or 0.
	Line() int
	// Col returns column number or 0.
	Col() int
}

// NewError creates new Error structure.
// name, line, and col will be added to error message if provided (non-zero).
func NewError(code int, msg, name string, line, col int) *Error {
	if name != "" && line != 0 && col != 0 {
		msg += fmt.Sprintf(" in %s at line %d col %d", name, line, col)
	}
	return &Error{code, msg, name, line, col}
}

// Error simply returns Error.Message.
func (e *Error) Error() string {
	return e.Message
}

// Is reports whether target is an *Error with the same code.
// Allows errors.Is(e, &lagrum.Error{Code: langdef.UndefinedRuleError}).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// FormatError creates Error structure with no source and position information.
// params will be added to error message using fmt.Sprintf function.
func FormatError(code int, msg string, params ...any) *Error {
	if len(params) > 0 {
		msg = fmt.Sprintf(msg, params...)
	}
	return NewError(code, msg, "", 0, 0)
}

// FormatErrorPos creates Error structure with source and position information.
// pos must not be nil.
// params will be added to error message using fmt.Sprintf function.
func FormatErrorPos(pos SourcePos, code int, msg string, params ...any) *Error {
	if len(params) > 0 {
		msg = fmt.Sprintf(msg, params...)
	}
	return NewError(code, msg, pos.SourceName(), pos.Line(), pos.Col())
}
