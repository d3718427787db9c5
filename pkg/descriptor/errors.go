package descriptor

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is returned when a color is built from neither a
	// complete RGB[W] tuple nor a complete HSI tuple, or from both.
	ErrInvalidInput = errors.New("invalid color input")
	// ErrWhiteNotEnabled is returned when the white channel of a color
	// without a white emitter is written.
	ErrWhiteNotEnabled = errors.New("white channel not enabled")
	// ErrInvalidNodeType is returned when gradient nodes are not colors.
	ErrInvalidNodeType = errors.New("invalid gradient node type")
	// ErrTooManyColors is returned when a gradient would materialize more
	// colors than its limit.
	ErrTooManyColors = errors.New("gradient has too many colors")
	// ErrParse matches every *ParseError.
	ErrParse = errors.New("malformed descriptor")
)

// ParseError describes a descriptor word that could not be decoded.
type ParseError struct {
	Input  string
	Reason string
	Err    error
}

func newParseError(input, reason string, err error) error {
	return &ParseError{Input: input, Reason: reason, Err: err}
}

func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("parse %q: %s: %v", e.Input, e.Reason, e.Err)
	}
	return fmt.Sprintf("parse %q: %s", e.Input, e.Reason)
}

// Unwrap exposes the underlying error.
func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is reports whether target is ErrParse.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}
