package svgico

import (
	"errors"
	"fmt"
)

// Kind classifies the failures which can abort the conversion pipeline.
type Kind int

const (
	IOError Kind = iota + 1
	ParseError
	InvalidGeometryError
	RenderError
	EncodeError
	PixelConversionError
)

var kindNames = map[Kind]string{
	IOError:              "io error",
	ParseError:           "parse error",
	InvalidGeometryError: "invalid geometry",
	RenderError:          "render error",
	EncodeError:          "encode error",
	PixelConversionError: "pixel conversion error",
}

// String returns the human readable name of the error kind.
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Error is the error type returned by every stage of the pipeline.
// Path is the file the failure relates to and may be empty.
type Error struct {
	Kind Kind
	Path string
	Err  error
}

func (e *Error) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Path, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// newError wraps err into an *Error. An err which is already an *Error
// keeps its kind; only a missing path is filled in.
func newError(kind Kind, path string, err error) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		if e.Path == "" {
			e.Path = path
		}
		return e
	}
	return &Error{Kind: kind, Path: path, Err: err}
}

// IsKind reports whether any error in err's chain is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
