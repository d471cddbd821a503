package dump

import (
	"errors"
	"fmt"
	"io/fs"

	"accneat/internal/model"
)

var (
	ErrStructural       = errors.New("unrecognized line shape")
	ErrArity            = model.ErrRecordArity
	ErrBoundaryMismatch = errors.New("genome boundary id mismatch")
	ErrNumericField     = errors.New("invalid numeric field")
	ErrInvalidRecord    = errors.New("invalid record")
	ErrNoGenome         = errors.New("no genome found")
)

// ParseError locates a failure inside one dump source. Line is 1-based and
// zero when the failure is not tied to a line (open errors, empty input).
type ParseError struct {
	Path string
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	switch {
	case e.Path != "" && e.Line > 0:
		return fmt.Sprintf("%s:%d: %v", e.Path, e.Line, e.Err)
	case e.Path != "":
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	case e.Line > 0:
		return fmt.Sprintf("line %d: %v", e.Line, e.Err)
	default:
		return e.Err.Error()
	}
}

func (e *ParseError) Unwrap() error { return e.Err }

// FailureKind maps a parse failure to a stable label for logs and metrics.
func FailureKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrStructural):
		return "structural"
	case errors.Is(err, ErrArity):
		return "arity"
	case errors.Is(err, ErrBoundaryMismatch):
		return "boundary_mismatch"
	case errors.Is(err, ErrNumericField):
		return "numeric_field"
	case errors.Is(err, ErrInvalidRecord):
		return "invalid_record"
	case errors.Is(err, ErrNoGenome):
		return "no_genome"
	case errors.Is(err, fs.ErrNotExist), errors.Is(err, fs.ErrPermission):
		return "io"
	default:
		var pathErr *fs.PathError
		if errors.As(err, &pathErr) {
			return "io"
		}
		return "unknown"
	}
}
