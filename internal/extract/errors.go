package extract

import "fmt"

type ErrorKind string

const (
	CorruptDocument   ErrorKind = "CorruptDocument"
	Timeout           ErrorKind = "Timeout"
	UnsupportedFormat ErrorKind = "UnsupportedFormat"
)

// ExtractionError aborts ingestion - nothing is persisted when one is
// returned. Partial per-page failures are warnings, not errors.
type ExtractionError struct {
	Kind ErrorKind
	Err  error
}

func (e *ExtractionError) Error() string {
	if e.Err == nil {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

func newError(kind ErrorKind, err error) *ExtractionError {
	return &ExtractionError{Kind: kind, Err: err}
}
