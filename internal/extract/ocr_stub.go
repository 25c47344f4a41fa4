//go:build !cgo

package extract

import (
	"context"
	"errors"
)

// Stub for builds without CGO. Scanned documents degrade to their thin
// text layer with a warning instead of failing ingestion.
type noopEngine struct{}

func newOCREngine() ocrEngine {
	return &noopEngine{}
}

func (n *noopEngine) Available() bool {
	return false
}

func (n *noopEngine) Recognize(_ context.Context, _ string) (string, float64, error) {
	return "", 0, errors.New("ocr not compiled in")
}
