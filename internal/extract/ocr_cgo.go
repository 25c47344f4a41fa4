//go:build cgo

package extract

import (
	"context"
	"fmt"

	"github.com/otiai10/gosseract/v2"
)

// tesseractEngine backs OCR with libtesseract. One client per page keeps
// the engine state disposable - a crashed recognition never poisons the
// next page.
type tesseractEngine struct{}

func newOCREngine() ocrEngine {
	return &tesseractEngine{}
}

func (t *tesseractEngine) Available() bool {
	return true
}

func (t *tesseractEngine) Recognize(ctx context.Context, imagePath string) (string, float64, error) {
	if err := ctx.Err(); err != nil {
		return "", 0, err
	}

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetImage(imagePath); err != nil {
		return "", 0, fmt.Errorf("set image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", 0, fmt.Errorf("recognize: %w", err)
	}

	confidence := meanLineConfidence(client)
	return text, confidence, nil
}

func meanLineConfidence(client *gosseract.Client) float64 {
	boxes, err := client.GetBoundingBoxes(gosseract.RIL_TEXTLINE)
	if err != nil || len(boxes) == 0 {
		return 0
	}
	var sum float64
	for _, box := range boxes {
		sum += box.Confidence
	}
	return sum / float64(len(boxes))
}
