package extract

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/rkampati/carekb/internal/config"
	"github.com/rkampati/carekb/internal/metrics"
)

// ocrEngine recognizes text in a rasterized page image. Confidence is
// the engine's mean word confidence, 0-100.
type ocrEngine interface {
	Recognize(ctx context.Context, imagePath string) (string, float64, error)
	Available() bool
}

// extractViaOCR rasterizes every page and runs them through the OCR
// engine. A failed page contributes empty text and a warning; a
// completely unusable toolchain degrades back to textLayer, the thin
// but valid text the caller already extracted. All raster images live
// in a scoped temp dir that is removed on every exit path.
func (e *extractor) extractViaOCR(ctx context.Context, data []byte, numPages int, warnings []string, textLayer string) (Result, error) {
	if !e.ocr.Available() {
		warnings = append(warnings, "ocr engine unavailable, kept thin text layer")
		return Result{Text: textLayer, Pages: numPages, Method: MethodTextLayer, Warnings: warnings}, nil
	}

	tempDir, err := os.MkdirTemp("", "carekb-ocr-*")
	if err != nil {
		return Result{}, fmt.Errorf("create ocr temp dir: %w", err)
	}
	defer os.RemoveAll(tempDir)

	images, err := rasterizePDF(ctx, data, tempDir)
	if err != nil {
		warnings = append(warnings, "rasterization failed, kept thin text layer")
		e.logger.Warn("rasterization failed", "error", err)
		return Result{Text: textLayer, Pages: numPages, Method: MethodTextLayer, Warnings: warnings}, nil
	}

	var sb strings.Builder
	var confidences []float64

	for i, image := range images {
		if ctxErr := checkDeadline(ctx); ctxErr != nil {
			return Result{}, ctxErr
		}

		text, confidence, err := e.ocr.Recognize(ctx, image)
		metrics.IncrementOCRPages()
		if err != nil {
			// tolerated: this page contributes nothing, the rest continue
			warnings = append(warnings, fmt.Sprintf("page %d: ocr failed", i+1))
			e.logger.Warn("ocr page failed", "page", i+1, "error", err)
			continue
		}

		confidences = append(confidences, confidence)
		if sb.Len() > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(strings.TrimSpace(text))
	}

	text := strings.TrimSpace(sb.String())
	if text == "" {
		// not an error - metadata-only search must stay usable, and a
		// thin text layer still beats no text at all
		warnings = append(warnings, "ocr produced no text on any page")
		if textLayer != "" {
			return Result{Text: textLayer, Pages: numPages, Method: MethodTextLayer, Warnings: warnings}, nil
		}
	}

	result := Result{
		Text:     text,
		Pages:    numPages,
		Method:   MethodOCR,
		Warnings: warnings,
	}
	if len(confidences) > 0 {
		mean := meanOf(confidences)
		result.Confidence = &mean
	}
	return result, nil
}

// rasterizePDF shells out to pdftoppm, writing one PNG per page into
// dir. The caller owns dir cleanup.
func rasterizePDF(ctx context.Context, data []byte, dir string) ([]string, error) {
	pdfPath := filepath.Join(dir, "source.pdf")
	if err := os.WriteFile(pdfPath, data, 0600); err != nil {
		return nil, fmt.Errorf("write raster source: %w", err)
	}

	cmd := exec.CommandContext(ctx, "pdftoppm",
		"-png",
		"-r", strconv.Itoa(config.OCRRasterDPI),
		pdfPath,
		filepath.Join(dir, "page"))
	if out, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("pdftoppm: %w (%s)", err, strings.TrimSpace(string(out)))
	}

	images, err := filepath.Glob(filepath.Join(dir, "page-*.png"))
	if err != nil {
		return nil, err
	}
	sort.Strings(images) // pdftoppm zero-pads page numbers, lexical order is page order
	return images, nil
}

func meanOf(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
