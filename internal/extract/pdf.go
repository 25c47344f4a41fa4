package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dslipak/pdf"

	"github.com/rkampati/carekb/internal/config"
	"github.com/rkampati/carekb/internal/metrics"
)

func (e *extractor) extractPDF(ctx context.Context, data []byte) (Result, error) {
	reader, err := openPDF(data)
	if err != nil {
		e.logger.Error("failed opening of pdf payload", "error", err)
		return Result{}, newError(CorruptDocument, err)
	}

	numPages := reader.NumPage()
	e.logger.Debug("extractPDF", "number of pages", numPages)
	if numPages == 0 {
		return Result{Pages: 0, Method: MethodTextLayer}, nil
	}

	var warnings []string
	var sb strings.Builder
	totalChars := 0

	for i := 1; i <= numPages; i++ {
		if ctxErr := checkDeadline(ctx); ctxErr != nil {
			return Result{}, ctxErr
		}

		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		content, err := guardedPlainText(page)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("page %d: text layer unreadable", i))
			e.logger.Warn("Error parsing page content", "page", i, "error", err)
			continue
		}

		totalChars += len(strings.TrimSpace(content))
		if sb.Len() > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(strings.TrimSpace(content))
	}

	// A scanned PDF parses fine but carries almost no text layer. Below
	// the density floor we re-run the pages through OCR instead. The thin
	// text layer rides along so it survives an unusable OCR toolchain.
	if totalChars/numPages < config.MinCharsPerPage {
		e.logger.Debug("text layer below density threshold, falling back to OCR",
			"totalChars", totalChars, "pages", numPages)
		return e.extractViaOCR(ctx, data, numPages, warnings, strings.TrimSpace(sb.String()))
	}

	return Result{
		Text:     strings.TrimSpace(sb.String()),
		Pages:    numPages,
		Method:   MethodTextLayer,
		Warnings: warnings,
	}, nil
}

// openPDF recovers parser panics into a corrupt-document error - the
// pdf library is not hardened against malformed cross reference tables.
func openPDF(data []byte) (reader *pdf.Reader, err error) {
	defer func() {
		if r := recover(); r != nil {
			reader = nil
			err = fmt.Errorf("pdf parser panic: %v", r)
		}
	}()
	return pdf.NewReader(bytes.NewReader(data), int64(len(data)))
}

// guardedPlainText runs the page extraction on its own goroutine with a
// timeout. Some malformed pages make GetPlainText spin forever.
func guardedPlainText(page pdf.Page) (string, error) {
	type result struct {
		content string
		err     error
	}
	resChan := make(chan result, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				resChan <- result{"", fmt.Errorf("page panic: %v", r)}
			}
		}()
		content, err := page.GetPlainText(nil)
		resChan <- result{content, err}
	}()

	select {
	case r := <-resChan:
		return r.content, r.err
	case <-time.After(config.PageExtractTimeout):
		metrics.IncrementPageTimeouts()
		return "", errors.New("timeout")
	}
}

func checkDeadline(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return newError(Timeout, err)
	}
	return nil
}
