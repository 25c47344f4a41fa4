package extract

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lu4p/cat"

	"github.com/rkampati/carekb/internal/domain/docModel"
	"github.com/rkampati/carekb/pkg/logger_i"
)

type Method string

const (
	MethodTextLayer Method = "text-layer"
	MethodOCR       Method = "ocr"
)

// Result of a single extraction. Confidence is only set when OCR was
// used - the text layer is implicitly maximal.
type Result struct {
	Text       string
	Pages      int
	Method     Method
	Confidence *float64
	Warnings   []string
}

type Extractor interface {
	Extract(ctx context.Context, data []byte, fileName string) (Result, error)
}

type extractor struct {
	ocr    ocrEngine
	logger *logger_i.Logger
}

func NewExtractor() Extractor {
	return &extractor{
		ocr:    newOCREngine(),
		logger: logger_i.NewLogger("Extractor"),
	}
}

func (e *extractor) Extract(ctx context.Context, data []byte, fileName string) (Result, error) {
	format := FormatFor(fileName)
	e.logger.Debug("Extract", "fileName", fileName, "format", format, "bytes", len(data))

	switch format {
	case docModel.FormatPDF:
		return e.extractPDF(ctx, data)
	case docModel.FormatDocx:
		return extractWithCat(data, filepath.Ext(fileName))
	case docModel.FormatMarkdown:
		return extractMarkdown(data)
	case docModel.FormatText:
		return Result{Text: strings.TrimSpace(string(data)), Pages: 1, Method: MethodTextLayer}, nil
	default:
		return Result{}, newError(UnsupportedFormat, fmt.Errorf("unsupported file type: %s", fileName))
	}
}

// FormatFor maps a file name to its source format. PDF is the primary
// curated ingestion path; markdown and plain text are ad hoc notes and
// score lower at query time.
func FormatFor(fileName string) docModel.SourceFormat {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".pdf":
		return docModel.FormatPDF
	case ".docx", ".rtf", ".odt":
		return docModel.FormatDocx
	case ".md", ".markdown":
		return docModel.FormatMarkdown
	case ".txt":
		return docModel.FormatText
	default:
		return ""
	}
}

// extractWithCat writes the payload to a scoped temp file because cat
// only reads from paths.
func extractWithCat(data []byte, ext string) (Result, error) {
	tmp, err := os.CreateTemp("", "carekb-doc-*"+ext)
	if err != nil {
		return Result{}, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return Result{}, fmt.Errorf("write temp file: %w", err)
	}
	tmp.Close()

	text, err := cat.File(tmpPath)
	if err != nil {
		return Result{}, newError(CorruptDocument, fmt.Errorf("extract document content: %w", err))
	}

	return Result{Text: strings.TrimSpace(text), Pages: 1, Method: MethodTextLayer}, nil
}
