package extract

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rkampati/carekb/internal/domain/docModel"
	"github.com/rkampati/carekb/pkg/logger_i"
)

func TestFormatFor(t *testing.T) {
	tests := []struct {
		fileName string
		expected docModel.SourceFormat
	}{
		{"protocol.pdf", docModel.FormatPDF},
		{"PROTOCOL.PDF", docModel.FormatPDF},
		{"notes.docx", docModel.FormatDocx},
		{"old.rtf", docModel.FormatDocx},
		{"readme.md", docModel.FormatMarkdown},
		{"notes.markdown", docModel.FormatMarkdown},
		{"plain.txt", docModel.FormatText},
		{"image.png", ""},
	}

	for _, tt := range tests {
		if got := FormatFor(tt.fileName); got != tt.expected {
			t.Errorf("FormatFor(%s) = %v; want %v", tt.fileName, got, tt.expected)
		}
	}
}

func TestExtract_PlainText(t *testing.T) {
	e := NewExtractor()

	res, err := e.Extract(context.Background(), []byte("  hello newborn world  "), "notes.txt")
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if res.Text != "hello newborn world" {
		t.Errorf("Text got %q", res.Text)
	}
	if res.Pages != 1 || res.Method != MethodTextLayer {
		t.Errorf("Unexpected pages/method: %d %s", res.Pages, res.Method)
	}
	if res.Confidence != nil {
		t.Error("Text layer extraction must not carry a confidence value")
	}
}

func TestExtract_Idempotent(t *testing.T) {
	e := NewExtractor()
	data := []byte("# Feeding\n\nFeed on demand.\n\n## Night feeds\n\nExpect 2-3 wakes.")

	first, err := e.Extract(context.Background(), data, "feeding.md")
	if err != nil {
		t.Fatalf("first Extract failed: %v", err)
	}
	second, err := e.Extract(context.Background(), data, "feeding.md")
	if err != nil {
		t.Fatalf("second Extract failed: %v", err)
	}

	if first.Text != second.Text || first.Pages != second.Pages {
		t.Errorf("Extraction not idempotent: %q/%d vs %q/%d",
			first.Text, first.Pages, second.Text, second.Pages)
	}
}

func TestExtract_Markdown(t *testing.T) {
	e := NewExtractor()
	data := []byte("# Sleep basics\n\nNewborns sleep 14-17 hours.\n\n- swaddle snugly\n- back to sleep\n")

	res, err := e.Extract(context.Background(), data, "sleep.md")
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	for _, want := range []string{"Sleep basics", "14-17 hours", "swaddle snugly"} {
		if !strings.Contains(res.Text, want) {
			t.Errorf("Markdown text missing %q in %q", want, res.Text)
		}
	}
	if strings.Contains(res.Text, "#") || strings.Contains(res.Text, "- swaddle") {
		t.Errorf("Markdown syntax leaked into plain text: %q", res.Text)
	}
}

func TestExtract_CorruptPDF(t *testing.T) {
	e := NewExtractor()

	_, err := e.Extract(context.Background(), []byte("definitely not a pdf"), "broken.pdf")
	if err == nil {
		t.Fatal("Expected error for corrupt pdf bytes")
	}

	var extractionErr *ExtractionError
	if !errors.As(err, &extractionErr) {
		t.Fatalf("Expected *ExtractionError, got %T", err)
	}
	if extractionErr.Kind != CorruptDocument {
		t.Errorf("Kind got %s, want %s", extractionErr.Kind, CorruptDocument)
	}
}

func TestExtract_UnsupportedFormat(t *testing.T) {
	e := NewExtractor()

	_, err := e.Extract(context.Background(), []byte{0x89, 0x50}, "scan.png")
	var extractionErr *ExtractionError
	if !errors.As(err, &extractionErr) || extractionErr.Kind != UnsupportedFormat {
		t.Errorf("Expected UnsupportedFormat, got %v", err)
	}
}

func TestCheckDeadline_Timeout(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := checkDeadline(ctx)
	var extractionErr *ExtractionError
	if !errors.As(err, &extractionErr) || extractionErr.Kind != Timeout {
		t.Errorf("Expected Timeout kind for dead context, got %v", err)
	}
}

func TestMeanOf(t *testing.T) {
	if got := meanOf([]float64{80, 90, 100}); got != 90 {
		t.Errorf("meanOf got %f, want 90", got)
	}
}

type unavailableOCR struct{}

func (unavailableOCR) Available() bool { return false }
func (unavailableOCR) Recognize(_ context.Context, _ string) (string, float64, error) {
	return "", 0, errors.New("no engine")
}

type brokenRasterOCR struct{}

func (brokenRasterOCR) Available() bool { return true }
func (brokenRasterOCR) Recognize(_ context.Context, _ string) (string, float64, error) {
	return "", 0, errors.New("never reached")
}

// A thin-but-valid text layer must survive OCR degradation: the fallback
// keeps whatever the text layer produced instead of returning an empty
// document.
func TestExtractViaOCR_KeepsThinTextLayer(t *testing.T) {
	thinText := "Hi mom"

	t.Run("engine unavailable", func(t *testing.T) {
		e := &extractor{ocr: unavailableOCR{}, logger: logger_i.NewLogger("test")}

		res, err := e.extractViaOCR(context.Background(), []byte("%PDF-fake"), 1, nil, thinText)
		if err != nil {
			t.Fatalf("extractViaOCR failed: %v", err)
		}
		if !strings.Contains(res.Text, thinText) {
			t.Errorf("thin text layer was dropped: %q", res.Text)
		}
		if res.Method != MethodTextLayer {
			t.Errorf("expected text-layer method, got %q", res.Method)
		}
		if len(res.Warnings) == 0 {
			t.Error("expected a degradation warning")
		}
	})

	t.Run("rasterization fails", func(t *testing.T) {
		e := &extractor{ocr: brokenRasterOCR{}, logger: logger_i.NewLogger("test")}

		// garbage bytes cannot rasterize, so either pdftoppm errors or no
		// page images appear; the text layer must come back either way
		res, err := e.extractViaOCR(context.Background(), []byte("not a pdf"), 1, nil, thinText)
		if err != nil {
			t.Fatalf("extractViaOCR failed: %v", err)
		}
		if !strings.Contains(res.Text, thinText) {
			t.Errorf("thin text layer was dropped: %q", res.Text)
		}
		if res.Method != MethodTextLayer {
			t.Errorf("expected text-layer method, got %q", res.Method)
		}
	})
}
