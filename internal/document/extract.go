// Package document extracts plain text from uploaded resume files.
package document

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"
)

// FailedPlaceholder replaces the resume text when extraction fails.
const FailedPlaceholder = "Resume content extraction failed."

type Extractor struct {
	logger *zap.Logger
}

func New(logger *zap.Logger) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{logger: logger}
}

// Extract returns the text of a PDF document page by page. Extraction is best
// effort: an unreadable document yields FailedPlaceholder, never an error.
// Image-only pages contribute nothing.
func (e *Extractor) Extract(data []byte) string {
	pages, err := e.pages(data)
	if err != nil {
		e.logger.Warn("document text extraction failed", zap.Error(err), zap.Int("size", len(data)))
		return FailedPlaceholder
	}

	text := joinPages(pages)
	e.logger.Debug("document text extracted", zap.Int("pages", len(pages)), zap.Int("length", len(text)))
	return text
}

func (e *Extractor) pages(data []byte) (pages []string, err error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty document")
	}

	// The pdf package panics on some malformed inputs.
	defer func() {
		if r := recover(); r != nil {
			pages = nil
			err = fmt.Errorf("pdf reader panic: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}

	total := reader.NumPage()
	pages = make([]string, 0, total)
	for i := 1; i <= total; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			e.logger.Debug("skipping unreadable page", zap.Int("page", i), zap.Error(err))
			continue
		}
		pages = append(pages, text)
	}

	return pages, nil
}

func joinPages(pages []string) string {
	var builder strings.Builder
	for _, page := range pages {
		page = strings.TrimSpace(page)
		if page == "" {
			continue
		}
		if builder.Len() > 0 {
			builder.WriteString("\n")
		}
		builder.WriteString(page)
	}
	return builder.String()
}
