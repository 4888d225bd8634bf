// Package extract dispatches uploaded documents to a text-extraction backend
// by MIME type: the embedded text layer for PDFs, an external OCR engine for
// raster images.
package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Engine tags recorded on the certificate's extraction trace.
const (
	EnginePDFText = "pdf-text"
	EngineOCR     = "ocr"
)

const mimePDF = "application/pdf"

var (
	// ErrPDFParse wraps failures to read a PDF's text layer.
	ErrPDFParse = errors.New("pdf parse failed")
	// ErrOCRRecognition wraps failures from the OCR backend.
	ErrOCRRecognition = errors.New("ocr recognition failed")
	// ErrUnsupportedType is returned for MIME types with no backend.
	ErrUnsupportedType = errors.New("unsupported mime type")
)

// Recognizer is the OCR collaborator boundary.
type Recognizer interface {
	Recognize(ctx context.Context, image []byte) (string, error)
}

// Result is raw extracted text plus the engine that produced it. On error the
// Engine field still names the backend that was attempted.
type Result struct {
	Text   string
	Engine string
}

// Extractor selects a backend per document type.
type Extractor struct {
	OCR Recognizer
}

// Extract pulls text from an in-memory payload. Scanned PDFs with no text
// layer yield empty or near-empty text; that is not an error here.
func (x *Extractor) Extract(ctx context.Context, data []byte, mimeType string, fileName string) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	switch normalized := normalizeMimeType(mimeType, fileName); {
	case normalized == mimePDF:
		text, err := extractPDF(data)
		if err != nil {
			return Result{Engine: EnginePDFText}, fmt.Errorf("%w: mime=%s: %v", ErrPDFParse, normalized, err)
		}
		return Result{Text: text, Engine: EnginePDFText}, nil

	case strings.HasPrefix(normalized, "image/"):
		if x.OCR == nil {
			return Result{Engine: EngineOCR}, fmt.Errorf("%w: no ocr backend configured", ErrOCRRecognition)
		}
		text, err := x.OCR.Recognize(ctx, data)
		if err != nil {
			return Result{Engine: EngineOCR}, fmt.Errorf("%w: mime=%s: %v", ErrOCRRecognition, normalized, err)
		}
		return Result{Text: text, Engine: EngineOCR}, nil

	default:
		return Result{}, fmt.Errorf("%w: %s", ErrUnsupportedType, normalized)
	}
}

func extractPDF(data []byte) (string, error) {
	reader := bytes.NewReader(data)
	pdfReader, err := pdf.NewReader(reader, int64(len(data)))
	if err != nil {
		return "", err
	}
	plain, err := pdfReader.GetPlainText()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func normalizeMimeType(mimeType string, fileName string) string {
	clean := strings.ToLower(strings.TrimSpace(strings.Split(mimeType, ";")[0]))
	if clean != "" && clean != "application/octet-stream" {
		return clean
	}

	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".pdf":
		return mimePDF
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".tif", ".tiff":
		return "image/tiff"
	default:
		return clean
	}
}
