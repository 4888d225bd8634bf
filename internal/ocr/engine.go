// Package ocr shells out to tesseract for raster-image text recognition.
package ocr

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Engine runs tesseract over image bytes with a single fixed language.
type Engine struct {
	binary string
	lang   string
	runner Runner
}

// NewEngine constructs an Engine. Empty binary defaults to "tesseract",
// empty lang to "eng".
func NewEngine(binary, lang string) *Engine {
	if binary == "" {
		binary = "tesseract"
	}
	if lang == "" {
		lang = "eng"
	}
	return &Engine{binary: binary, lang: lang, runner: execRunner{}}
}

// WithRunner overrides the command runner; used by tests.
func (e *Engine) WithRunner(r Runner) *Engine {
	e.runner = r
	return e
}

// Recognize writes the image to a temp file and runs
// `tesseract <file> stdout -l <lang>`, returning the recognized text.
func (e *Engine) Recognize(ctx context.Context, image []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp("", "ocr-*.img")
	if err != nil {
		return "", fmt.Errorf("ocr temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(image); err != nil {
		tmp.Close()
		return "", fmt.Errorf("ocr write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("ocr close temp file: %w", err)
	}

	out, stderr, err := e.runner.Run(ctx, e.binary, filepath.Clean(tmp.Name()), "stdout", "-l", e.lang)
	if err != nil {
		return "", fmt.Errorf("tesseract: %s: %w", truncate(string(stderr), 512), err)
	}
	return string(out), nil
}
