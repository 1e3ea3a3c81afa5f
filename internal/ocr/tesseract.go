package ocr

import (
	"context"
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"

	"github.com/ironsheep/attendance-report/internal/failure"
	"github.com/ironsheep/attendance-report/internal/imaging"
)

// Recognizer turns one image file into recognized lines of text.
//
// Implementations return a *failure.Error with code ImageNotFound or
// RecognitionFailed when the image cannot be processed. No assumption is
// made about recognition accuracy.
type Recognizer interface {
	Recognize(ctx context.Context, path string) ([]string, error)
}

// DetailedRecognizer is implemented by recognizers that can also report
// the raw text and image metadata for a file.
type DetailedRecognizer interface {
	Recognizer
	Extract(ctx context.Context, path string) (*Result, error)
}

// Func adapts a plain function to the Recognizer interface.
type Func func(ctx context.Context, path string) ([]string, error)

// Recognize calls f(ctx, path).
func (f Func) Recognize(ctx context.Context, path string) ([]string, error) {
	return f(ctx, path)
}

// Result holds everything recognized in one image.
type Result struct {
	// FullText is the recognized text with surrounding whitespace trimmed.
	FullText string `json:"full_text"`

	// Lines is FullText split on newlines. Blank lines are kept; filtering
	// is the caller's decision.
	Lines []string `json:"lines"`

	// Image describes the source file.
	Image *imaging.ImageInfo `json:"image,omitempty"`
}

// Options configures the Tesseract engine.
type Options struct {
	// Language is a Tesseract language code such as "eng" or "por".
	// Multiple languages are joined with "+" (e.g. "por+eng").
	Language string

	// TessdataPrefix overrides the directory containing *.traineddata.
	// Empty means Tesseract's compiled-in default / TESSDATA_PREFIX.
	TessdataPrefix string

	// PageSegMode is Tesseract's --psm value. 3 is fully automatic.
	PageSegMode int
}

// DefaultOptions returns English recognition with automatic segmentation.
func DefaultOptions() Options {
	return Options{
		Language:    "eng",
		PageSegMode: int(gosseract.PSM_AUTO),
	}
}

// Tesseract recognizes text with the Tesseract engine via gosseract.
//
// A fresh gosseract client is created for every image and closed before
// the call returns, so no engine state is shared between files.
type Tesseract struct {
	opts Options
}

// NewTesseract creates a recognizer. An empty Language defaults to "eng".
func NewTesseract(opts Options) *Tesseract {
	if opts.Language == "" {
		opts.Language = "eng"
	}
	return &Tesseract{opts: opts}
}

// Recognize returns the recognized lines of the image at path.
func (t *Tesseract) Recognize(ctx context.Context, path string) ([]string, error) {
	result, err := t.Extract(ctx, path)
	if err != nil {
		return nil, err
	}
	return result.Lines, nil
}

// Extract performs OCR on an entire image file.
//
// The file is read and released first, then decoded to make sure it is an
// image at all; only then is it handed to Tesseract. A file that vanished
// yields ImageNotFound, anything else RecognitionFailed.
func (t *Tesseract) Extract(ctx context.Context, path string) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	_, data, info, err := imaging.Load(path)
	if err != nil {
		return nil, err
	}

	text, err := t.text(data)
	if err != nil {
		return nil, failure.NewRecognitionFailed(path, err)
	}

	text = strings.TrimSpace(text)
	return &Result{
		FullText: text,
		Lines:    SplitLines(text),
		Image:    info,
	}, nil
}

func (t *Tesseract) text(data []byte) (string, error) {
	client := gosseract.NewClient()
	defer client.Close()

	if t.opts.TessdataPrefix != "" {
		if err := client.SetTessdataPrefix(t.opts.TessdataPrefix); err != nil {
			return "", fmt.Errorf("failed to set tessdata path: %w", err)
		}
	}

	if err := client.SetLanguage(strings.Split(t.opts.Language, "+")...); err != nil {
		return "", fmt.Errorf("failed to set language: %w", err)
	}

	if err := client.SetPageSegMode(gosseract.PageSegMode(t.opts.PageSegMode)); err != nil {
		return "", fmt.Errorf("failed to set page segmentation mode: %w", err)
	}

	if err := client.SetImageFromBytes(data); err != nil {
		return "", fmt.Errorf("failed to set image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("OCR failed: %w", err)
	}
	return text, nil
}

// SplitLines splits recognized text into lines, dropping the "\r" of
// Windows line endings. An empty text yields no lines.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// OCRInfo contains information about the OCR subsystem.
type OCRInfo struct {
	Available bool     `json:"available"`
	Version   string   `json:"version,omitempty"`
	Language  string   `json:"language"`
	Languages []string `json:"languages,omitempty"`
	Error     string   `json:"error,omitempty"`
	Backend   string   `json:"backend"`
}

// Info reports the Tesseract version and the installed language packs.
func (t *Tesseract) Info() OCRInfo {
	info := OCRInfo{
		Language: t.opts.Language,
		Backend:  "gosseract",
	}

	client := gosseract.NewClient()
	defer client.Close()
	if t.opts.TessdataPrefix != "" {
		if err := client.SetTessdataPrefix(t.opts.TessdataPrefix); err != nil {
			info.Error = err.Error()
			return info
		}
	}
	info.Version = client.Version()

	langs, err := gosseract.GetAvailableLanguages()
	if err != nil {
		info.Error = fmt.Sprintf("failed to list languages: %v", err)
		return info
	}
	info.Languages = langs
	info.Available = info.Version != ""
	return info
}
