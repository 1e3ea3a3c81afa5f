// Package batch drives a directory of attendance sheet images through OCR
// and record mapping.
//
// Files are processed one at a time in filename order. A file that cannot
// be recognized is recorded as a failed FileResult and skipped; only a
// missing or unreadable directory (or context cancellation) stops a run.
package batch

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ironsheep/attendance-report/internal/attendance"
	"github.com/ironsheep/attendance-report/internal/failure"
	"github.com/ironsheep/attendance-report/internal/imaging"
	"github.com/ironsheep/attendance-report/internal/logging"
	"github.com/ironsheep/attendance-report/internal/ocr"
)

// Status tags a FileResult.
type Status string

const (
	StatusOK     Status = "ok"
	StatusFailed Status = "failed"
)

// FileResult is the outcome of processing one image.
type FileResult struct {
	Path   string `json:"path"`
	Name   string `json:"name"`
	Status Status `json:"status"`

	// Records is the number of records appended for this file, one per
	// non-empty recognized line.
	Records int `json:"records"`

	// Image is set when the recognizer reports image metadata.
	Image *imaging.ImageInfo `json:"image,omitempty"`

	// Error is set when Status is StatusFailed.
	Error *failure.Error `json:"error,omitempty"`
}

// Result is the flattened output of one batch run.
type Result struct {
	Directory string              `json:"directory"`
	Records   []attendance.Record `json:"records"`
	Files     []FileResult        `json:"files"`
}

// Empty reports whether the run produced no records.
func (r *Result) Empty() bool {
	return len(r.Records) == 0
}

// Succeeded returns the files that were recognized.
func (r *Result) Succeeded() []FileResult {
	return r.filter(StatusOK)
}

// Failed returns the files that could not be recognized.
func (r *Result) Failed() []FileResult {
	return r.filter(StatusFailed)
}

func (r *Result) filter(status Status) []FileResult {
	var out []FileResult
	for _, f := range r.Files {
		if f.Status == status {
			out = append(out, f)
		}
	}
	return out
}

// Extractor runs recognition and record mapping over a directory.
type Extractor struct {
	recognizer ocr.Recognizer
	log        *logging.Logger
}

// NewExtractor creates an Extractor. A nil logger discards output.
func NewExtractor(recognizer ocr.Recognizer, log *logging.Logger) *Extractor {
	if log == nil {
		log = logging.Discard()
	}
	return &Extractor{recognizer: recognizer, log: log}
}

// Extract processes every supported image in dir.
//
// Entries are visited in the order returned by os.ReadDir, which is sorted
// by filename, so runs are reproducible across hosts. Subdirectories are
// not descended into.
//
// # Errors
//
//   - DirectoryNotFound if dir does not exist
//   - DirectoryUnreadable if dir is not a directory or cannot be listed
//   - ctx.Err() if the context is cancelled between files
//
// Per-file failures are never returned; they appear in Result.Files.
// An empty Result is not an error.
func (e *Extractor) Extract(ctx context.Context, dir string) (*Result, error) {
	entries, err := readDir(dir)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Directory: dir,
		Records:   []attendance.Record{},
		Files:     []FileResult{},
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if !imaging.IsSupported(path) {
			e.log.Debug("skipping non-image entry", "file", entry.Name())
			continue
		}

		if err := ctx.Err(); err != nil {
			return nil, err
		}

		e.log.Info("processing image", "file", entry.Name())
		fr, records, err := e.processFile(ctx, path)
		if err != nil {
			return nil, err
		}

		result.Files = append(result.Files, fr)
		result.Records = append(result.Records, records...)
	}

	e.log.Info("batch complete",
		"directory", dir,
		"files", len(result.Files),
		"failed", len(result.Failed()),
		"records", len(result.Records),
	)
	return result, nil
}

// processFile recognizes one image. The returned error is non-nil only for
// context cancellation; recognition failures are folded into FileResult.
func (e *Extractor) processFile(ctx context.Context, path string) (FileResult, []attendance.Record, error) {
	fr := FileResult{
		Path: path,
		Name: filepath.Base(path),
	}

	lines, info, err := e.recognize(ctx, path)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return fr, nil, err
		}
		fr.Status = StatusFailed
		fr.Error = failure.As(err, failure.RecognitionFailed, path)
		e.log.Warn("failed to process image", "file", fr.Name, "code", fr.Error.Code, "error", err)
		return fr, nil, nil
	}

	records := MapLines(lines)

	fr.Status = StatusOK
	fr.Image = info
	fr.Records = len(records)
	e.log.Debug("image recognized", "file", fr.Name, "records", len(records))
	return fr, records, nil
}

func (e *Extractor) recognize(ctx context.Context, path string) ([]string, *imaging.ImageInfo, error) {
	if detailed, ok := e.recognizer.(ocr.DetailedRecognizer); ok {
		res, err := detailed.Extract(ctx, path)
		if err != nil {
			return nil, nil, err
		}
		return res.Lines, res.Image, nil
	}
	lines, err := e.recognizer.Recognize(ctx, path)
	return lines, nil, err
}

// MapLines maps every non-blank line to a record, in order.
func MapLines(lines []string) []attendance.Record {
	records := make([]attendance.Record, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		records = append(records, attendance.MapLine(line))
	}
	return records
}

func readDir(dir string) ([]os.DirEntry, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, failure.NewDirectoryNotFound(dir, err)
		}
		return nil, failure.NewDirectoryUnreadable(dir, err)
	}
	if !info.IsDir() {
		return nil, failure.NewDirectoryUnreadable(dir, errors.New("not a directory"))
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, failure.NewDirectoryUnreadable(dir, err)
	}
	return entries, nil
}
