// Package pipeline exposes the end-to-end batch run to presentation layers.
//
// A presentation layer (the CLI or the MCP server) collects a directory and
// an output filename into a Session and calls Runner.RunBatch. The runner
// holds no per-request state, so one Runner can serve many sessions.
package pipeline

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/ironsheep/attendance-report/internal/batch"
	"github.com/ironsheep/attendance-report/internal/failure"
	"github.com/ironsheep/attendance-report/internal/logging"
	"github.com/ironsheep/attendance-report/internal/ocr"
	"github.com/ironsheep/attendance-report/internal/report"
)

// Session is one request to convert a directory into a report.
type Session struct {
	// Directory holds the attendance sheet images. Required.
	Directory string `json:"directory"`

	// OutputFilename is where the report is written. Empty means
	// report.DefaultFilename; ".xlsx" is appended when missing. Relative
	// names resolve against the process working directory.
	OutputFilename string `json:"output_filename,omitempty"`

	// WriteEmptyReport writes a header-only report when nothing was
	// extracted. By default an empty run writes no file.
	WriteEmptyReport bool `json:"write_empty_report,omitempty"`
}

// Outcome summarises a completed run.
type Outcome struct {
	RecordCount int    `json:"record_count"`
	OutputPath  string `json:"output_path"`

	// Written is false when the run was empty and no file was produced.
	Written bool `json:"written"`

	// Empty is true when no records were extracted. This is a warning for
	// the caller to surface, not an error.
	Empty bool `json:"empty"`

	Files []batch.FileResult `json:"files"`
}

// FailedFiles counts images that could not be recognized.
func (o *Outcome) FailedFiles() int {
	n := 0
	for _, f := range o.Files {
		if f.Status == batch.StatusFailed {
			n++
		}
	}
	return n
}

// Runner wires a recognizer, report styling and logging together.
type Runner struct {
	extractor *batch.Extractor
	styles    report.Styles
	log       *logging.Logger
}

// NewRunner creates a Runner. A nil logger discards output.
func NewRunner(recognizer ocr.Recognizer, styles report.Styles, log *logging.Logger) *Runner {
	if log == nil {
		log = logging.Discard()
	}
	return &Runner{
		extractor: batch.NewExtractor(recognizer, log),
		styles:    styles,
		log:       log,
	}
}

// Extract runs recognition and mapping only, without writing a report.
func (r *Runner) Extract(ctx context.Context, directory string) (*batch.Result, error) {
	directory = strings.TrimSpace(directory)
	if directory == "" {
		return nil, failure.NewInvalidInput("an image directory is required")
	}
	return r.extractor.Extract(ctx, directory)
}

// RunBatch extracts every record from s.Directory and writes the report.
//
// # Errors
//
// Returned errors are *failure.Error (or a context error):
//   - InvalidInput: empty directory, invalid header colour
//   - DirectoryNotFound / DirectoryUnreadable: nothing is written
//   - WriteFailed: the report could not be saved
//
// Images that fail recognition are reported in Outcome.Files and never
// cause an error.
func (r *Runner) RunBatch(ctx context.Context, s Session) (*Outcome, error) {
	result, err := r.Extract(ctx, s.Directory)
	if err != nil {
		return nil, err
	}

	outcome := &Outcome{
		RecordCount: len(result.Records),
		OutputPath:  report.NormalizeFilename(s.OutputFilename),
		Empty:       result.Empty(),
		Files:       result.Files,
	}

	if outcome.Empty && !s.WriteEmptyReport {
		r.log.Warn("no text extracted from images; report not written",
			"directory", s.Directory,
			"files", len(result.Files),
			"failed", outcome.FailedFiles(),
		)
		return outcome, nil
	}

	if err := report.WriteXLSX(outcome.OutputPath, report.NewTable(result.Records), r.styles); err != nil {
		return nil, err
	}
	outcome.Written = true

	if abs, err := filepath.Abs(outcome.OutputPath); err == nil {
		outcome.OutputPath = abs
	}
	r.log.Info("report saved", "path", outcome.OutputPath, "records", outcome.RecordCount)
	return outcome, nil
}
