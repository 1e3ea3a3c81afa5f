package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/ironsheep/attendance-report/internal/attendance"
	"github.com/ironsheep/attendance-report/internal/failure"
	"github.com/ironsheep/attendance-report/internal/ocr"
	"github.com/ironsheep/attendance-report/internal/report"
)

// fakeRecognizer returns canned lines by file name; names mapped to nil
// fail recognition.
func fakeRecognizer(text map[string][]string) ocr.Recognizer {
	return ocr.Func(func(ctx context.Context, path string) ([]string, error) {
		lines, ok := text[filepath.Base(path)]
		if !ok || lines == nil {
			return nil, failure.NewRecognitionFailed(path, nil)
		}
		return lines, nil
	})
}

// imageDir creates empty files with the given names in a temp directory.
func imageDir(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0644); err != nil {
			t.Fatalf("failed to create %s: %v", name, err)
		}
	}
	return dir
}

func TestRunBatch_WritesReport(t *testing.T) {
	dir := imageDir(t, "a.png", "b.jpg", "broken.png", "readme.md")
	out := filepath.Join(t.TempDir(), "junho")

	runner := NewRunner(fakeRecognizer(map[string][]string{
		"a.png":      {"08:00 Mon Yoga 30 X X X X 12", ""},
		"b.jpg":      {"08:00 Mon"},
		"broken.png": nil,
	}), report.DefaultStyles(), nil)

	outcome, err := runner.RunBatch(context.Background(), Session{
		Directory:      dir,
		OutputFilename: out,
	})
	if err != nil {
		t.Fatalf("RunBatch failed: %v", err)
	}

	if outcome.RecordCount != 2 {
		t.Errorf("RecordCount: got %d, want 2", outcome.RecordCount)
	}
	if !outcome.Written || outcome.Empty {
		t.Errorf("Written=%v Empty=%v, want true/false", outcome.Written, outcome.Empty)
	}
	if outcome.OutputPath != out+".xlsx" {
		t.Errorf("OutputPath: got %s, want %s.xlsx", outcome.OutputPath, out)
	}
	if outcome.FailedFiles() != 1 {
		t.Errorf("FailedFiles: got %d, want 1", outcome.FailedFiles())
	}
	if len(outcome.Files) != 3 {
		t.Errorf("Files: got %d, want 3", len(outcome.Files))
	}

	records, err := report.ReadXLSX(outcome.OutputPath)
	if err != nil {
		t.Fatalf("ReadXLSX failed: %v", err)
	}
	want := []attendance.Record{
		{Schedule: "08:00", Days: "Mon", ActivityOrInstructor: "Yoga", AgeOrResident: "30", MonthlyAttendance: "X X X X", MonthlyTotal: "12"},
		{Schedule: "08:00", Days: "Mon"},
	}
	if !reflect.DeepEqual(records, want) {
		t.Errorf("report records:\n got  %+v\n want %+v", records, want)
	}
}

func TestRunBatch_DefaultFilename(t *testing.T) {
	dir := imageDir(t, "a.png")
	chdirForTest(t, t.TempDir())

	runner := NewRunner(fakeRecognizer(map[string][]string{"a.png": {"x"}}), report.DefaultStyles(), nil)
	outcome, err := runner.RunBatch(context.Background(), Session{Directory: dir})
	if err != nil {
		t.Fatalf("RunBatch failed: %v", err)
	}

	if filepath.Base(outcome.OutputPath) != report.DefaultFilename {
		t.Errorf("OutputPath: got %s", outcome.OutputPath)
	}
	if !filepath.IsAbs(outcome.OutputPath) {
		t.Errorf("OutputPath should be absolute: %s", outcome.OutputPath)
	}
	if _, err := os.Stat(report.DefaultFilename); err != nil {
		t.Errorf("report not in working directory: %v", err)
	}
}

func TestRunBatch_EmptyDirectory(t *testing.T) {
	dir := imageDir(t)
	out := filepath.Join(t.TempDir(), "empty.xlsx")

	runner := NewRunner(fakeRecognizer(nil), report.DefaultStyles(), nil)
	outcome, err := runner.RunBatch(context.Background(), Session{Directory: dir, OutputFilename: out})
	if err != nil {
		t.Fatalf("an empty directory is not an error: %v", err)
	}

	if !outcome.Empty || outcome.Written || outcome.RecordCount != 0 {
		t.Errorf("outcome: got %+v", outcome)
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Error("no report should be written for an empty run")
	}
}

func TestRunBatch_AllFailed_WriteEmptyReport(t *testing.T) {
	dir := imageDir(t, "a.png", "b.png")
	out := filepath.Join(t.TempDir(), "empty.xlsx")

	runner := NewRunner(fakeRecognizer(nil), report.DefaultStyles(), nil)
	outcome, err := runner.RunBatch(context.Background(), Session{
		Directory:        dir,
		OutputFilename:   out,
		WriteEmptyReport: true,
	})
	if err != nil {
		t.Fatalf("RunBatch failed: %v", err)
	}

	if !outcome.Empty || !outcome.Written {
		t.Errorf("Empty=%v Written=%v, want true/true", outcome.Empty, outcome.Written)
	}
	if outcome.FailedFiles() != 2 {
		t.Errorf("FailedFiles: got %d, want 2", outcome.FailedFiles())
	}

	records, err := report.ReadXLSX(out)
	if err != nil {
		t.Fatalf("ReadXLSX failed: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("records: got %d, want 0", len(records))
	}
}

func TestRunBatch_Errors(t *testing.T) {
	okDir := imageDir(t, "a.png")

	tests := []struct {
		name    string
		session Session
		styles  report.Styles
		want    failure.Code
	}{
		{
			"missing directory input",
			Session{Directory: "  "},
			report.DefaultStyles(),
			failure.InvalidInput,
		},
		{
			"directory not found",
			Session{Directory: filepath.Join(okDir, "nope")},
			report.DefaultStyles(),
			failure.DirectoryNotFound,
		},
		{
			"unwritable output",
			Session{Directory: okDir, OutputFilename: filepath.Join(okDir, "no", "such", "dir.xlsx")},
			report.DefaultStyles(),
			failure.WriteFailed,
		},
		{
			"bad header colour",
			Session{Directory: okDir, OutputFilename: filepath.Join(t.TempDir(), "x.xlsx")},
			report.Styles{HeaderColor: "nope"},
			failure.InvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := NewRunner(fakeRecognizer(map[string][]string{"a.png": {"08:00"}}), tt.styles, nil)

			outcome, err := runner.RunBatch(context.Background(), tt.session)
			if err == nil {
				t.Fatalf("RunBatch should fail, got %+v", outcome)
			}
			if !failure.Is(err, tt.want) {
				t.Errorf("expected %s, got %v", tt.want, err)
			}
		})
	}
}

func TestRunner_Extract(t *testing.T) {
	dir := imageDir(t, "a.png")
	runner := NewRunner(fakeRecognizer(map[string][]string{"a.png": {"08:00 Mon", "09:00 Tue"}}), report.DefaultStyles(), nil)

	result, err := runner.Extract(context.Background(), dir)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if len(result.Records) != 2 {
		t.Errorf("Records: got %d, want 2", len(result.Records))
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Error("Extract must not write anything into the directory")
	}
}
