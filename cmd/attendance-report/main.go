package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ironsheep/attendance-report/internal/config"
	"github.com/ironsheep/attendance-report/internal/logging"
	"github.com/ironsheep/attendance-report/internal/ocr"
	"github.com/ironsheep/attendance-report/internal/pipeline"
	"github.com/ironsheep/attendance-report/internal/report"
	"github.com/ironsheep/attendance-report/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("attendance-report %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			printHelp()
			return
		}
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}

	// Logs go to stderr; stdout is for MCP protocol and run output
	log := logging.New(os.Stderr, logging.ParseLevel(cfg.LogLevel))
	log.Debug("starting",
		"version", Version,
		"built", BuildTime,
		"commit", GitCommit,
		"language", cfg.OCRLanguage,
	)

	tess := ocr.NewTesseract(ocr.Options{
		Language:       cfg.OCRLanguage,
		TessdataPrefix: cfg.TessdataPrefix,
		PageSegMode:    cfg.PageSegmentMode,
	})
	runner := pipeline.NewRunner(tess, report.Styles{HeaderColor: cfg.HeaderColor}, log)

	if len(os.Args) > 1 {
		if os.Args[1] != "run" {
			fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
			printHelp()
			os.Exit(2)
		}
		os.Exit(runBatch(runner, cfg, os.Args[2:]))
	}

	srv := server.New(runner, server.Options{
		Version:          Version,
		OutputFilename:   cfg.OutputFilename,
		WriteEmptyReport: cfg.WriteEmptyReport,
		OCRInfo:          tess.Info,
	}, log)
	if err := srv.Run(); err != nil {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}

// runBatch executes one "run <directory> [output.xlsx]" invocation and
// returns the process exit code.
func runBatch(runner *pipeline.Runner, cfg *config.Config, args []string) int {
	if len(args) < 1 || len(args) > 2 {
		fmt.Fprintln(os.Stderr, "Usage: attendance-report run <directory> [output.xlsx]")
		return 2
	}

	session := pipeline.Session{
		Directory:        args[0],
		OutputFilename:   cfg.OutputFilename,
		WriteEmptyReport: cfg.WriteEmptyReport,
	}
	if len(args) == 2 {
		session.OutputFilename = args[1]
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	outcome, err := runner.RunBatch(ctx, session)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	for _, f := range outcome.Files {
		if f.Error != nil {
			fmt.Fprintf(os.Stderr, "Skipped %s: %s\n", f.Name, f.Error.Message)
		}
	}

	switch {
	case outcome.Empty && !outcome.Written:
		fmt.Println("Warning: no text was extracted from the images; no report was written.")
	case outcome.Empty:
		fmt.Printf("Warning: no text was extracted from the images; empty report saved as '%s'\n", outcome.OutputPath)
	default:
		fmt.Printf("Report saved as '%s' (%d records)\n", outcome.OutputPath, outcome.RecordCount)
	}
	return 0
}

func printHelp() {
	fmt.Println("attendance-report - OCR attendance sheet images into an Excel report")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  attendance-report run <directory> [output.xlsx]   Convert one directory and exit")
	fmt.Println("  attendance-report                                 Serve MCP over stdin/stdout")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --version, -v    Print version information")
	fmt.Println("  --help, -h       Print this help message")
	fmt.Println()
	fmt.Println("Environment variables (also read from .env):")
	fmt.Println("  ATTENDANCE_LOG_LEVEL=info              debug, info, warn or error")
	fmt.Println("  ATTENDANCE_OCR_LANGUAGE=eng            Tesseract language, e.g. por or por+eng")
	fmt.Println("  ATTENDANCE_TESSDATA_PREFIX=            Directory holding *.traineddata")
	fmt.Println("  ATTENDANCE_OCR_PSM=3                   Tesseract page segmentation mode (0-13)")
	fmt.Println("  ATTENDANCE_OUTPUT=" + config.DefaultOutputFilename)
	fmt.Println("  ATTENDANCE_HEADER_COLOR=#D9EAD3        Header fill colour")
	fmt.Println("  ATTENDANCE_WRITE_EMPTY=false           Write a header-only report when nothing is extracted")
}
