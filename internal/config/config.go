// Package config loads runtime settings from the environment.
//
// An optional .env file in the working directory is read first; variables
// already set in the process environment take precedence over it.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// DefaultOutputFilename is the report name used when none is given.
const DefaultOutputFilename = "relatorio_texto_imagens.xlsx"

// Config holds settings for the OCR, report and logging layers.
type Config struct {
	// Logging
	LogLevel string

	// Tesseract
	OCRLanguage     string
	TessdataPrefix  string
	PageSegmentMode int

	// Report
	OutputFilename   string
	HeaderColor      string
	WriteEmptyReport bool
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		LogLevel:         "info",
		OCRLanguage:      "eng",
		PageSegmentMode:  3,
		OutputFilename:   DefaultOutputFilename,
		HeaderColor:      "#D9EAD3",
		WriteEmptyReport: false,
	}
}

// Load reads .env (if present) and then the ATTENDANCE_* variables.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}
	return FromEnv()
}

// FromEnv builds a Config from the process environment only.
func FromEnv() (*Config, error) {
	def := Default()

	psm, err := getEnvInt("ATTENDANCE_OCR_PSM", def.PageSegmentMode)
	if err != nil {
		return nil, err
	}
	if psm < 0 || psm > 13 {
		return nil, fmt.Errorf("ATTENDANCE_OCR_PSM must be between 0 and 13, got %d", psm)
	}

	writeEmpty, err := getEnvBool("ATTENDANCE_WRITE_EMPTY", def.WriteEmptyReport)
	if err != nil {
		return nil, err
	}

	return &Config{
		LogLevel:         getEnvOrDefault("ATTENDANCE_LOG_LEVEL", def.LogLevel),
		OCRLanguage:      getEnvOrDefault("ATTENDANCE_OCR_LANGUAGE", def.OCRLanguage),
		TessdataPrefix:   getEnvOrDefault("ATTENDANCE_TESSDATA_PREFIX", def.TessdataPrefix),
		PageSegmentMode:  psm,
		OutputFilename:   getEnvOrDefault("ATTENDANCE_OUTPUT", def.OutputFilename),
		HeaderColor:      getEnvOrDefault("ATTENDANCE_HEADER_COLOR", def.HeaderColor),
		WriteEmptyReport: writeEmpty,
	}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return n, nil
}

func getEnvBool(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return b, nil
}
