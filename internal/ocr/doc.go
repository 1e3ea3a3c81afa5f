// Package ocr provides Optical Character Recognition (OCR) for attendance sheets.
//
// The batch pipeline only depends on the Recognizer interface: a path in,
// recognized lines out. Tesseract implements it with the Tesseract engine
// (via gosseract/v2); tests and alternative engines can use Func.
//
// # Prerequisites
//
// Tesseract and its development headers must be installed on the system:
//   - Ubuntu/Debian: apt-get install tesseract-ocr libtesseract-dev
//   - macOS: brew install tesseract
//   - Windows: Download from https://github.com/UB-Mannheim/tesseract/wiki
//
// Language data files are required for each language:
//   - Ubuntu/Debian: apt-get install tesseract-ocr-por (for Portuguese)
//   - Other languages: tesseract-ocr-<lang> packages
//
// The directory holding *.traineddata can be overridden with
// Options.TessdataPrefix.
//
// # Output
//
// Recognized text is trimmed and split on newlines. Nothing else is done to
// it: merged words, missing spaces and spurious characters are returned as
// Tesseract produced them.
//
// # Error Handling
//
// Recognize returns *failure.Error values:
//   - ImageNotFound when the file no longer exists
//   - RecognitionFailed when the file cannot be read or decoded, or
//     Tesseract fails (bad language code, missing traineddata, engine error)
//
// Both are file-level failures; the caller decides whether to continue.
package ocr
