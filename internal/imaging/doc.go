// Package imaging handles attendance sheet image files on disk.
//
// It decides which directory entries count as images, reads them with a
// scoped open-read-close so no handle outlives a single file, and decodes
// them to catch corrupt files before OCR runs.
//
// # Supported Formats
//
// Files are selected by suffix, case-insensitively:
//   - .png
//   - .jpg, .jpeg
//   - .tiff
//   - .bmp
//
// Decoding goes through github.com/disintegration/imaging, which registers
// the TIFF and BMP decoders from golang.org/x/image alongside the standard
// PNG and JPEG ones.
//
// # Error Handling
//
// Errors are *failure.Error values so the batch layer can tell a vanished
// file (ImageNotFound) from an unreadable or corrupt one
// (RecognitionFailed). Both are file-level: the batch keeps going.
//
// No pixel data is ever modified. This package does not deskew, binarize,
// denoise or otherwise pre-process images.
package imaging
