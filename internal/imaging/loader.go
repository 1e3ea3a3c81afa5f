package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"
	"io/fs"
	"os"
	"strings"

	disimaging "github.com/disintegration/imaging"

	"github.com/ironsheep/attendance-report/internal/failure"
)

// SupportedExtensions lists the file suffixes accepted as attendance sheet
// images. Matching is case-insensitive.
var SupportedExtensions = []string{".png", ".jpg", ".jpeg", ".tiff", ".bmp"}

// IsSupported reports whether path ends with one of SupportedExtensions,
// ignoring case. The whole path is matched, not just the base name.
func IsSupported(path string) bool {
	lower := strings.ToLower(path)
	for _, ext := range SupportedExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// ReadImage reads the raw bytes of an image file.
//
// The file handle is released before ReadImage returns, whether or not the
// read succeeded, so callers never hold an open image between files.
//
// # Errors
//
//   - *failure.Error with code ImageNotFound if the file does not exist
//     (for example it vanished after the directory was listed)
//   - *failure.Error with code RecognitionFailed for any other open or
//     read error
func ReadImage(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, failure.NewImageNotFound(path, err)
		}
		return nil, failure.NewRecognitionFailed(path, fmt.Errorf("failed to open image: %w", err))
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, failure.NewRecognitionFailed(path, fmt.Errorf("failed to read image: %w", err))
	}
	return data, nil
}

// Decode decodes image bytes in any supported format (PNG, JPEG, TIFF, BMP).
//
// Decoding is only used to reject corrupt files before they reach the OCR
// engine; the decoded pixels are not modified.
func Decode(data []byte) (image.Image, error) {
	img, err := disimaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}

// ImageInfo contains metadata about an image file.
type ImageInfo struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// Format is "png", "jpeg", "tiff", "bmp" or "unknown".
	// Detection is based on file extension, not file contents.
	Format string `json:"format"`

	// FileSizeBytes is the size of the encoded image in bytes.
	FileSizeBytes int64 `json:"file_size_bytes"`
}

// Describe builds ImageInfo for an already decoded image.
func Describe(path string, img image.Image, size int64) *ImageInfo {
	bounds := img.Bounds()
	return &ImageInfo{
		Width:         bounds.Dx(),
		Height:        bounds.Dy(),
		Format:        FormatOf(path),
		FileSizeBytes: size,
	}
}

// FormatOf returns the lowercase format name implied by path's extension,
// or "unknown".
func FormatOf(path string) string {
	if !IsSupported(path) {
		return "unknown"
	}
	format, err := disimaging.FormatFromFilename(path)
	if err != nil {
		return "unknown"
	}
	return strings.ToLower(format.String())
}

// Load reads and decodes an image file, returning the decoded image, its
// raw bytes and metadata. Errors are *failure.Error values as described
// on ReadImage; decode errors use RecognitionFailed.
func Load(path string) (image.Image, []byte, *ImageInfo, error) {
	data, err := ReadImage(path)
	if err != nil {
		return nil, nil, nil, err
	}

	img, err := Decode(data)
	if err != nil {
		return nil, nil, nil, failure.NewRecognitionFailed(path, err)
	}

	return img, data, Describe(path, img, int64(len(data))), nil
}
