package upload

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// MaxFileSize is the upload cap in bytes (5 MiB).
const MaxFileSize = 5 * 1024 * 1024

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

var mimeTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
}

// ErrMissingFilename indicates the upload carried no filename.
var ErrMissingFilename = errors.New("no filename provided")

// UnsupportedTypeError indicates an extension outside the allow list.
type UnsupportedTypeError struct {
	Received string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("unsupported file type: %s (allowed: .jpg, .jpeg, .png, .webp)", e.Received)
}

// TooLargeError indicates the content exceeded MaxFileSize.
type TooLargeError struct {
	Size int64
	Max  int64
}

func (e *TooLargeError) Error() string {
	return fmt.Sprintf("file too large: %d bytes (max %d)", e.Size, e.Max)
}

// Validated is an upload that passed all checks.
type Validated struct {
	Filename string
	Content  []byte
	MIME     string
}

// Extension returns the lowercased extension of filename, including the dot.
func Extension(filename string) string {
	return strings.ToLower(filepath.Ext(filename))
}

// Validate runs the upload checks in order, stopping at the first failure:
// filename present, extension allowed, size within cap.
func Validate(filename string, content []byte) (*Validated, error) {
	if filename == "" {
		return nil, ErrMissingFilename
	}

	ext := Extension(filename)
	if !allowedExtensions[ext] {
		return nil, &UnsupportedTypeError{Received: ext}
	}

	if int64(len(content)) > MaxFileSize {
		return nil, &TooLargeError{Size: int64(len(content)), Max: MaxFileSize}
	}

	mime, ok := mimeTypes[ext]
	if !ok {
		mime = "image/jpeg"
	}

	return &Validated{Filename: filename, Content: content, MIME: mime}, nil
}
