// Package filetype checks uploaded documents against the printable formats.
package filetype

import (
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	domainErrors "github.com/polkiloo/smartxerox/internal/domain/errors"
)

const (
	PDF  = "application/pdf"
	JPEG = "image/jpeg"
	PNG  = "image/png"
	DOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	ZIP  = "application/zip"
)

const undetected = "application/octet-stream"

// Allowed lists declared content types accepted for printing.
var Allowed = []string{PDF, JPEG, PNG, DOCX}

// Normalize maps declared aliases onto canonical types.
func Normalize(declared string) string {
	declared = strings.ToLower(strings.TrimSpace(declared))
	if i := strings.IndexByte(declared, ';'); i >= 0 {
		declared = strings.TrimSpace(declared[:i])
	}
	if declared == "image/jpg" || declared == "image/pjpeg" {
		return JPEG
	}
	return declared
}

// IsAllowed reports whether the declared type is printable.
func IsAllowed(declared string) bool {
	declared = Normalize(declared)
	for _, a := range Allowed {
		if a == declared {
			return true
		}
	}
	return false
}

// Validate checks the declared type and sniffs content. It returns the
// canonical content type to store the file under.
func Validate(declared string, content []byte) (string, error) {
	declared = Normalize(declared)
	if !IsAllowed(declared) {
		return "", domainErrors.NewValidationError("file", "Invalid file type. Only PDF, JPG, PNG, and DOCX files are allowed.")
	}

	detected := mimetype.Detect(content)

	// DOCX is a zip container and is not always recognised as such.
	if declared == DOCX {
		if detected.Is(DOCX) || detected.Is(ZIP) || detected.Is(undetected) {
			return DOCX, nil
		}
		return "", domainErrors.NewValidationError("file", "Invalid DOCX file format detected.")
	}

	for _, a := range Allowed {
		if a != DOCX && detected.Is(a) {
			return a, nil
		}
	}
	return "", domainErrors.NewValidationError("file", "Invalid file format detected. Only genuine PDF, JPG, PNG, and DOCX files are allowed.")
}

// Extension picks the storage extension, preferring the uploaded file name.
func Extension(name, contentType string) string {
	if ext := strings.ToLower(filepath.Ext(name)); ext != "" && ext != "." {
		return ext
	}
	if m := mimetype.Lookup(contentType); m != nil {
		return m.Extension()
	}
	return ""
}
