package domain

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gabriel-vasile/mimetype"
)

// DefaultMaxBytes is the upload ceiling when none is configured.
const DefaultMaxBytes int64 = 100 << 20

// AllowedExtensions is the print-ready file allow-list, lower case without
// the dot.
var AllowedExtensions = []string{"pdf", "jpg", "jpeg", "png", "tif", "tiff", "ai", "eps"}

// contentTypes lists the detected MIME types accepted per extension.
var contentTypes = map[string][]string{
	"pdf":  {"application/pdf"},
	"jpg":  {"image/jpeg"},
	"jpeg": {"image/jpeg"},
	"png":  {"image/png"},
	"tif":  {"image/tiff"},
	"tiff": {"image/tiff"},
	"ai":   {"application/pdf", "application/postscript"},
	"eps":  {"application/postscript"},
}

type Result struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
}

func pass() Result { return Result{OK: true} }

func fail(format string, args ...any) Result {
	return Result{Message: fmt.Sprintf(format, args...)}
}

// Extension returns the lower-case extension of name without the dot.
func Extension(name string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
}

// ValidateFile checks the name against the extension allow-list and size
// against maxBytes. A size equal to the ceiling is accepted.
func ValidateFile(name string, size, maxBytes int64) Result {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}

	ext := Extension(name)
	if !slices.Contains(AllowedExtensions, ext) {
		if ext == "" {
			return fail("File %q has no extension. Allowed types: %s.", name, strings.Join(AllowedExtensions, ", "))
		}
		return fail("File type .%s is not supported. Allowed types: %s.", ext, strings.Join(AllowedExtensions, ", "))
	}

	if size > maxBytes {
		return fail("File %q is too large (%s). Maximum size is %s.", name, humanize.IBytes(uint64(size)), humanize.IBytes(uint64(maxBytes)))
	}

	return pass()
}

// ValidateContent checks that the leading bytes of a file look like the type
// its extension claims.
func ValidateContent(name string, head []byte) Result {
	ext := Extension(name)
	allowed, ok := contentTypes[ext]
	if !ok {
		return fail("File type .%s is not supported.", ext)
	}

	detected := mimetype.Detect(head)
	for _, ct := range allowed {
		if detected.Is(ct) {
			return pass()
		}
	}
	return fail("File %q does not look like a .%s file (detected %s).", name, ext, detected.String())
}
