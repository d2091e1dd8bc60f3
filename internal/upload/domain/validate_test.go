package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateFile(t *testing.T) {
	const limit = 10 << 20

	cases := []struct {
		name string
		file string
		size int64
		ok   bool
	}{
		{"pdf under limit", "flyer.pdf", 1 << 20, true},
		{"upper-case extension", "FLYER.PDF", 1 << 20, true},
		{"tiff at the ceiling", "poster.tiff", limit, true},
		{"one byte over", "poster.tiff", limit + 1, false},
		{"docx not allowed", "brief.docx", 100, false},
		{"no extension", "Makefile", 100, false},
		{"double extension uses last", "flyer.pdf.exe", 100, false},
		{"eps", "logo.eps", 100, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := ValidateFile(tc.file, tc.size, limit)
			assert.Equal(t, tc.ok, res.OK, res.Message)
			if !tc.ok {
				assert.NotEmpty(t, res.Message)
			}
		})
	}
}

func TestValidateFileMessages(t *testing.T) {
	res := ValidateFile("huge.pdf", 150<<20, 100<<20)
	assert.Equal(t, `File "huge.pdf" is too large (150 MiB). Maximum size is 100 MiB.`, res.Message)

	res = ValidateFile("scan.tif", 2_621_440, 2<<20)
	assert.Equal(t, `File "scan.tif" is too large (2.5 MiB). Maximum size is 2.0 MiB.`, res.Message)

	res = ValidateFile("brief.docx", 1, 0)
	assert.Equal(t, "File type .docx is not supported. Allowed types: pdf, jpg, jpeg, png, tif, tiff, ai, eps.", res.Message)
}

func TestValidateFileDefaultCeiling(t *testing.T) {
	assert.True(t, ValidateFile("a.pdf", DefaultMaxBytes, 0).OK)
	assert.False(t, ValidateFile("a.pdf", DefaultMaxBytes+1, 0).OK)
}

func TestValidateContent(t *testing.T) {
	pdf := []byte("%PDF-1.7\n%\xe2\xe3\xcf\xd3\n1 0 obj\n")
	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

	assert.True(t, ValidateContent("flyer.pdf", pdf).OK)
	assert.True(t, ValidateContent("logo.ai", pdf).OK)
	assert.True(t, ValidateContent("photo.png", png).OK)

	res := ValidateContent("photo.png", pdf)
	assert.False(t, res.OK)
	assert.Contains(t, res.Message, "does not look like a .png file")

	assert.False(t, ValidateContent("notes.pdf", []byte("just some text")).OK)
}
