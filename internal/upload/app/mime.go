package app

import "github.com/gabriel-vasile/mimetype"

func contentType(head []byte) string {
	return mimetype.Detect(head).String()
}
