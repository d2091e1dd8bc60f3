package domain

import (
	"slices"
	"strconv"
	"strings"
	"unicode/utf16"
)

// Fingerprint derives the dedup key of a product configuration. It is a
// 32-bit rolling hash (h = h*31 + c over UTF-16 code units) of the slug and
// the configuration fields, rendered in base 36. Finishings are sorted first
// so their order does not matter. Not collision resistant.
func Fingerprint(slug string, cfg Configuration) string {
	return strconv.FormatInt(abs(hash32(canonical(slug, cfg))), 36)
}

// ItemID is the cart line id for a product configuration.
func ItemID(slug string, cfg Configuration) string {
	return slug + "-" + Fingerprint(slug, cfg)
}

func canonical(slug string, cfg Configuration) string {
	fin := slices.Clone(cfg.Finishings)
	slices.Sort(fin)

	var b strings.Builder
	b.WriteString(slug)
	for _, part := range []string{cfg.Format, cfg.Paper, cfg.Colors, strings.Join(fin, ",")} {
		b.WriteByte('|')
		b.WriteString(part)
	}
	return b.String()
}

func hash32(s string) int32 {
	var h int32
	for _, u := range utf16.Encode([]rune(s)) {
		h = h*31 + int32(u)
	}
	return h
}

func abs(h int32) int64 {
	v := int64(h)
	if v < 0 {
		return -v
	}
	return v
}
