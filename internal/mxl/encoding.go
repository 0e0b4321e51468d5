package mxl

import (
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strings"

	"golang.org/x/net/html/charset"
)

var declaredEncoding = regexp.MustCompile(`^\s*<\?xml[^>]*?encoding\s*=\s*["']([A-Za-z0-9._:\-]+)["']`)

var (
	utf8BOM    = []byte{0xEF, 0xBB, 0xBF}
	utf16LEBOM = []byte{0xFF, 0xFE}
	utf16BEBOM = []byte{0xFE, 0xFF}
)

// toUTF8 returns doc re-encoded as UTF-8 with its XML declaration updated to match.
func toUTF8(doc string) (string, error) {
	raw := []byte(doc)
	switch {
	case bytes.HasPrefix(raw, utf8BOM):
		return string(raw[len(utf8BOM):]), nil
	case bytes.HasPrefix(raw, utf16LEBOM):
		return transcode(raw[len(utf16LEBOM):], "utf-16le")
	case bytes.HasPrefix(raw, utf16BEBOM):
		return transcode(raw[len(utf16BEBOM):], "utf-16be")
	}

	m := declaredEncoding.FindStringSubmatch(doc)
	if m == nil || isUTF8Label(m[1]) {
		return doc, nil
	}
	return transcode(raw, m[1])
}

func transcode(raw []byte, label string) (string, error) {
	r, err := charset.NewReaderLabel(label, bytes.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("unsupported encoding %q: %w", label, err)
	}
	decoded, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("decoding %q: %w", label, err)
	}
	out := string(decoded)
	if m := declaredEncoding.FindStringSubmatchIndex(out); m != nil {
		out = out[:m[2]] + "UTF-8" + out[m[3]:]
	}
	return out, nil
}

func isUTF8Label(label string) bool {
	return strings.EqualFold(label, "utf-8") || strings.EqualFold(label, "utf8")
}
