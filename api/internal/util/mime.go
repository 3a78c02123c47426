package util

import (
	"encoding/base64"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// SniffMIME detects the content type from the bytes themselves, without parameters.
func SniffMIME(b []byte) string {
	m := mimetype.Detect(b).String()
	if i := strings.IndexByte(m, ';'); i >= 0 {
		m = m[:i]
	}
	return strings.TrimSpace(m)
}

// MatchesMIME reports whether the bytes look like the declared type
// (or one of its aliases/parents).
func MatchesMIME(declared string, b []byte) bool {
	if len(b) == 0 {
		return false
	}
	return mimetype.Detect(b).Is(strings.TrimSpace(declared))
}

// MakeDataURL собирает data:URI из MIME и сырых байт.
func MakeDataURL(mime string, b []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(b)
}
