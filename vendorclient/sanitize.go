package vendorclient

import (
	"fmt"
	"os"
	"strings"
)

// Error-path response bodies are not guaranteed to be text, so anything we quote in
// a diagnostic gets truncated and has non-printable bytes hex-escaped first.
const maxExcerptLen = 500

// SanitizeExcerpt renders at most max bytes of b as printable ASCII, escaping
// everything else as \xNN, and notes how many bytes were omitted.
func SanitizeExcerpt(b []byte, max int) string {
	omitted := 0
	if len(b) > max {
		omitted = len(b) - max
		b = b[:max]
	}
	var sb strings.Builder
	for _, c := range b {
		switch {
		case c == '\n' || c == '\t':
			sb.WriteByte(c)
		case c >= 0x20 && c <= 0x7e:
			sb.WriteByte(c)
		default:
			fmt.Fprintf(&sb, "\\x%02x", c)
		}
	}
	if omitted > 0 {
		fmt.Fprintf(&sb, " ... (%d more bytes)", omitted)
	}
	return sb.String()
}

func fileExcerpt(path string) string {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Sprintf("(unreadable: %v)", err)
	}
	if len(b) == 0 {
		return "(empty body)"
	}
	return SanitizeExcerpt(b, maxExcerptLen)
}
