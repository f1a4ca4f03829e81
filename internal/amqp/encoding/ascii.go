package encoding

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// ASCIIPolicy controls content outside the 7-bit range.
type ASCIIPolicy int

const (
	// ASCIILegacy maps every out-of-range character to '?', one byte per
	// character, matching peers that never validated symbol content.
	ASCIILegacy ASCIIPolicy = iota
	// ASCIIStrict rejects out-of-range content with ErrNonASCII.
	ASCIIStrict
)

const asciiReplacement = '?'

func (p ASCIIPolicy) String() string {
	switch p {
	case ASCIILegacy:
		return "legacy"
	case ASCIIStrict:
		return "strict"
	default:
		return fmt.Sprintf("ASCIIPolicy(%d)", int(p))
	}
}

// ParseASCIIPolicy accepts "legacy" and "strict". Empty means legacy.
func ParseASCIIPolicy(raw string) (ASCIIPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "legacy":
		return ASCIILegacy, nil
	case "strict":
		return ASCIIStrict, nil
	default:
		return ASCIILegacy, fmt.Errorf("encoding: unknown ascii policy %q", raw)
	}
}

// asciiByteCount is the encoded length of s: one byte per character.
func asciiByteCount(s string) int {
	if isASCII(s) {
		return len(s)
	}
	return utf8.RuneCountInString(s)
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

// appendASCII appends the one-byte-per-character form of s to dst.
func (p ASCIIPolicy) appendASCII(dst []byte, s string) ([]byte, error) {
	if isASCII(s) {
		return append(dst, s...), nil
	}
	if p == ASCIIStrict {
		i := strings.IndexFunc(s, func(r rune) bool { return r >= utf8.RuneSelf })
		return dst, fmt.Errorf("%w: character at byte %d", ErrNonASCII, i)
	}
	for _, r := range s {
		if r < utf8.RuneSelf {
			dst = append(dst, byte(r))
		} else {
			dst = append(dst, asciiReplacement)
		}
	}
	return dst, nil
}

// decodeASCII copies b into a string. Bytes at or above 0x80 become '?'
// under the legacy policy.
func (p ASCIIPolicy) decodeASCII(b []byte) (string, error) {
	bad := -1
	for i, c := range b {
		if c >= utf8.RuneSelf {
			bad = i
			break
		}
	}
	if bad < 0 {
		return string(b), nil
	}
	if p == ASCIIStrict {
		return "", fmt.Errorf("%w: byte 0x%02x at %d", ErrNonASCII, b[bad], bad)
	}
	out := make([]byte, len(b))
	for i, c := range b {
		if c >= utf8.RuneSelf {
			c = asciiReplacement
		}
		out[i] = c
	}
	return string(out), nil
}
