package assistant

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultMaxInputSize is 4KB (conservative default)
const DefaultMaxInputSize = 4096

var (
	ErrInputTooLarge = errors.New("input exceeds maximum allowed size")
	ErrInvalidUTF8   = errors.New("input contains invalid UTF-8 sequences")
	ErrEmptyInput    = errors.New("input is empty")
)

// SanitizeInput cleans free text typed by a user before it reaches a prompt:
// it enforces the size limit, validates UTF-8, strips control characters
// other than newline, tab and carriage return, and trims surrounding space.
// Oversized input is rejected rather than truncated.
func SanitizeInput(input string, limit int) (string, error) {
	if limit <= 0 {
		limit = DefaultMaxInputSize
	}
	if len(input) > limit {
		return "", fmt.Errorf("%w: size=%d limit=%d", ErrInputTooLarge, len(input), limit)
	}

	if !utf8.ValidString(input) {
		return "", ErrInvalidUTF8
	}

	clean := true
	for _, r := range input {
		if unicode.IsControl(r) && !isSafeControl(r) {
			clean = false
			break
		}
	}
	if !clean {
		var b strings.Builder
		b.Grow(len(input))
		for _, r := range input {
			if !unicode.IsControl(r) || isSafeControl(r) {
				b.WriteRune(r)
			}
		}
		input = b.String()
	}

	input = strings.TrimSpace(input)
	if input == "" {
		return "", ErrEmptyInput
	}
	return input, nil
}

func isSafeControl(r rune) bool {
	return r == '\n' || r == '\t' || r == '\r'
}
