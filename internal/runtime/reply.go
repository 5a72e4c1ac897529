package runtime

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyReply is returned by DecodeReply for blank or null replies.
var ErrEmptyReply = errors.New("empty reply")

// DecodeReply parses a reasoning service reply into a JSON object.
// Models frequently wrap JSON in a Markdown code fence or add a sentence
// around it; both are tolerated. Anything that is not a JSON object fails.
func DecodeReply(text string) (map[string]any, error) {
	text = strings.TrimSpace(stripFence(strings.TrimSpace(text)))
	if text == "" || text == "null" {
		return nil, ErrEmptyReply
	}

	out, err := decodeObject(text)
	if err == nil {
		return out, nil
	}

	// Fall back to the outermost braces when the model added prose.
	// A top-level array is a wrong answer, not prose.
	first, last := strings.IndexByte(text, '{'), strings.LastIndexByte(text, '}')
	if !strings.HasPrefix(text, "[") && first >= 0 && last > first {
		if inner, innerErr := decodeObject(text[first : last+1]); innerErr == nil {
			return inner, nil
		}
	}
	return nil, fmt.Errorf("reply is not a JSON object: %w", err)
}

func decodeObject(text string) (map[string]any, error) {
	var out map[string]any
	if err := json.Unmarshal([]byte(text), &out); err != nil {
		return nil, err
	}
	if out == nil {
		return nil, ErrEmptyReply
	}
	return out, nil
}

func stripFence(text string) string {
	if !strings.HasPrefix(text, "```") {
		return text
	}
	// Drop the opening fence line, including any language tag.
	if nl := strings.IndexByte(text, '\n'); nl >= 0 {
		text = text[nl+1:]
	} else {
		text = strings.TrimPrefix(text, "```")
	}
	text = strings.TrimSpace(text)
	return strings.TrimSuffix(text, "```")
}
