package runtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeReply(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    map[string]any
		wantErr bool
	}{
		{"plain", `{"a":1}`, map[string]any{"a": float64(1)}, false},
		{"fenced", "```json\n{\"a\":\"b\"}\n```", map[string]any{"a": "b"}, false},
		{"fenced no lang", "```\n{\"a\":\"b\"}```", map[string]any{"a": "b"}, false},
		{"prose around", `Here you go: {"a":"b"} enjoy!`, map[string]any{"a": "b"}, false},
		{"empty", "", nil, true},
		{"null", "null", nil, true},
		{"array", `[1,2]`, nil, true},
		{"string", `"hi"`, nil, true},
		{"broken", `{"a":`, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeReply(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
