package tui

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/charmbracelet/glamour"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlainRenderer(t *testing.T) {
	out, err := PlainRenderer("  **hello**  \n\n")
	require.NoError(t, err)
	assert.Equal(t, "**hello**\n", out)
}

func TestForOutput_NonTerminal(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "out")
	require.NoError(t, err)
	defer f.Close()

	out, err := ForOutput(f)("# Title")
	require.NoError(t, err)
	assert.Equal(t, "# Title\n", out)
}

func TestGlamourRendersMarkdown(t *testing.T) {
	r, err := glamour.NewTermRenderer(glamour.WithStandardStyle("notty"))
	require.NoError(t, err)

	out, err := r.Render("Try **the park**.")
	require.NoError(t, err)
	assert.Contains(t, out, "the park")
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	PrintBanner(&buf, "1.2.3")
	assert.True(t, strings.Contains(buf.String(), "version 1.2.3"))
}
