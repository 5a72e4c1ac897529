package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	lifeassist "github.com/MahidharReddy003/aislingshot-sub000"
	"github.com/MahidharReddy003/aislingshot-sub000/pkg/flows"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "lifeassist version "+lifeassist.Version+"\n", out)
}

func TestFlowsShow(t *testing.T) {
	out, err := execute(t, "flows", "show", flows.ParseQuery)
	require.NoError(t, err)

	var doc flowDocument
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, flows.ParseQuery, doc.Name)
	assert.Equal(t, "object", doc.InputSchema["type"])
	assert.NotEmpty(t, doc.Prompt)
	assert.Empty(t, doc.Undeclared)
}

func TestFlowsShowUnknown(t *testing.T) {
	_, err := execute(t, "flows", "show", "nopeFlow")
	assert.Error(t, err)
}

func TestValidateCommand(t *testing.T) {
	dir := t.TempDir()
	doc := `---
name: moodFlow
input:
  - name: notes
    type: string
    required: true
output:
  - name: mood
    type: string
    required: true
---
Describe {{notes}} in {{language}}.
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "mood.md"), []byte(doc), 0o644))

	out, err := execute(t, "validate", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "warning: moodFlow references undeclared fields: language")
	assert.Contains(t, out, "1 flow(s) valid")
}

func TestDecodeInput(t *testing.T) {
	in, err := decodeInput(nil)
	require.NoError(t, err)
	assert.Empty(t, in)

	in, err = decodeInput([]byte(` {"budget": 20, "query": "pizza"} `))
	require.NoError(t, err)
	assert.Equal(t, json.Number("20"), in["budget"])
	assert.Equal(t, "pizza", in["query"])

	_, err = decodeInput([]byte(`[1,2]`))
	assert.ErrorContains(t, err, "JSON object")

	in, err = decodeInput([]byte(`null`))
	require.NoError(t, err)
	assert.NotNil(t, in)
}
