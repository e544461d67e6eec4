package main

import (
	"bytes"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadInputFromFile(t *testing.T) {
	tmpDir, err := ioutil.TempDir("", "scanmark")
	require.NoError(t, err, "must create temp dir")
	t.Cleanup(func() { os.RemoveAll(tmpDir) })

	inPath := filepath.Join(tmpDir, "in.md")
	require.NoError(t, ioutil.WriteFile(inPath, []byte("hello\n"), 0644))

	data, err := readInput(inPath)
	assert.NoError(t, err)
	assert.Equal(t, "hello\n", string(data))
}

func TestReadInputMissingFile(t *testing.T) {
	_, err := readInput("/no/such/scanmark-input.md")
	assert.Error(t, err)
}

func TestWriteOutputToWriter(t *testing.T) {
	var buf bytes.Buffer
	err := writeOutput(&buf, "", []byte("<p>hi</p>\n"))
	assert.NoError(t, err)
	assert.Equal(t, "<p>hi</p>\n", buf.String())
}

func TestWriteOutputToFile(t *testing.T) {
	tmpDir, err := ioutil.TempDir("", "scanmark")
	require.NoError(t, err, "must create temp dir")
	t.Cleanup(func() { os.RemoveAll(tmpDir) })

	outPath := filepath.Join(tmpDir, "out.html")
	require.NoError(t, ioutil.WriteFile(outPath, []byte("stale"), 0644))

	err = writeOutput(nil, outPath, []byte("<p>fresh</p>\n"))
	assert.NoError(t, err)

	b, err := ioutil.ReadFile(outPath)
	require.NoError(t, err, "must read replaced file")
	assert.Equal(t, "<p>fresh</p>\n", string(b))
}
