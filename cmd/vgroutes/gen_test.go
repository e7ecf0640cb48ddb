package main

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGen(t *testing.T) {

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.vugu"), []byte("<div></div>"), 0644))

	cmd := genCmd()
	cmd.SetArgs([]string{"-q", "-p", "example.com/app", dir})
	require.NoError(t, cmd.Execute())

	b, err := os.ReadFile(filepath.Join(dir, "0_routes_vgen.go"))
	require.NoError(t, err)
	assert.Contains(t, string(b), "return &Index{}")

	cmd = genCmd()
	cmd.SetArgs([]string{"-p", "example.com/app", dir, dir})
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	assert.Error(t, cmd.Execute())

}
