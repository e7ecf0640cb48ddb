package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCheck(t *testing.T, table string) (string, error) {
	t.Helper()
	p := filepath.Join(t.TempDir(), "routes.toml")
	require.NoError(t, os.WriteFile(p, []byte(table), 0644))

	var out bytes.Buffer
	cmd := checkCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{p})
	err := cmd.Execute()
	return out.String(), err
}

func TestCheck(t *testing.T) {

	out, err := runCheck(t, `
[[routes]]
path = "/"
redirect = "/recommend"

[[routes]]
path = "/recommend"
view = "Recommend"

  [[routes.children]]
  path = ":id"
  view = "Disc"
  name = "disc"
`)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "/ "))
	assert.Contains(t, lines[0], "-> /recommend")
	assert.Contains(t, lines[1], "Recommend")
	assert.True(t, strings.HasPrefix(lines[2], "  /recommend/:id"))
	assert.Contains(t, lines[2], "Disc (disc)")

}

func TestCheckInvalid(t *testing.T) {

	_, err := runCheck(t, `
[[routes]]
path = "/user"
view = "A"

[[routes]]
path = "/user"
view = "B"
`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DUPLICATE_PATH")

}

func TestCheckEmpty(t *testing.T) {

	out, err := runCheck(t, "")
	require.NoError(t, err)
	assert.Equal(t, "(no routes)\n", out)

}
