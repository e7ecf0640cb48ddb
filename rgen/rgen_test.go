package rgen

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFull(t *testing.T) {

	tmpDir := filepath.Join(t.TempDir(), "music")
	must(os.MkdirAll(tmpDir, 0755))

	must(os.WriteFile(filepath.Join(tmpDir, "go.mod"), []byte(`module rgentestfull

require github.com/vugu/vgroutes master
`), 0644))
	must(os.WriteFile(filepath.Join(tmpDir, "user.vugu"), []byte("<div></div>"), 0644))
	must(os.WriteFile(filepath.Join(tmpDir, "page1.vugu"), []byte("<div></div>"), 0644))
	must(os.MkdirAll(filepath.Join(tmpDir, "singer"), 0755))
	must(os.WriteFile(filepath.Join(tmpDir, "singer", "index.vugu"), []byte("<div></div>"), 0644))
	must(os.WriteFile(filepath.Join(tmpDir, "singer", "singer-detail.vugu"), []byte("<div></div>"), 0644))
	must(os.MkdirAll(filepath.Join(tmpDir, "empty"), 0755))
	must(os.WriteFile(filepath.Join(tmpDir, "empty", "notes.txt"), []byte("nothing"), 0644))

	err := New().SetDir(tmpDir).SetRecursive(true).Generate()
	require.NoError(t, err)

	root, err := os.ReadFile(filepath.Join(tmpDir, generatedFileName))
	require.NoError(t, err)
	src := string(root)
	t.Logf("OUTPUT:\n%s", src)

	assert.True(t, strings.HasPrefix(src, "package music\n"))
	assert.Contains(t, src, `"github.com/vugu/vgroutes"`)
	assert.Contains(t, src, `"rgentestfull/singer"`)
	assert.NotContains(t, src, `"rgentestfull/empty"`)
	assert.Contains(t, src, `{Path: "page1", View: &Page1{}}`)
	assert.Contains(t, src, `{Path: "user", View: &User{}}`)
	assert.Contains(t, src, `vgroutes.Section("singer", `)
	assert.Contains(t, src, "return nil") // no index.vugu at the root
	assert.Less(t, strings.Index(src, `"page1"`), strings.Index(src, `"user"`))

	sub, err := os.ReadFile(filepath.Join(tmpDir, "singer", generatedFileName))
	require.NoError(t, err)
	src = string(sub)

	assert.True(t, strings.HasPrefix(src, "package singer\n"))
	assert.Contains(t, src, "return &Index{}")
	assert.Contains(t, src, `{Path: "singer-detail", View: &SingerDetail{}}`)
	assert.NotContains(t, src, `Path: ""`)

	_, err = os.Stat(filepath.Join(tmpDir, "empty", generatedFileName))
	assert.True(t, os.IsNotExist(err))

}

func TestNonRecursive(t *testing.T) {

	tmpDir := t.TempDir()
	must(os.WriteFile(filepath.Join(tmpDir, "index.vugu"), []byte("<div></div>"), 0644))
	must(os.MkdirAll(filepath.Join(tmpDir, "rank"), 0755))
	must(os.WriteFile(filepath.Join(tmpDir, "rank", "top-list.vugu"), []byte("<div></div>"), 0644))

	err := New().SetDir(tmpDir).SetPackageName("example.com/app").Generate()
	require.NoError(t, err)

	b, err := os.ReadFile(filepath.Join(tmpDir, generatedFileName))
	require.NoError(t, err)
	assert.NotContains(t, string(b), "example.com/app/rank")
	assert.Contains(t, string(b), "return &Index{}")

	_, err = os.Stat(filepath.Join(tmpDir, "rank", generatedFileName))
	assert.True(t, os.IsNotExist(err))

}

func TestPathFunc(t *testing.T) {

	tmpDir := t.TempDir()
	must(os.WriteFile(filepath.Join(tmpDir, "search.vugu"), []byte("<div></div>"), 0644))

	err := New().
		SetDir(tmpDir).
		SetPackageName("example.com/app").
		SetPathFunc(func(fileName string) string { return "/find" }).
		Generate()
	require.NoError(t, err)

	b, err := os.ReadFile(filepath.Join(tmpDir, generatedFileName))
	require.NoError(t, err)
	assert.Contains(t, string(b), `{Path: "find", View: &Search{}}`)

}

func TestModulePath(t *testing.T) {

	var tlist = []struct {
		in  string
		out string
	}{
		{"module example.com/a\n", "example.com/a"},
		{"// comment\nmodule   example.com/b // trailing\n\ngo 1.22\n", "example.com/b"},
		{"module \"example.com/c\"\n", "example.com/c"},
		{"go 1.22\n", ""},
	}

	for _, ti := range tlist {
		t.Run(ti.out, func(t *testing.T) {
			assert.Equal(t, ti.out, modulePath([]byte(ti.in)))
		})
	}

}

func TestStructName(t *testing.T) {
	assert.Equal(t, "SingerDetail", structName("singer-detail.vugu"))
	assert.Equal(t, "Index", structName("index.vugu"))
	assert.Equal(t, "TopList", structName("top-list"))
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
