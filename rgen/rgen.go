package rgen

import (
	"bytes"
	"crypto/md5"
	"errors"
	"fmt"
	"go/format"
	"io"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"text/template"
	"unicode"
)

// New returns a new Generator instance.
func New() *Generator {
	return &Generator{}
}

// Generator performs route generation on a given directory (and optionally sub-directories)
type Generator struct {
	dir         string                           // starting directory
	recursive   bool                             // if true we will descend into directories
	packageName string                           // fully qualified package name corresponding to dir
	pathFunc    func(fileName string) string     // function derive path from file or struct name
	includeFunc func(path, fileName string) bool // function to determine if a file should be included
}

// SetDir assigns the directory to start generating in.
func (g *Generator) SetDir(dir string) *Generator {
	g.dir = dir
	return g
}

// SetRecursive if passed true will enable the generator recursing
// into sub-directories.
func (g *Generator) SetRecursive(recursive bool) *Generator {
	g.recursive = recursive
	return g
}

// SetPackageName sets the fully qualified package name that corresponds
// with the directory set with SetDir.
func (g *Generator) SetPackageName(packageName string) *Generator {
	g.packageName = packageName
	return g
}

// SetPathFunc sets a function which transforms.
// If not set, DefaultPathFunc will be used.
func (g *Generator) SetPathFunc(f func(fileName string) string) *Generator {
	g.pathFunc = f
	return g
}

// SetIncludeFunc sets the function which determines which files are included in the route map.
// The include function will be passed the path relative to the dir set by SetDir (and will be empty
// for files in that directory) and fileName will contain the base file name.  E.g. given SetDir("/a")
// "/a/b.vugu" will result in a call with ("", "b.vugu"), and "/a/b/c.vugu" will result in a call
// with ("b", "c.vugu"), "/a/b/c/d.vugu" with ("b/c", "d.vugu") and so on.
func (g *Generator) SetIncludeFunc(f func(path, fileName string) bool) *Generator {
	g.includeFunc = f
	return g
}

// DefaultPathFunc will return the fileName with any suffix removed and a slash prepended.
// E.g. file name "example.vugu" will return "/example".  The special case of index.vugu
// will return "/".  Generated paths are relative to the directory, so the leading slash
// is dropped.
func DefaultPathFunc(fileName string) string {
	if fileName == "index.vugu" {
		return "/"
	}
	return "/" + strings.TrimSuffix(fileName, path.Ext(fileName))
}

// DefaultIncludeFunc will return true for any file which ends with .vugu.
func DefaultIncludeFunc(path, fileName string) bool {
	return strings.HasSuffix(fileName, ".vugu")
}

// Generate does the route generation.
func (g *Generator) Generate() error {

	// to keep our sanity we need to guarantee that g.dir is absolute
	dir, err := filepath.Abs(g.dir)
	if err != nil {
		return err
	}
	g.dir = dir

	// auto-detect g.packageName as needed
	if g.packageName == "" {
		g.packageName, err = guessImportPath(dir)
		if err != nil {
			return err
		}
	}

	df, err := g.readDirf(g.dir)
	if err != nil {
		return err
	}
	df.prune()

	return g.writeRoutes(df)
}

func (g *Generator) readDirf(dirPath string) (*dirf, error) {

	includeFunc := g.includeFunc
	if includeFunc == nil {
		includeFunc = DefaultIncludeFunc
	}

	f, err := os.Open(dirPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	fis, err := f.Readdir(-1)
	if err != nil {
		return nil, err
	}

	rel, err := filepath.Rel(g.dir, dirPath)
	if err != nil {
		return nil, fmt.Errorf("relative path conversion failed: %w", err)
	}
	rel = strings.TrimPrefix(path.Clean("/"+filepath.ToSlash(rel)), "/")

	ret := &dirf{
		path: rel,
	}

	for _, fi := range fis {

		if fi.IsDir() {
			if !g.recursive || strings.HasPrefix(fi.Name(), ".") {
				continue
			}
			subdirf, err := g.readDirf(filepath.Join(dirPath, fi.Name()))
			if err != nil {
				return nil, err
			}
			if ret.subdirs == nil {
				ret.subdirs = make(map[string]*dirf)
			}
			ret.subdirs[fi.Name()] = subdirf
			continue
		}

		if includeFunc(rel, fi.Name()) {
			ret.fileNames = append(ret.fileNames, fi.Name())
		}
	}

	return ret, nil

}

type dirf struct {
	path      string           // path relative to g.dir
	fileNames []string         // list of included files
	subdirs   map[string]*dirf // children
}

func (df *dirf) Path() string { return df.path }

// prune removes subdirectories with nothing to route and reports whether df is empty.
func (df *dirf) prune() bool {
	for name, sub := range df.subdirs {
		if sub.prune() {
			delete(df.subdirs, name)
		}
	}
	return len(df.fileNames) == 0 && len(df.subdirs) == 0
}

func (g *Generator) writeRoutes(df *dirf) error {

	_, localPackage := path.Split(df.path)
	if localPackage == "" {
		_, localPackage = filepath.Split(g.dir)
	}

	pf := g.pathFunc
	if pf == nil {
		pf = DefaultPathFunc
	}

	var index string
	pages := make([]string, 0, len(df.fileNames))
	for _, fn := range df.fileNames {
		if fn == indexFileName {
			index = fn
			continue
		}
		pages = append(pages, fn)
	}
	sort.Strings(pages)

	var subdirs []*dirf
	if g.recursive {
		for _, sub := range df.subdirs {
			subdirs = append(subdirs, sub)
		}
		sort.Slice(subdirs, func(i, j int) bool { return subdirs[i].path < subdirs[j].path })
	}

	cm := map[string]interface{}{
		"LocalPackage": sanitizePackageName(localPackage),
		"PackageName":  g.packageName,
		"Index":        index,
		"Pages":        pages,
		"Subdirs":      subdirs,
	}

	fm := template.FuncMap{
		"PathName": func(s string) string {
			return strings.TrimPrefix(pf(s), "/")
		},
		"StructName": func(s string) string {
			return structName(s)
		},
		"HashIdent": func(s string) string {
			return fmt.Sprintf("ident%x", md5.Sum([]byte(s)))
		},
		"PathBase": path.Base,
	}

	t := template.New(generatedFileName)
	t.Funcs(fm)
	t, err := t.Parse(routesTemplate)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	err = t.Execute(&buf, cm)
	if err != nil {
		return err
	}

	fullRouteMapPath := filepath.Join(g.dir, df.path, generatedFileName)

	src, err := format.Source(buf.Bytes())
	if err != nil {
		return fmt.Errorf("error formatting %q: %w; full output:\n%s", fullRouteMapPath, err, buf.Bytes())
	}

	err = os.WriteFile(fullRouteMapPath, src, 0644)
	if err != nil {
		return err
	}

	if g.recursive {
		// recurse into subdirs
		for _, subdf := range subdirs {
			err := g.writeRoutes(subdf)
			if err != nil {
				return fmt.Errorf("error in writeRoutes for %q: %w", subdf.path, err)
			}
		}
	}

	return nil
}

const (
	generatedFileName = "0_routes_vgen.go"
	indexFileName     = "index.vugu"
)

const routesTemplate = `package {{.LocalPackage}}

// WARNING: This file was generated by vgroutes/rgen. Do not modify.

import (
	"github.com/vugu/vgroutes"
{{range .Subdirs}}	{{HashIdent (printf "%s/%s" $.PackageName .Path)}} "{{$.PackageName}}/{{.Path}}"
{{end}})

// VGRouteIndex returns the component rendered at this package's own path, or nil.
func VGRouteIndex() vgroutes.View {
{{if .Index}}	return &{{StructName .Index}}{}
{{else}}	return nil
{{end}}}

// VGRouteChildren returns the routes of this package relative to its path.
func VGRouteChildren() []vgroutes.RouteDescriptor {
	return []vgroutes.RouteDescriptor{
{{range .Pages}}		{Path: "{{PathName .}}", View: &{{StructName .}}{}},
{{end}}{{range .Subdirs}}		vgroutes.Section("{{PathBase .Path}}", {{HashIdent (printf "%s/%s" $.PackageName .Path)}}.VGRouteIndex(), {{HashIdent (printf "%s/%s" $.PackageName .Path)}}.VGRouteChildren()),
{{end}}	}
}

// MakeRoutes returns the route table rooted at this package.
func MakeRoutes() []vgroutes.RouteDescriptor {
	return []vgroutes.RouteDescriptor{
		vgroutes.Section("/", VGRouteIndex(), VGRouteChildren()),
	}
}
`

func sanitizePackageName(s string) string {
	s = strings.Map(func(r rune) rune {
		if r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return -1
	}, s)
	if s == "" || unicode.IsDigit(rune(s[0])) {
		s = "routes" + s
	}
	return s
}

func structName(s string) string {

	// // trim file extension
	// s = strings.TrimSuffix(s, path.Ext(s))

	// // if any upper case letters we use the file name as-is
	// for _, c := range s {
	// 	if unicode.IsUpper(c) {
	// 		return s
	// 	}
	// }

	// otherwise we transform it the same way vugu does
	return fnameToGoTypeName(s)

}

func fnameToGoTypeName(s string) string {
	s = strings.Split(s, ".")[0] // remove file extension if present
	parts := strings.Split(s, "-")
	for i := range parts {
		p := parts[i]
		if len(p) > 0 {
			p = strings.ToUpper(p[:1]) + p[1:]
		}
		parts[i] = p
	}
	return strings.Join(parts, "")
}

func guessImportPath(dir string) (string, error) {

	after := ""
	lastDir := dir

	for {
		f, err := os.Open(filepath.Join(dir, "go.mod"))
		if err == nil {
			defer f.Close()
			ret, err := readModuleEntry(f)
			return ret + after, err
		}

		after = "/" + filepath.Base(dir) + after

		dir, err = filepath.Abs(filepath.Join(dir, ".."))
		if err != nil {
			return "", err
		}

		if dir == lastDir { // we hit the root dir
			return "", fmt.Errorf("no go.mod file found, cannot guess import path")
		}
	}

}

func readModuleEntry(r io.Reader) (string, error) {

	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}

	ret := modulePath(b)
	if ret == "" {
		return "", errors.New("unable to determine module path from go.mod")
	}

	return ret, nil
}

// shamelessly stolen from: https://github.com/golang/vgo/blob/master/vendor/cmd/go/internal/modfile/read.go#L837
// ModulePath returns the module path from the gomod file text.
// If it cannot find a module path, it returns an empty string.
// It is tolerant of unrelated problems in the go.mod file.
func modulePath(mod []byte) string {
	for len(mod) > 0 {
		line := mod
		mod = nil
		if i := bytes.IndexByte(line, '\n'); i >= 0 {
			line, mod = line[:i], line[i+1:]
		}
		if i := bytes.Index(line, slashSlash); i >= 0 {
			line = line[:i]
		}
		line = bytes.TrimSpace(line)
		if !bytes.HasPrefix(line, moduleStr) {
			continue
		}
		line = line[len(moduleStr):]
		n := len(line)
		line = bytes.TrimSpace(line)
		if len(line) == n || len(line) == 0 {
			continue
		}

		if line[0] == '"' || line[0] == '`' {
			p, err := strconv.Unquote(string(line))
			if err != nil {
				return "" // malformed quoted string or multiline module path
			}
			return p
		}

		return string(line)
	}
	return "" // missing module path
}

var (
	slashSlash = []byte("//")
	moduleStr  = []byte("module")
)
