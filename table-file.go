package vgroutes

import (
	"fmt"
	"io"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// ViewResolver maps a view name from a table file to the component for it.
type ViewResolver interface {
	ResolveView(name string) (View, bool)
}

// ViewMap implements ViewResolver with a map.
type ViewMap map[string]View

// ResolveView implements ViewResolver.
func (m ViewMap) ResolveView(name string) (View, bool) {
	v, ok := m[name]
	return v, ok
}

type viewNames struct{}

func (viewNames) ResolveView(name string) (View, bool) { return name, true }

// ViewNames resolves every view name to the name itself.  It is useful for
// checking a table file without the components that render it.
var ViewNames ViewResolver = viewNames{}

// tableFile is the TOML layout of a route table:
//
//	[[routes]]
//	path = "/recommend"
//	view = "Recommend"
//
//	  [[routes.children]]
//	  path = ":id"
//	  view = "Disc"
type tableFile struct {
	Routes []tableRoute `toml:"routes"`
}

type tableRoute struct {
	Path     string       `toml:"path"`
	View     string       `toml:"view"`
	Redirect string       `toml:"redirect"`
	Name     string       `toml:"name"`
	Children []tableRoute `toml:"children"`
}

// LoadTable decodes a TOML route table from r, resolving view names with views.
// The result is not validated; CreateRouter does that.
func LoadTable(r io.Reader, views ViewResolver) ([]RouteDescriptor, error) {
	var tf tableFile
	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&tf); err != nil {
		return nil, fmt.Errorf("parse route table: %w", err)
	}
	return convertTableRoutes("/", tf.Routes, views)
}

// LoadTableFile is like LoadTable but reads the named file.
func LoadTableFile(path string, views ViewResolver) ([]RouteDescriptor, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read route table: %w", err)
	}
	defer f.Close()
	return LoadTable(f, views)
}

func convertTableRoutes(parent string, in []tableRoute, views ViewResolver) ([]RouteDescriptor, error) {
	if len(in) == 0 {
		return nil, nil
	}
	ret := make([]RouteDescriptor, 0, len(in))
	for _, tr := range in {
		full := joinPath(parent, tr.Path)
		rd := RouteDescriptor{
			Path:     tr.Path,
			Redirect: tr.Redirect,
			Name:     tr.Name,
		}
		if tr.View != "" {
			v, ok := views.ResolveView(tr.View)
			if !ok {
				return nil, fmt.Errorf("route %q: unknown view %q", full, tr.View)
			}
			rd.View = v
		}
		children, err := convertTableRoutes(full, tr.Children, views)
		if err != nil {
			return nil, err
		}
		rd.Children = children
		ret = append(ret, rd)
	}
	return ret, nil
}
