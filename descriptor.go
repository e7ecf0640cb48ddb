package vgroutes

import (
	"reflect"
	"strings"
)

// View is a reference to the component that renders a route.
// The router stores it and hands it back in a RouteMatch but never inspects it.
type View interface{}

// RouteDescriptor maps a path pattern to a view or a redirect, with optional
// nested children.
type RouteDescriptor struct {
	// Path is the pattern to match, e.g. "/singer" or ":id".  Segments
	// starting with ":" capture a parameter.  A child path not starting
	// with "/" is relative to its parent.
	Path string

	// View is the component bound to this route.
	View View

	// Redirect, if set, is the path navigated to instead of rendering.
	// It may reference the current route's parameters, e.g. "/singer/:id".
	Redirect string

	// Name optionally identifies the route for Router.PathFor.
	Name string

	// Children are matched relative to this route's path.
	Children []RouteDescriptor
}

// BuildRoutes returns the application's route table.
// No routes are currently declared.
func BuildRoutes() []RouteDescriptor {
	return []RouteDescriptor{}
}

// Section returns a parent route at p.  If index is nil the route redirects
// to its first child without parameters, which lets a directory of pages be
// reachable at its own path.  With no such child the route has neither view
// nor redirect and fails validation.
func Section(p string, index View, children []RouteDescriptor) RouteDescriptor {
	ret := RouteDescriptor{
		Path:     p,
		View:     index,
		Children: children,
	}
	if index != nil {
		return ret
	}
	for _, child := range children {
		mp, err := parseMpath(joinPath("/", child.Path))
		if err != nil || len(mp.paramNames()) > 0 {
			continue
		}
		ret.Redirect = joinPath(p, child.Path)
		if !strings.HasPrefix(p, "/") && !strings.HasPrefix(child.Path, "/") {
			// relative, like p itself, so it resolves against the section's parent
			ret.Redirect = strings.TrimPrefix(ret.Redirect, "/")
		}
		break
	}
	return ret
}

// Table is an immutable route tree.  Use NewTable to create one.
type Table struct {
	routes []RouteDescriptor
}

// NewTable returns a Table owning a deep copy of routes.
func NewTable(routes []RouteDescriptor) Table {
	return Table{routes: cloneRoutes(routes)}
}

// Routes returns a copy of the route tree.  Changes to it do not affect the Table.
func (t Table) Routes() []RouteDescriptor {
	return cloneRoutes(t.routes)
}

// Len returns the number of top-level routes.
func (t Table) Len() int { return len(t.routes) }

// Equal reports whether both tables hold the same routes in the same order.
// Views of comparable types are compared with ==, func views by code pointer
// (so two different closures of the same function are equal) and anything
// else with reflect.DeepEqual.
func (t Table) Equal(o Table) bool {
	return routesEqual(t.routes, o.routes)
}

func routesEqual(a, b []RouteDescriptor) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Path != b[i].Path || a[i].Redirect != b[i].Redirect || a[i].Name != b[i].Name {
			return false
		}
		if !viewsEqual(a[i].View, b[i].View) || !routesEqual(a[i].Children, b[i].Children) {
			return false
		}
	}
	return true
}

func viewsEqual(a, b View) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() {
		return false
	}
	switch {
	case va.Kind() == reflect.Func:
		return va.Pointer() == vb.Pointer()
	case va.Comparable():
		return a == b
	}
	return reflect.DeepEqual(a, b)
}

// Walk calls fn for every route, parents before children, passing the
// composed full path and the nesting depth (0 for top-level routes).
// Returning false from fn skips that route's children.
func (t Table) Walk(fn func(fullPath string, rd RouteDescriptor, depth int) bool) {
	walkRoutes("/", t.routes, 0, fn)
}

func walkRoutes(parent string, routes []RouteDescriptor, depth int, fn func(string, RouteDescriptor, int) bool) {
	for _, rd := range routes {
		full := joinPath(parent, rd.Path)
		if !fn(full, rd, depth) {
			continue
		}
		walkRoutes(full, rd.Children, depth+1, fn)
	}
}

func cloneRoutes(routes []RouteDescriptor) []RouteDescriptor {
	if routes == nil {
		return nil
	}
	ret := make([]RouteDescriptor, len(routes))
	for i, rd := range routes {
		ret[i] = rd
		ret[i].Children = cloneRoutes(rd.Children)
	}
	return ret
}
