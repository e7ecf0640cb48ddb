package vgroutes

import "fmt"

// RouteRecord is a compiled route: a descriptor with its composed full path.
type RouteRecord struct {
	Path     string // full path pattern with params as :param
	Name     string
	View     View
	Redirect string       // full redirect pattern, empty if none
	Parent   *RouteRecord // nil for top-level routes

	mpath    mpath
	redirect mpath
}

// Chain returns the record and its ancestors ordered from the top-level route down.
func (rr *RouteRecord) Chain() []*RouteRecord {
	var n int
	for p := rr; p != nil; p = p.Parent {
		n++
	}
	ret := make([]*RouteRecord, n)
	for p := rr; p != nil; p = p.Parent {
		n--
		ret[n] = p
	}
	return ret
}

// RouteList is the flattened, matchable form of a route tree.
// Children are listed before their parent so that the most specific
// route sharing a prefix is tried first.
type RouteList struct {
	records []*RouteRecord
	byName  map[string]*RouteRecord
}

func compileRouteList(routes []RouteDescriptor) (*RouteList, error) {
	rl := &RouteList{byName: make(map[string]*RouteRecord)}
	for _, rd := range routes {
		if err := rl.add(nil, rd); err != nil {
			return nil, err
		}
	}
	return rl, nil
}

func (rl *RouteList) add(parent *RouteRecord, rd RouteDescriptor) error {

	parentPath := "/"
	if parent != nil {
		parentPath = parent.Path
	}

	full := joinPath(parentPath, rd.Path)
	mp, err := parseMpath(full)
	if err != nil {
		return fmt.Errorf("route %q: %w", full, err)
	}

	rec := &RouteRecord{
		Path:   full,
		Name:   rd.Name,
		View:   rd.View,
		Parent: parent,
		mpath:  mp,
	}

	if rd.Redirect != "" {
		// relative redirects resolve against the parent, like relative child paths
		rec.Redirect = joinPath(parentPath, rd.Redirect)
		rec.redirect, err = parseMpath(rec.Redirect)
		if err != nil {
			return fmt.Errorf("route %q redirect: %w", full, err)
		}
	}

	for _, child := range rd.Children {
		if err := rl.add(rec, child); err != nil {
			return err
		}
	}

	rl.records = append(rl.records, rec)
	if rec.Name != "" {
		rl.byName[rec.Name] = rec
	}

	return nil
}

// Records returns the compiled records in match order.
func (rl *RouteList) Records() []*RouteRecord {
	return append([]*RouteRecord(nil), rl.records...)
}

// Len returns the number of compiled records.
func (rl *RouteList) Len() int { return len(rl.records) }

// match returns the first record matching p exactly.
func (rl *RouteList) match(p string) (*RouteRecord, PathParamList) {
	for _, rec := range rl.records {
		pvals, exact, ok := rec.mpath.match(p)
		if ok && exact {
			return rec, pvals
		}
	}
	return nil, nil
}

func (rl *RouteList) named(name string) *RouteRecord {
	return rl.byName[name]
}
