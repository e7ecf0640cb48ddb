package vgroutes

import (
	"net/url"
	"reflect"
	"testing"
)

func TestMPathParse(t *testing.T) {

	var tlist = []struct {
		in  string
		out mpath
	}{
		{"/", mpath{"/"}},
		{"/:p1", mpath{"/", ":p1"}},
		{"/:p1/", mpath{"/", ":p1"}},
		{"/:p1/test", mpath{"/", ":p1", "/test"}},
		{"/:p1/test/:p2", mpath{"/", ":p1", "/test/", ":p2"}},
		{"/:p1/:p2", mpath{"/", ":p1", "/", ":p2"}},
		{"/a/b", mpath{"/a/b"}},
		{"recommend/:id", mpath{"/recommend/", ":id"}},
		{"/a:b", mpath{"/a:b"}},
	}

	for _, ti := range tlist {
		t.Run(ti.in, func(t *testing.T) {
			mp, err := parseMpath(ti.in)
			if err != nil {
				t.Error(err)
			}
			if !reflect.DeepEqual(ti.out, mp) {
				t.Errorf("expected %#v, got %#v", ti.out, mp)
			}
		})
	}

}

func TestMPathParseError(t *testing.T) {
	for _, in := range []string{"/:", "/a/:/b"} {
		t.Run(in, func(t *testing.T) {
			if _, err := parseMpath(in); err == nil {
				t.Errorf("expected error for %q", in)
			}
		})
	}
}

func TestJoinPath(t *testing.T) {

	var tlist = []struct {
		parent, child, out string
	}{
		{"/", "recommend", "/recommend"},
		{"/", "/recommend", "/recommend"},
		{"/recommend", ":id", "/recommend/:id"},
		{"/recommend", "/singer", "/singer"},
		{"/recommend", "", "/recommend"},
		{"/a/", "b/", "/a/b"},
	}

	for _, ti := range tlist {
		t.Run(ti.out, func(t *testing.T) {
			if got := joinPath(ti.parent, ti.child); got != ti.out {
				t.Errorf("joinPath(%q, %q): expected %q, got %q", ti.parent, ti.child, ti.out, got)
			}
		})
	}

}

func TestMPathMergeMatch(t *testing.T) {

	var tlist = []struct {
		inpath string
		mpath  mpath
		pvals  PathParamList
	}{
		{"/", mpath{"/"}, nil},
		{"/somewhere", mpath{"/", ":id"}, PathParamList{{"id", "somewhere"}}},
		{"/blah/somewhere", mpath{"/blah/", ":id"}, PathParamList{{"id", "somewhere"}}},
		{"/blah/somewhere/something", mpath{"/blah/", ":id", "/", ":id2"}, PathParamList{{"id", "somewhere"}, {"id2", "something"}}},
		{"/singer/a%20b", mpath{"/singer/", ":id"}, PathParamList{{"id", "a b"}}},
	}

	for _, ti := range tlist {
		t.Run(ti.inpath, func(t *testing.T) {
			pv, _, ok := ti.mpath.match(ti.inpath)
			if !ok {
				t.Errorf("got ok false")
			}
			if !reflect.DeepEqual(ti.pvals, pv) {
				t.Errorf("expected params %#v, got %#v", ti.pvals, pv)
			}
			p2, _, err := ti.mpath.merge(pv.Values(nil))
			if err != nil {
				t.Errorf("merge error: %v", err)
			}
			if p2 != ti.inpath {
				t.Errorf("expected p2 %#v, got %#v", ti.inpath, p2)
			}
		})
	}

}

func TestMPathMatchExact(t *testing.T) {

	var tlist = []struct {
		inpath string
		mpath  mpath
		exact  bool
		ok     bool
	}{
		{"/", mpath{"/"}, true, true},
		{"/somewhere", mpath{"/"}, false, true},
		{"/somewhere/here", mpath{"/somewhere"}, false, true},
		{"/somewhere", mpath{"/somewhere"}, true, true},
		{"/somewhere/", mpath{"/somewhere"}, true, true},
		{"/somewhere/1", mpath{"/somewhere/", ":id"}, true, true},
		{"/somewhere/1/2", mpath{"/somewhere/", ":id"}, false, true},
		{"/somewhereelse", mpath{"/somewhere"}, false, false},
		{"/somewhere", mpath{"/somewhere/", ":id"}, false, false},
		{"/other", mpath{"/somewhere"}, false, false},
	}

	for _, ti := range tlist {
		t.Run(ti.inpath, func(t *testing.T) {
			_, exact, ok := ti.mpath.match(ti.inpath)
			if !(ok == ti.ok) {
				t.Errorf("expected ok %#v, got %#v", ti.ok, ok)
			}
			if !(exact == ti.exact) {
				t.Errorf("expected exact %#v, got %#v", ti.exact, exact)
			}
		})
	}

}

func TestMPathMergeMissing(t *testing.T) {

	mp := mpath{"/singer/", ":id"}

	out, other, err := mp.merge(url.Values{"tab": {"songs"}})
	if err != errMissingParam {
		t.Errorf("expected errMissingParam, got %v", err)
	}
	if out != "/singer/_" {
		t.Errorf("expected /singer/_, got %q", out)
	}
	if other.Get("tab") != "songs" {
		t.Errorf("expected tab to be kept, got %#v", other)
	}

}
