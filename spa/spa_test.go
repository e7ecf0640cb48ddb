package spa

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vugu/vgroutes"
)

func testAssets() fstest.MapFS {
	return fstest.MapFS{
		"index.html":   {Data: []byte("<html>app</html>")},
		"main.wasm":    {Data: []byte("wasm")},
		"css/site.css": {Data: []byte("body{}")},
		"css/my a.css": {Data: []byte("a{}")},
	}
}

func testRoutes() []vgroutes.RouteDescriptor {
	return []vgroutes.RouteDescriptor{
		{Path: "/", Redirect: "/recommend"},
		{Path: "/recommend", View: "Recommend", Children: []vgroutes.RouteDescriptor{
			{Path: ":id", View: "Disc"},
		}},
		{Path: "/user", View: "UserCenter"},
	}
}

func get(t *testing.T, h http.Handler, method, target string) (int, string) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	b, err := io.ReadAll(rec.Result().Body)
	require.NoError(t, err)
	return rec.Code, string(b)
}

func TestHistoryFallback(t *testing.T) {

	router := vgroutes.MustCreateRouter(testRoutes(), vgroutes.ModeHistory, "/app")
	h := New(router, testAssets(), WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))

	var tlist = []struct {
		target string
		code   int
		body   string
	}{
		{"/app/main.wasm", http.StatusOK, "wasm"},
		{"/app/css/site.css", http.StatusOK, "body{}"},
		{"/app", http.StatusOK, "<html>app</html>"},
		{"/app/", http.StatusOK, "<html>app</html>"},
		{"/app/recommend", http.StatusOK, "<html>app</html>"},
		{"/app/recommend/42?x=1", http.StatusOK, "<html>app</html>"},
		{"/app/recommend/a%2Fb", http.StatusOK, "<html>app</html>"},
		{"/app/recommend/a%2Fb/c", http.StatusNotFound, "<html>app</html>"},
		{"/app/css/my%20a.css", http.StatusOK, "a{}"},
		{"/app/nothing/here", http.StatusNotFound, "<html>app</html>"},
		{"/app/css", http.StatusNotFound, "<html>app</html>"},
		{"/elsewhere", http.StatusNotFound, ""},
	}

	for _, ti := range tlist {
		t.Run(ti.target, func(t *testing.T) {
			code, body := get(t, h, http.MethodGet, ti.target)
			assert.Equal(t, ti.code, code)
			if ti.body != "" {
				assert.Equal(t, ti.body, body)
			}
		})
	}

	code, body := get(t, h, http.MethodHead, "/app/user")
	assert.Equal(t, http.StatusOK, code)
	assert.Empty(t, body)

}

func TestRootBase(t *testing.T) {

	router := vgroutes.MustCreateRouter(testRoutes(), vgroutes.ModeHistory, "/")
	h := New(router, testAssets())

	code, body := get(t, h, http.MethodGet, "/user")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "<html>app</html>", body)

	code, _ = get(t, h, http.MethodGet, "/main.wasm")
	assert.Equal(t, http.StatusOK, code)

	code, _ = get(t, h, http.MethodGet, "/missing")
	assert.Equal(t, http.StatusNotFound, code)

}

func TestHashModeAndIndex(t *testing.T) {

	assets := fstest.MapFS{"app.html": {Data: []byte("hash app")}}
	router := vgroutes.MustCreateRouter(testRoutes(), vgroutes.ModeHash, "/")
	h := New(router, assets, WithIndex("app.html"))

	code, body := get(t, h, http.MethodGet, "/")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "hash app", body)

	// route paths live in the fragment, so the server never sees them
	code, _ = get(t, h, http.MethodGet, "/user")
	assert.Equal(t, http.StatusNotFound, code)

	noIndex := New(router, fstest.MapFS{})
	code, _ = get(t, noIndex, http.MethodGet, "/")
	assert.Equal(t, http.StatusInternalServerError, code)

}
