// Package spa serves a single page application whose router runs in history mode.
//
// In history mode the browser requests route paths such as /app/singer/42
// directly, so the server must answer them with the application's index page.
// The handler serves real asset files where they exist and otherwise answers
// with the index page: 200 when the route table resolves the path and 404
// when it does not, leaving the not found view to the application.
package spa

import (
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"mime"
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/vugu/vgroutes"
)

// DefaultIndex is the index page served for route paths.
const DefaultIndex = "index.html"

// Option configures the handler returned by New.
type Option func(h *handler)

// WithIndex sets the name of the index page inside the asset file system.
func WithIndex(name string) Option {
	return func(h *handler) { h.index = name }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(h *handler) { h.logger = l }
}

type handler struct {
	router *vgroutes.Router
	assets fs.FS
	index  string
	logger *slog.Logger
}

// New returns an http.Handler serving assets below the router's base path.
func New(router *vgroutes.Router, assets fs.FS, opts ...Option) http.Handler {

	h := &handler{
		router: router,
		assets: assets,
		index:  DefaultIndex,
		logger: slog.Default(),
	}
	for _, o := range opts {
		o(h)
	}

	mux := chi.NewRouter()
	mux.Use(middleware.Recoverer)
	mux.Use(middleware.GetHead)

	base := strings.TrimSuffix(path.Clean("/"+router.BasePath()), "/")
	mux.Get(base+"/*", h.serve)
	if base != "" {
		mux.Get(base, h.serve)
	}

	return mux
}

func (h *handler) serve(w http.ResponseWriter, r *http.Request) {

	p, ok := h.router.StripBase(r.URL.EscapedPath())
	if !ok {
		http.NotFound(w, r)
		return
	}

	// p stays escaped for route matching; asset names are looked up decoded
	name, err := url.PathUnescape(strings.TrimPrefix(p, "/"))
	if err == nil && name != "" && h.serveFile(w, r, name, http.StatusOK) {
		return
	}

	status := http.StatusOK
	if h.router.Mode() == vgroutes.ModeHistory {
		if _, err := h.router.Resolve(p, r.URL.Query()); err != nil {
			if !errors.Is(err, vgroutes.ErrNoMatch) {
				h.logger.Warn("route resolve failed", "path", p, "error", err)
			}
			status = http.StatusNotFound
		}
	} else if p != "/" {
		// in hash mode only the page itself is a valid document path
		status = http.StatusNotFound
	}

	if !h.serveFile(w, r, h.index, status) {
		h.logger.Error("index page missing", "index", h.index)
		http.Error(w, "index page missing", http.StatusInternalServerError)
	}
}

// serveFile writes the named asset with status and reports whether it existed.
func (h *handler) serveFile(w http.ResponseWriter, r *http.Request, name string, status int) bool {

	f, err := h.assets.Open(name)
	if err != nil {
		return false
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil || st.IsDir() {
		return false
	}

	if status == http.StatusOK {
		if rs, ok := f.(io.ReadSeeker); ok {
			http.ServeContent(w, r, st.Name(), st.ModTime(), rs)
			return true
		}
	}

	data, err := fs.ReadFile(h.assets, name)
	if err != nil {
		return false
	}
	if ct := mime.TypeByExtension(path.Ext(name)); ct != "" {
		w.Header().Set("Content-Type", ct)
	}
	w.Header().Set("Last-Modified", st.ModTime().UTC().Format(http.TimeFormat))
	w.WriteHeader(status)
	if r.Method != http.MethodHead {
		w.Write(data)
	}
	return true
}
