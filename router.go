package vgroutes

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"path"
	"strings"
)

// EventEnv is our view of a Vugu EventEnv
type EventEnv interface {
	Lock()         // acquire write lock
	UnlockOnly()   // release write lock
	UnlockRender() // release write lock and request re-render
}

// Mode selects how the route path is kept in the browser URL.
type Mode string

const (
	// ModeHistory keeps the route path in the URL path, below the base path.
	// The server must answer every route path with the application page.
	ModeHistory Mode = "history"

	// ModeHash keeps the route path in the URL fragment (after "#").
	// Useful for applications served statically without server-side routing.
	ModeHash Mode = "hash"
)

// Validate returns an error if m is not a known mode.
func (m Mode) Validate() error {
	switch m {
	case ModeHistory, ModeHash:
		return nil
	}
	return fmt.Errorf("invalid router mode %q (must be %q or %q)", string(m), ModeHistory, ModeHash)
}

const maxRedirects = 10

var (
	// ErrNoMatch is returned when no route matches a path.
	ErrNoMatch = errors.New("no route matches")

	// ErrRedirectLoop is returned when redirects do not settle on a route.
	ErrRedirectLoop = errors.New("too many redirects")

	// ErrUnknownRoute is returned by PathFor for a name not in the table.
	ErrUnknownRoute = errors.New("unknown route name")
)

// Option configures a Router in CreateRouter.
type Option func(r *Router)

// WithHistory sets where locations are recorded and read.  The default is
// the browser history in a wasm environment and a MemoryHistory otherwise.
func WithHistory(h History) Option {
	return func(r *Router) { r.history = h }
}

// WithEventEnv sets the EventEnv locked around navigation caused by
// history events (e.g. the back button).
func WithEventEnv(env EventEnv) Option {
	return func(r *Router) { r.eventEnv = env }
}

// WithLogger sets the logger.  By default nothing is logged.
func WithLogger(l *slog.Logger) Option {
	return func(r *Router) { r.logger = l }
}

// CreateRouter validates routes and returns a Router for them using mode and basePath.
// An empty mode means ModeHistory.  The Router is not registered anywhere; pass it
// to whatever mounts the application (see Inject).
func CreateRouter(routes []RouteDescriptor, mode Mode, basePath string, opts ...Option) (*Router, error) {

	if mode == "" {
		mode = ModeHistory
	}
	if err := mode.Validate(); err != nil {
		return nil, err
	}

	if err := Validate(routes); err != nil {
		return nil, err
	}

	table := NewTable(routes)
	list, err := compileRouteList(table.routes)
	if err != nil {
		return nil, err
	}

	r := &Router{
		mode:         mode,
		basePath:     basePath,
		base:         cleanBase(basePath),
		table:        table,
		list:         list,
		bindParamMap: make(map[string]BindParam),
	}

	for _, o := range opts {
		o(r)
	}

	if r.logger == nil {
		r.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if r.history == nil {
		r.history = defaultHistory(r.Href("/"))
	}

	r.logger.Debug("router created", "mode", mode, "base", r.basePath, "routes", list.Len())

	return r, nil
}

// MustCreateRouter is like CreateRouter but panics upon error.
func MustCreateRouter(routes []RouteDescriptor, mode Mode, basePath string, opts ...Option) *Router {
	r, err := CreateRouter(routes, mode, basePath, opts...)
	if err != nil {
		panic(err)
	}
	return r
}

// Router handles URL routing.
type Router struct {
	mode     Mode
	basePath string // as given
	base     string // cleaned, no trailing slash, "" for root

	table Table
	list  *RouteList

	history  History
	eventEnv EventEnv
	logger   *slog.Logger

	handlers        []RouteHandler
	notFoundHandler RouteHandler

	current *RouteMatch

	bindRouteMPath mpath // the route (with :param stuff in it) that matches the bind params, so we can reconstruct it
	bindParamMap   map[string]BindParam
}

func cleanBase(b string) string {
	b = path.Clean("/" + b)
	return strings.TrimSuffix(b, "/")
}

// Mode returns the navigation mode.
func (r *Router) Mode() Mode { return r.mode }

// BasePath returns the base path exactly as passed to CreateRouter.
func (r *Router) BasePath() string { return r.basePath }

// Table returns the route table the router was created with.
func (r *Router) Table() Table { return r.table }

// Records returns the compiled routes in match order.
func (r *Router) Records() []*RouteRecord { return r.list.Records() }

// Current returns the last successful match, or nil.
func (r *Router) Current() *RouteMatch { return r.current }

// Href returns the URL for pathAndQuery as it appears in the browser,
// i.e. with the base path and, in hash mode, the "#".
func (r *Router) Href(pathAndQuery string) string {
	if !strings.HasPrefix(pathAndQuery, "/") {
		pathAndQuery = "/" + pathAndQuery
	}
	if r.mode == ModeHash {
		return r.base + "/#" + pathAndQuery
	}
	return r.base + pathAndQuery
}

// StripBase removes the base path from p.  It returns false if p is not below the base path.
func (r *Router) StripBase(p string) (string, bool) {
	p = path.Clean("/" + p)
	switch {
	case r.base == "":
		return p, true
	case p == r.base:
		return "/", true
	case strings.HasPrefix(p, r.base+"/"):
		return p[len(r.base):], true
	}
	return "", false
}

// locationPath extracts the route path and query from a browser URL.
// The path stays escaped so params holding "/" or "%" survive until matching.
func (r *Router) locationPath(u *url.URL) (string, url.Values, error) {
	if r.mode == ModeHash {
		frag := u.EscapedFragment()
		if frag == "" {
			return "/", nil, nil
		}
		fu, err := url.Parse(frag)
		if err != nil {
			return "", nil, fmt.Errorf("parse fragment %q: %w", frag, err)
		}
		return fu.EscapedPath(), fu.Query(), nil
	}
	p, ok := r.StripBase(u.EscapedPath())
	if !ok {
		return "", nil, fmt.Errorf("%w: %s is outside base path %q", ErrNoMatch, u.EscapedPath(), r.basePath)
	}
	return p, u.Query(), nil
}

// Resolve matches path against the table, following redirects, without navigating.
// The path must not include the base path.
func (r *Router) Resolve(p string, query url.Values) (*RouteMatch, error) {

	p = path.Clean("/" + p)
	from := ""

	for hops := 0; ; hops++ {

		rec, pvals := r.list.match(p)
		if rec == nil {
			return nil, fmt.Errorf("%w: %s", ErrNoMatch, p)
		}

		if rec.Redirect == "" {
			return &RouteMatch{
				Path:           p,
				RoutePath:      rec.Path,
				Name:           rec.Name,
				Params:         pvals.Values(query),
				PathParams:     pvals,
				Query:          query,
				Matched:        rec.Chain(),
				RedirectedFrom: from,
				router:         r,
			}, nil
		}

		if hops >= maxRedirects {
			return nil, fmt.Errorf("%w: starting from %s", ErrRedirectLoop, from)
		}

		target, _, err := rec.redirect.merge(pvals.Values(nil))
		if err != nil {
			return nil, fmt.Errorf("redirect %s -> %s: %w", rec.Path, rec.Redirect, err)
		}

		r.logger.Debug("redirect", "from", p, "to", target)

		if from == "" {
			from = p
		}
		p = path.Clean(target)
	}
}

// MustNavigate is like Navigate but panics upon error.
func (r *Router) MustNavigate(path string, query url.Values, opts ...NavigatorOpt) {
	err := r.Navigate(path, query, opts...)
	if err != nil {
		panic(err)
	}
}

// Navigate will go the specified path and query.  The path must not include the base path.
// A path with no matching route is still recorded in the history and the not found
// handler is called; a redirect loop returns an error and changes nothing.
func (r *Router) Navigate(path string, query url.Values, opts ...NavigatorOpt) error {

	rm, err := r.Resolve(path, query)
	if err != nil && !errors.Is(err, ErrNoMatch) {
		return err
	}

	target := path
	if rm != nil {
		target = rm.Path
	}

	pq := target
	if q := query.Encode(); len(q) > 0 {
		pq = pq + "?" + q
	}

	if navOpts(opts).has(NavReplace) {
		err = r.history.Replace(r.Href(pq))
	} else {
		err = r.history.Push(r.Href(pq))
	}
	if err != nil {
		return fmt.Errorf("navigate %s: %w", pq, err)
	}

	if rm == nil {
		r.notFound(target)
		return nil
	}

	r.apply(rm, !navOpts(opts).has(NavSkipRender))

	return nil
}

// Pull will read the current location and navigate to it.  This is generally called
// once at application startup.  If the location redirects, the history entry is replaced
// with the final path.
func (r *Router) Pull() error {

	u, err := r.history.Location()
	if err != nil {
		return err
	}

	p, q, err := r.locationPath(u)
	if err != nil {
		r.notFound(u.EscapedPath())
		return err
	}

	return r.process(p, q)
}

// Listen subscribes to history changes not made by the router, such as the
// browser back button.  Each one locks the EventEnv (if set), routes, and
// requests a re-render.
func (r *Router) Listen() error {
	return r.history.Listen(func(u *url.URL) {
		if r.eventEnv != nil {
			r.eventEnv.Lock()
			defer r.eventEnv.UnlockRender()
		}
		p, q, err := r.locationPath(u)
		if err != nil {
			r.logger.Info("history location ignored", "url", u.String(), "error", err)
			return
		}
		if err := r.process(p, q); err != nil {
			r.logger.Info("history navigation failed", "path", p, "error", err)
		}
	})
}

// Close undoes Listen.
func (r *Router) Close() error {
	return r.history.Unlisten()
}

// process routes path without writing a new history entry, replacing the
// current one if a redirect changed the path.
func (r *Router) process(p string, query url.Values) error {

	rm, err := r.Resolve(p, query)
	if errors.Is(err, ErrNoMatch) {
		r.notFound(p)
		return nil
	}
	if err != nil {
		return err
	}

	if rm.RedirectedFrom != "" {
		pq := rm.Path
		if q := query.Encode(); len(q) > 0 {
			pq = pq + "?" + q
		}
		if err := r.history.Replace(r.Href(pq)); err != nil {
			return err
		}
	}

	r.apply(rm, true)
	return nil
}

// apply makes rm current, resets the param bindings to its route and calls the handlers.
func (r *Router) apply(rm *RouteMatch, handle bool) {

	for k := range r.bindParamMap {
		delete(r.bindParamMap, k)
	}
	r.bindRouteMPath = rm.leaf().mpath
	r.current = rm

	r.logger.Debug("navigate", "path", rm.Path, "route", rm.RoutePath)

	if !handle {
		return
	}
	for _, h := range r.handlers {
		h.RouteHandle(rm)
	}
}

func (r *Router) notFound(p string) {
	r.logger.Info("no route", "path", p)
	for k := range r.bindParamMap {
		delete(r.bindParamMap, k)
	}
	r.bindRouteMPath = nil
	r.current = nil
	if r.notFoundHandler != nil {
		r.notFoundHandler.RouteHandle(&RouteMatch{
			router: r,
			Path:   p,
		})
	}
}

// Push will take any bound parameters and put them into the URL in the appropriate place.
func (r *Router) Push(opts ...NavigatorOpt) error {

	if r.bindRouteMPath == nil {
		return errors.New("no current route to push params to")
	}

	params := make(url.Values, len(r.bindParamMap))
	for k, v := range r.bindParamMap {
		params[k] = v.BindParamRead()
	}

	outPath, outParams, err := r.bindRouteMPath.merge(params)
	if err != nil {
		return err
	}

	q := outParams.Encode()
	pq := outPath
	if len(q) > 0 {
		pq = pq + "?" + q
	}

	if navOpts(opts).has(NavReplace) {
		return r.history.Replace(r.Href(pq))
	}
	return r.history.Push(r.Href(pq))
}

// QueryUpdate implements QueryUpdater by replacing the current history entry with
// the bound parameters.
func (r *Router) QueryUpdate() error {
	return r.Push(NavReplace)
}

// UnbindParams will remove any previous parameter bindings.
// Note that this is called implicitly when navigiation occurs since that involves re-binding newly based on the
// path being navigated to.
func (r *Router) UnbindParams() {
	for k := range r.bindParamMap {
		delete(r.bindParamMap, k)
	}
}

// PathFor builds the path of the route called name.  Params not used
// by the path are appended as a query string.
func (r *Router) PathFor(name string, params url.Values) (string, error) {
	rec := r.list.named(name)
	if rec == nil {
		return "", fmt.Errorf("%w: %q", ErrUnknownRoute, name)
	}
	p, other, err := rec.mpath.merge(params)
	if err != nil {
		return p, fmt.Errorf("route %q: %w", name, err)
	}
	if q := other.Encode(); q != "" {
		p = p + "?" + q
	}
	return p, nil
}

// AddHandler registers rh to be called after every successful navigation.
func (r *Router) AddHandler(rh RouteHandler) {
	r.handlers = append(r.handlers, rh)
}

// SetNotFound assigns the handler for the case of no exact match route.
func (r *Router) SetNotFound(rh RouteHandler) {
	r.notFoundHandler = rh
}

// RouteHandler implementations are called in response to a route matching (being navigated to).
type RouteHandler interface {
	RouteHandle(rm *RouteMatch)
}

// RouteHandlerFunc implements RouteHandler as a function.
type RouteHandlerFunc func(rm *RouteMatch)

// RouteHandle implements the RouteHandler interface.
func (f RouteHandlerFunc) RouteHandle(rm *RouteMatch) { f(rm) }

// RouteMatch describes a resolved navigation.
type RouteMatch struct {
	Path           string         // path navigated to, after redirects, without base path
	RoutePath      string         // route path pattern with params as :param
	Name           string         // route name, if any
	Params         url.Values     // parameters (combined query and route params)
	PathParams     PathParamList  // route params in path order
	Query          url.Values     // query as given
	Matched        []*RouteRecord // matched records, top-level route first
	RedirectedFrom string         // path originally requested if redirects were followed

	router *Router
}

func (r *RouteMatch) leaf() *RouteRecord {
	if len(r.Matched) == 0 {
		return nil
	}
	return r.Matched[len(r.Matched)-1]
}

// View returns the view of the innermost matched route, or nil.
func (r *RouteMatch) View() View {
	if rec := r.leaf(); rec != nil {
		return rec.View
	}
	return nil
}

// Views returns the views of all matched routes, top-level route first,
// one per level of nesting.
func (r *RouteMatch) Views() []View {
	ret := make([]View, len(r.Matched))
	for i, rec := range r.Matched {
		ret[i] = rec.View
	}
	return ret
}

// Bind adds a BindParam to the list of bound parameters.
// Later calls to Bind with the same name will replace the bind
// from earlier calls.  The param is written immediately with the
// matched value, if any.
func (r *RouteMatch) Bind(name string, param BindParam) {
	if v, ok := r.Params[name]; ok {
		param.BindParamWrite(v)
	}
	if r.router == nil {
		return
	}
	if r.router.bindParamMap == nil {
		r.router.bindParamMap = make(map[string]BindParam)
	}
	r.router.bindParamMap[name] = param
}

// BindParam is implemented by something that can be read and written as a URL param.
type BindParam interface {
	BindParamRead() []string
	BindParamWrite(v []string)
}

// StringParam implements BindParam on a string.
type StringParam string

// BindParamRead implements BindParam.
func (s *StringParam) BindParamRead() []string { return []string{string(*s)} }

// BindParamWrite implements BindParam.
func (s *StringParam) BindParamWrite(v []string) {
	if len(v) == 0 {
		*s = ""
		return
	}
	*s = StringParam(v[0])
}
