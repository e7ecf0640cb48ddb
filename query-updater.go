package vgroutes

// QueryUpdater writes the currently bound parameters back into the URL.
type QueryUpdater interface {
	QueryUpdate() error
}

// QueryUpdaterRef can be embedded in a component to have the QueryUpdater injected.
type QueryUpdaterRef struct {
	QueryUpdater // embed QueryUpdater
}

// QueryUpdaterSet implements QueryUpdaterSetter.
func (h *QueryUpdaterRef) QueryUpdaterSet(o QueryUpdater) {
	h.QueryUpdater = o
}

// QueryUpdaterSetter is implemented by components that accept a QueryUpdater.
type QueryUpdaterSetter interface {
	QueryUpdaterSet(QueryUpdater)
}

// Inject hands r to every component that asks for it through
// NavigatorSetter or QueryUpdaterSetter and reports whether any did.
func Inject(r *Router, components ...interface{}) bool {
	injected := false
	for _, c := range components {
		if s, ok := c.(NavigatorSetter); ok {
			s.NavigatorSet(r)
			injected = true
		}
		if s, ok := c.(QueryUpdaterSetter); ok {
			s.QueryUpdaterSet(r)
			injected = true
		}
	}
	return injected
}
