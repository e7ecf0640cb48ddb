package vgroutes

import (
	"errors"
	"net/url"

	"github.com/vugu/vugu/js"
)

// ErrNotBrowser is returned by the browser history outside of a js environment.
var ErrNotBrowser = errors.New("not in browser (js) environment")

// NewBrowserHistory returns a History backed by window.history and window.location.
// Outside a wasm environment every method returns ErrNotBrowser.
func NewBrowserHistory() History {
	return &browserHistory{}
}

type browserHistory struct {
	popStateFunc js.Func
}

func (h *browserHistory) Push(href string) error {
	g := js.Global()
	if !g.Truthy() {
		return ErrNotBrowser
	}
	g.Get("window").Get("history").Call("pushState", nil, "", href)
	return nil
}

func (h *browserHistory) Replace(href string) error {
	g := js.Global()
	if !g.Truthy() {
		return ErrNotBrowser
	}
	g.Get("window").Get("history").Call("replaceState", nil, "", href)
	return nil
}

func (h *browserHistory) Location() (*url.URL, error) {
	g := js.Global()
	if !g.Truthy() {
		return nil, ErrNotBrowser
	}
	return url.Parse(g.Get("window").Get("location").Call("toString").String())
}

func (h *browserHistory) Listen(fn func(u *url.URL)) error {

	g := js.Global()
	if !g.Truthy() {
		return ErrNotBrowser
	}

	if !h.popStateFunc.IsUndefined() {
		return errors.New("popstate listener already set")
	}

	jf := js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		u, err := h.Location()
		if err == nil {
			fn(u)
		}
		return nil
	})

	g.Get("window").Call("addEventListener", "popstate", jf)

	h.popStateFunc = jf

	return nil
}

func (h *browserHistory) Unlisten() error {

	g := js.Global()
	if !g.Truthy() {
		return ErrNotBrowser
	}

	if h.popStateFunc.IsUndefined() {
		return errors.New("popstate listener not set")
	}

	g.Get("window").Call("removeEventListener", "popstate", h.popStateFunc)

	h.popStateFunc.Release()
	h.popStateFunc = js.Func{}

	return nil
}

// defaultHistory picks the browser history when running in a browser.
func defaultHistory(href string) History {
	if js.Global().Truthy() {
		return NewBrowserHistory()
	}
	return NewMemoryHistory(href)
}
