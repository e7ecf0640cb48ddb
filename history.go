package vgroutes

import (
	"errors"
	"net/url"
)

// History is where the router records and reads locations.  Hrefs passed
// to Push and Replace already include the base path (and "#" in hash mode).
type History interface {
	Push(href string) error
	Replace(href string) error

	// Location returns the current URL.
	Location() (*url.URL, error)

	// Listen registers fn to be called when the location changes
	// outside of Push and Replace, e.g. the back button.
	Listen(fn func(u *url.URL)) error

	// Unlisten removes the listener set with Listen.
	Unlisten() error
}

// NewMemoryHistory returns a History kept in memory, starting at href.
// It is used outside the browser and in tests.
func NewMemoryHistory(href string) *MemoryHistory {
	if href == "" {
		href = "/"
	}
	return &MemoryHistory{entries: []string{href}}
}

// MemoryHistory implements History as an in-memory stack.
type MemoryHistory struct {
	entries []string
	idx     int
	fn      func(u *url.URL)
}

// Push implements History.  Entries after the current one are discarded.
func (h *MemoryHistory) Push(href string) error {
	h.entries = append(h.entries[:h.idx+1], href)
	h.idx++
	return nil
}

// Replace implements History.
func (h *MemoryHistory) Replace(href string) error {
	h.entries[h.idx] = href
	return nil
}

// Location implements History.
func (h *MemoryHistory) Location() (*url.URL, error) {
	return url.Parse(h.entries[h.idx])
}

// Listen implements History.
func (h *MemoryHistory) Listen(fn func(u *url.URL)) error {
	if h.fn != nil {
		return errors.New("history listener already set")
	}
	h.fn = fn
	return nil
}

// Unlisten implements History.
func (h *MemoryHistory) Unlisten() error {
	if h.fn == nil {
		return errors.New("history listener not set")
	}
	h.fn = nil
	return nil
}

// Entries returns a copy of the history stack.
func (h *MemoryHistory) Entries() []string {
	return append([]string(nil), h.entries...)
}

// Back moves one entry back, like the browser back button.
func (h *MemoryHistory) Back() bool { return h.Go(-1) }

// Forward moves one entry forward.
func (h *MemoryHistory) Forward() bool { return h.Go(1) }

// Go moves n entries and notifies the listener.  It returns false
// and does nothing if the move would leave the stack.
func (h *MemoryHistory) Go(n int) bool {
	i := h.idx + n
	if n == 0 || i < 0 || i >= len(h.entries) {
		return false
	}
	h.idx = i
	if h.fn != nil {
		if u, err := url.Parse(h.entries[i]); err == nil {
			h.fn(u)
		}
	}
	return true
}
