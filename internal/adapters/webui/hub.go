package webui

import (
	"sort"
	"sync"

	"cryptoDashboard/internal/ports"
)

// Hub owns every page by name. It implements ports.PageProvider.
type Hub struct {
	logger ports.Logger

	mu    sync.Mutex
	pages map[string]*Page
}

func NewHub(logger ports.Logger) *Hub {
	return &Hub{logger: logger, pages: make(map[string]*Page)}
}

// Page returns the named page, creating it on first use.
func (h *Hub) Page(name string) ports.Page {
	return h.page(name)
}

func (h *Hub) page(name string) *Page {
	h.mu.Lock()
	defer h.mu.Unlock()
	p, ok := h.pages[name]
	if !ok {
		p = newPage(name)
		h.pages[name] = p
	}
	return p
}

// Remove drops the named page and disconnects its subscribers.
func (h *Hub) Remove(name string) {
	h.mu.Lock()
	p, ok := h.pages[name]
	delete(h.pages, name)
	h.mu.Unlock()
	if ok {
		p.closeSubscribers()
	}
}

// Lookup returns an existing page without creating one.
func (h *Hub) Lookup(name string) (*Page, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	p, ok := h.pages[name]
	return p, ok
}

// Names lists the known pages in sorted order.
func (h *Hub) Names() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	names := make([]string, 0, len(h.pages))
	for n := range h.pages {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
