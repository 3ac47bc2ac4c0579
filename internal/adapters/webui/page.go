// Package webui keeps the server-side state of each dashboard page and streams
// element patches to connected browsers.
package webui

import (
	"sort"
	"sync"

	"cryptoDashboard/internal/echarts"
	"cryptoDashboard/internal/ports"
)

// Patch operations understood by the browser.
const (
	OpClear  = "clear"
	OpOption = "option"
	OpText   = "text"
	OpColor  = "color"
	OpLedger = "ledger"
	OpActive = "active"
)

// Patch is one element update. Element is an element id, or the button class
// for OpActive.
type Patch struct {
	Element   string            `json:"element"`
	Op        string            `json:"op"`
	Option    *echarts.Option   `json:"option,omitempty"`
	Text      string            `json:"text,omitempty"`
	Color     string            `json:"color,omitempty"`
	Rows      []ports.LedgerRow `json:"rows,omitempty"`
	Timeframe string            `json:"tf,omitempty"`
	Active    bool              `json:"active,omitempty"`
}

type labelState struct {
	text, color string
}

type selectorState struct {
	timeframes []string
	active     map[string]bool
}

// Page is the live model of one browser page. It implements ports.Page.
type Page struct {
	name string

	mu        sync.Mutex
	charts    map[string]*echarts.Option
	labels    map[string]*labelState
	ledgers   map[string][]ports.LedgerRow
	selectors map[string]*selectorState
	subs      map[chan Patch]struct{}
}

func newPage(name string) *Page {
	return &Page{
		name:      name,
		charts:    make(map[string]*echarts.Option),
		labels:    make(map[string]*labelState),
		ledgers:   make(map[string][]ports.LedgerRow),
		selectors: make(map[string]*selectorState),
		subs:      make(map[chan Patch]struct{}),
	}
}

// Name returns the page name the hub knows it by.
func (p *Page) Name() string { return p.name }

func (p *Page) Chart(id string) ports.Chart {
	return &chartElement{page: p, id: id}
}

func (p *Page) Label(id string) ports.Label {
	return &labelElement{page: p, id: id}
}

func (p *Page) Ledger(id string) ports.Ledger {
	return &ledgerElement{page: p, id: id}
}

// Selector registers the button group on first use; later calls reuse it.
func (p *Page) Selector(class string, timeframes []string) ports.TimeframeSelector {
	p.mu.Lock()
	if _, ok := p.selectors[class]; !ok {
		tfs := make([]string, len(timeframes))
		copy(tfs, timeframes)
		p.selectors[class] = &selectorState{timeframes: tfs, active: make(map[string]bool)}
	}
	p.mu.Unlock()
	return &selectorElement{page: p, class: class}
}

// Subscribe returns the patches that rebuild the current page followed by a
// channel of live patches. A subscriber that falls buffer patches behind is
// dropped and its channel closed; cancel releases it early.
func (p *Page) Subscribe(buffer int) (snapshot []Patch, patches <-chan Patch, cancel func()) {
	if buffer < 1 {
		buffer = 1
	}
	ch := make(chan Patch, buffer)

	p.mu.Lock()
	snapshot = p.snapshotLocked()
	p.subs[ch] = struct{}{}
	p.mu.Unlock()

	var once sync.Once
	cancel = func() {
		once.Do(func() {
			p.mu.Lock()
			defer p.mu.Unlock()
			if _, ok := p.subs[ch]; ok {
				delete(p.subs, ch)
				close(ch)
			}
		})
	}
	return snapshot, ch, cancel
}

func (p *Page) closeSubscribers() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for ch := range p.subs {
		delete(p.subs, ch)
		close(ch)
	}
}

// Snapshot returns the patches that rebuild the current page.
func (p *Page) Snapshot() []Patch {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snapshotLocked()
}

// Subscribers returns the number of live subscribers.
func (p *Page) Subscribers() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.subs)
}

func (p *Page) snapshotLocked() []Patch {
	var out []Patch
	for _, id := range sortedKeys(p.charts) {
		if opt := p.charts[id]; opt != nil {
			o := *opt
			out = append(out, Patch{Element: id, Op: OpOption, Option: &o})
		} else {
			out = append(out, Patch{Element: id, Op: OpClear})
		}
	}
	for _, id := range sortedKeys(p.labels) {
		l := p.labels[id]
		out = append(out, Patch{Element: id, Op: OpText, Text: l.text})
		if l.color != "" {
			out = append(out, Patch{Element: id, Op: OpColor, Color: l.color})
		}
	}
	for _, id := range sortedKeys(p.ledgers) {
		out = append(out, Patch{Element: id, Op: OpLedger, Rows: p.ledgers[id]})
	}
	for _, class := range sortedKeys(p.selectors) {
		s := p.selectors[class]
		for _, tf := range s.timeframes {
			out = append(out, Patch{Element: class, Op: OpActive, Timeframe: tf, Active: s.active[tf]})
		}
	}
	return out
}

// apply records patch in the page state and fans it out. Callers hold no lock.
func (p *Page) apply(patch Patch, update func()) {
	p.mu.Lock()
	defer p.mu.Unlock()
	update()
	for ch := range p.subs {
		select {
		case ch <- patch:
		default:
			delete(p.subs, ch)
			close(ch)
		}
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

type chartElement struct {
	page *Page
	id   string
}

func (c *chartElement) Clear() {
	c.page.apply(Patch{Element: c.id, Op: OpClear}, func() {
		c.page.charts[c.id] = nil
	})
}

func (c *chartElement) SetOption(opt echarts.Option) {
	o := opt
	c.page.apply(Patch{Element: c.id, Op: OpOption, Option: &o}, func() {
		c.page.charts[c.id] = &o
	})
}

type labelElement struct {
	page *Page
	id   string
}

func (l *labelElement) state() *labelState {
	s, ok := l.page.labels[l.id]
	if !ok {
		s = &labelState{}
		l.page.labels[l.id] = s
	}
	return s
}

func (l *labelElement) SetText(text string) {
	l.page.apply(Patch{Element: l.id, Op: OpText, Text: text}, func() {
		l.state().text = text
	})
}

func (l *labelElement) SetColor(color string) {
	l.page.apply(Patch{Element: l.id, Op: OpColor, Color: color}, func() {
		l.state().color = color
	})
}

type ledgerElement struct {
	page *Page
	id   string
}

func (l *ledgerElement) Render(rows []ports.LedgerRow) {
	cp := make([]ports.LedgerRow, len(rows))
	copy(cp, rows)
	l.page.apply(Patch{Element: l.id, Op: OpLedger, Rows: cp}, func() {
		l.page.ledgers[l.id] = cp
	})
}

type selectorElement struct {
	page  *Page
	class string
}

func (s *selectorElement) Timeframes() []string {
	s.page.mu.Lock()
	defer s.page.mu.Unlock()
	tfs := s.page.selectors[s.class].timeframes
	out := make([]string, len(tfs))
	copy(out, tfs)
	return out
}

func (s *selectorElement) SetActive(timeframe string, active bool) {
	s.page.apply(Patch{Element: s.class, Op: OpActive, Timeframe: timeframe, Active: active}, func() {
		s.page.selectors[s.class].active[timeframe] = active
	})
}

// ActiveTimeframe returns the active button of the class group, if any.
func (p *Page) ActiveTimeframe(class string) (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	s, ok := p.selectors[class]
	if !ok {
		return "", false
	}
	for _, tf := range s.timeframes {
		if s.active[tf] {
			return tf, true
		}
	}
	return "", false
}
