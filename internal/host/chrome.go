package host

import (
	"fmt"
	"slices"
	"sync"
)

// RibbonItem is an icon in the left ribbon.
type RibbonItem struct {
	ID      string
	Icon    string
	Title   string
	onClick func()
	host    *Host

	mu      sync.Mutex
	classes []string
}

// AddClass adds a CSS-style class name to the item.
func (r *RibbonItem) AddClass(class string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !slices.Contains(r.classes, class) {
		r.classes = append(r.classes, class)
	}
}

// Classes returns the class names added so far.
func (r *RibbonItem) Classes() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.classes...)
}

// Remove takes the item off the ribbon.
func (r *RibbonItem) Remove() {
	h := r.host
	h.mu.Lock()
	defer h.mu.Unlock()
	h.ribbon = slices.DeleteFunc(h.ribbon, func(it *RibbonItem) bool { return it == r })
}

// StatusItem is a text slot in the status bar.
type StatusItem struct {
	ID   int
	host *Host

	mu   sync.Mutex
	text string
}

// SetText replaces the item's text.
func (s *StatusItem) SetText(text string) {
	s.mu.Lock()
	s.text = text
	s.mu.Unlock()
}

// Text returns the item's text.
func (s *StatusItem) Text() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.text
}

// Remove takes the item off the status bar.
func (s *StatusItem) Remove() {
	h := s.host
	h.mu.Lock()
	defer h.mu.Unlock()
	h.status = slices.DeleteFunc(h.status, func(it *StatusItem) bool { return it == s })
}

// AddRibbonIcon adds an icon to the ribbon. Its ID is the icon name, made
// unique with a numeric suffix when the icon is already present.
func (h *Host) AddRibbonIcon(icon, title string, onClick func()) *RibbonItem {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := icon
	for n := 2; h.ribbonLocked(id) != nil; n++ {
		id = fmt.Sprintf("%s-%d", icon, n)
	}
	item := &RibbonItem{ID: id, Icon: icon, Title: title, onClick: onClick, host: h}
	h.ribbon = append(h.ribbon, item)
	return item
}

// RibbonItems returns the ribbon in display order.
func (h *Host) RibbonItems() []*RibbonItem {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]*RibbonItem(nil), h.ribbon...)
}

// ClickRibbon runs the click handler of the ribbon item with the given ID.
func (h *Host) ClickRibbon(id string) error {
	h.mu.Lock()
	item := h.ribbonLocked(id)
	h.mu.Unlock()
	if item == nil {
		return fmt.Errorf("%w: %q", ErrRibbonNotFound, id)
	}
	if item.onClick != nil {
		item.onClick()
	}
	return nil
}

func (h *Host) ribbonLocked(id string) *RibbonItem {
	for _, it := range h.ribbon {
		if it.ID == id {
			return it
		}
	}
	return nil
}

// AddStatusBarItem adds an empty status bar item.
func (h *Host) AddStatusBarItem() *StatusItem {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.nextID++
	item := &StatusItem{ID: h.nextID, host: h}
	h.status = append(h.status, item)
	return item
}

// StatusItems returns the status bar in display order.
func (h *Host) StatusItems() []*StatusItem {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]*StatusItem(nil), h.status...)
}
