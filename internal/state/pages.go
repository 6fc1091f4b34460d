package state

import "github.com/atomicstack/spider-tui/internal/page"

// PageStore is the ordered page set with a single-selection cursor. The
// cursor is always within [0, Len()-1], or 0 when the set is empty.
type PageStore interface {
	Pages() []*page.Page
	Len() int
	Get(id string) (*page.Page, bool)
	Selected() (*page.Page, bool)
	SelectedIndex() int
	Select(index int) bool
	SelectPrev() bool
	SelectNext() bool
	Upsert(*page.Page)
	SetAll([]*page.Page)
	Clear()
	Apply(id string, updates []page.Update) (page.ApplyResult, bool)
}

type pageStore struct {
	pages    []*page.Page
	selected int
}

func NewPageStore() PageStore {
	return &pageStore{}
}

func (s *pageStore) Pages() []*page.Page {
	if len(s.pages) == 0 {
		return nil
	}
	dup := make([]*page.Page, len(s.pages))
	copy(dup, s.pages)
	return dup
}

func (s *pageStore) Len() int {
	return len(s.pages)
}

func (s *pageStore) indexOf(id string) int {
	for i, p := range s.pages {
		if p.ID() == id {
			return i
		}
	}
	return -1
}

func (s *pageStore) Get(id string) (*page.Page, bool) {
	if i := s.indexOf(id); i >= 0 {
		return s.pages[i], true
	}
	return nil, false
}

func (s *pageStore) Selected() (*page.Page, bool) {
	if len(s.pages) == 0 {
		return nil, false
	}
	return s.pages[s.selected], true
}

func (s *pageStore) SelectedIndex() int {
	return s.selected
}

// Select moves the cursor to index, clamped to the set.
func (s *pageStore) Select(index int) bool {
	old := s.selected
	s.selected = index
	s.clamp()
	return old != s.selected
}

func (s *pageStore) SelectPrev() bool {
	return s.Select(s.selected - 1)
}

func (s *pageStore) SelectNext() bool {
	return s.Select(s.selected + 1)
}

// Upsert replaces the page with the same id in place, or appends it.
func (s *pageStore) Upsert(p *page.Page) {
	if p == nil {
		return
	}
	if i := s.indexOf(p.ID()); i >= 0 {
		s.pages[i] = p
	} else {
		s.pages = append(s.pages, p)
	}
	s.clamp()
}

// SetAll clears the set, inserts pages in order and resets the cursor.
// Later pages replace earlier ones with the same id.
func (s *pageStore) SetAll(pages []*page.Page) {
	s.Clear()
	for _, p := range pages {
		s.Upsert(p)
	}
	s.selected = 0
	s.clamp()
}

func (s *pageStore) Clear() {
	s.pages = nil
	s.selected = 0
}

// Apply patches the page with the given id. ok is false when no such page
// exists.
func (s *pageStore) Apply(id string, updates []page.Update) (page.ApplyResult, bool) {
	p, ok := s.Get(id)
	if !ok {
		return page.ApplyResult{}, false
	}
	return p.Apply(updates), true
}

func (s *pageStore) clamp() {
	if len(s.pages) == 0 {
		s.selected = 0
		return
	}
	if s.selected < 0 {
		s.selected = 0
	}
	if s.selected >= len(s.pages) {
		s.selected = len(s.pages) - 1
	}
}
