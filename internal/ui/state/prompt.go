package state

import (
	"strings"
	"unicode"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Prompt is the page-list jump query with an editing cursor.
type Prompt struct {
	Active bool
	Query  string
	Cursor int
}

// Open activates an empty prompt.
func (p *Prompt) Open() {
	*p = Prompt{Active: true}
}

// Close deactivates the prompt and discards the query.
func (p *Prompt) Close() {
	*p = Prompt{}
}

// CursorPos returns the rune offset of the cursor clamped to the query.
func (p *Prompt) CursorPos() int {
	n := len([]rune(p.Query))
	if p.Cursor < 0 {
		return 0
	}
	if p.Cursor > n {
		return n
	}
	return p.Cursor
}

// Insert inserts text at the cursor.
func (p *Prompt) Insert(text string) bool {
	insert := []rune(text)
	if len(insert) == 0 {
		return false
	}
	runes := []rune(p.Query)
	pos := p.CursorPos()
	updated := make([]rune, 0, len(runes)+len(insert))
	updated = append(updated, runes[:pos]...)
	updated = append(updated, insert...)
	updated = append(updated, runes[pos:]...)
	p.Query = string(updated)
	p.Cursor = pos + len(insert)
	return true
}

// DeleteBackward deletes the rune before the cursor.
func (p *Prompt) DeleteBackward() bool {
	runes := []rune(p.Query)
	pos := p.CursorPos()
	if pos == 0 {
		return false
	}
	p.Query = string(append(runes[:pos-1], runes[pos:]...))
	p.Cursor = pos - 1
	return true
}

// DeleteWordBackward deletes the word preceding the cursor.
func (p *Prompt) DeleteWordBackward() bool {
	runes := []rune(p.Query)
	pos := p.CursorPos()
	if pos == 0 {
		return false
	}
	i := pos
	for i > 0 && unicode.IsSpace(runes[i-1]) {
		i--
	}
	for i > 0 && !unicode.IsSpace(runes[i-1]) {
		i--
	}
	p.Query = string(append(runes[:i], runes[pos:]...))
	p.Cursor = i
	return true
}

// BestMatch returns the index of the name that best matches query: an
// exact match, then a prefix, then a substring, then the closest fuzzy
// match. It returns -1 when names is empty.
func BestMatch(names []string, query string) int {
	if len(names) == 0 {
		return -1
	}
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return 0
	}
	lower := strings.ToLower(trimmed)
	for i, name := range names {
		if strings.EqualFold(name, trimmed) {
			return i
		}
	}
	for i, name := range names {
		if strings.HasPrefix(strings.ToLower(name), lower) {
			return i
		}
	}
	for i, name := range names {
		if strings.Contains(strings.ToLower(name), lower) {
			return i
		}
	}
	ranks := fuzzy.RankFindNormalizedFold(trimmed, names)
	if len(ranks) == 0 {
		return -1
	}
	best := ranks[0]
	for _, rank := range ranks[1:] {
		if rank.Distance < best.Distance ||
			rank.Distance == best.Distance && rank.OriginalIndex < best.OriginalIndex {
			best = rank
		}
	}
	return best.OriginalIndex
}
