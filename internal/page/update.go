package page

// Update replaces the content and children of the element with the given
// id. The replacement's own id is ignored; the addressed id is kept.
type Update struct {
	ID      string  `cbor:"id"`
	Element Element `cbor:"element"`
}

// ApplyResult summarises a batch of updates.
type ApplyResult struct {
	Applied    int
	Dropped    []string
	Structural bool
}

// Apply patches the page in order. Unknown ids and updates that would
// introduce an id already used elsewhere in the page are dropped. Leaf
// updates are written in place; anything touching children rebuilds the
// arena and id index.
func (p *Page) Apply(updates []Update) ApplyResult {
	var res ApplyResult
	for _, u := range updates {
		i, ok := p.Lookup(u.ID)
		if !ok {
			res.Dropped = append(res.Dropped, u.ID)
			continue
		}
		replacement := u.Element
		replacement.ID = u.ID
		if p.collides(i, replacement) {
			res.Dropped = append(res.Dropped, u.ID)
			continue
		}
		if len(p.nodes[i].Children) == 0 && len(replacement.Children) == 0 {
			p.nodes[i].Content = replacement.Content
			res.Applied++
			continue
		}
		p.rebuild(p.replace(0, i, replacement))
		res.Structural = true
		res.Applied++
	}
	return res
}

// collides reports whether replacement carries an id that already names a
// node outside the subtree rooted at target.
func (p *Page) collides(target int, replacement Element) bool {
	inside := make(map[int]struct{})
	p.walk(target, func(i int) { inside[i] = struct{}{} })
	seen := make(map[string]struct{})
	var check func(e Element, top bool) bool
	check = func(e Element, top bool) bool {
		if e.ID != "" && !top {
			if _, dup := seen[e.ID]; dup {
				return true
			}
			seen[e.ID] = struct{}{}
			if owner, ok := p.index[e.ID]; ok {
				if _, local := inside[owner]; !local {
					return true
				}
			}
		}
		for _, c := range e.Children {
			if check(c, false) {
				return true
			}
		}
		return false
	}
	return check(replacement, true)
}

func (p *Page) walk(i int, visit func(int)) {
	visit(i)
	for _, c := range p.nodes[i].Children {
		p.walk(c, visit)
	}
}

// replace rebuilds the tree form rooted at i, substituting replacement for
// the subtree at target.
func (p *Page) replace(i, target int, replacement Element) Element {
	if i == target {
		return replacement
	}
	n := p.nodes[i]
	e := Element{Content: n.Content}
	if len(n.Children) > 0 {
		e.Children = make([]Element, len(n.Children))
		for pos, c := range n.Children {
			e.Children[pos] = p.replace(c, target, replacement)
		}
	}
	return e
}
