package page

// Definition is the wire form of a page.
type Definition struct {
	ID   string  `cbor:"id"`
	Name string  `cbor:"name"`
	Root Element `cbor:"root"`
}

// Node is one arena slot. Children and Parent are arena indices; Position
// is the node's index within its parent's children.
type Node struct {
	Content
	Parent   int
	Position int
	Children []int
}

// Page is an element tree flattened into a dense arena. The root is always
// node 0. Ids are indexed so a focus id maps back to its tree path in time
// proportional to the path length.
type Page struct {
	id    string
	name  string
	nodes []Node
	index map[string]int
}

// New flattens def into a Page. When the tree repeats an id, the first
// occurrence in depth-first order keeps it and later ones are cleared.
func New(def Definition) *Page {
	p := &Page{id: def.ID, name: def.Name}
	p.rebuild(def.Root)
	return p
}

func (p *Page) ID() string   { return p.id }
func (p *Page) Name() string { return p.name }

// Len returns the number of nodes in the arena.
func (p *Page) Len() int { return len(p.nodes) }

// Root returns the root node.
func (p *Page) Root() *Node { return &p.nodes[0] }

// Node returns the node at arena index i, or nil when out of range.
func (p *Page) Node(i int) *Node {
	if i < 0 || i >= len(p.nodes) {
		return nil
	}
	return &p.nodes[i]
}

// Lookup returns the arena index of the node with the given id.
func (p *Page) Lookup(id string) (int, bool) {
	if id == "" {
		return 0, false
	}
	i, ok := p.index[id]
	return i, ok
}

// Path returns the child-index path from the root to the node with id.
// The root itself has an empty path.
func (p *Page) Path(id string) ([]int, bool) {
	i, ok := p.Lookup(id)
	if !ok {
		return nil, false
	}
	depth := 0
	for n := i; n != 0; n = p.nodes[n].Parent {
		depth++
	}
	path := make([]int, depth)
	for n := i; n != 0; n = p.nodes[n].Parent {
		depth--
		path[depth] = p.nodes[n].Position
	}
	return path, true
}

// IDs returns every id in the page in arena order.
func (p *Page) IDs() []string {
	ids := make([]string, 0, len(p.index))
	for _, n := range p.nodes {
		if n.ID != "" {
			ids = append(ids, n.ID)
		}
	}
	return ids
}

// Definition reconstructs the wire form of the page.
func (p *Page) Definition() Definition {
	return Definition{ID: p.id, Name: p.name, Root: p.subtree(0)}
}

func (p *Page) subtree(i int) Element {
	n := p.nodes[i]
	e := Element{Content: n.Content}
	if len(n.Children) > 0 {
		e.Children = make([]Element, len(n.Children))
		for pos, c := range n.Children {
			e.Children[pos] = p.subtree(c)
		}
	}
	return e
}

func (p *Page) rebuild(root Element) {
	p.nodes = p.nodes[:0]
	p.index = make(map[string]int)
	p.flatten(root, -1, 0)
}

func (p *Page) flatten(e Element, parent, position int) int {
	i := len(p.nodes)
	content := e.Content
	if content.ID != "" {
		if _, dup := p.index[content.ID]; dup {
			content.ID = ""
		} else {
			p.index[content.ID] = i
		}
	}
	p.nodes = append(p.nodes, Node{Content: content, Parent: parent, Position: position})
	if len(e.Children) == 0 {
		return i
	}
	children := make([]int, len(e.Children))
	for pos, child := range e.Children {
		children[pos] = p.flatten(child, i, pos)
	}
	p.nodes[i].Children = children
	return i
}
