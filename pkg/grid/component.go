package grid

// UnionFind implements a disjoint-set data structure with path compression
// and union by rank.
type UnionFind struct {
	parent []uint32
	rank   []byte
	size   []uint32
}

// NewUnionFind creates a UnionFind for n elements.
func NewUnionFind(n uint32) *UnionFind {
	parent := make([]uint32, n)
	size := make([]uint32, n)
	for i := range n {
		parent[i] = i
		size[i] = 1
	}
	return &UnionFind{
		parent: parent,
		rank:   make([]byte, n),
		size:   size,
	}
}

// Find returns the representative of the set containing x, with path halving.
func (uf *UnionFind) Find(x uint32) uint32 {
	for uf.parent[x] != x {
		uf.parent[x] = uf.parent[uf.parent[x]]
		x = uf.parent[x]
	}
	return x
}

// Union merges the sets containing x and y. Returns false if already same set.
func (uf *UnionFind) Union(x, y uint32) bool {
	rx := uf.Find(x)
	ry := uf.Find(y)
	if rx == ry {
		return false
	}

	if uf.rank[rx] < uf.rank[ry] {
		rx, ry = ry, rx
	}
	uf.parent[ry] = rx
	uf.size[rx] += uf.size[ry]
	if uf.rank[rx] == uf.rank[ry] {
		uf.rank[rx]++
	}
	return true
}

// Size returns the number of elements in the set containing x.
func (uf *UnionFind) Size(x uint32) uint32 { return uf.size[uf.Find(x)] }

const noComponent = -1

// Components labels the 4-connected regions of passable cells. Impassible
// cells carry no label.
type Components struct {
	label []int32
	sizes []int
}

// LabelComponents computes the passable components of g.
func LabelComponents(g *Grid) *Components {
	n := uint32(g.Len())
	uf := NewUnionFind(n)

	// Joining each cell with its right and lower neighbor covers every edge once.
	for i := uint32(0); i < n; i++ {
		c := g.cells[i]
		if !c.Passable() {
			continue
		}
		if c.Col+1 < g.Cols && g.cells[i+1].Passable() {
			uf.Union(i, i+1)
		}
		if c.Row+1 < g.Rows && g.cells[i+uint32(g.Cols)].Passable() {
			uf.Union(i, i+uint32(g.Cols))
		}
	}

	label := make([]int32, n)
	rootLabel := make(map[uint32]int32)
	var sizes []int
	for i := uint32(0); i < n; i++ {
		if !g.cells[i].Passable() {
			label[i] = noComponent
			continue
		}
		root := uf.Find(i)
		l, ok := rootLabel[root]
		if !ok {
			l = int32(len(sizes))
			rootLabel[root] = l
			sizes = append(sizes, int(uf.Size(root)))
		}
		label[i] = l
	}

	return &Components{label: label, sizes: sizes}
}

// Count returns the number of passable components.
func (cs *Components) Count() int { return len(cs.sizes) }

// Label returns the component of the cell at idx, or false for an impassible cell.
func (cs *Components) Label(idx int) (int, bool) {
	l := cs.label[idx]
	if l == noComponent {
		return 0, false
	}
	return int(l), true
}

// Size returns the number of cells in component l.
func (cs *Components) Size(l int) int { return cs.sizes[l] }

// Largest returns the label and size of the biggest component, or (-1, 0)
// when the grid has no passable cell.
func (cs *Components) Largest() (label, size int) {
	label = -1
	for l, s := range cs.sizes {
		if s > size {
			label, size = l, s
		}
	}
	return label, size
}

// Reachable reports whether a walk from start can end on goal. The start cell
// itself may be impassible: the walk leaves it through any passable neighbor.
// The goal must be passable unless it is the start.
func (cs *Components) Reachable(g *Grid, start, goal Cell) bool {
	if start.Same(goal) {
		return true
	}
	goalLabel, ok := cs.Label(g.Index(goal))
	if !ok {
		return false
	}
	if l, ok := cs.Label(g.Index(start)); ok {
		return l == goalLabel
	}
	var buf [4]Cell
	for _, n := range g.Neighbors(start, buf[:0]) {
		if l, _ := cs.Label(g.Index(n)); l == goalLabel {
			return true
		}
	}
	return false
}
