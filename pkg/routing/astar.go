package routing

import (
	"context"
	"fmt"
	"math"

	"terrain_router/pkg/grid"
)

const noCell = int32(-1) // sentinel for "no predecessor"

// cancelCheckInterval is how many frontier pops happen between context checks.
const cancelCheckInterval = 1024

// MinHeap is a concrete-typed min-heap for the A* frontier.
// Avoids interface boxing overhead of container/heap.
//
// Entries with equal F pop in reverse row-major order: the larger cell index
// first. The order decides which of several equal-cost paths is returned.
type MinHeap struct {
	items []PQItem
}

// PQItem is a priority queue entry.
type PQItem struct {
	Cell int32   // row-major cell index
	F    float64 // f-score at push time
}

func (h *MinHeap) Len() int { return len(h.items) }

func (h *MinHeap) Push(cell int32, f float64) {
	h.items = append(h.items, PQItem{cell, f})
	h.siftUp(len(h.items) - 1)
}

func (h *MinHeap) Pop() PQItem {
	n := len(h.items)
	item := h.items[0]
	h.items[0] = h.items[n-1]
	h.items = h.items[:n-1]
	if len(h.items) > 0 {
		h.siftDown(0)
	}
	return item
}

func (h *MinHeap) Reset() {
	h.items = h.items[:0]
}

// less orders by F, then by descending cell index.
func (h *MinHeap) less(i, j int) bool {
	a, b := h.items[i], h.items[j]
	if a.F != b.F {
		return a.F < b.F
	}
	return a.Cell > b.Cell
}

func (h *MinHeap) siftUp(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if !h.less(i, parent) {
			break
		}
		h.items[i], h.items[parent] = h.items[parent], h.items[i]
		i = parent
	}
}

func (h *MinHeap) siftDown(i int) {
	n := len(h.items)
	for {
		smallest := i
		left := 2*i + 1
		right := 2*i + 2
		if left < n && h.less(left, smallest) {
			smallest = left
		}
		if right < n && h.less(right, smallest) {
			smallest = right
		}
		if smallest == i {
			break
		}
		h.items[i], h.items[smallest] = h.items[smallest], h.items[i]
		i = smallest
	}
}

// queryState holds per-search bookkeeping in flat arrays indexed by cell.
// An infinite F means no f-score has been recorded for that cell.
type queryState struct {
	G        []float64
	F        []float64
	CameFrom []int32
	Visited  []bool
	Touched  []int32 // cells touched during this query (for fast reset)
	PQ       MinHeap
}

func newQueryState(n int) *queryState {
	g := make([]float64, n)
	f := make([]float64, n)
	cameFrom := make([]int32, n)
	for i := range f {
		f[i] = math.Inf(1)
		cameFrom[i] = noCell
	}
	return &queryState{
		G:        g,
		F:        f,
		CameFrom: cameFrom,
		Visited:  make([]bool, n),
		Touched:  make([]int32, 0, 1024),
		PQ:       MinHeap{items: make([]PQItem, 0, 256)},
	}
}

// Reset clears only the touched entries for fast reuse.
func (qs *queryState) Reset() {
	for _, c := range qs.Touched {
		qs.G[c] = 0
		qs.F[c] = math.Inf(1)
		qs.CameFrom[c] = noCell
		qs.Visited[c] = false
	}
	qs.Touched = qs.Touched[:0]
	qs.PQ.Reset()
}

// record stores a new best g/f for cell c, reached from prev.
func (qs *queryState) record(c int32, g, f float64, prev int32) {
	if math.IsInf(qs.F[c], 1) {
		qs.Touched = append(qs.Touched, c)
	}
	qs.G[c] = g
	qs.F[c] = f
	qs.CameFrom[c] = prev
}

// search runs lazy-deletion A* from start to goal on a clean queryState.
func (e *Engine) search(ctx context.Context, qs *queryState, start, goal grid.Cell) ([]grid.Cell, error) {
	g := e.g
	startIdx := int32(g.Index(start))
	goalIdx := int32(g.Index(goal))

	qs.record(startIdx, 0, e.Heuristic(start, start), noCell)
	qs.PQ.Push(startIdx, qs.F[startIdx])

	var nbuf [4]grid.Cell
	pops := 0
	for qs.PQ.Len() > 0 {
		pops++
		if pops%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		cur := qs.PQ.Pop().Cell
		if qs.Visited[cur] {
			continue // stale entry
		}
		qs.Visited[cur] = true

		if cur == goalIdx {
			return reconstructPath(g, qs.CameFrom, startIdx, goalIdx), nil
		}

		current := g.CellAt(int(cur))
		for _, n := range g.Neighbors(current, nbuf[:0]) {
			ni := int32(g.Index(n))
			tentativeG := qs.G[cur] + e.EdgeCost(current, n)
			tentativeF := tentativeG + e.Heuristic(n, goal)
			if tentativeF < qs.F[ni] {
				qs.record(ni, tentativeG, tentativeF, cur)
				if !qs.Visited[ni] {
					qs.PQ.Push(ni, tentativeF)
				}
			}
		}
	}

	return nil, ErrNoRoute
}

// reconstructPath walks cameFrom back from goal to start and returns the
// forward sequence, both ends included.
func reconstructPath(g *grid.Grid, cameFrom []int32, start, goal int32) []grid.Cell {
	var path []grid.Cell
	node := goal
	for {
		path = append(path, g.CellAt(int(node)))
		if node == start {
			break
		}
		if len(path) > g.Len() {
			panic(fmt.Sprintf("routing: predecessor chain from %d exceeds %d cells", goal, g.Len()))
		}
		prev := cameFrom[node]
		if prev == noCell {
			panic(fmt.Sprintf("routing: cell %d has no predecessor before reaching start %d", node, start))
		}
		node = prev
	}

	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
