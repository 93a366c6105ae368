// Package grid implements a generic, rule-agnostic cellular-automaton
// engine: a toroidal 2-D grid of cells advanced one generation at a time via
// double buffering, with the per-generation transition computed row-parallel.
// Concrete simulation rules are supplied through the Cell interface; the
// engine never inspects cell contents.
package grid

import (
	"sync"

	"evogrid/internal/rng"
)

// Cell is the engine's single extension point. Transition computes the next
// state for one cell: it reads the prior generation through neighborhood
// (whose center is the receiver's own prior value), and writes any change to
// next, which starts out as a copy of the prior value. Implementations must
// not retain neighborhood or next beyond the call.
type Cell[C any] interface {
	Transition(neighborhood *Neighborhood[C], next *C, policy rng.Policy)
}

// Grid owns two cell buffers, "current" and "next", swapped at the end of
// each Update. Between updates, Cells always denotes the latest committed
// generation; the engine never mutates it in place.
type Grid[C Cell[C]] struct {
	size Size
	cur  *Cells[C]
	next *Cells[C]
}

// New constructs a grid of zero-valued cells. It panics on an empty size.
func New[C Cell[C]](size Size) *Grid[C] {
	return &Grid[C]{
		size: size,
		cur:  NewCells[C](size),
		next: NewCells[C](size),
	}
}

// Size returns the grid dimensions.
func (g *Grid[C]) Size() Size {
	return g.size
}

// NumCells returns the total cell count.
func (g *Grid[C]) NumCells() int {
	return g.cur.Len()
}

// Cells returns the current committed generation. Callers seed initial state
// and render from this buffer.
func (g *Grid[C]) Cells() *Cells[C] {
	return g.cur
}

// NextCells returns the in-progress buffer. Only exogenous-update hooks
// passed to Update should write to it.
func (g *Grid[C]) NextCells() *Cells[C] {
	return g.next
}

// Update advances the grid exactly one generation:
//
//  1. copy current into next, so rules can treat next as "current plus
//     accumulated deltas";
//  2. run the exogenous hook, if any, so externally injected effects are
//     visible to the neighborhoods computed below;
//  3. fork one policy per row, in row order, before any parallel work;
//  4. run every row's transition concurrently, each worker owning one
//     exclusive row slice of next and reading only the unmodified current
//     buffer;
//  5. swap the buffers.
//
// Given a fixed prior generation and a fixed seed, the resulting generation
// is bit-identical regardless of how the row goroutines are scheduled.
func (g *Grid[C]) Update(policy rng.Policy, otherUpdate func(*Grid[C])) {
	g.next.CopyFrom(g.cur)
	if otherUpdate != nil {
		otherUpdate(g)
	}
	g.updateCells(policy)
	g.cur, g.next = g.next, g.cur
}

func (g *Grid[C]) updateCells(policy rng.Policy) {
	rows := g.next.Rows()
	rowPolicies := policy.MultiFork(g.size.Height)

	var wg sync.WaitGroup
	for row := range rows {
		wg.Add(1)
		go func(row int, nextRow []C, rowPolicy rng.Policy) {
			defer wg.Done()
			g.updateRow(row, nextRow, rowPolicy)
		}(row, rows[row], rowPolicies[row])
	}
	wg.Wait()
}

func (g *Grid[C]) updateRow(row int, nextRow []C, policy rng.Policy) {
	for col := 0; col < g.size.Width; col++ {
		loc := NewLoc(row, col)
		neighborhood := NewNeighborhood(g.cur, loc)
		(*g.cur.At(loc)).Transition(&neighborhood, &nextRow[col], policy)
	}
}
