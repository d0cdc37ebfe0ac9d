package core

import (
	"fmt"
	"sort"
)

// resolve runs clear, collapse, refill and re-check until no match is left.
func (b *Board) resolve(matched PosSet) (SwapOutcome, error) {
	out := SwapOutcome{Result: SwapAccepted}
	limit := b.stepLimit
	if limit <= 0 {
		limit = b.w * b.h
	}

	for matched.Len() > 0 {
		if out.Steps >= limit {
			b.state = StateFailed
			return out, fmt.Errorf("%d steps: %w", out.Steps, ErrRunaway)
		}
		out.Steps++

		order := matched.Sorted()
		delta := b.score(order)
		out.Points += delta
		out.Cleared += len(order)
		b.listener.OnPointsScored(delta)

		cols := b.clear(order)
		touched := b.collapse(cols)
		filled, err := b.refill(cols)
		if err != nil {
			b.state = StateFailed
			return out, err
		}
		touched = append(touched, filled...)

		matched = FindMatchesAtMany(b, touched)
	}

	b.listener.OnSuccessfulMove()
	b.state = StateIdle
	return out, nil
}

// score sums the point values of the pieces at ps.
func (b *Board) score(ps []Pos) int {
	total := 0
	for _, p := range ps {
		total += b.points[b.pieceAt(p).Type]
	}
	return total
}

// clear removes the pieces at ps and returns the affected columns, ascending.
func (b *Board) clear(ps []Pos) []int {
	seen := make(map[int]bool)
	var cols []int
	for _, p := range ps {
		id := b.pieceAt(p).ID
		b.cells[b.index(p)] = nil
		b.listener.OnPieceRemoved(id)
		if !seen[p.X] {
			seen[p.X] = true
			cols = append(cols, p.X)
		}
	}
	sort.Ints(cols)
	return cols
}

// collapse lets pieces fall in the given columns. Scanning from the bottom,
// every empty valid cell takes the nearest piece above it, skipping holes
// and gaps, so pieces keep their relative order. It returns the new
// positions of every piece that moved.
func (b *Board) collapse(cols []int) []Pos {
	var moved []Pos
	for _, x := range cols {
		for y := b.h - 1; y > 0; y-- {
			to := P(x, y)
			if !b.valid[b.index(to)] || b.cells[b.index(to)] != nil {
				continue
			}
			for j := y - 1; j >= 0; j-- {
				from := P(x, j)
				if b.cells[b.index(from)] == nil {
					continue
				}
				b.move(from, to)
				moved = append(moved, to)
				break
			}
		}
	}
	return moved
}

func (b *Board) move(from, to Pos) {
	pc := b.pieceAt(from)
	b.cells[b.index(from)] = nil
	b.cells[b.index(to)] = pc
	pc.Pos = to
	b.listener.OnPieceMoved(pc.ID, from, to)
}

// refill creates pieces for the empty valid cells of the given columns.
// New pieces drop in from above the board, offset by the number of empty
// cells in their column.
func (b *Board) refill(cols []int) ([]Pos, error) {
	var filled []Pos
	for _, x := range cols {
		var empties []Pos
		for y := b.h - 1; y >= 0; y-- {
			p := P(x, y)
			if b.valid[b.index(p)] && b.cells[b.index(p)] == nil {
				empties = append(empties, p)
			}
		}
		for _, to := range empties {
			pc, err := b.placeRandom(to)
			if err != nil {
				return filled, fmt.Errorf("refill: %w", err)
			}
			from := P(x, to.Y-len(empties))
			b.listener.OnPieceSpawned(*pc, from)
			b.listener.OnPieceMoved(pc.ID, from, to)
			filled = append(filled, to)
		}
	}
	return filled, nil
}
