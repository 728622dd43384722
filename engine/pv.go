// pv.go tracks the principal variation: a fixed-capacity ordered sequence
// of moves, rebuilt each node by prepending the current move to the
// child's line. Named after the teacher's pv.go but the mechanism is
// different — the teacher replays DoMove/UndoMove through a hash-keyed
// table to reconstruct the line after the fact; this design's copy-then-
// mutate State makes it simpler to just carry the line up the call stack
// as negamax returns.
package engine

// MaxPly bounds search depth and the PV line length.
const MaxPly = 64

// PVLine is a fixed-capacity ordered sequence of moves.
type PVLine struct {
	moves [MaxPly]Move
	n     int
}

// Len returns the number of moves in the line.
func (p *PVLine) Len() int { return p.n }

// At returns the move at index i.
func (p *PVLine) At(i int) Move { return p.moves[i] }

// Clear empties the line.
func (p *PVLine) Clear() { p.n = 0 }

// Set replaces the line with m followed by child's moves, truncated to
// MaxPly.
func (p *PVLine) Set(m Move, child *PVLine) {
	p.moves[0] = m
	n := child.n
	if n > MaxPly-1 {
		n = MaxPly - 1
	}
	copy(p.moves[1:], child.moves[:n])
	p.n = n + 1
}

// Moves returns the line as a plain slice, for reporting.
func (p *PVLine) Moves() []Move {
	return append([]Move(nil), p.moves[:p.n]...)
}

// Best returns the first move of the line, or NoMove if empty.
func (p *PVLine) Best() Move {
	if p.n == 0 {
		return NoMove
	}
	return p.moves[0]
}
