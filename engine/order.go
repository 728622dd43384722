// order.go scores and sorts a node's move list. Grounded on the teacher's
// engine/engine.go killer/history usage for the overall shape, with the
// simpler from/to-indexed history table algerbrex-Blunder's
// core/search.go (searchHistory [64][64]int) uses instead of the
// teacher's murmur-hashed historyTable.
package engine

import "sort"

const (
	scorePV      = 11000
	scoreCapture = 10000
	scoreKiller0 = 9000
	scoreKiller1 = 8000
)

// History is the per (side, from, to) quiet-move heuristic table.
type History [2][64][64]int32

// Add records that a quiet move raised alpha at depth.
func (h *History) Add(side Color, m Move, depth int) {
	h[side][m.From()][m.To()] += int32(depth)
}

// Killers holds, per ply, the two most recent quiet moves that caused a
// beta cutoff. A new killer is pushed into slot 0, bumping the previous
// slot 0 into slot 1.
type Killers [64][2]Move

// Add records m as the newest killer at ply, unless it already is one.
func (k *Killers) Add(ply int, m Move) {
	if k[ply][0] == m || k[ply][1] == m {
		return
	}
	k[ply][1] = k[ply][0]
	k[ply][0] = m
}

// victimValue returns the figure captured by m, used for MVV-LVA. EP
// captures always take a pawn.
func victimValue(s *State, m Move) Figure {
	if m.IsEnPassant() {
		return Pawn
	}
	return s.PieceAt(m.To()).Figure()
}

// OrderMoves scores every move in ml and stably sorts it by descending
// score: PV move, then captures (MVV-LVA), then killers, then history.
func OrderMoves(s *State, ml *MoveList, pvMove Move, killers *Killers, ply int, hist *History) {
	side := s.ToMove
	for i := 0; i < ml.Len(); i++ {
		m := ml.At(i)
		var score int32
		switch {
		case m == pvMove:
			score = scorePV
		case m.IsCapture():
			victim := victimValue(s, m)
			score = scoreCapture + int32(6*int(victim)) + int32(5-int(m.Piece()))
		case m == killers[ply][0]:
			score = scoreKiller0
		case m == killers[ply][1]:
			score = scoreKiller1
		default:
			score = hist[side][m.From()][m.To()]
		}
		ml.SetScore(i, score)
	}
	sort.Stable(byScore{ml})
}

type byScore struct{ ml *MoveList }

func (b byScore) Len() int           { return b.ml.Len() }
func (b byScore) Less(i, j int) bool { return b.ml.Score(i) > b.ml.Score(j) }
func (b byScore) Swap(i, j int)      { b.ml.Swap(i, j) }
