// perft.go is the recursive leaf counter used only for correctness
// testing and the `perft` UCI command. Grounded on the teacher's
// perft/perft.go.
package engine

// Perft counts the leaf nodes of the legal-move tree rooted at s, depth
// plies deep.
func Perft(s *State, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	var ml MoveList
	GenerateMoves(s, &ml)

	var nodes uint64
	for i := 0; i < ml.Len(); i++ {
		child := s.Clone()
		if !child.MakeMove(ml.At(i)) {
			continue
		}
		nodes += Perft(&child, depth-1)
	}
	return nodes
}

// PerftDivide returns, for each legal root move, the subtree count at
// depth-1, in generation order — used by the `perft N` command to print
// per-root-move breakdowns.
func PerftDivide(s *State, depth int) (moves []Move, counts []uint64, total uint64) {
	var ml MoveList
	GenerateMoves(s, &ml)

	for i := 0; i < ml.Len(); i++ {
		m := ml.At(i)
		child := s.Clone()
		if !child.MakeMove(m) {
			continue
		}
		var n uint64
		if depth <= 1 {
			n = 1
		} else {
			n = Perft(&child, depth-1)
		}
		moves = append(moves, m)
		counts = append(counts, n)
		total += n
	}
	return moves, counts, total
}
