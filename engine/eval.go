// eval.go is the static evaluator: material plus piece-square tables,
// side-absolute (white-positive). Grounded on the teacher's
// engine/material.go for the overall shape (per-figure weight, side-
// relative summation) but trimmed to spec's simpler formula — no
// mobility, king-safety or pawn-structure terms, the way
// algerbrex-Blunder's core/evaluate.go keeps its static eval to material
// plus PST before its tuning passes add more.
package engine

// FigureValue is the material value of each piece kind, in centipawns.
var FigureValue = [6]int{
	Pawn:   100,
	Knight: 320,
	Bishop: 330,
	Rook:   500,
	Queen:  900,
	King:   20000,
}

// pst[figure][square] is indexed directly for white pieces; for black
// pieces the square is mirrored vertically and the value negated.
var pst = [6][64]int{
	Pawn: {
		0, 0, 0, 0, 0, 0, 0, 0,
		5, 10, 10, -20, -20, 10, 10, 5,
		5, -5, -10, 0, 0, -10, -5, 5,
		0, 0, 0, 20, 20, 0, 0, 0,
		5, 5, 10, 25, 25, 10, 5, 5,
		10, 10, 20, 30, 30, 20, 10, 10,
		50, 50, 50, 50, 50, 50, 50, 50,
		0, 0, 0, 0, 0, 0, 0, 0,
	},
	Knight: {
		-50, -40, -30, -30, -30, -30, -40, -50,
		-40, -20, 0, 5, 5, 0, -20, -40,
		-30, 5, 10, 15, 15, 10, 5, -30,
		-30, 0, 15, 20, 20, 15, 0, -30,
		-30, 5, 15, 20, 20, 15, 5, -30,
		-30, 0, 10, 15, 15, 10, 0, -30,
		-40, -20, 0, 0, 0, 0, -20, -40,
		-50, -40, -30, -30, -30, -30, -40, -50,
	},
	Bishop: {
		-20, -10, -10, -10, -10, -10, -10, -20,
		-10, 5, 0, 0, 0, 0, 5, -10,
		-10, 10, 10, 10, 10, 10, 10, -10,
		-10, 0, 10, 10, 10, 10, 0, -10,
		-10, 5, 5, 10, 10, 5, 5, -10,
		-10, 0, 5, 10, 10, 5, 0, -10,
		-10, 0, 0, 0, 0, 0, 0, -10,
		-20, -10, -10, -10, -10, -10, -10, -20,
	},
	Rook: {
		0, 0, 0, 5, 5, 0, 0, 0,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		5, 10, 10, 10, 10, 10, 10, 5,
		0, 0, 0, 0, 0, 0, 0, 0,
	},
	Queen: {
		-20, -10, -10, -5, -5, -10, -10, -20,
		-10, 0, 0, 0, 0, 0, 0, -10,
		-10, 0, 5, 5, 5, 5, 0, -10,
		-5, 0, 5, 5, 5, 5, 0, -5,
		0, 0, 5, 5, 5, 5, 0, -5,
		-10, 5, 5, 5, 5, 5, 0, -10,
		-10, 0, 5, 0, 0, 0, 0, -10,
		-20, -10, -10, -5, -5, -10, -10, -20,
	},
	King: {
		20, 30, 10, 0, 0, 10, 30, 20,
		20, 20, 0, 0, 0, 0, 20, 20,
		-10, -20, -20, -20, -20, -20, -20, -10,
		-20, -30, -30, -40, -40, -30, -30, -20,
		-30, -40, -40, -50, -50, -40, -40, -30,
		-30, -40, -40, -50, -50, -40, -40, -30,
		-30, -40, -40, -50, -50, -40, -40, -30,
		-30, -40, -40, -50, -50, -40, -40, -30,
	},
}

func mirror(sq Square) Square { return RankFile(7-sq.Rank(), sq.File()) }

// Eval returns the white-positive static evaluation of s.
func Eval(s *State) int {
	score := 0
	for f := Figure(0); f < NoFigure; f++ {
		white := s.Pieces[f] & s.Colors[White]
		for white != 0 {
			sq := white.Pop()
			score += FigureValue[f] + pst[f][sq]
		}
		black := s.Pieces[f] & s.Colors[Black]
		for black != 0 {
			sq := black.Pop()
			score -= FigureValue[f] + pst[f][mirror(sq)]
		}
	}
	return score
}

// RelativeEval returns Eval from the perspective of the side to move:
// positive means the side to move is better off.
func RelativeEval(s *State) int {
	if s.ToMove == White {
		return Eval(s)
	}
	return -Eval(s)
}
