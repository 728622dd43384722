// movegen.go generates pseudo-legal moves: correct piece geometry and
// castling-through-check rules, but possibly leaving the own king in
// check — MakeMove is responsible for filtering that out. Grounded on the
// teacher's engine/position.go generator shape (one function per figure,
// appending into a shared list) adapted to the classical attack tables in
// attack.go.
package engine

// GenerateMoves appends all pseudo-legal moves for state.ToMove into ml.
func GenerateMoves(s *State, ml *MoveList) {
	genPawnMoves(s, ml)
	genKnightMoves(s, ml)
	genSlidingMoves(s, ml, Bishop)
	genSlidingMoves(s, ml, Rook)
	genSlidingMoves(s, ml, Queen)
	genKingMoves(s, ml)
	genCastles(s, ml)
}

func (s *State) friendly() Bitboard { return s.Colors[s.ToMove] }
func (s *State) enemy() Bitboard    { return s.Colors[s.ToMove.Other()] }

func genPawnMoves(s *State, ml *MoveList) {
	us := s.ToMove
	pawns := s.Pieces[Pawn] & s.Colors[us]
	var forward, startRank, promoRank int
	if us == White {
		forward, startRank, promoRank = 8, 1, 7
	} else {
		forward, startRank, promoRank = -8, 6, 0
	}

	emitPromos := func(from, to Square, capture bool) {
		for _, f := range [4]Figure{Queen, Rook, Bishop, Knight} {
			ml.Add(NewPromotionMove(from, to, f, capture))
		}
	}

	bb := pawns
	for bb != 0 {
		from := bb.Pop()
		oneStep := Square(int(from) + forward)
		if !s.Occupied.Has(oneStep) {
			if oneStep.Rank() == promoRank {
				emitPromos(from, oneStep, false)
			} else {
				ml.Add(NewQuietMove(from, oneStep, Pawn))
				if from.Rank() == startRank {
					twoStep := Square(int(from) + 2*forward)
					if !s.Occupied.Has(twoStep) {
						ml.Add(NewDoublePushMove(from, twoStep))
					}
				}
			}
		}
		attacks := PawnAttack[from][us] & s.enemy()
		for attacks != 0 {
			to := attacks.Pop()
			if to.Rank() == promoRank {
				emitPromos(from, to, true)
			} else {
				ml.Add(NewCaptureMove(from, to, Pawn))
			}
		}
		if s.EPTarget != NoSquare && PawnAttack[from][us].Has(s.EPTarget) {
			ml.Add(NewEnPassantMove(from, s.EPTarget))
		}
	}
}

func genKnightMoves(s *State, ml *MoveList) {
	knights := s.Pieces[Knight] & s.friendly()
	for knights != 0 {
		from := knights.Pop()
		targets := KnightAttack[from] &^ s.friendly()
		for targets != 0 {
			to := targets.Pop()
			addQuietOrCapture(s, ml, from, to, Knight)
		}
	}
}

func genKingMoves(s *State, ml *MoveList) {
	from := s.KingSquare(s.ToMove)
	targets := KingAttack[from] &^ s.friendly()
	for targets != 0 {
		to := targets.Pop()
		addQuietOrCapture(s, ml, from, to, King)
	}
}

func genSlidingMoves(s *State, ml *MoveList, fig Figure) {
	pieces := s.Pieces[fig] & s.friendly()
	for pieces != 0 {
		from := pieces.Pop()
		targets := SlidingAttack(fig, from, s.Occupied) &^ s.friendly()
		for targets != 0 {
			to := targets.Pop()
			addQuietOrCapture(s, ml, from, to, fig)
		}
	}
}

func addQuietOrCapture(s *State, ml *MoveList, from, to Square, fig Figure) {
	if s.enemy().Has(to) {
		ml.Add(NewCaptureMove(from, to, fig))
	} else {
		ml.Add(NewQuietMove(from, to, fig))
	}
}

func genCastles(s *State, ml *MoveList) {
	us := s.ToMove
	them := us.Other()
	occ := s.Occupied

	tryCastle := func(right Castle, kingFrom, kingTo, rookSq Square, between Bitboard, passSquares [2]Square) {
		if s.Castling&right == 0 {
			return
		}
		if occ&between != 0 {
			return
		}
		if s.Pieces[Rook]&s.Colors[us]&bit(rookSq) == 0 {
			return
		}
		for _, sq := range passSquares {
			if s.SquareAttacked(sq, them) {
				return
			}
		}
		ml.Add(NewCastleMove(kingFrom, kingTo))
	}

	if us == White {
		tryCastle(WhiteOO, RankFile(0, 4), RankFile(0, 6), RankFile(0, 7),
			bit(RankFile(0, 5))|bit(RankFile(0, 6)), [2]Square{RankFile(0, 4), RankFile(0, 5)})
		tryCastle(WhiteOOO, RankFile(0, 4), RankFile(0, 2), RankFile(0, 0),
			bit(RankFile(0, 1))|bit(RankFile(0, 2))|bit(RankFile(0, 3)), [2]Square{RankFile(0, 4), RankFile(0, 3)})
	} else {
		tryCastle(BlackOO, RankFile(7, 4), RankFile(7, 6), RankFile(7, 7),
			bit(RankFile(7, 5))|bit(RankFile(7, 6)), [2]Square{RankFile(7, 4), RankFile(7, 5)})
		tryCastle(BlackOOO, RankFile(7, 4), RankFile(7, 2), RankFile(7, 0),
			bit(RankFile(7, 1))|bit(RankFile(7, 2))|bit(RankFile(7, 3)), [2]Square{RankFile(7, 4), RankFile(7, 3)})
	}
}
