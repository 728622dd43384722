package engine

import "testing"

func TestFENRoundTrip(t *testing.T) {
	fens := []string{
		StartFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
	}
	for _, fen := range fens {
		s, err := FromFEN(fen)
		if err != nil {
			t.Fatalf("FromFEN(%q): %v", fen, err)
		}
		if got := s.FEN(); got != fen {
			t.Errorf("FEN round trip: from %q got %q", fen, got)
		}
	}
}

func TestFromFENRejectsMalformed(t *testing.T) {
	bad := []string{
		"",
		"not a fen",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq -",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
	}
	for _, fen := range bad {
		if _, err := FromFEN(fen); err == nil {
			t.Errorf("FromFEN(%q): expected error, got nil", fen)
		}
	}
}

func TestHashMatchesFromScratch(t *testing.T) {
	s := NewState()
	if s.Hash != s.ComputeHash() {
		t.Fatalf("start position hash mismatch: %x vs %x", s.Hash, s.ComputeHash())
	}

	moves := []string{"e2e4", "e7e5", "g1f3", "b8c6", "f1b5"}
	for _, uci := range moves {
		from, to, promo, err := ParseUCIMove(uci)
		if err != nil {
			t.Fatal(err)
		}
		var ml MoveList
		GenerateMoves(&s, &ml)
		m, ok := findTestMove(&ml, from, to, promo)
		if !ok {
			t.Fatalf("move %s not found among generated moves", uci)
		}
		if !s.MakeMove(m) {
			t.Fatalf("move %s was illegal", uci)
		}
		if s.Hash != s.ComputeHash() {
			t.Fatalf("after %s: hash %x != recomputed %x", uci, s.Hash, s.ComputeHash())
		}
	}
}

func TestMakeMoveRestoresOnIllegal(t *testing.T) {
	// White king on e1, knight on e2 pinned by the rook on e8; moving the
	// knight off the e-file must be rejected and the position restored.
	s, err := FromFEN("4r3/8/8/8/8/8/4N3/4K3 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	before := s.Clone()
	m := NewQuietMove(RankFile(1, 4), RankFile(3, 3), Knight) // e2-d4
	if s.MakeMove(m) {
		t.Fatal("expected move to be illegal")
	}
	if s.Hash != before.Hash || s.Pieces != before.Pieces || s.Colors != before.Colors {
		t.Fatalf("state not restored after illegal move: %+v vs %+v", s, before)
	}
}

func TestCastlingRightsClearedOnRookCapture(t *testing.T) {
	// Black bishop can capture the white rook on h1; white's kingside
	// castling right must be lost as a result.
	s, err := FromFEN("4k3/8/8/8/8/8/6b1/4K2R b K - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	m := NewCaptureMove(RankFile(1, 6), RankFile(0, 7), Bishop)
	if !s.MakeMove(m) {
		t.Fatal("expected capture to be legal")
	}
	if s.Castling&WhiteOO != 0 {
		t.Fatal("expected WhiteOO to be cleared after rook is captured on h1")
	}
}

func TestEnPassantCapture(t *testing.T) {
	s, err := FromFEN("4k3/8/8/3pP3/8/8/8/4K3 w - d6 0 1")
	if err != nil {
		t.Fatal(err)
	}
	m := NewEnPassantMove(RankFile(4, 4), RankFile(5, 3))
	if !s.MakeMove(m) {
		t.Fatal("expected en passant capture to be legal")
	}
	if s.PieceAt(RankFile(4, 3)) != NoPiece {
		t.Fatal("captured pawn still present after en passant")
	}
	if s.PieceAt(RankFile(5, 3)) != MakePiece(White, Pawn) {
		t.Fatal("capturing pawn missing from destination square")
	}
}

func TestIsRepetitionStride(t *testing.T) {
	s := NewState()
	cycle := []string{"g1f3", "g8f6", "f3g1", "f6g8"}
	for round := 0; round < 2; round++ {
		for i, uci := range cycle {
			from, to, promo, _ := ParseUCIMove(uci)
			var ml MoveList
			GenerateMoves(&s, &ml)
			m, ok := findTestMove(&ml, from, to, promo)
			if !ok {
				t.Fatalf("move %s not found", uci)
			}
			if !s.MakeMove(m) {
				t.Fatalf("move %s illegal", uci)
			}
			if round == 0 && i < len(cycle)-1 && s.IsRepetition() {
				t.Fatalf("repetition falsely detected after %s in the first cycle", uci)
			}
		}
		if round == 0 && !s.IsRepetition() {
			t.Fatal("expected repetition at the second occurrence of the start position")
		}
	}
	if !s.IsRepetition() {
		t.Fatal("expected repetition to be detected after the cycle repeats")
	}
}

func findTestMove(ml *MoveList, from, to Square, promo Figure) (Move, bool) {
	for i := 0; i < ml.Len(); i++ {
		m := ml.At(i)
		if m.From() == from && m.To() == to && m.Promotion() == promo {
			return m, true
		}
	}
	return NoMove, false
}
