package engine

import "testing"

// Standard perft counts from the start position, used to validate move
// generation, make/unmake and castling/EP/promotion handling together.
func TestPerftStartPosition(t *testing.T) {
	s := NewState()
	cases := []struct {
		depth int
		nodes uint64
	}{
		{1, 20},
		{2, 400},
		{3, 8902},
		{4, 197281},
	}
	for _, c := range cases {
		if got := Perft(&s, c.depth); got != c.nodes {
			t.Errorf("perft(%d) = %d, want %d", c.depth, got, c.nodes)
		}
	}
	if !testing.Short() {
		if got := Perft(&s, 5); got != 4865609 {
			t.Errorf("perft(5) = %d, want 4865609", got)
		}
	}
}

func TestPerftKiwipete(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping deep perft in short mode")
	}
	s, err := FromFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	if got := Perft(&s, 4); got != 4085603 {
		t.Errorf("perft(4) = %d, want 4085603", got)
	}
}

func TestPerftEndgamePosition(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping deep perft in short mode")
	}
	s, err := FromFEN("8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	if got := Perft(&s, 6); got != 11030083 {
		t.Errorf("perft(6) = %d, want 11030083", got)
	}
}

func TestGenerateMovesPromotion(t *testing.T) {
	s, err := FromFEN("8/P7/8/8/8/8/8/4k2K w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	var ml MoveList
	GenerateMoves(&s, &ml)
	promos := map[Figure]bool{}
	for i := 0; i < ml.Len(); i++ {
		m := ml.At(i)
		if m.From() == RankFile(6, 0) && m.To() == RankFile(7, 0) {
			promos[m.Promotion()] = true
		}
	}
	for _, f := range []Figure{Queen, Rook, Bishop, Knight} {
		if !promos[f] {
			t.Errorf("missing promotion to %v", f)
		}
	}
}

func TestCastlingBlockedWhenPassingThroughCheck(t *testing.T) {
	// Black rook on f8 attacks f1, which the white king must pass through
	// to castle kingside; the castle move must not be generated.
	s, err := FromFEN("5r1k/8/8/8/8/8/8/4K2R w K - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	var ml MoveList
	GenerateMoves(&s, &ml)
	for i := 0; i < ml.Len(); i++ {
		if ml.At(i).IsCastle() {
			t.Fatal("castle move generated while passing through check")
		}
	}
}

func TestGeneratedMovesAreApplicable(t *testing.T) {
	s, err := FromFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	var ml MoveList
	GenerateMoves(&s, &ml)
	legal := 0
	for i := 0; i < ml.Len(); i++ {
		child := s.Clone()
		if child.MakeMove(ml.At(i)) {
			legal++
		}
	}
	if legal == 0 {
		t.Fatal("expected at least one legal move from a rich middlegame position")
	}
}
