package engine

import "testing"

// TestMaterialOrdering checks eleven positions, each differing only by one
// extra piece of a different kind, form a strictly decreasing evaluation
// from white up a queen to black up a queen. Every extra piece sits on a
// square whose piece-square value is exactly zero (verified against the
// tables in eval.go) so the ordering reflects material alone.
func TestMaterialOrdering(t *testing.T) {
	fens := []string{
		"4k3/8/8/8/8/8/2Q5/4K3 w - - 0 1", // white up a queen
		"4k3/8/8/8/8/8/8/R3K3 w - - 0 1",  // white up a rook
		"4k3/8/8/8/8/8/3B4/4K3 w - - 0 1", // white up a bishop
		"4k3/8/8/8/1N6/8/8/4K3 w - - 0 1", // white up a knight
		"4k3/8/8/8/8/8/8/1P2K3 w - - 0 1", // white up a pawn
		"4k3/8/8/8/8/8/8/4K3 w - - 0 1",   // material equal
		"4k3/8/8/8/8/8/8/2p1K3 w - - 0 1", // black up a pawn
		"4k3/8/8/1n6/8/8/8/4K3 w - - 0 1", // black up a knight
		"4k3/3b4/8/8/8/8/8/4K3 w - - 0 1", // black up a bishop
		"r3k3/8/8/8/8/8/8/4K3 w - - 0 1",  // black up a rook
		"4k3/2q5/8/8/8/8/8/4K3 w - - 0 1", // black up a queen
	}

	prev := 1 << 30
	for i, fen := range fens {
		s, err := FromFEN(fen)
		if err != nil {
			t.Fatalf("FromFEN(%q): %v", fen, err)
		}
		score := Eval(&s)
		if score >= prev {
			t.Errorf("position %d (%q): eval %d not strictly less than previous %d", i, fen, score, prev)
		}
		prev = score
	}
}

func TestEvalStartPositionIsZero(t *testing.T) {
	s := NewState()
	if got := Eval(&s); got != 0 {
		t.Errorf("Eval(startpos) = %d, want 0", got)
	}
}

func TestRelativeEvalFlipsForBlack(t *testing.T) {
	s, err := FromFEN("4k3/8/8/8/8/8/2Q5/4K3 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	white := Eval(&s)
	if got := RelativeEval(&s); got != white {
		t.Errorf("RelativeEval with white to move = %d, want %d", got, white)
	}

	s, err = FromFEN("4k3/8/8/8/8/8/2Q5/4K3 b - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	if got := RelativeEval(&s); got != -white {
		t.Errorf("RelativeEval with black to move = %d, want %d", got, -white)
	}
}
