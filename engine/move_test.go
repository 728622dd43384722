package engine

import "testing"

func TestMoveAccessorsRoundTrip(t *testing.T) {
	m := NewQuietMove(RankFile(1, 4), RankFile(3, 4), Pawn)
	if m.From() != RankFile(1, 4) || m.To() != RankFile(3, 4) || m.Piece() != Pawn {
		t.Fatalf("quiet move accessors wrong: %+v", m)
	}
	if m.IsCapture() || m.IsDoublePush() || m.IsEnPassant() || m.IsCastle() || m.IsPromotion() {
		t.Fatal("plain quiet move should carry no flags")
	}

	c := NewCaptureMove(RankFile(3, 4), RankFile(4, 5), Knight)
	if !c.IsCapture() || c.Piece() != Knight {
		t.Fatalf("capture move accessors wrong: %+v", c)
	}

	d := NewDoublePushMove(RankFile(1, 3), RankFile(3, 3))
	if !d.IsDoublePush() || d.Piece() != Pawn {
		t.Fatalf("double push accessors wrong: %+v", d)
	}

	ep := NewEnPassantMove(RankFile(4, 4), RankFile(5, 3))
	if !ep.IsEnPassant() || !ep.IsCapture() {
		t.Fatalf("en passant accessors wrong: %+v", ep)
	}

	castle := NewCastleMove(RankFile(0, 4), RankFile(0, 6))
	if !castle.IsCastle() || castle.Piece() != King {
		t.Fatalf("castle accessors wrong: %+v", castle)
	}

	promo := NewPromotionMove(RankFile(6, 0), RankFile(7, 0), Queen, false)
	if !promo.IsPromotion() || promo.Promotion() != Queen {
		t.Fatalf("promotion accessors wrong: %+v", promo)
	}
	if promo.IsCapture() {
		t.Fatal("non-capturing promotion should not report IsCapture")
	}
}

func TestMoveZeroValueIsNoMove(t *testing.T) {
	var m Move
	if m != NoMove {
		t.Fatal("zero value of Move must equal NoMove")
	}
	if NoMove.UCI() != "0000" {
		t.Fatalf("NoMove.UCI() = %q, want 0000", NoMove.UCI())
	}
}

func TestMoveUCIString(t *testing.T) {
	m := NewPromotionMove(RankFile(6, 4), RankFile(7, 4), Queen, false)
	if got, want := m.UCI(), "e7e8q"; got != want {
		t.Errorf("UCI() = %q, want %q", got, want)
	}
}

func TestParseUCIMove(t *testing.T) {
	from, to, promo, err := ParseUCIMove("e2e4")
	if err != nil {
		t.Fatal(err)
	}
	if from != RankFile(1, 4) || to != RankFile(3, 4) || promo != NoFigure {
		t.Fatalf("ParseUCIMove(e2e4) = %v %v %v", from, to, promo)
	}

	from, to, promo, err = ParseUCIMove("a7a8q")
	if err != nil {
		t.Fatal(err)
	}
	if from != RankFile(6, 0) || to != RankFile(7, 0) || promo != Queen {
		t.Fatalf("ParseUCIMove(a7a8q) = %v %v %v", from, to, promo)
	}

	for _, bad := range []string{"", "e2", "e2e4qq", "z9e4", "e2z4"} {
		if _, _, _, err := ParseUCIMove(bad); err == nil {
			t.Errorf("ParseUCIMove(%q): expected error", bad)
		}
	}
}

func TestMoveListBasics(t *testing.T) {
	var ml MoveList
	if ml.Len() != 0 {
		t.Fatal("new MoveList should be empty")
	}
	a := NewQuietMove(RankFile(1, 4), RankFile(2, 4), Pawn)
	b := NewQuietMove(RankFile(1, 3), RankFile(2, 3), Pawn)
	ml.Add(a)
	ml.Add(b)
	if ml.Len() != 2 || ml.At(0) != a || ml.At(1) != b {
		t.Fatal("MoveList.Add/At mismatch")
	}
	if !ml.Contains(a) || ml.Contains(NewQuietMove(RankFile(1, 2), RankFile(2, 2), Pawn)) {
		t.Fatal("MoveList.Contains wrong")
	}
	ml.SetScore(0, 5)
	ml.SetScore(1, 10)
	ml.Swap(0, 1)
	if ml.At(0) != b || ml.Score(0) != 10 || ml.At(1) != a || ml.Score(1) != 5 {
		t.Fatal("MoveList.Swap did not move scores with moves")
	}
	ml.Reset()
	if ml.Len() != 0 {
		t.Fatal("MoveList.Reset did not empty the list")
	}
}
