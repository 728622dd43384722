// position.go implements State: the bitboard position model, FEN
// parsing/printing, attack detection and make_move. Grounded on the
// teacher's engine/position.go for field naming and FEN handling, but the
// lifecycle is redesigned per the copy-then-mutate rationale: State is a
// plain value, passing it by value to a function already copies it (the
// History slice header copies too; see the History field comment for why
// that sharing is safe), and MakeMove mutates in place, restoring an
// internal snapshot on illegality instead of requiring a paired unmake.
package engine

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidFEN is returned when a FEN string is malformed.
var ErrInvalidFEN = fmt.Errorf("engine: invalid FEN")

// ErrIllegalMove names the failure of a move that would leave the moving
// side's king in check. MakeMove reports that failure by returning false;
// it does not return this value.
var ErrIllegalMove = fmt.Errorf("engine: illegal move")

// StartFEN is the canonical starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// State is the position: piece/colour bitboards, side to move, castling
// rights, EP target, halfmove clock, fullmove number, Zobrist hash and
// repetition history. It is a cheap value type; copying it (including by
// passing it as a function argument) is the intended way to snapshot it
// before a trial move.
type State struct {
	Pieces   [6]Bitboard
	Colors   [2]Bitboard
	Occupied Bitboard
	ToMove   Color
	EPTarget Square
	Castling Castle

	HalfmoveClock  int
	FullmoveNumber int
	Hash           uint64

	// History holds the hashes of prior positions in the current
	// irreversible segment, used by IsRepetition. Copying a State copies
	// this slice's header, not its backing array; MakeMove always
	// reallocates on append (see the append call below), so a child's
	// mutations never reach a sibling or its parent. Search explores
	// siblings depth-first and single-threaded, so that reallocate-on-
	// write discipline is the only safety property needed.
	History []uint64
}

// NewState returns the canonical starting position.
func NewState() State {
	s, err := FromFEN(StartFEN)
	if err != nil {
		panic("engine: start FEN must parse: " + err.Error())
	}
	return s
}

// Clone returns an independent deep copy of s.
func (s State) Clone() State {
	ns := s
	ns.History = append([]uint64(nil), s.History...)
	return ns
}

func bit(sq Square) Bitboard { return Bitboard(1) << uint(sq) }

func (s *State) place(sq Square, p Piece) {
	b := bit(sq)
	s.Pieces[p.Figure()] |= b
	s.Colors[p.Color()] |= b
	s.Hash ^= zobristPiece[p.Color()][p.Figure()][sq]
}

func (s *State) remove(sq Square, p Piece) {
	b := bit(sq)
	s.Pieces[p.Figure()] &^= b
	s.Colors[p.Color()] &^= b
	s.Hash ^= zobristPiece[p.Color()][p.Figure()][sq]
}

// PieceAt returns the piece on sq, or NoPiece if sq is empty.
func (s *State) PieceAt(sq Square) Piece {
	var c Color
	switch {
	case s.Colors[White].Has(sq):
		c = White
	case s.Colors[Black].Has(sq):
		c = Black
	default:
		return NoPiece
	}
	for f := Figure(0); f < NoFigure; f++ {
		if s.Pieces[f].Has(sq) {
			return MakePiece(c, f)
		}
	}
	return NoPiece
}

// KingSquare returns the square of c's king.
func (s *State) KingSquare(c Color) Square {
	return (s.Pieces[King] & s.Colors[c]).LSB()
}

// SquareAttacked reports whether any piece of byColour attacks sq. Each
// piece kind's attack set from sq is overlaid with that kind's bitboard of
// the attacking colour, exploiting attack symmetry (the pawn case is the
// textbook instance: the squares a byColour pawn could attack sq from are
// exactly the squares a sq-standing pawn of the other colour would attack).
func (s *State) SquareAttacked(sq Square, byColour Color) bool {
	if PawnAttack[sq][byColour.Other()]&s.Pieces[Pawn]&s.Colors[byColour] != 0 {
		return true
	}
	if KnightAttack[sq]&s.Pieces[Knight]&s.Colors[byColour] != 0 {
		return true
	}
	if KingAttack[sq]&s.Pieces[King]&s.Colors[byColour] != 0 {
		return true
	}
	diagonal := (s.Pieces[Bishop] | s.Pieces[Queen]) & s.Colors[byColour]
	if BishopAttack(sq, s.Occupied)&diagonal != 0 {
		return true
	}
	straight := (s.Pieces[Rook] | s.Pieces[Queen]) & s.Colors[byColour]
	if RookAttack(sq, s.Occupied)&straight != 0 {
		return true
	}
	return false
}

// IsInCheck reports whether c's king is attacked.
func (s *State) IsInCheck(c Color) bool {
	return s.SquareAttacked(s.KingSquare(c), c.Other())
}

// IsRepetition reports whether the current hash appears in History at the
// same side to move: indices are checked at stride 2 starting from the
// second-to-last entry and descending, so only positions with the same
// side to move as the current position are compared (the last entry is
// always one ply back, the opposite side). History is cleared on
// irreversible moves, which is what makes this sound as a two-fold check.
func (s *State) IsRepetition() bool {
	for i := len(s.History) - 2; i >= 0; i -= 2 {
		if s.History[i] == s.Hash {
			return true
		}
	}
	return false
}

func castleRookSquares(to Square) (from, dest Square, p Piece) {
	switch to {
	case RankFile(0, 6):
		return RankFile(0, 7), RankFile(0, 5), MakePiece(White, Rook)
	case RankFile(0, 2):
		return RankFile(0, 0), RankFile(0, 3), MakePiece(White, Rook)
	case RankFile(7, 6):
		return RankFile(7, 7), RankFile(7, 5), MakePiece(Black, Rook)
	case RankFile(7, 2):
		return RankFile(7, 0), RankFile(7, 3), MakePiece(Black, Rook)
	default:
		panic("engine: castle move to unexpected square")
	}
}

// MakeMove applies m, updating every field, and verifies the moving side's
// king is not left in check. On success it returns true. On failure it
// restores s to its pre-move contents and returns false (ErrIllegalMove is
// the conceptual reason; MakeMove reports it as a bool per spec so callers
// in the search hot path don't pay for an error allocation).
func (s *State) MakeMove(m Move) bool {
	saved := *s
	mover := s.ToMove
	from, to := m.From(), m.To()
	piece := m.Piece()

	capturedSq := to
	if m.IsEnPassant() {
		if mover == White {
			capturedSq = RankFile(to.Rank()-1, to.File())
		} else {
			capturedSq = RankFile(to.Rank()+1, to.File())
		}
	}
	if m.IsCapture() {
		s.remove(capturedSq, s.PieceAt(capturedSq))
	}

	s.remove(from, MakePiece(mover, piece))
	finalFigure := piece
	if promo := m.Promotion(); promo != NoFigure {
		finalFigure = promo
	}
	s.place(to, MakePiece(mover, finalFigure))

	if m.IsCastle() {
		rFrom, rTo, rPiece := castleRookSquares(to)
		s.remove(rFrom, rPiece)
		s.place(rTo, rPiece)
	}
	s.Occupied = s.Colors[White] | s.Colors[Black]

	newCastling := s.Castling
	if piece == King {
		if mover == White {
			newCastling &^= WhiteOO | WhiteOOO
		} else {
			newCastling &^= BlackOO | BlackOOO
		}
	}
	touches := func(sq Square) bool {
		return from == sq || (m.IsCapture() && capturedSq == sq)
	}
	if touches(RankFile(0, 7)) {
		newCastling &^= WhiteOO
	}
	if touches(RankFile(0, 0)) {
		newCastling &^= WhiteOOO
	}
	if touches(RankFile(7, 7)) {
		newCastling &^= BlackOO
	}
	if touches(RankFile(7, 0)) {
		newCastling &^= BlackOOO
	}
	if newCastling != s.Castling {
		s.Hash ^= zobristCastle[s.Castling]
		s.Hash ^= zobristCastle[newCastling]
		s.Castling = newCastling
	}

	if s.EPTarget != NoSquare {
		s.Hash ^= zobristEPFile[s.EPTarget.File()]
	}
	if m.IsDoublePush() {
		var epSq Square
		if mover == White {
			epSq = RankFile(to.Rank()-1, to.File())
		} else {
			epSq = RankFile(to.Rank()+1, to.File())
		}
		s.EPTarget = epSq
		s.Hash ^= zobristEPFile[epSq.File()]
	} else {
		s.EPTarget = NoSquare
	}

	irreversible := m.IsCapture() || piece == Pawn || m.IsCastle()
	if irreversible {
		s.HalfmoveClock = 0
		s.History = nil
	} else {
		s.HalfmoveClock++
		s.History = append(append([]uint64(nil), s.History...), saved.Hash)
	}

	s.Hash ^= zobristWhiteToMove
	if mover == Black {
		s.FullmoveNumber++
	}
	s.ToMove = mover.Other()

	if s.SquareAttacked(s.KingSquare(mover), mover.Other()) {
		*s = saved
		return false
	}
	return true
}

// ComputeHash recomputes the Zobrist hash from scratch, for invariant
// checking against the incrementally maintained Hash field.
func (s *State) ComputeHash() uint64 {
	var h uint64
	for c := Color(0); c < 2; c++ {
		for f := Figure(0); f < NoFigure; f++ {
			bb := s.Pieces[f] & s.Colors[c]
			for bb != 0 {
				sq := bb.Pop()
				h ^= zobristPiece[c][f][sq]
			}
		}
	}
	h ^= zobristCastle[s.Castling]
	if s.EPTarget != NoSquare {
		h ^= zobristEPFile[s.EPTarget.File()]
	}
	if s.ToMove == White {
		h ^= zobristWhiteToMove
	}
	return h
}

var pieceFromFENLetter = map[byte]Piece{
	'P': MakePiece(White, Pawn), 'N': MakePiece(White, Knight), 'B': MakePiece(White, Bishop),
	'R': MakePiece(White, Rook), 'Q': MakePiece(White, Queen), 'K': MakePiece(White, King),
	'p': MakePiece(Black, Pawn), 'n': MakePiece(Black, Knight), 'b': MakePiece(Black, Bishop),
	'r': MakePiece(Black, Rook), 'q': MakePiece(Black, Queen), 'k': MakePiece(Black, King),
}

// FromFEN parses a 6-field FEN into a State. Malformed input is reported
// as ErrInvalidFEN; it never panics.
func FromFEN(fen string) (State, error) {
	fields := strings.Fields(fen)
	if len(fields) != 6 {
		return State{}, fmt.Errorf("%w: expected 6 fields, got %d", ErrInvalidFEN, len(fields))
	}
	var s State
	ranks := strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		return State{}, fmt.Errorf("%w: expected 8 ranks", ErrInvalidFEN)
	}
	for i, rankStr := range ranks {
		rank := 7 - i
		file := 0
		for _, ch := range []byte(rankStr) {
			if ch >= '1' && ch <= '8' {
				file += int(ch - '0')
				continue
			}
			p, ok := pieceFromFENLetter[ch]
			if !ok || file > 7 {
				return State{}, fmt.Errorf("%w: bad piece placement", ErrInvalidFEN)
			}
			s.place(RankFile(rank, file), p)
			file++
		}
		if file != 8 {
			return State{}, fmt.Errorf("%w: rank does not sum to 8 files", ErrInvalidFEN)
		}
	}
	s.Occupied = s.Colors[White] | s.Colors[Black]

	switch fields[1] {
	case "w":
		s.ToMove = White
		s.Hash ^= zobristWhiteToMove
	case "b":
		s.ToMove = Black
	default:
		return State{}, fmt.Errorf("%w: bad side to move", ErrInvalidFEN)
	}

	if fields[2] != "-" {
		for _, ch := range []byte(fields[2]) {
			switch ch {
			case 'K':
				s.Castling |= WhiteOO
			case 'Q':
				s.Castling |= WhiteOOO
			case 'k':
				s.Castling |= BlackOO
			case 'q':
				s.Castling |= BlackOOO
			default:
				return State{}, fmt.Errorf("%w: bad castling field", ErrInvalidFEN)
			}
		}
	}
	s.Hash ^= zobristCastle[s.Castling]

	ep, err := SquareFromString(fields[3])
	if err != nil {
		return State{}, fmt.Errorf("%w: bad ep field", ErrInvalidFEN)
	}
	s.EPTarget = ep
	if s.EPTarget != NoSquare {
		s.Hash ^= zobristEPFile[s.EPTarget.File()]
	}

	hc, err := strconv.Atoi(fields[4])
	if err != nil || hc < 0 {
		return State{}, fmt.Errorf("%w: bad halfmove clock", ErrInvalidFEN)
	}
	s.HalfmoveClock = hc

	fm, err := strconv.Atoi(fields[5])
	if err != nil || fm < 1 {
		return State{}, fmt.Errorf("%w: bad fullmove number", ErrInvalidFEN)
	}
	s.FullmoveNumber = fm

	return s, nil
}

// FEN renders s as a 6-field FEN string.
func (s *State) FEN() string {
	var sb strings.Builder
	w := bufio.NewWriter(&sb)
	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file <= 7; file++ {
			p := s.PieceAt(RankFile(rank, file))
			if p == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				fmt.Fprintf(w, "%d", empty)
				empty = 0
			}
			fmt.Fprint(w, p.String())
		}
		if empty > 0 {
			fmt.Fprintf(w, "%d", empty)
		}
		if rank > 0 {
			fmt.Fprint(w, "/")
		}
	}
	if s.ToMove == White {
		fmt.Fprint(w, " w ")
	} else {
		fmt.Fprint(w, " b ")
	}
	fmt.Fprint(w, s.Castling.String())
	fmt.Fprintf(w, " %s %d %d", s.EPTarget.String(), s.HalfmoveClock, s.FullmoveNumber)
	w.Flush()
	return sb.String()
}
