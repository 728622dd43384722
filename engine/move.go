// move.go defines the packed 32-bit Move encoding and the fixed-capacity
// move list generation writes into, grounded on dragontoothmg's bitfield
// Move (from/to/promotion packed into an integer with accessor methods),
// widened to carry the capture/double-push/en-passant/castle flags this
// design's make_move and move ordering need.
package engine

import "fmt"

// Move packs a move into 32 bits. The zero value is NoMove: no legal move
// ever has from == to == 0, so the all-zero pattern is a safe sentinel.
type Move uint32

// NoMove is the "no move" sentinel.
const NoMove Move = 0

const (
	moveFromShift  = 0
	moveToShift    = 6
	movePieceShift = 12
	movePromoShift = 15
	moveCapBit     = 1 << 18
	moveDoubleBit  = 1 << 19
	moveEPBit      = 1 << 20
	moveCastleBit  = 1 << 21

	moveSquareMask = 0x3f
	moveFigureMask = 0x7

	// noPromotion is the out-of-range sentinel for "not a promotion";
	// Figure values only ever use 0..5, so 7 never collides.
	noPromotion = Figure(7)
)

// newMove packs a move. promotion should be NoFigure's sibling sentinel
// when the move is not a promotion; callers pass noPromotion via the
// convenience constructors below.
func newMove(from, to Square, piece, promo Figure, capture, double, ep, castle bool) Move {
	m := Move(from)<<moveFromShift | Move(to)<<moveToShift | Move(piece)<<movePieceShift | Move(promo)<<movePromoShift
	if capture {
		m |= moveCapBit
	}
	if double {
		m |= moveDoubleBit
	}
	if ep {
		m |= moveEPBit
	}
	if castle {
		m |= moveCastleBit
	}
	return m
}

// NewQuietMove builds a non-capturing, non-special move.
func NewQuietMove(from, to Square, piece Figure) Move {
	return newMove(from, to, piece, noPromotion, false, false, false, false)
}

// NewCaptureMove builds a capturing move.
func NewCaptureMove(from, to Square, piece Figure) Move {
	return newMove(from, to, piece, noPromotion, true, false, false, false)
}

// NewDoublePushMove builds a two-square pawn push.
func NewDoublePushMove(from, to Square) Move {
	return newMove(from, to, Pawn, noPromotion, false, true, false, false)
}

// NewEnPassantMove builds an en-passant capture.
func NewEnPassantMove(from, to Square) Move {
	return newMove(from, to, Pawn, noPromotion, true, false, true, false)
}

// NewCastleMove builds a castling move; from/to are the king's squares.
func NewCastleMove(from, to Square) Move {
	return newMove(from, to, King, noPromotion, false, false, false, true)
}

// NewPromotionMove builds a (possibly capturing) pawn promotion.
func NewPromotionMove(from, to Square, promo Figure, capture bool) Move {
	return newMove(from, to, Pawn, promo, capture, false, false, false)
}

// From returns the origin square.
func (m Move) From() Square { return Square(m>>moveFromShift) & moveSquareMask }

// To returns the destination square.
func (m Move) To() Square { return Square(m>>moveToShift) & moveSquareMask }

// Piece returns the figure that is moving.
func (m Move) Piece() Figure { return Figure(m>>movePieceShift) & moveFigureMask }

// Promotion returns the promotion figure, or NoFigure if this move is not a
// promotion.
func (m Move) Promotion() Figure {
	p := Figure(m>>movePromoShift) & moveFigureMask
	if p == noPromotion {
		return NoFigure
	}
	return p
}

// IsPromotion reports whether this move promotes a pawn.
func (m Move) IsPromotion() bool { return m.Promotion() != NoFigure }

// IsCapture reports whether this move captures a piece (en-passant counts).
func (m Move) IsCapture() bool { return m&moveCapBit != 0 }

// IsDoublePush reports whether this move is a two-square pawn push.
func (m Move) IsDoublePush() bool { return m&moveDoubleBit != 0 }

// IsEnPassant reports whether this move is an en-passant capture.
func (m Move) IsEnPassant() bool { return m&moveEPBit != 0 }

// IsCastle reports whether this move is a castling move.
func (m Move) IsCastle() bool { return m&moveCastleBit != 0 }

// UCI renders the move as a UCI move string: <from><to>[promo].
func (m Move) UCI() string {
	if m == NoMove {
		return "0000"
	}
	s := m.From().String() + m.To().String()
	if p := m.Promotion(); p != NoFigure {
		s += p.String()
	}
	return s
}

func (m Move) String() string { return m.UCI() }

// MoveList is a fixed-capacity, append-only sequence of moves produced
// fresh per search node, with a sortable prefix used by move ordering.
type MoveList struct {
	moves  [256]Move
	scores [256]int32
	n      int
}

// Reset empties the list for reuse.
func (ml *MoveList) Reset() { ml.n = 0 }

// Add appends a move. Callers must not exceed the 256-move capacity; no
// legal chess position has that many pseudo-legal moves.
func (ml *MoveList) Add(m Move) {
	ml.moves[ml.n] = m
	ml.n++
}

// Len returns the number of moves currently in the list.
func (ml *MoveList) Len() int { return ml.n }

// At returns the move at index i.
func (ml *MoveList) At(i int) Move { return ml.moves[i] }

// Set overwrites the move at index i, used by move ordering's sort.
func (ml *MoveList) Set(i int, m Move) { ml.moves[i] = m }

// SetScore records an ordering score for the move at index i.
func (ml *MoveList) SetScore(i int, score int32) { ml.scores[i] = score }

// Score returns the ordering score for the move at index i.
func (ml *MoveList) Score(i int) int32 { return ml.scores[i] }

// Swap exchanges the moves (and scores) at i and j.
func (ml *MoveList) Swap(i, j int) {
	ml.moves[i], ml.moves[j] = ml.moves[j], ml.moves[i]
	ml.scores[i], ml.scores[j] = ml.scores[j], ml.scores[i]
}

// Contains reports whether m is present in the list, used when validating
// an externally supplied UCI move against pseudo-legal generation.
func (ml *MoveList) Contains(m Move) bool {
	for i := 0; i < ml.n; i++ {
		if ml.moves[i] == m {
			return true
		}
	}
	return false
}

var figureFromPromoLetter = map[byte]Figure{'n': Knight, 'b': Bishop, 'r': Rook, 'q': Queen}

// ParseUCIMove decodes a UCI move string. It does not validate legality;
// callers must match the result against pseudo-legal generation.
func ParseUCIMove(s string) (from, to Square, promo Figure, err error) {
	if len(s) < 4 || len(s) > 5 {
		return 0, 0, NoFigure, fmt.Errorf("engine: invalid uci move %q", s)
	}
	from, err = SquareFromString(s[0:2])
	if err != nil {
		return 0, 0, NoFigure, fmt.Errorf("engine: invalid uci move %q", s)
	}
	to, err = SquareFromString(s[2:4])
	if err != nil {
		return 0, 0, NoFigure, fmt.Errorf("engine: invalid uci move %q", s)
	}
	promo = NoFigure
	if len(s) == 5 {
		f, ok := figureFromPromoLetter[s[4]]
		if !ok {
			return 0, 0, NoFigure, fmt.Errorf("engine: invalid uci move %q", s)
		}
		promo = f
	}
	return from, to, promo, nil
}
