// book.go implements the opening book: a constant mapping from position
// hash to a non-empty set of book moves, built once at startup by walking
// a nested declarative structure and validating every move against the
// move generator. Grounded on the teacher's style of walking a nested
// parsed structure while mutating a position (notation/epd_ast.go walks
// an EPD AST node-by-node in much the same recursive shape); here the
// "AST" is a plain nested Go map literal instead of parsed text, per
// spec.md's "embedded nested declarative file" requirement.
package engine

import (
	"fmt"
	"math/rand"
)

// ErrUnknownBookMove is returned by book construction when a move in the
// embedded book data does not correspond to any pseudo-legal move from the
// position it claims to follow.
var ErrUnknownBookMove = fmt.Errorf("engine: unknown book move")

// bookNode is one level of the nested opening tree: UCI move strings to
// the subtree of replies reachable after that move.
type bookNode struct {
	replies map[string]*bookNode
}

// Book is the built opening book, keyed by position hash.
type Book struct {
	moves map[uint64][]Move
	rng   *rand.Rand
}

// BuildBook walks bookData from the start position, validating every move
// and recording the legal-move set reachable at each hash. It panics on a
// move unknown to the generator — per spec.md's design note, this must be
// a clear build-time failure, and the embedded data is a build-time
// constant, so a panic here can only mean the data is wrong.
func BuildBook() *Book {
	b := &Book{moves: make(map[uint64][]Move), rng: rand.New(rand.NewSource(1))}
	start := NewState()
	if err := b.walk(&start, openingBookData); err != nil {
		panic("engine: " + err.Error())
	}
	return b
}

func (b *Book) walk(s *State, node map[string]*bookNode) error {
	var ml MoveList
	GenerateMoves(s, &ml)

	for uci, next := range node {
		from, to, promo, err := ParseUCIMove(uci)
		if err != nil {
			return fmt.Errorf("%w: %q: %v", ErrUnknownBookMove, uci, err)
		}
		m, ok := findMove(&ml, from, to, promo)
		if !ok {
			return fmt.Errorf("%w: %q is not legal in %s", ErrUnknownBookMove, uci, s.FEN())
		}

		child := s.Clone()
		if !child.MakeMove(m) {
			return fmt.Errorf("%w: %q is illegal in %s", ErrUnknownBookMove, uci, s.FEN())
		}

		b.addMove(s.Hash, m)
		if next != nil && len(next.replies) > 0 {
			if err := b.walk(&child, next.replies); err != nil {
				return err
			}
		}
	}
	return nil
}

func findMove(ml *MoveList, from, to Square, promo Figure) (Move, bool) {
	for i := 0; i < ml.Len(); i++ {
		m := ml.At(i)
		if m.From() == from && m.To() == to && m.Promotion() == promo {
			return m, true
		}
	}
	return NoMove, false
}

func (b *Book) addMove(hash uint64, m Move) {
	for _, existing := range b.moves[hash] {
		if existing == m {
			return
		}
	}
	b.moves[hash] = append(b.moves[hash], m)
}

// Lookup returns a uniformly random book move for s, if s.FullmoveNumber
// is within book range and its hash is known.
func (b *Book) Lookup(s *State) (Move, bool) {
	if s.FullmoveNumber > 6 {
		return NoMove, false
	}
	moves, ok := b.moves[s.Hash]
	if !ok || len(moves) == 0 {
		return NoMove, false
	}
	return moves[b.rng.Intn(len(moves))], true
}
