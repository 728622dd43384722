// zobrist.go precomputes the random keys used for incremental position
// hashing. Any reproducible pseudo-random sequence is acceptable; only
// stability within a single binary matters.
//
// More information on Zobrist hashing can be found in the paper:
// http://research.cs.wisc.edu/techreports/1970/TR88.pdf
package engine

import "math/rand"

var (
	// zobristPiece[colour][figure][sq] is XORed in when that piece
	// occupies that square.
	zobristPiece [2][6][64]uint64
	// zobristCastle[mask] is XORed in for the current 4-bit castling mask.
	zobristCastle [16]uint64
	// zobristEPFile[file] is XORed in when an en-passant target exists on
	// that file.
	zobristEPFile [8]uint64
	// zobristWhiteToMove is XORed in iff it is white's turn.
	zobristWhiteToMove uint64
)

func rand64(r *rand.Rand) uint64 {
	return uint64(r.Int63())<<32 ^ uint64(r.Int63())
}

func init() {
	r := rand.New(rand.NewSource(1))
	for c := Color(0); c < 2; c++ {
		for f := Figure(0); f < 6; f++ {
			for sq := Square(0); sq < 64; sq++ {
				zobristPiece[c][f][sq] = rand64(r)
			}
		}
	}
	for i := range zobristCastle {
		zobristCastle[i] = rand64(r)
	}
	for i := range zobristEPFile {
		zobristEPFile[i] = rand64(r)
	}
	zobristWhiteToMove = rand64(r)
}
