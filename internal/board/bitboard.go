package board

import "math/bits"

// Bitboard is a 64-square occupancy mask, bit i set means square i occupied.
// Squares are numbered file-major within rank: sq = rank*8 + file.
type Bitboard = uint64

// Lakes is the fixed forbidden-square mask: b4,c4,b5,c5,f4,g4,f5,g5.
const Lakes Bitboard = 0x6666000000

// Square is a board index in [0, 64).
type Square = uint8

// File returns the 0-based file (a..h) of a square.
func File(sq Square) int { return int(sq & 7) }

// RankOf returns the 0-based rank (0..7 for ranks 1..8) of a square.
func RankOf(sq Square) int { return int(sq >> 3) }

// PopLSB returns the index of the least-significant set bit and the
// bitboard with that bit cleared. Callers must not invoke it on a zero
// bitboard.
func PopLSB(bb Bitboard) (Square, Bitboard) {
	sq := Square(bits.TrailingZeros64(bb))
	return sq, bb & (bb - 1)
}

// Squares iterates set bits of bb from LSB to MSB, calling fn for each.
func Squares(bb Bitboard, fn func(sq Square)) {
	for bb != 0 {
		var sq Square
		sq, bb = PopLSB(bb)
		fn(sq)
	}
}

// Popcount returns the number of set bits.
func Popcount(bb Bitboard) int { return bits.OnesCount64(bb) }
