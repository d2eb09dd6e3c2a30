// Package information tracks, for each side, what an external observer
// still does not know about the opponent's piece identities — the
// per-rank still-hidden counters, the bitboard of still-hidden squares, and
// the never-moved mask used to restrict Flag/Bomb determinization to home
// ranks.
package information

import "github.com/jablinski/stratengine/internal/board"

// Set is an information set: for each side, how many of each rank remain
// unknown to the opponent, which squares are still hidden, and which
// hidden squares have never moved (so can still plausibly be a Flag or
// Bomb).
type Set struct {
	Unknown [2][10]int
	BB      [2]board.Bitboard
	Initial [2]board.Bitboard
}

// pieceCounts is the fixed multiset of ranks every side starts with.
var pieceCounts = map[int]int{
	board.Flag:    1,
	board.Spy:     1,
	board.Scout:   8,
	board.Miner:   5,
	board.General: 1,
	board.Marshal: 1,
	board.Bomb:    6,
}

// FromPosition builds the starting information set from a fully-revealed
// starting position (every square known to its own side, hidden from the
// opponent).
func FromPosition(pos *board.Position) Set {
	var s Set
	for side := 0; side < 2; side++ {
		for piece, count := range pieceCounts {
			s.Unknown[side][piece] = count
		}
		s.BB[side] = pos.BB[side]
		s.Initial[side] = pos.BB[side]
	}
	return s
}

// Available returns the squares of side still hidden from its opponent.
func (s *Set) Available(side int) board.Bitboard {
	return s.BB[side]
}

// AvailableImmovable returns the still-hidden squares of side that have
// never moved — the only squares eligible to hold a Flag or a Bomb under
// determinization, since both ranks are immovable.
func (s *Set) AvailableImmovable(side int) board.Bitboard {
	return s.BB[side] & s.Initial[side]
}

// Remove marks sq as no longer hidden, because piece was revealed there
// (by capture, or by moving more than one square in a straight line, which
// only a Scout can do).
func (s *Set) Remove(side int, piece int, sq board.Square) {
	bit := board.Bitboard(1) << sq
	if s.BB[side]&bit == 0 {
		return
	}
	s.BB[side] &^= bit
	s.Initial[side] &^= bit
	if s.Unknown[side][piece] > 0 {
		s.Unknown[side][piece]--
	}
}

// distance returns the Chebyshev/Manhattan straight-line distance between
// two squares sharing a rank or file, or 0 if they don't.
func distance(from, to board.Square) int {
	df := board.File(from) - board.File(to)
	dr := board.RankOf(from) - board.RankOf(to)
	if df == 0 {
		if dr < 0 {
			dr = -dr
		}
		return dr
	}
	if dr == 0 {
		if df < 0 {
			df = -df
		}
		return df
	}
	return 0
}

// Update reveals information implied by mov, called with pos still in its
// pre-move state (board.Position.Piece(mov.To) must still return the
// defender's rank). Grounded on original_source/src/stratego/information.rs's
// InformationSet::update: a capture always reveals the defender's rank (it
// has to be known to resolve combat); if the source square was itself
// still hidden, its bit transfers from mov.From to mov.To (a quiet,
// single-step move keeps the mover hidden at its new square), except that
// a capture or a slide of more than one square (only a Scout can do that)
// reveals the mover's own rank too, clearing the bit right back off.
func (s *Set) Update(mov board.Move, pos *board.Position, movingSide int) {
	piece := int(mov.Piece)
	fromBit := board.Bitboard(1) << mov.From
	toBit := board.Bitboard(1) << mov.To

	defender := movingSide ^ 1
	if mov.Flag&board.FlagCapture != 0 && s.BB[defender]&toBit != 0 {
		s.Remove(defender, pos.Piece(mov.To), mov.To)
	}

	if s.BB[movingSide]&fromBit == 0 {
		return
	}

	s.Initial[movingSide] &^= fromBit
	s.BB[movingSide] &^= fromBit
	s.BB[movingSide] |= toBit

	if mov.Flag&board.FlagCapture != 0 {
		s.Remove(movingSide, piece, mov.To)
	} else if distance(mov.From, mov.To) > 1 {
		s.Remove(movingSide, board.Scout, mov.To)
	}
}
