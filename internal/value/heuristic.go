package value

import (
	"math/rand"

	"github.com/chewxy/math32"

	"github.com/jablinski/stratengine/internal/board"
	"github.com/jablinski/stratengine/internal/gamestate"
)

// pieceValues mirrors the original engine's hand-tuned material weights,
// indexed piece-2 (Flag..Bomb).
var pieceValues = [8]float32{
	10000, // Flag
	200,   // Spy
	25,    // Scout
	30,    // Miner
	200,   // General
	400,   // Marshal
	0,     // Unknown
	20,    // Bomb
}

// Heuristic returns a static evaluation Func, scaled through tanh so its
// output stays in (-1, 1) regardless of material imbalance.
func Heuristic(scaling float32) Func {
	return func(state *gamestate.State, _ *rand.Rand) float32 {
		return math32.Tanh(evaluate(state) / scaling)
	}
}

// evaluate scores the position from the side-to-move's perspective,
// folding in material value, flag-adjacency danger bonuses, a halving for
// pieces already revealed to the opponent, Spy/Marshal matchup adjustments
// and a lone-piece bonus for otherwise-scarce ranks.
func evaluate(state *gamestate.State) float32 {
	pos := &state.Pos
	info := &state.Info

	stm := 0
	if pos.STM {
		stm = 1
	}

	var sum float32
	for _, side := range [2]int{stm, stm ^ 1} {
		us := pos.BB[side]
		them := pos.BB[side^1]
		unknown := info.Available(side)

		flagBB := pos.BB[board.Flag] & them
		if flagBB == 0 {
			sum -= pieceValues[0]
			sum = -sum
			continue
		}
		flagSq, _ := board.PopLSB(flagBB)
		flagAdjacency := board.Orthogonal(int(flagSq)) | (board.Bitboard(1) << flagSq)

		var max float32
		for piece := board.Spy; piece <= board.Bomb; piece++ {
			if piece == board.Unknown {
				continue
			}

			mask := pos.BB[piece] & us
			count := board.Popcount(mask)
			if count == 0 {
				continue
			}

			v := pieceValues[piece-2]
			if piece == board.Bomb {
				v = max * 0.5
			}
			if piece == board.Marshal && pos.BB[board.Spy]&them != 0 {
				v *= 0.5
			}
			if (piece == board.Scout || piece == board.Miner || piece == board.Bomb) && count == 1 {
				v *= 1.5
			}
			if count > board.Popcount(them&pos.BB[piece]) {
				v *= 1.5
			}
			if piece == board.Spy && them&pos.BB[board.Marshal] == 0 {
				v /= 5.0
			}
			if v > max {
				max = v
			}

			board.Squares(mask, func(sq board.Square) {
				pv := v
				if flagAdjacency&(board.Bitboard(1)<<sq) != 0 {
					pv *= 5
				}
				if unknown&(board.Bitboard(1)<<sq) == 0 {
					sum += pv / 2
				} else {
					sum += pv
				}
			})

			sum += lowerRanked(pos, side, piece, side == stm)
		}

		sum = -sum
	}

	return sum
}

// lowerRanked adds a bonus/threat term for every lower-ranked enemy piece
// orthogonally adjacent to one of side's pieces of rank piece (a Spy next
// to a Marshal, a Miner next to a Bomb, or any strictly weaker rank).
func lowerRanked(pos *board.Position, side int, piece int, bonus bool) float32 {
	var score float32
	pieceBB := pos.BB[side] & pos.BB[piece]

	board.Squares(pieceBB, func(sq board.Square) {
		orth := board.Orthogonal(int(sq))

		lowerPieces := []int{}
		for lower := board.Spy; lower < piece; lower++ {
			lowerPieces = append(lowerPieces, lower)
		}
		if piece == board.Spy {
			lowerPieces = append(lowerPieces, board.Marshal)
		}
		if piece == board.Miner {
			lowerPieces = append(lowerPieces, board.Bomb)
		}

		for _, lower := range lowerPieces {
			lowerBB := pos.BB[side^1] & pos.BB[lower]
			n := board.Popcount(lowerBB & orth)
			if n == 0 {
				continue
			}
			if bonus {
				score += float32(n) * pieceValues[lower-2] / 2
			} else {
				score += float32(n) * 5
			}
		}
	})

	return score
}
