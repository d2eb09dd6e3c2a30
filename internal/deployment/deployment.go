// Package deployment samples the initial placement of a side's pieces onto
// its three home ranks, the step players take before a game of search
// begins. Grounded on original_source/src/deployment.rs and
// src/deployment/heuristic.rs.
package deployment

import (
	"math/rand"

	"github.com/jablinski/stratengine/internal/board"
)

// pieceCounts is the fixed multiset every deployment must place.
var pieceCounts = []int{board.Flag, board.Spy, board.Miner, board.Miner, board.Miner, board.Miner, board.Miner,
	board.General, board.Marshal, board.Bomb, board.Bomb, board.Bomb, board.Bomb, board.Bomb, board.Bomb,
	board.Scout, board.Scout, board.Scout, board.Scout, board.Scout, board.Scout, board.Scout, board.Scout}

// homeSquares returns the 24 squares of side's three home ranks: ranks 0-2
// for Red, ranks 5-7 for Blue.
func homeSquares(sd int) [24]board.Square {
	var squares [24]board.Square
	startRank := 0
	if sd == board.Blue {
		startRank = 5
	}
	i := 0
	for rank := startRank; rank < startRank+3; rank++ {
		for file := 0; file < 8; file++ {
			squares[i] = board.Square(rank*8 + file)
			i++
		}
	}
	return squares
}

// Random places pieceCounts uniformly at random across side's 24 home
// squares (one of the 24 squares stays empty, since the multiset totals
// 23 pieces), grounded on deployment.rs::uniform.
func Random(sd int, rng *rand.Rand) map[board.Square]int {
	squares := homeSquares(sd)
	order := rng.Perm(24)

	placement := make(map[board.Square]int, len(pieceCounts))
	for i, piece := range pieceCounts {
		placement[squares[order[i]]] = piece
	}
	return placement
}

// Apply writes a deployment placement into pos for side sd.
func Apply(pos *board.Position, sd int, placement map[board.Square]int) {
	for sq, piece := range placement {
		pos.Toggle(sd, piece, sq)
	}
}
