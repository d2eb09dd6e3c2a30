package deployment

import (
	"math/rand"

	"github.com/jablinski/stratengine/internal/board"
)

// flagRankBias scores a candidate Flag square by how sheltered it is: a
// back-corner square scores highest, the exposed center of the back rank
// scores lowest. Indexed 0..7 by file within the home-most rank. Grounded
// on deployment/heuristic.rs's flag_placement table.
var flagRankBias = [8]float32{5, 3, 1, 0, 0, 1, 3, 5}

// frontRank is, for a given side, the home-rank index (0, 1 or 2) nearest
// the opponent — the row where Scouts benefit most from open lanes and
// Miners/Bombs guard the most contested files.
const frontRank = 2

// Evaluate scores a single side's full placement (a map from home square
// to piece rank), folding in flag shelter, bomb protection of the flag,
// Spy proximity to the General, Scout placement on the front rank, and
// Miner spread across files. Higher is better.
func Evaluate(sd int, placement map[board.Square]int) float32 {
	var score float32

	var flagSq board.Square
	var bombSquares []board.Square
	var minerFiles, scoutOnFront, generalSq, spySq int
	generalSq, spySq = -1, -1

	homeStart := 0
	if sd == board.Blue {
		homeStart = 5
	}

	for sq, piece := range placement {
		localRank := int(sq)/8 - homeStart
		if sd == board.Blue {
			localRank = 2 - localRank // Blue's back rank is 7, its front rank 5
		}

		switch piece {
		case board.Flag:
			flagSq = sq
			score += flagRankBias[board.File(sq)]
			if localRank == 0 {
				score += 4 // deepest rank, furthest from the opponent's first strike
			}
		case board.Bomb:
			bombSquares = append(bombSquares, sq)
		case board.General:
			generalSq = int(sq)
		case board.Spy:
			spySq = int(sq)
		case board.Miner:
			minerFiles |= 1 << board.File(sq)
		case board.Scout:
			if localRank == frontRank {
				scoutOnFront++
			}
		}
	}

	for _, bombSq := range bombSquares {
		if adjacent(bombSq, flagSq) {
			score += 6
		}
	}

	if generalSq >= 0 && spySq >= 0 && adjacent(board.Square(generalSq), board.Square(spySq)) {
		score += 3 // Spy shielded by the General it alone can defeat the enemy Marshal from behind
	}

	score += float32(scoutOnFront) * 1.5
	score += float32(popcount8(minerFiles)) * 0.5

	return score
}

func adjacent(a, b board.Square) bool {
	df := board.File(a) - board.File(b)
	dr := board.RankOf(a) - board.RankOf(b)
	if df < 0 {
		df = -df
	}
	if dr < 0 {
		dr = -dr
	}
	return df <= 1 && dr <= 1 && (a != b)
}

func popcount8(m int) int {
	n := 0
	for m != 0 {
		n += m & 1
		m >>= 1
	}
	return n
}

// Heuristic samples attempts random deployments and returns the
// best-scoring one, grounded on deployment/heuristic.rs::heuristic (the
// original tries 50 candidates; attempts is exposed here instead of fixed).
func Heuristic(sd int, attempts int, rng *rand.Rand) map[board.Square]int {
	best := Random(sd, rng)
	bestScore := Evaluate(sd, best)

	for i := 1; i < attempts; i++ {
		candidate := Random(sd, rng)
		if s := Evaluate(sd, candidate); s > bestScore {
			best, bestScore = candidate, s
		}
	}
	return best
}
