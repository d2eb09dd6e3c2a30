package deployment

import "github.com/jablinski/stratengine/internal/board"

// notations are curated Red-side opening placements, one "/"-separated
// row per home rank from the backmost rank to the frontmost, using
// Symbols letters and digits for runs of empty squares (FEN-style);
// Blue's placement mirrors the same notation onto its own home ranks.
// Grounded on original_source/src/deployment.rs::DEPLOYMENTS.
var notations = []string{
	"BBFGBMS1/BBBDDDDD/CCCCCCCC",
	"GBFBBMS1/BBBDDDDD/CCCCCCCC",
}

// Dataset returns the curated deployments available for side sd, decoded
// into the same square->piece map shape Random/Heuristic produce.
func Dataset(sd int) []map[board.Square]int {
	out := make([]map[board.Square]int, len(notations))
	for i, n := range notations {
		out[i] = decode(sd, n)
	}
	return out
}

// decode parses one notation string into a square->piece placement for
// side sd.
func decode(sd int, notation string) map[board.Square]int {
	// backmost row listed first in the notation: rank 0 for Red, rank 7
	// for Blue, stepping toward the opponent on each '/'
	rank, step := 0, 1
	if sd == board.Blue {
		rank, step = 7, -1
	}

	placement := make(map[board.Square]int)
	file := 0

	for _, c := range notation {
		switch {
		case c == '/':
			rank += step
			file = 0
		case c >= '0' && c <= '9':
			file += int(c - '0')
		default:
			piece := symbolToPiece(byte(c))
			if piece >= 0 {
				placement[board.Square(rank*8+file)] = piece
			}
			file++
		}
	}
	return placement
}

func symbolToPiece(c byte) int {
	for i, s := range board.Symbols[:8] {
		if byte(s) == c {
			return i + 2
		}
	}
	return -1
}
