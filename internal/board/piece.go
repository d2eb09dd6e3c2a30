// Package board implements the bitboard position, attack tables, Zobrist
// hashing and move generation for the lake-board game.
package board

// Piece rank constants. Indices line up with Position.BB: the first two
// entries are per-side occupancy, the rest are per-rank bitboards.
const (
	Flag    = 2
	Spy     = 3
	Scout   = 4
	Miner   = 5
	General = 6
	Marshal = 7
	Unknown = 8
	Bomb    = 9
)

// Side indices into Position.BB[0] / BB[1].
const (
	Red  = 0
	Blue = 1
)

// Pieces lists every revealed rank, flag through bomb, in ladder order.
var Pieces = [7]int{Flag, Spy, Scout, Miner, General, Marshal, Bomb}

// Symbols are the FEN-like notation letters for ranks 2..9 (Flag..Bomb),
// upper-case for Red, lower-case for Blue.
var Symbols = [16]byte{
	'F', 'S', 'C', 'D', 'G', 'M', 'X', 'B',
	'f', 's', 'c', 'd', 'g', 'm', 'x', 'b',
}

// Rank returns the capture-notation numeral/letter used in move suffixes.
func Rank(piece int) string {
	switch piece {
	case Spy:
		return "1"
	case Scout:
		return "2"
	case Miner:
		return "3"
	case General:
		return "9"
	case Marshal:
		return "10"
	case Bomb:
		return "b"
	case Flag:
		return "f"
	default:
		return "?"
	}
}

// Move flag bits.
const (
	FlagQuiet   uint8 = 1
	FlagCapture uint8 = 2
	FlagEvading uint8 = 4
)

// GameState is the terminal/ongoing status of a Position.
type GameState uint8

const (
	Ongoing GameState = iota
	Win
	Draw
	Loss
)

func (s GameState) String() string {
	switch s {
	case Win:
		return "Win"
	case Draw:
		return "Draw"
	case Loss:
		return "Loss"
	default:
		return "Ongoing"
	}
}
