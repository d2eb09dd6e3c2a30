package board

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// FromNotation parses a FEN-like two-field string "<rows> <side>" into a
// Position. Rows are rank 8 down to rank 1, separated by '/', digits mean
// that many empty squares, letters are piece symbols (upper-case Red,
// lower-case Blue); side is "r" or "b".
func FromNotation(notation string) (Position, error) {
	fields := strings.Split(notation, " ")
	if len(fields) < 2 {
		return Position{}, errors.Errorf("board: malformed notation %q", notation)
	}

	pos := NewPosition()

	file, rank := 0, 7
	for _, c := range fields[0] {
		switch {
		case c == '/':
			file, rank = 0, rank-1
		case c >= '0' && c <= '9':
			file += int(c - '0')
		default:
			sd := 0
			upper := c
			if c >= 'a' && c <= 'z' {
				sd = Blue
				upper = c - ('a' - 'A')
			}
			idx := strings.IndexRune(string(Symbols[:8]), upper)
			if idx < 0 {
				return Position{}, errors.Errorf("board: unknown piece symbol %q", string(c))
			}
			piece := idx + 2
			pos.Toggle(sd, piece, Square(rank*8+file))
			file++
		}
	}

	pos.STM = fields[1] != "r"

	return pos, nil
}

// String renders a FEN-like two-field notation string.
func (p *Position) String() string {
	pos := p.chars()
	var lakes Bitboard = Lakes
	Squares(lakes, func(sq Square) { pos[sq] = '~' })

	var notation strings.Builder
	for rank := 7; rank >= 0; rank-- {
		start := rank * 8
		spaces := 0
		for _, c := range pos[start : start+8] {
			if c == ' ' || c == '~' {
				spaces++
				continue
			}
			if spaces > 0 {
				fmt.Fprintf(&notation, "%d", spaces)
				spaces = 0
			}
			notation.WriteByte(c)
		}
		if spaces > 0 {
			fmt.Fprintf(&notation, "%d", spaces)
		}
		if rank > 0 {
			notation.WriteByte('/')
		}
	}

	notation.WriteByte(' ')
	if p.STM {
		notation.WriteByte('b')
	} else {
		notation.WriteByte('r')
	}

	return notation.String()
}

// Render draws the full ASCII board, used by the "d" CLI command.
func (p *Position) Render() string {
	const delimiter = "+---+---+---+---+---+---+---+---+\n"

	pos := p.chars()
	var lakes Bitboard = Lakes
	Squares(lakes, func(sq Square) { pos[sq] = '~' })

	var b strings.Builder
	b.WriteString(delimiter)
	for rank := 7; rank >= 0; rank-- {
		start := rank * 8
		for _, c := range pos[start : start+8] {
			fmt.Fprintf(&b, "| %c ", c)
		}
		fmt.Fprintf(&b, "| %d\n%s", rank+1, delimiter)
	}
	b.WriteString("  a   b   c   d   e   f   g   h\n\nNotation: ")
	b.WriteString(p.String())
	return b.String()
}
