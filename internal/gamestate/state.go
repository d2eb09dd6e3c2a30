// Package gamestate wraps a board.Position together with its MoveStack and
// information.Set into the single object MCTS search operates on:
// generating moves, applying them, and sampling/anonymizing the hidden
// information needed by the information-set search variants.
package gamestate

import (
	"math/rand"

	"github.com/pkg/errors"

	"github.com/jablinski/stratengine/internal/board"
	"github.com/jablinski/stratengine/internal/information"
)

// State is the full game state as seen by search: the concrete position,
// its repetition history, and what each side still doesn't know about the
// other's ranks.
type State struct {
	Pos   board.Position
	Stack board.MoveStack
	Info  information.Set
}

// New builds a State from a starting position.
func New(pos board.Position) *State {
	return &State{
		Pos:  pos,
		Info: information.FromPosition(&pos),
	}
}

// Clone returns an independent deep copy.
func (s *State) Clone() *State {
	return &State{
		Pos:   s.Pos,
		Stack: s.Stack.Clone(),
		Info:  s.Info,
	}
}

// Moves returns the legal moves in the current position.
func (s *State) Moves() board.MoveList {
	return s.Pos.Gen(&s.Stack)
}

// Apply plays mov, updating the position, the repetition stack and the
// information set.
func (s *State) Apply(mov board.Move) {
	movingSide := 0
	if s.Pos.STM {
		movingSide = 1
	}
	s.Info.Update(mov, &s.Pos, movingSide)
	s.Pos.Make(mov)
	s.Stack.Push(s.Pos.Hash)
}

// Ended reports whether the game has reached a terminal state.
func (s *State) Ended() bool { return s.Pos.State != board.Ongoing }

// Determinize samples a concrete assignment of ranks onto every square the
// opponent (from observer's point of view, the side that is NOT observer)
// still has hidden, consistent with the observed unknown-rank multiset and
// the never-moved restriction on Flag/Bomb. It returns a new Position with
// Unknown squares replaced by sampled ranks; the original State is not
// modified.
func Determinize(s *State, observer int, rng *rand.Rand) (board.Position, error) {
	pos := s.Pos
	opponent := observer ^ 1

	hidden := s.Info.Available(opponent) & s.Pos.BB[board.Unknown]
	if hidden == 0 {
		return pos, nil
	}

	var squares []board.Square
	board.Squares(hidden, func(sq board.Square) { squares = append(squares, sq) })

	deck := buildDeck(s.Info.Unknown[opponent])
	if len(deck) < len(squares) {
		return board.Position{}, errors.Errorf("gamestate: information set has %d hidden squares but only %d unresolved ranks", len(squares), len(deck))
	}

	rng.Shuffle(len(deck), func(i, j int) { deck[i], deck[j] = deck[j], deck[i] })

	immovable := s.Info.AvailableImmovable(opponent)
	assignImmovableFirst(squares, deck, immovable)

	for i, sq := range squares {
		piece := deck[i]
		pos.Toggle(opponent, board.Unknown, sq)
		pos.Toggle(opponent, piece, sq)
	}

	return pos, nil
}

// buildDeck expands an unknown-rank multiset into a flat slice of ranks,
// one entry per still-hidden piece.
func buildDeck(unknown [10]int) []int {
	var deck []int
	for piece := board.Flag; piece <= board.Bomb; piece++ {
		for i := 0; i < unknown[piece]; i++ {
			deck = append(deck, piece)
		}
	}
	return deck
}

// assignImmovableFirst biases the assignment so that any Flag/Bomb entries
// among the first len(squares) deck entries land on squares within
// immovable (never-moved squares), swapping squares when necessary. It is
// a best-effort pass: if there are
// more Flag/Bomb entries than immovable squares, the decision is left as-is
// (an inconsistent information set is a search-time error, not silently
// fixed here).
func assignImmovableFirst(squares []board.Square, deck []int, immovable board.Bitboard) {
	isImmovable := func(sq board.Square) bool {
		return immovable&(board.Bitboard(1)<<sq) != 0
	}

	for i, piece := range deck[:len(squares)] {
		if piece != board.Flag && piece != board.Bomb {
			continue
		}
		if isImmovable(squares[i]) {
			continue
		}
		for j := i + 1; j < len(squares); j++ {
			if isImmovable(squares[j]) {
				squares[i], squares[j] = squares[j], squares[i]
				break
			}
		}
	}
}

// Anonymize returns a copy of pos with every piece belonging to side
// relabeled Unknown, producing the observer-relative view used by the
// tournament's non-cheating engines and the CLI's "annonym" command.
func Anonymize(pos board.Position, side int) board.Position {
	out := pos
	for piece := board.Flag; piece <= board.Bomb; piece++ {
		bb := out.BB[piece] & out.BB[side]
		board.Squares(bb, func(sq board.Square) {
			out.Toggle(side, piece, sq)
			out.Toggle(side, board.Unknown, sq)
		})
	}
	return out
}
