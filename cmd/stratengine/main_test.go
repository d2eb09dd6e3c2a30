package main

import (
	"testing"

	"github.com/jablinski/stratengine/internal/board"
	"github.com/jablinski/stratengine/internal/gamestate"
	"github.com/jablinski/stratengine/internal/mcts"
)

func TestSetPositionReplaysMoves(t *testing.T) {
	state := setPosition([]string{"position", "8/8/8/8/8/8/s7/M7", "r"})

	notation := state.Moves().At(0)
	state = setPosition([]string{"position", "8/8/8/8/8/8/s7/M7", "r", "moves", notation.String()})

	if state.Stack.Len() != 1 {
		t.Fatalf("replaying one move should push one hash onto the stack, got %d", state.Stack.Len())
	}
}

func TestSetPositionStopsAtIllegalMove(t *testing.T) {
	before := setPosition([]string{"position", "8/8/8/8/8/8/s7/M7", "r"})
	after := setPosition([]string{"position", "8/8/8/8/8/8/s7/M7", "r", "moves", "z9z9"})

	if after.Pos.Hash != before.Pos.Hash {
		t.Fatalf("an illegal move in the replay list should leave the position untouched")
	}
}

func TestSetPositionMalformedCommandFallsBackToEmptyBoard(t *testing.T) {
	state := setPosition([]string{"position"})
	if board.Popcount(state.Pos.BB[board.Red]|state.Pos.BB[board.Blue]) != 0 {
		t.Fatalf("a malformed position command should fall back to an empty board")
	}
}

func TestPerftDepthZeroIsOne(t *testing.T) {
	pos, err := board.FromNotation("8/8/8/8/8/8/s7/M7 r")
	if err != nil {
		t.Fatalf("FromNotation: %v", err)
	}
	state := gamestate.New(pos)

	if got := perft(state, 0); got != 1 {
		t.Fatalf("perft(state, 0) = %d, want 1", got)
	}
}

func TestPerftDepthOneMatchesMoveCount(t *testing.T) {
	pos, err := board.FromNotation("8/8/8/8/8/8/s7/M7 r")
	if err != nil {
		t.Fatalf("FromNotation: %v", err)
	}
	state := gamestate.New(pos)

	want := state.Moves().Len()
	if got := perft(state, 1); got != want {
		t.Fatalf("perft(state, 1) = %d, want %d (the legal move count)", got, want)
	}
}

func TestNewSearchEngineSelectsCorrectVariant(t *testing.T) {
	cfg := mcts.Config{}

	cases := map[string]func(*searchEngine) bool{
		"cheating": func(e *searchEngine) bool { return e.cheating != nil },
		"pimc":     func(e *searchEngine) bool { return e.pimc != nil },
		"moismcts": func(e *searchEngine) bool { return e.moismcts != nil },
		"soismcts": func(e *searchEngine) bool { return e.soismcts != nil },
		"unknown":  func(e *searchEngine) bool { return e.soismcts != nil },
	}

	for name, check := range cases {
		e := newSearchEngine(name, cfg, 4)
		if !check(e) {
			t.Fatalf("newSearchEngine(%q) did not select the expected variant: %+v", name, e)
		}
	}
}
