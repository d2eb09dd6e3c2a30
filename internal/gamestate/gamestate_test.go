package gamestate

import (
	"math/rand"
	"testing"

	"github.com/jablinski/stratengine/internal/board"
)

func TestNewBuildsFullyKnownInformationSet(t *testing.T) {
	pos, err := board.FromNotation("d2f4/bbg4c/1m3dsc/8/8/BD3M1G/F5SD/1BCC4 r")
	if err != nil {
		t.Fatalf("FromNotation: %v", err)
	}
	state := New(pos)

	if state.Info.Unknown[board.Red][board.Scout] != 8 {
		t.Fatalf("a fresh state should start with every scout unrevealed to the opponent")
	}
}

func TestApplyAdvancesStackAndInformation(t *testing.T) {
	pos, err := board.FromNotation("8/8/8/8/8/8/s7/M7 r")
	if err != nil {
		t.Fatalf("FromNotation: %v", err)
	}
	state := New(pos)
	before := state.Stack.Len()

	moves := state.Moves()
	state.Apply(moves.At(0))

	if state.Stack.Len() != before+1 {
		t.Fatalf("Apply should push the new hash onto the stack")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	pos, err := board.FromNotation("8/8/8/8/8/8/s7/M7 r")
	if err != nil {
		t.Fatalf("FromNotation: %v", err)
	}
	state := New(pos)
	clone := state.Clone()

	moves := clone.Moves()
	clone.Apply(moves.At(0))

	if state.Pos.Hash == clone.Pos.Hash {
		t.Fatalf("mutating the clone should not affect the original state's hash")
	}
}

func TestAnonymizeHidesSidesPieces(t *testing.T) {
	pos, err := board.FromNotation("d2f4/bbg4c/1m3dsc/8/8/BD3M1G/F5SD/1BCC4 r")
	if err != nil {
		t.Fatalf("FromNotation: %v", err)
	}

	anon := Anonymize(pos, board.Blue)

	if anon.BB[board.Spy]&anon.BB[board.Blue] != 0 {
		t.Fatalf("no revealed Blue piece ranks should remain after anonymizing Blue")
	}
	if anon.BB[board.Unknown]&anon.BB[board.Blue] == 0 {
		t.Fatalf("Blue's pieces should all be tagged Unknown after anonymizing")
	}
	if anon.BB[board.Red] != pos.BB[board.Red] {
		t.Fatalf("anonymizing Blue should not touch Red's occupancy")
	}
}

func TestDeterminizeProducesConsistentMultiset(t *testing.T) {
	pos, err := board.FromNotation("d2f4/bbg4c/1m3dsc/8/8/BD3M1G/F5SD/1BCC4 r")
	if err != nil {
		t.Fatalf("FromNotation: %v", err)
	}
	state := New(pos)

	observer := board.Red
	anonPos := Anonymize(pos, board.Blue)
	anonState := &State{Pos: anonPos, Info: state.Info}

	rng := rand.New(rand.NewSource(42))
	detPos, err := Determinize(anonState, observer, rng)
	if err != nil {
		t.Fatalf("Determinize: %v", err)
	}

	if detPos.BB[board.Unknown]&detPos.BB[board.Blue] != 0 {
		t.Fatalf("every hidden square should have been assigned a concrete rank")
	}
	if board.Popcount(detPos.BB[board.Blue]) != board.Popcount(pos.BB[board.Blue]) {
		t.Fatalf("determinization should not change how many squares Blue occupies")
	}
}
