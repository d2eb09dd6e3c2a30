// Command stratengine runs a line-oriented protocol loop over stdin/stdout,
// the same shape as a UCI-style engine: callers drive a position with
// "position"/"go"/"d" commands and read the chosen move back on stdout.
// Grounded on original_source/src/lib.rs's Protocol trait and src/main.rs's
// example wiring.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/jablinski/stratengine/internal/board"
	"github.com/jablinski/stratengine/internal/deployment"
	"github.com/jablinski/stratengine/internal/gamestate"
	"github.com/jablinski/stratengine/internal/mcts"
	"github.com/jablinski/stratengine/internal/policy"
	"github.com/jablinski/stratengine/internal/value"
)

const emptyNotation = "8/8/8/8/8/8/8/8 r"

var (
	algorithmFlag  = flag.String("algorithm", "soismcts", "search algorithm: cheating, pimc, soismcts, moismcts")
	iterationsFlag = flag.Int("iterations", 10000, "MCTS iterations per search")
	explorationC   = flag.Float64("c", 1.41, "exploration constant for the selection formula")
	determFlag     = flag.Int("determinizations", 16, "PIMC: number of independent determinizations")
	seedFlag       = flag.Int64("seed", 0, "rng seed, 0 picks a time-based seed")
)

func main() {
	flag.Parse()

	seed := *seedFlag
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	identify()

	pos, err := board.FromNotation(emptyNotation)
	if err != nil {
		log.Fatalf("stratengine: parsing empty position: %v", err)
	}
	state := gamestate.New(pos)

	cfg := mcts.Config{
		Select:     mcts.ISUCT(float32(*explorationC)),
		Value:      value.SimulationUniform,
		Policy:     policy.Uniform,
		Iterations: *iterationsFlag,
	}

	engine := newSearchEngine(*algorithmFlag, cfg, *determFlag)

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		commands := strings.Fields(line)
		command := commands[0]

		switch command {
		case "quit":
			os.Exit(0)
		case "isready":
			fmt.Println("readyok")
		case "newgame":
			pos, _ = board.FromNotation(emptyNotation)
			state = gamestate.New(pos)
		case "position":
			state = setPosition(commands)
		case "deployment":
			fmt.Println("deployment " + handleDeployment(commands, rng))
		case "go":
			mov := handleGo(state, engine, rng)
			fmt.Println("bestmove " + mov.String())
		case "annonym":
			anon := gamestate.Anonymize(state.Pos, state.Pos.STMSide()^1)
			fmt.Println(anon.String())
		case "deter":
			detPos, err := gamestate.Determinize(state, state.Pos.STMSide(), rng)
			if err != nil {
				fmt.Println("error " + err.Error())
				continue
			}
			fmt.Println(detPos.String())
		case "perft":
			depth := 5
			if len(commands) > 1 {
				if d, err := strconv.Atoi(commands[1]); err == nil {
					depth = d
				}
			}
			runPerft(state, depth)
		case "d":
			fmt.Println(state.Pos.Render())
		default:
			fmt.Println("Unknown command: " + command)
		}
	}
}

func identify() {
	fmt.Println("id name stratengine")
	fmt.Println("id author the alphabeth team")
	fmt.Println("options algorithm=cheating|pimc|soismcts|moismcts iterations=<n> c=<float> determinizations=<n>")
	fmt.Println("ok")
}

// setPosition parses "position <notation-rows> <side> [moves m1 m2 ...]"
// and replays the trailing moves, mirroring lib.rs::set_position.
func setPosition(commands []string) *gamestate.State {
	if len(commands) < 3 {
		fmt.Println("error malformed position command")
		return gamestate.New(board.NewPosition())
	}

	notation := commands[1] + " " + commands[2]
	pos, err := board.FromNotation(notation)
	if err != nil {
		fmt.Println("error " + err.Error())
		return gamestate.New(board.NewPosition())
	}

	state := gamestate.New(pos)

	movesStart := 3
	if movesStart < len(commands) && commands[movesStart] == "moves" {
		movesStart++
	}

	for _, notation := range commands[movesStart:] {
		moves := state.Moves()
		mov, ok := moves.Find(notation)
		if !ok {
			fmt.Println("error illegal move " + notation)
			break
		}
		state.Apply(mov)
	}

	return state
}

// handleDeployment returns a placed notation string for "deployment red"
// or "deployment blue", using the curated dataset the way
// original_source/src/bin/human.rs offers "dataset" as one deployment
// choice.
func handleDeployment(commands []string, rng *rand.Rand) string {
	sd := board.Red
	if len(commands) > 1 && commands[1] == "blue" {
		sd = board.Blue
	}

	placements := deployment.Dataset(sd)
	placement := placements[rng.Intn(len(placements))]

	pos := board.NewPosition()
	deployment.Apply(&pos, sd, placement)
	return pos.String()
}

// searchEngine is the small seam between main's protocol loop and whichever
// MCTS variant was selected on the command line.
type searchEngine struct {
	cheating *mcts.Cheating
	pimc     *mcts.PIMC
	soismcts *mcts.SOISMCTS
	moismcts *mcts.MOISMCTS
}

func newSearchEngine(name string, cfg mcts.Config, determinizations int) *searchEngine {
	switch name {
	case "cheating":
		return &searchEngine{cheating: mcts.NewCheating(cfg)}
	case "pimc":
		return &searchEngine{pimc: &mcts.PIMC{Config: cfg, Determinizations: determinizations}}
	case "moismcts":
		return &searchEngine{moismcts: mcts.NewMOISMCTS(cfg)}
	default:
		return &searchEngine{soismcts: mcts.NewSOISMCTS(cfg)}
	}
}

func handleGo(state *gamestate.State, engine *searchEngine, rng *rand.Rand) board.Move {
	observer := state.Pos.STMSide()

	switch {
	case engine.cheating != nil:
		return engine.cheating.Search(state, rng)
	case engine.pimc != nil:
		return engine.pimc.Search(state, observer, rng)
	case engine.moismcts != nil:
		return engine.moismcts.Search(state, observer, rng)
	default:
		return engine.soismcts.Search(state, observer, rng)
	}
}

func runPerft(state *gamestate.State, depth int) {
	start := time.Now()
	nodes := perft(state, depth)
	elapsed := time.Since(start)

	mnps := float64(nodes) / elapsed.Seconds() / 1e6
	fmt.Printf("perft %d time %d nodes %d (%.2f Mnps)\n", depth, elapsed.Milliseconds(), nodes, mnps)
}

func perft(state *gamestate.State, depth int) int {
	if depth == 0 {
		return 1
	}

	nodes := 0
	moves := state.Moves()
	for i := 0; i < moves.Len(); i++ {
		child := state.Clone()
		child.Apply(moves.At(i))
		nodes += perft(child, depth-1)
	}
	return nodes
}
