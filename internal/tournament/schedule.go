// Package tournament implements round-robin scheduling, Elo-like rating,
// and the in-process match driver used to pit Algorithm implementations
// against each other. Grounded on original_source/src/tournament/*.rs.
package tournament

// Pairing is one scheduled game: the indices of the two players, with
// First always understood as playing Red this game (NewSchedule alternates
// which physical side each player sits on across the schedule by
// swapping First/Second from round to round).
type Pairing struct {
	First, Second int
}

// Schedule is the full round-robin fixture list produced by the circle
// method: for n players it contains n-1 rounds (n even) or n rounds (n
// odd, one bye per round), each round a full set of simultaneous pairings.
type Schedule struct {
	Rounds [][]Pairing
}

// NewSchedule builds a round-robin schedule for players players,
// repeated rounds times with sides alternated every other repetition, the
// standard way of giving both engines an equal number of games as each
// side. Grounded on original_source/src/tournament/schedule.rs's circle
// method (fixed first slot, the rest rotate clockwise each round).
func NewSchedule(players int, rounds int) Schedule {
	n := players
	bye := -1
	if n%2 != 0 {
		n++
		bye = n - 1
	}

	ids := make([]int, n)
	for i := range ids {
		ids[i] = i
	}

	var allRounds [][]Pairing
	for r := 0; r < rounds; r++ {
		circle := append([]int(nil), ids...)
		for round := 0; round < n-1; round++ {
			var pairings []Pairing
			for i := 0; i < n/2; i++ {
				a, b := circle[i], circle[n-1-i]
				if a == bye || b == bye {
					continue
				}
				// Alternate which slot plays Red across repeated rounds
				// so both engines get an equal share of each side.
				if (r*(n-1)+round)%2 == 0 {
					pairings = append(pairings, Pairing{First: a, Second: b})
				} else {
					pairings = append(pairings, Pairing{First: b, Second: a})
				}
			}
			allRounds = append(allRounds, pairings)

			// Rotate every element but the first one position clockwise.
			fixed := circle[0]
			rest := circle[1:]
			rest = append(rest[len(rest)-1:], rest[:len(rest)-1]...)
			circle = append([]int{fixed}, rest...)
		}
	}

	return Schedule{Rounds: allRounds}
}

// TotalGames returns the number of games the schedule contains.
func (s Schedule) TotalGames() int {
	n := 0
	for _, r := range s.Rounds {
		n += len(r)
	}
	return n
}
