package tournament

import "github.com/chewxy/math32"

// Ranking accumulates one engine's results across the tournament.
type Ranking struct {
	Index  int
	Wins   int
	Draws  int
	Losses int
}

// Games returns the total number of games counted in this ranking.
func (r Ranking) Games() int { return r.Wins + r.Draws + r.Losses }

// Points returns the standard win=1/draw=0.5/loss=0 tally.
func (r Ranking) Points() float32 {
	return float32(r.Wins) + float32(r.Draws)/2
}

// Diff returns an Elo-like rating difference implied by this ranking's
// win rate, grounded on original_source/src/tournament/rating.rs:
// -400*log10(1/mu - 1), where mu is the fraction of available points won.
// A mu of exactly 0 or 1 (an unbeaten or winless record) has no finite
// Elo difference; Diff then returns -Inf/+Inf rather than panicking.
func (r Ranking) Diff() float32 {
	n := r.Games()
	if n == 0 {
		return 0
	}

	mu := float32(r.Wins)/float32(n) + float32(r.Draws)/float32(2*n)
	if mu <= 0 {
		return math32.Inf(-1)
	}
	if mu >= 1 {
		return math32.Inf(1)
	}

	return -400 * math32.Log10(1/mu-1)
}
