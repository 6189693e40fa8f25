package pricing

import "math"

// Default scoring constants.
const (
	// DefaultBaseline is the capability floor below which value is
	// undefined: only capability above this floor contributes to a score.
	DefaultBaseline = 1000.0

	// DefaultRankDecayBase is the fraction of the previous rank's
	// multiplier retained per leaderboard rank step.
	DefaultRankDecayBase = 0.97
)

// Scorer derives a single comparable "value" number from a model's
// capability score, its blended price, and its leaderboard rank. The zero
// value is not usable; construct one with NewScorer.
type Scorer struct {
	Baseline      float64
	RankDecayBase float64
}

// NewScorer returns a Scorer with the default constants.
func NewScorer() Scorer {
	return Scorer{
		Baseline:      DefaultBaseline,
		RankDecayBase: DefaultRankDecayBase,
	}
}

// Score combines a capability score, per-million costs, and a rank into a
// value number. The second return is false when the score is undefined:
// capability absent (NaN) or not above the baseline, or blended price not
// positive. For defined inputs the score is strictly increasing in
// capability, strictly decreasing in blended price, and strictly decreasing
// in rank, with rank 1 receiving the full multiplier.
func (s Scorer) Score(capability, inputPer1M, outputPer1M float64, rank int) (float64, bool) {
	if math.IsNaN(capability) || capability <= s.Baseline {
		return 0, false
	}
	blended := (inputPer1M + outputPer1M) / 2
	if blended <= 0 {
		return 0, false
	}

	base := (capability - s.Baseline) / math.Log(1+blended)
	if rank < 1 {
		rank = 1
	}
	multiplier := math.Pow(s.RankDecayBase, float64(rank-1))
	return base * multiplier, true
}
