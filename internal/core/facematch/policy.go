package facematch

import "github.com/sismt/attendance-system/internal/core/domain"

// highConfidence is the score above which the margin requirement is halved:
// a near-perfect match needs less separation from the runner-up.
const highConfidence = 0.92

// Policy decides whether a match is trustworthy enough to act on.
// Threshold guards against false accepts of strangers; MinMargin guards
// against confusing two similar enrolled people. Lowering the threshold
// raises false-accept risk; raising the margin trades rejections for
// safety among lookalikes.
type Policy struct {
	Threshold float64
	MinMargin float64
}

// Decide returns nil when the match is acceptable, ErrNoConfidentMatch
// when the best score is below the threshold, and ErrAmbiguousMatch when
// the gap to the second-best score is too small. The margin requirement
// applies only when the runner-up scored above zero: with a single
// candidate, or a runner-up at or below orthogonal, there is nobody to
// confuse the match with.
func (p Policy) Decide(m Match) error {
	if m.Best < p.Threshold {
		return domain.ErrNoConfidentMatch
	}

	required := p.MinMargin
	if m.Best > highConfidence {
		required /= 2
	}

	if m.SecondBest > 0 && m.Margin() < required {
		return domain.ErrAmbiguousMatch
	}
	return nil
}
