package covariance

import "fmt"

// MissingFrequency is the allele-frequency sentinel recorded for a marker
// with no present calls (the "-1" fill divided by 2). It is not a valid
// frequency and never reaches X except under ZeroFillMissingRows, where the
// row is all zeros.
const MissingFrequency = -0.5

// MissingRowPolicy decides what happens to markers with no present calls.
type MissingRowPolicy int

const (
	// RejectMissingRows fails Build with ErrAllMissingMarker.
	RejectMissingRows MissingRowPolicy = iota

	// DropMissingRows skips such markers, like monomorphic ones.
	DropMissingRows

	// ZeroFillMissingRows keeps such markers as all-zero rows of X. They add
	// nothing to XᵀX but are counted in the divisor M'.
	ZeroFillMissingRows
)

// String implements fmt.Stringer.
func (p MissingRowPolicy) String() string {
	switch p {
	case RejectMissingRows:
		return "reject"
	case DropMissingRows:
		return "drop"
	case ZeroFillMissingRows:
		return "zero-fill"
	default:
		return fmt.Sprintf("MissingRowPolicy(%d)", int(p))
	}
}

// Options configures Build.
type Options struct {
	// MissingRows selects the fully-missing marker policy.
	MissingRows MissingRowPolicy
}

// DefaultOptions returns the strict defaults: fully missing markers are rejected.
func DefaultOptions() Options {
	return Options{MissingRows: RejectMissingRows}
}

// Stats describes how Build treated each marker.
type Stats struct {
	// Frequencies holds p per input marker; MissingFrequency for rows
	// without present calls.
	Frequencies []float64

	// StdDevs holds sqrt(2p(1-p)) per input marker; NaN for missing rows.
	StdDevs []float64

	// Kept lists, in input order, the marker indices that became rows of X.
	Kept []int

	// Monomorphic counts markers dropped for zero variance.
	Monomorphic int

	// AllMissing counts markers without any present call, whatever the policy did with them.
	AllMissing int
}

// Divisor returns M', the number of rows of X.
func (s *Stats) Divisor() int { return len(s.Kept) }
