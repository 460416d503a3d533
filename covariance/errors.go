package covariance

import "errors"

var (
	// ErrNilGenotypes is returned when Build receives a nil genotype matrix.
	ErrNilGenotypes = errors.New("covariance: nil genotype matrix")

	// ErrDegenerateInput is returned when no informative marker survives
	// filtering, so psi would divide by zero.
	ErrDegenerateInput = errors.New("covariance: no polymorphic markers survive filtering")

	// ErrAllMissingMarker is returned under RejectMissingRows when a marker
	// has no present call.
	ErrAllMissingMarker = errors.New("covariance: marker has no present calls")

	// ErrInvalidPolicy is returned for an unknown MissingRowPolicy value.
	ErrInvalidPolicy = errors.New("covariance: invalid missing-row policy")
)
