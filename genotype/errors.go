package genotype

import "errors"

var (
	// ErrInvalidShape is returned for non-positive dimensions, empty input or ragged rows.
	ErrInvalidShape = errors.New("genotype: invalid shape")

	// ErrOutOfRange indicates a marker or sample index outside valid bounds.
	ErrOutOfRange = errors.New("genotype: index out of range")

	// ErrDosageOutOfRange is returned when a present dosage is NaN, ±Inf or outside [0,2].
	ErrDosageOutOfRange = errors.New("genotype: dosage must be finite and within [0,2]")

	// ErrNilMatrix indicates a nil *Matrix receiver or argument.
	ErrNilMatrix = errors.New("genotype: nil matrix")
)
