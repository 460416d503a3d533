package pipeline

import "errors"

// ErrInvalidOption is returned by New when an Option carries a nonsensical value.
var ErrInvalidOption = errors.New("pipeline: invalid option")
