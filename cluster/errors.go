package cluster

import "errors"

var (
	// ErrInvalidClusterCount is returned when fewer than two clusters are requested.
	ErrInvalidClusterCount = errors.New("cluster: cluster count must be at least 2")

	// ErrInvalidBlockSize is returned for a block size below 1.
	ErrInvalidBlockSize = errors.New("cluster: block size must be at least 1")

	// ErrLengthMismatch is returned when pc1 and pc2 differ in length.
	ErrLengthMismatch = errors.New("cluster: pc1 and pc2 lengths differ")

	// ErrBlockMismatch is returned when clusterCount·blockSize != len(pc1).
	ErrBlockMismatch = errors.New("cluster: clusters do not cover the samples exactly")

	// ErrNonFinite is returned for NaN or Inf coordinates.
	ErrNonFinite = errors.New("cluster: non-finite coordinate")

	// ErrDegenerateCluster is returned when every point of a cluster sits on
	// its centroid, leaving the ratio undefined.
	ErrDegenerateCluster = errors.New("cluster: zero intra-cluster distance")
)
