package cluster

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Point is a sample or centroid in the PC1/PC2 plane.
type Point struct {
	X, Y float64
}

func (p Point) vec() []float64 { return []float64{p.X, p.Y} }

// Report carries the per-cluster quantities behind the ratios. All slices
// have length clusterCount.
type Report struct {
	Centroids []Point
	Intra     []float64 // mean point-to-own-centroid distance
	Inter     []float64 // mean distance to the other centroids
	Ratios    []float64 // Inter / Intra
}

// SeparationRatio returns inter/intra per cluster. See Score.
func SeparationRatio(pc1, pc2 []float64, clusterCount, blockSize int) ([]float64, error) {
	r, err := Score(pc1, pc2, clusterCount, blockSize)
	if err != nil {
		return nil, err
	}

	return r.Ratios, nil
}

// Score computes centroids, intra and inter distances and ratios for
// clusterCount contiguous blocks of blockSize samples.
//
// Errors, in the order checked:
//   - ErrInvalidClusterCount, ErrInvalidBlockSize, ErrLengthMismatch,
//     ErrBlockMismatch, ErrNonFinite (with the sample index).
//   - ErrDegenerateCluster (with the cluster index) when intra is zero.
//
// Complexity: O(n + k²) for n samples and k clusters.
func Score(pc1, pc2 []float64, clusterCount, blockSize int) (*Report, error) {
	if err := validate(pc1, pc2, clusterCount, blockSize); err != nil {
		return nil, err
	}

	k := clusterCount
	r := &Report{
		Centroids: make([]Point, k),
		Intra:     make([]float64, k),
		Inter:     make([]float64, k),
		Ratios:    make([]float64, k),
	}

	for i := 0; i < k; i++ {
		lo, hi := i*blockSize, (i+1)*blockSize
		r.Centroids[i] = Point{
			X: floats.Sum(pc1[lo:hi]) / float64(blockSize),
			Y: floats.Sum(pc2[lo:hi]) / float64(blockSize),
		}
	}

	pt := make([]float64, 2)
	for i := 0; i < k; i++ {
		c := r.Centroids[i].vec()
		var intra float64
		for j := i * blockSize; j < (i+1)*blockSize; j++ {
			pt[0], pt[1] = pc1[j], pc2[j]
			intra += floats.Distance(pt, c, 2)
		}
		intra /= float64(blockSize)
		if intra == 0 {
			return nil, fmt.Errorf("cluster %d: %w", i, ErrDegenerateCluster)
		}

		var inter float64
		for j := 0; j < k; j++ {
			if j != i {
				inter += floats.Distance(c, r.Centroids[j].vec(), 2)
			}
		}
		inter /= float64(k - 1)

		r.Intra[i], r.Inter[i], r.Ratios[i] = intra, inter, inter/intra
	}

	return r, nil
}

func validate(pc1, pc2 []float64, clusterCount, blockSize int) error {
	if clusterCount < 2 {
		return fmt.Errorf("cluster count %d: %w", clusterCount, ErrInvalidClusterCount)
	}
	if blockSize < 1 {
		return fmt.Errorf("block size %d: %w", blockSize, ErrInvalidBlockSize)
	}
	if len(pc1) != len(pc2) {
		return fmt.Errorf("len(pc1)=%d, len(pc2)=%d: %w", len(pc1), len(pc2), ErrLengthMismatch)
	}
	if clusterCount*blockSize != len(pc1) {
		return fmt.Errorf("%d×%d vs %d samples: %w", clusterCount, blockSize, len(pc1), ErrBlockMismatch)
	}
	for j := range pc1 {
		if !finite(pc1[j]) || !finite(pc2[j]) {
			return fmt.Errorf("sample %d: %w", j, ErrNonFinite)
		}
	}

	return nil
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
