// Package cluster scores how well contiguous blocks of samples separate in
// the plane of the first two principal components.
//
// Samples are assumed grouped: cluster i owns indices [i·blockSize, (i+1)·blockSize).
// For each cluster the score is
//
//	ratio[i] = mean distance from centroid i to the other centroids
//	         / mean distance from the points of cluster i to centroid i
//
// so ratios well above 1 mean tight, well separated groups. Distances are
// Euclidean (gonum floats.Distance with L=2).
package cluster
