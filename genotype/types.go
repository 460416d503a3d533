package genotype

// Dosage bounds for a diploid minor-allele count.
const (
	MinDosage = 0.0
	MaxDosage = 2.0
)

// Call is one genotype cell: a dosage and whether it was observed.
// A missing Call always carries Dosage 0.
type Call struct {
	Dosage  float64
	Present bool
}

// Present returns an observed call with dosage d.
func Present(d float64) Call { return Call{Dosage: d, Present: true} }

// Missing returns an unobserved call.
func Missing() Call { return Call{} }

// Matrix is an M×N genotype matrix (markers in rows, samples in columns),
// stored row-major with a parallel presence mask.
type Matrix struct {
	markers, samples int
	dosage           []float64 // len == markers*samples; 0 where missing
	present          []bool    // len == markers*samples
}
