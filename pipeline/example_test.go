package pipeline_test

import (
	"context"
	"fmt"

	"github.com/katalvlaran/genopca/genotype"
	"github.com/katalvlaran/genopca/pipeline"
)

func ExampleAnalyzer_Analyze() {
	g, _ := genotype.FromDosages([][]float64{
		{0, 2, 0, 2},
		{1, 1, 1, 1},
	}, -1)

	a, err := pipeline.New(pipeline.WithComponents(1))
	if err != nil {
		fmt.Println(err)
		return
	}
	res, err := a.Analyze(context.Background(), g)
	if err != nil {
		fmt.Println(err)
		return
	}
	c := res.Components.Components[0]
	fmt.Printf("kept=%v eigenvalue=%.1f converged=%v\n", res.Stats.Kept, c.Eigenvalue, c.Converged)

	// Output:
	// kept=[0] eigenvalue=8.0 converged=true
}
