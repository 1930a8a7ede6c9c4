package critical_test

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/ncrit/abundance"
	"github.com/katalvlaran/ncrit/collision"
	"github.com/katalvlaran/ncrit/critical"
	"github.com/katalvlaran/ncrit/table"
)

// ExampleCriticalDensity computes the curve of level 2 against a single
// partner that makes up half of the medium.
func ExampleCriticalDensity() {
	rates, _ := table.FromRows([][]float64{{1e-10, 2e-10}}, 2)
	c, _ := collision.New(
		[]float64{50, 100},
		[]collision.Key{{Upper: 2, Lower: 1, Partner: "H2"}},
		rates,
	)
	a, _ := abundance.Parse(strings.NewReader("collider,dense\nH2,0.5\n"))

	curve, err := critical.CriticalDensity("dense", 2, 1e-4, c, a)
	if err != nil {
		fmt.Println(err)
		return
	}
	for _, p := range curve.Points {
		fmt.Printf("T=%g n_crit=%.3g\n", p.Temperature, p.Density)
	}
	// Output:
	// T=50 n_crit=2e+06
	// T=100 n_crit=1e+06
}
