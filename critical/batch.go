package critical

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/ncrit/abundance"
	"github.com/katalvlaran/ncrit/collision"
	"github.com/katalvlaran/ncrit/lines"
)

// Request bundles the inputs of a batch computation.
type Request struct {
	Lines      *lines.Table
	Collisions *collision.Table // normalized
	Abundances *abundance.Table
	Levels     []int    // upper levels; empty means every level of Lines
	Kinds      []string // medium kinds; empty means every kind of Abundances
	Workers    int      // concurrent curves; <= 0 means GOMAXPROCS
}

// Curves computes one curve per (level, kind), concurrently. The result is
// ordered by Levels, then Kinds. The first error cancels the remaining work.
func Curves(ctx context.Context, req Request) ([]*Curve, error) {
	if req.Lines == nil || req.Collisions == nil || req.Abundances == nil {
		return nil, fmt.Errorf("Curves: %w", ErrNilInput)
	}
	levels := req.Levels
	if len(levels) == 0 {
		levels = req.Lines.UpperLevels()
	}
	kinds := req.Kinds
	if len(kinds) == 0 {
		kinds = req.Abundances.Kinds()
	}
	for _, k := range kinds {
		if !req.Abundances.HasKind(k) {
			return nil, fmt.Errorf("%q (have %v): %w", k, req.Abundances.Kinds(), ErrUnknownKind)
		}
	}

	// radiative sums are cheap; resolve them up front so a bad level fails fast
	radiative := make([]float64, len(levels))
	for i, lvl := range levels {
		sum, err := SumRadiativeRate(req.Lines, lvl)
		if err != nil {
			return nil, err
		}
		radiative[i] = sum
	}

	workers := req.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	out := make([]*Curve, len(levels)*len(kinds))
	for i, lvl := range levels {
		for j, kind := range kinds {
			lvl, kind := lvl, kind
			slot := i*len(kinds) + j
			rad := radiative[i]
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				c, err := CriticalDensity(kind, lvl, rad, req.Collisions, req.Abundances)
				if err != nil {
					return err
				}
				out[slot] = c
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
