package main

import (
	"context"
	"fmt"
	"log"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// SweepOutcome is one scenario's result. Err is set when the plant could
// not be solved for that scenario; the sweep continues past failures.
type SweepOutcome struct {
	Scenario *ScenarioRow
	Result   *PlantResult
	Err      error
}

// SweepSummary aggregates the converged scenarios of a sweep.
type SweepSummary struct {
	n_total  int
	n_failed int

	pue_mean float64
	pue_std  float64
	pue_min  float64
	pue_max  float64

	wue_mean float64

	w_cooling_mean float64 // W
	makeup_mean    float64 // kg/s
}

/*
run_sweep solves the plant for every scenario with a bounded worker pool.

Scenarios are independent, so they run in parallel up to the CPU count.
A failing scenario records its error and does not stop the others.

	Args:
		ctx: cancellation context
		base: base plant configuration the scenarios overlay
		scenarios: scenario rows
		provider: refrigerant property backend, shared read-only

	Returns:
		one outcome per scenario in input order
*/
func run_sweep(ctx context.Context, base *PlantConfig, scenarios []*ScenarioRow, provider PropertyProvider) []*SweepOutcome {
	outcomes := make([]*SweepOutcome, len(scenarios))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i, sc := range scenarios {
		i, sc := i, sc
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				outcomes[i] = &SweepOutcome{Scenario: sc, Err: err}
				return nil
			}
			sys := NewIntegratedHVACSystem(sc.apply(base), provider)
			result, err := sys.solve()
			outcomes[i] = &SweepOutcome{Scenario: sc, Result: result, Err: err}
			if err != nil {
				log.Printf("scenario %s failed: %v", sc.Name, err)
			}
			return nil
		})
	}

	// Workers never return errors; Wait only synchronizes.
	_ = g.Wait()

	return outcomes
}

/*
pue_surface maps the plant PUE over a wet bulb x air load grid.

Each grid cell is a scenario overlaid on the base configuration, solved
through the same bounded-parallel sweep. The dry bulb is left to the tower's
wet-bulb estimate.

	Args:
		ctx: cancellation context
		base: base plant configuration
		provider: refrigerant property backend
		t_wb_lo, t_wb_hi: wet bulb range, degree C
		q_air_mw_lo, q_air_mw_hi: air load range, MW
		n: grid points per axis

	Returns:
		wet bulb grid [n], air load grid [n], and the n x n PUE surface
		with loads on rows and wet bulbs on columns; failed cells are NaN
*/
func pue_surface(ctx context.Context, base *PlantConfig, provider PropertyProvider, t_wb_lo float64, t_wb_hi float64, q_air_mw_lo float64, q_air_mw_hi float64, n int) ([]float64, []float64, *mat.Dense) {
	t_wbs := floats.Span(make([]float64, n), t_wb_lo, t_wb_hi)
	loads := floats.Span(make([]float64, n), q_air_mw_lo, q_air_mw_hi)

	scenarios := make([]*ScenarioRow, 0, n*n)
	for i, q := range loads {
		for j, t_wb := range t_wbs {
			scenarios = append(scenarios, &ScenarioRow{
				Name:       fmt.Sprintf("grid_%d_%d", i, j),
				TWetBulb:   t_wb,
				QAirLoadMw: q,
			})
		}
	}

	outcomes := run_sweep(ctx, base, scenarios, provider)

	surface := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			o := outcomes[i*n+j]
			if o.Err != nil {
				surface.Set(i, j, math.NaN())
				continue
			}
			surface.Set(i, j, o.Result.metrics.pue)
		}
	}
	return t_wbs, loads, surface
}

// summarize aggregates the converged outcomes of a sweep.
func summarize(outcomes []*SweepOutcome) *SweepSummary {
	var pues, wues, powers, makeups []float64
	n_failed := 0
	for _, o := range outcomes {
		if o.Err != nil {
			n_failed++
			continue
		}
		pues = append(pues, o.Result.metrics.pue)
		wues = append(wues, o.Result.metrics.wue)
		powers = append(powers, o.Result.metrics.w_cooling)
		makeups = append(makeups, o.Result.metrics.m_makeup)
	}

	s := &SweepSummary{
		n_total:  len(outcomes),
		n_failed: n_failed,
	}
	if len(pues) == 0 {
		s.pue_mean = math.NaN()
		s.pue_std = math.NaN()
		s.pue_min = math.NaN()
		s.pue_max = math.NaN()
		s.wue_mean = math.NaN()
		s.w_cooling_mean = math.NaN()
		s.makeup_mean = math.NaN()
		return s
	}

	s.pue_mean = stat.Mean(pues, nil)
	s.pue_std = stat.StdDev(pues, nil)
	s.pue_min = floats.Min(pues)
	s.pue_max = floats.Max(pues)
	s.wue_mean = stat.Mean(wues, nil)
	s.w_cooling_mean = stat.Mean(powers, nil)
	s.makeup_mean = stat.Mean(makeups, nil)
	return s
}
