package main

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_chiller_solve_energy_balance(t *testing.T) {
	chiller := NewChiller(1000.0, 6.1, 10.0, "R134a", 0.80, NewR134aProperties())

	// 1 GW load at typical datacenter conditions.
	result, err := chiller.solve_energy_balance(1000.0e6, 47770.0, 50000.0, 29.5, math.NaN())
	assert.NoError(t, err)

	// Both pinches inside the allowed band at convergence.
	pinch_evap := result.t_chw_supply - result.t_evap_sat
	pinch_cond := result.t_cond_sat - result.t_cw_out
	assert.GreaterOrEqual(t, pinch_evap, 3.0)
	assert.LessOrEqual(t, pinch_evap, 8.0)
	assert.GreaterOrEqual(t, pinch_cond, 3.0)
	assert.LessOrEqual(t, pinch_cond, 8.0)

	// Condenser duty carries the compressor work on top of the load.
	assert.InDelta(t, result.q_cond, result.q_evap+result.w_comp, 1.0)
	assert.Greater(t, result.t_cw_out, result.t_cw_in)

	// Return temperature derived from the duty, so the loop residual
	// vanishes.
	assert.InDelta(t, 0.0, result.chw_residual, 1.0e-3)
	assert.InDelta(t, 10.0+1000.0e6/(47770.0*get_c_w()), result.t_chw_return, 1.0e-9)

	// Water chiller performance band.
	assert.Greater(t, result.cop, 4.8)
	assert.Less(t, result.cop, 6.0)
	assert.InDelta(t, 1.0, result.plr, 1.0e-9)
	assert.LessOrEqual(t, result.iterations, 20)
}

func Test_chiller_cop_falls_with_warm_condenser_water(t *testing.T) {
	chiller := NewChiller(1000.0, 6.1, 10.0, "R134a", 0.80, NewR134aProperties())

	cool, err := chiller.solve_energy_balance(1000.0e6, 47770.0, 50000.0, 28.0, math.NaN())
	assert.NoError(t, err)
	warm, err := chiller.solve_energy_balance(1000.0e6, 47770.0, 50000.0, 32.0, math.NaN())
	assert.NoError(t, err)

	assert.Greater(t, cool.cop, warm.cop)
	assert.Less(t, cool.w_comp, warm.w_comp)
}

func Test_chiller_pinch_violation(t *testing.T) {
	chiller := NewChiller(1000.0, 6.1, 10.0, "R134a", 0.80, NewR134aProperties())

	// Condenser water too hot: the condensing temperature climbs past the
	// refrigerant envelope before a feasible pinch exists.
	var pinch_err *PinchViolationError
	_, err := chiller.solve_energy_balance(1000.0e6, 47770.0, 50000.0, 62.0, math.NaN())
	assert.ErrorAs(t, err, &pinch_err)
	assert.Equal(t, "condenser", pinch_err.Location)
}

func Test_chiller_condensing_limit_is_a_machine_parameter(t *testing.T) {
	chiller := NewChiller(1000.0, 6.1, 10.0, "R134a", 0.80, NewR134aProperties())

	// The default limit admits this operating point.
	_, err := chiller.solve_energy_balance(1000.0e6, 47770.0, 50000.0, 29.5, math.NaN())
	assert.NoError(t, err)

	// A machine with a tighter envelope rejects it well inside the
	// property backend's own range.
	chiller.t_cond_max = 36.0
	var pinch_err *PinchViolationError
	_, err = chiller.solve_energy_balance(1000.0e6, 47770.0, 50000.0, 29.5, math.NaN())
	assert.ErrorAs(t, err, &pinch_err)
	assert.Equal(t, "condenser", pinch_err.Location)
	assert.LessOrEqual(t, pinch_err.TCondSat, 36.5)
}

func Test_chiller_invalid_inputs(t *testing.T) {
	chiller := NewChiller(1000.0, 6.1, 10.0, "R134a", 0.80, NewR134aProperties())

	var cfg_err *ConfigurationError
	_, err := chiller.solve_energy_balance(-1.0, 47770.0, 50000.0, 29.5, math.NaN())
	assert.ErrorAs(t, err, &cfg_err)
	_, err = chiller.solve_energy_balance(1000.0e6, 0.0, 50000.0, 29.5, math.NaN())
	assert.ErrorAs(t, err, &cfg_err)
	_, err = chiller.solve_energy_balance(1000.0e6, 47770.0, -5.0, 29.5, math.NaN())
	assert.ErrorAs(t, err, &cfg_err)

	assert.Panics(t, func() { NewChiller(-1.0, 6.1, 10.0, "R134a", 0.80, NewR134aProperties()) })
	assert.Panics(t, func() { NewChiller(1000.0, 12.0, 10.0, "R134a", 0.80, NewR134aProperties()) })
	assert.Panics(t, func() { NewChiller(1000.0, 6.1, 35.0, "R134a", 0.80, NewR134aProperties()) })
}
