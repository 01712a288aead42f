package main

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_cp_mass_water(t *testing.T) {
	// Shomate fit close to the textbook 4180 J/(kg K) around room temperature.
	assert.InDelta(t, 4180.0, cp_mass_water(35.0), 15.0)
	assert.InDelta(t, 4188.0, cp_mass_water(20.0), 15.0)

	// Mass and molar forms agree through the molar mass.
	assert.InDelta(t, cp_molar_water(308.15)/0.01801528, cp_mass_water(35.0), 1.0e-9)
}

func Test_liquid_cooling_chip(t *testing.T) {
	chip := NewLiquidCoolingChip(8, 1000.0, 30.0, 40.0, 997.0)

	result, err := chip.solve()
	assert.NoError(t, err)
	assert.Equal(t, 8000.0, result.q_chip)
	assert.Equal(t, 10.0, result.delta_t)

	// Flow from the loop balance with cp at the 35 C mean temperature.
	assert.InDelta(t, 8000.0/(result.cp_chip*10.0), result.m_c_total, 1.0e-12)
	assert.InDelta(t, 0.191, result.m_c_total, 0.002)

	// Return at or below supply has no feasible balance.
	inverted := NewLiquidCoolingChip(8, 1000.0, 40.0, 40.0, 997.0)
	var cfg_err *ConfigurationError
	_, err = inverted.solve()
	assert.ErrorAs(t, err, &cfg_err)
}

func Test_pipe_segment(t *testing.T) {
	rack := PipeSegment{diameter: 0.020, length: 600.0, friction: 0.02}

	assert.InDelta(t, math.Pi*0.0001, rack.area(), 1.0e-12)

	// Darcy-Weisbach at 0.2 kg/s in the rack line.
	v := 0.2 / (997.0 * rack.area())
	want := 0.02 * (600.0 / 0.020) * 997.0 * v * v / 2.0
	assert.InDelta(t, want, rack.pressure_drop(0.2, 997.0), 1.0e-9)
}

func Test_gpu_branches(t *testing.T) {
	base := GpuBranches{
		n:         16,
		m_c_total: 0.4,
		rho:       997.0,
		rack:      PipeSegment{diameter: 0.020, length: 600.0, friction: 0.02},
		branch:    PipeSegment{diameter: 0.10, length: 12.0, friction: 0.02},
		header:    PipeSegment{diameter: 1.65, length: 25.0, friction: 0.02},
	}

	// Sized by the GPUs-per-branch limit.
	gb := base
	gb.gpus_per_branch = 8
	result, err := gb.solve()
	assert.NoError(t, err)
	assert.Equal(t, 2, result.branches)
	assert.Equal(t, 2, result.racks)
	assert.Equal(t, 1, result.racks_per_branch)
	assert.InDelta(t, 0.2, result.m_branch, 1.0e-12)
	assert.Equal(t, result.m_branch, result.m_rack)
	assert.InDelta(t, result.dp_rack+result.dp_branch+result.dp_header, result.dp_path, 1.0e-9)

	// The velocity cap can force more branches than the GPU limit alone.
	capped := base
	capped.m_c_total = 40.0
	capped.gpus_per_branch = 8
	capped.v_cap_branch = 1.0
	result, err = capped.solve()
	assert.NoError(t, err)
	assert.Equal(t, 6, result.branches)
	assert.LessOrEqual(t, result.v_branch, 1.0)

	// An explicit count overrides both sizing rules.
	explicit := base
	explicit.branches = 4
	explicit.gpus_per_branch = 8
	result, err = explicit.solve()
	assert.NoError(t, err)
	assert.Equal(t, 4, result.branches)

	// No sizing rule at all is underdetermined.
	var cfg_err *ConfigurationError
	bare := base
	_, err = bare.solve()
	assert.ErrorAs(t, err, &cfg_err)
}

func Test_coolant_pump_power(t *testing.T) {
	assert.InDelta(t, (0.4/997.0)*120000.0/0.8, coolant_pump_power(0.4, 997.0, 120000.0, 0.8), 1.0e-9)
}

func Test_cdu_heat_exchanger(t *testing.T) {
	uncapped := &CduHeatExchanger{f_correction: 1.0}

	result, err := uncapped.solve(8000.0, 0.5, 20.0, 30.0, 40.0, 4179.0, 0.1914)
	assert.NoError(t, err)

	// Uncapped CDU passes the full chip heat to the building loop.
	assert.Equal(t, 8000.0, result.q_hx)
	assert.Equal(t, 10.0, result.dt_cold_end)
	assert.Greater(t, result.lmtd, 0.0)
	assert.Greater(t, result.ua_required, 0.0)
	assert.InDelta(t, 20.0+8000.0/result.c_bldg, result.t_to_tower, 1.0e-9)

	// Effectiveness cap binds on the minimum capacity side.
	eps_limited := &CduHeatExchanger{f_correction: 1.0, epsilon: 0.1}
	result, err = eps_limited.solve(8000.0, 0.5, 20.0, 30.0, 40.0, 4179.0, 0.1914)
	assert.NoError(t, err)
	c_min := math.Min(result.c_chip, result.c_bldg)
	assert.InDelta(t, 0.1*c_min*20.0, result.q_hx, 1.0e-9)
	assert.Less(t, result.q_hx, 8000.0)

	// Tight UA caps the duty through the LMTD.
	ua_limited := &CduHeatExchanger{f_correction: 1.0, ua: 100.0}
	result, err = ua_limited.solve(8000.0, 0.5, 20.0, 30.0, 40.0, 4179.0, 0.1914)
	assert.NoError(t, err)
	assert.Less(t, result.q_hx, 8000.0)
	assert.InDelta(t, 100.0*result.lmtd, result.q_hx, result.q_hx*0.05)

	var cfg_err *ConfigurationError
	_, err = uncapped.solve(8000.0, 0.0, 20.0, 30.0, 40.0, 4179.0, 0.1914)
	assert.ErrorAs(t, err, &cfg_err)
}

func Test_chip_cooling_loop(t *testing.T) {
	loop := NewChipCoolingLoop(16, 1000.0, 30.0, 40.0, 8, 0.80)

	result, err := loop.solve(1.0, 20.0)
	assert.NoError(t, err)

	assert.Equal(t, 16000.0, result.loop.q_chip)
	assert.Equal(t, 2, result.hydraulics.branches)
	assert.Equal(t, 16000.0, result.cdu.q_hx)
	assert.Greater(t, result.w_pump, 0.0)
	assert.InDelta(t,
		coolant_pump_power(result.loop.m_c_total, 997.0, result.hydraulics.dp_path, 0.80),
		result.w_pump, 1.0e-9)
}
