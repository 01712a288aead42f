package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_integrated_system_design_baseline(t *testing.T) {
	cfg := default_config()
	sys := NewIntegratedHVACSystem(cfg, NewR134aProperties())

	result, err := sys.solve()
	assert.NoError(t, err)

	m := result.metrics

	// 900k GPUs at 1 kW plus the 100 MW air-cooled load.
	assert.InDelta(t, 1000.0e6, m.p_it, 1.0)

	// The sized air loop carries the whole building load: no unmet heat,
	// outlet air at the cap, and the building exchanger passes exactly
	// what the air stream absorbed.
	assert.InDelta(t, 0.0, m.q_unmet, 1.0)
	assert.InDelta(t, cfg.TAirMax, result.air_result.t_air_out, 1.0e-9)
	assert.InDelta(t, 100.0e6, result.bldg_hx.q, 1.0)
	assert.InDelta(t, result.air_result.q_absorbed, result.bldg_hx.q, 1.0e-6)

	// The CDU carries the full GPU heat into the chilled water loop.
	assert.InDelta(t, 900.0e6, result.chip_result.cdu.q_hx, 1.0)

	// The cascade absorbs the full 1 GW within 0.01 MW.
	assert.InDelta(t, 1000.0e6, result.downstream.q_cooling, 1.0e4)
	assert.Less(t, m.cascade_error, 1.0e4)

	// 7 C supply with the 5 K design rise puts the blended return at 12 C.
	assert.Equal(t, 7.0, result.downstream.t_chw_supply)
	assert.InDelta(t, 12.0, result.t_chw_return, 1.0e-6)
	assert.InDelta(t, result.t_chw_return, result.downstream.t_chw_return, 1.0e-9)

	// Fan power from the sized air flow and the fan work balance.
	m_air_design := 100.0e6 / (get_c_a() * (cfg.TAirMax - cfg.TAirIn))
	assert.InDelta(t, m_air_design, result.m_dot_air, 1.0e-6)
	assert.InDelta(t, m_air_design*cfg.AirDeltaP/(get_rho_a()*cfg.AirEta), result.w_air_fan, 1.0)

	// Site figures in the plausible range for a water-cooled plant.
	assert.Greater(t, m.pue, 1.15)
	assert.Less(t, m.pue, 1.28)
	assert.InDelta(t, (m.p_it+m.w_cooling)/m.p_it, m.pue, 1.0e-12)
	assert.Greater(t, m.wue, 2.0)
	assert.Less(t, m.wue, 3.5)
	assert.InDelta(t, m.m_makeup*3600.0/(m.p_it/1000.0), m.wue, 1.0e-9)
	assert.Greater(t, m.system_cop, 4.0)
	assert.Less(t, m.system_cop, result.coupled.diagnostics.chiller.cop)

	// Compressor dominates the cooling power, which also carries the
	// condenser pump, tower fans, air fan and coolant pump.
	w_comp := result.coupled.diagnostics.chiller.w_comp
	assert.Greater(t, w_comp, 170.0e6)
	assert.Less(t, w_comp, 210.0e6)
	assert.InDelta(t, result.coupled.downstream.total_power+result.w_air_fan+result.chip_result.w_pump,
		m.w_cooling, 1.0)

	// Coupling converged at the approach-pinned fixed point.
	diag := result.coupled.diagnostics
	assert.Equal(t, CouplingConverged, diag.state)
	assert.InDelta(t, cfg.TWetBulb+cfg.TowerApproach, diag.t_cw_in, 0.02)

	// Plant boundary is consistent with the chiller solution.
	assert.InDelta(t, result.m_dot_chw, result.downstream.m_dot_chw, 1.0e-9)
}

func Test_integrated_system_flow_limited_air_loop(t *testing.T) {
	cfg := default_config()
	cfg.AirPumpPower = 250000.0

	sys := NewIntegratedHVACSystem(cfg, NewR134aProperties())
	result, err := sys.solve()
	assert.NoError(t, err)

	// An explicit undersized fan caps the air stream: most of the air
	// load is reported unmet instead of raising the outlet temperature.
	assert.Equal(t, cfg.TAirMax, result.air_result.t_air_out)
	assert.InDelta(t, 98.9e6, result.metrics.q_unmet, 0.3e6)
	assert.InDelta(t, result.air_result.q_absorbed, result.bldg_hx.q, 1.0)
	assert.InDelta(t, 250000.0, result.w_air_fan, 1.0e-9)
	assert.InDelta(t, result.air_result.q_absorbed+result.metrics.q_unmet, cfg.QAirLoad, 1.0)
}

func Test_integrated_system_dry_bulb_default(t *testing.T) {
	cfg := default_config()
	cfg.TDryBulb = nil

	sys := NewIntegratedHVACSystem(cfg, NewR134aProperties())
	result, err := sys.solve()
	assert.NoError(t, err)

	// Unset dry bulb falls back to the t_wb + 10 estimate inside the tower.
	assert.InDelta(t, cfg.TWetBulb+10.0, result.coupled.diagnostics.tower.air_in.theta_db, 1.0e-9)
}

func Test_integrated_system_bad_coolant_loop(t *testing.T) {
	cfg := default_config()
	cfg.TCoolantReturn = cfg.TCoolantSupply

	sys := NewIntegratedHVACSystem(cfg, NewR134aProperties())
	_, err := sys.solve()
	var cfg_err *ConfigurationError
	assert.ErrorAs(t, err, &cfg_err)
}
