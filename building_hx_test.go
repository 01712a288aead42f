package main

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_air_pump_mass_flow(t *testing.T) {
	pump := NewAirPump(250.0e3, 900.0, 0.65)

	// m = rho * P * eta / dp = 1.184 * 250e3 * 0.65 / 900.
	assert.InDelta(t, 213.8, pump.mass_flow_rate(), 0.1)

	assert.Panics(t, func() { NewAirPump(250.0e3, 0.0, 0.65) })
	assert.Panics(t, func() { NewAirPump(250.0e3, 900.0, -0.1) })
}

func Test_air_pump_sized_for_flow(t *testing.T) {
	// Sizing inverts the work balance: the sized fan delivers the flow it
	// was asked for.
	pump := NewAirPumpForFlow(19880.0, 900.0, 0.65)
	assert.InDelta(t, 19880.0, pump.mass_flow_rate(), 1.0e-6)
	assert.InDelta(t, 19880.0*900.0/(get_rho_a()*0.65), pump.power, 1.0e-6)

	assert.Panics(t, func() { NewAirPumpForFlow(0.0, 900.0, 0.65) })
	assert.Panics(t, func() { NewAirPumpForFlow(19880.0, -1.0, 0.65) })
}

func Test_air_cooled_equipment(t *testing.T) {
	// A small load the stream carries without hitting the cap.
	equipment := NewAirCooledEquipment(500.0e3, 20.0, 25.0)
	result, err := equipment.solve(200.0)
	assert.NoError(t, err)
	assert.InDelta(t, 20.0+500.0e3/(get_c_a()*200.0), result.t_air_out, 1.0e-9)
	assert.Equal(t, 500.0e3, result.q_absorbed)
	assert.Equal(t, 0.0, result.q_unmet)

	// A large load saturates the outlet cap and the excess goes unmet.
	hot := NewAirCooledEquipment(100.0e6, 20.0, 25.0)
	result, err = hot.solve(200.0)
	assert.NoError(t, err)
	assert.Equal(t, 25.0, result.t_air_out)
	assert.InDelta(t, 5.0*get_c_a()*200.0, result.q_absorbed, 1.0e-6)
	assert.InDelta(t, 100.0e6-result.q_absorbed, result.q_unmet, 1.0e-6)

	var cfg_err *ConfigurationError
	_, err = equipment.solve(0.0)
	assert.ErrorAs(t, err, &cfg_err)
}

func Test_heat_exchanger_effectiveness_mode(t *testing.T) {
	hx := NewHeatExchanger(0.80)

	// Air side is the minimum capacity rate: 200 * 1006 vs 50 * 4186.
	result, err := hx.solve_counterflow(200.0, get_c_a(), 25.0, 50.0, get_c_w(), 10.0, math.NaN())
	assert.NoError(t, err)

	q_max := 200.0 * get_c_a() * 15.0
	assert.InDelta(t, q_max, result.q_max, 1.0e-6)
	assert.InDelta(t, 0.80*q_max, result.q, 1.0e-6)
	assert.Equal(t, 0.80, result.effectiveness)

	// Outlet temperatures from each side's capacity rate.
	assert.InDelta(t, 25.0-result.q/result.c_hot, result.t_hot_out, 1.0e-9)
	assert.InDelta(t, 10.0+result.q/result.c_cold, result.t_cold_out, 1.0e-9)
	assert.Greater(t, result.lmtd, 0.0)
}

func Test_heat_exchanger_target_duty_mode(t *testing.T) {
	hx := NewHeatExchanger(0.80)

	result, err := hx.solve_counterflow(200.0, get_c_a(), 25.0, 50.0, get_c_w(), 10.0, 1.0e6)
	assert.NoError(t, err)
	assert.Equal(t, 1.0e6, result.q)
	assert.InDelta(t, 1.0e6/result.q_max, result.effectiveness, 1.0e-12)

	// A duty past the thermodynamic maximum is rejected.
	var cfg_err *ConfigurationError
	_, err = hx.solve_counterflow(200.0, get_c_a(), 25.0, 50.0, get_c_w(), 10.0, 2.0*result.q_max)
	assert.ErrorAs(t, err, &cfg_err)

	// Hot inlet at or below the cold inlet is rejected.
	_, err = hx.solve_counterflow(200.0, get_c_a(), 10.0, 50.0, get_c_w(), 10.0, math.NaN())
	assert.ErrorAs(t, err, &cfg_err)

	assert.Panics(t, func() { NewHeatExchanger(0.3) })
	assert.Panics(t, func() { NewHeatExchanger(1.1) })
}

func Test_lmtd(t *testing.T) {
	// Equal endpoint approaches short-circuit the log form.
	assert.Equal(t, 5.0, _lmtd(5.0, 5.0))

	// 10 K / 2 K approaches: (10 - 2) / ln(5).
	assert.InDelta(t, 8.0/math.Log(5.0), _lmtd(10.0, 2.0), 1.0e-12)

	// Infeasible approaches collapse to zero.
	assert.Equal(t, 0.0, _lmtd(-1.0, 5.0))
	assert.Equal(t, 0.0, _lmtd(5.0, 0.0))
}
