package main

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_pump_total_head(t *testing.T) {
	pump := NewPump("CW", 10.0, 0.5, 6.0, 0.85)

	// NaN velocity assumes 2 m/s: 10 + 0.5 * 4 / (2 * 9.81) + 6.
	assert.InDelta(t, 16.10194, pump.total_head(math.NaN()), 1.0e-4)
	assert.Equal(t, pump.total_head(2.0), pump.total_head(math.NaN()))

	// Higher velocity only grows the dynamic term.
	assert.Greater(t, pump.total_head(3.0), pump.total_head(2.0))
	assert.InDelta(t, 16.0, pump.total_head(0.0), 1.0e-12)
}

func Test_pump_power(t *testing.T) {
	system := NewPumpSystem(10.0, 0.85)

	result, err := system.solve(50000.0)
	assert.NoError(t, err)

	// P = rho g H (m/rho) / eta at the assumed 2 m/s velocity head.
	assert.InDelta(t, 9.29e6, result.p_pump, 5.0e4)
	assert.InDelta(t, 50000.0/get_rho_w(), result.vol_flow, 1.0e-9)

	// Delivered fluid energy over shaft power recovers the efficiency.
	assert.InDelta(t, 0.85, result.efficiency, 1.0e-12)
	assert.Less(t, result.e_fluid, result.p_pump)
}

func Test_pump_power_simple(t *testing.T) {
	pump := NewPump("CHW", 10.0, 0.5, 6.0, 0.85)
	assert.InDelta(t, 20.0e6, pump.calculate_power_simple(1000.0e6, 0.02), 1.0e-6)
}

func Test_pump_invalid_inputs(t *testing.T) {
	pump := NewPump("CW", 10.0, 0.5, 6.0, 0.85)

	var cfg_err *ConfigurationError
	_, err := pump.calculate_power(0.0, get_rho_w(), math.NaN())
	assert.ErrorAs(t, err, &cfg_err)
	_, err = pump.calculate_power(-5.0, get_rho_w(), math.NaN())
	assert.ErrorAs(t, err, &cfg_err)

	assert.Panics(t, func() { NewPump("CW", -1.0, 0.5, 6.0, 0.85) })
	assert.Panics(t, func() { NewPump("CW", 10.0, 0.5, 60.0, 0.85) })
	assert.Panics(t, func() { NewPump("CW", 10.0, 0.5, 6.0, 0.0) })
	assert.Panics(t, func() { NewPump("CW", 10.0, 0.5, 6.0, 1.2) })
}
