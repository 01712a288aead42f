package main

import (
	"fmt"
	"math"
)

/*
CoolingTower models an induced-draft evaporative cooling tower. The water
outlet temperature is fixed by the approach to the ambient wet bulb, the
leaving air is assumed saturated at the water outlet temperature, and the
dry air flow is back-solved from the air-side enthalpy rise so the air and
water side energy balances close by construction.
*/
type CoolingTower struct {
	approach   float64 // approach temperature t_out - t_wb, K
	coc        float64 // cycles of concentration, -
	drift_rate float64 // drift loss as fraction of circulating water, -
	h_fg       float64 // latent heat used for the energy-based evaporation cross-check, J/kg
}

// CoolingTowerResult is the tower operating point, including both
// psychrometric endpoint states and the full water consumption breakdown.
type CoolingTowerResult struct {
	q_reject   float64 // heat rejection handed in, W
	q_water    float64 // water side duty, W
	q_air      float64 // air side duty, W
	q_residual float64 // |q_water - q_reject| duty consistency residual, W

	t_water_in    float64 // degree C
	t_water_out   float64 // degree C
	cooling_range float64 // t_in - t_out, K
	approach      float64 // K
	m_dot_cw      float64 // circulating water flow, kg/s

	air_in  *MoistAirState
	air_out *MoistAirState

	m_dot_da           float64 // dry air mass flow, kg/s
	v_dot_air          float64 // inlet air volume flow, m3/s
	air_to_water_ratio float64 // moist air to water mass flow ratio, -

	m_evap        float64 // evaporation loss from the air side humidity pickup, kg/s
	m_evap_energy float64 // evaporation estimate from q / h_fg, kg/s
	m_drift       float64 // drift loss, kg/s
	m_blowdown    float64 // blowdown, kg/s
	m_makeup      float64 // total makeup water, kg/s

	w_fan float64 // fan power, W
}

/*
NewCoolingTower initializes the tower.

	Args:
		approach_temp: approach temperature, K, (0, 20]
		coc: cycles of concentration, [2, 10]
		drift_rate: drift fraction of circulating water, [0, 0.01]

	Notes:
		Panics on out-of-range parameters.
*/
func NewCoolingTower(approach_temp float64, coc float64, drift_rate float64) *CoolingTower {
	if approach_temp <= 0.0 || approach_temp > 20.0 {
		panic(fmt.Sprintf("approach temperature %g K outside (0, 20]", approach_temp))
	}
	if coc < 2.0 || coc > 10.0 {
		panic(fmt.Sprintf("cycles of concentration %g outside [2, 10]", coc))
	}
	if drift_rate < 0.0 || drift_rate > 0.01 {
		panic(fmt.Sprintf("drift rate %g outside [0, 0.01]", drift_rate))
	}
	return &CoolingTower{
		approach:   approach_temp,
		coc:        coc,
		drift_rate: drift_rate,
		h_fg:       2260.0e3,
	}
}

// Water outlet temperature, degree C. Fixed by the approach to the wet bulb.
func (ct *CoolingTower) outlet_temp(t_wb float64) (float64, error) {
	if t_wb < -20.0 || t_wb > 50.0 {
		return 0.0, &ConfigurationError{Detail: fmt.Sprintf("wet bulb temperature %g C outside [-20, 50] C", t_wb)}
	}
	return t_wb + ct.approach, nil
}

// Fan power, W. Induced draft fans run at about 0.7 % of the rejection.
func (ct *CoolingTower) fan_power(q_reject float64) float64 {
	return 0.007 * q_reject
}

/*
solve evaluates the tower for the given rejection load and ambient state.

	Args:
		q_reject: heat rejection load, W
		m_dot_cw: circulating water flow rate, kg/s
		t_in: water inlet temperature, degree C
		t_wb: ambient wet bulb temperature, degree C
		t_db: ambient dry bulb temperature, degree C;
			NaN estimates it as t_wb + 10

	Returns:
		tower operating point, or an error when the state is infeasible
*/
func (ct *CoolingTower) solve(q_reject float64, m_dot_cw float64, t_in float64, t_wb float64, t_db float64) (*CoolingTowerResult, error) {
	if q_reject <= 0.0 {
		return nil, &ConfigurationError{Detail: fmt.Sprintf("heat rejection %g W must be positive", q_reject)}
	}
	if m_dot_cw <= 0.0 {
		return nil, &ConfigurationError{Detail: fmt.Sprintf("circulating water flow %g kg/s must be positive", m_dot_cw)}
	}
	if t_in < 0.0 || t_in >= 100.0 {
		return nil, &ConfigurationError{Detail: fmt.Sprintf("water inlet temperature %g C outside [0, 100) C", t_in)}
	}

	t_out, err := ct.outlet_temp(t_wb)
	if err != nil {
		return nil, err
	}
	cooling_range := t_in - t_out
	if cooling_range <= 0.0 {
		return nil, &ConfigurationError{Detail: fmt.Sprintf(
			"water inlet temperature %.2f C must exceed outlet temperature %.2f C", t_in, t_out)}
	}

	if t_db != t_db { // NaN
		t_db = t_wb + 10.0
	}

	air_in, err := NewMoistAirStateFromTwb(t_db, t_wb, get_p_atm())
	if err != nil {
		return nil, fmt.Errorf("air inlet state: %w", err)
	}

	// Leaving air saturated at the water outlet temperature.
	air_out, err := NewMoistAirStateFromRh(t_out, 1.0, get_p_atm())
	if err != nil {
		return nil, fmt.Errorf("air outlet state: %w", err)
	}

	q_water := m_dot_cw * get_c_w() * cooling_range

	// The rejection handed in must agree with the water side duty; the
	// residual is recorded for the caller's consistency check.
	q_residual := math.Abs(q_water - q_reject)

	delta_h := air_out.h - air_in.h
	if delta_h <= 0.0 {
		return nil, &ConfigurationError{Detail: fmt.Sprintf(
			"air enthalpy must rise through the tower: h_in=%.0f J/kg, h_out=%.0f J/kg", air_in.h, air_out.h)}
	}

	// Air flow back-solved from the energy balance, so q_air == q_water.
	m_dot_da := q_water / delta_h
	q_air := m_dot_da * delta_h

	m_evap := m_dot_da * (air_out.x - air_in.x)
	m_drift := ct.drift_rate * m_dot_cw
	m_blowdown := m_evap / (ct.coc - 1.0)
	m_makeup := m_evap + m_drift + m_blowdown

	return &CoolingTowerResult{
		q_reject:           q_reject,
		q_water:            q_water,
		q_air:              q_air,
		q_residual:         q_residual,
		t_water_in:         t_in,
		t_water_out:        t_out,
		cooling_range:      cooling_range,
		approach:           ct.approach,
		m_dot_cw:           m_dot_cw,
		air_in:             air_in,
		air_out:            air_out,
		m_dot_da:           m_dot_da,
		v_dot_air:          m_dot_da * get_v_air(air_in.theta_db, air_in.x, air_in.p),
		air_to_water_ratio: m_dot_da * (1.0 + air_in.x) / m_dot_cw,
		m_evap:             m_evap,
		m_evap_energy:      q_reject / ct.h_fg,
		m_drift:            m_drift,
		m_blowdown:         m_blowdown,
		m_makeup:           m_makeup,
		w_fan:              ct.fan_power(q_reject),
	}, nil
}

/*
NewSilicaLimitedCoolingTower sizes the cycles of concentration from the
silica budget of the circulating water: coc = max ppm / makeup ppm, capped
to the valid [2, 10] range.

	Args:
		approach_temp: approach temperature, K
		drift_rate: drift fraction of circulating water, -
		makeup_silica_ppm: SiO2 concentration in the makeup water, ppm
		max_silica_ppm: allowable SiO2 concentration in circulating water, ppm
*/
func NewSilicaLimitedCoolingTower(approach_temp float64, drift_rate float64, makeup_silica_ppm float64, max_silica_ppm float64) *CoolingTower {
	if makeup_silica_ppm <= 0.0 || makeup_silica_ppm > 100.0 {
		panic(fmt.Sprintf("makeup silica %g ppm outside (0, 100]", makeup_silica_ppm))
	}
	if max_silica_ppm <= makeup_silica_ppm {
		panic(fmt.Sprintf("silica limit %g ppm must exceed makeup concentration %g ppm", max_silica_ppm, makeup_silica_ppm))
	}
	coc := max_silica_ppm / makeup_silica_ppm
	if coc > 10.0 {
		coc = 10.0
	}
	return NewCoolingTower(approach_temp, coc, drift_rate)
}

// blowdown_reduction returns the fractional blowdown saving of this tower's
// cycles of concentration relative to a baseline.
func (ct *CoolingTower) blowdown_reduction(baseline_coc float64) float64 {
	base := 1.0 / (baseline_coc - 1.0)
	opt := 1.0 / (ct.coc - 1.0)
	return (base - opt) / base
}
