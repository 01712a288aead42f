package main

import (
	"fmt"
	"math"
)

/*
AirPump is the air handler fan of the building loop. The air mass flow
follows from the fan work balance m = rho * P * eta / dp.
*/
type AirPump struct {
	power      float64 // rated electrical power, W
	delta_p    float64 // pressure rise across the fan, Pa
	efficiency float64 // hydraulic efficiency, -
	rho_air    float64 // air density, kg/m3
}

func NewAirPump(power float64, delta_p float64, efficiency float64) *AirPump {
	if delta_p <= 0.0 || efficiency <= 0.0 {
		panic(fmt.Sprintf("air pump pressure rise %g Pa and efficiency %g must be positive", delta_p, efficiency))
	}
	return &AirPump{power: power, delta_p: delta_p, efficiency: efficiency, rho_air: get_rho_a()}
}

/*
NewAirPumpForFlow sizes the fan for a required air mass flow. The rated
power inverts the fan work balance: P = m * dp / (rho * eta).
*/
func NewAirPumpForFlow(m_dot_air float64, delta_p float64, efficiency float64) *AirPump {
	if m_dot_air <= 0.0 {
		panic(fmt.Sprintf("air mass flow %g kg/s must be positive", m_dot_air))
	}
	if delta_p <= 0.0 || efficiency <= 0.0 {
		panic(fmt.Sprintf("air pump pressure rise %g Pa and efficiency %g must be positive", delta_p, efficiency))
	}
	rho := get_rho_a()
	return &AirPump{
		power:      m_dot_air * delta_p / (rho * efficiency),
		delta_p:    delta_p,
		efficiency: efficiency,
		rho_air:    rho,
	}
}

// mass_flow_rate returns the delivered air mass flow, kg/s.
func (ap *AirPump) mass_flow_rate() float64 {
	return ap.rho_air * ap.power * ap.efficiency / ap.delta_p
}

/*
AirCooledEquipment models the air-cooled IT load. The outlet air
temperature is capped; load that the capped stream cannot carry is
reported as unmet rather than raising the outlet temperature.
*/
type AirCooledEquipment struct {
	q_in      float64 // heat dissipated into the air stream, W
	t_air_in  float64 // supply air temperature, degree C
	t_air_max float64 // outlet air temperature cap, degree C
}

// AirCooledResult is the equipment-side air loop balance.
type AirCooledResult struct {
	m_dot_air  float64 // kg/s
	t_air_in   float64 // degree C
	t_air_out  float64 // degree C
	q_in       float64 // W
	q_absorbed float64 // W
	q_unmet    float64 // W
}

func NewAirCooledEquipment(q_in float64, t_air_in float64, t_air_max float64) *AirCooledEquipment {
	return &AirCooledEquipment{q_in: q_in, t_air_in: t_air_in, t_air_max: t_air_max}
}

func (ace *AirCooledEquipment) solve(m_dot_air float64) (*AirCooledResult, error) {
	if m_dot_air <= 0.0 {
		return nil, &ConfigurationError{Detail: fmt.Sprintf("air mass flow %g kg/s must be positive", m_dot_air)}
	}
	c_a := get_c_a()
	t_out := ace.t_air_in + ace.q_in/(c_a*m_dot_air)
	q_abs := ace.q_in
	q_unmet := 0.0
	if t_out > ace.t_air_max {
		t_out = ace.t_air_max
		q_abs = (t_out - ace.t_air_in) * c_a * m_dot_air
		q_unmet = math.Max(ace.q_in-q_abs, 0.0)
	}
	return &AirCooledResult{
		m_dot_air:  m_dot_air,
		t_air_in:   ace.t_air_in,
		t_air_out:  t_out,
		q_in:       ace.q_in,
		q_absorbed: q_abs,
		q_unmet:    q_unmet,
	}, nil
}

/*
HeatExchanger is a counterflow exchanger solved with the
effectiveness-NTU method. A target duty, when given, replaces the design
effectiveness and must not exceed the thermodynamic maximum.
*/
type HeatExchanger struct {
	effectiveness float64 // design effectiveness, [0.5, 1]
}

// HeatExchangerResult is one exchanger balance.
type HeatExchangerResult struct {
	q             float64 // transferred duty, W
	q_max         float64 // thermodynamic maximum duty, W
	effectiveness float64 // achieved effectiveness, -
	t_hot_in      float64 // degree C
	t_hot_out     float64 // degree C
	t_cold_in     float64 // degree C
	t_cold_out    float64 // degree C
	lmtd          float64 // log mean temperature difference, K
	c_hot         float64 // hot side capacity rate, W/K
	c_cold        float64 // cold side capacity rate, W/K
}

func NewHeatExchanger(effectiveness float64) *HeatExchanger {
	if effectiveness < 0.5 || effectiveness > 1.0 {
		panic(fmt.Sprintf("effectiveness %g outside [0.5, 1.0]", effectiveness))
	}
	return &HeatExchanger{effectiveness: effectiveness}
}

/*
solve_counterflow balances the exchanger.

	Args:
		m_dot_hot, cp_hot, t_hot_in: hot side flow, specific heat, inlet
		m_dot_cold, cp_cold, t_cold_in: cold side flow, specific heat, inlet
		q_target: duty to transfer, W; NaN uses the design effectiveness

	Returns:
		exchanger balance, or an error when the duty is infeasible
*/
func (hx *HeatExchanger) solve_counterflow(m_dot_hot float64, cp_hot float64, t_hot_in float64, m_dot_cold float64, cp_cold float64, t_cold_in float64, q_target float64) (*HeatExchangerResult, error) {
	if t_hot_in <= t_cold_in {
		return nil, &ConfigurationError{Detail: fmt.Sprintf(
			"hot inlet %.2f C must exceed cold inlet %.2f C", t_hot_in, t_cold_in)}
	}

	c_hot := m_dot_hot * cp_hot
	c_cold := m_dot_cold * cp_cold
	c_min := math.Min(c_hot, c_cold)
	q_max := c_min * (t_hot_in - t_cold_in)

	var q, eps float64
	if !math.IsNaN(q_target) {
		if q_target > q_max {
			return nil, &ConfigurationError{Detail: fmt.Sprintf(
				"target duty %.3f MW exceeds maximum %.3f MW", q_target/1.0e6, q_max/1.0e6)}
		}
		q = q_target
		eps = q / q_max
	} else {
		eps = hx.effectiveness
		q = eps * q_max
	}

	t_hot_out := t_hot_in - q/c_hot
	t_cold_out := t_cold_in + q/c_cold

	return &HeatExchangerResult{
		q:             q,
		q_max:         q_max,
		effectiveness: eps,
		t_hot_in:      t_hot_in,
		t_hot_out:     t_hot_out,
		t_cold_in:     t_cold_in,
		t_cold_out:    t_cold_out,
		lmtd:          _lmtd(t_hot_in-t_cold_out, t_hot_out-t_cold_in),
		c_hot:         c_hot,
		c_cold:        c_cold,
	}, nil
}

// Log mean temperature difference of the endpoint approaches, K.
func _lmtd(delta_t1 float64, delta_t2 float64) float64 {
	if delta_t1 <= 0.0 || delta_t2 <= 0.0 {
		return 0.0
	}
	if math.Abs(delta_t1-delta_t2) < 1.0e-6 {
		return delta_t1
	}
	return (delta_t1 - delta_t2) / math.Log(delta_t1/delta_t2)
}
