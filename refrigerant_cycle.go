package main

import (
	"fmt"
	"math"
)

/*
VaporCompressionCycle solves a single-stage vapor compression cycle with
superheat at the evaporator exit, subcooling at the condenser exit, an
isentropic-efficiency compressor model and an isenthalpic expansion valve.
*/
type VaporCompressionCycle struct {
	refrigerant string
	eta_is_comp float64 // compressor isentropic efficiency, -
	superheat   float64 // evaporator exit superheat, K
	subcool     float64 // condenser exit subcooling, K
	provider    PropertyProvider
}

// CycleResult carries the four corner states plus the isentropic
// intermediate, the duties per unit mass flow scaled to the required
// evaporator duty, and the derived performance figures.
type CycleResult struct {
	state1  *RefrigerantState // evaporator exit / compressor suction
	state2s *RefrigerantState // isentropic compressor discharge
	state2  *RefrigerantState // actual compressor discharge
	state3  *RefrigerantState // condenser exit
	state4  *RefrigerantState // evaporator inlet

	p_evap float64 // evaporating pressure, Pa
	p_cond float64 // condensing pressure, Pa

	m_dot_ref float64 // refrigerant mass flow rate, kg/s
	q_evap    float64 // evaporator duty, W
	w_comp    float64 // compressor power, W
	q_cond    float64 // condenser duty, W

	cop                  float64 // coefficient of performance, -
	compression_ratio    float64 // p_cond / p_evap, -
	energy_balance_error float64 // relative first-law closure error, -
}

/*
NewVaporCompressionCycle initializes the cycle model.

	Args:
		refrigerant: working fluid name, e.g. "R134a"
		eta_is_comp: compressor isentropic efficiency, 0.5 to 1.0
		superheat: evaporator exit superheat, 0 to 20 K
		subcool: condenser exit subcooling, 0 to 20 K
		provider: property backend

	Notes:
		Panics on out-of-range parameters.
*/
func NewVaporCompressionCycle(refrigerant string, eta_is_comp float64, superheat float64, subcool float64, provider PropertyProvider) *VaporCompressionCycle {
	if eta_is_comp < 0.5 || eta_is_comp > 1.0 {
		panic(fmt.Sprintf("isentropic efficiency %g outside [0.5, 1.0]", eta_is_comp))
	}
	if superheat < 0.0 || superheat > 20.0 {
		panic(fmt.Sprintf("superheat %g K outside [0, 20]", superheat))
	}
	if subcool < 0.0 || subcool > 20.0 {
		panic(fmt.Sprintf("subcooling %g K outside [0, 20]", subcool))
	}
	if provider == nil {
		panic("property provider is nil")
	}
	return &VaporCompressionCycle{
		refrigerant: refrigerant,
		eta_is_comp: eta_is_comp,
		superheat:   superheat,
		subcool:     subcool,
		provider:    provider,
	}
}

/*
solve evaluates the cycle between the given saturation temperatures and
scales the mass flow to deliver the required evaporator duty.

	Args:
		t_evap_sat: evaporating saturation temperature, degree C
		t_cond_sat: condensing saturation temperature, degree C
		q_evap_required: evaporator duty, W

	Returns:
		cycle result, or an error when a state cannot be resolved
*/
func (c *VaporCompressionCycle) solve(t_evap_sat float64, t_cond_sat float64, q_evap_required float64) (*CycleResult, error) {
	if t_evap_sat >= t_cond_sat {
		return nil, &ConfigurationError{Detail: fmt.Sprintf(
			"evaporating temperature %.2f C must be below condensing temperature %.2f C", t_evap_sat, t_cond_sat)}
	}
	if q_evap_required <= 0.0 {
		return nil, &ConfigurationError{Detail: fmt.Sprintf("evaporator duty %g W must be positive", q_evap_required)}
	}

	p_evap, err := c.provider.SaturationPressure(c.refrigerant, t_evap_sat)
	if err != nil {
		return nil, err
	}
	p_cond, err := c.provider.SaturationPressure(c.refrigerant, t_cond_sat)
	if err != nil {
		return nil, err
	}

	// State 1: evaporator exit. Saturated vapor when superheat is zero.
	var state1 *RefrigerantState
	if c.superheat > 0.0 {
		state1, err = c.provider.StateTP(c.refrigerant, p_evap, t_evap_sat+c.superheat)
	} else {
		state1, err = c.provider.StatePQ(c.refrigerant, p_evap, 1.0)
	}
	if err != nil {
		return nil, err
	}

	// State 2s: isentropic discharge at condensing pressure.
	state2s, err := c.provider.StatePS(c.refrigerant, p_cond, state1.s)
	if err != nil {
		return nil, err
	}

	// State 2: actual discharge from the isentropic efficiency definition.
	h2 := state1.h + (state2s.h-state1.h)/c.eta_is_comp
	state2, err := c.provider.StatePH(c.refrigerant, p_cond, h2)
	if err != nil {
		return nil, err
	}

	// State 3: condenser exit. Saturated liquid when subcooling is zero.
	var state3 *RefrigerantState
	if c.subcool > 0.0 {
		state3, err = c.provider.StateTP(c.refrigerant, p_cond, t_cond_sat-c.subcool)
	} else {
		state3, err = c.provider.StatePQ(c.refrigerant, p_cond, 0.0)
	}
	if err != nil {
		return nil, err
	}

	// State 4: isenthalpic expansion to the evaporating pressure.
	state4, err := c.provider.StatePH(c.refrigerant, p_evap, state3.h)
	if err != nil {
		return nil, err
	}

	q_evap_specific := state1.h - state4.h
	w_comp_specific := h2 - state1.h
	q_cond_specific := h2 - state3.h

	if q_evap_specific <= 0.0 {
		return nil, &ConfigurationError{Detail: "non-positive specific evaporator duty"}
	}

	m_dot_ref := q_evap_required / q_evap_specific
	q_evap := m_dot_ref * q_evap_specific
	w_comp := m_dot_ref * w_comp_specific
	q_cond := m_dot_ref * q_cond_specific

	// First-law closure. The cycle is built from state enthalpies, so any
	// residual beyond rounding indicates a broken property backend.
	balance_error := math.Abs(q_cond-(q_evap+w_comp)) / q_cond
	if balance_error > 1.0e-9 {
		panic(fmt.Sprintf("cycle energy balance violated: relative error %g", balance_error))
	}

	return &CycleResult{
		state1:               state1,
		state2s:              state2s,
		state2:               state2,
		state3:               state3,
		state4:               state4,
		p_evap:               p_evap,
		p_cond:               p_cond,
		m_dot_ref:            m_dot_ref,
		q_evap:               q_evap,
		w_comp:               w_comp,
		q_cond:               q_cond,
		cop:                  q_evap_specific / w_comp_specific,
		compression_ratio:    p_cond / p_evap,
		energy_balance_error: balance_error,
	}, nil
}
