package main

import (
	"fmt"
	"math"
)

const (
	_pinch_min = 3.0 // K, minimum heat exchanger pinch
	_pinch_max = 8.0 // K, maximum useful pinch before the lift is wasteful
)

/*
Chiller models a water-cooled chiller built around the vapor compression
cycle. The evaporator and condenser are matched to their water loops by
iterating the saturation temperatures until both pinches fall inside the
allowed band.
*/
type Chiller struct {
	rated_capacity float64 // rated cooling capacity, W
	rated_cop      float64 // COP at rated conditions, -
	t_chw_supply   float64 // chilled water supply temperature, degree C
	t_cond_max     float64 // condensing temperature limit of the machine, degree C
	refrigerant    string
	ref_cycle      *VaporCompressionCycle
}

// ChillerResult is the converged operating point of one chiller solution.
type ChillerResult struct {
	cycle *CycleResult

	q_evap float64 // evaporator duty, W
	q_cond float64 // condenser duty, W
	w_comp float64 // compressor power, W
	cop    float64 // coefficient of performance, -
	plr    float64 // part load ratio, -

	t_chw_supply float64 // chilled water supply temperature, degree C
	t_chw_return float64 // chilled water return temperature, degree C
	m_dot_chw    float64 // chilled water flow rate, kg/s

	t_cw_in  float64 // condenser water inlet temperature, degree C
	t_cw_out float64 // condenser water outlet temperature, degree C
	m_dot_cw float64 // condenser water flow rate, kg/s

	t_evap_sat float64 // evaporating saturation temperature, degree C
	t_cond_sat float64 // condensing saturation temperature, degree C

	chw_residual float64 // chilled water loop energy residual, W
	iterations   int
}

/*
NewChiller initializes the chiller.

	Args:
		rated_capacity_mw: rated cooling capacity, MW
		rated_cop: COP at rated conditions, -
		t_chw_supply: chilled water supply temperature, degree C
		refrigerant: working fluid name
		eta_is_comp: compressor isentropic efficiency, -
		provider: refrigerant property backend

	Notes:
		Panics on out-of-range parameters. The cycle runs with 5 K
		evaporator superheat and 3 K condenser subcooling. The condensing
		temperature is bounded by t_cond_max, 70 C by default.
*/
func NewChiller(rated_capacity_mw float64, rated_cop float64, t_chw_supply float64, refrigerant string, eta_is_comp float64, provider PropertyProvider) *Chiller {
	if rated_capacity_mw <= 0.0 {
		panic(fmt.Sprintf("rated capacity %g MW must be positive", rated_capacity_mw))
	}
	if rated_cop <= 0.0 || rated_cop > 10.0 {
		panic(fmt.Sprintf("rated COP %g outside (0, 10]", rated_cop))
	}
	if t_chw_supply < 0.0 || t_chw_supply >= 30.0 {
		panic(fmt.Sprintf("chilled water supply temperature %g C outside [0, 30) C", t_chw_supply))
	}
	return &Chiller{
		rated_capacity: rated_capacity_mw * 1.0e6,
		rated_cop:      rated_cop,
		t_chw_supply:   t_chw_supply,
		t_cond_max:     70.0,
		refrigerant:    refrigerant,
		ref_cycle:      NewVaporCompressionCycle(refrigerant, eta_is_comp, 5.0, 3.0, provider),
	}
}

/*
solve_energy_balance solves the chiller for the given duty and water-loop
boundary conditions.

The evaporating temperature starts 5 K below the chilled water supply and
the condensing temperature 5 K above the condenser water inlet. Each
iteration re-solves the cycle, recomputes the condenser water outlet from
the condenser duty and nudges either saturation temperature whose pinch
left the [3, 8] K band. Convergence is both pinches in band.

	Args:
		q_evap: required evaporator duty, W
		m_dot_chw: chilled water flow rate, kg/s
		m_dot_cw: condenser water flow rate, kg/s
		t_cw_in: condenser water inlet temperature, degree C
		t_chw_return: chilled water return temperature, degree C;
			NaN derives it from the duty and the chilled water flow

	Returns:
		converged operating point, or an error
*/
func (c *Chiller) solve_energy_balance(q_evap float64, m_dot_chw float64, m_dot_cw float64, t_cw_in float64, t_chw_return float64) (*ChillerResult, error) {
	if q_evap <= 0.0 {
		return nil, &ConfigurationError{Detail: fmt.Sprintf("evaporator duty %g W must be positive", q_evap)}
	}
	if m_dot_chw <= 0.0 {
		return nil, &ConfigurationError{Detail: fmt.Sprintf("chilled water flow %g kg/s must be positive", m_dot_chw)}
	}
	if m_dot_cw <= 0.0 {
		return nil, &ConfigurationError{Detail: fmt.Sprintf("condenser water flow %g kg/s must be positive", m_dot_cw)}
	}

	c_w := get_c_w()
	if math.IsNaN(t_chw_return) {
		t_chw_return = c.t_chw_supply + q_evap/(m_dot_chw*c_w)
	}

	t_evap := c.t_chw_supply - 5.0
	t_cond := t_cw_in + 5.0

	const max_iter = 20
	var cycle *CycleResult
	var t_cw_out float64
	var err error

	for iteration := 1; iteration <= max_iter; iteration++ {
		cycle, err = c.ref_cycle.solve(t_evap, t_cond, q_evap)
		if err != nil {
			return nil, fmt.Errorf("cycle solution failed at iteration %d: %w", iteration, err)
		}

		t_cw_out = t_cw_in + cycle.q_cond/(m_dot_cw*c_w)

		pinch_evap := c.t_chw_supply - t_evap
		pinch_cond := t_cond - t_cw_out

		adjusted := false
		if pinch_evap < _pinch_min {
			t_evap -= 0.5
			adjusted = true
		} else if pinch_evap > _pinch_max {
			t_evap += 0.3
			adjusted = true
		}
		if pinch_cond < _pinch_min {
			t_cond += 0.5
			adjusted = true
		} else if pinch_cond > _pinch_max {
			t_cond -= 0.3
			adjusted = true
		}

		if t_cond > c.t_cond_max {
			return nil, &PinchViolationError{
				Location:   "condenser",
				TEvapSat:   t_evap,
				TCondSat:   t_cond,
				TWaterSide: t_cw_out,
			}
		}
		if t_cond-t_evap < 1.0 {
			return nil, &PinchViolationError{
				Location:   "evaporator",
				TEvapSat:   t_evap,
				TCondSat:   t_cond,
				TWaterSide: c.t_chw_supply,
			}
		}

		if !adjusted {
			// Residual of the chilled water loop balance; zero when the
			// return temperature was derived from the duty.
			residual := q_evap - m_dot_chw*c_w*(t_chw_return-c.t_chw_supply)
			return &ChillerResult{
				cycle:        cycle,
				q_evap:       cycle.q_evap,
				q_cond:       cycle.q_cond,
				w_comp:       cycle.w_comp,
				cop:          cycle.cop,
				plr:          q_evap / c.rated_capacity,
				t_chw_supply: c.t_chw_supply,
				t_chw_return: t_chw_return,
				m_dot_chw:    m_dot_chw,
				t_cw_in:      t_cw_in,
				t_cw_out:     t_cw_out,
				m_dot_cw:     m_dot_cw,
				t_evap_sat:   t_evap,
				t_cond_sat:   t_cond,
				chw_residual: residual,
				iterations:   iteration,
			}, nil
		}
	}

	return nil, &NonConvergenceError{
		Loop:         "chiller pinch iteration",
		Iterations:   max_iter,
		LastResidual: math.Max(math.Abs(c.t_chw_supply-t_evap-_pinch_min), math.Abs(t_cond-t_cw_out-_pinch_min)),
		Tolerance:    0.0,
	}
}
