package main

import (
	"fmt"
	"math"
)

/*
Pump models a centrifugal pump from the hydraulic head balance:

	P = rho * g * H_total * (m_dot / rho) / eta
	H_total = H_static + H_dynamic + H_equipment

The dynamic head is the velocity head v^2 / 2g scaled by a loss factor.
*/
type Pump struct {
	pump_type           string
	static_head         float64 // elevation head, m
	dynamic_head_factor float64 // velocity head multiplier, -
	equipment_head      float64 // equipment resistance head, m
	efficiency          float64 // pump efficiency, -
}

// PumpResult is one pump operating point.
type PumpResult struct {
	m_dot      float64 // mass flow rate, kg/s
	vol_flow   float64 // volume flow rate, m3/s
	h_total    float64 // total head, m
	p_pump     float64 // shaft power drawn, W
	e_fluid    float64 // energy delivered to the fluid, W
	efficiency float64 // e_fluid / p_pump, -
}

/*
NewPump initializes a pump.

	Args:
		pump_type: loop identifier, e.g. "CW"
		static_head: elevation head, m, [0, 100]
		dynamic_head_factor: velocity head multiplier, -
		equipment_head: equipment resistance head, m, [0, 50]
		efficiency: pump efficiency, (0, 1]

	Notes:
		Panics on out-of-range parameters.
*/
func NewPump(pump_type string, static_head float64, dynamic_head_factor float64, equipment_head float64, efficiency float64) *Pump {
	if static_head < 0.0 || static_head > 100.0 {
		panic(fmt.Sprintf("static head %g m outside [0, 100]", static_head))
	}
	if equipment_head < 0.0 || equipment_head > 50.0 {
		panic(fmt.Sprintf("equipment head %g m outside [0, 50]", equipment_head))
	}
	if efficiency <= 0.0 || efficiency > 1.0 {
		panic(fmt.Sprintf("efficiency %g outside (0, 1]", efficiency))
	}
	return &Pump{
		pump_type:           pump_type,
		static_head:         static_head,
		dynamic_head_factor: dynamic_head_factor,
		equipment_head:      equipment_head,
		efficiency:          efficiency,
	}
}

// Dynamic head for the given flow velocity, m.
func (p *Pump) dynamic_head(velocity float64) float64 {
	return velocity * velocity / (2.0 * get_grav()) * p.dynamic_head_factor
}

// Total head for the given flow velocity, m. NaN velocity assumes a
// typical 2 m/s pipe velocity.
func (p *Pump) total_head(velocity float64) float64 {
	if math.IsNaN(velocity) {
		velocity = 2.0
	}
	return p.static_head + p.dynamic_head(velocity) + p.equipment_head
}

/*
calculate_power returns the pump shaft power, W.

	Args:
		m_dot: mass flow rate, kg/s
		density: fluid density, kg/m3
		velocity: flow velocity, m/s; NaN assumes 2 m/s
*/
func (p *Pump) calculate_power(m_dot float64, density float64, velocity float64) (float64, error) {
	if m_dot <= 0.0 {
		return 0.0, &ConfigurationError{Detail: fmt.Sprintf("mass flow %g kg/s must be positive", m_dot)}
	}
	h_total := p.total_head(velocity)
	vol_flow := m_dot / density
	return density * get_grav() * h_total * vol_flow / p.efficiency, nil
}

// calculate_power_simple estimates pump power as a fraction of the thermal
// duty it serves. Used where the loop hydraulics are not resolved.
func (p *Pump) calculate_power_simple(q_thermal float64, power_fraction float64) float64 {
	return q_thermal * power_fraction
}

func (p *Pump) solve(m_dot float64, density float64, velocity float64) (*PumpResult, error) {
	if density <= 0.0 {
		density = get_rho_w()
	}
	h_total := p.total_head(velocity)
	p_pump, err := p.calculate_power(m_dot, density, velocity)
	if err != nil {
		return nil, err
	}
	e_fluid := m_dot * get_grav() * h_total
	return &PumpResult{
		m_dot:      m_dot,
		vol_flow:   m_dot / density,
		h_total:    h_total,
		p_pump:     p_pump,
		e_fluid:    e_fluid,
		efficiency: e_fluid / p_pump,
	}, nil
}

/*
PumpSystem is the plant-side pump set. Only the condenser water pump
between the chiller condenser and the cooling tower belongs to the plant;
the chilled water and coolant loop pumps are owned by their own subsystems.
*/
type PumpSystem struct {
	cw_pump *Pump
}

func NewPumpSystem(cw_static_head float64, cw_efficiency float64) *PumpSystem {
	return &PumpSystem{
		cw_pump: NewPump("CW", cw_static_head, 0.5, 6.0, cw_efficiency),
	}
}

// solve evaluates the condenser water pump at flow m_dot_cw, kg/s.
func (ps *PumpSystem) solve(m_dot_cw float64) (*PumpResult, error) {
	return ps.cw_pump.solve(m_dot_cw, get_rho_w(), math.NaN())
}
