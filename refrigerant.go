package main

import (
	"fmt"
	"math"
)

// Phase of a refrigerant state point.
type Phase int

const (
	SubcooledLiquid Phase = iota
	TwoPhase
	SuperheatedVapor
)

func (p Phase) String() string {
	return [...]string{"subcooled liquid", "two-phase", "superheated vapor"}[p]
}

// RefrigerantState is one thermodynamic state point of the refrigeration
// cycle. Immutable once computed; scoped to one cycle evaluation.
type RefrigerantState struct {
	p     float64 // pressure, Pa
	t     float64 // temperature, degree C
	h     float64 // specific enthalpy, J/kg
	s     float64 // specific entropy, J/kg K
	q     float64 // quality; -1 for subcooled, 0-1 for two-phase, 2 for superheated
	phase Phase
}

/*
PropertyProvider resolves refrigerant states from two independent state
variables. It is the one capability abstraction of the cycle solver, so the
balancing algorithms can be tested against a synthetic provider with known
analytic answers.

Implementations must be safe for concurrent read-only queries from multiple
scenario workers.
*/
type PropertyProvider interface {
	// StateTP resolves a state from pressure and temperature.
	StateTP(refrigerant string, p float64, t float64) (*RefrigerantState, error)

	// StatePQ resolves a saturation state from pressure and vapor quality.
	StatePQ(refrigerant string, p float64, q float64) (*RefrigerantState, error)

	// StatePS resolves a state from pressure and specific entropy.
	StatePS(refrigerant string, p float64, s float64) (*RefrigerantState, error)

	// StatePH resolves a state from pressure and specific enthalpy.
	StatePH(refrigerant string, p float64, h float64) (*RefrigerantState, error)

	// SaturationPressure returns the saturation pressure at temperature t, Pa.
	SaturationPressure(refrigerant string, t float64) (float64, error)

	// SaturationTemperature returns the saturation temperature at pressure p, degree C.
	SaturationTemperature(refrigerant string, p float64) (float64, error)
}

/*
R134aProperties is a correlation-based property backend for R134a.

Saturation pressure follows a Clausius-Clapeyron fit anchored at 0 and 40
degree C; latent heat varies linearly with temperature; liquid and vapor
specific heats are treated as constant. Reference state is IIR
(h = 200 kJ/kg, s = 1.0 kJ/kg K for saturated liquid at 0 degree C).

Valid saturation temperature range: -40 to 70 degree C. Queries outside it
fail with a PropertyResolutionError.
*/
type R134aProperties struct{}

const (
	_r134a_name = "R134a"

	// ln(p_sat [Pa]) = _sat_a - _sat_b / T[K]
	_sat_a = 22.3353
	_sat_b = 2662.7

	_cp_liquid = 1340.0   // J/kg K
	_cp_vapor  = 1050.0   // J/kg K
	_h_f0      = 200000.0 // J/kg, saturated liquid at 0 degree C
	_s_f0      = 1000.0   // J/kg K, saturated liquid at 0 degree C
	_h_fg0     = 198600.0 // J/kg, latent heat at 0 degree C
	_dh_fg_dt  = -883.0   // J/kg K, latent heat slope

	_t_sat_min = -40.0 // degree C
	_t_sat_max = 70.0  // degree C
)

func NewR134aProperties() *R134aProperties {
	return &R134aProperties{}
}

func (r *R134aProperties) SaturationPressure(refrigerant string, t float64) (float64, error) {
	if err := r._check(refrigerant, t); err != nil {
		return 0.0, err
	}
	return math.Exp(_sat_a - _sat_b/(t+273.15)), nil
}

// SaturationTemperature is the analytic inverse of the saturation curve.
func (r *R134aProperties) SaturationTemperature(refrigerant string, p float64) (float64, error) {
	if refrigerant != _r134a_name {
		return 0.0, &PropertyResolutionError{Refrigerant: refrigerant, Detail: "unknown refrigerant"}
	}
	if p <= 0.0 {
		return 0.0, &PropertyResolutionError{Refrigerant: refrigerant,
			Detail: fmt.Sprintf("non-positive pressure %g Pa", p)}
	}
	t := _sat_b/(_sat_a-math.Log(p)) - 273.15
	if t < _t_sat_min || t > _t_sat_max {
		return 0.0, &PropertyResolutionError{Refrigerant: refrigerant,
			Detail: fmt.Sprintf("pressure %g Pa outside saturation range", p)}
	}
	return t, nil
}

func (r *R134aProperties) _check(refrigerant string, t float64) error {
	if refrigerant != _r134a_name {
		return &PropertyResolutionError{Refrigerant: refrigerant, Detail: "unknown refrigerant"}
	}
	if t < _t_sat_min || t > _t_sat_max {
		return &PropertyResolutionError{Refrigerant: refrigerant,
			Detail: fmt.Sprintf("temperature %.2f C outside range [%.0f, %.0f] C", t, _t_sat_min, _t_sat_max)}
	}
	return nil
}

// Saturated liquid enthalpy at temperature t, J/kg.
func _h_f(t float64) float64 {
	return _h_f0 + _cp_liquid*t
}

// Latent heat of vaporization at temperature t, J/kg.
func _h_fg(t float64) float64 {
	return _h_fg0 + _dh_fg_dt*t
}

// Saturated liquid entropy at temperature t, J/kg K.
func _s_f(t float64) float64 {
	return _s_f0 + _cp_liquid*math.Log((t+273.15)/273.15)
}

// Saturated vapor entropy at temperature t, J/kg K. Consistent with the
// latent heat through s_fg = h_fg / T.
func _s_g(t float64) float64 {
	return _s_f(t) + _h_fg(t)/(t+273.15)
}

func (r *R134aProperties) StateTP(refrigerant string, p float64, t float64) (*RefrigerantState, error) {
	if err := r._check(refrigerant, t); err != nil {
		return nil, err
	}
	t_sat, err := r.SaturationTemperature(refrigerant, p)
	if err != nil {
		return nil, err
	}

	// On the line to within rounding the quality is underdetermined.
	const on_line = 1.0e-9 // K
	if t > t_sat+on_line {
		// superheated vapor
		h := _h_f(t_sat) + _h_fg(t_sat) + _cp_vapor*(t-t_sat)
		s := _s_g(t_sat) + _cp_vapor*math.Log((t+273.15)/(t_sat+273.15))
		return &RefrigerantState{p: p, t: t, h: h, s: s, q: 2.0, phase: SuperheatedVapor}, nil
	}
	if t < t_sat-on_line {
		// subcooled liquid; pressure dependence of the liquid is neglected
		return &RefrigerantState{p: p, t: t, h: _h_f(t), s: _s_f(t), q: -1.0, phase: SubcooledLiquid}, nil
	}
	return nil, &PropertyResolutionError{Refrigerant: refrigerant,
		Detail: fmt.Sprintf("state (p=%g Pa, t=%.2f C) lies on the saturation line; quality required", p, t)}
}

func (r *R134aProperties) StatePQ(refrigerant string, p float64, q float64) (*RefrigerantState, error) {
	if q < 0.0 || q > 1.0 {
		return nil, &PropertyResolutionError{Refrigerant: refrigerant,
			Detail: fmt.Sprintf("quality %g outside [0, 1]", q)}
	}
	t_sat, err := r.SaturationTemperature(refrigerant, p)
	if err != nil {
		return nil, err
	}
	h := _h_f(t_sat) + q*_h_fg(t_sat)
	s := _s_f(t_sat) + q*_h_fg(t_sat)/(t_sat+273.15)
	return &RefrigerantState{p: p, t: t_sat, h: h, s: s, q: q, phase: TwoPhase}, nil
}

func (r *R134aProperties) StatePS(refrigerant string, p float64, s float64) (*RefrigerantState, error) {
	t_sat, err := r.SaturationTemperature(refrigerant, p)
	if err != nil {
		return nil, err
	}
	s_f := _s_f(t_sat)
	s_g := _s_g(t_sat)

	switch {
	case s > s_g:
		// superheated vapor: s = s_g + cp_v * ln(T / T_sat)
		t_k := (t_sat + 273.15) * math.Exp((s-s_g)/_cp_vapor)
		t := t_k - 273.15
		if t > _t_sat_max+30.0 {
			return nil, &PropertyResolutionError{Refrigerant: refrigerant,
				Detail: fmt.Sprintf("superheated state at %.2f C outside range", t)}
		}
		h := _h_f(t_sat) + _h_fg(t_sat) + _cp_vapor*(t-t_sat)
		return &RefrigerantState{p: p, t: t, h: h, s: s, q: 2.0, phase: SuperheatedVapor}, nil
	case s >= s_f:
		q := (s - s_f) / (s_g - s_f)
		h := _h_f(t_sat) + q*_h_fg(t_sat)
		return &RefrigerantState{p: p, t: t_sat, h: h, s: s, q: q, phase: TwoPhase}, nil
	default:
		// subcooled liquid: s = s_f0 + cp_l * ln(T / 273.15)
		t_k := 273.15 * math.Exp((s-_s_f0)/_cp_liquid)
		t := t_k - 273.15
		if t < _t_sat_min {
			return nil, &PropertyResolutionError{Refrigerant: refrigerant,
				Detail: fmt.Sprintf("subcooled state at %.2f C outside range", t)}
		}
		return &RefrigerantState{p: p, t: t, h: _h_f(t), s: s, q: -1.0, phase: SubcooledLiquid}, nil
	}
}

func (r *R134aProperties) StatePH(refrigerant string, p float64, h float64) (*RefrigerantState, error) {
	t_sat, err := r.SaturationTemperature(refrigerant, p)
	if err != nil {
		return nil, err
	}
	h_f := _h_f(t_sat)
	h_g := h_f + _h_fg(t_sat)

	switch {
	case h > h_g:
		t := t_sat + (h-h_g)/_cp_vapor
		if t > _t_sat_max+30.0 {
			return nil, &PropertyResolutionError{Refrigerant: refrigerant,
				Detail: fmt.Sprintf("superheated state at %.2f C outside range", t)}
		}
		s := _s_g(t_sat) + _cp_vapor*math.Log((t+273.15)/(t_sat+273.15))
		return &RefrigerantState{p: p, t: t, h: h, s: s, q: 2.0, phase: SuperheatedVapor}, nil
	case h >= h_f:
		q := (h - h_f) / (h_g - h_f)
		s := _s_f(t_sat) + q*_h_fg(t_sat)/(t_sat+273.15)
		return &RefrigerantState{p: p, t: t_sat, h: h, s: s, q: q, phase: TwoPhase}, nil
	default:
		t := (h - _h_f0) / _cp_liquid
		if t < _t_sat_min {
			return nil, &PropertyResolutionError{Refrigerant: refrigerant,
				Detail: fmt.Sprintf("subcooled state at %.2f C outside range", t)}
		}
		return &RefrigerantState{p: p, t: t, h: h, s: _s_f(t), q: -1.0, phase: SubcooledLiquid}, nil
	}
}
