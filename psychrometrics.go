package main

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

/*
Thermodynamic properties of moist air for the cooling-tower analysis.

All functions use temperature in degree C, pressure in Pa, humidity ratio in
kg/kg(DA) and specific enthalpy in J/kg(DA). Valid for -20 to 50 degree C at
around atmospheric pressure.
*/

/*
Calculate the saturation vapor pressure of water.

    Args:
        theta: air temperature, degree C

    Returns:
        saturation vapor pressure, Pa

    Notes:
        ASHRAE correlation (Hyland-Wexler form), with separate coefficient
        sets above water and below water (over ice).
*/
func get_p_vs(theta float64) float64 {
	// absolute temperature, K
	t := theta + 273.15

	const a1 = -5.8002206e3
	const a2 = 1.3914993
	const a3 = -4.8640239e-2
	const a4 = 4.1764768e-5
	const a5 = -1.4452093e-8
	const a6 = 6.5459673

	const b1 = -5.6745359e3
	const b2 = 6.3925247
	const b3 = -9.6778430e-3
	const b4 = 6.2215701e-7
	const b5 = 2.0747825e-9
	const b6 = -9.4840240e-13
	const b7 = 4.1635019

	var p_vs float64
	if theta >= 0.0 {
		p_vs = math.Exp(a1/t + a2 + a3*t + a4*t*t + a5*t*t*t + a6*math.Log(t))
	} else {
		p_vs = math.Exp(b1/t + b2 + b3*t + b4*t*t + b5*t*t*t + b6*t*t*t*t + b7*math.Log(t))
	}

	return p_vs
}

/*
Calculate the saturation vapor pressure for a vector of temperatures.

    Args:
        theta_ns: air temperatures, degree C, [n]

    Returns:
        saturation vapor pressures, Pa, [n]
*/
func get_p_vs_ns(theta_ns mat.Vector) []float64 {
	p_vs_ns := make([]float64, theta_ns.Len())
	for i := 0; i < theta_ns.Len(); i++ {
		p_vs_ns[i] = get_p_vs(theta_ns.AtVec(i))
	}
	return p_vs_ns
}

/*
Calculate the humidity ratio from dry-bulb temperature and relative humidity.

    Args:
        theta: dry-bulb temperature, degree C
        rh: relative humidity, 0-1
        p: total pressure, Pa

    Returns:
        humidity ratio, kg/kg(DA)

    Notes:
        w = 0.622 * p_v / (p - p_v) with p_v = rh * p_vs(theta).
*/
func get_x_from_rh(theta float64, rh float64, p float64) (float64, error) {
	if rh < 0.0 || rh > 1.0 {
		return 0.0, &ConfigurationError{Detail: "relative humidity must be between 0 and 1"}
	}
	if p <= 0.0 {
		return 0.0, &ConfigurationError{Detail: "total pressure must be positive"}
	}

	p_v := rh * get_p_vs(theta)
	if p_v >= p {
		return 0.0, &ConfigurationError{Detail: "vapor pressure exceeds total pressure"}
	}

	return 0.622 * p_v / (p - p_v), nil
}

/*
Calculate the humidity ratio from dry-bulb and wet-bulb temperature.

    Args:
        theta_db: dry-bulb temperature, degree C
        theta_wb: wet-bulb temperature, degree C
        p: total pressure, Pa

    Returns:
        humidity ratio, kg/kg(DA)

    Notes:
        Psychrometric relation assuming Lewis number 1:
            w = (w_s_wb * l(t_wb) - c_a * (t_db - t_wb)) / (l_wtr + c_wv * t_db - c_w * t_wb)
        with l(t_wb) = l_wtr - (c_w - c_wv) * t_wb, so a wet bulb equal to
        the dry bulb recovers saturation. The result is clipped to
        [0, w_s_wb].
*/
func get_x_from_twb(theta_db float64, theta_wb float64, p float64) (float64, error) {
	if theta_wb > theta_db {
		return 0.0, &ConfigurationError{Detail: "wet-bulb temperature exceeds dry-bulb temperature"}
	}

	// saturation humidity ratio at wet-bulb temperature, kg/kg(DA)
	p_vs_wb := get_p_vs(theta_wb)
	x_s_wb := 0.622 * p_vs_wb / (p - p_vs_wb)

	// latent heat at the wet-bulb temperature, J/kg
	l := get_l_wtr() - (get_c_w()-get_c_wv())*theta_wb

	x := (x_s_wb*l - get_c_a()*(theta_db-theta_wb)) / (get_l_wtr() + get_c_wv()*theta_db - get_c_w()*theta_wb)

	return math.Max(0.0, math.Min(x, x_s_wb)), nil
}

/*
Calculate the specific enthalpy of moist air.

    Args:
        theta: dry-bulb temperature, degree C
        x: humidity ratio, kg/kg(DA)

    Returns:
        specific enthalpy, J/kg(DA)

    Notes:
        h = c_a * theta + x * (l_wtr + c_wv * theta)
*/
func get_h_air(theta float64, x float64) float64 {
	return get_c_a()*theta + x*(get_l_wtr()+get_c_wv()*theta)
}

/*
Calculate the humidity ratio from dry-bulb temperature and specific enthalpy.

    Args:
        theta: dry-bulb temperature, degree C
        h: specific enthalpy, J/kg(DA)

    Returns:
        humidity ratio, kg/kg(DA)

    Notes:
        Inverse of get_h_air. A negative result means the enthalpy is below
        that of dry air at theta.
*/
func get_x_from_h(theta float64, h float64) (float64, error) {
	x := (h - get_c_a()*theta) / (get_l_wtr() + get_c_wv()*theta)
	if x < 0.0 {
		return 0.0, &ConfigurationError{Detail: "enthalpy below that of dry air at the given temperature"}
	}
	return x, nil
}

/*
Calculate the relative humidity from temperature and humidity ratio.

    Args:
        theta: dry-bulb temperature, degree C
        x: humidity ratio, kg/kg(DA)
        p: total pressure, Pa

    Returns:
        relative humidity, clamped to 0-1
*/
func get_rh(theta float64, x float64, p float64) float64 {
	p_v := x * p / (0.622 + x)
	rh := p_v / get_p_vs(theta)
	return math.Min(1.0, math.Max(0.0, rh))
}

/*
Calculate the specific volume of moist air.

    Args:
        theta: temperature, degree C
        x: humidity ratio, kg/kg(DA)
        p: total pressure, Pa

    Returns:
        specific volume, m3/kg(DA)
*/
func get_v_air(theta float64, x float64, p float64) float64 {
	t := theta + 273.15
	return get_r_da() * t / p * (1.0 + 1.608*x)
}

// MoistAirState is a complete thermodynamic state of moist air at a fixed
// total pressure.
type MoistAirState struct {
	theta_db float64 // dry-bulb temperature, degree C
	x        float64 // humidity ratio, kg/kg(DA)
	h        float64 // specific enthalpy, J/kg(DA)
	rh       float64 // relative humidity, 0-1
	p        float64 // total pressure, Pa
}

/*
Create a moist-air state from dry-bulb and wet-bulb temperature.

    Args:
        theta_db: dry-bulb temperature, degree C
        theta_wb: wet-bulb temperature, degree C
        p: total pressure, Pa
*/
func NewMoistAirStateFromTwb(theta_db float64, theta_wb float64, p float64) (*MoistAirState, error) {
	x, err := get_x_from_twb(theta_db, theta_wb, p)
	if err != nil {
		return nil, err
	}
	return _new_moist_air_state(theta_db, x, p), nil
}

/*
Create a moist-air state from dry-bulb temperature and relative humidity.

    Args:
        theta_db: dry-bulb temperature, degree C
        rh: relative humidity, 0-1
        p: total pressure, Pa
*/
func NewMoistAirStateFromRh(theta_db float64, rh float64, p float64) (*MoistAirState, error) {
	x, err := get_x_from_rh(theta_db, rh, p)
	if err != nil {
		return nil, err
	}
	return _new_moist_air_state(theta_db, x, p), nil
}

/*
Create a moist-air state from dry-bulb temperature and specific enthalpy.

    Args:
        theta_db: dry-bulb temperature, degree C
        h: specific enthalpy, J/kg(DA)
        p: total pressure, Pa
*/
func NewMoistAirStateFromH(theta_db float64, h float64, p float64) (*MoistAirState, error) {
	x, err := get_x_from_h(theta_db, h)
	if err != nil {
		return nil, err
	}
	return _new_moist_air_state(theta_db, x, p), nil
}

func _new_moist_air_state(theta_db float64, x float64, p float64) *MoistAirState {
	return &MoistAirState{
		theta_db: theta_db,
		x:        x,
		h:        get_h_air(theta_db, x),
		rh:       get_rh(theta_db, x, p),
		p:        p,
	}
}
