package main

// Standard atmospheric pressure, Pa
func get_p_atm() float64 {
	return 101325.0
}

// Specific heat of dry air at constant pressure, J/kg K
func get_c_a() float64 {
	return 1006.0
}

// Specific heat of water vapor at constant pressure, J/kg K
func get_c_wv() float64 {
	return 1860.0
}

// Density of air at 25 degree C, kg/m3
func get_rho_a() float64 {
	return 1.184
}

// Latent heat of vaporization of water at 0 degree C, J/kg
func get_l_wtr() float64 {
	return 2501000.0
}

// Specific heat of liquid water, J/kg K
func get_c_w() float64 {
	return 4186.0
}

// Density of water at 20 degree C, kg/m3
func get_rho_w() float64 {
	return 998.0
}

// Gravitational acceleration, m/s2
func get_grav() float64 {
	return 9.81
}

// Gas constant of dry air, J/kg K
func get_r_da() float64 {
	return 287.055
}
