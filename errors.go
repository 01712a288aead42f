package main

import "fmt"

/*
Failure taxonomy of the solvers.

Conservation-law violations are never masked with fallback values: every
failure below propagates to the scenario caller as a distinct, inspectable
error. A batch driver sweeping many scenarios catches per-scenario failures
and continues with the remaining scenarios.
*/

// PropertyResolutionError is returned when the thermophysical property
// provider cannot resolve a requested state (out-of-range input, unknown
// refrigerant, two-phase ambiguity).
type PropertyResolutionError struct {
	Refrigerant string
	Detail      string
}

func (e *PropertyResolutionError) Error() string {
	return fmt.Sprintf("property resolution failed for %s: %s", e.Refrigerant, e.Detail)
}

// PinchViolationError is returned when a configured minimum approach/pinch
// cannot be satisfied with the given inputs. The chiller never silently
// relaxes the pinch.
type PinchViolationError struct {
	Location   string  // "evaporator" or "condenser"
	TEvapSat   float64 // evaporator saturation temperature, degree C
	TCondSat   float64 // condenser saturation temperature, degree C
	TWaterSide float64 // the water-side temperature the pinch is measured against, degree C
}

func (e *PinchViolationError) Error() string {
	return fmt.Sprintf(
		"%s pinch cannot be satisfied: t_evap_sat=%.2f C, t_cond_sat=%.2f C, water side %.2f C",
		e.Location, e.TEvapSat, e.TCondSat, e.TWaterSide)
}

// NonConvergenceError is returned when an iterative loop exceeds its
// iteration cap without meeting tolerance. LastResidual lets the caller
// judge "almost converged" against "diverging".
type NonConvergenceError struct {
	Loop         string
	Iterations   int
	LastResidual float64
	Tolerance    float64
}

func (e *NonConvergenceError) Error() string {
	return fmt.Sprintf(
		"%s did not converge after %d iterations: last residual %.6g (tolerance %.6g)",
		e.Loop, e.Iterations, e.LastResidual, e.Tolerance)
}

// ConfigurationError is returned for non-physical input combinations, e.g. a
// cooling-tower outlet air enthalpy not greater than the inlet enthalpy, or
// non-positive flows and efficiencies.
type ConfigurationError struct {
	Detail string
}

func (e *ConfigurationError) Error() string {
	return "invalid configuration: " + e.Detail
}
