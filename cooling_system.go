package main

import (
	"fmt"
	"math"
)

// CouplingState tracks the chiller-tower fixed point iteration.
type CouplingState int

const (
	CouplingInitializing CouplingState = iota
	CouplingIterating
	CouplingConverged
	CouplingFailed
)

func (s CouplingState) String() string {
	return [...]string{"initializing", "iterating", "converged", "failed"}[s]
}

/*
CoolingSystem couples the chiller condenser to the cooling tower through
the condenser water loop. The loop closes over the condenser water inlet
temperature: the chiller sets the water temperature entering the tower,
the tower sets the water temperature returning to the condenser, and the
coupler iterates that single scalar to a fixed point.
*/
type CoolingSystem struct {
	chiller     *Chiller
	tower       *CoolingTower
	pump_system *PumpSystem

	t_chw_supply float64 // chilled water supply temperature, degree C
	relaxation   float64 // fixed point relaxation factor, (0, 1]
	t_cw_seed    float64 // initial condenser water inlet guess, degree C; NaN seeds from the ambient
	max_iter     int
	tolerance    float64 // convergence tolerance on t_cw_in, K
}

// DownstreamInterface is the part of the coupled solution that connected
// components consume: the chilled water boundary and the headline figures.
type DownstreamInterface struct {
	t_chw_supply float64 // degree C
	t_chw_return float64 // degree C
	m_dot_chw    float64 // kg/s
	q_cooling    float64 // cooling delivered, W
	system_cop   float64 // q_cooling / total cooling power, -
	total_power  float64 // compressor + CW pump + tower fans, W
}

// InternalDiagnostics carries the full component states for monitoring.
type InternalDiagnostics struct {
	chiller *ChillerResult
	tower   *CoolingTowerResult
	cw_pump *PumpResult

	m_dot_cw   float64 // condenser water flow, kg/s
	t_cw_in    float64 // converged condenser water inlet temperature, degree C
	t_cw_out   float64 // condenser water outlet temperature, degree C
	state      CouplingState
	iterations int

	// |q_cond - (q_evap + w_comp)| / q_cond at the converged point
	system_balance_error float64
}

// CoupledSolveResult is the converged chiller-tower operating point.
type CoupledSolveResult struct {
	downstream  *DownstreamInterface
	diagnostics *InternalDiagnostics
}

/*
NewCoolingSystem initializes the coupled chiller-tower plant.

	Args:
		chiller_capacity_mw: chiller rated capacity, MW
		chiller_cop: chiller rated COP, -
		t_chw_supply: chilled water supply temperature, degree C
		tower_approach: cooling tower approach, K
		coc: tower cycles of concentration, -
		relaxation: fixed point relaxation factor, (0, 1]; 1 is plain
			substitution
		provider: refrigerant property backend
*/
func NewCoolingSystem(chiller_capacity_mw float64, chiller_cop float64, t_chw_supply float64, tower_approach float64, coc float64, relaxation float64, provider PropertyProvider) *CoolingSystem {
	if relaxation <= 0.0 || relaxation > 1.0 {
		panic(fmt.Sprintf("relaxation factor %g outside (0, 1]", relaxation))
	}
	return &CoolingSystem{
		chiller:      NewChiller(chiller_capacity_mw, chiller_cop, t_chw_supply, "R134a", 0.80, provider),
		tower:        NewCoolingTower(tower_approach, coc, 0.00001),
		pump_system:  NewPumpSystem(10.0, 0.85),
		t_chw_supply: t_chw_supply,
		relaxation:   relaxation,
		t_cw_seed:    math.NaN(),
		max_iter:     50,
		tolerance:    0.01,
	}
}

// Condenser water flow sized for the expected rejection at a 5.5 K range.
func (cs *CoolingSystem) size_cw_flow(q_evap float64) float64 {
	return q_evap * 1.15 / (get_c_w() * 5.5)
}

/*
solve iterates the condenser water inlet temperature to the chiller-tower
fixed point.

The seed is t_cw_seed, or t_wb + approach + 0.5 when none was set. Each
pass solves the chiller at the current inlet temperature, hands the
condenser duty and outlet temperature to the tower, and relaxes the inlet
toward the tower's outlet. Convergence is a step below the tolerance with
the tower's duty residual also closed.

	Args:
		q_cooling_load: total evaporator load, W
		m_dot_chw: chilled water flow rate, kg/s
		t_chw_return: chilled water return temperature, degree C
		t_wb: ambient wet bulb temperature, degree C
		t_db: ambient dry bulb temperature, degree C; NaN estimates from t_wb

	Returns:
		coupled operating point, or a NonConvergenceError
*/
func (cs *CoolingSystem) solve(q_cooling_load float64, m_dot_chw float64, t_chw_return float64, t_wb float64, t_db float64) (*CoupledSolveResult, error) {
	if q_cooling_load <= 0.0 {
		return nil, &ConfigurationError{Detail: fmt.Sprintf("cooling load %g W must be positive", q_cooling_load)}
	}

	m_dot_cw := cs.size_cw_flow(q_cooling_load)
	t_cw_in := cs.t_cw_seed
	if math.IsNaN(t_cw_in) {
		t_cw_in = t_wb + cs.tower.approach + 0.5
	}
	state := CouplingInitializing

	var chiller_result *ChillerResult
	var tower_result *CoolingTowerResult
	last_step := math.Inf(1)

	for iteration := 1; iteration <= cs.max_iter; iteration++ {
		state = CouplingIterating

		var err error
		chiller_result, err = cs.chiller.solve_energy_balance(
			q_cooling_load, m_dot_chw, m_dot_cw, t_cw_in, t_chw_return)
		if err != nil {
			return nil, err
		}

		tower_result, err = cs.tower.solve(
			chiller_result.q_cond, m_dot_cw, chiller_result.t_cw_out, t_wb, t_db)
		if err != nil {
			return nil, err
		}

		t_cw_next := t_cw_in + cs.relaxation*(tower_result.t_water_out-t_cw_in)
		last_step = math.Abs(t_cw_next - t_cw_in)
		t_cw_in = t_cw_next

		// A stationary point only counts as converged once the tower's
		// duty residual has closed too.
		if last_step < cs.tolerance && tower_result.q_residual < 0.01*tower_result.q_reject {
			state = CouplingConverged

			cw_pump, err := cs.pump_system.solve(m_dot_cw)
			if err != nil {
				return nil, err
			}

			w_total := chiller_result.w_comp + cw_pump.p_pump + tower_result.w_fan
			balance := math.Abs(chiller_result.q_cond-(chiller_result.q_evap+chiller_result.w_comp)) / chiller_result.q_cond

			return &CoupledSolveResult{
				downstream: &DownstreamInterface{
					t_chw_supply: cs.t_chw_supply,
					t_chw_return: chiller_result.t_chw_return,
					m_dot_chw:    m_dot_chw,
					q_cooling:    chiller_result.q_evap,
					system_cop:   chiller_result.q_evap / w_total,
					total_power:  w_total,
				},
				diagnostics: &InternalDiagnostics{
					chiller:              chiller_result,
					tower:                tower_result,
					cw_pump:              cw_pump,
					m_dot_cw:             m_dot_cw,
					t_cw_in:              t_cw_in,
					t_cw_out:             chiller_result.t_cw_out,
					state:                state,
					iterations:           iteration,
					system_balance_error: balance,
				},
			}, nil
		}
	}

	return nil, &NonConvergenceError{
		Loop:         "chiller-tower coupling",
		Iterations:   cs.max_iter,
		LastResidual: last_step,
		Tolerance:    cs.tolerance,
	}
}
