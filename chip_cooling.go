package main

import (
	"fmt"
	"math"
)

// Shomate-style molar heat capacity of liquid water, J/(mol K).
// Cp = A + B*t + C*t^2 + D*t^3 + E/t^2 with t = T[K] / 1000.
func cp_molar_water(t_k float64) float64 {
	const (
		a = -203.606
		b = 1523.29
		c = -3196.413
		d = 2474.455
		e = 3.855326
	)
	t := t_k / 1000.0
	return a + b*t + c*t*t + d*t*t*t + e/(t*t)
}

// Mass-basis specific heat of liquid water at temperature theta, J/(kg K).
func cp_mass_water(theta float64) float64 {
	const m_water = 0.01801528 // kg/mol
	return cp_molar_water(theta+273.15) / m_water
}

/*
LiquidCoolingChip is the cold plate side of the compute loop: n GPUs at
p_gpu each, cooled by coolant heated from t1 to t2. The coolant flow
follows from the loop energy balance with the specific heat evaluated at
the mean loop temperature.
*/
type LiquidCoolingChip struct {
	n     int     // GPU count
	p_gpu float64 // heat dissipated per GPU, W
	t1    float64 // coolant supply temperature, degree C
	t2    float64 // coolant return temperature, degree C
	rho   float64 // coolant density, kg/m3
}

// ChipLoopResult is the coolant loop energy balance.
type ChipLoopResult struct {
	q_chip    float64 // total chip heat, W
	cp_chip   float64 // coolant specific heat at the mean temperature, J/kg K
	m_c_total float64 // total coolant flow, kg/s
	delta_t   float64 // t2 - t1, K
}

func NewLiquidCoolingChip(n int, p_gpu float64, t1 float64, t2 float64, rho float64) *LiquidCoolingChip {
	return &LiquidCoolingChip{n: n, p_gpu: p_gpu, t1: t1, t2: t2, rho: rho}
}

func (lc *LiquidCoolingChip) solve() (*ChipLoopResult, error) {
	delta_t := lc.t2 - lc.t1
	if delta_t <= 0.0 {
		return nil, &ConfigurationError{Detail: fmt.Sprintf(
			"coolant return %.2f C must exceed supply %.2f C", lc.t2, lc.t1)}
	}
	cp := cp_mass_water(0.5 * (lc.t1 + lc.t2))
	q := float64(lc.n) * lc.p_gpu
	return &ChipLoopResult{
		q_chip:    q,
		cp_chip:   cp,
		m_c_total: q / (cp * delta_t),
		delta_t:   delta_t,
	}, nil
}

// PipeSegment is one hydraulic leg of the distribution network.
type PipeSegment struct {
	diameter float64 // m
	length   float64 // m
	friction float64 // Darcy friction factor, -
}

func (p PipeSegment) area() float64 {
	return math.Pi * p.diameter * p.diameter / 4.0
}

// Darcy-Weisbach pressure drop for mass flow m_dot, Pa.
func (p PipeSegment) pressure_drop(m_dot float64, rho float64) float64 {
	v := m_dot / (rho * p.area())
	return p.friction * (p.length / p.diameter) * rho * v * v / 2.0
}

/*
GpuBranches splits the coolant flow over the rack / branch / header
hydraulic hierarchy and evaluates the series pressure drop of one path.

The branch count is the larger of the counts forced by the GPUs-per-branch
limit and the branch velocity cap; an explicit count overrides both.
*/
type GpuBranches struct {
	n         int     // GPU count
	m_c_total float64 // total coolant flow, kg/s
	rho       float64 // coolant density, kg/m3

	rack   PipeSegment
	branch PipeSegment
	header PipeSegment

	branches        int     // explicit branch count; 0 derives it
	gpus_per_branch int     // 0 disables
	v_cap_branch    float64 // branch velocity cap, m/s; 0 disables
}

// BranchResult is the hydraulic solution of the distribution network.
type BranchResult struct {
	branches         int
	racks            int
	racks_per_branch int

	m_branch float64 // kg/s
	m_rack   float64 // kg/s

	v_rack   float64 // m/s
	v_branch float64 // m/s
	v_header float64 // m/s

	dp_rack   float64 // Pa
	dp_branch float64 // Pa
	dp_header float64 // Pa
	dp_path   float64 // Pa
}

const _gpus_per_rack = 8

func (gb *GpuBranches) solve() (*BranchResult, error) {
	b := gb.branches
	if b == 0 {
		from_gpb := 0
		if gb.gpus_per_branch > 0 {
			from_gpb = int(math.Ceil(float64(gb.n) / float64(gb.gpus_per_branch)))
		}
		from_vcap := 0
		if gb.v_cap_branch > 0.0 {
			from_vcap = int(math.Ceil(gb.m_c_total / (gb.rho * gb.branch.area() * gb.v_cap_branch)))
		}
		if from_gpb > b {
			b = from_gpb
		}
		if from_vcap > b {
			b = from_vcap
		}
		if b == 0 {
			return nil, &ConfigurationError{Detail: "branch count underdetermined: set branches, gpus_per_branch or v_cap_branch"}
		}
	}
	if b <= 0 {
		return nil, &ConfigurationError{Detail: fmt.Sprintf("branch count %d must be positive", b)}
	}

	racks := int(math.Ceil(float64(gb.n) / float64(_gpus_per_rack)))
	racks_per_branch := int(math.Ceil(float64(racks) / float64(b)))

	m_branch := gb.m_c_total / float64(b)
	m_rack := m_branch / float64(racks_per_branch)

	dp_rack := gb.rack.pressure_drop(m_rack, gb.rho)
	dp_branch := gb.branch.pressure_drop(m_branch, gb.rho)
	dp_header := gb.header.pressure_drop(gb.m_c_total, gb.rho)

	return &BranchResult{
		branches:         b,
		racks:            racks,
		racks_per_branch: racks_per_branch,
		m_branch:         m_branch,
		m_rack:           m_rack,
		v_rack:           m_rack / (gb.rho * gb.rack.area()),
		v_branch:         m_branch / (gb.rho * gb.branch.area()),
		v_header:         gb.m_c_total / (gb.rho * gb.header.area()),
		dp_rack:          dp_rack,
		dp_branch:        dp_branch,
		dp_header:        dp_header,
		dp_path:          dp_rack + dp_branch + dp_header,
	}, nil
}

// Coolant pump power from the loop pressure drop, W.
func coolant_pump_power(m_c_total float64, rho float64, dp_path float64, eta_p float64) float64 {
	return (m_c_total / rho) * dp_path / eta_p
}

/*
CduHeatExchanger is the plate exchanger in the coolant distribution unit,
counterflow between the chip coolant loop (hot) and the building water
loop (cold). The transferred duty is the chip heat capped by the UA limit
through the LMTD and the effectiveness limit, whichever binds.
*/
type CduHeatExchanger struct {
	f_correction float64 // LMTD correction factor, -
	ua           float64 // UA capacity, W/K; 0 disables the cap
	epsilon      float64 // effectiveness cap, -; 0 disables
}

// CduResult is the CDU exchanger balance.
type CduResult struct {
	q_hx        float64 // duty through the exchanger, W
	t_to_tower  float64 // building water outlet temperature, degree C
	dt_hot_end  float64 // K
	dt_cold_end float64 // K
	lmtd        float64 // K; 0 when an end approach is infeasible
	ua_required float64 // W/K to move the full chip heat; 0 when undefined
	c_chip      float64 // chip side capacity rate, W/K
	c_bldg      float64 // building side capacity rate, W/K
}

/*
solve balances the CDU exchanger.

	Args:
		q_chip: chip loop heat, W
		m_b: building water flow, kg/s
		t_bin: building water inlet temperature, degree C
		t1, t2: coolant supply and return temperatures, degree C
		cp_chip: coolant specific heat, J/kg K
		m_c_total: coolant flow, kg/s
*/
func (hx *CduHeatExchanger) solve(q_chip float64, m_b float64, t_bin float64, t1 float64, t2 float64, cp_chip float64, m_c_total float64) (*CduResult, error) {
	if m_b <= 0.0 {
		return nil, &ConfigurationError{Detail: fmt.Sprintf("building water flow %g kg/s must be positive", m_b)}
	}
	cp_bldg := cp_mass_water(t_bin)

	dt_hot := t2 - (t_bin + q_chip/(m_b*cp_bldg))
	dt_cold := t1 - t_bin
	lmtd := 0.0
	if dt_hot > 0.0 && dt_cold > 0.0 {
		lmtd = _lmtd(dt_hot, dt_cold)
	}

	c_chip := m_c_total * cp_chip
	c_bldg := m_b * cp_bldg
	c_min := math.Min(c_chip, c_bldg)

	q_hx := q_chip
	if hx.ua > 0.0 && lmtd > 0.0 {
		q_hx = math.Min(q_hx, hx.f_correction*hx.ua*lmtd)
	}
	if hx.epsilon > 0.0 {
		q_hx = math.Min(q_hx, hx.epsilon*c_min*(t2-t_bin))
	}

	t_tower := t_bin + q_hx/(m_b*cp_bldg)

	ua_required := 0.0
	if lmtd > 0.0 {
		ua_required = q_chip / (hx.f_correction * lmtd)
	}

	return &CduResult{
		q_hx:        q_hx,
		t_to_tower:  t_tower,
		dt_hot_end:  t2 - t_tower,
		dt_cold_end: dt_cold,
		lmtd:        lmtd,
		ua_required: ua_required,
		c_chip:      c_chip,
		c_bldg:      c_bldg,
	}, nil
}

/*
ChipCoolingLoop is the whole compute cooling subsystem: cold plates,
distribution hydraulics, coolant pump and CDU exchanger.
*/
type ChipCoolingLoop struct {
	chip     *LiquidCoolingChip
	branches *GpuBranches
	cdu      *CduHeatExchanger
	eta_pump float64 // coolant pump efficiency, -
}

// ChipCoolingResult is the full compute loop solution.
type ChipCoolingResult struct {
	loop       *ChipLoopResult
	hydraulics *BranchResult
	cdu        *CduResult
	w_pump     float64 // coolant pump power, W
}

/*
NewChipCoolingLoop wires the compute loop with the default rack / branch /
header pipe geometry.

	Args:
		n: GPU count
		p_gpu: heat per GPU, W
		t1, t2: coolant supply and return temperatures, degree C
		gpus_per_branch: branch sizing limit; 0 requires v_cap_branch
		eta_pump: coolant pump efficiency, -
*/
func NewChipCoolingLoop(n int, p_gpu float64, t1 float64, t2 float64, gpus_per_branch int, eta_pump float64) *ChipCoolingLoop {
	const rho = 997.0
	return &ChipCoolingLoop{
		chip: NewLiquidCoolingChip(n, p_gpu, t1, t2, rho),
		branches: &GpuBranches{
			n:               n,
			rho:             rho,
			rack:            PipeSegment{diameter: 0.020, length: 600.0, friction: 0.02},
			branch:          PipeSegment{diameter: 0.10, length: 12.0, friction: 0.02},
			header:          PipeSegment{diameter: 1.65, length: 25.0, friction: 0.02},
			gpus_per_branch: gpus_per_branch,
		},
		cdu:      &CduHeatExchanger{f_correction: 1.0},
		eta_pump: eta_pump,
	}
}

/*
solve evaluates the compute loop against the building water boundary.

	Args:
		m_b: building water flow through the CDU, kg/s
		t_bin: building water inlet temperature, degree C
*/
func (cl *ChipCoolingLoop) solve(m_b float64, t_bin float64) (*ChipCoolingResult, error) {
	loop, err := cl.chip.solve()
	if err != nil {
		return nil, err
	}

	cl.branches.m_c_total = loop.m_c_total
	hyd, err := cl.branches.solve()
	if err != nil {
		return nil, err
	}

	cdu, err := cl.cdu.solve(loop.q_chip, m_b, t_bin, cl.chip.t1, cl.chip.t2, loop.cp_chip, loop.m_c_total)
	if err != nil {
		return nil, err
	}

	return &ChipCoolingResult{
		loop:       loop,
		hydraulics: hyd,
		cdu:        cdu,
		w_pump:     coolant_pump_power(loop.m_c_total, cl.chip.rho, hyd.dp_path, cl.eta_pump),
	}, nil
}
