package main

import (
	"fmt"
	"math"
)

/*
IntegratedHVACSystem is the whole-plant cascade. Heat flows from the two
IT loads into the chilled water loop and on through the chiller to the
cooling tower:

	air-cooled IT -> air loop -> building HX -> chilled water
	GPUs -> coolant loop -> CDU HX -> chilled water
	chilled water -> chiller evaporator -> condenser -> tower -> ambient
*/
type IntegratedHVACSystem struct {
	// air loop
	air_pump_power float64 // rated fan power, W; 0 sizes the fan for the load
	air_delta_p    float64 // Pa
	air_eta        float64 // -
	t_air_in       float64 // degree C
	q_air_load     float64 // W
	t_air_max      float64 // degree C

	// compute loop
	gpu_count       int
	p_gpu           float64 // W per GPU
	t_coolant_sup   float64 // degree C
	t_coolant_ret   float64 // degree C
	gpus_per_branch int
	eta_coolant     float64 // coolant pump efficiency, -

	// chilled water loop
	t_chw_supply     float64 // degree C
	delta_t_chw      float64 // design chilled water temperature rise, K
	hx_effectiveness float64 // building exchanger effectiveness, -

	// ambient
	t_wb float64 // degree C
	t_db float64 // degree C; NaN estimates from t_wb

	// plant
	chiller_capacity_mw float64
	chiller_cop         float64
	tower_approach      float64 // K
	tower_coc           float64 // -

	provider PropertyProvider
}

// PlantMetrics are the headline site figures.
type PlantMetrics struct {
	p_it          float64 // IT power, W
	w_cooling     float64 // total cooling power, W
	pue           float64 // power usage effectiveness, -
	wue           float64 // water usage effectiveness, L/kWh
	m_makeup      float64 // tower makeup water, kg/s
	system_cop    float64 // delivered cooling over cooling power, -
	q_unmet       float64 // air-side load the capped stream cannot carry, W
	cascade_error float64 // |q_evap - collected loads|, W
}

// PlantResult is the full integrated solution.
type PlantResult struct {
	downstream *DownstreamInterface
	metrics    *PlantMetrics

	air_result  *AirCooledResult
	bldg_hx     *HeatExchangerResult
	chip_result *ChipCoolingResult
	coupled     *CoupledSolveResult

	m_dot_air    float64 // kg/s
	w_air_fan    float64 // air handler fan power, W
	m_dot_chw    float64 // total chilled water flow, kg/s
	t_chw_return float64 // blended return temperature, degree C
}

// PlantConfig collects every plant parameter. Loaded from JSON by main.
type PlantConfig struct {
	AirPumpPower      float64  `json:"air_pump_power_w"` // 0 sizes the fan for the air load
	AirDeltaP         float64  `json:"air_delta_p_pa"`
	AirEta            float64  `json:"air_pump_efficiency"`
	TAirIn            float64  `json:"t_air_in_c"`
	QAirLoad          float64  `json:"q_air_load_w"`
	TAirMax           float64  `json:"t_air_max_c"`
	GpuCount          int      `json:"gpu_count"`
	PGpu              float64  `json:"p_gpu_w"`
	TCoolantSupply    float64  `json:"t_coolant_supply_c"`
	TCoolantReturn    float64  `json:"t_coolant_return_c"`
	GpusPerBranch     int      `json:"gpus_per_branch"`
	EtaCoolantPump    float64  `json:"coolant_pump_efficiency"`
	TChwSupply        float64  `json:"t_chw_supply_c"`
	DeltaTChw         float64  `json:"delta_t_chw_design_c"`
	HxEffectiveness   float64  `json:"hx_effectiveness"`
	TWetBulb          float64  `json:"t_wb_c"`
	TDryBulb          *float64 `json:"t_db_c"` // nil estimates the dry bulb from the wet bulb
	ChillerCapacityMw float64  `json:"chiller_capacity_mw"`
	ChillerCop        float64  `json:"chiller_cop"`
	TowerApproach     float64  `json:"tower_approach_c"`
	TowerCoc          float64  `json:"tower_coc"`
}

// NewIntegratedHVACSystem builds the plant from a configuration.
func NewIntegratedHVACSystem(cfg *PlantConfig, provider PropertyProvider) *IntegratedHVACSystem {
	t_db := math.NaN()
	if cfg.TDryBulb != nil {
		t_db = *cfg.TDryBulb
	}
	return &IntegratedHVACSystem{
		air_pump_power:      cfg.AirPumpPower,
		air_delta_p:         cfg.AirDeltaP,
		air_eta:             cfg.AirEta,
		t_air_in:            cfg.TAirIn,
		q_air_load:          cfg.QAirLoad,
		t_air_max:           cfg.TAirMax,
		gpu_count:           cfg.GpuCount,
		p_gpu:               cfg.PGpu,
		t_coolant_sup:       cfg.TCoolantSupply,
		t_coolant_ret:       cfg.TCoolantReturn,
		gpus_per_branch:     cfg.GpusPerBranch,
		eta_coolant:         cfg.EtaCoolantPump,
		t_chw_supply:        cfg.TChwSupply,
		delta_t_chw:         cfg.DeltaTChw,
		hx_effectiveness:    cfg.HxEffectiveness,
		t_wb:                cfg.TWetBulb,
		t_db:                t_db,
		chiller_capacity_mw: cfg.ChillerCapacityMw,
		chiller_cop:         cfg.ChillerCop,
		tower_approach:      cfg.TowerApproach,
		tower_coc:           cfg.TowerCoc,
		provider:            provider,
	}
}

/*
solve runs the full cascade.

The two IT loads are collected into the chilled water loop first: the air
loop through the building exchanger and the GPU loop through the CDU. The
blended return temperature and total flow then drive the chiller-tower
coupling, and the site metrics close the accounting.
*/
func (sys *IntegratedHVACSystem) solve() (*PlantResult, error) {
	c_w := get_c_w()

	// Air loop. An explicit fan rating limits the air flow; otherwise the
	// fan is sized to carry the full air load at the design air rise.
	var air_pump *AirPump
	if sys.air_pump_power > 0.0 {
		air_pump = NewAirPump(sys.air_pump_power, sys.air_delta_p, sys.air_eta)
	} else {
		if sys.t_air_max <= sys.t_air_in {
			return nil, &ConfigurationError{Detail: fmt.Sprintf(
				"outlet air cap %g C must exceed supply air %g C to size the air loop", sys.t_air_max, sys.t_air_in)}
		}
		if sys.q_air_load <= 0.0 {
			return nil, &ConfigurationError{Detail: fmt.Sprintf(
				"air load %g W must be positive to size the air loop", sys.q_air_load)}
		}
		m_required := sys.q_air_load / (get_c_a() * (sys.t_air_max - sys.t_air_in))
		air_pump = NewAirPumpForFlow(m_required, sys.air_delta_p, sys.air_eta)
	}
	m_dot_air := air_pump.mass_flow_rate()

	ace := NewAirCooledEquipment(sys.q_air_load, sys.t_air_in, sys.t_air_max)
	air_result, err := ace.solve(m_dot_air)
	if err != nil {
		return nil, fmt.Errorf("air loop: %w", err)
	}

	// Building heat exchanger: the absorbed air load is handed to the
	// chilled water as a target duty against a stream sized for the design
	// temperature rise, so the collection carries exactly what the air
	// loop absorbed.
	m_chw_bldg := math.Max(air_result.q_absorbed, 1.0e-3) / (c_w * sys.delta_t_chw)
	bldg_hx := NewHeatExchanger(sys.hx_effectiveness)
	bldg_result, err := bldg_hx.solve_counterflow(
		m_dot_air, get_c_a(), air_result.t_air_out,
		m_chw_bldg, c_w, sys.t_chw_supply, air_result.q_absorbed)
	if err != nil {
		return nil, fmt.Errorf("building heat exchanger: %w", err)
	}

	// Compute loop: the CDU cold side is chilled water sized for the chip
	// heat at the design temperature rise.
	q_chip := float64(sys.gpu_count) * sys.p_gpu
	m_chw_cdu := q_chip / (c_w * sys.delta_t_chw)
	chip_loop := NewChipCoolingLoop(sys.gpu_count, sys.p_gpu, sys.t_coolant_sup, sys.t_coolant_ret, sys.gpus_per_branch, sys.eta_coolant)
	chip_result, err := chip_loop.solve(m_chw_cdu, sys.t_chw_supply)
	if err != nil {
		return nil, fmt.Errorf("chip cooling loop: %w", err)
	}

	// Collect into the chilled water loop. The return temperature follows
	// from the collected duty over the merged flow.
	q_evap := bldg_result.q + chip_result.cdu.q_hx
	m_dot_chw := m_chw_bldg + m_chw_cdu
	t_chw_return := sys.t_chw_supply + q_evap/(m_dot_chw*c_w)

	cascade_error := math.Abs(q_evap - m_dot_chw*c_w*(t_chw_return-sys.t_chw_supply))
	if cascade_error > 1.0e4 {
		return nil, &ConfigurationError{Detail: fmt.Sprintf(
			"chilled water collection unbalanced by %.3f MW", cascade_error/1.0e6)}
	}

	// Chiller-tower plant.
	cooling_sys := NewCoolingSystem(sys.chiller_capacity_mw, sys.chiller_cop, sys.t_chw_supply,
		sys.tower_approach, sys.tower_coc, 1.0, sys.provider)
	coupled, err := cooling_sys.solve(q_evap, m_dot_chw, t_chw_return, sys.t_wb, sys.t_db)
	if err != nil {
		return nil, fmt.Errorf("chiller-tower coupling: %w", err)
	}

	// Site accounting. The air pump and coolant pump belong to their own
	// loops but count toward cooling power.
	w_cooling := coupled.downstream.total_power + air_pump.power + chip_result.w_pump
	p_it := q_chip + sys.q_air_load

	pue := (p_it + w_cooling) / p_it
	m_makeup := coupled.diagnostics.tower.m_makeup
	// L per kWh of IT energy: the makeup rate over an hour against the IT
	// energy over the same hour.
	wue := m_makeup * 3600.0 / (p_it / 1000.0)

	return &PlantResult{
		downstream: coupled.downstream,
		metrics: &PlantMetrics{
			p_it:          p_it,
			w_cooling:     w_cooling,
			pue:           pue,
			wue:           wue,
			m_makeup:      m_makeup,
			system_cop:    q_evap / w_cooling,
			q_unmet:       air_result.q_unmet,
			cascade_error: cascade_error,
		},
		air_result:   air_result,
		bldg_hx:      bldg_result,
		chip_result:  chip_result,
		coupled:      coupled,
		m_dot_air:    m_dot_air,
		w_air_fan:    air_pump.power,
		m_dot_chw:    m_dot_chw,
		t_chw_return: t_chw_return,
	}, nil
}
