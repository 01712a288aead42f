package main

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
)

// ResultRow is one scenario's flattened plant solution for the sweep
// result CSV.
type ResultRow struct {
	Name         string   `csv:"name"`
	Status       string   `csv:"status"`
	TWetBulb     float64  `csv:"t_wb_c"`
	TDryBulb     *float64 `csv:"t_db_c"` // empty when the scenario left it to the tower estimate
	QCoolingMw   float64  `csv:"q_cooling_mw"`
	ChillerCop   float64  `csv:"chiller_cop"`
	SystemCop    float64  `csv:"system_cop"`
	WCompMw      float64  `csv:"w_comp_mw"`
	WCoolingMw   float64  `csv:"w_cooling_mw"`
	TCwIn        float64  `csv:"t_cw_in_c"`
	TCondSat     float64  `csv:"t_cond_sat_c"`
	TEvapSat     float64  `csv:"t_evap_sat_c"`
	MakeupKgS    float64  `csv:"m_makeup_kg_s"`
	Pue          float64  `csv:"pue"`
	Wue          float64  `csv:"wue_l_kwh"`
	Iterations   int      `csv:"coupling_iterations"`
	ErrorMessage string   `csv:"error"`
}

// Recorder collects sweep outcomes and writes the output files.
type Recorder struct {
	rows []*ResultRow
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

// record flattens one sweep outcome into a result row.
func (r *Recorder) record(o *SweepOutcome) {
	row := &ResultRow{
		Name:     o.Scenario.Name,
		TWetBulb: o.Scenario.TWetBulb,
		TDryBulb: o.Scenario.TDryBulb,
	}
	if o.Err != nil {
		row.Status = "failed"
		row.ErrorMessage = o.Err.Error()
		r.rows = append(r.rows, row)
		return
	}

	res := o.Result
	diag := res.coupled.diagnostics
	row.Status = "converged"
	row.QCoolingMw = res.downstream.q_cooling / 1.0e6
	row.ChillerCop = diag.chiller.cop
	row.SystemCop = res.downstream.system_cop
	row.WCompMw = diag.chiller.w_comp / 1.0e6
	row.WCoolingMw = res.metrics.w_cooling / 1.0e6
	row.TCwIn = diag.t_cw_in
	row.TCondSat = diag.chiller.t_cond_sat
	row.TEvapSat = diag.chiller.t_evap_sat
	row.MakeupKgS = res.metrics.m_makeup
	row.Pue = res.metrics.pue
	row.Wue = res.metrics.wue
	row.Iterations = diag.iterations
	r.rows = append(r.rows, row)
}

// export_csv writes the collected rows to <output_dir>/sweep_results.csv.
func (r *Recorder) export_csv(output_dir string) error {
	file, err := os.Create(filepath.Join(output_dir, "sweep_results.csv"))
	if err != nil {
		return err
	}
	defer file.Close()
	return gocsv.MarshalFile(&r.rows, file)
}

// plantResultJSON is the JSON shape of one solved plant, written for a
// single (non-sweep) run.
type plantResultJSON struct {
	QCoolingMw  float64 `json:"q_cooling_mw"`
	TChwSupply  float64 `json:"t_chw_supply_c"`
	TChwReturn  float64 `json:"t_chw_return_c"`
	MDotChw     float64 `json:"m_dot_chw_kg_s"`
	ChillerCop  float64 `json:"chiller_cop"`
	SystemCop   float64 `json:"system_cop"`
	WCompMw     float64 `json:"w_comp_mw"`
	WFanMw      float64 `json:"w_fan_mw"`
	WCwPumpMw   float64 `json:"w_cw_pump_mw"`
	WCoolingMw  float64 `json:"w_cooling_mw"`
	TCwIn       float64 `json:"t_cw_in_c"`
	TCwOut      float64 `json:"t_cw_out_c"`
	TEvapSat    float64 `json:"t_evap_sat_c"`
	TCondSat    float64 `json:"t_cond_sat_c"`
	MEvapKgS    float64 `json:"m_evap_kg_s"`
	MMakeupKgS  float64 `json:"m_makeup_kg_s"`
	Pue         float64 `json:"pue"`
	WueLKwh     float64 `json:"wue_l_kwh"`
	QUnmetMw    float64 `json:"q_unmet_mw"`
	Iterations  int     `json:"coupling_iterations"`
}

// export_json writes one solved plant to <output_dir>/plant_result.json.
func export_json(result *PlantResult, output_dir string) error {
	diag := result.coupled.diagnostics
	out := &plantResultJSON{
		QCoolingMw: result.downstream.q_cooling / 1.0e6,
		TChwSupply: result.downstream.t_chw_supply,
		TChwReturn: result.downstream.t_chw_return,
		MDotChw:    result.downstream.m_dot_chw,
		ChillerCop: diag.chiller.cop,
		SystemCop:  result.downstream.system_cop,
		WCompMw:    diag.chiller.w_comp / 1.0e6,
		WFanMw:     diag.tower.w_fan / 1.0e6,
		WCwPumpMw:  diag.cw_pump.p_pump / 1.0e6,
		WCoolingMw: result.metrics.w_cooling / 1.0e6,
		TCwIn:      diag.t_cw_in,
		TCwOut:     diag.t_cw_out,
		TEvapSat:   diag.chiller.t_evap_sat,
		TCondSat:   diag.chiller.t_cond_sat,
		MEvapKgS:   diag.tower.m_evap,
		MMakeupKgS: result.metrics.m_makeup,
		Pue:        result.metrics.pue,
		WueLKwh:    result.metrics.wue,
		QUnmetMw:   result.metrics.q_unmet / 1.0e6,
		Iterations: diag.iterations,
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(output_dir, "plant_result.json"), data, 0644)
}
