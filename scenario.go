package main

import (
	"fmt"
	"os"

	"github.com/gocarina/gocsv"
)

// ScenarioRow is one operating scenario of the scenario sweep CSV: an
// ambient condition and the IT load split to evaluate the plant under.
type ScenarioRow struct {
	Name       string   `csv:"name"`
	TWetBulb   float64  `csv:"t_wb_c"`
	TDryBulb   *float64 `csv:"t_db_c,omitempty"` // empty estimates the dry bulb from the wet bulb
	QAirLoadMw float64  `csv:"q_air_load_mw"`
	GpuCount   int      `csv:"gpu_count"`
	PGpu       float64  `csv:"p_gpu_w"`
}

/*
load_scenarios reads the scenario sweep CSV.

	Args:
		file_path: path of the scenario CSV

	Returns:
		scenario rows in file order

	Notes:
		Panics when the file is missing or malformed, matching the
		fail-fast handling of the configuration loader.
*/
func load_scenarios(file_path string) []*ScenarioRow {
	if _, err := os.Stat(file_path); os.IsNotExist(err) {
		panic(fmt.Sprintf("Error File %s is not exist.", file_path))
	}

	file, err := os.Open(file_path)
	if err != nil {
		panic(err)
	}
	defer file.Close()

	var rows []*ScenarioRow
	if err := gocsv.UnmarshalFile(file, &rows); err != nil {
		panic(err)
	}

	if len(rows) == 0 {
		panic("Error Scenario file has no rows.")
	}

	return rows
}

// apply overlays the scenario onto a base configuration. The base is
// copied; zero-valued scenario fields keep the base value.
func (s *ScenarioRow) apply(base *PlantConfig) *PlantConfig {
	cfg := *base
	cfg.TWetBulb = s.TWetBulb
	cfg.TDryBulb = s.TDryBulb
	if s.QAirLoadMw > 0.0 {
		cfg.QAirLoad = s.QAirLoadMw * 1.0e6
	}
	if s.GpuCount > 0 {
		cfg.GpuCount = s.GpuCount
	}
	if s.PGpu > 0.0 {
		cfg.PGpu = s.PGpu
	}
	return &cfg
}
