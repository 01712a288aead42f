package main

import (
	"context"
	"encoding/json"
	"flag"
	"io/ioutil"
	"log"
	"os"
	"time"
)

// _float_ptr is a literal helper for the optional configuration fields.
func _float_ptr(v float64) *float64 {
	return &v
}

// Built-in defaults for a 1 GW site: 900 MW of liquid-cooled GPUs plus a
// 100 MW air-cooled building load. The air handler fan is sized for the
// load, so the building heat exchanger carries the full 100 MW.
func default_config() *PlantConfig {
	return &PlantConfig{
		AirPumpPower:      0.0,
		AirDeltaP:         900.0,
		AirEta:            0.65,
		TAirIn:            20.0,
		QAirLoad:          100.0e6,
		TAirMax:           25.0,
		GpuCount:          900000,
		PGpu:              1000.0,
		TCoolantSupply:    30.0,
		TCoolantReturn:    40.0,
		GpusPerBranch:     512,
		EtaCoolantPump:    0.80,
		TChwSupply:        7.0,
		DeltaTChw:         5.0,
		HxEffectiveness:   0.80,
		TWetBulb:          25.5,
		TDryBulb:          _float_ptr(35.5),
		ChillerCapacityMw: 1000.0,
		ChillerCop:        6.1,
		TowerApproach:     4.0,
		TowerCoc:          5.0,
	}
}

/*
run executes a single plant solution or a scenario sweep.

	Args:
		config_path: plant configuration JSON; empty uses the defaults
		scenarios_path: scenario sweep CSV; empty runs a single solution
		output_data_dir: output directory, created when missing
*/
func run(config_path string, scenarios_path string, output_data_dir string) {
	if _, err := os.Stat(output_data_dir); os.IsNotExist(err) {
		os.Mkdir(output_data_dir, 0755)
	}
	if _, err := os.Stat(output_data_dir); os.IsNotExist(err) {
		log.Fatalf("`%s` is not a directory", output_data_dir)
	}

	cfg := default_config()
	if config_path != "" {
		log.Printf("Load plant configuration from `%s`", config_path)
		file, err := os.Open(config_path)
		if err != nil {
			log.Fatal(err)
		}
		defer file.Close()
		bytes, err := ioutil.ReadAll(file)
		if err != nil {
			log.Fatal(err)
		}
		if err := json.Unmarshal(bytes, cfg); err != nil {
			log.Fatal(err)
		}
	}

	provider := NewR134aProperties()

	if scenarios_path != "" {
		log.Printf("Load scenarios from `%s`", scenarios_path)
		scenarios := load_scenarios(scenarios_path)

		log.Printf("Run sweep over %d scenarios", len(scenarios))
		outcomes := run_sweep(context.Background(), cfg, scenarios, provider)

		recorder := NewRecorder()
		for _, o := range outcomes {
			recorder.record(o)
		}
		if err := recorder.export_csv(output_data_dir); err != nil {
			log.Fatal(err)
		}

		s := summarize(outcomes)
		log.Printf("sweep: %d scenarios, %d failed", s.n_total, s.n_failed)
		log.Printf("PUE mean=%.4f std=%.4f min=%.4f max=%.4f", s.pue_mean, s.pue_std, s.pue_min, s.pue_max)
		log.Printf("WUE mean=%.4f L/kWh, cooling power mean=%.2f MW, makeup mean=%.1f kg/s",
			s.wue_mean, s.w_cooling_mean/1.0e6, s.makeup_mean)
		return
	}

	if cfg.TDryBulb != nil {
		log.Printf("Solve plant at t_wb=%.1f C, t_db=%.1f C", cfg.TWetBulb, *cfg.TDryBulb)
	} else {
		log.Printf("Solve plant at t_wb=%.1f C", cfg.TWetBulb)
	}
	sys := NewIntegratedHVACSystem(cfg, provider)
	result, err := sys.solve()
	if err != nil {
		log.Fatal(err)
	}

	diag := result.coupled.diagnostics
	log.Printf("coupling %s in %d iterations, t_cw_in=%.2f C", diag.state, diag.iterations, diag.t_cw_in)
	log.Printf("Q_cooling=%.1f MW, chiller COP=%.2f, W_comp=%.1f MW",
		result.downstream.q_cooling/1.0e6, diag.chiller.cop, diag.chiller.w_comp/1.0e6)
	log.Printf("PUE=%.3f, WUE=%.3f L/kWh, makeup=%.1f kg/s",
		result.metrics.pue, result.metrics.wue, result.metrics.m_makeup)

	if err := export_json(result, output_data_dir); err != nil {
		log.Fatal(err)
	}
}

func main() {
	var config_path string
	flag.StringVar(&config_path, "c", "", "plant configuration JSON file")

	var scenarios_path string
	flag.StringVar(&scenarios_path, "s", "", "scenario sweep CSV file; omit to run a single solution")

	var output_data_dir string
	flag.StringVar(&output_data_dir, "o", ".", "output directory")

	flag.Parse()

	start := time.Now()

	run(config_path, scenarios_path, output_data_dir)

	elapsedTime := time.Since(start)
	log.Printf("elapsed_time: %v", elapsedTime)
}
