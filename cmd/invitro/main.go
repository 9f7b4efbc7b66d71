package main

import (
	"flag"
	"log"
	"strings"

	"github.com/spf13/viper"
	invitro "github.com/wchapman/InVitro"
)

// This tool reads an optional scenario file, runs one simulation and exports it.

const defaultScenario = "~~unset~~"

var (
	scenario string
	kinetics string
	solver   string
	output   string
	asJSON   bool
	noCSV    bool
	stamped  bool
)

func init() {
	flag.StringVar(&scenario, "scenario", defaultScenario, "scenario TOML file (defaults used when unset)")
	flag.StringVar(&kinetics, "kinetics", "Fransen", "kinetics model for the default configuration")
	flag.StringVar(&solver, "solver", "", "override the solver selector (euler, crank-nicolson, dopri, rk4)")
	flag.StringVar(&output, "output", "run", "base name of the exported files")
	flag.BoolVar(&asJSON, "json", false, "also write the JSON run metadata")
	flag.BoolVar(&noCSV, "nocsv", false, "skip the CSV trajectory export")
	flag.BoolVar(&stamped, "timestamp", false, "timestamp the exported file names")
}

func main() {
	flag.Parse()
	params, err := invitro.DefaultParams(kinetics)
	if err != nil {
		log.Fatalf("defaults: %s", err)
	}
	if scenario != defaultScenario {
		name := strings.Replace(scenario, ".toml", "", 1)
		v := viper.New()
		v.AddConfigPath(".")
		v.SetConfigName(name)
		if err := v.ReadInConfig(); err != nil {
			log.Fatalf("./%s.toml: %s", name, err)
		}
		if params, err = invitro.ParamsFromViper(v, params); err != nil {
			log.Fatalf("scenario: %s", err)
		}
	}
	if solver != "" {
		sel, err := invitro.ParseSolver(solver)
		if err != nil {
			log.Fatalf("solver: %s", err)
		}
		params.Solver = sel
	}

	sim, err := invitro.New(params)
	if err != nil {
		log.Fatalf("config: %s", err)
	}
	res, err := sim.Run()
	if err != nil {
		log.Fatalf("run: %s", err)
	}
	conf := invitro.ExportConfig{Filename: output, AsCSV: !noCSV, AsJSON: asJSON, Timestamp: stamped}
	if err := invitro.Export(conf, res); err != nil {
		log.Fatalf("export: %s", err)
	}
}
