package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"energy-mix-sim/internal/analysis"
	"energy-mix-sim/internal/config"
	"energy-mix-sim/internal/data"
	"energy-mix-sim/internal/report"
	"energy-mix-sim/internal/sim"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "simulate":
		cmdSimulate(os.Args[2:])
	case "rank":
		cmdRank(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("usage:")
	fmt.Println("  cli simulate --project data/project.json --config examples/scenario.yaml --out results/")
	fmt.Println("  cli rank --project data/project.json --config scenario_a.yaml,scenario_b.yaml")
	fmt.Println("")
	fmt.Println("notes:")
	fmt.Println("  - simulate writes hourly.csv and yearly.csv under --out; --per-source adds one ledger per source")
	fmt.Println("  - rank simulates every config and orders them by KPI score")
}

func cmdSimulate(args []string) {
	fs := flag.NewFlagSet("simulate", flag.ExitOnError)
	projectPath := fs.String("project", "data/project.json", "Path to project input JSON")
	cfgPath := fs.String("config", "", "Path to scenario YAML config")
	outDir := fs.String("out", "results", "Output directory")
	perSource := fs.Bool("per-source", false, "Also write one hourly ledger per source")
	_ = fs.Parse(args)

	if *cfgPath == "" {
		fmt.Println("--config is required")
		os.Exit(2)
	}

	res, sc := runOne(*projectPath, *cfgPath)

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		panic(err)
	}
	if err := report.WriteHourlyCSV(filepath.Join(*outDir, "hourly.csv"), sc); err != nil {
		panic(err)
	}
	if err := report.WriteYearlyCSV(filepath.Join(*outDir, "yearly.csv"), res); err != nil {
		panic(err)
	}
	if *perSource {
		for _, src := range sc.Sources {
			path := filepath.Join(*outDir, fmt.Sprintf("source_%s.csv", src.Name))
			if err := report.WriteSourceHourlyCSV(path, src); err != nil {
				panic(err)
			}
		}
	}

	fmt.Printf("Scenario %s complete. Results in %s\n", sc.Name, *outDir)
	k := res.KPIs
	fmt.Printf("Avg unit cost=%.4f /kWh  Avg fulfilment=%.2f%%  Interruptions=%d  Loss=%.2fM  Shedding events=%d\n",
		k.AvgUnitCost, k.AvgFulfilmentPct, k.CriticalInterruptions, k.InterruptionLossM, k.SheddingEvents)
}

func cmdRank(args []string) {
	fs := flag.NewFlagSet("rank", flag.ExitOnError)
	projectPath := fs.String("project", "data/project.json", "Path to project input JSON")
	cfgPaths := fs.String("config", "", "Comma-separated scenario YAML configs")
	_ = fs.Parse(args)

	if *cfgPaths == "" {
		fmt.Println("--config is required")
		os.Exit(2)
	}

	var results []*report.Result
	for _, p := range splitPaths(*cfgPaths) {
		res, _ := runOne(*projectPath, p)
		results = append(results, res)
	}

	ranked := analysis.Rank(results)
	fmt.Printf("%-4s %-24s %-9s %-12s %-12s %-8s %-8s\n",
		"rank", "scenario", "feasible", "unit-cost", "fulfilment%", "intrpts", "score")
	for i, r := range ranked {
		score := fmt.Sprintf("%.4f", r.Score)
		if !r.Feasible {
			score = "-"
		}
		fmt.Printf("%-4d %-24s %-9v %-12.4f %-12.2f %-8d %-8s\n",
			i+1, r.Scenario, r.Feasible, r.KPIs.AvgUnitCost, r.KPIs.AvgFulfilmentPct,
			r.KPIs.CriticalInterruptions, score)
	}
}

func runOne(projectPath, cfgPath string) (*report.Result, *sim.Scenario) {
	project, err := data.LoadProjectJSON(projectPath)
	if err != nil {
		panic(err)
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		panic(err)
	}
	sources, err := cfg.BuildSources()
	if err != nil {
		panic(err)
	}
	sc, err := sim.NewScenario(cfg.Scenario.Name, project, cfg.Scenario.Params, sources)
	if err != nil {
		panic(err)
	}
	if err := sc.Simulate(); err != nil {
		panic(err)
	}
	return report.Rollup(sc), sc
}

func splitPaths(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
