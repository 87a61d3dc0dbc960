// Command evsim runs the EV charging robot fleet simulator: a single
// policy, every heuristic policy back-to-back for comparison, or an
// interactive menu when invoked with no flags at all.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/stickysnack/ev-fleet-sim/internal/config"
	"github.com/stickysnack/ev-fleet-sim/internal/sim"
	"github.com/stickysnack/ev-fleet-sim/internal/stats"
)

func main() {
	scale := flag.String("scale", "", "fleet scale: small, medium, large")
	policy := flag.String("policy", "", "dispatch policy name")
	horizon := flag.Int("horizon", config.DefaultHorizon, "simulated minutes to run")
	seed := flag.Int64("seed", 0, "RNG seed")
	compare := flag.Bool("compare", false, "run every heuristic policy back-to-back and rank them")
	flag.Parse()

	if flag.NFlag() == 0 {
		runMenu()
		return
	}

	cfg := config.Default()
	if *scale != "" {
		cfg.Scale = config.Scale(*scale)
	}
	cfg.Horizon = *horizon
	cfg.Seed = *seed

	if *compare {
		runCompare(cfg)
		return
	}

	if *policy != "" {
		cfg.Policy = config.Policy(*policy)
	}
	runSingle(cfg)
}

func runSingle(cfg config.Config) {
	s, err := sim.New(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "evsim:", err)
		os.Exit(1)
	}
	start := time.Now()
	final := s.Run()
	elapsed := time.Since(start)

	fmt.Printf("run %s  policy=%s  scale=%s  horizon=%dmin\n", final.RunID, cfg.Policy, cfg.Scale, cfg.Horizon)
	printFinal(final)
	fmt.Printf("wall time: %v\n", elapsed)
}

func runCompare(cfg config.Config) {
	results := make(map[string]stats.Final, len(config.AllPolicies()))
	for _, p := range config.AllPolicies() {
		if p == config.PolicyRL {
			continue
		}
		run := cfg
		run.Policy = p
		s, err := sim.New(run)
		if err != nil {
			fmt.Fprintln(os.Stderr, "evsim:", err)
			continue
		}
		results[string(p)] = s.Run()
	}

	ranking := stats.Compare(results)
	fmt.Printf("%-26s %10s %14s %12s\n", "policy", "completion%", "avg wait(min)", "avg util")
	for _, entry := range ranking.Entries {
		fmt.Printf("%-26s %10.1f %14.1f %12.2f\n",
			entry.Policy, entry.Final.CompletionRate, entry.Final.AvgWaitingTime, entry.Final.AvgUtilization)
	}
}

func printFinal(f stats.Final) {
	fmt.Printf("  completed:       %d\n", f.CompletedCount)
	fmt.Printf("  failed:          %d\n", f.FailedCount)
	fmt.Printf("  completion rate: %.1f%%\n", f.CompletionRate)
	fmt.Printf("  avg waiting:     %.1f min\n", f.AvgWaitingTime)
	fmt.Printf("  avg charging:    %.1f min\n", f.AvgChargingTime)
	fmt.Printf("  battery swaps:   %d\n", f.BatterySwaps)
	fmt.Printf("  avg utilization: %.2f\n", f.AvgUtilization)
}

// runMenu is the line-oriented scale -> policy -> run flow that stands
// in for the original's main_menu/run_visualization_menu, for a caller
// who launches the binary without any flags.
func runMenu() {
	reader := bufio.NewReader(os.Stdin)

	fmt.Println("EV fleet simulator")
	fmt.Println("Scale: [1] small  [2] medium  [3] large")
	scale := pickFromMenu(reader, map[string]config.Scale{
		"1": config.ScaleSmall,
		"2": config.ScaleMedium,
		"3": config.ScaleLarge,
	}, config.ScaleMedium)

	fmt.Println("Policy:")
	for i, p := range config.AllPolicies() {
		fmt.Printf("  [%d] %s\n", i+1, p)
	}
	policyChoices := make(map[string]config.Policy)
	for i, p := range config.AllPolicies() {
		policyChoices[fmt.Sprint(i+1)] = p
	}
	policy := pickFromMenu(reader, policyChoices, config.PolicyHybridStrategy)

	cfg := config.Default()
	cfg.Scale = scale
	cfg.Policy = policy
	runSingle(cfg)
}

func pickFromMenu[T any](reader *bufio.Reader, choices map[string]T, fallback T) T {
	fmt.Print("> ")
	line, _ := reader.ReadString('\n')
	line = strings.TrimSpace(line)
	if v, ok := choices[line]; ok {
		return v
	}
	return fallback
}
