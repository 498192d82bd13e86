// Command pedsim runs a simulation case interactively in the terminal.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/brightward-health/pedsim/internal/catalog"
	"github.com/brightward-health/pedsim/internal/explain"
	"github.com/brightward-health/pedsim/internal/logging"
	"github.com/brightward-health/pedsim/internal/parser"
	"github.com/brightward-health/pedsim/internal/sim"
)

func main() {
	var (
		caseID    string
		seed      int64
		listCases bool
		logLevel  string
	)
	flag.StringVar(&caseID, "case", "febrile_seizure", "case id to run")
	flag.Int64Var(&seed, "seed", 0, "PRNG seed (0 means random)")
	flag.BoolVar(&listCases, "list", false, "list available cases and exit")
	flag.StringVar(&logLevel, "log-level", "error", "log level")
	flag.Parse()

	cat := catalog.Load()

	if listCases {
		for _, c := range cat.Cases() {
			fmt.Printf("%-20s %-14s %-12s %s\n", c.ID, c.Category, c.Difficulty, c.Name)
		}
		return
	}

	logger, err := logging.New(logLevel, "console", "pedsim")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	explainer := explain.NewWithFallback(nil, logger)
	engine, err := sim.StartSession(cat, caseID, seed, logger, sim.WithExplainer(explainer))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer engine.Close()

	names := make(map[string]string)
	for _, iv := range cat.Interventions() {
		names[iv.ID] = iv.Name
	}
	p := parser.New(names)

	snap := engine.Snapshot()
	fmt.Printf("=== %s ===\n", snap.CaseName)
	fmt.Println("Type 'help' for commands. Interventions can be typed by name.")
	printStatus(snap)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}

		intent := p.Parse(scanner.Text())
		switch intent.Kind {
		case parser.KindHelp:
			fmt.Println("Commands: status, list, apply <intervention>, pause, resume, quit.")
			fmt.Println("A bare intervention name also applies it.")
		case parser.KindStatus:
			printStatus(engine.Snapshot())
		case parser.KindList:
			printInterventions(engine.Snapshot())
		case parser.KindPause:
			engine.Pause()
			fmt.Println("Paused.")
		case parser.KindResume:
			engine.Resume()
			fmt.Println("Resumed.")
		case parser.KindApply:
			result := engine.ApplyIntervention(intent.InterventionID)
			if result.Ignored {
				fmt.Println("Not available right now (wrong stage, or still cooling down).")
			} else {
				fmt.Println(result.Message)
			}
		case parser.KindQuit:
			fmt.Println("Leaving the session.")
			return
		default:
			fmt.Println("Didn't catch that. Try 'help'.")
		}

		if final := engine.Snapshot(); final.Completed && final.Score != nil {
			fmt.Printf("\n=== Case complete: %d/100 ===\n", final.Score.Score)
			for _, line := range final.Score.Feedback {
				fmt.Println(" - " + line)
			}
			return
		}
	}
}

func printStatus(s sim.Snapshot) {
	fmt.Printf("[stage %d/%d] %s\n", s.Stage, s.TotalStages, s.StageDescription)
	if s.TimeRemaining >= 0 {
		fmt.Printf("  time: %ds elapsed, %ds left in stage\n", s.TimeElapsed, s.TimeRemaining)
	} else {
		fmt.Printf("  time: %ds elapsed\n", s.TimeElapsed)
	}
	v := s.Vitals
	fmt.Printf("  HR %d  RR %d  SpO2 %d%%  Temp %.1fF  BP %s  %s\n",
		int(v.HeartRate), int(v.RespRate), int(v.OxygenSat), v.Temperature, s.BloodPressure, v.Consciousness)
	for _, e := range s.Events {
		fmt.Println("  ! " + e)
	}
	for _, c := range s.Complications {
		fmt.Println("  * " + c)
	}
	for _, g := range s.Guidance {
		fmt.Println("  ~ " + strings.ReplaceAll(g, "\n", "\n    "))
	}
}

func printInterventions(s sim.Snapshot) {
	for _, iv := range s.Interventions {
		state := ""
		if iv.OnCooldown {
			state = fmt.Sprintf(" (cooldown %ds)", iv.CooldownLeft)
		}
		fmt.Printf("  %-26s %-12s %s%s\n", iv.ID, iv.Category, iv.Name, state)
	}
}
