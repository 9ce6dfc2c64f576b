// Command jumpsim replays scripted input timelines headlessly and reports the
// jumps each policy produced.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/milk9111/jumplab/jump"
	"github.com/milk9111/jumplab/prefabs"
	"github.com/milk9111/jumplab/scenario"
)

func main() {
	name := flag.String("scenario", "", "scenario to run (default: all)")
	list := flag.Bool("list", false, "list scenarios and policies, then exit")
	policyName := flag.String("policy", "", "override the scenario's policy")
	prefabDir := flag.String("prefabs", "prefabs", "directory checked for prefab and scenario overrides")
	flag.Parse()

	prefabs.SetOverrideDir(*prefabDir)

	if *list {
		if err := printList(); err != nil {
			log.Fatal(err)
		}
		return
	}

	tuning, err := prefabs.LoadJumpConfig()
	if err != nil {
		log.Fatal(err)
	}

	var scenarios []*scenario.Scenario
	if *name != "" {
		sc, err := scenario.Load(*name)
		if err != nil {
			log.Fatal(err)
		}
		scenarios = append(scenarios, sc)
	} else {
		scenarios, err = scenario.All()
		if err != nil {
			log.Fatal(err)
		}
	}

	if *policyName != "" {
		p, err := jump.ParsePolicy(*policyName)
		if err != nil {
			log.Fatal(err)
		}
		for _, sc := range scenarios {
			sc.Policy = p
		}
	}

	failed := 0
	for _, sc := range scenarios {
		report, err := scenario.Run(sc, tuning)
		if err != nil {
			log.Printf("%s: %v", sc.Name, err)
			failed++
			continue
		}
		fmt.Println(report)
		if !report.Passed() {
			failed++
		}
	}

	if failed > 0 {
		fmt.Printf("%d of %d scenarios failed\n", failed, len(scenarios))
		os.Exit(1)
	}
}

func printList() error {
	names, err := prefabs.ScenarioNames()
	if err != nil {
		return err
	}
	fmt.Println("scenarios:")
	for _, n := range names {
		fmt.Printf("  %s\n", n)
	}
	fmt.Println("policies:")
	for _, p := range jump.Policies() {
		info := jump.Describe(p)
		fmt.Printf("  %-9s %s (%s)\n", p, info.Name, info.Trait)
	}
	return nil
}
