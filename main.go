package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/jumplab/jump"
	"github.com/milk9111/jumplab/prefabs"
)

func main() {
	policyName := flag.String("policy", "", "starting policy: basic, variable, coyote or buffered (default from the scene)")
	prefabDir := flag.String("prefabs", "prefabs", "directory checked for prefab overrides and watched for edits; empty disables both")
	sceneName := flag.String("scene", prefabs.SceneFile, "scene file in prefabs/")
	debug := flag.Bool("debug", false, "enable debug mode")
	scale := flag.Float64("scale", 1, "window size relative to 1280x720")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	flag.Parse()

	prefabs.SetOverrideDir(*prefabDir)

	scene, err := prefabs.LoadScene(*sceneName)
	if err != nil {
		log.Fatal(err)
	}
	tuning, err := prefabs.LoadJumpConfig()
	if err != nil {
		log.Fatal(err)
	}

	policy := scene.Policy
	if *policyName != "" {
		policy, err = jump.ParsePolicy(*policyName)
		if err != nil {
			log.Fatal(err)
		}
	}

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}
	windowScale := *scale
	if windowScale <= 0 {
		windowScale = 1
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(int(baseWidth*windowScale), int(baseHeight*windowScale))
	ebiten.SetWindowTitle("jumplab")

	game, err := NewGame(scene, tuning, policy, *debug)
	if err != nil {
		log.Fatal(err)
	}

	if err := runGame(game, ebiten.RunGame); err != nil {
		log.Fatal(err)
	}
}

// runGame runs g and closes it before returning, so the prefab watcher is
// released even when the caller exits through log.Fatal.
func runGame(g *Game, run func(ebiten.Game) error) error {
	err := run(g)
	if cerr := g.Close(); cerr != nil {
		log.Printf("close: %v", cerr)
	}
	return err
}
