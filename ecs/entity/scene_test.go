package entity

import (
	"testing"

	"github.com/milk9111/jumplab/ecs"
	"github.com/milk9111/jumplab/ecs/component"
	"github.com/milk9111/jumplab/jump"
	"github.com/milk9111/jumplab/prefabs"
)

func newController(t *testing.T) *jump.Controller {
	t.Helper()
	c, err := jump.New(jump.DefaultConfig(), jump.Basic)
	if err != nil {
		t.Fatalf("jump.New: %v", err)
	}
	return c
}

func TestBuildSceneFromEmbeddedPrefab(t *testing.T) {
	scene, err := prefabs.LoadSceneSpec()
	if err != nil {
		t.Fatalf("LoadSceneSpec: %v", err)
	}

	w := ecs.NewWorld()
	player, err := BuildScene(w, scene, newController(t))
	if err != nil {
		t.Fatalf("BuildScene: %v", err)
	}

	if !ecs.Has(w, player, component.PlayerTagComponent.Kind()) {
		t.Fatalf("player entity missing tag")
	}
	spawn, ok := ecs.Get(w, player, component.SpawnComponent.Kind())
	if !ok || spawn.X != scene.Player.X || spawn.Y != scene.Player.Y {
		t.Fatalf("spawn = %+v, want (%v, %v)", spawn, scene.Player.X, scene.Player.Y)
	}

	solids := ecs.Query(w, component.SolidComponent.Kind(), component.PhysicsBodyComponent.Kind())
	if got, want := len(solids), len(scene.Solids); got != want {
		t.Fatalf("solids = %d, want %d", got, want)
	}
	for _, e := range solids {
		body, _ := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
		if !body.Static {
			t.Fatalf("solid %v is not static", e)
		}
	}

	if _, bounds, ok := ecs.First(w, component.LevelBoundsComponent.Kind()); !ok || bounds.Width != scene.Width {
		t.Fatalf("level bounds missing or wrong: %+v", bounds)
	}
	if _, _, ok := ecs.First(w, component.FrameClockComponent.Kind()); !ok {
		t.Fatalf("frame clock missing")
	}
}

func TestBuildSceneRejectsBadInput(t *testing.T) {
	scene, err := prefabs.LoadSceneSpec()
	if err != nil {
		t.Fatalf("LoadSceneSpec: %v", err)
	}
	broken := *scene
	broken.Player.Width = 0

	tests := []struct {
		name       string
		scene      *prefabs.SceneSpec
		controller *jump.Controller
	}{
		{name: "nil scene", scene: nil, controller: newController(t)},
		{name: "nil controller", scene: scene, controller: nil},
		{name: "invalid scene", scene: &broken, controller: newController(t)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := BuildScene(ecs.NewWorld(), tt.scene, tt.controller); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}
