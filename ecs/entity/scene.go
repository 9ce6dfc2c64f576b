package entity

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/milk9111/jumplab/ecs"
	"github.com/milk9111/jumplab/ecs/component"
	"github.com/milk9111/jumplab/jump"
	"github.com/milk9111/jumplab/prefabs"
)

var (
	defaultPlayerColor = color.NRGBA{R: 0xef, G: 0x44, B: 0x44, A: 0xff}
	defaultSolidColor  = color.NRGBA{R: 0x47, G: 0x55, B: 0x69, A: 0xff}
)

const (
	layerSolids = 0
	layerPlayer = 10
)

// BuildScene populates w from a scene file: the level bounds, the frame clock,
// one entity per solid and the player carrying controller. It returns the
// player entity.
func BuildScene(w *ecs.World, scene *prefabs.SceneSpec, controller *jump.Controller) (ecs.Entity, error) {
	if w == nil {
		return 0, errors.New("entity: nil world")
	}
	if scene == nil {
		return 0, errors.New("entity: nil scene")
	}
	if controller == nil {
		return 0, errors.New("entity: nil controller")
	}
	if err := scene.Validate(); err != nil {
		return 0, err
	}

	bounds := ecs.CreateEntity(w)
	if err := ecs.Add(w, bounds, component.LevelBoundsComponent.Kind(), &component.LevelBounds{
		Width:  scene.Width,
		Height: scene.Height,
	}); err != nil {
		return 0, fmt.Errorf("entity: level bounds: %w", err)
	}

	clock := ecs.CreateEntity(w)
	if err := ecs.Add(w, clock, component.FrameClockComponent.Kind(), &component.FrameClock{}); err != nil {
		return 0, fmt.Errorf("entity: frame clock: %w", err)
	}

	for i, spec := range scene.Solids {
		if _, err := NewSolid(w, spec); err != nil {
			return 0, fmt.Errorf("entity: solid %d: %w", i, err)
		}
	}

	return NewPlayer(w, scene.Player, controller)
}

func NewSolid(w *ecs.World, spec prefabs.SolidSpec) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: spec.X, Y: spec.Y}); err != nil {
		return 0, err
	}
	if err := ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Width:    spec.Width,
		Height:   spec.Height,
		Friction: spec.Friction,
		Static:   true,
	}); err != nil {
		return 0, err
	}
	if err := ecs.Add(w, e, component.SolidComponent.Kind(), &component.Solid{Name: spec.Name}); err != nil {
		return 0, err
	}
	if err := ecs.Add(w, e, component.RectSpriteComponent.Kind(), &component.RectSprite{
		Color: spec.Color.ColorOr(defaultSolidColor),
		Layer: layerSolids,
	}); err != nil {
		return 0, err
	}
	return e, nil
}

func NewPlayer(w *ecs.World, spec prefabs.PlayerSpec, controller *jump.Controller) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)
	adds := []func() error{
		func() error { return ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{}) },
		func() error {
			return ecs.Add(w, e, component.PlayerComponent.Kind(), &component.Player{MoveSpeed: spec.MoveSpeed})
		},
		func() error { return ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{}) },
		func() error {
			return ecs.Add(w, e, component.PlayerCollisionComponent.Kind(), &component.PlayerCollision{})
		},
		func() error {
			return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: spec.X, Y: spec.Y})
		},
		func() error {
			return ecs.Add(w, e, component.SpawnComponent.Kind(), &component.Spawn{X: spec.X, Y: spec.Y})
		},
		func() error {
			return ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
				Width:  spec.Width,
				Height: spec.Height,
				Mass:   spec.Mass,
			})
		},
		func() error {
			return ecs.Add(w, e, component.JumpAssistComponent.Kind(), &component.JumpAssist{Controller: controller})
		},
		func() error {
			return ecs.Add(w, e, component.RectSpriteComponent.Kind(), &component.RectSprite{
				Color: spec.Color.ColorOr(defaultPlayerColor),
				Layer: layerPlayer,
			})
		},
	}
	for _, add := range adds {
		if err := add(); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("entity: player: %w", err)
		}
	}
	return e, nil
}
