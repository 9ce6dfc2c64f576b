package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/jumplab/ecs"
	"github.com/milk9111/jumplab/ecs/component"
)

// PlayerControllerSystem drives horizontal movement. Vertical motion is left
// to gravity and the jump-assist system.
type PlayerControllerSystem struct{}

func NewPlayerControllerSystem() *PlayerControllerSystem {
	return &PlayerControllerSystem{}
}

func (p *PlayerControllerSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	for _, e := range ecs.Query(w,
		component.PlayerComponent.Kind(),
		component.InputComponent.Kind(),
		component.PhysicsBodyComponent.Kind(),
	) {
		player, _ := ecs.Get(w, e, component.PlayerComponent.Kind())
		input, _ := ecs.Get(w, e, component.InputComponent.Kind())
		bodyComp, _ := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
		if bodyComp.Body == nil {
			continue
		}

		vel := bodyComp.Body.Velocity()
		bodyComp.Body.SetVelocityVector(cp.Vector{X: input.MoveX * player.MoveSpeed, Y: vel.Y})
		bodyComp.Body.SetAngle(0)
		bodyComp.Body.SetAngularVelocity(0)
	}
}
