package system

import (
	"log"

	"github.com/milk9111/jumplab/ecs"
	"github.com/milk9111/jumplab/ecs/component"
)

// SessionSystem applies pending policy changes and resets. It runs first in
// the frame so the rest of the pipeline sees the fresh state.
type SessionSystem struct {
	physics *PhysicsSystem
}

// NewSessionSystem takes the physics system used to re-read floor contact
// after a respawn. With a nil physics system the player is treated as
// airborne until the next step.
func NewSessionSystem(physics *PhysicsSystem) *SessionSystem {
	return &SessionSystem{physics: physics}
}

func (s *SessionSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach(w, component.PolicyChangeRequestComponent.Kind(), func(e ecs.Entity, req *component.PolicyChangeRequest) {
		defer ecs.Remove(w, e, component.PolicyChangeRequestComponent.Kind())

		assist, ok := ecs.Get(w, e, component.JumpAssistComponent.Kind())
		if !ok || assist.Controller == nil {
			return
		}
		if err := assist.Controller.SelectPolicy(req.Policy); err != nil {
			log.Printf("session: entity=%s select policy: %v", e, err)
			return
		}
		s.respawn(w, e)
	})

	ecs.ForEach(w, component.ResetRequestComponent.Kind(), func(e ecs.Entity, _ *component.ResetRequest) {
		defer ecs.Remove(w, e, component.ResetRequestComponent.Kind())

		if assist, ok := ecs.Get(w, e, component.JumpAssistComponent.Kind()); ok && assist.Controller != nil {
			assist.Controller.Reset()
		}
		s.respawn(w, e)
	})
}

// respawn puts the player back on its spawn point at rest.
func (s *SessionSystem) respawn(w *ecs.World, e ecs.Entity) {
	if assist, ok := ecs.Get(w, e, component.JumpAssistComponent.Kind()); ok {
		assist.LaunchTimes = nil
	}
	spawn, ok := ecs.Get(w, e, component.SpawnComponent.Kind())
	if !ok {
		return
	}
	bodyComp, _ := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
	transform, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	Teleport(bodyComp, transform, spawn.X, spawn.Y)
	if s.physics != nil {
		s.physics.RefreshGrounded(w, e)
	} else if pc, ok := ecs.Get(w, e, component.PlayerCollisionComponent.Kind()); ok {
		pc.Grounded = false
	}
}
