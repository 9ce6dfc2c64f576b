package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/jumplab/ecs"
	"github.com/milk9111/jumplab/ecs/component"
	"github.com/milk9111/jumplab/jump"
)

// JumpAssistSystem feeds each player's controller with this frame's input and
// floor contact, then writes the resulting vertical velocity to the body. It
// must run before PhysicsSystem so the intent is integrated this frame.
type JumpAssistSystem struct{}

func NewJumpAssistSystem() *JumpAssistSystem {
	return &JumpAssistSystem{}
}

func (s *JumpAssistSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	_, clock, ok := ecs.First(w, component.FrameClockComponent.Kind())
	if !ok {
		return
	}

	for _, e := range ecs.Query(w,
		component.JumpAssistComponent.Kind(),
		component.InputComponent.Kind(),
		component.PhysicsBodyComponent.Kind(),
	) {
		assist, _ := ecs.Get(w, e, component.JumpAssistComponent.Kind())
		input, _ := ecs.Get(w, e, component.InputComponent.Kind())
		bodyComp, _ := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
		if assist.Controller == nil || bodyComp.Body == nil {
			continue
		}

		grounded := false
		if pc, ok := ecs.Get(w, e, component.PlayerCollisionComponent.Kind()); ok {
			grounded = pc.Grounded
		}

		vel := bodyComp.Body.Velocity()
		launches := assist.Controller.State().Launches
		vy, set := assist.Controller.Tick(jump.Input{
			Delta:        clock.DeltaMs,
			JumpPressed:  input.JumpPressed,
			JumpHeld:     input.Jump,
			JumpReleased: input.JumpReleased,
			OnFloor:      grounded,
			VelocityY:    vel.Y,
		})
		if !set {
			continue
		}
		bodyComp.Body.SetVelocityVector(cp.Vector{X: vel.X, Y: vy})
		if assist.Controller.State().Launches > launches {
			assist.LaunchTimes = append(assist.LaunchTimes, clock.Elapsed)
		}
	}
}
