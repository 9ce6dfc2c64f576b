// Package session runs one jump-assist playground: a scene, a player with a
// jump controller and the fixed system pipeline that steps them.
package session

import (
	"errors"
	"fmt"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/jumplab/ecs"
	"github.com/milk9111/jumplab/ecs/component"
	"github.com/milk9111/jumplab/ecs/entity"
	"github.com/milk9111/jumplab/ecs/system"
	"github.com/milk9111/jumplab/jump"
	"github.com/milk9111/jumplab/prefabs"
)

var ErrNoScene = errors.New("session: no scene")

type Options struct {
	Scene  *prefabs.SceneSpec
	Tuning jump.Config
	Policy jump.Policy
	Input  system.InputSource
}

type Session struct {
	world     *ecs.World
	scheduler *ecs.Scheduler
	control   *system.SessionSystem
	input     *system.InputSystem
	physics   *system.PhysicsSystem

	scene      *prefabs.SceneSpec
	player     ecs.Entity
	controller *jump.Controller
}

// PlayerState is a snapshot of the player after the last step. Positions are
// the top-left corner of the body in scene pixels, y pointing down.
type PlayerState struct {
	X, Y     float64
	VX, VY   float64
	Grounded bool
	Launches []float64
}

func New(opts Options) (*Session, error) {
	if opts.Scene == nil {
		return nil, ErrNoScene
	}
	controller, err := jump.New(opts.Tuning, opts.Policy)
	if err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}

	w := ecs.NewWorld()
	player, err := entity.BuildScene(w, opts.Scene, controller)
	if err != nil {
		return nil, fmt.Errorf("session: build scene: %w", err)
	}

	physics := system.NewPhysicsSystem(opts.Scene.Gravity)
	physics.Sync(w)

	control := system.NewSessionSystem(physics)
	input := system.NewInputSystem(opts.Input)

	// Order matters: requests, input edges, horizontal intent, jump intent,
	// then the physics step that integrates both and refreshes floor contact.
	scheduler := ecs.NewScheduler(
		control,
		input,
		system.NewPlayerControllerSystem(),
		system.NewJumpAssistSystem(),
		physics,
	)

	return &Session{
		world:      w,
		scheduler:  scheduler,
		control:    control,
		input:      input,
		physics:    physics,
		scene:      opts.Scene,
		player:     player,
		controller: controller,
	}, nil
}

// Step advances the session by deltaMs milliseconds. Non-positive or
// non-finite deltas are ignored entirely, input included.
func (s *Session) Step(deltaMs float64) {
	if !(deltaMs > 0) || math.IsInf(deltaMs, 0) {
		return
	}
	_, clock, ok := ecs.First(s.world, component.FrameClockComponent.Kind())
	if !ok {
		return
	}
	clock.DeltaMs = deltaMs
	clock.Elapsed += deltaMs
	clock.Frame++

	s.scheduler.Update(s.world)
}

// SelectPolicy switches the player's policy and respawns it. The previous
// policy stays active when p is unknown.
func (s *Session) SelectPolicy(p jump.Policy) error {
	if !p.Valid() {
		return fmt.Errorf("session: select policy %d: %w", int(p), jump.ErrUnknownPolicy)
	}
	if err := ecs.Add(s.world, s.player, component.PolicyChangeRequestComponent.Kind(), &component.PolicyChangeRequest{Policy: p}); err != nil {
		return fmt.Errorf("session: select policy: %w", err)
	}
	s.control.Update(s.world)
	return nil
}

// Reset respawns the player and clears the controller, keeping the policy.
func (s *Session) Reset() {
	if err := ecs.Add(s.world, s.player, component.ResetRequestComponent.Kind(), &component.ResetRequest{}); err != nil {
		return
	}
	s.control.Update(s.world)
}

// SetTuning swaps the jump constants. Invalid tuning is rejected and the
// current one kept.
func (s *Session) SetTuning(cfg jump.Config) error {
	if err := s.controller.SetConfig(cfg); err != nil {
		return fmt.Errorf("session: set tuning: %w", err)
	}
	return nil
}

func (s *Session) SetInput(src system.InputSource) {
	s.input.SetSource(src)
}

func (s *Session) Tuning() jump.Config { return s.controller.Config() }

func (s *Session) Policy() jump.Policy { return s.controller.Policy() }

func (s *Session) Readout() jump.Readout { return s.controller.Readout() }

func (s *Session) Controller() *jump.Controller { return s.controller }

func (s *Session) World() *ecs.World { return s.world }

func (s *Session) Space() *cp.Space { return s.physics.Space() }

func (s *Session) Scene() *prefabs.SceneSpec { return s.scene }

func (s *Session) PlayerEntity() ecs.Entity { return s.player }

// Elapsed is the session time in milliseconds, including the frame being
// stepped when read from inside the pipeline.
func (s *Session) Elapsed() float64 {
	_, clock, ok := ecs.First(s.world, component.FrameClockComponent.Kind())
	if !ok {
		return 0
	}
	return clock.Elapsed
}

func (s *Session) Frame() int {
	_, clock, ok := ecs.First(s.world, component.FrameClockComponent.Kind())
	if !ok {
		return 0
	}
	return clock.Frame
}

func (s *Session) Player() PlayerState {
	var st PlayerState
	if transform, ok := ecs.Get(s.world, s.player, component.TransformComponent.Kind()); ok {
		st.X, st.Y = transform.X, transform.Y
	}
	if bodyComp, ok := ecs.Get(s.world, s.player, component.PhysicsBodyComponent.Kind()); ok && bodyComp.Body != nil {
		vel := bodyComp.Body.Velocity()
		st.VX, st.VY = vel.X, vel.Y
	}
	if pc, ok := ecs.Get(s.world, s.player, component.PlayerCollisionComponent.Kind()); ok {
		st.Grounded = pc.Grounded
	}
	if assist, ok := ecs.Get(s.world, s.player, component.JumpAssistComponent.Kind()); ok {
		st.Launches = append([]float64(nil), assist.LaunchTimes...)
	}
	return st
}
