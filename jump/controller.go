package jump

import (
	"fmt"
	"math"
)

// Input is everything the controller sees for one simulation frame.
type Input struct {
	// Delta is the elapsed time since the previous frame in milliseconds.
	Delta float64

	JumpPressed  bool
	JumpHeld     bool
	JumpReleased bool

	OnFloor   bool
	VelocityY float64
}

// State is the controller's mutable per-session state. Timer fields that do
// not belong to the active policy are never read.
type State struct {
	Policy     Policy
	VelocityY  float64
	OnFloor    bool
	WasOnFloor bool

	// Variable policy.
	Jumping     bool
	HoldElapsed float64

	// Coyote policy.
	CoyoteTimer float64

	// Buffered policy.
	BufferTimer float64

	// Launches counts jumps fired since the last reset or policy change.
	Launches int
}

// Controller decides when to launch the player and how to shape the ascent.
// It is driven once per frame by the host and never touches the physics body
// directly; the host applies the velocity returned by Tick.
type Controller struct {
	cfg   Config
	state State
}

func New(cfg Config, p Policy) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if !p.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownPolicy, int(p))
	}
	c := &Controller{cfg: cfg}
	c.state = groundedState(p)
	return c, nil
}

func groundedState(p Policy) State {
	return State{Policy: p, OnFloor: true, WasOnFloor: true}
}

// Tick advances the controller by one frame. When set is true the host must
// overwrite the body's vertical velocity with vy before integrating the frame.
// Frames with a non-positive or non-finite delta are ignored entirely.
func (c *Controller) Tick(in Input) (vy float64, set bool) {
	if c == nil || !validDelta(in.Delta) {
		return 0, false
	}

	c.state.WasOnFloor = c.state.OnFloor
	c.state.OnFloor = in.OnFloor
	c.state.VelocityY = in.VelocityY

	ctx := tickContext{cfg: &c.cfg, st: &c.state, in: in, vy: in.VelocityY}
	assists[c.state.Policy].Tick(&ctx)
	if ctx.set {
		c.state.VelocityY = ctx.vy
	}
	return ctx.vy, ctx.set
}

func validDelta(d float64) bool {
	return d > 0 && !math.IsInf(d, 0) && !math.IsNaN(d)
}

// SelectPolicy switches the active policy and clears all policy state. An
// unknown policy is rejected and the current one kept.
func (c *Controller) SelectPolicy(p Policy) error {
	if !p.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownPolicy, int(p))
	}
	c.state = groundedState(p)
	return nil
}

// Reset clears timers, flags and velocity without changing the policy.
func (c *Controller) Reset() {
	c.state = groundedState(c.state.Policy)
}

// SetConfig swaps the tuning constants. Running timers keep their current
// values and are clamped against the new windows on their next refresh.
func (c *Controller) SetConfig(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	c.cfg = cfg
	return nil
}

func (c *Controller) Config() Config { return c.cfg }
func (c *Controller) Policy() Policy { return c.state.Policy }
func (c *Controller) State() State   { return c.state }

// Readout is the debug view shown next to the scene.
type Readout struct {
	Policy     Policy
	OnFloor    bool
	VelocityY  float64
	TimerLabel string
	TimerMs    float64
}

func (c *Controller) Readout() Readout {
	r := Readout{
		Policy:    c.state.Policy,
		OnFloor:   c.state.OnFloor,
		VelocityY: c.state.VelocityY,
	}
	r.TimerLabel, r.TimerMs = assists[c.state.Policy].Timer(&c.state)
	return r
}

func (r Readout) String() string {
	floor := "no"
	if r.OnFloor {
		floor = "yes"
	}
	s := fmt.Sprintf("policy: %s\nfloor: %s\nvy: %d", r.Policy, floor, int(math.Round(r.VelocityY)))
	if r.TimerLabel != "" {
		s += fmt.Sprintf("\n%s: %dms", r.TimerLabel, int(math.Round(r.TimerMs)))
	}
	return s
}
