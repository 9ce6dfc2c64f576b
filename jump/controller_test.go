package jump

import (
	"errors"
	"math"
	"math/rand"
	"testing"
)

const testGravity = 800.0

// fakeBody is a minimal vertical integrator standing in for the physics
// engine: floor at y=0, screen-down positive.
type fakeBody struct {
	y, vy   float64
	onFloor bool
}

func newFakeBody() *fakeBody { return &fakeBody{onFloor: true} }

func (b *fakeBody) step(deltaMs float64) {
	dt := deltaMs / 1000
	b.vy += testGravity * dt
	b.y += b.vy * dt
	if b.y >= 0 {
		b.y = 0
		if b.vy > 0 {
			b.vy = 0
		}
		b.onFloor = true
		return
	}
	b.onFloor = false
}

type runResult struct {
	peak     float64
	launches []int
}

// drive runs ticks frames, deriving jump edges from the held level signal.
func drive(t *testing.T, c *Controller, b *fakeBody, delta float64, ticks int, held func(i int) bool) runResult {
	t.Helper()
	var res runResult
	prev := false
	for i := 0; i < ticks; i++ {
		h := held(i)
		in := Input{
			Delta:        delta,
			JumpPressed:  h && !prev,
			JumpHeld:     h,
			JumpReleased: !h && prev,
			OnFloor:      b.onFloor,
			VelocityY:    b.vy,
		}
		prev = h
		if vy, ok := c.Tick(in); ok {
			if b.onFloor {
				res.launches = append(res.launches, i)
			}
			b.vy = vy
		}
		b.step(delta)
		if -b.y > res.peak {
			res.peak = -b.y
		}
	}
	return res
}

func mustController(t *testing.T, p Policy) *Controller {
	t.Helper()
	c, err := New(DefaultConfig(), p)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func step(c *Controller, delta float64, floor, pressed bool) (float64, bool) {
	return c.Tick(Input{Delta: delta, JumpPressed: pressed, JumpHeld: pressed, OnFloor: floor})
}

func TestBasicFiresOnlyOnGroundedPress(t *testing.T) {
	cases := []struct {
		name    string
		pressed bool
		held    bool
		floor   bool
		want    bool
	}{
		{"press_on_floor", true, true, true, true},
		{"press_mid_air", true, true, false, false},
		{"held_on_floor_no_edge", false, true, true, false},
		{"idle_on_floor", false, false, true, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := mustController(t, Basic)
			vy, ok := c.Tick(Input{Delta: 16, JumpPressed: tc.pressed, JumpHeld: tc.held, OnFloor: tc.floor})
			if ok != tc.want {
				t.Fatalf("fired=%v, want %v", ok, tc.want)
			}
			if ok && vy != -400 {
				t.Fatalf("vy=%v, want -400", vy)
			}
		})
	}
}

func TestBasicRearmsAfterLanding(t *testing.T) {
	c := mustController(t, Basic)
	b := newFakeBody()
	// a full jump takes about 60 frames, so pressing every 90 always starts grounded
	res := drive(t, c, b, 1000.0/60, 270, func(i int) bool { return i%90 < 5 })
	if len(res.launches) != 3 {
		t.Fatalf("launches=%v, want 3", res.launches)
	}
}

func TestVariableHoldControlsPeak(t *testing.T) {
	const delta = 1000.0 / 60
	run := func(holdFrames int) float64 {
		c := mustController(t, Variable)
		return drive(t, c, newFakeBody(), delta, 120, func(i int) bool { return i < holdFrames }).peak
	}

	tap := run(1)
	early := run(4)
	full := run(60)

	if !(full > early && early > tap) {
		t.Fatalf("peaks tap=%.2f early=%.2f full=%.2f, want strictly increasing", tap, early, full)
	}
	basic := drive(t, mustController(t, Basic), newFakeBody(), delta, 120, func(i int) bool { return i < 30 }).peak
	if full <= basic {
		t.Fatalf("held variable peak %.2f should exceed basic peak %.2f", full, basic)
	}
}

func TestVariableCutsOncePerRelease(t *testing.T) {
	c := mustController(t, Variable)
	if _, ok := c.Tick(Input{Delta: 10, JumpPressed: true, JumpHeld: true, OnFloor: true}); !ok {
		t.Fatalf("expected launch")
	}
	vy, ok := c.Tick(Input{Delta: 10, JumpReleased: true, VelocityY: -300})
	if !ok || vy != -150 {
		t.Fatalf("release: vy=%v ok=%v, want -150 true", vy, ok)
	}
	if _, ok := c.Tick(Input{Delta: 10, VelocityY: -140}); ok {
		t.Fatalf("cut applied twice for one release")
	}
	if c.State().Jumping {
		t.Fatalf("Jumping should clear on release")
	}
}

func TestVariableNoCutWhileFalling(t *testing.T) {
	c := mustController(t, Variable)
	c.Tick(Input{Delta: 10, JumpPressed: true, JumpHeld: true, OnFloor: true})
	if _, ok := c.Tick(Input{Delta: 10, JumpReleased: true, VelocityY: 50}); ok {
		t.Fatalf("no cut expected while descending")
	}
}

func TestVariableHoldWindowStopsBoosting(t *testing.T) {
	c := mustController(t, Variable)
	c.Tick(Input{Delta: 50, JumpPressed: true, JumpHeld: true, OnFloor: true})
	boosts := 0
	for i := 0; i < 10; i++ {
		if _, ok := c.Tick(Input{Delta: 50, JumpHeld: true, VelocityY: -200}); ok {
			boosts++
		}
	}
	// launch frame already consumed 50ms of the 150ms window
	if boosts != 2 {
		t.Fatalf("boosts=%d, want 2", boosts)
	}
	if !c.State().Jumping {
		t.Fatalf("window expiry must not force a cut")
	}
}

func TestVariableLandingRearms(t *testing.T) {
	c := mustController(t, Variable)
	c.Tick(Input{Delta: 16, JumpPressed: true, JumpHeld: true, OnFloor: true})
	c.Tick(Input{Delta: 16, JumpHeld: true, VelocityY: -300})
	c.Tick(Input{Delta: 16, JumpHeld: true, OnFloor: true})
	st := c.State()
	if st.Jumping || st.HoldElapsed != 0 {
		t.Fatalf("landing should clear hold state, got %+v", st)
	}
}

func TestCoyoteScenario(t *testing.T) {
	cases := []struct {
		name    string
		pressAt float64
		want    bool
	}{
		{"inside_window", 80, true},
		{"after_window", 150, false},
		{"just_inside", 90, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := mustController(t, Coyote)
			step(c, 10, true, false) // t=0, last grounded frame
			fired := false
			for now := 10.0; now <= 200; now += 10 {
				press := now == tc.pressAt
				if _, ok := step(c, 10, false, press); ok {
					fired = true
					if !press {
						t.Fatalf("fired without a press at t=%v", now)
					}
				}
			}
			if fired != tc.want {
				t.Fatalf("fired=%v, want %v", fired, tc.want)
			}
		})
	}
}

func TestCoyoteTimerAtPress(t *testing.T) {
	c := mustController(t, Coyote)
	step(c, 10, true, false)
	for now := 10.0; now < 80; now += 10 {
		step(c, 10, false, false)
	}
	step(c, 10, false, false)
	if got := c.Readout().TimerMs; got != 20 {
		t.Fatalf("coyote timer at t=80 = %v, want 20", got)
	}
}

func TestCoyoteOneJumpPerAirbornePeriod(t *testing.T) {
	c := mustController(t, Coyote)
	step(c, 10, true, false)
	launches := 0
	for _, press := range []bool{false, true, false, true, false} {
		if _, ok := step(c, 10, false, press); ok {
			launches++
		}
	}
	if launches != 1 {
		t.Fatalf("launches=%d, want 1", launches)
	}
}

// The grace window refills on every grounded frame, not just on the frame the
// player leaves the ground.
func TestCoyoteRefreshesWhileGrounded(t *testing.T) {
	c := mustController(t, Coyote)
	for i := 0; i < 5; i++ {
		step(c, 30, true, false)
		if got := c.State().CoyoteTimer; got != 100 {
			t.Fatalf("frame %d: timer=%v, want 100", i, got)
		}
	}
}

func TestBufferedScenario(t *testing.T) {
	cases := []struct {
		name   string
		landAt float64
		want   bool
	}{
		{"lands_inside_window", 120, true},
		{"lands_after_window", 200, false},
		{"lands_immediately", 10, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := mustController(t, Buffered)
			fired := false
			if _, ok := step(c, 10, false, true); ok { // t=0, airborne press
				t.Fatalf("buffered press must not fire mid-air")
			}
			for now := 10.0; now <= tc.landAt; now += 10 {
				floor := now == tc.landAt
				if _, ok := step(c, 10, floor, false); ok {
					fired = true
				}
			}
			if fired != tc.want {
				t.Fatalf("fired=%v, want %v", fired, tc.want)
			}
		})
	}
}

func TestBufferedPressOnFloorFiresImmediately(t *testing.T) {
	c := mustController(t, Buffered)
	vy, ok := step(c, 16, true, true)
	if !ok || vy != -400 {
		t.Fatalf("vy=%v ok=%v, want -400 true", vy, ok)
	}
	if c.State().BufferTimer != 0 {
		t.Fatalf("buffer should be consumed")
	}
}

func TestBufferedRepressRefreshes(t *testing.T) {
	c := mustController(t, Buffered)
	step(c, 10, false, true)
	for i := 0; i < 10; i++ {
		step(c, 10, false, false)
	}
	step(c, 10, false, true)
	if got := c.State().BufferTimer; got != 140 {
		t.Fatalf("buffer after re-press=%v, want 140", got)
	}
}

func TestResetIsIdempotent(t *testing.T) {
	for _, p := range Policies() {
		t.Run(p.String(), func(t *testing.T) {
			c := mustController(t, p)
			c.Tick(Input{Delta: 16, JumpPressed: true, JumpHeld: true, OnFloor: true, VelocityY: 12})
			c.Tick(Input{Delta: 16, JumpHeld: true, VelocityY: -300})
			c.Tick(Input{Delta: 16, JumpPressed: true, JumpHeld: true, VelocityY: -250})

			for i := 0; i < 2; i++ {
				c.Reset()
				st := c.State()
				if st.VelocityY != 0 || st.Jumping || st.HoldElapsed != 0 || st.CoyoteTimer != 0 || st.BufferTimer != 0 {
					t.Fatalf("reset %d left state %+v", i, st)
				}
				if st.Policy != p {
					t.Fatalf("reset changed policy to %v", st.Policy)
				}
			}
		})
	}
}

func TestTimersNeverNegativeOrRising(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for _, p := range []Policy{Coyote, Buffered} {
		t.Run(p.String(), func(t *testing.T) {
			c := mustController(t, p)
			for i := 0; i < 2000; i++ {
				before := c.State()
				in := Input{
					Delta:       1 + rng.Float64()*40,
					JumpPressed: rng.Intn(8) == 0,
					OnFloor:     rng.Intn(4) == 0,
					VelocityY:   rng.Float64()*800 - 400,
				}
				in.JumpHeld = in.JumpPressed
				c.Tick(in)
				after := c.State()

				var prev, cur float64
				refreshed := false
				switch p {
				case Coyote:
					prev, cur, refreshed = before.CoyoteTimer, after.CoyoteTimer, in.OnFloor
				case Buffered:
					prev, cur, refreshed = before.BufferTimer, after.BufferTimer, in.JumpPressed
				}
				if cur < 0 {
					t.Fatalf("tick %d: timer went negative: %v", i, cur)
				}
				if !refreshed && cur > prev {
					t.Fatalf("tick %d: timer rose without refresh: %v -> %v", i, prev, cur)
				}
			}
		})
	}
}

func TestInvalidDeltaIsNoop(t *testing.T) {
	for _, d := range []float64{0, -16, math.NaN(), math.Inf(1), math.Inf(-1)} {
		for _, p := range Policies() {
			c := mustController(t, p)
			step(c, 16, false, false)
			before := c.State()
			if _, ok := c.Tick(Input{Delta: d, JumpPressed: true, JumpHeld: true, OnFloor: true}); ok {
				t.Fatalf("%v delta=%v: emitted intent", p, d)
			}
			if after := c.State(); after != before {
				t.Fatalf("%v delta=%v: state changed %+v -> %+v", p, d, before, after)
			}
		}
	}
}

func TestSelectPolicy(t *testing.T) {
	c := mustController(t, Coyote)
	step(c, 16, true, false)

	if err := c.SelectPolicy(Policy(42)); !errors.Is(err, ErrUnknownPolicy) {
		t.Fatalf("err=%v, want ErrUnknownPolicy", err)
	}
	if c.Policy() != Coyote || c.State().CoyoteTimer != 100 {
		t.Fatalf("rejected selection must leave state alone, got %+v", c.State())
	}

	if err := c.SelectPolicy(Buffered); err != nil {
		t.Fatalf("SelectPolicy: %v", err)
	}
	if st := c.State(); st.Policy != Buffered || st.CoyoteTimer != 0 {
		t.Fatalf("selection should reset state, got %+v", st)
	}
}

func TestParsePolicy(t *testing.T) {
	cases := map[string]Policy{
		"basic":      Basic,
		" Variable ": Variable,
		"COYOTE":     Coyote,
		"buffered":   Buffered,
	}
	for in, want := range cases {
		got, err := ParsePolicy(in)
		if err != nil || got != want {
			t.Fatalf("ParsePolicy(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParsePolicy("double"); !errors.Is(err, ErrUnknownPolicy) {
		t.Fatalf("err=%v, want ErrUnknownPolicy", err)
	}
}

func TestConfigValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"default", func(*Config) {}, true},
		{"zero_velocity", func(c *Config) { c.JumpVelocity = 0 }, false},
		{"negative_window", func(c *Config) { c.CoyoteWindow = -1 }, false},
		{"nan_boost", func(c *Config) { c.JumpBoost = math.NaN() }, false},
		{"cut_above_one", func(c *Config) { c.CutFactor = 1.5 }, false},
		{"no_buffer", func(c *Config) { c.BufferWindow = 0 }, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if (err == nil) != tc.ok {
				t.Fatalf("Validate() = %v, want ok=%v", err, tc.ok)
			}
			if err != nil && !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("err=%v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestReadout(t *testing.T) {
	c := mustController(t, Coyote)
	step(c, 16, true, false)
	r := c.Readout()
	if r.TimerLabel != "coyote" || r.TimerMs != 100 || !r.OnFloor {
		t.Fatalf("readout=%+v", r)
	}
	want := "policy: coyote\nfloor: yes\nvy: 0\ncoyote: 100ms"
	if got := r.String(); got != want {
		t.Fatalf("String()=%q, want %q", got, want)
	}
	if got := mustController(t, Basic).Readout().TimerLabel; got != "" {
		t.Fatalf("basic readout label=%q, want empty", got)
	}
}
