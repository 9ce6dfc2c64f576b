package jump

import "math"

// assist implements one policy. Implementations are stateless; everything
// they touch lives in State so switching policies never allocates.
type assist interface {
	Tick(ctx *tickContext)
	Timer(st *State) (label string, ms float64)
}

type tickContext struct {
	cfg *Config
	st  *State
	in  Input

	vy  float64
	set bool
}

func (ctx *tickContext) setVelocity(vy float64) {
	ctx.vy = vy
	ctx.set = true
}

func (ctx *tickContext) launch() {
	ctx.setVelocity(-ctx.cfg.JumpVelocity)
	ctx.st.Launches++
}

var assists = [...]assist{
	Basic:    basicAssist{},
	Variable: variableAssist{},
	Coyote:   coyoteAssist{},
	Buffered: bufferedAssist{},
}

type basicAssist struct{}

type variableAssist struct{}

type coyoteAssist struct{}

type bufferedAssist struct{}

func (basicAssist) Tick(ctx *tickContext) {
	if ctx.in.JumpPressed && ctx.st.OnFloor {
		ctx.launch()
	}
}

func (basicAssist) Timer(*State) (string, float64) { return "", 0 }

func (variableAssist) Tick(ctx *tickContext) {
	st, in := ctx.st, ctx.in

	// landing re-arms before the press check so a jump on the landing frame still boosts
	if st.OnFloor && !st.WasOnFloor {
		st.Jumping = false
		st.HoldElapsed = 0
	}

	if in.JumpPressed && st.OnFloor {
		ctx.launch()
		st.Jumping = true
		st.HoldElapsed = 0
	}

	if in.JumpHeld && !in.JumpReleased {
		if st.Jumping && st.HoldElapsed < ctx.cfg.MaxHold {
			ctx.setVelocity(ctx.vy - ctx.cfg.JumpBoost)
			st.HoldElapsed += in.Delta
		}
		return
	}

	// short-hop cut, once per release
	if st.Jumping && ctx.vy < 0 {
		ctx.setVelocity(ctx.vy * ctx.cfg.CutFactor)
	}
	st.Jumping = false
}

func (variableAssist) Timer(st *State) (string, float64) { return "hold", st.HoldElapsed }

func (coyoteAssist) Tick(ctx *tickContext) {
	st := ctx.st
	if st.OnFloor {
		st.CoyoteTimer = ctx.cfg.CoyoteWindow
	} else {
		st.CoyoteTimer = countdown(st.CoyoteTimer, ctx.in.Delta)
	}

	if ctx.in.JumpPressed && st.CoyoteTimer > 0 {
		ctx.launch()
		st.CoyoteTimer = 0
	}
}

func (coyoteAssist) Timer(st *State) (string, float64) { return "coyote", st.CoyoteTimer }

func (bufferedAssist) Tick(ctx *tickContext) {
	st := ctx.st
	if ctx.in.JumpPressed {
		st.BufferTimer = ctx.cfg.BufferWindow
	}
	st.BufferTimer = countdown(st.BufferTimer, ctx.in.Delta)

	if st.OnFloor && st.BufferTimer > 0 {
		ctx.launch()
		st.BufferTimer = 0
	}
}

func (bufferedAssist) Timer(st *State) (string, float64) { return "buffer", st.BufferTimer }

func countdown(t, delta float64) float64 {
	return math.Max(0, t-delta)
}
