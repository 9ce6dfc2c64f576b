package scenario

import (
	"fmt"
	"math"
	"strings"

	"github.com/milk9111/jumplab/ecs/system"
	"github.com/milk9111/jumplab/jump"
	"github.com/milk9111/jumplab/prefabs"
	"github.com/milk9111/jumplab/session"
)

// Report summarises one scenario run. PeakRise is how far the player climbed
// above the surface it launched from, in pixels.
type Report struct {
	Name     string
	Policy   jump.Policy
	Frames   int
	Launches []float64
	PeakRise float64
	Failures []string
}

func (r Report) Passed() bool { return len(r.Failures) == 0 }

func (r Report) String() string {
	status := "ok"
	if !r.Passed() {
		status = "FAIL"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%-4s %-22s policy=%-8s frames=%d launches=%d rise=%.1f", status, r.Name, r.Policy, r.Frames, len(r.Launches), r.PeakRise)
	for _, f := range r.Failures {
		fmt.Fprintf(&b, "\n     %s", f)
	}
	return b.String()
}

// timelineSource polls the scenario at the session's current time. The first
// script error sticks and blanks all further input.
type timelineSource struct {
	sc   *Scenario
	sess *session.Session
	err  error
}

func (s *timelineSource) Poll() system.Controls {
	if s.err != nil {
		return system.Controls{}
	}
	c, err := s.sc.Controls(s.sess.Elapsed())
	if err != nil {
		s.err = err
		return system.Controls{}
	}
	return c
}

// Run builds a fresh session for sc's scene with the given tuning and replays
// the timeline against it.
func Run(sc *Scenario, tuning jump.Config) (Report, error) {
	scene, err := prefabs.LoadScene(sc.Scene)
	if err != nil {
		return Report{}, fmt.Errorf("scenario: %s: %w", sc.Name, err)
	}
	sess, err := session.New(session.Options{Scene: scene, Tuning: tuning, Policy: sc.Policy})
	if err != nil {
		return Report{}, fmt.Errorf("scenario: %s: %w", sc.Name, err)
	}
	return Replay(sc, sess)
}

// Replay drives an existing session with sc's timeline from its current
// state. The session's input source is replaced.
func Replay(sc *Scenario, sess *session.Session) (Report, error) {
	src := &timelineSource{sc: sc, sess: sess}
	sess.SetInput(src)

	frames := int(math.Ceil(sc.Duration / sc.Delta))
	baseline, top := math.NaN(), math.Inf(1)
	for i := 0; i < frames; i++ {
		sess.Step(sc.Delta)
		if src.err != nil {
			return Report{}, src.err
		}

		p := sess.Player()
		if len(p.Launches) == 0 {
			if p.Grounded {
				baseline = p.Y
			}
			continue
		}
		top = math.Min(top, p.Y)
	}

	p := sess.Player()
	r := Report{
		Name:     sc.Name,
		Policy:   sess.Policy(),
		Frames:   frames,
		Launches: p.Launches,
	}
	if !math.IsNaN(baseline) && !math.IsInf(top, 1) {
		r.PeakRise = math.Max(0, baseline-top)
	}

	if sc.ExpectLaunches >= 0 && len(r.Launches) != sc.ExpectLaunches {
		r.Failures = append(r.Failures, fmt.Sprintf("launches = %d, want %d (at %v)", len(r.Launches), sc.ExpectLaunches, formatTimes(r.Launches)))
	}
	if sc.ExpectMinRise > 0 && r.PeakRise < sc.ExpectMinRise {
		r.Failures = append(r.Failures, fmt.Sprintf("rise = %.1f, want at least %.1f", r.PeakRise, sc.ExpectMinRise))
	}
	if sc.ExpectMaxRise > 0 && r.PeakRise > sc.ExpectMaxRise {
		r.Failures = append(r.Failures, fmt.Sprintf("rise = %.1f, want at most %.1f", r.PeakRise, sc.ExpectMaxRise))
	}
	return r, nil
}

func formatTimes(ts []float64) string {
	parts := make([]string, len(ts))
	for i, t := range ts {
		parts[i] = fmt.Sprintf("%.0fms", t)
	}
	return "[" + strings.Join(parts, " ") + "]"
}
