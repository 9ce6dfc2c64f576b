// Package scenario replays scripted input timelines against a session and
// checks the jumps they produce. Timelines are tengo scripts.
package scenario

import (
	"errors"
	"fmt"
	"math"
	"path"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/jumplab/ecs/system"
	"github.com/milk9111/jumplab/jump"
	"github.com/milk9111/jumplab/prefabs"
)

var ErrInvalidScenario = errors.New("scenario: invalid")

const defaultDelta = 1000.0 / 60

const dispatchScript = `
if __phase == "input" {
	__out = input(__t)
}
`

// Scenario is a compiled timeline script. The script declares its settings
// as globals and an input(t) function returning either a bool (jump held) or
// a map with "jump" and "move" keys. A Scenario is not safe for concurrent use.
type Scenario struct {
	Name     string
	Policy   jump.Policy
	Scene    string
	Duration float64
	Delta    float64

	// ExpectLaunches is -1 when the script does not check it. Rise bounds
	// are unchecked when zero.
	ExpectLaunches int
	ExpectMinRise  float64
	ExpectMaxRise  float64

	compiled *tengo.Compiled
}

func Load(name string) (*Scenario, error) {
	src, err := prefabs.LoadScript(name)
	if err != nil {
		return nil, fmt.Errorf("scenario: load %s: %w", name, err)
	}
	return Compile(strings.TrimSuffix(path.Base(name), ".tengo"), src)
}

// Compile builds a scenario from script source. name is used when the script
// does not declare one.
func Compile(name string, src []byte) (*Scenario, error) {
	// The bare source is run once to read its settings. The input dispatch is
	// only compiled in after input is known to exist.
	globals, err := compileScript(src, false)
	if err != nil {
		return nil, fmt.Errorf("scenario: compile %s: %w", name, err)
	}
	if err := globals.Run(); err != nil {
		return nil, fmt.Errorf("scenario: %s: %w", name, err)
	}

	sc := &Scenario{
		Name:           name,
		Policy:         jump.Basic,
		Scene:          prefabs.SceneFile,
		Delta:          defaultDelta,
		ExpectLaunches: -1,
	}
	if globals.IsDefined("name") {
		if s := strings.TrimSpace(globals.Get("name").String()); s != "" {
			sc.Name = s
		}
	}
	if globals.IsDefined("policy") {
		p, err := jump.ParsePolicy(globals.Get("policy").String())
		if err != nil {
			return nil, fmt.Errorf("scenario: %s: %w", sc.Name, err)
		}
		sc.Policy = p
	}
	if globals.IsDefined("scene") {
		if s := strings.TrimSpace(globals.Get("scene").String()); s != "" {
			sc.Scene = s
		}
	}
	if globals.IsDefined("duration") {
		sc.Duration = globals.Get("duration").Float()
	}
	if globals.IsDefined("delta") {
		sc.Delta = globals.Get("delta").Float()
	}
	if globals.IsDefined("expect_launches") {
		sc.ExpectLaunches = globals.Get("expect_launches").Int()
	}
	if globals.IsDefined("expect_min_rise") {
		sc.ExpectMinRise = globals.Get("expect_min_rise").Float()
	}
	if globals.IsDefined("expect_max_rise") {
		sc.ExpectMaxRise = globals.Get("expect_max_rise").Float()
	}

	if !globals.IsDefined("input") {
		return nil, fmt.Errorf("%w: %s: no input function", ErrInvalidScenario, sc.Name)
	}
	if _, ok := globals.Get("input").Object().(*tengo.CompiledFunction); !ok {
		return nil, fmt.Errorf("%w: %s: input is %s, not a function", ErrInvalidScenario, sc.Name, globals.Get("input").ValueType())
	}
	if !(sc.Duration > 0) || math.IsInf(sc.Duration, 0) {
		return nil, fmt.Errorf("%w: %s: duration %v", ErrInvalidScenario, sc.Name, sc.Duration)
	}
	if !(sc.Delta > 0) || math.IsInf(sc.Delta, 0) {
		return nil, fmt.Errorf("%w: %s: delta %v", ErrInvalidScenario, sc.Name, sc.Delta)
	}

	sc.compiled, err = compileScript(src, true)
	if err != nil {
		return nil, fmt.Errorf("scenario: compile %s: %w", sc.Name, err)
	}
	return sc, nil
}

func compileScript(src []byte, dispatch bool) (*tengo.Compiled, error) {
	if dispatch {
		src = []byte(string(src) + "\n" + dispatchScript)
	}
	script := tengo.NewScript(src)
	if dispatch {
		_ = script.Add("__phase", "")
		_ = script.Add("__t", 0.0)
		_ = script.Add("__out", nil)
	}
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))
	return script.Compile()
}

// Controls evaluates the timeline at t milliseconds.
func (sc *Scenario) Controls(t float64) (system.Controls, error) {
	if err := sc.compiled.Set("__phase", "input"); err != nil {
		return system.Controls{}, err
	}
	if err := sc.compiled.Set("__t", t); err != nil {
		return system.Controls{}, err
	}
	if err := sc.compiled.Run(); err != nil {
		return system.Controls{}, fmt.Errorf("scenario: %s: input(%v): %w", sc.Name, t, err)
	}
	return controlsFromObject(sc.compiled.Get("__out").Object())
}

func controlsFromObject(obj tengo.Object) (system.Controls, error) {
	var values map[string]tengo.Object
	switch v := obj.(type) {
	case *tengo.Bool:
		return system.Controls{Jump: !v.IsFalsy()}, nil
	case *tengo.Map:
		values = v.Value
	case *tengo.ImmutableMap:
		values = v.Value
	default:
		return system.Controls{}, fmt.Errorf("%w: input returned %s", ErrInvalidScenario, obj.TypeName())
	}

	var c system.Controls
	if j, ok := values["jump"]; ok {
		c.Jump = !j.IsFalsy()
	}
	if m, ok := values["move"]; ok {
		move, ok := tengo.ToFloat64(m)
		if !ok {
			return system.Controls{}, fmt.Errorf("%w: move is %s", ErrInvalidScenario, m.TypeName())
		}
		c.MoveX = move
	}
	return c, nil
}

// All loads every embedded scenario.
func All() ([]*Scenario, error) {
	names, err := prefabs.ScenarioNames()
	if err != nil {
		return nil, err
	}
	out := make([]*Scenario, 0, len(names))
	for _, name := range names {
		sc, err := Load(name)
		if err != nil {
			return nil, err
		}
		out = append(out, sc)
	}
	return out, nil
}
