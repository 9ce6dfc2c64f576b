package prefabs

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/milk9111/jumplab/jump"
	"gopkg.in/yaml.v3"
)

const (
	JumpFile  = "jump.yaml"
	SceneFile = "scene.yaml"
)

var ErrInvalidScene = errors.New("prefabs: invalid scene")

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// LoadJumpConfig reads jump.yaml on top of the default tuning, so a file that
// omits a key keeps the default for it.
func LoadJumpConfig() (jump.Config, error) {
	data, err := Load(JumpFile)
	if err != nil {
		return jump.Config{}, fmt.Errorf("prefabs: load %s: %w", JumpFile, err)
	}
	return ParseJumpConfig(data)
}

func ParseJumpConfig(data []byte) (jump.Config, error) {
	cfg := jump.DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return jump.Config{}, fmt.Errorf("prefabs: unmarshal %s: %w", JumpFile, err)
	}
	if err := cfg.Validate(); err != nil {
		return jump.Config{}, fmt.Errorf("prefabs: %s: %w", JumpFile, err)
	}
	return cfg, nil
}

type SceneSpec struct {
	Name       string      `yaml:"name"`
	Width      float64     `yaml:"width"`
	Height     float64     `yaml:"height"`
	Gravity    float64     `yaml:"gravity"`
	Background *YAMLColor  `yaml:"background"`
	Policy     jump.Policy `yaml:"policy"`
	Player     PlayerSpec  `yaml:"player"`
	Solids     []SolidSpec `yaml:"solids"`
}

type PlayerSpec struct {
	X         float64    `yaml:"x"`
	Y         float64    `yaml:"y"`
	Width     float64    `yaml:"width"`
	Height    float64    `yaml:"height"`
	Mass      float64    `yaml:"mass"`
	MoveSpeed float64    `yaml:"move_speed"`
	Color     *YAMLColor `yaml:"color"`
}

type SolidSpec struct {
	Name     string     `yaml:"name"`
	X        float64    `yaml:"x"`
	Y        float64    `yaml:"y"`
	Width    float64    `yaml:"width"`
	Height   float64    `yaml:"height"`
	Friction float64    `yaml:"friction"`
	Color    *YAMLColor `yaml:"color"`
}

func LoadSceneSpec() (*SceneSpec, error) {
	return LoadScene(SceneFile)
}

// LoadScene reads and validates a scene file, e.g. "ledge.yaml".
func LoadScene(filename string) (*SceneSpec, error) {
	spec, err := LoadSpec[SceneSpec](filename)
	if err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("prefabs: %s: %w", filename, err)
	}
	return &spec, nil
}

func (s *SceneSpec) Validate() error {
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("%w: size %vx%v", ErrInvalidScene, s.Width, s.Height)
	}
	if s.Gravity <= 0 {
		return fmt.Errorf("%w: gravity must be positive, got %v", ErrInvalidScene, s.Gravity)
	}
	if s.Player.Width <= 0 || s.Player.Height <= 0 {
		return fmt.Errorf("%w: player size %vx%v", ErrInvalidScene, s.Player.Width, s.Player.Height)
	}
	if s.Player.MoveSpeed < 0 {
		return fmt.Errorf("%w: negative move speed", ErrInvalidScene)
	}
	for i, solid := range s.Solids {
		if solid.Width <= 0 || solid.Height <= 0 {
			return fmt.Errorf("%w: solid %d (%s) size %vx%v", ErrInvalidScene, i, solid.Name, solid.Width, solid.Height)
		}
	}
	return nil
}

// Headroom is the free vertical space above the player's spawn: the distance
// from the player's top edge to the lowest solid overlapping its column, or to
// the top of the scene when nothing does.
func (s *SceneSpec) Headroom() float64 {
	left, right := s.Player.X, s.Player.X+s.Player.Width
	room := s.Player.Y
	for _, solid := range s.Solids {
		bottom := solid.Y + solid.Height
		if bottom > s.Player.Y || solid.X >= right || solid.X+solid.Width <= left {
			continue
		}
		room = min(room, s.Player.Y-bottom)
	}
	return room
}

type YAMLColor struct {
	color.NRGBA
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.NRGBA = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}

// ColorOr returns the parsed colour, or fallback when the key was absent.
func (c *YAMLColor) ColorOr(fallback color.NRGBA) color.NRGBA {
	if c == nil {
		return fallback
	}
	return c.NRGBA
}
