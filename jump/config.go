package jump

import (
	"errors"
	"fmt"
	"math"
)

var ErrInvalidConfig = errors.New("jump: invalid config")

// Config holds the tuning constants shared by all policies. Velocities are in
// px/s with screen-down positive; durations are in milliseconds.
type Config struct {
	JumpVelocity float64 `yaml:"jump_velocity"`
	JumpBoost    float64 `yaml:"jump_boost"`
	MaxHold      float64 `yaml:"max_hold_ms"`
	CutFactor    float64 `yaml:"cut_factor"`
	CoyoteWindow float64 `yaml:"coyote_ms"`
	BufferWindow float64 `yaml:"buffer_ms"`
}

// DefaultConfig matches the values the demo scene was tuned with.
func DefaultConfig() Config {
	return Config{
		JumpVelocity: 400,
		JumpBoost:    15,
		MaxHold:      150,
		CutFactor:    0.5,
		CoyoteWindow: 100,
		BufferWindow: 150,
	}
}

func (c Config) Validate() error {
	check := func(name string, v float64, allowZero bool) error {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s is not finite", ErrInvalidConfig, name)
		}
		if v < 0 || (!allowZero && v == 0) {
			return fmt.Errorf("%w: %s must be positive, got %v", ErrInvalidConfig, name, v)
		}
		return nil
	}

	if err := check("jump_velocity", c.JumpVelocity, false); err != nil {
		return err
	}
	if err := check("jump_boost", c.JumpBoost, true); err != nil {
		return err
	}
	if err := check("max_hold_ms", c.MaxHold, true); err != nil {
		return err
	}
	if err := check("coyote_ms", c.CoyoteWindow, true); err != nil {
		return err
	}
	if err := check("buffer_ms", c.BufferWindow, true); err != nil {
		return err
	}
	if err := check("cut_factor", c.CutFactor, true); err != nil {
		return err
	}
	if c.CutFactor > 1 {
		return fmt.Errorf("%w: cut_factor must be at most 1, got %v", ErrInvalidConfig, c.CutFactor)
	}
	return nil
}
