package system

import (
	"github.com/milk9111/jumplab/ecs"
	"github.com/milk9111/jumplab/ecs/component"
)

// Controls is the raw, level-triggered control state for one frame.
type Controls struct {
	MoveX float64
	Jump  bool
}

// InputSource produces controls once per frame. The keyboard and scripted
// scenarios both implement it.
type InputSource interface {
	Poll() Controls
}

type InputSystem struct {
	source   InputSource
	prevJump bool
}

func NewInputSystem(source InputSource) *InputSystem {
	return &InputSystem{source: source}
}

func (i *InputSystem) SetSource(source InputSource) {
	i.source = source
	i.prevJump = false
}

func (i *InputSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	var c Controls
	if i.source != nil {
		c = i.source.Poll()
	}
	if c.MoveX > 1 {
		c.MoveX = 1
	} else if c.MoveX < -1 {
		c.MoveX = -1
	}

	jumpPressed := c.Jump && !i.prevJump
	jumpReleased := !c.Jump && i.prevJump
	i.prevJump = c.Jump

	ecs.ForEach(w, component.InputComponent.Kind(), func(e ecs.Entity, input *component.Input) {
		input.MoveX = c.MoveX
		input.Jump = c.Jump
		input.JumpPressed = jumpPressed
		input.JumpReleased = jumpReleased
	})
}
