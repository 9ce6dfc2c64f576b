package component

// Input stores per-frame input state for an entity. JumpPressed and
// JumpReleased are edges and hold for exactly one frame.
type Input struct {
	MoveX        float64
	Jump         bool
	JumpPressed  bool
	JumpReleased bool
}

var InputComponent = NewComponent[Input]()
