package component

import "github.com/milk9111/jumplab/jump"

// JumpAssist attaches a jump-assist controller to a player. LaunchTimes holds
// the session time in milliseconds of every jump fired since the last reset.
type JumpAssist struct {
	Controller  *jump.Controller
	LaunchTimes []float64
}

var JumpAssistComponent = NewComponent[JumpAssist]()
