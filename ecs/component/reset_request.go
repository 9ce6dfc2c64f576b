package component

// ResetRequest is a marker asking the session system to move the player back
// to its spawn, stop it, and clear the controller's timers.
type ResetRequest struct{}

var ResetRequestComponent = NewComponent[ResetRequest]()
