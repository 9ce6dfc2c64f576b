package component

import "github.com/milk9111/jumplab/jump"

// PolicyChangeRequest asks the session system to switch the player's jump
// policy. The switch also performs a reset.
type PolicyChangeRequest struct {
	Policy jump.Policy
}

var PolicyChangeRequestComponent = NewComponent[PolicyChangeRequest]()
