package jump

// Info describes a policy for the demo's side panel and the jumpsim listing.
type Info struct {
	Name        string
	Description string
	Trait       string
	UsedBy      string
	Code        string
}

var catalogue = [...]Info{
	Basic: {
		Name:        "Basic jump",
		Description: "Pressing jump launches at a fixed speed. The simplest implementation, but the controls feel stiff.",
		Trait:       "simple, constant height",
		UsedBy:      "simple arcade games",
		Code: `// Basic jump
if jumpPressed && onFloor {
	setVelocityY(-jumpVelocity)
}`,
	},
	Variable: {
		Name:        "Variable-height jump",
		Description: "The longer the button is held, the higher the jump. The core of Super Mario's feel.",
		Trait:       "height follows how long the button is held",
		UsedBy:      "Super Mario, Celeste",
		Code: `// Variable-height jump
if jumpPressed && onFloor {
	setVelocityY(-jumpVelocity)
	jumping, holdTime = true, 0
}
// keep adding lift while held
if jumpHeld && jumping && holdTime < maxHold {
	setVelocityY(vy - jumpBoost)
	holdTime += delta
}
// releasing cuts the ascent short
if !jumpHeld {
	if jumping && vy < 0 {
		setVelocityY(vy * 0.5)
	}
	jumping = false
}`,
	},
	Coyote: {
		Name:        "Coyote time",
		Description: "A jump still works for a short moment after running off a ledge. Forgiving controls.",
		Trait:       "grace period after leaving a platform",
		UsedBy:      "most platformers",
		Code: `// Coyote time
if onFloor {
	coyoteTimer = coyoteTime // refill while grounded
} else {
	coyoteTimer = max(0, coyoteTimer-delta)
}
if jumpPressed && coyoteTimer > 0 {
	setVelocityY(-jumpVelocity)
	coyoteTimer = 0
}`,
	},
	Buffered: {
		Name:        "Jump buffering",
		Description: "A jump pressed just before landing fires automatically on touchdown. Chained jumps get easy.",
		Trait:       "remembers input pressed before landing",
		UsedBy:      "Hollow Knight, Celeste",
		Code: `// Jump buffering
if jumpPressed {
	jumpBufferTimer = jumpBufferTime
}
jumpBufferTimer = max(0, jumpBufferTimer-delta)
if onFloor && jumpBufferTimer > 0 {
	setVelocityY(-jumpVelocity)
	jumpBufferTimer = 0
}`,
	},
}

// Describe returns the catalogue entry for p. Unknown policies get an empty Info.
func Describe(p Policy) Info {
	if !p.Valid() {
		return Info{}
	}
	return catalogue[p]
}
