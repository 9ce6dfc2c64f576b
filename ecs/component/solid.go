package component

// Solid marks a static platform.
type Solid struct {
	Name string
}

var SolidComponent = NewComponent[Solid]()
