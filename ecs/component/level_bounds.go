package component

// LevelBounds stores the world-space bounds of the scene.
type LevelBounds struct {
	Width  float64
	Height float64
}

var LevelBoundsComponent = NewComponent[LevelBounds]()
