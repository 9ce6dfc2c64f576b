package component

// Spawn is where a player returns to on reset.
type Spawn struct {
	X float64
	Y float64
}

var SpawnComponent = NewComponent[Spawn]()
