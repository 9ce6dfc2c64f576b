package component

type Player struct {
	MoveSpeed float64
}

var PlayerComponent = NewComponent[Player]()

type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()
