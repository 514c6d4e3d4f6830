package component

type Health struct {
	Current int
}

var HealthComponent = NewComponent[Health]()

// LevelLocation records which room an entity belongs to.
type LevelLocation struct {
	Level int
}

var LevelLocationComponent = NewComponent[LevelLocation]()
