package component

type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()

type CameraTag struct{}

var CameraTagComponent = NewComponent[CameraTag]()

type EnemyTag struct{}

var EnemyTagComponent = NewComponent[EnemyTag]()

// ProjectileTag marks shots fired by the player.
type ProjectileTag struct{}

var ProjectileTagComponent = NewComponent[ProjectileTag]()

type WallTag struct{}

var WallTagComponent = NewComponent[WallTag]()
