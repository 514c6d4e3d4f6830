package component

// HUD is the on-screen overlay: the level label and the boss health bar.
// BossHealth is a fraction in [0,1].
type HUD struct {
	LevelText  string
	BossHealth float64
}

var HUDComponent = NewComponent[HUD]()
