package system

import (
	"fmt"
	"time"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/rs/zerolog"

	"github.com/milk9111/tower/clock"
	"github.com/milk9111/tower/ecs"
	"github.com/milk9111/tower/ecs/component"
	"github.com/milk9111/tower/prefabs"
	"github.com/milk9111/tower/session"
)

// behaviourCycle is the length of one wander cycle. Scripts see the time
// into the cycle as `phase`.
const behaviourCycle = 3 * time.Second

// EnemyBehaviourSystem runs each enemy's tengo script once per frame and
// stores the force it asks for. Only enemies in the current level move.
type EnemyBehaviourSystem struct {
	clock   clock.Clock
	session *session.State
	scripts map[string]*tengo.Compiled
	logger  zerolog.Logger
	warn    *warnThrottle
}

func NewEnemyBehaviourSystem(c clock.Clock, state *session.State) *EnemyBehaviourSystem {
	return &EnemyBehaviourSystem{
		clock:   c,
		session: state,
		scripts: map[string]*tengo.Compiled{},
		logger:  systemLogger("behaviour"),
		warn:    newWarnThrottle(),
	}
}

// Invalidate drops compiled scripts so the next frame reloads them.
func (s *EnemyBehaviourSystem) Invalidate() {
	clear(s.scripts)
}

func (s *EnemyBehaviourSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := s.clock.Delta()

	ecs.ForEach3(w,
		component.BehaviourComponent.Kind(),
		component.ForceComponent.Kind(),
		component.LevelLocationComponent.Kind(),
		func(e ecs.Entity, b *component.Behaviour, force *component.Force, loc *component.LevelLocation) {
			if s.session != nil && loc.Level != s.session.Level {
				return
			}
			b.Elapsed += dt

			compiled, err := s.compiled(b.Script)
			if err != nil {
				s.warn.Warn(s.logger.With().Err(err).Str("script", b.Script).Logger(), "behaviour script unavailable")
				return
			}
			fx, fy, apply, err := runBehaviour(compiled, b.Elapsed%behaviourCycle, b.Strength)
			if err != nil {
				s.warn.Warn(s.logger.With().Err(err).Stringer("entity", e).Logger(), "behaviour script failed")
				return
			}
			if apply {
				force.X, force.Y = fx, fy
			}
		})
}

func (s *EnemyBehaviourSystem) compiled(name string) (*tengo.Compiled, error) {
	if c, ok := s.scripts[name]; ok {
		return c, nil
	}
	src, err := prefabs.LoadScript(name)
	if err != nil {
		return nil, err
	}
	c, err := compileBehaviour(src)
	if err != nil {
		return nil, fmt.Errorf("behaviour: compile %q: %w", name, err)
	}
	s.scripts[name] = c
	return c, nil
}

func compileBehaviour(src []byte) (*tengo.Compiled, error) {
	script := tengo.NewScript(src)
	_ = script.Add("phase", 0.0)
	_ = script.Add("strength", 0.0)
	script.SetImports(stdlib.GetModuleMap("rand", "math"))
	return script.Compile()
}

func runBehaviour(c *tengo.Compiled, phase time.Duration, strength float64) (float64, float64, bool, error) {
	if err := c.Set("phase", phase.Seconds()); err != nil {
		return 0, 0, false, err
	}
	if err := c.Set("strength", strength); err != nil {
		return 0, 0, false, err
	}
	if err := c.Run(); err != nil {
		return 0, 0, false, err
	}
	if !c.IsDefined("apply") || !c.Get("apply").Bool() {
		return 0, 0, false, nil
	}
	return c.Get("force_x").Float(), c.Get("force_y").Float(), true, nil
}
