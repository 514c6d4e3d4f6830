package system

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/milk9111/tower/ecs"
	"github.com/milk9111/tower/ecs/component"
)

const stickDeadzone = 0.2

// InputSystem samples keyboard, mouse and the first gamepad into every
// Input component.
type InputSystem struct {
	captured     bool
	lastX, lastY int
	havePrev     bool
}

func NewInputSystem() *InputSystem {
	return &InputSystem{}
}

// SetCaptured grabs or releases the cursor. Movement and orbiting only apply
// while it is captured.
func (i *InputSystem) SetCaptured(captured bool) {
	i.captured = captured
	i.havePrev = false
	if captured {
		ebiten.SetCursorMode(ebiten.CursorModeCaptured)
	} else {
		ebiten.SetCursorMode(ebiten.CursorModeVisible)
	}
}

func (i *InputSystem) Captured() bool { return i.captured }

func (i *InputSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		i.SetCaptured(!i.captured)
	}

	forward, right := moveAxes(
		ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp),
		ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown),
		ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft),
		ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight),
	)
	dash := ebiten.IsKeyPressed(ebiten.KeySpace)
	attack := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	_, wheel := ebiten.Wheel()

	cx, cy := ebiten.CursorPosition()
	orbit := 0.0
	if i.havePrev {
		orbit = float64(cx - i.lastX)
	}
	i.lastX, i.lastY = cx, cy
	i.havePrev = true

	if gamepads := ebiten.GamepadIDs(); len(gamepads) > 0 {
		id := gamepads[0]
		lx := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		ly := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
		if math.Hypot(lx, ly) > stickDeadzone {
			forward, right = -ly, lx
		}
		rx := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisRightStickHorizontal)
		if math.Abs(rx) > stickDeadzone {
			orbit += rx * 10
		}
		dash = dash || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonRightBottom)
		attack = attack || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonFrontBottomRight)
	}

	ecs.ForEach(w, component.InputComponent.Kind(), func(e ecs.Entity, input *component.Input) {
		input.Forward = forward
		input.Right = right
		input.Dash = dash
		input.Attack = attack
		input.Captured = i.captured
		input.OrbitDX = orbit
		input.Wheel = wheel
	})
}

// moveAxes folds four direction keys into forward/right axes in [-1, 1].
func moveAxes(up, down, left, right bool) (float64, float64) {
	f, r := 0.0, 0.0
	if up {
		f++
	}
	if down {
		f--
	}
	if right {
		r++
	}
	if left {
		r--
	}
	return f, r
}
