package core

// Poller is the subset of Window that Input samples. Tests supply a fake.
type Poller interface {
	IsKeyPressed(key int) bool
	IsMouseButtonPressed(button int) bool
	GetCursorPos() (float64, float64)
}

// Input tracks keyboard and mouse state across frames so callers can ask
// for edges (pressed/released this frame) as well as levels.
type Input struct {
	MouseX, MouseY           float64
	MouseDeltaX, MouseDeltaY float64
	lastMouseX, lastMouseY   float64

	mouseButtons     [8]bool
	mouseButtonsPrev [8]bool

	keys     [512]bool
	keysPrev [512]bool

	ShiftDown bool
	CtrlDown  bool
	AltDown   bool

	source     Poller
	firstFrame bool
}

func NewInput(source Poller) *Input {
	return &Input{
		source:     source,
		firstFrame: true,
	}
}

// Update should be called once per frame, before events are dispatched.
func (in *Input) Update() {
	x, y := in.source.GetCursorPos()
	if in.firstFrame {
		in.lastMouseX = x
		in.lastMouseY = y
		in.firstFrame = false
	}
	in.MouseDeltaX = x - in.lastMouseX
	in.MouseDeltaY = y - in.lastMouseY
	in.lastMouseX = x
	in.lastMouseY = y
	in.MouseX = x
	in.MouseY = y

	copy(in.mouseButtonsPrev[:], in.mouseButtons[:])
	copy(in.keysPrev[:], in.keys[:])

	in.mouseButtons[MouseLeft] = in.source.IsMouseButtonPressed(MouseLeft)
	in.mouseButtons[MouseRight] = in.source.IsMouseButtonPressed(MouseRight)
	in.mouseButtons[MouseMiddle] = in.source.IsMouseButtonPressed(MouseMiddle)

	for _, k := range polledKeys {
		if k >= 0 && k < len(in.keys) {
			in.keys[k] = in.source.IsKeyPressed(k)
		}
	}

	in.ShiftDown = in.keys[KeyLeftShift] || in.keys[KeyRightShift]
	in.CtrlDown = in.keys[KeyLeftControl] || in.keys[KeyRightControl]
	in.AltDown = in.keys[KeyLeftAlt] || in.keys[KeyRightAlt]
}

func (in *Input) IsMouseDown(button int) bool {
	if button < 0 || button >= len(in.mouseButtons) {
		return false
	}
	return in.mouseButtons[button]
}

func (in *Input) IsMousePressed(button int) bool {
	if button < 0 || button >= len(in.mouseButtons) {
		return false
	}
	return in.mouseButtons[button] && !in.mouseButtonsPrev[button]
}

func (in *Input) IsMouseReleased(button int) bool {
	if button < 0 || button >= len(in.mouseButtons) {
		return false
	}
	return !in.mouseButtons[button] && in.mouseButtonsPrev[button]
}

func (in *Input) IsKeyDown(key int) bool {
	if key < 0 || key >= len(in.keys) {
		return false
	}
	return in.keys[key]
}

func (in *Input) IsKeyPressed(key int) bool {
	if key < 0 || key >= len(in.keys) {
		return false
	}
	return in.keys[key] && !in.keysPrev[key]
}

func (in *Input) IsKeyReleased(key int) bool {
	if key < 0 || key >= len(in.keys) {
		return false
	}
	return !in.keys[key] && in.keysPrev[key]
}
