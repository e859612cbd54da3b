// Package scene provides the 2D camera and the scene stack the application
// loop drives each frame.
package scene

import (
	"log/slog"

	"quad-engine/core"
)

// Scene is the minimum a stack entry implements. The lifecycle hooks below
// are optional; the Manager calls whichever a scene provides.
type Scene interface {
	Name() string
}

type Attacher interface {
	OnAttach()
}

type Detacher interface {
	OnDetach()
}

type Updater interface {
	OnUpdate(dt float64)
}

type Drawer interface {
	OnRender()
}

// InputHandler receives input when its scene is on top. It reports whether
// the input was consumed.
type InputHandler interface {
	OnInput(in *core.Input) bool
}

// Manager is an ordered stack of scenes. Update and input go to the top
// scene only; rendering visits every scene bottom to top so overlays draw
// over what is beneath them.
type Manager struct {
	stack  []Scene
	logger *slog.Logger
}

func NewManager(logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Manager{logger: logger}
}

// Set replaces the whole stack with s.
func (m *Manager) Set(s Scene) {
	m.Clear()
	m.Push(s)
}

func (m *Manager) Push(s Scene) {
	if s == nil {
		return
	}
	m.stack = append(m.stack, s)
	m.logger.Debug("scene attached", "scene", s.Name(), "depth", len(m.stack))
	if a, ok := s.(Attacher); ok {
		a.OnAttach()
	}
}

// Pop detaches and returns the top scene, or nil when the stack is empty.
func (m *Manager) Pop() Scene {
	if len(m.stack) == 0 {
		return nil
	}
	top := m.stack[len(m.stack)-1]
	m.stack[len(m.stack)-1] = nil
	m.stack = m.stack[:len(m.stack)-1]
	m.detach(top)
	return top
}

// Clear detaches every scene, top first.
func (m *Manager) Clear() {
	for len(m.stack) > 0 {
		m.Pop()
	}
}

func (m *Manager) detach(s Scene) {
	if d, ok := s.(Detacher); ok {
		d.OnDetach()
	}
	m.logger.Debug("scene detached", "scene", s.Name())
}

func (m *Manager) Top() Scene {
	if len(m.stack) == 0 {
		return nil
	}
	return m.stack[len(m.stack)-1]
}

func (m *Manager) Len() int { return len(m.stack) }

func (m *Manager) Update(dt float64) {
	if u, ok := m.Top().(Updater); ok {
		u.OnUpdate(dt)
	}
}

func (m *Manager) Render() {
	for _, s := range m.stack {
		if d, ok := s.(Drawer); ok {
			d.OnRender()
		}
	}
}

// DispatchInput hands in to the top scene and reports whether it was consumed.
func (m *Manager) DispatchInput(in *core.Input) bool {
	if h, ok := m.Top().(InputHandler); ok {
		return h.OnInput(in)
	}
	return false
}
