package renderer

import (
	"log/slog"

	"quad-engine/core"
	"quad-engine/internal/opengl"
	"quad-engine/math"
)

type batchState int

const (
	stateIdle batchState = iota
	stateBuilding
	stateFlushing
	stateClosed
)

func (s batchState) String() string {
	switch s {
	case stateIdle:
		return "idle"
	case stateBuilding:
		return "building"
	case stateFlushing:
		return "flushing"
	case stateClosed:
		return "closed"
	}
	return "unknown"
}

// FrameStats counts the work done between BeginFrame and EndFrame.
type FrameStats struct {
	DrawCalls     int
	Quads         int
	Vertices      int
	Indices       int
	Flushes       int // implicit mid-frame flushes that drew
	SlotOverflows int
	DroppedQuads  int // submitted outside BeginFrame/EndFrame or after Shutdown
}

// batch owns the CPU vertex buffer and the GPU buffers it is streamed into.
type batch struct {
	dev    opengl.Device
	shader *opengl.Shader
	logger *slog.Logger

	vao, vbo, ebo uint32
	vertices      []core.Vertex
	maxVertices   int
	slots         *SlotTable

	state        batchState
	viewProj     math.Mat4
	stats        FrameStats
	last         FrameStats
	overflowBase int
}

func newBatch(dev opengl.Device, shader *opengl.Shader, white uint32, maxQuads, slots int, logger *slog.Logger) *batch {
	b := &batch{
		dev:         dev,
		shader:      shader,
		logger:      logger,
		maxVertices: maxQuads * 4,
		vertices:    make([]core.Vertex, 0, maxQuads*4),
		slots:       NewSlotTable(slots, white),
	}

	b.vao = dev.CreateVertexArray()
	b.vbo = dev.CreateBuffer()
	b.ebo = dev.CreateBuffer()

	dev.BindVertexArray(b.vao)
	dev.AllocateVertexBuffer(b.vbo, b.maxVertices*int(core.VertexStride))
	for _, attr := range core.VertexLayout() {
		dev.VertexAttrib(attr, core.VertexStride)
	}
	dev.UploadIndexBuffer(b.ebo, quadIndices(maxQuads))
	dev.BindVertexArray(0)

	samplers := make([]int32, slots)
	for i := range samplers {
		samplers[i] = int32(i)
	}
	shader.Bind()
	shader.SetIntArray(uniformTextures, samplers)
	shader.Unbind()

	return b
}

func (b *batch) begin(viewProj math.Mat4) {
	if b.state == stateClosed {
		b.logger.Warn("BeginFrame after Shutdown")
		return
	}
	if b.state == stateBuilding {
		b.logger.Warn("BeginFrame called twice; discarding the open batch",
			"quads", len(b.vertices)/4)
	}
	b.viewProj = viewProj
	b.stats = FrameStats{}
	b.overflowBase = b.slots.Overflows()
	b.restart()
}

// restart opens a fresh batch with the current view-projection.
func (b *batch) restart() {
	b.vertices = b.vertices[:0]
	b.slots.Reset()
	b.shader.Bind()
	b.shader.SetMat4(uniformViewProjection, b.viewProj)
	b.state = stateBuilding
}

func (b *batch) submit(q Quad) {
	if b.state != stateBuilding {
		b.stats.DroppedQuads++
		if b.state == stateClosed {
			b.logger.Warn("quad submitted after Shutdown")
		} else {
			b.logger.Warn("quad submitted outside BeginFrame/EndFrame", "state", b.state)
		}
		return
	}

	if len(b.vertices)+4 > b.maxVertices {
		b.flushAndRestart()
	}

	slot := 0
	if q.Texture != 0 {
		if s, ok := b.slots.Lookup(q.Texture); ok {
			slot = s
		} else {
			if b.slots.Full() {
				b.flushAndRestart()
			}
			slot = b.slots.GetOrAssignSlot(q.Texture)
		}
	}

	b.vertices = q.appendVertices(b.vertices, slot)
	b.stats.Quads++
}

func (b *batch) flushAndRestart() {
	b.state = stateFlushing
	if b.flush() {
		b.stats.Flushes++
	}
	b.restart()
}

// flush uploads the accumulated vertices and issues one draw call. It
// reports whether anything was drawn.
func (b *batch) flush() bool {
	if len(b.vertices) == 0 {
		return false
	}

	b.dev.BindVertexArray(b.vao)
	b.dev.UploadVertices(b.vbo, b.vertices)
	b.shader.Bind()
	for unit, handle := range b.slots.Bound() {
		b.dev.BindTexture(unit, handle)
	}

	indices := len(b.vertices) / 4 * 6
	b.dev.DrawIndexed(int32(indices))
	b.dev.BindVertexArray(0)

	b.stats.DrawCalls++
	b.stats.Vertices += len(b.vertices)
	b.stats.Indices += indices
	return true
}

func (b *batch) end() {
	if b.state == stateClosed {
		b.logger.Warn("EndFrame after Shutdown")
		return
	}
	if b.state != stateBuilding {
		b.logger.Warn("EndFrame without BeginFrame")
		return
	}
	b.state = stateFlushing
	b.flush()
	b.vertices = b.vertices[:0]
	b.stats.SlotOverflows = b.slots.Overflows() - b.overflowBase
	b.last = b.stats
	b.shader.Unbind()
	b.state = stateIdle
}

// close releases the GPU buffers. Any later frame call is logged and
// ignored.
func (b *batch) close() {
	b.dev.DeleteVertexArray(b.vao)
	b.dev.DeleteBuffer(b.vbo)
	b.dev.DeleteBuffer(b.ebo)
	b.vao, b.vbo, b.ebo = 0, 0, 0
	b.vertices = nil
	b.state = stateClosed
}
