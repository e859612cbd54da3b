// Package gltest provides a recording opengl.Device for tests that exercise
// rendering code without a GPU context.
package gltest

import (
	"quad-engine/core"
	"quad-engine/internal/opengl"
	"quad-engine/math"
)

type ShaderObject struct {
	Stage   opengl.ShaderStage
	Source  string
	Deleted bool
}

type ProgramObject struct {
	Shaders []uint32
	Deleted bool
}

type TextureObject struct {
	Width, Height int
	Pixels        []byte
	Options       opengl.TextureOptions
	Deleted       bool
}

// DrawCall is a snapshot of the state at one DrawIndexed.
type DrawCall struct {
	Program    uint32
	IndexCount int32
	Vertices   []core.Vertex
	Textures   map[int]uint32
}

// Device records every call made through the opengl.Device interface.
// Zero value is not usable; call New.
type Device struct {
	// Failure injection.
	FailCompile     map[opengl.ShaderStage]string
	FailLink        string
	MissingUniforms map[string]bool
	MaxUnits        int

	Shaders  map[uint32]*ShaderObject
	Programs map[uint32]*ProgramObject
	Textures map[uint32]*TextureObject

	DrawCalls      []DrawCall
	UniformLookups map[string]int
	UniformWrites  map[string]int
	Ints           map[string]int32
	IntArrays      map[string][]int32
	Floats         map[string]float32
	Vec3s          map[string][3]float32
	Vec4s          map[string][4]float32
	Matrices       map[string]math.Mat4

	ViewportRect   [4]int32
	ClearedTo      core.Color
	Clears         int
	Blending       bool
	DepthTest      bool
	CurrentProgram uint32
	BoundTextures  map[int]uint32
	BoundVAO       uint32

	Indices         []uint32
	VertexBufSize   int
	Attributes      []core.VertexAttribute
	AttribStride    int32
	LastVertices    []core.Vertex
	DeletedVAOs     []uint32
	DeletedBuffers  []uint32
	uniformNames    []string
	uniformLocation map[string]int32
	next            uint32
}

var _ opengl.Device = (*Device)(nil)

func New() *Device {
	return &Device{
		FailCompile:     make(map[opengl.ShaderStage]string),
		MissingUniforms: make(map[string]bool),
		MaxUnits:        32,
		Shaders:         make(map[uint32]*ShaderObject),
		Programs:        make(map[uint32]*ProgramObject),
		Textures:        make(map[uint32]*TextureObject),
		UniformLookups:  make(map[string]int),
		UniformWrites:   make(map[string]int),
		Ints:            make(map[string]int32),
		IntArrays:       make(map[string][]int32),
		Floats:          make(map[string]float32),
		Vec3s:           make(map[string][3]float32),
		Vec4s:           make(map[string][4]float32),
		Matrices:        make(map[string]math.Mat4),
		BoundTextures:   make(map[int]uint32),
		uniformLocation: make(map[string]int32),
	}
}

func (d *Device) id() uint32 {
	d.next++
	return d.next
}

func (d *Device) Viewport(x, y, width, height int32) {
	d.ViewportRect = [4]int32{x, y, width, height}
}

func (d *Device) ClearColor(c core.Color) { d.ClearedTo = c }
func (d *Device) Clear()                  { d.Clears++ }

func (d *Device) SetBlending(enabled bool)  { d.Blending = enabled }
func (d *Device) SetDepthTest(enabled bool) { d.DepthTest = enabled }

func (d *Device) CreateShader(stage opengl.ShaderStage, source string) uint32 {
	id := d.id()
	d.Shaders[id] = &ShaderObject{Stage: stage, Source: source}
	return id
}

func (d *Device) ShaderCompiled(shader uint32) (bool, string) {
	obj := d.Shaders[shader]
	if obj == nil {
		return false, "no such shader"
	}
	if log, ok := d.FailCompile[obj.Stage]; ok {
		return false, log
	}
	return true, ""
}

func (d *Device) DeleteShader(shader uint32) {
	if obj := d.Shaders[shader]; obj != nil {
		obj.Deleted = true
	}
}

func (d *Device) CreateProgram(shaders ...uint32) uint32 {
	id := d.id()
	d.Programs[id] = &ProgramObject{Shaders: append([]uint32(nil), shaders...)}
	return id
}

func (d *Device) ProgramLinked(program uint32) (bool, string) {
	if d.FailLink != "" {
		return false, d.FailLink
	}
	return d.Programs[program] != nil, ""
}

func (d *Device) DeleteProgram(program uint32) {
	if obj := d.Programs[program]; obj != nil {
		obj.Deleted = true
	}
}

func (d *Device) UseProgram(program uint32) { d.CurrentProgram = program }

// UniformLocation hands out stable locations per name; names listed in
// MissingUniforms resolve to -1.
func (d *Device) UniformLocation(program uint32, name string) int32 {
	d.UniformLookups[name]++
	if d.MissingUniforms[name] {
		return -1
	}
	if loc, ok := d.uniformLocation[name]; ok {
		return loc
	}
	loc := int32(len(d.uniformNames))
	d.uniformNames = append(d.uniformNames, name)
	d.uniformLocation[name] = loc
	return loc
}

func (d *Device) name(location int32) string {
	if location < 0 || int(location) >= len(d.uniformNames) {
		return ""
	}
	return d.uniformNames[location]
}

// write counts a value written through location and returns its name.
func (d *Device) write(location int32) string {
	name := d.name(location)
	d.UniformWrites[name]++
	return name
}

func (d *Device) Uniform1i(location int32, v int32) {
	d.Ints[d.write(location)] = v
}

func (d *Device) Uniform1iv(location int32, v []int32) {
	d.IntArrays[d.write(location)] = append([]int32(nil), v...)
}

func (d *Device) Uniform1f(location int32, v float32) {
	d.Floats[d.write(location)] = v
}

func (d *Device) Uniform3f(location int32, x, y, z float32) {
	d.Vec3s[d.write(location)] = [3]float32{x, y, z}
}

func (d *Device) Uniform4f(location int32, x, y, z, w float32) {
	d.Vec4s[d.write(location)] = [4]float32{x, y, z, w}
}

func (d *Device) UniformMatrix4(location int32, m math.Mat4) {
	d.Matrices[d.write(location)] = m
}

func (d *Device) CreateVertexArray() uint32  { return d.id() }
func (d *Device) BindVertexArray(vao uint32) { d.BoundVAO = vao }
func (d *Device) CreateBuffer() uint32       { return d.id() }

func (d *Device) DeleteVertexArray(vao uint32) {
	d.DeletedVAOs = append(d.DeletedVAOs, vao)
}
func (d *Device) DeleteBuffer(buffer uint32) {
	d.DeletedBuffers = append(d.DeletedBuffers, buffer)
}

func (d *Device) AllocateVertexBuffer(vbo uint32, size int) {
	d.VertexBufSize = size
}

func (d *Device) UploadIndexBuffer(ebo uint32, indices []uint32) {
	d.Indices = append([]uint32(nil), indices...)
}

func (d *Device) VertexAttrib(attr core.VertexAttribute, stride int32) {
	d.Attributes = append(d.Attributes, attr)
	d.AttribStride = stride
}

func (d *Device) UploadVertices(vbo uint32, vertices []core.Vertex) {
	d.LastVertices = append([]core.Vertex(nil), vertices...)
}

func (d *Device) DrawIndexed(count int32) {
	bound := make(map[int]uint32, len(d.BoundTextures))
	for unit, tex := range d.BoundTextures {
		bound[unit] = tex
	}
	d.DrawCalls = append(d.DrawCalls, DrawCall{
		Program:    d.CurrentProgram,
		IndexCount: count,
		Vertices:   append([]core.Vertex(nil), d.LastVertices...),
		Textures:   bound,
	})
}

func (d *Device) CreateTexture(width, height int, pixels []byte, opts opengl.TextureOptions) uint32 {
	id := d.id()
	d.Textures[id] = &TextureObject{
		Width:   width,
		Height:  height,
		Pixels:  append([]byte(nil), pixels...),
		Options: opts,
	}
	return id
}

func (d *Device) BindTexture(unit int, texture uint32) {
	d.BoundTextures[unit] = texture
}

func (d *Device) DeleteTexture(texture uint32) {
	if obj := d.Textures[texture]; obj != nil {
		obj.Deleted = true
	}
}

func (d *Device) MaxTextureUnits() int { return d.MaxUnits }

// LiveTextures counts textures created and not yet deleted.
func (d *Device) LiveTextures() int {
	n := 0
	for _, t := range d.Textures {
		if !t.Deleted {
			n++
		}
	}
	return n
}

// ResetFrame forgets recorded draw calls, keeping created objects.
func (d *Device) ResetFrame() {
	d.DrawCalls = nil
	d.Clears = 0
}
